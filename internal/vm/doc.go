/*
Package vm implements the stack-and-register virtual machine executed by kestrel.

For each machine:

  - 32-bit words, little-endian on the wire (see package object)
  - eight general-purpose registers, r0 through r7
  - a program counter, addressed as register id 100
  - four status flags: zero, negative, overflow, carry
  - a flat memory split into a data region and a stack region that grows
    down from the top of memory
  - a separate, unbounded call stack private to the engine, used by
    Call/Ret and the state-preserving SafeCall/Ret protocol
  - a host interrupt table, routing (module, function) pairs to Go
    functions that consume their arguments from the operand stack

# Memory layout

	+===============+  cells
	|               |
	|  stack region |  grows toward lower addresses
	|               |
	+---------------+  cells - ssize
	|               |
	|  data region  |  instructions, data definitions, scratch
	|               |
	+===============+  0

Instructions, data, and the stack all live in the same backing array: a
program can read or write any of them, including its own code. That is a
program bug, not a memory-model violation.

# Instruction cycle

Step performs, in order: fetch the instruction header at pc, decode it into
a (primary, variant) pair, dispatch to the operation, and -- unless the
operation fully assigned pc itself -- advance pc past the header and any
inline operands the operation consumed. Run repeats Step
until an instruction returns Terminate or an error aborts execution.
*/
package vm
