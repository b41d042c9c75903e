package asm

// emit.go selects the (opcode, variant) pair and operand word layout for
// each parsed command, per the addressing modes enumerated in
// spec.md §4.5.

import (
	"fmt"

	"github.com/kestrelvm/kestrel/internal/token"
	"github.com/kestrelvm/kestrel/internal/vm"
)

// refKind discriminates how a wordSpec's value is produced.
type refKind int

const (
	refNone refKind = iota
	refLabel
	refData
	refSymbol // either table, data preferred
)

// wordSpec is one not-yet-resolved word of the emitted instruction
// stream: either an immediate value or a patch against the label/data
// tables, resolved once every token has been scanned.
type wordSpec struct {
	kind   refKind
	value  uint32
	name   string
	offset int64
}

func literal(v int64) wordSpec  { return wordSpec{kind: refNone, value: uint32(v)} }
func regWord(id int) wordSpec   { return wordSpec{kind: refNone, value: uint32(id)} }
func labelRef(name string) wordSpec {
	return wordSpec{kind: refLabel, name: name}
}
func dataRef(name string, offset int64) wordSpec {
	return wordSpec{kind: refData, name: name, offset: offset}
}
func symbolRef(name string, offset int64) wordSpec {
	return wordSpec{kind: refSymbol, name: name, offset: offset}
}

// addrBase returns the wordSpec for a bracketed operand's base address,
// whether it names a symbol or carries a bare numeric literal.
func addrBase(op token.Operand) wordSpec {
	if op.Name != "" {
		return symbolRef(op.Name, 0)
	}

	return literal(op.BaseConst)
}

// header returns the instruction-header word for (op, variant).
func header(op vm.Opcode, v vm.Variant) wordSpec {
	return literal(int64(vm.Encode(op, v)))
}

// emitCommand returns the full word sequence -- header followed by
// operands -- for one parsed command.
func emitCommand(cmd token.Command) ([]wordSpec, error) {
	ops := cmd.Operands

	switch cmd.Op {
	case token.MPush:
		return emitPush(ops)
	case token.MPop:
		return emitPop(ops)
	case token.MDrop:
		return []wordSpec{header(vm.Drop, vm.Default)}, nil
	case token.MDup:
		return emitDup(ops)
	case token.MSwap:
		return []wordSpec{header(vm.Swap, vm.Default)}, nil
	case token.MAdd:
		return []wordSpec{header(vm.Add, vm.Default)}, nil
	case token.MSub:
		return []wordSpec{header(vm.Sub, vm.Default)}, nil
	case token.MMul:
		return []wordSpec{header(vm.Mul, vm.Default)}, nil
	case token.MDiv:
		return []wordSpec{header(vm.Div, vm.Default)}, nil
	case token.MInc:
		return emitRegOperand(vm.Inc, vm.Default, ops)
	case token.MDec:
		return emitRegOperand(vm.Dec, vm.Default, ops)
	case token.MAnd:
		return []wordSpec{header(vm.And, vm.Default)}, nil
	case token.MOr:
		return []wordSpec{header(vm.Or, vm.Default)}, nil
	case token.MXor:
		return []wordSpec{header(vm.Xor, vm.Default)}, nil
	case token.MNot:
		return []wordSpec{header(vm.Not, vm.Default)}, nil
	case token.MSHR:
		return emitShift(vm.SHR, ops)
	case token.MSHL:
		return emitShift(vm.SHL, ops)
	case token.MMove:
		return emitMove(ops)
	case token.MStore:
		return emitStore(ops)
	case token.MJump:
		return emitJump(vm.Default, ops)
	case token.MJumpZero:
		return emitJump(vm.JumpZero, ops)
	case token.MJumpNZ:
		return emitJump(vm.JumpNotZero, ops)
	case token.MJumpGT:
		return emitJump(vm.JumpGreater, ops)
	case token.MJumpGE:
		return emitJump(vm.JumpGreaterEqual, ops)
	case token.MJumpLT:
		return emitJump(vm.JumpLesser, ops)
	case token.MJumpLE:
		return emitJump(vm.JumpLesserEqual, ops)
	case token.MCall:
		return emitCall(vm.Call, ops)
	case token.MSafeCall:
		return emitCall(vm.SafeCall, ops)
	case token.MRet:
		return []wordSpec{header(vm.Ret, vm.Default)}, nil
	case token.MInt:
		return emitInt(ops)
	case token.MTerminate:
		return []wordSpec{header(vm.Terminate, vm.Default)}, nil
	default:
		return nil, fmt.Errorf("unknown mnemonic %q", cmd.Op)
	}
}

func emitPush(ops []token.Operand) ([]wordSpec, error) {
	if len(ops) < 1 {
		return nil, fmt.Errorf("PUSH: expected an operand")
	}

	op := ops[0]

	switch op.Kind {
	case token.OperandConst:
		return []wordSpec{header(vm.Push, vm.PushConst), literal(op.Const)}, nil
	case token.OperandReg:
		return []wordSpec{header(vm.Push, vm.PushReg), regWord(op.Reg)}, nil
	case token.OperandLabel:
		return []wordSpec{header(vm.Push, vm.PushAddr), labelRef(op.Name)}, nil
	case token.OperandData:
		return []wordSpec{header(vm.Push, vm.PushAddr), dataRef(op.Name, 0)}, nil
	case token.OperandAddr:
		return []wordSpec{header(vm.Push, vm.PushAddr), addrBase(op)}, nil
	case token.OperandAddrOffsetConst:
		return []wordSpec{header(vm.Push, vm.PushAddrOffsetConst), addrBase(op), literal(op.Const)}, nil
	case token.OperandAddrOffsetReg:
		return []wordSpec{header(vm.Push, vm.PushAddrOffsetReg), addrBase(op), regWord(op.Reg)}, nil
	default:
		return nil, fmt.Errorf("PUSH: unsupported operand")
	}
}

func emitPop(ops []token.Operand) ([]wordSpec, error) {
	if len(ops) < 1 {
		return nil, fmt.Errorf("POP: expected an operand")
	}

	op := ops[0]

	switch op.Kind {
	case token.OperandReg:
		return []wordSpec{header(vm.Pop, vm.PopReg), regWord(op.Reg)}, nil
	case token.OperandLabel:
		return []wordSpec{header(vm.Pop, vm.PopAddr), labelRef(op.Name)}, nil
	case token.OperandData:
		return []wordSpec{header(vm.Pop, vm.PopAddr), dataRef(op.Name, 0)}, nil
	case token.OperandAddr:
		return []wordSpec{header(vm.Pop, vm.PopAddr), addrBase(op)}, nil
	default:
		return nil, fmt.Errorf("POP: unsupported operand")
	}
}

func emitDup(ops []token.Operand) ([]wordSpec, error) {
	if len(ops) == 0 {
		return []wordSpec{header(vm.Dup, vm.Default)}, nil
	}

	op := ops[0]

	switch op.Kind {
	case token.OperandConst:
		return []wordSpec{header(vm.Dup, vm.DupConst), literal(op.Const)}, nil
	case token.OperandReg:
		return []wordSpec{header(vm.Dup, vm.DupReg), regWord(op.Reg)}, nil
	default:
		return nil, fmt.Errorf("DUP: unsupported operand")
	}
}

func emitRegOperand(op vm.Opcode, v vm.Variant, ops []token.Operand) ([]wordSpec, error) {
	if len(ops) < 1 || ops[0].Kind != token.OperandReg {
		return nil, fmt.Errorf("%s: expected a register operand", op)
	}

	return []wordSpec{header(op, v), regWord(ops[0].Reg)}, nil
}

func emitShift(op vm.Opcode, ops []token.Operand) ([]wordSpec, error) {
	if len(ops) < 1 {
		return nil, fmt.Errorf("%s: expected an operand", op)
	}

	switch ops[0].Kind {
	case token.OperandConst:
		v := vm.SHRConst
		if op == vm.SHL {
			v = vm.SHLConst
		}

		return []wordSpec{header(op, v), literal(ops[0].Const)}, nil
	case token.OperandReg:
		v := vm.SHRReg
		if op == vm.SHL {
			v = vm.SHLReg
		}

		return []wordSpec{header(op, v), regWord(ops[0].Reg)}, nil
	default:
		return nil, fmt.Errorf("%s: unsupported operand", op)
	}
}

func emitMove(ops []token.Operand) ([]wordSpec, error) {
	if len(ops) < 2 || ops[0].Kind != token.OperandReg {
		return nil, fmt.Errorf("MOVE: expected a register destination and a source")
	}

	dst := regWord(ops[0].Reg)
	src := ops[1]

	switch src.Kind {
	case token.OperandConst:
		return []wordSpec{header(vm.Move, vm.MoveConst), dst, literal(src.Const)}, nil
	case token.OperandReg:
		return []wordSpec{header(vm.Move, vm.MoveReg), dst, regWord(src.Reg)}, nil
	case token.OperandLabel:
		return []wordSpec{header(vm.Move, vm.MoveAddr), dst, labelRef(src.Name)}, nil
	case token.OperandData:
		return []wordSpec{header(vm.Move, vm.MoveAddr), dst, dataRef(src.Name, 0)}, nil
	case token.OperandAddr:
		return []wordSpec{header(vm.Move, vm.MoveAddr), dst, addrBase(src)}, nil
	case token.OperandAddrOffsetConst:
		return []wordSpec{header(vm.Move, vm.MoveAddrOffsetConst), dst, addrBase(src), literal(src.Const)}, nil
	case token.OperandAddrOffsetReg:
		return []wordSpec{header(vm.Move, vm.MoveAddrOffsetReg), dst, addrBase(src), regWord(src.Reg)}, nil
	default:
		return nil, fmt.Errorf("MOVE: unsupported source operand")
	}
}

func emitStore(ops []token.Operand) ([]wordSpec, error) {
	if len(ops) < 2 {
		return nil, fmt.Errorf("STORE: expected an address and a source")
	}

	addr := ops[0]

	var addrSpec wordSpec

	switch addr.Kind {
	case token.OperandLabel:
		addrSpec = labelRef(addr.Name)
	case token.OperandData:
		addrSpec = dataRef(addr.Name, 0)
	case token.OperandAddr:
		addrSpec = addrBase(addr)
	default:
		return nil, fmt.Errorf("STORE: unsupported address operand")
	}

	src := ops[1]

	switch src.Kind {
	case token.OperandConst:
		return []wordSpec{header(vm.Store, vm.StoreConst), addrSpec, literal(src.Const)}, nil
	case token.OperandReg:
		return []wordSpec{header(vm.Store, vm.StoreReg), addrSpec, regWord(src.Reg)}, nil
	default:
		return nil, fmt.Errorf("STORE: unsupported source operand")
	}
}

func jumpTarget(op token.Operand) (wordSpec, error) {
	switch op.Kind {
	case token.OperandLabel:
		return labelRef(op.Name), nil
	case token.OperandData:
		return dataRef(op.Name, 0), nil
	case token.OperandConst:
		return literal(op.Const), nil
	default:
		return wordSpec{}, fmt.Errorf("expected a label, data identifier, or address")
	}
}

func emitJump(v vm.Variant, ops []token.Operand) ([]wordSpec, error) {
	if len(ops) < 1 {
		return nil, fmt.Errorf("JUMP: expected a target")
	}

	target, err := jumpTarget(ops[0])
	if err != nil {
		return nil, fmt.Errorf("JUMP: %w", err)
	}

	return []wordSpec{header(vm.Jump, v), target}, nil
}

func emitCall(op vm.Opcode, ops []token.Operand) ([]wordSpec, error) {
	if len(ops) < 1 {
		return nil, fmt.Errorf("%s: expected a target", op)
	}

	target := ops[0]

	constVariant, regVariant, addrVariant := vm.CallConst, vm.CallReg, vm.CallAddr
	if op == vm.SafeCall {
		constVariant, regVariant, addrVariant = vm.SafeCallConst, vm.SafeCallReg, vm.SafeCallAddr
	}

	switch target.Kind {
	case token.OperandLabel:
		return []wordSpec{header(op, constVariant), labelRef(target.Name)}, nil
	case token.OperandData:
		return []wordSpec{header(op, constVariant), dataRef(target.Name, 0)}, nil
	case token.OperandConst:
		return []wordSpec{header(op, constVariant), literal(target.Const)}, nil
	case token.OperandReg:
		return []wordSpec{header(op, regVariant), regWord(target.Reg)}, nil
	case token.OperandAddr:
		return []wordSpec{header(op, addrVariant), addrBase(target)}, nil
	default:
		return nil, fmt.Errorf("%s: unsupported target operand", op)
	}
}

func emitInt(ops []token.Operand) ([]wordSpec, error) {
	if len(ops) < 2 || ops[0].Kind != token.OperandConst || ops[1].Kind != token.OperandConst {
		return nil, fmt.Errorf("INT: expected module and function constants")
	}

	return []wordSpec{header(vm.Int, vm.Default), literal(ops[0].Const), literal(ops[1].Const)}, nil
}
