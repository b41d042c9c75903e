package vm

// flags.go implements the four boolean status flags toggled by arithmetic
// and stack-consuming instructions.

import "fmt"

// Flags holds the machine's status bits. The zero value is the reset
// state: all flags false.
type Flags struct {
	Zero     bool
	Negative bool
	Overflow bool
	Carry    bool
}

// Snapshot returns a copy of the flags.
func (f Flags) Snapshot() Flags {
	return f
}

func (f Flags) String() string {
	return fmt.Sprintf("Z:%t N:%t V:%t C:%t", f.Zero, f.Negative, f.Overflow, f.Carry)
}

// setFromResult sets Zero and Negative from a pushed/popped/peeked result,
// the rule shared by Pop, Drop, and Dup.
func (f *Flags) setFromResult(v Word) {
	f.Zero = v == 0
	f.Negative = v.Signed() < 0
}
