package vm

// word.go defines the base data type the machine operates on.

import "fmt"

// Word is the base data type on which the machine operates. Registers, memory
// cells, the instruction stream, and stack cells are all one Word wide.
// Signed arithmetic reinterprets the same 32 bits as two's-complement.
type Word uint32

func (w Word) String() string {
	return fmt.Sprintf("%0#8x", uint32(w))
}

// Signed reinterprets the word's bits as a signed 32-bit integer.
func (w Word) Signed() int32 {
	return int32(w)
}
