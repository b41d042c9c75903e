package vm

// memory.go implements the flat memory: a data region in low addresses and
// a stack region, growing toward lower indices, carved from the top.

import (
	"errors"
	"fmt"

	"github.com/kestrelvm/kestrel/internal/log"
)

var (
	// ErrInvalidSize is returned by NewMemory when the stack region would
	// not leave room for a data region.
	ErrInvalidSize = errors.New("invalid size")

	// ErrStackOverflow is returned by Push when the stack region is full.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrEmptyContainer is returned by Pop when the stack is empty.
	ErrEmptyContainer = errors.New("empty container")

	// ErrInvalidAddress is returned by Write when the slice would spill
	// into the stack region, or by Read when the address is out of bounds.
	ErrInvalidAddress = errors.New("invalid address")
)

// Memory is the machine's flat word array, split into a data region
// [0, cells-ssize) and a stack region [cells-ssize, cells) that grows
// downward from the top of memory.
type Memory struct {
	cells []Word
	ssize int
	sp    int

	log *log.Logger
}

// NewMemory allocates a zeroed memory of the given size, with a stack
// region of ssize words carved from the top. It fails with ErrInvalidSize
// when ssize >= cells.
func NewMemory(cells, ssize int) (*Memory, error) {
	if ssize >= cells {
		return nil, fmt.Errorf("%w: stack size %d >= cells %d", ErrInvalidSize, ssize, cells)
	}

	return &Memory{
		cells: make([]Word, cells),
		ssize: ssize,
		log:   log.DefaultLogger(),
	}, nil
}

// Cells returns the total number of addressable words.
func (m *Memory) Cells() int { return len(m.cells) }

// DataSize returns the size, in words, of the data region.
func (m *Memory) DataSize() int { return len(m.cells) - m.ssize }

// StackDepth returns the number of words currently on the stack.
func (m *Memory) StackDepth() int { return m.sp }

// Push writes v to the top of the stack and advances the stack pointer. It
// fails with ErrStackOverflow when the stack region is full.
func (m *Memory) Push(v Word) error {
	if m.sp == m.ssize {
		return fmt.Errorf("%w", ErrStackOverflow)
	}

	m.cells[len(m.cells)-m.sp-1] = v
	m.sp++

	return nil
}

// Pop removes and returns the top of the stack. It fails with
// ErrEmptyContainer when the stack is empty.
func (m *Memory) Pop() (Word, error) {
	if m.sp == 0 {
		return 0, fmt.Errorf("%w: pop", ErrEmptyContainer)
	}

	m.sp--

	return m.cells[len(m.cells)-m.sp-1], nil
}

// Peek returns the top of the stack without moving the stack pointer. It
// fails with ErrEmptyContainer when the stack is empty.
func (m *Memory) Peek() (Word, error) {
	if m.sp == 0 {
		return 0, fmt.Errorf("%w: peek", ErrEmptyContainer)
	}

	return m.cells[len(m.cells)-m.sp], nil
}

// Write copies data into the data region starting at addr. It fails with
// ErrInvalidAddress when the write would extend into the stack region.
func (m *Memory) Write(addr Word, data []Word) error {
	a := int(addr)
	dataSize := m.DataSize()

	if a < 0 || a+len(data) > dataSize {
		return fmt.Errorf("%w: write at %s, len %d", ErrInvalidAddress, addr, len(data))
	}

	copy(m.cells[a:a+len(data)], data)

	return nil
}

// Read returns the word at addr. Any address in [0, cells) is valid,
// including stack cells; Read makes no distinction between the two
// regions. It fails with ErrInvalidAddress when addr is out of bounds.
func (m *Memory) Read(addr Word) (Word, error) {
	a := int(addr)
	if a < 0 || a >= len(m.cells) {
		return 0, fmt.Errorf("%w: read at %s", ErrInvalidAddress, addr)
	}

	return m.cells[a], nil
}
