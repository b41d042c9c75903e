package vm

// machine.go defines the virtual machine and assembles it from its parts.

import (
	"fmt"
	"io"
	"os"

	"github.com/kestrelvm/kestrel/internal/log"
)

// Default dimensions, used when New is given no sizing options.
const (
	DefaultCells = 1 << 16
	DefaultStack = 1 << 10
)

// Machine is a stack-and-register computer simulated in software.
type Machine struct {
	Mem  *Memory
	Reg  Registers
	Flag Flags
	Call CallStack
	Int  *HandlerTable

	jumped bool // set by a taken Jump/Call, to suppress the implicit PC advance

	out       io.Writer
	listeners []OutputListener

	log *log.Logger
}

// OptionFn configures a Machine during New.
type OptionFn func(*Machine) error

// New creates and initializes a virtual machine. Options are applied in
// order after defaults (64K cells, a 1K-word stack region, output to
// stdout) are established, so later options may override earlier ones.
// The default I/O module is wired to the configured output after all
// options have run.
func New(opts ...OptionFn) (*Machine, error) {
	m := &Machine{
		out: os.Stdout,
		log: log.DefaultLogger(),
	}

	mem, err := NewMemory(DefaultCells, DefaultStack)
	if err != nil {
		return nil, err
	}

	m.Mem = mem
	m.Int = NewHandlerTable()

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("configuring machine: %w", err)
		}
	}

	custom := make(map[Word]Handler)
	for fn, h := range m.Int.modules[IOModule] {
		custom[fn] = h
	}

	RegisterDefaultIO(m.Int, m.out)

	for fn, h := range custom {
		m.Int.Register(IOModule, fn, h)
	}

	return m, nil
}

// WithCells replaces the machine's memory with a fresh, zeroed one of
// cells words and a stackSize-word stack region. It fails with
// ErrInvalidSize when stackSize >= cells.
func WithCells(cells, stackSize int) OptionFn {
	return func(m *Machine) error {
		mem, err := NewMemory(cells, stackSize)
		if err != nil {
			return err
		}

		m.Mem = mem

		return nil
	}
}

// WithOutput directs the default I/O module's writes to w instead of
// os.Stdout.
func WithOutput(w io.Writer) OptionFn {
	return func(m *Machine) error {
		m.out = w

		return nil
	}
}

// WithLogger installs l as the machine's logger.
func WithLogger(l *log.Logger) OptionFn {
	return func(m *Machine) error {
		m.log = l

		return nil
	}
}

// WithListener registers an OutputListener, notified on every scalar the
// default I/O handlers print. Intended for tests.
func WithListener(l OutputListener) OptionFn {
	return func(m *Machine) error {
		m.listeners = append(m.listeners, l)

		return nil
	}
}

// WithHandlers registers additional or replacement interrupt handlers
// before the default I/O module is wired in. Use this to override
// individual I/O functions or add new modules.
func WithHandlers(fn func(*HandlerTable)) OptionFn {
	return func(m *Machine) error {
		fn(m.Int)

		return nil
	}
}

func (m *Machine) String() string {
	return fmt.Sprintf("%s\n%s\ncall depth: %d stack depth: %d",
		m.Reg.String(), m.Flag.String(), m.Call.Depth(), m.Mem.StackDepth())
}
