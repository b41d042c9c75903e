package vm

// interrupt.go implements the host interrupt dispatch surface: a
// (module, function) pair routes to a host-provided handler.
//
// This is a direct Go-function dispatch table, not a jump into VM machine
// code: the teacher's LC-3 trap/ISR design loads handler routines into
// addressable memory and jumps to them by vector. This machine's Int
// instruction instead calls out to the host directly, so handlers can use
// ordinary Go I/O.

import (
	"errors"
	"fmt"

	"github.com/kestrelvm/kestrel/internal/log"
)

var (
	// ErrInvalidModule is returned by Dispatch for an unknown module id.
	ErrInvalidModule = errors.New("invalid module")

	// ErrInvalidFunction is returned by Dispatch for an unknown function id
	// within a known module.
	ErrInvalidFunction = errors.New("invalid function")
)

// IOModule is the module id of the default I/O interrupt module.
const IOModule Word = 0x00000000

// I/O module function ids.
const (
	FnPrintChar       Word = 0
	FnPrintCounted    Word = 1
	FnPrintUntil      Word = 2
	FnPrintDataString Word = 3
	FnPrintNumber     Word = 4
)

// Handler services one interrupt. It is given the machine so it can pop its
// arguments from the operand stack and perform host I/O.
type Handler func(m *Machine) error

// HandlerTable routes (module, function) pairs to host handlers.
type HandlerTable struct {
	modules map[Word]map[Word]Handler
	log     *log.Logger
}

// NewHandlerTable creates an empty handler table.
func NewHandlerTable() *HandlerTable {
	return &HandlerTable{
		modules: make(map[Word]map[Word]Handler),
		log:     log.DefaultLogger(),
	}
}

// Register installs a handler for the given (module, function) pair,
// overwriting any existing registration.
func (t *HandlerTable) Register(module, function Word, h Handler) {
	fns, ok := t.modules[module]
	if !ok {
		fns = make(map[Word]Handler)
		t.modules[module] = fns
	}

	fns[function] = h
}

// Dispatch invokes the handler registered for (module, function). It fails
// with ErrInvalidModule or ErrInvalidFunction if no handler is registered;
// handlers may themselves surface memory errors.
func (t *HandlerTable) Dispatch(m *Machine, module, function Word) error {
	fns, ok := t.modules[module]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidModule, module)
	}

	h, ok := fns[function]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidFunction, function)
	}

	t.log.Debug("dispatching interrupt", "module", module, "function", function)

	return h(m)
}
