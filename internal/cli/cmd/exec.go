package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kestrelvm/kestrel/internal/cli"
	"github.com/kestrelvm/kestrel/internal/log"
	"github.com/kestrelvm/kestrel/internal/object"
	"github.com/kestrelvm/kestrel/internal/vm"
)

// Exec is the command that runs a compiled object file.
//
//	kestrel exec --path prog.bin
func Exec() cli.Command {
	return &exec{cells: 2048, stack: 256}
}

type exec struct {
	path   string
	cells  int
	stack  int
	dump   bool
	legacy bool
}

func (exec) Description() string {
	return "run a compiled program"
}

func (exec) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `exec --path file.bin [--cells N] [--stack N] [--dump] [--legacy]

Load and run a compiled program until it terminates.`)

	return err
}

func (ex *exec) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("exec", flag.ExitOnError)
	fs.StringVar(&ex.path, "path", "", "object `file` to run")
	fs.IntVar(&ex.cells, "cells", 2048, "total memory size, in words")
	fs.IntVar(&ex.stack, "stack", 256, "stack region size, in words")
	fs.BoolVar(&ex.dump, "dump", false, "print a hex+ASCII memory dump after termination")
	fs.BoolVar(&ex.legacy, "legacy", false, "decode a single-word-header (origin only) object file")

	return fs
}

func (ex *exec) Run(ctx context.Context, _ []string, stdout io.Writer, logger *log.Logger) int {
	in, err := os.Open(ex.path)
	if err != nil {
		logger.Error("open failed", "path", ex.path, "err", err)

		return 1
	}

	defer in.Close()

	var frame object.Frame

	if ex.legacy {
		frame, err = object.DecodeLegacy(in)
	} else {
		frame, err = object.Decode(in)
	}

	if err != nil {
		logger.Error("decode failed", "path", ex.path, "err", err)

		return 1
	}

	logger.Debug("loaded object",
		"path", ex.path, "origin", frame.Origin, "entry", frame.Entry, "words", len(frame.Words))

	machine, err := vm.New(
		vm.WithLogger(logger),
		vm.WithCells(ex.cells, ex.stack),
		vm.WithOutput(stdout),
	)
	if err != nil {
		logger.Error("machine init failed", "err", err)

		return 1
	}

	words := make([]vm.Word, len(frame.Words))
	for i, w := range frame.Words {
		words[i] = vm.Word(w)
	}

	if err := machine.Mem.Write(vm.Word(frame.Origin), words); err != nil {
		logger.Error("load failed", "err", err)

		return 1
	}

	if err := machine.Reg.Set(vm.PC, vm.Word(frame.Entry)); err != nil {
		logger.Error("entry point invalid", "err", err)

		return 1
	}

	runCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	logger.Info("starting machine", "entry", frame.Entry)

	runErr := machine.Run(runCtx)

	if ex.dump {
		if err := object.Dump(stdout, wordsOf(machine), ex.stack); err != nil {
			logger.Error("dump failed", "err", err)
		}
	}

	switch {
	case errors.Is(runErr, context.DeadlineExceeded):
		logger.Error("execution timed out")

		return 2
	case runErr != nil:
		logger.Error("program error", "err", runErr)

		return 2
	default:
		logger.Info("terminated", "registers", machine.String())

		return 0
	}
}

func wordsOf(m *vm.Machine) []uint32 {
	out := make([]uint32, m.Mem.Cells())

	for i := 0; i < m.Mem.Cells(); i++ {
		w, _ := m.Mem.Read(vm.Word(i))
		out[i] = uint32(w)
	}

	return out
}
