package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kestrelvm/kestrel/internal/asm"
	"github.com/kestrelvm/kestrel/internal/cli"
	"github.com/kestrelvm/kestrel/internal/lang"
	"github.com/kestrelvm/kestrel/internal/log"
	"github.com/kestrelvm/kestrel/internal/object"
)

// Compile is the command that translates assembly source into object code.
//
//	kestrel compile --path prog.svm --output prog.bin
func Compile() cli.Command {
	return new(compile)
}

type compile struct {
	path   string
	output string
}

func (compile) Description() string {
	return "assemble source into object code"
}

func (compile) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `compile --path file.svm --output file.bin

Assemble source into an object file.`)

	return err
}

func (c *compile) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	fs.StringVar(&c.path, "path", "", "source `file` to assemble")
	fs.StringVar(&c.output, "output", "a.bin", "object `file` to write")

	return fs
}

func (c *compile) Run(_ context.Context, _ []string, _ io.Writer, logger *log.Logger) int {
	in, err := os.Open(c.path)
	if err != nil {
		logger.Error("open failed", "path", c.path, "err", err)

		return 1
	}

	defer in.Close()

	tokens, err := lang.Scan(c.path, bufio.NewReader(in))
	if err != nil {
		logger.Error("syntax error", "err", err)

		return 1
	}

	logger.Debug("scanned source", "path", c.path, "tokens", len(tokens))

	frame, err := asm.Assemble(tokens)
	if err != nil {
		logger.Error("assembly error", "err", err)

		return 1
	}

	out, err := os.Create(c.output)
	if err != nil {
		logger.Error("create failed", "path", c.output, "err", err)

		return 1
	}

	defer out.Close()

	objFrame := object.Frame{Origin: frame.Origin, Entry: frame.Entry, Words: frame.Words}

	if err := object.Encode(out, objFrame); err != nil {
		logger.Error("encode failed", "path", c.output, "err", err)

		return 1
	}

	logger.Info("compiled",
		"path", c.output,
		"origin", frame.Origin,
		"entry", frame.Entry,
		"words", len(frame.Words),
	)

	return 0
}
