// Command kestrel is the command-line interface to the toolchain: an
// assembler and an interpreter for a small stack-and-register virtual
// machine.
package main

import (
	"context"
	"os"

	"github.com/kestrelvm/kestrel/internal/cli"
	"github.com/kestrelvm/kestrel/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Compile(),
	cmd.Exec(),
}

func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
