package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"loxvm/vm"
)

// runCmd implements the run command
type runCmd struct {
	trace bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute lox code from a source file" }
func (*runCmd) Usage() string {
	return `run <file>:
  Execute lox code.
`
}

func (cmd *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.trace, "trace", false, "dump the operand stack and disassembly before each executed instruction")
}

func (cmd *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	if cmd.trace {
		logrus.SetLevel(logrus.TraceLevel)
	}

	machine := vm.New()
	machine.Trace = cmd.trace

	switch machine.Interpret(string(data)) {
	case vm.InterpretOk:
		return subcommands.ExitSuccess
	default:
		return subcommands.ExitFailure
	}
}
