package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"loxvm/chunk"
	"loxvm/compiler"
	"loxvm/debug"
)

// disassembleCmd implements the disassemble command
type disassembleCmd struct{}

func (*disassembleCmd) Name() string     { return "disassemble" }
func (*disassembleCmd) Synopsis() string { return "Compile a source file and print its bytecode" }
func (*disassembleCmd) Usage() string {
	return `disassemble <file>:
  Compile a source file without running it and print the resulting chunk.
`
}

func (*disassembleCmd) SetFlags(f *flag.FlagSet) {}

func (*disassembleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	ch := chunk.New()
	if !compiler.Compile(string(data), ch, os.Stderr) {
		return subcommands.ExitFailure
	}

	fmt.Print(debug.DisassembleChunk(ch, filename))
	return subcommands.ExitSuccess
}
