// Command loxtool is the developer-facing counterpart to cmd/lox: a
// subcommand CLI (google/subcommands, one command struct per verb)
// offering disassembly dumps, bytecode trace toggles, and a
// readline-backed REPL that the plain language binary has no room for.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&disassembleCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
