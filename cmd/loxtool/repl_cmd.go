package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"loxvm/vm"
)

// replCmd implements the repl command
type replCmd struct {
	trace bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive lox session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive REPL session with line editing and history.
`
}

func (cmd *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.trace, "trace", false, "dump the operand stack and disassembly before each executed instruction")
}

func (cmd *replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if cmd.trace {
		logrus.SetLevel(logrus.TraceLevel)
	}

	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = home + "/.loxtool_history"
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      ">>> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to start line editor: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	fmt.Println("Welcome to loxtool's interactive session.")

	// A single VM is reused across every line entered instead of
	// reconstructing one per line.
	machine := vm.New()
	machine.Trace = cmd.trace

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return subcommands.ExitSuccess
			}
			continue
		} else if err == io.EOF {
			return subcommands.ExitSuccess
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return subcommands.ExitFailure
		}
		machine.Interpret(line)
	}
}
