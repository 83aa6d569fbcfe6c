// Command lox is the plain language binary: no subcommands, no banner, no
// prompt beyond the bare REPL loop. Developer-facing conveniences like
// disassembly dumps, readline history, and the -trace flag live in loxtool
// instead; here tracing is switched on only by the LOXVM_TRACE environment
// variable.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"loxvm/vm"
)

const (
	exitOK           = 0
	exitCompileError = 65
	exitRuntimeError = 70
	exitIOFailure    = 74
	exitUsageError   = 64
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	switch len(args) {
	case 0:
		return repl()
	case 1:
		return runFile(args[0])
	default:
		fmt.Fprintf(os.Stderr, "Usage: %s [path]\n", progName())
		return exitUsageError
	}
}

func progName() string {
	if len(os.Args) == 0 {
		return "lox"
	}
	return os.Args[0]
}

func repl() int {
	machine := newTracingVM()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		machine.Interpret(scanner.Text())
	}
	return exitOK
}

func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %q: %v\n", path, err)
		return exitIOFailure
	}

	machine := newTracingVM()
	switch machine.Interpret(string(source)) {
	case vm.InterpretCompileError:
		return exitCompileError
	case vm.InterpretRuntimeError:
		return exitRuntimeError
	default:
		return exitOK
	}
}

// newTracingVM wires VM.Trace to LOXVM_TRACE: set the environment variable
// to enable the per-instruction stack dump and disassembly on every
// interpret call this process makes.
func newTracingVM() *vm.VM {
	machine := vm.New()
	if os.Getenv("LOXVM_TRACE") != "" {
		logrus.SetLevel(logrus.TraceLevel)
		machine.Trace = true
	}
	return machine
}
