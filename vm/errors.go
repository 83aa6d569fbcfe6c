package vm

import "fmt"

// RuntimeError is the Go error value describing one failed run() tick: a
// type-mismatched operand, a malformed chunk underflowing the stack, an
// unknown opcode, or execution running off the end of the chunk (division
// by zero is never one of them; see run()). The wire-format diagnostic
// actually printed to ErrOut is produced by runtimeError and ends with a
// "[line L] in script" trailer; this type exists so callers embedding the
// VM can inspect a failure structurally instead of scraping stderr.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: [line %d] %s", e.Line, e.Message)
}
