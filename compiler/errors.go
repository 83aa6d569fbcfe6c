package compiler

import "fmt"

// CompileError is one diagnostic produced while compiling a single source
// string. Compile keeps parsing after reporting one instead of
// short-circuiting, but panic mode stays set for the rest of that Compile
// call, so only the first diagnostic is reported; every non-squelched
// CompileError is aggregated into the *multierror.Error returned by
// Compiler.Err.
type CompileError struct {
	Line   int
	Reason string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, e.Reason)
}
