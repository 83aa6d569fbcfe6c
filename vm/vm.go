// Package vm implements the stack-based virtual machine that executes a
// compiled chunk: a fetch-decode-execute loop over a flat instruction
// stream, operating on a LIFO stack of tagged values.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"loxvm/chunk"
	"loxvm/compiler"
	"loxvm/debug"
	"loxvm/value"
)

// InterpretResult reports how one Interpret call ended.
type InterpretResult int

const (
	InterpretOk InterpretResult = iota
	InterpretCompileError
	InterpretRuntimeError
)

var resultNames = [...]string{
	InterpretOk:            "INTERPRET_OK",
	InterpretCompileError:  "INTERPRET_COMPILE_ERROR",
	InterpretRuntimeError:  "INTERPRET_RUNTIME_ERROR",
}

func (r InterpretResult) String() string {
	if int(r) < len(resultNames) {
		return resultNames[r]
	}
	return "INTERPRET_UNKNOWN"
}

// VM is the runtime environment a compiled Chunk executes in. A VM value
// is reusable across Interpret calls; each call replaces the chunk being
// executed and resets the operand stack.
type VM struct {
	chunk *chunk.Chunk
	ip    int
	stack Stack

	// Trace turns on a per-instruction stack dump and disassembly, logged
	// at trace level as each instruction executes.
	Trace bool

	// Out receives the textual result RETURN prints; ErrOut receives both
	// compile and runtime diagnostics. Both default to os.Stdout/os.Stderr.
	Out    io.Writer
	ErrOut io.Writer

	lastErr error
}

// New returns a VM ready to Interpret, writing to os.Stdout/os.Stderr.
func New() *VM {
	return &VM{Out: os.Stdout, ErrOut: os.Stderr}
}

// Err returns the structured failure from the most recent Interpret call
// that ended in InterpretRuntimeError, or nil otherwise.
func (vm *VM) Err() error {
	return vm.lastErr
}

// Interpret compiles source into a fresh chunk and, if compilation
// succeeds, runs it. A compile failure short-circuits: the chunk is never
// executed.
func (vm *VM) Interpret(source string) InterpretResult {
	if vm.Out == nil {
		vm.Out = os.Stdout
	}
	if vm.ErrOut == nil {
		vm.ErrOut = os.Stderr
	}
	vm.lastErr = nil

	ch := chunk.New()
	if !compiler.Compile(source, ch, vm.ErrOut) {
		return InterpretCompileError
	}

	vm.chunk = ch
	vm.ip = 0
	vm.stack.reset()
	return vm.run()
}

func (vm *VM) run() InterpretResult {
	for {
		if vm.ip >= len(vm.chunk.Code) {
			// A well-formed chunk always ends in OP_RETURN; falling off
			// the end is a programming error in whatever produced the
			// chunk, reported the same way any other runtime error is.
			vm.runtimeError("Reached end of bytecode without OP_RETURN.")
			return InterpretRuntimeError
		}

		if vm.Trace {
			vm.traceStep()
		}

		op := chunk.OpCode(vm.readByte())

		switch op {
		case chunk.OpConstant:
			vm.stack.push(vm.readConstant())

		case chunk.OpNil:
			vm.stack.push(value.Nil)
		case chunk.OpTrue:
			vm.stack.push(value.Bool(true))
		case chunk.OpFalse:
			vm.stack.push(value.Bool(false))

		case chunk.OpEqual:
			b, okB := vm.stack.pop()
			a, okA := vm.stack.pop()
			if !okA || !okB {
				vm.runtimeError("Stack underflow.")
				return InterpretRuntimeError
			}
			vm.stack.push(value.Bool(value.Equal(a, b)))

		case chunk.OpGreater:
			if !vm.binaryNumberOp(func(a, b float64) value.Value { return value.Bool(a > b) }) {
				return InterpretRuntimeError
			}
		case chunk.OpLess:
			if !vm.binaryNumberOp(func(a, b float64) value.Value { return value.Bool(a < b) }) {
				return InterpretRuntimeError
			}
		case chunk.OpAdd:
			if !vm.binaryNumberOp(func(a, b float64) value.Value { return value.Number(a + b) }) {
				return InterpretRuntimeError
			}
		case chunk.OpSubtract:
			if !vm.binaryNumberOp(func(a, b float64) value.Value { return value.Number(a - b) }) {
				return InterpretRuntimeError
			}
		case chunk.OpMultiply:
			if !vm.binaryNumberOp(func(a, b float64) value.Value { return value.Number(a * b) }) {
				return InterpretRuntimeError
			}
		case chunk.OpDivide:
			// Division by zero is left to IEEE-754 (inf/-inf/nan); it is
			// not itself a runtime error.
			if !vm.binaryNumberOp(func(a, b float64) value.Value { return value.Number(a / b) }) {
				return InterpretRuntimeError
			}

		case chunk.OpNot:
			v, ok := vm.stack.pop()
			if !ok {
				vm.runtimeError("Stack underflow.")
				return InterpretRuntimeError
			}
			vm.stack.push(value.Bool(value.IsFalsy(v)))

		case chunk.OpNegate:
			v, ok := vm.stack.peek(0)
			if !ok {
				vm.runtimeError("Stack underflow.")
				return InterpretRuntimeError
			}
			if !v.IsNumber() {
				vm.runtimeError("Operand must be a number.")
				return InterpretRuntimeError
			}
			vm.stack.pop()
			vm.stack.push(value.Number(-v.AsNumber()))

		case chunk.OpReturn:
			v, ok := vm.stack.pop()
			if !ok {
				vm.runtimeError("Stack underflow.")
				return InterpretRuntimeError
			}
			fmt.Fprintln(vm.Out, v.String())
			return InterpretOk

		default:
			vm.runtimeError("Unknown opcode %d.", op)
			return InterpretRuntimeError
		}
	}
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readConstant() value.Value {
	return vm.chunk.Constants[vm.readByte()]
}

// binaryNumberOp pops b then a, requires both to be Number, and pushes
// apply(a, b). It reports its own runtime error and returns false on
// underflow or a type mismatch, so callers can just propagate that false
// as InterpretRuntimeError.
func (vm *VM) binaryNumberOp(apply func(a, b float64) value.Value) bool {
	b, okB := vm.stack.pop()
	a, okA := vm.stack.pop()
	if !okA || !okB {
		vm.runtimeError("Stack underflow.")
		return false
	}
	if !a.IsNumber() || !b.IsNumber() {
		vm.runtimeError("Operands must be numbers.")
		return false
	}
	vm.stack.push(apply(a.AsNumber(), b.AsNumber()))
	return true
}

// runtimeError prints the formatted message followed by "[line L] in
// script", using the line of the instruction that just failed, then
// resets the stack. Both the message and the line-prefixed follow-up line
// go to ErrOut, matching the two-line shape a failed run produces.
func (vm *VM) runtimeError(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	line := vm.currentLine()

	fmt.Fprintln(vm.ErrOut, message)
	fmt.Fprintf(vm.ErrOut, "[line %d] in script\n", line)

	vm.lastErr = &RuntimeError{Line: line, Message: message}
	logrus.WithField("line", line).Debug(message)

	vm.stack.reset()
}

// currentLine resolves the source line of the instruction that was just
// read (vm.ip has already advanced past it by the time an error is
// reported). An out-of-range ip, which only happens when execution falls
// off the end of the chunk, falls back to the chunk's last known line.
func (vm *VM) currentLine() int {
	idx := vm.ip - 1
	switch {
	case len(vm.chunk.Lines) == 0:
		return 0
	case idx >= 0 && idx < len(vm.chunk.Lines):
		return vm.chunk.Lines[idx]
	default:
		return vm.chunk.Lines[len(vm.chunk.Lines)-1]
	}
}

func (vm *VM) traceStep() {
	var stackDump string
	for _, v := range vm.stack {
		stackDump += fmt.Sprintf("[ %s ]", v.String())
	}
	if stackDump == "" {
		stackDump = "[ ]"
	}
	logrus.Tracef("          %s", stackDump)

	line, _ := debug.DisassembleInstruction(vm.chunk, vm.ip)
	logrus.Traceln(line)
}
