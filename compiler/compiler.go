// Package compiler implements the single-pass parser and bytecode emitter:
// Pratt expression parsing where each parse-table dispatch doubles as an
// emission step, with no intermediate AST.
package compiler

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"loxvm/chunk"
	"loxvm/debug"
	"loxvm/scanner"
	"loxvm/token"
	"loxvm/value"
)

// Precedence orders binding strength from loosest to tightest. Every level
// used by parsePrecedence compares as "this precedence or higher binds into
// the left operand already on hand", so the ordering itself is the grammar.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

// ParseFn is a parse-table handler. It both consumes tokens and emits
// bytecode into the Compiler's current chunk; there is no separate tree to
// build first.
type ParseFn func(c *Compiler)

// ParseRule binds a token kind to the handler invoked when it begins an
// expression (Prefix), the handler invoked when it follows one (Infix), and
// the precedence of that infix use. A rule with a nil Prefix cannot start an
// expression; a nil Infix cannot continue one.
type ParseRule struct {
	Prefix     ParseFn
	Infix      ParseFn
	Precedence Precedence
}

// rules is indexed densely by token.Kind instead of a map, matching the
// scanner's and token package's choice to keep Kind a small int: the hot
// path of parsePrecedence never pays for a hash lookup. Kinds not assigned
// below keep the zero ParseRule{nil, nil, PrecNone}, which doubles as "not
// wired into the expression grammar" -- every keyword reserved for
// statement forms this core does not evaluate lands here.
var rules [token.NumKinds]ParseRule

func init() {
	rules[token.LeftParen] = ParseRule{Prefix: (*Compiler).grouping}
	rules[token.Minus] = ParseRule{Prefix: (*Compiler).unary, Infix: (*Compiler).binary, Precedence: PrecTerm}
	rules[token.Plus] = ParseRule{Infix: (*Compiler).binary, Precedence: PrecTerm}
	rules[token.Slash] = ParseRule{Infix: (*Compiler).binary, Precedence: PrecFactor}
	rules[token.Star] = ParseRule{Infix: (*Compiler).binary, Precedence: PrecFactor}
	rules[token.Bang] = ParseRule{Prefix: (*Compiler).unary}
	rules[token.BangEqual] = ParseRule{Infix: (*Compiler).binary, Precedence: PrecEquality}
	rules[token.EqualEqual] = ParseRule{Infix: (*Compiler).binary, Precedence: PrecEquality}
	rules[token.Greater] = ParseRule{Infix: (*Compiler).binary, Precedence: PrecComparison}
	rules[token.GreaterEqual] = ParseRule{Infix: (*Compiler).binary, Precedence: PrecComparison}
	rules[token.Less] = ParseRule{Infix: (*Compiler).binary, Precedence: PrecComparison}
	rules[token.LessEqual] = ParseRule{Infix: (*Compiler).binary, Precedence: PrecComparison}
	rules[token.Number] = ParseRule{Prefix: (*Compiler).number}
	rules[token.False] = ParseRule{Prefix: (*Compiler).literal}
	rules[token.True] = ParseRule{Prefix: (*Compiler).literal}
	rules[token.Nil] = ParseRule{Prefix: (*Compiler).literal}
}

func getRule(kind token.Kind) *ParseRule { return &rules[kind] }

// Compiler drives one source string through the scanner and emits the
// resulting bytecode into a chunk.Chunk. A Compiler value may be reused
// across calls to Compile; each call resets its diagnostic state.
type Compiler struct {
	scanner *scanner.Scanner
	chunk   *chunk.Chunk

	previous token.Token
	current  token.Token

	hadError  bool
	panicMode bool
	errs      *multierror.Error

	out io.Writer
}

// New returns a Compiler that writes its human-readable diagnostics to out.
// A nil out defaults to os.Stderr.
func New(out io.Writer) *Compiler {
	if out == nil {
		out = os.Stderr
	}
	return &Compiler{out: out}
}

// Compile parses source as a single expression and emits it into ch,
// reporting true iff compilation succeeded with no diagnostics. Failed
// compiles still leave whatever bytecode was emitted before the error in
// ch; callers must check the return value before running it.
func (c *Compiler) Compile(source string, ch *chunk.Chunk) bool {
	c.scanner = scanner.New(source)
	c.chunk = ch
	c.hadError = false
	c.panicMode = false
	c.errs = nil

	c.advance()
	c.expression()
	c.consume(token.EOF, "Expect end of expression.")
	c.emitReturn()

	if !c.hadError && logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.Traceln(debug.DisassembleChunk(ch, "code"))
	}
	return !c.hadError
}

// Err returns the aggregated diagnostics from the most recent Compile call,
// or nil if it succeeded. Compile's bool return is the spec-mandated
// contract; Err exposes the same failures as a structured error for callers
// that want to inspect or log them individually.
func (c *Compiler) Err() error {
	return c.errs.ErrorOrNil()
}

// Compile is the package-level convenience form of Compiler.Compile for
// one-shot callers that don't need to reuse parser state across sources.
func Compile(source string, ch *chunk.Chunk, out io.Writer) bool {
	return New(out).Compile(source, ch)
}

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.ScanToken()
		if c.current.Kind != token.Error {
			break
		}
		c.errorAtCurrent(c.current.Message)
	}
}

func (c *Compiler) consume(kind token.Kind, message string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

// parsePrecedence consumes a prefix-position token, invokes its handler,
// then keeps folding in infix operators whose precedence is at least prec:
// the core of the Pratt climb. A token with no prefix rule cannot start an
// expression.
func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefix := getRule(c.previous.Kind).Prefix
	if prefix == nil {
		c.errorAtPrevious("Expect expression.")
		return
	}
	prefix(c)

	for prec <= getRule(c.current.Kind).Precedence {
		c.advance()
		infix := getRule(c.previous.Kind).Infix
		infix(c)
	}
}

func (c *Compiler) grouping() {
	c.expression()
	c.consume(token.RightParen, "Expect ')' after expression.")
}

func (c *Compiler) unary() {
	opKind := c.previous.Kind
	line := c.previous.Line

	// The unary operand binds at PrecUnary so that "-a.b" and "!a()" would
	// still parse the property/call tighter than the negation, and so that
	// "-2 * 3" negates 2 before multiplying instead of negating the product.
	c.parsePrecedence(PrecUnary)

	switch opKind {
	case token.Minus:
		c.emitOp(chunk.OpNegate, line)
	case token.Bang:
		c.emitOp(chunk.OpNot, line)
	}
}

func (c *Compiler) binary() {
	opKind := c.previous.Kind
	line := c.previous.Line
	rule := getRule(opKind)

	// Parse the right operand one precedence level tighter than this
	// operator so that same-precedence chains (1 - 2 - 3) fold left.
	c.parsePrecedence(rule.Precedence + 1)

	switch opKind {
	case token.Plus:
		c.emitOp(chunk.OpAdd, line)
	case token.Minus:
		c.emitOp(chunk.OpSubtract, line)
	case token.Star:
		c.emitOp(chunk.OpMultiply, line)
	case token.Slash:
		c.emitOp(chunk.OpDivide, line)
	case token.EqualEqual:
		c.emitOp(chunk.OpEqual, line)
	case token.BangEqual:
		c.emitOp(chunk.OpEqual, line)
		c.emitOp(chunk.OpNot, line)
	case token.Greater:
		c.emitOp(chunk.OpGreater, line)
	case token.GreaterEqual:
		c.emitOp(chunk.OpLess, line)
		c.emitOp(chunk.OpNot, line)
	case token.Less:
		c.emitOp(chunk.OpLess, line)
	case token.LessEqual:
		c.emitOp(chunk.OpGreater, line)
		c.emitOp(chunk.OpNot, line)
	}
}

func (c *Compiler) number() {
	lexeme := c.scanner.Lexeme(c.previous)
	n, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		c.errorAtPrevious("Invalid number literal.")
		return
	}
	c.emitConstant(value.Number(n))
}

func (c *Compiler) literal() {
	switch c.previous.Kind {
	case token.False:
		c.emitOp(chunk.OpFalse, c.previous.Line)
	case token.True:
		c.emitOp(chunk.OpTrue, c.previous.Line)
	case token.Nil:
		c.emitOp(chunk.OpNil, c.previous.Line)
	}
}

func (c *Compiler) emitOp(op chunk.OpCode, line int) {
	c.chunk.WriteOp(op, line)
}

func (c *Compiler) emitByte(b byte, line int) {
	c.chunk.Write(b, line)
}

func (c *Compiler) emitReturn() {
	c.emitOp(chunk.OpReturn, c.previous.Line)
}

// emitConstant adds v to the chunk's constant pool and emits the
// two-byte OP_CONSTANT instruction addressing it. A pool already at
// chunk.MaxConstants reports an error and falls back to index 0 so that
// emission can continue without corrupting the instruction stream.
func (c *Compiler) emitConstant(v value.Value) {
	idx := c.chunk.AddConstant(v)
	line := c.previous.Line
	if idx >= chunk.MaxConstants {
		c.errorAtPrevious("Too many constants in one chunk.")
		idx = 0
	}
	c.emitOp(chunk.OpConstant, line)
	c.emitByte(byte(idx), line)
}

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

func (c *Compiler) errorAtPrevious(message string) {
	c.errorAt(c.previous, message)
}

// errorAt reports one diagnostic at tok, formatted "[line L] Error at X:
// MESSAGE\n" where X is "end" for an EOF token, omitted entirely for a
// scanner Error token (whose message already stands alone), and the
// token's own lexeme in single quotes otherwise. Once panicMode is set,
// further diagnostics are swallowed for the rest of this Compile call
// (the expression-only parser has no resynchronization point), so a
// single misparse doesn't cascade into a wall of follow-on noise.
func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	var at string
	switch tok.Kind {
	case token.EOF:
		at = " at end"
	case token.Error:
		at = ""
	default:
		at = fmt.Sprintf(" at '%s'", c.scanner.Lexeme(tok))
	}

	reason := fmt.Sprintf("Error%s: %s", at, message)
	fmt.Fprintf(c.out, "[line %d] %s\n", tok.Line, reason)
	c.errs = multierror.Append(c.errs, &CompileError{Line: tok.Line, Reason: reason})

	logrus.WithField("line", tok.Line).Debug(message)
}
