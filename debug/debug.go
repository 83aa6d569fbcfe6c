// Package debug implements the disassembler: a diagnostic text renderer
// over a Chunk, consumed only by debug traces. The compiler and VM call it
// for tracing, but neither depends on it for correctness.
package debug

import (
	"fmt"
	"strings"

	"loxvm/chunk"
)

// DisassembleChunk renders every instruction in c under a header naming it.
func DisassembleChunk(c *chunk.Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		var line string
		line, offset = DisassembleInstruction(c, offset)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// DisassembleInstruction renders the single instruction at offset and
// returns it along with the offset of the next instruction: offset+2 for
// OP_CONSTANT (opcode byte + one operand byte), offset+1 for every other,
// currently simple, instruction.
func DisassembleInstruction(c *chunk.Chunk, offset int) (string, int) {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d ", offset)

	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		b.WriteString("   | ")
	} else {
		fmt.Fprintf(&b, "%4d ", c.Lines[offset])
	}

	op := chunk.OpCode(c.Code[offset])
	switch op {
	case chunk.OpConstant:
		return b.String() + constantInstruction(op, c, offset), offset + 2
	default:
		b.WriteString(op.String())
		return b.String(), offset + 1
	}
}

func constantInstruction(op chunk.OpCode, c *chunk.Chunk, offset int) string {
	index := c.Code[offset+1]
	var value string
	if int(index) < len(c.Constants) {
		value = c.Constants[index].String()
	} else {
		value = "<out of range>"
	}
	return fmt.Sprintf("%-16s %4d '%s'", op.String(), index, value)
}
