package debug

import (
	"strings"
	"testing"

	"loxvm/chunk"
	"loxvm/value"
)

func TestDisassembleChunkHeader(t *testing.T) {
	c := chunk.New()
	c.WriteOp(chunk.OpReturn, 1)
	out := DisassembleChunk(c, "code")
	if !strings.HasPrefix(out, "== code ==\n") {
		t.Fatalf("output = %q, want it to start with the chunk header", out)
	}
}

func TestDisassembleConstantInstructionShowsIndexAndValue(t *testing.T) {
	c := chunk.New()
	idx := c.AddConstant(value.Number(5))
	c.WriteOp(chunk.OpConstant, 1)
	c.Write(byte(idx), 1)
	c.WriteOp(chunk.OpReturn, 1)

	line, next := DisassembleInstruction(c, 0)
	if next != 2 {
		t.Errorf("next offset = %d, want 2 (opcode + one operand byte)", next)
	}
	if !strings.Contains(line, "OP_CONSTANT") || !strings.Contains(line, "5") {
		t.Errorf("line = %q, want it to name OP_CONSTANT and show the constant's value", line)
	}
}

func TestDisassembleSimpleInstructionAdvancesByOne(t *testing.T) {
	c := chunk.New()
	c.WriteOp(chunk.OpReturn, 1)
	_, next := DisassembleInstruction(c, 0)
	if next != 1 {
		t.Errorf("next offset = %d, want 1", next)
	}
}

func TestDisassembleCompressesRepeatedLineNumbers(t *testing.T) {
	c := chunk.New()
	c.WriteOp(chunk.OpNil, 3)
	c.WriteOp(chunk.OpReturn, 3)

	first, _ := DisassembleInstruction(c, 0)
	second, _ := DisassembleInstruction(c, 1)

	if !strings.Contains(first, "   3 ") {
		t.Errorf("first instruction = %q, want it to show line 3", first)
	}
	if !strings.Contains(second, "   | ") {
		t.Errorf("second instruction on the same line = %q, want the '   | ' compression marker", second)
	}
}

func TestDisassembleConstantOutOfRangeIndexDoesNotPanic(t *testing.T) {
	c := chunk.New()
	c.WriteOp(chunk.OpConstant, 1)
	c.Write(42, 1) // no constants were ever added

	line, _ := DisassembleInstruction(c, 0)
	if !strings.Contains(line, "<out of range>") {
		t.Errorf("line = %q, want it to flag the out-of-range index instead of panicking", line)
	}
}
