package chunk

import (
	"testing"

	"loxvm/value"
)

func TestWriteAppendsCodeAndLinesInLockstep(t *testing.T) {
	c := New()
	c.WriteOp(OpNil, 1)
	c.Write(0xFF, 1)
	c.WriteOp(OpReturn, 2)

	if len(c.Code) != len(c.Lines) {
		t.Fatalf("len(Code) = %d, len(Lines) = %d, want equal", len(c.Code), len(c.Lines))
	}
	wantCode := []byte{byte(OpNil), 0xFF, byte(OpReturn)}
	for i, b := range wantCode {
		if c.Code[i] != b {
			t.Errorf("Code[%d] = %d, want %d", i, c.Code[i], b)
		}
	}
	wantLines := []int{1, 1, 2}
	for i, l := range wantLines {
		if c.Lines[i] != l {
			t.Errorf("Lines[%d] = %d, want %d", i, c.Lines[i], l)
		}
	}
}

func TestAddConstantReturnsSequentialIndicesAndNeverDeduplicates(t *testing.T) {
	c := New()
	i0 := c.AddConstant(value.Number(5))
	i1 := c.AddConstant(value.Number(5))

	if i0 != 0 || i1 != 1 {
		t.Fatalf("indices = %d, %d, want 0, 1 (no dedup)", i0, i1)
	}
	if len(c.Constants) != 2 {
		t.Fatalf("len(Constants) = %d, want 2", len(c.Constants))
	}
}

func TestOpCodeStringNamesEveryDefinedOpcode(t *testing.T) {
	ops := []OpCode{
		OpConstant, OpNil, OpTrue, OpFalse, OpEqual, OpGreater, OpLess,
		OpAdd, OpSubtract, OpMultiply, OpDivide, OpNot, OpNegate, OpReturn,
	}
	seen := map[string]bool{}
	for _, op := range ops {
		name := op.String()
		if name == "" || name == "OP_UNKNOWN" {
			t.Errorf("%d.String() = %q, want a real opcode name", op, name)
		}
		if seen[name] {
			t.Errorf("opcode name %q reused by more than one OpCode", name)
		}
		seen[name] = true
	}
}

func TestOpCodeStringOutOfRange(t *testing.T) {
	if got := OpCode(255).String(); got != "OP_UNKNOWN" {
		t.Errorf("OpCode(255).String() = %q, want OP_UNKNOWN", got)
	}
}
