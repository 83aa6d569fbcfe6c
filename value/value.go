// Package value defines the tagged runtime value representation shared by
// the compiler's constant pool and the VM's operand stack.
package value

import (
	"math"
	"strconv"
)

// Kind tags the payload a Value carries. Runtime type checks must always
// be driven by Kind, never by reinterpreting the payload.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Value is a small, by-value-copyable tagged union. The boolean and number
// fields are both present regardless of Kind; callers must consult Kind
// before reading either, the unused field is simply zero and unobservable.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
}

// Nil is the singular nil value.
var Nil = Value{kind: KindNil}

// Bool constructs a Bool-tagged Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Number constructs a Number-tagged Value.
func Number(n float64) Value {
	return Value{kind: KindNumber, number: n}
}

// Kind reports the tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether v is the Nil value.
func (v Value) IsNil() bool { return v.kind == KindNil }

// IsBool reports whether v carries a Bool payload.
func (v Value) IsBool() bool { return v.kind == KindBool }

// IsNumber reports whether v carries a Number payload.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// AsBool is an unchecked projection; the caller must have confirmed
// IsBool first.
func (v Value) AsBool() bool { return v.boolean }

// AsNumber is an unchecked projection; the caller must have confirmed
// IsNumber first.
func (v Value) AsNumber() float64 { return v.number }

// IsFalsy reports whether v is considered false in a boolean context: Nil
// or Bool(false). Everything else, including the number 0, is truthy.
func IsFalsy(v Value) bool {
	return v.kind == KindNil || (v.kind == KindBool && !v.boolean)
}

// Equal is structural equality on tag and payload. Nil equals only Nil.
// Numeric equality follows IEEE-754 (NaN != NaN).
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.boolean == b.boolean
	case KindNumber:
		return a.number == b.number
	default:
		return false
	}
}

// String renders v the way the VM prints a RETURN result: "nil", "true"/
// "false", or the number's default double formatting with no trailing
// ".0" for integral values, and "inf"/"-inf"/"nan" for the IEEE-754
// special values arithmetic can legitimately produce (e.g. 1/0).
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.number)
	default:
		return "<invalid value>"
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "nan"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
}
