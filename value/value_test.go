package value

import (
	"math"
	"testing"
)

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		name    string
		v       Value
		isNil   bool
		isBool  bool
		isNum   bool
	}{
		{"nil", Nil, true, false, false},
		{"bool", Bool(true), false, true, false},
		{"number", Number(1), false, false, true},
	}
	for _, tt := range tests {
		if got := tt.v.IsNil(); got != tt.isNil {
			t.Errorf("%s: IsNil() = %v, want %v", tt.name, got, tt.isNil)
		}
		if got := tt.v.IsBool(); got != tt.isBool {
			t.Errorf("%s: IsBool() = %v, want %v", tt.name, got, tt.isBool)
		}
		if got := tt.v.IsNumber(); got != tt.isNum {
			t.Errorf("%s: IsNumber() = %v, want %v", tt.name, got, tt.isNum)
		}
	}
}

func TestIsFalsy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"nil is falsy", Nil, true},
		{"false is falsy", Bool(false), true},
		{"true is truthy", Bool(true), false},
		{"zero is truthy", Number(0), false},
		{"negative is truthy", Number(-1), false},
	}
	for _, tt := range tests {
		if got := IsFalsy(tt.v); got != tt.want {
			t.Errorf("%s: IsFalsy() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nil equals nil", Nil, Nil, true},
		{"different kinds never equal", Nil, Bool(false), false},
		{"same bool", Bool(true), Bool(true), true},
		{"different bool", Bool(true), Bool(false), false},
		{"same number", Number(1), Number(1), true},
		{"different number", Number(1), Number(2), false},
		{"NaN is never equal to itself", Number(math.NaN()), Number(math.NaN()), false},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Equal() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Nil, "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Number(5), "5"},
		{Number(5.5), "5.5"},
		{Number(0), "0"},
		{Number(-3), "-3"},
		{Number(math.Inf(1)), "inf"},
		{Number(math.Inf(-1)), "-inf"},
		{Number(math.NaN()), "nan"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}
