package token

import (
	"strings"
	"testing"
)

func TestKindStringNamesEveryDefinedKind(t *testing.T) {
	for k := Kind(0); k < NumKinds; k++ {
		if got := k.String(); got == "" || strings.HasPrefix(got, "Kind(") {
			t.Errorf("Kind(%d).String() is empty, want a label", int(k))
		}
	}
}

func TestKindStringOutOfRange(t *testing.T) {
	want := "Kind(-1)"
	if got := Kind(-1).String(); got != want {
		t.Errorf("Kind(-1).String() = %q, want %q", got, want)
	}
}

func TestKeywordsMapToTheirKind(t *testing.T) {
	tests := []struct {
		text string
		want Kind
	}{
		{"and", And},
		{"class", Class},
		{"else", Else},
		{"false", False},
		{"for", For},
		{"fun", Fun},
		{"if", If},
		{"nil", Nil},
		{"or", Or},
		{"print", Print},
		{"return", Return},
		{"super", Super},
		{"this", This},
		{"true", True},
		{"var", Var},
		{"while", While},
	}
	for _, tt := range tests {
		got, ok := Keywords[tt.text]
		if !ok {
			t.Errorf("Keywords[%q] missing", tt.text)
			continue
		}
		if got != tt.want {
			t.Errorf("Keywords[%q] = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestKeywordsDoesNotClaimPlainIdentifiers(t *testing.T) {
	if _, ok := Keywords["foobar"]; ok {
		t.Errorf("Keywords unexpectedly matched a non-keyword identifier")
	}
}

func TestTokenStringIncludesPositionAndLine(t *testing.T) {
	tok := Token{Kind: Number, Start: 3, Length: 2, Line: 7}
	want := "Token{NUMBER @3:2 line 7}"
	if got := tok.String(); got != want {
		t.Fatalf("Token.String() = %q, want %q", got, want)
	}
}
