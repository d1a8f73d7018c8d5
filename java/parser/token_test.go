package parser

import (
	"testing"
)

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenEOF, "EOF"},
		{TokenIdent, "Identifier"},
		{TokenStringTemplate, "StringTemplate"},
		{TokenTrue, "true"},
		{TokenNonSealed, "non-sealed"},
		{TokenLParen, "("},
		{TokenUShrAssign, ">>>="},
		{TokenKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("TokenKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenKind
	}{
		{"class", TokenClass},
		{"instanceof", TokenInstanceof},
		{"true", TokenTrue},
		{"var", TokenIdent},
		{"record", TokenIdent},
		{"yield", TokenIdent},
		{"foo", TokenIdent},
	}

	for _, tt := range tests {
		if got := LookupKeyword(tt.ident); got != tt.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
		}
	}
}

func TestTokenPredicates(t *testing.T) {
	tokens := Lex([]byte(`record x true "s" // c`), "")
	if !tokens[0].Is("record") || tokens[0].Kind != TokenIdent {
		t.Errorf("record should be an identifier recognised by Is, got %v", tokens[0].Kind)
	}
	if !tokens[4].IsIdentifierLike() {
		t.Errorf("true should be identifier-like")
	}
	if !tokens[6].IsString() || tokens[6].IsTrivia() {
		t.Errorf("string token misclassified")
	}
	if !tokens[8].IsTrivia() {
		t.Errorf("comment should be trivia")
	}
	if !IsContextualKeyword("permits") || IsContextualKeyword("class") {
		t.Errorf("IsContextualKeyword misclassified")
	}
	if !IsKeywordText("non-sealed") || IsKeywordText("var") {
		t.Errorf("IsKeywordText misclassified")
	}
}
