package parser

import (
	"testing"
)

func significantKinds(src string) []TokenKind {
	var kinds []TokenKind
	for _, tok := range Lex([]byte(src), "test.java") {
		if !tok.IsTrivia() {
			kinds = append(kinds, tok.Kind)
		}
	}
	return kinds
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"public class Main {}", []TokenKind{TokenPublic, TokenClass, TokenIdent, TokenLBrace, TokenRBrace, TokenEOF}},
		{"3.14 1. .5 0x1F 0b101L 1e10 2f", []TokenKind{TokenFloatLiteral, TokenFloatLiteral, TokenFloatLiteral, TokenIntLiteral, TokenIntLiteral, TokenFloatLiteral, TokenFloatLiteral, TokenEOF}},
		{"'a' '\\n'", []TokenKind{TokenCharLiteral, TokenCharLiteral, TokenEOF}},
		{"// comment\nclass", []TokenKind{TokenClass, TokenEOF}},
		{"/* block */ class", []TokenKind{TokenClass, TokenEOF}},
		{"== != < <= > >=", []TokenKind{TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE, TokenEOF}},
		{"<< >> >>> >>>=", []TokenKind{TokenShl, TokenShr, TokenUShr, TokenUShrAssign, TokenEOF}},
		{"-> :: ... @", []TokenKind{TokenArrow, TokenColonColon, TokenEllipsis, TokenAt, TokenEOF}},
		{"non-sealed", []TokenKind{TokenNonSealed, TokenEOF}},
		{"non-sealedX", []TokenKind{TokenIdent, TokenMinus, TokenIdent, TokenEOF}},
		{`"Hello \{name}"`, []TokenKind{TokenStringTemplate, TokenEOF}},
		{`"Hello \{m("}")}"`, []TokenKind{TokenStringTemplate, TokenEOF}},
		{`"Hello world"`, []TokenKind{TokenStringLiteral, TokenEOF}},
		{"\"\"\"\nHello \\{name}\"\"\"", []TokenKind{TokenTextBlockTemplate, TokenEOF}},
		{"\"\"\"\nHello world\"\"\"", []TokenKind{TokenTextBlock, TokenEOF}},
		{"#", []TokenKind{TokenError, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := significantKinds(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerCoversInput(t *testing.T) {
	src := "class A {\n  int x = 1; // one\n  /* two */ String s = \"a\";\n}\n"
	tokens := Lex([]byte(src), "")
	offset := 0
	for _, tok := range tokens {
		if tok.Offset() != offset {
			t.Fatalf("gap before %q at %d, want %d", tok.Literal, tok.Offset(), offset)
		}
		if tok.Literal != src[tok.Offset():tok.End()] {
			t.Errorf("literal %q does not match source %q", tok.Literal, src[tok.Offset():tok.End()])
		}
		offset = tok.End()
	}
	if offset != len(src) {
		t.Errorf("tokens end at %d, want %d", offset, len(src))
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := Lex([]byte("a\n  bc"), "f.java")
	var bc Token
	for _, tok := range tokens {
		if tok.Literal == "bc" {
			bc = tok
		}
	}
	if bc.Span.Start.Line != 2 || bc.Span.Start.Column != 3 || bc.Span.Start.Offset != 4 {
		t.Errorf("got %+v, want line 2 column 3 offset 4", bc.Span.Start)
	}
	if bc.Span.Start.File != "f.java" {
		t.Errorf("got file %q", bc.Span.Start.File)
	}
}

func TestLexerUnterminated(t *testing.T) {
	tests := []struct {
		input    string
		kind     TokenKind
		openHole bool
	}{
		{`"abc`, TokenStringLiteral, false},
		{"\"abc\nx", TokenStringLiteral, false},
		{`'a`, TokenCharLiteral, false},
		{`"Hello \{na`, TokenStringTemplate, true},
		{`"Hello \{na} x`, TokenStringTemplate, false},
		{`"""abc`, TokenTextBlock, false},
		{"/* abc", TokenComment, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := Lex([]byte(tt.input), "")[0]
			if tok.Kind != tt.kind {
				t.Errorf("got kind %v, want %v", tok.Kind, tt.kind)
			}
			if !tok.Unterminated {
				t.Errorf("token %q should be unterminated", tok.Literal)
			}
			if tok.OpenHole != tt.openHole {
				t.Errorf("OpenHole = %v, want %v", tok.OpenHole, tt.openHole)
			}
		})
	}
}
