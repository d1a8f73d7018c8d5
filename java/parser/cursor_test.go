package parser

import (
	"testing"
)

func TestTokenCursor(t *testing.T) {
	// a(0) .(1) b(2) ' '(3) ((4) c(5) )(6)
	c := NewTokenCursor(Lex([]byte("a.b (c)"), ""))

	if tok := c.TokenAt(2); tok.Literal != "b" {
		t.Errorf("TokenAt(2) = %q, want b", tok.Literal)
	}
	if tok, ok := c.PreviousNonTrivia(4); !ok || tok.Literal != "b" {
		t.Errorf("PreviousNonTrivia(4) = %q, want b", tok.Literal)
	}
	if tok := c.NextNonTrivia(3); tok.Literal != "(" {
		t.Errorf("NextNonTrivia(3) = %q, want (", tok.Literal)
	}
	if tok, ok := c.TokenBefore(3); !ok || tok.Literal != "b" {
		t.Errorf("TokenBefore(3) = %q, want b", tok.Literal)
	}
	if _, ok := c.TokenBefore(4); ok {
		t.Errorf("only whitespace ends at 4")
	}
	if tok, ok := c.PreviousSignificant(4); !ok || tok.Literal != "." {
		t.Errorf("PreviousSignificant(4) = %q, want .", tok.Literal)
	}
	if tok := c.NextNonTrivia(7); tok.Kind != TokenEOF {
		t.Errorf("NextNonTrivia at end = %v, want EOF", tok.Kind)
	}
	if _, ok := c.PreviousNonTrivia(0); ok {
		t.Errorf("nothing precedes offset 0")
	}
	if got := c.TokensIn(0, 4); len(got) != 3 {
		t.Errorf("TokensIn(0, 4) returned %d tokens, want 3", len(got))
	}
}

func TestTokenCursorStepping(t *testing.T) {
	c := NewTokenCursor(Lex([]byte("x y"), ""))
	c.Move(0)
	var literals []string
	for {
		literals = append(literals, c.Token().Literal)
		if !c.Next() {
			break
		}
	}
	if len(literals) != 4 || literals[2] != "y" {
		t.Errorf("got %q", literals)
	}
	if c.Token().Kind != TokenEOF || c.Next() {
		t.Errorf("cursor should stop at EOF")
	}
	if !c.Previous() || c.Token().Literal != "y" {
		t.Errorf("Previous should step back to y")
	}
}
