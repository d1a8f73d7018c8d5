package parser

import "sort"

// TokenCursor walks a token sequence that covers a text without gaps,
// trivia included, as returned by Lex.
type TokenCursor struct {
	tokens []Token
	index  int
}

func NewTokenCursor(tokens []Token) *TokenCursor {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
		end := Position{Line: 1, Column: 1}
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].Span.End
		}
		tokens = append(tokens, Token{Kind: TokenEOF, Span: Span{Start: end, End: end}})
	}
	return &TokenCursor{tokens: tokens}
}

// Move positions the cursor on the token containing offset, where a token
// contains offset when start <= offset < end. Offsets at or past the end of
// the text select EOF.
func (c *TokenCursor) Move(offset int) {
	c.index = sort.Search(len(c.tokens), func(i int) bool {
		return c.tokens[i].End() > offset || c.tokens[i].Kind == TokenEOF
	})
	if c.index >= len(c.tokens) {
		c.index = len(c.tokens) - 1
	}
}

func (c *TokenCursor) Token() Token {
	return c.tokens[c.index]
}

func (c *TokenCursor) Index() int {
	return c.index
}

func (c *TokenCursor) Next() bool {
	if c.index+1 >= len(c.tokens) {
		return false
	}
	c.index++
	return true
}

func (c *TokenCursor) Previous() bool {
	if c.index == 0 {
		return false
	}
	c.index--
	return true
}

// TokenAt returns the token containing offset.
func (c *TokenCursor) TokenAt(offset int) Token {
	c.Move(offset)
	return c.Token()
}

// TokenBefore returns the token ending exactly at offset, if any. It is the
// token the user was typing when the caret sits right after it.
func (c *TokenCursor) TokenBefore(offset int) (Token, bool) {
	if offset <= 0 {
		return Token{}, false
	}
	tok := c.TokenAt(offset - 1)
	if tok.End() != offset || tok.Kind == TokenEOF || tok.IsTrivia() {
		return Token{}, false
	}
	return tok, true
}

// PreviousNonTrivia returns the last non-trivia token ending at or before
// offset.
func (c *TokenCursor) PreviousNonTrivia(offset int) (Token, bool) {
	if offset <= 0 {
		return Token{}, false
	}
	c.Move(offset - 1)
	for {
		tok := c.Token()
		if !tok.IsTrivia() && tok.Kind != TokenEOF && tok.End() <= offset {
			return tok, true
		}
		if !c.Previous() {
			return Token{}, false
		}
	}
}

// NextNonTrivia returns the first non-trivia token starting at or after
// offset. At the end of input it returns EOF.
func (c *TokenCursor) NextNonTrivia(offset int) Token {
	c.Move(offset)
	for {
		tok := c.Token()
		if tok.Offset() >= offset && !tok.IsTrivia() {
			return tok
		}
		if !c.Next() {
			return tok
		}
	}
}

// PreviousSignificant steps back from offset over trivia and identifier
// tokens and returns the first token that is neither.
func (c *TokenCursor) PreviousSignificant(offset int) (Token, bool) {
	for {
		tok, ok := c.PreviousNonTrivia(offset)
		if !ok {
			return Token{}, false
		}
		if tok.Kind != TokenIdent {
			return tok, true
		}
		offset = tok.Offset()
	}
}

// TokensIn returns the non-trivia tokens lying entirely in [start, end).
func (c *TokenCursor) TokensIn(start, end int) []Token {
	var out []Token
	c.Move(start)
	for {
		tok := c.Token()
		if tok.Kind == TokenEOF || tok.Offset() >= end {
			return out
		}
		if !tok.IsTrivia() && tok.Offset() >= start && tok.End() <= end {
			out = append(out, tok)
		}
		if !c.Next() {
			return out
		}
	}
}
