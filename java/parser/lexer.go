package parser

import (
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
}

// Lex returns every token of src, trivia included, terminated by TokenEOF.
func Lex(src []byte, file string) []Token {
	l := NewLexer(src, file)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

// lexRange lexes src[start.Offset:end] keeping positions relative to src.
// Trivia are dropped.
func lexRange(src []byte, start Position, end int) []Token {
	l := &Lexer{input: src[:end], file: start.File, pos: start.Offset, line: start.Line, column: start.Column}
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.IsTrivia() {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

// advancePosition returns the position reached after text, starting at pos.
func advancePosition(pos Position, text string) Position {
	for _, r := range text {
		pos.Offset += utf8.RuneLen(r)
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	return l.peekN(0)
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() {
	if l.atEOF() {
		return
	}
	r, size := utf8.DecodeRune(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func (l *Lexer) NextToken() Token {
	start := l.Position()
	if l.atEOF() {
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}
	}

	ch := l.peek()
	switch {
	case ch == '/' && l.peekN(1) == '/':
		for !l.atEOF() && l.peek() != '\n' {
			l.advance()
		}
		return l.token(TokenLineComment, start)
	case ch == '/' && l.peekN(1) == '*':
		return l.scanBlockComment(start)
	case isSpace(ch):
		for !l.atEOF() && isSpace(l.peek()) {
			l.advance()
		}
		return l.token(TokenWhitespace, start)
	case isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))):
		return l.scanNumber(start)
	case ch == '\'':
		return l.scanCharLiteral(start)
	case ch == '"':
		if l.peekN(1) == '"' && l.peekN(2) == '"' {
			return l.scanTextBlock(start)
		}
		return l.scanString(start)
	}

	if r, _ := utf8.DecodeRune(l.input[l.pos:]); isJavaLetter(r) {
		return l.scanIdentOrKeyword(start)
	}
	return l.scanOperator(start)
}

func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	for !l.atEOF() {
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			return l.token(TokenComment, start)
		}
		l.advance()
	}
	tok := l.token(TokenComment, start)
	tok.Unterminated = true
	return tok
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for !l.atEOF() {
		r, _ := utf8.DecodeRune(l.input[l.pos:])
		if !isJavaLetterOrDigit(r) {
			break
		}
		l.advance()
	}
	tok := l.token(TokenIdent, start)
	if tok.Literal == "non" && string(l.input[l.pos:min(l.pos+7, len(l.input))]) == "-sealed" {
		if after := l.pos + 7; after >= len(l.input) || !isJavaLetterOrDigit(rune(l.input[after])) {
			l.advanceN(7)
			tok = l.token(TokenNonSealed, start)
			return tok
		}
	}
	tok.Kind = LookupKeyword(tok.Literal)
	return tok
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		if l.peek() == 'l' || l.peek() == 'L' {
			l.advance()
		}
		return l.token(TokenIntLiteral, start)
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advanceN(2)
		for l.peek() == '0' || l.peek() == '1' || l.peek() == '_' {
			l.advance()
		}
		if l.peek() == 'l' || l.peek() == 'L' {
			l.advance()
		}
		return l.token(TokenIntLiteral, start)
	}

	kind := TokenIntLiteral
	l.scanDigits()
	if l.peek() == '.' && l.peekN(1) != '.' {
		kind = TokenFloatLiteral
		l.advance()
		l.scanDigits()
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		kind = TokenFloatLiteral
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		l.scanDigits()
	}
	switch l.peek() {
	case 'f', 'F', 'd', 'D':
		kind = TokenFloatLiteral
		l.advance()
	case 'l', 'L':
		if kind == TokenIntLiteral {
			l.advance()
		}
	}
	return l.token(kind, start)
}

func (l *Lexer) scanDigits() {
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
}

func (l *Lexer) scanCharLiteral(start Position) Token {
	l.advance()
	for !l.atEOF() {
		switch l.peek() {
		case '\\':
			l.advanceN(2)
			continue
		case '\'':
			l.advance()
			return l.token(TokenCharLiteral, start)
		case '\n':
			tok := l.token(TokenCharLiteral, start)
			tok.Unterminated = true
			return tok
		}
		l.advance()
	}
	tok := l.token(TokenCharLiteral, start)
	tok.Unterminated = true
	return tok
}

// scanString scans a string literal or a string template. Inside an
// embedded \{ ... } hole braces are balanced and nested strings skipped.
func (l *Lexer) scanString(start Position) Token {
	l.advance()
	template := false
	depth := 0
	for !l.atEOF() {
		ch := l.peek()
		if ch == '\n' {
			break
		}
		if depth > 0 {
			switch ch {
			case '{':
				depth++
			case '}':
				depth--
			case '"':
				l.skipNestedString()
				continue
			}
			l.advance()
			continue
		}
		switch ch {
		case '\\':
			if l.peekN(1) == '{' {
				template = true
				depth = 1
			}
			l.advanceN(2)
			continue
		case '"':
			l.advance()
			tok := l.token(TokenStringLiteral, start)
			if template {
				tok.Kind = TokenStringTemplate
			}
			return tok
		}
		l.advance()
	}
	tok := l.token(TokenStringLiteral, start)
	if template {
		tok.Kind = TokenStringTemplate
	}
	tok.Unterminated = true
	tok.OpenHole = depth > 0
	return tok
}

func (l *Lexer) skipNestedString() {
	l.advance()
	for !l.atEOF() && l.peek() != '\n' {
		switch l.peek() {
		case '\\':
			l.advanceN(2)
			continue
		case '"':
			l.advance()
			return
		}
		l.advance()
	}
}

func (l *Lexer) scanTextBlock(start Position) Token {
	l.advanceN(3)
	template := false
	depth := 0
	for !l.atEOF() {
		if depth == 0 && l.peek() == '"' && l.peekN(1) == '"' && l.peekN(2) == '"' {
			l.advanceN(3)
			tok := l.token(TokenTextBlock, start)
			if template {
				tok.Kind = TokenTextBlockTemplate
			}
			return tok
		}
		switch l.peek() {
		case '\\':
			if depth == 0 && l.peekN(1) == '{' {
				template = true
				depth = 1
			}
			l.advanceN(2)
			continue
		case '{':
			if depth > 0 {
				depth++
			}
		case '}':
			if depth > 0 {
				depth--
			}
		}
		l.advance()
	}
	tok := l.token(TokenTextBlock, start)
	if template {
		tok.Kind = TokenTextBlockTemplate
	}
	tok.Unterminated = true
	tok.OpenHole = depth > 0
	return tok
}

var operators = []struct {
	text string
	kind TokenKind
}{
	{">>>=", TokenUShrAssign},
	{"...", TokenEllipsis},
	{">>>", TokenUShr},
	{"<<=", TokenShlAssign},
	{">>=", TokenShrAssign},
	{"::", TokenColonColon},
	{"->", TokenArrow},
	{"==", TokenEQ},
	{"!=", TokenNE},
	{"<=", TokenLE},
	{">=", TokenGE},
	{"&&", TokenAnd},
	{"||", TokenOr},
	{"<<", TokenShl},
	{">>", TokenShr},
	{"++", TokenIncrement},
	{"--", TokenDecrement},
	{"+=", TokenPlusAssign},
	{"-=", TokenMinusAssign},
	{"*=", TokenStarAssign},
	{"/=", TokenSlashAssign},
	{"%=", TokenPercentAssign},
	{"&=", TokenAndAssign},
	{"|=", TokenOrAssign},
	{"^=", TokenXorAssign},
	{"(", TokenLParen},
	{")", TokenRParen},
	{"{", TokenLBrace},
	{"}", TokenRBrace},
	{"[", TokenLBracket},
	{"]", TokenRBracket},
	{";", TokenSemicolon},
	{",", TokenComma},
	{".", TokenDot},
	{"@", TokenAt},
	{"=", TokenAssign},
	{"<", TokenLT},
	{">", TokenGT},
	{"!", TokenNot},
	{"&", TokenBitAnd},
	{"|", TokenBitOr},
	{"^", TokenBitXor},
	{"~", TokenBitNot},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"*", TokenStar},
	{"/", TokenSlash},
	{"%", TokenPercent},
	{"?", TokenQuestion},
	{":", TokenColon},
}

func (l *Lexer) scanOperator(start Position) Token {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if len(rest) >= len(op.text) && string(rest[:len(op.text)]) == op.text {
			l.advanceN(len(op.text))
			return l.token(op.kind, start)
		}
	}
	l.advance()
	return l.token(TokenError, start)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isJavaLetter(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isJavaLetterOrDigit(r rune) bool {
	return isJavaLetter(r) || unicode.IsDigit(r)
}

// IsIdentifierPart reports whether r may appear inside a Java identifier.
func IsIdentifierPart(r rune) bool {
	return isJavaLetterOrDigit(r)
}
