package parser

import (
	"io"
)

type Option func(*Parser)

func WithFile(file string) Option {
	return func(p *Parser) {
		p.file = file
	}
}

// Parser is an error-tolerant recursive descent parser. It never gives up:
// missing tokens are recorded as errors and, where the tree shape needs a
// child, as zero-width KindError nodes.
type Parser struct {
	file   string
	src    []byte
	all    []Token
	tokens []Token
	pos    int

	root       *Node
	errors     []*Error
	incomplete bool

	// noLambda is set while parsing case labels, where "->" ends the label.
	noLambda bool
}

func newParser(src []byte, opts []Option) *Parser {
	p := &Parser{src: src}
	for _, opt := range opts {
		opt(p)
	}
	p.setTokens(Lex(src, p.file))
	return p
}

func (p *Parser) setTokens(all []Token) {
	p.all = all
	p.tokens = p.tokens[:0]
	for _, tok := range all {
		if !tok.IsTrivia() {
			p.tokens = append(p.tokens, tok)
		}
	}
}

// ParseCompilationUnit parses a complete source file.
func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	src, err := io.ReadAll(r)
	p := newParser(src, opts)
	if err != nil {
		p.errors = append(p.errors, &Error{Message: err.Error()})
	}
	p.root = p.parseCompilationUnit()
	return p
}

// ParseStatement parses a single block statement, as found in a method
// body. Finish returns nil when src holds no tokens.
func ParseStatement(src []byte, opts ...Option) *Parser {
	p := newParser(src, opts)
	if !p.atEOF() {
		p.root = p.parseBlockStatement()
	}
	return p
}

// ParseMember parses a single class body declaration.
func ParseMember(src []byte, opts ...Option) *Parser {
	p := newParser(src, opts)
	if !p.atEOF() {
		p.root = p.parseMember(KindClassDecl)
	}
	return p
}

func ParseExpression(src []byte, opts ...Option) *Parser {
	p := newParser(src, opts)
	if !p.atEOF() {
		p.root = p.parseExpression()
	}
	return p
}

// Finish returns the parsed tree. Partial input still yields a tree; use
// Incomplete to learn whether the input ended inside a construct.
func (p *Parser) Finish() *Node {
	return p.root
}

func (p *Parser) Incomplete() bool {
	return p.incomplete
}

func (p *Parser) Errors() []*Error {
	return p.errors
}

// Tokens returns every token of the input, trivia included.
func (p *Parser) Tokens() []Token {
	return p.all
}

func (p *Parser) Comments() []Token {
	var comments []Token
	for _, tok := range p.all {
		if tok.Kind == TokenComment || tok.Kind == TokenLineComment {
			comments = append(comments, tok)
		}
	}
	return comments
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) atEOF() bool {
	return p.peek().Kind == TokenEOF
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) checkIdent(text string) bool {
	tok := p.peek()
	return tok.Kind == TokenIdent && tok.Literal == text
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// accept consumes the next token if it has the given kind.
func (p *Parser) accept(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind TokenKind) *Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return &tok
	}
	p.fail("expected "+kind.String(), kind)
	return nil
}

func (p *Parser) fail(msg string, expected ...TokenKind) {
	tok := p.peek()
	if tok.Kind == TokenEOF {
		p.incomplete = true
	}
	p.errors = append(p.errors, &Error{Message: msg, Expected: expected, Got: &tok})
}

// mustProgress returns a function that reports whether the parser advanced
// since it was created. When it did not, one token is skipped so that
// loops always terminate.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if !p.atEOF() {
				p.advance()
			}
			return false
		}
		return true
	}
}

func (p *Parser) startNode(kind NodeKind) *Node {
	start := p.peek().Span.Start
	return &Node{Kind: kind, Span: Span{Start: start, End: start}}
}

// startNodeAt starts a node at the first child when that child is not
// empty, otherwise at the next token.
func (p *Parser) startNodeAt(kind NodeKind, first *Node) *Node {
	if first != nil && (first.Span.Len() > 0 || len(first.Children) > 0) {
		return &Node{Kind: kind, Span: Span{Start: first.Span.Start, End: first.Span.End}}
	}
	return p.startNode(kind)
}

func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 {
		prev := p.tokens[p.pos-1]
		if prev.End() > n.Span.End.Offset && prev.Offset() >= n.Span.Start.Offset {
			n.Span.End = prev.Span.End
		}
	}
	return n
}

// missing returns a zero-width error node at the next token.
func (p *Parser) missing(msg string, expected ...TokenKind) *Node {
	tok := p.peek()
	p.fail(msg, expected...)
	return &Node{
		Kind:  KindError,
		Span:  Span{Start: tok.Span.Start, End: tok.Span.Start},
		Error: &Error{Message: msg, Expected: expected, Got: &tok},
	}
}

func (p *Parser) tokenNode(kind NodeKind) *Node {
	tok := p.advance()
	return &Node{Kind: kind, Span: tok.Span, Token: &tok}
}

func (p *Parser) ident() *Node {
	if p.check(TokenIdent) {
		return p.tokenNode(KindIdentifier)
	}
	return p.missing("expected identifier", TokenIdent)
}

func (p *Parser) parseCompilationUnit() *Node {
	n := p.startNode(KindCompilationUnit)
	for !p.atEOF() {
		progressed := p.mustProgress()
		switch {
		case p.check(TokenPackage):
			n.AddChild(p.parsePackageDecl(nil))
		case p.check(TokenImport):
			n.AddChild(p.parseImportDecl())
		case p.check(TokenSemicolon):
			p.advance()
		default:
			mods := p.parseModifiers(false)
			switch {
			case p.check(TokenPackage):
				n.AddChild(p.parsePackageDecl(mods))
			case p.checkIdent("module") || (p.checkIdent("open") && p.peekN(1).Is("module")):
				n.AddChild(p.parseModuleDecl(mods))
			default:
				if decl := p.parseTypeDecl(mods); decl != nil {
					n.AddChild(decl)
				} else {
					if len(mods.Children) > 0 {
						n.AddChild(mods)
					}
					p.fail("expected type declaration")
				}
			}
		}
		progressed()
	}
	n.Span.End = p.peek().Span.End
	return n
}

func (p *Parser) parsePackageDecl(mods *Node) *Node {
	n := p.startNodeAt(KindPackageDecl, mods)
	if mods != nil {
		n.Children = append(n.Children, mods.Children...)
	}
	p.advance()
	n.AddChild(p.parseQualifiedName())
	p.expect(TokenSemicolon)
	return p.finishNode(n)
}

func (p *Parser) parseImportDecl() *Node {
	n := p.startNode(KindImportDecl)
	p.advance()
	if p.check(TokenStatic) {
		tok := p.advance()
		n.Token = &tok
	}
	qn := p.startNode(KindQualifiedName)
	qn.AddChild(p.ident())
	for p.check(TokenDot) {
		p.advance()
		if p.check(TokenStar) {
			qn.AddChild(p.tokenNode(KindIdentifier))
			break
		}
		qn.AddChild(p.ident())
	}
	n.AddChild(p.finishNode(qn))
	p.expect(TokenSemicolon)
	return p.finishNode(n)
}

// parseQualifiedName parses a dotted name. A trailing dot yields a
// zero-width error as the last part, which is where completion happens.
func (p *Parser) parseQualifiedName() *Node {
	n := p.startNode(KindQualifiedName)
	n.AddChild(p.ident())
	for p.check(TokenDot) && p.peekN(1).Kind != TokenStar {
		p.advance()
		n.AddChild(p.ident())
		if n.LastChild().IsError() {
			break
		}
	}
	return p.finishNode(n)
}

func (p *Parser) parseModuleDecl(mods *Node) *Node {
	n := p.startNodeAt(KindModuleDecl, mods)
	n.AddChild(mods)
	if p.checkIdent("open") {
		tok := p.advance()
		n.Token = &tok
	}
	p.advance()
	n.AddChild(p.parseQualifiedName())
	if p.expect(TokenLBrace) == nil {
		return p.finishNode(n)
	}
	for !p.check(TokenRBrace) && !p.atEOF() {
		progressed := p.mustProgress()
		if p.check(TokenIdent) {
			n.AddChild(p.parseModuleDirective())
		}
		progressed()
	}
	p.expect(TokenRBrace)
	return p.finishNode(n)
}

func (p *Parser) parseModuleDirective() *Node {
	n := p.startNode(KindModuleDirective)
	tok := p.advance()
	n.Token = &tok
	if tok.Literal == "requires" {
		for (p.checkIdent("transitive") && p.peekN(1).Kind != TokenSemicolon) || p.check(TokenStatic) {
			n.AddChild(p.tokenNode(KindIdentifier))
		}
	}
	n.AddChild(p.parseQualifiedName())
	if p.checkIdent("to") || p.checkIdent("with") {
		p.advance()
		n.AddChild(p.parseQualifiedName())
		for p.accept(TokenComma) {
			n.AddChild(p.parseQualifiedName())
		}
	}
	p.expect(TokenSemicolon)
	return p.finishNode(n)
}

func isModifierKind(kind TokenKind) bool {
	switch kind {
	case TokenPublic, TokenProtected, TokenPrivate, TokenStatic, TokenFinal, TokenAbstract,
		TokenNative, TokenSynchronized, TokenTransient, TokenVolatile, TokenStrictfp,
		TokenDefault, TokenNonSealed:
		return true
	}
	return false
}

// parseModifiers parses annotations and modifier keywords. In blocks,
// "default" and "synchronized (" start statements instead.
func (p *Parser) parseModifiers(inBlock bool) *Node {
	n := p.startNode(KindModifiers)
	for {
		tok := p.peek()
		switch {
		case tok.Kind == TokenAt && p.peekN(1).Kind != TokenInterface:
			n.AddChild(p.parseAnnotation())
		case isModifierKind(tok.Kind):
			if inBlock && (tok.Kind == TokenDefault || (tok.Kind == TokenSynchronized && p.peekN(1).Kind == TokenLParen)) {
				return p.finishNode(n)
			}
			n.AddChild(p.tokenNode(KindIdentifier))
		case tok.Is("sealed") && p.sealedAhead():
			n.AddChild(p.tokenNode(KindIdentifier))
		default:
			return p.finishNode(n)
		}
	}
}

func (p *Parser) sealedAhead() bool {
	next := p.peekN(1)
	return next.Kind == TokenClass || next.Kind == TokenInterface || isModifierKind(next.Kind) || next.Is("record")
}

func (p *Parser) parseAnnotation() *Node {
	n := p.startNode(KindAnnotation)
	p.advance()
	n.AddChild(p.parseQualifiedName())
	if p.accept(TokenLParen) {
		for !p.check(TokenRParen) && !p.atEOF() {
			progressed := p.mustProgress()
			el := p.startNode(KindAnnotationElement)
			if p.check(TokenIdent) && p.peekN(1).Kind == TokenAssign {
				el.AddChild(p.ident())
				tok := p.advance()
				el.Token = &tok
			}
			el.AddChild(p.parseElementValue())
			n.AddChild(p.finishNode(el))
			if !p.accept(TokenComma) {
				break
			}
			progressed()
		}
		p.expect(TokenRParen)
	}
	return p.finishNode(n)
}

func (p *Parser) parseElementValue() *Node {
	switch {
	case p.check(TokenAt):
		return p.parseAnnotation()
	case p.check(TokenLBrace):
		n := p.startNode(KindArrayInit)
		p.advance()
		for !p.check(TokenRBrace) && !p.atEOF() {
			progressed := p.mustProgress()
			n.AddChild(p.parseElementValue())
			if !p.accept(TokenComma) {
				break
			}
			progressed()
		}
		p.expect(TokenRBrace)
		return p.finishNode(n)
	}
	return p.parseTernary()
}

// parseTypeDecl parses a class, interface, enum, record or annotation
// declaration after its modifiers. It returns nil when none starts here.
func (p *Parser) parseTypeDecl(mods *Node) *Node {
	switch {
	case p.check(TokenClass):
		return p.parseClassLike(KindClassDecl, mods)
	case p.check(TokenInterface):
		return p.parseClassLike(KindInterfaceDecl, mods)
	case p.check(TokenEnum):
		return p.parseClassLike(KindEnumDecl, mods)
	case p.check(TokenAt) && p.peekN(1).Kind == TokenInterface:
		p.advance()
		return p.parseClassLike(KindAnnotationDecl, mods)
	case p.checkIdent("record") && p.peekN(1).Kind == TokenIdent:
		return p.parseClassLike(KindRecordDecl, mods)
	}
	return nil
}

func (p *Parser) parseClassLike(kind NodeKind, mods *Node) *Node {
	n := p.startNodeAt(kind, mods)
	n.AddChild(mods)
	tok := p.advance()
	n.Token = &tok
	n.AddChild(p.ident())
	if p.check(TokenLT) {
		n.AddChild(p.parseTypeParameters())
	}
	if kind == KindRecordDecl {
		n.AddChild(p.parseParameters())
	}
	for {
		switch {
		case p.check(TokenExtends):
			n.AddChild(p.parseClause(KindExtendsClause))
			continue
		case p.check(TokenImplements):
			n.AddChild(p.parseClause(KindImplementsClause))
			continue
		case p.checkIdent("permits"):
			n.AddChild(p.parseClause(KindPermitsClause))
			continue
		}
		break
	}
	n.AddChild(p.parseClassBody(kind))
	return p.finishNode(n)
}

// parseClause parses a keyword followed by a comma separated type list:
// extends, implements, permits and throws.
func (p *Parser) parseClause(kind NodeKind) *Node {
	n := p.startNode(kind)
	tok := p.advance()
	n.Token = &tok
	if p.check(TokenLBrace) || p.check(TokenSemicolon) || p.atEOF() {
		n.AddChild(p.missing("expected type", TokenIdent))
		return p.finishNode(n)
	}
	n.AddChild(p.parseType())
	for p.accept(TokenComma) {
		n.AddChild(p.parseType())
	}
	return p.finishNode(n)
}

func (p *Parser) parseClassBody(owner NodeKind) *Node {
	n := p.startNode(KindClassBody)
	if p.expect(TokenLBrace) == nil {
		return p.finishNode(n)
	}
	if owner == KindEnumDecl {
		p.parseEnumConstants(n)
	}
	for !p.check(TokenRBrace) && !p.atEOF() {
		progressed := p.mustProgress()
		if m := p.parseMember(owner); m != nil {
			n.AddChild(m)
		}
		if !progressed() {
			p.fail("unexpected token in class body")
		}
	}
	p.expect(TokenRBrace)
	return p.finishNode(n)
}

func (p *Parser) parseEnumConstants(body *Node) {
	for p.check(TokenIdent) || p.check(TokenAt) {
		c := p.startNode(KindEnumConstant)
		c.AddChild(p.parseModifiers(false))
		c.AddChild(p.ident())
		if p.check(TokenLParen) {
			c.AddChild(p.parseArguments())
		}
		if p.check(TokenLBrace) {
			c.AddChild(p.parseClassBody(KindClassDecl))
		}
		body.AddChild(p.finishNode(c))
		if !p.accept(TokenComma) {
			break
		}
	}
	p.accept(TokenSemicolon)
}

func (p *Parser) parseMember(owner NodeKind) *Node {
	if p.accept(TokenSemicolon) {
		return nil
	}
	if p.check(TokenLBrace) || (p.check(TokenStatic) && p.peekN(1).Kind == TokenLBrace) {
		n := p.startNode(KindInitializer)
		if p.check(TokenStatic) {
			tok := p.advance()
			n.Token = &tok
		}
		n.AddChild(p.parseBlock())
		return p.finishNode(n)
	}

	mods := p.parseModifiers(false)
	if decl := p.parseTypeDecl(mods); decl != nil {
		return decl
	}
	if p.check(TokenRBrace) || p.atEOF() {
		if len(mods.Children) > 0 {
			return mods
		}
		return nil
	}

	var typeParams *Node
	if p.check(TokenLT) {
		typeParams = p.parseTypeParameters()
	}

	if p.check(TokenIdent) && p.peekN(1).Kind == TokenLParen {
		return p.parseConstructor(mods, typeParams)
	}
	if owner == KindRecordDecl && p.check(TokenIdent) && p.peekN(1).Kind == TokenLBrace {
		return p.parseConstructor(mods, typeParams)
	}

	typ := p.parseType()
	if p.check(TokenIdent) && p.peekN(1).Kind == TokenLParen {
		n := p.startNodeAt(KindMethodDecl, mods)
		if n.Span.Len() == 0 && typeParams != nil {
			n.Span.Start = typeParams.Span.Start
		} else if n.Span.Len() == 0 {
			n.Span.Start = typ.Span.Start
		}
		n.AddChild(mods)
		n.AddChild(typeParams)
		n.AddChild(typ)
		n.AddChild(p.ident())
		p.parseMethodRest(n)
		return p.finishNode(n)
	}

	n := p.startNodeAt(KindFieldDecl, mods)
	if n.Span.Len() == 0 {
		n.Span.Start = typ.Span.Start
	}
	n.AddChild(mods)
	n.AddChild(typ)
	p.parseDeclarators(n)
	p.expect(TokenSemicolon)
	return p.finishNode(n)
}

func (p *Parser) parseConstructor(mods, typeParams *Node) *Node {
	n := p.startNodeAt(KindConstructorDecl, mods)
	n.AddChild(mods)
	n.AddChild(typeParams)
	n.AddChild(p.ident())
	if p.check(TokenLParen) {
		n.AddChild(p.parseParameters())
	}
	if p.check(TokenThrows) {
		n.AddChild(p.parseClause(KindThrowsClause))
	}
	n.AddChild(p.parseBlock())
	return p.finishNode(n)
}

func (p *Parser) parseMethodRest(n *Node) {
	n.AddChild(p.parseParameters())
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		p.advance()
	}
	if p.check(TokenThrows) {
		n.AddChild(p.parseClause(KindThrowsClause))
	}
	if p.check(TokenDefault) {
		dv := p.startNode(KindDefaultValue)
		p.advance()
		dv.AddChild(p.parseElementValue())
		n.AddChild(p.finishNode(dv))
	}
	if p.check(TokenLBrace) {
		n.AddChild(p.parseBlock())
		return
	}
	p.expect(TokenSemicolon)
}

func (p *Parser) parseParameters() *Node {
	n := p.startNode(KindParameters)
	if p.expect(TokenLParen) == nil {
		return p.finishNode(n)
	}
	for !p.check(TokenRParen) && !p.atEOF() {
		progressed := p.mustProgress()
		n.AddChild(p.parseParameter())
		if !p.accept(TokenComma) {
			break
		}
		progressed()
	}
	p.expect(TokenRParen)
	return p.finishNode(n)
}

func (p *Parser) parseParameter() *Node {
	mods := p.parseModifiers(true)
	n := p.startNodeAt(KindParameter, mods)
	n.AddChild(mods)
	n.AddChild(p.parseType())
	if p.check(TokenEllipsis) {
		tok := p.advance()
		n.Token = &tok
	}
	if p.check(TokenThis) {
		n.AddChild(p.tokenNode(KindIdentifier))
	} else {
		n.AddChild(p.ident())
	}
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		p.advance()
	}
	return p.finishNode(n)
}

func (p *Parser) parseDeclarators(n *Node) {
	for {
		d := p.startNode(KindVarDeclarator)
		d.AddChild(p.ident())
		for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
			p.advance()
			p.advance()
		}
		if p.check(TokenAssign) {
			tok := p.advance()
			d.Token = &tok
			d.AddChild(p.parseVarInit())
		}
		n.AddChild(p.finishNode(d))
		if !p.accept(TokenComma) {
			return
		}
	}
}

func (p *Parser) parseVarInit() *Node {
	if p.check(TokenLBrace) {
		return p.parseArrayInit()
	}
	return p.parseExpression()
}

func (p *Parser) parseArrayInit() *Node {
	n := p.startNode(KindArrayInit)
	p.advance()
	for !p.check(TokenRBrace) && !p.atEOF() {
		progressed := p.mustProgress()
		n.AddChild(p.parseVarInit())
		if !p.accept(TokenComma) {
			break
		}
		progressed()
	}
	p.expect(TokenRBrace)
	return p.finishNode(n)
}

func (p *Parser) parseTypeParameters() *Node {
	n := p.startNode(KindTypeParameters)
	p.advance()
	for !p.checkGT() && !p.atEOF() {
		progressed := p.mustProgress()
		tp := p.startNode(KindTypeParameter)
		for p.check(TokenAt) {
			p.parseAnnotation()
		}
		tp.AddChild(p.ident())
		if p.accept(TokenExtends) {
			tp.AddChild(p.parseType())
			for p.accept(TokenBitAnd) {
				tp.AddChild(p.parseType())
			}
		}
		n.AddChild(p.finishNode(tp))
		if !p.accept(TokenComma) {
			break
		}
		progressed()
	}
	p.expectGT()
	return p.finishNode(n)
}

func isPrimitiveKind(kind TokenKind) bool {
	switch kind {
	case TokenBoolean, TokenByte, TokenShort, TokenChar, TokenInt, TokenLong, TokenFloat, TokenDouble:
		return true
	}
	return false
}

func (p *Parser) parseType() *Node {
	return p.parseDims(p.parseNonArrayType())
}

func (p *Parser) parseDims(t *Node) *Node {
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		arr := &Node{Kind: KindArrayType, Span: t.Span}
		arr.AddChild(t)
		p.advance()
		p.advance()
		t = p.finishNode(arr)
	}
	return t
}

func (p *Parser) parseNonArrayType() *Node {
	for p.check(TokenAt) && p.peekN(1).Kind != TokenInterface {
		p.parseAnnotation()
	}
	n := p.startNode(KindType)
	if isPrimitiveKind(p.peek().Kind) || p.check(TokenVoid) {
		tok := p.advance()
		n.Token = &tok
		return p.finishNode(n)
	}
	qn := p.startNode(KindQualifiedName)
	qn.AddChild(p.ident())
	var args *Node
	for {
		if p.check(TokenLT) {
			args = p.parseTypeArguments()
		}
		if !p.check(TokenDot) {
			break
		}
		if next := p.peekN(1); next.Kind != TokenIdent && next.Kind != TokenAt {
			p.advance()
			qn.AddChild(p.missing("expected identifier", TokenIdent))
			break
		}
		p.advance()
		for p.check(TokenAt) {
			p.parseAnnotation()
		}
		qn.AddChild(p.ident())
		args = nil
	}
	n.AddChild(p.finishNode(qn))
	n.AddChild(args)
	return p.finishNode(n)
}

func (p *Parser) parseTypeArguments() *Node {
	n := p.startNode(KindTypeArguments)
	p.advance()
	for !p.checkGT() && !p.atEOF() {
		progressed := p.mustProgress()
		if p.check(TokenQuestion) {
			w := p.startNode(KindWildcard)
			p.advance()
			if p.check(TokenExtends) || p.check(TokenSuper) {
				tok := p.advance()
				w.Token = &tok
				w.AddChild(p.parseType())
			}
			n.AddChild(p.finishNode(w))
		} else {
			n.AddChild(p.parseType())
		}
		if !p.accept(TokenComma) {
			break
		}
		progressed()
	}
	p.expectGT()
	return p.finishNode(n)
}

func (p *Parser) checkGT() bool {
	switch p.peek().Kind {
	case TokenGT, TokenShr, TokenUShr, TokenGE, TokenShrAssign, TokenUShrAssign:
		return true
	}
	return false
}

var gtRemainder = map[TokenKind]TokenKind{
	TokenShr:        TokenGT,
	TokenUShr:       TokenShr,
	TokenGE:         TokenAssign,
	TokenShrAssign:  TokenGE,
	TokenUShrAssign: TokenShrAssign,
}

// expectGT consumes a single '>' closing a type argument list, splitting
// tokens such as '>>' that the lexer produced greedily.
func (p *Parser) expectGT() bool {
	tok := p.peek()
	if tok.Kind == TokenGT {
		p.advance()
		return true
	}
	rest, ok := gtRemainder[tok.Kind]
	if !ok {
		p.fail("expected >", TokenGT)
		return false
	}
	first := tok
	first.Kind = TokenGT
	first.Literal = ">"
	first.Span.End.Offset = tok.Span.Start.Offset + 1
	first.Span.End.Column = tok.Span.Start.Column + 1
	second := tok
	second.Kind = rest
	second.Literal = tok.Literal[1:]
	second.Span.Start = first.Span.End

	tokens := make([]Token, 0, len(p.tokens)+1)
	tokens = append(tokens, p.tokens[:p.pos]...)
	tokens = append(tokens, first, second)
	tokens = append(tokens, p.tokens[p.pos+1:]...)
	p.tokens = tokens
	p.advance()
	return true
}
