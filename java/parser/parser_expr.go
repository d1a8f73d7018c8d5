package parser

import "strings"

func (p *Parser) parseExpression() *Node {
	if p.lambdaAhead() {
		return p.parseLambda()
	}
	lhs := p.parseTernary()
	if isAssignOp(p.peek().Kind) {
		n := p.startNodeAt(KindAssignExpr, lhs)
		n.AddChild(lhs)
		tok := p.advance()
		n.Token = &tok
		if p.atEOF() {
			n.AddChild(p.missing("expected expression"))
		} else {
			n.AddChild(p.parseVarInitOrExpression())
		}
		return p.finishNode(n)
	}
	return lhs
}

func (p *Parser) parseVarInitOrExpression() *Node {
	if p.check(TokenLBrace) {
		return p.parseArrayInit()
	}
	return p.parseExpression()
}

func isAssignOp(kind TokenKind) bool {
	switch kind {
	case TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenSlashAssign,
		TokenPercentAssign, TokenAndAssign, TokenOrAssign, TokenXorAssign, TokenShlAssign,
		TokenShrAssign, TokenUShrAssign:
		return true
	}
	return false
}

// lambdaAhead reports whether a lambda expression starts at the next token:
// an identifier or a parenthesised parameter list followed by '->'.
func (p *Parser) lambdaAhead() bool {
	if p.noLambda {
		return false
	}
	if p.check(TokenIdent) {
		return p.peekN(1).Kind == TokenArrow
	}
	if p.check(TokenLParen) {
		end := p.matchParen(p.pos)
		return end >= 0 && p.tokenAt(end+1).Kind == TokenArrow
	}
	return false
}

func (p *Parser) parseLambda() *Node {
	n := p.startNode(KindLambdaExpr)
	if p.check(TokenIdent) {
		params := p.startNode(KindParameters)
		param := p.startNode(KindParameter)
		param.AddChild(p.ident())
		params.AddChild(p.finishNode(param))
		n.AddChild(p.finishNode(params))
	} else {
		params := p.startNode(KindParameters)
		p.advance()
		for !p.check(TokenRParen) && !p.atEOF() {
			progressed := p.mustProgress()
			if p.check(TokenIdent) && (p.peekN(1).Kind == TokenComma || p.peekN(1).Kind == TokenRParen) {
				param := p.startNode(KindParameter)
				param.AddChild(p.ident())
				params.AddChild(p.finishNode(param))
			} else {
				params.AddChild(p.parseParameter())
			}
			if !p.accept(TokenComma) {
				break
			}
			progressed()
		}
		p.expect(TokenRParen)
		n.AddChild(p.finishNode(params))
	}
	tok := p.advance()
	n.Token = &tok
	switch {
	case p.check(TokenLBrace):
		n.AddChild(p.parseBlock())
	case p.atEOF():
		n.AddChild(p.missing("expected lambda body"))
	default:
		n.AddChild(p.parseExpression())
	}
	return p.finishNode(n)
}

func (p *Parser) parseTernary() *Node {
	cond := p.parseBinary(1)
	if !p.check(TokenQuestion) {
		return cond
	}
	n := p.startNodeAt(KindTernaryExpr, cond)
	n.AddChild(cond)
	p.advance()
	n.AddChild(p.parseTernaryBranch())
	if p.expect(TokenColon) != nil {
		n.AddChild(p.parseTernaryBranch())
	}
	return p.finishNode(n)
}

func (p *Parser) parseTernaryBranch() *Node {
	if p.atEOF() {
		return p.missing("expected expression")
	}
	if p.lambdaAhead() {
		return p.parseLambda()
	}
	return p.parseTernary()
}

func binaryPrecedence(kind TokenKind) int {
	switch kind {
	case TokenOr:
		return 1
	case TokenAnd:
		return 2
	case TokenBitOr:
		return 3
	case TokenBitXor:
		return 4
	case TokenBitAnd:
		return 5
	case TokenEQ, TokenNE:
		return 6
	case TokenLT, TokenGT, TokenLE, TokenGE, TokenInstanceof:
		return 7
	case TokenShl, TokenShr, TokenUShr:
		return 8
	case TokenPlus, TokenMinus:
		return 9
	case TokenStar, TokenSlash, TokenPercent:
		return 10
	}
	return 0
}

func (p *Parser) parseBinary(minPrec int) *Node {
	left := p.parseUnary()
	for {
		kind := p.peek().Kind
		prec := binaryPrecedence(kind)
		if prec == 0 || prec < minPrec {
			return left
		}
		if kind == TokenInstanceof {
			n := p.startNodeAt(KindInstanceofExpr, left)
			n.AddChild(left)
			tok := p.advance()
			n.Token = &tok
			switch {
			case p.atEOF():
				n.AddChild(p.missing("expected type", TokenIdent))
			case p.patternAhead():
				n.AddChild(p.parsePattern())
			default:
				n.AddChild(p.parseType())
			}
			left = p.finishNode(n)
			continue
		}
		n := p.startNodeAt(KindBinaryExpr, left)
		n.AddChild(left)
		tok := p.advance()
		n.Token = &tok
		if p.atEOF() {
			n.AddChild(p.missing("expected expression"))
		} else {
			n.AddChild(p.parseBinary(prec + 1))
		}
		left = p.finishNode(n)
	}
}

func (p *Parser) parseUnary() *Node {
	switch p.peek().Kind {
	case TokenPlus, TokenMinus, TokenIncrement, TokenDecrement, TokenNot, TokenBitNot:
		n := p.startNode(KindUnaryExpr)
		tok := p.advance()
		n.Token = &tok
		if p.atEOF() {
			n.AddChild(p.missing("expected expression"))
		} else {
			n.AddChild(p.parseUnary())
		}
		return p.finishNode(n)
	case TokenLParen:
		if p.castAhead() {
			return p.parseCast()
		}
	}
	return p.parsePostfix(p.parsePrimary())
}

// castAhead reports whether the parenthesis at the next token encloses a
// type that is followed by an operand.
func (p *Parser) castAhead() bool {
	end := p.matchParen(p.pos)
	if end < 0 {
		return false
	}
	first := p.tokenAt(p.pos + 1)
	if isPrimitiveKind(first.Kind) {
		j, ok := p.scanType(p.pos + 1)
		return ok && j == end
	}
	j, ok := p.scanType(p.pos + 1)
	for ok && p.tokenAt(j).Kind == TokenBitAnd {
		j, ok = p.scanType(j + 1)
	}
	if !ok || j != end {
		return false
	}
	switch next := p.tokenAt(end + 1); next.Kind {
	case TokenIdent, TokenLParen, TokenNot, TokenBitNot, TokenThis, TokenSuper, TokenNew,
		TokenSwitch, TokenStringLiteral, TokenTextBlock, TokenStringTemplate, TokenTextBlockTemplate,
		TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral, TokenTrue, TokenFalse, TokenNull:
		return true
	default:
		return isPrimitiveKind(next.Kind)
	}
}

func (p *Parser) parseCast() *Node {
	n := p.startNode(KindCastExpr)
	p.advance()
	typ := p.parseType()
	if p.check(TokenBitAnd) {
		inter := p.startNodeAt(KindIntersectionType, typ)
		inter.AddChild(typ)
		for p.accept(TokenBitAnd) {
			inter.AddChild(p.parseType())
		}
		typ = p.finishNode(inter)
	}
	n.AddChild(typ)
	p.expect(TokenRParen)
	switch {
	case p.atEOF():
		n.AddChild(p.missing("expected expression"))
	case p.lambdaAhead():
		n.AddChild(p.parseLambda())
	default:
		n.AddChild(p.parseUnary())
	}
	return p.finishNode(n)
}

func (p *Parser) parsePrimary() *Node {
	tok := p.peek()
	switch tok.Kind {
	case TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral, TokenStringLiteral, TokenTextBlock,
		TokenTrue, TokenFalse, TokenNull:
		return p.tokenNode(KindLiteral)
	case TokenStringTemplate, TokenTextBlockTemplate:
		return p.parseTemplate()
	case TokenThis:
		return p.tokenNode(KindThis)
	case TokenSuper:
		return p.tokenNode(KindSuper)
	case TokenNew:
		return p.parseNew()
	case TokenSwitch:
		n := p.startNode(KindSwitchExpr)
		p.advance()
		n.AddChild(p.parseParenCondition())
		p.parseSwitchBody(n)
		return p.finishNode(n)
	case TokenLParen:
		n := p.startNode(KindParenExpr)
		p.advance()
		if p.check(TokenRParen) || p.atEOF() {
			n.AddChild(p.missing("expected expression"))
		} else {
			n.AddChild(p.parseExpression())
		}
		p.expect(TokenRParen)
		return p.finishNode(n)
	case TokenIdent:
		return p.tokenNode(KindIdentifier)
	case TokenVoid:
		return p.parseType()
	}
	if isPrimitiveKind(tok.Kind) {
		return p.parseType()
	}
	return p.missing("expected expression")
}

func (p *Parser) parsePostfix(expr *Node) *Node {
	for {
		switch p.peek().Kind {
		case TokenDot:
			p.advance()
			if p.check(TokenLT) {
				p.parseTypeArguments()
			}
			next := p.peek()
			switch next.Kind {
			case TokenIdent:
				expr = p.wrap(KindFieldAccess, expr, p.ident())
			case TokenThis:
				expr = p.wrap(KindThis, expr, nil)
				expr.Token = &next
				p.advance()
				expr = p.finishNode(expr)
			case TokenSuper:
				expr = p.wrap(KindSuper, expr, nil)
				expr.Token = &next
				p.advance()
				expr = p.finishNode(expr)
			case TokenClass:
				p.advance()
				expr = p.wrap(KindClassLiteral, expr, nil)
			case TokenNew:
				inner := p.parseNew()
				inner.Span.Start = expr.Span.Start
				expr = inner
			case TokenStringTemplate, TokenTextBlockTemplate, TokenStringLiteral, TokenTextBlock:
				var tmpl *Node
				if next.Kind == TokenStringLiteral || next.Kind == TokenTextBlock {
					tmpl = p.tokenNode(KindTemplate)
				} else {
					tmpl = p.parseTemplate()
				}
				expr = p.wrap(KindTemplateExpr, expr, tmpl)
			default:
				return p.wrap(KindFieldAccess, expr, p.missing("expected identifier", TokenIdent))
			}
		case TokenLParen:
			expr = p.wrap(KindCallExpr, expr, p.parseArguments())
		case TokenLBracket:
			if p.peekN(1).Kind == TokenRBracket {
				expr = p.parseDims(expr)
				continue
			}
			p.advance()
			var index *Node
			if p.check(TokenRBracket) || p.atEOF() {
				index = p.missing("expected expression")
			} else {
				index = p.parseExpression()
			}
			p.expect(TokenRBracket)
			expr = p.wrap(KindArrayAccess, expr, index)
		case TokenColonColon:
			p.advance()
			if p.check(TokenLT) {
				p.parseTypeArguments()
			}
			var name *Node
			if p.check(TokenNew) {
				name = p.tokenNode(KindIdentifier)
			} else {
				name = p.ident()
			}
			expr = p.wrap(KindMethodRef, expr, name)
		case TokenIncrement, TokenDecrement:
			n := p.startNodeAt(KindPostfixExpr, expr)
			n.AddChild(expr)
			tok := p.advance()
			n.Token = &tok
			expr = p.finishNode(n)
		default:
			return expr
		}
	}
}

func (p *Parser) wrap(kind NodeKind, first, second *Node) *Node {
	n := p.startNodeAt(kind, first)
	n.AddChild(first)
	n.AddChild(second)
	return p.finishNode(n)
}

func (p *Parser) parseArguments() *Node {
	n := p.startNode(KindArguments)
	p.advance()
	for !p.check(TokenRParen) && !p.atEOF() {
		progressed := p.mustProgress()
		n.AddChild(p.parseExpression())
		if !p.accept(TokenComma) {
			break
		}
		progressed()
	}
	p.expect(TokenRParen)
	return p.finishNode(n)
}

func (p *Parser) parseNew() *Node {
	start := p.startNode(KindNewExpr)
	p.advance()
	if p.check(TokenLT) {
		p.parseTypeArguments()
	}
	typ := p.parseNonArrayType()
	if p.check(TokenLBracket) {
		n := start
		n.Kind = KindNewArrayExpr
		var dims []*Node
		count := 0
		for p.check(TokenLBracket) {
			p.advance()
			count++
			if !p.check(TokenRBracket) {
				dims = append(dims, p.parseExpression())
			}
			p.expect(TokenRBracket)
		}
		for i := 0; i < count; i++ {
			arr := &Node{Kind: KindArrayType, Span: typ.Span}
			arr.AddChild(typ)
			typ = arr
		}
		n.AddChild(typ)
		for _, d := range dims {
			n.AddChild(d)
		}
		if p.check(TokenLBrace) {
			n.AddChild(p.parseArrayInit())
		}
		return p.finishNode(n)
	}
	n := start
	n.AddChild(typ)
	if p.check(TokenLParen) {
		n.AddChild(p.parseArguments())
		if p.check(TokenLBrace) {
			n.AddChild(p.parseClassBody(KindClassDecl))
		}
	} else {
		p.fail("expected (", TokenLParen)
	}
	return p.finishNode(n)
}

// parseTemplate parses a string template token. Each embedded expression
// is parsed from its range of the source and becomes a child.
func (p *Parser) parseTemplate() *Node {
	tok := p.advance()
	n := &Node{Kind: KindTemplate, Span: tok.Span, Token: &tok}
	for _, hole := range templateHoles(tok.Literal) {
		if hole.start == hole.end {
			continue
		}
		start := advancePosition(tok.Span.Start, tok.Literal[:hole.start])
		end := tok.Offset() + hole.end
		sub := &Parser{file: p.file, src: p.src}
		sub.setTokens(lexRange(p.src, start, end))
		if sub.atEOF() {
			continue
		}
		n.AddChild(sub.parseExpression())
		p.errors = append(p.errors, sub.errors...)
		if !hole.closed {
			p.incomplete = true
		}
	}
	return n
}

type templateHole struct {
	start, end int
	closed     bool
}

// templateHoles locates the embedded expressions of a string template
// literal, as byte ranges relative to the literal.
func templateHoles(lit string) []templateHole {
	i := 1
	if strings.HasPrefix(lit, `"""`) {
		i = 3
	}
	var holes []templateHole
	for i < len(lit) {
		if lit[i] != '\\' {
			i++
			continue
		}
		if i+1 >= len(lit) || lit[i+1] != '{' {
			i += 2
			continue
		}
		hole := templateHole{start: i + 2, end: len(lit)}
		depth := 1
		j := i + 2
	scan:
		for j < len(lit) {
			switch lit[j] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					hole.end = j
					hole.closed = true
					break scan
				}
			case '"':
				j++
				for j < len(lit) && lit[j] != '"' && lit[j] != '\n' {
					if lit[j] == '\\' {
						j++
					}
					j++
				}
			}
			j++
		}
		holes = append(holes, hole)
		i = j + 1
	}
	return holes
}
