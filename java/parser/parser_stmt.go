package parser

func (p *Parser) parseBlock() *Node {
	n := p.startNode(KindBlock)
	if p.expect(TokenLBrace) == nil {
		return p.finishNode(n)
	}
	for !p.check(TokenRBrace) && !p.atEOF() {
		progressed := p.mustProgress()
		n.AddChild(p.parseBlockStatement())
		progressed()
	}
	p.expect(TokenRBrace)
	return p.finishNode(n)
}

// parseStatementBody parses the body of if, loops and labels. Input that
// ends before the body yields a zero-width error node.
func (p *Parser) parseStatementBody() *Node {
	if p.atEOF() {
		return p.missing("expected statement")
	}
	return p.parseBlockStatement()
}

func (p *Parser) parseBlockStatement() *Node {
	tok := p.peek()
	switch tok.Kind {
	case TokenLBrace:
		return p.parseBlock()
	case TokenSemicolon:
		n := p.startNode(KindEmptyStmt)
		p.advance()
		return p.finishNode(n)
	case TokenIf:
		return p.parseIf()
	case TokenWhile:
		n := p.startNode(KindWhileStmt)
		p.advance()
		n.AddChild(p.parseParenCondition())
		n.AddChild(p.parseStatementBody())
		return p.finishNode(n)
	case TokenDo:
		n := p.startNode(KindDoStmt)
		p.advance()
		n.AddChild(p.parseStatementBody())
		if p.expect(TokenWhile) != nil {
			n.AddChild(p.parseParenCondition())
			p.expect(TokenSemicolon)
		}
		return p.finishNode(n)
	case TokenFor:
		return p.parseFor()
	case TokenTry:
		return p.parseTry()
	case TokenSwitch:
		n := p.startNode(KindSwitchStmt)
		p.advance()
		n.AddChild(p.parseParenCondition())
		p.parseSwitchBody(n)
		return p.finishNode(n)
	case TokenReturn:
		return p.parseKeywordExprStmt(KindReturnStmt, true)
	case TokenThrow:
		return p.parseKeywordExprStmt(KindThrowStmt, false)
	case TokenBreak, TokenContinue:
		kind := KindBreakStmt
		if tok.Kind == TokenContinue {
			kind = KindContinueStmt
		}
		n := p.startNode(kind)
		p.advance()
		if p.check(TokenIdent) {
			n.AddChild(p.ident())
		}
		p.expect(TokenSemicolon)
		return p.finishNode(n)
	case TokenAssert:
		n := p.startNode(KindAssertStmt)
		p.advance()
		n.AddChild(p.parseExpression())
		if p.accept(TokenColon) {
			n.AddChild(p.parseExpression())
		}
		p.expect(TokenSemicolon)
		return p.finishNode(n)
	case TokenSynchronized:
		if p.peekN(1).Kind == TokenLParen {
			n := p.startNode(KindSynchronizedStmt)
			p.advance()
			n.AddChild(p.parseParenCondition())
			n.AddChild(p.parseBlock())
			return p.finishNode(n)
		}
	case TokenIdent:
		if tok.Literal == "yield" && p.yieldAhead() {
			return p.parseKeywordExprStmt(KindYieldStmt, false)
		}
		if p.peekN(1).Kind == TokenColon {
			n := p.startNode(KindLabeledStmt)
			n.AddChild(p.ident())
			p.advance()
			n.AddChild(p.parseStatementBody())
			return p.finishNode(n)
		}
	}

	if p.check(TokenAt) || p.check(TokenFinal) || p.check(TokenAbstract) || p.check(TokenStatic) ||
		p.check(TokenStrictfp) || p.check(TokenClass) || p.check(TokenInterface) || p.check(TokenEnum) ||
		(p.checkIdent("sealed") && p.sealedAhead()) || (p.checkIdent("record") && p.peekN(1).Kind == TokenIdent && p.peekN(2).Kind != TokenAssign) {
		mods := p.parseModifiers(true)
		if decl := p.parseTypeDecl(mods); decl != nil {
			return decl
		}
		decl := p.parseLocalVarDecl(mods)
		p.expect(TokenSemicolon)
		return decl
	}

	if p.localVarDeclAhead(p.pos) {
		decl := p.parseLocalVarDecl(nil)
		p.expect(TokenSemicolon)
		return decl
	}

	n := p.startNode(KindExprStmt)
	n.AddChild(p.parseExpression())
	p.expect(TokenSemicolon)
	return p.finishNode(n)
}

func (p *Parser) yieldAhead() bool {
	switch p.peekN(1).Kind {
	case TokenAssign, TokenDot, TokenLBracket, TokenIncrement, TokenDecrement, TokenPlusAssign,
		TokenMinusAssign, TokenStarAssign, TokenSlashAssign, TokenColon, TokenEOF, TokenSemicolon:
		return false
	}
	return true
}

func (p *Parser) parseKeywordExprStmt(kind NodeKind, optional bool) *Node {
	n := p.startNode(kind)
	p.advance()
	if !optional || !p.check(TokenSemicolon) {
		if p.check(TokenRBrace) || p.atEOF() {
			if !optional {
				n.AddChild(p.missing("expected expression"))
			}
		} else {
			n.AddChild(p.parseExpression())
		}
	}
	p.expect(TokenSemicolon)
	return p.finishNode(n)
}

func (p *Parser) parseParenCondition() *Node {
	n := p.startNode(KindParenExpr)
	if p.expect(TokenLParen) == nil {
		n.AddChild(p.missing("expected condition"))
		return n
	}
	if p.check(TokenRParen) || p.atEOF() {
		n.AddChild(p.missing("expected expression"))
	} else {
		n.AddChild(p.parseExpression())
	}
	p.expect(TokenRParen)
	return p.finishNode(n)
}

func (p *Parser) parseIf() *Node {
	n := p.startNode(KindIfStmt)
	p.advance()
	n.AddChild(p.parseParenCondition())
	n.AddChild(p.parseStatementBody())
	if p.accept(TokenElse) {
		n.AddChild(p.parseStatementBody())
	}
	return p.finishNode(n)
}

func (p *Parser) parseLocalVarDecl(mods *Node) *Node {
	if mods == nil {
		mods = p.parseModifiers(true)
	}
	n := p.startNodeAt(KindLocalVarDecl, mods)
	n.AddChild(mods)
	n.AddChild(p.parseType())
	p.parseDeclarators(n)
	return p.finishNode(n)
}

// localVarDeclAhead reports whether the tokens at i form a type followed by
// an identifier.
func (p *Parser) localVarDeclAhead(i int) bool {
	j, ok := p.scanType(i)
	return ok && p.tokenAt(j).Kind == TokenIdent
}

func (p *Parser) tokenAt(i int) Token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

// scanType skips a type starting at token i without consuming input and
// returns the index after it.
func (p *Parser) scanType(i int) (int, bool) {
	for p.tokenAt(i).Kind == TokenAt {
		i = p.skipAnnotationAt(i)
	}
	tok := p.tokenAt(i)
	switch {
	case isPrimitiveKind(tok.Kind):
		i++
	case tok.Kind == TokenIdent:
		i++
		for {
			if p.tokenAt(i).Kind == TokenLT {
				var ok bool
				if i, ok = p.scanTypeArguments(i); !ok {
					return i, false
				}
			}
			if p.tokenAt(i).Kind == TokenDot && p.tokenAt(i+1).Kind == TokenIdent {
				i += 2
				continue
			}
			break
		}
	default:
		return i, false
	}
	for p.tokenAt(i).Kind == TokenLBracket && p.tokenAt(i+1).Kind == TokenRBracket {
		i += 2
	}
	return i, true
}

func (p *Parser) scanTypeArguments(i int) (int, bool) {
	depth := 0
	for ; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case TokenLT:
			depth++
		case TokenGT:
			depth--
		case TokenShr:
			depth -= 2
		case TokenUShr:
			depth -= 3
		case TokenIdent, TokenDot, TokenComma, TokenQuestion, TokenExtends, TokenSuper,
			TokenLBracket, TokenRBracket, TokenBitAnd, TokenAt:
		default:
			if !isPrimitiveKind(p.tokens[i].Kind) {
				return i, false
			}
		}
		if depth <= 0 {
			return i + 1, depth == 0
		}
	}
	return i, false
}

func (p *Parser) skipAnnotationAt(i int) int {
	i++
	for p.tokenAt(i).Kind == TokenIdent && p.tokenAt(i+1).Kind == TokenDot {
		i += 2
	}
	i++
	if p.tokenAt(i).Kind == TokenLParen {
		if end := p.matchParen(i); end >= 0 {
			return end + 1
		}
	}
	return i
}

// matchParen returns the index of the token closing the parenthesis at i,
// or -1 when a statement boundary or the end of input comes first.
func (p *Parser) matchParen(i int) int {
	depth := 0
	for ; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
			if depth == 0 {
				return i
			}
		case TokenLBrace, TokenRBrace, TokenSemicolon:
			return -1
		}
	}
	return -1
}

func (p *Parser) parseFor() *Node {
	start := p.startNode(KindForStmt)
	p.advance()
	if p.expect(TokenLParen) == nil {
		start.AddChild(p.missing("expected for header"))
		return p.finishNode(start)
	}
	if p.enhancedForAhead() {
		n := start
		n.Kind = KindEnhancedForStmt
		n.AddChild(p.parseForVariable())
		p.expect(TokenColon)
		if p.check(TokenRParen) || p.atEOF() {
			n.AddChild(p.missing("expected expression"))
		} else {
			n.AddChild(p.parseExpression())
		}
		p.expect(TokenRParen)
		n.AddChild(p.parseStatementBody())
		return p.finishNode(n)
	}

	n := start
	init := p.startNode(KindForInit)
	if !p.check(TokenSemicolon) {
		if p.check(TokenFinal) || p.check(TokenAt) || p.localVarDeclAhead(p.pos) {
			init.AddChild(p.parseLocalVarDecl(nil))
		} else {
			p.parseExpressionList(init, TokenSemicolon)
		}
	}
	n.AddChild(p.finishNode(init))
	p.expect(TokenSemicolon)
	if !p.check(TokenSemicolon) && !p.atEOF() {
		n.AddChild(p.parseExpression())
	}
	p.expect(TokenSemicolon)
	update := p.startNode(KindForUpdate)
	if !p.check(TokenRParen) {
		p.parseExpressionList(update, TokenRParen)
	}
	n.AddChild(p.finishNode(update))
	p.expect(TokenRParen)
	n.AddChild(p.parseStatementBody())
	return p.finishNode(n)
}

func (p *Parser) parseExpressionList(n *Node, end TokenKind) {
	for !p.check(end) && !p.atEOF() {
		progressed := p.mustProgress()
		n.AddChild(p.parseExpression())
		if !p.accept(TokenComma) {
			return
		}
		progressed()
	}
}

// enhancedForAhead looks for a ':' at nesting depth zero before the end of
// the for header.
func (p *Parser) enhancedForAhead() bool {
	depth := 0
	questions := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			if depth == 0 {
				return false
			}
			depth--
		case TokenSemicolon, TokenEOF:
			return false
		case TokenQuestion:
			questions++
		case TokenColon:
			if depth == 0 {
				if questions == 0 {
					return true
				}
				questions--
			}
		}
	}
	return false
}

func (p *Parser) parseForVariable() *Node {
	mods := p.parseModifiers(true)
	n := p.startNodeAt(KindLocalVarDecl, mods)
	n.AddChild(mods)
	n.AddChild(p.parseType())
	d := p.startNode(KindVarDeclarator)
	d.AddChild(p.ident())
	n.AddChild(p.finishNode(d))
	return p.finishNode(n)
}

func (p *Parser) parseTry() *Node {
	n := p.startNode(KindTryStmt)
	p.advance()
	if p.check(TokenLParen) {
		n.AddChild(p.parseResources())
	}
	n.AddChild(p.parseBlock())
	for p.check(TokenCatch) {
		c := p.startNode(KindCatchClause)
		p.advance()
		if p.expect(TokenLParen) != nil {
			c.AddChild(p.parseCatchParameter())
			p.expect(TokenRParen)
		}
		c.AddChild(p.parseBlock())
		n.AddChild(p.finishNode(c))
	}
	if p.check(TokenFinally) {
		f := p.startNode(KindFinallyClause)
		p.advance()
		f.AddChild(p.parseBlock())
		n.AddChild(p.finishNode(f))
	}
	return p.finishNode(n)
}

func (p *Parser) parseResources() *Node {
	n := p.startNode(KindResources)
	p.advance()
	for !p.check(TokenRParen) && !p.atEOF() {
		progressed := p.mustProgress()
		if p.check(TokenFinal) || p.check(TokenAt) || p.localVarDeclAhead(p.pos) {
			n.AddChild(p.parseLocalVarDecl(nil))
		} else {
			n.AddChild(p.parseExpression())
		}
		if !p.accept(TokenSemicolon) {
			break
		}
		progressed()
	}
	p.expect(TokenRParen)
	return p.finishNode(n)
}

func (p *Parser) parseCatchParameter() *Node {
	mods := p.parseModifiers(true)
	n := p.startNodeAt(KindParameter, mods)
	n.AddChild(mods)
	typ := p.parseType()
	if p.check(TokenBitOr) {
		union := p.startNodeAt(KindUnionType, typ)
		union.AddChild(typ)
		for p.accept(TokenBitOr) {
			union.AddChild(p.parseType())
		}
		typ = p.finishNode(union)
	}
	n.AddChild(typ)
	n.AddChild(p.ident())
	return p.finishNode(n)
}

// parseSwitchBody parses the braces of a switch statement or expression
// and appends a SwitchCase per group of labels to n.
func (p *Parser) parseSwitchBody(n *Node) {
	if p.expect(TokenLBrace) == nil {
		return
	}
	for !p.check(TokenRBrace) && !p.atEOF() {
		progressed := p.mustProgress()
		if p.check(TokenCase) || p.check(TokenDefault) {
			n.AddChild(p.parseSwitchCase())
		} else {
			p.fail("expected case or default")
		}
		progressed()
	}
	p.expect(TokenRBrace)
}

func (p *Parser) parseSwitchCase() *Node {
	n := p.startNode(KindSwitchCase)
	for p.check(TokenCase) || p.check(TokenDefault) {
		n.AddChild(p.parseSwitchLabel())
		if p.check(TokenArrow) {
			tok := p.advance()
			n.Token = &tok
			switch {
			case p.check(TokenLBrace):
				n.AddChild(p.parseBlock())
			case p.check(TokenThrow):
				n.AddChild(p.parseBlockStatement())
			case p.atEOF():
				n.AddChild(p.missing("expected expression"))
			default:
				e := p.startNode(KindExprStmt)
				e.AddChild(p.parseExpression())
				p.expect(TokenSemicolon)
				n.AddChild(p.finishNode(e))
			}
			return p.finishNode(n)
		}
		if tok := p.expect(TokenColon); tok != nil {
			n.Token = tok
		} else {
			return p.finishNode(n)
		}
	}
	for !p.check(TokenCase) && !p.check(TokenDefault) && !p.check(TokenRBrace) && !p.atEOF() {
		progressed := p.mustProgress()
		n.AddChild(p.parseBlockStatement())
		progressed()
	}
	return p.finishNode(n)
}

func (p *Parser) parseSwitchLabel() *Node {
	n := p.startNode(KindSwitchLabel)
	tok := p.advance()
	n.Token = &tok
	if tok.Kind == TokenDefault {
		return p.finishNode(n)
	}
	saved := p.noLambda
	p.noLambda = true
	defer func() { p.noLambda = saved }()
	for !p.atEOF() {
		switch {
		case p.check(TokenDefault):
			n.AddChild(p.tokenNode(KindIdentifier))
		case p.check(TokenColon) || p.check(TokenArrow):
			n.AddChild(p.missing("expected case label"))
		case p.patternAhead():
			n.AddChild(p.parsePattern())
		default:
			n.AddChild(p.parseTernary())
		}
		if !p.accept(TokenComma) {
			break
		}
	}
	if p.atEOF() && len(n.Children) == 0 {
		n.AddChild(p.missing("expected case label"))
	}
	if p.checkIdent("when") {
		g := p.startNode(KindGuard)
		p.advance()
		g.AddChild(p.parseExpression())
		n.AddChild(p.finishNode(g))
	}
	return p.finishNode(n)
}

// patternAhead reports whether a type pattern or record pattern starts
// at the next token.
func (p *Parser) patternAhead() bool {
	if p.check(TokenFinal) || p.check(TokenAt) {
		return true
	}
	j, ok := p.scanType(p.pos)
	if !ok {
		return false
	}
	next := p.tokenAt(j).Kind
	return next == TokenIdent || (next == TokenLParen && !isPrimitiveKind(p.peek().Kind))
}

func (p *Parser) parsePattern() *Node {
	mods := p.parseModifiers(true)
	typ := p.parseType()
	if p.check(TokenLParen) {
		n := p.startNodeAt(KindRecordPattern, typ)
		n.AddChild(typ)
		p.advance()
		for !p.check(TokenRParen) && !p.atEOF() {
			progressed := p.mustProgress()
			n.AddChild(p.parsePattern())
			if !p.accept(TokenComma) {
				break
			}
			progressed()
		}
		p.expect(TokenRParen)
		return p.finishNode(n)
	}
	n := p.startNodeAt(KindTypePattern, mods)
	if len(mods.Children) == 0 {
		n.Span = Span{Start: typ.Span.Start, End: typ.Span.End}
	}
	n.AddChild(mods)
	n.AddChild(typ)
	n.AddChild(p.ident())
	return p.finishNode(n)
}
