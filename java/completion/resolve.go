package completion

import (
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/javacomplete/java/compiler"
	"github.com/dhamidi/javacomplete/java/parser"
)

var log = commonlog.GetLogger("javacomplete.completion")

// SearchMode selects how Resolve looks for the construct hosting the
// caret.
type SearchMode int

const (
	// BottomUp picks the innermost host and reads the identifier the caret
	// ends as the prefix. It is the mode of completion.
	BottomUp SearchMode = iota
	// TopDown picks the outermost member body and leaves the offset as is.
	// It is the mode of documentation lookups.
	TopDown
)

// Resolve builds the environment for the caret. It returns nil without an
// error when the caret lies outside the text or a reattributed fragment
// yields no tree.
func Resolve(ci *compiler.Info, caret int, mode SearchMode, opts Options) (*Env, error) {
	if caret < 0 || caret > len(ci.Text) {
		return nil, nil
	}
	if _, err := ci.ToPhase(compiler.PhaseResolved); err != nil {
		return nil, err
	}
	if ci.Root == nil {
		return nil, compiler.ErrNoTree
	}
	offset, prefix, inert := adjustOffset(ci, caret, mode)
	path := parser.PathAt(ci.Root, offset)
	env := newEnv(ci, caret, offset, prefix, path, opts)
	env.insideLiteral = inert
	env.topDown = mode == TopDown
	if gap := env.gapPath(ci.Root, func(off int) int { return off }); gap != nil {
		path = gap
		env.Path = gap
	}

	var host *parser.Path
	if mode == BottomUp {
		for p := path; p != nil; p = p.Parent() {
			if isHost(p, caret) {
				host = p
				break
			}
		}
	} else {
		for _, n := range path.Nodes() {
			if host == nil {
				host = parser.NewPath(n)
			} else {
				host = host.Child(n)
			}
			if isMemberBody(host) || isFieldInitializer(host, caret) {
				break
			}
		}
		if !isMemberBody(host) && !isFieldInitializer(host, caret) {
			host = nil
		}
	}
	if host == nil {
		log.Debugf("no host at %d, leaf %s", caret, path.Leaf().Kind)
		return env, nil
	}
	log.Debugf("host %s at %d", host.Leaf().Kind, caret)
	if host.Leaf().Kind == parser.KindClassBody {
		return env, nil
	}
	if !reattribute(env, host) {
		return nil, nil
	}
	return env, nil
}

// isHost reports whether the leaf of p is a construct completion can be
// hosted in.
func isHost(p *parser.Path, caret int) bool {
	n := p.Leaf()
	switch n.Kind {
	case parser.KindClassBody, parser.KindBlock:
		return true
	case parser.KindSwitchCase:
		return n.Token != nil && n.Token.Kind == parser.TokenColon && n.Token.End() <= caret
	case parser.KindLambdaExpr:
		body := n.LastChild()
		return n.Token != nil && n.Token.End() <= caret && body != nil && body.Kind != parser.KindBlock
	}
	return isFieldInitializer(p, caret)
}

// isMemberBody reports whether p is the body of a method, constructor or
// initializer.
func isMemberBody(p *parser.Path) bool {
	if p.Leaf().Kind != parser.KindBlock || p.Parent() == nil {
		return false
	}
	switch p.Parent().Leaf().Kind {
	case parser.KindMethodDecl, parser.KindConstructorDecl, parser.KindInitializer:
		return true
	}
	return false
}

// isFieldInitializer reports whether p is the declarator of a field whose
// initializer the caret lies in.
func isFieldInitializer(p *parser.Path, caret int) bool {
	n := p.Leaf()
	if n.Kind != parser.KindVarDeclarator || n.Token == nil || n.Token.End() > caret {
		return false
	}
	decl := p.Parent()
	return decl != nil && decl.Leaf().Kind == parser.KindFieldDecl
}

// adjustOffset pulls the offset back to the start of the identifier the
// caret ends, which becomes the prefix. inert is set when the caret is
// inside a literal or comment.
func adjustOffset(ci *compiler.Info, caret int, mode SearchMode) (offset int, prefix string, inert bool) {
	offset = caret
	if caret == 0 {
		return
	}
	cur := parser.NewTokenCursor(ci.Tokens)
	tok := cur.TokenAt(caret - 1)
	if tok.Kind == parser.TokenEOF || tok.Offset() >= caret {
		return
	}
	typed := tok.Literal[:min(caret-tok.Offset(), len(tok.Literal))]
	switch tok.Kind {
	case parser.TokenComment:
		return offset, "", caret < tok.End() || tok.Unterminated
	case parser.TokenLineComment:
		return offset, "", true
	case parser.TokenStringTemplate, parser.TokenTextBlockTemplate:
		if hole, ok := openHole(typed); ok {
			prefix = trailingIdentifier(hole)
			return caret - len(prefix), prefix, false
		}
		return offset, "", caret < tok.End() || tok.Unterminated
	case parser.TokenStringLiteral, parser.TokenTextBlock, parser.TokenCharLiteral:
		return offset, "", caret < tok.End() || tok.Unterminated
	case parser.TokenIntLiteral, parser.TokenFloatLiteral:
		if mode != BottomUp || strings.HasSuffix(typed, ".") {
			return
		}
		return tok.Offset(), typed, false
	}
	if mode == BottomUp && tok.IsIdentifierLike() {
		return tok.Offset(), typed, false
	}
	return
}

// gapPath returns the path to the construct the caret continues when
// nothing is typed and trivia separates the caret from the previous token.
// toLocal maps text offsets into the coordinates of root.
func (env *Env) gapPath(root *parser.Node, toLocal func(int) int) *parser.Path {
	if env.Prefix != "" || env.insideLiteral || env.topDown {
		return nil
	}
	prev, ok := env.previousToken()
	if !ok || prev.End() >= env.Offset {
		return nil
	}
	next := env.cursor.NextNonTrivia(env.Offset)
	return parser.PathAtGap(root, toLocal(env.Offset), toLocal(prev.End()), toLocal(next.Offset()), !closesConstruct(prev))
}

// closesConstruct reports whether a construct can end with tok, so that
// what follows it need not belong to the construct.
func closesConstruct(tok parser.Token) bool {
	if tok.Kind == parser.TokenIdent || tok.IsLiteral() {
		return true
	}
	switch tok.Kind {
	case parser.TokenThis, parser.TokenSuper, parser.TokenRParen, parser.TokenRBracket, parser.TokenRBrace,
		parser.TokenSemicolon, parser.TokenGT, parser.TokenIncrement, parser.TokenDecrement:
		return true
	}
	return false
}

// openHole returns the text of the last embedded expression of a template
// literal when it is still open at the end of lit.
func openHole(lit string) (string, bool) {
	i := strings.LastIndex(lit, `\{`)
	if i < 0 {
		return "", false
	}
	rest := lit[i+2:]
	depth := 1
	for _, r := range rest {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	return rest, depth > 0
}

func trailingIdentifier(s string) string {
	i := len(s)
	for i > 0 && isIdentifierPart(rune(s[i-1])) {
		i--
	}
	return s[i:]
}
