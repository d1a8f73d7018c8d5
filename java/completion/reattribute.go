package completion

import (
	"github.com/dhamidi/javacomplete/java/parser"
)

// reattribute re-parses the part of the host construct that precedes the
// caret and splices the fragment into the path of env. It reports false
// when the fragment has no tree. A host whose window cannot be found
// leaves env at the original path.
func reattribute(env *Env, host *parser.Path) bool {
	start, index, kind, ok := window(env, host)
	if !ok {
		log.Debugf("no window in %s at %d", host.Leaf().Kind, env.Caret)
		return true
	}
	text := append([]byte(nil), env.Info.Text[start:env.Caret]...)
	text = append(text, closers(text, env.Info.File)...)

	var p *parser.Parser
	switch kind {
	case windowStatement:
		p = parser.ParseStatement(text, parser.WithFile(env.Info.File))
	default:
		p = parser.ParseExpression(text, parser.WithFile(env.Info.File))
	}
	frag := p.Finish()
	if frag == nil {
		return false
	}

	positions := &parser.SyntheticPositions{Base: start, Length: env.Caret - start}
	synth := &parser.Node{
		Kind: parser.KindSynthetic,
		Span: parser.Span{
			Start: parser.Position{File: env.Info.File, Offset: start},
			End:   parser.Position{File: env.Info.File, Offset: env.Caret},
		},
		Synthetic: &parser.Synthetic{Fragment: frag, Positions: positions, Index: index},
	}
	env.synth = synth.Synthetic
	env.fragment = make(map[*parser.Node]bool)
	frag.Walk(func(n *parser.Node) bool {
		env.fragment[n] = true
		return true
	})
	env.Positions = positions
	local := parser.PathAt(frag, positions.ToLocal(env.Offset))
	if gap := env.gapPath(frag, positions.ToLocal); gap != nil {
		local = gap
	}
	env.Path = host.Child(synth).Graft(local)
	env.scope = nil
	log.Debugf("reattributed [%d,%d) as %s", start, env.Caret, frag.Kind)
	return true
}

type windowKind int

const (
	windowStatement windowKind = iota
	windowExpression
)

// window returns where the text to re-parse starts, the index of the
// host child the fragment replaces and how to parse it.
func window(env *Env, host *parser.Path) (start, index int, kind windowKind, ok bool) {
	n := host.Leaf()
	switch n.Kind {
	case parser.KindBlock, parser.KindSwitchCase:
		for i, stmt := range n.Children {
			if stmt.Kind == parser.KindSwitchLabel || stmt.Span.Len() == 0 {
				continue
			}
			if stmt.Start() >= env.Offset {
				break
			}
			if env.Offset <= stmt.End() && !closedBefore(env, stmt) {
				return stmt.Start(), i, windowStatement, true
			}
		}
	case parser.KindLambdaExpr:
		body := n.LastChild()
		if body != nil && body.Span.Len() > 0 && body.Start() < env.Caret {
			return body.Start(), n.IndexOf(body), windowExpression, true
		}
	case parser.KindVarDeclarator:
		init := n.LastChild()
		if init != nil && init.Kind != parser.KindArrayInit && init.Span.Len() > 0 && init.Start() < env.Caret {
			return init.Start(), n.IndexOf(init), windowExpression, true
		}
	}
	return 0, 0, 0, false
}

// closedBefore reports whether stmt ends with its terminator at or before
// the prefix, so that the caret starts a new statement.
func closedBefore(env *Env, stmt *parser.Node) bool {
	if stmt.End() > env.Offset {
		return false
	}
	last := env.Info.Text[stmt.End()-1]
	return last == ';' || last == '}'
}

// closers returns the delimiters that terminate the last token of text
// when it runs to the end of the input.
func closers(text []byte, file string) string {
	toks := parser.Lex(text, file)
	if len(toks) < 2 {
		return ""
	}
	last := toks[len(toks)-2]
	if !last.Unterminated {
		return ""
	}
	hole := ""
	if last.OpenHole {
		hole = "}"
	}
	switch last.Kind {
	case parser.TokenComment:
		return "*/"
	case parser.TokenCharLiteral:
		return "'"
	case parser.TokenStringLiteral, parser.TokenStringTemplate:
		return hole + `"`
	case parser.TokenTextBlock, parser.TokenTextBlockTemplate:
		return hole + "\n" + `"""`
	}
	return ""
}
