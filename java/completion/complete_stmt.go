package completion

import (
	"github.com/dhamidi/javacomplete/java/parser"
	"github.com/dhamidi/javacomplete/java/types"
)

// blockStatement handles a prefix at the start of a statement of a block
// or a switch case.
func (r *results) blockStatement(path *parser.Path, idx int) {
	n := path.Leaf()
	if n.Kind == parser.KindSwitchCase {
		if n.Token == nil {
			return
		}
		if n.Token.Kind == parser.TokenArrow {
			r.expression()
			return
		}
	}
	if prev := precedingChild(n, idx); prev != nil && r.env.before(prev) {
		switch prev.Kind {
		case parser.KindIfStmt:
			if len(prev.Children) == 2 {
				r.keyword("else", false)
			}
		case parser.KindTryStmt:
			if prev.FirstChildOfKind(parser.KindFinallyClause) == nil {
				r.keywords("catch", "finally")
			}
		}
	} else if n.Kind == parser.KindBlock {
		r.constructorCalls(path)
	}
	r.statementStart(path)
}

// statementStart offers what can begin a statement.
func (r *results) statementStart(path *parser.Path) {
	env := r.env
	r.addVersioned(statementKeywords, nil)
	if enclosedBy(path, isLoop) {
		r.keywords("break", "continue")
	} else if enclosedBy(path, isSwitch) {
		r.keyword("break", false)
	}
	if enclosedBy(path, func(k parser.NodeKind) bool { return k == parser.KindSwitchExpr }) && env.Options.atLeast(14) {
		r.keyword("yield", false)
	}
	if path.Leaf().Kind == parser.KindSwitchCase {
		r.keywords("case", "default")
	}
	r.addPrimitiveTypes(false)
	r.expression()
}

func isLoop(k parser.NodeKind) bool {
	switch k {
	case parser.KindForStmt, parser.KindEnhancedForStmt, parser.KindWhileStmt, parser.KindDoStmt:
		return true
	}
	return false
}

func isSwitch(k parser.NodeKind) bool {
	return k == parser.KindSwitchStmt || k == parser.KindSwitchExpr
}

// enclosedBy reports whether a construct of a kind accepted by want
// encloses the leaf of path within the innermost member or lambda body.
func enclosedBy(path *parser.Path, want func(parser.NodeKind) bool) bool {
	for p := path; p != nil; p = p.Parent() {
		k := p.Leaf().Kind
		if want(k) {
			return true
		}
		switch k {
		case parser.KindMethodDecl, parser.KindConstructorDecl, parser.KindInitializer, parser.KindLambdaExpr,
			parser.KindClassBody:
			return false
		}
	}
	return false
}

// constructorCalls offers this(...) and super(...) at the start of a
// constructor body.
func (r *results) constructorCalls(block *parser.Path) {
	env := r.env
	ctor := block.Parent()
	if ctor == nil || ctor.Leaf().Kind != parser.KindConstructorDecl {
		return
	}
	sc := env.Scope()
	cls := sc.Class
	if cls == nil {
		return
	}
	s := env.Symtab()
	for _, c := range s.Constructors(cls) {
		if c != sc.Method {
			r.add(Candidate{Kind: KindThisOrSuperConstructor, Text: "this", Symbol: c, Type: cls.Type, Site: cls.Type})
		}
	}
	if sup := cls.Superclass(); sup != nil && sup.Kind == types.KindDeclared {
		for _, c := range s.Constructors(sup.Sym) {
			if env.accessible(c, sup) {
				r.add(Candidate{Kind: KindThisOrSuperConstructor, Text: "super", Symbol: c, Type: sup, Site: sup})
			}
		}
	}
}

// localTypeStart offers the types of a local variable declaration.
func (r *results) localTypeStart(final bool) {
	if !final {
		r.keyword("final", false)
	}
	if r.env.Options.atLeast(10) {
		r.keyword("var", false)
	}
	r.addPrimitiveTypes(false)
	r.addTypes(typeFilter{})
}

func (r *results) localVarDecl(path *parser.Path, idx int) {
	n := path.Leaf()
	if idx == 1 {
		r.localTypeStart(n.HasModifier("final"))
	}
}

func (r *results) varDeclarator(path *parser.Path, idx int) {
	n := path.Leaf()
	if n.Token != nil && idx >= 1 {
		r.expression()
	}
}

// statementBody handles the slots of if, while, do and labeled
// statements.
func (r *results) statementBody(path *parser.Path, idx int) {
	n := path.Leaf()
	switch n.Kind {
	case parser.KindDoStmt:
		if idx >= 1 {
			if n.Child(1) == nil {
				r.keyword("while", false)
			}
			return
		}
	case parser.KindLabeledStmt:
		if idx == 0 {
			return
		}
	default:
		if idx == 0 {
			r.expression()
			return
		}
	}
	r.statementStart(path)
}

func (r *results) forStmt(path *parser.Path, idx int) {
	n := path.Leaf()
	update := n.IndexOf(n.FirstChildOfKind(parser.KindForUpdate))
	switch {
	case idx == 0:
		r.localTypeStart(false)
		r.expression()
	case update >= 0 && idx > update:
		r.statementStart(path)
	default:
		r.expression()
	}
}

func (r *results) enhancedFor(path *parser.Path, idx int) {
	switch idx {
	case 0:
		r.localTypeStart(false)
	case 1:
		r.env.insideForEach = true
		r.expression()
	default:
		r.statementStart(path)
	}
}

func (r *results) tryStmt(path *parser.Path, idx int) {
	n := path.Leaf()
	if idx == 0 || n.FirstChildOfKind(parser.KindFinallyClause) != nil {
		return
	}
	r.keywords("catch", "finally")
}

func (r *results) resources() {
	r.keyword("final", false)
	r.addTypes(typeFilter{})
	r.addLocalMembersAndVars(func(sym *types.Symbol) bool { return sym.Kind.IsVariable() })
}

// catchTypes offers the exceptions the try statement at try throws and
// does not catch yet. Other exception types follow only when none is
// uncaught or the options ask for all symbols. union is the multi-catch
// type being written, if any.
func (r *results) catchTypes(try *parser.Path, union *parser.Node) {
	env := r.env
	if try == nil || try.Leaf().Kind != parser.KindTryStmt {
		r.addTypes(env.throwableFilter())
		return
	}
	s := env.Symtab()
	var listed []*types.Type
	if union != nil {
		sc := env.scopeAt(try)
		for _, c := range union.Children {
			if env.before(c) {
				listed = append(listed, env.Info.ResolveType(c, sc))
			}
		}
	}
	uncaught := env.Info.UncaughtExceptions(try)
	for _, t := range uncaught {
		if t.Kind != types.KindDeclared || covered(s, t, listed) || !env.accessible(t.Sym, nil) {
			continue
		}
		c := r.typeCandidate(t.Sym, typeFilter{})
		c.SmartType = true
		r.add(c)
	}
	if len(uncaught) == 0 || env.Options.Has(AllSymbols) || env.Options.Has(Combined) {
		r.addTypes(env.throwableFilter())
	}
}

func covered(s *types.Symtab, t *types.Type, by []*types.Type) bool {
	for _, b := range by {
		if !b.IsErroneous() && s.IsSubtype(t, b) {
			return true
		}
	}
	return false
}

func (r *results) switchBody(path *parser.Path) {
	switch r.env.previousKind() {
	case parser.TokenLBrace, parser.TokenSemicolon, parser.TokenRBrace, parser.TokenColon:
		r.keywords("case", "default")
	}
}

// switchLabel offers the labels of a case: the constants of an enum
// selector not used yet, the permitted subtypes of a sealed one, and
// patterns from Java 21 on.
func (r *results) switchLabel(path *parser.Path, idx int) {
	env := r.env
	n := path.Leaf()
	if prev := precedingChild(n, idx); prev != nil && env.before(prev) &&
		(prev.Kind == parser.KindTypePattern || prev.Kind == parser.KindRecordPattern) {
		if env.previousKind() != parser.TokenComma && env.Options.atLeast(21) {
			r.keyword("when", false)
		}
		return
	}
	sel := env.selectorType(path)
	if sel == nil {
		r.expression()
		return
	}
	if sel.Kind == types.KindDeclared && sel.Sym.Kind == types.ElemEnum {
		used := env.usedLabels(path)
		for _, c := range sel.Sym.EnumConstants() {
			if !used[c.Name] {
				r.add(Candidate{Kind: KindVariable, Symbol: c, Type: sel, Site: sel, SmartType: true})
			}
		}
		return
	}
	if sel.Kind == types.KindDeclared && sel.Sym.Has(types.FlagSealed) {
		for _, sub := range sel.Sym.Permits() {
			c := r.typeCandidate(sub, typeFilter{})
			c.SmartType = true
			r.add(c)
		}
	}
	if env.Options.atLeast(21) && sel.IsReference() && !types.Identical(sel, env.Symtab().String()) &&
		env.Symtab().Unbox(sel) == nil {
		r.addRecordPatterns(sel)
		r.keywords("null", "default")
		r.addTypes(typeFilter{base: sel})
		return
	}
	r.expression()
}

// usedLabels returns the names of the constants labelling the cases of
// the switch enclosing path before the prefix.
func (env *Env) usedLabels(path *parser.Path) map[string]bool {
	used := make(map[string]bool)
	sw := path.Find(parser.KindSwitchStmt, parser.KindSwitchExpr)
	if sw == nil {
		return used
	}
	for _, c := range sw.Leaf().ChildrenOfKind(parser.KindSwitchCase) {
		for _, label := range c.ChildrenOfKind(parser.KindSwitchLabel) {
			for _, l := range label.Children {
				if l.Kind == parser.KindIdentifier && env.Start(l) < env.Offset {
					used[l.TokenLiteral()] = true
				}
			}
		}
	}
	return used
}

// labels offers the labels of the statements enclosing a break or
// continue.
func (r *results) labels(path *parser.Path) {
	for p := path; p != nil; p = p.Parent() {
		n := p.Leaf()
		switch n.Kind {
		case parser.KindLabeledStmt:
			if name := n.Child(0); name != nil && !name.IsError() {
				r.keyword(name.TokenLiteral(), false)
			}
		case parser.KindMethodDecl, parser.KindConstructorDecl, parser.KindInitializer, parser.KindLambdaExpr,
			parser.KindClassBody:
			return
		}
	}
}
