package completion

import (
	"strings"

	"github.com/dhamidi/javacomplete/java/index"
	"github.com/dhamidi/javacomplete/java/parser"
	"github.com/dhamidi/javacomplete/java/types"
)

// inferSmartTypes returns the types the context of the prefix expects.
// It starts at the slot of the leaf the prefix is typed into and walks up
// through constructs that pass their own expectation on.
func inferSmartTypes(env *Env) []*types.Type {
	if env.Path == nil {
		return nil
	}
	path, idx := env.site()
	return env.compensate(dedupe(env.expected(path, idx)))
}

// slotOf returns the index of the child of n the prefix is typed into,
// len(n.Children) when it follows them all.
func slotOf(env *Env, n *parser.Node) int {
	off := env.local(n, env.Offset)
	if n.Kind == parser.KindSynthetic {
		return n.Synthetic.Index
	}
	for i, c := range n.Children {
		if c.End() >= off {
			return i
		}
	}
	return len(n.Children)
}

// up returns what the parent of path expects of the leaf of path.
func (env *Env) up(path *parser.Path) []*types.Type {
	parent := path.Parent()
	if parent == nil {
		return nil
	}
	return env.expected(parent, indexIn(parent.Leaf(), path.Leaf()))
}

// indexIn is the position of child among the children of n. A synthetic
// node stands at its recorded index.
func indexIn(n, child *parser.Node) int {
	if child.Kind == parser.KindSynthetic {
		return child.Synthetic.Index
	}
	return n.IndexOf(child)
}

// expected returns the types expected at child idx of the leaf of path.
func (env *Env) expected(path *parser.Path, idx int) []*types.Type {
	ci := env.Info
	s := env.Symtab()
	n := path.Leaf()
	child := n.Child(idx)
	one := func(t *types.Type) []*types.Type {
		if t == nil || t.IsVoid() {
			return nil
		}
		return []*types.Type{t}
	}

	switch n.Kind {
	case parser.KindSynthetic:
		return env.up(path)
	case parser.KindParenExpr:
		if grand := path.Parent(); grand != nil {
			switch grand.Leaf().Kind {
			case parser.KindIfStmt, parser.KindWhileStmt, parser.KindDoStmt:
				return one(types.Boolean)
			case parser.KindSwitchStmt, parser.KindSwitchExpr:
				return env.selectorTypes()
			case parser.KindSynchronizedStmt:
				return one(s.Object())
			}
		}
		return env.up(path)
	case parser.KindCastExpr:
		if idx == 1 {
			return one(ci.ResolveType(n.Child(0), env.scopeAt(path)))
		}
		return nil
	case parser.KindTernaryExpr:
		if idx == 0 {
			return one(types.Boolean)
		}
		return env.up(path)
	case parser.KindVarDeclarator:
		if child == nil {
			return nil
		}
		return one(ci.TargetType(path.Child(child)))
	case parser.KindArrayInit:
		if child == nil || child.Span.Len() == 0 {
			if t := ci.TargetType(path); t != nil && t.Kind == types.KindArray {
				return one(t.Elem)
			}
			return nil
		}
		return one(ci.TargetType(path.Child(child)))
	case parser.KindAssignExpr:
		if idx != 1 {
			return nil
		}
		lhs := ci.TypeOf(path.Child(n.Child(0)))
		switch op := n.TokenLiteral(); op {
		case "=":
			return one(lhs)
		case "+=":
			if types.Identical(lhs, s.String()) {
				return nil
			}
			return types.NumericTypes
		case "&=", "|=", "^=":
			if u := unboxed(s, lhs); u != nil && u.Kind == types.KindBoolean {
				return one(types.Boolean)
			}
			return integralTypes()
		case "<<=", ">>=", ">>>=":
			return integralTypes()
		default:
			return types.NumericTypes
		}
	case parser.KindReturnStmt:
		if t := ci.ReturnType(path); t != nil && !t.IsVoid() {
			return one(t)
		}
		return conditionContext(path)
	case parser.KindLambdaExpr:
		if idx >= 1 && (child == nil || child.Kind != parser.KindBlock) {
			return one(ci.LambdaReturnType(path))
		}
		return nil
	case parser.KindIfStmt, parser.KindWhileStmt:
		if idx == 0 {
			return one(types.Boolean)
		}
	case parser.KindDoStmt:
		if idx == 1 {
			return one(types.Boolean)
		}
	case parser.KindForStmt:
		if child != nil && child.Kind != parser.KindForInit && child.Kind != parser.KindForUpdate &&
			idx == len(n.Children)-2 {
			return one(types.Boolean)
		}
	case parser.KindAssertStmt:
		if idx == 0 {
			return one(types.Boolean)
		}
	case parser.KindGuard:
		return one(types.Boolean)
	case parser.KindUnaryExpr:
		switch n.TokenLiteral() {
		case "!":
			return one(types.Boolean)
		case "~":
			return integralTypes()
		default:
			return types.NumericTypes
		}
	case parser.KindBinaryExpr:
		return env.operandTypes(path, idx)
	case parser.KindArguments:
		return env.argumentTypes(path, idx)
	case parser.KindSwitchLabel:
		return one(env.selectorType(path))
	case parser.KindArrayAccess:
		if idx == 1 {
			return one(types.Int)
		}
	case parser.KindNewExpr:
		if idx == 0 {
			return env.up(path)
		}
	case parser.KindNewArrayExpr:
		if idx > 0 && (child == nil || child.Kind != parser.KindArrayInit) {
			return one(types.Int)
		}
	case parser.KindYieldStmt:
		if sw := path.Find(parser.KindSwitchExpr); sw != nil {
			return env.up(sw)
		}
	case parser.KindExprStmt:
		if grand := path.Parent(); grand != nil && grand.Leaf().Kind == parser.KindSwitchCase &&
			grand.Leaf().TokenLiteral() == "->" {
			if sw := grand.Parent(); sw != nil && sw.Leaf().Kind == parser.KindSwitchExpr {
				return env.up(sw)
			}
		}
	case parser.KindThrowStmt, parser.KindInstanceofExpr, parser.KindBlock, parser.KindClassBody:
		return nil
	}
	return nil
}

// selectorTypes are the types a switch selector may have.
func (env *Env) selectorTypes() []*types.Type {
	s := env.Symtab()
	out := []*types.Type{types.Int, types.Char}
	if e := s.ClassType("java.lang.Enum"); !e.IsErroneous() {
		out = append(out, e)
	}
	if env.Options.atLeast(7) {
		out = append(out, s.String())
	}
	return out
}

// operandTypes returns the types expected of operand idx of the binary
// expression at path.
func (env *Env) operandTypes(path *parser.Path, idx int) []*types.Type {
	ci := env.Info
	s := env.Symtab()
	n := path.Leaf()
	var other *types.Type
	if o := n.Child(1 - idx); o != nil && !o.IsError() && o.Span.Len() > 0 {
		other = ci.TypeOf(path.Child(o))
	}
	switch op := n.TokenLiteral(); op {
	case "&&", "||":
		return []*types.Type{types.Boolean}
	case "==", "!=":
		if other == nil || other.IsErroneous() {
			return nil
		}
		return []*types.Type{other}
	case "+":
		if other != nil && types.Identical(other, s.String()) {
			return nil
		}
		return env.narrowToContext(path, types.NumericTypes)
	case "-", "*", "/", "%":
		return env.narrowToContext(path, types.NumericTypes)
	case "<", ">", "<=", ">=":
		return types.NumericTypes
	case "<<", ">>", ">>>":
		return env.narrowToContext(path, integralTypes())
	case "&", "|", "^":
		if u := unboxed(s, other); u != nil && u.Kind == types.KindBoolean {
			return []*types.Type{types.Boolean}
		}
		return env.narrowToContext(path, integralTypes())
	}
	return nil
}

// narrowToContext keeps the candidates that widen to the single numeric
// type the enclosing context expects, if it expects one.
func (env *Env) narrowToContext(path *parser.Path, candidates []*types.Type) []*types.Type {
	outer := env.up(path)
	if len(outer) != 1 {
		return candidates
	}
	target := unboxed(env.Symtab(), outer[0])
	if target == nil || !target.IsNumeric() {
		return candidates
	}
	var out []*types.Type
	for _, t := range candidates {
		if t.Kind == target.Kind || types.IsWidening(t.Kind, target.Kind) {
			out = append(out, t)
		}
	}
	return out
}

// argumentTypes returns the parameter types of the overloads that can
// take an argument at idx given the arguments before it.
func (env *Env) argumentTypes(args *parser.Path, idx int) []*types.Type {
	ci := env.Info
	s := env.Symtab()
	call := args.Parent()
	if call == nil {
		return nil
	}
	site, methods := ci.CandidateMethods(call, idx)
	if len(methods) == 0 {
		return nil
	}
	argTypes := ci.ArgTypes(args)
	if idx < len(argTypes) {
		argTypes = argTypes[:idx]
	}
	var out []*types.Type
	for _, m := range methods {
		params := s.InstantiatedParamTypes(site, m, argTypes)
		if !acceptsPrefix(s, m, params, argTypes) {
			continue
		}
		if t := paramAt(m, params, idx); t != nil {
			out = append(out, t)
		}
	}
	return mostSpecific(s, dedupe(out))
}

// mostSpecific drops every reference type of ts that another type of ts
// is a subtype of.
func mostSpecific(s *types.Symtab, ts []*types.Type) []*types.Type {
	var out []*types.Type
	for _, t := range ts {
		covered := false
		for _, u := range ts {
			if u != t && t.IsReference() && u.IsReference() && !types.Identical(u, t) && s.IsSubtype(u, t) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, t)
		}
	}
	return out
}

// conditionContext is what a return without a value leaves to complete:
// the condition guarding it when an if or a loop of the same body
// encloses it.
func conditionContext(path *parser.Path) []*types.Type {
	for p := path.Parent(); p != nil; p = p.Parent() {
		switch p.Leaf().Kind {
		case parser.KindIfStmt, parser.KindWhileStmt, parser.KindDoStmt, parser.KindForStmt:
			return []*types.Type{types.Boolean}
		case parser.KindMethodDecl, parser.KindConstructorDecl, parser.KindInitializer, parser.KindLambdaExpr,
			parser.KindClassBody:
			return nil
		}
	}
	return nil
}

func acceptsPrefix(s *types.Symtab, m *types.Symbol, params, args []*types.Type) bool {
	for j, a := range args {
		if a == nil || a.IsErroneous() {
			continue
		}
		p := paramAt(m, params, j)
		if p == nil {
			return false
		}
		if !s.IsAssignable(a, p) {
			return false
		}
	}
	return true
}

// paramAt is the type of the parameter receiving argument idx, the
// element type for trailing varargs.
func paramAt(m *types.Symbol, params []*types.Type, idx int) *types.Type {
	if len(params) == 0 {
		return nil
	}
	last := len(params) - 1
	if m.Has(types.FlagVarargs) && idx >= last {
		if params[last].Kind == types.KindArray {
			return params[last].Elem
		}
		return params[last]
	}
	if idx < len(params) {
		return params[idx]
	}
	return nil
}

// compensate replaces erroneous types that name a class by simple name
// with the declared types of that name known to the index.
func (env *Env) compensate(ts []*types.Type) []*types.Type {
	var out []*types.Type
	for _, t := range ts {
		if !t.IsErroneous() {
			out = append(out, t)
			continue
		}
		if env.index == nil || t == nil || t.Name == "" || strings.Contains(t.Name, ".") {
			continue
		}
		for _, h := range env.index.DeclaredTypes(index.Exact(t.Name)) {
			if ct := env.Symtab().ClassType(h.QualifiedName); !ct.IsErroneous() {
				out = append(out, ct)
			}
		}
	}
	return dedupe(out)
}

func dedupe(ts []*types.Type) []*types.Type {
	var out []*types.Type
	for _, t := range ts {
		if t == nil {
			continue
		}
		dup := false
		for _, u := range out {
			if types.Identical(t, u) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

func integralTypes() []*types.Type {
	return []*types.Type{types.Byte, types.Short, types.Char, types.Int, types.Long}
}

func unboxed(s *types.Symtab, t *types.Type) *types.Type {
	if t == nil {
		return nil
	}
	if t.IsPrimitive() {
		return t
	}
	return s.Unbox(t)
}

// selectorType is the type of the selector of the switch enclosing path.
func (env *Env) selectorType(path *parser.Path) *types.Type {
	sw := path.Find(parser.KindSwitchStmt, parser.KindSwitchExpr)
	if sw == nil {
		return nil
	}
	sel := sw.Leaf().Child(0)
	if sel == nil || sel.Child(0) == nil {
		return nil
	}
	t := env.Info.TypeOf(sw.Child(sel).Child(sel.Child(0)))
	if t.IsErroneous() {
		return nil
	}
	return t
}
