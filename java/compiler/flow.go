package compiler

import (
	"github.com/dhamidi/javacomplete/java/parser"
	"github.com/dhamidi/javacomplete/java/types"
)

// UncaughtExceptions returns the checked exceptions the body and resources
// of the try statement at path may throw that none of its catch clauses
// catches, each type once, in order of appearance.
func (ci *Info) UncaughtExceptions(try *parser.Path) []*types.Type {
	n := try.Leaf()
	var thrown []*types.Type
	for _, c := range n.Children {
		switch c.Kind {
		case parser.KindResources:
			res := try.Child(c)
			thrown = append(thrown, ci.thrownIn(res)...)
			thrown = append(thrown, ci.closeThrows(res)...)
		case parser.KindBlock:
			thrown = append(thrown, ci.thrownIn(try.Child(c))...)
		}
	}
	caught := ci.CaughtTypes(try)
	var out []*types.Type
	seen := make(map[string]bool)
	for _, t := range thrown {
		if !ci.Symtab.IsCheckedException(t) || seen[t.QualifiedName()] {
			continue
		}
		if ci.isCaught(t, caught) {
			continue
		}
		seen[t.QualifiedName()] = true
		out = append(out, t)
	}
	return out
}

// CaughtTypes returns the exception types the catch clauses of the try
// statement at path name, alternatives of multi-catch clauses flattened.
func (ci *Info) CaughtTypes(try *parser.Path) []*types.Type {
	var out []*types.Type
	for _, c := range try.Leaf().ChildrenOfKind(parser.KindCatchClause) {
		param := c.FirstChildOfKind(parser.KindParameter)
		if param == nil || param.Child(1) == nil {
			continue
		}
		clause := try.Child(c)
		t := ci.ResolveType(param.Child(1), ci.scopeFor(clause))
		out = append(out, flatten(t)...)
	}
	return out
}

func (ci *Info) isCaught(t *types.Type, caught []*types.Type) bool {
	for _, c := range caught {
		if !c.IsErroneous() && ci.Symtab.IsSubtype(t, c) {
			return true
		}
	}
	return false
}

// ThrownInBody returns the checked exceptions the body of the method at
// path may throw, each type once.
func (ci *Info) ThrownInBody(method *parser.Path) []*types.Type {
	body := method.Leaf().FirstChildOfKind(parser.KindBlock)
	if body == nil {
		return nil
	}
	var out []*types.Type
	seen := make(map[string]bool)
	for _, t := range ci.thrownIn(method.Child(body)) {
		if ci.Symtab.IsCheckedException(t) && !seen[t.QualifiedName()] {
			seen[t.QualifiedName()] = true
			out = append(out, t)
		}
	}
	return out
}

// thrownIn collects the exception types statements and expressions below
// path may throw. Bodies of lambdas and classes are not part of the flow.
func (ci *Info) thrownIn(path *parser.Path) []*types.Type {
	n := path.Leaf()
	switch {
	case n == nil:
		return nil
	case n.Kind == parser.KindLambdaExpr || n.Kind == parser.KindClassBody || n.Kind.IsTypeDecl():
		return nil
	case n.Kind == parser.KindTryStmt:
		out := ci.UncaughtExceptions(path)
		for _, c := range n.Children {
			switch c.Kind {
			case parser.KindCatchClause, parser.KindFinallyClause:
				out = append(out, ci.thrownIn(path.Child(c))...)
			}
		}
		return out
	}
	var out []*types.Type
	switch n.Kind {
	case parser.KindCallExpr:
		if m, _ := ci.resolveCall(path); m != nil {
			site, _ := ci.MethodSite(path)
			out = append(out, ci.Symtab.ThrownTypes(site, m)...)
		}
	case parser.KindNewExpr:
		if m := ci.resolveConstructor(path); m != nil {
			out = append(out, ci.Symtab.ThrownTypes(nil, m)...)
		}
	case parser.KindThrowStmt:
		if e := n.Child(0); e != nil && !e.IsError() {
			out = append(out, flatten(ci.thrownBy(path.Child(e)))...)
		}
	}
	for _, c := range n.Children {
		out = append(out, ci.thrownIn(path.Child(c))...)
	}
	return out
}

// thrownBy is the type a throw statement throws: the declared type of
// the expression, or the union of the alternatives of a multi-catch
// parameter.
func (ci *Info) thrownBy(expr *parser.Path) *types.Type {
	if expr.Leaf().Kind == parser.KindIdentifier {
		if v := ci.ElementOf(expr); v != nil && v.Kind == types.ElemExceptionParameter && v.Node != nil {
			if t := ci.exceptionParamType(v); t != nil {
				return t
			}
		}
	}
	return ci.TypeOf(expr)
}

// exceptionParamType recovers the declared union type of a catch
// parameter.
func (ci *Info) exceptionParamType(v *types.Symbol) *types.Type {
	decl := parser.PathTo(ci.Root, v.Node)
	if decl == nil {
		return nil
	}
	param := decl.Parent()
	if param == nil || param.Leaf().Kind != parser.KindParameter {
		return nil
	}
	typeNode := param.Leaf().Child(1)
	if typeNode == nil || typeNode.Kind != parser.KindUnionType {
		return nil
	}
	return ci.ResolveType(typeNode, ci.scopeFor(param))
}

// closeThrows returns what the implicit close calls of the resources at
// path throw.
func (ci *Info) closeThrows(res *parser.Path) []*types.Type {
	var out []*types.Type
	for _, r := range res.Leaf().Children {
		var t *types.Type
		switch r.Kind {
		case parser.KindLocalVarDecl:
			d := r.FirstChildOfKind(parser.KindVarDeclarator)
			if d == nil {
				continue
			}
			t = ci.declaredType(res.Child(r), d)
		default:
			t = ci.TypeOf(res.Child(r))
		}
		if t.Kind != types.KindDeclared {
			continue
		}
		for _, m := range ci.Symtab.FindMethods(t, "close") {
			if len(m.Params) == 0 {
				out = append(out, ci.Symtab.ThrownTypes(t, m)...)
				break
			}
		}
	}
	return out
}

func flatten(t *types.Type) []*types.Type {
	if t == nil {
		return nil
	}
	if t.Kind == types.KindUnion {
		return t.Alternatives
	}
	return []*types.Type{t}
}
