package compiler

import (
	"strings"

	"github.com/dhamidi/javacomplete/java/parser"
	"github.com/dhamidi/javacomplete/java/types"
)

// ResolveType returns the type a type node denotes in sc. Names that
// cannot be resolved yield an erroneous type carrying the name as
// written.
func (ci *Info) ResolveType(n *parser.Node, sc *Scope) *types.Type {
	if n == nil {
		return types.ErrorType("")
	}
	switch n.Kind {
	case parser.KindType:
		if n.Token != nil {
			return orError(types.PrimitiveByName(n.Token.Literal))
		}
		name := qualifiedName(n.FirstChildOfKind(parser.KindQualifiedName))
		sym := sc.LookupType(name)
		if sym == nil {
			return types.ErrorType(name)
		}
		if sym.Kind == types.ElemTypeParameter {
			return sym.Type
		}
		t := &types.Type{Kind: types.KindDeclared, Sym: sym}
		if args := n.FirstChildOfKind(parser.KindTypeArguments); args != nil {
			for _, a := range args.Children {
				t.Args = append(t.Args, ci.resolveTypeArg(a, sc))
			}
		}
		return t
	case parser.KindArrayType:
		return types.ArrayOf(ci.ResolveType(n.Child(0), sc))
	case parser.KindUnionType, parser.KindIntersectionType:
		kind := types.KindUnion
		if n.Kind == parser.KindIntersectionType {
			kind = types.KindIntersection
		}
		t := &types.Type{Kind: kind}
		for _, alt := range n.Children {
			t.Alternatives = append(t.Alternatives, ci.ResolveType(alt, sc))
		}
		return t
	case parser.KindIdentifier, parser.KindFieldAccess, parser.KindQualifiedName:
		name := qualifiedName(n)
		if sym := sc.LookupType(name); sym != nil {
			return sym.Type
		}
		return types.ErrorType(name)
	}
	return types.ErrorType("")
}

func (ci *Info) resolveTypeArg(a *parser.Node, sc *Scope) *types.Type {
	if a.Kind != parser.KindWildcard {
		return ci.ResolveType(a, sc)
	}
	switch a.TokenLiteral() {
	case "extends":
		return ci.Symtab.Wildcard(types.ExtendsBound, ci.ResolveType(a.Child(0), sc))
	case "super":
		return ci.Symtab.Wildcard(types.SuperBound, ci.ResolveType(a.Child(0), sc))
	}
	return ci.Symtab.Wildcard(types.Unbounded, nil)
}

// qualifiedName returns the dotted name spelled by a QualifiedName,
// Identifier or chain of FieldAccess nodes, stopping at a missing part.
func qualifiedName(n *parser.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case parser.KindIdentifier:
		return n.TokenLiteral()
	case parser.KindFieldAccess:
		head := qualifiedName(n.Child(0))
		last := n.Child(1)
		if head == "" || last == nil || last.IsError() {
			return head
		}
		return head + "." + last.TokenLiteral()
	case parser.KindQualifiedName:
		var parts []string
		for _, c := range n.Children {
			if c.IsError() || c.Token == nil {
				break
			}
			parts = append(parts, c.TokenLiteral())
		}
		return strings.Join(parts, ".")
	}
	return ""
}

// scopeFor is the scope in which the leaf of path is attributed.
func (ci *Info) scopeFor(path *parser.Path) *Scope {
	return ci.ScopeAt(path, path.Leaf().Start())
}

// TypeOf returns the type of the expression at the leaf of path. It never
// returns nil; expressions that cannot be attributed are erroneous.
func (ci *Info) TypeOf(path *parser.Path) *types.Type {
	n := path.Leaf()
	if n == nil {
		return types.ErrorType("")
	}
	if t, ok := ci.exprType[n]; ok {
		return t
	}
	ci.exprType[n] = types.ErrorType("")
	t := orError(ci.attribExpr(path))
	ci.exprType[n] = t
	return t
}

func (ci *Info) attribExpr(path *parser.Path) *types.Type {
	n := path.Leaf()
	s := ci.Symtab
	child := func(i int) *parser.Path {
		if c := n.Child(i); c != nil {
			return path.Child(c)
		}
		return nil
	}
	switch n.Kind {
	case parser.KindLiteral:
		return ci.literalType(n)
	case parser.KindTemplate, parser.KindTemplateExpr:
		return s.String()
	case parser.KindParenExpr:
		if c := child(0); c != nil {
			return ci.TypeOf(c)
		}
	case parser.KindIdentifier, parser.KindFieldAccess:
		return ci.nameType(path)
	case parser.KindType, parser.KindArrayType:
		return ci.ResolveType(n, ci.scopeFor(path))
	case parser.KindCallExpr:
		_, t := ci.resolveCall(path)
		return t
	case parser.KindNewExpr:
		return ci.newType(path)
	case parser.KindNewArrayExpr:
		return ci.ResolveType(n.Child(0), ci.scopeFor(path))
	case parser.KindArrayInit:
		return ci.TargetType(path)
	case parser.KindArrayAccess:
		if t := s.Upper(ci.TypeOf(child(0))); t.Kind == types.KindArray {
			return t.Elem
		}
	case parser.KindAssignExpr:
		return ci.TypeOf(child(0))
	case parser.KindBinaryExpr:
		return ci.binaryType(path)
	case parser.KindInstanceofExpr:
		return types.Boolean
	case parser.KindUnaryExpr:
		operand := ci.TypeOf(child(0))
		switch n.TokenLiteral() {
		case "!":
			return types.Boolean
		case "++", "--":
			return operand
		}
		return s.UnaryPromotion(operand)
	case parser.KindPostfixExpr:
		return ci.TypeOf(child(0))
	case parser.KindTernaryExpr:
		if len(n.Children) < 3 {
			return ci.TypeOf(child(1))
		}
		return ci.conditionalType([]*types.Type{ci.TypeOf(child(1)), ci.TypeOf(child(2))})
	case parser.KindCastExpr:
		return ci.ResolveType(n.Child(0), ci.scopeFor(path))
	case parser.KindLambdaExpr, parser.KindMethodRef:
		return ci.TargetType(path)
	case parser.KindThis:
		if q := n.Child(0); q != nil {
			return ci.ResolveType(q, ci.scopeFor(path))
		}
		if cls := ci.scopeFor(path).Class; cls != nil {
			return cls.Type
		}
	case parser.KindSuper:
		if q := n.Child(0); q != nil {
			return ci.ResolveType(q, ci.scopeFor(path))
		}
		if cls := ci.scopeFor(path).Class; cls != nil {
			if sup := cls.Superclass(); sup != nil {
				return sup
			}
			return s.Object()
		}
	case parser.KindClassLiteral:
		t := ci.ResolveType(n.Child(0), ci.scopeFor(path))
		if t.IsPrimitive() || t.IsVoid() {
			if t.IsVoid() {
				t = s.ClassType("java.lang.Void")
			} else {
				t = s.Box(t)
			}
		}
		return s.ClassType("java.lang.Class", t)
	case parser.KindSwitchExpr:
		return ci.switchType(path)
	}
	return nil
}

func (ci *Info) literalType(n *parser.Node) *types.Type {
	if n.Token == nil {
		return nil
	}
	lit := n.Token.Literal
	switch n.Token.Kind {
	case parser.TokenIntLiteral:
		if strings.HasSuffix(lit, "l") || strings.HasSuffix(lit, "L") {
			return types.Long
		}
		return types.Int
	case parser.TokenFloatLiteral:
		if strings.HasSuffix(lit, "f") || strings.HasSuffix(lit, "F") {
			return types.Float
		}
		return types.Double
	case parser.TokenCharLiteral:
		return types.Char
	case parser.TokenStringLiteral, parser.TokenTextBlock:
		return ci.Symtab.String()
	case parser.TokenTrue, parser.TokenFalse:
		return types.Boolean
	case parser.TokenNull:
		return types.Null
	}
	return nil
}

// nameType attributes an identifier or field access.
func (ci *Info) nameType(path *parser.Path) *types.Type {
	sym := ci.ElementOf(path)
	if sym == nil {
		return nil
	}
	switch {
	case sym.Kind.IsVariable():
		if site := ci.qualifierType(path); site != nil && sym.Kind.IsField() {
			if sym == ci.Symtab.ArrayLength() {
				return types.Int
			}
			return ci.Symtab.MemberType(site, sym)
		}
		return sym.Type
	case sym.Kind.IsType():
		return &types.Type{Kind: types.KindDeclared, Sym: sym}
	case sym.Kind == types.ElemTypeParameter:
		return sym.Type
	}
	return nil
}

// qualifierType returns the type of the expression qualifying a field
// access at path, or nil for simple names and type qualifiers.
func (ci *Info) qualifierType(path *parser.Path) *types.Type {
	n := path.Leaf()
	if n.Kind != parser.KindFieldAccess {
		return nil
	}
	site := path.Child(n.Child(0))
	if q := ci.ElementOf(site); q != nil && (q.Kind.IsType() || q.Kind == types.ElemPackage) {
		return nil
	}
	return ci.TypeOf(site)
}

// IsTypeName reports whether the expression at path names a class rather
// than denoting a value.
func (ci *Info) IsTypeName(path *parser.Path) bool {
	switch path.Leaf().Kind {
	case parser.KindIdentifier, parser.KindFieldAccess:
		sym := ci.ElementOf(path)
		return sym != nil && (sym.Kind.IsType() || sym.Kind == types.ElemTypeParameter)
	case parser.KindType, parser.KindArrayType:
		return true
	}
	return false
}

// ElementOf returns the symbol the leaf of path refers to: the variable,
// class or package a name denotes, the method a call invokes or the
// constructor an instance creation invokes.
func (ci *Info) ElementOf(path *parser.Path) *types.Symbol {
	n := path.Leaf()
	if n == nil {
		return nil
	}
	s := ci.Symtab
	switch n.Kind {
	case parser.KindIdentifier:
		if parent := path.Parent(); parent != nil {
			switch p := parent.Leaf(); {
			case p.Kind == parser.KindCallExpr && p.Child(0) == n:
				m, _ := ci.resolveCall(parent)
				return m
			case p.Kind == parser.KindFieldAccess && p.Child(1) == n:
				return ci.ElementOf(parent)
			}
		}
		name := n.TokenLiteral()
		sc := ci.scopeFor(path)
		if v := sc.Variable(name); v != nil {
			return v
		}
		if t := sc.LookupType(name); t != nil {
			return t
		}
		if ci.isPackage(name) {
			return s.Package(name)
		}
	case parser.KindFieldAccess:
		if parent := path.Parent(); parent != nil {
			if p := parent.Leaf(); p.Kind == parser.KindCallExpr && p.Child(0) == n {
				m, _ := ci.resolveCall(parent)
				return m
			}
		}
		return ci.memberOf(path)
	case parser.KindCallExpr:
		m, _ := ci.resolveCall(path)
		return m
	case parser.KindNewExpr:
		return ci.resolveConstructor(path)
	case parser.KindType, parser.KindArrayType:
		if t := ci.ResolveType(n, ci.scopeFor(path)); t.Kind == types.KindDeclared || t.Kind == types.KindTypeVar {
			return t.Sym
		}
	case parser.KindQualifiedName:
		name := qualifiedName(n)
		if sym := ci.scopeFor(path).LookupType(name); sym != nil {
			return sym
		}
		if ci.isPackage(name) {
			return s.Package(name)
		}
	case parser.KindParenExpr:
		if c := n.Child(0); c != nil {
			return ci.ElementOf(path.Child(c))
		}
	}
	return nil
}

// memberOf resolves the field, member class or package a field access
// selects.
func (ci *Info) memberOf(path *parser.Path) *types.Symbol {
	n := path.Leaf()
	name := n.Child(1)
	if name == nil || name.IsError() {
		return nil
	}
	s := ci.Symtab
	site := path.Child(n.Child(0))
	q := ci.ElementOf(site)
	switch {
	case q != nil && q.Kind == types.ElemPackage:
		qualified := q.QualifiedName + "." + name.TokenLiteral()
		if cls := s.Class(qualified); cls != nil {
			return cls
		}
		if ci.isPackage(qualified) {
			return s.Package(qualified)
		}
		return nil
	case q != nil && q.Kind.IsType():
		if f := s.FindField(q.Type, name.TokenLiteral()); f != nil {
			return f
		}
		return s.FindMemberClass(q, name.TokenLiteral())
	}
	t := s.Upper(ci.TypeOf(site))
	if t.Kind == types.KindArray && name.TokenLiteral() == "length" {
		return s.ArrayLength()
	}
	if f := s.FindField(t, name.TokenLiteral()); f != nil {
		return f
	}
	if t.Kind == types.KindDeclared {
		return s.FindMemberClass(t.Sym, name.TokenLiteral())
	}
	return nil
}

type packageLister interface {
	PackageNames(prefix string) []string
}

func (ci *Info) isPackage(name string) bool {
	pl, ok := ci.Index.(packageLister)
	if !ok {
		return false
	}
	for _, p := range pl.PackageNames(name) {
		if p == name || strings.HasPrefix(p, name+".") {
			return true
		}
	}
	return false
}

// ArgTypes returns the types of the arguments at args. Lambdas and
// method references are left nil since their type depends on the method
// they are passed to.
func (ci *Info) ArgTypes(args *parser.Path) []*types.Type {
	if args == nil || args.Leaf() == nil {
		return nil
	}
	var out []*types.Type
	for _, a := range args.Leaf().Children {
		switch a.Kind {
		case parser.KindLambdaExpr, parser.KindMethodRef:
			out = append(out, nil)
		default:
			if a.IsError() {
				out = append(out, nil)
				continue
			}
			out = append(out, ci.TypeOf(args.Child(a)))
		}
	}
	return out
}

// MethodSite returns the type whose methods a call at path may invoke and
// the candidate methods, before overload resolution.
func (ci *Info) MethodSite(call *parser.Path) (*types.Type, []*types.Symbol) {
	callee := call.Leaf().Child(0)
	if callee == nil {
		return nil, nil
	}
	s := ci.Symtab
	switch callee.Kind {
	case parser.KindIdentifier:
		return ci.scopeFor(call).Methods(callee.TokenLiteral())
	case parser.KindFieldAccess:
		name := callee.Child(1)
		if name == nil || name.IsError() {
			return nil, nil
		}
		qualifier := call.Child(callee).Child(callee.Child(0))
		var site *types.Type
		if q := ci.ElementOf(qualifier); q != nil && q.Kind.IsType() {
			site = &types.Type{Kind: types.KindDeclared, Sym: q}
		} else {
			site = ci.TypeOf(qualifier)
		}
		return site, s.FindMethods(s.Upper(site), name.TokenLiteral())
	case parser.KindThis, parser.KindSuper:
		sc := ci.scopeFor(call)
		if sc.Class == nil {
			return nil, nil
		}
		cls := sc.Class
		if callee.Kind == parser.KindSuper {
			sup := cls.Superclass()
			if sup == nil || sup.Kind != types.KindDeclared {
				return nil, nil
			}
			return sup, s.Constructors(sup.Sym)
		}
		return cls.Type, s.Constructors(cls)
	}
	return nil, nil
}

func (ci *Info) resolveCall(call *parser.Path) (*types.Symbol, *types.Type) {
	site, methods := ci.MethodSite(call)
	if len(methods) == 0 {
		return nil, nil
	}
	args := ci.ArgTypes(call.Child(call.Leaf().Child(1)))
	m, ret := ci.Symtab.ResolveCall(site, methods, args)
	if m != nil && m.IsConstructor() {
		return m, types.Void
	}
	return m, ret
}

func (ci *Info) resolveConstructor(path *parser.Path) *types.Symbol {
	n := path.Leaf()
	t := ci.ResolveType(n.Child(0), ci.scopeFor(path))
	if t.Kind != types.KindDeclared {
		return nil
	}
	ctors := ci.Symtab.Constructors(t.Sym)
	if len(ctors) == 0 {
		return nil
	}
	var args []*types.Type
	if a := n.FirstChildOfKind(parser.KindArguments); a != nil {
		args = ci.ArgTypes(path.Child(a))
	}
	m, _ := ci.Symtab.ResolveCall(t, ctors, args)
	return m
}

func (ci *Info) newType(path *parser.Path) *types.Type {
	n := path.Leaf()
	sc := ci.scopeFor(path)
	if n.FirstChildOfKind(parser.KindClassBody) != nil {
		return ci.anonClass(path, sc).Type
	}
	t := ci.ResolveType(n.Child(0), sc)
	if t.Kind != types.KindDeclared || len(t.Args) > 0 || len(t.Sym.TypeParams) == 0 {
		return t
	}
	if typeNode := n.Child(0); typeNode.FirstChildOfKind(parser.KindTypeArguments) == nil {
		return t
	}
	return ci.Symtab.InferDiamond(t.Sym, ci.TargetType(path))
}

func (ci *Info) binaryType(path *parser.Path) *types.Type {
	n := path.Leaf()
	s := ci.Symtab
	switch n.TokenLiteral() {
	case "&&", "||", "==", "!=", "<", ">", "<=", ">=":
		return types.Boolean
	}
	l := ci.TypeOf(path.Child(n.Child(0)))
	var r *types.Type
	if c := n.Child(1); c != nil {
		r = ci.TypeOf(path.Child(c))
	}
	switch n.TokenLiteral() {
	case "+":
		if isString(l) || isString(r) {
			return s.String()
		}
	case "<<", ">>", ">>>":
		return s.UnaryPromotion(l)
	case "&", "|", "^":
		if isBoolean(s, l) && isBoolean(s, r) {
			return types.Boolean
		}
	}
	if r == nil {
		return l
	}
	return s.BinaryPromotion(l, r)
}

func isString(t *types.Type) bool {
	return t != nil && t.Kind == types.KindDeclared && t.Sym.QualifiedName == "java.lang.String"
}

func isBoolean(s *types.Symtab, t *types.Type) bool {
	if t == nil {
		return false
	}
	if u := s.Unbox(t); u != nil {
		t = u
	}
	return t.Kind == types.KindBoolean
}

// conditionalType returns the type of an expression whose value is one of
// ts, as for the branches of a conditional or a switch expression.
func (ci *Info) conditionalType(ts []*types.Type) *types.Type {
	s := ci.Symtab
	var known []*types.Type
	for _, t := range ts {
		if !t.IsErroneous() && t.Kind != types.KindNull {
			known = append(known, t)
		}
	}
	if len(known) == 0 {
		if len(ts) > 0 {
			return ts[0]
		}
		return nil
	}
	same := true
	for _, t := range known[1:] {
		if !types.Identical(t, known[0]) {
			same = false
		}
	}
	if same {
		return known[0]
	}
	numeric, booleans := true, true
	for _, t := range known {
		u := t
		if unboxed := s.Unbox(t); unboxed != nil {
			u = unboxed
		}
		numeric = numeric && u.IsNumeric()
		booleans = booleans && u.Kind == types.KindBoolean
	}
	switch {
	case booleans:
		return types.Boolean
	case numeric:
		t := known[0]
		for _, o := range known[1:] {
			t = s.BinaryPromotion(t, o)
		}
		return t
	}
	boxed := make([]*types.Type, len(known))
	for i, t := range known {
		boxed[i] = s.Box(t)
	}
	return s.LUB(boxed)
}

// switchType attributes a switch expression from the values its cases
// produce.
func (ci *Info) switchType(path *parser.Path) *types.Type {
	var results []*types.Type
	for _, c := range path.Leaf().ChildrenOfKind(parser.KindSwitchCase) {
		casePath := path.Child(c)
		for _, body := range c.Children {
			switch body.Kind {
			case parser.KindExprStmt:
				if e := body.Child(0); e != nil && c.TokenLiteral() == "->" {
					results = append(results, ci.TypeOf(casePath.Child(body).Child(e)))
				}
			case parser.KindBlock, parser.KindYieldStmt:
				ci.collectYields(casePath.Child(body), &results)
			}
		}
	}
	if len(results) == 0 {
		return ci.TargetType(path)
	}
	return ci.conditionalType(results)
}

func (ci *Info) collectYields(path *parser.Path, out *[]*types.Type) {
	n := path.Leaf()
	switch n.Kind {
	case parser.KindYieldStmt:
		if e := n.Child(0); e != nil && !e.IsError() {
			*out = append(*out, ci.TypeOf(path.Child(e)))
		}
		return
	case parser.KindSwitchExpr, parser.KindLambdaExpr, parser.KindClassBody:
		return
	}
	for _, c := range n.Children {
		ci.collectYields(path.Child(c), out)
	}
}

// TargetType returns the type the context of the expression at path
// expects, or nil when the context imposes none.
func (ci *Info) TargetType(path *parser.Path) *types.Type {
	n := path.Leaf()
	parentPath := path.Parent()
	if n == nil || parentPath == nil {
		return nil
	}
	s := ci.Symtab
	parent := parentPath.Leaf()
	idx := parent.IndexOf(n)
	switch parent.Kind {
	case parser.KindSynthetic:
		return ci.TargetType(parentPath)
	case parser.KindParenExpr:
		if grand := parentPath.Parent(); grand != nil {
			switch grand.Leaf().Kind {
			case parser.KindIfStmt, parser.KindWhileStmt, parser.KindDoStmt:
				return types.Boolean
			case parser.KindSwitchStmt, parser.KindSwitchExpr, parser.KindSynchronizedStmt:
				return nil
			}
		}
		return ci.TargetType(parentPath)
	case parser.KindVarDeclarator:
		if idx < 1 {
			return nil
		}
		decl := parentPath.Parent()
		if decl == nil {
			return nil
		}
		typeNode := decl.Leaf().Child(1)
		if isVar(typeNode) {
			return nil
		}
		return ci.ResolveType(typeNode, ci.scopeFor(decl))
	case parser.KindArrayInit:
		if t := ci.TargetType(parentPath); t != nil && t.Kind == types.KindArray {
			return t.Elem
		}
		if grand := parentPath.Parent(); grand != nil && grand.Leaf().Kind == parser.KindNewArrayExpr {
			if t := ci.TypeOf(grand); t.Kind == types.KindArray {
				return t.Elem
			}
		}
	case parser.KindAssignExpr:
		if idx == 1 {
			return ci.TypeOf(parentPath.Child(parent.Child(0)))
		}
	case parser.KindReturnStmt:
		return ci.ReturnType(parentPath)
	case parser.KindLambdaExpr:
		if idx == 1 && n.Kind != parser.KindBlock {
			return ci.LambdaReturnType(parentPath)
		}
	case parser.KindArguments:
		return ci.argumentTarget(parentPath, idx)
	case parser.KindCastExpr:
		if idx == 1 {
			return ci.ResolveType(parent.Child(0), ci.scopeFor(parentPath))
		}
	case parser.KindTernaryExpr:
		if idx == 0 {
			return types.Boolean
		}
		return ci.TargetType(parentPath)
	case parser.KindExprStmt:
		if grand := parentPath.Parent(); grand != nil && grand.Leaf().Kind == parser.KindSwitchCase &&
			grand.Leaf().TokenLiteral() == "->" {
			if sw := grand.Parent(); sw != nil && sw.Leaf().Kind == parser.KindSwitchExpr {
				return ci.TargetType(sw)
			}
		}
	case parser.KindYieldStmt:
		if sw := parentPath.Find(parser.KindSwitchExpr); sw != nil {
			return ci.TargetType(sw)
		}
	case parser.KindBinaryExpr:
		switch parent.TokenLiteral() {
		case "&&", "||":
			return types.Boolean
		case "==", "!=", "<", ">", "<=", ">=", "-", "*", "/", "%":
			other := parent.Child(1 - idx)
			if other == nil || other.IsError() {
				return nil
			}
			t := ci.TypeOf(parentPath.Child(other))
			if parent.TokenLiteral() == "==" || parent.TokenLiteral() == "!=" {
				return t
			}
			if u := s.Unbox(t); u != nil {
				return u
			}
			if t.IsNumeric() {
				return t
			}
		}
	case parser.KindUnaryExpr:
		if parent.TokenLiteral() == "!" {
			return types.Boolean
		}
	case parser.KindForStmt:
		if idx == 1 && n.Kind != parser.KindForUpdate {
			return types.Boolean
		}
	case parser.KindAssertStmt:
		if idx == 0 {
			return types.Boolean
		}
	case parser.KindGuard:
		return types.Boolean
	case parser.KindThrowStmt:
		return s.ClassType("java.lang.Throwable")
	case parser.KindSwitchLabel:
		if sw := parentPath.Find(parser.KindSwitchStmt, parser.KindSwitchExpr); sw != nil {
			if sel := sw.Leaf().Child(0); sel != nil && sel.Child(0) != nil {
				return ci.TypeOf(sw.Child(sel).Child(sel.Child(0)))
			}
		}
	case parser.KindArrayAccess:
		if idx == 1 {
			return types.Int
		}
	case parser.KindNewArrayExpr:
		if idx > 0 && n.Kind != parser.KindArrayInit {
			return types.Int
		}
	}
	return nil
}

// ReturnType is the type a return statement at path must produce: that
// of the innermost enclosing lambda or method.
func (ci *Info) ReturnType(path *parser.Path) *types.Type {
	encl := path.Find(parser.KindLambdaExpr, parser.KindMethodDecl, parser.KindConstructorDecl, parser.KindInitializer)
	if encl == nil {
		return nil
	}
	switch encl.Leaf().Kind {
	case parser.KindLambdaExpr:
		return ci.LambdaReturnType(encl)
	case parser.KindMethodDecl:
		if m := ci.scopeFor(encl.Child(encl.Leaf().LastChild())).Method; m != nil {
			return m.Type
		}
	}
	return nil
}

func (ci *Info) LambdaReturnType(lambda *parser.Path) *types.Type {
	target := ci.TargetType(lambda)
	fm := ci.Symtab.FunctionalMethod(target)
	if fm == nil {
		return nil
	}
	return ci.Symtab.Upper(ci.Symtab.MemberType(target, fm))
}

// argumentTarget returns the type of the parameter receiving argument idx
// of the call or instance creation whose argument list is at args.
func (ci *Info) argumentTarget(args *parser.Path, idx int) *types.Type {
	call := args.Parent()
	if call == nil {
		return nil
	}
	var site *types.Type
	var methods []*types.Symbol
	switch call.Leaf().Kind {
	case parser.KindCallExpr:
		site, methods = ci.MethodSite(call)
	case parser.KindNewExpr:
		t := ci.ResolveType(call.Leaf().Child(0), ci.scopeFor(call))
		if t.Kind == types.KindDeclared {
			site, methods = t, ci.Symtab.Constructors(t.Sym)
		}
	case parser.KindEnumConstant:
		if cls := ci.scopeFor(call).Class; cls != nil {
			site, methods = cls.Type, ci.Symtab.Constructors(cls)
		}
	}
	if len(methods) == 0 {
		return nil
	}
	argTypes := ci.ArgTypes(args)
	if idx >= 0 && idx < len(argTypes) {
		argTypes[idx] = nil
	}
	var arityOK []*types.Symbol
	for _, m := range methods {
		if idx < len(m.Params) || (m.Has(types.FlagVarargs) && len(m.Params) > 0) {
			arityOK = append(arityOK, m)
		}
	}
	if len(arityOK) == 0 {
		return nil
	}
	m, _ := ci.Symtab.ResolveCall(site, arityOK, argTypes)
	if m == nil {
		return nil
	}
	params := ci.Symtab.InstantiatedParamTypes(site, m, argTypes)
	if idx < len(params)-1 || (!m.Has(types.FlagVarargs) && idx < len(params)) {
		return params[idx]
	}
	last := params[len(params)-1]
	if m.Has(types.FlagVarargs) && last.Kind == types.KindArray && !(idx == len(params)-1 && len(argTypes) == len(params)) {
		return last.Elem
	}
	return last
}

// CandidateMethods returns the methods or constructors a call or instance
// creation at path may invoke whose arity admits an argument at idx.
func (ci *Info) CandidateMethods(call *parser.Path, idx int) (*types.Type, []*types.Symbol) {
	var site *types.Type
	var methods []*types.Symbol
	switch call.Leaf().Kind {
	case parser.KindCallExpr:
		site, methods = ci.MethodSite(call)
	case parser.KindNewExpr:
		t := ci.ResolveType(call.Leaf().Child(0), ci.scopeFor(call))
		if t.Kind == types.KindDeclared {
			site, methods = t, ci.Symtab.Constructors(t.Sym)
		}
	}
	var out []*types.Symbol
	for _, m := range methods {
		if idx < len(m.Params) || m.Has(types.FlagVarargs) {
			out = append(out, m)
		}
	}
	return site, out
}
