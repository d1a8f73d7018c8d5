package compiler

import (
	"strings"

	"github.com/dhamidi/javacomplete/java"
	"github.com/dhamidi/javacomplete/java/parser"
	"github.com/dhamidi/javacomplete/java/types"
)

// Scope is what is visible at a point of a compilation unit.
type Scope struct {
	ci *Info

	// Locals are the local variables, parameters and pattern bindings in
	// scope, outermost first.
	Locals []*types.Symbol
	// Class is the innermost class enclosing the point, nil outside any
	// class.
	Class *types.Symbol
	// Method is the enclosing method or constructor, nil in initializers
	// and field initializers.
	Method *types.Symbol
	// Static is set in static methods, initializers and fields.
	Static bool
	// TypeVars are the type parameters of the enclosing method.
	TypeVars []*types.Symbol
}

func (sc *Scope) Info() *Info {
	return sc.ci
}

func (sc *Scope) Package() string {
	return sc.ci.Package
}

func (sc *Scope) Imports() []java.Import {
	return sc.ci.Imports
}

func (sc *Scope) addLocal(sym *types.Symbol) {
	if sym != nil && sym.Name != "" {
		sc.Locals = append(sc.Locals, sym)
	}
}

// Classes returns the enclosing classes, innermost first.
func (sc *Scope) Classes() []*types.Symbol {
	var out []*types.Symbol
	for c := sc.Class; c != nil; c = c.Owner.EnclosingClass() {
		out = append(out, c)
	}
	return out
}

// Variable returns the variable a simple name denotes: a local, a field
// of an enclosing class or a statically imported field.
func (sc *Scope) Variable(name string) *types.Symbol {
	for i := len(sc.Locals) - 1; i >= 0; i-- {
		if sc.Locals[i].Name == name {
			return sc.Locals[i]
		}
	}
	s := sc.ci.Symtab
	for _, c := range sc.Classes() {
		if f := s.FindField(c.Type, name); f != nil {
			return f
		}
	}
	for _, cls := range sc.staticImportsOf(name) {
		if f := s.FindField(cls.Type, name); f != nil && f.IsStatic() {
			return f
		}
	}
	return nil
}

// Methods returns the methods a simple method name denotes and the type
// they are members of: those of the innermost enclosing class having a
// method of that name, or statically imported ones.
func (sc *Scope) Methods(name string) (*types.Type, []*types.Symbol) {
	s := sc.ci.Symtab
	for _, c := range sc.Classes() {
		if ms := s.FindMethods(c.Type, name); len(ms) > 0 {
			return c.Type, ms
		}
	}
	for _, cls := range sc.staticImportsOf(name) {
		var statics []*types.Symbol
		for _, m := range s.FindMethods(cls.Type, name) {
			if m.IsStatic() {
				statics = append(statics, m)
			}
		}
		if len(statics) > 0 {
			return cls.Type, statics
		}
	}
	return nil, nil
}

// StaticImportClasses returns the classes named by static imports: the
// owners of single static imports and the targets of wildcard ones.
func (sc *Scope) StaticImportClasses() []*types.Symbol {
	var out []*types.Symbol
	for _, imp := range sc.ci.Imports {
		if !imp.Static {
			continue
		}
		name := imp.Name
		if !imp.Wildcard {
			name = name[:max(strings.LastIndex(name, "."), 0)]
		}
		if cls := sc.ci.Symtab.Class(name); cls != nil {
			out = append(out, cls)
		}
	}
	return out
}

func (sc *Scope) staticImportsOf(member string) []*types.Symbol {
	var out []*types.Symbol
	for _, imp := range sc.ci.Imports {
		if !imp.Static {
			continue
		}
		owner := imp.Name
		if !imp.Wildcard {
			i := strings.LastIndex(owner, ".")
			if i < 0 || owner[i+1:] != member {
				continue
			}
			owner = owner[:i]
		}
		if cls := sc.ci.Symtab.Class(owner); cls != nil {
			out = append(out, cls)
		}
	}
	return out
}

// LookupType returns the class or type variable a possibly qualified type
// name denotes, or nil.
func (sc *Scope) LookupType(name string) *types.Symbol {
	if !strings.Contains(name, ".") {
		if tv := types.LookupTypeVar(name, sc.TypeVars, sc.Class); tv != nil {
			return tv
		}
	}
	if sc.Class != nil {
		return sc.ci.Symtab.ResolveName(sc.Class, name)
	}
	canonical := java.ResolveTypeName(sc.ci.Symtab.Finder(), sc.fileModel(), name)
	if canonical == "" {
		return nil
	}
	return sc.ci.Symtab.Class(canonical)
}

// fileModel stands in for a class of the unit when resolving names outside
// any class, so that imports apply.
func (sc *Scope) fileModel() *java.ClassModel {
	return &java.ClassModel{Package: sc.ci.Package, Imports: sc.ci.Imports}
}

// ScopeAt returns the scope at the leaf of path. Declarations among the
// leaf's own children are visible when they end before offset, which is
// in the coordinates of the leaf.
func (ci *Info) ScopeAt(path *parser.Path, offset int) *Scope {
	sc := &Scope{ci: ci}
	nodes := path.Nodes()
	var host *parser.Path
	for i, n := range nodes {
		if host == nil {
			host = parser.NewPath(n)
		} else {
			host = host.Child(n)
		}
		var next *parser.Node
		idx := len(n.Children)
		if i+1 < len(nodes) {
			next = nodes[i+1]
			if next.Kind == parser.KindSynthetic {
				idx = next.Synthetic.Index
			} else if j := n.IndexOf(next); j >= 0 {
				idx = j
			}
		} else {
			idx = 0
			for _, c := range n.Children {
				if c.End() > offset {
					break
				}
				idx++
			}
		}
		ci.enter(sc, host, next, idx)
	}
	return sc
}

// enter updates sc for moving from the leaf of host into next, which
// stands at position idx among the children of the leaf. next is nil at
// the end of the path.
func (ci *Info) enter(sc *Scope, host *parser.Path, next *parser.Node, idx int) {
	n := host.Leaf()
	switch n.Kind {
	case parser.KindClassDecl, parser.KindInterfaceDecl, parser.KindEnumDecl, parser.KindRecordDecl,
		parser.KindAnnotationDecl:
		if cls := ci.ClassOf(n); cls != nil {
			sc.Class = cls
		}
		sc.Method = nil
		sc.TypeVars = nil
		sc.Static = false

	case parser.KindNewExpr:
		if next != nil && next.Kind == parser.KindClassBody {
			sc.Class = ci.anonClass(host, sc)
			sc.Method, sc.TypeVars, sc.Static = nil, nil, false
		}

	case parser.KindEnumConstant:
		sc.Static = true
		if next != nil && next.Kind == parser.KindClassBody {
			sc.Class = ci.anonClass(host, sc)
			sc.Method, sc.TypeVars, sc.Static = nil, nil, false
		}

	case parser.KindMethodDecl, parser.KindConstructorDecl:
		sc.Method = ci.methodOf(sc.Class, n)
		if sc.Method != nil {
			sc.TypeVars = sc.Method.TypeParams
		}
		sc.Static = n.HasModifier("static")
		if next != nil && next.Kind == parser.KindBlock {
			ci.addParams(sc, host, n.FirstChildOfKind(parser.KindParameters))
		}

	case parser.KindInitializer:
		sc.Method = nil
		sc.Static = n.Token != nil

	case parser.KindFieldDecl:
		sc.Method = nil
		sc.Static = n.HasModifier("static") || (sc.Class != nil && sc.Class.Kind.IsInterface())

	case parser.KindBlock, parser.KindSwitchCase:
		if n.Kind == parser.KindSwitchCase && next != nil && next.Kind != parser.KindSwitchLabel {
			for _, label := range n.ChildrenOfKind(parser.KindSwitchLabel) {
				ci.addPatternBindings(sc, host.Child(label), label.Children)
			}
		}
		for _, stmt := range n.Children[:min(idx, len(n.Children))] {
			ci.addStatementDecls(sc, host.Child(stmt))
		}

	case parser.KindLocalVarDecl:
		for _, d := range n.Children[:min(idx, len(n.Children))] {
			if d.Kind == parser.KindVarDeclarator {
				sc.addLocal(ci.localVar(host, d))
			}
		}

	case parser.KindForStmt:
		if idx > 0 {
			if init := n.Child(0); init != nil && init.Kind == parser.KindForInit {
				for _, decl := range init.ChildrenOfKind(parser.KindLocalVarDecl) {
					ci.addStatementDecls(sc, host.Child(init).Child(decl))
				}
			}
		}
		if next != nil && next == n.LastChild() && len(n.Children) == 4 {
			ci.addBindings(sc, host.Child(n.Child(1)), true)
		}

	case parser.KindEnhancedForStmt:
		if idx >= 2 {
			if decl := n.Child(0); decl != nil && decl.Kind == parser.KindLocalVarDecl {
				for _, d := range decl.ChildrenOfKind(parser.KindVarDeclarator) {
					sc.addLocal(ci.localVar(host.Child(decl), d))
				}
			}
		}

	case parser.KindTryStmt:
		if next != nil && next.Kind == parser.KindBlock {
			if res := n.FirstChildOfKind(parser.KindResources); res != nil {
				ci.addStatementDecls(sc, host.Child(res))
			}
		}

	case parser.KindResources:
		for _, r := range n.Children[:min(idx, len(n.Children))] {
			ci.addStatementDecls(sc, host.Child(r))
		}

	case parser.KindCatchClause:
		if next != nil && next.Kind == parser.KindBlock {
			if param := n.FirstChildOfKind(parser.KindParameter); param != nil {
				sc.addLocal(ci.catchParam(host, param, sc))
			}
		}

	case parser.KindLambdaExpr:
		if idx >= 1 {
			ci.addLambdaParams(sc, host)
		}

	case parser.KindSwitchLabel:
		if next != nil && next.Kind == parser.KindGuard {
			ci.addPatternBindings(sc, host, n.Children[:idx])
		}

	case parser.KindIfStmt:
		switch idx {
		case 1:
			ci.addBindings(sc, host.Child(n.Child(0)), true)
		case 2:
			ci.addBindings(sc, host.Child(n.Child(0)), false)
		}

	case parser.KindWhileStmt:
		if idx == 1 {
			ci.addBindings(sc, host.Child(n.Child(0)), true)
		}

	case parser.KindBinaryExpr:
		if idx == 1 {
			switch n.TokenLiteral() {
			case "&&":
				ci.addBindings(sc, host.Child(n.Child(0)), true)
			case "||":
				ci.addBindings(sc, host.Child(n.Child(0)), false)
			}
		}

	case parser.KindTernaryExpr:
		switch idx {
		case 1:
			ci.addBindings(sc, host.Child(n.Child(0)), true)
		case 2:
			ci.addBindings(sc, host.Child(n.Child(0)), false)
		}
	}
}

// addStatementDecls adds what a preceding statement declares to sc: local
// variables, and pattern bindings of an if statement whose then branch
// cannot complete normally.
func (ci *Info) addStatementDecls(sc *Scope, stmt *parser.Path) {
	n := stmt.Leaf()
	switch n.Kind {
	case parser.KindLocalVarDecl:
		for _, d := range n.ChildrenOfKind(parser.KindVarDeclarator) {
			sc.addLocal(ci.localVar(stmt, d))
		}
	case parser.KindIfStmt:
		if len(n.Children) == 2 && !completesNormally(n.Child(1)) {
			ci.addBindings(sc, stmt.Child(n.Child(0)), false)
		}
	}
}

// completesNormally is a conservative approximation of the language's
// reachability rule for the statements that matter to pattern scoping.
func completesNormally(stmt *parser.Node) bool {
	switch stmt.Kind {
	case parser.KindReturnStmt, parser.KindThrowStmt, parser.KindBreakStmt, parser.KindContinueStmt,
		parser.KindYieldStmt:
		return false
	case parser.KindBlock:
		if last := stmt.LastChild(); last != nil {
			return completesNormally(last)
		}
	}
	return true
}

// addBindings adds the pattern bindings introduced by cond when it
// evaluates to when.
func (ci *Info) addBindings(sc *Scope, cond *parser.Path, when bool) {
	n := cond.Leaf()
	if n == nil {
		return
	}
	switch n.Kind {
	case parser.KindParenExpr:
		if c := n.Child(0); c != nil {
			ci.addBindings(sc, cond.Child(c), when)
		}
	case parser.KindUnaryExpr:
		if n.TokenLiteral() == "!" && n.Child(0) != nil {
			ci.addBindings(sc, cond.Child(n.Child(0)), !when)
		}
	case parser.KindBinaryExpr:
		op := n.TokenLiteral()
		if (op == "&&" && when) || (op == "||" && !when) {
			for _, c := range n.Children {
				ci.addBindings(sc, cond.Child(c), when)
			}
		}
	case parser.KindInstanceofExpr:
		if when {
			if pat := n.Child(1); pat != nil {
				ci.addPatternBindings(sc, cond, []*parser.Node{pat})
			}
		}
	}
}

// addPatternBindings adds the variables bound by the patterns among
// nodes, which are children of the leaf of host.
func (ci *Info) addPatternBindings(sc *Scope, host *parser.Path, nodes []*parser.Node) {
	for _, n := range nodes {
		switch n.Kind {
		case parser.KindTypePattern:
			sc.addLocal(ci.binding(host, n, nil, sc))
		case parser.KindRecordPattern:
			ci.addRecordBindings(sc, host.Child(n))
		}
	}
}

func (ci *Info) addRecordBindings(sc *Scope, pat *parser.Path) {
	n := pat.Leaf()
	recordType := ci.ResolveType(n.Child(0), sc)
	var components []java.RecordComponentModel
	if recordType.Kind == types.KindDeclared && recordType.Sym.Model != nil {
		components = recordType.Sym.Model.RecordComponents
	}
	for i, sub := range n.Children[1:] {
		switch sub.Kind {
		case parser.KindTypePattern:
			var componentType *types.Type
			if i < len(components) {
				for _, m := range ci.Symtab.FindMethods(recordType, components[i].Name) {
					if len(m.Params) == 0 {
						componentType = ci.Symtab.MemberType(recordType, m)
					}
				}
			}
			sc.addLocal(ci.binding(pat, sub, componentType, sc))
		case parser.KindRecordPattern:
			ci.addRecordBindings(sc, pat.Child(sub))
		}
	}
}

func (ci *Info) binding(host *parser.Path, pat *parser.Node, inferred *types.Type, sc *Scope) *types.Symbol {
	id := pat.FirstChildOfKind(parser.KindIdentifier)
	if id == nil || id.Token == nil {
		return nil
	}
	return ci.local(id, func(sym *types.Symbol) {
		sym.Kind = types.ElemBindingVariable
		typeNode := pat.Child(1)
		if isVar(typeNode) {
			sym.Type = orError(inferred)
			return
		}
		sym.Type = ci.ResolveType(typeNode, sc)
	})
}

func (ci *Info) catchParam(host *parser.Path, param *parser.Node, sc *Scope) *types.Symbol {
	id := param.FirstChildOfKind(parser.KindIdentifier)
	if id == nil || id.Token == nil {
		return nil
	}
	return ci.local(id, func(sym *types.Symbol) {
		sym.Kind = types.ElemExceptionParameter
		t := ci.ResolveType(param.Child(1), sc)
		if t.Kind == types.KindUnion {
			t = ci.Symtab.LUB(t.Alternatives)
		}
		sym.Type = t
	})
}

// localVar returns the symbol of the variable a declarator of the
// declaration at decl introduces.
func (ci *Info) localVar(decl *parser.Path, d *parser.Node) *types.Symbol {
	id := d.FirstChildOfKind(parser.KindIdentifier)
	if id == nil || id.Token == nil {
		return nil
	}
	return ci.local(id, func(sym *types.Symbol) {
		sym.Kind = types.ElemLocalVariable
		if parent := decl.Parent().Leaf(); parent != nil && parent.Kind == parser.KindResources {
			sym.Kind = types.ElemResourceVariable
		}
		if decl.Leaf().HasModifier("final") {
			sym.Flags |= types.FlagFinal
		}
		sym.Type = ci.declaredType(decl, d)
	})
}

// declaredType returns the type of a variable declared by declarator d of
// decl, inferring it for var.
func (ci *Info) declaredType(decl *parser.Path, d *parser.Node) *types.Type {
	typeNode := decl.Leaf().Child(1)
	if !isVar(typeNode) {
		return ci.ResolveType(typeNode, ci.ScopeAt(decl, decl.Leaf().Start()))
	}
	if loop := decl.Parent(); loop != nil && loop.Leaf().Kind == parser.KindEnhancedForStmt {
		if expr := loop.Leaf().Child(1); expr != nil {
			return orError(ci.ElementType(ci.TypeOf(loop.Child(expr))))
		}
	}
	if d.Token == nil || len(d.Children) < 2 {
		return types.ErrorType("var")
	}
	t := ci.TypeOf(decl.Child(d).Child(d.Child(1)))
	if t.Kind == types.KindNull {
		return ci.Symtab.Object()
	}
	return t
}

// ElementType returns the type of the elements an enhanced for statement
// iterates over: the component type of an array or the type argument of
// an Iterable.
func (ci *Info) ElementType(t *types.Type) *types.Type {
	if t == nil {
		return nil
	}
	if t.Kind == types.KindArray {
		return t.Elem
	}
	iterable := ci.Symtab.Class("java.lang.Iterable")
	sup := ci.Symtab.AsSuper(ci.Symtab.Upper(t), iterable)
	if sup == nil {
		return nil
	}
	if len(sup.Args) == 1 {
		return ci.Symtab.Upper(sup.Args[0])
	}
	return ci.Symtab.Object()
}

func (ci *Info) addParams(sc *Scope, host *parser.Path, params *parser.Node) {
	if params == nil {
		return
	}
	for i, p := range params.ChildrenOfKind(parser.KindParameter) {
		i, p := i, p
		id := p.FirstChildOfKind(parser.KindIdentifier)
		if id == nil || id.Token == nil {
			continue
		}
		sc.addLocal(ci.local(id, func(sym *types.Symbol) {
			sym.Kind = types.ElemParameter
			if p.HasModifier("final") {
				sym.Flags |= types.FlagFinal
			}
			if sc.Method != nil && i < len(sc.Method.Params) {
				sym.Type = sc.Method.Params[i].Type
				return
			}
			sym.Type = ci.ResolveType(p.Child(1), sc)
			if p.Token != nil {
				sym.Type = types.ArrayOf(sym.Type)
			}
		}))
	}
}

func (ci *Info) addLambdaParams(sc *Scope, lambda *parser.Path) {
	params := lambda.Leaf().FirstChildOfKind(parser.KindParameters)
	if params == nil {
		return
	}
	var implicit []*types.Type
	implicitOnce := false
	for i, p := range params.ChildrenOfKind(parser.KindParameter) {
		i, p := i, p
		id := p.LastChild()
		if id == nil || id.Kind != parser.KindIdentifier || id.Token == nil {
			continue
		}
		sc.addLocal(ci.local(id, func(sym *types.Symbol) {
			sym.Kind = types.ElemParameter
			if len(p.Children) > 1 && !isVar(p.Child(1)) {
				sym.Type = ci.ResolveType(p.Child(1), sc)
				return
			}
			if !implicitOnce {
				implicitOnce = true
				implicit = ci.LambdaParamTypes(lambda)
			}
			if i < len(implicit) {
				sym.Type = implicit[i]
			} else {
				sym.Type = types.ErrorType("")
			}
		}))
	}
}

// LambdaParamTypes returns the parameter types of the function type a
// lambda is converted to, or nil when its target is unknown.
func (ci *Info) LambdaParamTypes(lambda *parser.Path) []*types.Type {
	target := ci.TargetType(lambda)
	fm := ci.Symtab.FunctionalMethod(target)
	if fm == nil {
		return nil
	}
	params := ci.Symtab.ParamTypes(target, fm)
	for i, p := range params {
		params[i] = ci.Symtab.Upper(p)
	}
	return params
}

// local returns the cached symbol for a declaration's name node, creating
// it with init on first use. The symbol is cached before init runs so
// that self-referencing declarations terminate.
func (ci *Info) local(id *parser.Node, init func(*types.Symbol)) *types.Symbol {
	if sym, ok := ci.locals[id]; ok {
		return sym
	}
	sym := &types.Symbol{Kind: types.ElemLocalVariable, Name: id.TokenLiteral(), Node: id, Type: types.ErrorType("")}
	ci.locals[id] = sym
	init(sym)
	if sym.Type == nil {
		sym.Type = types.ErrorType("")
	}
	return sym
}

// methodOf returns the symbol of the method or constructor declared by
// decl in cls.
func (ci *Info) methodOf(cls *types.Symbol, decl *parser.Node) *types.Symbol {
	if cls == nil {
		return nil
	}
	for _, m := range cls.Members() {
		if m.Node == decl && m.Kind.IsExecutable() {
			return m
		}
	}
	return nil
}

// anonClass returns the class symbol of the body of an instance creation
// expression or enum constant at host.
func (ci *Info) anonClass(host *parser.Path, sc *Scope) *types.Symbol {
	n := host.Leaf()
	if sym, ok := ci.anon[n]; ok {
		return sym
	}
	var super *types.Type
	if n.Kind == parser.KindEnumConstant {
		if sc.Class != nil {
			super = sc.Class.Type
		}
	} else {
		super = ci.ResolveType(n.Child(0), sc)
		if super.Kind == types.KindDeclared && len(super.Args) == 0 && len(super.Sym.TypeParams) > 0 {
			super = ci.Symtab.InferDiamond(super.Sym, ci.TargetType(host))
		}
	}
	var sup *types.Type
	var ifaces []*types.Type
	if super != nil && super.Kind == types.KindDeclared && super.Sym.Kind.IsInterface() {
		sup = ci.Symtab.Object()
		ifaces = []*types.Type{super}
	} else if super != nil && !super.IsErroneous() {
		sup = super
	}
	name := ""
	if super != nil {
		name = super.SimpleName()
	}
	sym := ci.Symtab.NewClass("<anonymous "+name+">", sc.Class, sup, ifaces)
	ci.anon[n] = sym
	return sym
}

func isVar(typeNode *parser.Node) bool {
	if typeNode == nil || typeNode.Kind != parser.KindType {
		return false
	}
	qn := typeNode.FirstChildOfKind(parser.KindQualifiedName)
	return qn != nil && len(qn.Children) == 1 && qn.Child(0).TokenLiteral() == "var" &&
		typeNode.FirstChildOfKind(parser.KindTypeArguments) == nil
}

func orError(t *types.Type) *types.Type {
	if t == nil {
		return types.ErrorType("")
	}
	return t
}
