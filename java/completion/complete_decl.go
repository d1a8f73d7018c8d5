package completion

import (
	"strings"

	"github.com/dhamidi/javacomplete/java/parser"
	"github.com/dhamidi/javacomplete/java/types"
)

var (
	annotationFilter = typeFilter{kinds: []types.ElementKind{types.ElemAnnotationType}, kind: KindAnnotation}
	interfaceFilter  = typeFilter{kinds: []types.ElementKind{types.ElemInterface}}
)

func (env *Env) throwableFilter() typeFilter {
	return typeFilter{base: env.Symtab().ClassType("java.lang.Throwable")}
}

func (r *results) compilationUnit(path *parser.Path, idx int) {
	env := r.env
	n := path.Leaf()
	var hasPackage, hasImport, hasType bool
	for _, c := range n.Children[:min(idx, len(n.Children))] {
		switch {
		case c.Kind == parser.KindPackageDecl:
			hasPackage = true
		case c.Kind == parser.KindImportDecl:
			hasImport = true
		case c.Kind == parser.KindModuleDecl || c.Kind.IsTypeDecl():
			hasType = true
		}
	}
	var used map[string]bool
	if prev := precedingChild(n, idx); prev != nil && prev.Kind == parser.KindModifiers {
		used = usedModifiers(prev)
	} else {
		if !hasPackage && !hasImport && !hasType {
			r.keyword("package", false)
		}
		if !hasType {
			r.keyword("import", false)
		}
	}
	r.addVersioned(classModifiers, used)
	r.addVersioned(classKeywords, nil)
	if strings.HasSuffix(env.Info.File, "module-info.java") && !hasType {
		r.keywords("module", "open")
	}
}

// importStart offers the first segment of an import.
func (r *results) importStart(path *parser.Path) {
	n := path.Leaf()
	if tok, ok := r.env.previousToken(); ok && tok.Kind == parser.TokenImport && n.Token == nil {
		r.keyword("static", false)
	}
	r.addPackages("")
}

func qualifierText(n *parser.Node, idx int) string {
	var parts []string
	for _, c := range n.Children[:min(idx, len(n.Children))] {
		if c.Kind == parser.KindIdentifier {
			parts = append(parts, c.TokenLiteral())
		}
	}
	return strings.Join(parts, ".")
}

// qualifiedName completes the segment after a dot of a dotted name.
func (r *results) qualifiedName(path *parser.Path, idx int) {
	env := r.env
	n := path.Leaf()
	qualifier := qualifierText(n, idx)
	parent := path.Parent()
	if parent == nil || qualifier == "" {
		return
	}
	switch p := parent.Leaf(); p.Kind {
	case parser.KindPackageDecl:
		r.addPackages(qualifier)
	case parser.KindImportDecl:
		r.importMembers(qualifier, p.Token != nil)
	case parser.KindModuleDirective:
		r.directiveName(parent, p.IndexOf(n), qualifier)
	case parser.KindAnnotation:
		r.qualifiedType(qualifier, annotationFilter)
	case parser.KindType:
		r.qualifiedType(qualifier, env.typeFilterFor(parent))
	}
}

// importMembers offers what can follow qualifier in an import: the
// content of a package, or the member types of a class and, in a static
// import, its static members.
func (r *results) importMembers(qualifier string, static bool) {
	env := r.env
	s := env.Symtab()
	if cls := s.Class(qualifier); cls != nil {
		for _, m := range s.AllMembers(cls.Type) {
			switch {
			case m.Kind.IsType():
				if env.accessible(m, cls.Type) {
					r.add(r.typeCandidate(m, typeFilter{}))
				}
			case static && (m.IsStatic() || m.Kind == types.ElemEnumConstant) && m.Kind != types.ElemConstructor:
				if env.accessible(m, cls.Type) {
					r.add(r.memberCandidate(m, cls.Type))
				}
			}
		}
	} else {
		r.addPackageContent(qualifier, typeFilter{})
	}
	if env.Prefix == "" {
		r.keyword("*", false)
	}
}

// qualifiedType offers the types below qualifier, a package or a class.
func (r *results) qualifiedType(qualifier string, f typeFilter) {
	env := r.env
	if sym := env.Scope().LookupType(qualifier); sym != nil && sym.Kind.IsType() {
		r.addMemberTypes(sym, f)
		return
	}
	if env.isPackage(qualifier) {
		r.addPackageContent(qualifier, f)
	}
}

// typeFilterFor returns the filter for a type written at the leaf of p.
func (env *Env) typeFilterFor(p *parser.Path) typeFilter {
	child := p.Leaf()
	for q := p.Parent(); q != nil; q = q.Parent() {
		n := q.Leaf()
		switch n.Kind {
		case parser.KindArrayType, parser.KindUnionType:
			child = n
			continue
		case parser.KindExtendsClause:
			return env.extendsFilter(q)
		case parser.KindImplementsClause:
			return interfaceFilter
		case parser.KindPermitsClause:
			return env.permitsFilter(q)
		case parser.KindThrowsClause:
			return env.throwableFilter()
		case parser.KindParameter:
			if grand := q.Parent(); grand != nil && grand.Leaf().Kind == parser.KindCatchClause {
				return env.throwableFilter()
			}
		case parser.KindNewExpr:
			if n.Child(0) == child {
				return typeFilter{instantiable: true}
			}
		}
		return typeFilter{}
	}
	return typeFilter{}
}

func (env *Env) extendsFilter(clause *parser.Path) typeFilter {
	decl := clause.Parent().Leaf()
	self := env.Info.ClassOf(decl)
	if decl.Kind == parser.KindInterfaceDecl {
		return typeFilter{kinds: []types.ElementKind{types.ElemInterface}, exclude: self}
	}
	return typeFilter{kinds: []types.ElementKind{types.ElemClass}, notFinal: true, exclude: self}
}

func (env *Env) permitsFilter(clause *parser.Path) typeFilter {
	f := typeFilter{kinds: []types.ElementKind{types.ElemClass, types.ElemInterface, types.ElemRecord}}
	if self := env.Info.ClassOf(clause.Parent().Leaf()); self != nil {
		f.base = self.Type
		f.exclude = self
	}
	return f
}

// addModules offers the next segment of the module names below qualifier.
func (r *results) addModules(qualifier string) {
	env := r.env
	if env.index == nil {
		return
	}
	prefix := ""
	if qualifier != "" {
		prefix = qualifier + "."
	}
	for _, name := range env.index.ModuleNames(prefix) {
		rest := name[len(prefix):]
		if i := strings.IndexByte(rest, '.'); i >= 0 {
			rest = rest[:i]
		}
		if rest != "" && env.matcher.Matches(rest) {
			r.add(Candidate{Kind: KindModule, Text: rest})
		}
	}
}

func (r *results) moduleDecl(path *parser.Path, idx int) {
	env := r.env
	n := path.Leaf()
	prev := env.previousKind()
	if last := precedingChild(n, idx); last != nil && last.Kind == parser.KindModuleDirective &&
		prev != parser.TokenSemicolon {
		switch last.TokenLiteral() {
		case "exports", "opens":
			r.keyword("to", false)
		case "provides":
			r.keyword("with", false)
		}
		return
	}
	if prev == parser.TokenLBrace || prev == parser.TokenSemicolon {
		r.keywords(moduleDirectives...)
	}
}

// moduleDirective completes the first segment of a name in a directive.
func (r *results) moduleDirective(path *parser.Path, idx int) {
	env := r.env
	n := path.Leaf()
	tok, _ := env.previousToken()
	switch kw := n.TokenLiteral(); kw {
	case "requires":
		if tok.Is("requires") {
			r.keywords("transitive", "static")
		}
		r.addModules("")
	case "exports", "opens":
		if tok.Is("to") || tok.Kind == parser.TokenComma {
			r.addModules("")
		} else if countNames(n, idx) == 0 {
			r.addPackages("")
		}
	case "uses", "provides":
		r.addTypes(typeFilter{})
		r.addPackages("")
	}
}

func countNames(n *parser.Node, idx int) int {
	count := 0
	for _, c := range n.Children[:min(idx, len(n.Children))] {
		if c.Kind == parser.KindQualifiedName {
			count++
		}
	}
	return count
}

// directiveName completes a dotted name in a module directive.
func (r *results) directiveName(dir *parser.Path, at int, qualifier string) {
	n := dir.Leaf()
	switch n.TokenLiteral() {
	case "requires":
		r.addModules(qualifier)
	case "exports", "opens":
		if countNames(n, at) == 0 {
			r.addPackages(qualifier)
		} else {
			r.addModules(qualifier)
		}
	case "uses", "provides":
		r.qualifiedType(qualifier, typeFilter{})
	}
}

// classHeader offers the clause keywords after the name of a class.
func (r *results) classHeader(path *parser.Path, idx int) {
	env := r.env
	n := path.Leaf()
	name := n.FirstChildOfKind(parser.KindIdentifier)
	if name == nil || !env.before(name) {
		return
	}
	env.insideClassHeader = true
	has := func(k parser.NodeKind) bool {
		c := n.FirstChildOfKind(k)
		return c != nil && env.Start(c) < env.Offset
	}
	sealed := n.HasModifier("sealed")
	switch n.Kind {
	case parser.KindClassDecl:
		if !has(parser.KindExtendsClause) && !has(parser.KindImplementsClause) && !has(parser.KindPermitsClause) {
			r.keyword("extends", false)
		}
		if !has(parser.KindImplementsClause) && !has(parser.KindPermitsClause) {
			r.keyword("implements", false)
		}
	case parser.KindInterfaceDecl:
		if !has(parser.KindExtendsClause) && !has(parser.KindPermitsClause) {
			r.keyword("extends", false)
		}
	case parser.KindEnumDecl, parser.KindRecordDecl:
		if !has(parser.KindImplementsClause) {
			r.keyword("implements", false)
		}
	}
	if sealed && !has(parser.KindPermitsClause) && env.Options.atLeast(17) {
		r.keyword("permits", false)
	}
}

// supertypeClause offers the types of an extends, implements or permits
// clause, or the next clause keyword after a complete type.
func (r *results) supertypeClause(path *parser.Path) {
	env := r.env
	n := path.Leaf()
	decl := path.Parent()
	switch env.previousKind() {
	case parser.TokenIdent, parser.TokenGT:
		if tok, _ := env.previousToken(); !tok.Is("permits") {
			r.classHeader(decl, len(decl.Leaf().Children))
			return
		}
	}
	for _, c := range n.Children {
		if env.before(c) {
			if sym := env.Info.ElementOf(path.Child(c)); sym != nil {
				env.Exclude(sym)
			}
		}
	}
	switch n.Kind {
	case parser.KindExtendsClause:
		env.afterExtends = true
		r.addTypes(env.extendsFilter(path))
	case parser.KindImplementsClause:
		r.addTypes(interfaceFilter)
	case parser.KindPermitsClause:
		r.addTypes(env.permitsFilter(path))
	}
}

// throwsClause offers exception types, those the body throws first.
func (r *results) throwsClause(path *parser.Path) {
	env := r.env
	if env.previousKind() == parser.TokenIdent {
		return
	}
	for _, c := range path.Leaf().Children {
		if env.before(c) {
			if sym := env.Info.ElementOf(path.Child(c)); sym != nil {
				env.Exclude(sym)
			}
		}
	}
	if method := path.Parent(); method != nil {
		for _, t := range env.Info.ThrownInBody(method) {
			if t.Kind == types.KindDeclared && env.accessible(t.Sym, nil) {
				c := r.typeCandidate(t.Sym, typeFilter{})
				c.SmartType = true
				r.add(c)
			}
		}
	}
	r.addTypes(env.throwableFilter())
}

// enclosingDecl returns the declaration owning a class body.
func enclosingDecl(body *parser.Path) *parser.Node {
	if p := body.Parent(); p != nil {
		return p.Leaf()
	}
	return nil
}

func (r *results) classBody(path *parser.Path, idx int) {
	env := r.env
	n := path.Leaf()
	decl := enclosingDecl(path)
	if decl != nil && decl.Kind == parser.KindEnumDecl {
		switch env.previousKind() {
		case parser.TokenLBrace, parser.TokenComma:
			return
		}
	}
	cls := env.Scope().Class
	var mods *parser.Node
	if prev := precedingChild(n, idx); prev != nil && prev.Kind == parser.KindModifiers {
		mods = prev
	}
	r.memberStart(decl, mods)
	if mods != nil || cls == nil {
		return
	}
	r.overrides(cls)
	if decl != nil && decl.Kind == parser.KindClassDecl {
		r.accessors(cls)
		r.constructors(cls, n)
	}
}

// memberStart offers what can begin a member after the modifiers in
// mods: the remaining modifiers and the member types.
func (r *results) memberStart(decl, mods *parser.Node) {
	used := usedModifiers(mods)
	if decl == nil || decl.Kind != parser.KindInterfaceDecl {
		used["default"] = true
	} else {
		for _, kw := range []string{"protected", "synchronized", "native", "transient", "volatile"} {
			used[kw] = true
		}
	}
	r.addVersioned(memberModifiers, used)
	r.addVersioned(classKeywords, nil)
	r.addPrimitiveTypes(true)
	r.addTypes(typeFilter{})
}

// overrides offers the inherited methods cls can override or must
// implement.
func (r *results) overrides(cls *types.Symbol) {
	env := r.env
	if cls.Kind == types.ElemAnnotationType {
		return
	}
	s := env.Symtab()
	for _, m := range s.AllMembers(cls.Type) {
		if m.Kind != types.ElemMethod || m.Owner == cls || m.IsStatic() || m.Has(types.FlagFinal) || m.Has(types.FlagPrivate) {
			continue
		}
		if !env.matcher.Matches(m.Name) || !env.accessible(m, cls.Type) {
			continue
		}
		r.add(Candidate{
			Kind:      KindOverrideMethod,
			Symbol:    m,
			Type:      s.MemberType(cls.Type, m),
			Site:      cls.Type,
			Implement: m.Has(types.FlagAbstract),
		})
	}
}

// accessors offers a getter and a setter for each field of cls that
// lacks one.
func (r *results) accessors(cls *types.Symbol) {
	members := cls.Members()
	declares := func(name string, params int) bool {
		for _, m := range members {
			if m.Kind == types.ElemMethod && m.Name == name && len(m.Params) == params {
				return true
			}
		}
		return false
	}
	for _, f := range members {
		if f.Kind != types.ElemField {
			continue
		}
		if !declares(accessorName(f, false), 0) {
			r.add(Candidate{Kind: KindGetterSetter, Symbol: f, Type: f.Type, Site: cls.Type})
		}
		if !f.Has(types.FlagFinal) && !declares(accessorName(f, true), 1) {
			r.add(Candidate{Kind: KindGetterSetter, Symbol: f, Type: f.Type, Site: cls.Type, Setter: true})
		}
	}
}

// constructors offers a default constructor when body declares none, and
// a constructor initializing the instance fields that have no
// initializer.
func (r *results) constructors(cls *types.Symbol, body *parser.Node) {
	env := r.env
	s := env.Symtab()
	if body.FirstChildOfKind(parser.KindConstructorDecl) == nil {
		r.add(Candidate{Kind: KindDefaultConstructor, Symbol: cls, Type: cls.Type})
	}
	var fields []*types.Symbol
	for _, decl := range body.ChildrenOfKind(parser.KindFieldDecl) {
		if decl.HasModifier("static") {
			continue
		}
		for _, d := range decl.ChildrenOfKind(parser.KindVarDeclarator) {
			name := d.Child(0)
			if d.Token != nil || name == nil || name.IsError() {
				continue
			}
			if f := s.FindField(cls.Type, name.TokenLiteral()); f != nil && f.Owner == cls {
				fields = append(fields, f)
			}
		}
	}
	if len(fields) > 0 {
		r.add(Candidate{Kind: KindInitializeAllConstructor, Symbol: cls, Type: cls.Type, Fields: fields})
	}
}

// modifiers handles a caret between the modifiers of a declaration.
func (r *results) modifiers(path *parser.Path) {
	parent := path.Parent()
	if parent == nil {
		return
	}
	switch p := parent.Leaf(); {
	case p.Kind == parser.KindCompilationUnit:
		r.addVersioned(classModifiers, usedModifiers(path.Leaf()))
		r.addVersioned(classKeywords, nil)
	case p.Kind == parser.KindClassBody:
		r.memberStart(enclosingDecl(parent), path.Leaf())
	case p.Kind.IsTypeDecl() || p.Kind == parser.KindFieldDecl || p.Kind == parser.KindMethodDecl:
		if body := parent.Parent(); body != nil && body.Leaf().Kind == parser.KindClassBody {
			r.memberStart(enclosingDecl(body), path.Leaf())
		}
	}
}

func (r *results) fieldDecl(path *parser.Path, idx int) {
	if idx != 1 {
		return
	}
	var decl *parser.Node
	if body := path.Parent(); body != nil {
		decl = enclosingDecl(body)
	}
	r.memberStart(decl, path.Leaf().Child(0))
}

// methodDecl offers the return type of a method being declared, or the
// keywords after its parameters.
func (r *results) methodDecl(path *parser.Path, idx int) {
	env := r.env
	n := path.Leaf()
	if c := n.Child(idx); c != nil && (c.Kind == parser.KindType || c.Kind == parser.KindArrayType) {
		var decl *parser.Node
		if body := path.Parent(); body != nil {
			decl = enclosingDecl(body)
		}
		r.memberStart(decl, n.Child(0))
		return
	}
	params := n.FirstChildOfKind(parser.KindParameters)
	if params == nil || !env.before(params) || env.previousKind() != parser.TokenRParen {
		return
	}
	if n.FirstChildOfKind(parser.KindThrowsClause) == nil {
		r.keyword("throws", false)
	}
	if n.Kind == parser.KindMethodDecl && n.FirstChildOfKind(parser.KindDefaultValue) == nil {
		if body := path.Parent(); body != nil && enclosingDecl(body) != nil &&
			enclosingDecl(body).Kind == parser.KindAnnotationDecl {
			r.keyword("default", false)
		}
	}
}

func (r *results) parameters(path *parser.Path) {
	env := r.env
	if parent := path.Parent(); parent != nil && parent.Leaf().Kind == parser.KindLambdaExpr {
		return
	}
	switch env.previousKind() {
	case parser.TokenLParen, parser.TokenComma:
		r.keyword("final", false)
	case parser.TokenFinal:
	default:
		return
	}
	r.addPrimitiveTypes(false)
	r.addTypes(typeFilter{})
}

func (r *results) parameter(path *parser.Path, idx int) {
	n := path.Leaf()
	parent := path.Parent()
	if idx != 1 {
		return
	}
	if parent != nil && parent.Leaf().Kind == parser.KindCatchClause {
		r.catchTypes(parent.Parent(), nil)
		return
	}
	if !n.HasModifier("final") {
		r.keyword("final", false)
	}
	r.addPrimitiveTypes(false)
	r.addTypes(typeFilter{})
}

func (r *results) typeParameter(path *parser.Path, idx int) {
	if idx < 1 {
		return
	}
	switch r.env.previousKind() {
	case parser.TokenIdent:
		if idx == 1 {
			r.keyword("extends", false)
		}
	case parser.TokenExtends, parser.TokenBitAnd:
		r.addTypes(typeFilter{})
	}
}

// annotationType returns the annotation type the annotation at path
// names.
func (env *Env) annotationType(path *parser.Path) *types.Symbol {
	n := path.Leaf()
	if n.Child(0) == nil {
		return nil
	}
	sym := env.Info.ElementOf(path.Child(n.Child(0)))
	if sym == nil || sym.Kind != types.ElemAnnotationType {
		return nil
	}
	return sym
}

func (r *results) annotation(path *parser.Path, idx int) {
	env := r.env
	n := path.Leaf()
	if idx == 0 {
		r.addTypes(annotationFilter)
		return
	}
	ann := env.annotationType(path)
	if ann == nil {
		return
	}
	used := make(map[string]bool)
	for _, el := range n.ChildrenOfKind(parser.KindAnnotationElement) {
		if el.Token != nil && env.before(el) {
			used[el.Child(0).TokenLiteral()] = true
		}
	}
	var value *types.Symbol
	for _, m := range ann.Members() {
		if m.Kind != types.ElemMethod || used[m.Name] {
			continue
		}
		if m.Name == "value" {
			value = m
		}
		r.add(Candidate{Kind: KindExecutable, Symbol: m, Type: m.Type, Site: ann.Type, AssignTo: -1})
	}
	if value != nil && len(used) == 0 && env.previousKind() == parser.TokenLParen {
		r.attributeValues(value.Type)
	}
}

func (r *results) annotationElement(path *parser.Path) {
	env := r.env
	n := path.Leaf()
	parent := path.Parent()
	if parent == nil || parent.Leaf().Kind != parser.KindAnnotation {
		return
	}
	name := "value"
	if n.Token != nil {
		if n.Token.Offset() >= env.local(n, env.Offset) {
			return
		}
		name = n.Child(0).TokenLiteral()
	}
	ann := env.annotationType(parent)
	if ann == nil {
		r.expression()
		return
	}
	for _, m := range env.Symtab().FindMethods(ann.Type, name) {
		r.attributeValues(m.Type)
		return
	}
}

func (r *results) defaultValue(path *parser.Path) {
	env := r.env
	method := path.Parent()
	if method == nil {
		return
	}
	for _, c := range method.Leaf().Children {
		if c.Kind == parser.KindType || c.Kind == parser.KindArrayType {
			r.attributeValues(env.Info.ResolveType(c, env.scopeAt(method)))
			return
		}
	}
}

// attributeValues offers the values an annotation element of type t
// accepts.
func (r *results) attributeValues(t *types.Type) {
	if t == nil || t.IsErroneous() {
		r.expression()
		return
	}
	if t.Kind == types.KindArray {
		t = t.Elem
	}
	switch {
	case t.Kind == types.KindBoolean:
		r.add(Candidate{Kind: KindAttributeValue, Text: "true", Type: t, SmartType: true})
		r.add(Candidate{Kind: KindAttributeValue, Text: "false", Type: t, SmartType: true})
	case t.Kind == types.KindDeclared && t.Sym.Kind == types.ElemEnum:
		for _, c := range t.Sym.EnumConstants() {
			r.add(Candidate{Kind: KindAttributeValue, Text: c.Name, Symbol: c, Type: t, SmartType: true})
		}
	case t.Kind == types.KindDeclared && t.Sym.QualifiedName == "java.lang.Class":
		r.addPrimitiveTypes(true)
		r.addTypes(typeFilter{})
	case t.Kind == types.KindDeclared && t.Sym.Kind == types.ElemAnnotationType:
		r.addTypes(annotationFilter)
	default:
		r.expression()
	}
}
