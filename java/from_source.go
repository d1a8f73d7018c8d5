package java

import (
	"bytes"
	"sort"
	"strings"

	"github.com/dhamidi/javacomplete/java/parser"
)

// javadocFinder locates the /** comment directly preceding a declaration.
type javadocFinder struct {
	tokens []parser.Token
}

func newJavadocFinder(tokens []parser.Token) *javadocFinder {
	return &javadocFinder{tokens: tokens}
}

func (jf *javadocFinder) FindForNode(node *parser.Node) string {
	if jf == nil || node == nil {
		return ""
	}
	i := sort.Search(len(jf.tokens), func(i int) bool {
		return jf.tokens[i].Offset() >= node.Start()
	})
	for i--; i >= 0; i-- {
		tok := jf.tokens[i]
		switch {
		case tok.Kind == parser.TokenWhitespace || tok.Kind == parser.TokenLineComment:
			continue
		case tok.Kind == parser.TokenComment && strings.HasPrefix(tok.Literal, "/**"):
			return tok.Literal
		}
		return ""
	}
	return ""
}

func ClassModelsFromSource(source []byte, opts ...parser.Option) ([]*ClassModel, error) {
	p := parser.ParseCompilationUnit(bytes.NewReader(source), opts...)
	node := p.Finish()
	if node == nil {
		return nil, nil
	}
	return ClassModelsFromCompilationUnit(node, p.Tokens()), nil
}

// ClassModelsFromCompilationUnit returns a model for every class declared
// by cu, nested classes included. tokens must be the tokens cu was parsed
// from; they are used to find Javadoc comments.
func ClassModelsFromCompilationUnit(cu *parser.Node, tokens []parser.Token) []*ClassModel {
	pkg := PackageOf(cu)
	b := &modelBuilder{
		pkg:      pkg,
		imports:  ImportsOf(cu),
		file:     cu.Span.Start.File,
		jf:       newJavadocFinder(tokens),
		resolver: newTypeResolver(pkg, ImportsOf(cu)),
	}
	for _, child := range cu.Children {
		if child.Kind.IsTypeDecl() {
			b.registerClasses(child, qualify(pkg, child.Name()))
		}
	}
	var models []*ClassModel
	for _, child := range cu.Children {
		if child.Kind.IsTypeDecl() && child.Name() != "" {
			models = append(models, b.classModels(child, nil)...)
		}
	}
	return models
}

func ModuleModelFromCompilationUnit(cu *parser.Node) *ModuleModel {
	decl := cu.FirstChildOfKind(parser.KindModuleDecl)
	if decl == nil {
		return nil
	}
	m := &ModuleModel{
		Name:       QualifiedNameString(decl.FirstChildOfKind(parser.KindQualifiedName)),
		IsOpen:     decl.Token != nil,
		SourceFile: cu.Span.Start.File,
	}
	for _, d := range decl.ChildrenOfKind(parser.KindModuleDirective) {
		name := QualifiedNameString(d.FirstChildOfKind(parser.KindQualifiedName))
		switch d.TokenLiteral() {
		case "requires":
			m.Requires = append(m.Requires, name)
		case "exports":
			m.Exports = append(m.Exports, name)
		}
	}
	return m
}

func PackageOf(cu *parser.Node) string {
	pkgDecl := cu.FirstChildOfKind(parser.KindPackageDecl)
	if pkgDecl == nil {
		return ""
	}
	return QualifiedNameString(pkgDecl.FirstChildOfKind(parser.KindQualifiedName))
}

// QualifiedNameString joins the identifiers of a QualifiedName node,
// stopping at the first missing part.
func QualifiedNameString(qn *parser.Node) string {
	if qn == nil {
		return ""
	}
	if qn.Kind == parser.KindIdentifier {
		return qn.TokenLiteral()
	}
	var parts []string
	for _, child := range qn.Children {
		if child.Kind != parser.KindIdentifier || child.Token == nil {
			break
		}
		parts = append(parts, child.Token.Literal)
	}
	return strings.Join(parts, ".")
}

func ImportsOf(cu *parser.Node) []Import {
	var imports []Import
	for _, child := range cu.ChildrenOfKind(parser.KindImportDecl) {
		qn := child.FirstChildOfKind(parser.KindQualifiedName)
		if qn == nil {
			continue
		}
		imp := Import{Static: child.Token != nil}
		var parts []string
		for _, part := range qn.Children {
			if part.TokenLiteral() == "*" {
				imp.Wildcard = true
				break
			}
			if part.IsError() {
				break
			}
			parts = append(parts, part.TokenLiteral())
		}
		imp.Name = strings.Join(parts, ".")
		if imp.Name != "" {
			imports = append(imports, imp)
		}
	}
	return imports
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

type typeResolver struct {
	pkg      string
	imports  []Import
	classes  map[string]string // simple name -> canonical name of classes declared in the file
	typeVars []map[string]bool
}

func newTypeResolver(pkg string, imports []Import) *typeResolver {
	return &typeResolver{
		pkg:     pkg,
		imports: imports,
		classes: make(map[string]string),
	}
}

func (r *typeResolver) registerClass(simpleName, fullName string) {
	if _, ok := r.classes[simpleName]; !ok {
		r.classes[simpleName] = fullName
	}
}

func (r *typeResolver) pushTypeVars(params []TypeParameterModel) {
	vars := make(map[string]bool, len(params))
	for _, p := range params {
		vars[p.Name] = true
	}
	r.typeVars = append(r.typeVars, vars)
}

func (r *typeResolver) popTypeVars() {
	r.typeVars = r.typeVars[:len(r.typeVars)-1]
}

func (r *typeResolver) isTypeVar(name string) bool {
	for i := len(r.typeVars) - 1; i >= 0; i-- {
		if r.typeVars[i][name] {
			return true
		}
	}
	return false
}

// resolve qualifies name when the file alone determines it: classes
// declared in the file and single-type imports. Other names are returned
// unchanged and resolved later against the package and wildcard imports.
func (r *typeResolver) resolve(name string) string {
	if name == "" || IsPrimitiveName(name) || name == "void" || name == "var" {
		return name
	}
	head, rest, dotted := strings.Cut(name, ".")
	if !dotted && r.isTypeVar(name) {
		return name
	}
	if full, ok := r.classes[head]; ok {
		return joinName(full, rest, dotted)
	}
	for _, imp := range r.imports {
		if imp.Static || imp.Wildcard {
			continue
		}
		if imp.Name == head || strings.HasSuffix(imp.Name, "."+head) {
			return joinName(imp.Name, rest, dotted)
		}
	}
	return name
}

func joinName(head, rest string, dotted bool) string {
	if !dotted {
		return head
	}
	return head + "." + rest
}

type modelBuilder struct {
	pkg      string
	imports  []Import
	file     string
	jf       *javadocFinder
	resolver *typeResolver
}

func (b *modelBuilder) registerClasses(node *parser.Node, fullName string) {
	b.resolver.registerClass(node.Name(), fullName)
	body := node.FirstChildOfKind(parser.KindClassBody)
	if body == nil {
		return
	}
	for _, member := range body.Children {
		if member.Kind.IsTypeDecl() && member.Name() != "" {
			b.registerClasses(member, fullName+"."+member.Name())
		}
	}
}

func classKindOf(kind parser.NodeKind) ClassKind {
	switch kind {
	case parser.KindInterfaceDecl:
		return ClassKindInterface
	case parser.KindEnumDecl:
		return ClassKindEnum
	case parser.KindRecordDecl:
		return ClassKindRecord
	case parser.KindAnnotationDecl:
		return ClassKindAnnotation
	}
	return ClassKindClass
}

// classModels returns the model of the type declared by node followed by
// the models of its nested types.
func (b *modelBuilder) classModels(node *parser.Node, outer *ClassModel) []*ClassModel {
	model := &ClassModel{
		Kind:       classKindOf(node.Kind),
		SimpleName: node.Name(),
		Package:    b.pkg,
		Visibility: VisibilityPackage,
		SourceFile: b.file,
		Javadoc:    b.jf.FindForNode(node),
		Imports:    b.imports,
		Node:       node,
	}
	if outer != nil {
		model.Name = outer.Name + "." + model.SimpleName
		model.EnclosingClass = outer.Name
		if outer.IsInterface() {
			model.Visibility = VisibilityPublic
			model.IsStatic = true
		}
	} else {
		model.Name = qualify(b.pkg, model.SimpleName)
	}

	if mods := node.FirstChildOfKind(parser.KindModifiers); mods != nil {
		m := b.modifiers(mods)
		model.Visibility = m.visibility(model.Visibility)
		model.IsFinal = m.has("final")
		model.IsAbstract = m.has("abstract")
		model.IsStatic = model.IsStatic || m.has("static")
		model.IsSealed = m.has("sealed")
		model.Annotations = m.annotations
	}
	switch model.Kind {
	case ClassKindEnum, ClassKindRecord:
		model.IsFinal = true
		model.IsStatic = model.IsStatic || outer != nil
	case ClassKindInterface, ClassKindAnnotation:
		model.IsAbstract = true
		model.IsStatic = model.IsStatic || outer != nil
	}
	model.IsDeprecated = isDeprecated(model.Annotations, model.Javadoc)

	if tps := node.FirstChildOfKind(parser.KindTypeParameters); tps != nil {
		model.TypeParameters = b.typeParameters(tps)
	}
	b.resolver.pushTypeVars(model.TypeParameters)
	defer b.resolver.popTypeVars()

	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindParameters:
			for _, param := range child.ChildrenOfKind(parser.KindParameter) {
				p := b.parameter(param)
				model.RecordComponents = append(model.RecordComponents, RecordComponentModel{
					Name: p.Name, Type: p.Type, Annotations: p.Annotations,
				})
			}
		case parser.KindExtendsClause:
			types := b.clauseTypes(child)
			if model.Kind == ClassKindInterface {
				model.Interfaces = append(model.Interfaces, types...)
			} else if len(types) > 0 {
				model.SuperClass = &types[0]
			}
		case parser.KindImplementsClause:
			model.Interfaces = append(model.Interfaces, b.clauseTypes(child)...)
		case parser.KindPermitsClause:
			for _, t := range b.clauseTypes(child) {
				model.PermittedSubclasses = append(model.PermittedSubclasses, t.Name)
			}
		}
	}
	b.implicitSupertypes(model)

	var nested []*ClassModel
	if body := node.FirstChildOfKind(parser.KindClassBody); body != nil {
		nested = b.members(body, model)
	}
	b.implicitMembers(model)
	return append([]*ClassModel{model}, nested...)
}

func (b *modelBuilder) implicitSupertypes(model *ClassModel) {
	switch model.Kind {
	case ClassKindClass:
		if model.SuperClass == nil && model.Name != "java.lang.Object" {
			model.SuperClass = &TypeModel{Name: "java.lang.Object"}
		}
	case ClassKindEnum:
		self := TypeModel{Name: model.Name}
		model.SuperClass = &TypeModel{Name: "java.lang.Enum", TypeArguments: []TypeArgumentModel{{Type: &self}}}
	case ClassKindRecord:
		model.SuperClass = &TypeModel{Name: "java.lang.Record"}
	case ClassKindAnnotation:
		model.Interfaces = append(model.Interfaces, TypeModel{Name: "java.lang.annotation.Annotation"})
	}
}

func (b *modelBuilder) members(body *parser.Node, model *ClassModel) []*ClassModel {
	var nested []*ClassModel
	iface := model.IsInterface()
	for _, member := range body.Children {
		switch member.Kind {
		case parser.KindEnumConstant:
			name := member.Name()
			if name == "" {
				continue
			}
			model.EnumConstants = append(model.EnumConstants, name)
			mods := b.modifiers(member.FirstChildOfKind(parser.KindModifiers))
			model.Fields = append(model.Fields, FieldModel{
				Name:           name,
				Type:           TypeModel{Name: model.Name},
				Visibility:     VisibilityPublic,
				IsStatic:       true,
				IsFinal:        true,
				IsEnumConstant: true,
				IsDeprecated:   isDeprecated(mods.annotations, b.jf.FindForNode(member)),
				Annotations:    mods.annotations,
				Node:           member,
			})
		case parser.KindFieldDecl:
			model.Fields = append(model.Fields, b.fields(member, iface)...)
		case parser.KindMethodDecl:
			if m, ok := b.method(member, iface); ok {
				model.Methods = append(model.Methods, m)
			}
		case parser.KindConstructorDecl:
			model.Methods = append(model.Methods, b.constructor(member, model))
		default:
			if member.Kind.IsTypeDecl() && member.Name() != "" {
				model.InnerClasses = append(model.InnerClasses, model.Name+"."+member.Name())
				nested = append(nested, b.classModels(member, model)...)
			}
		}
	}
	return nested
}

// implicitMembers adds the members the language declares implicitly:
// default constructors, enum helpers and record accessors.
func (b *modelBuilder) implicitMembers(model *ClassModel) {
	if model.Kind == ClassKindRecord {
		for _, c := range model.RecordComponents {
			if model.Field(c.Name) == nil {
				model.Fields = append(model.Fields, FieldModel{
					Name: c.Name, Type: c.Type, Visibility: VisibilityPrivate, IsFinal: true, Node: model.Node,
				})
			}
			if !hasMethod(model, c.Name, 0) {
				model.Methods = append(model.Methods, MethodModel{
					Name: c.Name, ReturnType: c.Type, Visibility: VisibilityPublic, Node: model.Node,
				})
			}
		}
	}
	if model.Kind == ClassKindEnum {
		self := TypeModel{Name: model.Name}
		model.Methods = append(model.Methods,
			MethodModel{Name: "values", ReturnType: TypeModel{Name: model.Name, ArrayDepth: 1}, Visibility: VisibilityPublic, IsStatic: true},
			MethodModel{
				Name: "valueOf", ReturnType: self, Visibility: VisibilityPublic, IsStatic: true,
				Parameters: []ParameterModel{{Name: "name", Type: TypeModel{Name: "java.lang.String"}}},
			},
		)
	}
	if model.IsInterface() {
		return
	}
	for _, m := range model.Methods {
		if m.IsConstructor() {
			return
		}
	}
	ctor := MethodModel{Name: ConstructorName, ReturnType: TypeModel{Name: "void"}, Visibility: model.Visibility, Node: model.Node}
	switch model.Kind {
	case ClassKindEnum:
		ctor.Visibility = VisibilityPrivate
	case ClassKindRecord:
		for _, c := range model.RecordComponents {
			ctor.Parameters = append(ctor.Parameters, ParameterModel{Name: c.Name, Type: c.Type})
		}
	}
	model.Methods = append(model.Methods, ctor)
}

func hasMethod(model *ClassModel, name string, arity int) bool {
	for _, m := range model.MethodsNamed(name) {
		if len(m.Parameters) == arity {
			return true
		}
	}
	return false
}

type modifierSet struct {
	keywords    map[string]bool
	annotations []AnnotationModel
}

func (m modifierSet) has(keyword string) bool {
	return m.keywords[keyword]
}

func (m modifierSet) visibility(def Visibility) Visibility {
	switch {
	case m.has("public"):
		return VisibilityPublic
	case m.has("protected"):
		return VisibilityProtected
	case m.has("private"):
		return VisibilityPrivate
	}
	return def
}

func (b *modelBuilder) modifiers(mods *parser.Node) modifierSet {
	set := modifierSet{keywords: make(map[string]bool)}
	if mods == nil {
		return set
	}
	for _, child := range mods.Children {
		switch child.Kind {
		case parser.KindAnnotation:
			set.annotations = append(set.annotations, b.annotation(child))
		case parser.KindIdentifier:
			set.keywords[child.TokenLiteral()] = true
		}
	}
	return set
}

func isDeprecated(annotations []AnnotationModel, javadoc string) bool {
	for _, a := range annotations {
		if a.Type == "Deprecated" || a.Type == "java.lang.Deprecated" {
			return true
		}
	}
	return strings.Contains(javadoc, "@deprecated")
}

func (b *modelBuilder) fields(node *parser.Node, iface bool) []FieldModel {
	mods := b.modifiers(node.FirstChildOfKind(parser.KindModifiers))
	javadoc := b.jf.FindForNode(node)
	var base TypeModel
	if t := typeChild(node); t != nil {
		base = b.typeModel(t)
	}
	var fields []FieldModel
	for _, d := range node.ChildrenOfKind(parser.KindVarDeclarator) {
		name := d.Name()
		if name == "" {
			continue
		}
		f := FieldModel{
			Name:         name,
			Type:         base,
			Visibility:   mods.visibility(VisibilityPackage),
			IsStatic:     mods.has("static"),
			IsFinal:      mods.has("final"),
			IsDeprecated: isDeprecated(mods.annotations, javadoc),
			Javadoc:      javadoc,
			Annotations:  mods.annotations,
			Node:         d,
		}
		if iface {
			f.Visibility = VisibilityPublic
			f.IsStatic = true
			f.IsFinal = true
		}
		fields = append(fields, f)
	}
	return fields
}

// typeChild returns the declared type of a field, method, parameter or
// local variable declaration.
func typeChild(node *parser.Node) *parser.Node {
	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindType, parser.KindArrayType, parser.KindUnionType:
			return child
		}
	}
	return nil
}

func (b *modelBuilder) method(node *parser.Node, iface bool) (MethodModel, bool) {
	name := node.Name()
	if name == "" {
		return MethodModel{}, false
	}
	mods := b.modifiers(node.FirstChildOfKind(parser.KindModifiers))
	m := MethodModel{
		Name:        name,
		Visibility:  mods.visibility(VisibilityPackage),
		IsStatic:    mods.has("static"),
		IsFinal:     mods.has("final"),
		IsAbstract:  mods.has("abstract"),
		IsDefault:   mods.has("default"),
		Javadoc:     b.jf.FindForNode(node),
		Annotations: mods.annotations,
		Node:        node,
	}
	m.IsDeprecated = isDeprecated(m.Annotations, m.Javadoc)
	if iface {
		if m.Visibility != VisibilityPrivate {
			m.Visibility = VisibilityPublic
		}
		if !m.IsDefault && !m.IsStatic && m.Visibility != VisibilityPrivate {
			m.IsAbstract = true
		}
	}
	if tps := node.FirstChildOfKind(parser.KindTypeParameters); tps != nil {
		m.TypeParameters = b.typeParameters(tps)
	}
	b.resolver.pushTypeVars(m.TypeParameters)
	defer b.resolver.popTypeVars()

	if t := typeChild(node); t != nil {
		m.ReturnType = b.typeModel(t)
	}
	b.signature(node, &m)
	return m, true
}

func (b *modelBuilder) constructor(node *parser.Node, owner *ClassModel) MethodModel {
	mods := b.modifiers(node.FirstChildOfKind(parser.KindModifiers))
	m := MethodModel{
		Name:        ConstructorName,
		ReturnType:  TypeModel{Name: "void"},
		Visibility:  mods.visibility(VisibilityPackage),
		Javadoc:     b.jf.FindForNode(node),
		Annotations: mods.annotations,
		Node:        node,
	}
	m.IsDeprecated = isDeprecated(m.Annotations, m.Javadoc)
	if tps := node.FirstChildOfKind(parser.KindTypeParameters); tps != nil {
		m.TypeParameters = b.typeParameters(tps)
	}
	b.resolver.pushTypeVars(m.TypeParameters)
	defer b.resolver.popTypeVars()

	b.signature(node, &m)
	if node.FirstChildOfKind(parser.KindParameters) == nil {
		for _, c := range owner.RecordComponents {
			m.Parameters = append(m.Parameters, ParameterModel{Name: c.Name, Type: c.Type})
		}
	}
	return m
}

func (b *modelBuilder) signature(node *parser.Node, m *MethodModel) {
	if params := node.FirstChildOfKind(parser.KindParameters); params != nil {
		for _, param := range params.ChildrenOfKind(parser.KindParameter) {
			m.Parameters = append(m.Parameters, b.parameter(param))
			if param.TokenLiteral() == "..." {
				m.IsVarargs = true
			}
		}
	}
	if throws := node.FirstChildOfKind(parser.KindThrowsClause); throws != nil {
		m.Exceptions = b.clauseTypes(throws)
	}
}

func (b *modelBuilder) parameter(node *parser.Node) ParameterModel {
	mods := b.modifiers(node.FirstChildOfKind(parser.KindModifiers))
	p := ParameterModel{
		Name:        node.Name(),
		IsFinal:     mods.has("final"),
		Annotations: mods.annotations,
	}
	if t := typeChild(node); t != nil {
		p.Type = b.typeModel(t)
	}
	if node.TokenLiteral() == "..." {
		p.Type.ArrayDepth++
	}
	return p
}

func (b *modelBuilder) clauseTypes(clause *parser.Node) []TypeModel {
	var types []TypeModel
	for _, child := range clause.Children {
		if child.Kind == parser.KindType && child.FirstChildOfKind(parser.KindQualifiedName) != nil {
			if t := b.typeModel(child); t.Name != "" {
				types = append(types, t)
			}
		}
	}
	return types
}

func (b *modelBuilder) typeParameters(node *parser.Node) []TypeParameterModel {
	var params []TypeParameterModel
	for _, tp := range node.ChildrenOfKind(parser.KindTypeParameter) {
		params = append(params, TypeParameterModel{Name: tp.Name()})
	}
	// Bounds may refer to any parameter of the list.
	b.resolver.pushTypeVars(params)
	defer b.resolver.popTypeVars()
	for i, tp := range node.ChildrenOfKind(parser.KindTypeParameter) {
		if i >= len(params) {
			break
		}
		for _, bound := range tp.Children {
			if bound.Kind == parser.KindType || bound.Kind == parser.KindArrayType {
				params[i].Bounds = append(params[i].Bounds, b.typeModel(bound))
			}
		}
	}
	return params
}

func (b *modelBuilder) typeModel(node *parser.Node) TypeModel {
	switch node.Kind {
	case parser.KindArrayType:
		t := b.typeModel(node.Child(0))
		t.ArrayDepth++
		return t
	case parser.KindUnionType:
		return b.typeModel(node.Child(0))
	case parser.KindType:
		if node.Token != nil {
			return TypeModel{Name: node.Token.Literal}
		}
		t := TypeModel{Name: b.resolver.resolve(QualifiedNameString(node.FirstChildOfKind(parser.KindQualifiedName)))}
		if args := node.FirstChildOfKind(parser.KindTypeArguments); args != nil {
			for _, arg := range args.Children {
				t.TypeArguments = append(t.TypeArguments, b.typeArgument(arg))
			}
		}
		return t
	}
	return TypeModel{}
}

func (b *modelBuilder) typeArgument(node *parser.Node) TypeArgumentModel {
	if node.Kind != parser.KindWildcard {
		t := b.typeModel(node)
		return TypeArgumentModel{Type: &t}
	}
	arg := TypeArgumentModel{IsWildcard: true, BoundKind: node.TokenLiteral()}
	if bound := node.Child(0); bound != nil {
		t := b.typeModel(bound)
		arg.Bound = &t
	}
	return arg
}

func (b *modelBuilder) annotation(node *parser.Node) AnnotationModel {
	ann := AnnotationModel{
		Type: b.resolver.resolve(QualifiedNameString(node.FirstChildOfKind(parser.KindQualifiedName))),
	}
	for _, el := range node.ChildrenOfKind(parser.KindAnnotationElement) {
		if ann.Values == nil {
			ann.Values = make(map[string]interface{})
		}
		name := "value"
		valueNode := el.Child(0)
		if el.Token != nil {
			name = el.Child(0).TokenLiteral()
			valueNode = el.Child(1)
		}
		ann.Values[name] = b.annotationValue(valueNode)
	}
	return ann
}

func (b *modelBuilder) annotationValue(node *parser.Node) interface{} {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case parser.KindLiteral, parser.KindIdentifier:
		return node.TokenLiteral()
	case parser.KindAnnotation:
		return b.annotation(node)
	case parser.KindArrayInit:
		var values []interface{}
		for _, child := range node.Children {
			values = append(values, b.annotationValue(child))
		}
		return values
	case parser.KindFieldAccess:
		var parts []string
		node.Walk(func(n *parser.Node) bool {
			if n.Kind == parser.KindIdentifier {
				parts = append(parts, n.TokenLiteral())
			}
			return true
		})
		return strings.Join(parts, ".")
	}
	return nil
}
