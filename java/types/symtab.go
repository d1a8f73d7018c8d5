package types

import (
	"strings"

	"github.com/dhamidi/javacomplete/java"
)

var boxes = map[TypeKind]string{
	KindBoolean: "java.lang.Boolean",
	KindByte:    "java.lang.Byte",
	KindShort:   "java.lang.Short",
	KindChar:    "java.lang.Character",
	KindInt:     "java.lang.Integer",
	KindLong:    "java.lang.Long",
	KindFloat:   "java.lang.Float",
	KindDouble:  "java.lang.Double",
}

// Symtab turns class models into symbols and answers type questions about
// them. A Symtab belongs to one compilation and is not safe for concurrent
// use.
type Symtab struct {
	finder   java.ClassFinder
	classes  map[string]*Symbol
	packages map[string]*Symbol
	length   *Symbol
}

func NewSymtab(finder java.ClassFinder) *Symtab {
	return &Symtab{
		finder:   finder,
		classes:  make(map[string]*Symbol),
		packages: make(map[string]*Symbol),
	}
}

func (s *Symtab) Finder() java.ClassFinder {
	return s.finder
}

// Class returns the symbol of the class with the given canonical name, or
// nil when no such class is known.
func (s *Symtab) Class(name string) *Symbol {
	if sym, ok := s.classes[name]; ok {
		return sym
	}
	model := s.finder.FindClass(name)
	if model == nil {
		return nil
	}
	return s.classFromModel(model)
}

func (s *Symtab) classFromModel(model *java.ClassModel) *Symbol {
	if sym, ok := s.classes[model.Name]; ok {
		return sym
	}
	sym := &Symbol{
		Kind:          ElementKindOf(model.Kind),
		Name:          model.SimpleName,
		QualifiedName: model.Name,
		Package:       model.Package,
		Flags:         flagsOf(model.Visibility),
		Javadoc:       model.Javadoc,
		Node:          model.Node,
		Model:         model,
		symtab:        s,
	}
	s.classes[model.Name] = sym
	if model.IsStatic {
		sym.Flags |= FlagStatic
	}
	if model.IsFinal {
		sym.Flags |= FlagFinal
	}
	if model.IsAbstract {
		sym.Flags |= FlagAbstract
	}
	if model.IsSealed {
		sym.Flags |= FlagSealed
	}
	if model.IsDeprecated {
		sym.Flags |= FlagDeprecated
	}
	if model.EnclosingClass != "" {
		sym.Owner = s.Class(model.EnclosingClass)
	}
	if sym.Owner == nil {
		sym.Owner = s.Package(model.Package)
	}
	sym.TypeParams = s.typeParams(model.TypeParameters, sym)
	sym.Type = &Type{Kind: KindDeclared, Sym: sym}
	for _, tp := range sym.TypeParams {
		sym.Type.Args = append(sym.Type.Args, tp.Type)
	}
	return sym
}

// Package returns the symbol of a package. Packages need not be known to
// the finder.
func (s *Symtab) Package(name string) *Symbol {
	if sym, ok := s.packages[name]; ok {
		return sym
	}
	simple := name[strings.LastIndex(name, ".")+1:]
	sym := &Symbol{Kind: ElemPackage, Name: simple, QualifiedName: name, Package: name, symtab: s}
	s.packages[name] = sym
	return sym
}

func (s *Symtab) typeParams(models []java.TypeParameterModel, owner *Symbol) []*Symbol {
	var params []*Symbol
	for _, tp := range models {
		sym := &Symbol{Kind: ElemTypeParameter, Name: tp.Name, Owner: owner, symtab: s}
		sym.Type = &Type{Kind: KindTypeVar, Sym: sym}
		params = append(params, sym)
	}
	ctx := owner.EnclosingClass()
	for i, tp := range models {
		for _, bound := range tp.Bounds {
			params[i].Bounds = append(params[i].Bounds, s.fromModel(bound, ctx, owner, params))
		}
	}
	return params
}

// ClassType returns the declared type of the named class applied to args,
// or an erroneous type when the class is unknown.
func (s *Symtab) ClassType(name string, args ...*Type) *Type {
	sym := s.Class(name)
	if sym == nil {
		return ErrorType(name)
	}
	return &Type{Kind: KindDeclared, Sym: sym, Args: args}
}

func (s *Symtab) Object() *Type {
	return s.ClassType("java.lang.Object")
}

func (s *Symtab) String() *Type {
	return s.ClassType("java.lang.String")
}

// Box returns the wrapper class type of a primitive, or t itself.
func (s *Symtab) Box(t *Type) *Type {
	if name, ok := boxes[t.Kind]; ok {
		return s.ClassType(name)
	}
	return t
}

// Unbox returns the primitive type wrapped by t, or nil.
func (s *Symtab) Unbox(t *Type) *Type {
	if t == nil || t.Kind != KindDeclared {
		return nil
	}
	for kind, name := range boxes {
		if t.Sym.QualifiedName == name {
			for _, p := range Primitives {
				if p.Kind == kind {
					return p
				}
			}
		}
	}
	return nil
}

// ResolveName returns the class a type name denotes inside ctx, which may
// be nil for names outside any class.
func (s *Symtab) ResolveName(ctx *Symbol, name string) *Symbol {
	var model *java.ClassModel
	for c := ctx; c != nil && model == nil; c = c.Owner {
		model = c.modelOrNil()
	}
	canonical := java.ResolveTypeName(s.finder, model, name)
	if canonical == "" {
		return nil
	}
	return s.Class(canonical)
}

func (s *Symbol) modelOrNil() *java.ClassModel {
	if s == nil {
		return nil
	}
	return s.Model
}

// FromModel converts a type as written in a declaration of ctx. method,
// when set, contributes its type variables.
func (s *Symtab) FromModel(tm java.TypeModel, ctx, method *Symbol) *Type {
	var extra []*Symbol
	if method != nil {
		extra = method.TypeParams
	}
	return s.fromModel(tm, ctx, method, extra)
}

func (s *Symtab) fromModel(tm java.TypeModel, ctx, method *Symbol, typeVars []*Symbol) *Type {
	t := s.elementFromModel(tm, ctx, method, typeVars)
	for i := 0; i < tm.ArrayDepth; i++ {
		t = ArrayOf(t)
	}
	return t
}

func (s *Symtab) elementFromModel(tm java.TypeModel, ctx, method *Symbol, typeVars []*Symbol) *Type {
	if p := PrimitiveByName(tm.Name); p != nil {
		return p
	}
	if tm.Name == "" {
		return ErrorType("")
	}
	if !strings.Contains(tm.Name, ".") {
		if tv := LookupTypeVar(tm.Name, typeVars, ctx); tv != nil {
			return tv.Type
		}
	}
	cls := s.ResolveName(ctx, tm.Name)
	if cls == nil {
		return ErrorType(tm.Name)
	}
	t := &Type{Kind: KindDeclared, Sym: cls}
	for _, arg := range tm.TypeArguments {
		t.Args = append(t.Args, s.argFromModel(arg, ctx, method, typeVars))
	}
	return t
}

func (s *Symtab) argFromModel(arg java.TypeArgumentModel, ctx, method *Symbol, typeVars []*Symbol) *Type {
	if !arg.IsWildcard {
		if arg.Type == nil {
			return s.Wildcard(Unbounded, nil)
		}
		return s.fromModel(*arg.Type, ctx, method, typeVars)
	}
	if arg.Bound == nil {
		return s.Wildcard(Unbounded, nil)
	}
	kind := ExtendsBound
	if arg.BoundKind == "super" {
		kind = SuperBound
	}
	return s.Wildcard(kind, s.fromModel(*arg.Bound, ctx, method, typeVars))
}

func (s *Symtab) Wildcard(kind BoundKind, bound *Type) *Type {
	return &Type{Kind: KindWildcard, BoundKind: kind, Bound: bound}
}

// LookupTypeVar finds a type variable named name among extra, then among
// the type parameters of ctx and its enclosing classes.
func LookupTypeVar(name string, extra []*Symbol, ctx *Symbol) *Symbol {
	for _, tv := range extra {
		if tv.Name == name {
			return tv
		}
	}
	for c := ctx; c != nil; c = c.Owner {
		for _, tv := range c.TypeParams {
			if tv.Name == name {
				return tv
			}
		}
		if c.IsStatic() {
			break
		}
	}
	return nil
}

func (s *Symtab) complete(cls *Symbol) {
	model := cls.Model
	if model == nil {
		return
	}
	if model.SuperClass != nil {
		cls.super = s.FromModel(*model.SuperClass, cls, nil)
	}
	for _, iface := range model.Interfaces {
		cls.interfaces = append(cls.interfaces, s.FromModel(iface, cls, nil))
	}
	for i := range model.Fields {
		cls.members = append(cls.members, s.fieldSymbol(&model.Fields[i], cls))
	}
	for i := range model.Methods {
		cls.members = append(cls.members, s.methodSymbol(&model.Methods[i], cls))
	}
	for _, inner := range model.InnerClasses {
		if sym := s.Class(inner); sym != nil {
			cls.members = append(cls.members, sym)
		}
	}
}

func (s *Symtab) fieldSymbol(f *java.FieldModel, cls *Symbol) *Symbol {
	sym := &Symbol{
		Kind:   ElemField,
		Name:   f.Name,
		Owner:  cls,
		Flags:  flagsOf(f.Visibility),
		Type:   s.FromModel(f.Type, cls, nil),
		Node:   f.Node,
		symtab: s,
	}
	if f.IsEnumConstant {
		sym.Kind = ElemEnumConstant
	}
	if f.IsStatic {
		sym.Flags |= FlagStatic
	}
	if f.IsFinal {
		sym.Flags |= FlagFinal
	}
	if f.IsDeprecated {
		sym.Flags |= FlagDeprecated
	}
	sym.Javadoc = f.Javadoc
	return sym
}

func (s *Symtab) methodSymbol(m *java.MethodModel, cls *Symbol) *Symbol {
	sym := &Symbol{
		Kind:    ElemMethod,
		Name:    m.Name,
		Owner:   cls,
		Flags:   flagsOf(m.Visibility),
		Node:    m.Node,
		Javadoc: m.Javadoc,
		symtab:  s,
	}
	if m.IsConstructor() {
		sym.Kind = ElemConstructor
	}
	for flag, set := range map[Flags]bool{
		FlagStatic: m.IsStatic, FlagFinal: m.IsFinal, FlagAbstract: m.IsAbstract,
		FlagDefault: m.IsDefault, FlagDeprecated: m.IsDeprecated, FlagVarargs: m.IsVarargs,
	} {
		if set {
			sym.Flags |= flag
		}
	}
	sym.TypeParams = s.typeParams(m.TypeParameters, sym)
	sym.Type = s.FromModel(m.ReturnType, cls, sym)
	for _, p := range m.Parameters {
		param := &Symbol{Kind: ElemParameter, Name: p.Name, Owner: sym, Type: s.FromModel(p.Type, cls, sym), symtab: s}
		if p.IsFinal {
			param.Flags |= FlagFinal
		}
		sym.Params = append(sym.Params, param)
	}
	for _, ex := range m.Exceptions {
		sym.Thrown = append(sym.Thrown, s.FromModel(ex, cls, sym))
	}
	return sym
}

// NewClass creates a class symbol without a model, for anonymous classes.
// Its members are those it inherits.
func (s *Symtab) NewClass(name string, owner *Symbol, super *Type, interfaces []*Type) *Symbol {
	sym := &Symbol{Kind: ElemClass, Name: name, QualifiedName: name, Owner: owner, symtab: s, completed: true}
	if owner != nil {
		sym.Package = owner.Package
	}
	sym.Type = &Type{Kind: KindDeclared, Sym: sym}
	sym.super = super
	sym.interfaces = interfaces
	return sym
}

// Erasure removes type arguments and replaces type variables by the
// erasure of their first bound.
func (s *Symtab) Erasure(t *Type) *Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case KindDeclared:
		if len(t.Args) == 0 {
			return t
		}
		return &Type{Kind: KindDeclared, Sym: t.Sym}
	case KindArray:
		return ArrayOf(s.Erasure(t.Elem))
	case KindTypeVar:
		if len(t.Sym.Bounds) > 0 {
			return s.Erasure(t.Sym.Bounds[0])
		}
		return s.Object()
	case KindWildcard:
		if t.BoundKind == ExtendsBound {
			return s.Erasure(t.Bound)
		}
		return s.Object()
	case KindUnion, KindIntersection:
		if len(t.Alternatives) > 0 {
			return s.Erasure(t.Alternatives[0])
		}
	}
	return t
}

// Upper returns the type a wildcard stands for when read from, the bound
// of a type variable, and t itself for other types.
func (s *Symtab) Upper(t *Type) *Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case KindWildcard:
		if t.BoundKind == ExtendsBound {
			return s.Upper(t.Bound)
		}
		return s.Object()
	case KindTypeVar:
		if len(t.Sym.Bounds) > 0 {
			return t.Sym.Bounds[0]
		}
		return s.Object()
	}
	return t
}

// DirectSupertypes returns the direct supertypes of t with the type
// arguments of t substituted.
func (s *Symtab) DirectSupertypes(t *Type) []*Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case KindDeclared:
		cls := t.Sym
		var out []*Type
		subst := func(st *Type) *Type {
			if t.IsRaw() {
				return s.Erasure(st)
			}
			return Subst(st, cls.TypeParams, t.Args)
		}
		if sup := cls.Superclass(); sup != nil {
			out = append(out, subst(sup))
		}
		for _, iface := range cls.Interfaces() {
			out = append(out, subst(iface))
		}
		if len(out) == 0 && cls.QualifiedName != "java.lang.Object" {
			out = append(out, s.Object())
		}
		return out
	case KindTypeVar:
		if len(t.Sym.Bounds) > 0 {
			return t.Sym.Bounds
		}
		return []*Type{s.Object()}
	case KindArray:
		return []*Type{s.Object(), s.ClassType("java.lang.Cloneable"), s.ClassType("java.io.Serializable")}
	case KindIntersection:
		return t.Alternatives
	case KindUnion:
		return []*Type{s.LUB(t.Alternatives)}
	}
	return nil
}

// AsSuper returns the supertype of t whose class is cls, with type
// arguments as seen from t, or nil when cls is not a supertype of t.
func (s *Symtab) AsSuper(t *Type, cls *Symbol) *Type {
	return s.asSuper(t, cls, make(map[*Symbol]bool))
}

func (s *Symtab) asSuper(t *Type, cls *Symbol, seen map[*Symbol]bool) *Type {
	if t == nil || cls == nil {
		return nil
	}
	if t.Kind == KindWildcard {
		t = s.Upper(t)
	}
	if t.Kind == KindDeclared {
		if t.Sym == cls {
			return t
		}
		if seen[t.Sym] {
			return nil
		}
		seen[t.Sym] = true
	}
	for _, st := range s.DirectSupertypes(t) {
		if found := s.asSuper(st, cls, seen); found != nil {
			return found
		}
	}
	return nil
}

// MemberType returns the type of member as a member of site: field types
// and method return types with the type arguments of site substituted.
func (s *Symtab) MemberType(site *Type, member *Symbol) *Type {
	return s.substFor(site, member, member.Type)
}

// ParamTypes returns the parameter types of an executable as a member of
// site.
func (s *Symtab) ParamTypes(site *Type, method *Symbol) []*Type {
	out := make([]*Type, len(method.Params))
	for i, p := range method.Params {
		out[i] = s.substFor(site, method, p.Type)
	}
	return out
}

func (s *Symtab) ThrownTypes(site *Type, method *Symbol) []*Type {
	out := make([]*Type, len(method.Thrown))
	for i, t := range method.Thrown {
		out[i] = s.substFor(site, method, t)
	}
	return out
}

func (s *Symtab) substFor(site *Type, member *Symbol, t *Type) *Type {
	owner := member.Owner
	if site == nil || owner == nil || len(owner.TypeParams) == 0 || member.IsStatic() {
		return t
	}
	sup := s.AsSuper(site, owner)
	if sup == nil {
		return t
	}
	if sup.IsRaw() {
		return s.Erasure(t)
	}
	if len(sup.Args) != len(owner.TypeParams) {
		return t
	}
	args := make([]*Type, len(sup.Args))
	for i, a := range sup.Args {
		args[i] = s.Upper(a)
		if a.Kind == KindWildcard && a.BoundKind == SuperBound {
			args[i] = a.Bound
		}
	}
	return Subst(t, owner.TypeParams, args)
}

// ArrayLength is the length field shared by all array types.
func (s *Symtab) ArrayLength() *Symbol {
	if s.length == nil {
		s.length = &Symbol{Kind: ElemField, Name: "length", Flags: FlagPublic | FlagFinal, Type: Int, symtab: s}
	}
	return s.length
}
