package completion

import (
	"strings"

	"github.com/dhamidi/javacomplete/java"
	"github.com/dhamidi/javacomplete/java/index"
	"github.com/dhamidi/javacomplete/java/types"
)

// accessible reports whether sym may be used from the class at the caret.
func (env *Env) accessible(sym *types.Symbol, site *types.Type) bool {
	if env.Options.Has(SkipAccessibilityCheck) {
		return true
	}
	return env.Symtab().IsAccessible(sym, env.Scope().Class, site)
}

// memberCandidate builds the candidate for member m of site.
func (r *results) memberCandidate(m *types.Symbol, site *types.Type) Candidate {
	env := r.env
	s := env.Symtab()
	c := Candidate{Symbol: m, Site: site}
	switch {
	case m.Kind.IsType():
		c.Kind = KindType
		c.Type = m.Type
	case m.Kind.IsExecutable():
		c.Kind = KindExecutable
		c.Type = s.MemberType(site, m)
		c.AddSemicolon = env.AddSemicolon()
		if !c.Type.IsVoid() {
			if off, ok := env.AssignAnchor(); ok {
				c.AssignTo = off
			}
		}
	default:
		c.Kind = KindVariable
		c.Type = s.MemberType(site, m)
	}
	if !m.Kind.IsType() {
		c.SmartType = env.isSmart(c.Type)
	}
	return c
}

// memberQuery selects the members of a type offered after a qualifier.
type memberQuery struct {
	site *types.Type
	// statics is set when the qualifier names a type: only static members
	// and member types are offered.
	statics bool
	// super is set for super.name: protected members of the superclass
	// are offered even where they are not otherwise accessible.
	super bool
	// methodsOnly restricts the candidates to methods, for method
	// references.
	methodsOnly bool
	accept      func(*types.Symbol) bool
}

// addMembers offers the members of q.site matching the prefix.
func (r *results) addMembers(q memberQuery) {
	env := r.env
	s := env.Symtab()
	if q.site == nil || q.site.IsErroneous() || q.site.IsPrimitive() {
		return
	}
	site := s.Upper(q.site)
	for _, m := range s.AllMembers(site) {
		if env.cancelled() {
			return
		}
		if m.Kind == types.ElemConstructor || !env.matcher.Matches(m.Name) {
			continue
		}
		if q.methodsOnly && m.Kind != types.ElemMethod {
			continue
		}
		if q.accept != nil && !q.accept(m) {
			continue
		}
		if q.statics {
			if !m.IsStatic() && !m.Kind.IsType() && m.Kind != types.ElemEnumConstant {
				continue
			}
		} else {
			if m.Kind.IsType() {
				continue
			}
			if (m.IsStatic() || m.Kind == types.ElemEnumConstant) && !q.methodsOnly && !env.Options.Has(AllSymbols) {
				env.hasAdditionalMembers = true
				continue
			}
		}
		if !env.accessible(m, site) && !(q.super && relaxedSuperAccess(m)) {
			continue
		}
		r.add(r.memberCandidate(m, site))
	}
}

// relaxedSuperAccess accepts protected instance members reached through
// super.
func relaxedSuperAccess(m *types.Symbol) bool {
	return m.Has(types.FlagProtected) && !m.IsStatic() && !m.Kind.IsType()
}

// addLocalMembersAndVars offers what a simple name can denote at the
// caret: locals, members of the enclosing classes and statically imported
// members. accept, when set, restricts the symbols.
func (r *results) addLocalMembersAndVars(accept func(*types.Symbol) bool) {
	env := r.env
	s := env.Symtab()
	sc := env.Scope()
	names := make(map[string]bool)
	for i := len(sc.Locals) - 1; i >= 0; i-- {
		v := sc.Locals[i]
		if names[v.Name] {
			continue
		}
		names[v.Name] = true
		if !env.matcher.Matches(v.Name) || (accept != nil && !accept(v)) {
			continue
		}
		r.add(Candidate{Kind: KindVariable, Symbol: v, Type: v.Type, SmartType: env.isSmart(v.Type)})
	}

	methods := make(map[string]bool)
	static := sc.Static
	for _, cls := range sc.Classes() {
		if env.cancelled() {
			return
		}
		declared := make(map[string]bool)
		for _, m := range s.AllMembers(cls.Type) {
			if m.Kind == types.ElemConstructor || m.Kind.IsType() {
				continue
			}
			if m.Kind == types.ElemMethod {
				if methods[m.Name] {
					continue
				}
				declared[m.Name] = true
			} else if names[m.Name] {
				continue
			} else {
				names[m.Name] = true
			}
			if static && !m.IsStatic() && m.Kind != types.ElemEnumConstant {
				continue
			}
			if !env.matcher.Matches(m.Name) || (accept != nil && !accept(m)) || !env.accessible(m, cls.Type) {
				continue
			}
			r.add(r.memberCandidate(m, cls.Type))
		}
		for name := range declared {
			methods[name] = true
		}
		static = static || cls.IsStatic() || cls.Kind != types.ElemClass || cls.Owner == nil || cls.Owner.Kind == types.ElemPackage
	}

	for _, cls := range sc.StaticImportClasses() {
		member := ""
		for _, imp := range sc.Imports() {
			if imp.Static && !imp.Wildcard && strings.HasPrefix(imp.Name, cls.QualifiedName+".") {
				member = imp.Name[len(cls.QualifiedName)+1:]
			}
		}
		for _, m := range s.AllMembers(cls.Type) {
			if !m.IsStatic() && m.Kind != types.ElemEnumConstant {
				continue
			}
			if m.Kind.IsType() || (member != "" && m.Name != member) || !env.matcher.Matches(m.Name) {
				continue
			}
			if (m.Kind.IsField() && names[m.Name]) || (m.Kind == types.ElemMethod && methods[m.Name]) {
				continue
			}
			if (accept != nil && !accept(m)) || !env.accessible(m, cls.Type) {
				continue
			}
			r.add(r.memberCandidate(m, cls.Type))
		}
	}
}

// typeFilter selects the types addTypes offers.
type typeFilter struct {
	// kinds restricts the element kinds, any type kind when empty.
	kinds []types.ElementKind
	// base, when set, is a type the candidates must be subtypes of. Types
	// with a member type that is one are accepted too.
	base *types.Type
	// instantiable keeps classes that can follow new.
	instantiable bool
	// notFinal drops final classes, for extends clauses.
	notFinal bool
	// exclude drops one type, the class being declared.
	exclude *types.Symbol
	kind    Kind
}

func (f typeFilter) candidateKind() Kind {
	if f.kind != 0 {
		return f.kind
	}
	return KindType
}

// acceptType reports whether cls passes the filter.
func (env *Env) acceptType(cls *types.Symbol, f typeFilter) bool {
	if cls == nil || cls == f.exclude {
		return false
	}
	if len(f.kinds) > 0 {
		ok := false
		for _, k := range f.kinds {
			if cls.Kind == k {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.notFinal && (cls.Has(types.FlagFinal) || cls.Kind == types.ElemEnum || cls.Kind == types.ElemRecord) {
		return false
	}
	if f.instantiable && !env.Options.Has(Combined) {
		if cls.Kind != types.ElemClass || cls.Has(types.FlagAbstract) {
			return false
		}
	}
	if f.base != nil && !f.base.IsErroneous() {
		s := env.Symtab()
		if !s.IsSubtype(s.Erasure(cls.Type), s.Erasure(f.base)) {
			return env.hasNestedSubtype(cls, f.base)
		}
	}
	return true
}

func (env *Env) hasNestedSubtype(cls *types.Symbol, base *types.Type) bool {
	s := env.Symtab()
	for _, m := range cls.Members() {
		if m.Kind.IsType() && s.IsSubtype(s.Erasure(m.Type), s.Erasure(base)) {
			return true
		}
	}
	return false
}

// typeCandidate builds the candidate for cls.
func (r *results) typeCandidate(cls *types.Symbol, f typeFilter) Candidate {
	env := r.env
	c := Candidate{Kind: f.candidateKind(), Symbol: cls, Type: cls.Type}
	c.SmartType = env.isSmart(env.Symtab().Erasure(cls.Type))
	return c
}

// addTypes offers the types visible by simple name at the caret and, when
// a prefix is typed or the options ask for it, the types of the index that
// would need an import.
func (r *results) addTypes(f typeFilter) {
	env := r.env
	s := env.Symtab()
	sc := env.Scope()
	visible := make(map[string]bool)
	offer := func(cls *types.Symbol) {
		if cls == nil || visible[cls.QualifiedName] {
			return
		}
		visible[cls.QualifiedName] = true
		if !env.matcher.Matches(cls.Name) || !env.acceptType(cls, f) || !env.accessible(cls, nil) {
			return
		}
		r.add(r.typeCandidate(cls, f))
	}

	if len(f.kinds) == 0 && f.base == nil && !f.instantiable {
		r.addTypeVariables()
	}
	for _, cls := range sc.Classes() {
		for _, m := range s.AllMembers(cls.Type) {
			if m.Kind.IsType() {
				offer(m)
			}
		}
		offer(cls)
	}
	for _, model := range env.Info.Classes {
		if model.EnclosingClass == "" {
			offer(s.Class(model.Name))
		}
	}
	for _, imp := range sc.Imports() {
		if imp.Static {
			continue
		}
		if !imp.Wildcard {
			offer(s.Class(imp.Name))
			continue
		}
		if cls := s.Class(imp.Name); cls != nil {
			for _, m := range cls.Members() {
				if m.Kind.IsType() {
					offer(m)
				}
			}
			continue
		}
		r.offerPackageTypes(imp.Name, offer)
	}
	r.offerPackageTypes(sc.Package(), offer)
	r.offerPackageTypes("java.lang", offer)

	if env.index == nil || env.cancelled() {
		return
	}
	if env.Prefix == "" && !env.Options.Has(AllSymbols) && !env.Options.Has(Combined) {
		return
	}
	for _, h := range env.index.DeclaredTypes(index.NamePattern(env.matcher.Matches), classKinds(f.kinds)...) {
		if visible[h.QualifiedName] {
			continue
		}
		visible[h.QualifiedName] = true
		cls := s.Class(h.QualifiedName)
		if cls == nil || !env.acceptType(cls, f) || !env.accessible(cls, nil) {
			continue
		}
		c := r.typeCandidate(cls, f)
		c.NeedsImport = true
		r.add(c)
	}
}

func (r *results) offerPackageTypes(pkg string, offer func(*types.Symbol)) {
	env := r.env
	if env.index == nil {
		return
	}
	for _, model := range env.index.ClassesInPackage(pkg) {
		if env.matcher.Matches(model.SimpleName) {
			offer(env.Symtab().Class(model.Name))
		}
	}
}

func classKinds(kinds []types.ElementKind) []java.ClassKind {
	var out []java.ClassKind
	for _, k := range kinds {
		switch k {
		case types.ElemClass:
			out = append(out, java.ClassKindClass)
		case types.ElemInterface:
			out = append(out, java.ClassKindInterface)
		case types.ElemEnum:
			out = append(out, java.ClassKindEnum)
		case types.ElemRecord:
			out = append(out, java.ClassKindRecord)
		case types.ElemAnnotationType:
			out = append(out, java.ClassKindAnnotation)
		}
	}
	return out
}

// addTypeVariables offers the type parameters of the enclosing method and
// classes.
func (r *results) addTypeVariables() {
	env := r.env
	sc := env.Scope()
	vars := append([]*types.Symbol(nil), sc.TypeVars...)
	for _, cls := range sc.Classes() {
		vars = append(vars, cls.TypeParams...)
	}
	for _, tv := range vars {
		if env.matcher.Matches(tv.Name) {
			r.add(Candidate{Kind: KindTypeParameter, Symbol: tv, Type: tv.Type})
		}
	}
}

// addMemberTypes offers the member types of cls.
func (r *results) addMemberTypes(cls *types.Symbol, f typeFilter) {
	env := r.env
	for _, m := range env.Symtab().AllMembers(cls.Type) {
		if m.Kind.IsType() && env.matcher.Matches(m.Name) && env.acceptType(m, f) && env.accessible(m, cls.Type) {
			r.add(r.typeCandidate(m, f))
		}
	}
}

// addPackages offers the next segment of the packages below qualifier, or
// the top level packages when qualifier is empty.
func (r *results) addPackages(qualifier string) {
	env := r.env
	if env.index == nil {
		return
	}
	prefix := ""
	if qualifier != "" {
		prefix = qualifier + "."
	}
	for _, name := range env.index.PackageNames(prefix) {
		rest := name[len(prefix):]
		if rest == "" {
			continue
		}
		if i := strings.IndexByte(rest, '.'); i >= 0 {
			rest = rest[:i]
		}
		if env.matcher.Matches(rest) {
			r.add(Candidate{Kind: KindPackage, Text: rest})
		}
	}
}

// addPackageContent offers the subpackages and types of pkg.
func (r *results) addPackageContent(pkg string, f typeFilter) {
	env := r.env
	r.addPackages(pkg)
	r.offerPackageTypes(pkg, func(cls *types.Symbol) {
		if cls != nil && env.acceptType(cls, f) && env.accessible(cls, nil) {
			r.add(r.typeCandidate(cls, f))
		}
	})
}

// isPackage reports whether name is a known package.
func (env *Env) isPackage(name string) bool {
	if env.index == nil || name == "" {
		return false
	}
	for _, p := range env.index.PackageNames(name) {
		if p == name || strings.HasPrefix(p, name+".") {
			return true
		}
	}
	return false
}

var primitiveNames = []string{"boolean", "byte", "char", "short", "int", "long", "float", "double"}

// addPrimitiveTypes offers the primitive type keywords, and void when
// asked.
func (r *results) addPrimitiveTypes(void bool) {
	for _, name := range primitiveNames {
		r.keyword(name, r.env.isSmart(types.PrimitiveByName(name)))
	}
	if void {
		r.keyword("void", false)
	}
}

// addValueKeywords offers the keywords that start a value. true and false
// are only offered when a boolean fits.
func (r *results) addValueKeywords() {
	env := r.env
	s := env.Symtab()
	smart := env.SmartTypes()
	boolOK := len(smart) == 0
	refOK := len(smart) == 0
	for _, t := range smart {
		if u := unboxed(s, t); u != nil && u.Kind == types.KindBoolean {
			boolOK = true
		}
		if t.IsReference() || t.Kind == types.KindTypeVar {
			refOK = true
		}
	}
	if boolOK {
		r.keyword("true", len(smart) > 0)
		r.keyword("false", len(smart) > 0)
	}
	if refOK {
		r.keyword("null", false)
	}
	r.keyword("new", false)
	if env.Options.atLeast(14) {
		r.keyword("switch", false)
	}
	sc := env.Scope()
	if !sc.Static && sc.Class != nil {
		r.keyword("this", env.isSmart(sc.Class.Type))
		if sc.Class.Kind == types.ElemClass {
			r.keyword("super", false)
		}
	}
}

// addSmartStatics offers the static fields of the smart types whose type
// fits, enum constants among them.
func (r *results) addSmartStatics() {
	env := r.env
	s := env.Symtab()
	for _, st := range env.SmartTypes() {
		if st.Kind != types.KindDeclared {
			continue
		}
		for _, m := range s.AllMembers(st) {
			if !m.Kind.IsField() || !m.IsStatic() && m.Kind != types.ElemEnumConstant {
				continue
			}
			if !env.matcher.Matches(m.Name) || !env.accessible(m, st) {
				continue
			}
			t := s.MemberType(st, m)
			if !s.IsAssignable(t, st) {
				continue
			}
			r.add(Candidate{Kind: KindStaticMember, Symbol: m, Type: t, Site: st, SmartType: true})
		}
	}
}

// addChainedMembers offers variable.method() chains whose result fits a
// smart type. Only all symbols requests ask for them.
func (r *results) addChainedMembers() {
	env := r.env
	if !env.Options.Has(AllSymbols) || len(env.SmartTypes()) == 0 {
		return
	}
	s := env.Symtab()
	for _, v := range env.Scope().Locals {
		if !env.matcher.Matches(v.Name) || v.Type == nil || v.Type.Kind != types.KindDeclared || env.isSmart(v.Type) {
			continue
		}
		for _, m := range s.AllMembers(v.Type) {
			if m.Kind != types.ElemMethod || len(m.Params) > 0 || m.IsStatic() || !env.accessible(m, v.Type) {
				continue
			}
			if t := s.MemberType(v.Type, m); !t.IsVoid() && env.isSmart(t) {
				r.add(Candidate{Kind: KindChainedMember, Chain: []*types.Symbol{v, m}, Type: t, SmartType: true})
			}
		}
	}
}

// addLambdas offers a lambda for each functional interface among the
// smart types.
func (r *results) addLambdas() {
	env := r.env
	if env.Prefix != "" || !env.Options.atLeast(8) {
		return
	}
	s := env.Symtab()
	for _, st := range env.SmartTypes() {
		if fm := s.FunctionalMethod(st); fm != nil {
			r.add(Candidate{Kind: KindLambdaExpression, Symbol: fm, Type: st, Site: st, SmartType: true})
		}
	}
}

// addRecordPatterns offers a deconstruction pattern for every record
// that is a subtype of base.
func (r *results) addRecordPatterns(base *types.Type) {
	env := r.env
	if !env.Options.atLeast(21) || base == nil || base.IsErroneous() || base.IsPrimitive() {
		return
	}
	s := env.Symtab()
	var records []*types.Symbol
	if base.Kind == types.KindDeclared && base.Sym.Kind == types.ElemRecord {
		records = append(records, base.Sym)
	}
	if env.index != nil && base.Kind == types.KindDeclared {
		h := index.TypeHandle{QualifiedName: base.Sym.QualifiedName}
		for _, impl := range env.index.Implementors(h) {
			if impl.Kind == java.ClassKindRecord {
				records = append(records, s.Class(impl.QualifiedName))
			}
		}
	}
	for _, model := range env.Info.Classes {
		if model.Kind != java.ClassKindRecord {
			continue
		}
		if rec := s.Class(model.Name); rec != nil && s.IsSubtype(s.Erasure(rec.Type), s.Erasure(base)) {
			records = append(records, rec)
		}
	}
	for _, rec := range records {
		if rec != nil && env.matcher.Matches(rec.Name) && env.accessible(rec, nil) {
			r.add(Candidate{Kind: KindRecordPattern, Symbol: rec, Type: rec.Type, SmartType: true})
		}
	}
}

// addArrayTypes offers the array types among the smart types, for new.
func (r *results) addArrayTypes() {
	env := r.env
	for _, st := range env.SmartTypes() {
		if st.Kind != types.KindArray {
			continue
		}
		elem := st
		for elem.Kind == types.KindArray {
			elem = elem.Elem
		}
		if env.matcher.Matches(elem.SimpleName()) {
			r.add(Candidate{Kind: KindArrayType, Type: st, SmartType: true})
		}
	}
}
