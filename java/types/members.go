package types

// AllMembers returns the members of type t: those its class declares
// followed by inherited ones that are not overridden or hidden. Interfaces
// and type variables include the members of Object. Arrays have length and
// the members of Object. Constructors are not inherited.
func (s *Symtab) AllMembers(t *Type) []*Symbol {
	if t == nil {
		return nil
	}
	var out []*Symbol
	seen := make(map[*Symbol]bool)
	add := func(m *Symbol) {
		if seen[m] {
			return
		}
		for _, prev := range out {
			if hides(prev, m) {
				return
			}
		}
		seen[m] = true
		out = append(out, m)
	}
	visited := make(map[*Symbol]bool)
	var walk func(t *Type, inherited bool)
	walk = func(t *Type, inherited bool) {
		if t == nil {
			return
		}
		switch t.Kind {
		case KindDeclared:
			if visited[t.Sym] {
				return
			}
			visited[t.Sym] = true
			for _, m := range t.Sym.Members() {
				if inherited && (m.Kind == ElemConstructor || m.Has(FlagPrivate)) {
					continue
				}
				add(m)
			}
			for _, st := range s.DirectSupertypes(t) {
				walk(st, true)
			}
			if t.Sym.Kind.IsInterface() {
				walk(s.Object(), true)
			}
		case KindArray:
			add(s.ArrayLength())
			walk(s.Object(), true)
		case KindTypeVar, KindIntersection:
			for _, st := range s.DirectSupertypes(t) {
				walk(st, true)
			}
		case KindWildcard:
			walk(s.Upper(t), inherited)
		}
	}
	walk(t, false)
	return out
}

// hides reports whether member a, found first while walking up the class
// hierarchy, overrides or hides b.
func hides(a, b *Symbol) bool {
	if a.Name != b.Name {
		return false
	}
	switch {
	case a.Kind.IsField() && b.Kind.IsField():
		return true
	case a.Kind.IsType() && b.Kind.IsType():
		return true
	case a.Kind == ElemMethod && b.Kind == ElemMethod:
		return sameErasedParams(a, b)
	}
	return false
}

func sameErasedParams(a, b *Symbol) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		pa, pb := a.Params[i].Type, b.Params[i].Type
		if pa.Kind == KindTypeVar || pb.Kind == KindTypeVar {
			continue
		}
		if pa.QualifiedName() != pb.QualifiedName() {
			return false
		}
	}
	return true
}

// FindField returns the field called name that t has, or nil.
func (s *Symtab) FindField(t *Type, name string) *Symbol {
	for _, m := range s.AllMembers(t) {
		if m.Kind.IsField() && m.Name == name {
			return m
		}
	}
	return nil
}

// FindMethods returns the methods called name that t has.
func (s *Symtab) FindMethods(t *Type, name string) []*Symbol {
	var out []*Symbol
	for _, m := range s.AllMembers(t) {
		if m.Kind == ElemMethod && m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// FindMemberClass returns the member class called name that class cls
// declares or inherits, or nil.
func (s *Symtab) FindMemberClass(cls *Symbol, name string) *Symbol {
	if cls == nil {
		return nil
	}
	for _, m := range s.AllMembers(cls.Type) {
		if m.Kind.IsType() && m.Name == name {
			return m
		}
	}
	return nil
}

func (s *Symtab) Constructors(cls *Symbol) []*Symbol {
	var out []*Symbol
	for _, m := range cls.Members() {
		if m.Kind == ElemConstructor {
			out = append(out, m)
		}
	}
	return out
}

// IsApplicable reports whether method accepts arguments of the given
// types, as a member of site. Erroneous or unknown argument types match
// any parameter.
func (s *Symtab) IsApplicable(site *Type, method *Symbol, args []*Type) bool {
	params := s.ParamTypes(site, method)
	varargs := method.Has(FlagVarargs)
	if len(args) != len(params) && !(varargs && len(args) >= len(params)-1) {
		return false
	}
	for i, arg := range args {
		if arg == nil || arg.IsErroneous() {
			continue
		}
		var p *Type
		switch {
		case i < len(params)-1 || (!varargs && i < len(params)):
			p = params[i]
		case varargs:
			p = params[len(params)-1]
			if !(len(args) == len(params) && s.IsAssignable(arg, p)) && p.Kind == KindArray {
				p = p.Elem
			}
		}
		if p == nil || p.Kind == KindTypeVar || (p.Kind == KindArray && p.Elem.Kind == KindTypeVar) {
			continue
		}
		if !s.IsAssignable(arg, s.Erasure(p)) && !s.IsAssignable(arg, p) {
			return false
		}
	}
	return true
}

// MostSpecific picks the applicable method whose parameters are all
// assignable to those of the others. It returns the first candidate when
// none is more specific.
func (s *Symtab) MostSpecific(site *Type, methods []*Symbol) *Symbol {
	if len(methods) == 0 {
		return nil
	}
	best := methods[0]
	for _, m := range methods[1:] {
		if s.moreSpecific(site, m, best) {
			best = m
		}
	}
	return best
}

func (s *Symtab) moreSpecific(site *Type, a, b *Symbol) bool {
	pa, pb := s.ParamTypes(site, a), s.ParamTypes(site, b)
	if len(pa) != len(pb) {
		return len(pa) < len(pb) && !a.Has(FlagVarargs)
	}
	better := false
	for i := range pa {
		if Identical(pa[i], pb[i]) {
			continue
		}
		if !s.IsAssignable(pa[i], pb[i]) {
			return false
		}
		better = true
	}
	return better
}

// InferMethodTypeArgs infers the type variables of a generic method from
// argument types by matching them against the parameter types. Variables
// that cannot be inferred become their erased bound.
func (s *Symtab) InferMethodTypeArgs(site *Type, method *Symbol, args []*Type) []*Type {
	if len(method.TypeParams) == 0 {
		return nil
	}
	inferred := make(map[*Symbol]*Type)
	params := s.ParamTypes(site, method)
	for i, arg := range args {
		if i >= len(params) || arg == nil || arg.IsErroneous() {
			continue
		}
		s.unify(params[i], arg, inferred)
	}
	out := make([]*Type, len(method.TypeParams))
	for i, tv := range method.TypeParams {
		if t, ok := inferred[tv]; ok {
			out[i] = t
		} else {
			out[i] = s.Erasure(tv.Type)
		}
	}
	return out
}

func (s *Symtab) unify(param, arg *Type, inferred map[*Symbol]*Type) {
	switch param.Kind {
	case KindTypeVar:
		if _, ok := inferred[param.Sym]; !ok {
			inferred[param.Sym] = s.Box(arg)
		}
	case KindArray:
		if arg.Kind == KindArray {
			s.unify(param.Elem, arg.Elem, inferred)
		}
	case KindWildcard:
		if param.Bound != nil {
			s.unify(param.Bound, arg, inferred)
		}
	case KindDeclared:
		if arg.Kind != KindDeclared {
			return
		}
		sup := s.AsSuper(arg, param.Sym)
		if sup == nil || len(sup.Args) != len(param.Args) {
			return
		}
		for i := range param.Args {
			s.unify(param.Args[i], sup.Args[i], inferred)
		}
	}
}

// ResolveCall returns the method called name on site that best matches
// args, with its return type as seen from site and the inferred method
// type arguments applied.
func (s *Symtab) ResolveCall(site *Type, methods []*Symbol, args []*Type) (*Symbol, *Type) {
	var applicable []*Symbol
	for _, m := range methods {
		if s.IsApplicable(site, m, args) {
			applicable = append(applicable, m)
		}
	}
	if len(applicable) == 0 {
		applicable = methods
	}
	m := s.MostSpecific(site, applicable)
	if m == nil {
		return nil, nil
	}
	ret := s.MemberType(site, m)
	if inferred := s.InferMethodTypeArgs(site, m, args); inferred != nil {
		ret = Subst(ret, m.TypeParams, inferred)
	}
	if m.Name == "getClass" && len(m.Params) == 0 && site != nil {
		ret = s.ClassType("java.lang.Class", s.Wildcard(ExtendsBound, s.Erasure(site)))
	}
	return m, ret
}

// InstantiatedParamTypes returns the parameter types of method as a member
// of site with the method type arguments inferred from args substituted.
func (s *Symtab) InstantiatedParamTypes(site *Type, method *Symbol, args []*Type) []*Type {
	params := s.ParamTypes(site, method)
	inferred := s.InferMethodTypeArgs(site, method, args)
	if inferred == nil {
		return params
	}
	for i, p := range params {
		params[i] = Subst(p, method.TypeParams, inferred)
	}
	return params
}

// InferDiamond returns the type of a diamond instance creation of cls
// assigned to target: cls applied to the type arguments that make it a
// subtype of target. It returns the raw type when none can be found.
func (s *Symtab) InferDiamond(cls *Symbol, target *Type) *Type {
	raw := &Type{Kind: KindDeclared, Sym: cls}
	if len(cls.TypeParams) == 0 || target == nil || target.Kind != KindDeclared {
		return raw
	}
	sup := s.AsSuper(cls.Type, target.Sym)
	if sup == nil || len(sup.Args) != len(target.Args) {
		return raw
	}
	inferred := make(map[*Symbol]*Type)
	for i := range sup.Args {
		arg := target.Args[i]
		if arg.Kind == KindWildcard {
			if arg.Bound == nil {
				continue
			}
			arg = arg.Bound
		}
		s.unify(sup.Args[i], arg, inferred)
	}
	t := &Type{Kind: KindDeclared, Sym: cls}
	for _, tv := range cls.TypeParams {
		if a, ok := inferred[tv]; ok {
			t.Args = append(t.Args, a)
		} else {
			t.Args = append(t.Args, s.Erasure(tv.Type))
		}
	}
	return t
}
