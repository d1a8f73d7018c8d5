package types

// IsSubclass reports whether class sub is cls or inherits from it.
func (s *Symtab) IsSubclass(sub, cls *Symbol) bool {
	if sub == nil || cls == nil {
		return false
	}
	if cls.QualifiedName == "java.lang.Object" && sub.Kind.IsType() {
		return true
	}
	return s.AsSuper(sub.Type, cls) != nil
}

// IsSubtype reports whether a is a subtype of b. Type arguments are
// compared loosely: a parameterization is a subtype of another when their
// classes are related, which is what candidate filtering needs.
func (s *Symtab) IsSubtype(a, b *Type) bool {
	if a == nil || b == nil || a.IsErroneous() || b.IsErroneous() {
		return false
	}
	if Identical(a, b) {
		return true
	}
	if a.IsPrimitive() || b.IsPrimitive() || a.IsVoid() || b.IsVoid() {
		return a.Kind == b.Kind
	}
	if a.Kind == KindNull {
		return true
	}
	switch b.Kind {
	case KindWildcard:
		switch b.BoundKind {
		case SuperBound:
			return s.IsSubtype(a, b.Bound)
		case ExtendsBound:
			return s.IsSubtype(a, b.Bound)
		}
		return true
	case KindTypeVar:
		return a.Kind == KindTypeVar && a.Sym == b.Sym
	case KindIntersection:
		for _, alt := range b.Alternatives {
			if !s.IsSubtype(a, alt) {
				return false
			}
		}
		return true
	}
	switch a.Kind {
	case KindUnion:
		for _, alt := range a.Alternatives {
			if !s.IsSubtype(alt, b) {
				return false
			}
		}
		return true
	case KindArray:
		if b.Kind == KindArray {
			if a.Elem.IsPrimitive() || b.Elem.IsPrimitive() {
				return a.Elem.Kind == b.Elem.Kind
			}
			return s.IsSubtype(a.Elem, b.Elem)
		}
	}
	if b.Kind != KindDeclared {
		return false
	}
	switch a.Kind {
	case KindWildcard:
		return s.IsSubtype(s.Upper(a), b)
	case KindTypeVar, KindIntersection:
		for _, st := range s.DirectSupertypes(a) {
			if s.IsSubtype(st, b) {
				return true
			}
		}
		return false
	}
	return s.AsSuper(a, b.Sym) != nil
}

func wideningRank(k TypeKind) int {
	switch k {
	case KindByte:
		return 1
	case KindShort, KindChar:
		return 2
	case KindInt:
		return 3
	case KindLong:
		return 4
	case KindFloat:
		return 5
	case KindDouble:
		return 6
	}
	return 0
}

// IsWidening reports whether a primitive of kind from converts to kind to
// by identity or widening primitive conversion.
func IsWidening(from, to TypeKind) bool {
	if from == to {
		return true
	}
	if from == KindBoolean || to == KindBoolean {
		return false
	}
	if to == KindChar {
		return false
	}
	if from == KindChar {
		return wideningRank(to) >= wideningRank(KindInt)
	}
	return wideningRank(from) != 0 && wideningRank(from) < wideningRank(to)
}

// IsAssignable reports whether a value of type from can be assigned to a
// variable of type to, allowing widening, boxing and unboxing.
func (s *Symtab) IsAssignable(from, to *Type) bool {
	if from == nil || to == nil || from.IsErroneous() || to.IsErroneous() {
		return false
	}
	if from.IsPrimitive() && to.IsPrimitive() {
		return IsWidening(from.Kind, to.Kind)
	}
	if from.IsPrimitive() {
		return s.IsSubtype(s.Box(from), to)
	}
	if to.IsPrimitive() {
		if unboxed := s.Unbox(from); unboxed != nil {
			return IsWidening(unboxed.Kind, to.Kind)
		}
		return false
	}
	return s.IsSubtype(from, to)
}

// UnaryPromotion applies unary numeric promotion, unboxing first.
func (s *Symtab) UnaryPromotion(t *Type) *Type {
	if u := s.Unbox(t); u != nil {
		t = u
	}
	switch t.Kind {
	case KindByte, KindShort, KindChar:
		return Int
	}
	return t
}

// BinaryPromotion applies binary numeric promotion. It returns nil when a
// or b is not convertible to a numeric type.
func (s *Symtab) BinaryPromotion(a, b *Type) *Type {
	a, b = s.UnaryPromotion(a), s.UnaryPromotion(b)
	if !a.IsNumeric() || !b.IsNumeric() {
		return nil
	}
	for _, k := range []TypeKind{KindDouble, KindFloat, KindLong} {
		if a.Kind == k || b.Kind == k {
			return PrimitiveByName(primitiveNames[k])
		}
	}
	return Int
}

// LUB returns a least upper bound of ts: the first type that all others
// are subtypes of, or the closest shared superclass.
func (s *Symtab) LUB(ts []*Type) *Type {
	if len(ts) == 0 {
		return s.Object()
	}
	candidates := append([]*Type{ts[0]}, s.allSupertypes(ts[0])...)
	for _, c := range candidates {
		ok := true
		for _, t := range ts[1:] {
			if !s.IsSubtype(t, c) {
				ok = false
				break
			}
		}
		if ok {
			return c
		}
	}
	return s.Object()
}

func (s *Symtab) allSupertypes(t *Type) []*Type {
	var out []*Type
	seen := make(map[*Symbol]bool)
	queue := s.DirectSupertypes(t)
	for len(queue) > 0 {
		st := queue[0]
		queue = queue[1:]
		if st.Kind == KindDeclared {
			if seen[st.Sym] {
				continue
			}
			seen[st.Sym] = true
		}
		out = append(out, st)
		queue = append(queue, s.DirectSupertypes(st)...)
	}
	return out
}

// IsCheckedException reports whether t is a Throwable that is neither a
// RuntimeException nor an Error.
func (s *Symtab) IsCheckedException(t *Type) bool {
	if t == nil || t.Kind != KindDeclared {
		return false
	}
	throwable := s.Class("java.lang.Throwable")
	if throwable == nil || s.AsSuper(t, throwable) == nil {
		return false
	}
	for _, unchecked := range []string{"java.lang.RuntimeException", "java.lang.Error"} {
		if cls := s.Class(unchecked); cls != nil && s.AsSuper(t, cls) != nil {
			return false
		}
	}
	return true
}

// FunctionalMethod returns the single abstract method of a functional
// interface type, or nil.
func (s *Symtab) FunctionalMethod(t *Type) *Symbol {
	if t == nil || t.Kind != KindDeclared || !t.Sym.Kind.IsInterface() {
		return nil
	}
	var found *Symbol
	for _, m := range s.AllMembers(t) {
		if m.Kind != ElemMethod || !m.Has(FlagAbstract) || m.IsStatic() || m.Has(FlagDefault) {
			continue
		}
		if isObjectMethod(m) {
			continue
		}
		if found != nil && found.Name != m.Name {
			return nil
		}
		if found == nil {
			found = m
		}
	}
	return found
}

func isObjectMethod(m *Symbol) bool {
	switch m.Name {
	case "equals":
		return len(m.Params) == 1
	case "hashCode", "toString":
		return len(m.Params) == 0
	}
	return false
}

// IsAccessible reports whether sym can be used from code in class from
// through an expression of type site. from may be nil for code outside
// any class, site may be nil for unqualified access.
func (s *Symtab) IsAccessible(sym, from *Symbol, site *Type) bool {
	if sym == nil {
		return false
	}
	if sym.Kind.IsLocal() || sym.Kind == ElemTypeParameter || sym.Kind == ElemPackage || sym.Kind == ElemParameter {
		return true
	}
	owner := sym.Owner
	if owner != nil && owner.Kind.IsType() && !s.IsAccessible(owner, from, nil) {
		return false
	}
	switch {
	case sym.Has(FlagPublic):
		return true
	case sym.Has(FlagPrivate):
		return from != nil && from.Outermost() == sym.Outermost()
	}
	pkg := sym.Package
	if pkg == "" && owner != nil {
		pkg = owner.EnclosingClass().packageName()
	}
	if from != nil && from.EnclosingClass().packageName() == pkg {
		return true
	}
	if sym.Has(FlagProtected) && from != nil && owner != nil {
		for c := from.EnclosingClass(); c != nil; c = c.Owner.EnclosingClass() {
			if s.IsSubclass(c, owner.EnclosingClass()) {
				return true
			}
			if c.Owner == nil {
				break
			}
		}
	}
	return false
}

func (s *Symbol) packageName() string {
	for c := s; c != nil; c = c.Owner {
		if c.Package != "" || c.Owner == nil {
			return c.Package
		}
	}
	return ""
}
