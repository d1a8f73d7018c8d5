package java

import "strings"

// ClassFinder looks classes up by canonical name.
type ClassFinder interface {
	FindClass(name string) *ClassModel
}

// ResolveTypeName returns the canonical name of the class that name denotes
// when written inside ctx, or "" when it denotes no known class. Names are
// looked up as the language does: member classes of ctx and its enclosing
// classes (inherited ones included), single-type imports, the package of
// ctx, wildcard imports, then java.lang.
func ResolveTypeName(finder ClassFinder, ctx *ClassModel, name string) string {
	r := &nameResolver{finder: finder, visiting: make(map[string]bool)}
	return r.resolve(ctx, ctx, name)
}

// MemberClass returns the canonical name of the member class called name
// declared in or inherited by owner, or "".
func MemberClass(finder ClassFinder, owner *ClassModel, name string) string {
	r := &nameResolver{finder: finder, visiting: make(map[string]bool)}
	return r.memberClass(owner, name)
}

// Supertypes returns the canonical names of the direct supertypes of c that
// can be resolved.
func Supertypes(finder ClassFinder, c *ClassModel) []string {
	r := &nameResolver{finder: finder, visiting: make(map[string]bool)}
	return r.supertypes(c)
}

type nameResolver struct {
	finder   ClassFinder
	visiting map[string]bool
}

func (r *nameResolver) find(name string) *ClassModel {
	if name == "" {
		return nil
	}
	return r.finder.FindClass(name)
}

// resolve looks name up with members searched from scope and imports taken
// from file. They differ while resolving supertypes, whose names are not in
// the scope of the class they extend.
func (r *nameResolver) resolve(scope, file *ClassModel, name string) string {
	if name == "" {
		return ""
	}
	head, rest, dotted := strings.Cut(name, ".")
	base := r.simple(scope, file, head)
	if base == "" {
		if !dotted {
			return ""
		}
		return r.qualified(name)
	}
	if !dotted {
		return base
	}
	for _, part := range strings.Split(rest, ".") {
		next := r.memberClass(r.find(base), part)
		if next == "" {
			return r.qualified(name)
		}
		base = next
	}
	return base
}

// qualified resolves a name whose leading parts are a package.
func (r *nameResolver) qualified(name string) string {
	if r.find(name) != nil {
		return name
	}
	parts := strings.Split(name, ".")
	for i := len(parts) - 1; i >= 1; i-- {
		outer := strings.Join(parts[:i], ".")
		if r.find(outer) == nil {
			continue
		}
		for _, part := range parts[i:] {
			next := r.memberClass(r.find(outer), part)
			if next == "" {
				return ""
			}
			outer = next
		}
		return outer
	}
	return ""
}

func (r *nameResolver) simple(scope, file *ClassModel, name string) string {
	for c := scope; c != nil; c = r.find(c.EnclosingClass) {
		if c.SimpleName == name {
			return c.Name
		}
		if member := r.memberClass(c, name); member != "" {
			return member
		}
	}
	if file == nil {
		if r.find(name) != nil {
			return name
		}
		return r.lang(name)
	}
	for _, imp := range file.Imports {
		if imp.Wildcard || imp.Static {
			continue
		}
		if imp.Name == name || strings.HasSuffix(imp.Name, "."+name) {
			if r.find(imp.Name) != nil {
				return imp.Name
			}
		}
	}
	if candidate := qualify(file.Package, name); r.find(candidate) != nil {
		return candidate
	}
	for _, imp := range file.Imports {
		if !imp.Wildcard {
			continue
		}
		if candidate := imp.Name + "." + name; r.find(candidate) != nil {
			return candidate
		}
	}
	if r.find(name) != nil {
		return name
	}
	return r.lang(name)
}

func (r *nameResolver) lang(name string) string {
	if candidate := "java.lang." + name; r.find(candidate) != nil {
		return candidate
	}
	return ""
}

func (r *nameResolver) memberClass(owner *ClassModel, name string) string {
	if owner == nil || r.visiting[owner.Name] {
		return ""
	}
	if candidate := owner.Name + "." + name; r.find(candidate) != nil {
		return candidate
	}
	r.visiting[owner.Name] = true
	defer delete(r.visiting, owner.Name)
	for _, super := range r.supertypes(owner) {
		if member := r.memberClass(r.find(super), name); member != "" {
			return member
		}
	}
	return ""
}

func (r *nameResolver) supertypes(c *ClassModel) []string {
	var names []string
	scope := r.find(c.EnclosingClass)
	add := func(t TypeModel) {
		if IsPrimitiveName(t.Name) || t.Name == "" {
			return
		}
		if resolved := r.resolve(scope, c, t.Name); resolved != "" && resolved != c.Name {
			names = append(names, resolved)
		}
	}
	if c.SuperClass != nil {
		add(*c.SuperClass)
	}
	for _, iface := range c.Interfaces {
		add(iface)
	}
	return names
}
