package completion

import (
	"strings"

	"github.com/dhamidi/javacomplete/java/types"
)

// Signature formats executable m as seen from site: name, parameter types
// and, for methods, the return type.
func Signature(m *types.Symbol, site *types.Type, s *types.Symtab) string {
	if m == nil {
		return ""
	}
	params := m.Params
	var ptypes []*types.Type
	if s != nil && site != nil {
		ptypes = s.ParamTypes(site, m)
	}
	parts := make([]string, len(params))
	for i, p := range params {
		t := p.Type
		if i < len(ptypes) {
			t = ptypes[i]
		}
		parts[i] = typeName(t) + " " + p.Name
		if i == len(params)-1 && m.Has(types.FlagVarargs) && t.Kind == types.KindArray {
			parts[i] = typeName(t.Elem) + "... " + p.Name
		}
	}
	name := m.Name
	if m.IsConstructor() && m.Owner != nil {
		name = m.Owner.Name
	}
	sig := name + "(" + strings.Join(parts, ", ") + ")"
	if !m.IsConstructor() {
		ret := m.Type
		if s != nil && site != nil {
			ret = s.MemberType(site, m)
		}
		sig += " : " + typeName(ret)
	}
	return sig
}

// typeName prints t with simple class names.
func typeName(t *types.Type) string {
	if t == nil {
		return "void"
	}
	switch t.Kind {
	case types.KindDeclared:
		if len(t.Args) == 0 {
			return t.Sym.Name
		}
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = typeName(a)
		}
		return t.Sym.Name + "<" + strings.Join(args, ", ") + ">"
	case types.KindArray:
		return typeName(t.Elem) + "[]"
	case types.KindWildcard:
		switch t.BoundKind {
		case types.ExtendsBound:
			return "? extends " + typeName(t.Bound)
		case types.SuperBound:
			return "? super " + typeName(t.Bound)
		}
	}
	return t.String()
}

// Describe returns the detail line of c: a type, a signature or the
// qualified name of what c inserts.
func Describe(c Candidate, s *types.Symtab) string {
	switch c.Kind {
	case KindKeyword, KindModule, KindPackage:
		return c.Kind.String()
	case KindType, KindAnnotation, KindTypeParameter, KindRecordPattern:
		if c.Symbol != nil {
			return c.Symbol.QualifiedName
		}
	case KindArrayType:
		return c.Type.String()
	case KindVariable, KindStaticMember, KindGetterSetter:
		if c.Type != nil {
			return typeName(c.Type)
		}
		if c.Symbol != nil {
			return typeName(c.Symbol.Type)
		}
	case KindExecutable, KindOverrideMethod, KindThisOrSuperConstructor:
		return Signature(c.Symbol, c.Site, s)
	case KindDefaultConstructor, KindInitializeAllConstructor:
		if c.Symbol != nil {
			return c.Symbol.Name + "(" + fieldParams(c.Fields) + ")"
		}
	case KindParameterHint:
		sigs := make([]string, len(c.Methods))
		for i, m := range c.Methods {
			sigs[i] = Signature(m, c.Site, s)
		}
		return strings.Join(sigs, "\n")
	case KindChainedMember:
		return typeName(c.Type)
	case KindLambdaExpression:
		return typeName(c.Type)
	case KindAttributeValue:
		if c.Symbol != nil && c.Symbol.Owner != nil {
			return c.Symbol.Owner.QualifiedName
		}
	}
	return ""
}

func fieldParams(fields []*types.Symbol) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = typeName(f.Type) + " " + f.Name
	}
	return strings.Join(parts, ", ")
}

func paramNames(m *types.Symbol) string {
	if m == nil {
		return ""
	}
	names := make([]string, len(m.Params))
	for i, p := range m.Params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// InsertText returns the plain text accepting c inserts in place of the
// typed prefix.
func InsertText(c Candidate) string {
	switch c.Kind {
	case KindExecutable:
		text := c.Symbol.Name + "()"
		if c.AddSemicolon {
			text += ";"
		}
		return text
	case KindThisOrSuperConstructor:
		return c.Text + "();"
	case KindArrayType:
		elem, dims := c.Type, 0
		for elem.Kind == types.KindArray {
			elem, dims = elem.Elem, dims+1
		}
		return elem.SimpleName() + strings.Repeat("[]", dims)
	case KindChainedMember:
		parts := make([]string, len(c.Chain))
		for i, m := range c.Chain {
			parts[i] = m.Name
			if m.Kind.IsExecutable() {
				parts[i] += "()"
			}
		}
		return strings.Join(parts, ".")
	case KindLambdaExpression:
		if c.Symbol != nil && len(c.Symbol.Params) == 1 {
			return c.Symbol.Params[0].Name + " -> "
		}
		return "(" + paramNames(c.Symbol) + ") -> "
	case KindRecordPattern:
		var comps []string
		for _, m := range c.Symbol.Members() {
			if m.Kind == types.ElemField && !m.IsStatic() {
				comps = append(comps, typeName(m.Type)+" "+m.Name)
			}
		}
		return c.Symbol.Name + "(" + strings.Join(comps, ", ") + ")"
	case KindOverrideMethod:
		return overrideText(c)
	case KindGetterSetter:
		return accessorText(c)
	case KindDefaultConstructor, KindInitializeAllConstructor:
		return constructorText(c)
	case KindParameterHint:
		return ""
	case KindAnnotation:
		return c.Symbol.Name
	}
	return c.Name()
}

func visibility(m *types.Symbol) string {
	switch {
	case m.Has(types.FlagPublic):
		return "public "
	case m.Has(types.FlagProtected):
		return "protected "
	}
	return ""
}

func overrideText(c Candidate) string {
	m := c.Symbol
	var sb strings.Builder
	sb.WriteString("@Override\n")
	sb.WriteString(visibility(m))
	ret := c.Type
	if ret == nil {
		ret = m.Type
	}
	sb.WriteString(typeName(ret) + " " + m.Name + "(")
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(typeName(p.Type) + " " + p.Name)
	}
	sb.WriteString(") {\n}")
	return sb.String()
}

func accessorText(c Candidate) string {
	f := c.Symbol
	name := accessorName(f, c.Setter)
	static := ""
	if f.IsStatic() {
		static = "static "
	}
	if c.Setter {
		return "public " + static + "void " + name + "(" + typeName(f.Type) + " " + f.Name + ") {\n\t" +
			qualifierFor(f) + f.Name + " = " + f.Name + ";\n}"
	}
	return "public " + static + typeName(f.Type) + " " + name + "() {\n\treturn " + f.Name + ";\n}"
}

func qualifierFor(f *types.Symbol) string {
	if f.IsStatic() && f.Owner != nil {
		return f.Owner.Name + "."
	}
	return "this."
}

func constructorText(c Candidate) string {
	var sb strings.Builder
	sb.WriteString("public " + c.Symbol.Name + "(" + fieldParams(c.Fields) + ") {\n")
	for _, f := range c.Fields {
		sb.WriteString("\tthis." + f.Name + " = " + f.Name + ";\n")
	}
	sb.WriteString("}")
	return sb.String()
}
