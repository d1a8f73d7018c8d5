package types

import "strings"

// TypeKind tags the variant of a Type.
type TypeKind int

const (
	KindError TypeKind = iota
	KindVoid
	KindBoolean
	KindByte
	KindShort
	KindChar
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindNull
	KindDeclared
	KindArray
	KindTypeVar
	KindWildcard
	KindUnion
	KindIntersection
)

var primitiveNames = map[TypeKind]string{
	KindVoid:    "void",
	KindBoolean: "boolean",
	KindByte:    "byte",
	KindShort:   "short",
	KindChar:    "char",
	KindInt:     "int",
	KindLong:    "long",
	KindFloat:   "float",
	KindDouble:  "double",
	KindNull:    "null",
}

type BoundKind int

const (
	Unbounded BoundKind = iota
	ExtendsBound
	SuperBound
)

// Type is a Java type. Which fields are set depends on Kind: Sym and Args
// for declared types, Sym for type variables, Elem for arrays, Bound and
// BoundKind for wildcards, Alternatives for union and intersection types
// and Name for erroneous types.
type Type struct {
	Kind         TypeKind
	Sym          *Symbol
	Args         []*Type
	Elem         *Type
	Bound        *Type
	BoundKind    BoundKind
	Alternatives []*Type
	Name         string
}

var (
	Void    = &Type{Kind: KindVoid}
	Boolean = &Type{Kind: KindBoolean}
	Byte    = &Type{Kind: KindByte}
	Short   = &Type{Kind: KindShort}
	Char    = &Type{Kind: KindChar}
	Int     = &Type{Kind: KindInt}
	Long    = &Type{Kind: KindLong}
	Float   = &Type{Kind: KindFloat}
	Double  = &Type{Kind: KindDouble}
	Null    = &Type{Kind: KindNull}
)

// Primitives lists the primitive types in widening order.
var Primitives = []*Type{Boolean, Byte, Short, Char, Int, Long, Float, Double}

// NumericTypes lists the numeric primitive types.
var NumericTypes = []*Type{Byte, Short, Char, Int, Long, Float, Double}

func PrimitiveByName(name string) *Type {
	switch name {
	case "void":
		return Void
	case "boolean":
		return Boolean
	case "byte":
		return Byte
	case "short":
		return Short
	case "char":
		return Char
	case "int":
		return Int
	case "long":
		return Long
	case "float":
		return Float
	case "double":
		return Double
	}
	return nil
}

// ErrorType is the type of a name that could not be resolved.
func ErrorType(name string) *Type {
	return &Type{Kind: KindError, Name: name}
}

func ArrayOf(elem *Type) *Type {
	return &Type{Kind: KindArray, Elem: elem}
}

func (t *Type) IsPrimitive() bool {
	return t != nil && t.Kind >= KindBoolean && t.Kind <= KindDouble
}

func (t *Type) IsNumeric() bool {
	return t != nil && t.Kind >= KindByte && t.Kind <= KindDouble
}

func (t *Type) IsIntegral() bool {
	return t != nil && t.Kind >= KindByte && t.Kind <= KindLong
}

func (t *Type) IsReference() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindDeclared, KindArray, KindTypeVar, KindNull, KindUnion, KindIntersection:
		return true
	}
	return false
}

func (t *Type) IsErroneous() bool {
	return t == nil || t.Kind == KindError
}

func (t *Type) IsVoid() bool {
	return t != nil && t.Kind == KindVoid
}

// IsRaw reports whether a generic class is used without type arguments.
func (t *Type) IsRaw() bool {
	return t != nil && t.Kind == KindDeclared && len(t.Args) == 0 && t.Sym != nil && len(t.Sym.TypeParams) > 0
}

// Dimensions returns the number of array dimensions of t.
func (t *Type) Dimensions() int {
	n := 0
	for ; t != nil && t.Kind == KindArray; t = t.Elem {
		n++
	}
	return n
}

// QualifiedName is the erased name of t: the canonical class name of a
// declared type, the type variable name, the primitive name, or the name
// as written for an erroneous type.
func (t *Type) QualifiedName() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case KindDeclared, KindTypeVar:
		if t.Sym.Kind == ElemTypeParameter {
			return t.Sym.Name
		}
		return t.Sym.QualifiedName
	case KindArray:
		return t.Elem.QualifiedName() + "[]"
	case KindError:
		return t.Name
	case KindWildcard:
		return "?"
	}
	return primitiveNames[t.Kind]
}

func (t *Type) SimpleName() string {
	name := t.QualifiedName()
	if t != nil && t.Kind == KindDeclared && t.Sym != nil {
		name = t.Sym.Name
	}
	return strings.TrimSuffix(name[strings.LastIndex(name, ".")+1:], "[]")
}

func (t *Type) String() string {
	if t == nil {
		return "<none>"
	}
	switch t.Kind {
	case KindDeclared:
		if len(t.Args) == 0 {
			return t.Sym.QualifiedName
		}
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.String()
		}
		return t.Sym.QualifiedName + "<" + strings.Join(args, ",") + ">"
	case KindTypeVar:
		return t.Sym.Name
	case KindArray:
		return t.Elem.String() + "[]"
	case KindWildcard:
		switch t.BoundKind {
		case ExtendsBound:
			return "? extends " + t.Bound.String()
		case SuperBound:
			return "? super " + t.Bound.String()
		}
		return "?"
	case KindUnion, KindIntersection:
		sep := " | "
		if t.Kind == KindIntersection {
			sep = " & "
		}
		parts := make([]string, len(t.Alternatives))
		for i, a := range t.Alternatives {
			parts[i] = a.String()
		}
		return strings.Join(parts, sep)
	case KindError:
		return t.Name
	}
	return primitiveNames[t.Kind]
}

// Identical reports whether a and b denote the same type.
func Identical(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindDeclared:
		if a.Sym != b.Sym || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Identical(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case KindTypeVar:
		return a.Sym == b.Sym
	case KindArray:
		return Identical(a.Elem, b.Elem)
	case KindWildcard:
		return a.BoundKind == b.BoundKind && (a.Bound == nil) == (b.Bound == nil) &&
			(a.Bound == nil || Identical(a.Bound, b.Bound))
	case KindError:
		return a.Name == b.Name
	case KindUnion, KindIntersection:
		if len(a.Alternatives) != len(b.Alternatives) {
			return false
		}
		for i := range a.Alternatives {
			if !Identical(a.Alternatives[i], b.Alternatives[i]) {
				return false
			}
		}
		return true
	}
	return true
}

// Subst replaces the type variables of from by the types of to.
func Subst(t *Type, from []*Symbol, to []*Type) *Type {
	if t == nil || len(from) == 0 || len(from) != len(to) {
		return t
	}
	switch t.Kind {
	case KindTypeVar:
		for i, tv := range from {
			if t.Sym == tv {
				return to[i]
			}
		}
	case KindDeclared:
		if len(t.Args) == 0 {
			return t
		}
		args := make([]*Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = Subst(a, from, to)
		}
		return &Type{Kind: KindDeclared, Sym: t.Sym, Args: args}
	case KindArray:
		return ArrayOf(Subst(t.Elem, from, to))
	case KindWildcard:
		if t.Bound == nil {
			return t
		}
		return &Type{Kind: KindWildcard, BoundKind: t.BoundKind, Bound: Subst(t.Bound, from, to), Sym: t.Sym}
	}
	return t
}
