package types

import (
	"strings"

	"github.com/dhamidi/javacomplete/java"
	"github.com/dhamidi/javacomplete/java/parser"
)

// ElementKind tags the variant of a Symbol.
type ElementKind int

const (
	ElemPackage ElementKind = iota
	ElemClass
	ElemInterface
	ElemEnum
	ElemRecord
	ElemAnnotationType
	ElemField
	ElemEnumConstant
	ElemMethod
	ElemConstructor
	ElemLocalVariable
	ElemParameter
	ElemExceptionParameter
	ElemResourceVariable
	ElemBindingVariable
	ElemTypeParameter
	ElemModule
)

var elementKindNames = map[ElementKind]string{
	ElemPackage:            "package",
	ElemClass:              "class",
	ElemInterface:          "interface",
	ElemEnum:               "enum",
	ElemRecord:             "record",
	ElemAnnotationType:     "annotation",
	ElemField:              "field",
	ElemEnumConstant:       "enum constant",
	ElemMethod:             "method",
	ElemConstructor:        "constructor",
	ElemLocalVariable:      "local variable",
	ElemParameter:          "parameter",
	ElemExceptionParameter: "exception parameter",
	ElemResourceVariable:   "resource variable",
	ElemBindingVariable:    "binding variable",
	ElemTypeParameter:      "type parameter",
	ElemModule:             "module",
}

func (k ElementKind) String() string {
	return elementKindNames[k]
}

func (k ElementKind) IsType() bool {
	return k >= ElemClass && k <= ElemAnnotationType
}

func (k ElementKind) IsInterface() bool {
	return k == ElemInterface || k == ElemAnnotationType
}

func (k ElementKind) IsField() bool {
	return k == ElemField || k == ElemEnumConstant
}

func (k ElementKind) IsExecutable() bool {
	return k == ElemMethod || k == ElemConstructor
}

// IsVariable reports whether k denotes something holding a value.
func (k ElementKind) IsVariable() bool {
	return k.IsField() || (k >= ElemLocalVariable && k <= ElemBindingVariable)
}

// IsLocal reports whether k is declared inside a method body.
func (k ElementKind) IsLocal() bool {
	return k >= ElemLocalVariable && k <= ElemBindingVariable
}

func ElementKindOf(kind java.ClassKind) ElementKind {
	switch kind {
	case java.ClassKindInterface:
		return ElemInterface
	case java.ClassKindEnum:
		return ElemEnum
	case java.ClassKindRecord:
		return ElemRecord
	case java.ClassKindAnnotation:
		return ElemAnnotationType
	}
	return ElemClass
}

type Flags uint32

const (
	FlagPublic Flags = 1 << iota
	FlagProtected
	FlagPrivate
	FlagStatic
	FlagFinal
	FlagAbstract
	FlagDefault
	FlagDeprecated
	FlagVarargs
	FlagSealed
	// FlagEffectivelyFinal marks locals that are never reassigned.
	FlagEffectivelyFinal
)

// Symbol is a named program element. Classes are completed lazily: their
// supertypes and members are read from Model on first use.
type Symbol struct {
	Kind          ElementKind
	Name          string
	QualifiedName string
	Package       string
	Owner         *Symbol
	Flags         Flags

	// Type is the type of a variable, the return type of a method, or the
	// type a class declares, with its own type variables as arguments.
	Type       *Type
	Params     []*Symbol
	TypeParams []*Symbol
	Thrown     []*Type
	Bounds     []*Type

	Javadoc string
	Node    *parser.Node
	Model   *java.ClassModel

	symtab     *Symtab
	completed  bool
	super      *Type
	interfaces []*Type
	members    []*Symbol
}

func (s *Symbol) Has(f Flags) bool {
	return s != nil && s.Flags&f != 0
}

func (s *Symbol) IsStatic() bool {
	return s.Has(FlagStatic)
}

func (s *Symbol) IsDeprecated() bool {
	return s.Has(FlagDeprecated)
}

func (s *Symbol) IsConstructor() bool {
	return s != nil && s.Kind == ElemConstructor
}

// Outermost returns the top level class enclosing s.
func (s *Symbol) Outermost() *Symbol {
	for s != nil && s.Owner != nil && s.Owner.Kind != ElemPackage {
		s = s.Owner
	}
	return s
}

// EnclosingClass returns the innermost class declaring or being s.
func (s *Symbol) EnclosingClass() *Symbol {
	for s != nil && !s.Kind.IsType() {
		s = s.Owner
	}
	return s
}

// Superclass returns the superclass of a class symbol, or nil.
func (s *Symbol) Superclass() *Type {
	s.complete()
	return s.super
}

func (s *Symbol) Interfaces() []*Type {
	s.complete()
	return s.interfaces
}

// Members returns the members a class declares itself.
func (s *Symbol) Members() []*Symbol {
	s.complete()
	return s.members
}

// EnumConstants returns the constants of an enum class in declaration
// order.
func (s *Symbol) EnumConstants() []*Symbol {
	var out []*Symbol
	for _, m := range s.Members() {
		if m.Kind == ElemEnumConstant {
			out = append(out, m)
		}
	}
	return out
}

// Permits returns the permitted direct subclasses of a sealed class.
func (s *Symbol) Permits() []*Symbol {
	if s.Model == nil || s.symtab == nil {
		return nil
	}
	var out []*Symbol
	for _, name := range s.Model.PermittedSubclasses {
		if sub := s.symtab.ResolveName(s, name); sub != nil {
			out = append(out, sub)
		}
	}
	return out
}

func (s *Symbol) complete() {
	if s == nil || s.completed || s.symtab == nil {
		return
	}
	s.completed = true
	s.symtab.complete(s)
}

func (s *Symbol) String() string {
	if s == nil {
		return "<nil>"
	}
	switch {
	case s.Kind.IsType() || s.Kind == ElemPackage:
		return s.QualifiedName
	case s.Kind.IsExecutable():
		params := make([]string, len(s.Params))
		for i, p := range s.Params {
			params[i] = p.Type.String()
		}
		name := s.Name
		if s.Kind == ElemConstructor && s.Owner != nil {
			name = s.Owner.Name
		}
		return name + "(" + strings.Join(params, ",") + ")"
	}
	return s.Name
}

func flagsOf(vis java.Visibility) Flags {
	switch vis {
	case java.VisibilityPublic:
		return FlagPublic
	case java.VisibilityProtected:
		return FlagProtected
	case java.VisibilityPrivate:
		return FlagPrivate
	}
	return 0
}
