package java

import (
	"strings"

	"github.com/dhamidi/javacomplete/java/parser"
)

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindAnnotation ClassKind = "annotation"
	ClassKindRecord     ClassKind = "record"
)

// Import is an import declaration of a compilation unit. Name is the
// imported type or member, or the package/type whose members a wildcard
// import brings in.
type Import struct {
	Name     string
	Static   bool
	Wildcard bool
}

// ClassModel describes a declared type. Nested types have their own model;
// Name is the canonical name, e.g. java.util.Map.Entry.
type ClassModel struct {
	Name                string
	SimpleName          string
	Package             string
	SuperClass          *TypeModel
	Interfaces          []TypeModel
	Visibility          Visibility
	Kind                ClassKind
	IsFinal             bool
	IsAbstract          bool
	IsStatic            bool
	IsSealed            bool
	IsDeprecated        bool
	SourceFile          string
	Javadoc             string
	Annotations         []AnnotationModel
	RecordComponents    []RecordComponentModel
	PermittedSubclasses []string
	EnclosingClass      string
	InnerClasses        []string
	EnumConstants       []string
	Fields              []FieldModel
	Methods             []MethodModel
	TypeParameters      []TypeParameterModel

	// Imports are those of the compilation unit declaring the class. Type
	// names in the model that could not be resolved locally are resolved
	// against them.
	Imports []Import

	Node *parser.Node `json:"-"`
}

func (c *ClassModel) IsInterface() bool {
	return c.Kind == ClassKindInterface || c.Kind == ClassKindAnnotation
}

// Outermost returns the canonical name of the top level class enclosing c.
func (c *ClassModel) Outermost() string {
	if c.Package == "" {
		return strings.SplitN(c.Name, ".", 2)[0]
	}
	rest := strings.TrimPrefix(c.Name, c.Package+".")
	return c.Package + "." + strings.SplitN(rest, ".", 2)[0]
}

func (c *ClassModel) MethodsNamed(name string) []*MethodModel {
	var out []*MethodModel
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			out = append(out, &c.Methods[i])
		}
	}
	return out
}

func (c *ClassModel) Field(name string) *FieldModel {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i]
		}
	}
	return nil
}

type FieldModel struct {
	Name           string
	Type           TypeModel
	Visibility     Visibility
	IsStatic       bool
	IsFinal        bool
	IsEnumConstant bool
	IsDeprecated   bool
	Javadoc        string
	Annotations    []AnnotationModel

	Node *parser.Node `json:"-"`
}

// ConstructorName is the name of constructor methods.
const ConstructorName = "<init>"

type MethodModel struct {
	Name           string
	ReturnType     TypeModel
	Parameters     []ParameterModel
	Visibility     Visibility
	IsStatic       bool
	IsFinal        bool
	IsAbstract     bool
	IsVarargs      bool
	IsDefault      bool
	IsDeprecated   bool
	Javadoc        string
	Annotations    []AnnotationModel
	Exceptions     []TypeModel
	TypeParameters []TypeParameterModel

	Node *parser.Node `json:"-"`
}

func (m *MethodModel) IsConstructor() bool {
	return m.Name == ConstructorName
}

type ParameterModel struct {
	Name        string
	Type        TypeModel
	IsFinal     bool
	Annotations []AnnotationModel
}

// TypeModel is a type as written in a declaration. Name is a primitive
// name, void, a type variable name, or a class name that is qualified when
// it could be resolved while reading the source.
type TypeModel struct {
	Name          string
	ArrayDepth    int
	TypeArguments []TypeArgumentModel
}

func (t TypeModel) IsPrimitive() bool {
	if t.ArrayDepth > 0 {
		return false
	}
	return IsPrimitiveName(t.Name)
}

func IsPrimitiveName(name string) bool {
	switch name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double":
		return true
	}
	return false
}

func (t TypeModel) IsArray() bool {
	return t.ArrayDepth > 0
}

func (t TypeModel) IsVoid() bool {
	return t.Name == "void" && t.ArrayDepth == 0
}

func (t TypeModel) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.TypeArguments) > 0 {
		sb.WriteString("<")
		for i, arg := range t.TypeArguments {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteString(">")
	}
	sb.WriteString(strings.Repeat("[]", t.ArrayDepth))
	return sb.String()
}

type TypeArgumentModel struct {
	Type       *TypeModel
	IsWildcard bool
	BoundKind  string // "extends", "super", or "" for unbounded
	Bound      *TypeModel
}

func (a TypeArgumentModel) String() string {
	if !a.IsWildcard {
		if a.Type == nil {
			return "?"
		}
		return a.Type.String()
	}
	if a.Bound == nil {
		return "?"
	}
	return "? " + a.BoundKind + " " + a.Bound.String()
}

type TypeParameterModel struct {
	Name   string
	Bounds []TypeModel
}

type AnnotationModel struct {
	Type   string
	Values map[string]interface{}
}

type RecordComponentModel struct {
	Name        string
	Type        TypeModel
	Annotations []AnnotationModel
}

type ModuleModel struct {
	Name       string
	IsOpen     bool
	SourceFile string
	Requires   []string
	Exports    []string
}
