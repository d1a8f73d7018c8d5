package completion

import (
	"fmt"

	"github.com/dhamidi/javacomplete/java/types"
)

// Kind tags the variant of a Candidate.
type Kind int

const (
	KindKeyword Kind = iota
	KindModule
	KindPackage
	KindType
	KindArrayType
	KindTypeParameter
	KindVariable
	KindExecutable
	KindThisOrSuperConstructor
	KindOverrideMethod
	KindGetterSetter
	KindDefaultConstructor
	KindParameterHint
	KindAnnotation
	KindAttributeValue
	KindStaticMember
	KindChainedMember
	KindLambdaExpression
	KindRecordPattern
	KindInitializeAllConstructor
)

var kindNames = map[Kind]string{
	KindKeyword:                  "keyword",
	KindModule:                   "module",
	KindPackage:                  "package",
	KindType:                     "type",
	KindArrayType:                "array type",
	KindTypeParameter:            "type parameter",
	KindVariable:                 "variable",
	KindExecutable:               "executable",
	KindThisOrSuperConstructor:   "this or super constructor",
	KindOverrideMethod:           "override method",
	KindGetterSetter:             "getter or setter",
	KindDefaultConstructor:       "default constructor",
	KindParameterHint:            "parameter hint",
	KindAnnotation:               "annotation",
	KindAttributeValue:           "attribute value",
	KindStaticMember:             "static member",
	KindChainedMember:            "chained member",
	KindLambdaExpression:         "lambda expression",
	KindRecordPattern:            "record pattern",
	KindInitializeAllConstructor: "initialize all constructor",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Candidate is a completion result before rendering. Which fields are set
// depends on Kind:
//
//   - Keyword, Module, Package: Text.
//   - Type, Annotation, RecordPattern, TypeParameter: Symbol and Type.
//   - ArrayType: Type.
//   - Variable, Executable, StaticMember, OverrideMethod, ThisOrSuperConstructor:
//     Symbol, Type as seen from Site.
//   - DefaultConstructor: Symbol is the class.
//   - ChainedMember: Chain, the variable first.
//   - GetterSetter: Symbol is the field, Setter tells which accessor.
//   - InitializeAllConstructor: Symbol is the class, Fields the fields set.
//   - ParameterHint: Methods and ArgIndex.
//   - LambdaExpression: Type is the functional interface, Symbol its method.
//   - AttributeValue: Text, and Symbol for enum constants.
type Candidate struct {
	Kind    Kind
	Text    string
	Symbol  *types.Symbol
	Type    *types.Type
	Site    *types.Type
	Chain   []*types.Symbol
	Fields  []*types.Symbol
	Methods []*types.Symbol

	ArgIndex int
	Setter   bool
	// Implement marks override candidates of abstract methods.
	Implement bool

	SmartType   bool
	Deprecated  bool
	NeedsImport bool
	// Offset is where the candidate text replaces the typed prefix.
	Offset int
	// AssignTo is the offset where an assignment to a new variable can be
	// inserted, or -1.
	AssignTo int
	// AddSemicolon asks the renderer to terminate the statement.
	AddSemicolon bool
}

// Name is the text a typed prefix is matched against.
func (c Candidate) Name() string {
	switch c.Kind {
	case KindKeyword, KindModule, KindPackage, KindAttributeValue:
		return c.Text
	case KindArrayType:
		return c.Type.SimpleName()
	case KindChainedMember:
		if len(c.Chain) > 0 {
			return c.Chain[0].Name
		}
	case KindGetterSetter:
		return accessorName(c.Symbol, c.Setter)
	case KindThisOrSuperConstructor:
		return c.Text
	case KindParameterHint, KindLambdaExpression:
		return ""
	}
	if c.Symbol != nil {
		return c.Symbol.Name
	}
	return c.Text
}

func (c Candidate) String() string {
	switch c.Kind {
	case KindKeyword, KindModule, KindPackage:
		return fmt.Sprintf("%s %s", c.Kind, c.Text)
	case KindParameterHint:
		return fmt.Sprintf("%s %d methods, argument %d", c.Kind, len(c.Methods), c.ArgIndex)
	case KindChainedMember:
		s := c.Kind.String()
		for i, m := range c.Chain {
			sep := "."
			if i == 0 {
				sep = " "
			}
			s += sep + m.Name
		}
		return s
	}
	if c.Type != nil && c.Symbol != nil {
		return fmt.Sprintf("%s %s : %s", c.Kind, c.Name(), c.Type)
	}
	return fmt.Sprintf("%s %s", c.Kind, c.Name())
}

// ItemFactory turns candidates into rendered items. There is one creation
// method per candidate kind.
type ItemFactory[T any] interface {
	Keyword(c Candidate) T
	Module(c Candidate) T
	Package(c Candidate) T
	Type(c Candidate) T
	ArrayType(c Candidate) T
	TypeParameter(c Candidate) T
	Variable(c Candidate) T
	Executable(c Candidate) T
	ThisOrSuperConstructor(c Candidate) T
	OverrideMethod(c Candidate) T
	GetterSetter(c Candidate) T
	DefaultConstructor(c Candidate) T
	ParameterHint(c Candidate) T
	Annotation(c Candidate) T
	AttributeValue(c Candidate) T
	StaticMember(c Candidate) T
	ChainedMember(c Candidate) T
	LambdaExpression(c Candidate) T
	RecordPattern(c Candidate) T
	InitializeAllConstructor(c Candidate) T
}

// Render calls the creation method of f for the kind of c.
func Render[T any](f ItemFactory[T], c Candidate) T {
	switch c.Kind {
	case KindKeyword:
		return f.Keyword(c)
	case KindModule:
		return f.Module(c)
	case KindPackage:
		return f.Package(c)
	case KindType:
		return f.Type(c)
	case KindArrayType:
		return f.ArrayType(c)
	case KindTypeParameter:
		return f.TypeParameter(c)
	case KindVariable:
		return f.Variable(c)
	case KindExecutable:
		return f.Executable(c)
	case KindThisOrSuperConstructor:
		return f.ThisOrSuperConstructor(c)
	case KindOverrideMethod:
		return f.OverrideMethod(c)
	case KindGetterSetter:
		return f.GetterSetter(c)
	case KindDefaultConstructor:
		return f.DefaultConstructor(c)
	case KindParameterHint:
		return f.ParameterHint(c)
	case KindAnnotation:
		return f.Annotation(c)
	case KindAttributeValue:
		return f.AttributeValue(c)
	case KindStaticMember:
		return f.StaticMember(c)
	case KindChainedMember:
		return f.ChainedMember(c)
	case KindLambdaExpression:
		return f.LambdaExpression(c)
	case KindRecordPattern:
		return f.RecordPattern(c)
	default:
		return f.InitializeAllConstructor(c)
	}
}

// RenderAll renders every candidate in order.
func RenderAll[T any](f ItemFactory[T], cs []Candidate) []T {
	out := make([]T, 0, len(cs))
	for _, c := range cs {
		out = append(out, Render(f, c))
	}
	return out
}

// accessorName is the name of the getter or setter of field f.
func accessorName(f *types.Symbol, setter bool) string {
	if f == nil || f.Name == "" {
		return ""
	}
	suffix := string(upper(f.Name[0])) + f.Name[1:]
	switch {
	case setter:
		return "set" + suffix
	case f.Type != nil && f.Type.Kind == types.KindBoolean:
		return "is" + suffix
	}
	return "get" + suffix
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
