package parser

import (
	"fmt"
	"strings"
)

// NodeKind tags the variant of a Node. The set of kinds is closed; code that
// switches over it handles the kinds it cares about and ignores the rest.
type NodeKind int

const (
	KindError NodeKind = iota
	KindCompilationUnit
	KindPackageDecl
	KindImportDecl
	KindModuleDecl
	KindModuleDirective

	// Declarations
	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindRecordDecl
	KindAnnotationDecl
	KindClassBody
	KindEnumConstant
	KindFieldDecl
	KindVarDeclarator
	KindMethodDecl
	KindConstructorDecl
	KindInitializer
	KindDefaultValue
	KindModifiers
	KindAnnotation
	KindAnnotationElement
	KindExtendsClause
	KindImplementsClause
	KindPermitsClause
	KindThrowsClause
	KindParameters
	KindParameter
	KindTypeParameters
	KindTypeParameter

	// Types
	KindType
	KindArrayType
	KindTypeArguments
	KindWildcard
	KindUnionType
	KindIntersectionType

	// Statements
	KindBlock
	KindLocalVarDecl
	KindExprStmt
	KindIfStmt
	KindWhileStmt
	KindDoStmt
	KindForStmt
	KindForInit
	KindForUpdate
	KindEnhancedForStmt
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindThrowStmt
	KindYieldStmt
	KindAssertStmt
	KindLabeledStmt
	KindSynchronizedStmt
	KindEmptyStmt
	KindTryStmt
	KindResources
	KindCatchClause
	KindFinallyClause
	KindSwitchStmt
	KindSwitchCase
	KindSwitchLabel
	KindGuard

	// Patterns
	KindTypePattern
	KindRecordPattern

	// Expressions
	KindLiteral
	KindTemplate
	KindTemplateExpr
	KindIdentifier
	KindQualifiedName
	KindFieldAccess
	KindCallExpr
	KindArguments
	KindNewExpr
	KindNewArrayExpr
	KindArrayInit
	KindArrayAccess
	KindAssignExpr
	KindBinaryExpr
	KindUnaryExpr
	KindPostfixExpr
	KindTernaryExpr
	KindCastExpr
	KindInstanceofExpr
	KindParenExpr
	KindLambdaExpr
	KindMethodRef
	KindThis
	KindSuper
	KindClassLiteral
	KindSwitchExpr

	// KindSynthetic wraps a fragment that was re-parsed from a window of
	// the source text and spliced into the tree.
	KindSynthetic
)

var nodeKindNames = map[NodeKind]string{
	KindError:             "Error",
	KindCompilationUnit:   "CompilationUnit",
	KindPackageDecl:       "PackageDecl",
	KindImportDecl:        "ImportDecl",
	KindModuleDecl:        "ModuleDecl",
	KindModuleDirective:   "ModuleDirective",
	KindClassDecl:         "ClassDecl",
	KindInterfaceDecl:     "InterfaceDecl",
	KindEnumDecl:          "EnumDecl",
	KindRecordDecl:        "RecordDecl",
	KindAnnotationDecl:    "AnnotationDecl",
	KindClassBody:         "ClassBody",
	KindEnumConstant:      "EnumConstant",
	KindFieldDecl:         "FieldDecl",
	KindVarDeclarator:     "VarDeclarator",
	KindMethodDecl:        "MethodDecl",
	KindConstructorDecl:   "ConstructorDecl",
	KindInitializer:       "Initializer",
	KindDefaultValue:      "DefaultValue",
	KindModifiers:         "Modifiers",
	KindAnnotation:        "Annotation",
	KindAnnotationElement: "AnnotationElement",
	KindExtendsClause:     "ExtendsClause",
	KindImplementsClause:  "ImplementsClause",
	KindPermitsClause:     "PermitsClause",
	KindThrowsClause:      "ThrowsClause",
	KindParameters:        "Parameters",
	KindParameter:         "Parameter",
	KindTypeParameters:    "TypeParameters",
	KindTypeParameter:     "TypeParameter",
	KindType:              "Type",
	KindArrayType:         "ArrayType",
	KindTypeArguments:     "TypeArguments",
	KindWildcard:          "Wildcard",
	KindUnionType:         "UnionType",
	KindIntersectionType:  "IntersectionType",
	KindBlock:             "Block",
	KindLocalVarDecl:      "LocalVarDecl",
	KindExprStmt:          "ExprStmt",
	KindIfStmt:            "IfStmt",
	KindWhileStmt:         "WhileStmt",
	KindDoStmt:            "DoStmt",
	KindForStmt:           "ForStmt",
	KindForInit:           "ForInit",
	KindForUpdate:         "ForUpdate",
	KindEnhancedForStmt:   "EnhancedForStmt",
	KindReturnStmt:        "ReturnStmt",
	KindBreakStmt:         "BreakStmt",
	KindContinueStmt:      "ContinueStmt",
	KindThrowStmt:         "ThrowStmt",
	KindYieldStmt:         "YieldStmt",
	KindAssertStmt:        "AssertStmt",
	KindLabeledStmt:       "LabeledStmt",
	KindSynchronizedStmt:  "SynchronizedStmt",
	KindEmptyStmt:         "EmptyStmt",
	KindTryStmt:           "TryStmt",
	KindResources:         "Resources",
	KindCatchClause:       "CatchClause",
	KindFinallyClause:     "FinallyClause",
	KindSwitchStmt:        "SwitchStmt",
	KindSwitchCase:        "SwitchCase",
	KindSwitchLabel:       "SwitchLabel",
	KindGuard:             "Guard",
	KindTypePattern:       "TypePattern",
	KindRecordPattern:     "RecordPattern",
	KindLiteral:           "Literal",
	KindTemplate:          "Template",
	KindTemplateExpr:      "TemplateExpr",
	KindIdentifier:        "Identifier",
	KindQualifiedName:     "QualifiedName",
	KindFieldAccess:       "FieldAccess",
	KindCallExpr:          "CallExpr",
	KindArguments:         "Arguments",
	KindNewExpr:           "NewExpr",
	KindNewArrayExpr:      "NewArrayExpr",
	KindArrayInit:         "ArrayInit",
	KindArrayAccess:       "ArrayAccess",
	KindAssignExpr:        "AssignExpr",
	KindBinaryExpr:        "BinaryExpr",
	KindUnaryExpr:         "UnaryExpr",
	KindPostfixExpr:       "PostfixExpr",
	KindTernaryExpr:       "TernaryExpr",
	KindCastExpr:          "CastExpr",
	KindInstanceofExpr:    "InstanceofExpr",
	KindParenExpr:         "ParenExpr",
	KindLambdaExpr:        "LambdaExpr",
	KindMethodRef:         "MethodRef",
	KindThis:              "This",
	KindSuper:             "Super",
	KindClassLiteral:      "ClassLiteral",
	KindSwitchExpr:        "SwitchExpr",
	KindSynthetic:         "Synthetic",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTypeDecl reports whether k declares a class, interface, enum, record or
// annotation type.
func (k NodeKind) IsTypeDecl() bool {
	switch k {
	case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindRecordDecl, KindAnnotationDecl:
		return true
	}
	return false
}

func (k NodeKind) IsStatement() bool {
	switch k {
	case KindBlock, KindLocalVarDecl, KindExprStmt, KindIfStmt, KindWhileStmt, KindDoStmt,
		KindForStmt, KindEnhancedForStmt, KindReturnStmt, KindBreakStmt, KindContinueStmt,
		KindThrowStmt, KindYieldStmt, KindAssertStmt, KindLabeledStmt, KindSynchronizedStmt,
		KindEmptyStmt, KindTryStmt, KindSwitchStmt:
		return true
	}
	return k.IsTypeDecl()
}

type Error struct {
	Message  string
	Expected []TokenKind
	Got      *Token
}

func (e *Error) Error() string {
	if e.Got != nil {
		return fmt.Sprintf("%d:%d: %s", e.Got.Span.Start.Line, e.Got.Span.Start.Column, e.Message)
	}
	return e.Message
}

// Synthetic is the payload of a KindSynthetic node: the fragment parsed
// from a window of the original text and the table translating fragment
// offsets back to the original text.
type Synthetic struct {
	Fragment  *Node
	Positions *SyntheticPositions
	// Index is the position among the host's children the fragment stands
	// in for. Children before it precede the fragment.
	Index int
}

// Node is a syntax tree node. Operators of unary, binary, postfix and
// assignment expressions, modifiers and clause keywords are kept in Token.
type Node struct {
	Kind      NodeKind
	Span      Span
	Children  []*Node
	Token     *Token
	Error     *Error
	Synthetic *Synthetic
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) Start() int {
	return n.Span.Start.Offset
}

func (n *Node) End() int {
	return n.Span.End.Offset
}

func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

func (n *Node) LastChild() *Node {
	return n.Child(len(n.Children) - 1)
}

func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Name returns the text of the first identifier child, which for
// declarations is the declared name.
func (n *Node) Name() string {
	if id := n.FirstChildOfKind(KindIdentifier); id != nil {
		return id.TokenLiteral()
	}
	return ""
}

// HasModifier reports whether a declaration's Modifiers child carries the
// keyword mod.
func (n *Node) HasModifier(mod string) bool {
	mods := n.FirstChildOfKind(KindModifiers)
	if mods == nil {
		return false
	}
	for _, m := range mods.Children {
		if m.Kind == KindIdentifier && m.TokenLiteral() == mod {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants in source order. Returning false from
// fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0, false)
	return sb.String()
}

func (n *Node) StringWithPositions() string {
	var sb strings.Builder
	n.write(&sb, 0, true)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, indent int, showPositions bool) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind.String())
	if showPositions {
		fmt.Fprintf(sb, " [%d-%d]", n.Span.Start.Offset, n.Span.End.Offset)
	}
	if n.Token != nil {
		sb.WriteString(" ")
		sb.WriteString(n.Token.Literal)
	}
	if n.Error != nil {
		sb.WriteString(" ERROR: ")
		sb.WriteString(n.Error.Message)
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		child.write(sb, indent+1, showPositions)
	}
}
