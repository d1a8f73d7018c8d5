// Package parser provides an error-tolerant lexer and parser for Java source
// code, built for completion: the input is usually being edited and rarely
// compiles.
//
// # Tokens
//
// Lex returns every token of a text, whitespace and comments included, so
// that the token sequence covers the text without gaps. Restricted keywords
// (var, record, sealed, permits, yield, when and the module directives) are
// lexed as identifiers and recognised by the parser from context. String
// literals, text blocks and string templates that reach the end of a line or
// of the input are marked Unterminated; templates whose last \{ hole is
// still open are marked OpenHole.
//
// # Trees
//
// The parser produces a tree of uniform nodes:
//
//	type Node struct {
//	    Kind      NodeKind   // e.g. KindClassDecl, KindCallExpr
//	    Span      Span       // byte offsets plus line/column
//	    Children  []*Node
//	    Token     *Token     // operator, modifier or clause keyword
//	    Error     *Error     // set on KindError nodes
//	    Synthetic *Synthetic // set on KindSynthetic nodes
//	}
//
// Missing pieces are represented by zero-width KindError nodes at the point
// where the piece was expected, e.g. the member name of "items." is an
// error node right after the dot.
//
// # Entry Points
//
//	ParseCompilationUnit(r io.Reader, opts ...Option) *Parser
//	ParseStatement(src []byte, opts ...Option) *Parser
//	ParseMember(src []byte, opts ...Option) *Parser
//	ParseExpression(src []byte, opts ...Option) *Parser
//
// Finish returns the tree. Incomplete reports whether the input ended in
// the middle of a construct.
//
// # Paths and Positions
//
// A Path is an immutable chain from the root to a node. PathAt finds the
// deepest node whose span contains an offset, with start < offset <= end,
// so that a caret right after an identifier selects the identifier's
// parent. Fragments re-parsed from a window of the text are spliced into a
// path through a KindSynthetic node whose SyntheticPositions translate
// fragment offsets back to the original text.
//
// TokenCursor answers questions about the tokens around an offset, such as
// the previous non-trivia token.
package parser
