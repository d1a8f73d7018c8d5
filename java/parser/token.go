package parser

// Position is a location in a source text. Offset is a byte offset,
// Line and Column are 1-based.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

type Span struct {
	Start Position
	End   Position
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock
	TokenStringTemplate
	TokenTextBlockTemplate
	TokenTrue
	TokenFalse
	TokenNull

	// Keywords
	TokenAbstract
	TokenAssert
	TokenBoolean
	TokenBreak
	TokenByte
	TokenCase
	TokenCatch
	TokenChar
	TokenClass
	TokenConst
	TokenContinue
	TokenDefault
	TokenDo
	TokenDouble
	TokenElse
	TokenEnum
	TokenExtends
	TokenFinal
	TokenFinally
	TokenFloat
	TokenFor
	TokenGoto
	TokenIf
	TokenImplements
	TokenImport
	TokenInstanceof
	TokenInt
	TokenInterface
	TokenLong
	TokenNative
	TokenNew
	TokenPackage
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReturn
	TokenShort
	TokenStatic
	TokenStrictfp
	TokenSuper
	TokenSwitch
	TokenSynchronized
	TokenThis
	TokenThrow
	TokenThrows
	TokenTransient
	TokenTry
	TokenVoid
	TokenVolatile
	TokenWhile
	TokenNonSealed

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenAt
	TokenColonColon
	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenShr
	TokenUShr
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement
	TokenQuestion
	TokenColon
	TokenArrow
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:               "EOF",
	TokenError:             "Error",
	TokenWhitespace:        "Whitespace",
	TokenComment:           "Comment",
	TokenLineComment:       "LineComment",
	TokenIdent:             "Identifier",
	TokenIntLiteral:        "IntLiteral",
	TokenFloatLiteral:      "FloatLiteral",
	TokenCharLiteral:       "CharLiteral",
	TokenStringLiteral:     "StringLiteral",
	TokenTextBlock:         "TextBlock",
	TokenStringTemplate:    "StringTemplate",
	TokenTextBlockTemplate: "TextBlockTemplate",
	TokenTrue:              "true",
	TokenFalse:             "false",
	TokenNull:              "null",
	TokenAbstract:          "abstract",
	TokenAssert:            "assert",
	TokenBoolean:           "boolean",
	TokenBreak:             "break",
	TokenByte:              "byte",
	TokenCase:              "case",
	TokenCatch:             "catch",
	TokenChar:              "char",
	TokenClass:             "class",
	TokenConst:             "const",
	TokenContinue:          "continue",
	TokenDefault:           "default",
	TokenDo:                "do",
	TokenDouble:            "double",
	TokenElse:              "else",
	TokenEnum:              "enum",
	TokenExtends:           "extends",
	TokenFinal:             "final",
	TokenFinally:           "finally",
	TokenFloat:             "float",
	TokenFor:               "for",
	TokenGoto:              "goto",
	TokenIf:                "if",
	TokenImplements:        "implements",
	TokenImport:            "import",
	TokenInstanceof:        "instanceof",
	TokenInt:               "int",
	TokenInterface:         "interface",
	TokenLong:              "long",
	TokenNative:            "native",
	TokenNew:               "new",
	TokenPackage:           "package",
	TokenPrivate:           "private",
	TokenProtected:         "protected",
	TokenPublic:            "public",
	TokenReturn:            "return",
	TokenShort:             "short",
	TokenStatic:            "static",
	TokenStrictfp:          "strictfp",
	TokenSuper:             "super",
	TokenSwitch:            "switch",
	TokenSynchronized:      "synchronized",
	TokenThis:              "this",
	TokenThrow:             "throw",
	TokenThrows:            "throws",
	TokenTransient:         "transient",
	TokenTry:               "try",
	TokenVoid:              "void",
	TokenVolatile:          "volatile",
	TokenWhile:             "while",
	TokenNonSealed:         "non-sealed",
	TokenLParen:            "(",
	TokenRParen:            ")",
	TokenLBrace:            "{",
	TokenRBrace:            "}",
	TokenLBracket:          "[",
	TokenRBracket:          "]",
	TokenSemicolon:         ";",
	TokenComma:             ",",
	TokenDot:               ".",
	TokenEllipsis:          "...",
	TokenAt:                "@",
	TokenColonColon:        "::",
	TokenAssign:            "=",
	TokenEQ:                "==",
	TokenNE:                "!=",
	TokenLT:                "<",
	TokenLE:                "<=",
	TokenGT:                ">",
	TokenGE:                ">=",
	TokenAnd:               "&&",
	TokenOr:                "||",
	TokenNot:               "!",
	TokenBitAnd:            "&",
	TokenBitOr:             "|",
	TokenBitXor:            "^",
	TokenBitNot:            "~",
	TokenShl:               "<<",
	TokenShr:               ">>",
	TokenUShr:              ">>>",
	TokenPlus:              "+",
	TokenMinus:             "-",
	TokenStar:              "*",
	TokenSlash:             "/",
	TokenPercent:           "%",
	TokenIncrement:         "++",
	TokenDecrement:         "--",
	TokenQuestion:          "?",
	TokenColon:             ":",
	TokenArrow:             "->",
	TokenPlusAssign:        "+=",
	TokenMinusAssign:       "-=",
	TokenStarAssign:        "*=",
	TokenSlashAssign:       "/=",
	TokenPercentAssign:     "%=",
	TokenAndAssign:         "&=",
	TokenOrAssign:          "|=",
	TokenXorAssign:         "^=",
	TokenShlAssign:         "<<=",
	TokenShrAssign:         ">>=",
	TokenUShrAssign:        ">>>=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is a lexical token. Trivia (whitespace and comments) are tokens
// too so that a token sequence covers the source text without gaps.
type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string

	// Unterminated is set on string, char, text block and comment tokens
	// that reached a line end or EOF before their closing delimiter.
	Unterminated bool
	// OpenHole is set on template tokens whose last \{ hole was never closed.
	OpenHole bool
}

func (t Token) Offset() int {
	return t.Span.Start.Offset
}

func (t Token) End() int {
	return t.Span.End.Offset
}

func (t Token) IsTrivia() bool {
	switch t.Kind {
	case TokenWhitespace, TokenComment, TokenLineComment:
		return true
	}
	return false
}

func (t Token) IsKeyword() bool {
	return t.Kind >= TokenAbstract && t.Kind <= TokenNonSealed
}

// IsIdentifierLike reports whether the token can be the prefix the user is
// typing: identifiers, keywords and the boolean/null literals.
func (t Token) IsIdentifierLike() bool {
	return t.Kind == TokenIdent || t.IsKeyword() || t.Kind == TokenTrue || t.Kind == TokenFalse || t.Kind == TokenNull
}

func (t Token) IsLiteral() bool {
	return t.Kind >= TokenIntLiteral && t.Kind <= TokenNull
}

func (t Token) IsString() bool {
	switch t.Kind {
	case TokenStringLiteral, TokenTextBlock, TokenStringTemplate, TokenTextBlockTemplate:
		return true
	}
	return false
}

// Is reports whether the token is the identifier or keyword text s. It is
// how restricted keywords such as record, permits and when are recognised.
func (t Token) Is(s string) bool {
	return (t.Kind == TokenIdent || t.IsKeyword()) && t.Literal == s
}

var keywords = map[string]TokenKind{
	"abstract":     TokenAbstract,
	"assert":       TokenAssert,
	"boolean":      TokenBoolean,
	"break":        TokenBreak,
	"byte":         TokenByte,
	"case":         TokenCase,
	"catch":        TokenCatch,
	"char":         TokenChar,
	"class":        TokenClass,
	"const":        TokenConst,
	"continue":     TokenContinue,
	"default":      TokenDefault,
	"do":           TokenDo,
	"double":       TokenDouble,
	"else":         TokenElse,
	"enum":         TokenEnum,
	"extends":      TokenExtends,
	"final":        TokenFinal,
	"finally":      TokenFinally,
	"float":        TokenFloat,
	"for":          TokenFor,
	"goto":         TokenGoto,
	"if":           TokenIf,
	"implements":   TokenImplements,
	"import":       TokenImport,
	"instanceof":   TokenInstanceof,
	"int":          TokenInt,
	"interface":    TokenInterface,
	"long":         TokenLong,
	"native":       TokenNative,
	"new":          TokenNew,
	"package":      TokenPackage,
	"private":      TokenPrivate,
	"protected":    TokenProtected,
	"public":       TokenPublic,
	"return":       TokenReturn,
	"short":        TokenShort,
	"static":       TokenStatic,
	"strictfp":     TokenStrictfp,
	"super":        TokenSuper,
	"switch":       TokenSwitch,
	"synchronized": TokenSynchronized,
	"this":         TokenThis,
	"throw":        TokenThrow,
	"throws":       TokenThrows,
	"transient":    TokenTransient,
	"try":          TokenTry,
	"void":         TokenVoid,
	"volatile":     TokenVolatile,
	"while":        TokenWhile,
	"true":         TokenTrue,
	"false":        TokenFalse,
	"null":         TokenNull,
}

// LookupKeyword returns the keyword kind for ident, or TokenIdent.
// Restricted keywords (var, record, sealed, permits, yield, when, module
// directives) stay identifiers and are recognised by the parser in context.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

var contextualKeywords = map[string]bool{
	"var": true, "yield": true, "record": true, "sealed": true, "permits": true,
	"when": true, "module": true, "open": true, "requires": true, "exports": true,
	"opens": true, "uses": true, "provides": true, "to": true, "with": true,
	"transitive": true,
}

func IsContextualKeyword(s string) bool {
	return contextualKeywords[s]
}

// IsKeywordText reports whether s is a reserved word of the language.
func IsKeywordText(s string) bool {
	_, ok := keywords[s]
	return ok || s == "non-sealed"
}
