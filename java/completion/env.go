package completion

import (
	"github.com/dhamidi/javacomplete/java/compiler"
	"github.com/dhamidi/javacomplete/java/parser"
	"github.com/dhamidi/javacomplete/java/types"
)

// anchorState is the memo state of the assign-to-variable anchor.
type anchorState int

const (
	anchorNotComputed anchorState = iota
	anchorComputed
	anchorNotApplicable
)

// Env is the working state of one completion request. It is created by
// Resolve and owned by the request; nothing in it is shared.
type Env struct {
	Info *compiler.Info
	// Caret is the caret offset in the text, Offset the start of the
	// prefix being typed.
	Caret  int
	Offset int
	Prefix string
	Path   *parser.Path
	// Positions translates nodes of the path to text offsets. Inside a
	// synthetic fragment it is the fragment's table.
	Positions parser.SourcePositions

	Options Options
	Cancel  func() bool

	index    ClassIndex
	synth    *parser.Synthetic
	fragment map[*parser.Node]bool
	cursor   *parser.TokenCursor
	matcher  *Matcher

	scope *compiler.Scope

	smartComputed bool
	smart         []*types.Type
	infer         func(*Env) []*types.Type

	excludes    map[*types.Symbol]bool
	excludedKws map[string]bool

	topDown              bool
	afterExtends         bool
	insideNew            bool
	insideForEach        bool
	insideClassHeader    bool
	insideLiteral        bool
	semicolonComputed    bool
	addSemicolon         bool
	anchor               anchorState
	anchorOffset         int
	hasAdditionalMembers bool
}

func newEnv(ci *compiler.Info, caret, offset int, prefix string, path *parser.Path, opts Options) *Env {
	return &Env{
		Info:        ci,
		Caret:       caret,
		Offset:      offset,
		Prefix:      prefix,
		Path:        path,
		Positions:   parser.TreePositions{},
		Options:     opts,
		cursor:      parser.NewTokenCursor(ci.Tokens),
		matcher:     NewMatcher(prefix, opts),
		infer:       inferSmartTypes,
		excludes:    make(map[*types.Symbol]bool),
		excludedKws: make(map[string]bool),
	}
}

func (env *Env) Symtab() *types.Symtab {
	return env.Info.Symtab
}

// Synthetic returns the reattributed fragment the path runs through, or
// nil.
func (env *Env) Synthetic() *parser.Synthetic {
	return env.synth
}

// inFragment reports whether n belongs to the synthetic fragment and so
// carries fragment offsets.
func (env *Env) inFragment(n *parser.Node) bool {
	return env.fragment != nil && env.fragment[n]
}

// Start and End return text offsets for any node of the path.
func (env *Env) Start(n *parser.Node) int {
	if env.inFragment(n) {
		return env.Positions.StartPosition(n)
	}
	return n.Start()
}

func (env *Env) End(n *parser.Node) int {
	if env.inFragment(n) {
		return env.Positions.EndPosition(n)
	}
	return n.End()
}

// local converts a text offset into the coordinates of n.
func (env *Env) local(n *parser.Node, offset int) int {
	if env.inFragment(n) || (n != nil && n.Kind == parser.KindSynthetic) {
		return env.synth.Positions.ToLocal(offset)
	}
	return offset
}

// site returns the path of the construct the prefix is typed into and the
// slot of the prefix among its children. A fragment whose root starts at
// the prefix stands for the host slot it was parsed from.
func (env *Env) site() (*parser.Path, int) {
	p := env.Path
	if parent := p.Parent(); parent != nil && parent.Leaf().Kind == parser.KindSynthetic &&
		env.Start(p.Leaf()) >= env.Offset {
		p = parent
	}
	if n := p.Leaf(); n.Kind == parser.KindSynthetic {
		return p.Parent(), n.Synthetic.Index
	}
	return p, slotOf(env, p.Leaf())
}

// Scope is the scope at the caret, computed on first use.
func (env *Env) Scope() *compiler.Scope {
	if env.scope == nil {
		env.scope = env.scopeAt(env.Path)
	}
	return env.scope
}

// scopeAt is the scope at the leaf of path, restricted to what precedes
// the prefix.
func (env *Env) scopeAt(path *parser.Path) *compiler.Scope {
	return env.Info.ScopeAt(path, env.local(path.Leaf(), env.Offset))
}

// SmartTypes returns the types expected at the caret, nil when the
// context does not constrain them. They are inferred once.
func (env *Env) SmartTypes() []*types.Type {
	if !env.smartComputed {
		env.smart = env.infer(env)
		env.smartComputed = true
	}
	return env.smart
}

// Exclude records that sym was offered; later passes skip it.
func (env *Env) Exclude(sym *types.Symbol) {
	if sym != nil {
		env.excludes[sym] = true
	}
}

func (env *Env) Excluded(sym *types.Symbol) bool {
	return env.excludes[sym]
}

func (env *Env) ExcludeKeyword(kw string) {
	env.excludedKws[kw] = true
}

func (env *Env) cancelled() bool {
	return env.Cancel != nil && env.Cancel()
}

// previousToken returns the last non-trivia token before the prefix.
func (env *Env) previousToken() (parser.Token, bool) {
	return env.cursor.PreviousNonTrivia(env.Offset)
}

// previousTokenBefore returns the last non-trivia token ending at or
// before offset.
func (env *Env) previousTokenBefore(offset int) (parser.Token, bool) {
	return env.cursor.PreviousNonTrivia(offset)
}

// tokensBetween returns the non-trivia tokens in [start, Offset).
func (env *Env) tokensBetween(start int) []parser.Token {
	return env.cursor.TokensIn(start, env.Offset)
}

// lastTokenIn returns the last non-trivia token of [start, Offset) whose
// kind is one of kinds.
func (env *Env) lastTokenIn(start int, kinds ...parser.TokenKind) (parser.Token, bool) {
	toks := env.tokensBetween(start)
	for i := len(toks) - 1; i >= 0; i-- {
		for _, k := range kinds {
			if toks[i].Kind == k {
				return toks[i], true
			}
		}
	}
	return parser.Token{}, false
}

// AddSemicolon reports whether an inserted invocation ends the statement
// being typed, so that a terminator should be appended.
func (env *Env) AddSemicolon() bool {
	if env.semicolonComputed {
		return env.addSemicolon
	}
	env.semicolonComputed = true
	stmt := env.Path.FindFunc(func(n *parser.Node) bool { return n.Kind.IsStatement() || n.Kind == parser.KindSynthetic })
	if stmt == nil || stmt.Leaf().Kind != parser.KindExprStmt {
		return false
	}
	next := env.cursor.NextNonTrivia(env.Caret)
	if next.Kind == parser.TokenIdent && next.Offset() == env.Caret {
		next = env.cursor.NextNonTrivia(next.End())
	}
	switch next.Kind {
	case parser.TokenSemicolon, parser.TokenRParen, parser.TokenComma, parser.TokenDot,
		parser.TokenRBracket, parser.TokenLParen:
		return false
	}
	env.addSemicolon = true
	return true
}

// AssignAnchor returns the offset of the expression statement being typed,
// where an assignment to a new variable can be inserted. ok is false when
// the caret is not in an expression statement of a block.
func (env *Env) AssignAnchor() (offset int, ok bool) {
	switch env.anchor {
	case anchorComputed:
		return env.anchorOffset, true
	case anchorNotApplicable:
		return -1, false
	}
	env.anchor = anchorNotApplicable
	for p := env.Path; p != nil; p = p.Parent() {
		n := p.Leaf()
		switch {
		case n.Kind == parser.KindExprStmt:
			parent := p.Parent().Leaf()
			if parent == nil || (parent.Kind != parser.KindBlock && parent.Kind != parser.KindSynthetic &&
				parent.Kind != parser.KindSwitchCase) {
				return -1, false
			}
			if e := n.Child(0); e != nil && e.Kind == parser.KindAssignExpr {
				return -1, false
			}
			env.anchor = anchorComputed
			env.anchorOffset = env.Start(n)
			return env.anchorOffset, true
		case n.Kind.IsStatement(), n.Kind == parser.KindLambdaExpr, n.Kind == parser.KindClassBody:
			return -1, false
		}
	}
	return -1, false
}
