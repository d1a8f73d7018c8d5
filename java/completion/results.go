package completion

import (
	"fmt"

	"github.com/dhamidi/javacomplete/java/types"
)

// results accumulates the candidates of one request. It applies the rules
// every candidate is subject to: prefix matching, deprecation and
// uniqueness.
type results struct {
	env  *Env
	out  []Candidate
	seen map[string]bool
}

func newResults(env *Env) *results {
	return &results{env: env, seen: make(map[string]bool)}
}

// symbolKinds are the kinds whose candidates stand for one symbol. A
// symbol is offered under at most one of them.
var symbolKinds = map[Kind]bool{
	KindType:           true,
	KindVariable:       true,
	KindExecutable:     true,
	KindStaticMember:   true,
	KindAnnotation:     true,
	KindTypeParameter:  true,
	KindOverrideMethod: true,
}

// add appends c unless it is filtered out. It reports whether c was added.
func (r *results) add(c Candidate) bool {
	env := r.env
	if name := c.Name(); env.Prefix != "" && c.Kind != KindParameterHint && c.Kind != KindLambdaExpression {
		if name == "" || !env.matcher.Matches(name) {
			return false
		}
	}
	if c.Symbol != nil && c.Symbol.IsDeprecated() {
		c.Deprecated = true
	}
	if c.Deprecated && !env.Options.ShowDeprecated {
		return false
	}
	if symbolKinds[c.Kind] && c.Symbol != nil {
		if env.Excluded(c.Symbol) {
			return false
		}
		env.Exclude(c.Symbol)
	} else {
		key := r.key(c)
		if r.seen[key] {
			return false
		}
		r.seen[key] = true
	}
	if c.Kind == KindKeyword && env.excludedKws[c.Text] {
		return false
	}
	c.Offset = env.Offset
	if c.AssignTo == 0 {
		c.AssignTo = -1
	}
	r.out = append(r.out, c)
	return true
}

func (r *results) key(c Candidate) string {
	switch c.Kind {
	case KindChainedMember:
		k := c.Kind.String()
		for _, s := range c.Chain {
			k += fmt.Sprintf("/%p", s)
		}
		return k
	case KindParameterHint:
		return fmt.Sprintf("%s/%d/%d", c.Kind, len(c.Methods), c.ArgIndex)
	case KindArrayType, KindLambdaExpression, KindRecordPattern:
		return fmt.Sprintf("%s/%s", c.Kind, c.Type)
	}
	return fmt.Sprintf("%s/%s/%p/%t", c.Kind, c.Text, c.Symbol, c.Setter)
}

// isSmart reports whether t satisfies one of the smart types of env.
func (env *Env) isSmart(t *types.Type) bool {
	if t == nil || t.IsErroneous() {
		return false
	}
	s := env.Symtab()
	for _, st := range env.SmartTypes() {
		if st.Kind == types.KindTypeVar || st.Kind == types.KindWildcard {
			continue
		}
		if types.Identical(t, st) || s.IsAssignable(t, st) {
			return true
		}
	}
	return false
}

// keyword adds a keyword candidate.
func (r *results) keyword(kw string, smart bool) {
	r.add(Candidate{Kind: KindKeyword, Text: kw, SmartType: smart})
}

func (r *results) keywords(kws ...string) {
	for _, kw := range kws {
		r.keyword(kw, false)
	}
}
