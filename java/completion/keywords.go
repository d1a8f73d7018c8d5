package completion

import (
	"github.com/dhamidi/javacomplete/java/parser"
)

// versioned is a keyword that exists from a source level on.
type versioned struct {
	kw    string
	since int
}

var (
	classKeywords = []versioned{
		{"class", 0}, {"interface", 0}, {"enum", 5}, {"record", 16},
	}
	classModifiers = []versioned{
		{"public", 0}, {"abstract", 0}, {"final", 0}, {"strictfp", 0},
		{"sealed", 17}, {"non-sealed", 17},
	}
	memberModifiers = []versioned{
		{"public", 0}, {"protected", 0}, {"private", 0}, {"static", 0}, {"final", 0},
		{"abstract", 0}, {"synchronized", 0}, {"native", 0}, {"transient", 0},
		{"volatile", 0}, {"strictfp", 0}, {"default", 8}, {"sealed", 17}, {"non-sealed", 17},
	}
	statementKeywords = []versioned{
		{"if", 0}, {"while", 0}, {"do", 0}, {"for", 0}, {"try", 0}, {"switch", 0},
		{"return", 0}, {"throw", 0}, {"synchronized", 0}, {"assert", 4}, {"final", 0},
		{"class", 0}, {"interface", 16}, {"enum", 16}, {"record", 16}, {"var", 10},
	}
	moduleDirectives = []string{"requires", "exports", "opens", "uses", "provides"}
)

// addVersioned offers the keywords of kws available at the source level.
func (r *results) addVersioned(kws []versioned, skip map[string]bool) {
	for _, k := range kws {
		if k.since > 0 && !r.env.Options.atLeast(k.since) {
			continue
		}
		if skip[k.kw] {
			continue
		}
		r.keyword(k.kw, false)
	}
}

// usedModifiers returns the modifier keywords present in mods, an
// annotation-only Modifiers node giving none.
func usedModifiers(mods *parser.Node) map[string]bool {
	used := make(map[string]bool)
	if mods == nil {
		return used
	}
	for _, c := range mods.Children {
		if c.Kind == parser.KindIdentifier {
			used[c.TokenLiteral()] = true
		}
	}
	if used["public"] || used["protected"] || used["private"] {
		used["public"], used["protected"], used["private"] = true, true, true
	}
	if used["sealed"] || used["non-sealed"] || used["final"] {
		used["sealed"], used["non-sealed"], used["final"] = true, true, true
	}
	return used
}
