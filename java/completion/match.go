package completion

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher decides whether a name matches the typed prefix. A literal
// prefix match is always tried. Camel case matching applies when the
// prefix has an upper case letter after its first character; otherwise
// subword matching applies when enabled.
type Matcher struct {
	prefix        string
	caseSensitive bool
	camel         bool
	subword       *regexp.Regexp
}

func NewMatcher(prefix string, opts Options) *Matcher {
	m := &Matcher{prefix: prefix, caseSensitive: opts.CaseSensitive}
	if prefix == "" {
		return m
	}
	m.camel = isCamelCasePrefix(prefix)
	if !m.camel && opts.Subword {
		m.subword = subwordPattern(prefix)
	}
	return m
}

func (m *Matcher) Prefix() string {
	return m.prefix
}

// CamelCase reports whether the prefix is read as camel case initials.
func (m *Matcher) CamelCase() bool {
	return m.camel
}

func (m *Matcher) Matches(name string) bool {
	if m.prefix == "" {
		return true
	}
	if m.MatchesPrefix(name) {
		return true
	}
	if m.camel {
		return matchCamelCase(m.prefix, name)
	}
	if m.subword != nil {
		return m.subword.MatchString(name)
	}
	return false
}

// MatchesPrefix applies only the literal prefix rule.
func (m *Matcher) MatchesPrefix(name string) bool {
	if m.caseSensitive {
		return strings.HasPrefix(name, m.prefix)
	}
	return len(name) >= len(m.prefix) && strings.EqualFold(name[:len(m.prefix)], m.prefix)
}

func isCamelCasePrefix(prefix string) bool {
	_, size := utf8.DecodeRuneInString(prefix)
	for _, r := range prefix[size:] {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// camelParts splits a prefix before each upper case letter: "AIOOBE"
// yields A I O O B E and "getVN" yields get V N.
func camelParts(s string) []string {
	var parts []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			parts = append(parts, s[start:i])
			start = i
		}
	}
	return append(parts, s[start:])
}

// humps returns the offsets in name where a camel case word starts.
func humps(name string) []int {
	var out []int
	prev := rune(0)
	for i, r := range name {
		switch {
		case i == 0:
			out = append(out, i)
		case unicode.IsUpper(r) && !unicode.IsUpper(prev):
			out = append(out, i)
		case unicode.IsUpper(r) && i+1 < len(name) && unicode.IsLower(rune(name[i+1])):
			out = append(out, i)
		case prev == '_' && r != '_':
			out = append(out, i)
		case unicode.IsDigit(r) && !unicode.IsDigit(prev):
			out = append(out, i)
		}
		prev = r
	}
	return out
}

// matchCamelCase matches each part of prefix against the start of the
// next word of name. Words cannot be skipped.
func matchCamelCase(prefix, name string) bool {
	parts := camelParts(prefix)
	if !strings.HasPrefix(name, parts[0]) {
		return false
	}
	pos := len(parts[0])
	hs := humps(name)
	for _, part := range parts[1:] {
		next := -1
		for _, h := range hs {
			if h >= pos {
				next = h
				break
			}
		}
		if next < 0 || !strings.HasPrefix(name[next:], part) {
			return false
		}
		pos = next + len(part)
	}
	return true
}

// subwordPattern compiles prefix into a pattern where lower case letters
// match either case and upper case letters anchor the start of a later
// word. It returns nil for prefixes that are not identifier parts.
func subwordPattern(prefix string) *regexp.Regexp {
	var sb strings.Builder
	sb.WriteString("^.*?")
	for _, r := range prefix {
		switch {
		case !isIdentifierPart(r):
			return nil
		case unicode.IsLower(r):
			sb.WriteString("[")
			sb.WriteRune(r)
			sb.WriteRune(unicode.ToUpper(r))
			sb.WriteString("]")
		default:
			sb.WriteString(".*?")
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString(".*$")
	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil
	}
	return re
}

func isIdentifierPart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
