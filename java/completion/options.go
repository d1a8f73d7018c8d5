package completion

import "strings"

// Flag is one of the named request options.
type Flag uint8

const (
	// AllSymbols disables context narrowing: every symbol of the index is
	// a candidate and static members are not hidden behind instances.
	AllSymbols Flag = 1 << iota
	// Combined offers unimported types next to imported ones and runs the
	// general passes that normally follow a smart pass only on demand.
	Combined
	// SkipAccessibilityCheck turns the accessibility filter off.
	SkipAccessibilityCheck
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{AllSymbols, "ALL_SYMBOLS"},
	{Combined, "COMBINED"},
	{SkipAccessibilityCheck, "SKIP_ACCESSIBILITY_CHECK"},
}

func (f Flag) String() string {
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// Options configures one completion request.
type Options struct {
	Flags Flag
	// ShowDeprecated keeps deprecated symbols among the candidates.
	ShowDeprecated bool
	// CaseSensitive makes literal prefix matching case sensitive.
	CaseSensitive bool
	// Subword enables subword matching when camel case does not apply.
	Subword bool
	// SourceLevel is the Java release the source is written for.
	SourceLevel int
}

// DefaultOptions are the options of an interactive request.
func DefaultOptions() Options {
	return Options{CaseSensitive: true, SourceLevel: 21}
}

func (o Options) Has(f Flag) bool {
	return o.Flags&f != 0
}

// atLeast reports whether the source level admits features of release. A
// zero level means the latest release.
func (o Options) atLeast(release int) bool {
	return o.SourceLevel == 0 || o.SourceLevel >= release
}
