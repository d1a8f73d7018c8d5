package completion

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javacomplete/java/compiler"
	"github.com/dhamidi/javacomplete/java/index"
	"github.com/dhamidi/javacomplete/java/parser"
	"github.com/dhamidi/javacomplete/java/types"
)

var jdk = index.NewWithJDK()

// split removes the caret marker from src and returns the text and the
// caret offset.
func split(t *testing.T, src string) ([]byte, int) {
	t.Helper()
	caret := strings.Index(src, "|")
	require.GreaterOrEqual(t, caret, 0, "no caret in %q", src)
	return []byte(src[:caret] + src[caret+1:]), caret
}

func complete(t *testing.T, src string, opts Options) *Result {
	t.Helper()
	text, caret := split(t, src)
	res, err := NewEngine(jdk).Complete(Request{Text: text, File: "C.java", Caret: caret, Options: opts})
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func names(cs []Candidate) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.Name())
	}
	return out
}

func find(cs []Candidate, kind Kind, name string) (Candidate, bool) {
	for _, c := range cs {
		if c.Kind == kind && c.Name() == name {
			return c, true
		}
	}
	return Candidate{}, false
}

// smartNames returns the simple names of the smart types of env.
func smartNames(env *Env) []string {
	var out []string
	for _, t := range env.SmartTypes() {
		out = append(out, t.SimpleName())
	}
	return out
}

func assertUnique(t *testing.T, cs []Candidate) {
	t.Helper()
	seen := make(map[string]bool)
	for _, c := range cs {
		k := fmt.Sprintf("%s/%s/%p", c.Kind, c.Name(), c.Symbol)
		assert.False(t, seen[k], "duplicate %s", c)
		seen[k] = true
	}
}

func TestBooleanLiteralIsSmartInReturn(t *testing.T) {
	sources := []string{
		`class C { void m() { int x = 1; if (x > 0) { return tr|} } }`,
		`class C { boolean m() { int x = 1; if (x > 0) { return tr|} } }`,
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			res := complete(t, src, DefaultOptions())

			kw, ok := find(res.Candidates, KindKeyword, "true")
			require.True(t, ok, "got %v", names(res.Candidates))
			assert.True(t, kw.SmartType)
			assert.Equal(t, []string{"boolean"}, smartNames(res.Env))
			_, ok = find(res.Candidates, KindKeyword, "false")
			assert.False(t, ok)
			for _, c := range res.Candidates {
				assert.True(t, strings.HasPrefix(c.Name(), "tr"), "%s does not match the prefix", c)
			}
			assertUnique(t, res.Candidates)
		})
	}
}

func TestValueReturnOutsideConditionIsNotSmart(t *testing.T) {
	res := complete(t, `class C { void m() { return tr|} }`, DefaultOptions())
	assert.Empty(t, res.Env.SmartTypes())
}

func TestMembersOfFieldType(t *testing.T) {
	res := complete(t, `class C { java.util.List<String> items; void m() { items.g|} }`, DefaultOptions())

	got := names(res.Candidates)
	assert.Contains(t, got, "get")
	assert.Contains(t, got, "getFirst")
	for _, c := range res.Candidates {
		assert.True(t, strings.HasPrefix(c.Name(), "g"), "%s does not match the prefix", c)
		assert.False(t, c.Deprecated, "%s is deprecated", c)
		require.NotNil(t, c.Symbol)
		assert.True(t, res.Env.Symtab().IsAccessible(c.Symbol, res.Env.Scope().Class, nil), "%s is not accessible", c)
	}
	get, ok := find(res.Candidates, KindExecutable, "get")
	require.True(t, ok)
	assert.Equal(t, "String", get.Type.SimpleName())
	assertUnique(t, res.Candidates)
}

const catchSource = `class ExA extends Exception {}
class ExB extends Exception {}
class C {
  void risky() throws ExA, ExB {}
  void m() { try { risky(); } catch (Ex|} }
`

func TestCatchOffersUncaughtExceptions(t *testing.T) {
	res := complete(t, catchSource, DefaultOptions())

	assert.ElementsMatch(t, []string{"ExA", "ExB"}, names(res.Candidates))
	for _, c := range res.Candidates {
		assert.Equal(t, KindType, c.Kind)
		assert.True(t, c.SmartType)
		require.NotNil(t, res.Env)
		assert.True(t, res.Env.Excluded(c.Symbol), "%s not excluded", c)
	}
}

func TestCatchWithAllSymbolsAddsOtherExceptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Flags = AllSymbols
	res := complete(t, catchSource, opts)

	got := names(res.Candidates)
	assert.Contains(t, got, "ExA")
	assert.Contains(t, got, "ExB")
	assert.Contains(t, got, "Exception")
	assertUnique(t, res.Candidates)
}

func TestCaseOffersRemainingEnumConstants(t *testing.T) {
	src := `enum Day { MONDAY, MONTH_END, TUESDAY }
class C {
  void m(Day day) {
    switch (day) { case MONTH_END: break; case MON|} }
}`
	res := complete(t, src, DefaultOptions())

	assert.Equal(t, []string{"MONDAY"}, names(res.Candidates))
	assert.Equal(t, KindVariable, res.Candidates[0].Kind)
	assert.True(t, res.Candidates[0].SmartType)
}

func TestUnterminatedStringIsClosedForReattribution(t *testing.T) {
	src := "class C {\n  void m() {\n    String s = \"abc|\n  }\n}\n"
	res := complete(t, src, DefaultOptions())

	require.NotNil(t, res.Env)
	assert.NotNil(t, res.Env.Synthetic())
	assert.Empty(t, res.Candidates)
	assert.Equal(t, `"`, closers([]byte(`String s = "abc`), "C.java"))
	assert.Equal(t, "*/", closers([]byte(`/* open`), "C.java"))
	assert.Equal(t, "", closers([]byte(`int x = 1`), "C.java"))
}

func TestAccessibility(t *testing.T) {
	src := `class Other { private int secretCount; int sharedCount; }
class C { void m(Other o) { o.s|} }`

	res := complete(t, src, DefaultOptions())
	assert.Equal(t, []string{"sharedCount"}, names(res.Candidates))

	opts := DefaultOptions()
	opts.Flags = SkipAccessibilityCheck
	res = complete(t, src, opts)
	assert.ElementsMatch(t, []string{"secretCount", "sharedCount"}, names(res.Candidates))
}

func TestStaticMembersAreHeldBackOnInstances(t *testing.T) {
	src := `class Other { static int total; int count; }
class C { void m(Other o) { o.|} }`

	res := complete(t, src, DefaultOptions())
	got := names(res.Candidates)
	assert.Contains(t, got, "count")
	assert.NotContains(t, got, "total")
	assert.True(t, res.HasAdditionalItems)

	opts := DefaultOptions()
	opts.Flags = AllSymbols
	res = complete(t, src, opts)
	assert.Contains(t, names(res.Candidates), "total")
}

func TestStatementKeywords(t *testing.T) {
	tests := []struct {
		src  string
		want []string
		not  []string
	}{
		{`class C { void m() { whi| } }`, []string{"while"}, nil},
		{`class C { void m() { for (;;) { b| } } }`, []string{"break", "boolean", "byte"}, nil},
		{`class C { void m() { b| } }`, []string{"boolean", "byte"}, []string{"break"}},
		{`class C { void m() { if (true) {} el| } }`, []string{"else"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			res := complete(t, tc.src, DefaultOptions())
			got := names(res.Candidates)
			for _, w := range tc.want {
				assert.Contains(t, got, w)
			}
			for _, n := range tc.not {
				assert.NotContains(t, got, n)
			}
			assertUnique(t, res.Candidates)
		})
	}
}

func TestSmartTypesAreInferredOnce(t *testing.T) {
	text, caret := split(t, `class C { boolean m() { int x = 1; if (x > 0) { return tr|} } }`)
	ci := compiler.New(text, "C.java", jdk)
	env, err := Resolve(ci, caret, BottomUp, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, env)
	env.index = jdk

	calls := 0
	env.infer = func(e *Env) []*types.Type {
		calls++
		return inferSmartTypes(e)
	}
	r := newResults(env)
	dispatch(env, r)

	assert.Equal(t, 1, calls)
	require.Len(t, env.SmartTypes(), 1)
	assert.Equal(t, types.KindBoolean, env.SmartTypes()[0].Kind)
	assert.Equal(t, 1, calls)
}

func TestReattributedPositionsMapToText(t *testing.T) {
	text, caret := split(t, `class C { java.util.List<String> items; void m() { int n = 0; items.g|} }`)
	ci := compiler.New(text, "C.java", jdk)
	env, err := Resolve(ci, caret, BottomUp, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, env)

	synth := env.Synthetic()
	require.NotNil(t, synth)
	idents := 0
	synth.Fragment.Walk(func(n *parser.Node) bool {
		if n.Kind == parser.KindIdentifier && !n.IsError() {
			idents++
			assert.Equal(t, n.TokenLiteral(), string(text[env.Start(n):env.End(n)]))
		}
		return true
	})
	assert.Equal(t, 2, idents)
	for off := synth.Positions.Base; off <= caret; off++ {
		assert.Equal(t, off, synth.Positions.ToOriginal(synth.Positions.ToLocal(off)))
	}
	assert.Equal(t, "g", env.Prefix)
	assert.Equal(t, caret-1, env.Offset)
}

func TestCancelledRequestReturnsNothing(t *testing.T) {
	text, caret := split(t, `class C { void m() { whi| } }`)
	cs, err := NewEngine(jdk).CompleteAt(text, caret, DefaultOptions(), func() bool { return true })
	require.NoError(t, err)
	assert.Empty(t, cs)
}

func TestNoCandidatesInsideComments(t *testing.T) {
	res := complete(t, `class C { void m() { // say wh|
} }`, DefaultOptions())
	assert.Empty(t, res.Candidates)
}

func TestPrefixSoundness(t *testing.T) {
	sources := []string{
		`class C { void m() { Str| } }`,
		`class C { void m(String s) { s.le| } }`,
		`import java.util.*; class C { void m() { new Arr| } }`,
		`class C { pu| }`,
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			res := complete(t, src, DefaultOptions())
			require.NotNil(t, res.Env)
			m := NewMatcher(res.Env.Prefix, DefaultOptions())
			for _, c := range res.Candidates {
				if c.Kind == KindParameterHint || c.Kind == KindLambdaExpression {
					continue
				}
				assert.True(t, m.Matches(c.Name()), "%s does not match %q", c, res.Env.Prefix)
			}
			assertUnique(t, res.Candidates)
		})
	}
}

func TestCompletionAfterWhitespace(t *testing.T) {
	tests := []struct {
		src   string
		want  []string
		not   []string
		exact []string
		smart []string
		hint  bool
	}{
		{
			src:   `class C { void m() { int x = |; } }`,
			want:  []string{"new"},
			not:   []string{"while", "if", "return"},
			smart: []string{"int"},
		},
		{
			src:   `class C { int x = |; }`,
			want:  []string{"new"},
			not:   []string{"while", "public"},
			smart: []string{"int"},
		},
		{
			src:   `class C { boolean m() { return | } }`,
			want:  []string{"true", "false"},
			not:   []string{"while", "return"},
			smart: []string{"boolean"},
		},
		{
			src:   `class C { void m() { StringBuilder b = new | } }`,
			want:  []string{"StringBuilder", "String"},
			not:   []string{"while", "true"},
			smart: []string{"StringBuilder"},
		},
		{
			src:  `class C { void m(Object o) { if (o instanceof |) {} } }`,
			want: []string{"String"},
			not:  []string{"while", "true", "null"},
		},
		{
			src:  `class C { void m(int a) { Math.max(a, |); } }`,
			want: []string{"a"},
			not:  []string{"while", "return"},
			hint: true,
		},
		{
			src:   "enum D { A, B, C }\nclass T { void m(D d) { switch (d) { case A: break; case | } } }",
			exact: []string{"B", "C"},
		},
		{
			src:   "enum Level { LOW, HIGH }\n@interface A { Level p(); }\n@A(p = |) class C {}",
			exact: []string{"LOW", "HIGH"},
		},
		{
			src:  "class B {}\nclass C extends | {}",
			want: []string{"B", "Object"},
			not:  []string{"extends", "implements", "Runnable"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			res := complete(t, tc.src, DefaultOptions())
			got := names(res.Candidates)
			if tc.exact != nil {
				assert.ElementsMatch(t, tc.exact, got)
			}
			for _, w := range tc.want {
				assert.Contains(t, got, w)
			}
			for _, n := range tc.not {
				assert.NotContains(t, got, n)
			}
			if tc.smart != nil {
				assert.Equal(t, tc.smart, smartNames(res.Env))
			}
			if tc.hint {
				hint, ok := find(res.Candidates, KindParameterHint, "")
				require.True(t, ok, "no parameter hint in %v", got)
				assert.Equal(t, 1, hint.ArgIndex)
				assert.Subset(t, smartNames(res.Env), []string{"int", "long", "double"})
			}
			assertUnique(t, res.Candidates)
		})
	}
}

func TestOverloadsKeepTheMostSpecificParameterType(t *testing.T) {
	tests := []struct {
		src   string
		smart []string
	}{
		{`class C { void f(Object o) {} void f(String s) {} void m() { f(|); } }`, []string{"String"}},
		{`class C { void f(CharSequence o) {} void f(String s) {} void f(Integer i) {} void m() { f(|); } }`, []string{"String", "Integer"}},
		{`class C { void f(int a, Object o) {} void f(int a, String s) {} void m() { f(1, |); } }`, []string{"String"}},
		{`class C { void f(int i) {} void f(long l) {} void m() { f(|); } }`, []string{"int", "long"}},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			res := complete(t, tc.src, DefaultOptions())
			assert.ElementsMatch(t, tc.smart, smartNames(res.Env))
		})
	}
}

func TestArrayInitializerSlotsExpectTheElementType(t *testing.T) {
	tests := []struct {
		src   string
		smart []string
	}{
		{`class C { void m() { int[] a = {|}; } }`, []string{"int"}},
		{`class C { void m() { int[] a = { |}; } }`, []string{"int"}},
		{`class C { void m() { int[] a = {1,|}; } }`, []string{"int"}},
		{`class C { void m() { int[] a = {1, |}; } }`, []string{"int"}},
		{`class C { void m() { int[][] a = { {|} }; } }`, []string{"int"}},
		{`class C { void m(int b) { int[] a = {b|}; } }`, []string{"int"}},
		{`class C { String[] names = {|}; }`, []string{"String"}},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			res := complete(t, tc.src, DefaultOptions())
			assert.Equal(t, tc.smart, smartNames(res.Env))
		})
	}
}

func TestClassHeaderKeywords(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{`class C ext| {}`, []string{"extends"}},
		{`class C | {}`, []string{"extends", "implements"}},
		{`class C extends Object | {}`, []string{"implements"}},
		{`class C extends Object imp| {}`, []string{"implements"}},
		{`class C implements Runnable | {}`, nil},
		{`sealed class C | {}`, []string{"extends", "implements", "permits"}},
		{`sealed class C p| {}`, []string{"permits"}},
		{`sealed class C extends Object | {}`, []string{"implements", "permits"}},
		{`interface I | {}`, []string{"extends"}},
		{`sealed interface I extends Runnable | {}`, []string{"permits"}},
		{`enum E | {}`, []string{"implements"}},
		{`record R(int a) | {}`, []string{"implements"}},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			res := complete(t, tc.src, DefaultOptions())
			assert.ElementsMatch(t, tc.want, names(res.Candidates))
			for _, c := range res.Candidates {
				assert.Equal(t, KindKeyword, c.Kind)
			}
		})
	}
}
