package compiler_test

import (
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

func compile(t *testing.T, src string) *compiler.Info {
	t.Helper()
	ci, err := compiler.Parse([]byte(src), "A.java", jdk)
	require.NoError(t, err)
	return ci
}

// find returns the path to the first node of kind whose text is text.
func find(t *testing.T, ci *compiler.Info, kind parser.NodeKind, text string) *parser.Path {
	t.Helper()
	var found *parser.Node
	ci.Root.Walk(func(n *parser.Node) bool {
		if found == nil && n.Kind == kind && string(ci.Text[n.Start():n.End()]) == text {
			found = n
		}
		return found == nil
	})
	require.NotNil(t, found, "no %s %q", kind, text)
	return parser.PathTo(ci.Root, found)
}

func localNames(sc *compiler.Scope) []string {
	var out []string
	for _, l := range sc.Locals {
		out = append(out, l.Name)
	}
	return out
}

func TestPhasesAdvanceInOrder(t *testing.T) {
	ci := compiler.New([]byte("class A {}"), "A.java", jdk)
	assert.Equal(t, compiler.PhaseNone, ci.Phase())

	phase, err := ci.ToPhase(compiler.PhaseParsed)
	require.NoError(t, err)
	assert.Equal(t, compiler.PhaseParsed, phase)
	assert.NotNil(t, ci.Root)
	assert.Nil(t, ci.Symtab)

	phase, err = ci.ToPhase(compiler.PhaseResolved)
	require.NoError(t, err)
	assert.Equal(t, compiler.PhaseResolved, phase)
	require.Len(t, ci.Classes, 1)
	assert.NotNil(t, ci.Symtab.Class("A"))
}

func TestToPhaseHonoursCancellation(t *testing.T) {
	ci := compiler.New([]byte("class A {}"), "A.java", jdk)
	ci.Cancel = func() bool { return true }
	phase, err := ci.ToPhase(compiler.PhaseResolved)
	assert.ErrorIs(t, err, compiler.ErrCancelled)
	assert.Equal(t, compiler.PhaseNone, phase)
}

func TestUnitShadowsIndex(t *testing.T) {
	ci := compile(t, `
package java.util;
public class ArrayList { public void only() {} }
`)
	cls := ci.Symtab.Class("java.util.ArrayList")
	require.NotNil(t, cls)
	assert.Empty(t, cls.TypeParams)
	assert.NotNil(t, ci.Symtab.Class("java.util.List"))
}

func TestScopeAtCollectsPrecedingLocals(t *testing.T) {
	src := `
package p;
class A {
    int field;
    void m(String arg) {
        int before = 1;
        for (int i = 0; i < 3; i++) {
            @
        }
        int after = 2;
    }
}
`
	offset := strings.Index(src, "@")
	src = strings.Replace(src, "@", " ", 1)
	ci := compile(t, src)

	path := ci.PathAt(offset)
	require.Equal(t, parser.KindBlock, path.Leaf().Kind)
	sc := ci.ScopeAt(path, offset)

	assert.Equal(t, []string{"arg", "before", "i"}, localNames(sc))
	assert.Equal(t, "java.lang.String", sc.Variable("arg").Type.String())
	assert.Equal(t, types.Int, sc.Variable("i").Type)
	assert.Nil(t, sc.Variable("after"))
	require.NotNil(t, sc.Variable("field"))
	assert.Equal(t, types.ElemField, sc.Variable("field").Kind)
	require.NotNil(t, sc.Class)
	assert.Equal(t, "p.A", sc.Class.QualifiedName)
	require.NotNil(t, sc.Method)
	assert.Equal(t, "m", sc.Method.Name)
	assert.False(t, sc.Static)
}

func TestTypeOfExpressions(t *testing.T) {
	ci := compile(t, `
package p;
import java.util.*;
class A {
    List<String> names;
    static int count() { return 0; }
    void m() {
        var list = new ArrayList<String>();
        Map<String, Integer> counts = new HashMap<>();
        List<String> inferred = new ArrayList<>();
        Object a = list.get(0);
        Object b = counts.get("x");
        Object c = names.stream();
        Object d = 1 + 2L;
        Object e = "a" + 1;
        Object f = list.size() > 0 ? "x" : "y";
        Object g = new int[3];
        Object h = count() * 2.0f;
        Object i = String.class;
    }
}
`)
	for _, tc := range []struct {
		kind parser.NodeKind
		expr string
		want string
	}{
		{parser.KindCallExpr, "list.get(0)", "java.lang.String"},
		{parser.KindCallExpr, `counts.get("x")`, "java.lang.Integer"},
		{parser.KindCallExpr, "names.stream()", "java.util.stream.Stream<java.lang.String>"},
		{parser.KindBinaryExpr, "1 + 2L", "long"},
		{parser.KindBinaryExpr, `"a" + 1`, "java.lang.String"},
		{parser.KindTernaryExpr, `list.size() > 0 ? "x" : "y"`, "java.lang.String"},
		{parser.KindNewArrayExpr, "new int[3]", "int[]"},
		{parser.KindNewExpr, "new ArrayList<>()", "java.util.ArrayList<java.lang.String>"},
		{parser.KindBinaryExpr, "count() * 2.0f", "float"},
		{parser.KindClassLiteral, "String.class", "java.lang.Class<java.lang.String>"},
	} {
		t.Run(tc.expr, func(t *testing.T) {
			assert.Equal(t, tc.want, ci.TypeOf(find(t, ci, tc.kind, tc.expr)).String())
		})
	}
}

func TestElementOfDistinguishesTypesAndVariables(t *testing.T) {
	ci := compile(t, `
package p;
class A {
    static final int LIMIT = 3;
    void m(String s) {
        int x = A.LIMIT + s.length();
        java.util.List<String> l = null;
    }
}
`)
	limit := find(t, ci, parser.KindFieldAccess, "A.LIMIT")
	sym := ci.ElementOf(limit)
	require.NotNil(t, sym)
	assert.Equal(t, types.ElemField, sym.Kind)
	assert.True(t, ci.IsTypeName(limit.Child(limit.Leaf().Child(0))))

	call := find(t, ci, parser.KindCallExpr, "s.length()")
	m := ci.ElementOf(call)
	require.NotNil(t, m)
	assert.Equal(t, "length", m.Name)
	assert.Equal(t, "java.lang.String", m.Owner.QualifiedName)
	callee := call.Child(call.Leaf().Child(0))
	assert.False(t, ci.IsTypeName(callee.Child(callee.Leaf().Child(0))))
}

func TestLambdaParametersTakeTargetTypes(t *testing.T) {
	ci := compile(t, `
import java.util.function.*;
class A {
    void m() {
        Function<String, Integer> f = s -> s.length();
        BiFunction<Integer, Long, Long> g = (a, b) -> a + b;
    }
}
`)
	assert.Equal(t, "int", ci.TypeOf(find(t, ci, parser.KindCallExpr, "s.length()")).String())
	assert.Equal(t, "long", ci.TypeOf(find(t, ci, parser.KindBinaryExpr, "a + b")).String())

	callee := find(t, ci, parser.KindFieldAccess, "s.length")
	ident := callee.Child(callee.Leaf().Child(0))
	param := ci.ElementOf(ident)
	require.NotNil(t, param)
	assert.Equal(t, types.ElemParameter, param.Kind)
	assert.Equal(t, "java.lang.String", param.Type.String())
}

func TestPatternBindingsFlowIntoScope(t *testing.T) {
	ci := compile(t, `
class A {
    void m(Object o, Object p) {
        if (o instanceof String str && str.isEmpty()) {}
        if (!(p instanceof Integer n)) return;
        int k = n.intValue();
    }
}
`)
	assert.Equal(t, "boolean", ci.TypeOf(find(t, ci, parser.KindCallExpr, "str.isEmpty()")).String())
	assert.Equal(t, "int", ci.TypeOf(find(t, ci, parser.KindCallExpr, "n.intValue()")).String())
}

func TestTargetType(t *testing.T) {
	ci := compile(t, `
import java.util.*;
class A {
    boolean flag() { return true; }
    void take(List<String> xs, int n) {}
    void m() {
        String s = "x";
        take(null, 4);
        if (flag()) {}
    }
}
`)
	assert.Equal(t, "java.lang.String", ci.TargetType(find(t, ci, parser.KindLiteral, `"x"`)).String())
	assert.Equal(t, "java.util.List<java.lang.String>", ci.TargetType(find(t, ci, parser.KindLiteral, "null")).String())
	assert.Equal(t, "int", ci.TargetType(find(t, ci, parser.KindLiteral, "4")).String())
	assert.Equal(t, "boolean", ci.TargetType(find(t, ci, parser.KindLiteral, "true")).String())
	assert.Equal(t, "boolean", ci.TargetType(find(t, ci, parser.KindCallExpr, "flag()")).String())
}

func TestUncaughtExceptions(t *testing.T) {
	ci := compile(t, `
import java.io.*;
class A {
    void m() throws Exception {
        try (BufferedReader r = new BufferedReader(new FileReader("x"))) {
            r.readLine();
            throw new IllegalStateException();
        } catch (FileNotFoundException e) {
        }
    }
}
`)
	try := first(t, ci, parser.KindTryStmt)
	var names []string
	for _, ex := range ci.UncaughtExceptions(try) {
		names = append(names, ex.QualifiedName())
	}
	assert.Equal(t, []string{"java.io.IOException"}, names)
}

func TestUncaughtExceptionsOfNestedTry(t *testing.T) {
	ci := compile(t, `
class A {
    static class Alpha extends Exception {}
    static class Beta extends Exception {}
    void a() throws Alpha {}
    void b() throws Beta {}
    void m() {
        try {
            try {
                a();
                b();
            } catch (Alpha e) {
            }
        } finally {
        }
    }
}
`)
	got := ci.UncaughtExceptions(first(t, ci, parser.KindTryStmt))
	require.Len(t, got, 1)
	assert.Equal(t, "A.Beta", got[0].QualifiedName())
}

func first(t *testing.T, ci *compiler.Info, kind parser.NodeKind) *parser.Path {
	t.Helper()
	var found *parser.Node
	ci.Root.Walk(func(n *parser.Node) bool {
		if found == nil && n.Kind == kind {
			found = n
		}
		return found == nil
	})
	require.NotNil(t, found, "no %s", kind)
	return parser.PathTo(ci.Root, found)
}
