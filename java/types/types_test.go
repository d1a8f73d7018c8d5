package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javacomplete/java/index"
	"github.com/dhamidi/javacomplete/java/types"
)

var jdk = index.NewWithJDK()

func newSymtab(t *testing.T, sources ...string) *types.Symtab {
	t.Helper()
	ix := index.New()
	require.NoError(t, ix.LoadJDK())
	for i, src := range sources {
		require.NoError(t, ix.AddSource(string(rune('A'+i))+".java", []byte(src)))
	}
	return types.NewSymtab(ix)
}

func memberNames(ms []*types.Symbol) map[string]int {
	out := make(map[string]int)
	for _, m := range ms {
		out[m.Name]++
	}
	return out
}

func TestMemberTypeSubstitutesTypeArguments(t *testing.T) {
	s := types.NewSymtab(jdk)
	list := s.ClassType("java.util.List", s.String())
	require.Equal(t, types.KindDeclared, list.Kind)

	gets := s.FindMethods(list, "get")
	require.Len(t, gets, 1)
	assert.Equal(t, "java.lang.String", s.MemberType(list, gets[0]).String())

	iterators := s.FindMethods(list, "iterator")
	require.NotEmpty(t, iterators)
	assert.Equal(t, "java.util.Iterator<java.lang.String>", s.MemberType(list, iterators[0]).String())
}

func TestAllMembersInheritsWithoutDuplicates(t *testing.T) {
	s := types.NewSymtab(jdk)
	names := memberNames(s.AllMembers(s.ClassType("java.util.ArrayList", s.String())))
	assert.Equal(t, 1, names["size"])
	assert.Equal(t, 1, names["stream"])
	assert.Equal(t, 1, names["hashCode"])
	assert.Equal(t, 1, names["getFirst"])
	assert.Equal(t, 1, names["finalize"], "protected Object members are inherited")

	iface := memberNames(s.AllMembers(s.ClassType("java.lang.Runnable")))
	assert.Equal(t, 1, iface["run"])
	assert.Equal(t, 1, iface["toString"])

	array := memberNames(s.AllMembers(types.ArrayOf(types.Int)))
	assert.Equal(t, 1, array["length"])
	assert.Equal(t, 1, array["getClass"])
}

func TestAllMembersSkipsPrivateInherited(t *testing.T) {
	s := newSymtab(t, `
package p;
public class Base {
    private int secret;
    protected int shared;
    public void run() {}
}
`, `
package p;
public class Derived extends Base {
    public void run() {}
}
`)
	members := s.AllMembers(s.ClassType("p.Derived"))
	names := memberNames(members)
	assert.Equal(t, 0, names["secret"])
	assert.Equal(t, 1, names["shared"])
	assert.Equal(t, 1, names["run"])
	for _, m := range members {
		if m.Name == "run" {
			assert.Equal(t, "p.Derived", m.Owner.QualifiedName)
		}
	}
}

func TestSubtyping(t *testing.T) {
	s := types.NewSymtab(jdk)
	arrayList := s.ClassType("java.util.ArrayList", s.String())
	list := s.ClassType("java.util.List", s.String())
	set := s.ClassType("java.util.Set", s.String())

	assert.True(t, s.IsSubtype(arrayList, list))
	assert.False(t, s.IsSubtype(list, arrayList))
	assert.False(t, s.IsSubtype(arrayList, set))
	assert.True(t, s.IsSubtype(types.Null, list))
	assert.True(t, s.IsSubtype(types.ArrayOf(s.String()), types.ArrayOf(s.Object())))
	assert.True(t, s.IsSubtype(types.ArrayOf(types.Int), s.Object()))

	sup := s.AsSuper(arrayList, s.Class("java.lang.Iterable"))
	require.NotNil(t, sup)
	assert.Equal(t, "java.lang.Iterable<java.lang.String>", sup.String())
}

func TestAssignability(t *testing.T) {
	s := types.NewSymtab(jdk)
	integer := s.ClassType("java.lang.Integer")

	assert.True(t, s.IsAssignable(types.Int, types.Long))
	assert.False(t, s.IsAssignable(types.Long, types.Int))
	assert.True(t, s.IsAssignable(types.Char, types.Int))
	assert.False(t, s.IsAssignable(types.Short, types.Char))
	assert.True(t, s.IsAssignable(types.Int, integer))
	assert.True(t, s.IsAssignable(integer, types.Long))
	assert.True(t, s.IsAssignable(types.Int, s.Object()))
	assert.False(t, s.IsAssignable(types.Boolean, types.Int))
	assert.False(t, s.IsAssignable(s.String(), integer))
}

func TestNumericPromotion(t *testing.T) {
	s := types.NewSymtab(jdk)
	assert.Equal(t, types.Int, s.UnaryPromotion(types.Byte))
	assert.Equal(t, types.Long, s.BinaryPromotion(types.Int, types.Long))
	assert.Equal(t, types.Double, s.BinaryPromotion(s.ClassType("java.lang.Float"), types.Double))
	assert.Equal(t, types.Int, s.BinaryPromotion(types.Char, types.Short))
	assert.Nil(t, s.BinaryPromotion(types.Boolean, types.Int))
}

func TestCheckedExceptions(t *testing.T) {
	s := types.NewSymtab(jdk)
	assert.True(t, s.IsCheckedException(s.ClassType("java.io.IOException")))
	assert.True(t, s.IsCheckedException(s.ClassType("java.lang.Exception")))
	assert.False(t, s.IsCheckedException(s.ClassType("java.lang.IllegalStateException")))
	assert.False(t, s.IsCheckedException(s.ClassType("java.lang.AssertionError")))
	assert.False(t, s.IsCheckedException(s.String()))
}

func TestFunctionalMethod(t *testing.T) {
	s := types.NewSymtab(jdk)
	fn := s.FunctionalMethod(s.ClassType("java.util.function.Function", s.String(), s.ClassType("java.lang.Integer")))
	require.NotNil(t, fn)
	assert.Equal(t, "apply", fn.Name)

	cmp := s.FunctionalMethod(s.ClassType("java.util.Comparator", s.String()))
	require.NotNil(t, cmp)
	assert.Equal(t, "compare", cmp.Name)

	unary := s.FunctionalMethod(s.ClassType("java.util.function.UnaryOperator", s.String()))
	require.NotNil(t, unary)
	assert.Equal(t, "apply", unary.Name)

	assert.Nil(t, s.FunctionalMethod(s.ClassType("java.util.List", s.String())))
}

func TestResolveCallInfersTypeArguments(t *testing.T) {
	s := types.NewSymtab(jdk)
	optional := s.ClassType("java.util.Optional")
	m, ret := s.ResolveCall(optional, s.FindMethods(optional, "of"), []*types.Type{s.String()})
	require.NotNil(t, m)
	assert.Equal(t, "java.util.Optional<java.lang.String>", ret.String())

	builder := s.ClassType("java.lang.StringBuilder")
	m, ret = s.ResolveCall(builder, s.FindMethods(builder, "append"), []*types.Type{types.Int})
	require.NotNil(t, m)
	assert.Equal(t, "int", m.Params[0].Type.String())
	assert.Equal(t, "java.lang.StringBuilder", ret.String())
}

func TestAccessibility(t *testing.T) {
	s := newSymtab(t, `
package a;
public class Owner {
    private int hidden;
    int packaged;
    protected int inherited;
    public int open;
    private static class Secret {}
}
`, `
package a;
class Neighbour {}
`, `
package b;
public class Child extends a.Owner {}
`, `
package b;
public class Stranger {}
`)
	owner := s.Class("a.Owner")
	require.NotNil(t, owner)
	field := func(name string) *types.Symbol {
		f := s.FindField(owner.Type, name)
		require.NotNil(t, f, name)
		return f
	}
	neighbour, child, stranger := s.Class("a.Neighbour"), s.Class("b.Child"), s.Class("b.Stranger")

	assert.True(t, s.IsAccessible(field("hidden"), owner, nil))
	assert.False(t, s.IsAccessible(field("hidden"), neighbour, nil))
	assert.True(t, s.IsAccessible(field("packaged"), neighbour, nil))
	assert.False(t, s.IsAccessible(field("packaged"), stranger, nil))
	assert.True(t, s.IsAccessible(field("inherited"), child, nil))
	assert.False(t, s.IsAccessible(field("inherited"), stranger, nil))
	assert.True(t, s.IsAccessible(field("open"), stranger, nil))
	assert.False(t, s.IsAccessible(neighbour, stranger, nil))
	assert.False(t, s.IsAccessible(s.Class("a.Owner.Secret"), neighbour, nil))
}
