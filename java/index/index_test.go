package index

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javacomplete/java"
)

func names(hs []TypeHandle) []string {
	var out []string
	for _, h := range hs {
		out = append(out, h.QualifiedName)
	}
	return out
}

func TestJDKIsIndexed(t *testing.T) {
	ix := NewWithJDK()

	list := ix.FindClass("java.util.List")
	require.NotNil(t, list)
	assert.Equal(t, java.ClassKindInterface, list.Kind)
	assert.NotEmpty(t, list.MethodsNamed("get"))

	entry := ix.FindClass("java.util.Map.Entry")
	require.NotNil(t, entry)
	assert.Equal(t, "java.util.Map", entry.EnclosingClass)

	day := ix.FindClass("java.time.DayOfWeek")
	require.NotNil(t, day)
	assert.Equal(t, []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}, day.EnumConstants)
}

func TestDeclaredTypes(t *testing.T) {
	ix := NewWithJDK()

	got := names(ix.DeclaredTypes(Prefix("Array")))
	assert.Contains(t, got, "java.util.ArrayList")
	assert.Contains(t, got, "java.util.ArrayDeque")
	assert.Contains(t, got, "java.lang.ArrayIndexOutOfBoundsException")
	assert.NotContains(t, got, "java.util.List")

	enums := names(ix.DeclaredTypes(AnyName, java.ClassKindEnum))
	assert.Contains(t, enums, "java.time.Month")
	for _, name := range enums {
		assert.Equal(t, java.ClassKindEnum, ix.FindClass(name).Kind, name)
	}
}

func TestPackageNames(t *testing.T) {
	ix := NewWithJDK()
	got := ix.PackageNames("java.util")
	want := []string{"java.util", "java.util.function", "java.util.stream"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PackageNames mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, ix.PackageNames("ja"), "java")
}

func TestImplementors(t *testing.T) {
	ix := NewWithJDK()
	got := names(ix.Implementors(TypeHandle{QualifiedName: "java.util.List"}))
	assert.Contains(t, got, "java.util.ArrayList")
	assert.Contains(t, got, "java.util.LinkedList")
	assert.NotContains(t, got, "java.util.HashSet")

	exceptions := names(ix.Implementors(TypeHandle{QualifiedName: "java.io.IOException"}))
	assert.Contains(t, exceptions, "java.io.FileNotFoundException")
	assert.Contains(t, exceptions, "java.nio.file.NoSuchFileException")
}

func TestAddAndRemove(t *testing.T) {
	ix := New()
	require.NoError(t, ix.AddSource("a/Foo.java", []byte(`package a; public class Foo { class Inner {} }`)))
	assert.NotNil(t, ix.FindClass("a.Foo"))
	assert.NotNil(t, ix.FindClass("a.Foo.Inner"))
	assert.Equal(t, []string{"a"}, ix.PackageNames(""))

	require.NoError(t, ix.AddSource("a/Foo.java", []byte(`package a; public class Bar {}`)))
	assert.Nil(t, ix.FindClass("a.Foo"))
	assert.NotNil(t, ix.FindClass("a.Bar"))

	ix.Remove("a/Foo.java")
	assert.Equal(t, 0, ix.Len())
	assert.Empty(t, ix.PackageNames(""))
}

func TestModules(t *testing.T) {
	ix := New()
	require.NoError(t, ix.AddSource("module-info.java", []byte(`module com.example.app { requires java.base; }`)))
	assert.Equal(t, []string{"com.example.app"}, ix.ModuleNames("com."))
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("src/shop/Cart.java", `package shop; public class Cart {}`)
	write("src/shop/Item.java", `package shop; public record Item(String name) {}`)
	write("src/shop/Broken.java", `package shop; public class Broken { void m( }`)
	write("target/shop/Generated.java", `package shop; public class Generated {}`)
	write(".git/Hidden.java", `class Hidden {}`)

	ix := New()
	err := ix.ScanDir(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken.java")

	assert.NotNil(t, ix.FindClass("shop.Cart"))
	assert.NotNil(t, ix.FindClass("shop.Item"))
	assert.NotNil(t, ix.FindClass("shop.Broken"))
	assert.Nil(t, ix.FindClass("shop.Generated"))
	assert.Nil(t, ix.FindClass("Hidden"))
}

func TestScanDirCancelled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.java"), []byte(`class A {}`), 0o644))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New().ScanDir(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range map[string]string{
		"java.base/q/Zipped.java": "package q;\npublic class Zipped {}\n",
		"java.base/q/README":      "not a source",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	ix := New()
	require.NoError(t, ix.ScanArchive(path))
	assert.NotNil(t, ix.FindClass("q.Zipped"))
	assert.Equal(t, []string{path + "!java.base/q/Zipped.java"}, ix.Files())
}
