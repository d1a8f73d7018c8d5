package codebase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/javacomplete/java/completion"
	"github.com/dhamidi/javacomplete/java/parser"
	"github.com/dhamidi/javacomplete/java/types"
)

func TestOffsetOf(t *testing.T) {
	text := []byte("ab\nc😀d\n\nxyz")
	tests := []struct {
		pos  protocol.Position
		want int
	}{
		{protocol.Position{Line: 0, Character: 0}, 0},
		{protocol.Position{Line: 0, Character: 2}, 2},
		{protocol.Position{Line: 0, Character: 9}, 2},
		{protocol.Position{Line: 1, Character: 1}, 4},
		{protocol.Position{Line: 1, Character: 3}, 8},
		{protocol.Position{Line: 2, Character: 0}, 10},
		{protocol.Position{Line: 3, Character: 3}, 14},
		{protocol.Position{Line: 7, Character: 0}, 14},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, offsetOf(text, tt.pos), "%+v", tt.pos)
	}
}

func TestPositionOfInvertsOffsetOf(t *testing.T) {
	text := []byte("class C {\n  String s = \"é😀\";\n}\n")
	for off := 0; off <= len(text); off++ {
		if off < len(text) && text[off]&0xC0 == 0x80 {
			continue
		}
		pos := positionOf(text, off)
		assert.Equal(t, off, offsetOf(text, pos), "offset %d at %+v", off, pos)
	}
}

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///tmp/src/My%20App/C.java")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/src/My App/C.java", path)

	path, err = uriToPath("/already/a/path.java")
	require.NoError(t, err)
	assert.Equal(t, "/already/a/path.java", path)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func labels(cs []completion.Candidate) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.Name())
	}
	return out
}

func TestOpenDocumentsShadowDisk(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "p", "Lib.java")
	use := filepath.Join(dir, "p", "Use.java")
	writeFile(t, lib, "package p;\npublic class Lib { public void alpha() {} }\n")
	src := "package p;\nclass Use { void m(Lib l) { l. } }\n"
	writeFile(t, use, src)

	c := New(dir)
	err := c.ScanAll(context.Background())
	require.Error(t, err, "Use.java is incomplete")
	assert.Contains(t, err.Error(), "Use.java")
	assert.NotContains(t, err.Error(), "Lib.java")
	caret := strings.Index(src, "l. ") + 2

	res, err := c.Complete(use, caret, completion.DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Contains(t, labels(res.Candidates), "alpha")

	c.UpdateFile(lib, []byte("package p;\npublic class Lib { public void beta() {} }\n"))
	assert.True(t, c.IsOpen(lib))
	res, err = c.Complete(use, caret, completion.DefaultOptions(), nil)
	require.NoError(t, err)
	got := labels(res.Candidates)
	assert.Contains(t, got, "beta")
	assert.NotContains(t, got, "alpha")

	c.CloseFile(lib)
	assert.False(t, c.IsOpen(lib))
	res, err = c.Complete(use, caret, completion.DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Contains(t, labels(res.Candidates), "alpha")
}

func TestCompleteRejectsOffsetsOutsideTheDocument(t *testing.T) {
	c := New(t.TempDir())
	c.UpdateFile("/virtual/C.java", []byte("class C {}"))

	_, err := c.Complete("/virtual/C.java", 99, completion.DefaultOptions(), nil)
	assert.Error(t, err)
	_, err = c.Complete("/virtual/Missing.java", 0, completion.DefaultOptions(), nil)
	assert.Error(t, err)
}

func TestRenderedItemsReplaceThePrefix(t *testing.T) {
	c := New(t.TempDir())
	src := "class C {\n  java.util.List<String> items;\n  void m() { items.g }\n}\n"
	c.UpdateFile("/virtual/C.java", []byte(src))
	caret := strings.Index(src, "items.g") + len("items.g")

	res, err := c.Complete("/virtual/C.java", caret, completion.DefaultOptions(), nil)
	require.NoError(t, err)
	ls := &LSPServer{}
	items := ls.render([]byte(src), res)
	require.NotEmpty(t, items)

	var get *protocol.CompletionItem
	for i := range items {
		if items[i].Label == "get" {
			get = &items[i]
		}
	}
	require.NotNil(t, get)
	edit, ok := get.TextEdit.(protocol.TextEdit)
	require.True(t, ok)
	assert.Equal(t, protocol.Position{Line: 2, Character: 19}, edit.Range.Start)
	assert.Equal(t, protocol.Position{Line: 2, Character: 20}, edit.Range.End)
	assert.True(t, strings.HasPrefix(edit.NewText, "get("), edit.NewText)
	require.NotNil(t, get.Kind)
	assert.Equal(t, protocol.CompletionItemKindMethod, *get.Kind)
	require.NotNil(t, get.Detail)
	assert.Contains(t, *get.Detail, "String")
}

func TestImportOffset(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"package p;\nimport a.B;\nclass C {}", "class C {}"},
		{"package p;\nclass C {}", "class C {}"},
		{"class C {}", "class C {}"},
	}
	for _, tt := range tests {
		root := parser.ParseCompilationUnit(strings.NewReader(tt.src)).Finish()
		require.NotNil(t, root)
		off := importOffset(root, []byte(tt.src))
		assert.Equal(t, tt.want, tt.src[off:], "%q", tt.src)
	}
}

func TestItemsForUnimportedTypesAddAnImport(t *testing.T) {
	text := []byte("package p;\n\nclass C { Li }\n")
	l := &lspItems{text: text, caret: 24, importAt: len("package p;\n")}
	list := &types.Symbol{Kind: types.ElemInterface, Name: "List", QualifiedName: "java.util.List"}
	c := completion.Candidate{
		Kind:        completion.KindType,
		Symbol:      list,
		NeedsImport: true,
		SmartType:   true,
		Deprecated:  true,
		Offset:      22,
	}

	it := l.Type(c)
	assert.Equal(t, "List", it.Label)
	require.NotNil(t, it.Kind)
	assert.Equal(t, protocol.CompletionItemKindInterface, *it.Kind)
	require.Len(t, it.AdditionalTextEdits, 1)
	assert.Equal(t, "import java.util.List;\n", it.AdditionalTextEdits[0].NewText)
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, it.AdditionalTextEdits[0].Range.Start)
	assert.Equal(t, []protocol.CompletionItemTag{protocol.CompletionItemTagDeprecated}, it.Tags)
	require.NotNil(t, it.SortText)
	assert.True(t, strings.HasPrefix(*it.SortText, "0"))
}

func TestSkipDir(t *testing.T) {
	for _, name := range []string{".git", ".idea", "target", "build", "node_modules"} {
		assert.True(t, skipDir(name), name)
	}
	for _, name := range []string{"src", "main", "java", "com"} {
		assert.False(t, skipDir(name), name)
	}
}
