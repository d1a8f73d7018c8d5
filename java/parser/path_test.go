package parser

import (
	"strings"
	"testing"
)

// caret splits src at the | marker and returns the text and the offset.
func caret(src string) (string, int) {
	i := strings.Index(src, "|")
	return src[:i] + src[i+1:], i
}

func TestPathAt(t *testing.T) {
	tests := []struct {
		src  string
		back int
		want NodeKind
	}{
		{"class C { void m() { int x = 1; if (x > 0) { return tr|} } }", 0, KindIdentifier},
		{"class C { void m() { int x = 1; if (x > 0) { return tr|} } }", 2, KindReturnStmt},
		{"class C { java.util.List<String> items; void m() { items.g|} }", 1, KindFieldAccess},
		{"class C { void m() { try { risky(); } catch (Ex|} }", 2, KindCatchClause},
		{"class C { void m(Day day) { switch (day) { case MON|} } }", 3, KindSwitchLabel},
		{"class C { |}", 0, KindClassBody},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			text, off := caret(tt.src)
			root := ParseCompilationUnit(strings.NewReader(text)).Finish()
			path := PathAt(root, off-tt.back)
			if got := path.Leaf().Kind; got != tt.want {
				t.Errorf("got leaf %v, want %v", got, tt.want)
			}
			if path.Root() != root {
				t.Errorf("path should start at the root")
			}
		})
	}
}

func TestPathAtGap(t *testing.T) {
	tests := []struct {
		src       string
		statement bool
		open      bool
		want      NodeKind
	}{
		{"class C { int x = |; }", false, true, KindVarDeclarator},
		{"class C extends | {}", false, true, KindExtendsClause},
		{"@A(p = |) class C {}", false, true, KindAnnotationElement},
		{"int x = |", true, true, KindVarDeclarator},
		{"Math.max(a, |", true, true, KindArguments},
		{"return |", true, true, KindReturnStmt},
		{"new |", true, true, KindNewExpr},
		{"if (x) |", true, false, KindIfStmt},
		{"o instanceof |", true, true, KindInstanceofExpr},
		{"foo(a) |", true, false, KindError},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			text, off := caret(tt.src)
			var root *Node
			if tt.statement {
				root = ParseStatement([]byte(text)).Finish()
			} else {
				root = ParseCompilationUnit(strings.NewReader(text)).Finish()
			}
			after := len(strings.TrimRight(text[:off], " "))
			before := off + len(text[off:]) - len(strings.TrimLeft(text[off:], " "))
			path := PathAtGap(root, off, after, before, tt.open)
			if tt.want == KindError {
				if path != nil {
					t.Errorf("got leaf %v, want none", path.Leaf().Kind)
				}
				return
			}
			if path == nil {
				t.Fatalf("no path, want %v", tt.want)
			}
			if got := path.Leaf().Kind; got != tt.want {
				t.Errorf("got leaf %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathImmutable(t *testing.T) {
	root := ParseStatement([]byte("a.b(c);")).Finish()
	base := NewPath(root)
	call := root.Children[0]
	p1 := base.Child(call)
	p2 := base.Child(call.Children[0])
	if p1.Parent() != base || p2.Parent() != base {
		t.Fatalf("children should share their parent")
	}
	if base.Leaf() != root || base.Depth() != 1 {
		t.Errorf("extending a path changed it")
	}
	nodes := p1.Child(call.Children[1]).Nodes()
	if len(nodes) != 3 || nodes[0] != root || nodes[2] != call.Children[1] {
		t.Errorf("unexpected nodes %v", nodes)
	}
}

func TestPathTo(t *testing.T) {
	root := ParseCompilationUnit(strings.NewReader("class A { void m() { x = 1; } }")).Finish()
	lit := findKind(root, KindLiteral)
	path := PathTo(root, lit)
	if path == nil || path.Leaf() != lit {
		t.Fatalf("no path to literal")
	}
	if path.Find(KindMethodDecl) == nil {
		t.Errorf("path should pass through the method")
	}
	if path.Find(KindSwitchStmt) != nil {
		t.Errorf("found a switch that is not there")
	}
}

func TestPathThroughSynthetic(t *testing.T) {
	text := "class C { void m() { foo.ba"
	root := ParseCompilationUnit(strings.NewReader(text)).Finish()
	block := findKind(root, KindBlock)
	base := strings.Index(text, "foo")
	window := []byte(text[base:])
	fragment := ParseStatement(window).Finish()
	syn := &Node{
		Kind:      KindSynthetic,
		Span:      block.Span,
		Synthetic: &Synthetic{Fragment: fragment, Positions: &SyntheticPositions{Base: base, Length: len(window)}},
	}
	path := PathTo(root, block).Child(syn).Graft(PathAt(fragment, len(window)-2))
	if path.Leaf().Kind != KindFieldAccess {
		t.Errorf("got %v, want FieldAccess", path.Leaf().Kind)
	}
	if s := path.Synthetic(); s == nil || s.Positions.ToOriginal(0) != base {
		t.Errorf("synthetic positions not reachable from the path")
	}
}

func TestSyntheticPositionsRoundTrip(t *testing.T) {
	sp := &SyntheticPositions{Base: 10, Length: 5}
	for off := 10; off <= 15; off++ {
		if got := sp.ToOriginal(sp.ToLocal(off)); got != off {
			t.Errorf("round trip of %d gave %d", off, got)
		}
		if !sp.Contains(off) {
			t.Errorf("%d should be inside the window", off)
		}
	}
	if got := sp.ToOriginal(7); got != 15 {
		t.Errorf("offsets past the window should clamp, got %d", got)
	}
}
