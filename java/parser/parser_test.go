package parser

import (
	"strings"
	"testing"
)

func parse(t *testing.T, src string) *Node {
	t.Helper()
	p := ParseCompilationUnit(strings.NewReader(src), WithFile("Test.java"))
	node := p.Finish()
	if node == nil {
		t.Fatalf("no tree for %q", src)
	}
	return node
}

func hasError(node *Node) bool {
	found := false
	node.Walk(func(n *Node) bool {
		if n.IsError() {
			found = true
		}
		return !found
	})
	return found
}

func findKind(root *Node, kind NodeKind) *Node {
	var found *Node
	root.Walk(func(n *Node) bool {
		if found == nil && n.Kind == kind {
			found = n
		}
		return found == nil
	})
	return found
}

func childKinds(n *Node) []NodeKind {
	var kinds []NodeKind
	for _, c := range n.Children {
		kinds = append(kinds, c.Kind)
	}
	return kinds
}

func assertKinds(t *testing.T, got, want []NodeKind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got kinds %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("kind %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseClassDeclaration(t *testing.T) {
	src := `package com.example;

import java.util.List;
import static java.lang.Math.*;

public class Foo<T extends Comparable<T>> extends Bar implements Baz, Qux {
    private final List<String> items = new ArrayList<>();
    static int count;

    public Foo(int x) throws IOException {
        super();
    }

    @Override
    public <R> R map(Function<? super T, ? extends R> f, String... rest) {
        return null;
    }

    static { count = 1; }
}
`
	p := ParseCompilationUnit(strings.NewReader(src))
	root := p.Finish()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if hasError(root) {
		t.Fatalf("error node in tree:\n%s", root)
	}
	assertKinds(t, childKinds(root), []NodeKind{KindPackageDecl, KindImportDecl, KindImportDecl, KindClassDecl})

	static := root.Children[2]
	if static.TokenLiteral() != "static" {
		t.Errorf("static import should carry the static token")
	}
	if last := static.Children[0].LastChild(); last.TokenLiteral() != "*" {
		t.Errorf("got last import part %q, want *", last.TokenLiteral())
	}

	class := root.Children[3]
	if class.Name() != "Foo" || !class.HasModifier("public") {
		t.Errorf("got class %q public=%v", class.Name(), class.HasModifier("public"))
	}
	impl := class.FirstChildOfKind(KindImplementsClause)
	if impl == nil || len(impl.Children) != 2 {
		t.Fatalf("implements clause should list two types")
	}
	body := class.FirstChildOfKind(KindClassBody)
	assertKinds(t, childKinds(body), []NodeKind{KindFieldDecl, KindFieldDecl, KindConstructorDecl, KindMethodDecl, KindInitializer})

	method := body.Children[3]
	if method.Name() != "map" {
		t.Errorf("got method %q, want map", method.Name())
	}
	params := method.FirstChildOfKind(KindParameters)
	if len(params.Children) != 2 || params.Children[1].TokenLiteral() != "..." {
		t.Errorf("second parameter should be varargs")
	}
}

func TestParseStatements(t *testing.T) {
	src := `class A {
    void m(List<String> xs) {
        Map<String, List<Integer>> m = new HashMap<>();
        int[] arr = {1, 2};
        for (int i = 0; i < xs.size(); i++) { }
        for (String s : xs) { System.out.println(s); }
        try (var in = open()) { risky(); } catch (IOException | RuntimeException e) { } finally { }
        Runnable r = () -> {};
        Function<String, Integer> f = s -> s.length();
        var len = (int) x + y;
        Object o = flag ? a : b;
        if (o instanceof String str && !str.isEmpty()) { }
        int k = switch (d) { case MONDAY, TUESDAY -> 1; default -> { yield 2; } };
        label: while (true) { break label; }
        x >>= 2;
        String t = STR."Hello \{name}!";
        xs.forEach(System.out::println);
    }
}
`
	p := ParseCompilationUnit(strings.NewReader(src))
	root := p.Finish()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected errors: %v\n%s", p.Errors(), root)
	}
	block := findKind(findKind(root, KindMethodDecl), KindBlock)
	assertKinds(t, childKinds(block), []NodeKind{
		KindLocalVarDecl, KindLocalVarDecl, KindForStmt, KindEnhancedForStmt, KindTryStmt,
		KindLocalVarDecl, KindLocalVarDecl, KindLocalVarDecl, KindLocalVarDecl, KindIfStmt,
		KindLocalVarDecl, KindLabeledStmt, KindExprStmt, KindLocalVarDecl, KindExprStmt,
	})

	catch := findKind(block.Children[4], KindCatchClause)
	if findKind(catch, KindUnionType) == nil {
		t.Errorf("multi-catch should produce a union type")
	}
	cast := findKind(block.Children[7], KindCastExpr)
	if cast == nil {
		t.Errorf("expected a cast in %s", block.Children[7])
	}
	if findKind(block.Children[9], KindTypePattern) == nil {
		t.Errorf("expected a type pattern in %s", block.Children[9])
	}
	sw := findKind(block.Children[10], KindSwitchExpr)
	if sw == nil || len(sw.ChildrenOfKind(KindSwitchCase)) != 2 {
		t.Fatalf("switch expression should have two cases")
	}
	if findKind(sw, KindYieldStmt) == nil {
		t.Errorf("expected a yield statement")
	}
	assign := findKind(block.Children[12], KindAssignExpr)
	if assign == nil || assign.TokenLiteral() != ">>=" {
		t.Errorf("expected compound assignment")
	}
	tmpl := findKind(block.Children[13], KindTemplate)
	if tmpl == nil || len(tmpl.Children) != 1 || tmpl.Children[0].TokenLiteral() != "name" {
		t.Fatalf("template should embed the name expression")
	}
	hole := tmpl.Children[0]
	if got := src[hole.Start():hole.End()]; got != "name" {
		t.Errorf("hole span covers %q, want name", got)
	}
	if findKind(block.Children[14], KindMethodRef) == nil {
		t.Errorf("expected a method reference")
	}
}

func TestParseTypeDeclarations(t *testing.T) {
	src := `public sealed interface Shape permits Circle, Square {}
record Point(int x, int y) implements Shape {
    Point {
        if (x < 0) throw new IllegalArgumentException();
    }
}
enum Day { MONDAY, TUESDAY("t") { void f() {} }; int v; }
@interface Ann { String value() default ""; }
`
	p := ParseCompilationUnit(strings.NewReader(src))
	root := p.Finish()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected errors: %v\n%s", p.Errors(), root)
	}
	assertKinds(t, childKinds(root), []NodeKind{KindInterfaceDecl, KindRecordDecl, KindEnumDecl, KindAnnotationDecl})
	if !root.Children[0].HasModifier("sealed") {
		t.Errorf("interface should be sealed")
	}
	if root.Children[0].FirstChildOfKind(KindPermitsClause) == nil {
		t.Errorf("expected permits clause")
	}
	if ctor := findKind(root.Children[1], KindConstructorDecl); ctor == nil || ctor.FirstChildOfKind(KindParameters) != nil {
		t.Errorf("expected compact constructor")
	}
	body := root.Children[2].FirstChildOfKind(KindClassBody)
	assertKinds(t, childKinds(body), []NodeKind{KindEnumConstant, KindEnumConstant, KindFieldDecl})
	if findKind(root.Children[3], KindDefaultValue) == nil {
		t.Errorf("expected annotation default value")
	}
}

func TestParseIncomplete(t *testing.T) {
	tests := []struct {
		src        string
		root       NodeKind
		incomplete bool
		check      func(t *testing.T, root *Node)
	}{
		{
			src: "items.", root: KindExprStmt, incomplete: true,
			check: func(t *testing.T, root *Node) {
				sel := root.Children[0]
				if sel.Kind != KindFieldAccess || !sel.LastChild().IsError() {
					t.Errorf("want field access with missing name, got\n%s", root)
				}
			},
		},
		{
			src: "return tr", root: KindReturnStmt, incomplete: true,
			check: func(t *testing.T, root *Node) {
				if root.Children[0].TokenLiteral() != "tr" {
					t.Errorf("got %s", root)
				}
			},
		},
		{
			src: "foo(a, ", root: KindExprStmt, incomplete: true,
			check: func(t *testing.T, root *Node) {
				if findKind(root, KindArguments) == nil {
					t.Errorf("want arguments, got\n%s", root)
				}
			},
		},
		{
			src: `String s = "Hello \{na`, root: KindLocalVarDecl, incomplete: true,
			check: func(t *testing.T, root *Node) {
				tmpl := findKind(root, KindTemplate)
				if tmpl == nil || tmpl.Children[0].TokenLiteral() != "na" {
					t.Errorf("want template with open hole, got\n%s", root)
				}
			},
		},
		{
			src: "x = 1;", root: KindExprStmt, incomplete: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p := ParseStatement([]byte(tt.src))
			root := p.Finish()
			if root == nil {
				t.Fatalf("no tree")
			}
			if root.Kind != tt.root {
				t.Fatalf("got root %v, want %v", root.Kind, tt.root)
			}
			if p.Incomplete() != tt.incomplete {
				t.Errorf("Incomplete() = %v, want %v", p.Incomplete(), tt.incomplete)
			}
			if tt.check != nil {
				tt.check(t, root)
			}
		})
	}
}

func TestParseStatementEmpty(t *testing.T) {
	if root := ParseStatement([]byte("  // nothing")).Finish(); root != nil {
		t.Errorf("got %s, want nil", root)
	}
}

func TestParseMember(t *testing.T) {
	root := ParseMember([]byte("private int x = compute(")).Finish()
	if root == nil || root.Kind != KindFieldDecl {
		t.Fatalf("got %v, want field", root)
	}
	if findKind(root, KindCallExpr) == nil {
		t.Errorf("initializer should hold the call")
	}
}

func TestParseGenericsAndShifts(t *testing.T) {
	root := ParseExpression([]byte("a >> b > c")).Finish()
	if root.Kind != KindBinaryExpr || root.TokenLiteral() != ">" {
		t.Fatalf("got\n%s", root)
	}
	if root.Children[0].TokenLiteral() != ">>" {
		t.Errorf("left operand should be the shift")
	}

	stmt := ParseStatement([]byte("List<List<List<String>>> xs = null;"))
	if len(stmt.Errors()) > 0 {
		t.Errorf("unexpected errors: %v", stmt.Errors())
	}
	if stmt.Finish().Kind != KindLocalVarDecl {
		t.Errorf("got %v", stmt.Finish().Kind)
	}
}

func TestParseSwitchLabels(t *testing.T) {
	src := `class A { void m(Object o, Day d) {
    switch (d) { case MONDAY: case TUESDAY: f(); break; default: g(); }
    switch (o) { case Point(int x, var y) when x > 0 -> h(); case String s -> {} case null, default -> {} }
} }`
	p := ParseCompilationUnit(strings.NewReader(src))
	root := p.Finish()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected errors: %v\n%s", p.Errors(), root)
	}
	switches := findKind(root, KindBlock).ChildrenOfKind(KindSwitchStmt)
	if len(switches) != 2 {
		t.Fatalf("got %d switches", len(switches))
	}
	first := switches[0].ChildrenOfKind(KindSwitchCase)
	if len(first) != 2 || len(first[0].ChildrenOfKind(KindSwitchLabel)) != 2 {
		t.Errorf("first case should group two labels")
	}
	second := switches[1].ChildrenOfKind(KindSwitchCase)
	if len(second) != 3 {
		t.Fatalf("got %d cases", len(second))
	}
	label := second[0].FirstChildOfKind(KindSwitchLabel)
	if label.FirstChildOfKind(KindRecordPattern) == nil || label.FirstChildOfKind(KindGuard) == nil {
		t.Errorf("want record pattern with guard, got\n%s", label)
	}
}

func TestParseNeverLoops(t *testing.T) {
	inputs := []string{
		"class", "class A {", "class A { void m( }", "@", "class A { int x = ; }",
		"class A { void m() { for ( } }", "class A extends { }", "import ;", "}}}}",
		"class A { void m() { new } }", "enum E { A(, }", "interface I { default }",
	}
	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			if root := parse(t, src); root.Kind != KindCompilationUnit {
				t.Errorf("got %v", root.Kind)
			}
		})
	}
}
