package parser

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNodeKindString(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{KindError, "Error"},
		{KindCompilationUnit, "CompilationUnit"},
		{KindClassDecl, "ClassDecl"},
		{KindRecordPattern, "RecordPattern"},
		{KindTemplateExpr, "TemplateExpr"},
		{KindSynthetic, "Synthetic"},
		{NodeKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("NodeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestNodeKindClassification(t *testing.T) {
	for _, kind := range []NodeKind{KindBlock, KindIfStmt, KindLocalVarDecl, KindClassDecl} {
		if !kind.IsStatement() {
			t.Errorf("%v should be a statement", kind)
		}
	}
	for _, kind := range []NodeKind{KindCallExpr, KindSwitchCase, KindCatchClause, KindForInit} {
		if kind.IsStatement() {
			t.Errorf("%v should not be a statement", kind)
		}
	}
	if !KindRecordDecl.IsTypeDecl() || KindMethodDecl.IsTypeDecl() {
		t.Errorf("IsTypeDecl misclassified")
	}
}

func TestNodeWalkSkipsChildren(t *testing.T) {
	root := ParseStatement([]byte("foo(bar(1), 2);")).Finish()
	var visited []NodeKind
	root.Walk(func(n *Node) bool {
		visited = append(visited, n.Kind)
		return n.Kind != KindArguments
	})
	for _, kind := range visited {
		if kind == KindLiteral {
			t.Fatalf("walk descended into arguments: %v", visited)
		}
	}
}

func TestNodeMarshalJSON(t *testing.T) {
	root := ParseStatement([]byte("x = 1;")).Finish()
	data, err := json.Marshal(root)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"kind":"AssignExpr"`) || !strings.Contains(string(data), `"text":"="`) {
		t.Errorf("unexpected json: %s", data)
	}
}

func TestNodeStringWithPositions(t *testing.T) {
	root := ParseExpression([]byte("a + b")).Finish()
	got := root.StringWithPositions()
	want := "BinaryExpr [0-5] +\n  Identifier [0-1] a\n  Identifier [4-5] b\n"
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}
