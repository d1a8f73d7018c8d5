package codebase

import (
	"bytes"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/javacomplete/java/completion"
	"github.com/dhamidi/javacomplete/java/parser"
	"github.com/dhamidi/javacomplete/java/types"
)

// lspItems renders candidates as LSP completion items. Each item replaces
// the typed prefix, from the candidate offset to the caret.
type lspItems struct {
	text     []byte
	caret    int
	symtab   *types.Symtab
	importAt int
}

func newLSPItems(text []byte, res *completion.Result) *lspItems {
	l := &lspItems{text: text, caret: len(text), importAt: -1}
	if env := res.Env; env != nil {
		l.caret = env.Caret
		l.symtab = env.Symtab()
		if env.Info.Root != nil {
			l.importAt = importOffset(env.Info.Root, text)
		}
	}
	return l
}

// importOffset returns where a new import goes: the line after the last
// import or the package declaration, or the start of the file.
func importOffset(root *parser.Node, text []byte) int {
	end := -1
	for _, c := range root.Children {
		if c.Kind == parser.KindPackageDecl || c.Kind == parser.KindImportDecl {
			end = c.End()
		}
	}
	if end < 0 {
		return 0
	}
	if i := bytes.IndexByte(text[end:], '\n'); i >= 0 {
		return end + i + 1
	}
	return len(text)
}

func (l *lspItems) item(c completion.Candidate, kind protocol.CompletionItemKind, insert string) protocol.CompletionItem {
	label := c.Name()
	it := protocol.CompletionItem{
		Label: label,
		Kind:  &kind,
		TextEdit: protocol.TextEdit{
			Range:   protocol.Range{Start: positionOf(l.text, c.Offset), End: positionOf(l.text, l.caret)},
			NewText: insert,
		},
	}
	if detail := completion.Describe(c, l.symtab); detail != "" {
		it.Detail = &detail
	}
	sortText := "1" + label
	if c.SmartType {
		sortText = "0" + label
		preselect := true
		it.Preselect = &preselect
	}
	it.SortText = &sortText
	if c.Deprecated {
		it.Tags = []protocol.CompletionItemTag{protocol.CompletionItemTagDeprecated}
	}
	if c.NeedsImport && c.Symbol != nil && l.importAt >= 0 {
		at := positionOf(l.text, l.importAt)
		it.AdditionalTextEdits = []protocol.TextEdit{{
			Range:   protocol.Range{Start: at, End: at},
			NewText: "import " + c.Symbol.QualifiedName + ";\n",
		}}
	}
	return it
}

func (l *lspItems) Keyword(c completion.Candidate) protocol.CompletionItem {
	return l.item(c, protocol.CompletionItemKindKeyword, c.Text)
}

func (l *lspItems) Module(c completion.Candidate) protocol.CompletionItem {
	return l.item(c, protocol.CompletionItemKindModule, c.Text)
}

func (l *lspItems) Package(c completion.Candidate) protocol.CompletionItem {
	return l.item(c, protocol.CompletionItemKindFolder, c.Text)
}

func (l *lspItems) Type(c completion.Candidate) protocol.CompletionItem {
	kind := protocol.CompletionItemKindClass
	if c.Symbol != nil {
		switch c.Symbol.Kind {
		case types.ElemInterface, types.ElemAnnotationType:
			kind = protocol.CompletionItemKindInterface
		case types.ElemEnum:
			kind = protocol.CompletionItemKindEnum
		}
	}
	return l.item(c, kind, completion.InsertText(c))
}

func (l *lspItems) ArrayType(c completion.Candidate) protocol.CompletionItem {
	return l.item(c, protocol.CompletionItemKindClass, completion.InsertText(c))
}

func (l *lspItems) TypeParameter(c completion.Candidate) protocol.CompletionItem {
	return l.item(c, protocol.CompletionItemKindTypeParameter, completion.InsertText(c))
}

func (l *lspItems) Variable(c completion.Candidate) protocol.CompletionItem {
	kind := protocol.CompletionItemKindVariable
	if c.Symbol != nil {
		switch c.Symbol.Kind {
		case types.ElemField:
			kind = protocol.CompletionItemKindField
		case types.ElemEnumConstant:
			kind = protocol.CompletionItemKindEnumMember
		}
	}
	return l.item(c, kind, completion.InsertText(c))
}

func (l *lspItems) Executable(c completion.Candidate) protocol.CompletionItem {
	return l.item(c, protocol.CompletionItemKindMethod, completion.InsertText(c))
}

func (l *lspItems) ThisOrSuperConstructor(c completion.Candidate) protocol.CompletionItem {
	return l.item(c, protocol.CompletionItemKindConstructor, completion.InsertText(c))
}

func (l *lspItems) OverrideMethod(c completion.Candidate) protocol.CompletionItem {
	return l.item(c, protocol.CompletionItemKindMethod, completion.InsertText(c))
}

func (l *lspItems) GetterSetter(c completion.Candidate) protocol.CompletionItem {
	return l.item(c, protocol.CompletionItemKindMethod, completion.InsertText(c))
}

func (l *lspItems) DefaultConstructor(c completion.Candidate) protocol.CompletionItem {
	return l.item(c, protocol.CompletionItemKindConstructor, completion.InsertText(c))
}

func (l *lspItems) ParameterHint(c completion.Candidate) protocol.CompletionItem {
	it := l.item(c, protocol.CompletionItemKindText, "")
	if len(c.Methods) > 0 {
		it.Label = completion.Signature(c.Methods[0], c.Site, l.symtab)
	}
	return it
}

func (l *lspItems) Annotation(c completion.Candidate) protocol.CompletionItem {
	return l.item(c, protocol.CompletionItemKindInterface, completion.InsertText(c))
}

func (l *lspItems) AttributeValue(c completion.Candidate) protocol.CompletionItem {
	return l.item(c, protocol.CompletionItemKindValue, completion.InsertText(c))
}

func (l *lspItems) StaticMember(c completion.Candidate) protocol.CompletionItem {
	it := l.item(c, protocol.CompletionItemKindConstant, completion.InsertText(c))
	if c.Site != nil && c.Site.Kind == types.KindDeclared {
		if edit, ok := it.TextEdit.(protocol.TextEdit); ok {
			edit.NewText = c.Site.Sym.Name + "." + edit.NewText
			it.TextEdit = edit
		}
	}
	return it
}

func (l *lspItems) ChainedMember(c completion.Candidate) protocol.CompletionItem {
	it := l.item(c, protocol.CompletionItemKindMethod, completion.InsertText(c))
	it.Label = completion.InsertText(c)
	return it
}

func (l *lspItems) LambdaExpression(c completion.Candidate) protocol.CompletionItem {
	it := l.item(c, protocol.CompletionItemKindSnippet, completion.InsertText(c))
	it.Label = completion.InsertText(c)
	return it
}

func (l *lspItems) RecordPattern(c completion.Candidate) protocol.CompletionItem {
	it := l.item(c, protocol.CompletionItemKindStruct, completion.InsertText(c))
	it.Label = completion.InsertText(c)
	return it
}

func (l *lspItems) InitializeAllConstructor(c completion.Candidate) protocol.CompletionItem {
	return l.item(c, protocol.CompletionItemKindConstructor, completion.InsertText(c))
}
