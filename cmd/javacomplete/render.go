package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/dhamidi/javacomplete/java/completion"
	"github.com/dhamidi/javacomplete/java/types"
)

// item is a candidate as the command line shows it.
type item struct {
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	Insert      string `json:"insert"`
	Detail      string `json:"detail,omitempty"`
	Offset      int    `json:"offset"`
	Smart       bool   `json:"smart,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
	NeedsImport string `json:"import,omitempty"`
}

type textItems struct {
	symtab *types.Symtab
}

func (f textItems) item(c completion.Candidate) item {
	it := item{
		Kind:       c.Kind.String(),
		Label:      c.Name(),
		Insert:     completion.InsertText(c),
		Detail:     completion.Describe(c, f.symtab),
		Offset:     c.Offset,
		Smart:      c.SmartType,
		Deprecated: c.Deprecated,
	}
	if c.NeedsImport && c.Symbol != nil {
		it.NeedsImport = c.Symbol.QualifiedName
	}
	return it
}

func (f textItems) Keyword(c completion.Candidate) item        { return f.item(c) }
func (f textItems) Module(c completion.Candidate) item         { return f.item(c) }
func (f textItems) Package(c completion.Candidate) item        { return f.item(c) }
func (f textItems) Type(c completion.Candidate) item           { return f.item(c) }
func (f textItems) ArrayType(c completion.Candidate) item      { return f.item(c) }
func (f textItems) TypeParameter(c completion.Candidate) item  { return f.item(c) }
func (f textItems) Variable(c completion.Candidate) item       { return f.item(c) }
func (f textItems) Executable(c completion.Candidate) item     { return f.item(c) }
func (f textItems) OverrideMethod(c completion.Candidate) item { return f.item(c) }
func (f textItems) GetterSetter(c completion.Candidate) item   { return f.item(c) }
func (f textItems) Annotation(c completion.Candidate) item     { return f.item(c) }
func (f textItems) AttributeValue(c completion.Candidate) item { return f.item(c) }
func (f textItems) StaticMember(c completion.Candidate) item   { return f.item(c) }
func (f textItems) RecordPattern(c completion.Candidate) item  { return f.item(c) }

func (f textItems) ThisOrSuperConstructor(c completion.Candidate) item {
	return f.item(c)
}

func (f textItems) DefaultConstructor(c completion.Candidate) item {
	return f.item(c)
}

func (f textItems) InitializeAllConstructor(c completion.Candidate) item {
	it := f.item(c)
	it.Label += " (all fields)"
	return it
}

func (f textItems) ParameterHint(c completion.Candidate) item {
	it := f.item(c)
	it.Label = "(…)"
	return it
}

func (f textItems) ChainedMember(c completion.Candidate) item {
	it := f.item(c)
	it.Label = it.Insert
	return it
}

func (f textItems) LambdaExpression(c completion.Candidate) item {
	it := f.item(c)
	it.Label = strings.TrimSpace(it.Insert)
	return it
}

// writeText prints one candidate per line followed by its wrapped detail.
func writeText(w io.Writer, items []item, width int) error {
	for _, it := range items {
		marks := ""
		if it.Smart {
			marks += "*"
		}
		if it.Deprecated {
			marks += "~"
		}
		if _, err := fmt.Fprintf(w, "%-2s%-24s %s\n", marks, it.Label, it.Kind); err != nil {
			return err
		}
		detail := it.Detail
		if it.NeedsImport != "" {
			detail += "\nimport " + it.NeedsImport
		}
		if detail == "" || detail == it.Kind {
			continue
		}
		if _, err := fmt.Fprintln(w, indent.String(wordwrap.String(detail, width), 4)); err != nil {
			return err
		}
	}
	return nil
}
