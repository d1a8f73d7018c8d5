// Package compiler is the front end the completion engine queries: it
// parses a compilation unit, builds symbols for the classes it declares
// and answers scope, type and element questions about paths in its tree.
package compiler

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/javacomplete/java"
	"github.com/dhamidi/javacomplete/java/parser"
	"github.com/dhamidi/javacomplete/java/types"
)

var log = commonlog.GetLogger("javacomplete.compiler")

var (
	ErrCancelled = errors.New("compilation cancelled")
	ErrNoTree    = errors.New("no syntax tree")
)

// Phase is how far a compilation unit has been processed. Phases only
// move forward.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseParsed
	PhaseElementsResolved
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseParsed:
		return "parsed"
	case PhaseElementsResolved:
		return "elements-resolved"
	case PhaseResolved:
		return "resolved"
	}
	return "none"
}

// Info is one compilation unit being compiled. It is owned by a single
// request and is not safe for concurrent use.
type Info struct {
	Text  []byte
	File  string
	Index java.ClassFinder

	// Cancel is polled before each phase. A nil Cancel never cancels.
	Cancel func() bool

	Tokens  []parser.Token
	Root    *parser.Node
	Errors  []*parser.Error
	Classes []*java.ClassModel
	Package string
	Imports []java.Import
	Symtab  *types.Symtab

	phase    Phase
	byNode   map[*parser.Node]*java.ClassModel
	byName   map[string]*java.ClassModel
	anon     map[*parser.Node]*types.Symbol
	locals   map[*parser.Node]*types.Symbol
	exprType map[*parser.Node]*types.Type
}

// New prepares text for compilation against the classes of index, which
// may be nil.
func New(text []byte, file string, index java.ClassFinder) *Info {
	return &Info{
		Text:     text,
		File:     file,
		Index:    index,
		anon:     make(map[*parser.Node]*types.Symbol),
		locals:   make(map[*parser.Node]*types.Symbol),
		exprType: make(map[*parser.Node]*types.Type),
	}
}

func (ci *Info) Phase() Phase {
	return ci.phase
}

func (ci *Info) cancelled() bool {
	return ci.Cancel != nil && ci.Cancel()
}

// ToPhase runs the phases up to p that have not run yet and returns the
// phase reached.
func (ci *Info) ToPhase(p Phase) (Phase, error) {
	for ci.phase < p {
		if ci.cancelled() {
			log.Debug("phase promotion cancelled", "phase", ci.phase+1)
			return ci.phase, ErrCancelled
		}
		var err error
		switch ci.phase + 1 {
		case PhaseParsed:
			err = ci.parse()
		case PhaseElementsResolved:
			ci.enterClasses()
		case PhaseResolved:
			ci.completeClasses()
		}
		if err != nil {
			return ci.phase, fmt.Errorf("%s: %w", ci.File, err)
		}
		ci.phase++
	}
	return ci.phase, nil
}

func (ci *Info) parse() error {
	p := parser.ParseCompilationUnit(bytes.NewReader(ci.Text), parser.WithFile(ci.File))
	ci.Root = p.Finish()
	if ci.Root == nil {
		return ErrNoTree
	}
	ci.Tokens = p.Tokens()
	ci.Errors = p.Errors()
	return nil
}

func (ci *Info) enterClasses() {
	ci.Package = java.PackageOf(ci.Root)
	ci.Imports = java.ImportsOf(ci.Root)
	ci.Classes = java.ClassModelsFromCompilationUnit(ci.Root, ci.Tokens)
	ci.byNode = make(map[*parser.Node]*java.ClassModel, len(ci.Classes))
	ci.byName = make(map[string]*java.ClassModel, len(ci.Classes))
	for _, c := range ci.Classes {
		ci.byNode[c.Node] = c
		ci.byName[c.Name] = c
	}
	ci.Symtab = types.NewSymtab(overlay{ci})
}

func (ci *Info) completeClasses() {
	for _, c := range ci.Classes {
		if sym := ci.Symtab.Class(c.Name); sym != nil {
			sym.Members()
		}
	}
}

// overlay finds the classes of the unit being compiled before those of
// the index, so that edits shadow stale index entries.
type overlay struct {
	ci *Info
}

func (o overlay) FindClass(name string) *java.ClassModel {
	if c, ok := o.ci.byName[name]; ok {
		return c
	}
	if o.ci.Index == nil {
		return nil
	}
	return o.ci.Index.FindClass(name)
}

// ClassOf returns the symbol of the class declared by a type declaration
// node of this unit.
func (ci *Info) ClassOf(decl *parser.Node) *types.Symbol {
	if model, ok := ci.byNode[decl]; ok {
		return ci.Symtab.Class(model.Name)
	}
	return nil
}

// Parse is a convenience for New followed by ToPhase(PhaseResolved).
func Parse(text []byte, file string, index java.ClassFinder) (*Info, error) {
	ci := New(text, file, index)
	if _, err := ci.ToPhase(PhaseResolved); err != nil {
		return nil, err
	}
	return ci, nil
}

// PathAt returns the path to the deepest node of the unit containing
// offset.
func (ci *Info) PathAt(offset int) *parser.Path {
	return parser.PathAt(ci.Root, offset)
}
