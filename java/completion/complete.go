package completion

import (
	"errors"

	"github.com/dhamidi/javacomplete/java"
	"github.com/dhamidi/javacomplete/java/compiler"
	"github.com/dhamidi/javacomplete/java/index"
)

// ClassIndex is the whole-program class search completion runs against.
// *index.Index implements it.
type ClassIndex interface {
	java.ClassFinder
	DeclaredTypes(match index.NamePattern, kinds ...java.ClassKind) []index.TypeHandle
	PackageNames(prefix string) []string
	ClassesInPackage(pkg string) []*java.ClassModel
	Implementors(h index.TypeHandle) []index.TypeHandle
	ModuleNames(prefix string) []string
}

// Engine answers completion requests. It holds nothing but read-only
// collaborators and is safe for concurrent use as long as its index is.
type Engine struct {
	Index ClassIndex
}

func NewEngine(ix ClassIndex) *Engine {
	return &Engine{Index: ix}
}

type Request struct {
	Text    []byte
	File    string
	Caret   int
	Options Options
	// Cancel is polled between steps. A nil Cancel never cancels.
	Cancel func() bool
}

type Result struct {
	Candidates []Candidate
	// HasAdditionalItems is set when candidates were held back, static
	// members in an instance context for example, that an all symbols
	// request would show.
	HasAdditionalItems bool
	// Env is the environment the candidates were computed in, nil when no
	// environment could be built.
	Env *Env
}

// CompleteAt returns the candidates for the caret in text.
func (e *Engine) CompleteAt(text []byte, caret int, opts Options, cancel func() bool) ([]Candidate, error) {
	res, err := e.Complete(Request{Text: text, File: "Completion.java", Caret: caret, Options: opts, Cancel: cancel})
	if err != nil || res == nil {
		return nil, err
	}
	return res.Candidates, nil
}

// Complete runs one completion request. A cancelled request returns a nil
// result and no error.
func (e *Engine) Complete(req Request) (*Result, error) {
	if req.Cancel != nil && req.Cancel() {
		log.Debugf("request cancelled on entry")
		return nil, nil
	}
	var finder java.ClassFinder
	if e.Index != nil {
		finder = e.Index
	}
	ci := compiler.New(req.Text, req.File, finder)
	ci.Cancel = req.Cancel
	env, err := Resolve(ci, req.Caret, BottomUp, req.Options)
	if errors.Is(err, compiler.ErrCancelled) {
		log.Debugf("request cancelled during compilation")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if env == nil {
		return &Result{}, nil
	}
	env.index = e.Index
	env.Cancel = req.Cancel

	acc := newResults(env)
	dispatch(env, acc)
	if env.cancelled() {
		log.Debugf("request cancelled during enumeration")
		return nil, nil
	}
	log.Debugf("%d candidates for %q at %d", len(acc.out), env.Prefix, env.Caret)
	return &Result{Candidates: acc.out, HasAdditionalItems: env.hasAdditionalMembers, Env: env}, nil
}
