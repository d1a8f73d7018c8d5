package completion

import (
	"github.com/dhamidi/javacomplete/java/index"
	"github.com/dhamidi/javacomplete/java/parser"
	"github.com/dhamidi/javacomplete/java/types"
)

// arguments handles a prefix in an argument list. Right after the opening
// parenthesis or a comma a parameter hint lists the methods the call may
// invoke.
func (r *results) arguments(path *parser.Path, idx int) {
	env := r.env
	if env.Prefix == "" {
		if k := env.previousKind(); k == parser.TokenLParen || k == parser.TokenComma {
			r.parameterHint(path.Parent(), idx)
		}
	}
	r.expression()
}

func (r *results) parameterHint(call *parser.Path, idx int) {
	env := r.env
	if call == nil {
		return
	}
	site, methods := env.Info.CandidateMethods(call, idx)
	var ok []*types.Symbol
	for _, m := range methods {
		if env.accessible(m, site) && (!m.IsDeprecated() || env.Options.ShowDeprecated) {
			ok = append(ok, m)
		}
	}
	if len(ok) > 0 {
		r.add(Candidate{Kind: KindParameterHint, Methods: ok, ArgIndex: idx, Site: site})
	}
}

// memberSelect handles the name after a dot. What a qualifier offers
// depends on whether it denotes a package, a type or a value.
func (r *results) memberSelect(path *parser.Path, idx int) {
	env := r.env
	n := path.Leaf()
	q := n.Child(0)
	if idx == 0 || q == nil || q.IsError() {
		return
	}
	qp := path.Child(q)
	switch q.Kind {
	case parser.KindSuper:
		r.addMembers(memberQuery{site: env.Info.TypeOf(qp), super: true})
		return
	case parser.KindThis:
		r.addMembers(memberQuery{site: env.Info.TypeOf(qp)})
		return
	}
	sym := env.Info.ElementOf(qp)
	switch {
	case sym != nil && sym.Kind == types.ElemPackage:
		r.addPackageContent(sym.QualifiedName, typeFilter{})
		return
	case sym != nil && sym.Kind.IsType() && env.Info.IsTypeName(qp):
		r.addMembers(memberQuery{site: sym.Type, statics: true})
		r.keyword("class", false)
		if sc := env.Scope(); !sc.Static {
			for _, cls := range sc.Classes() {
				if cls == sym {
					r.keyword("this", false)
					break
				}
			}
		}
		return
	}
	r.addMembers(memberQuery{site: env.Info.TypeOf(qp)})
}

// methodRef handles the name after a double colon.
func (r *results) methodRef(path *parser.Path, idx int) {
	env := r.env
	n := path.Leaf()
	q := n.Child(0)
	if idx == 0 || q == nil || q.IsError() {
		return
	}
	qp := path.Child(q)
	if env.Info.IsTypeName(qp) {
		if sym := env.Info.ElementOf(qp); sym != nil && sym.Type != nil {
			r.addMembers(memberQuery{site: sym.Type, methodsOnly: true})
		}
		r.keyword("new", false)
		return
	}
	r.addMembers(memberQuery{site: env.Info.TypeOf(qp), methodsOnly: true})
}

// newExpr handles the type of an instance or array creation.
func (r *results) newExpr(path *parser.Path, idx int) {
	env := r.env
	n := path.Leaf()
	if idx > 0 {
		if n.Kind == parser.KindNewArrayExpr {
			r.expression()
		}
		return
	}
	env.insideNew = true
	r.addArrayTypes()
	r.smartInstantiables()
	r.addPrimitiveTypes(false)
	r.addTypes(typeFilter{instantiable: true})
}

// smartInstantiables offers the smart types and their known
// implementations that can be instantiated.
func (r *results) smartInstantiables() {
	env := r.env
	s := env.Symtab()
	sc := env.Scope()
	for _, st := range env.SmartTypes() {
		if st.Kind != types.KindDeclared {
			continue
		}
		if env.accessible(st.Sym, nil) {
			c := r.typeCandidate(st.Sym, typeFilter{})
			c.SmartType = true
			c.NeedsImport = sc.LookupType(st.Sym.Name) != st.Sym
			r.add(c)
		}
		if env.index == nil {
			continue
		}
		for _, h := range env.index.Implementors(index.TypeHandle{QualifiedName: st.Sym.QualifiedName}) {
			if env.cancelled() {
				return
			}
			if !env.matcher.Matches(h.SimpleName) {
				continue
			}
			impl := s.Class(h.QualifiedName)
			if impl == nil || !env.acceptType(impl, typeFilter{instantiable: true}) || !env.accessible(impl, nil) {
				continue
			}
			c := r.typeCandidate(impl, typeFilter{})
			c.SmartType = true
			c.NeedsImport = sc.LookupType(impl.Name) != impl
			r.add(c)
		}
	}
}

// instanceofType handles the type tested by instanceof.
func (r *results) instanceofType(path *parser.Path) {
	env := r.env
	n := path.Leaf()
	if env.Options.atLeast(16) {
		r.keyword("final", false)
	}
	if lhs := n.Child(0); lhs != nil {
		r.addRecordPatterns(env.Info.TypeOf(path.Child(lhs)))
	}
	r.addTypes(typeFilter{})
}

// patternType handles the type of a type pattern or of a record pattern
// component.
func (r *results) patternType(path *parser.Path) {
	p := path
	if p.Leaf().Kind == parser.KindTypePattern {
		p = p.Parent()
	}
	if p != nil && p.Leaf().Kind == parser.KindRecordPattern {
		r.keyword("var", false)
	}
	r.addTypes(typeFilter{})
}

// parenExpr handles a parenthesized expression, which may also start a
// cast unless it is the condition of a statement.
func (r *results) parenExpr(path *parser.Path) {
	if parent := path.Parent(); parent != nil {
		switch parent.Leaf().Kind {
		case parser.KindIfStmt, parser.KindWhileStmt, parser.KindDoStmt, parser.KindSwitchStmt,
			parser.KindSwitchExpr, parser.KindSynchronizedStmt:
			r.expression()
			return
		}
	}
	r.expression()
	r.addPrimitiveTypes(false)
}
