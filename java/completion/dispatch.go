package completion

import (
	"github.com/dhamidi/javacomplete/java/parser"
)

// dispatch selects what to offer from the construct the prefix is typed
// into.
func dispatch(env *Env, r *results) {
	if env.insideLiteral || env.Path == nil {
		return
	}
	path, idx := env.site()
	n := path.Leaf()
	log.Debugf("dispatch %s slot %d prefix %q", n.Kind, idx, env.Prefix)

	if tok, ok := env.previousToken(); ok && tok.Kind == parser.TokenAt && annotationSite(n.Kind) {
		r.addTypes(annotationFilter)
		return
	}

	if decl := env.openHeader(n, idx); decl != nil {
		r.classHeader(path.Child(decl), len(decl.Children))
		return
	}

	switch n.Kind {
	case parser.KindCompilationUnit:
		r.compilationUnit(path, idx)
	case parser.KindPackageDecl:
		r.addPackages("")
	case parser.KindImportDecl:
		r.importStart(path)
	case parser.KindQualifiedName:
		r.qualifiedName(path, idx)
	case parser.KindModuleDecl:
		r.moduleDecl(path, idx)
	case parser.KindModuleDirective:
		r.moduleDirective(path, idx)
	case parser.KindClassDecl, parser.KindInterfaceDecl, parser.KindEnumDecl, parser.KindRecordDecl,
		parser.KindAnnotationDecl:
		r.classHeader(path, idx)
	case parser.KindExtendsClause, parser.KindImplementsClause, parser.KindPermitsClause:
		r.supertypeClause(path)
	case parser.KindThrowsClause:
		r.throwsClause(path)
	case parser.KindClassBody:
		r.classBody(path, idx)
	case parser.KindModifiers:
		r.modifiers(path)
	case parser.KindFieldDecl:
		r.fieldDecl(path, idx)
	case parser.KindMethodDecl, parser.KindConstructorDecl:
		r.methodDecl(path, idx)
	case parser.KindParameters:
		r.parameters(path)
	case parser.KindParameter:
		r.parameter(path, idx)
	case parser.KindTypeParameter:
		r.typeParameter(path, idx)
	case parser.KindTypeArguments:
		r.addTypes(typeFilter{})
	case parser.KindWildcard:
		if n.Token == nil {
			r.keywords("extends", "super")
		} else {
			r.addTypes(typeFilter{})
		}
	case parser.KindAnnotation:
		r.annotation(path, idx)
	case parser.KindAnnotationElement:
		r.annotationElement(path)
	case parser.KindDefaultValue:
		r.defaultValue(path)

	case parser.KindBlock, parser.KindSwitchCase:
		r.blockStatement(path, idx)
	case parser.KindLocalVarDecl:
		r.localVarDecl(path, idx)
	case parser.KindVarDeclarator:
		r.varDeclarator(path, idx)
	case parser.KindIfStmt, parser.KindWhileStmt, parser.KindDoStmt, parser.KindLabeledStmt:
		r.statementBody(path, idx)
	case parser.KindForStmt:
		r.forStmt(path, idx)
	case parser.KindForInit:
		r.addTypes(typeFilter{})
		r.addPrimitiveTypes(false)
		r.expression()
	case parser.KindForUpdate:
		r.expression()
	case parser.KindEnhancedForStmt:
		r.enhancedFor(path, idx)
	case parser.KindTryStmt:
		r.tryStmt(path, idx)
	case parser.KindResources:
		r.resources()
	case parser.KindCatchClause:
		if idx == 0 {
			r.catchTypes(path.Parent(), nil)
		}
	case parser.KindUnionType:
		if param := path.Parent(); param != nil && param.Parent() != nil &&
			param.Parent().Leaf().Kind == parser.KindCatchClause {
			r.catchTypes(param.Parent().Parent(), n)
		}
	case parser.KindSwitchStmt, parser.KindSwitchExpr:
		r.switchBody(path)
	case parser.KindSwitchLabel:
		r.switchLabel(path, idx)
	case parser.KindBreakStmt, parser.KindContinueStmt:
		r.labels(path)
	case parser.KindReturnStmt, parser.KindThrowStmt, parser.KindYieldStmt, parser.KindAssertStmt,
		parser.KindExprStmt, parser.KindGuard, parser.KindSynchronizedStmt:
		r.expression()

	case parser.KindArguments:
		r.arguments(path, idx)
	case parser.KindFieldAccess:
		r.memberSelect(path, idx)
	case parser.KindMethodRef:
		r.methodRef(path, idx)
	case parser.KindNewExpr, parser.KindNewArrayExpr:
		r.newExpr(path, idx)
	case parser.KindInstanceofExpr:
		if idx >= 1 {
			r.instanceofType(path)
		} else {
			r.expression()
		}
	case parser.KindTypePattern:
		if idx == 1 {
			r.patternType(path)
		}
	case parser.KindRecordPattern:
		if idx >= 1 {
			r.patternType(path)
		}
	case parser.KindCastExpr:
		if idx == 0 {
			r.addTypes(typeFilter{})
			r.addPrimitiveTypes(false)
		} else {
			r.expression()
		}
	case parser.KindParenExpr:
		r.parenExpr(path)
	case parser.KindLambdaExpr:
		if idx >= 1 {
			r.expression()
		}
	case parser.KindBinaryExpr, parser.KindUnaryExpr, parser.KindAssignExpr, parser.KindTernaryExpr,
		parser.KindArrayAccess, parser.KindArrayInit, parser.KindTemplate, parser.KindTemplateExpr,
		parser.KindPostfixExpr:
		r.expression()
	}
}

// openHeader returns the type declaration before slot idx of n whose
// header the prefix continues: its body has not been opened yet.
func (env *Env) openHeader(n *parser.Node, idx int) *parser.Node {
	if n.Kind != parser.KindCompilationUnit && n.Kind != parser.KindClassBody && n.Kind != parser.KindBlock {
		return nil
	}
	decl := precedingChild(n, idx)
	if decl == nil || !decl.Kind.IsTypeDecl() || !env.before(decl) {
		return nil
	}
	if body := decl.FirstChildOfKind(parser.KindClassBody); body != nil && body.Span.Len() > 0 {
		return nil
	}
	if toks := env.tokensBetween(env.End(decl)); len(toks) > 0 {
		return nil
	}
	return decl
}

// annotationSite reports whether an annotation can start in a construct
// of kind k.
func annotationSite(k parser.NodeKind) bool {
	switch k {
	case parser.KindCompilationUnit, parser.KindClassBody, parser.KindModifiers, parser.KindBlock,
		parser.KindParameters, parser.KindParameter, parser.KindSwitchCase, parser.KindLocalVarDecl,
		parser.KindFieldDecl, parser.KindMethodDecl:
		return true
	}
	return false
}

// expression offers everything that can start an expression.
func (r *results) expression() {
	env := r.env
	r.addLocalMembersAndVars(nil)
	if env.cancelled() {
		return
	}
	r.addSmartStatics()
	r.addValueKeywords()
	r.addTypes(typeFilter{})
	r.addChainedMembers()
	r.addLambdas()
	if env.Prefix != "" {
		r.addPackages("")
	}
}

// previousKind returns the kind of the token before the prefix, EOF at
// the start of the text.
func (env *Env) previousKind() parser.TokenKind {
	tok, ok := env.previousToken()
	if !ok {
		return parser.TokenEOF
	}
	return tok.Kind
}

// before reports whether n ends at or before the prefix.
func (env *Env) before(n *parser.Node) bool {
	return n != nil && n.Span.Len() > 0 && env.End(n) <= env.Offset
}

// precedingChild returns the last non-empty child of n before slot idx.
func precedingChild(n *parser.Node, idx int) *parser.Node {
	for i := min(idx, len(n.Children)) - 1; i >= 0; i-- {
		if c := n.Children[i]; c.Span.Len() > 0 {
			return c
		}
	}
	return nil
}
