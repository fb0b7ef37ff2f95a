// Package semantic implements the two analysis passes that run between
// parsing and evaluation: a warnings-only static analyzer and a
// bidirectional type checker (in checker.go).
package semantic

import (
	"fmt"

	"github.com/logbie/wfl/internal/ast"
	"github.com/logbie/wfl/internal/diag"
)

// Analyzer walks a parsed Program looking for the warning-level issues
// lists: unused bindings, write-only variables, shadowing of a
// built-in name, and unreachable statements after a terminating
// statement. It never reports errors — only warnings — so a script with
// analyzer findings still proceeds to type checking.
type Analyzer struct {
	bag      *diag.Bag
	src      int
	builtins map[string]bool
}

// NewAnalyzer creates an Analyzer reporting into bag tagged with source
// file id src. builtins is the set of names the host's built-in library
// registers at the root frame; it is consulted only for the shadowing
// check, so a nil or empty set simply disables that one check rather
// than the whole pass.
func NewAnalyzer(bag *diag.Bag, src int, builtins map[string]bool) *Analyzer {
	return &Analyzer{bag: bag, src: src, builtins: builtins}
}

// Analyze runs every static check over prog's top-level statement list.
func (a *Analyzer) Analyze(prog *ast.Program) {
	a.analyzeScope(prog.Statements)
}

func (a *Analyzer) warnf(span ast.Span, kind string, format string, args ...any) {
	a.bag.Add(diag.Diagnostic{
		Severity: diag.Warning,
		Kind:     diag.KindSemantic,
		Span:     diag.Span{File: a.src, Start: span.Start, End: span.End},
		Message:  fmt.Sprintf("[%s] %s", kind, fmt.Sprintf(format, args...)),
	})
}

// analyzeScope runs the unused-binding two-pass scheme over
// one lexical scope's statement list, then recurses into every nested
// block so each carries its own independent pass.
func (a *Analyzer) analyzeScope(stmts []ast.Statement) {
	decls := map[string]*ast.VarDecl{}
	var order []string
	for _, s := range stmts {
		if vd, ok := s.(*ast.VarDecl); ok {
			if _, exists := decls[vd.Name]; !exists {
				order = append(order, vd.Name)
			}
			decls[vd.Name] = vd
		}
	}

	// Pass 1: mark identifiers referenced in the right-hand side of any
	// declaration in this scope, so `store c as a plus b` does not flag
	// `a`/`b` even though they are only read by a sibling declaration.
	read := map[string]bool{}
	for _, name := range order {
		collectIdentRefsExpr(decls[name].Value, read)
	}

	// Pass 2: mark identifiers referenced by every other statement,
	// recursing fully into nested blocks (a binding can be read inside an
	// inner scope without being redeclared there).
	written := map[string]bool{}
	for _, s := range stmts {
		collectIdentRefs(s, read)
		collectAssignTargets(s, written)
	}

	a.checkShadowing(stmts)
	a.checkUnreachable(stmts)

	for _, name := range order {
		decl := decls[name]
		switch {
		case !read[name] && !written[name]:
			a.warnf(decl.Span, "unused", "%q is declared but never used", name)
		case !read[name] && written[name]:
			a.warnf(decl.Span, "write-only", "%q is assigned but never read", name)
		}
	}

	for _, s := range stmts {
		for _, nested := range nestedBlocksOf(s) {
			a.analyzeScope(nested.Statements)
		}
	}
}

// checkShadowing warns when a declaration or action/container name in
// this scope reuses the name of a host built-in ("shadowing
// of a built-in").
func (a *Analyzer) checkShadowing(stmts []ast.Statement) {
	if len(a.builtins) == 0 {
		return
	}
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.VarDecl:
			if a.builtins[n.Name] {
				a.warnf(n.Span, "shadow", "%q shadows a built-in name", n.Name)
			}
		case *ast.ActionDecl:
			if a.builtins[n.Name] {
				a.warnf(n.Span, "shadow", "%q shadows a built-in name", n.Name)
			}
			for _, p := range n.Params {
				if a.builtins[p] {
					a.warnf(n.Span, "shadow", "parameter %q shadows a built-in name", p)
				}
			}
		case *ast.ContainerDecl:
			if a.builtins[n.Name] {
				a.warnf(n.Span, "shadow", "%q shadows a built-in name", n.Name)
			}
		}
	}
}

// checkUnreachable flags any statement following a break/continue/exit/
// return in the same statement list: control never reaches it.
func (a *Analyzer) checkUnreachable(stmts []ast.Statement) {
	terminated := false
	for _, s := range stmts {
		if terminated {
			a.warnf(s.SpanOf(), "unreachable", "statement is unreachable")
			continue
		}
		switch s.(type) {
		case *ast.BreakStatement, *ast.ContinueStatement, *ast.ExitStatement, *ast.ReturnStatement:
			terminated = true
		}
	}
}

// nestedBlocksOf returns the immediate child blocks of a statement that
// introduce their own lexical scope, so analyzeScope can recurse.
func nestedBlocksOf(s ast.Statement) []*ast.BlockStatement {
	switch n := s.(type) {
	case *ast.IfStatement:
		blocks := []*ast.BlockStatement{n.Consequence}
		switch alt := n.Alternative.(type) {
		case *ast.BlockStatement:
			blocks = append(blocks, alt)
		case *ast.IfStatement:
			blocks = append(blocks, nestedBlocksOf(alt)...)
		}
		return blocks
	case *ast.WhileStatement:
		return []*ast.BlockStatement{n.Body}
	case *ast.RepeatWhileStatement:
		return []*ast.BlockStatement{n.Body}
	case *ast.RepeatUntilStatement:
		return []*ast.BlockStatement{n.Body}
	case *ast.CountStatement:
		return []*ast.BlockStatement{n.Body}
	case *ast.ForEachStatement:
		return []*ast.BlockStatement{n.Body}
	case *ast.ForeverStatement:
		return []*ast.BlockStatement{n.Body}
	case *ast.TryStatement:
		blocks := []*ast.BlockStatement{n.Body}
		if n.Catch != nil {
			blocks = append(blocks, n.Catch)
		}
		return blocks
	case *ast.ActionDecl:
		if n.Body != nil {
			return []*ast.BlockStatement{n.Body}
		}
	case *ast.ContainerDecl:
		var blocks []*ast.BlockStatement
		for _, act := range n.Actions {
			if act.Body != nil {
				blocks = append(blocks, act.Body)
			}
		}
		return blocks
	}
	return nil
}
