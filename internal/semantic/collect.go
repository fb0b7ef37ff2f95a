package semantic

import "github.com/logbie/wfl/internal/ast"

// collectIdentRefs walks every expression reachable from a statement —
// including condition expressions, loop bounds, call/I-O argument
// expressions, and nested blocks — marking each referenced identifier
// name in refs ("recurses into binary operators... action
// calls... the value expressions of I/O statements").
func collectIdentRefs(s ast.Statement, refs map[string]bool) {
	switch n := s.(type) {
	case *ast.BlockStatement:
		for _, sub := range n.Statements {
			collectIdentRefs(sub, refs)
		}
	case *ast.VarDecl:
		collectIdentRefsExpr(n.Value, refs)
	case *ast.Assignment:
		collectIdentRefsExpr(n.Value, refs)
	case *ast.DisplayStmt:
		collectIdentRefsExpr(n.Value, refs)
	case *ast.IfStatement:
		collectIdentRefsExpr(n.Condition, refs)
		collectIdentRefs(n.Consequence, refs)
		if n.Alternative != nil {
			collectIdentRefs(n.Alternative, refs)
		}
	case *ast.WhileStatement:
		collectIdentRefsExpr(n.Condition, refs)
		collectIdentRefs(n.Body, refs)
	case *ast.RepeatWhileStatement:
		collectIdentRefsExpr(n.Condition, refs)
		collectIdentRefs(n.Body, refs)
	case *ast.RepeatUntilStatement:
		collectIdentRefsExpr(n.Condition, refs)
		collectIdentRefs(n.Body, refs)
	case *ast.CountStatement:
		collectIdentRefsExpr(n.From, refs)
		collectIdentRefsExpr(n.To, refs)
		collectIdentRefsExpr(n.Step, refs)
		collectIdentRefs(n.Body, refs)
	case *ast.ForEachStatement:
		collectIdentRefsExpr(n.Iterable, refs)
		collectIdentRefs(n.Body, refs)
	case *ast.ForeverStatement:
		collectIdentRefs(n.Body, refs)
	case *ast.ReturnStatement:
		collectIdentRefsExpr(n.Value, refs)
	case *ast.ExpressionStatement:
		collectIdentRefsExpr(n.Expr, refs)
	case *ast.ActionDecl:
		if n.Body != nil {
			collectIdentRefs(n.Body, refs)
		}
	case *ast.ContainerDecl:
		for _, prop := range n.Properties {
			collectIdentRefsExpr(prop.Default, refs)
		}
		for _, act := range n.Actions {
			collectIdentRefs(act, refs)
		}
	case *ast.TryStatement:
		collectIdentRefs(n.Body, refs)
		if n.Catch != nil {
			collectIdentRefs(n.Catch, refs)
		}
	case *ast.OpenStatement:
		collectIdentRefsExpr(n.Source, refs)
	case *ast.CloseStatement:
		refs[n.Handle] = true
	case *ast.ReadStatement:
		refs[n.Handle] = true
		refs[n.Target] = true
	case *ast.AppendStatement:
		collectIdentRefsExpr(n.Value, refs)
		refs[n.Handle] = true
	case *ast.WriteStatement:
		collectIdentRefsExpr(n.Value, refs)
		refs[n.Handle] = true
	case *ast.WaitForStatement:
		collectIdentRefsExpr(n.Expr, refs)
	}
}

// collectIdentRefsExpr recurses through an expression tree marking every
// Identifier it reaches. A nil expression (e.g. an omitted `count` step,
// or a bare `provide`) is a no-op.
func collectIdentRefsExpr(e ast.Expression, refs map[string]bool) {
	switch n := e.(type) {
	case nil:
	case *ast.Identifier:
		refs[n.Name] = true
	case *ast.BinaryExpr:
		collectIdentRefsExpr(n.Left, refs)
		collectIdentRefsExpr(n.Right, refs)
	case *ast.UnaryExpr:
		collectIdentRefsExpr(n.Operand, refs)
	case *ast.ConcatExpr:
		collectIdentRefsExpr(n.Left, refs)
		collectIdentRefsExpr(n.Right, refs)
	case *ast.CallExpr:
		collectIdentRefsExpr(n.Callee, refs)
		for _, arg := range n.Args {
			collectIdentRefsExpr(arg, refs)
		}
	case *ast.MemberExpr:
		collectIdentRefsExpr(n.Object, refs)
	case *ast.IndexExpr:
		collectIdentRefsExpr(n.Object, refs)
		collectIdentRefsExpr(n.Index, refs)
	case *ast.ListLiteral:
		for _, elem := range n.Elements {
			collectIdentRefsExpr(elem, refs)
		}
	case *ast.MapLiteral:
		for _, k := range n.Keys {
			collectIdentRefsExpr(k, refs)
		}
		for _, v := range n.Values {
			collectIdentRefsExpr(v, refs)
		}
	case *ast.NewExpr:
		for _, arg := range n.Args {
			collectIdentRefsExpr(arg, refs)
		}
	case *ast.MatchExpr:
		collectIdentRefsExpr(n.Subject, refs)
		collectIdentRefsExpr(n.Pattern, refs)
	}
}

// collectAssignTargets marks every name that is the target of a `change
// Name to ...` assignment somewhere under s, used to distinguish
// write-only bindings (assigned but never read) from fully unused ones.
func collectAssignTargets(s ast.Statement, written map[string]bool) {
	switch n := s.(type) {
	case *ast.BlockStatement:
		for _, sub := range n.Statements {
			collectAssignTargets(sub, written)
		}
	case *ast.Assignment:
		written[n.Name] = true
	case *ast.IfStatement:
		collectAssignTargets(n.Consequence, written)
		if n.Alternative != nil {
			collectAssignTargets(n.Alternative, written)
		}
	case *ast.WhileStatement:
		collectAssignTargets(n.Body, written)
	case *ast.RepeatWhileStatement:
		collectAssignTargets(n.Body, written)
	case *ast.RepeatUntilStatement:
		collectAssignTargets(n.Body, written)
	case *ast.CountStatement:
		collectAssignTargets(n.Body, written)
	case *ast.ForEachStatement:
		collectAssignTargets(n.Body, written)
	case *ast.ForeverStatement:
		collectAssignTargets(n.Body, written)
	case *ast.TryStatement:
		collectAssignTargets(n.Body, written)
		if n.Catch != nil {
			collectAssignTargets(n.Catch, written)
		}
	case *ast.ActionDecl:
		if n.Body != nil {
			collectAssignTargets(n.Body, written)
		}
	case *ast.ContainerDecl:
		for _, act := range n.Actions {
			collectAssignTargets(act, written)
		}
	}
}
