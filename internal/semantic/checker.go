package semantic

import (
	"fmt"
	"strings"

	"github.com/logbie/wfl/internal/ast"
	"github.com/logbie/wfl/internal/diag"
	"github.com/logbie/wfl/internal/types"
)

// typeScope is the type checker's analogue of the interpreter's runtime
// Environment: a linked chain of name -> Type frames, walked
// outward on lookup and mutated in place on a successful unify so later
// uses see the refined type — the "bidirectional" half of this
// checker's Hindley-Milner-lite bidirectional inference.
type typeScope struct {
	vars   map[string]*types.Type
	parent *typeScope
}

func newTypeScope(parent *typeScope) *typeScope {
	return &typeScope{vars: map[string]*types.Type{}, parent: parent}
}

func (s *typeScope) define(name string, t *types.Type) {
	s.vars[name] = t
}

func (s *typeScope) lookup(name string) (*types.Type, bool) {
	for e := s; e != nil; e = e.parent {
		if t, ok := e.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// assign refines the type stored for name in whichever frame already
// binds it, mirroring the runtime Environment's assign semantics:
// locate the owning frame and mutate in place rather than shadow.
func (s *typeScope) assign(name string, t *types.Type) bool {
	for e := s; e != nil; e = e.parent {
		if _, ok := e.vars[name]; ok {
			e.vars[name] = t
			return true
		}
	}
	return false
}

// containerInfo tracks a declared container's property and method types
// for member-access and `new` checking.
type containerInfo struct {
	decl    *ast.ContainerDecl
	props   map[string]*types.Type
	actions map[string]*types.Type
}

// Checker performs the bidirectional type-checking pass: it
// assigns a Type to every expression and checks each statement against
// its declared or inferred expectations, reporting Error-severity
// diagnostics (unlike Analyzer, which only warns).
type Checker struct {
	bag        *diag.Bag
	src        int
	containers map[string]*containerInfo
	interfaces map[string]*ast.InterfaceDecl
	declSpans  map[string]ast.Span // name -> declaration span, for secondary labels
}

// NewChecker creates a Checker reporting into bag tagged with source
// file id src.
func NewChecker(bag *diag.Bag, src int) *Checker {
	return &Checker{
		bag:        bag,
		src:        src,
		containers: map[string]*containerInfo{},
		interfaces: map[string]*ast.InterfaceDecl{},
		declSpans:  map[string]ast.Span{},
	}
}

// Check runs the type checker over prog's top-level statement list.
// Interface declarations are collected in a pre-pass so a container may
// list an interface declared later in the same file.
func (c *Checker) Check(prog *ast.Program) {
	for _, s := range prog.Statements {
		if iface, ok := s.(*ast.InterfaceDecl); ok {
			c.interfaces[iface.Name] = iface
		}
	}
	root := newTypeScope(nil)
	c.checkBlock(prog.Statements, root, nil)
}

func (c *Checker) errorf(span ast.Span, format string, args ...any) {
	c.bag.Add(diag.Diagnostic{
		Severity: diag.Error,
		Kind:     diag.KindType,
		Span:     diag.Span{File: c.src, Start: span.Start, End: span.End},
		Message:  sprintf(format, args...),
	})
}

// semanticErrorf reports a Checker-discovered problem that belongs to
// the semantic rather than type-checking taxonomy (interface
// conformance is checked here because it needs the same
// containerInfo/inheritance bookkeeping as the type checker, but the
// defect itself isn't a type mismatch).
func (c *Checker) semanticErrorf(span ast.Span, format string, args ...any) {
	c.bag.Add(diag.Diagnostic{
		Severity: diag.Error,
		Kind:     diag.KindSemantic,
		Span:     diag.Span{File: c.src, Start: span.Start, End: span.End},
		Message:  sprintf(format, args...),
	})
}

func (c *Checker) errorfWithLabel(span ast.Span, label ast.Span, labelMsg, format string, args ...any) {
	c.bag.Add(diag.Diagnostic{
		Severity: diag.Error,
		Kind:     diag.KindType,
		Span:     diag.Span{File: c.src, Start: span.Start, End: span.End},
		Message:  sprintf(format, args...),
		Labels: []diag.Label{{
			Span:    diag.Span{File: c.src, Start: label.Start, End: label.End},
			Message: labelMsg,
		}},
		Help: "convert with `as text` or `as number` where a coercion is intended",
	})
}

func sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

// returnCtx accumulates the inferred types of every `provide` reached
// while checking one action body, so the action's return type can be
// the unification of all of them ("the result is the action's
// declared/inferred return type").
type returnCtx struct {
	types []*types.Type
}

func (c *Checker) checkBlock(stmts []ast.Statement, scope *typeScope, ret *returnCtx) {
	for _, s := range stmts {
		c.checkStmt(s, scope, ret)
	}
}

func (c *Checker) checkStmt(s ast.Statement, scope *typeScope, ret *returnCtx) {
	switch n := s.(type) {
	case *ast.BlockStatement:
		c.checkBlock(n.Statements, newTypeScope(scope), ret)

	case *ast.VarDecl:
		t := c.infer(n.Value, scope)
		scope.define(n.Name, t)
		c.declSpans[n.Name] = n.Span

	case *ast.Assignment:
		existing, ok := scope.lookup(n.Name)
		if !ok {
			c.errorf(n.Span, "assignment to undeclared name %q", n.Name)
			return
		}
		t := c.infer(n.Value, scope)
		unified, ok := types.Unify(existing, t)
		if !ok {
			declSpan := c.declSpans[n.Name]
			c.errorfWithLabel(n.Value.SpanOf(), declSpan, "declared here",
				"cannot assign %s to %q of type %s", t, n.Name, existing)
			return
		}
		scope.assign(n.Name, unified)

	case *ast.DisplayStmt:
		c.infer(n.Value, scope)

	case *ast.IfStatement:
		cond := c.infer(n.Condition, scope)
		if cond != nil && cond.Kind != types.KindBoolean && cond.Kind != types.KindAny && cond.Kind != types.KindUnknown {
			c.errorf(n.Condition.SpanOf(), "condition must be Boolean, got %s", cond)
		}
		c.checkBlock(n.Consequence.Statements, newTypeScope(scope), ret)
		if n.Alternative != nil {
			c.checkStmt(n.Alternative, scope, ret)
		}

	case *ast.WhileStatement:
		c.checkLoopCondition(n.Condition, scope)
		c.checkBlock(n.Body.Statements, newTypeScope(scope), ret)

	case *ast.RepeatWhileStatement:
		c.checkLoopCondition(n.Condition, scope)
		c.checkBlock(n.Body.Statements, newTypeScope(scope), ret)

	case *ast.RepeatUntilStatement:
		c.checkLoopCondition(n.Condition, scope)
		c.checkBlock(n.Body.Statements, newTypeScope(scope), ret)

	case *ast.CountStatement:
		c.checkNumeric(n.From, scope)
		c.checkNumeric(n.To, scope)
		if n.Step != nil {
			c.checkNumeric(n.Step, scope)
		}
		inner := newTypeScope(scope)
		inner.define(n.Var, types.Number)
		c.checkBlock(n.Body.Statements, inner, ret)

	case *ast.ForEachStatement:
		iterT := c.infer(n.Iterable, scope)
		elem := types.Any
		switch {
		case iterT == nil:
		case iterT.Kind == types.KindList:
			elem = iterT.Elem
		case iterT.Kind == types.KindMap:
			elem = iterT.Key
		case iterT.Kind == types.KindAny || iterT.Kind == types.KindUnknown:
			elem = types.Any
		default:
			c.errorf(n.Iterable.SpanOf(), "for each requires a List or Map, got %s", iterT)
		}
		inner := newTypeScope(scope)
		inner.define(n.Var, elem)
		c.checkBlock(n.Body.Statements, inner, ret)

	case *ast.ForeverStatement:
		c.checkBlock(n.Body.Statements, newTypeScope(scope), ret)

	case *ast.ReturnStatement:
		if ret == nil {
			return
		}
		if n.Value == nil {
			ret.types = append(ret.types, types.Nothing)
			return
		}
		ret.types = append(ret.types, c.infer(n.Value, scope))

	case *ast.ExpressionStatement:
		c.infer(n.Expr, scope)

	case *ast.ActionDecl:
		c.checkActionDecl(n, scope)

	case *ast.ContainerDecl:
		c.checkContainerDecl(n, scope)

	case *ast.InterfaceDecl:
		// Collected into c.interfaces by Check's pre-pass; nothing to
		// unify here.

	case *ast.TryStatement:
		c.checkBlock(n.Body.Statements, newTypeScope(scope), ret)
		if n.Catch != nil {
			inner := newTypeScope(scope)
			if n.CatchVar != "" {
				inner.define(n.CatchVar, types.Text)
			}
			c.checkBlock(n.Catch.Statements, inner, ret)
		}

	case *ast.OpenStatement:
		c.infer(n.Source, scope)
		scope.define(n.Handle, types.Any)
		c.declSpans[n.Handle] = n.Span

	case *ast.CloseStatement, *ast.ReadStatement:
		// Handles are opaque Values; nothing to unify.

	case *ast.AppendStatement:
		c.infer(n.Value, scope)

	case *ast.WriteStatement:
		c.infer(n.Value, scope)

	case *ast.WaitForStatement:
		c.infer(n.Expr, scope)

	case *ast.BreakStatement, *ast.ContinueStatement, *ast.ExitStatement:
		// No type obligations.
	}
}

func (c *Checker) checkLoopCondition(e ast.Expression, scope *typeScope) {
	t := c.infer(e, scope)
	if t != nil && t.Kind != types.KindBoolean && t.Kind != types.KindAny && t.Kind != types.KindUnknown {
		c.errorf(e.SpanOf(), "loop condition must be Boolean, got %s", t)
	}
}

func (c *Checker) checkNumeric(e ast.Expression, scope *typeScope) {
	t := c.infer(e, scope)
	if t != nil && !t.IsNumeric() && t.Kind != types.KindAny && t.Kind != types.KindUnknown {
		c.errorf(e.SpanOf(), "expected Number, got %s", t)
	}
}

// checkActionDecl registers name -> Action(params, return) in scope
// before checking the body, so a recursive call resolves, then infers
// the return type from every `provide` reached in the body.
func (c *Checker) checkActionDecl(n *ast.ActionDecl, scope *typeScope) {
	params := make([]*types.Type, len(n.Params))
	for i := range params {
		params[i] = types.Unknown
	}
	actionType := types.Action(params, types.Unknown)
	scope.define(n.Name, actionType)
	c.declSpans[n.Name] = n.Span

	if n.Body == nil {
		return // nothing to check; the parser always sets a Body.
	}

	inner := newTypeScope(scope)
	for _, p := range n.Params {
		inner.define(p, types.Unknown)
	}
	ret := &returnCtx{}
	c.checkBlock(n.Body.Statements, inner, ret)

	for i, p := range n.Params {
		if t, ok := inner.lookup(p); ok {
			params[i] = t
		}
	}

	retType := types.Unknown
	for _, t := range ret.types {
		unified, ok := types.Unify(retType, t)
		if !ok {
			c.errorf(n.Span, "action %q has incompatible return types %s and %s", n.Name, retType, t)
			continue
		}
		retType = unified
	}
	if len(ret.types) == 0 {
		retType = types.Nothing
	}
	actionType.Params = params
	actionType.Return = retType
}

func (c *Checker) checkContainerDecl(n *ast.ContainerDecl, scope *typeScope) {
	info := &containerInfo{decl: n, props: map[string]*types.Type{}, actions: map[string]*types.Type{}}
	c.containers[n.Name] = info
	scope.define(n.Name, types.Container(n.Name))
	c.declSpans[n.Name] = n.Span

	if n.Parent != "" {
		if parent, ok := c.containers[n.Parent]; ok {
			for name, t := range parent.props {
				info.props[name] = t
			}
			for name, t := range parent.actions {
				info.actions[name] = t
			}
		}
	}

	inner := newTypeScope(scope)
	for _, prop := range n.Properties {
		t := c.resolveTypeName(prop.TypeName)
		if prop.TypeName == "" && prop.Default != nil {
			t = c.infer(prop.Default, inner)
		}
		info.props[prop.Name] = t
		inner.define(prop.Name, t)
	}
	for _, act := range n.Actions {
		c.checkActionDecl(act, inner)
		if t, ok := inner.lookup(act.Name); ok {
			info.actions[act.Name] = t
		}
	}

	c.checkInterfaceConformance(n, info)
}

// checkInterfaceConformance verifies that n implements every interface
// it lists: each required action must be present, by name and arity,
// among n's own actions plus whatever it inherited from its parent
// chain into info.actions.
func (c *Checker) checkInterfaceConformance(n *ast.ContainerDecl, info *containerInfo) {
	for _, ifaceName := range n.Interfaces {
		iface, ok := c.interfaces[ifaceName]
		if !ok {
			c.semanticErrorf(n.Span, "container %q implements unknown interface %q", n.Name, ifaceName)
			continue
		}
		for _, m := range iface.Methods {
			t, ok := info.actions[m.Name]
			if !ok {
				c.semanticErrorf(n.Span, "container %q does not implement %q's action %q", n.Name, ifaceName, m.Name)
				continue
			}
			if len(t.Params) != m.Arity {
				c.semanticErrorf(n.Span, "container %q's action %q takes %d parameter(s), %q requires %d",
					n.Name, m.Name, len(t.Params), ifaceName, m.Arity)
			}
		}
	}
}

// resolveTypeName maps a property's declared type name to a lattice
// Type, understanding the primitive names plus the "List of X" and
// "Map of K to V" structural spellings that mirror Type.String()'s own
// rendering.
func (c *Checker) resolveTypeName(name string) *types.Type {
	switch name {
	case "":
		return types.Unknown
	case "Number":
		return types.Number
	case "Text":
		return types.Text
	case "Boolean":
		return types.Boolean
	case "Nothing":
		return types.Nothing
	case "Any":
		return types.Any
	}
	if rest, ok := strings.CutPrefix(name, "List of "); ok {
		return types.List(c.resolveTypeName(rest))
	}
	if rest, ok := strings.CutPrefix(name, "Map of "); ok {
		if key, val, found := strings.Cut(rest, " to "); found {
			return types.Map(c.resolveTypeName(key), c.resolveTypeName(val))
		}
	}
	if _, ok := c.containers[name]; ok {
		return types.Container(name)
	}
	return types.Any
}

// infer assigns a Type to expression e (per-expression
// typing rules).
func (c *Checker) infer(e ast.Expression, scope *typeScope) *types.Type {
	switch n := e.(type) {
	case nil:
		return types.Nothing
	case *ast.NumberLiteral:
		return types.Number
	case *ast.TextLiteral:
		return types.Text
	case *ast.BoolLiteral:
		return types.Boolean
	case *ast.NothingLiteral:
		return types.Nothing

	case *ast.Identifier:
		if t, ok := scope.lookup(n.Name); ok {
			return t
		}
		c.errorf(n.Span, "undefined name %q", n.Name)
		return types.Unknown

	case *ast.UnaryExpr:
		t := c.infer(n.Operand, scope)
		if n.Op == "not" {
			if t != nil && t.Kind != types.KindBoolean && t.Kind != types.KindAny && t.Kind != types.KindUnknown {
				c.errorf(n.Span, "'not' requires Boolean, got %s", t)
			}
			return types.Boolean
		}
		if t != nil && !t.IsNumeric() && t.Kind != types.KindAny && t.Kind != types.KindUnknown {
			c.errorf(n.Span, "unary %q requires Number, got %s", n.Op, t)
		}
		return types.Number

	case *ast.BinaryExpr:
		return c.inferBinary(n, scope)

	case *ast.ConcatExpr:
		c.infer(n.Left, scope)
		c.infer(n.Right, scope)
		return types.Text

	case *ast.CallExpr:
		return c.inferCall(n, scope)

	case *ast.MemberExpr:
		objT := c.infer(n.Object, scope)
		if objT == nil {
			return types.Any
		}
		if objT.Kind == types.KindAny || objT.Kind == types.KindUnknown {
			return types.Any
		}
		if objT.Kind == types.KindContainer {
			if info, ok := c.containers[objT.Name]; ok {
				if t, ok := info.props[n.Property]; ok {
					return t
				}
				if t, ok := info.actions[n.Property]; ok {
					return t
				}
			}
			return types.Any
		}
		c.errorf(n.Span, "cannot access property %q on %s", n.Property, objT)
		return types.Any

	case *ast.IndexExpr:
		objT := c.infer(n.Object, scope)
		c.infer(n.Index, scope)
		if objT == nil {
			return types.Any
		}
		switch objT.Kind {
		case types.KindList:
			return objT.Elem
		case types.KindMap:
			return objT.Value
		case types.KindAny, types.KindUnknown:
			return types.Any
		default:
			c.errorf(n.Object.SpanOf(), "cannot index %s", objT)
			return types.Any
		}

	case *ast.ListLiteral:
		elem := types.Unknown
		for _, el := range n.Elements {
			t := c.infer(el, scope)
			unified, ok := types.Unify(elem, t)
			if !ok {
				c.errorf(el.SpanOf(), "list element type %s does not unify with %s", t, elem)
				continue
			}
			elem = unified
		}
		return types.List(elem)

	case *ast.MapLiteral:
		key, val := types.Unknown, types.Unknown
		for i := range n.Keys {
			kt := c.infer(n.Keys[i], scope)
			if unified, ok := types.Unify(key, kt); ok {
				key = unified
			}
			vt := c.infer(n.Values[i], scope)
			if unified, ok := types.Unify(val, vt); ok {
				val = unified
			}
		}
		return types.Map(key, val)

	case *ast.NewExpr:
		info, ok := c.containers[n.Container]
		if !ok {
			c.errorf(n.Span, "unknown container %q", n.Container)
			for _, a := range n.Args {
				c.infer(a, scope)
			}
			return types.Any
		}
		argTypes := make([]*types.Type, len(n.Args))
		for i, a := range n.Args {
			argTypes[i] = c.infer(a, scope)
		}
		if ctor, ok := info.actions["initialize"]; ok && len(ctor.Params) != len(argTypes) {
			c.errorf(n.Span, "%q constructor expects %d argument(s), got %d", n.Container, len(ctor.Params), len(argTypes))
		}
		return types.Container(n.Container)

	case *ast.MatchExpr:
		subjT := c.infer(n.Subject, scope)
		if subjT != nil && subjT.Kind != types.KindText && subjT.Kind != types.KindAny && subjT.Kind != types.KindUnknown {
			c.errorf(n.Subject.SpanOf(), "'matches' subject must be Text, got %s", subjT)
		}
		c.infer(n.Pattern, scope)
		return types.Boolean
	}
	return types.Unknown
}

func (c *Checker) inferBinary(n *ast.BinaryExpr, scope *typeScope) *types.Type {
	lt := c.infer(n.Left, scope)
	rt := c.infer(n.Right, scope)

	switch n.Op {
	case "plus", "minus", "times", "divided by", "+", "-", "*", "/":
		if n.Op == "divided by" || n.Op == "/" {
			if lit, ok := n.Right.(*ast.NumberLiteral); ok && lit.Value == 0 {
				c.bag.Add(diag.Diagnostic{
					Severity: diag.Warning,
					Kind:     diag.KindType,
					Span:     diag.Span{File: c.src, Start: n.Right.SpanOf().Start, End: n.Right.SpanOf().End},
					Message:  "division by literal zero",
				})
			}
		}
		if !okNumericOrUnknown(lt) {
			c.errorf(n.Left.SpanOf(), "arithmetic requires Number, got %s", lt)
		}
		if !okNumericOrUnknown(rt) {
			c.errorf(n.Right.SpanOf(), "arithmetic requires Number, got %s", rt)
		}
		return types.Number

	case "is equal to", "is not equal to", "==", "<>", "is greater than", "is less than", "<", ">", "<=", ">=":
		if _, ok := types.Unify(lt, rt); !ok {
			c.errorfWithLabel(n.Right.SpanOf(), n.Left.SpanOf(), "compared against this",
				"cannot compare %s with %s", rt, lt)
		}
		return types.Boolean

	case "and", "or":
		if !okBooleanOrUnknown(lt) {
			c.errorf(n.Left.SpanOf(), "logical operator requires Boolean, got %s", lt)
		}
		if !okBooleanOrUnknown(rt) {
			c.errorf(n.Right.SpanOf(), "logical operator requires Boolean, got %s", rt)
		}
		return types.Boolean

	default:
		return types.Unknown
	}
}

func (c *Checker) inferCall(n *ast.CallExpr, scope *typeScope) *types.Type {
	calleeT := c.infer(n.Callee, scope)
	argTypes := make([]*types.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = c.infer(a, scope)
	}
	if calleeT == nil || calleeT.Kind == types.KindAny || calleeT.Kind == types.KindUnknown {
		return types.Any
	}
	if calleeT.Kind != types.KindAction {
		c.errorf(n.Span, "cannot call %s", calleeT)
		return types.Any
	}
	if len(argTypes) != len(calleeT.Params) {
		c.errorf(n.Span, "expected %d argument(s), got %d", len(calleeT.Params), len(argTypes))
		return calleeT.Return
	}
	ident, _ := n.Callee.(*ast.Identifier)
	for i, argT := range argTypes {
		unified, ok := types.Unify(calleeT.Params[i], argT)
		if !ok {
			declSpan := ast.Span{}
			if ident != nil {
				declSpan = c.declSpans[ident.Name]
			}
			c.errorfWithLabel(n.Args[i].SpanOf(), declSpan, "parameter declared here",
				"argument %d: cannot unify %s with parameter type %s", i+1, argT, calleeT.Params[i])
			continue
		}
		calleeT.Params[i] = unified
	}
	return calleeT.Return
}

func okNumericOrUnknown(t *types.Type) bool {
	return t == nil || t.IsNumeric() || t.Kind == types.KindAny || t.Kind == types.KindUnknown
}

func okBooleanOrUnknown(t *types.Type) bool {
	return t == nil || t.Kind == types.KindBoolean || t.Kind == types.KindAny || t.Kind == types.KindUnknown
}
