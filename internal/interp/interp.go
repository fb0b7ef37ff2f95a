package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/logbie/wfl/internal/ast"
)

// Interpreter is the tree-walking evaluator. It is single-threaded and
// synchronous: one Interpreter must never be shared between
// goroutines, since it drives a single env/output pair through one
// Eval call stack at a time.
type Interpreter struct {
	global     *Environment
	containers map[string]*ast.ContainerDecl
	handles    map[string]*Handle // open handle name -> Handle, for the reopen-without-close check
	resources  []*Handle          // every handle ever opened, for teardown accounting
	loopDepth  int                // loops currently executing, so the outermost one consumes an Exit

	Out    io.Writer
	Tracer TraceSink
	Cancel *CancellationToken
}

// New creates an Interpreter whose output goes to out (os.Stdout if
// nil).
func New(out io.Writer) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	return &Interpreter{
		global:     NewEnvironment(),
		containers: map[string]*ast.ContainerDecl{},
		handles:    map[string]*Handle{},
		Out:        out,
	}
}

// RegisterNativeAction binds name to fn in the global frame, making it
// callable from script source exactly like a script-declared action.
func (i *Interpreter) RegisterNativeAction(name string, fn NativeFunc) {
	i.global.Define(name, &Action{Name: name, Native: fn})
}

// Global exposes the root Environment, for a host or a built-ins
// package that wants to seed additional bindings before Run.
func (i *Interpreter) Global() *Environment { return i.global }

// Run hoists every top-level action and container declaration, then
// executes the program's statements in order, returning the value of
// the last top-level statement executed (Nothing unless it is an
// expression statement), or the value of a top-level `provide`, and
// any error.
// A runtime failure that is never caught by a `try` surfaces here as a
// *RuntimeError ("Runtime errors surface as a single
// diagnostic and terminate the program").
func (i *Interpreter) Run(prog *ast.Program) (result Value, err error) {
	defer recoverRuntime(&err)
	defer i.closeLeakedHandles()

	i.hoist(prog.Statements, i.global)
	v, cf := i.execBlock(prog.Statements, i.global)
	if cf.Kind == FlowReturn {
		return cf.Value, nil
	}
	return v, nil
}

// closeLeakedHandles runs at interpreter teardown ("Resource
// management"): any handle still open is closed, with a warning
// written to Out rather than silently dropped.
func (i *Interpreter) closeLeakedHandles() {
	for _, h := range i.resources {
		if h.Closed {
			continue
		}
		if h.Closer != nil {
			_ = h.Closer.Close()
		}
		h.Closed = true
		fmt.Fprintf(i.Out, "warning: handle %q was not closed before teardown\n", h.Name)
	}
}

// hoist pre-declares every action and container at this scope so a
// forward reference to a later declaration within the same block
// resolves (used for the top-level program scope; nested blocks do not
// hoist, matching ordinary statement-order execution).
func (i *Interpreter) hoist(stmts []ast.Statement, env *Environment) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.ActionDecl:
			env.Define(n.Name, &Action{Name: n.Name, Params: n.Params, Body: n.Body, Closure: env})
		case *ast.ContainerDecl:
			i.containers[n.Name] = n
		}
	}
}

// execBlock runs stmts in source order in env, stopping as soon as one
// yields a non-None control-flow result.
func (i *Interpreter) execBlock(stmts []ast.Statement, env *Environment) (Value, ControlFlow) {
	var last Value = Nothing{}
	for _, s := range stmts {
		i.checkCancelled(s)
		v, cf := i.execStmt(s, env)
		if cf.Kind != FlowNone {
			return v, cf
		}
		last = v
	}
	return last, none
}

func (i *Interpreter) checkCancelled(node ast.Node) {
	if i.Cancel != nil && i.Cancel.IsCancelled() {
		panicRT(node, &RuntimeError{Kind: "cancelled", Message: "execution cancelled"})
	}
}

func (i *Interpreter) execStmt(s ast.Statement, env *Environment) (v Value, cf ControlFlow) {
	switch s.(type) {
	case *ast.WhileStatement, *ast.RepeatWhileStatement, *ast.RepeatUntilStatement,
		*ast.ForeverStatement, *ast.CountStatement, *ast.ForEachStatement:
		// An Exit leaves every nested loop and is consumed by the
		// outermost one, so execution resumes after that loop.
		i.loopDepth++
		defer func() {
			i.loopDepth--
			if i.loopDepth == 0 && cf.Kind == FlowExit {
				v, cf = Nothing{}, none
			}
		}()
	}

	switch n := s.(type) {
	case *ast.BlockStatement:
		return i.execBlock(n.Statements, NewEnclosedEnvironment(env))

	case *ast.VarDecl:
		v := i.eval(n.Value, env)
		env.Define(n.Name, v)
		i.trace("declare", n.Name)
		return Nothing{}, none

	case *ast.Assignment:
		v := i.eval(n.Value, env)
		if !env.Set(n.Name, v) {
			panicRT(n, newNilError("assignment to undeclared name %q", n.Name))
		}
		i.trace("assign", n.Name)
		return Nothing{}, none

	case *ast.DisplayStmt:
		v := i.eval(n.Value, env)
		fmt.Fprintln(i.Out, valueToText(v))
		return Nothing{}, none

	case *ast.IfStatement:
		cond := i.eval(n.Condition, env)
		b, ok := Truthy(cond)
		if !ok {
			panicRT(n.Condition, newTypeError("condition must be Boolean, got %s", cond.Type()))
		}
		if b {
			return i.execBlock(n.Consequence.Statements, NewEnclosedEnvironment(env))
		}
		if n.Alternative != nil {
			return i.execStmt(n.Alternative, env)
		}
		return Nothing{}, none

	case *ast.WhileStatement:
		return i.execLoop(env, func(inner *Environment) (bool, error) {
			cond := i.eval(n.Condition, inner)
			b, ok := Truthy(cond)
			if !ok {
				return false, newTypeError("condition must be Boolean, got %s", cond.Type())
			}
			return b, nil
		}, n.Body, n)

	case *ast.RepeatWhileStatement:
		first := true
		return i.execLoop(env, func(inner *Environment) (bool, error) {
			if first {
				first = false
				return true, nil
			}
			cond := i.eval(n.Condition, inner)
			b, ok := Truthy(cond)
			if !ok {
				return false, newTypeError("condition must be Boolean, got %s", cond.Type())
			}
			return b, nil
		}, n.Body, n)

	case *ast.RepeatUntilStatement:
		first := true
		return i.execLoop(env, func(inner *Environment) (bool, error) {
			if first {
				first = false
				return true, nil
			}
			cond := i.eval(n.Condition, inner)
			b, ok := Truthy(cond)
			if !ok {
				return false, newTypeError("condition must be Boolean, got %s", cond.Type())
			}
			return !b, nil
		}, n.Body, n)

	case *ast.ForeverStatement:
		return i.execLoop(env, func(inner *Environment) (bool, error) { return true, nil }, n.Body, n)

	case *ast.CountStatement:
		return i.execCount(n, env)

	case *ast.ForEachStatement:
		return i.execForEach(n, env)

	case *ast.BreakStatement:
		return Nothing{}, ControlFlow{Kind: FlowBreak}

	case *ast.ContinueStatement:
		return Nothing{}, ControlFlow{Kind: FlowContinue}

	case *ast.ExitStatement:
		return Nothing{}, ControlFlow{Kind: FlowExit}

	case *ast.ReturnStatement:
		var v Value = Nothing{}
		if n.Value != nil {
			v = i.eval(n.Value, env)
		}
		return v, ControlFlow{Kind: FlowReturn, Value: v}

	case *ast.ExpressionStatement:
		return i.eval(n.Expr, env), none

	case *ast.ActionDecl:
		env.Define(n.Name, &Action{Name: n.Name, Params: n.Params, Body: n.Body, Closure: env})
		return Nothing{}, none

	case *ast.ContainerDecl:
		i.containers[n.Name] = n
		return Nothing{}, none

	case *ast.TryStatement:
		return i.execTry(n, env)

	case *ast.OpenStatement:
		return i.execOpen(n, env)

	case *ast.CloseStatement:
		return i.execClose(n, env)

	case *ast.ReadStatement:
		return i.execRead(n, env)

	case *ast.AppendStatement:
		return i.execAppend(n, env)

	case *ast.WriteStatement:
		return i.execWrite(n, env)

	case *ast.WaitForStatement:
		i.eval(n.Expr, env)
		return Nothing{}, none

	default:
		panic(fmt.Sprintf("interp: unhandled statement type %T", s))
	}
}

// execLoop drives the shared body of while/repeat-while/repeat-until/
// forever: test the condition (in a fresh per-iteration frame so a
// `store` inside the body does not leak across iterations), run the
// body, and apply the loop-signal table.
func (i *Interpreter) execLoop(env *Environment, cond func(*Environment) (bool, error), body *ast.BlockStatement, node ast.Node) (Value, ControlFlow) {
	for {
		i.checkCancelled(node)
		inner := NewEnclosedEnvironment(env)
		ok, err := cond(inner)
		if err != nil {
			if rt, isRT := err.(*RuntimeError); isRT {
				panicRT(node, rt)
			}
			panicRT(node, newTypeError("%s", err.Error()))
		}
		if !ok {
			return Nothing{}, none
		}
		_, cf := i.execBlock(body.Statements, inner)
		stop, propagate := loopSignal(cf)
		if stop {
			return propagate.Value, propagate
		}
	}
}

func (i *Interpreter) execCount(n *ast.CountStatement, env *Environment) (Value, ControlFlow) {
	from := i.evalNumber(n.From, env)
	to := i.evalNumber(n.To, env)
	step := Number(1)
	if n.Step != nil {
		step = i.evalNumber(n.Step, env)
	}
	if step == 0 {
		panicRT(n, newArithmeticError("count step must not be zero"))
	}
	for v := from; (step > 0 && v <= to) || (step < 0 && v >= to); v += step {
		i.checkCancelled(n)
		inner := NewEnclosedEnvironment(env)
		inner.Define(n.Var, v)
		_, cf := i.execBlock(n.Body.Statements, inner)
		stop, propagate := loopSignal(cf)
		if stop {
			return propagate.Value, propagate
		}
	}
	return Nothing{}, none
}

func (i *Interpreter) execForEach(n *ast.ForEachStatement, env *Environment) (Value, ControlFlow) {
	iterable := i.eval(n.Iterable, env)
	switch coll := iterable.(type) {
	case *List:
		for _, el := range coll.Elements {
			i.checkCancelled(n)
			inner := NewEnclosedEnvironment(env)
			inner.Define(n.Var, el)
			_, cf := i.execBlock(n.Body.Statements, inner)
			stop, propagate := loopSignal(cf)
			if stop {
				return propagate.Value, propagate
			}
		}
	case *Map:
		for _, k := range coll.Keys() {
			i.checkCancelled(n)
			inner := NewEnclosedEnvironment(env)
			inner.Define(n.Var, Text(k))
			_, cf := i.execBlock(n.Body.Statements, inner)
			stop, propagate := loopSignal(cf)
			if stop {
				return propagate.Value, propagate
			}
		}
	default:
		panicRT(n.Iterable, newTypeError("for each requires a List or Map, got %s", iterable.Type()))
	}
	return Nothing{}, none
}

func (i *Interpreter) execTry(n *ast.TryStatement, env *Environment) (result Value, cf ControlFlow) {
	caught, rtErr := i.runCatchable(n.Body.Statements, env, &result, &cf)
	if !caught {
		return result, cf
	}
	inner := NewEnclosedEnvironment(env)
	if n.CatchVar != "" {
		inner.Define(n.CatchVar, Text(rtErr.Message))
	}
	v, c := i.execBlock(n.Catch.Statements, inner)
	return v, c
}

// runCatchable executes body, recovering a *RuntimeError panic:
// `try`/`catch` within the script intercepts runtime errors but not
// lexical/syntactic/type errors, because those already stopped the
// pipeline before Run was called.
func (i *Interpreter) runCatchable(stmts []ast.Statement, env *Environment, result *Value, cf *ControlFlow) (caught bool, rtErr *RuntimeError) {
	defer func() {
		if r := recover(); r != nil {
			rt, ok := r.(*RuntimeError)
			if !ok {
				panic(r)
			}
			caught = true
			rtErr = rt
		}
	}()
	v, flow := i.execBlock(stmts, NewEnclosedEnvironment(env))
	*result, *cf = v, flow
	return false, nil
}

// callAction invokes action with args: invocation consumes Return(v)
// and yields v. A Break/Continue/Exit escaping the body is surfaced as
// a runtime error rather than silently propagated past the call
// boundary; neither the analyzer nor the type checker rejects a
// loop-control statement outside a loop.
func (i *Interpreter) callAction(action *Action, args []Value, node ast.Node) Value {
	if action.Native != nil {
		v, err := action.Native(i, args)
		if err != nil {
			if rt, ok := err.(*RuntimeError); ok {
				panicRT(node, rt)
			}
			panicRT(node, newTypeError("%s", err.Error()))
		}
		return v
	}
	if len(args) != len(action.Params) {
		panicRT(node, newTypeError("action %q expects %d argument(s), got %d", action.Name, len(action.Params), len(args)))
	}
	callEnv := NewEnclosedEnvironment(action.Closure)
	for idx, p := range action.Params {
		callEnv.Define(p, args[idx])
	}
	i.trace("call", action.Name)
	_, cf := i.execBlock(action.Body.Statements, callEnv)
	i.trace("return", action.Name)
	switch cf.Kind {
	case FlowReturn:
		return cf.Value
	case FlowNone:
		return Nothing{}
	default:
		panicRT(node, newTypeError("break/continue/exit escaped action %q", action.Name))
		return Nothing{}
	}
}

func (i *Interpreter) evalNumber(e ast.Expression, env *Environment) Number {
	v := i.eval(e, env)
	n, ok := v.(Number)
	if !ok {
		panicRT(e, newTypeError("expected Number, got %s", v.Type()))
	}
	return n
}

// valueToText renders any Value for display or concatenation:
// concatenation coerces both sides to Text.
func valueToText(v Value) string {
	return v.String()
}
