package interp

import (
	"github.com/logbie/wfl/internal/ast"
)

// eval evaluates e to a Value. Operand order is strictly
// left-to-right.
func (i *Interpreter) eval(e ast.Expression, env *Environment) Value {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		return Number(n.Value)
	case *ast.TextLiteral:
		return Text(n.Value)
	case *ast.BoolLiteral:
		return Boolean(n.Value)
	case *ast.NothingLiteral:
		return Nothing{}
	case *ast.Identifier:
		v, ok := env.Get(n.Name)
		if !ok {
			panicRT(n, newNilError("undefined name %q", n.Name))
		}
		return v
	case *ast.BinaryExpr:
		return i.evalBinary(n, env)
	case *ast.UnaryExpr:
		return i.evalUnary(n, env)
	case *ast.ConcatExpr:
		left := i.eval(n.Left, env)
		right := i.eval(n.Right, env)
		return Text(valueToText(left) + valueToText(right))
	case *ast.CallExpr:
		return i.evalCall(n, env)
	case *ast.MemberExpr:
		return i.memberValue(n, env)
	case *ast.IndexExpr:
		return i.evalIndex(n, env)
	case *ast.ListLiteral:
		elems := make([]Value, len(n.Elements))
		for idx, el := range n.Elements {
			elems[idx] = i.eval(el, env)
		}
		return &List{Elements: elems}
	case *ast.MapLiteral:
		m := NewMap()
		for idx := range n.Keys {
			k := valueToText(i.eval(n.Keys[idx], env))
			m.Set(k, i.eval(n.Values[idx], env))
		}
		return m
	case *ast.NewExpr:
		return i.instantiate(n, env)
	case *ast.MatchExpr:
		return i.evalMatch(n, env)
	default:
		panicRT(e, newTypeError("unsupported expression node %T", e))
		return Nothing{}
	}
}

func (i *Interpreter) evalUnary(n *ast.UnaryExpr, env *Environment) Value {
	v := i.eval(n.Operand, env)
	switch n.Op {
	case "not":
		b, ok := Truthy(v)
		if !ok {
			panicRT(n, newTypeError("not requires Boolean, got %s", v.Type()))
		}
		return Boolean(!b)
	case "-", "minus":
		num, ok := v.(Number)
		if !ok {
			panicRT(n, newTypeError("unary minus requires Number, got %s", v.Type()))
		}
		return -num
	default:
		panicRT(n, newTypeError("unsupported unary operator %q", n.Op))
		return Nothing{}
	}
}

func (i *Interpreter) evalBinary(n *ast.BinaryExpr, env *Environment) Value {
	// and/or short-circuit, so the right operand is only evaluated when
	// it can change the result (left-to-right ordering rule
	// still holds: the left operand is always evaluated first).
	if n.Op == "and" {
		l := i.eval(n.Left, env)
		lb, ok := Truthy(l)
		if !ok {
			panicRT(n.Left, newTypeError("and requires Boolean, got %s", l.Type()))
		}
		if !lb {
			return Boolean(false)
		}
		r := i.eval(n.Right, env)
		rb, ok := Truthy(r)
		if !ok {
			panicRT(n.Right, newTypeError("and requires Boolean, got %s", r.Type()))
		}
		return Boolean(rb)
	}
	if n.Op == "or" {
		l := i.eval(n.Left, env)
		lb, ok := Truthy(l)
		if !ok {
			panicRT(n.Left, newTypeError("or requires Boolean, got %s", l.Type()))
		}
		if lb {
			return Boolean(true)
		}
		r := i.eval(n.Right, env)
		rb, ok := Truthy(r)
		if !ok {
			panicRT(n.Right, newTypeError("or requires Boolean, got %s", r.Type()))
		}
		return Boolean(rb)
	}

	left := i.eval(n.Left, env)
	right := i.eval(n.Right, env)

	switch n.Op {
	case "plus", "+":
		return arith(n, left, right, func(a, b Number) Number { return a + b })
	case "minus", "-":
		return arith(n, left, right, func(a, b Number) Number { return a - b })
	case "times", "*":
		return arith(n, left, right, func(a, b Number) Number { return a * b })
	case "divided by", "/":
		r, ok := right.(Number)
		if ok && r == 0 {
			panicRT(n, newArithmeticError("division by zero"))
		}
		return arith(n, left, right, func(a, b Number) Number { return a / b })
	case "is equal to", "==":
		return Boolean(valuesEqual(left, right))
	case "is not equal to", "<>":
		return Boolean(!valuesEqual(left, right))
	case "is greater than", ">":
		return compare(n, left, right, func(a, b Number) bool { return a > b })
	case "is less than", "<":
		return compare(n, left, right, func(a, b Number) bool { return a < b })
	case ">=":
		return compare(n, left, right, func(a, b Number) bool { return a >= b })
	case "<=":
		return compare(n, left, right, func(a, b Number) bool { return a <= b })
	default:
		panicRT(n, newTypeError("unsupported binary operator %q", n.Op))
		return Nothing{}
	}
}

func arith(n *ast.BinaryExpr, left, right Value, op func(a, b Number) Number) Value {
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		panicRT(n, newArithmeticError("arithmetic requires Number operands, got %s and %s", left.Type(), right.Type()))
	}
	return op(l, r)
}

func compare(n *ast.BinaryExpr, left, right Value, op func(a, b Number) bool) Value {
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		panicRT(n, newComparisonError("comparison requires Number operands, got %s and %s", left.Type(), right.Type()))
	}
	return Boolean(op(l, r))
}

// valuesEqual implements `is equal to`/`==` structurally for the
// primitive kinds and by reference for the compound ones (List/Map/
// Container/Action/Handle share identity the way two bindings to "the
// same list" do, "Interior mutability of collections").
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Text:
		bv, ok := b.(Text)
		return ok && av == bv
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Nothing:
		_, ok := b.(Nothing)
		return ok
	case *List:
		bv, ok := b.(*List)
		return ok && av == bv
	case *Map:
		bv, ok := b.(*Map)
		return ok && av == bv
	case *Container:
		bv, ok := b.(*Container)
		return ok && av == bv
	case *Handle:
		bv, ok := b.(*Handle)
		return ok && av == bv
	case *Action:
		bv, ok := b.(*Action)
		return ok && av == bv
	default:
		return false
	}
}

func (i *Interpreter) evalIndex(n *ast.IndexExpr, env *Environment) Value {
	obj := i.eval(n.Object, env)
	idx := i.eval(n.Index, env)
	switch coll := obj.(type) {
	case *List:
		num, ok := idx.(Number)
		if !ok {
			panicRT(n.Index, newTypeError("list index must be Number, got %s", idx.Type()))
		}
		// 1-based indexing, matching the natural-language register of
		// every other wfl construct (`count from 1 to N`, not 0).
		pos := int(num) - 1
		if pos < 0 || pos >= len(coll.Elements) {
			panicRT(n, newIndexError("index %v out of bounds for a list of length %d", num, len(coll.Elements)))
		}
		return coll.Elements[pos]
	case *Map:
		key := valueToText(idx)
		v, ok := coll.Get(key)
		if !ok {
			panicRT(n, newIndexError("missing map key %q", key))
		}
		return v
	default:
		panicRT(n, newTypeError("cannot index a %s", obj.Type()))
		return Nothing{}
	}
}

func (i *Interpreter) evalCall(n *ast.CallExpr, env *Environment) Value {
	args := make([]Value, len(n.Args))
	for idx, a := range n.Args {
		args[idx] = i.eval(a, env)
	}

	if member, ok := n.Callee.(*ast.MemberExpr); ok {
		obj := i.eval(member.Object, env)
		c, ok := obj.(*Container)
		if !ok {
			panicRT(n, newTypeError("method call on a %s, not a Container", obj.Type()))
		}
		v, ok := c.Frame.GetLocal(member.Property)
		if !ok {
			panicRT(n, newNilError("%s has no action %q", c.TypeName, member.Property))
		}
		action, ok := v.(*Action)
		if !ok {
			panicRT(n, newTypeError("%s's %q is not an action", c.TypeName, member.Property))
		}
		return i.callAction(action, args, n)
	}

	ident, ok := n.Callee.(*ast.Identifier)
	if !ok {
		panicRT(n, newTypeError("expression is not callable"))
	}
	v, ok := env.Get(ident.Name)
	if !ok {
		panicRT(n, newNilError("undefined action %q", ident.Name))
	}
	action, ok := v.(*Action)
	if !ok {
		panicRT(n, newTypeError("%q is not an action", ident.Name))
	}
	return i.callAction(action, args, n)
}
