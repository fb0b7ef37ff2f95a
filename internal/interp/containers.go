package interp

import (
	"github.com/logbie/wfl/internal/ast"
)

// instantiate implements `new C with args...` ("Containers"):
// allocate a fresh property frame populated with defaults, then call
// `initialize` if the container (or one of its ancestors) declares it.
func (i *Interpreter) instantiate(n *ast.NewExpr, env *Environment) Value {
	decl, ok := i.containers[n.Container]
	if !ok {
		panicRT(n, newNilError("unknown container %q", n.Container))
	}
	frame := NewEnclosedEnvironment(i.global)
	i.populateProperties(decl, frame)
	inst := &Container{TypeName: n.Container, Frame: frame}
	i.bindActions(decl, inst)

	args := make([]Value, len(n.Args))
	for idx, a := range n.Args {
		args[idx] = i.eval(a, env)
	}
	if v, ok := frame.GetLocal("initialize"); ok {
		if init, ok := v.(*Action); ok {
			i.callAction(init, args, n)
		}
	}
	return inst
}

// populateProperties walks the container's inheritance chain from the
// root ancestor down, so a subclass's own property defaults shadow its
// parent's (matching ordinary field-initialization order).
func (i *Interpreter) populateProperties(decl *ast.ContainerDecl, frame *Environment) {
	if decl.Parent != "" {
		if parent, ok := i.containers[decl.Parent]; ok {
			i.populateProperties(parent, frame)
		}
	}
	for _, p := range decl.Properties {
		var v Value = Nothing{}
		if p.Default != nil {
			v = i.eval(p.Default, frame)
		}
		frame.Define(p.Name, v)
	}
}

// bindActions defines every action in decl's chain as a Value in the
// instance frame, closing over the frame itself — a dedicated frame
// that is also the lexical parent of method invocations on that
// instance — so a method body's identifier lookups resolve instance
// properties directly. A subclass's own action of the same
// name takes precedence over an ancestor's (defined later, so it
// overwrites the same frame key), which is what makes method lookup
// behave like an override.
func (i *Interpreter) bindActions(decl *ast.ContainerDecl, inst *Container) {
	if decl.Parent != "" {
		if parent, ok := i.containers[decl.Parent]; ok {
			i.bindActions(parent, inst)
		}
	}
	for _, a := range decl.Actions {
		inst.Frame.Define(a.Name, &Action{Name: a.Name, Params: a.Params, Body: a.Body, Closure: inst.Frame})
	}
}

// memberValue resolves `Object.Property` member access: a bound action
// or a property value, both stored directly in the instance's property
// frame by bindActions/populateProperties.
func (i *Interpreter) memberValue(n *ast.MemberExpr, env *Environment) Value {
	obj := i.eval(n.Object, env)
	c, ok := obj.(*Container)
	if !ok {
		panicRT(n, newTypeError("member access on a %s, not a Container", obj.Type()))
	}
	v, ok := c.Frame.GetLocal(n.Property)
	if !ok {
		panicRT(n, newNilError("%s has no property or action %q", c.TypeName, n.Property))
	}
	return v
}
