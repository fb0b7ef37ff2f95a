package interp

import (
	"io"
	"net/http"
	"os"

	"github.com/logbie/wfl/internal/ast"
)

// execOpen implements `open file/url Source as H`. Opening
// a name that is already open (and not yet closed) is a hard runtime
// error rather than a silent no-op, consistent with every other
// double-open-without-close case the runtime rejects.
func (i *Interpreter) execOpen(n *ast.OpenStatement, env *Environment) (Value, ControlFlow) {
	if existing, ok := i.handles[n.Handle]; ok && !existing.Closed {
		panicRT(n, &RuntimeError{Kind: "resource", Message: "handle \"" + n.Handle + "\" is already open"})
	}
	source := valueToText(i.eval(n.Source, env))

	var h *Handle
	switch n.Kind {
	case "file":
		f, err := os.OpenFile(source, os.O_RDWR|os.O_CREATE, 0o644)
		if err != nil {
			panicRT(n, &RuntimeError{Kind: "io", Message: err.Error()})
		}
		h = &Handle{Name: n.Handle, Kind: "file", Closer: f}
	case "url":
		resp, err := http.Get(source)
		if err != nil {
			panicRT(n, &RuntimeError{Kind: "io", Message: err.Error()})
		}
		h = &Handle{Name: n.Handle, Kind: "url", Closer: resp.Body}
	default:
		panicRT(n, newTypeError("unknown open kind %q", n.Kind))
	}
	i.handles[n.Handle] = h
	i.resources = append(i.resources, h)
	env.Define(n.Handle, h)
	return Nothing{}, none
}

func (i *Interpreter) resolveHandle(node ast.Node, env *Environment, name string) *Handle {
	v, ok := env.Get(name)
	if !ok {
		panicRT(node, newNilError("undefined handle %q", name))
	}
	h, ok := v.(*Handle)
	if !ok {
		panicRT(node, newTypeError("%q is not a handle", name))
	}
	if h.Closed {
		panicRT(node, &RuntimeError{Kind: "resource", Message: "handle \"" + name + "\" is closed"})
	}
	return h
}

func (i *Interpreter) execClose(n *ast.CloseStatement, env *Environment) (Value, ControlFlow) {
	h := i.resolveHandle(n, env, n.Handle)
	if h.Closer != nil {
		_ = h.Closer.Close()
	}
	h.Closed = true
	delete(i.handles, n.Handle)
	return Nothing{}, none
}

func (i *Interpreter) execRead(n *ast.ReadStatement, env *Environment) (Value, ControlFlow) {
	h := i.resolveHandle(n, env, n.Handle)
	r, ok := h.Closer.(io.Reader)
	if !ok {
		panicRT(n, newTypeError("handle %q does not support reading", n.Handle))
	}
	data, err := io.ReadAll(r)
	if err != nil {
		panicRT(n, &RuntimeError{Kind: "io", Message: err.Error()})
	}
	env.Define(n.Target, Text(decodeHandleBytes(data)))
	return Nothing{}, none
}

func (i *Interpreter) execAppend(n *ast.AppendStatement, env *Environment) (Value, ControlFlow) {
	h := i.resolveHandle(n, env, n.Handle)
	w, ok := h.Closer.(io.Writer)
	if !ok {
		panicRT(n, newTypeError("handle %q does not support writing", n.Handle))
	}
	content := valueToText(i.eval(n.Value, env))
	if _, err := io.WriteString(w, content); err != nil {
		panicRT(n, &RuntimeError{Kind: "io", Message: err.Error()})
	}
	return Nothing{}, none
}

func (i *Interpreter) execWrite(n *ast.WriteStatement, env *Environment) (Value, ControlFlow) {
	h := i.resolveHandle(n, env, n.Handle)
	f, ok := h.Closer.(*os.File)
	if ok {
		if err := f.Truncate(0); err != nil {
			panicRT(n, &RuntimeError{Kind: "io", Message: err.Error()})
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			panicRT(n, &RuntimeError{Kind: "io", Message: err.Error()})
		}
	}
	w, ok := h.Closer.(io.Writer)
	if !ok {
		panicRT(n, newTypeError("handle %q does not support writing", n.Handle))
	}
	content := valueToText(i.eval(n.Value, env))
	if _, err := io.WriteString(w, content); err != nil {
		panicRT(n, &RuntimeError{Kind: "io", Message: err.Error()})
	}
	return Nothing{}, none
}
