package interp

import (
	"fmt"

	"github.com/logbie/wfl/internal/ast"
)

// RuntimeError is the structured error family raised during
// evaluation (the "runtime" diagnostic kind): one tagged struct rather
// than a family of typed errors per failure mode. A Kind discriminator
// plus a free-form Message covers the handful of operator/conversion
// cases wfl's value lattice has, while staying catchable as a single
// Go error type at the `try`/`catch` boundary.
type RuntimeError struct {
	Kind    string // "conversion", "arithmetic", "comparison", "index", "nil", "type", "resource", "io", "cancelled"
	Message string
	Span    ast.Span
}

func (e *RuntimeError) Error() string { return e.Message }

func newArithmeticError(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: "arithmetic", Message: fmt.Sprintf(format, args...)}
}

func newConversionError(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: "conversion", Message: fmt.Sprintf(format, args...)}
}

func newComparisonError(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: "comparison", Message: fmt.Sprintf(format, args...)}
}

func newIndexError(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: "index", Message: fmt.Sprintf(format, args...)}
}

func newNilError(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: "nil", Message: fmt.Sprintf(format, args...)}
}

func newTypeError(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: "type", Message: fmt.Sprintf(format, args...)}
}

// panicRT raises a RuntimeError anchored at node's span through a Go
// panic, caught at the nearest `try` boundary (or at Run's top level)
// by recoverRuntime. Using panic/recover for non-local unwinding avoids
// threading a sentinel error field through every nested eval call.
func panicRT(node ast.Node, err *RuntimeError) {
	err.Span = node.SpanOf()
	panic(err)
}

// recoverRuntime converts a panicking *RuntimeError into a returned
// error, and re-panics anything else (a genuine bug, not a modeled
// runtime failure).
func recoverRuntime(errOut *error) {
	if r := recover(); r != nil {
		if rt, ok := r.(*RuntimeError); ok {
			*errOut = rt
			return
		}
		panic(r)
	}
}
