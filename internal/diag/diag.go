// Package diag implements the diagnostic engine shared by every stage of
// the wfl front-end: spans, severities, and deterministic rendering of
// error/warning/note records with source context.
package diag

import "fmt"

// Severity classifies a Diagnostic for filtering and rendering.
type Severity int

const (
	Note Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Kind tags a Diagnostic with its error-taxonomy category. It does not
// affect rendering; it lets callers (tests, the CLI exit-code mapper)
// distinguish lexical/syntactic/semantic/type/runtime/resource
// diagnostics without string-matching messages.
type Kind string

const (
	KindLexical   Kind = "lexical"
	KindSyntactic Kind = "syntactic"
	KindSemantic  Kind = "semantic"
	KindType      Kind = "type"
	KindRuntime   Kind = "runtime"
	KindResource  Kind = "resource"
)

// Span identifies a byte range within a registered source file.
type Span struct {
	File  int
	Start int
	End   int
}

// Label attaches a short message to a secondary span, e.g. pointing back
// at a prior declaration while the primary span marks the offending use.
type Label struct {
	Span    Span
	Message string
}

// Diagnostic is a single renderable record: a primary message with a span,
// plus optional secondary labels and help text.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Span     Span
	Message  string
	Labels   []Label
	Help     string
}

// Bag accumulates diagnostics produced by one pipeline stage.
type Bag struct {
	items []Diagnostic
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Errorf appends an Error-severity diagnostic built from a format string.
func (b *Bag) Errorf(kind Kind, span Span, format string, args ...any) {
	b.Add(Diagnostic{Severity: Error, Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)})
}

// Warnf appends a Warning-severity diagnostic built from a format string.
func (b *Bag) Warnf(kind Kind, span Span, format string, args ...any) {
	b.Add(Diagnostic{Severity: Warning, Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)})
}

// All returns every diagnostic added to the bag, in insertion order.
func (b *Bag) All() []Diagnostic {
	return b.items
}

// HasErrors reports whether the bag contains any Error-severity diagnostic.
// Per propagation policy, a stage with any error-kind diagnostic
// blocks the next stage from running.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Len reports how many diagnostics are in the bag.
func (b *Bag) Len() int {
	return len(b.items)
}

// Merge appends every diagnostic from other into b, preserving order.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}
