package interp

import (
	"fmt"
	"io"
)

// TraceSink receives execution-trace events. The interpreter emits four
// kinds: "declare" and "assign" for variable bindings, and "call" and
// "return" for script-declared action invocations. Expression
// evaluation, control-flow decisions and block entry/exit are not
// traced. A production run leaves Tracer nil, so
// Interpreter.trace is a single nil-check away from being a true
// no-op rather than a call through an empty interface implementation.
type TraceSink interface {
	Event(kind, detail string)
}

func (i *Interpreter) trace(kind, detail string) {
	if i.Tracer == nil {
		return
	}
	i.Tracer.Event(kind, detail)
}

// NopSink discards every trace event. It exists so a caller can pass an
// explicit, named "off" sink instead of relying on a nil Tracer, e.g.
// when a flag toggles between NopSink and WriterSink at the same call
// site rather than conditionally assigning nil.
type NopSink struct{}

func (NopSink) Event(string, string) {}

// WriterSink writes each trace event as a single "kind: detail" line to
// the wrapped io.Writer ("Execution tracing"), matching the
// teacher's own plain-fmt-to-io.Writer logging style rather than
// introducing a structured logging library just for this.
type WriterSink struct {
	Out io.Writer
}

func (w WriterSink) Event(kind, detail string) {
	fmt.Fprintf(w.Out, "%s: %s\n", kind, detail)
}
