// Package interp implements the tree-walking evaluator: a
// Value/ControlFlow pair threaded through every statement, lexical
// Environment frames, and the root frame of built-ins
// registered by internal/builtins or a host via RegisterNativeAction.
package interp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/logbie/wfl/internal/ast"
)

// Value is the runtime representation of every wfl value: Number,
// Text, Boolean, Nothing, List, Map, a Container instance, an Action
// (closure), or an opaque resource Handle.
type Value interface {
	Type() string
	String() string
}

// Number is a 64-bit float, the language's single numeric type.
type Number float64

func (Number) Type() string { return "Number" }
func (n Number) String() string {
	if n == Number(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// Text is a string value.
type Text string

func (Text) Type() string     { return "Text" }
func (t Text) String() string { return string(t) }

// Boolean is a true/false value.
type Boolean bool

func (Boolean) Type() string     { return "Boolean" }
func (b Boolean) String() string { return strconv.FormatBool(bool(b)) }

// Nothing is the language's unit/null value.
type Nothing struct{}

func (Nothing) Type() string   { return "Nothing" }
func (Nothing) String() string { return "nothing" }

// List is an ordered, mutable sequence of Values.
type List struct {
	Elements []Value
}

func (*List) Type() string { return "List" }
func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Map is an insertion-ordered key -> Value table ("for Map,
// iteration yields keys in insertion order").
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap creates an empty, insertion-ordered Map.
func NewMap() *Map {
	return &Map{values: map[string]Value{}}
}

func (*Map) Type() string { return "Map" }

func (m *Map) String() string {
	parts := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, m.values[k].String()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Get looks up key, reporting whether it is present.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set inserts or updates key, appending it to the insertion order only
// the first time it is seen.
func (m *Map) Set(key string, v Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Keys returns the map's keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len reports the number of entries in the map.
func (m *Map) Len() int { return len(m.keys) }

// SortedKeys returns the map's keys sorted lexically rather than in
// insertion order.
func (m *Map) SortedKeys() []string {
	out := m.Keys()
	sort.Strings(out)
	return out
}

// Container is a runtime instance of a container type (spec glossary
// "Container, equivalent to class"): its properties live in a
// dedicated Environment frame that is also the lexical parent of any
// method invocation on the instance.
type Container struct {
	TypeName string
	Frame    *Environment
}

func (*Container) Type() string     { return "Container" }
func (c *Container) String() string { return "<" + c.TypeName + ">" }

// Action is a callable closure: the declaration plus the Environment it
// closes over ("lexical parent"). Native is set instead of
// Body for a host-registered action (RegisterNativeAction).
type Action struct {
	Name    string
	Params  []string
	Body    *ast.BlockStatement
	Closure *Environment
	Native  NativeFunc
}

func (*Action) Type() string     { return "Action" }
func (a *Action) String() string { return "<action " + a.Name + ">" }

// NativeFunc is the signature a host or built-in package registers
// under an action name ("RegisterNativeAction").
type NativeFunc func(i *Interpreter, args []Value) (Value, error)

// Handle is an opaque resource value produced by `open` ("the
// handle as an opaque Value holding a resource"): a file or URL stream,
// tracked on the interpreter's resource list for teardown warnings.
type Handle struct {
	Name   string
	Kind   string // "file" or "url"
	Closer interface{ Close() error }
	Closed bool
}

func (*Handle) Type() string     { return "Handle" }
func (h *Handle) String() string { return "<handle " + h.Name + ">" }

// Truthy reports whether a Value counts as true in a condition context.
// Only Boolean participates in truthiness; anything else is a type
// error raised by the caller (the checker should have already rejected
// this at compile time, so this is a defense against a host embedding
// un-type-checked ASTs directly).
func Truthy(v Value) (bool, bool) {
	b, ok := v.(Boolean)
	return bool(b), ok
}
