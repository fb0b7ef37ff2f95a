// Package types implements the value-type lattice used by the static
// analyzer and type checker: a small, closed set of primitive kinds
// plus four structural constructors (List, Map, Container, Action) and two
// escape hatches (Unknown, Any).
package types

import "fmt"

// Kind tags a Type's shape.
type Kind int

const (
	KindNumber Kind = iota
	KindText
	KindBoolean
	KindNothing
	KindList
	KindMap
	KindContainer
	KindAction
	KindUnknown // inference has not yet determined a type for this binding
	KindAny     // explicitly untyped; unifies with anything, propagates no errors
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindText:
		return "Text"
	case KindBoolean:
		return "Boolean"
	case KindNothing:
		return "Nothing"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindContainer:
		return "Container"
	case KindAction:
		return "Action"
	case KindUnknown:
		return "Unknown"
	case KindAny:
		return "Any"
	default:
		return "?"
	}
}

// Type is a value in the lattice. Elem/Key/Value are populated only for
// KindList/KindMap; Name only for KindContainer; Params/Return only for
// KindAction. Two Types are the same lattice element iff Equal reports
// true for them.
type Type struct {
	Kind   Kind
	Elem   *Type   // List element type
	Key    *Type   // Map key type
	Value  *Type   // Map value type
	Name   string  // Container name
	Params []*Type // Action parameter types
	Return *Type   // Action return type
}

var (
	Number  = &Type{Kind: KindNumber}
	Text    = &Type{Kind: KindText}
	Boolean = &Type{Kind: KindBoolean}
	Nothing = &Type{Kind: KindNothing}
	Unknown = &Type{Kind: KindUnknown}
	Any     = &Type{Kind: KindAny}
)

// List constructs the type of a list whose elements have type elem.
func List(elem *Type) *Type { return &Type{Kind: KindList, Elem: elem} }

// Map constructs the type of a map from key to value.
func Map(key, value *Type) *Type { return &Type{Kind: KindMap, Key: key, Value: value} }

// Container constructs the named type of instances of container name.
func Container(name string) *Type { return &Type{Kind: KindContainer, Name: name} }

// Action constructs the type of an action taking params and returning
// ret (Nothing if the action never provides a value).
func Action(params []*Type, ret *Type) *Type {
	return &Type{Kind: KindAction, Params: params, Return: ret}
}

// String renders a Type the way diagnostics report it to a script
// author: spec vocabulary, not Go syntax.
func (t *Type) String() string {
	if t == nil {
		return "Unknown"
	}
	switch t.Kind {
	case KindList:
		return fmt.Sprintf("List of %s", t.Elem.String())
	case KindMap:
		return fmt.Sprintf("Map of %s to %s", t.Key.String(), t.Value.String())
	case KindContainer:
		return t.Name
	case KindAction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		ret := "Nothing"
		if t.Return != nil {
			ret = t.Return.String()
		}
		s := "Action("
		for i, p := range parts {
			if i > 0 {
				s += ", "
			}
			s += p
		}
		return s + ") -> " + ret
	default:
		return t.Kind.String()
	}
}

// Equal reports whether t and other denote the same lattice element,
// structurally for List/Map/Action. Any and Unknown are each only equal
// to themselves; use Unify to test compatibility instead.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindList:
		return t.Elem.Equal(other.Elem)
	case KindMap:
		return t.Key.Equal(other.Key) && t.Value.Equal(other.Value)
	case KindContainer:
		return t.Name == other.Name
	case KindAction:
		if len(t.Params) != len(other.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(other.Params[i]) {
				return false
			}
		}
		return t.Return.Equal(other.Return)
	default:
		return true
	}
}

// IsNumeric reports whether t is Number (the only arithmetic-eligible
// kind; does not define arithmetic coercion for Text/Boolean).
func (t *Type) IsNumeric() bool { return t != nil && t.Kind == KindNumber }
