package builtins

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"

	"github.com/logbie/wfl/internal/interp"
)

func registerList(i *interp.Interpreter) {
	i.RegisterNativeAction("push", biPush)
	i.RegisterNativeAction("pop", biPop)
	i.RegisterNativeAction("first", biFirst)
	i.RegisterNativeAction("last", biLast)
	i.RegisterNativeAction("contains", biContains)
	i.RegisterNativeAction("sort_naturally", biSortNaturally)
	i.RegisterNativeAction("keys", biKeys)
	i.RegisterNativeAction("values", biValues)
}

func oneList(name string, args []interp.Value) (*interp.List, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
	}
	l, ok := args[0].(*interp.List)
	if !ok {
		return nil, fmt.Errorf("%s expects a List, got %s", name, args[0].Type())
	}
	return l, nil
}

// push(list, value): Nothing
// Appends value to list in place ("interior mutability of
// collections": every binding to this list observes the append).
func biPush(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("push expects 2 arguments, got %d", len(args))
	}
	l, ok := args[0].(*interp.List)
	if !ok {
		return nil, fmt.Errorf("push expects a List as the first argument, got %s", args[0].Type())
	}
	l.Elements = append(l.Elements, args[1])
	return interp.Nothing{}, nil
}

// pop(list): Value
// Removes and returns the last element; a runtime error on an empty
// list rather than a silent Nothing.
func biPop(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	l, err := oneList("pop", args)
	if err != nil {
		return nil, err
	}
	if len(l.Elements) == 0 {
		return nil, fmt.Errorf("pop: list is empty")
	}
	last := l.Elements[len(l.Elements)-1]
	l.Elements = l.Elements[:len(l.Elements)-1]
	return last, nil
}

func biFirst(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	l, err := oneList("first", args)
	if err != nil {
		return nil, err
	}
	if len(l.Elements) == 0 {
		return nil, fmt.Errorf("first: list is empty")
	}
	return l.Elements[0], nil
}

func biLast(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	l, err := oneList("last", args)
	if err != nil {
		return nil, err
	}
	if len(l.Elements) == 0 {
		return nil, fmt.Errorf("last: list is empty")
	}
	return l.Elements[len(l.Elements)-1], nil
}

func biContains(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("contains expects 2 arguments, got %d", len(args))
	}
	l, ok := args[0].(*interp.List)
	if !ok {
		return nil, fmt.Errorf("contains expects a List as the first argument, got %s", args[0].Type())
	}
	for _, e := range l.Elements {
		if valueDeepEqual(e, args[1]) {
			return interp.Boolean(true), nil
		}
	}
	return interp.Boolean(false), nil
}

func valueDeepEqual(a, b interp.Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	return a.String() == b.String()
}

// sort_naturally(list): List
// Returns a new List of Text elements ordered the way a person reads
// mixed alphanumeric names (e.g. "file2" before "file10"), using
// maruel/natural rather than a hand-rolled comparator.
func biSortNaturally(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	l, err := oneList("sort_naturally", args)
	if err != nil {
		return nil, err
	}
	strs := make([]string, len(l.Elements))
	for idx, e := range l.Elements {
		t, ok := e.(interp.Text)
		if !ok {
			return nil, fmt.Errorf("sort_naturally requires every element to be Text, found %s", e.Type())
		}
		strs[idx] = string(t)
	}
	sort.Slice(strs, func(a, b int) bool { return natural.Less(strs[a], strs[b]) })
	elems := make([]interp.Value, len(strs))
	for idx, s := range strs {
		elems[idx] = interp.Text(s)
	}
	return &interp.List{Elements: elems}, nil
}

// keys(map): List
// Returns the map's keys as a List of Text, in insertion order.
func biKeys(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("keys expects 1 argument, got %d", len(args))
	}
	m, ok := args[0].(*interp.Map)
	if !ok {
		return nil, fmt.Errorf("keys expects a Map, got %s", args[0].Type())
	}
	ks := m.Keys()
	elems := make([]interp.Value, len(ks))
	for idx, k := range ks {
		elems[idx] = interp.Text(k)
	}
	return &interp.List{Elements: elems}, nil
}

// values(map): List
// Returns the map's values as a List, in the same insertion order as
// keys().
func biValues(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("values expects 1 argument, got %d", len(args))
	}
	m, ok := args[0].(*interp.Map)
	if !ok {
		return nil, fmt.Errorf("values expects a Map, got %s", args[0].Type())
	}
	ks := m.Keys()
	elems := make([]interp.Value, len(ks))
	for idx, k := range ks {
		v, _ := m.Get(k)
		elems[idx] = v
	}
	return &interp.List{Elements: elems}, nil
}
