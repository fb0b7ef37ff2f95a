// Package builtins implements the wfl standard library: pattern
// operations plus the set of native actions registered into an
// Interpreter's global frame exactly the way a host's own
// RegisterNativeAction call would. Built-ins are organized by concern,
// one file per area (strings, math, collections, JSON) rather than one
// large switch.
package builtins

import "github.com/logbie/wfl/internal/interp"

// Register binds every standard built-in action into i's global frame.
// A host embedding the interpreter is free to call this, skip it for a
// sandboxed subset, or call it and then shadow individual names with
// its own RegisterNativeAction calls.
func Register(i *interp.Interpreter) {
	registerCore(i)
	registerMath(i)
	registerText(i)
	registerList(i)
	registerJSON(i)
	registerPattern(i)
}

// Names lists every action name Register binds, for a host to pass to
// semantic.NewAnalyzer as the built-in shadowing set.
func Names() map[string]bool {
	return map[string]bool{
		"length": true, "type_of": true, "to_text": true, "to_number": true,
		"absolute": true, "round": true, "floor": true, "ceiling": true,
		"square_root": true, "minimum": true, "maximum": true, "random_number": true,
		"uppercase": true, "lowercase": true, "trim": true, "contains_text": true,
		"substring": true, "join_text": true, "split_text": true, "normalize": true,
		"compare_text": true,
		"push": true, "pop": true, "first": true, "last": true, "contains": true,
		"sort_naturally": true, "keys": true, "values": true,
		"json_decode": true, "json_encode": true,
		"find": true, "replace": true, "split": true,
	}
}
