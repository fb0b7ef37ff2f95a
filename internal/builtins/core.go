package builtins

import (
	"fmt"
	"strconv"

	"github.com/logbie/wfl/internal/interp"
)

func registerCore(i *interp.Interpreter) {
	i.RegisterNativeAction("length", biLength)
	i.RegisterNativeAction("type_of", biTypeOf)
	i.RegisterNativeAction("to_text", biToText)
	i.RegisterNativeAction("to_number", biToNumber)
}

// length(value): Number
// Reports the element count of a List or Map, or the rune count of a
// Text value.
func biLength(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("length expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case interp.Text:
		return interp.Number(len([]rune(string(v)))), nil
	case *interp.List:
		return interp.Number(len(v.Elements)), nil
	case *interp.Map:
		return interp.Number(v.Len()), nil
	default:
		return nil, fmt.Errorf("length is not defined for %s", v.Type())
	}
}

// type_of(value): Text
// Returns the runtime type name of value (Number, Text, Boolean,
// Nothing, List, Map, Container, Action, Handle).
func biTypeOf(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type_of expects 1 argument, got %d", len(args))
	}
	return interp.Text(args[0].Type()), nil
}

// to_text(value): Text
// Renders value the same way `display` would.
func biToText(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("to_text expects 1 argument, got %d", len(args))
	}
	return interp.Text(args[0].String()), nil
}

// to_number(text): Number
// Parses a Text value as a decimal number, failing with a runtime
// error on malformed input rather than silently returning zero.
func biToNumber(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("to_number expects 1 argument, got %d", len(args))
	}
	t, ok := args[0].(interp.Text)
	if !ok {
		return nil, fmt.Errorf("to_number expects Text, got %s", args[0].Type())
	}
	n, err := strconv.ParseFloat(string(t), 64)
	if err != nil {
		return nil, fmt.Errorf("to_number: %q is not a valid number", string(t))
	}
	return interp.Number(n), nil
}
