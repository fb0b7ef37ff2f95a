package builtins

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/logbie/wfl/internal/interp"
)

func registerMath(i *interp.Interpreter) {
	i.RegisterNativeAction("absolute", biAbsolute)
	i.RegisterNativeAction("round", biRound)
	i.RegisterNativeAction("floor", biFloor)
	i.RegisterNativeAction("ceiling", biCeiling)
	i.RegisterNativeAction("square_root", biSquareRoot)
	i.RegisterNativeAction("minimum", biMinimum)
	i.RegisterNativeAction("maximum", biMaximum)
	i.RegisterNativeAction("random_number", biRandomNumber)
}

func oneNumber(name string, args []interp.Value) (interp.Number, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
	}
	n, ok := args[0].(interp.Number)
	if !ok {
		return 0, fmt.Errorf("%s expects Number, got %s", name, args[0].Type())
	}
	return n, nil
}

func biAbsolute(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	n, err := oneNumber("absolute", args)
	if err != nil {
		return nil, err
	}
	return interp.Number(math.Abs(float64(n))), nil
}

func biRound(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	n, err := oneNumber("round", args)
	if err != nil {
		return nil, err
	}
	return interp.Number(math.Round(float64(n))), nil
}

func biFloor(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	n, err := oneNumber("floor", args)
	if err != nil {
		return nil, err
	}
	return interp.Number(math.Floor(float64(n))), nil
}

func biCeiling(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	n, err := oneNumber("ceiling", args)
	if err != nil {
		return nil, err
	}
	return interp.Number(math.Ceil(float64(n))), nil
}

func biSquareRoot(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	n, err := oneNumber("square_root", args)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("square_root of a negative number %v", n)
	}
	return interp.Number(math.Sqrt(float64(n))), nil
}

func biMinimum(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("minimum expects 2 arguments, got %d", len(args))
	}
	a, aok := args[0].(interp.Number)
	b, bok := args[1].(interp.Number)
	if !aok || !bok {
		return nil, fmt.Errorf("minimum expects two Numbers, got %s and %s", args[0].Type(), args[1].Type())
	}
	if a < b {
		return a, nil
	}
	return b, nil
}

func biMaximum(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("maximum expects 2 arguments, got %d", len(args))
	}
	a, aok := args[0].(interp.Number)
	b, bok := args[1].(interp.Number)
	if !aok || !bok {
		return nil, fmt.Errorf("maximum expects two Numbers, got %s and %s", args[0].Type(), args[1].Type())
	}
	if a > b {
		return a, nil
	}
	return b, nil
}

// random_number(low, high): Number
// Returns an integer-valued Number in [low, high], both inclusive.
func biRandomNumber(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("random_number expects 2 arguments, got %d", len(args))
	}
	low, lok := args[0].(interp.Number)
	high, hok := args[1].(interp.Number)
	if !lok || !hok {
		return nil, fmt.Errorf("random_number expects two Numbers, got %s and %s", args[0].Type(), args[1].Type())
	}
	if high < low {
		return nil, fmt.Errorf("random_number: high %v is less than low %v", high, low)
	}
	span := int64(high) - int64(low) + 1
	return interp.Number(int64(low) + rand.Int63n(span)), nil
}
