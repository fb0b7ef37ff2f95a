package builtins

import (
	"fmt"
	"strings"

	"github.com/logbie/wfl/internal/interp"
)

func registerPattern(i *interp.Interpreter) {
	i.RegisterNativeAction("find", biFind)
	i.RegisterNativeAction("replace", biReplace)
	i.RegisterNativeAction("split", biSplit)
}

func twoTextAndPattern(name string, args []interp.Value) (string, *pNode, error) {
	if len(args) != 2 {
		return "", nil, fmt.Errorf("%s expects 2 arguments, got %d", name, len(args))
	}
	t, tok := args[0].(interp.Text)
	p, pok := args[1].(interp.Text)
	if !tok || !pok {
		return "", nil, fmt.Errorf("%s expects two Text arguments, got %s and %s", name, args[0].Type(), args[1].Type())
	}
	root, err := compilePattern(string(p))
	if err != nil {
		return "", nil, fmt.Errorf("%s: invalid pattern %q: %s", name, string(p), err.Error())
	}
	return string(t), root, nil
}

// find(text, pattern): Text
// Returns the first substring of text matched by pattern's small DSL
// (literal, character class, quantifier, alternation, anchor), or
// Nothing when no match exists.
func biFind(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	text, root, err := twoTextAndPattern("find", args)
	if err != nil {
		return nil, err
	}
	runes := []rune(text)
	start, end, ok, err := patternMatch(root, runes, 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return interp.Nothing{}, nil
	}
	return interp.Text(string(runes[start:end])), nil
}

// replace(text, pattern, replacement): Text
// Substitutes every non-overlapping match of pattern with replacement.
func biReplace(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("replace expects 3 arguments, got %d", len(args))
	}
	text, root, err := twoTextAndPattern("replace", args[:2])
	if err != nil {
		return nil, err
	}
	replacement, ok := args[2].(interp.Text)
	if !ok {
		return nil, fmt.Errorf("replace expects Text as the third argument, got %s", args[2].Type())
	}
	runes := []rune(text)
	var out strings.Builder
	pos := 0
	for pos <= len(runes) {
		start, end, found, err := patternMatch(root, runes, pos)
		if err != nil {
			return nil, err
		}
		if !found {
			out.WriteString(string(runes[pos:]))
			break
		}
		out.WriteString(string(runes[pos:start]))
		out.WriteString(string(replacement))
		if end == start {
			// zero-width match: advance one rune to avoid looping forever.
			if start < len(runes) {
				out.WriteString(string(runes[start]))
			}
			pos = start + 1
			continue
		}
		pos = end
	}
	return interp.Text(out.String()), nil
}

// split(text, pattern): List
// Splits text on every match of pattern, returning the pieces between
// matches as a List of Text (the matches themselves are discarded).
func biSplit(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	text, root, err := twoTextAndPattern("split", args)
	if err != nil {
		return nil, err
	}
	runes := []rune(text)
	var pieces []interp.Value
	pos, last := 0, 0
	for pos <= len(runes) {
		start, end, found, err := patternMatch(root, runes, pos)
		if err != nil {
			return nil, err
		}
		if !found {
			break
		}
		if end == start {
			pos = start + 1
			continue
		}
		pieces = append(pieces, interp.Text(string(runes[last:start])))
		last = end
		pos = end
	}
	pieces = append(pieces, interp.Text(string(runes[last:])))
	return &interp.List{Elements: pieces}, nil
}
