package builtins

import (
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/logbie/wfl/internal/interp"
)

func registerText(i *interp.Interpreter) {
	i.RegisterNativeAction("uppercase", biUppercase)
	i.RegisterNativeAction("lowercase", biLowercase)
	i.RegisterNativeAction("trim", biTrim)
	i.RegisterNativeAction("contains_text", biContainsText)
	i.RegisterNativeAction("substring", biSubstring)
	i.RegisterNativeAction("join_text", biJoinText)
	i.RegisterNativeAction("split_text", biSplitText)
	i.RegisterNativeAction("normalize", biNormalize)
	i.RegisterNativeAction("compare_text", biCompareText)
}

func oneText(name string, args []interp.Value) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
	}
	t, ok := args[0].(interp.Text)
	if !ok {
		return "", fmt.Errorf("%s expects Text, got %s", name, args[0].Type())
	}
	return string(t), nil
}

func biUppercase(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, err := oneText("uppercase", args)
	if err != nil {
		return nil, err
	}
	return interp.Text(strings.ToUpper(s)), nil
}

func biLowercase(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, err := oneText("lowercase", args)
	if err != nil {
		return nil, err
	}
	return interp.Text(strings.ToLower(s)), nil
}

func biTrim(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, err := oneText("trim", args)
	if err != nil {
		return nil, err
	}
	return interp.Text(strings.TrimSpace(s)), nil
}

func biContainsText(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("contains_text expects 2 arguments, got %d", len(args))
	}
	haystack, hok := args[0].(interp.Text)
	needle, nok := args[1].(interp.Text)
	if !hok || !nok {
		return nil, fmt.Errorf("contains_text expects two Text arguments, got %s and %s", args[0].Type(), args[1].Type())
	}
	return interp.Boolean(strings.Contains(string(haystack), string(needle))), nil
}

// substring(text, start, length): Text
// start is a 1-based rune position, matching every other wfl index
// convention (list indexing, substring, etc.).
func biSubstring(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("substring expects 3 arguments, got %d", len(args))
	}
	t, ok := args[0].(interp.Text)
	if !ok {
		return nil, fmt.Errorf("substring expects Text as the first argument, got %s", args[0].Type())
	}
	start, sok := args[1].(interp.Number)
	count, cok := args[2].(interp.Number)
	if !sok || !cok {
		return nil, fmt.Errorf("substring expects Numbers for start and length")
	}
	runes := []rune(string(t))
	startIdx := int(start) - 1
	if startIdx < 0 || count < 0 {
		return nil, fmt.Errorf("substring: start and length must not be negative")
	}
	if startIdx >= len(runes) {
		return interp.Text(""), nil
	}
	end := startIdx + int(count)
	if end > len(runes) {
		end = len(runes)
	}
	return interp.Text(string(runes[startIdx:end])), nil
}

func biJoinText(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("join_text expects 2 arguments, got %d", len(args))
	}
	list, lok := args[0].(*interp.List)
	sep, sok := args[1].(interp.Text)
	if !lok || !sok {
		return nil, fmt.Errorf("join_text expects a List and a Text separator")
	}
	parts := make([]string, len(list.Elements))
	for idx, e := range list.Elements {
		parts[idx] = e.String()
	}
	return interp.Text(strings.Join(parts, string(sep))), nil
}

func biSplitText(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("split_text expects 2 arguments, got %d", len(args))
	}
	t, tok := args[0].(interp.Text)
	sep, sok := args[1].(interp.Text)
	if !tok || !sok {
		return nil, fmt.Errorf("split_text expects two Text arguments")
	}
	parts := strings.Split(string(t), string(sep))
	elems := make([]interp.Value, len(parts))
	for idx, p := range parts {
		elems[idx] = interp.Text(p)
	}
	return &interp.List{Elements: elems}, nil
}

// normalize(text, form): Text
// form is one of "NFC", "NFD", "NFKC", "NFKD", implemented with
// golang.org/x/text/unicode/norm.
func biNormalize(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("normalize expects 2 arguments, got %d", len(args))
	}
	t, tok := args[0].(interp.Text)
	form, fok := args[1].(interp.Text)
	if !tok || !fok {
		return nil, fmt.Errorf("normalize expects two Text arguments")
	}
	var f norm.Form
	switch strings.ToUpper(string(form)) {
	case "NFC":
		f = norm.NFC
	case "NFD":
		f = norm.NFD
	case "NFKC":
		f = norm.NFKC
	case "NFKD":
		f = norm.NFKD
	default:
		return nil, fmt.Errorf("normalize: unknown form %q, want NFC, NFD, NFKC or NFKD", string(form))
	}
	return interp.Text(f.String(string(t))), nil
}

// compare_text(a, b, locale): Number
// Locale-aware collation via golang.org/x/text/collate, returning -1,
// 0 or 1. An unrecognized locale falls back to English, matching the
// teacher's own CompareLocaleStr() built-in.
func biCompareText(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("compare_text expects 3 arguments, got %d", len(args))
	}
	a, aok := args[0].(interp.Text)
	b, bok := args[1].(interp.Text)
	locale, lok := args[2].(interp.Text)
	if !aok || !bok || !lok {
		return nil, fmt.Errorf("compare_text expects Text, Text, Text(locale)")
	}
	tag, err := language.Parse(string(locale))
	if err != nil {
		tag = language.English
	}
	col := collate.New(tag)
	return interp.Number(col.CompareString(string(a), string(b))), nil
}
