package builtins

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/logbie/wfl/internal/interp"
)

func registerJSON(i *interp.Interpreter) {
	i.RegisterNativeAction("json_decode", biJSONDecode)
	i.RegisterNativeAction("json_encode", biJSONEncode)
}

// json_decode(text): Value
// Parses text as JSON using tidwall/gjson, promoted from a transitive
// teacher dependency to a direct one (structured host interchange is
// implied by the Host API's Value-returning run()).
func biJSONDecode(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("json_decode expects 1 argument, got %d", len(args))
	}
	t, ok := args[0].(interp.Text)
	if !ok {
		return nil, fmt.Errorf("json_decode expects Text, got %s", args[0].Type())
	}
	if !gjson.Valid(string(t)) {
		return nil, fmt.Errorf("json_decode: invalid JSON")
	}
	return gjsonToValue(gjson.Parse(string(t))), nil
}

func gjsonToValue(r gjson.Result) interp.Value {
	switch {
	case r.IsArray():
		arr := r.Array()
		elems := make([]interp.Value, len(arr))
		for idx, el := range arr {
			elems[idx] = gjsonToValue(el)
		}
		return &interp.List{Elements: elems}
	case r.IsObject():
		m := interp.NewMap()
		r.ForEach(func(key, value gjson.Result) bool {
			m.Set(key.String(), gjsonToValue(value))
			return true
		})
		return m
	case r.Type == gjson.Null:
		return interp.Nothing{}
	case r.Type == gjson.True, r.Type == gjson.False:
		return interp.Boolean(r.Bool())
	case r.Type == gjson.Number:
		return interp.Number(r.Num)
	default:
		return interp.Text(r.Str)
	}
}

// json_encode(value): Text
// Serializes value to JSON text, built incrementally with tidwall/
// sjson rather than constructing a parallel interface{} tree and
// handing it to encoding/json.
func biJSONEncode(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("json_encode expects 1 argument, got %d", len(args))
	}
	s, err := valueToJSON(args[0])
	if err != nil {
		return nil, err
	}
	return interp.Text(s), nil
}

func valueToJSON(v interp.Value) (string, error) {
	switch vv := v.(type) {
	case interp.Number:
		return strconv.FormatFloat(float64(vv), 'g', -1, 64), nil
	case interp.Text:
		raw, err := json.Marshal(string(vv))
		if err != nil {
			return "", err
		}
		return string(raw), nil
	case interp.Boolean:
		return strconv.FormatBool(bool(vv)), nil
	case interp.Nothing:
		return "null", nil
	case *interp.List:
		doc := "[]"
		for idx, el := range vv.Elements {
			child, err := valueToJSON(el)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, strconv.Itoa(idx), child)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	case *interp.Map:
		doc := "{}"
		for _, k := range vv.Keys() {
			val, _ := vv.Get(k)
			child, err := valueToJSON(val)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, sjsonEscapePath(k), child)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	default:
		return "", fmt.Errorf("json_encode: %s has no JSON representation", v.Type())
	}
}

// sjsonEscapePath guards against a map key containing a sjson path
// separator (`.`), which would otherwise be read back as a nested
// path instead of a literal key.
func sjsonEscapePath(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		if key[i] == '.' || key[i] == '*' || key[i] == '?' {
			out = append(out, '\\')
		}
		out = append(out, key[i])
	}
	return string(out)
}
