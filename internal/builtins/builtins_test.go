package builtins

import (
	"testing"

	"github.com/logbie/wfl/internal/interp"
)

func call(t *testing.T, i *interp.Interpreter, name string, args ...interp.Value) (interp.Value, error) {
	t.Helper()
	v, ok := i.Global().Get(name)
	if !ok {
		t.Fatalf("builtin %q is not registered", name)
	}
	a, ok := v.(*interp.Action)
	if !ok || a.Native == nil {
		t.Fatalf("%q is not a native action", name)
	}
	return a.Native(i, args)
}

func newInterp() *interp.Interpreter {
	i := interp.New(nil)
	Register(i)
	return i
}

func TestCore_Length(t *testing.T) {
	i := newInterp()
	v, err := call(t, i, "length", interp.Text("hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != interp.Number(5) {
		t.Fatalf("expected 5, got %v", v)
	}
}

func TestCore_ToNumberRejectsGarbage(t *testing.T) {
	i := newInterp()
	if _, err := call(t, i, "to_number", interp.Text("not a number")); err == nil {
		t.Fatal("expected an error for malformed input")
	}
}

func TestMath_MinimumMaximum(t *testing.T) {
	i := newInterp()
	min, err := call(t, i, "minimum", interp.Number(3), interp.Number(-2))
	if err != nil || min != interp.Number(-2) {
		t.Fatalf("expected -2, got %v, %v", min, err)
	}
	max, err := call(t, i, "maximum", interp.Number(3), interp.Number(-2))
	if err != nil || max != interp.Number(3) {
		t.Fatalf("expected 3, got %v, %v", max, err)
	}
}

func TestText_SubstringIsOneBased(t *testing.T) {
	i := newInterp()
	v, err := call(t, i, "substring", interp.Text("hello"), interp.Number(2), interp.Number(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != interp.Text("ell") {
		t.Fatalf("expected \"ell\", got %v", v)
	}
}

func TestText_Normalize(t *testing.T) {
	i := newInterp()
	// "e" + combining acute accent, NFC should compose to a single rune.
	v, err := call(t, i, "normalize", interp.Text("é"), interp.Text("NFC"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != interp.Text("é") {
		t.Fatalf("expected a composed e-acute, got %q", v)
	}
}

func TestList_PushPop(t *testing.T) {
	i := newInterp()
	list := &interp.List{Elements: []interp.Value{interp.Number(1)}}
	if _, err := call(t, i, "push", list, interp.Number(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Elements) != 2 {
		t.Fatalf("expected push to mutate the list in place, got %v", list.Elements)
	}
	v, err := call(t, i, "pop", list)
	if err != nil || v != interp.Number(2) {
		t.Fatalf("expected 2, got %v, %v", v, err)
	}
	if len(list.Elements) != 1 {
		t.Fatalf("expected pop to shrink the list, got %v", list.Elements)
	}
}

func TestList_SortNaturally(t *testing.T) {
	i := newInterp()
	list := &interp.List{Elements: []interp.Value{
		interp.Text("file10"), interp.Text("file2"), interp.Text("file1"),
	}}
	v, err := call(t, i, "sort_naturally", list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sorted := v.(*interp.List)
	got := []string{sorted.Elements[0].String(), sorted.Elements[1].String(), sorted.Elements[2].String()}
	want := []string{"file1", "file2", "file10"}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("expected natural order %v, got %v", want, got)
		}
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	i := newInterp()
	m := interp.NewMap()
	m.Set("name", interp.Text("wfl"))
	m.Set("count", interp.Number(3))
	encoded, err := call(t, i, "json_encode", m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := call(t, i, "json_decode", encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, ok := decoded.(*interp.Map)
	if !ok {
		t.Fatalf("expected a Map, got %T", decoded)
	}
	name, _ := back.Get("name")
	if name != interp.Text("wfl") {
		t.Fatalf("expected name=wfl, got %v", name)
	}
}

func TestPattern_FindReplaceSplit(t *testing.T) {
	i := newInterp()

	found, err := call(t, i, "find", interp.Text("hello123world"), interp.Text("[0-9]+"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != interp.Text("123") {
		t.Fatalf("expected \"123\", got %v", found)
	}

	replaced, err := call(t, i, "replace", interp.Text("a1b2c3"), interp.Text("[0-9]"), interp.Text("-"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if replaced != interp.Text("a-b-c-") {
		t.Fatalf("expected \"a-b-c-\", got %v", replaced)
	}

	split, err := call(t, i, "split", interp.Text("one,two,,three"), interp.Text(","))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := split.(*interp.List)
	if len(list.Elements) != 4 {
		t.Fatalf("expected 4 pieces, got %v", list.Elements)
	}
}

func TestPattern_RejectsRunawayBacktracking(t *testing.T) {
	i := newInterp()
	// (a*)* against a long run of a's followed by a mismatch is the
	// classic catastrophic-backtracking shape; the cap must trip before
	// this returns.
	text := interp.Text(stringsRepeat("a", 40) + "b")
	_, err := call(t, i, "find", text, interp.Text("(a*)*c"))
	if err == nil {
		t.Fatal("expected the backtracking step cap to trip")
	}
}

func stringsRepeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
