package wfl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/logbie/wfl/internal/interp"
)

func TestEval_ArithmeticAndDisplay(t *testing.T) {
	var buf bytes.Buffer
	e, err := New(WithOutput(&buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = e.Eval(`store x as 2 plus 3
display x`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "5") {
		t.Fatalf("expected output to contain 5, got %q", got)
	}
}

func TestCompile_ParseErrorBlocksRun(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p, err := e.Compile("<test>", "store x as")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !p.HasErrors() {
		t.Fatal("expected a parse error")
	}
	if _, err := e.Run(p); err == nil {
		t.Fatal("expected Run to refuse a Program with errors")
	}
}

func TestCompile_TypeCheckCanBeDisabled(t *testing.T) {
	e, err := New(WithTypeCheck(false))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// A type error the checker would normally catch.
	p, err := e.Compile("<test>", `store x as "hi" plus 1`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for _, d := range p.Diagnostics() {
		if d.Kind == "type" {
			t.Fatalf("did not expect type diagnostics with type-checking disabled, got %v", p.Diagnostics())
		}
	}
}

func TestRegisterNativeAction_IsCallable(t *testing.T) {
	var buf bytes.Buffer
	e, err := New(WithOutput(&buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.RegisterNativeAction("double", func(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
		n, ok := args[0].(interp.Number)
		if !ok {
			return nil, nil
		}
		return interp.Number(2 * float64(n)), nil
	})
	_, err = e.Eval(`display double(21)`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !strings.Contains(buf.String(), "42") {
		t.Fatalf("expected 42 in output, got %q", buf.String())
	}
}

func TestLexDump_FormatsTokens(t *testing.T) {
	dump := LexDump(`display 1`)
	if !strings.Contains(dump, "1:1") {
		t.Fatalf("expected first token at 1:1, got %q", dump)
	}
}

func TestParse_NarrowEntryPointSkipsAnalysis(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p, err := e.Parse("<test>", `store x as 1`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.AST() == nil {
		t.Fatal("expected a non-nil AST")
	}
}
