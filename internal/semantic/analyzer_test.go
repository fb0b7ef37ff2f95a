package semantic

import (
	"testing"

	"github.com/logbie/wfl/internal/diag"
	"github.com/logbie/wfl/internal/lexer"
	"github.com/logbie/wfl/internal/parser"
)

func mustParse(t *testing.T, src string) (*parser.Parser, *diag.Bag) {
	t.Helper()
	bag := &diag.Bag{}
	p := parser.New(lexer.New(src), bag, 0)
	return p, bag
}

func hasWarningTag(bag *diag.Bag, tag string) bool {
	for _, d := range bag.All() {
		if d.Severity == diag.Warning && containsTag(d.Message, tag) {
			return true
		}
	}
	return false
}

func containsTag(msg, tag string) bool {
	want := "[" + tag + "]"
	return len(msg) >= len(want) && msg[:len(want)] == want
}

func TestAnalyzer_UnusedBinding(t *testing.T) {
	p, pbag := mustParse(t, `store a as 6
store b as 2
store c as a plus b
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewAnalyzer(bag, 0, nil).Analyze(prog)
	if !hasWarningTag(bag, "unused") {
		t.Fatalf("expected an 'unused' warning for c, got: %v", bag.All())
	}
	if hasWarningTag(bag, "write-only") {
		t.Fatalf("a and b are read by c's declaration and must not be flagged: %v", bag.All())
	}
}

func TestAnalyzer_WriteOnly(t *testing.T) {
	p, pbag := mustParse(t, `store total as 0
change total to 5
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewAnalyzer(bag, 0, nil).Analyze(prog)
	if !hasWarningTag(bag, "write-only") {
		t.Fatalf("expected a 'write-only' warning for total, got: %v", bag.All())
	}
}

func TestAnalyzer_AppendMarksArgsUsed(t *testing.T) {
	p, pbag := mustParse(t, `open file "log.txt" as logHandle
store message_text as "hello"
append content message_text into logHandle
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewAnalyzer(bag, 0, nil).Analyze(prog)
	if hasWarningTag(bag, "unused") {
		t.Fatalf("message_text and logHandle are consumed by append, should not be unused: %v", bag.All())
	}
}

func TestAnalyzer_UnreachableAfterReturn(t *testing.T) {
	p, pbag := mustParse(t, `action f:
    provide 1
    display "dead"
end action
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewAnalyzer(bag, 0, nil).Analyze(prog)
	if !hasWarningTag(bag, "unreachable") {
		t.Fatalf("expected an 'unreachable' warning, got: %v", bag.All())
	}
}

func TestAnalyzer_ShadowingBuiltin(t *testing.T) {
	p, pbag := mustParse(t, `store round as 1
display round
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewAnalyzer(bag, 0, map[string]bool{"round": true}).Analyze(prog)
	if !hasWarningTag(bag, "shadow") {
		t.Fatalf("expected a 'shadow' warning, got: %v", bag.All())
	}
}
