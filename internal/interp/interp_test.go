package interp

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/logbie/wfl/internal/diag"
	"github.com/logbie/wfl/internal/lexer"
	"github.com/logbie/wfl/internal/parser"
)

func runSource(t *testing.T, src string) (string, Value, error) {
	t.Helper()
	bag := &diag.Bag{}
	p := parser.New(lexer.New(src), bag, 0)
	prog := p.ParseProgram()
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.All())
	}
	var out bytes.Buffer
	interp := New(&out)
	v, err := interp.Run(prog)
	return out.String(), v, err
}

func TestInterp_DisplayAndArithmetic(t *testing.T) {
	out, _, err := runSource(t, `store a as 2
store b as 3
display a plus b
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "5" {
		t.Fatalf("expected 5, got %q", out)
	}
}

func TestInterp_CountLoopAccumulates(t *testing.T) {
	out, _, err := runSource(t, `store total as 0
count from 1 to 3:
    change total to total plus 1
end count
display total
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("expected 3, got %q", out)
	}
}

func TestInterp_BreakStopsInnermostLoopOnly(t *testing.T) {
	out, _, err := runSource(t, `store seen as 0
count from 1 to 3:
    count from 1 to 3:
        break
    end count
    change seen to seen plus 1
end count
display seen
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("break should only stop the inner loop, got %q", out)
	}
}

func TestInterp_ExitTerminatesOutermostLoop(t *testing.T) {
	out, _, err := runSource(t, `store seen as 0
count from 1 to 3:
    count from 1 to 3:
        exit
    end count
    change seen to seen plus 1
end count
display seen
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "0" {
		t.Fatalf("exit should propagate through every enclosing loop, got %q", out)
	}
}

func TestInterp_ActionReturnsValue(t *testing.T) {
	out, _, err := runSource(t, `action double with n:
    provide n times 2
end action

display double with 21
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "42" {
		t.Fatalf("expected 42, got %q", out)
	}
}

func TestInterp_TryCatchCatchesRuntimeError(t *testing.T) {
	out, _, err := runSource(t, `store items as [1, 2]
try:
    store x as items[5]
catch problem:
    display problem
end try
display "recovered"
`)
	if err != nil {
		t.Fatalf("expected the try block to catch the runtime error, got %v", err)
	}
	if !strings.Contains(out, "recovered") {
		t.Fatalf("expected execution to continue after the catch, got %q", out)
	}
}

func TestInterp_UncaughtRuntimeErrorTerminatesRun(t *testing.T) {
	_, _, err := runSource(t, `store items as [1, 2]
store x as items[5]
display "never reached"
`)
	if err == nil {
		t.Fatal("expected an out-of-bounds runtime error")
	}
}

func TestInterp_ForEachOverListPreservesOrder(t *testing.T) {
	out, _, err := runSource(t, `store names as ["b", "a", "c"]
for each name in names:
    display name
end for
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Fields(out)
	if len(lines) != 3 || lines[0] != "b" || lines[1] != "a" || lines[2] != "c" {
		t.Fatalf("expected source order b,a,c, got %v", lines)
	}
}

func TestMap_InsertionOrderPreservedOnIteration(t *testing.T) {
	m := NewMap()
	m.Set("b", Number(2))
	m.Set("a", Number(1))
	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("expected insertion order [b a], got %v", keys)
	}
}

func TestInterp_ContainerInitializeAndMethod(t *testing.T) {
	out, _, err := runSource(t, `container Counter:
    property value = 0

    action initialize with start:
        change value to start
    end action

    action increment:
        change value to value plus 1
    end action
end container

store c as new Counter with 10
call c.increment
display c.value
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "11" {
		t.Fatalf("expected 11, got %q", out)
	}
}

func TestInterp_AppendWithConcatenatesBeforeWritingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	src := fmt.Sprintf(`store message_text as "hello"
open file %q as logHandle
append content message_text with "!" into logHandle
close logHandle
`, path)
	_, _, err := runSource(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "hello!" {
		t.Fatalf("expected file contents %q, got %q", "hello!", got)
	}
}
