package wfl

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// fixtures runs a handful of representative scripts through the full
// lex/parse/analyze/type-check/eval pipeline and snapshots their
// display output: one small table of scripts, each exercising one
// language feature end to end.
var fixtures = []struct {
	name   string
	source string
}{
	{
		name: "arithmetic",
		source: `store x as 2 plus 3 times 4
display x`,
	},
	{
		name: "loop",
		source: `store total as 0
count from 1 to 5:
    change total to total plus 1
end count
display total`,
	},
	{
		name: "container",
		source: `container Counter:
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
display c.value`,
	},
	{
		name: "try_catch",
		source: `store items as [1, 2]
try:
	store x as items[5]
catch problem:
	display "caught: " with problem
end try
display "recovered"`,
	},
	{
		name: "list_and_builtins",
		source: `store items as [3, 1, 2]
display length(items)
display first(items)`,
	},
}

func TestFixtures(t *testing.T) {
	for _, f := range fixtures {
		t.Run(f.name, func(t *testing.T) {
			var buf bytes.Buffer
			e, err := New(WithOutput(&buf))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			p, err := e.Compile(f.name, f.source)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			var result string
			if p.HasErrors() {
				result = fmt.Sprintf("diagnostics:\n%s", p.Render())
			} else if _, runErr := e.Run(p); runErr != nil {
				result = fmt.Sprintf("runtime error: %v\noutput so far:\n%s", runErr, buf.String())
			} else {
				result = buf.String()
			}
			snaps.MatchSnapshot(t, f.name+"_output", result)
		})
	}
}
