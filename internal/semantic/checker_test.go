package semantic

import (
	"testing"

	"github.com/logbie/wfl/internal/diag"
)

func TestChecker_ArithmeticRequiresNumber(t *testing.T) {
	p, pbag := mustParse(t, `store a as "text"
store b as a plus 1
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewChecker(bag, 0).Check(prog)
	if !bag.HasErrors() {
		t.Fatal("expected a type error for Text plus Number")
	}
}

func TestChecker_AssignmentMustUnify(t *testing.T) {
	p, pbag := mustParse(t, `store a as 1
change a to "text"
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewChecker(bag, 0).Check(prog)
	if !bag.HasErrors() {
		t.Fatal("expected a type error assigning Text to a Number binding")
	}
}

func TestChecker_ConcatenationYieldsText(t *testing.T) {
	p, pbag := mustParse(t, `store a as 1
store b as "x" with a
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewChecker(bag, 0).Check(prog)
	if bag.HasErrors() {
		t.Fatalf("concatenation should coerce freely: %v", bag.All())
	}
}

func TestChecker_ActionArityMismatch(t *testing.T) {
	p, pbag := mustParse(t, `action greet with name:
    display name
end action

greet with "a" with "b"
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewChecker(bag, 0).Check(prog)
	if !bag.HasErrors() {
		t.Fatal("expected an arity-mismatch type error")
	}
}

func TestChecker_ActionReturnTypeInferred(t *testing.T) {
	p, pbag := mustParse(t, `action double with n:
    provide n times 2
end action

store x as 1 plus 1
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewChecker(bag, 0).Check(prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected type errors: %v", bag.All())
	}
}

func TestChecker_DivisionByLiteralZeroWarns(t *testing.T) {
	p, pbag := mustParse(t, `store a as 1 divided by 0
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewChecker(bag, 0).Check(prog)
	foundWarning := false
	for _, d := range bag.All() {
		if d.Severity == diag.Warning {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Fatal("expected a warning for division by literal zero")
	}
	if bag.HasErrors() {
		t.Fatalf("literal-zero division is a warning, not an error: %v", bag.All())
	}
}

func TestChecker_ForEachOverListBindsElementType(t *testing.T) {
	p, pbag := mustParse(t, `store items as [1, 2, 3]
for each item in items:
    store doubled as item times 2
end for
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewChecker(bag, 0).Check(prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected type errors: %v", bag.All())
	}
}

func TestChecker_ContainerImplementingInterfaceConforms(t *testing.T) {
	p, pbag := mustParse(t, `interface Greeter:
    action greet with name
end interface

container Person implements Greeter:
    action greet with name:
        display name
    end action
end container
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewChecker(bag, 0).Check(prog)
	if bag.HasErrors() {
		t.Fatalf("conforming container should report no errors: %v", bag.All())
	}
}

func TestChecker_ContainerMissingInterfaceActionFails(t *testing.T) {
	p, pbag := mustParse(t, `interface Greeter:
    action greet with name
end interface

container Person implements Greeter:
    action wave:
        display "hi"
    end action
end container
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewChecker(bag, 0).Check(prog)
	if !bag.HasErrors() {
		t.Fatal("expected a non-conformance error for missing action greet")
	}
}

func TestChecker_ContainerImplementingInterfaceWrongArityFails(t *testing.T) {
	p, pbag := mustParse(t, `interface Greeter:
    action greet with name
end interface

container Person implements Greeter:
    action greet:
        display "hi"
    end action
end container
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewChecker(bag, 0).Check(prog)
	if !bag.HasErrors() {
		t.Fatal("expected a non-conformance error for arity mismatch")
	}
}

func TestChecker_ContainerImplementingUnknownInterfaceFails(t *testing.T) {
	p, pbag := mustParse(t, `container Person implements Ghost:
    action greet with name:
        display name
    end action
end container
`)
	prog := p.ParseProgram()
	if pbag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", pbag.All())
	}
	bag := &diag.Bag{}
	NewChecker(bag, 0).Check(prog)
	if !bag.HasErrors() {
		t.Fatal("expected an error for implementing an undeclared interface")
	}
}
