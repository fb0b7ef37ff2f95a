package interp

import (
	"regexp"

	"github.com/logbie/wfl/internal/ast"
)

// evalMatch implements the `matches` pattern-match expression. The
// pattern engine for `find`/`replace`/`split` lives in the built-ins
// package (registered as native actions); the binary `matches`
// expression form is common enough to belong on the interpreter
// itself, using the standard library's regexp package rather than a
// bespoke automaton.
func (i *Interpreter) evalMatch(n *ast.MatchExpr, env *Environment) Value {
	subject := valueToText(i.eval(n.Subject, env))
	pattern := valueToText(i.eval(n.Pattern, env))
	re, err := regexp.Compile(pattern)
	if err != nil {
		panicRT(n.Pattern, newTypeError("invalid pattern %q: %s", pattern, err.Error()))
	}
	return Boolean(re.MatchString(subject))
}
