package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders program as an indented S-expression tree, one node per
// line, each suffixed with its byte span. This is the format behind the
// CLI's `--ast` flag; stability across versions is not
// guaranteed, per spec.
func Dump(p *Program) string {
	var sb strings.Builder
	sb.WriteString("(program\n")
	for _, s := range p.Statements {
		dumpStatement(&sb, s, 1)
	}
	sb.WriteString(")")
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func spanSuffix(s Span) string {
	return fmt.Sprintf(" @%d-%d", s.Start, s.End)
}

func dumpStatement(sb *strings.Builder, s Statement, depth int) {
	indent(sb, depth)
	switch n := s.(type) {
	case *VarDecl:
		sb.WriteString("(store " + n.Name + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Value, depth+1)
		closeParen(sb, depth)
	case *Assignment:
		sb.WriteString("(change " + n.Name + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Value, depth+1)
		closeParen(sb, depth)
	case *DisplayStmt:
		sb.WriteString("(display" + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Value, depth+1)
		closeParen(sb, depth)
	case *BlockStatement:
		sb.WriteString("(block" + spanSuffix(n.Span) + "\n")
		for _, st := range n.Statements {
			dumpStatement(sb, st, depth+1)
		}
		closeParen(sb, depth)
	case *IfStatement:
		sb.WriteString("(check" + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Condition, depth+1)
		dumpStatement(sb, n.Consequence, depth+1)
		if n.Alternative != nil {
			dumpStatement(sb, n.Alternative, depth+1)
		}
		closeParen(sb, depth)
	case *WhileStatement:
		sb.WriteString("(while" + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Condition, depth+1)
		dumpStatement(sb, n.Body, depth+1)
		closeParen(sb, depth)
	case *RepeatWhileStatement:
		sb.WriteString("(repeat-while" + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Condition, depth+1)
		dumpStatement(sb, n.Body, depth+1)
		closeParen(sb, depth)
	case *RepeatUntilStatement:
		sb.WriteString("(repeat-until" + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Condition, depth+1)
		dumpStatement(sb, n.Body, depth+1)
		closeParen(sb, depth)
	case *CountStatement:
		sb.WriteString("(count " + n.Var + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.From, depth+1)
		dumpExpression(sb, n.To, depth+1)
		if n.Step != nil {
			dumpExpression(sb, n.Step, depth+1)
		}
		dumpStatement(sb, n.Body, depth+1)
		closeParen(sb, depth)
	case *ForEachStatement:
		sb.WriteString("(for-each " + n.Var + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Iterable, depth+1)
		dumpStatement(sb, n.Body, depth+1)
		closeParen(sb, depth)
	case *ForeverStatement:
		sb.WriteString("(forever" + spanSuffix(n.Span) + "\n")
		dumpStatement(sb, n.Body, depth+1)
		closeParen(sb, depth)
	case *BreakStatement:
		sb.WriteString("(break" + spanSuffix(n.Span) + ")\n")
	case *ContinueStatement:
		sb.WriteString("(continue" + spanSuffix(n.Span) + ")\n")
	case *ExitStatement:
		sb.WriteString("(exit" + spanSuffix(n.Span) + ")\n")
	case *ReturnStatement:
		sb.WriteString("(provide" + spanSuffix(n.Span) + "\n")
		if n.Value != nil {
			dumpExpression(sb, n.Value, depth+1)
		}
		closeParen(sb, depth)
	case *ActionDecl:
		sb.WriteString("(action " + n.Name + " (" + strings.Join(n.Params, " ") + ")" + spanSuffix(n.Span) + "\n")
		dumpStatement(sb, n.Body, depth+1)
		closeParen(sb, depth)
	case *ContainerDecl:
		sb.WriteString("(container " + n.Name + spanSuffix(n.Span) + "\n")
		for _, a := range n.Actions {
			dumpStatement(sb, a, depth+1)
		}
		closeParen(sb, depth)
	case *InterfaceDecl:
		sb.WriteString("(interface " + n.Name + spanSuffix(n.Span) + "\n")
		for _, m := range n.Methods {
			sb.WriteString(strings.Repeat("  ", depth+1) + fmt.Sprintf("(action %s/%d)\n", m.Name, m.Arity))
		}
		closeParen(sb, depth)
	case *TryStatement:
		sb.WriteString("(try" + spanSuffix(n.Span) + "\n")
		dumpStatement(sb, n.Body, depth+1)
		if n.Catch != nil {
			dumpStatement(sb, n.Catch, depth+1)
		}
		closeParen(sb, depth)
	case *OpenStatement:
		sb.WriteString("(open " + n.Kind + " -> " + n.Handle + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Source, depth+1)
		closeParen(sb, depth)
	case *CloseStatement:
		sb.WriteString("(close " + n.Handle + spanSuffix(n.Span) + ")\n")
	case *ReadStatement:
		sb.WriteString("(read " + n.Handle + " -> " + n.Target + spanSuffix(n.Span) + ")\n")
	case *AppendStatement:
		sb.WriteString("(append -> " + n.Handle + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Value, depth+1)
		closeParen(sb, depth)
	case *WriteStatement:
		sb.WriteString("(write -> " + n.Handle + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Value, depth+1)
		closeParen(sb, depth)
	case *WaitForStatement:
		sb.WriteString("(wait-for" + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Expr, depth+1)
		closeParen(sb, depth)
	case *ExpressionStatement:
		sb.WriteString("(expr-stmt" + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Expr, depth+1)
		closeParen(sb, depth)
	default:
		sb.WriteString(fmt.Sprintf("(unknown-statement %T)\n", s))
	}
}

func closeParen(sb *strings.Builder, depth int) {
	indent(sb, depth)
	sb.WriteString(")\n")
}

func dumpExpression(sb *strings.Builder, e Expression, depth int) {
	indent(sb, depth)
	switch n := e.(type) {
	case *NumberLiteral:
		sb.WriteString("(number " + strconv.FormatFloat(n.Value, 'g', -1, 64) + spanSuffix(n.Span) + ")\n")
	case *TextLiteral:
		sb.WriteString("(text " + strconv.Quote(n.Value) + spanSuffix(n.Span) + ")\n")
	case *BoolLiteral:
		sb.WriteString("(bool " + strconv.FormatBool(n.Value) + spanSuffix(n.Span) + ")\n")
	case *NothingLiteral:
		sb.WriteString("(nothing" + spanSuffix(n.Span) + ")\n")
	case *Identifier:
		sb.WriteString("(ident " + n.Name + spanSuffix(n.Span) + ")\n")
	case *BinaryExpr:
		sb.WriteString("(binop " + n.Op + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Left, depth+1)
		dumpExpression(sb, n.Right, depth+1)
		closeParen(sb, depth)
	case *UnaryExpr:
		sb.WriteString("(unop " + n.Op + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Operand, depth+1)
		closeParen(sb, depth)
	case *ConcatExpr:
		sb.WriteString("(concat" + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Left, depth+1)
		dumpExpression(sb, n.Right, depth+1)
		closeParen(sb, depth)
	case *CallExpr:
		sb.WriteString("(call" + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Callee, depth+1)
		for _, a := range n.Args {
			dumpExpression(sb, a, depth+1)
		}
		closeParen(sb, depth)
	case *MemberExpr:
		sb.WriteString("(member " + n.Property + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Object, depth+1)
		closeParen(sb, depth)
	case *IndexExpr:
		sb.WriteString("(index" + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Object, depth+1)
		dumpExpression(sb, n.Index, depth+1)
		closeParen(sb, depth)
	case *ListLiteral:
		sb.WriteString("(list" + spanSuffix(n.Span) + "\n")
		for _, el := range n.Elements {
			dumpExpression(sb, el, depth+1)
		}
		closeParen(sb, depth)
	case *MapLiteral:
		sb.WriteString("(map" + spanSuffix(n.Span) + "\n")
		for i := range n.Keys {
			dumpExpression(sb, n.Keys[i], depth+1)
			dumpExpression(sb, n.Values[i], depth+1)
		}
		closeParen(sb, depth)
	case *NewExpr:
		sb.WriteString("(new " + n.Container + spanSuffix(n.Span) + "\n")
		for _, a := range n.Args {
			dumpExpression(sb, a, depth+1)
		}
		closeParen(sb, depth)
	case *MatchExpr:
		sb.WriteString("(matches" + spanSuffix(n.Span) + "\n")
		dumpExpression(sb, n.Subject, depth+1)
		dumpExpression(sb, n.Pattern, depth+1)
		closeParen(sb, depth)
	default:
		sb.WriteString(fmt.Sprintf("(unknown-expression %T)\n", e))
	}
}
