package parser

import (
	"github.com/logbie/wfl/internal/ast"
	"github.com/logbie/wfl/internal/lexer"
)

// parseExpression implements the Pratt loop over every operator except
// `with`, which only ever appears at the top of a full expression
// ("with chains are not themselves sub-expressions") and is
// therefore handled by ParseTopExpression instead.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.errorf(p.curTok, "unexpected token %s in expression", p.curTok.Type)
		return nil
	}
	left := prefix()

	for {
		if isMatchesWord(p.curTok) && precedence < MATCHES {
			left = p.parseMatchExpression(left)
			continue
		}
		curPrec, ok := precedences[p.curTok.Type]
		if !ok || precedence >= curPrec {
			break
		}
		infix := p.infixFns[p.curTok.Type]
		if infix == nil {
			break
		}
		left = infix(left)
	}
	return left
}

func isMatchesWord(t lexer.Token) bool {
	return t.Type == lexer.IDENT && t.Literal == "matches"
}

// ParseTopExpression parses a full expression, including a trailing
// `with` chain that reads either as positional call arguments (when the
// expression's head names a known action, disambiguation
// rule) or as textual concatenation otherwise.
func (p *Parser) ParseTopExpression() ast.Expression {
	left := p.parseExpression(LOWEST)
	if left == nil {
		return nil
	}
	if !p.curIs(lexer.WITH) {
		return left
	}

	ident, isIdent := left.(*ast.Identifier)
	asCall := isIdent && p.knownActions[ident.Name]

	var args []ast.Expression
	for p.curIs(lexer.WITH) {
		p.nextToken() // consume WITH, move to operand
		operand := p.parseExpression(SUM)
		if operand == nil {
			break
		}
		args = append(args, operand)
	}

	if asCall {
		return &ast.CallExpr{
			Callee: ident,
			Args:   args,
		}
	}

	result := left
	for _, arg := range args {
		result = &ast.ConcatExpr{Left: result, Right: arg}
	}
	return result
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.curTok
	n := &ast.NumberLiteral{Value: lexer.ParseNumber(tok.Literal)}
	n.Span = ast.Span{Start: tok.Pos.Offset, End: tok.End()}
	p.nextToken()
	return n
}

func (p *Parser) parseTextLiteral() ast.Expression {
	tok := p.curTok
	n := &ast.TextLiteral{Value: tok.Literal}
	n.Span = ast.Span{Start: tok.Pos.Offset, End: tok.End()}
	p.nextToken()
	return n
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.curTok
	n := &ast.BoolLiteral{Value: tok.Type == lexer.TRUE}
	n.Span = ast.Span{Start: tok.Pos.Offset, End: tok.End()}
	p.nextToken()
	return n
}

func (p *Parser) parseNothingLiteral() ast.Expression {
	tok := p.curTok
	n := &ast.NothingLiteral{}
	n.Span = ast.Span{Start: tok.Pos.Offset, End: tok.End()}
	p.nextToken()
	return n
}

func (p *Parser) parseIdentifierOrCall() ast.Expression {
	tok := p.curTok
	n := &ast.Identifier{Name: tok.Literal}
	n.Span = ast.Span{Start: tok.Pos.Offset, End: tok.End()}
	p.nextToken()

	if p.curIs(lexer.LPAREN) {
		return p.parseParenCall(n)
	}
	return n
}

// parseParenCall handles the parenthesized-argument call spelling
// `name(arg, arg)`, used for nested calls inside larger expressions
// where a `with` chain would be ambiguous ("parenthesized
// calls are always calls, never concatenation").
func (p *Parser) parseParenCall(callee ast.Expression) ast.Expression {
	start := p.curTok
	p.nextToken() // consume '('
	var args []ast.Expression
	if !p.curIs(lexer.RPAREN) {
		args = append(args, p.parseExpression(LOWEST))
		for p.curIs(lexer.COMMA) {
			p.nextToken()
			args = append(args, p.parseExpression(LOWEST))
		}
	}
	end := p.curTok
	p.expect(lexer.RPAREN)
	c := &ast.CallExpr{Callee: callee, Args: args}
	c.Span = ast.Span{Start: start.Pos.Offset, End: end.End()}
	return c
}

func (p *Parser) parseUnary() ast.Expression {
	tok := p.curTok
	op := tok.Literal
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	n := &ast.UnaryExpr{Op: op, Operand: operand}
	if operand != nil {
		n.Span = ast.Span{Start: tok.Pos.Offset, End: operand.SpanOf().End}
	}
	return n
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken() // consume '('
	exp := p.parseExpression(LOWEST)
	if !p.expect(lexer.RPAREN) {
		return exp
	}
	return exp
}

func (p *Parser) parseListLiteral() ast.Expression {
	start := p.curTok
	p.nextToken() // consume '['
	var elems []ast.Expression
	if !p.curIs(lexer.RBRACK) {
		elems = append(elems, p.parseExpression(LOWEST))
		for p.curIs(lexer.COMMA) {
			p.nextToken()
			elems = append(elems, p.parseExpression(LOWEST))
		}
	}
	end := p.curTok
	p.expect(lexer.RBRACK)
	n := &ast.ListLiteral{Elements: elems}
	n.Span = ast.Span{Start: start.Pos.Offset, End: end.End()}
	return n
}

// parseNewExpression handles `new ContainerName with arg with arg`.
func (p *Parser) parseNewExpression() ast.Expression {
	start := p.curTok
	p.nextToken() // consume NEW
	if !p.curIs(lexer.IDENT) {
		p.errorf(p.curTok, "expected container name after 'new', got %s", p.curTok.Type)
		return nil
	}
	name := p.curTok.Literal
	end := p.curTok
	p.nextToken()

	var args []ast.Expression
	for p.curIs(lexer.WITH) {
		p.nextToken()
		arg := p.parseExpression(SUM)
		if arg == nil {
			break
		}
		args = append(args, arg)
		end = p.curTok
	}
	n := &ast.NewExpr{Container: name, Args: args}
	n.Span = ast.Span{Start: start.Pos.Offset, End: end.End()}
	return n
}

// parseCallKeywordExpression handles the explicit `call Name with args`
// spelling, which always parses as a call regardless of known_actions
// membership ("an explicit `call` is never ambiguous").
func (p *Parser) parseCallKeywordExpression() ast.Expression {
	start := p.curTok
	p.nextToken() // consume CALL
	if !p.curIs(lexer.IDENT) {
		p.errorf(p.curTok, "expected action name after 'call', got %s", p.curTok.Type)
		return nil
	}
	name := p.curTok.Literal
	nameTok := p.curTok
	end := nameTok
	p.nextToken()

	identCallee := &ast.Identifier{Name: name}
	identCallee.Span = ast.Span{Start: nameTok.Pos.Offset, End: nameTok.End()}
	var callee ast.Expression = identCallee

	// `call Obj.method with args`: a method call on a container
	// instance ("Containers", method lookup on the instance).
	for p.curIs(lexer.DOT) {
		p.nextToken() // consume '.'
		if !p.curIs(lexer.IDENT) {
			p.errorf(p.curTok, "expected property name after '.', got %s", p.curTok.Type)
			break
		}
		prop := p.curTok.Literal
		end = p.curTok
		p.nextToken()
		member := &ast.MemberExpr{Object: callee, Property: prop}
		member.Span = ast.Span{Start: callee.SpanOf().Start, End: end.End()}
		callee = member
	}

	var args []ast.Expression
	for p.curIs(lexer.WITH) {
		p.nextToken()
		arg := p.parseExpression(SUM)
		if arg == nil {
			break
		}
		args = append(args, arg)
		end = p.curTok
	}
	c := &ast.CallExpr{Callee: callee, Args: args}
	c.Span = ast.Span{Start: start.Pos.Offset, End: end.End()}
	return c
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	tok := p.curTok
	prec := precedences[tok.Type]
	p.nextToken()
	right := p.parseExpression(prec)
	n := &ast.BinaryExpr{Op: tok.Literal, Left: left, Right: right}
	if right != nil {
		n.Span = ast.Span{Start: left.SpanOf().Start, End: right.SpanOf().End}
	}
	return n
}

func (p *Parser) parseMatchExpression(left ast.Expression) ast.Expression {
	p.nextToken() // move past "matches"
	pattern := p.parseExpression(MATCHES)
	n := &ast.MatchExpr{Subject: left, Pattern: pattern}
	if pattern != nil {
		n.Span = ast.Span{Start: left.SpanOf().Start, End: pattern.SpanOf().End}
	}
	return n
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	start := left.SpanOf().Start
	p.nextToken() // consume '['
	index := p.parseExpression(LOWEST)
	end := p.curTok
	p.expect(lexer.RBRACK)
	n := &ast.IndexExpr{Object: left, Index: index}
	n.Span = ast.Span{Start: start, End: end.End()}
	return n
}

func (p *Parser) parseMemberExpression(left ast.Expression) ast.Expression {
	start := left.SpanOf().Start
	p.nextToken() // consume '.'
	if !p.curIs(lexer.IDENT) {
		p.errorf(p.curTok, "expected property name after '.', got %s", p.curTok.Type)
		return left
	}
	prop := p.curTok.Literal
	end := p.curTok
	p.nextToken()
	n := &ast.MemberExpr{Object: left, Property: prop}
	n.Span = ast.Span{Start: start, End: end.End()}
	return n
}
