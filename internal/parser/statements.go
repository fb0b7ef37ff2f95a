package parser

import (
	"github.com/logbie/wfl/internal/ast"
	"github.com/logbie/wfl/internal/lexer"
)

// parseStatement dispatches on the current token's leading keyword. A
// nil return with no tokens consumed signals failure to the caller's
// progress guard in ParseProgram.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curTok.Type {
	case lexer.STORE:
		return p.parseVarDecl()
	case lexer.DEFINE:
		return p.parseDefineVariable()
	case lexer.CHANGE:
		return p.parseAssignment()
	case lexer.DISPLAY:
		return p.parseDisplay()
	case lexer.IF, lexer.CHECK:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.REPEAT:
		return p.parseRepeatStatement()
	case lexer.FOREVER:
		return p.parseForeverStatement()
	case lexer.COUNT:
		return p.parseCountStatement()
	case lexer.FOREACH:
		return p.parseForEachStatement()
	case lexer.BREAK:
		return p.parseBreakStatement()
	case lexer.CONTINUE:
		return p.parseContinueStatement()
	case lexer.EXIT:
		return p.parseExitStatement()
	case lexer.PROVIDE:
		return p.parseReturnStatement()
	case lexer.ACTION:
		return p.parseActionDecl()
	case lexer.CONTAINER:
		return p.parseContainerDecl()
	case lexer.INTERFACE:
		return p.parseInterfaceDecl()
	case lexer.TRY:
		return p.parseTryStatement()
	case lexer.OPEN:
		return p.parseOpenStatement()
	case lexer.CLOSE:
		return p.parseCloseStatement()
	case lexer.READ:
		return p.parseReadStatement()
	case lexer.APPEND:
		return p.parseAppendStatement()
	case lexer.WRITE:
		return p.parseWriteStatement()
	case lexer.WAITFOR:
		return p.parseWaitForStatement()
	default:
		if isEndToken(p.curTok.Type) {
			p.consumeOrphanEnd()
			return nil
		}
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBreakStatement() ast.Statement {
	tok := p.curTok
	p.nextToken()
	n := &ast.BreakStatement{}
	n.Span = ast.Span{Start: tok.Pos.Offset, End: tok.End()}
	return n
}

func (p *Parser) parseContinueStatement() ast.Statement {
	tok := p.curTok
	p.nextToken()
	n := &ast.ContinueStatement{}
	n.Span = ast.Span{Start: tok.Pos.Offset, End: tok.End()}
	return n
}

// parseBlock parses statements until it sees one of the acceptable
// terminator token types (which it does not consume) or EOF. A fused
// `end X` that is not among terminators is consumed as orphaned rather
// than closing this block; a bare `end` is in every block's terminator
// list and closes the innermost block. label is pushed on the block
// stack while the block is parsed.
func (p *Parser) parseBlock(label string, terminators ...lexer.TokenType) *ast.BlockStatement {
	start := p.curTok
	p.blockStack = append(p.blockStack, label)
	defer func() { p.blockStack = p.blockStack[:len(p.blockStack)-1] }()

	block := &ast.BlockStatement{}
	for !p.curIs(lexer.EOF) && !p.curIsAny(terminators...) {
		before := p.curTok
		if isEndToken(p.curTok.Type) && !p.curIsAny(terminators...) {
			p.consumeOrphanEnd()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.curTok == before {
			p.errorf(p.curTok, "unexpected token %s in %s block", p.curTok.Type, label)
			p.nextToken()
		}
	}
	block.Span = ast.Span{Start: start.Pos.Offset, End: p.curTok.Pos.Offset}
	return block
}

func (p *Parser) curIsAny(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.curTok.Type == t {
			return true
		}
	}
	return false
}

// parseVarDecl handles `store Name as Expr`.
func (p *Parser) parseVarDecl() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'store'
	if !p.curIs(lexer.IDENT) {
		p.errorf(p.curTok, "expected variable name after 'store', got %s", p.curTok.Type)
		return nil
	}
	name := p.curTok.Literal
	p.nextToken()
	if !p.expect(lexer.AS) {
		return nil
	}
	value := p.ParseTopExpression()
	n := &ast.VarDecl{Name: name, Value: value}
	end := p.curTok
	n.Span = ast.Span{Start: start.Pos.Offset, End: end.Pos.Offset}
	return n
}

// parseDefineVariable handles `define variable Name = Expr`.
func (p *Parser) parseDefineVariable() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'define'
	if !p.expect(lexer.VARIABLE) {
		return nil
	}
	if !p.curIs(lexer.IDENT) {
		p.errorf(p.curTok, "expected variable name after 'define variable', got %s", p.curTok.Type)
		return nil
	}
	name := p.curTok.Literal
	p.nextToken()
	if !p.expect(lexer.ASSIGN) {
		return nil
	}
	value := p.ParseTopExpression()
	n := &ast.VarDecl{Name: name, Value: value}
	n.Span = ast.Span{Start: start.Pos.Offset, End: p.curTok.Pos.Offset}
	return n
}

// parseAssignment handles `change Name to Expr`.
func (p *Parser) parseAssignment() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'change'
	if !p.curIs(lexer.IDENT) {
		p.errorf(p.curTok, "expected variable name after 'change', got %s", p.curTok.Type)
		return nil
	}
	name := p.curTok.Literal
	p.nextToken()
	if !p.expect(lexer.TO) {
		return nil
	}
	value := p.ParseTopExpression()
	n := &ast.Assignment{Name: name, Value: value}
	n.Span = ast.Span{Start: start.Pos.Offset, End: p.curTok.Pos.Offset}
	return n
}

func (p *Parser) parseDisplay() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'display'
	value := p.ParseTopExpression()
	n := &ast.DisplayStmt{Value: value}
	n.Span = ast.Span{Start: start.Pos.Offset, End: p.curTok.Pos.Offset}
	return n
}

// parseIfStatement handles `check Cond: ... [otherwise: ...] end check`
// (equally spelled with if/then/else).
func (p *Parser) parseIfStatement() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'check'/'if'
	cond := p.parseExpression(LOWEST)
	if p.curIs(lexer.THEN) {
		p.nextToken()
	}
	p.expect(lexer.COLON)

	consequence := p.parseBlock("check", lexer.ELSE, lexer.OTHERWISE, lexer.END_CHECK, lexer.END)

	var alt ast.Statement
	if p.curIsAny(lexer.ELSE, lexer.OTHERWISE) {
		p.nextToken()
		if p.curIs(lexer.IF) || p.curIs(lexer.CHECK) {
			alt = p.parseIfStatement()
			n := &ast.IfStatement{Condition: cond, Consequence: consequence, Alternative: alt}
			n.Span = ast.Span{Start: start.Pos.Offset, End: alt.SpanOf().End}
			return n
		}
		p.expect(lexer.COLON)
		alt = p.parseBlock("otherwise", lexer.END_CHECK, lexer.END)
	}
	end := p.curTok
	p.consumeBlockEnd(lexer.END_CHECK)
	n := &ast.IfStatement{Condition: cond, Consequence: consequence, Alternative: alt}
	n.Span = ast.Span{Start: start.Pos.Offset, End: end.End()}
	return n
}

// consumeBlockEnd consumes the expected fused terminator, or a bare
// `end` (always accepted as a fallback terminator for any block kind),
// reporting a diagnostic if neither is present.
func (p *Parser) consumeBlockEnd(want lexer.TokenType) {
	if p.curIs(want) || p.curIs(lexer.END) {
		p.nextToken()
		return
	}
	p.errorf(p.curTok, "expected %s, got %s", want, p.curTok.Type)
}

func (p *Parser) parseWhileStatement() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'while'
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.COLON)
	body := p.parseBlock("while", lexer.END_WHILE, lexer.END)
	end := p.curTok
	p.consumeBlockEnd(lexer.END_WHILE)
	n := &ast.WhileStatement{Condition: cond, Body: body}
	n.Span = ast.Span{Start: start.Pos.Offset, End: end.End()}
	return n
}

// parseRepeatStatement handles both `repeat while Cond: ... end repeat`
// and `repeat until Cond: ... end repeat`.
func (p *Parser) parseRepeatStatement() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'repeat'
	isUntil := p.curIs(lexer.UNTIL)
	if !isUntil && !p.curIs(lexer.WHILE) {
		p.errorf(p.curTok, "expected 'while' or 'until' after 'repeat', got %s", p.curTok.Type)
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.COLON)
	body := p.parseBlock("repeat", lexer.END_REPEAT, lexer.END)
	end := p.curTok
	p.consumeBlockEnd(lexer.END_REPEAT)

	if isUntil {
		n := &ast.RepeatUntilStatement{Condition: cond, Body: body}
		n.Span = ast.Span{Start: start.Pos.Offset, End: end.End()}
		return n
	}
	n := &ast.RepeatWhileStatement{Condition: cond, Body: body}
	n.Span = ast.Span{Start: start.Pos.Offset, End: end.End()}
	return n
}

func (p *Parser) parseForeverStatement() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'forever'
	p.expect(lexer.COLON)
	body := p.parseBlock("forever", lexer.END_LOOP, lexer.END)
	end := p.curTok
	p.consumeBlockEnd(lexer.END_LOOP)
	n := &ast.ForeverStatement{Body: body}
	n.Span = ast.Span{Start: start.Pos.Offset, End: end.End()}
	return n
}

// parseCountStatement handles `count from From to To [by Step]: ... end count`.
func (p *Parser) parseCountStatement() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'count'
	p.expect(lexer.FROM)
	from := p.parseExpression(LOWEST)
	p.expect(lexer.TO)
	to := p.parseExpression(LOWEST)

	var step ast.Expression
	if p.curIs(lexer.BY) {
		p.nextToken()
		step = p.parseExpression(LOWEST)
	}
	p.expect(lexer.COLON)
	body := p.parseBlock("count", lexer.END_COUNT, lexer.END)
	end := p.curTok
	p.consumeBlockEnd(lexer.END_COUNT)

	n := &ast.CountStatement{Var: "count", From: from, To: to, Step: step, Body: body}
	n.Span = ast.Span{Start: start.Pos.Offset, End: end.End()}
	return n
}

// parseForEachStatement handles `for each Var in Iterable: ... end for`.
func (p *Parser) parseForEachStatement() ast.Statement {
	start := p.curTok
	p.nextToken() // consume fused 'for each'
	if !p.curIs(lexer.IDENT) {
		p.errorf(p.curTok, "expected loop variable after 'for each', got %s", p.curTok.Type)
		return nil
	}
	varName := p.curTok.Literal
	p.nextToken()
	p.expect(lexer.IN)
	iterable := p.parseExpression(LOWEST)
	p.expect(lexer.COLON)
	body := p.parseBlock("for each", lexer.END_FOR, lexer.END)
	end := p.curTok
	p.consumeBlockEnd(lexer.END_FOR)

	n := &ast.ForEachStatement{Var: varName, Iterable: iterable, Body: body}
	n.Span = ast.Span{Start: start.Pos.Offset, End: end.End()}
	return n
}

func (p *Parser) parseExitStatement() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'exit'
	if p.curIs(lexer.LOOP) {
		p.nextToken()
	}
	n := &ast.ExitStatement{}
	n.Span = ast.Span{Start: start.Pos.Offset, End: start.End()}
	return n
}

func (p *Parser) parseReturnStatement() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'provide'
	var value ast.Expression
	if !p.statementTerminates() {
		value = p.ParseTopExpression()
	}
	n := &ast.ReturnStatement{Value: value}
	n.Span = ast.Span{Start: start.Pos.Offset, End: p.curTok.Pos.Offset}
	return n
}

// statementTerminates reports whether curTok could not possibly begin
// an expression, used to detect a bare `provide` with no value.
func (p *Parser) statementTerminates() bool {
	return isEndToken(p.curTok.Type) || p.curIs(lexer.EOF)
}

// parseActionDecl handles `action Name with Param, Param: ... end action`,
// registering Name into knownActions as soon as the header is parsed so
// later `with`-disambiguation (and forward-referenced recursive calls
// within the body) sees it (documented forward-reference
// limitation: only calls *after* this declaration resolve as calls).
func (p *Parser) parseActionDecl() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'action'
	// `initialize` names a container's constructor action; it is its own
	// keyword ("initialize is the constructor's conventional
	// name"), not a plain identifier, so it is accepted here specifically.
	if !p.curIs(lexer.IDENT) && !p.curIs(lexer.INITIALIZE) {
		p.errorf(p.curTok, "expected action name, got %s", p.curTok.Type)
		return nil
	}
	name := p.curTok.Literal
	p.nextToken()
	p.knownActions[name] = true

	var params []string
	if p.curIs(lexer.WITH) {
		p.nextToken()
		if p.curIs(lexer.IDENT) {
			params = append(params, p.curTok.Literal)
			p.nextToken()
			for p.curIs(lexer.COMMA) {
				p.nextToken()
				if p.curIs(lexer.IDENT) {
					params = append(params, p.curTok.Literal)
					p.nextToken()
				}
			}
		}
	}
	p.expect(lexer.COLON)
	body := p.parseBlock("action", lexer.END_ACTION, lexer.END)
	end := p.curTok
	p.consumeBlockEnd(lexer.END_ACTION)

	n := &ast.ActionDecl{Name: name, Params: params, Body: body}
	n.Span = ast.Span{Start: start.Pos.Offset, End: end.End()}
	return n
}

// parseContainerDecl handles `container Name [parent Base] [implements I, ...]:
// property ... / action ... end container`.
func (p *Parser) parseContainerDecl() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'container'
	if !p.curIs(lexer.IDENT) {
		p.errorf(p.curTok, "expected container name, got %s", p.curTok.Type)
		return nil
	}
	name := p.curTok.Literal
	p.nextToken()

	var parent string
	if p.curIs(lexer.PARENT) {
		p.nextToken()
		if p.curIs(lexer.IDENT) {
			parent = p.curTok.Literal
			p.nextToken()
		}
	}
	var interfaces []string
	if p.curIs(lexer.IMPLEMENTS) {
		p.nextToken()
		if p.curIs(lexer.IDENT) {
			interfaces = append(interfaces, p.curTok.Literal)
			p.nextToken()
			for p.curIs(lexer.COMMA) {
				p.nextToken()
				if p.curIs(lexer.IDENT) {
					interfaces = append(interfaces, p.curTok.Literal)
					p.nextToken()
				}
			}
		}
	}
	p.expect(lexer.COLON)

	decl := &ast.ContainerDecl{Name: name, Parent: parent, Interfaces: interfaces}
	p.blockStack = append(p.blockStack, "container")
	for !p.curIsAny(lexer.END_CONTAINER, lexer.END, lexer.EOF) {
		before := p.curTok
		switch {
		case p.curIs(lexer.PROPERTY):
			decl.Properties = append(decl.Properties, p.parsePropertyDecl())
		case p.curIs(lexer.ACTION):
			if a, ok := p.parseActionDecl().(*ast.ActionDecl); ok {
				decl.Actions = append(decl.Actions, a)
			}
		default:
			p.errorf(p.curTok, "expected 'property' or 'action' in container body, got %s", p.curTok.Type)
			p.nextToken()
		}
		if p.curTok == before {
			p.nextToken()
		}
	}
	p.blockStack = p.blockStack[:len(p.blockStack)-1]
	end := p.curTok
	p.consumeBlockEnd(lexer.END_CONTAINER)

	decl.Span = ast.Span{Start: start.Pos.Offset, End: end.End()}
	return decl
}

// parseInterfaceDecl handles `interface Name: action actionName [with
// Param, Param] ... end interface` — a list of bare action signatures,
// each on its own `action` line with no colon, body, or `end action`
// of its own.
func (p *Parser) parseInterfaceDecl() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'interface'
	if !p.curIs(lexer.IDENT) {
		p.errorf(p.curTok, "expected interface name, got %s", p.curTok.Type)
		return nil
	}
	name := p.curTok.Literal
	p.nextToken()
	p.expect(lexer.COLON)

	decl := &ast.InterfaceDecl{Name: name}
	p.blockStack = append(p.blockStack, "interface")
	for !p.curIsAny(lexer.END_INTERFACE, lexer.END, lexer.EOF) {
		before := p.curTok
		if p.curIs(lexer.ACTION) {
			decl.Methods = append(decl.Methods, p.parseInterfaceMethodSignature())
		} else {
			p.errorf(p.curTok, "expected 'action' in interface body, got %s", p.curTok.Type)
			p.nextToken()
		}
		if p.curTok == before {
			p.nextToken()
		}
	}
	p.blockStack = p.blockStack[:len(p.blockStack)-1]
	end := p.curTok
	p.consumeBlockEnd(lexer.END_INTERFACE)

	decl.Span = ast.Span{Start: start.Pos.Offset, End: end.End()}
	return decl
}

// parseInterfaceMethodSignature handles one `action Name [with Param,
// Param]` line within an interface body: a required action name plus
// its required parameter count, with no body to parse.
func (p *Parser) parseInterfaceMethodSignature() ast.InterfaceMethod {
	p.nextToken() // consume 'action'
	if !p.curIs(lexer.IDENT) && !p.curIs(lexer.INITIALIZE) {
		p.errorf(p.curTok, "expected action name, got %s", p.curTok.Type)
		return ast.InterfaceMethod{}
	}
	name := p.curTok.Literal
	p.nextToken()

	arity := 0
	if p.curIs(lexer.WITH) {
		p.nextToken()
		if p.curIs(lexer.IDENT) {
			arity++
			p.nextToken()
			for p.curIs(lexer.COMMA) {
				p.nextToken()
				if p.curIs(lexer.IDENT) {
					arity++
					p.nextToken()
				}
			}
		}
	}
	return ast.InterfaceMethod{Name: name, Arity: arity}
}

// parsePropertyDecl handles `property Name [as Type] [= Default]`, with
// an optional leading `private`/`public` visibility modifier.
func (p *Parser) parsePropertyDecl() ast.PropertyDecl {
	vis := ast.Public
	if p.curIs(lexer.PRIVATE) {
		vis = ast.PrivateVis
		p.nextToken()
	} else if p.curIs(lexer.PUBLIC) {
		p.nextToken()
	}
	p.expect(lexer.PROPERTY)
	prop := ast.PropertyDecl{Visibility: vis}
	if p.curIs(lexer.IDENT) {
		prop.Name = p.curTok.Literal
		p.nextToken()
	}
	if p.curIs(lexer.AS) {
		p.nextToken()
		if p.curIs(lexer.IDENT) {
			prop.TypeName = p.curTok.Literal
			p.nextToken()
		}
	}
	if p.curIs(lexer.ASSIGN) {
		p.nextToken()
		prop.Default = p.parseExpression(LOWEST)
	}
	return prop
}

// parseTryStatement handles `try: ... [catch Var: ...] end try`.
func (p *Parser) parseTryStatement() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'try'
	p.expect(lexer.COLON)
	body := p.parseBlock("try", lexer.CATCH, lexer.END_TRY, lexer.END)

	var catchVar string
	var catchBlock *ast.BlockStatement
	if p.curIs(lexer.CATCH) {
		p.nextToken()
		if p.curIs(lexer.IDENT) {
			catchVar = p.curTok.Literal
			p.nextToken()
		}
		p.expect(lexer.COLON)
		catchBlock = p.parseBlock("catch", lexer.END_TRY, lexer.END)
	}
	end := p.curTok
	p.consumeBlockEnd(lexer.END_TRY)

	n := &ast.TryStatement{Body: body, CatchVar: catchVar, Catch: catchBlock}
	n.Span = ast.Span{Start: start.Pos.Offset, End: end.End()}
	return n
}

// parseOpenStatement handles `open file/url Source as Handle`.
func (p *Parser) parseOpenStatement() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'open'
	kind := "file"
	if p.curIs(lexer.URL) {
		kind = "url"
		p.nextToken()
	} else if p.curIs(lexer.FILE) {
		p.nextToken()
	}
	source := p.parseExpression(LOWEST)
	p.expect(lexer.AS)
	var handle string
	if p.curIs(lexer.IDENT) {
		handle = p.curTok.Literal
		p.nextToken()
	}
	n := &ast.OpenStatement{Kind: kind, Source: source, Handle: handle}
	n.Span = ast.Span{Start: start.Pos.Offset, End: p.curTok.Pos.Offset}
	return n
}

func (p *Parser) parseCloseStatement() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'close'
	var handle string
	if p.curIs(lexer.IDENT) {
		handle = p.curTok.Literal
		p.nextToken()
	}
	n := &ast.CloseStatement{Handle: handle}
	n.Span = ast.Span{Start: start.Pos.Offset, End: start.End()}
	return n
}

// parseReadStatement handles `read content from Handle into Target`.
func (p *Parser) parseReadStatement() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'read'
	if p.curIs(lexer.IDENT) && p.curTok.Literal == "content" {
		p.nextToken()
	}
	p.expect(lexer.FROM)
	var handle string
	if p.curIs(lexer.IDENT) {
		handle = p.curTok.Literal
		p.nextToken()
	}
	p.expect(lexer.INTO)
	var target string
	if p.curIs(lexer.IDENT) {
		target = p.curTok.Literal
		p.nextToken()
	}
	n := &ast.ReadStatement{Handle: handle, Target: target}
	n.Span = ast.Span{Start: start.Pos.Offset, End: p.curTok.Pos.Offset}
	return n
}

// parseAppendStatement handles `append content Value into Handle`.
func (p *Parser) parseAppendStatement() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'append'
	if p.curIs(lexer.IDENT) && p.curTok.Literal == "content" {
		p.nextToken()
	}
	value := p.ParseTopExpression()
	p.expect(lexer.INTO)
	var handle string
	if p.curIs(lexer.IDENT) {
		handle = p.curTok.Literal
		p.nextToken()
	}
	n := &ast.AppendStatement{Value: value, Handle: handle}
	n.Span = ast.Span{Start: start.Pos.Offset, End: p.curTok.Pos.Offset}
	return n
}

// parseWriteStatement handles `write content Value into Handle`
// (overwrites rather than appends).
func (p *Parser) parseWriteStatement() ast.Statement {
	start := p.curTok
	p.nextToken() // consume 'write'
	if p.curIs(lexer.IDENT) && p.curTok.Literal == "content" {
		p.nextToken()
	}
	value := p.ParseTopExpression()
	p.expect(lexer.INTO)
	var handle string
	if p.curIs(lexer.IDENT) {
		handle = p.curTok.Literal
		p.nextToken()
	}
	n := &ast.WriteStatement{Value: value, Handle: handle}
	n.Span = ast.Span{Start: start.Pos.Offset, End: p.curTok.Pos.Offset}
	return n
}

func (p *Parser) parseWaitForStatement() ast.Statement {
	start := p.curTok
	p.nextToken() // consume fused 'wait for'
	expr := p.parseExpression(LOWEST)
	n := &ast.WaitForStatement{Expr: expr}
	n.Span = ast.Span{Start: start.Pos.Offset, End: p.curTok.Pos.Offset}
	return n
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	start := p.curTok
	expr := p.ParseTopExpression()
	if expr == nil {
		return nil
	}
	n := &ast.ExpressionStatement{Expr: expr}
	n.Span = ast.Span{Start: start.Pos.Offset, End: p.curTok.Pos.Offset}
	return n
}
