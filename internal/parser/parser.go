// Package parser implements a recursive-descent, Pratt-style parser
// over the lexer's token stream, producing an internal/ast tree plus a
// diag.Bag of syntax diagnostics.
package parser

import (
	"fmt"

	"github.com/logbie/wfl/internal/ast"
	"github.com/logbie/wfl/internal/diag"
	"github.com/logbie/wfl/internal/lexer"
)

// Precedence levels, lowest to highest. CALL/INDEX/MEMBER bind tighter
// than any binary operator so postfix forms (`list[i]`, `thing.name`)
// always attach to the nearest primary expression. A `with` chain is not
// on this ladder; ParseTopExpression handles it after the full
// expression.
const (
	_ int = iota
	LOWEST
	OR_PREC
	AND_PREC
	EQUALITY
	COMPARISON
	MATCHES
	SUM
	PRODUCT
	PREFIX
	CALL
	INDEX
	MEMBER
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:              OR_PREC,
	lexer.AND:             AND_PREC,
	lexer.IS_EQUAL_TO:     EQUALITY,
	lexer.IS_NOT_EQUAL_TO: EQUALITY,
	lexer.EQ:              EQUALITY,
	lexer.NOT_EQ:          EQUALITY,
	lexer.IS_GREATER_THAN: COMPARISON,
	lexer.IS_LESS_THAN:    COMPARISON,
	lexer.LT:              COMPARISON,
	lexer.GT:              COMPARISON,
	lexer.LT_EQ:           COMPARISON,
	lexer.GT_EQ:           COMPARISON,
	lexer.PLUS:            SUM,
	lexer.MINUS:           SUM,
	lexer.PLUSOP:          SUM,
	lexer.MINUSOP:         SUM,
	lexer.TIMES:           PRODUCT,
	lexer.DIVIDED_BY:      PRODUCT,
	lexer.STAROP:          PRODUCT,
	lexer.SLASHOP:         PRODUCT,
	lexer.LPAREN:          CALL,
	lexer.LBRACK:          INDEX,
	lexer.DOT:             MEMBER,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser holds the two-token lookahead window classic to a hand-written
// descent parser, the known-actions set that disambiguates a `with`
// chain between call arguments and concatenation, and a stack of the
// labels of the blocks currently open. Orphaned `end ...` tokens are
// detected from each block's terminator list, not from this stack.
type Parser struct {
	l *lexer.Lexer

	curTok  lexer.Token
	peekTok lexer.Token

	bag *diag.Bag
	src int // diag.Span file id

	knownActions map[string]bool
	blockStack   []string

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser reading from l, reporting diagnostics into bag
// tagged with source file id.
func New(l *lexer.Lexer, bag *diag.Bag, fileID int) *Parser {
	p := &Parser{l: l, bag: bag, src: fileID, knownActions: map[string]bool{}}

	p.prefixFns = map[lexer.TokenType]prefixParseFn{
		lexer.NUMBER:  p.parseNumberLiteral,
		lexer.STRING:  p.parseTextLiteral,
		lexer.TRUE:    p.parseBoolLiteral,
		lexer.FALSE:   p.parseBoolLiteral,
		lexer.NOTHING: p.parseNothingLiteral,
		lexer.IDENT:   p.parseIdentifierOrCall,
		lexer.COUNT:   p.parseIdentifierOrCall, // the count loop's variable
		lexer.NOT:     p.parseUnary,
		lexer.MINUSOP: p.parseUnary,
		lexer.LPAREN:  p.parseGroupedExpression,
		lexer.LBRACK:  p.parseListLiteral,
		lexer.NEW:     p.parseNewExpression,
		lexer.CALL:    p.parseCallKeywordExpression,
	}

	p.infixFns = map[lexer.TokenType]infixParseFn{
		lexer.OR: p.parseBinary, lexer.AND: p.parseBinary,
		lexer.IS_EQUAL_TO: p.parseBinary, lexer.IS_NOT_EQUAL_TO: p.parseBinary,
		lexer.EQ: p.parseBinary, lexer.NOT_EQ: p.parseBinary,
		lexer.IS_GREATER_THAN: p.parseBinary, lexer.IS_LESS_THAN: p.parseBinary,
		lexer.LT: p.parseBinary, lexer.GT: p.parseBinary,
		lexer.LT_EQ: p.parseBinary, lexer.GT_EQ: p.parseBinary,
		lexer.PLUS: p.parseBinary, lexer.MINUS: p.parseBinary,
		lexer.PLUSOP: p.parseBinary, lexer.MINUSOP: p.parseBinary,
		lexer.TIMES: p.parseBinary, lexer.DIVIDED_BY: p.parseBinary,
		lexer.STAROP: p.parseBinary, lexer.SLASHOP: p.parseBinary,
		lexer.LBRACK: p.parseIndexExpression,
		lexer.DOT:    p.parseMemberExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.curTok.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peekTok.Type == t }

func (p *Parser) span(start lexer.Position, end lexer.Token) ast.Span {
	return ast.Span{Start: start.Offset, End: end.End()}
}

func (p *Parser) errorf(tok lexer.Token, format string, args ...any) {
	p.bag.Add(diag.Diagnostic{
		Severity: diag.Error,
		Kind:     diag.KindSyntactic,
		Span:     diag.Span{File: p.src, Start: tok.Pos.Offset, End: tok.End()},
		Message:  fmt.Sprintf(format, args...),
	})
}

func (p *Parser) warnf(tok lexer.Token, format string, args ...any) {
	p.bag.Add(diag.Diagnostic{
		Severity: diag.Warning,
		Kind:     diag.KindSyntactic,
		Span:     diag.Span{File: p.src, Start: tok.Pos.Offset, End: tok.End()},
		Message:  fmt.Sprintf(format, args...),
	})
}

// expect advances past the current token if it matches t, else records
// a diagnostic and leaves the cursor in place so the caller's own
// recovery (usually falling through to statement-level sync) applies.
func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(p.curTok, "expected %s, got %s", t, p.curTok.Type)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekTok.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses an entire source file into a Program, guaranteeing
// the token index strictly advances every iteration even when a
// statement fails to parse (invariant: "the parser always makes
// progress").
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(lexer.EOF) {
		before := p.curTok
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if p.curTok == before {
			// No production consumed a token (a statement parse bailed out
			// immediately on an unrecognized leading token); force progress.
			p.errorf(p.curTok, "unexpected token %s", p.curTok.Type)
			p.nextToken()
		}
	}
	return prog
}

// consumeOrphanEnd handles a bare `end` or fused `end X` encountered
// where no open block expects it: it is consumed with a single warning
// rather than treated as a hard error, so one orphan terminator does not
// cascade into further spurious diagnostics.
func (p *Parser) consumeOrphanEnd() {
	p.warnf(p.curTok, "orphaned block terminator %q with no matching opening block", p.curTok.Type)
	p.nextToken()
}

func isEndToken(t lexer.TokenType) bool {
	switch t {
	case lexer.END, lexer.END_ACTION, lexer.END_CHECK, lexer.END_FOR, lexer.END_COUNT,
		lexer.END_REPEAT, lexer.END_TRY, lexer.END_LOOP, lexer.END_WHILE, lexer.END_CONTAINER,
		lexer.END_INTERFACE:
		return true
	default:
		return false
	}
}
