package wfl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/logbie/wfl/internal/lexer"
)

// LexDump tokenizes source and formats one line per token as
// `line:col kind lexeme` (`--lex` dump format), followed by
// any accumulated lexer errors. Lexing never stops at the first error
//: every LexError is appended after the token stream.
func LexDump(source string) string {
	l := lexer.New(source)
	var sb strings.Builder
	for {
		tok := l.NextToken()
		fmt.Fprintf(&sb, "%d:%d %s %s\n", tok.Pos.Line, tok.Pos.Column, tok.Type, strconv.Quote(tok.Literal))
		if tok.Type == lexer.EOF {
			break
		}
	}
	for _, le := range l.Errors() {
		fmt.Fprintf(&sb, "error %d:%d: %s\n", le.Pos.Line, le.Pos.Column, le.Message)
	}
	return sb.String()
}
