package lexer

// keywords is the single-word keyword table, keyed by the lowercase
// spelling. Identifiers are matched against it after being read; a miss
// falls through to IDENT. Keeping this table in one place localizes
// future additions rather than scattering them across the scanner.
var keywords = map[string]TokenType{
	"true": TRUE, "false": FALSE, "nothing": NOTHING,
	"end":   END,
	"store": STORE, "as": AS, "define": DEFINE, "variable": VARIABLE,
	"change": CHANGE, "to": TO,
	"display":   DISPLAY,
	"if":        IF,
	"check":     CHECK,
	"then":      THEN,
	"else":      ELSE,
	"otherwise": OTHERWISE,
	"while":     WHILE,
	"repeat":    REPEAT,
	"until":     UNTIL,
	"forever":   FOREVER,
	"count":     COUNT,
	"from":      FROM,
	"by":        BY,
	"in":        IN,
	"break":     BREAK,
	"continue":  CONTINUE,
	"exit":      EXIT,
	"loop":      LOOP,
	"provide":   PROVIDE,
	"action":    ACTION,
	"with":      WITH,
	"call":      CALL,
	"container": CONTAINER,
	"interface": INTERFACE,
	"property":  PROPERTY,
	"private":   PRIVATE,
	"public":    PUBLIC,
	"parent":    PARENT,
	"new":       NEW,
	"implements": IMPLEMENTS,
	"initialize": INITIALIZE,
	"try":        TRY,
	"catch":      CATCH,
	"open":       OPEN,
	"close":      CLOSE,
	"read":       READ,
	"append":     APPEND,
	"write":      WRITE,
	"into":       INTO,
	"file":       FILE,
	"url":        URL,
	"handle":     HANDLE,
	"not":        NOT,
	"and":        AND,
	"or":         OR,
	"plus":       PLUS,
	"minus":      MINUS,
	"times":      TIMES,
}

// fusion describes one multi-word keyword: the continuation words that
// follow the triggering first word, and the TokenType produced when the
// lexer's lookahead matches them exactly, in order.
type fusion struct {
	words []string
	typ   TokenType
}

// fusionTable maps a first word (lowercase) to the candidate multi-word
// completions the lexer should try, longest (most words) first so a
// greedy match never stops short of the longest valid fusion.
var fusionTable = map[string][]fusion{
	"end": {
		{[]string{"action"}, END_ACTION},
		{[]string{"check"}, END_CHECK},
		{[]string{"for"}, END_FOR},
		{[]string{"count"}, END_COUNT},
		{[]string{"repeat"}, END_REPEAT},
		{[]string{"try"}, END_TRY},
		{[]string{"loop"}, END_LOOP},
		{[]string{"while"}, END_WHILE},
		{[]string{"container"}, END_CONTAINER},
		{[]string{"interface"}, END_INTERFACE},
	},
	"divided": {
		{[]string{"by"}, DIVIDED_BY},
	},
	"is": {
		{[]string{"not", "equal", "to"}, IS_NOT_EQUAL_TO},
		{[]string{"equal", "to"}, IS_EQUAL_TO},
		{[]string{"greater", "than"}, IS_GREATER_THAN},
		{[]string{"less", "than"}, IS_LESS_THAN},
	},
	"for": {
		{[]string{"each"}, FOREACH},
	},
	"wait": {
		{[]string{"for"}, WAITFOR},
	},
}

// lookupIdent classifies a plain word as a single-word keyword or an
// identifier. Matching is case-sensitive: wfl keywords are written in
// their canonical lowercase prose form (examples are all
// lowercase), matching the plain-word reading a natural-language-styled
// grammar wants.
func lookupIdent(word string) TokenType {
	if t, ok := keywords[word]; ok {
		return t
	}
	return IDENT
}
