package ast

// ActionDecl declares a named, callable action (spec glossary: "Action —
// equivalent to function"). The parser always sets Body. A
// host-registered native action is an interp.Action with Native set
// (see interp.RegisterNativeAction), not an ActionDecl.
type ActionDecl struct {
	baseNode
	Name   string
	Params []string
	Body   *BlockStatement
}

func (*ActionDecl) statementNode() {}

// TryStatement is `try: ... catch Var: ... end try`.
type TryStatement struct {
	baseNode
	Body     *BlockStatement
	CatchVar string // empty if the catch clause binds no variable
	Catch    *BlockStatement
}

func (*TryStatement) statementNode() {}

// OpenStatement is `open file/url Source as Handle`.
type OpenStatement struct {
	baseNode
	Kind   string // "file" or "url"
	Source Expression
	Handle string
}

func (*OpenStatement) statementNode() {}

// CloseStatement is `close Handle`.
type CloseStatement struct {
	baseNode
	Handle string
}

func (*CloseStatement) statementNode() {}

// ReadStatement is `read content from Handle into Target`.
type ReadStatement struct {
	baseNode
	Handle string
	Target string
}

func (*ReadStatement) statementNode() {}

// AppendStatement is `append content Value into Handle`.
type AppendStatement struct {
	baseNode
	Value  Expression
	Handle string
}

func (*AppendStatement) statementNode() {}

// WriteStatement is `write content Value into Handle` (overwrites
// rather than appends).
type WriteStatement struct {
	baseNode
	Value  Expression
	Handle string
}

func (*WriteStatement) statementNode() {}

// WaitForStatement is `wait for Expr`: a synchronous, blocking I/O wait.
type WaitForStatement struct {
	baseNode
	Expr Expression
}

func (*WaitForStatement) statementNode() {}
