// Package wfl is the embeddable host API: the facade a Go program
// links against to lex, parse, analyze, type-check, and run wfl
// source. cmd/wfl is itself just a thin Cobra wrapper around this
// package.
package wfl

import (
	"fmt"
	"io"
	"os"

	"github.com/logbie/wfl/internal/ast"
	"github.com/logbie/wfl/internal/builtins"
	"github.com/logbie/wfl/internal/config"
	"github.com/logbie/wfl/internal/diag"
	"github.com/logbie/wfl/internal/interp"
	"github.com/logbie/wfl/internal/lexer"
	"github.com/logbie/wfl/internal/parser"
	"github.com/logbie/wfl/internal/semantic"
	"github.com/logbie/wfl/internal/wfllog"
)

// Engine holds the configuration a host sets once and reuses across
// many Compile/Eval calls: output stream, tracer, cancellation token,
// and a set of native actions layered on top of the standard library.
type Engine struct {
	out       io.Writer
	opts      config.Options
	typeCheck bool
	tracer    interp.TraceSink
	cancel    *interp.CancellationToken
	natives   map[string]interp.NativeFunc
	log       *wfllog.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOutput sets the writer `display` statements write to. Defaults
// to os.Stdout.
func WithOutput(out io.Writer) Option {
	return func(e *Engine) { e.out = out }
}

// WithConfig overrides the Engine's resolved configuration Options
//, normally produced by config.Load.
func WithConfig(opts config.Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithTypeCheck toggles the static type-checking stage run between
// parsing and evaluation. Enabled by default.
func WithTypeCheck(enabled bool) Option {
	return func(e *Engine) { e.typeCheck = enabled }
}

// WithTrace installs a WriterSink that logs every trace event to out
// ("Execution tracing").
func WithTrace(out io.Writer) Option {
	return func(e *Engine) { e.tracer = interp.WriterSink{Out: out} }
}

// WithCancellation installs a cancellation token a host can trip from
// another goroutine ("Suspension points").
func WithCancellation(tok *interp.CancellationToken) Option {
	return func(e *Engine) { e.cancel = tok }
}

// New builds an Engine. Defaults: stdout output, type-checking on, no
// tracer, no cancellation token, config.Defaults(). When no tracer was
// installed and the configuration sets execution_logging, trace events
// are written to stderr.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		out:       os.Stdout,
		opts:      config.Defaults(),
		typeCheck: true,
		natives:   map[string]interp.NativeFunc{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.tracer == nil && e.opts.ExecutionLogging {
		e.tracer = interp.WriterSink{Out: os.Stderr}
	}
	e.log = wfllog.New(e.out, e.opts)
	return e, nil
}

// RegisterNativeAction binds name to fn, making it callable from any
// script this Engine later compiles or runs. Re-registering a name
// already bound by the standard library shadows it; a host wanting to
// detect an accidental collision should check builtins.Names() itself.
func (e *Engine) RegisterNativeAction(name string, fn interp.NativeFunc) {
	e.natives[name] = fn
}

// SetOutput redirects subsequent Eval/Run output.
func (e *Engine) SetOutput(out io.Writer) {
	e.out = out
}

// Program is one compiled unit: its AST, the diagnostics produced while
// getting there, and the SourceSet needed to render them.
type Program struct {
	ast     *ast.Program
	bag     *diag.Bag
	sources *diag.SourceSet
	fileID  int
}

// AST exposes the parsed tree, for a host that wants to inspect or
// dump it directly (Host API `parse()`).
func (p *Program) AST() *ast.Program { return p.ast }

// Diagnostics returns every diagnostic accumulated across lexing,
// parsing, analysis, and type-checking, in stage order.
func (p *Program) Diagnostics() []diag.Diagnostic { return p.bag.All() }

// HasErrors reports whether any accumulated diagnostic is Error-severity.
func (p *Program) HasErrors() bool { return p.bag.HasErrors() }

// Render formats every diagnostic for display, source-annotated.
func (p *Program) Render() string { return diag.RenderAll(p.bag.All(), p.sources) }

// Dump renders the AST as the indented S-expression tree behind the
// CLI's `--ast` flag.
func (p *Program) Dump() string { return ast.Dump(p.ast) }

// Compile lexes, parses, (optionally) analyzes and type-checks source,
// returning a Program whose Diagnostics/HasErrors reflect every stage
// run. Per propagation policy, analysis and type-checking are
// skipped once parsing already produced an Error diagnostic — but
// lexer and parser errors are always collected together rather than
// stopping at the first lex error ("Lexer errors do not abort
// lexing").
func (e *Engine) Compile(name, source string) (*Program, error) {
	sources := &diag.SourceSet{}
	file := sources.Add(name, source)
	bag := &diag.Bag{}

	l := lexer.New(source)
	p := parser.New(l, bag, file.ID)
	prog := p.ParseProgram()
	for _, le := range l.Errors() {
		bag.Add(diag.Diagnostic{
			Severity: diag.Error,
			Kind:     diag.KindLexical,
			Span:     diag.Span{File: file.ID, Start: le.Pos.Offset, End: le.Pos.Offset + 1},
			Message:  le.Message,
		})
	}

	if !bag.HasErrors() {
		analyzer := semantic.NewAnalyzer(bag, file.ID, builtins.Names())
		analyzer.Analyze(prog)
	}
	if e.typeCheck && !bag.HasErrors() {
		checker := semantic.NewChecker(bag, file.ID)
		checker.Check(prog)
	}

	return &Program{ast: prog, bag: bag, sources: sources, fileID: file.ID}, nil
}

// newInterpreter builds an Interpreter wired with the standard library
// plus every host-registered native action, this Engine's output,
// tracer, and cancellation token.
func (e *Engine) newInterpreter() *interp.Interpreter {
	i := interp.New(e.out)
	i.Tracer = e.tracer
	i.Cancel = e.cancel
	builtins.Register(i)
	for name, fn := range e.natives {
		i.RegisterNativeAction(name, fn)
	}
	return i
}

// Run executes an already-compiled Program. It refuses to run a
// Program whose Compile stage reported an error ("a stage with
// any error-kind diagnostic blocks the next stage").
func (e *Engine) Run(p *Program) (interp.Value, error) {
	if p.HasErrors() {
		return nil, fmt.Errorf("refusing to run %s: %d diagnostic(s) reported, including an error", p.sources.Get(p.fileID).Name, p.bag.Len())
	}
	i := e.newInterpreter()
	return i.Run(p.ast)
}

// Eval compiles and runs source in one call, the common case for a
// host embedding the interpreter as a one-shot scripting engine.
func (e *Engine) Eval(source string) (interp.Value, error) {
	p, err := e.Compile("<eval>", source)
	if err != nil {
		return nil, err
	}
	return e.Run(p)
}

// Parse is the narrow Host API entry point that only lexes and parses,
// skipping analysis and type-checking entirely (Host API
// `parse()`).
func (e *Engine) Parse(name, source string) (*Program, error) {
	sources := &diag.SourceSet{}
	file := sources.Add(name, source)
	bag := &diag.Bag{}
	l := lexer.New(source)
	p := parser.New(l, bag, file.ID)
	prog := p.ParseProgram()
	for _, le := range l.Errors() {
		bag.Add(diag.Diagnostic{
			Severity: diag.Error,
			Kind:     diag.KindLexical,
			Span:     diag.Span{File: file.ID, Start: le.Pos.Offset, End: le.Pos.Offset + 1},
			Message:  le.Message,
		})
	}
	return &Program{ast: prog, bag: bag, sources: sources, fileID: file.ID}, nil
}
