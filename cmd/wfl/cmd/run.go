package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/logbie/wfl/internal/config"
	"github.com/logbie/wfl/internal/diag"
	"github.com/logbie/wfl/pkg/wfl"
)

var (
	evalExpr   string
	dumpLex    bool
	dumpAST    bool
	traceExec  bool
	typeCheck  bool
	configPath string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a wfl script",
	Long: `Execute a wfl program from a file or an inline expression.

Examples:
  wfl run script.wfl
  wfl run -e "display 2 plus 2"
  wfl run --lex script.wfl      # dump tokens to script.wfl.lex.txt and stop
  wfl run --ast script.wfl      # dump the AST to script.wfl.ast.txt and stop
  wfl run --trace script.wfl    # log declare/assign/call/return events to stderr`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpLex, "lex", false, "dump tokens to <input>.lex.txt and stop")
	runCmd.Flags().BoolVar(&dumpAST, "ast", false, "dump the AST to <input>.ast.txt and stop")
	runCmd.Flags().BoolVar(&traceExec, "trace", false, "log execution trace events to stderr")
	runCmd.Flags().BoolVar(&typeCheck, "type-check", true, "run the static type checker before execution")
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a wfl.yaml configuration file")
}

func readInput(args []string) (source, name string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), "<stdin>", nil
}

func runScript(_ *cobra.Command, args []string) error {
	source, name, err := readInput(args)
	if err != nil {
		return err
	}

	cfgBag := &diag.Bag{}
	opts, err := config.Load(configPath, cfgBag)
	if err != nil {
		return err
	}
	for _, d := range cfgBag.All() {
		fmt.Fprintln(os.Stderr, d.Message)
	}

	var engineOpts []wfl.Option
	engineOpts = append(engineOpts, wfl.WithConfig(opts), wfl.WithTypeCheck(typeCheck))
	if traceExec {
		engineOpts = append(engineOpts, wfl.WithTrace(os.Stderr))
	}
	engine, err := wfl.New(engineOpts...)
	if err != nil {
		return newExitError(ExitInternal, "creating engine: %v", err)
	}

	if dumpLex {
		return writeSideFile(name, ".lex.txt", wfl.LexDump(source))
	}

	prog, err := engine.Compile(name, source)
	if err != nil {
		return newExitError(ExitInternal, "compiling: %v", err)
	}

	if dumpAST {
		return writeSideFile(name, ".ast.txt", prog.Dump())
	}

	if prog.HasErrors() {
		fmt.Fprintln(os.Stderr, prog.Render())
		return newExitError(ExitScriptErr, "%s: compilation failed", name)
	}

	if _, err := engine.Run(prog); err != nil {
		fmt.Fprintf(os.Stderr, "runtime error: %s\n", err)
		return newExitError(ExitScriptErr, "%s: execution failed", name)
	}

	return nil
}

// writeSideFile writes content to name with suffix appended (or a
// literal "stdin"+suffix when reading from a pipe or -e), the `--lex`/
// `--ast` dump convention.
func writeSideFile(name, suffix, content string) error {
	base := name
	if base == "<eval>" || base == "<stdin>" {
		base = "stdin"
	}
	path := base + suffix
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return newExitError(ExitInternal, "writing %s: %v", path, err)
	}
	return nil
}
