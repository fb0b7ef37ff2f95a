package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logbie/wfl/pkg/wfl"
)

var parseAnalyze bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a wfl script and dump its AST",
	Long: `Parse a wfl program and print its AST as an indented S-expression
tree ("wfl run --ast" format). Unlike "wfl run --ast", this
command prints to stdout rather than writing a side file, and never
executes the program.

Examples:
  wfl parse script.wfl
  wfl parse -e "display 2 plus 2"
  wfl parse --analyze script.wfl   # also run the static analyzer/checker`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&parseAnalyze, "analyze", false, "also run the static analyzer and type checker, printing any diagnostics")
}

func runParse(_ *cobra.Command, args []string) error {
	source, name, err := readInput(args)
	if err != nil {
		return err
	}

	engine, err := wfl.New()
	if err != nil {
		return newExitError(ExitInternal, "creating engine: %v", err)
	}

	var prog *wfl.Program
	if parseAnalyze {
		prog, err = engine.Compile(name, source)
	} else {
		prog, err = engine.Parse(name, source)
	}
	if err != nil {
		return newExitError(ExitInternal, "parsing: %v", err)
	}

	if prog.HasErrors() {
		fmt.Fprintln(os.Stderr, prog.Render())
	}
	fmt.Println(prog.Dump())

	if prog.HasErrors() {
		return newExitError(ExitScriptErr, "%s: parsing reported errors", name)
	}
	return nil
}
