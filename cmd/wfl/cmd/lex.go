package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logbie/wfl/pkg/wfl"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a wfl script and print its tokens",
	Long: `Tokenize a wfl program and print one "line:col kind lexeme" line per
token, in the format behind "wfl run --lex". Useful for
debugging the lexer.

Examples:
  wfl lex script.wfl
  wfl lex -e "display 2 plus 2"`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func lexScript(_ *cobra.Command, args []string) error {
	source, _, err := readInput(args)
	if err != nil {
		return err
	}
	fmt.Print(wfl.LexDump(source))
	return nil
}
