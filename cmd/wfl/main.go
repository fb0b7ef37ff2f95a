// Command wfl is the CLI front-end for the wfl interpreter: run, lex,
// parse, and version subcommands over pkg/wfl's host API.
package main

import (
	"fmt"
	"os"

	"github.com/logbie/wfl/cmd/wfl/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cmd.ExitCode(err))
}
