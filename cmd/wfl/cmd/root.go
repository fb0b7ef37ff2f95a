package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes follow the BSD sysexits convention: success, a usage
// mistake, a reported script-stage error, or an internal failure that
// should never happen in correct code.
const (
	ExitSuccess   = 0
	ExitUsage     = 64
	ExitScriptErr = 65
	ExitInternal  = 70
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "wfl",
	Short: "wfl interpreter",
	Long: `wfl runs programs written in the wfl natural-language-flavored
scripting language: lex, parse, analyze, type-check, and execute a
script, or inspect any one of those stages in isolation.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Subcommands report failures as a
// plain error (bad flags/arguments) or an *exitError (a script-stage
// failure, carrying its own exit code); main() prints the error itself
// since SilenceErrors keeps cobra from double-printing it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// exitError pairs a message with one of the process exit codes above,
// letting main() translate a cobra RunE failure into the right code
// without every subcommand calling os.Exit itself.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func newExitError(code int, format string, args ...any) *exitError {
	return &exitError{code: code, err: fmt.Errorf(format, args...)}
}

// ExitCode extracts the process exit code a returned error implies: an
// *exitError names its own code; any other error is treated as a usage
// mistake: bad flags or arguments cobra rejected, or an input or config
// file a subcommand could not read.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if ee, ok := err.(*exitError); ok {
		return ee.code
	}
	return ExitUsage
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(ExitInternal)
}
