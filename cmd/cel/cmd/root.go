package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cel",
	Short: "CEL expression evaluator",
	Long: `go-cel evaluates Common Expression Language (CEL) expressions
against host-provided data.

CEL is a side-effect-free expression language for predicates, policies,
and projections supplied as untrusted text. Expressions are planned
once into an immutable evaluable form and run against per-call variable
bindings; errors and unknowns are ordinary values that propagate
through operators.`,
	Version: Version,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		verbosity := 0
		if verbose {
			verbosity = 1
		}
		commonlog.Configure(verbosity, nil)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
