package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/errors"
	"github.com/cwbudde/go-cel/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <expression>",
	Short: "Parse a CEL expression and dump its AST",
	Long: `Parse a CEL expression and print the expression tree, including
the comprehension fold forms produced by macro expansion.

Examples:
  cel parse "headers.ip in ['10.0.1.4']"
  cel parse "[1, 2, 3].map(x, x * 2)"`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	parsed, parseErrs := parser.Parse(args[0])
	if len(parseErrs) > 0 {
		fmt.Fprintln(os.Stderr, errors.FormatErrors(parseErrs, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(parseErrs))
	}
	fmt.Print(ast.Dump(parsed.Expr))
	return nil
}
