package cmd

import (
	"fmt"
	"os"

	"github.com/qalam-lang/qalam/internal/lexer"
	"github.com/qalam-lang/qalam/internal/parser"
	"github.com/spf13/cobra"
)

var parseRawSource string

var parseCmd = &cobra.Command{
	Use:   "parse [file.qlm]",
	Short: "Parse a Qalam file or expression and list its top-level statements",
	Long: `Parse a Qalam program and print the node type and line of each
top-level statement; nested statements and expressions are not printed.
Useful for debugging the parser.

Examples:
  qalam parse script.qlm
  qalam parse --raw 'shart (haqq) { qul 1; }'`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVar(&parseRawSource, "raw", "", "parse inline source instead of a file")
}

func parseScript(_ *cobra.Command, args []string) error {
	source, err := readSource(parseRawSource, args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	tokens := l.ScanTokens()
	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "scan error at line %d: %s\n", e.Line, e.Message)
		}
		return fmt.Errorf("scanning failed with %d error(s)", len(errs))
	}

	p := parser.New(tokens)
	stmts := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "parse error at line %d: %s\n", e.Line, e.Message)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	for _, stmt := range stmts {
		fmt.Printf("%T @ line %d\n", stmt, stmt.Line())
	}
	return nil
}
