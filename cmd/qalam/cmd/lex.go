package cmd

import (
	"fmt"
	"os"

	"github.com/qalam-lang/qalam/internal/lexer"
	"github.com/spf13/cobra"
)

var lexRawSource string

var lexCmd = &cobra.Command{
	Use:   "lex [file.qlm]",
	Short: "Tokenize a Qalam file or expression",
	Long: `Tokenize (lex) a Qalam program and print the resulting tokens.
Useful for debugging the scanner.

Examples:
  qalam lex script.qlm
  qalam lex --raw 'niyya x = 1;'`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVar(&lexRawSource, "raw", "", "tokenize inline source instead of a file")
}

func lexScript(_ *cobra.Command, args []string) error {
	source, err := readSource(lexRawSource, args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	for _, tok := range l.ScanTokens() {
		fmt.Printf("%-4d %-10s %q\n", tok.Line, tok.Kind, tok.Lexeme)
	}
	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "scan error at line %d: %s\n", e.Line, e.Message)
		}
		return fmt.Errorf("scanning failed with %d error(s)", len(errs))
	}
	return nil
}

// readSource resolves the common "--raw or a file path" input shape
// shared by run/lex/parse.
func readSource(raw string, args []string) (string, error) {
	if raw != "" {
		return raw, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), nil
	}
	return "", fmt.Errorf("provide a .qlm file path or use --raw for inline source")
}
