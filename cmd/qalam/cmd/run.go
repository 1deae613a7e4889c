package cmd

import (
	"os"

	"github.com/qalam-lang/qalam/pkg/qalam"
	"github.com/spf13/cobra"
)

var rawSource string

var runCmd = &cobra.Command{
	Use:   "run [file.qlm]",
	Short: "Run a Qalam program",
	Long: `Execute a Qalam program from a .qlm file, or inline via --raw.

Examples:
  qalam run script.qlm
  qalam run --raw 'qul "hello";'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&rawSource, "raw", "", "run inline source instead of a file")
}

func runScript(_ *cobra.Command, args []string) error {
	source, err := readSource(rawSource, args)
	if err != nil {
		return err
	}

	code := qalam.Run(source, os.Stdout, os.Stderr, rawSource != "")
	if code != 0 {
		os.Exit(code)
	}
	return nil
}
