package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set by build flags), mirroring the teacher's
// cmd/dwscript/cmd/root.go.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "qalam",
	Short: "Qalam interpreter",
	Long: `qalam runs programs written in Qalam, a small dynamically-typed
scripting language with Arabic-derived keywords (niyya for variable,
amal for function, kitab for class).`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
