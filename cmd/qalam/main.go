// Command qalam is the command-line front-end for the Qalam interpreter
// core (spec.md §1 "the command-line front-end... core consumes a
// source string and emits exit codes via an error reporter").
package main

import (
	"fmt"
	"os"

	"github.com/qalam-lang/qalam/cmd/qalam/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
