// Command joy is the go-joy command-line driver: run a Joy source file,
// evaluate an inline expression, or start an interactive REPL.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-joy/cmd/joy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
