// main is the entry point for the deskeval CLI.
package main

import (
	"fmt"
	"os"

	"github.com/novetech/deskeval/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
