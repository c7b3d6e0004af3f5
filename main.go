// Package main is the entry point for the autolog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/rcastillo/autolog/cmd"
	"github.com/rcastillo/autolog/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
