// Package main is the entry point for the SMT CLI.
package main

import (
	"os"

	"github.com/f3rmion/smt/cmd/smt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
