// Package main is the entry point for the synthex CLI.
package main

import (
	"os"

	"github.com/tanaos/synthex-go/cmd/synthex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
