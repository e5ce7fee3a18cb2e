// Package main is the entry point for the postcraft CLI.
package main

import (
	"os"

	"github.com/jmylchreest/postcraft/cmd/postcraft/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
