// Package main is the entry point for the threadpatch CLI binary.
package main

import (
	"os"

	"github.com/irahardianto/threadpatch/cmd/threadpatch/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
