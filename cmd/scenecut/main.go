// Package main provides the CLI entry point for scenecut.
package main

import (
	"fmt"
	"os"

	"github.com/doedja/scenecut/cmd/scenecut/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
