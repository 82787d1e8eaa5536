// Package main is the entry point for the todorpg TUI and CLI.
package main

import (
	"os"

	"github.com/sandeepkv93/todorpg/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
