package main

import (
	"fmt"
	"os"

	"scoresight/internal/cmd"
)

// Version information - set by ldflags during build
var Version = "dev"

func main() {
	rootCmd := cmd.RootCommand(Version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
