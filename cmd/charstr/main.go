// Package main is the entry point for the charstr command.
package main

import (
	"os"

	"github.com/dshills/charstr/cmd/charstr/cmd"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	root := cmd.NewRootCommand(cmd.BuildInfo{Version: version, Commit: commit, Date: date})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
