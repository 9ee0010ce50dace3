package main

import (
	"os"

	"boardsync/cmd/boardctl/commands"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	commands.SetVersionInfo(version, commit)

	// Errors are printed by the printer with colors.
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
