// Package main is the entry point for the onboarder CLI.
//
// onboarder is a command-line tool for setting up Google Cloud projects
// for ScHARe researchers. It walks the user through an interactive wizard,
// creates the project, enables the needed APIs, links billing, and grants
// access — and deletes the half-built project again if any of it fails.
//
// Commands: onboard, billing, projects, version, completion.
//
// For detailed usage information, run:
//
//	onboarder --help
package main

import (
	"fmt"
	"os"

	"github.com/WandLZhang/schare-project-onboarder/cmd/onboarder/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
