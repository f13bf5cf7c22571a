// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the onboarder CLI.
//
// The root command serves as the entry point and parent for all subcommands.
// It provides basic CLI metadata and organizes the command hierarchy.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboarder",
		Short: "Set up Google Cloud projects for ScHARe researchers",
	}

	// Core commands
	cmd.AddCommand(Onboard())
	cmd.AddCommand(Billing())
	cmd.AddCommand(Projects())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
