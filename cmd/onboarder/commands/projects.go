package commands

import (
	"github.com/spf13/cobra"

	"github.com/WandLZhang/schare-project-onboarder/cmd/onboarder/handlers"
)

// Projects returns the command for listing onboarded projects.
//
// Environment variables:
//
//	GOOGLE_OAUTH_ACCESS_TOKEN: OAuth2 access token (required)
func Projects() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List active projects",
		Long: `Projects lists the active projects visible to the caller.

Examples:
  # All active projects
  onboarder projects

  # Only projects with the schare- prefix
  onboarder projects --prefix schare`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Projects(cmd.Context(), prefix)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Only list projects whose ID starts with this prefix")

	return cmd
}
