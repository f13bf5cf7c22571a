package commands

import (
	"github.com/spf13/cobra"

	"github.com/WandLZhang/schare-project-onboarder/cmd/onboarder/handlers"
)

// Billing returns the command for listing usable billing accounts.
//
// Environment variables:
//
//	GOOGLE_OAUTH_ACCESS_TOKEN: OAuth2 access token (required)
func Billing() *cobra.Command {
	return &cobra.Command{
		Use:   "billing",
		Short: "List billing accounts you can link projects to",
		Long: `Billing lists the billing accounts visible to the caller, marking the
ones that can actually be linked (open, with the required permission).

Example:
  onboarder billing`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Billing(cmd.Context())
		},
	}
}
