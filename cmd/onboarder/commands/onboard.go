package commands

import (
	"github.com/spf13/cobra"

	"github.com/WandLZhang/schare-project-onboarder/cmd/onboarder/handlers"
)

// Onboard returns the command for onboarding a new research project.
//
// This command runs the interactive wizard, creates the project, enables
// the selected API services, links billing, and grants the researcher
// access. If any step after project creation fails, the project is
// deleted again so no half-configured project is left behind.
//
// Optional flags:
//
//	--config, -c: Path to onboarder configuration YAML file (default: onboarder.yaml)
//	--save-config: Write the wizard answers back to the config file
//	--no-tui: Plain log output instead of the progress dashboard
//
// Environment variables:
//
//	GOOGLE_OAUTH_ACCESS_TOKEN: OAuth2 access token (required)
func Onboard() *cobra.Command {
	var configPath string
	var saveConfig bool
	var noTUI bool

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Set up a new research project",
		Long: `Onboard walks you through setting up a Google Cloud project.

The wizard asks for:
  1. Project ID and name
  2. Billing account
  3. API services to enable
  4. Who gets access, and with which roles

Then the project is provisioned step by step. If anything fails after the
project has been created, the project is deleted again; you either get a
fully working project or none at all.

Examples:
  # Onboard with the wizard, reading defaults from onboarder.yaml
  onboarder onboard

  # Onboard using a specific config file and remember the answers
  onboarder onboard -c team.yaml --save-config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Onboard(cmd.Context(), handlers.OnboardOptions{
				ConfigPath: configPath,
				SaveConfig: saveConfig,
				NoTUI:      noTUI,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: onboarder.yaml)")
	cmd.Flags().BoolVar(&saveConfig, "save-config", false, "Write wizard answers back to the config file")
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Disable the progress dashboard")

	return cmd
}
