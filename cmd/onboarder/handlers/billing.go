package handlers

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/WandLZhang/schare-project-onboarder/internal/provisioning"
	"github.com/WandLZhang/schare-project-onboarder/internal/util/prerequisites"
)

// Billing handles the billing command.
//
// It lists the billing accounts visible to the caller and probes each open
// one for the permission needed to link projects, so the user knows up
// front which accounts an onboarding run can actually use.
func Billing(ctx context.Context) error {
	if err := checkDefaultPrereqs(); err != nil {
		return err
	}

	client := newCloudClient(os.Getenv(prerequisites.TokenEnvVar))

	accounts, err := client.ListBillingAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list billing accounts: %w", err)
	}
	if len(accounts) == 0 {
		fmt.Println("No billing accounts visible to this token.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tNAME\tSTATE\tLINKABLE")
	for _, acc := range accounts {
		state := "open"
		linkable := "-"
		if !acc.Open {
			state = "closed"
			linkable = "no"
		} else {
			granted, err := client.TestBillingPermission(ctx, acc.Name, provisioning.BillingLinkPermission)
			switch {
			case err != nil:
				linkable = "unknown"
			case granted:
				linkable = "yes"
			default:
				linkable = "no"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", acc.Name, acc.DisplayName, state, linkable)
	}
	return w.Flush()
}
