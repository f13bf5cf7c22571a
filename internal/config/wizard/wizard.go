package wizard

import (
	"context"
	"fmt"

	"github.com/WandLZhang/schare-project-onboarder/internal/config"
	"github.com/WandLZhang/schare-project-onboarder/internal/platform/gcloud"
	"github.com/WandLZhang/schare-project-onboarder/internal/util/naming"
)

// Result holds all the answers from the interactive wizard.
type Result struct {
	// Project Identity
	ProjectID   string
	DisplayName string

	// Billing
	BillingAccount string

	// API Services
	Services []string

	// Access
	Grantee              string
	Roles                []string
	CreateServiceAccount bool
	ServiceAccountID     string

	// Confirmed is true once the user accepted the summary.
	Confirmed bool
}

// RunWizard runs the interactive onboarding wizard. The client is used to
// list billing accounts the caller can actually see; everything else is
// answered locally. Pre-set config values become the wizard's defaults.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context, client gcloud.CloudManager, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	result := &Result{
		ProjectID:        naming.SuggestProjectID(cfg.ProjectPrefix),
		BillingAccount:   cfg.BillingAccount,
		Grantee:          cfg.Grantee,
		ServiceAccountID: cfg.ServiceAccountID,
	}

	if err := runProjectIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("project identity: %w", err)
	}

	if err := runBillingGroup(ctx, client, result); err != nil {
		return nil, fmt.Errorf("billing: %w", err)
	}

	if err := runServicesGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("services: %w", err)
	}

	if err := runAccessGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("access: %w", err)
	}

	if err := runConfirmGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("confirmation: %w", err)
	}
	if !result.Confirmed {
		return nil, ErrDeclined
	}

	return result, nil
}
