package wizard

import (
	"github.com/WandLZhang/schare-project-onboarder/internal/config"
	"github.com/WandLZhang/schare-project-onboarder/internal/provisioning"
	"github.com/WandLZhang/schare-project-onboarder/internal/util/naming"
)

// BuildRequest creates a provisioning request from the wizard result.
func BuildRequest(result *Result) provisioning.Request {
	req := provisioning.Request{
		ProjectID:      result.ProjectID,
		DisplayName:    result.DisplayName,
		BillingAccount: naming.BillingAccountResource(result.BillingAccount),
		Services:       result.Services,
		Grantee:        result.Grantee,
		Roles:          result.Roles,
	}

	if result.CreateServiceAccount {
		req.ServiceAccountID = result.ServiceAccountID
	}

	return req
}

// BuildConfig creates a reusable Config from the wizard result, so the next
// onboarding run can start from the same answers.
func BuildConfig(result *Result) *config.Config {
	cfg := &config.Config{
		BillingAccount: naming.BillingAccountResource(result.BillingAccount),
		Services:       result.Services,
		Roles:          result.Roles,
		Grantee:        result.Grantee,
	}

	if result.CreateServiceAccount {
		cfg.ServiceAccountID = result.ServiceAccountID
	}

	return cfg
}
