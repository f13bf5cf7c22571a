package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/WandLZhang/schare-project-onboarder/internal/config"
	"github.com/WandLZhang/schare-project-onboarder/internal/platform/gcloud"
	"github.com/WandLZhang/schare-project-onboarder/internal/util/naming"
)

// runProjectIdentityGroup prompts for the project ID and display name.
func runProjectIdentityGroup(ctx context.Context, result *Result) error {
	if result.DisplayName == "" {
		result.DisplayName = "ScHARe Research Project"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project ID").
				Description("Globally unique, 6-30 lowercase letters, digits, or hyphens. Cannot be changed later.").
				Placeholder(naming.DefaultProjectPrefix+"-abc123").
				Value(&result.ProjectID).
				Validate(validateProjectID),
			huh.NewInput().
				Title("Project Name").
				Description("Human-readable name shown in the console (max 30 characters)").
				Placeholder("ScHARe Research Project").
				Value(&result.DisplayName).
				Validate(validateDisplayName),
		).Title("Project Identity"),
	).RunWithContext(ctx)
}

// runBillingGroup prompts for the billing account. When the caller can list
// billing accounts, a select is shown; otherwise the account ID is typed in.
func runBillingGroup(ctx context.Context, client gcloud.CloudManager, result *Result) error {
	accounts, err := client.ListBillingAccounts(ctx)
	if err != nil || len(accounts) == 0 {
		// Listing needs a permission not everyone has. Fall back to
		// manual entry rather than blocking the wizard.
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Billing Account ID").
					Description("The billing account the new project is charged against").
					Placeholder("XXXXXX-XXXXXX-XXXXXX").
					Value(&result.BillingAccount).
					Validate(validateBillingAccount),
			).Title("Billing"),
		).RunWithContext(ctx)
	}

	if result.BillingAccount == "" {
		result.BillingAccount = accounts[0].Name
	} else {
		result.BillingAccount = naming.BillingAccountResource(result.BillingAccount)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Billing Account").
				Description("The billing account the new project is charged against").
				Options(BillingAccountsToOptions(accounts)...).
				Value(&result.BillingAccount),
		).Title("Billing"),
	).RunWithContext(ctx)
}

// runServicesGroup prompts for the API services to enable.
func runServicesGroup(ctx context.Context, result *Result) error {
	if len(result.Services) == 0 {
		result.Services = defaultServiceKeys()
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("API Services").
				Description("Enabled on the new project, in order").
				Options(ServicesToOptions(CatalogServices)...).
				Value(&result.Services),
		).Title("Services"),
	).RunWithContext(ctx)
}

// runAccessGroup prompts for the grantee, their roles, and the optional
// working service account.
func runAccessGroup(ctx context.Context, result *Result) error {
	if len(result.Roles) == 0 {
		result.Roles = defaultRoleKeys()
	}
	result.CreateServiceAccount = result.ServiceAccountID != ""

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Grant Access To").
				Description("IAM member receiving roles on the project").
				Placeholder("user:researcher@example.org").
				Value(&result.Grantee).
				Validate(validateGrantee),
			huh.NewMultiSelect[string]().
				Title("Roles").
				Description("Granted on the new project").
				Options(RolesToOptions(CatalogRoles)...).
				Value(&result.Roles),
		).Title("Access"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Create a Working Service Account?").
				Description("A service account for notebooks and pipelines running inside the project").
				Value(&result.CreateServiceAccount),
		).Title("Service Account"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	if !result.CreateServiceAccount {
		result.ServiceAccountID = ""
		return nil
	}

	if result.ServiceAccountID == "" {
		result.ServiceAccountID = config.DefaultServiceAccountID
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Service Account ID").
				Description("The part before the @ in the service account email").
				Placeholder(config.DefaultServiceAccountID).
				Value(&result.ServiceAccountID).
				Validate(config.ValidateServiceAccountID),
		).Title("Service Account"),
	).RunWithContext(ctx)
}

// runConfirmGroup shows the summary and asks for the final go-ahead.
func runConfirmGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Create the project?").
				Description(summarize(result)).
				Affirmative("Create").
				Negative("Cancel").
				Value(&result.Confirmed),
		).Title("Review"),
	).RunWithContext(ctx)
}

// summarize renders the pending request for the confirmation screen.
func summarize(result *Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Project:  %s (%q)\n", result.ProjectID, result.DisplayName)
	fmt.Fprintf(&sb, "Billing:  %s\n", result.BillingAccount)
	fmt.Fprintf(&sb, "Services: %s\n", strings.Join(result.Services, ", "))
	fmt.Fprintf(&sb, "Access:   %s gets %s", result.Grantee, strings.Join(result.Roles, ", "))
	if result.CreateServiceAccount {
		fmt.Fprintf(&sb, "\nWorker:   %s", naming.ServiceAccountEmail(result.ServiceAccountID, result.ProjectID))
	}
	return sb.String()
}

// validateProjectID validates the project ID format.
func validateProjectID(s string) error {
	if s == "" {
		return errProjectIDRequired
	}
	if !naming.ValidProjectID(s) {
		return errProjectIDInvalid
	}
	return nil
}

// validateDisplayName validates the human-readable project name.
func validateDisplayName(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return errDisplayNameRequired
	}
	if len(trimmed) > 30 {
		return errDisplayNameTooLong
	}
	return nil
}

// validateBillingAccount validates a manually entered billing account ID.
func validateBillingAccount(s string) error {
	if s == "" {
		return errBillingAccountRequired
	}
	if !config.ValidBillingAccount(s) {
		return errBillingAccountInvalid
	}
	return nil
}

// validateGrantee validates the IAM member receiving access.
func validateGrantee(s string) error {
	if s == "" {
		return errGranteeRequired
	}
	return config.ValidateMember(s)
}
