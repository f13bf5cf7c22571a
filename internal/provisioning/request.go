package provisioning

import (
	"fmt"
	"strings"

	"github.com/WandLZhang/schare-project-onboarder/internal/config"
	"github.com/WandLZhang/schare-project-onboarder/internal/util/naming"
)

// Request is the immutable input of one onboarding run. It is created once
// from validated user input and never mutated by the workflow.
type Request struct {
	// ProjectID is the user-chosen, globally unique project identifier.
	ProjectID string

	// DisplayName is the human-readable project name.
	DisplayName string

	// BillingAccount is the billing account the project is linked to.
	BillingAccount string

	// Services are enabled on the project in the given order.
	Services []string

	// Grantee is the IAM member receiving Roles on the project.
	Grantee string

	// Roles are granted to Grantee after the project is fully provisioned.
	Roles []string

	// ServiceAccountID, when set, names a working service account created
	// in the project during the access step.
	ServiceAccountID string
}

// maxDisplayNameLen is the Resource Manager limit on project names.
const maxDisplayNameLen = 30

// Validate checks the request before any remote call is made. It returns a
// *ValidationError describing the first problem found.
func (r *Request) Validate() error {
	if !naming.ValidProjectID(r.ProjectID) {
		return &ValidationError{
			Field:  "project_id",
			Reason: fmt.Sprintf("%q must be 6-30 lowercase letters, digits, or hyphens, starting with a letter and not ending with a hyphen", r.ProjectID),
		}
	}

	name := strings.TrimSpace(r.DisplayName)
	if name == "" {
		return &ValidationError{Field: "display_name", Reason: "must not be empty"}
	}
	if len(name) > maxDisplayNameLen {
		return &ValidationError{
			Field:  "display_name",
			Reason: fmt.Sprintf("%q exceeds %d characters", name, maxDisplayNameLen),
		}
	}

	if !config.ValidBillingAccount(r.BillingAccount) {
		return &ValidationError{
			Field:  "billing_account",
			Reason: fmt.Sprintf("%q is not a billing account ID", r.BillingAccount),
		}
	}

	seen := make(map[string]bool, len(r.Services))
	for _, svc := range r.Services {
		if !strings.Contains(svc, ".") {
			return &ValidationError{
				Field:  "services",
				Reason: fmt.Sprintf("%q is not an API service name", svc),
			}
		}
		if seen[svc] {
			return &ValidationError{
				Field:  "services",
				Reason: fmt.Sprintf("duplicate service %q", svc),
			}
		}
		seen[svc] = true
	}

	if err := config.ValidateMember(r.Grantee); err != nil {
		return &ValidationError{Field: "grantee", Reason: err.Error()}
	}

	if r.ServiceAccountID != "" {
		if err := config.ValidateServiceAccountID(r.ServiceAccountID); err != nil {
			return &ValidationError{Field: "service_account_id", Reason: err.Error()}
		}
	}

	for _, role := range r.Roles {
		if !strings.HasPrefix(role, "roles/") && !strings.Contains(role, "/roles/") {
			return &ValidationError{
				Field:  "roles",
				Reason: fmt.Sprintf("%q is not an IAM role name", role),
			}
		}
	}

	return nil
}
