package config

import (
	"fmt"
	"regexp"
	"strings"
)

// billingAccountRegex matches the billing account ID format, with or without
// the billingAccounts/ resource prefix.
var billingAccountRegex = regexp.MustCompile(`^(billingAccounts/)?[A-F0-9]{6}-[A-F0-9]{6}-[A-F0-9]{6}$`)

// serviceAccountIDRegex matches IAM service account IDs: 6-30 lowercase
// alphanumeric characters or hyphens, starting with a letter.
var serviceAccountIDRegex = regexp.MustCompile(`^[a-z][a-z0-9-]{4,28}[a-z0-9]$`)

// memberPrefixes are the IAM member forms the onboarder grants roles to.
var memberPrefixes = []string{"user:", "group:", "serviceAccount:", "domain:"}

// ValidBillingAccount reports whether s is a billing account ID, with or
// without the billingAccounts/ resource prefix.
func ValidBillingAccount(s string) bool {
	return billingAccountRegex.MatchString(s)
}

// Validate checks the configuration and returns a detailed error on the
// first problem found.
func (c *Config) Validate() error {
	if c.BillingAccount != "" && !ValidBillingAccount(c.BillingAccount) {
		return fmt.Errorf("billing_account %q is not a valid billing account (expected XXXXXX-XXXXXX-XXXXXX)", c.BillingAccount)
	}

	for _, svc := range c.Services {
		if err := validateService(svc); err != nil {
			return err
		}
	}
	if err := noDuplicates("services", c.Services); err != nil {
		return err
	}

	for _, role := range c.Roles {
		if !strings.HasPrefix(role, "roles/") && !strings.Contains(role, "/roles/") {
			return fmt.Errorf("role %q is not a valid IAM role name", role)
		}
	}
	if err := noDuplicates("roles", c.Roles); err != nil {
		return err
	}

	if c.ServiceAccountID != "" && !serviceAccountIDRegex.MatchString(c.ServiceAccountID) {
		return fmt.Errorf("service_account_id %q must be 6-30 lowercase alphanumeric characters or hyphens, starting with a letter", c.ServiceAccountID)
	}

	if c.Grantee != "" {
		if err := ValidateMember(c.Grantee); err != nil {
			return err
		}
	}

	return nil
}

// ValidateServiceAccountID checks a service account ID (the part before
// the @ in the account email).
func ValidateServiceAccountID(id string) error {
	if !serviceAccountIDRegex.MatchString(id) {
		return fmt.Errorf("service account ID %q must be 6-30 lowercase alphanumeric characters or hyphens, starting with a letter", id)
	}
	return nil
}

// ValidateMember checks an IAM member string such as "user:alice@example.com".
func ValidateMember(member string) error {
	for _, prefix := range memberPrefixes {
		if rest, ok := strings.CutPrefix(member, prefix); ok {
			if rest == "" {
				return fmt.Errorf("member %q has an empty identity", member)
			}
			return nil
		}
	}
	return fmt.Errorf("member %q must start with one of %s", member, strings.Join(memberPrefixes, ", "))
}

func validateService(svc string) error {
	if svc == "" {
		return fmt.Errorf("service name must not be empty")
	}
	if !strings.Contains(svc, ".") {
		return fmt.Errorf("service %q is not a valid API service name (expected e.g. bigquery.googleapis.com)", svc)
	}
	return nil
}

func noDuplicates(field string, values []string) error {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return fmt.Errorf("%s contains duplicate entry %q", field, v)
		}
		seen[v] = true
	}
	return nil
}
