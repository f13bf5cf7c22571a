// Package naming provides consistent naming functions for onboarded
// Google Cloud resources.
//
// Project IDs follow the pattern {prefix}-{6char} with a random suffix so
// that repeated onboarding attempts do not collide on the globally unique
// project-ID namespace. Service accounts are named after the project they
// serve.
package naming

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

const suffixChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// projectIDRegex is the Google Cloud project-ID grammar: 6-30 characters,
// lowercase letters, digits, and hyphens, starting with a letter and not
// ending with a hyphen.
var projectIDRegex = regexp.MustCompile(`^[a-z][a-z0-9-]{4,28}[a-z0-9]$`)

// ValidProjectID reports whether id satisfies the project-ID grammar.
func ValidProjectID(id string) bool {
	return projectIDRegex.MatchString(id)
}

// DefaultProjectPrefix is used when the user does not supply their own
// project-ID prefix.
const DefaultProjectPrefix = "schare"

// SuggestProjectID returns a candidate project ID built from the prefix and
// a random 6-character suffix. The result satisfies the project-ID grammar
// as long as the prefix does.
func SuggestProjectID(prefix string) string {
	if prefix == "" {
		prefix = DefaultProjectPrefix
	}
	prefix = strings.ToLower(strings.TrimSuffix(prefix, "-"))

	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = suffixChars[rand.Intn(len(suffixChars))]
	}
	return fmt.Sprintf("%s-%s", prefix, suffix)
}

// ServiceAccountEmail returns the email address of a service account in the
// given project.
func ServiceAccountEmail(accountID, projectID string) string {
	return fmt.Sprintf("%s@%s.iam.gserviceaccount.com", accountID, projectID)
}

// ServiceAccountResource returns the full IAM resource name of a service
// account in the given project.
func ServiceAccountResource(accountID, projectID string) string {
	return fmt.Sprintf("projects/%s/serviceAccounts/%s", projectID, ServiceAccountEmail(accountID, projectID))
}

// ProjectResource returns the resource-manager name of a project.
func ProjectResource(projectID string) string {
	return fmt.Sprintf("projects/%s", projectID)
}

// BillingAccountResource normalizes a billing account identifier to the
// billingAccounts/{id} resource form accepted by the Cloud Billing API.
func BillingAccountResource(id string) string {
	if strings.HasPrefix(id, "billingAccounts/") {
		return id
	}
	return "billingAccounts/" + id
}
