// Package prerequisites provides pre-flight checks run before any command
// touches the Google Cloud APIs.
package prerequisites

import (
	"fmt"
	"os"
	"strings"
)

// TokenEnvVar is the environment variable the onboarder reads its OAuth
// access token from. Token acquisition (sign-in, refresh) is out of scope;
// the token arrives as an opaque credential.
const TokenEnvVar = "GOOGLE_OAUTH_ACCESS_TOKEN"

// Requirement represents a single pre-flight requirement.
type Requirement struct {
	// Name identifies the requirement in error messages.
	Name string

	// Check returns an error describing how to satisfy the requirement
	// when it is not met.
	Check func() error
}

// CheckResult contains the outcome of evaluating one requirement.
type CheckResult struct {
	Requirement Requirement
	Err         error
}

// Results aggregates pre-flight check outcomes.
type Results struct {
	Results []CheckResult
}

// Failed returns the results of requirements that were not satisfied.
func (r Results) Failed() []CheckResult {
	var failed []CheckResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err returns a single error summarizing all failed requirements, or nil.
func (r Results) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	var msgs []string
	for _, f := range failed {
		msgs = append(msgs, fmt.Sprintf("%s: %v", f.Requirement.Name, f.Err))
	}
	return fmt.Errorf("prerequisites not met:\n  %s", strings.Join(msgs, "\n  "))
}

// DefaultRequirements returns the requirements every onboarder command needs.
func DefaultRequirements() []Requirement {
	return []Requirement{
		{
			Name:  "access token",
			Check: checkAccessToken,
		},
	}
}

// Check evaluates the given requirements.
func Check(reqs []Requirement) Results {
	results := Results{}
	for _, req := range reqs {
		results.Results = append(results.Results, CheckResult{
			Requirement: req,
			Err:         req.Check(),
		})
	}
	return results
}

// CheckDefault evaluates the default requirements and returns a summary error.
func CheckDefault() error {
	return Check(DefaultRequirements()).Err()
}

func checkAccessToken() error {
	token := strings.TrimSpace(os.Getenv(TokenEnvVar))
	if token == "" {
		return fmt.Errorf("%s is not set; obtain one with `gcloud auth print-access-token` and export it", TokenEnvVar)
	}
	if strings.ContainsAny(token, " \t\n") {
		return fmt.Errorf("%s contains whitespace; it must be a single bearer token", TokenEnvVar)
	}
	return nil
}
