package gcloud

import (
	"context"
	"fmt"
	"net/http"
)

// iamPolicy is the subset of the Cloud IAM policy document the onboarder
// touches. Etag carries the read-modify-write concurrency token.
type iamPolicy struct {
	Bindings []iamBinding `json:"bindings"`
	Etag     string       `json:"etag,omitempty"`
	Version  int          `json:"version,omitempty"`
}

type iamBinding struct {
	Role    string   `json:"role"`
	Members []string `json:"members"`
}

// CreateServiceAccount creates a service account in the project.
func (c *RealClient) CreateServiceAccount(ctx context.Context, projectID, accountID, displayName string) (*ServiceAccount, error) {
	in := struct {
		AccountID      string `json:"accountId"`
		ServiceAccount struct {
			DisplayName string `json:"displayName"`
		} `json:"serviceAccount"`
	}{AccountID: accountID}
	in.ServiceAccount.DisplayName = displayName

	var out ServiceAccount
	u := fmt.Sprintf("%s/projects/%s/serviceAccounts", c.endpoints.IAM, projectID)
	if err := c.do(ctx, http.MethodPost, u, in, &out); err != nil {
		return nil, fmt.Errorf("failed to create service account %q in project %q: %w", accountID, projectID, err)
	}
	return &out, nil
}

// GrantRoles adds the member to each role on the project's IAM policy using
// the read-modify-write cycle the resource manager requires. Roles the
// member already holds are left untouched.
func (c *RealClient) GrantRoles(ctx context.Context, projectID, member string, roles []string) error {
	if len(roles) == 0 {
		return nil
	}

	policy, err := c.getIamPolicy(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to read IAM policy of project %q: %w", projectID, err)
	}

	changed := false
	for _, role := range roles {
		if addBinding(policy, role, member) {
			changed = true
		}
	}
	if !changed {
		return nil
	}

	if err := c.setIamPolicy(ctx, projectID, policy); err != nil {
		return fmt.Errorf("failed to update IAM policy of project %q: %w", projectID, err)
	}
	return nil
}

func (c *RealClient) getIamPolicy(ctx context.Context, projectID string) (*iamPolicy, error) {
	var out iamPolicy
	u := fmt.Sprintf("%s/projects/%s:getIamPolicy", c.endpoints.ResourceManager, projectID)
	if err := c.do(ctx, http.MethodPost, u, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RealClient) setIamPolicy(ctx context.Context, projectID string, policy *iamPolicy) error {
	in := struct {
		Policy *iamPolicy `json:"policy"`
	}{Policy: policy}
	u := fmt.Sprintf("%s/projects/%s:setIamPolicy", c.endpoints.ResourceManager, projectID)
	return c.do(ctx, http.MethodPost, u, in, nil)
}

// addBinding ensures member is present under role, returning true if the
// policy was modified.
func addBinding(policy *iamPolicy, role, member string) bool {
	for i := range policy.Bindings {
		if policy.Bindings[i].Role != role {
			continue
		}
		for _, m := range policy.Bindings[i].Members {
			if m == member {
				return false
			}
		}
		policy.Bindings[i].Members = append(policy.Bindings[i].Members, member)
		return true
	}
	policy.Bindings = append(policy.Bindings, iamBinding{
		Role:    role,
		Members: []string{member},
	})
	return true
}
