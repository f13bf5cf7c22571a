package gcloud

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/WandLZhang/schare-project-onboarder/internal/util/naming"
)

// ListBillingAccounts returns the billing accounts visible to the caller.
// Closed accounts are included; callers filter on Open when offering choices.
func (c *RealClient) ListBillingAccounts(ctx context.Context) ([]BillingAccount, error) {
	var accounts []BillingAccount
	pageToken := ""

	for {
		q := url.Values{}
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		var page struct {
			BillingAccounts []BillingAccount `json:"billingAccounts"`
			NextPageToken   string           `json:"nextPageToken"`
		}
		u := c.endpoints.Billing + "/billingAccounts"
		if len(q) > 0 {
			u += "?" + q.Encode()
		}
		if err := c.do(ctx, http.MethodGet, u, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list billing accounts: %w", err)
		}

		accounts = append(accounts, page.BillingAccounts...)
		if page.NextPageToken == "" {
			return accounts, nil
		}
		pageToken = page.NextPageToken
	}
}

// TestBillingPermission probes whether the caller holds the given permission
// on the billing account. A missing permission is a negative answer, not an
// error; only transport failures return one.
func (c *RealClient) TestBillingPermission(ctx context.Context, billingAccount, permission string) (bool, error) {
	in := struct {
		Permissions []string `json:"permissions"`
	}{Permissions: []string{permission}}

	var out struct {
		Permissions []string `json:"permissions"`
	}

	u := fmt.Sprintf("%s/%s:testIamPermissions", c.endpoints.Billing, naming.BillingAccountResource(billingAccount))
	if err := c.do(ctx, http.MethodPost, u, in, &out); err != nil {
		return false, fmt.Errorf("failed to test billing permission: %w", err)
	}

	for _, p := range out.Permissions {
		if p == permission {
			return true, nil
		}
	}
	return false, nil
}

// LinkBilling associates the project with the billing account. Passing an
// empty billing account name would unlink the project, so that is rejected
// locally.
func (c *RealClient) LinkBilling(ctx context.Context, projectID, billingAccount string) error {
	if billingAccount == "" {
		return fmt.Errorf("billing account is required to link project %q", projectID)
	}

	in := &BillingInfo{
		BillingAccountName: naming.BillingAccountResource(billingAccount),
	}
	u := fmt.Sprintf("%s/projects/%s/billingInfo", c.endpoints.Billing, projectID)
	if err := c.do(ctx, http.MethodPut, u, in, nil); err != nil {
		return fmt.Errorf("failed to link billing account to project %q: %w", projectID, err)
	}
	return nil
}
