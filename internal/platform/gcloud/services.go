package gcloud

import (
	"context"
	"fmt"
	"net/http"
)

// EnableService enables one API service (e.g. "bigquery.googleapis.com") on
// the project. Enablement is idempotent on the Google side; enabling an
// already-enabled service succeeds.
func (c *RealClient) EnableService(ctx context.Context, projectID, service string) error {
	url := fmt.Sprintf("%s/projects/%s/services/%s:enable", c.endpoints.ServiceUsage, projectID, service)
	if err := c.do(ctx, http.MethodPost, url, struct{}{}, nil); err != nil {
		return fmt.Errorf("failed to enable service %q on project %q: %w", service, projectID, err)
	}
	return nil
}
