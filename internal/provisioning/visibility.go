package provisioning

import (
	"context"
	"fmt"

	"github.com/WandLZhang/schare-project-onboarder/internal/config"
	"github.com/WandLZhang/schare-project-onboarder/internal/platform/gcloud"
	"github.com/WandLZhang/schare-project-onboarder/internal/util/retry"
)

// WaitForVisibility polls until the newly created project shows up ACTIVE in
// read calls. List visibility lags creation, so 404s and 403s during the
// poll are treated as "not yet", not as failures; anything else aborts the
// poll. The interval is fixed and the attempt budget bounded — the wait
// surfaces a timeout instead of polling forever.
//
// This is a read-side convenience separate from the provisioning saga: by
// the time it runs the workflow already has its terminal outcome.
func WaitForVisibility(ctx context.Context, client gcloud.CloudManager, projectID string, timeouts *config.Timeouts) error {
	if timeouts == nil {
		timeouts = config.LoadTimeouts()
	}

	err := retry.Do(ctx, func() error {
		p, err := client.GetProject(ctx, projectID)
		if err != nil {
			if gcloud.IsNotFound(err) || gcloud.IsPermissionDenied(err) {
				return fmt.Errorf("project %q not visible yet: %w", projectID, err)
			}
			return retry.Fatal(err)
		}
		if !p.Active() {
			return fmt.Errorf("project %q is %s, not ACTIVE", projectID, p.LifecycleState)
		}
		return nil
	},
		retry.WithFixedInterval(timeouts.VisibilityInterval),
		retry.WithMaxAttempts(timeouts.VisibilityMaxAttempts),
	)
	if err != nil {
		return fmt.Errorf("waiting for project %q to become visible: %w", projectID, err)
	}
	return nil
}
