package provisioning

import (
	"context"
	"fmt"

	"github.com/WandLZhang/schare-project-onboarder/internal/util/naming"
)

// Step names, in execution order.
const (
	StepAvailability      = "availability"
	StepCreateProject     = "create-project"
	StepPropagationWait   = "propagation-wait"
	StepEnableServices    = "enable-services"
	StepBillingPermission = "billing-permission"
	StepLinkBilling       = "link-billing"
	StepGrantAccess       = "grant-access"
)

// BillingLinkPermission is the Cloud Billing permission required to link a
// project to a billing account. Probing it first turns an expensive linkage
// failure into a cheap local check.
const BillingLinkPermission = "billing.resourceAssociations.create"

// StepNames returns the fixed step sequence, in order.
func StepNames() []string {
	return []string{
		StepAvailability,
		StepCreateProject,
		StepPropagationWait,
		StepEnableServices,
		StepBillingPermission,
		StepLinkBilling,
		StepGrantAccess,
	}
}

// buildSteps assembles the step table for one request. The table is walked
// by Provision in order, no reordering, no skipping; only the cleanup path
// re-enters committed steps, through their compensations.
func (s *Saga) buildSteps(req *Request, state *workflowState) []Step {
	return []Step{
		{
			Name: StepAvailability,
			Run: func(ctx context.Context) error {
				available, err := s.client.CheckProjectIDAvailable(ctx, req.ProjectID)
				if err != nil {
					return err
				}
				if !available {
					return fmt.Errorf("project ID %q: %w", req.ProjectID, ErrProjectIDTaken)
				}
				return nil
			},
		},
		{
			Name: StepCreateProject,
			Run: func(ctx context.Context) error {
				_, err := s.client.CreateProject(ctx, req.ProjectID, req.DisplayName)
				return err
			},
			Compensate: func(ctx context.Context) error {
				return s.client.DeleteProject(ctx, req.ProjectID)
			},
		},
		{
			// The remote authorization state is eventually consistent
			// after creation. A single fixed wait, not a poll; it cannot
			// fail and is deliberately not cancellable — the project is
			// already committed and must reach the cleanup path.
			Name: StepPropagationWait,
			Run: func(_ context.Context) error {
				s.sleep(s.timeouts.PropagationWait)
				return nil
			},
		},
		{
			Name: StepEnableServices,
			Run: func(ctx context.Context) error {
				for _, svc := range req.Services {
					s.observer.Event(Event{
						Type:     EventServiceEnabling,
						Step:     StepEnableServices,
						Resource: svc,
						Message:  "enabling",
					})
					if err := s.client.EnableService(ctx, req.ProjectID, svc); err != nil {
						return fmt.Errorf("service %s: %w", svc, err)
					}
					s.observer.Event(Event{
						Type:     EventServiceEnabled,
						Step:     StepEnableServices,
						Resource: svc,
						Message:  "enabled",
					})
				}
				return nil
			},
		},
		{
			Name: StepBillingPermission,
			Run: func(ctx context.Context) error {
				granted, err := s.client.TestBillingPermission(ctx, req.BillingAccount, BillingLinkPermission)
				if err != nil {
					return err
				}
				if !granted {
					return fmt.Errorf("%s on %s: %w", BillingLinkPermission, req.BillingAccount, ErrBillingPermissionMissing)
				}
				return nil
			},
		},
		{
			Name: StepLinkBilling,
			Run: func(ctx context.Context) error {
				return s.client.LinkBilling(ctx, req.ProjectID, req.BillingAccount)
			},
		},
		{
			Name: StepGrantAccess,
			Run: func(ctx context.Context) error {
				if req.ServiceAccountID != "" {
					sa, err := s.client.CreateServiceAccount(ctx, req.ProjectID, req.ServiceAccountID, req.DisplayName+" worker")
					if err != nil {
						return fmt.Errorf("service account %s: %w", req.ServiceAccountID, err)
					}
					email := sa.Email
					if email == "" {
						email = naming.ServiceAccountEmail(req.ServiceAccountID, req.ProjectID)
					}
					state.outcome.ServiceAccountEmail = email
				}
				if len(req.Roles) > 0 {
					if err := s.client.GrantRoles(ctx, req.ProjectID, req.Grantee, req.Roles); err != nil {
						return fmt.Errorf("grants for %s: %w", req.Grantee, err)
					}
				}
				return nil
			},
		},
	}
}
