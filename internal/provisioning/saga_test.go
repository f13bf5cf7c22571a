package provisioning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WandLZhang/schare-project-onboarder/internal/config"
	"github.com/WandLZhang/schare-project-onboarder/internal/platform/gcloud"
)

func testRequest() Request {
	return Request{
		ProjectID:        "schare-abc123",
		DisplayName:      "ScHARe Research",
		BillingAccount:   "0A0A0A-0B0B0B-0C0C0C",
		Services:         []string{"bigquery.googleapis.com", "storage.googleapis.com"},
		Grantee:          "user:alice@example.com",
		Roles:            []string{"roles/bigquery.user"},
		ServiceAccountID: "schare-worker",
	}
}

// newTestSaga wires a saga whose propagation wait is instantaneous.
func newTestSaga(client gcloud.CloudManager, observer Observer) *Saga {
	return NewSaga(client,
		WithObserver(observer),
		WithTimeouts(&config.Timeouts{PropagationWait: 10 * time.Second}),
		withSleep(func(time.Duration) {}),
	)
}

func TestProvision_AllStepsSucceed(t *testing.T) {
	t.Parallel()
	deleted := false
	m := &gcloud.MockClient{
		DeleteProjectFunc: func(context.Context, string) error {
			deleted = true
			return nil
		},
	}
	observer := NewMockObserver()

	outcome, err := newTestSaga(m, observer).Provision(context.Background(), testRequest())

	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.Equal(t, StatusSucceeded, outcome.Status)
	assert.True(t, outcome.Succeeded())
	assert.NoError(t, outcome.Err)
	assert.Equal(t, StepNames(), outcome.CompletedSteps)
	assert.Equal(t, "schare-worker@schare-abc123.iam.gserviceaccount.com", outcome.ServiceAccountEmail)
	assert.False(t, deleted, "nothing should be deleted on success")
}

func TestProvision_ValidationErrorBeforeAnyRemoteCall(t *testing.T) {
	t.Parallel()
	remoteCalled := false
	m := &gcloud.MockClient{
		CheckProjectIDAvailableFunc: func(context.Context, string) (bool, error) {
			remoteCalled = true
			return true, nil
		},
	}

	req := testRequest()
	req.ProjectID = "Bad_ID"

	outcome, err := newTestSaga(m, NewMockObserver()).Provision(context.Background(), req)

	require.Error(t, err)
	assert.Nil(t, outcome)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "project_id", ve.Field)
	assert.True(t, IsValidationError(err))
	assert.False(t, remoteCalled, "validation must precede all remote calls")
}

func TestProvision_UnavailableProjectID(t *testing.T) {
	t.Parallel()
	var calls []string
	m := &gcloud.MockClient{
		CheckProjectIDAvailableFunc: func(context.Context, string) (bool, error) {
			calls = append(calls, "check")
			return false, nil
		},
		CreateProjectFunc: func(_ context.Context, id, name string) (*gcloud.Project, error) {
			calls = append(calls, "create")
			return &gcloud.Project{ProjectID: id, Name: name}, nil
		},
		DeleteProjectFunc: func(context.Context, string) error {
			calls = append(calls, "delete")
			return nil
		},
	}

	outcome, err := newTestSaga(m, NewMockObserver()).Provision(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, StatusFailed, outcome.Status)
	assert.Empty(t, outcome.CompletedSteps)
	assert.ErrorIs(t, outcome.Err, ErrProjectIDTaken)
	assert.True(t, IsValidationError(outcome.Err))
	// Only the availability check ran; no create, and no cleanup since
	// nothing was committed.
	assert.Equal(t, []string{"check"}, calls)
}

func TestProvision_AvailabilityTransportError(t *testing.T) {
	t.Parallel()
	m := &gcloud.MockClient{
		CheckProjectIDAvailableFunc: func(context.Context, string) (bool, error) {
			return false, errors.New("dial tcp: connection refused")
		},
		DeleteProjectFunc: func(context.Context, string) error {
			t.Error("DeleteProject must not run when nothing was created")
			return nil
		},
	}

	outcome, err := newTestSaga(m, NewMockObserver()).Provision(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, StatusFailed, outcome.Status)
	var se *StepError
	require.ErrorAs(t, outcome.Err, &se)
	assert.Equal(t, StepAvailability, se.Step)
	assert.False(t, IsValidationError(outcome.Err))
}

func TestProvision_LaterStepFailureRollsBack(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		setup      func(*gcloud.MockClient)
		failedStep string
		completed  []string
	}{
		{
			name: "create fails, nothing to roll back but create itself",
			setup: func(m *gcloud.MockClient) {
				m.CreateProjectFunc = func(context.Context, string, string) (*gcloud.Project, error) {
					return nil, errors.New("quota exceeded")
				}
			},
			failedStep: StepCreateProject,
			completed:  []string{StepAvailability},
		},
		{
			name: "service enablement fails",
			setup: func(m *gcloud.MockClient) {
				m.EnableServiceFunc = func(context.Context, string, string) error {
					return errors.New("service unavailable")
				}
			},
			failedStep: StepEnableServices,
			completed:  []string{StepAvailability, StepCreateProject, StepPropagationWait},
		},
		{
			name: "billing permission probe errors",
			setup: func(m *gcloud.MockClient) {
				m.TestBillingPermissionFunc = func(context.Context, string, string) (bool, error) {
					return false, errors.New("backend error")
				}
			},
			failedStep: StepBillingPermission,
			completed:  []string{StepAvailability, StepCreateProject, StepPropagationWait, StepEnableServices},
		},
		{
			name: "billing link fails",
			setup: func(m *gcloud.MockClient) {
				m.LinkBillingFunc = func(context.Context, string, string) error {
					return errors.New("billing account closed")
				}
			},
			failedStep: StepLinkBilling,
			completed: []string{
				StepAvailability, StepCreateProject, StepPropagationWait,
				StepEnableServices, StepBillingPermission,
			},
		},
		{
			name: "role grant fails",
			setup: func(m *gcloud.MockClient) {
				m.GrantRolesFunc = func(context.Context, string, string, []string) error {
					return errors.New("policy write conflict")
				}
			},
			failedStep: StepGrantAccess,
			completed: []string{
				StepAvailability, StepCreateProject, StepPropagationWait,
				StepEnableServices, StepBillingPermission, StepLinkBilling,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deleted := 0
			m := &gcloud.MockClient{
				DeleteProjectFunc: func(_ context.Context, id string) error {
					deleted++
					assert.Equal(t, "schare-abc123", id)
					return nil
				},
			}
			tt.setup(m)

			outcome, err := newTestSaga(m, NewMockObserver()).Provision(context.Background(), testRequest())

			require.NoError(t, err)
			require.NotNil(t, outcome)

			var se *StepError
			require.ErrorAs(t, outcome.Err, &se)
			assert.Equal(t, tt.failedStep, se.Step)
			assert.Equal(t, tt.completed, outcome.CompletedSteps)

			if tt.failedStep == StepCreateProject {
				// The pivot step itself failed: nothing committed, terminal failure.
				assert.Equal(t, StatusFailed, outcome.Status)
				assert.Zero(t, deleted)
			} else {
				assert.Equal(t, StatusRolledBack, outcome.Status)
				assert.Equal(t, 1, deleted)
			}
		})
	}
}

func TestProvision_CleanupFailureNamesBothCauses(t *testing.T) {
	t.Parallel()
	m := &gcloud.MockClient{
		LinkBillingFunc: func(context.Context, string, string) error {
			return errors.New("billing account closed")
		},
		DeleteProjectFunc: func(context.Context, string) error {
			return errors.New("project has a lien")
		},
	}

	outcome, err := newTestSaga(m, NewMockObserver()).Provision(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, StatusFailed, outcome.Status)

	var ce *CleanupError
	require.ErrorAs(t, outcome.Err, &ce)
	assert.Equal(t, "schare-abc123", ce.ProjectID)
	assert.Equal(t, StepLinkBilling, ce.Cause.Step)

	msg := outcome.Err.Error()
	assert.Contains(t, msg, "manual intervention required")
	assert.Contains(t, msg, "billing account closed")
	assert.Contains(t, msg, "project has a lien")

	// The original step failure stays reachable through the chain.
	var se *StepError
	assert.ErrorAs(t, outcome.Err, &se)
}

func TestProvision_ServiceEnablementStopsAtFirstFailure(t *testing.T) {
	t.Parallel()
	var enabled []string
	linkCalled := false
	m := &gcloud.MockClient{
		EnableServiceFunc: func(_ context.Context, _, svc string) error {
			enabled = append(enabled, svc)
			if svc == "b.googleapis.com" {
				return errors.New("enablement rejected")
			}
			return nil
		},
		LinkBillingFunc: func(context.Context, string, string) error {
			linkCalled = true
			return nil
		},
	}

	req := testRequest()
	req.Services = []string{"a.googleapis.com", "b.googleapis.com", "c.googleapis.com"}

	outcome, err := newTestSaga(m, NewMockObserver()).Provision(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, StatusRolledBack, outcome.Status)
	// a and b attempted, c never.
	assert.Equal(t, []string{"a.googleapis.com", "b.googleapis.com"}, enabled)
	assert.False(t, linkCalled)
}

func TestProvision_MissingBillingPermissionShortCircuits(t *testing.T) {
	t.Parallel()
	linkCalled := false
	deleted := false
	m := &gcloud.MockClient{
		TestBillingPermissionFunc: func(_ context.Context, account, permission string) (bool, error) {
			assert.Equal(t, "0A0A0A-0B0B0B-0C0C0C", account)
			assert.Equal(t, BillingLinkPermission, permission)
			return false, nil
		},
		LinkBillingFunc: func(context.Context, string, string) error {
			linkCalled = true
			return nil
		},
		DeleteProjectFunc: func(context.Context, string) error {
			deleted = true
			return nil
		},
	}

	outcome, err := newTestSaga(m, NewMockObserver()).Provision(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, StatusRolledBack, outcome.Status)
	assert.ErrorIs(t, outcome.Err, ErrBillingPermissionMissing)
	assert.False(t, linkCalled, "a negative probe must skip the link attempt")
	assert.True(t, deleted)
}

func TestProvision_ProgressEventsInStepOrder(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()
	m := &gcloud.MockClient{}

	_, err := newTestSaga(m, observer).Provision(context.Background(), testRequest())
	require.NoError(t, err)

	records := observer.ProgressRecords()
	require.Len(t, records, len(StepNames()))
	for i, rec := range records {
		assert.Equal(t, StepNames()[i], rec.Step)
		assert.Equal(t, i+1, rec.Index, "indices must be strictly increasing")
		assert.Equal(t, len(StepNames()), rec.Total)
	}
}

func TestProvision_FailedStepStillEmitsItsStartEvent(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()
	m := &gcloud.MockClient{
		LinkBillingFunc: func(context.Context, string, string) error {
			return errors.New("nope")
		},
	}

	outcome, err := newTestSaga(m, observer).Provision(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, StatusRolledBack, outcome.Status)

	records := observer.ProgressRecords()
	// Steps 1..6 each announced themselves; step 7 never did.
	require.Len(t, records, 6)
	assert.Equal(t, StepLinkBilling, records[5].Step)

	started := observer.EventsOfType(EventStepStarted)
	require.Len(t, started, 6)
	failed := observer.EventsOfType(EventStepFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, StepLinkBilling, failed[0].Step)

	rolledBack := observer.EventsOfType(EventRollbackCompleted)
	require.Len(t, rolledBack, 1)
	assert.Equal(t, StepCreateProject, rolledBack[0].Step)
}

func TestProvision_PropagationWaitUsesConfiguredDuration(t *testing.T) {
	t.Parallel()
	var slept time.Duration
	saga := NewSaga(&gcloud.MockClient{},
		WithObserver(NewMockObserver()),
		WithTimeouts(&config.Timeouts{PropagationWait: 42 * time.Second}),
		withSleep(func(d time.Duration) { slept = d }),
	)

	outcome, err := saga.Provision(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, outcome.Status)
	assert.Equal(t, 42*time.Second, slept)
}

func TestProvision_NoServiceAccountRequested(t *testing.T) {
	t.Parallel()
	saCreated := false
	m := &gcloud.MockClient{
		CreateServiceAccountFunc: func(context.Context, string, string, string) (*gcloud.ServiceAccount, error) {
			saCreated = true
			return nil, errors.New("should not be called")
		},
	}

	req := testRequest()
	req.ServiceAccountID = ""

	outcome, err := newTestSaga(m, NewMockObserver()).Provision(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, outcome.Status)
	assert.Empty(t, outcome.ServiceAccountEmail)
	assert.False(t, saCreated)
}

func TestProvision_ConcurrentRunsShareNoState(t *testing.T) {
	t.Parallel()
	saga := newTestSaga(&gcloud.MockClient{}, NewMockObserver())

	done := make(chan *Outcome, 2)
	for i := 0; i < 2; i++ {
		go func() {
			outcome, err := saga.Provision(context.Background(), testRequest())
			assert.NoError(t, err)
			done <- outcome
		}()
	}

	for i := 0; i < 2; i++ {
		outcome := <-done
		assert.Equal(t, StatusSucceeded, outcome.Status)
		assert.Equal(t, StepNames(), outcome.CompletedSteps)
	}
}
