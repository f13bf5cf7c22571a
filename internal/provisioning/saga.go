package provisioning

import (
	"context"
	"time"

	"github.com/WandLZhang/schare-project-onboarder/internal/config"
	"github.com/WandLZhang/schare-project-onboarder/internal/platform/gcloud"
)

// Step is a named unit of work: a forward action and an optional
// compensating action. The compensation is registered for cleanup the
// moment the forward action commits, before the next step runs.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga executes the onboarding step sequence for a single request and
// unwinds committed steps on failure. It holds no mutable state of its own;
// concurrent Provision calls are independent.
type Saga struct {
	client   gcloud.CloudManager
	observer Observer
	timeouts *config.Timeouts

	// sleep is swapped out in tests; the propagation wait must not slow
	// the suite down.
	sleep func(time.Duration)
}

// SagaOption configures a Saga.
type SagaOption func(*Saga)

// WithObserver sets the progress sink. Defaults to console logging.
func WithObserver(o Observer) SagaOption {
	return func(s *Saga) {
		s.observer = o
	}
}

// WithTimeouts sets custom durations, most importantly the propagation wait.
func WithTimeouts(t *config.Timeouts) SagaOption {
	return func(s *Saga) {
		s.timeouts = t
	}
}

func withSleep(fn func(time.Duration)) SagaOption {
	return func(s *Saga) {
		s.sleep = fn
	}
}

// NewSaga creates the onboarding workflow around a cloud client.
func NewSaga(client gcloud.CloudManager, opts ...SagaOption) *Saga {
	s := &Saga{
		client: client,
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.observer == nil {
		s.observer = NewConsoleObserver()
	}
	if s.timeouts == nil {
		s.timeouts = config.LoadTimeouts()
	}
	return s
}

// workflowState is the transient per-run bookkeeping. It lives only for the
// duration of one Provision call.
type workflowState struct {
	outcome       *Outcome
	compensations []Step // committed steps with a compensation, push order
}

// Provision runs the full step sequence for the request. The returned error
// is non-nil only for a malformed request, detected before any remote call;
// every remote failure is captured in the Outcome with a terminal Status.
func (s *Saga) Provision(ctx context.Context, req Request) (*Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	state := &workflowState{
		outcome: &Outcome{ProjectID: req.ProjectID},
	}
	steps := s.buildSteps(&req, state)
	total := len(steps)

	for i, step := range steps {
		s.observer.Progress(step.Name, i+1, total)
		LogStepStart(s.observer, step.Name)

		start := time.Now()
		if err := step.Run(ctx); err != nil {
			stepTotal.WithLabelValues(step.Name, "failure").Inc()
			LogStepFailed(s.observer, step.Name, err)
			return s.terminate(ctx, state, &StepError{Step: step.Name, Err: err}), nil
		}
		stepTotal.WithLabelValues(step.Name, "success").Inc()
		stepDuration.WithLabelValues(step.Name).Observe(time.Since(start).Seconds())
		LogStepComplete(s.observer, step.Name, time.Since(start))

		if step.Compensate != nil {
			state.compensations = append(state.compensations, step)
		}
		state.outcome.CompletedSteps = append(state.outcome.CompletedSteps, step.Name)
	}

	state.outcome.Status = StatusSucceeded
	runTotal.WithLabelValues(string(StatusSucceeded)).Inc()
	return state.outcome, nil
}

// terminate finalizes a failed run: it unwinds the compensation stack,
// most-recent-first, and settles the terminal status. With an empty stack
// (nothing committed external state) the failure is terminal as-is.
func (s *Saga) terminate(ctx context.Context, state *workflowState, cause *StepError) *Outcome {
	out := state.outcome
	out.Err = cause

	if len(state.compensations) == 0 {
		out.Status = StatusFailed
		runTotal.WithLabelValues(string(StatusFailed)).Inc()
		return out
	}

	for i := len(state.compensations) - 1; i >= 0; i-- {
		step := state.compensations[i]
		s.observer.Event(Event{
			Type:    EventRollbackStarted,
			Step:    step.Name,
			Message: "rolling back",
		})

		if err := step.Compensate(ctx); err != nil {
			rollbackTotal.WithLabelValues("failure").Inc()
			s.observer.Event(Event{
				Type:    EventRollbackFailed,
				Step:    step.Name,
				Message: "rollback failed: " + err.Error(),
			})
			out.Status = StatusFailed
			out.Err = &CleanupError{ProjectID: out.ProjectID, Cause: cause, CleanupErr: err}
			runTotal.WithLabelValues(string(StatusFailed)).Inc()
			return out
		}

		rollbackTotal.WithLabelValues("success").Inc()
		s.observer.Event(Event{
			Type:    EventRollbackCompleted,
			Step:    step.Name,
			Message: "rolled back",
		})
	}

	out.Status = StatusRolledBack
	runTotal.WithLabelValues(string(StatusRolledBack)).Inc()
	return out
}
