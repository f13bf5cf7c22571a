package provisioning

// Status is the terminal state of one onboarding run.
type Status string

const (
	// StatusSucceeded means every step committed.
	StatusSucceeded Status = "Succeeded"

	// StatusFailed means the run failed and either nothing needed cleanup
	// or the cleanup itself failed (see Outcome.Err for which).
	StatusFailed Status = "Failed"

	// StatusRolledBack means a step failed after the project was created
	// and the compensating deletion succeeded.
	StatusRolledBack Status = "RolledBack"
)

// Outcome is the only value an onboarding run returns. It is never mutated
// after Provision hands it to the caller.
type Outcome struct {
	// Status is the terminal state of the run.
	Status Status

	// ProjectID identifies the project that was, or was not, left behind.
	ProjectID string

	// CompletedSteps lists the steps that committed, in execution order.
	CompletedSteps []string

	// ServiceAccountEmail is the working service account created during
	// the access step, when the run got that far.
	ServiceAccountEmail string

	// Err carries the failure cause chain for Failed and RolledBack runs.
	Err error
}

// Succeeded reports whether the full step sequence committed.
func (o *Outcome) Succeeded() bool {
	return o.Status == StatusSucceeded
}
