package provisioning

import (
	"errors"
	"fmt"
)

// ErrProjectIDTaken reports a negative availability answer: the requested
// project ID already belongs to someone.
var ErrProjectIDTaken = errors.New("project ID is already in use")

// ErrBillingPermissionMissing reports a negative permission probe: the
// caller cannot link projects to the chosen billing account.
var ErrBillingPermissionMissing = errors.New("caller lacks permission to link projects to the billing account")

// ValidationError reports a malformed request, detected before any remote
// call. No cleanup is ever needed for it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is a request-validation failure,
// including a taken project ID surfaced by the availability step.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrProjectIDTaken)
}

// StepError reports that a specific step's remote call failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// CleanupError reports that the compensating deletion itself failed after a
// step failure. Both causes are always reported together; the project is in
// an unknown state and requires manual intervention.
type CleanupError struct {
	ProjectID  string
	Cause      *StepError
	CleanupErr error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf(
		"manual intervention required: project %q could not be deleted after %v; delete it by hand (cleanup failure: %v)",
		e.ProjectID, e.Cause, e.CleanupErr)
}

func (e *CleanupError) Unwrap() error {
	return e.Cause
}
