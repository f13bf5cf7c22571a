package provisioning

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "validation error",
			err:  &ValidationError{Field: "project_id", Reason: "bad"},
			want: true,
		},
		{
			name: "wrapped validation error",
			err:  fmt.Errorf("request rejected: %w", &ValidationError{Field: "grantee", Reason: "bad"}),
			want: true,
		},
		{
			name: "taken project ID",
			err:  fmt.Errorf("project %q: %w", "schare-x", ErrProjectIDTaken),
			want: true,
		},
		{
			name: "taken project ID inside a step error",
			err:  &StepError{Step: StepAvailability, Err: ErrProjectIDTaken},
			want: true,
		},
		{
			name: "plain step failure",
			err:  &StepError{Step: StepLinkBilling, Err: errors.New("backend error")},
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsValidationError(tt.err))
		})
	}
}

func TestStepErrorUnwrap(t *testing.T) {
	t.Parallel()
	cause := errors.New("backend error")
	err := &StepError{Step: StepEnableServices, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), StepEnableServices)
	assert.Contains(t, err.Error(), "backend error")
}

func TestCleanupErrorReportsBothCauses(t *testing.T) {
	t.Parallel()
	cause := &StepError{Step: StepGrantAccess, Err: errors.New("policy conflict")}
	err := &CleanupError{
		ProjectID:  "schare-abc123",
		Cause:      cause,
		CleanupErr: errors.New("lien prevents deletion"),
	}

	msg := err.Error()
	assert.Contains(t, msg, "manual intervention required")
	assert.Contains(t, msg, "schare-abc123")
	assert.Contains(t, msg, "policy conflict")
	assert.Contains(t, msg, "lien prevents deletion")

	// Chain walks to the original step failure.
	var se *StepError
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, StepGrantAccess, se.Step)
}
