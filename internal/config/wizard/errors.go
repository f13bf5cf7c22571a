package wizard

import "errors"

// ErrDeclined reports that the user reviewed the summary and chose not to
// proceed with provisioning.
var ErrDeclined = errors.New("onboarding declined at confirmation")

// Validation errors for the interactive wizard.
var (
	errProjectIDRequired      = errors.New("project ID is required")
	errProjectIDInvalid       = errors.New("project ID must be 6-30 lowercase letters, digits, or hyphens, starting with a letter and not ending with a hyphen")
	errDisplayNameRequired    = errors.New("project name is required")
	errDisplayNameTooLong     = errors.New("project name must be at most 30 characters")
	errBillingAccountRequired = errors.New("billing account is required")
	errBillingAccountInvalid  = errors.New("billing account must look like XXXXXX-XXXXXX-XXXXXX")
	errGranteeRequired        = errors.New("a user or group to grant access to is required")
)
