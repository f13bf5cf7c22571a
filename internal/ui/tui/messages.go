// Package tui provides a Bubble Tea-based terminal UI for project onboarding.
package tui

import "github.com/WandLZhang/schare-project-onboarder/internal/provisioning"

// StepMsg reports that a workflow step is starting.
type StepMsg struct {
	Step  string
	Index int
	Total int
}

// EventMsg carries a structured workflow event.
type EventMsg struct {
	Event provisioning.Event
}

// OutcomeMsg carries the terminal outcome of the workflow.
type OutcomeMsg struct {
	Outcome *provisioning.Outcome
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }
