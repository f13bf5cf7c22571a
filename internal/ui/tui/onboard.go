package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/WandLZhang/schare-project-onboarder/internal/provisioning"
)

// ErrDashboardClosed is returned when the user quits the dashboard while
// the workflow is still running. The abandoned run may still be mutating
// cloud resources, so the caller must not treat this as a clean result.
var ErrDashboardClosed = errors.New("dashboard closed before the workflow finished")

// RunOnboardTUI wraps a provisioning run with a Bubble Tea dashboard.
// runFn executes the workflow with the given observer and returns its
// outcome; it runs in a background goroutine while the TUI owns the
// terminal.
func RunOnboardTUI(
	runFn func(observer provisioning.Observer) (*provisioning.Outcome, error),
	projectID string,
) (*provisioning.Outcome, error) {
	m := NewOnboardModel(projectID)

	p := tea.NewProgram(m, tea.WithAltScreen())

	go func() {
		out, err := runFn(&programObserver{program: p})
		if err != nil {
			p.Send(ErrMsg{Err: err})
			return
		}
		p.Send(OutcomeMsg{Outcome: out})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("TUI error: %w", err)
	}

	return outcomeFromModel(finalModel.(Model))
}

// outcomeFromModel interprets the final model state after the program
// exits. Quitting with "q" or ctrl+c before OutcomeMsg arrives leaves
// the model without an outcome; that is reported as ErrDashboardClosed
// rather than a nil result.
func outcomeFromModel(m Model) (*provisioning.Outcome, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Outcome == nil {
		return nil, ErrDashboardClosed
	}
	return m.Outcome, nil
}

// programObserver forwards workflow observations to the Bubble Tea program.
type programObserver struct {
	program *tea.Program
}

var _ provisioning.Observer = (*programObserver)(nil)

func (o *programObserver) Printf(string, ...interface{}) {
	// The dashboard renders structured events; free-form log lines would
	// corrupt the alt screen.
}

func (o *programObserver) Event(event provisioning.Event) {
	o.program.Send(EventMsg{Event: event})
}

func (o *programObserver) Progress(step string, index, total int) {
	o.program.Send(StepMsg{Step: step, Index: index, Total: total})
}
