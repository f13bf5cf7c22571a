package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/WandLZhang/schare-project-onboarder/internal/provisioning"
)

// StepView represents one workflow step for display.
type StepView struct {
	Name   string
	Label  string
	Done   bool
	Active bool
	Err    error
}

// stepLabels maps step names to human-readable display labels.
var stepLabels = map[string]string{
	provisioning.StepAvailability:      "Check Project ID",
	provisioning.StepCreateProject:     "Create Project",
	provisioning.StepPropagationWait:   "Wait for Propagation",
	provisioning.StepEnableServices:    "Enable API Services",
	provisioning.StepBillingPermission: "Verify Billing Permission",
	provisioning.StepLinkBilling:       "Link Billing Account",
	provisioning.StepGrantAccess:       "Grant Access",
}

// Model is the Bubble Tea model for the onboarding dashboard.
type Model struct {
	// Project info
	ProjectID string

	// Workflow steps in execution order
	Steps []StepView

	// Activity holds the most recent resource-level events.
	Activity []string

	// Rollback state
	RollingBack bool

	// Terminal state
	Outcome *provisioning.Outcome

	// ETA
	StartTime time.Time

	// Animation
	SpinnerFrame int

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool
}

// maxActivityLines bounds the recent-activity section.
const maxActivityLines = 5

// NewOnboardModel creates a model for the onboard command TUI.
func NewOnboardModel(projectID string) Model {
	names := provisioning.StepNames()
	steps := make([]StepView, len(names))
	for i, name := range names {
		steps[i] = StepView{Name: name, Label: stepLabels[name]}
	}
	return Model{
		ProjectID: projectID,
		Steps:     steps,
		StartTime: time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case StepMsg:
		m.updateStep(msg)

	case EventMsg:
		m.updateEvent(msg.Event)

	case OutcomeMsg:
		m.Outcome = msg.Outcome
		m.Done = true
		return m, tea.Quit

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updateStep(msg StepMsg) {
	idx := -1
	for i, step := range m.Steps {
		if step.Name == msg.Step {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// Everything before the announced step has committed.
	for i := 0; i < idx; i++ {
		m.Steps[i].Done = true
		m.Steps[i].Active = false
	}
	m.Steps[idx].Active = true
}

func (m *Model) updateEvent(event provisioning.Event) {
	switch event.Type {
	case provisioning.EventStepCompleted:
		for i := range m.Steps {
			if m.Steps[i].Name == event.Step {
				m.Steps[i].Done = true
				m.Steps[i].Active = false
			}
		}

	case provisioning.EventStepFailed:
		for i := range m.Steps {
			if m.Steps[i].Name == event.Step {
				m.Steps[i].Active = false
				m.Steps[i].Err = errFromEvent(event)
			}
		}

	case provisioning.EventRollbackStarted:
		m.RollingBack = true

	case provisioning.EventServiceEnabling, provisioning.EventServiceEnabled,
		provisioning.EventRollbackCompleted, provisioning.EventRollbackFailed:
		line := event.Message
		if event.Resource != "" {
			line = event.Resource + ": " + event.Message
		}
		m.Activity = append(m.Activity, line)
		if len(m.Activity) > maxActivityLines {
			m.Activity = m.Activity[len(m.Activity)-maxActivityLines:]
		}
	}
}

// errFromEvent turns a failure event's message into a displayable error.
func errFromEvent(event provisioning.Event) error {
	return errors.New(event.Message)
}

// CompletedCount returns the number of committed steps.
func (m Model) CompletedCount() int {
	n := 0
	for _, step := range m.Steps {
		if step.Done {
			n++
		}
	}
	return n
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
