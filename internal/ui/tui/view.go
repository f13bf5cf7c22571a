package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/WandLZhang/schare-project-onboarder/internal/provisioning"
)

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderSteps(&b, m)

	if len(m.Activity) > 0 {
		renderActivity(&b, m)
	}

	if m.Outcome != nil {
		renderOutcome(&b, m)
	}

	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	b.WriteString(titleStyle.Render(fmt.Sprintf("onboarder: %s", m.ProjectID)))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Outcome != nil && m.Outcome.Succeeded():
		status += readyStyle.Render("Ready")
	case m.Outcome != nil:
		status += failedStyle.Render(string(m.Outcome.Status))
	case m.RollingBack:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render("Rolling back")
	default:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render("Provisioning")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	total := len(m.Steps)
	if total == 0 {
		return
	}
	progress := float64(m.CompletedCount()) / float64(total)

	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = m.Width - 30
		if barWidth < 10 {
			barWidth = 10
		}
	}
	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	fmt.Fprintf(b, "  %s %d/%d steps\n", bar, m.CompletedCount(), total)
}

func renderSteps(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Steps"))
	b.WriteString("\n")

	for i, step := range m.Steps {
		var mark, label string
		switch {
		case step.Err != nil:
			mark = failedStyle.Render(crossMark)
			label = failedStyle.Render(step.Label)
		case step.Done:
			mark = readyStyle.Render(checkMark)
			label = dimStyle.Render(step.Label)
		case step.Active:
			mark = activeStyle.Render(currentSpinner(m.SpinnerFrame))
			label = activeStyle.Render(step.Label)
		default:
			mark = dimStyle.Render(pending)
			label = dimStyle.Render(step.Label)
		}
		fmt.Fprintf(b, "  %s %d. %s\n", mark, i+1, label)

		if step.Err != nil {
			fmt.Fprintf(b, "       %s\n", failedStyle.Render(step.Err.Error()))
		}
	}
}

func renderActivity(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Activity"))
	b.WriteString("\n")
	for _, line := range m.Activity {
		fmt.Fprintf(b, "  %s\n", dimStyle.Render(line))
	}
}

func renderOutcome(b *strings.Builder, m Model) {
	out := m.Outcome
	b.WriteString(sectionStyle.Render("  Result"))
	b.WriteString("\n")

	switch out.Status {
	case provisioning.StatusSucceeded:
		fmt.Fprintf(b, "  %s project %s is ready\n", readyStyle.Render(checkMark), out.ProjectID)
		if out.ServiceAccountEmail != "" {
			fmt.Fprintf(b, "       worker: %s\n", dimStyle.Render(out.ServiceAccountEmail))
		}
	case provisioning.StatusRolledBack:
		fmt.Fprintf(b, "  %s provisioning failed; project %s was deleted\n",
			warningStyle.Render(crossMark), out.ProjectID)
	case provisioning.StatusFailed:
		fmt.Fprintf(b, "  %s provisioning failed\n", failedStyle.Render(crossMark))
	}
	if out.Err != nil {
		fmt.Fprintf(b, "       %s\n", failedStyle.Render(out.Err.Error()))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := time.Since(m.StartTime).Round(time.Second)
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed %s · q to quit", elapsed)))
	b.WriteString("\n")
}
