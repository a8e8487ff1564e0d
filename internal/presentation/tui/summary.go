package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/strata/pkg/build"
	"github.com/charmbracelet/lipgloss"
)

var (
	stepName    = lipgloss.NewStyle().Bold(true).Width(20)
	statusDone  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	statusSkip  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a1a1aa"))
	statusSoft  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
	detailStyle = lipgloss.NewStyle().Faint(true)
)

// StepSummary renders one line per pipeline outcome.
func StepSummary(outcomes []build.Outcome) string {
	var b strings.Builder
	for _, o := range outcomes {
		var status string
		switch o.Status {
		case build.Done:
			status = statusDone.Render(o.Status.String())
		case build.Skipped:
			status = statusSkip.Render(o.Status.String())
		default:
			status = statusSoft.Render(o.Status.String())
		}
		line := fmt.Sprintf("%s %-12s", stepName.Render(o.Step), status)
		if o.Detail != "" {
			line += " " + detailStyle.Render(o.Detail)
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	return b.String()
}
