// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-coach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// statusMark renders a stage or step status as a single marker.
func statusMark(status types.Status) string {
	switch status {
	case types.StatusCompleted:
		return "[x]"
	case types.StatusActive:
		return "[>]"
	default:
		return "[ ]"
	}
}

// PrintJourney outputs the full three-stage roadmap with step statuses.
func (p *Printer) PrintJourney(state *types.JourneyState) {
	if state == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall progress: %d%%\n", state.OverallProgress))
	sb.WriteString(fmt.Sprintf("Current stage:    %s\n", state.CurrentStage))

	for _, stage := range state.Stages {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s %s (%s) - %d%%\n",
			statusMark(stage.Status), stage.Label, stage.Timeline, stage.OverallProgress))
		if stage.TargetRole != nil {
			sb.WriteString(fmt.Sprintf("    Target: %s\n", stage.TargetRole.Title))
		}
		for _, step := range stage.Steps {
			sb.WriteString(fmt.Sprintf("    %s %d. %s (%d%%)\n",
				statusMark(step.Status), step.Number, step.Name, step.Progress))
			if step.CompletionText != "" {
				sb.WriteString(fmt.Sprintf("         %s\n", step.CompletionText))
			}
		}
	}

	p.printBox("CAREER JOURNEY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCareerAdvice outputs the recommended roles per horizon.
func (p *Printer) PrintCareerAdvice(advice *types.CareerAdvice) {
	if advice == nil {
		return
	}

	var sb strings.Builder
	if advice.CurrentLevel != "" {
		sb.WriteString(fmt.Sprintf("Current level: %s\n\n", advice.CurrentLevel))
	}

	horizons := []struct {
		label string
		roles []types.Role
	}{
		{"Short-term", advice.Roles.Short},
		{"Mid-term", advice.Roles.Mid},
		{"Long-term", advice.Roles.Long},
	}
	for _, h := range horizons {
		if len(h.roles) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", h.label))
		for _, role := range h.roles {
			sb.WriteString(fmt.Sprintf("  • %s", role.Title))
			if role.SalaryRange != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", role.SalaryRange))
			}
			sb.WriteString("\n")
		}
	}

	p.printBox("CAREER ADVICE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillValidation outputs the readiness assessment.
func (p *Printer) PrintSkillValidation(v *types.SkillValidation) {
	if v == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target role: %s\n", v.TargetRole))
	sb.WriteString(fmt.Sprintf("Readiness:   %.0f%%\n", v.ReadinessScore))

	if len(v.MatchedSkills) > 0 {
		sb.WriteString("\nMatched skills:\n")
		count := min(len(v.MatchedSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", v.MatchedSkills[i]))
		}
		if len(v.MatchedSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(v.MatchedSkills)-maxItemsToShow))
		}
	}

	if len(v.MissingSkills) > 0 {
		sb.WriteString("\nMissing skills:\n")
		count := min(len(v.MissingSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			m := v.MissingSkills[i]
			sb.WriteString(fmt.Sprintf("  • %s", m.Skill))
			if m.Priority != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", m.Priority))
			}
			sb.WriteString("\n")
		}
		if len(v.MissingSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(v.MissingSkills)-maxItemsToShow))
		}
	}

	p.printBox("SKILL VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobMatches outputs the recommended openings with scores.
func (p *Printer) PrintJobMatches(jobs []types.JobRecommendation) {
	if len(jobs) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := jobs[i]
		sb.WriteString(fmt.Sprintf("%d. %s @ %s (%.0f%%)\n",
			i+1, job.Title, job.Company, job.RelevanceScore*100))
		if job.Location != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", job.Location))
		}
	}
	if len(jobs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(jobs)-maxItemsToShow))
	}

	p.printBox("JOB MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}
