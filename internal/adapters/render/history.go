package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/opbots/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 24

type Options struct {
	Now time.Time
}

// History renders finished runs, newest first as given.
func History(records []domain.RunRecord, opts Options) (string, error) {
	return run(func(s styles) string {
		return historyView(records, opts, s)
	})
}

func historyView(records []domain.RunRecord, opts Options, s styles) string {
	lines := []string{
		s.title.Render("Group creation runs"),
		s.header.Render(fmt.Sprintf("runs: %d", len(records))),
	}

	if len(records) == 0 {
		lines = append(lines, s.empty.Render("No runs recorded yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range records {
		lines = append(lines, s.section.Render(renderRun(record, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRun(record domain.RunRecord, opts Options, s styles) string {
	r := record.Report
	title := s.run.Render(fmt.Sprintf("%s (%s)", record.Name, outcomeLabel(r.Outcome)))

	progress := lipgloss.JoinHorizontal(
		lipgloss.Top,
		renderProgressBar(r.Succeeded, r.Total, barWidth, s),
		" ",
		s.detail.Render(fmt.Sprintf("%d/%d created", r.Succeeded, r.Total)),
	)
	if r.Attempted < r.Total {
		progress += " " + s.warning.Render(fmt.Sprintf("[%d not attempted]", r.Total-r.Attempted))
	}

	parts := []string{
		title,
		s.header.Render(fmt.Sprintf("finished %s, took %s", formatWhen(record.FinishedAt, opts.Now), formatDuration(record.FinishedAt.Sub(record.StartedAt)))),
		progress,
	}
	for _, f := range r.Failures {
		parts = append(parts, s.failure.Render(fmt.Sprintf("  %s: %s", f.Label, f.Err)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func outcomeLabel(outcome domain.RunOutcome) string {
	switch outcome {
	case domain.RunStopped:
		return "stopped"
	case domain.RunAbandoned:
		return "abandoned"
	default:
		return "completed"
	}
}

func renderProgressBar(done, total, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := 0
	if total > 0 {
		filled = int(math.Round(float64(width) * float64(done) / float64(total)))
	}
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func formatWhen(at, now time.Time) string {
	if at.IsZero() {
		return "at an unknown time"
	}
	if now.IsZero() || at.After(now) {
		return at.Format("15:04 on 02 Jan")
	}

	ago := now.Sub(at)
	switch {
	case ago < time.Minute:
		return "just now"
	case ago < time.Hour:
		return fmt.Sprintf("%d min ago", int(ago.Minutes()))
	case ago < 24*time.Hour:
		hours := int(ago.Hours())
		suffix := "hours"
		if hours == 1 {
			suffix = "hour"
		}
		return fmt.Sprintf("%d %s ago", hours, suffix)
	default:
		return at.Format("15:04 on 02 Jan")
	}
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return d.Round(time.Second).String()
}
