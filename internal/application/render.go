package application

import (
	"fmt"
	"strings"

	"github.com/bnema/opbots/internal/domain"
)

func renderConfirmation(spec domain.TaskSpec) string {
	var b strings.Builder
	b.WriteString("Task ready\n\n")
	fmt.Fprintf(&b, "Name: %s\n", spec.Name)
	fmt.Fprintf(&b, "Participants: %d\n", len(spec.Participants))
	fmt.Fprintf(&b, "Groups: %d (%s #1 .. %s)\n\n", spec.Count, spec.Name, domain.UnitLabel(spec.Name, spec.Count))
	b.WriteString("Execute now?")
	return b.String()
}

func renderSnapshot(s SessionSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Phase: %s\n", s.Phase.Label())
	fmt.Fprintf(&b, "WhatsApp: %s\n", connectedLabel(s.Connected))
	fmt.Fprintf(&b, "Running: %t\n", s.Running)
	if s.CancelRequested {
		b.WriteString("Stop requested: true\n")
	}
	if s.Draining && !s.Running {
		b.WriteString("Previous run: finishing\n")
	}
	if s.Name != "" {
		fmt.Fprintf(&b, "Name: %s\n", s.Name)
	}
	if len(s.Participants) > 0 {
		fmt.Fprintf(&b, "Participants: %d\n", len(s.Participants))
	}
	if s.Count > 0 {
		fmt.Fprintf(&b, "Groups: %d\n", s.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderReport(name string, r domain.RunReport) string {
	var b strings.Builder
	switch r.Outcome {
	case domain.RunStopped:
		fmt.Fprintf(&b, "Stopped early: %s (%d of %d attempted)\n", name, r.Attempted, r.Total)
	default:
		fmt.Fprintf(&b, "Completed: %s (%d groups)\n", name, r.Total)
	}
	fmt.Fprintf(&b, "Created: %d\n", r.Succeeded)
	fmt.Fprintf(&b, "Failed: %d", len(r.Failures))
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "\n- %s: %s", f.Label, f.Err)
	}
	return b.String()
}

func connectedLabel(connected bool) string {
	if connected {
		return "connected"
	}
	return "disconnected"
}
