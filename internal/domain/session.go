package domain

import "strings"

type Phase string

const (
	PhaseIdle                 Phase = "idle"
	PhaseAwaitingName         Phase = "awaiting_name"
	PhaseAwaitingParticipants Phase = "awaiting_participants"
	PhaseAwaitingCount        Phase = "awaiting_count"
	PhaseReady                Phase = "ready"
	PhaseRunning              Phase = "running"
)

func (p Phase) Label() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingName:
		return "waiting for group name"
	case PhaseAwaitingParticipants:
		return "waiting for participants"
	case PhaseAwaitingCount:
		return "waiting for group count"
	case PhaseReady:
		return "ready to execute"
	case PhaseRunning:
		return "running"
	default:
		return string(p)
	}
}

// Collecting reports whether the wizard expects a free-text answer.
func (p Phase) Collecting() bool {
	switch p {
	case PhaseAwaitingName, PhaseAwaitingParticipants, PhaseAwaitingCount:
		return true
	default:
		return false
	}
}

type TaskSpec struct {
	Name         string
	Participants []string
	Count        int
}

func (s TaskSpec) IsZero() bool {
	return s.Name == "" && len(s.Participants) == 0 && s.Count == 0
}

// Complete reports whether every field a run needs has been collected.
func (s TaskSpec) Complete() bool {
	return strings.TrimSpace(s.Name) != "" && len(s.Participants) > 0 && s.Count >= MinCount && s.Count <= MaxCount
}

func (s TaskSpec) Clone() TaskSpec {
	out := s
	if s.Participants != nil {
		out.Participants = append([]string(nil), s.Participants...)
	}
	return out
}

type Session struct {
	Phase           Phase
	Spec            TaskSpec
	Running         bool
	CancelRequested bool
}

func NewSession() Session {
	return Session{Phase: PhaseIdle}
}

// Reset returns the session to IDLE and drops every collected field.
func (s *Session) Reset() {
	*s = NewSession()
}

// BeginRun moves a READY session into RUNNING.
func (s *Session) BeginRun() error {
	if s.Phase != PhaseReady {
		return ErrWrongPhase
	}
	if !s.Spec.Complete() {
		return ErrIncompleteSpec
	}

	s.Phase = PhaseRunning
	s.Running = true
	s.CancelRequested = false
	return nil
}

// RequestCancel flags the active run for a cooperative stop.
func (s *Session) RequestCancel() error {
	if !s.Running {
		return ErrNothingToStop
	}

	s.CancelRequested = true
	return nil
}
