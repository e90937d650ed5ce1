package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bnema/opbots/internal/domain"
	"github.com/bnema/opbots/internal/ports"
)

// TaskService owns the single operator session: the wizard that collects a
// task specification and the runner that drains it. Every transition happens
// under mu, so at most one state change is in flight at a time.
type TaskService struct {
	notifier ports.Notifier
	creator  ports.GroupCreator
	clock    ports.Clock
	logger   *slog.Logger
	opts     TaskOptions

	root       context.Context
	cancelRoot context.CancelFunc

	mu         sync.Mutex
	session    domain.Session
	generation uint64
	draining   bool
	wake       chan struct{}
	done       chan struct{}
}

func NewTaskService(notifier ports.Notifier, creator ports.GroupCreator, clock ports.Clock, logger *slog.Logger, opts TaskOptions) *TaskService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	root, cancel := context.WithCancel(context.Background())

	return &TaskService{
		notifier:   notifier,
		creator:    creator,
		clock:      clock,
		logger:     logger,
		opts:       opts,
		root:       root,
		cancelRoot: cancel,
		session:    domain.NewSession(),
	}
}

// HandleAction dispatches one operator button press. Refusals are reported to
// the operator and returned as domain errors; see IsRefusal.
func (s *TaskService) HandleAction(ctx context.Context, chatID int64, action domain.Action) error {
	switch action {
	case domain.ActionCreate:
		return s.startWizard(ctx, chatID)
	case domain.ActionExecute:
		return s.execute(ctx, chatID)
	case domain.ActionCancel:
		return s.cancelWizard(ctx, chatID)
	case domain.ActionStop:
		return s.stop(ctx, chatID)
	case domain.ActionStatus:
		return s.reply(ctx, chatID, renderSnapshot(s.Snapshot()), MainMenu())
	case domain.ActionReset:
		return s.reset(ctx, chatID)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownAction, action)
	}
}

// HandleText feeds one free-text operator message into the wizard.
func (s *TaskService) HandleText(ctx context.Context, chatID int64, text string) error {
	s.mu.Lock()
	phase := s.session.Phase

	switch phase {
	case domain.PhaseAwaitingName:
		if strings.TrimSpace(text) == "" {
			s.mu.Unlock()
			return s.refuse(ctx, chatID, domain.ErrEmptyInput, "The group name cannot be empty. Send the group name:")
		}
		s.session.Spec.Name = text
		s.session.Phase = domain.PhaseAwaitingParticipants
		s.mu.Unlock()

		return s.reply(ctx, chatID, fmt.Sprintf("Group name: %s\n\nNow send the participant phone numbers, separated by spaces (e.g. 628123 628567):", text), nil)

	case domain.PhaseAwaitingParticipants:
		participants := domain.ParseParticipants(text)
		if len(participants) == 0 {
			s.mu.Unlock()
			return s.refuse(ctx, chatID, domain.ErrNoParticipants, "No valid phone numbers found. Send the participant numbers again:")
		}
		s.session.Spec.Participants = participants
		s.session.Phase = domain.PhaseAwaitingCount
		s.mu.Unlock()

		return s.reply(ctx, chatID, fmt.Sprintf("Participants: %d\n\nHow many groups should be created? (%d-%d)", len(participants), domain.MinCount, domain.MaxCount), nil)

	case domain.PhaseAwaitingCount:
		s.session.Spec.Count = domain.ParseCount(text)
		s.session.Phase = domain.PhaseReady
		spec := s.session.Spec.Clone()
		s.mu.Unlock()

		return s.reply(ctx, chatID, renderConfirmation(spec), ConfirmMenu())

	default:
		s.mu.Unlock()
		return s.reply(ctx, chatID, fmt.Sprintf("Nothing to do with text right now (%s). Use the menu below.", phase.Label()), MainMenu())
	}
}

// Snapshot returns a consistent copy of the session.
func (s *TaskService) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SessionSnapshot{
		Phase:           s.session.Phase,
		Name:            s.session.Spec.Name,
		Participants:    append([]string(nil), s.session.Spec.Participants...),
		Count:           s.session.Spec.Count,
		Running:         s.session.Running,
		CancelRequested: s.session.CancelRequested,
		Draining:        s.draining,
		Connected:       s.creator.IsConnected(),
	}
}

// Wait blocks until no run loop is alive.
func (s *TaskService) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Close aborts any active run and waits for its loop to return.
func (s *TaskService) Close() {
	s.cancelRoot()
	s.Wait()
}

func (s *TaskService) startWizard(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	if err := s.createGuard(); err != nil {
		s.mu.Unlock()
		return s.refuse(ctx, chatID, err, refusalText(err))
	}

	s.session.Reset()
	s.session.Phase = domain.PhaseAwaitingName
	s.mu.Unlock()

	return s.reply(ctx, chatID, "Send the group name:", CancelMenu())
}

func (s *TaskService) createGuard() error {
	switch {
	case s.session.Running:
		return domain.ErrRunActive
	case s.draining:
		return domain.ErrRunDraining
	case !s.creator.IsConnected():
		return domain.ErrNotConnected
	default:
		return nil
	}
}

func (s *TaskService) execute(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	if s.session.Running {
		s.mu.Unlock()
		return s.refuse(ctx, chatID, domain.ErrRunActive, refusalText(domain.ErrRunActive))
	}
	if s.session.Phase != domain.PhaseReady {
		s.mu.Unlock()
		return s.refuse(ctx, chatID, domain.ErrWrongPhase, "There is no confirmed task to execute. Press Create first.")
	}
	if s.draining {
		s.mu.Unlock()
		return s.refuse(ctx, chatID, domain.ErrRunDraining, refusalText(domain.ErrRunDraining))
	}
	if !s.creator.IsConnected() {
		s.mu.Unlock()
		return s.refuse(ctx, chatID, domain.ErrNotConnected, refusalText(domain.ErrNotConnected))
	}
	if err := s.session.BeginRun(); err != nil {
		s.mu.Unlock()
		return s.refuse(ctx, chatID, err, "The task is incomplete. Press Create to start over.")
	}

	s.generation++
	run := runState{
		generation: s.generation,
		chatID:     chatID,
		spec:       s.session.Spec.Clone(),
		startedAt:  s.clock.Now(),
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	s.wake = run.wake
	s.done = run.done
	s.draining = true
	s.mu.Unlock()

	s.logger.Info("run started", "name", run.spec.Name, "count", run.spec.Count, "participants", len(run.spec.Participants))

	go s.run(s.root, run)

	return nil
}

func (s *TaskService) cancelWizard(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	switch {
	case s.session.Running:
		s.mu.Unlock()
		return s.refuse(ctx, chatID, domain.ErrRunActive, "A run is active. Use Stop to end it.")
	case s.session.Phase == domain.PhaseIdle:
		s.mu.Unlock()
		return s.reply(ctx, chatID, "Nothing to cancel.", MainMenu())
	}

	s.session.Reset()
	s.mu.Unlock()

	return s.reply(ctx, chatID, "Task cancelled.", MainMenu())
}

func (s *TaskService) stop(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	if err := s.session.RequestCancel(); err != nil {
		s.mu.Unlock()
		return s.refuse(ctx, chatID, err, "Nothing to stop.")
	}
	signal(s.wake)
	s.mu.Unlock()

	s.logger.Info("stop requested")

	return s.reply(ctx, chatID, "Stopping after the current group finishes...", nil)
}

// reset forces IDLE from any phase. An active run is abandoned: its loop
// sees the generation change before the next unit and exits without touching
// the session. Until then create stays refused with ErrRunDraining.
func (s *TaskService) reset(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	wasRunning := s.session.Running
	s.session.Reset()
	if wasRunning {
		s.generation++
		signal(s.wake)
	}
	s.mu.Unlock()

	if wasRunning {
		s.logger.Warn("session reset during active run")
	}

	return s.reply(ctx, chatID, "Session reset.", MainMenu())
}

func (s *TaskService) reply(ctx context.Context, chatID int64, text string, buttons [][]ports.Button) error {
	if _, err := s.notifier.Send(ctx, ports.Message{ChatID: chatID, Text: text, Buttons: buttons}); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

func (s *TaskService) refuse(ctx context.Context, chatID int64, cause error, text string) error {
	if err := s.reply(ctx, chatID, text, nil); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// IsRefusal reports whether err is an input rejection or precondition
// violation that was already answered to the operator.
func IsRefusal(err error) bool {
	for _, target := range []error{
		domain.ErrNotConnected,
		domain.ErrRunActive,
		domain.ErrRunDraining,
		domain.ErrWrongPhase,
		domain.ErrIncompleteSpec,
		domain.ErrNothingToStop,
		domain.ErrEmptyInput,
		domain.ErrNoParticipants,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func refusalText(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotConnected):
		return "WhatsApp is not connected yet. Pair the device first."
	case errors.Is(err, domain.ErrRunActive):
		return "A run is already in progress."
	case errors.Is(err, domain.ErrRunDraining):
		return "The previous run is still finishing its current group. Try again shortly."
	default:
		return err.Error()
	}
}

func signal(ch chan struct{}) {
	if ch == nil {
		return
	}
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (s *TaskService) unitContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.UnitTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.UnitTimeout)
}
