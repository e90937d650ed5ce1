package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/opbots/internal/domain"
	"github.com/bnema/opbots/internal/ports"
)

const finalReportTimeout = 10 * time.Second

type runState struct {
	generation uint64
	chatID     int64
	spec       domain.TaskSpec
	startedAt  time.Time
	wake       chan struct{}
	done       chan struct{}
}

// run drains one batch. The cancellation flag is consulted only before a
// unit starts; a unit in flight always runs to completion.
func (s *TaskService) run(ctx context.Context, r runState) {
	defer close(r.done)

	report := domain.RunReport{Outcome: domain.RunCompleted, Total: r.spec.Count}
	var progress *ports.MessageRef

	for i := 1; i <= r.spec.Count; i++ {
		if outcome, halt := s.checkpoint(ctx, r.generation); halt {
			report.Outcome = outcome
			break
		}

		label := domain.UnitLabel(r.spec.Name, i)
		progress = s.reportProgress(ctx, r.chatID, progress, i, r.spec.Count, label)

		report.Attempted++
		if err := s.performUnit(ctx, label, r.spec.Participants); err != nil {
			report.Failures = append(report.Failures, domain.UnitFailure{Index: i, Label: label, Err: err.Error()})
			s.logger.Warn("unit failed", "label", label, "error", err)
			s.notify(ctx, r.chatID, fmt.Sprintf("Failed to create %s: %v", label, err))
		} else {
			report.Succeeded++
			s.logger.Info("unit completed", "label", label, "index", i, "total", r.spec.Count)
		}

		if i < r.spec.Count {
			s.pause(ctx, r.wake)
		}
	}

	s.finish(r, report)
}

// checkpoint reports whether the loop must halt before the next unit and why.
func (s *TaskService) checkpoint(ctx context.Context, generation uint64) (domain.RunOutcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.generation != generation:
		return domain.RunAbandoned, true
	case s.session.CancelRequested:
		return domain.RunStopped, true
	case ctx.Err() != nil:
		return domain.RunStopped, true
	default:
		return "", false
	}
}

func (s *TaskService) performUnit(ctx context.Context, label string, participants []string) error {
	unitCtx, cancel := s.unitContext(ctx)
	defer cancel()

	info, err := s.creator.CreateGroup(unitCtx, label, participants)
	if err != nil {
		return err
	}

	s.logger.Debug("group created", "label", label, "group_id", info.ID)
	return nil
}

// pause waits the fixed inter-unit delay. A stop or reset wakes it early so
// the next checkpoint runs without waiting out the delay.
func (s *TaskService) pause(ctx context.Context, wake <-chan struct{}) {
	select {
	case <-s.clock.After(domain.UnitDelay):
	case <-wake:
	case <-ctx.Done():
	}
}

func (s *TaskService) reportProgress(ctx context.Context, chatID int64, ref *ports.MessageRef, i, total int, label string) *ports.MessageRef {
	text := fmt.Sprintf("Creating groups: %d/%d\nCurrent: %s", i, total, label)

	if ref != nil {
		if err := s.notifier.Edit(ctx, *ref, text, StopMenu()); err != nil {
			s.logger.Debug("edit progress failed", "error", err)
		}
		return ref
	}

	sent, err := s.notifier.Send(ctx, ports.Message{ChatID: chatID, Text: text, Buttons: StopMenu()})
	if err != nil {
		s.logger.Debug("send progress failed", "error", err)
		return nil
	}
	return &sent
}

func (s *TaskService) finish(r runState, report domain.RunReport) {
	s.mu.Lock()
	if s.generation != r.generation {
		report.Outcome = domain.RunAbandoned
	}
	if report.Outcome != domain.RunAbandoned {
		s.session.Reset()
	}
	s.draining = false
	s.wake = nil
	s.mu.Unlock()

	s.logger.Info("run finished",
		"outcome", report.Outcome,
		"attempted", report.Attempted,
		"succeeded", report.Succeeded,
		"failed", len(report.Failures),
	)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(s.root), finalReportTimeout)
	defer cancel()

	s.record(ctx, r, report)

	if report.Outcome == domain.RunAbandoned {
		return
	}
	s.notifyWithMenu(ctx, r.chatID, renderReport(r.spec.Name, report), MainMenu())
}

func (s *TaskService) record(ctx context.Context, r runState, report domain.RunReport) {
	if s.opts.History == nil {
		return
	}

	err := s.opts.History.Append(ctx, domain.RunRecord{
		Name:       r.spec.Name,
		Report:     report,
		StartedAt:  r.startedAt,
		FinishedAt: s.clock.Now(),
	})
	if err != nil {
		s.logger.Warn("record run history failed", "error", err)
	}
}

func (s *TaskService) notify(ctx context.Context, chatID int64, text string) {
	s.notifyWithMenu(ctx, chatID, text, nil)
}

func (s *TaskService) notifyWithMenu(ctx context.Context, chatID int64, text string, buttons [][]ports.Button) {
	if _, err := s.notifier.Send(ctx, ports.Message{ChatID: chatID, Text: text, Buttons: buttons}); err != nil {
		s.logger.Warn("send notification failed", "error", err)
	}
}
