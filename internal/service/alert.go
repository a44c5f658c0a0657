package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/engine"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/metrics"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/notify"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/repo"
)

// alertCooldown is how long a repeat alert at the same level is suppressed.
// A level change (in either direction) overrides the cooldown.
const alertCooldown = 7 * 24 * time.Hour

// defaultAlertConcurrency bounds how many owners are evaluated in parallel
// during one cycle.
const defaultAlertConcurrency = 8

// AlertScheduler runs the daily alert cycle: for every eligible owner it
// computes current usage, maps it onto the fixed alert ladder, applies the
// dedup rules, and dispatches. Owners are isolated: one owner's failure is
// collected and logged but never stops the others.
type AlertScheduler struct {
	alerts      repo.AlertRepo
	trips       repo.TripRepo
	settings    repo.SettingsRepo
	dispatcher  notify.Dispatcher
	metrics     *metrics.Metrics
	logger      *slog.Logger
	now         func() time.Time
	concurrency int
}

// NewAlertScheduler constructs an AlertScheduler. m may be nil; now defaults
// to time.Now when nil.
func NewAlertScheduler(alerts repo.AlertRepo, trips repo.TripRepo, settings repo.SettingsRepo, dispatcher notify.Dispatcher, m *metrics.Metrics, logger *slog.Logger, now func() time.Time) *AlertScheduler {
	if now == nil {
		now = time.Now
	}
	return &AlertScheduler{
		alerts:      alerts,
		trips:       trips,
		settings:    settings,
		dispatcher:  dispatcher,
		metrics:     m,
		logger:      logger,
		now:         now,
		concurrency: defaultAlertConcurrency,
	}
}

// RunCycle evaluates every alert candidate once. Per-owner failures are
// combined into the returned error; the cycle itself always runs to
// completion so one bad mailbox cannot starve everyone else.
func (s *AlertScheduler) RunCycle(ctx context.Context) error {
	candidates, err := s.alerts.ListCandidates(ctx)
	if err != nil {
		return fmt.Errorf("service.AlertScheduler.RunCycle: %w", err)
	}

	s.logger.InfoContext(ctx, "alert cycle starting", "candidates", len(candidates))

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs error
	)
	g.SetLimit(s.concurrency)

	for _, c := range candidates {
		g.Go(func() error {
			if _, err := s.EvaluateOwner(ctx, c); err != nil {
				s.logger.ErrorContext(ctx, "alert evaluation failed",
					"owner_id", c.OwnerID,
					"error", err,
				)
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("owner %s: %w", c.OwnerID, err))
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()

	return errs
}

// EvaluateOwner runs the alert decision for one candidate and reports whether
// an alert was dispatched. The dedup state is only written after a successful
// dispatch, so a failed send is retried naturally on the next cycle.
func (s *AlertScheduler) EvaluateOwner(ctx context.Context, c domain.AlertCandidate) (bool, error) {
	_, sent, err := s.evaluate(ctx, c)
	return sent, err
}

func (s *AlertScheduler) evaluate(ctx context.Context, c domain.AlertCandidate) (domain.AlertLevel, bool, error) {
	now := s.now()

	trips, err := s.trips.ListByOwner(ctx, c.OwnerID)
	if err != nil {
		return domain.AlertNone, false, err
	}

	used := engine.DaysUsed(trips, engine.ComputeWindow(now))
	level := domain.AlertLevelFor(used)
	if level == domain.AlertNone {
		return level, false, nil
	}

	state, err := s.alerts.GetState(ctx, c.OwnerID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return level, false, err
	}

	if level == state.LastLevel && state.LastSentAt != nil && now.Sub(*state.LastSentAt) < alertCooldown {
		s.metrics.AlertSuppressed()
		s.logger.DebugContext(ctx, "alert suppressed by cooldown",
			"owner_id", c.OwnerID,
			"level", string(level),
		)
		return level, false, nil
	}

	escalated := state.LastSentAt != nil && level.Exceeds(state.LastLevel)
	subject, body := alertMessage(level, used, engine.Remaining(used), escalated)
	if err := s.dispatcher.Send(ctx, c, subject, body); err != nil {
		s.metrics.DispatchFailed()
		return level, false, err
	}

	if _, err := s.alerts.UpsertState(ctx, domain.AlertState{
		OwnerID:    c.OwnerID,
		LastLevel:  level,
		LastSentAt: &now,
	}); err != nil {
		return level, false, err
	}

	s.metrics.AlertSent(string(level))
	s.logger.InfoContext(ctx, "alert sent",
		"owner_id", c.OwnerID,
		"level", string(level),
		"days_used", used,
	)
	return level, true, nil
}

// SendTest forces one alert evaluation for a single owner outside the daily
// cycle. The real ladder, cooldown, and dedup state all apply; the result
// reports whether thresholds were met and whether a notification actually
// went out.
func (s *AlertScheduler) SendTest(ctx context.Context, ownerID string) (domain.AlertTestResult, error) {
	settings, err := s.settings.Get(ctx, ownerID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.AlertTestResult{}, fmt.Errorf("service.AlertScheduler.SendTest: %w", err)
	}

	level, sent, err := s.evaluate(ctx, domain.AlertCandidate{OwnerID: ownerID, AlertEmail: settings.AlertEmail})
	if err != nil {
		return domain.AlertTestResult{}, fmt.Errorf("service.AlertScheduler.SendTest: %w", err)
	}
	return domain.AlertTestResult{
		ThresholdsMet: level != domain.AlertNone,
		Sent:          sent,
	}, nil
}

// alertMessage renders the subject and body for one alert level. Escalated
// alerts call out that the level went up since the last notification.
func alertMessage(level domain.AlertLevel, used, remaining int, escalated bool) (subject, body string) {
	switch level {
	case domain.AlertUrgent:
		subject = "Urgent: you are close to your 90-day Schengen limit"
	case domain.AlertDanger:
		subject = "Warning: your Schengen days are running low"
	default:
		subject = "Heads up: you have passed 60 Schengen days"
	}
	body = fmt.Sprintf(
		"You have used %d of 90 days in your current 180-day window.\n\nDays remaining: %d\n",
		used, remaining,
	)
	if escalated {
		body += "\nYour alert level has gone up since the last notification.\n"
	}
	body += "\nLog in to review your trips or simulate upcoming travel.\n"
	return subject, body
}
