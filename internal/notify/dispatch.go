// Package notify defines the notification-dispatch capability the alert
// scheduler depends on, plus its concrete implementations. The scheduler only
// sees the Dispatcher interface, so the engine stays testable with a fake.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
)

// Dispatcher delivers one notification to one recipient. A non-nil error
// means the message was not delivered; the caller decides whether to retry
// (the alert cycle leaves its dedup state untouched so the next tick does).
type Dispatcher interface {
	Send(ctx context.Context, to domain.AlertCandidate, subject, body string) error
}

// LogDispatcher writes notifications to the structured log instead of
// delivering them. Used in development and as a safe default when SMTP is
// not configured.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher returns a Dispatcher that only logs.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// Send logs the notification and reports success.
func (d *LogDispatcher) Send(ctx context.Context, to domain.AlertCandidate, subject, body string) error {
	d.logger.InfoContext(ctx, "notification (log only)",
		"owner_id", to.OwnerID,
		"subject", subject,
		"body_bytes", len(body),
	)
	return nil
}

// FailingDispatcher always fails with domain.ErrDispatch. Useful in tests
// and as an explicit "notifications disabled" mode where sends must surface
// as failures rather than silently succeed.
type FailingDispatcher struct{}

// Send always returns a dispatch error.
func (FailingDispatcher) Send(context.Context, domain.AlertCandidate, string, string) error {
	return fmt.Errorf("%w: dispatcher disabled", domain.ErrDispatch)
}
