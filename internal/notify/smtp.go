package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
)

// SMTPConfig carries the settings for the SMTP dispatcher.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPDispatcher delivers notifications over SMTP. Transient failures are
// retried with exponential backoff inside a single Send; a Send that still
// fails after the retries returns domain.ErrDispatch and the caller's next
// daily tick retries from scratch.
type SMTPDispatcher struct {
	cfg    SMTPConfig
	logger *slog.Logger

	// send is swappable for tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPDispatcher returns a Dispatcher backed by the given SMTP server.
func NewSMTPDispatcher(cfg SMTPConfig, logger *slog.Logger) *SMTPDispatcher {
	return &SMTPDispatcher{cfg: cfg, logger: logger, send: smtp.SendMail}
}

// Send delivers one message. The recipient must have a resolved alert email;
// a candidate without one is a dispatch failure, not a silent skip, so the
// problem shows up in logs and metrics.
func (d *SMTPDispatcher) Send(ctx context.Context, to domain.AlertCandidate, subject, body string) error {
	if to.AlertEmail == "" {
		return fmt.Errorf("%w: no alert email on file for owner %s", domain.ErrDispatch, to.OwnerID)
	}

	msg := buildMessage(d.cfg.From, to.AlertEmail, subject, body)
	addr := d.cfg.Host + ":" + d.cfg.Port

	var auth smtp.Auth
	if d.cfg.Username != "" {
		auth = smtp.PlainAuth("", d.cfg.Username, d.cfg.Password, d.cfg.Host)
	}

	backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := d.send(addr, auth, d.cfg.From, []string{to.AlertEmail}, msg); err != nil {
			d.logger.WarnContext(ctx, "smtp send attempt failed",
				"owner_id", to.OwnerID,
				"error", err,
			)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDispatch, err)
	}
	return nil
}

// buildMessage assembles a minimal RFC 5322 message with CRLF line endings.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
