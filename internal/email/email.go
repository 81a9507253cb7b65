package email

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender logs emails instead of sending them. Used in ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, to, subject, _ string) error {
	s.logger.InfoContext(ctx, "email (local dev)", "to", to, "subject", subject)
	return nil
}

// ResendSender sends emails via the Resend API in staging and production.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewSender returns a LogSender for ENV=local, ResendSender otherwise.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return &LogSender{logger: logger.With("component", "email")}
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// WelcomeMessage renders the subject and HTML body sent after registration.
func WelcomeMessage(name string) (subject, body string) {
	subject = "Welcome to Task Manager"
	body = fmt.Sprintf(
		`<p>Hi %s,</p><p>Your account is ready. Sign in to start adding tasks.</p>`,
		html.EscapeString(name),
	)
	return subject, body
}
