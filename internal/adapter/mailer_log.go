package adapter

import (
	"context"

	"github.com/MKhiriev/go-membership/internal/logger"
)

type logMailer struct {
	logger *logger.Logger
}

// NewLogMailer returns a [Mailer] that writes every message to log instead
// of delivering it. It is used in development and when no provider is set.
func NewLogMailer(log *logger.Logger) Mailer {
	return &logMailer{logger: log}
}

func (l *logMailer) Send(ctx context.Context, email Email) error {
	l.logger.Info().
		Str("to", email.To).
		Str("subject", email.Subject).
		Str("body", email.Text).
		Msg("email not delivered, no provider configured")
	return nil
}
