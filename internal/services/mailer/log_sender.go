package mailer

import (
	"context"

	logpkg "github.com/benvon/contact-relay/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProviderLog is the registry name of the logging provider
const ProviderLog = "log"

// LogSender writes emails to the log instead of sending them. Local development only.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send logs the email and returns a generated ID
func (s *LogSender) Send(ctx context.Context, email *Email) (string, error) {
	if len(email.To) == 0 {
		return "", &SendError{Provider: ProviderLog, Err: ErrNoRecipient}
	}
	id := uuid.NewString()
	s.logger.Info("email_logged_not_sent",
		zap.String("email_id", id),
		zap.String("from", logpkg.SanitizeHeader(email.From)),
		zap.Strings("to", email.To),
		zap.String("subject", logpkg.SanitizeString(email.Subject, logpkg.MaxGeneralStringLength)),
		zap.String("html", logpkg.SanitizeString(email.HTML, logpkg.MaxGeneralStringLength)),
	)
	return id, nil
}
