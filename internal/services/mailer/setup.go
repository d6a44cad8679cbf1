package mailer

import (
	"fmt"

	"github.com/benvon/contact-relay/internal/config"
	"go.uber.org/zap"
)

// NewFromConfig builds the dispatcher for the configured provider.
func NewFromConfig(cfg *config.Config, logger *zap.Logger) (*Dispatcher, error) {
	sender, err := NewRegistry().GetProvider(cfg.MailProvider, ProviderConfig{
		APIKey:  cfg.ResendAPIKey,
		BaseURL: cfg.ResendBaseURL,
		Region:  cfg.ResendRegion,
		Timeout: cfg.MailTimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mail provider: %w", err)
	}

	return NewDispatcher(sender, DispatcherConfig{
		From:    cfg.EmailFrom,
		To:      cfg.EmailTo,
		Timeout: cfg.MailTimeout,
	}, logger), nil
}
