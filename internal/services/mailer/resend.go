package mailer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

const (
	// ProviderResend is the registry name of the Resend provider
	ProviderResend = "resend"
	// DefaultResendBaseURL is the Resend API endpoint
	DefaultResendBaseURL = "https://api.resend.com/"
	// DefaultTimeout is the default timeout for provider API calls
	DefaultTimeout = 10 * time.Second
)

// ResendSender implements Sender using the Resend API
type ResendSender struct {
	client *resend.Client
	region string
	logger *zap.Logger
}

// NewResendSender creates a Resend-backed sender. The HTTP client carries
// cfg.Timeout so a stalled provider cannot hold a request open.
func NewResendSender(cfg ProviderConfig) (*ResendSender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("resend API key not configured")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultResendBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid resend base URL: %w", err)
	}

	httpClient := &http.Client{
		Timeout: timeout,
	}
	client := resend.NewCustomClient(httpClient, cfg.APIKey)
	client.BaseURL = parsed

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ResendSender{
		client: client,
		region: cfg.Region,
		logger: logger,
	}, nil
}

// Send submits the email to Resend
func (s *ResendSender) Send(ctx context.Context, email *Email) (string, error) {
	if len(email.To) == 0 {
		return "", &SendError{Provider: ProviderResend, Err: ErrNoRecipient}
	}

	params := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", &SendError{Provider: ProviderResend, Err: err}
	}

	s.logger.Debug("resend_email_accepted",
		zap.String("email_id", sent.Id),
		zap.String("region", s.region),
	)

	return sent.Id, nil
}
