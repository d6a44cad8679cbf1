package mailer

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Email is a fully prepared outbound message.
type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Sender is the interface for mail providers
type Sender interface {
	// Send hands the email to the provider and returns the provider's message ID.
	// A nil error means the provider accepted the request, not that it was delivered.
	Send(ctx context.Context, email *Email) (string, error)
}

// ProviderConfig carries everything a provider factory may need.
type ProviderConfig struct {
	APIKey  string
	BaseURL string
	Region  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// ProviderFactory creates a Sender from configuration
type ProviderFactory func(cfg ProviderConfig) (Sender, error)

// Registry stores available mail providers
type Registry struct {
	providers map[string]ProviderFactory
}

// NewRegistry creates a registry with the built-in providers registered.
func NewRegistry() *Registry {
	r := &Registry{providers: make(map[string]ProviderFactory)}
	r.Register(ProviderResend, func(cfg ProviderConfig) (Sender, error) {
		return NewResendSender(cfg)
	})
	r.Register(ProviderLog, func(cfg ProviderConfig) (Sender, error) {
		return NewLogSender(cfg.Logger), nil
	})
	return r
}

// Register registers a provider factory
func (r *Registry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// Names returns registered provider names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetProvider gets a provider by name
func (r *Registry) GetProvider(name string, cfg ProviderConfig) (Sender, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, &ErrProviderNotFound{Name: name, Available: r.Names()}
	}
	return factory(cfg)
}

// ErrProviderNotFound is returned when a provider is not found
type ErrProviderNotFound struct {
	Name      string
	Available []string
}

func (e *ErrProviderNotFound) Error() string {
	msg := "mail provider not found: " + e.Name
	if len(e.Available) > 0 {
		msg += " (available: " + strings.Join(e.Available, ", ") + ")"
	}
	return msg
}
