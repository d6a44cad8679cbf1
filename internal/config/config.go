package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Mail provider
	ResendAPIKey  string        `env:"RESEND_API_KEY" yaml:"resend_api_key"`
	ResendRegion  string        `env:"RESEND_REGION" envDefault:"us-east-1" yaml:"resend_region"`
	ResendBaseURL string        `env:"RESEND_BASE_URL" envDefault:"https://api.resend.com/" yaml:"resend_base_url"`
	MailProvider  string        `env:"MAIL_PROVIDER" envDefault:"resend" yaml:"mail_provider"`
	MailTimeout   time.Duration `env:"MAIL_TIMEOUT" envDefault:"10s" yaml:"mail_timeout"`
	EmailTo       string        `env:"EMAIL_TO" yaml:"email_to"`
	EmailFrom     string        `env:"EMAIL_FROM" envDefault:"Optica Nissy <onboarding@resend.dev>" yaml:"email_from"`

	// HTTP server
	ServerPort      string        `env:"PORT" envDefault:"3000" yaml:"port"`
	CORSOrigin      string        `env:"CORS_ORIGIN" envDefault:"http://localhost:4321" yaml:"cors_origin"`
	TrustProxy      bool          `env:"TRUST_PROXY" envDefault:"false" yaml:"trust_proxy"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"102400" yaml:"max_body_bytes"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s" yaml:"request_timeout"`
	EnableHSTS      bool          `env:"ENABLE_HSTS" envDefault:"false" yaml:"enable_hsts"`
	ServerDebugMode bool          `env:"SERVER_DEBUG_MODE" envDefault:"false" yaml:"server_debug_mode"`

	// Rate limiting
	RateLimitMax     int64 `env:"RATE_LIMIT_MAX" envDefault:"50" yaml:"rate_limit_max"`
	RateLimitHeaders bool  `env:"RATE_LIMIT_HEADERS" envDefault:"true" yaml:"rate_limit_headers"`

	// Observability
	LogFile      string `env:"LOG_FILE" yaml:"log_file,omitempty"`
	OTELEnabled  bool   `env:"OTEL_ENABLED" envDefault:"false" yaml:"otel_enabled"`
	OTELEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" yaml:"otel_endpoint,omitempty"`
}

// ErrMissingRequired is wrapped by Validate when a required variable is empty.
var ErrMissingRequired = errors.New("missing required configuration")

// Load reads a .env file when one exists, then parses configuration from the
// environment. Variables already present in the environment win over .env.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required values and bounds.
func (c *Config) Validate() error {
	if c.ResendAPIKey == "" {
		return fmt.Errorf("%w: RESEND_API_KEY is required", ErrMissingRequired)
	}
	if c.EmailTo == "" {
		return fmt.Errorf("%w: EMAIL_TO is required", ErrMissingRequired)
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", c.RateLimitMax)
	}
	if c.MailTimeout <= 0 {
		return fmt.Errorf("MAIL_TIMEOUT must be positive, got %s", c.MailTimeout)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if len(c.AllowedOrigins()) == 0 {
		return fmt.Errorf("CORS_ORIGIN must contain at least one origin")
	}
	return nil
}

// AllowedOrigins returns CORS_ORIGIN as a trimmed, de-duplicated slice.
func (c *Config) AllowedOrigins() []string {
	return AllowedOriginsSlice(c.CORSOrigin)
}

// Redacted returns a copy safe to print or log.
func (c *Config) Redacted() Config {
	out := *c
	if out.ResendAPIKey != "" {
		out.ResendAPIKey = redact(out.ResendAPIKey)
	}
	return out
}

func redact(secret string) string {
	if len(secret) <= 6 {
		return "******"
	}
	return secret[:3] + strings.Repeat("*", 6)
}

// AllowedOriginsSlice splits a comma-separated origin list.
func AllowedOriginsSlice(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	var out []string
	seen := make(map[string]bool)
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
