package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	logpkg "github.com/benvon/contact-relay/internal/logger"
	"github.com/benvon/contact-relay/internal/models"
	"github.com/benvon/contact-relay/internal/request"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

const (
	// RateLimitWindow is the per-client window length
	RateLimitWindow = 24 * time.Hour
	// DefaultRateLimitMax is the number of submissions a client may make per window
	DefaultRateLimitMax = 50

	rateLimitStorePrefix  = "contact"
	rateLimitStoreCleanUp = time.Minute
)

// Rate limit response headers
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
)

// RateLimitConfig configures the per-client limiter
type RateLimitConfig struct {
	// Max requests allowed per Period. Requests beyond it are rejected.
	Max int64
	// Period defaults to RateLimitWindow.
	Period time.Duration
	// Headers enables X-RateLimit-* and Retry-After response headers.
	Headers bool
	// TrustProxy keys clients by X-Forwarded-For / X-Real-IP.
	TrustProxy bool
}

// RateLimiter counts requests per client IP in process memory using
// ulule/limiter's memory store. A window starts at a client's first request
// and resets once Period has elapsed.
type RateLimiter struct {
	limiter    *limiter.Limiter
	headers    bool
	trustProxy bool
	logger     *zap.Logger
}

// NewRateLimiter creates an in-memory rate limiter
func NewRateLimiter(cfg RateLimitConfig, logger *zap.Logger) (*RateLimiter, error) {
	if cfg.Max <= 0 {
		return nil, fmt.Errorf("rate limit max must be positive, got %d", cfg.Max)
	}
	period := cfg.Period
	if period <= 0 {
		period = RateLimitWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rate := limiter.Rate{
		Formatted: fmt.Sprintf("%d-%s", cfg.Max, period),
		Period:    period,
		Limit:     cfg.Max,
	}
	store := memorystore.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          rateLimitStorePrefix,
		CleanUpInterval: rateLimitStoreCleanUp,
	})

	return &RateLimiter{
		limiter:    limiter.New(store, rate),
		headers:    cfg.Headers,
		trustProxy: cfg.TrustProxy,
		logger:     logger,
	}, nil
}

// Middleware enforces the limit. Store errors fail open.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := request.ClientIP(r, l.trustProxy)

		lctx, err := l.limiter.Get(r.Context(), key)
		if err != nil {
			l.logger.Warn("rate_limit_store_error_allowing_request",
				zap.String("error", logpkg.SanitizeError(err)),
			)
			next.ServeHTTP(w, r)
			return
		}

		if l.headers {
			w.Header().Set(HeaderRateLimitLimit, strconv.FormatInt(lctx.Limit, 10))
			w.Header().Set(HeaderRateLimitRemaining, strconv.FormatInt(lctx.Remaining, 10))
			w.Header().Set(HeaderRateLimitReset, strconv.FormatInt(lctx.Reset, 10))
		}

		if lctx.Reached {
			if l.headers {
				retryAfter := lctx.Reset - time.Now().Unix()
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set(HeaderRetryAfter, strconv.FormatInt(retryAfter, 10))
			}
			writeRelayError(w, models.NewRelayError(models.ErrorKindRateLimitExceeded, nil), l.logger)
			return
		}

		next.ServeHTTP(w, r)
	})
}
