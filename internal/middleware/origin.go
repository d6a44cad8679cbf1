package middleware

import (
	"net/http"

	logpkg "github.com/benvon/contact-relay/internal/logger"
	"github.com/benvon/contact-relay/internal/models"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// AllowAllOrigins in the allow-list accepts any origin
const AllowAllOrigins = "*"

// OriginPolicy is the fixed allow-list of browser origins
type OriginPolicy struct {
	origins  []string
	allowed  map[string]struct{}
	allowAll bool
}

// NewOriginPolicy creates a policy from an allow-list. It is never modified afterwards.
func NewOriginPolicy(origins []string) *OriginPolicy {
	p := &OriginPolicy{
		origins: append([]string(nil), origins...),
		allowed: make(map[string]struct{}, len(origins)),
	}
	for _, o := range origins {
		if o == AllowAllOrigins {
			p.allowAll = true
		}
		p.allowed[o] = struct{}{}
	}
	return p
}

// Allowed reports whether a request declaring origin may proceed. Requests
// with no Origin header (curl, server-to-server, mobile apps) are allowed.
func (p *OriginPolicy) Allowed(origin string) bool {
	if origin == "" || p.allowAll {
		return true
	}
	_, ok := p.allowed[origin]
	return ok
}

// Origins returns a copy of the allow-list
func (p *OriginPolicy) Origins() []string {
	return append([]string(nil), p.origins...)
}

// OriginGuard rejects requests whose Origin header is not allow-listed,
// preflights included, before any later middleware runs.
func OriginGuard(policy *OriginPolicy, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if !policy.Allowed(origin) {
				logger.Debug("origin_denied",
					zap.String("origin", logpkg.SanitizeHeader(origin)),
					zap.String("method", r.Method),
				)
				writeRelayError(w, models.NewOriginDeniedError(origin), logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORS answers preflight requests with 200 and no body and adds the
// Access-Control-* headers for allowed origins. Requested headers are echoed
// back. The rate-limit headers are exposed so browser clients can back off.
func CORS(policy *OriginPolicy) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowOriginFunc:      policy.Allowed,
		AllowedMethods:       []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders:       []string{"*"},
		ExposedHeaders:       []string{HeaderRateLimitLimit, HeaderRateLimitRemaining, HeaderRateLimitReset, HeaderRetryAfter, HeaderRequestID},
		OptionsSuccessStatus: http.StatusOK,
	})
	return c.Handler
}
