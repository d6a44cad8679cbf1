package middleware

import (
	"net/http"

	logpkg "github.com/benvon/contact-relay/internal/logger"
	"github.com/benvon/contact-relay/internal/request"
	"go.uber.org/zap"
)

// Audit logs rejected requests: origin denials, rate limit violations and
// server errors.
func Audit(logger *zap.Logger, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := wrapStatus(w)

			next.ServeHTTP(wrapped, r)

			var event string
			switch status := wrapped.statusCode; {
			case status == http.StatusForbidden:
				event = "origin_rejected"
			case status == http.StatusTooManyRequests:
				event = "rate_limit_violation"
			case status >= http.StatusInternalServerError:
				event = "server_error_response"
			default:
				return
			}

			logger.Warn(event,
				zap.Int("status_code", wrapped.statusCode),
				zap.String("method", r.Method),
				zap.String("path", logpkg.SanitizePath(r.URL.Path)),
				zap.String("origin", logpkg.SanitizeHeader(r.Header.Get("Origin"))),
				zap.String("ip", logpkg.SanitizeHeader(request.ClientIP(r, trustProxy))),
				zap.String("request_id", request.RequestIDFromContext(r.Context())),
			)
		})
	}
}
