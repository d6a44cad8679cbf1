package middleware

import (
	"net/http"

	logpkg "github.com/benvon/contact-relay/internal/logger"
	"github.com/benvon/contact-relay/internal/models"
	"github.com/benvon/contact-relay/internal/request"
	"go.uber.org/zap"
)

// ErrorHandler recovers panics and answers with a generic InternalError body.
// The panic value is logged, never returned to the client.
func ErrorHandler(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("panic_recovered",
						zap.Any("error", err),
						zap.String("path", logpkg.SanitizePath(r.URL.Path)),
						zap.String("method", r.Method),
						zap.String("request_id", request.RequestIDFromContext(r.Context())),
					)
					writeRelayError(w, models.NewRelayError(models.ErrorKindInternal, nil), logger)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
