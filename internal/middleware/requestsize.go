package middleware

import (
	"net/http"

	"github.com/benvon/contact-relay/internal/models"
	"go.uber.org/zap"
)

const (
	// DefaultMaxRequestSize is the default maximum request body size (100KB)
	DefaultMaxRequestSize int64 = 100 << 10
)

// MaxRequestSize limits the size of request bodies. Declared oversize bodies
// are rejected up front; undeclared ones fail when the handler reads past the cap.
func MaxRequestSize(maxBytes int64, logger *zap.Logger) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				writeRelayError(w, models.NewRelayError(models.ErrorKindPayloadTooLarge, nil), logger)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

			next.ServeHTTP(w, r)
		})
	}
}
