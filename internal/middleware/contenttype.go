package middleware

import (
	"mime"
	"net/http"
	"strings"

	logpkg "github.com/benvon/contact-relay/internal/logger"
	"go.uber.org/zap"
)

// JSONBodyOnly drops request bodies that are not declared as JSON. The
// handler then sees an empty record and reports the missing fields, the same
// outcome a form post or a bare text body gets.
func JSONBodyOnly(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody && !isJSONContentType(r.Header.Get("Content-Type")) {
				logger.Debug("non_json_body_ignored",
					zap.String("content_type", logpkg.SanitizeHeader(r.Header.Get("Content-Type"))),
				)
				_ = r.Body.Close()
				r.Body = http.NoBody
				r.ContentLength = 0
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isJSONContentType accepts application/json and +json suffixed types, with
// or without parameters.
func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	mediaType = strings.ToLower(mediaType)
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
