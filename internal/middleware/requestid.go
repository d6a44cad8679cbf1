package middleware

import (
	"net/http"

	"github.com/benvon/contact-relay/internal/request"
	"github.com/google/uuid"
)

// HeaderRequestID carries the per-request correlation ID
const HeaderRequestID = "X-Request-ID"

// RequestID tags each request with an ID, reusing a well-formed incoming one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(request.WithRequestID(r.Context(), id)))
	})
}
