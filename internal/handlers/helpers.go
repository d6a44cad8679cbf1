package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	logpkg "github.com/benvon/contact-relay/internal/logger"
	"github.com/benvon/contact-relay/internal/models"
	"go.uber.org/zap"
)

// respondMessage sends a {"message": ...} JSON response
func respondMessage(w http.ResponseWriter, status int, message string, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(models.MessageResponse{Message: message}); err != nil {
		logger.Error("failed_to_encode_response",
			zap.Error(err),
			zap.Int("status_code", status),
		)
	}
}

// respondError maps err onto its response. Errors that are not RelayErrors
// are logged and reported as InternalError so no internal detail leaks.
func respondError(w http.ResponseWriter, err error, logger *zap.Logger) {
	relayErr := models.AsRelayError(err)
	if relayErr.Kind == models.ErrorKindInternal {
		logger.Error("unexpected_handler_error",
			zap.String("error", logpkg.SanitizeError(err)),
		)
	}
	respondMessage(w, relayErr.Status, relayErr.Message, logger)
}

// decodeBody reads the JSON object in the request body. An empty body decodes
// to an empty record so the validator reports the missing fields. Anything
// but whitespace after the object is a malformed body.
func decodeBody(r *http.Request) (map[string]any, error) {
	raw := map[string]any{}
	if r.Body == nil {
		return raw, nil
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&raw); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return map[string]any{}, nil
		case errors.As(err, &maxErr):
			return nil, models.NewRelayError(models.ErrorKindPayloadTooLarge, err)
		default:
			return nil, models.NewRelayError(models.ErrorKindMalformedBody, err)
		}
	}
	// Only whitespace may follow the value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, models.NewRelayError(models.ErrorKindPayloadTooLarge, err)
		}
		if err == nil {
			err = errors.New("unexpected data after JSON body")
		}
		return nil, models.NewRelayError(models.ErrorKindMalformedBody, err)
	}
	if raw == nil {
		// JSON null
		raw = map[string]any{}
	}
	return raw, nil
}
