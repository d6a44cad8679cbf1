package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/benvon/contact-relay/internal/models"
	"go.uber.org/zap"
)

// writeMessage sends a {"message": ...} JSON body with status
func writeMessage(w http.ResponseWriter, status int, message string, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(models.MessageResponse{Message: message}); err != nil && logger != nil {
		logger.Error("failed_to_encode_error_response",
			zap.Error(err),
			zap.Int("status_code", status),
		)
	}
}

// writeRelayError sends the response for a RelayError
func writeRelayError(w http.ResponseWriter, err *models.RelayError, logger *zap.Logger) {
	writeMessage(w, err.Status, err.Message, logger)
}
