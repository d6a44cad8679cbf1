package handlers

import (
	"context"
	"net/http"

	"github.com/benvon/contact-relay/internal/models"
	"github.com/benvon/contact-relay/internal/request"
	"github.com/benvon/contact-relay/internal/validation"
	"go.uber.org/zap"
)

// Dispatcher sends a validated submission and returns the provider's email ID
type Dispatcher interface {
	Dispatch(ctx context.Context, sub *models.ContactSubmission) (string, error)
}

// ContactHandler handles contact form submissions
type ContactHandler struct {
	dispatcher Dispatcher
	logger     *zap.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(dispatcher Dispatcher, logger *zap.Logger) *ContactHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Submit handles POST /. Origin and rate checks have already run by the time
// the request gets here; the body is validated and relayed by email.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	requestID := request.RequestIDFromContext(r.Context())

	raw, err := decodeBody(r)
	if err != nil {
		h.logger.Debug("contact_body_rejected",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		respondError(w, err, h.logger)
		return
	}

	submission, err := validation.ValidateSubmission(raw)
	if err != nil {
		h.logger.Debug("contact_validation_failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		respondError(w, err, h.logger)
		return
	}

	if _, err := h.dispatcher.Dispatch(r.Context(), submission); err != nil {
		respondError(w, err, h.logger)
		return
	}

	respondMessage(w, http.StatusOK, models.MessageSent, h.logger)
}
