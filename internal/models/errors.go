package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies every failure the relay reports to clients.
type ErrorKind string

const (
	ErrorKindOriginDenied       ErrorKind = "origin_denied"
	ErrorKindRateLimitExceeded  ErrorKind = "rate_limit_exceeded"
	ErrorKindMissingFields      ErrorKind = "missing_fields"
	ErrorKindInvalidEmailFormat ErrorKind = "invalid_email_format"
	ErrorKindMalformedBody      ErrorKind = "malformed_body"
	ErrorKindPayloadTooLarge    ErrorKind = "payload_too_large"
	ErrorKindDispatchFailed     ErrorKind = "dispatch_failed"
	ErrorKindInternal           ErrorKind = "internal_error"
)

// User-facing messages
const (
	MessageSent              = "Mensaje enviado con éxito"
	MessageMissingFields     = "Faltan campos requeridos."
	MessageInvalidEmail      = "El formato del correo electrónico no es válido."
	MessageMalformedBody     = "El cuerpo de la petición no es un JSON válido."
	MessagePayloadTooLarge   = "La petición es demasiado grande."
	MessageRateLimitExceeded = "Has alcanzado el límite de mensajes por día. Por favor, inténtalo de nuevo mañana."
	MessageInternalError     = "Error interno del servidor."
	MessageOriginNotAllowed  = "El origen no está permitido por la política de CORS."
)

// MessageOriginDenied formats the rejection message for a disallowed origin.
func MessageOriginDenied(origin string) string {
	return fmt.Sprintf("El origen '%s' no está permitido por la política de CORS.", origin)
}

// RelayError is a request-scoped failure with its HTTP mapping.
type RelayError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *RelayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// NewRelayError builds a RelayError with the status and message for kind.
func NewRelayError(kind ErrorKind, err error) *RelayError {
	status, message := kind.Response()
	return &RelayError{Kind: kind, Status: status, Message: message, Err: err}
}

// NewOriginDeniedError reports a request whose Origin is not allow-listed.
func NewOriginDeniedError(origin string) *RelayError {
	return &RelayError{
		Kind:    ErrorKindOriginDenied,
		Status:  http.StatusForbidden,
		Message: MessageOriginDenied(origin),
		Err:     fmt.Errorf("origin %q not allowed", origin),
	}
}

// Response returns the HTTP status and default user message for a kind.
func (k ErrorKind) Response() (int, string) {
	switch k {
	case ErrorKindOriginDenied:
		return http.StatusForbidden, MessageOriginNotAllowed
	case ErrorKindRateLimitExceeded:
		return http.StatusTooManyRequests, MessageRateLimitExceeded
	case ErrorKindMissingFields:
		return http.StatusBadRequest, MessageMissingFields
	case ErrorKindInvalidEmailFormat:
		return http.StatusBadRequest, MessageInvalidEmail
	case ErrorKindMalformedBody:
		return http.StatusBadRequest, MessageMalformedBody
	case ErrorKindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge, MessagePayloadTooLarge
	case ErrorKindDispatchFailed, ErrorKindInternal:
		return http.StatusInternalServerError, MessageInternalError
	default:
		return http.StatusInternalServerError, MessageInternalError
	}
}

// AsRelayError maps any error to a RelayError, defaulting to InternalError.
func AsRelayError(err error) *RelayError {
	var relayErr *RelayError
	if errors.As(err, &relayErr) {
		return relayErr
	}
	return NewRelayError(ErrorKindInternal, err)
}
