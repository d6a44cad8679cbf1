package mailer

import (
	"context"
	"fmt"
	"time"

	logpkg "github.com/benvon/contact-relay/internal/logger"
	"github.com/benvon/contact-relay/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// SubjectPrefix is prepended to the submitted subject
const SubjectPrefix = "Nuevo Mensaje de Contacto: "

// Submitted values are interpolated verbatim, without HTML escaping.
const bodyFormat = `<p><strong>Nombre:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Teléfono:</strong> %s</p>
<p><strong>Asunto:</strong> %s</p>
<p><strong>Mensaje:</strong></p>
<p>%s</p>`

const tracerName = "github.com/benvon/contact-relay/internal/services/mailer"

// DispatcherConfig holds the fixed addressing and the send deadline.
type DispatcherConfig struct {
	From    string
	To      string
	Timeout time.Duration
}

// Dispatcher turns validated submissions into emails and sends them
type Dispatcher struct {
	sender  Sender
	from    string
	to      string
	timeout time.Duration
	logger  *zap.Logger
	tracer  trace.Tracer
}

// NewDispatcher creates a dispatcher over sender
func NewDispatcher(sender Sender, cfg DispatcherConfig, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		sender:  sender,
		from:    cfg.From,
		to:      cfg.To,
		timeout: timeout,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}
}

// Compose builds the outbound email for a submission
func (d *Dispatcher) Compose(sub *models.ContactSubmission) *Email {
	return &Email{
		From:    d.from,
		To:      []string{d.to},
		Subject: SubjectPrefix + sub.Subject,
		HTML:    fmt.Sprintf(bodyFormat, sub.Name, sub.Email, sub.Phone, sub.Subject, sub.Message),
	}
}

// Dispatch sends the submission and waits for the provider to accept it.
// Any provider failure, including the deadline expiring, is reported as a
// DispatchFailed RelayError. There is no retry.
func (d *Dispatcher) Dispatch(ctx context.Context, sub *models.ContactSubmission) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	ctx, span := d.tracer.Start(ctx, "mailer.send")
	defer span.End()

	email := d.Compose(sub)
	start := time.Now()
	id, err := d.sender.Send(ctx, email)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		d.logger.Error("email_dispatch_failed",
			zap.String("error", logpkg.SanitizeError(err)),
			zap.Bool("timeout", IsTimeout(err)),
			zap.Int64("duration_ms", duration.Milliseconds()),
		)
		return "", models.NewRelayError(models.ErrorKindDispatchFailed, err)
	}

	span.SetAttributes(attribute.String("mailer.email_id", id))
	d.logger.Info("email_dispatched",
		zap.String("email_id", id),
		zap.Int64("duration_ms", duration.Milliseconds()),
	)
	return id, nil
}
