package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benvon/contact-relay/internal/middleware"
	"github.com/benvon/contact-relay/internal/server"
	"github.com/benvon/contact-relay/internal/services/mailer"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

// TestTraceContextPropagation verifies that a submission produces a server
// span and a child mailer.send span, and that incoming trace context is used.
func TestTraceContextPropagation(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	limiter, err := middleware.NewRateLimiter(middleware.RateLimitConfig{Max: 10}, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create rate limiter: %v", err)
	}
	dispatcher := mailer.NewDispatcher(&mailer.RecordingSender{}, mailer.DispatcherConfig{
		From:    "Relay <relay@example.com>",
		To:      "owner@example.com",
		Timeout: time.Second,
	}, zap.NewNop())

	r := server.New(server.Options{
		Origins: []string{"https://site.example"},
		Tracing: true,
	}, server.Deps{Dispatcher: dispatcher, RateLimiter: limiter, Logger: zap.NewNop()})

	tests := []struct {
		name            string
		withTraceParent bool
		traceParent     string
	}{
		{
			name:            "without existing trace ID",
			withTraceParent: false,
		},
		{
			name:            "with existing trace ID",
			withTraceParent: true,
			traceParent:     "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter.Reset()

			body := `{"name":"Ana","email":"ana@example.com","phone":"1","subject":"Hola","message":"Buenas"}`
			req := httptest.NewRequest("POST", "/", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			if tt.withTraceParent {
				req.Header.Set("traceparent", tt.traceParent)
			}

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Errorf("Expected status OK, got %d", rr.Code)
			}

			if err := tp.ForceFlush(context.Background()); err != nil {
				t.Errorf("Failed to flush tracer provider: %v", err)
			}

			spans := exporter.GetSpans()
			if len(spans) < 2 {
				t.Fatalf("Expected server and mailer spans, got %d", len(spans))
			}

			var sendSpan *tracetest.SpanStub
			for i := range spans {
				if spans[i].Name == "mailer.send" {
					sendSpan = &spans[i]
				}
			}
			if sendSpan == nil {
				t.Fatal("Expected a mailer.send span")
			}
			if !sendSpan.Parent.IsValid() {
				t.Error("Expected mailer.send to have a parent span")
			}

			if tt.withTraceParent {
				if got := sendSpan.SpanContext.TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
					t.Errorf("Expected incoming trace ID to be continued, got %s", got)
				}
			}
		})
	}
}
