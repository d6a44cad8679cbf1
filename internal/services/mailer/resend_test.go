package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func TestResendSender_Send(t *testing.T) {
	t.Parallel()

	type captured struct {
		auth, path, method string
		payload            sentPayload
	}
	requests := make(chan captured, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := captured{auth: r.Header.Get("Authorization"), path: r.URL.Path, method: r.Method}
		_ = json.NewDecoder(r.Body).Decode(&c.payload)
		requests <- c
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	sender, err := NewResendSender(ProviderConfig{APIKey: "re_test", BaseURL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)

	id, err := sender.Send(context.Background(), &Email{
		From:    "Relay <relay@example.com>",
		To:      []string{"owner@example.com"},
		Subject: "Nuevo Mensaje de Contacto: Pricing",
		HTML:    "<p>Hi</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "email_123", id)

	got := <-requests
	assert.Equal(t, "Bearer re_test", got.auth)
	assert.Equal(t, "/emails", got.path)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "Relay <relay@example.com>", got.payload.From)
	assert.Equal(t, []string{"owner@example.com"}, got.payload.To)
	assert.Equal(t, "Nuevo Mensaje de Contacto: Pricing", got.payload.Subject)
	assert.Equal(t, "<p>Hi</p>", got.payload.HTML)
}

func TestResendSender_ProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid from field"}`))
	}))
	defer srv.Close()

	sender, err := NewResendSender(ProviderConfig{APIKey: "re_test", BaseURL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)

	_, err = sender.Send(context.Background(), &Email{From: "bad", To: []string{"owner@example.com"}, Subject: "s", HTML: "h"})
	require.Error(t, err)

	var sendErr *SendError
	require.ErrorAs(t, err, &sendErr)
	assert.Equal(t, ProviderResend, sendErr.Provider)
}

func TestResendSender_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	sender, err := NewResendSender(ProviderConfig{APIKey: "re_test", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	start := time.Now()
	_, err = sender.Send(context.Background(), &Email{From: "a@b.co", To: []string{"owner@example.com"}, Subject: "s", HTML: "h"})
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestResendSender_NoRecipient(t *testing.T) {
	t.Parallel()

	sender, err := NewResendSender(ProviderConfig{APIKey: "re_test"})
	require.NoError(t, err)

	_, err = sender.Send(context.Background(), &Email{From: "a@b.co"})
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestNewResendSender_RequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewResendSender(ProviderConfig{})
	assert.Error(t, err)
}
