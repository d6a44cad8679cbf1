package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benvon/contact-relay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOriginPolicy_Allowed(t *testing.T) {
	t.Parallel()

	policy := NewOriginPolicy([]string{"https://site.example", "http://localhost:4321"})

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"no origin header", "", true},
		{"listed origin", "https://site.example", true},
		{"second listed origin", "http://localhost:4321", true},
		{"unlisted origin", "https://evil.example", false},
		{"scheme mismatch", "http://site.example", false},
		{"trailing slash is a different origin", "https://site.example/", false},
		{"case differs", "https://SITE.example", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, policy.Allowed(tt.origin))
		})
	}
}

func TestOriginPolicy_Wildcard(t *testing.T) {
	t.Parallel()

	policy := NewOriginPolicy([]string{AllowAllOrigins})
	assert.True(t, policy.Allowed("https://anything.example"))
	assert.Equal(t, []string{AllowAllOrigins}, policy.Origins())
}

func TestOriginPolicy_OriginsIsACopy(t *testing.T) {
	t.Parallel()

	policy := NewOriginPolicy([]string{"https://site.example"})
	got := policy.Origins()
	got[0] = "https://evil.example"

	assert.False(t, policy.Allowed("https://evil.example"))
	assert.Equal(t, []string{"https://site.example"}, policy.Origins())
}

func originChain(policy *OriginPolicy, reached *bool) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		w.WriteHeader(http.StatusOK)
	})
	return OriginGuard(policy, zap.NewNop())(CORS(policy)(next))
}

func TestOriginGuard_DeniedOrigin(t *testing.T) {
	t.Parallel()

	reached := false
	handler := originChain(NewOriginPolicy([]string{"https://site.example"}), &reached)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	var body models.MessageResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, models.MessageOriginDenied("https://evil.example"), body.Message)
}

func TestOriginGuard_DeniedPreflight(t *testing.T) {
	t.Parallel()

	reached := false
	handler := originChain(NewOriginPolicy([]string{"https://site.example"}), &reached)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORS_AllowedPreflight(t *testing.T) {
	t.Parallel()

	reached := false
	handler := originChain(NewOriginPolicy([]string{"https://site.example"}), &reached)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://site.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.False(t, reached, "preflight must not reach the handler")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://site.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Empty(t, w.Body.String())
}

func TestCORS_PreflightEchoesRequestedHeaders(t *testing.T) {
	t.Parallel()

	reached := false
	handler := originChain(NewOriginPolicy([]string{"https://site.example"}), &reached)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://site.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type,x-requested-with")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://site.example", w.Header().Get("Access-Control-Allow-Origin"))
	allowed := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
	assert.Contains(t, allowed, "content-type")
	assert.Contains(t, allowed, "x-requested-with")
}

func TestCORS_AllowedRequestGetsHeaders(t *testing.T) {
	t.Parallel()

	reached := false
	handler := originChain(NewOriginPolicy([]string{"https://site.example"}), &reached)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Origin", "https://site.example")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://site.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Expose-Headers")), strings.ToLower(HeaderRateLimitRemaining))
}

func TestOriginGuard_NoOriginPassesThrough(t *testing.T) {
	t.Parallel()

	reached := false
	handler := originChain(NewOriginPolicy([]string{"https://site.example"}), &reached)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
