package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventcatalog/internal/delivery/http/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// recordingVerifier accepts exactly one token and records what it was asked to verify.
type recordingVerifier struct {
	valid   string
	subject string
	seen    []string
}

func (v *recordingVerifier) Verify(token string) (string, error) {
	v.seen = append(v.seen, token)
	if token != v.valid {
		return "", errors.New("token is expired")
	}
	return v.subject, nil
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		subject    string
		wantStatus int
		wantSeen   []string
	}{
		{name: "valid token", header: "Bearer tok-1", wantStatus: http.StatusOK, wantSeen: []string{"tok-1"}},
		{name: "token is trimmed", header: "Bearer   tok-1  ", wantStatus: http.StatusOK, wantSeen: []string{"tok-1"}},
		{name: "no header", wantStatus: http.StatusUnauthorized},
		{name: "basic scheme", header: "Basic b3JnOnB3", wantStatus: http.StatusUnauthorized},
		{name: "lowercase scheme", header: "bearer tok-1", wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer tok-2", wantStatus: http.StatusUnauthorized, wantSeen: []string{"tok-2"}},
		{name: "token without organizer subject", header: "Bearer tok-1", subject: " ", wantStatus: http.StatusUnauthorized, wantSeen: []string{"tok-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject := tt.subject
			if subject == "" {
				subject = "organizer@example.com"
			}
			verifier := &recordingVerifier{valid: "tok-1", subject: subject}
			var organizer string
			var called bool
			handler := RequireAuth(verifier, testLogger)(func(w http.ResponseWriter, r *http.Request) {
				called = true
				organizer, _ = OrganizerFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/events", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantSeen, verifier.seen)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, called)
				assert.Equal(t, "organizer@example.com", organizer)
				return
			}
			assert.False(t, called)
			assert.Equal(t, `Bearer realm="organizer"`, rr.Header().Get("WWW-Authenticate"))
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)
		})
	}
}

func TestOrganizerFromContext_Absent(t *testing.T) {
	_, ok := OrganizerFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
