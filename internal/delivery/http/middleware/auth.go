package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "eventcatalog/internal/delivery/http/helpers"
	"eventcatalog/internal/domain"
)

type contextKey string

const organizerKey contextKey = "organizer"

// SetOrganizer returns a context carrying the authenticated organizer's email.
func SetOrganizer(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, organizerKey, email)
}

// OrganizerFromContext returns the authenticated organizer's email, if present.
func OrganizerFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(organizerKey).(string)
	return email, ok
}

// bearerChallenge is sent with every 401 so clients know to obtain a token from POST /auth/login.
const bearerChallenge = `Bearer realm="organizer"`

// RequireAuth returns a wrapper that admits only requests carrying a valid organizer bearer token.
// The verified organizer email is stored in the request context. Rejections get 401 with a
// WWW-Authenticate challenge and next is not called.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, reason := bearerToken(r.Header.Get("Authorization"))
			if reason != "" {
				rejectOrganizer(w, reason)
				return
			}
			organizer, err := verifier.Verify(token)
			if err == nil && strings.TrimSpace(organizer) == "" {
				err = errors.New("token has no subject")
			}
			if err != nil {
				logger.DebugContext(r.Context(), "organizer token rejected", "method", r.Method, "path", r.URL.Path, "err", err)
				rejectOrganizer(w, "invalid or expired token")
				return
			}
			logger.DebugContext(r.Context(), "organizer authenticated", "organizer", organizer, "method", r.Method, "path", r.URL.Path)
			next(w, r.WithContext(SetOrganizer(r.Context(), organizer)))
		}
	}
}

// bearerToken extracts the token from an Authorization header. A non-empty reason means the header is unusable.
func bearerToken(header string) (token, reason string) {
	if header == "" {
		return "", "missing authorization header"
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", "invalid authorization format"
	}
	token = strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", "missing token"
	}
	return token, ""
}

func rejectOrganizer(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", bearerChallenge)
	h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, message)
}
