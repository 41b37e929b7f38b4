package domain

import (
	"context"
	"io"
	"time"
)

// Organizer is the account allowed to publish and edit events.
// swagger:model Organizer
type Organizer struct {
	Email string `json:"email"`
}

// PasswordHasher hashes and verifies organizer passwords.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated organizer.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AuthService authenticates organizers.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, organizer *Organizer, err error)
}

// ImageStore persists uploaded event images and returns the URL they are served from.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (url string, err error)
}
