package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventcatalog/internal/domain"
)

type authService struct {
	organizerEmail string
	passwordHash   string
	hasher         domain.PasswordHasher
	issuer         domain.TokenIssuer
	tokenExpiry    time.Duration
}

// NewAuthService returns an AuthService for the single configured organizer account.
// passwordHash is the bcrypt hash produced by cmd/hashpassword.
func NewAuthService(organizerEmail, passwordHash string, hasher domain.PasswordHasher, issuer domain.TokenIssuer, expiry time.Duration) domain.AuthService {
	return &authService{
		organizerEmail: strings.ToLower(strings.TrimSpace(organizerEmail)),
		passwordHash:   passwordHash,
		hasher:         hasher,
		issuer:         issuer,
		tokenExpiry:    expiry,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Organizer, error) {
	if s.organizerEmail == "" || s.passwordHash == "" {
		return "", nil, domain.ErrUnauthorized
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != s.organizerEmail {
		return "", nil, domain.ErrUnauthorized
	}
	if err := s.hasher.Compare(s.passwordHash, password); err != nil {
		return "", nil, domain.ErrUnauthorized
	}
	token, err := s.issuer.Issue(email, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, &domain.Organizer{Email: email}, nil
}
