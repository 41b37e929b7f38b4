package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcatalog/internal/domain"
)

func TestJWT_IssueAndVerify(t *testing.T) {
	secret := "test-secret"
	token, err := NewJWTIssuer(secret).Issue("organizer@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := NewJWTVerifier(secret).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "organizer@example.com", subject)

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, "eventcatalog", claims.Issuer)
}

func TestJWT_VerifyRejects(t *testing.T) {
	good, err := NewJWTIssuer("secret").Issue("organizer@example.com", time.Hour)
	require.NoError(t, err)
	expired, err := NewJWTIssuer("secret").Issue("organizer@example.com", -time.Minute)
	require.NoError(t, err)
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer: "eventcatalog", Subject: "x", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{name: "wrong secret", secret: "other", token: good},
		{name: "expired", secret: "secret", token: expired},
		{name: "garbage", secret: "secret", token: "not.a.jwt"},
		{name: "unsigned", secret: "secret", token: noneAlg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJWTVerifier(tt.secret).Verify(tt.token)
			require.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
