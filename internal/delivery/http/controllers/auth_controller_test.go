package controllers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventcatalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	err error
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.Organizer, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return "jwt-token", &domain.Organizer{Email: email}, nil
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
		wantCode   string
	}{
		{name: "success", body: `{"email":"organizer@example.com","password":"s3cret"}`, wantStatus: http.StatusOK},
		{name: "missing fields", body: `{}`, wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "bad credentials", body: `{"email":"organizer@example.com","password":"x"}`, fakeErr: domain.ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantCode: "unauthorized"},
		{name: "issuer failure", body: `{"email":"organizer@example.com","password":"x"}`, fakeErr: errors.New("sign failed"), wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger, &fakeAuthService{err: tt.fakeErr})
			rr := serve("POST /auth/login", ctrl.Login,
				httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body)))

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			data := envelope.Data.(map[string]any)
			assert.Equal(t, "jwt-token", data["token"])
			assert.Equal(t, "Bearer", data["token_type"])
		})
	}
}
