package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(ctx context.Context) error { return f.err }

func TestHealthController_Health(t *testing.T) {
	rr := serve("GET /health", NewHealthController(testLogger, fakePinger{}).Health,
		httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decodeEnvelope(t, rr).Data.(map[string]any)["status"])

	rr = serve("GET /health", NewHealthController(testLogger, fakePinger{err: errors.New("down")}).Health,
		httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "degraded", decodeEnvelope(t, rr).Data.(map[string]any)["status"])
}
