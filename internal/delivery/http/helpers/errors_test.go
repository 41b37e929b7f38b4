package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventcatalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{name: "validation", err: domain.ValidationErrors{{Field: "mode", Reason: "bad"}}, wantStatus: http.StatusBadRequest, wantCode: "validation_error"},
		{name: "reference", err: fmt.Errorf("guard: %w", domain.ErrReferenceNotFound), wantStatus: http.StatusNotFound, wantCode: "reference_not_found", wantMessage: "referenced event does not exist"},
		{name: "not found", err: fmt.Errorf("get event: %w", domain.ErrNotFound), wantStatus: http.StatusNotFound, wantCode: "not_found", wantMessage: "event not found"},
		{name: "duplicate", err: domain.ErrDuplicateBooking, wantStatus: http.StatusConflict, wantCode: "duplicate_booking"},
		{name: "slug", err: fmt.Errorf("%w: go-meetup", domain.ErrSlugConflict), wantStatus: http.StatusConflict, wantCode: "slug_conflict"},
		{name: "store down", err: fmt.Errorf("%w: dial tcp 10.0.0.1", domain.ErrStoreUnavailable), wantStatus: http.StatusServiceUnavailable, wantCode: "store_unavailable", wantMessage: "service temporarily unavailable"},
		{name: "unknown", err: errors.New("pq: syntax error"), wantStatus: http.StatusInternalServerError, wantCode: "internal_error", wantMessage: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteServiceError(rr, httptest.NewRequest(http.MethodGet, "/events", nil), testLogger, tt.err)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Nil(t, envelope.Data)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, envelope.Error.Message)
			}
		})
	}
}

func TestWriteValidationError_ListsFields(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteValidationError(rr, domain.ValidationErrors{
		{Field: "title", Reason: "is required"},
		{Field: "time", Reason: "must be in HH:MM AM/PM format"},
	})

	var envelope APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Len(t, envelope.Error.Fields, 2)
	assert.Equal(t, "time", envelope.Error.Fields[1].Field)
}
