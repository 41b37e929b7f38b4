package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventcatalog/internal/domain"
)

// StatusForKind maps a domain error kind to its HTTP status.
func StatusForKind(kind string) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindReferenceNotFound, domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindDuplicateBooking, domain.KindSlugConflict:
		return http.StatusConflict
	case domain.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// WriteServiceError writes the envelope for an error returned by a service.
// Internal and store errors are logged and their details are not echoed to the client.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		WriteValidationError(w, verrs)
		return
	}
	kind := domain.ErrorKind(err)
	status := StatusForKind(kind)
	message := err.Error()
	switch kind {
	case domain.KindInternal:
		message = "internal server error"
	case domain.KindStoreUnavailable:
		message = "service temporarily unavailable"
	case domain.KindReferenceNotFound:
		message = domain.ErrReferenceNotFound.Error()
	case domain.KindNotFound:
		message = "event not found"
	}
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	WriteJSONError(w, status, kind, message)
}
