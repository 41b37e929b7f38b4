package helpers

import (
	"encoding/json"
	"net/http"

	"eventcatalog/internal/domain"
)

// Error codes for API error responses. Service errors use the domain kind strings.
const (
	ErrCodeBadRequest      = "bad_request"
	ErrCodeUnauthorized    = domain.KindUnauthorized
	ErrCodeNotFound        = domain.KindNotFound
	ErrCodeValidation      = domain.KindValidation
	ErrCodeTooManyRequests = "too_many_requests"
	ErrCodeInternalError   = domain.KindInternal
)

// APIError is the error object in the standardized API response envelope.
// Fields is set for validation errors only.
// swagger:model APIError
type APIError struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Fields  []domain.ValidationError `json:"fields,omitempty"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess writes statusCode and an envelope carrying data.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, APIResponse{Data: data})
}

// WriteJSONError writes statusCode and an envelope carrying the error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, APIResponse{Error: &APIError{Code: code, Message: message}})
}

// WriteValidationError writes 400 with every field violation listed.
func WriteValidationError(w http.ResponseWriter, verrs domain.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, APIResponse{Error: &APIError{
		Code:    ErrCodeValidation,
		Message: verrs.Error(),
		Fields:  verrs,
	}})
}

func writeJSON(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
