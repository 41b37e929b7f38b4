package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by services, repositories and the HTTP layer.
var (
	ErrNotFound          = errors.New("not found")
	ErrReferenceNotFound = errors.New("referenced event does not exist")
	ErrDuplicateBooking  = errors.New("email has already booked this event")
	ErrSlugConflict      = errors.New("an event with this slug already exists")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrUnauthorized      = errors.New("invalid credentials")
	ErrInvalidInput      = errors.New("invalid input")
)

// Error kinds reported to callers.
const (
	KindValidation        = "validation_error"
	KindReferenceNotFound = "reference_not_found"
	KindDuplicateBooking  = "duplicate_booking"
	KindSlugConflict      = "slug_conflict"
	KindStoreUnavailable  = "store_unavailable"
	KindNotFound          = "not_found"
	KindUnauthorized      = "unauthorized"
	KindInternal          = "internal_error"
)

// ValidationError is a single field-level violation.
// swagger:model ValidationError
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationErrors is the list of violations found in one payload.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Field+": "+e.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a violation for field.
func (v *ValidationErrors) Add(field, reason string) {
	*v = append(*v, ValidationError{Field: field, Reason: reason})
}

// Has reports whether field has at least one violation.
func (v ValidationErrors) Has(field string) bool {
	for _, e := range v {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Err returns v as an error, or nil when there are no violations.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// ErrorKind classifies err into one of the Kind constants.
func ErrorKind(err error) string {
	var verrs ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return KindValidation
	case errors.Is(err, ErrReferenceNotFound):
		return KindReferenceNotFound
	case errors.Is(err, ErrDuplicateBooking):
		return KindDuplicateBooking
	case errors.Is(err, ErrSlugConflict):
		return KindSlugConflict
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	default:
		return KindInternal
	}
}
