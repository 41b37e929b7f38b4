package validation

import (
	"errors"
	"regexp"
	"strings"

	"eventcatalog/internal/domain"
)

// emailPattern is a conservative RFC 5322 style address check.
var emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// ValidateBookingEmail checks raw against the address pattern and returns it
// lowercased. Surrounding whitespace is not part of the address and is
// removed before the check.
func ValidateBookingEmail(raw string) (string, error) {
	var errs domain.ValidationErrors
	email := strings.TrimSpace(raw)
	switch {
	case email == "":
		errs.Add("email", "is required")
	case !emailPattern.MatchString(email):
		errs.Add("email", "please provide a valid email address")
	}
	if err := errs.Err(); err != nil {
		return "", err
	}
	return strings.ToLower(email), nil
}

// ValidateBooking validates a booking payload. The event reference is only
// checked for presence here; whether it resolves is decided by the booking guard.
func ValidateBooking(in domain.BookingInput) (domain.BookingInput, error) {
	var errs domain.ValidationErrors
	eventID := strings.TrimSpace(in.EventID)
	if eventID == "" {
		errs.Add("event_id", "is required")
	}
	email, err := ValidateBookingEmail(in.Email)
	if err != nil {
		var emailErrs domain.ValidationErrors
		if errors.As(err, &emailErrs) {
			errs = append(errs, emailErrs...)
		}
	}
	if err := errs.Err(); err != nil {
		return domain.BookingInput{}, err
	}
	return domain.BookingInput{EventID: eventID, Email: email}, nil
}

