package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"eventcatalog/internal/domain"

	"github.com/lib/pq"
)

// Constraint names created by the migrations.
const (
	constraintEventSlug         = "events_slug_key"
	constraintBookingEventEmail = "bookings_event_id_email_key"
	constraintBookingEventFK    = "bookings_event_id_fkey"
)

// Postgres error codes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

// translateError maps driver errors onto domain errors. Unknown errors are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var perr *pq.Error
	if errors.As(err, &perr) {
		switch {
		case perr.Code == codeUniqueViolation && perr.Constraint == constraintEventSlug:
			return fmt.Errorf("%w: %s", domain.ErrSlugConflict, perr.Detail)
		case perr.Code == codeUniqueViolation && perr.Constraint == constraintBookingEventEmail:
			return domain.ErrDuplicateBooking
		case perr.Code == codeForeignKeyViolation && perr.Constraint == constraintBookingEventFK:
			return domain.ErrReferenceNotFound
		case strings.HasPrefix(string(perr.Code), "08"), strings.HasPrefix(string(perr.Code), "57P"):
			// connection exception / operator intervention (admin shutdown, cannot connect now)
			return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		return err
	}
	var nerr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &nerr) {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return err
}

// isInvalidText reports whether err is Postgres rejecting a malformed literal, e.g. a non-uuid id.
func isInvalidText(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == codeInvalidText
}
