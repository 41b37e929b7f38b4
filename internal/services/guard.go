package services

import (
	"context"
	"errors"
	"fmt"

	"eventcatalog/internal/domain"

	"github.com/google/uuid"
)

type bookingGuard struct {
	eventRepo   domain.EventRepository
	bookingRepo domain.BookingRepository
}

// NewBookingGuard returns a BookingGuard that checks the event reference and the
// (event, email) uniqueness of a booking before it is written.
func NewBookingGuard(eventRepo domain.EventRepository, bookingRepo domain.BookingRepository) domain.BookingGuard {
	return &bookingGuard{eventRepo: eventRepo, bookingRepo: bookingRepo}
}

// Authorize expects b.Email to be normalized already.
func (g *bookingGuard) Authorize(ctx context.Context, b *domain.Booking) error {
	if _, err := uuid.Parse(b.EventID); err != nil {
		return domain.ErrReferenceNotFound
	}
	if _, err := g.eventRepo.GetByID(ctx, b.EventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrReferenceNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}

	_, err := g.bookingRepo.GetByEventAndEmail(ctx, b.EventID, b.Email)
	switch {
	case err == nil:
		return domain.ErrDuplicateBooking
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("get booking: %w", err)
	}
}
