package domain

import (
	"context"
	"time"
)

// Booking represents one attendee's reservation for one event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking creates a new Booking. ID is set by the service before it is stored.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingInput is the raw booking payload.
type BookingInput struct {
	EventID string `json:"event_id"`
	Email   string `json:"email"`
}

// EventBookings bundles an event with its bookings.
type EventBookings struct {
	Event    *Event     `json:"event"`
	Bookings []*Booking `json:"bookings"`
	Count    int        `json:"count"`
}

// BookingRepository defines storage operations for bookings.
// Create returns ErrDuplicateBooking or ErrReferenceNotFound when a store constraint rejects the row.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*Booking, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Booking, error)
}

// BookingGuard checks a booking against the event and booking stores before it is written.
type BookingGuard interface {
	Authorize(ctx context.Context, booking *Booking) error
}

// BookingService defines attendee-facing booking operations.
type BookingService interface {
	CreateBooking(ctx context.Context, in BookingInput) (*Booking, error)
	ListEventBookings(ctx context.Context, slug string) (*EventBookings, error)
}
