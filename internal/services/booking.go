package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventcatalog/internal/domain"
	"eventcatalog/internal/validation"

	"github.com/google/uuid"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	guard          domain.BookingGuard
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewBookingService returns a BookingService. emailService may be nil, in which case no
// confirmation is sent.
func NewBookingService(
	bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	guard domain.BookingGuard,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		guard:          guard,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, in domain.BookingInput) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	in, err := validation.ValidateBooking(in)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	booking := domain.NewBooking(in.EventID, in.Email, now, now)
	if err := s.guard.Authorize(ctx, booking); err != nil {
		return nil, err
	}
	booking.ID = uuid.NewString()
	// a concurrent booking for the same pair can pass the guard; the unique constraint catches it
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.sendConfirmation(ctx, booking)
	return booking, nil
}

func (s *bookingService) sendConfirmation(ctx context.Context, b *domain.Booking) {
	if s.emailService == nil {
		return
	}
	event, err := s.eventRepo.GetByID(ctx, b.EventID)
	if err != nil {
		s.logger.WarnContext(ctx, "booking confirmation skipped", "booking_id", b.ID, "err", err)
		return
	}
	data := &domain.BookingConfirmationEmailData{
		Email:      b.Email,
		BookingID:  b.ID,
		EventTitle: event.Title,
		EventSlug:  event.Slug,
		Date:       event.Date,
		Time:       event.Time,
		Venue:      event.Venue,
		Location:   event.Location,
		Mode:       event.Mode,
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		s.logger.ErrorContext(ctx, "booking confirmation failed", "booking_id", b.ID, "err", err)
	}
}

func (s *bookingService) ListEventBookings(ctx context.Context, eventSlug string) (*domain.EventBookings, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	bookings, err := s.bookingRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return &domain.EventBookings{Event: event, Bookings: bookings, Count: len(bookings)}, nil
}
