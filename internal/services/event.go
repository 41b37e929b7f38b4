package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventcatalog/internal/domain"
	"eventcatalog/internal/query"
	"eventcatalog/internal/slug"
	"eventcatalog/internal/validation"

	"github.com/google/uuid"
)

// DefaultSimilarLimit is the number of similar events returned when the caller asks for none.
const DefaultSimilarLimit = 6

type eventService struct {
	eventRepo      domain.EventRepository
	cache          domain.EventCache
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventService returns an EventService backed by repo. cache may be nil.
func NewEventService(repo domain.EventRepository, cache domain.EventCache, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      repo,
		cache:          cache,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := validation.ValidateEvent(in)
	if err != nil {
		return nil, err
	}
	event.Slug = slug.Derive(event.Title)
	if err := s.checkSlugFree(ctx, event.Slug, ""); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	event.ID = uuid.NewString()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventSlug string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	updated, err := validation.ValidateEvent(patch.Apply(current.Input()))
	if err != nil {
		return nil, err
	}
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = s.now().UTC()
	updated.Slug = current.Slug
	if updated.Title != current.Title {
		updated.Slug = slug.Derive(updated.Title)
		if updated.Slug != current.Slug {
			if err := s.checkSlugFree(ctx, updated.Slug, current.ID); err != nil {
				return nil, err
			}
		}
	}

	if err := s.eventRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	s.invalidate(ctx, current.Slug, updated.Slug)
	return updated, nil
}

// checkSlugFree reports ErrSlugConflict when s belongs to an event other than ownerID.
func (s *eventService) checkSlugFree(ctx context.Context, eventSlug, ownerID string) error {
	existing, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check slug: %w", err)
	case existing.ID == ownerID:
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrSlugConflict, eventSlug)
}

func (s *eventService) GetEventBySlug(ctx context.Context, eventSlug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, eventSlug)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.WarnContext(ctx, "event cache read failed", "slug", eventSlug, "err", err)
		}
	}

	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "event cache write failed", "slug", eventSlug, "err", err)
		}
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, f domain.EventFilter, page, limit int) (*domain.EventList, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	q := query.Build(f, page, limit)
	events, err := s.eventRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	total, err := s.eventRepo.Count(ctx, q.Filter)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	return &domain.EventList{
		Events:     events,
		Pagination: domain.NewPageInfo(q.PaginationParams, total),
	}, nil
}

func (s *eventService) SimilarEvents(ctx context.Context, eventSlug string, limit int) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if limit < 1 {
		limit = DefaultSimilarLimit
	}
	source, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if errors.Is(err, domain.ErrNotFound) {
		return []*domain.Event{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if len(source.Tags) == 0 {
		return []*domain.Event{}, nil
	}
	similar, err := s.eventRepo.ListSimilar(ctx, source.ID, source.Tags, limit)
	if err != nil {
		return nil, fmt.Errorf("list similar events: %w", err)
	}
	if len(similar) > limit {
		similar = similar[:limit]
	}
	return similar, nil
}

func (s *eventService) invalidate(ctx context.Context, slugs ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, slugs...); err != nil {
		s.logger.WarnContext(ctx, "event cache invalidation failed", "slugs", slugs, "err", err)
	}
}
