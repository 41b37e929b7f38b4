package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"eventcatalog/internal/domain"
	"eventcatalog/internal/query"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventRepo is an in-memory EventRepository that enforces slug uniqueness like the store does.
type fakeEventRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.Event
	order   []string
	err     error // returned by every call when set
	similar []*domain.Event
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[string]*domain.Event)}
	for _, e := range events {
		f.byID[e.ID] = e
		f.order = append(f.order, e.ID)
	}
	return f
}

func (f *fakeEventRepo) all() []*domain.Event {
	out := make([]*domain.Event, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out
}

func (f *fakeEventRepo) slugTaken(slug, exceptID string) bool {
	for _, e := range f.byID {
		if e.Slug == slug && e.ID != exceptID {
			return true
		}
	}
	return false
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.slugTaken(e.Slug, "") {
		return domain.ErrSlugConflict
	}
	cp := *e
	f.byID[e.ID] = &cp
	f.order = append(f.order, e.ID)
	return nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	if f.slugTaken(e.Slug, e.ID) {
		return domain.ErrSlugConflict
	}
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.byID {
		if e.Slug == slug {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, q domain.EventQuery) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	page, _ := query.Apply(q, f.all())
	return page, nil
}

func (f *fakeEventRepo) Count(ctx context.Context, filter domain.EventFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	n := 0
	for _, e := range f.all() {
		if query.Matches(filter, e) {
			n++
		}
	}
	return n, nil
}

func (f *fakeEventRepo) ListSimilar(ctx context.Context, excludeID string, tags []string, limit int) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.similar != nil {
		return f.similar, nil
	}
	out := []*domain.Event{}
	for _, e := range f.all() {
		if e.ID != excludeID && query.Overlaps(e.Tags, tags) && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeBookingRepo is an in-memory BookingRepository keyed by (event, email).
type fakeBookingRepo struct {
	mu        sync.Mutex
	bookings  []*domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, x := range f.bookings {
		if x.EventID == b.EventID && x.Email == b.Email {
			return domain.ErrDuplicateBooking
		}
	}
	cp := *b
	f.bookings = append(f.bookings, &cp)
	return nil
}

func (f *fakeBookingRepo) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.bookings {
		if x.EventID == eventID && x.Email == email {
			cp := *x
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBookingRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Booking{}
	for _, x := range f.bookings {
		if x.EventID == eventID {
			out = append(out, x)
		}
	}
	return out, nil
}

// fakeCache records cache traffic.
type fakeCache struct {
	entries     map[string]*domain.Event
	getErr      error
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*domain.Event)}
}

func (c *fakeCache) Get(ctx context.Context, slug string) (*domain.Event, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if e, ok := c.entries[slug]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (c *fakeCache) Set(ctx context.Context, e *domain.Event) error {
	c.entries[e.Slug] = e
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, slugs ...string) error {
	for _, s := range slugs {
		delete(c.entries, s)
	}
	c.invalidated = append(c.invalidated, slugs...)
	return nil
}

// fakeEmailService records confirmations.
type fakeEmailService struct {
	sent []*domain.BookingConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
