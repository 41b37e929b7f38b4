package domain

import (
	"context"
	"time"
)

// EventMode is how attendees take part in an event.
type EventMode string

const (
	ModeOnline  EventMode = "online"
	ModeOffline EventMode = "offline"
	ModeHybrid  EventMode = "hybrid"
)

// EventModes lists every accepted mode.
var EventModes = []EventMode{ModeOnline, ModeOffline, ModeHybrid}

// ParseEventMode returns the mode named by s and whether it is one of EventModes.
func ParseEventMode(s string) (EventMode, bool) {
	for _, m := range EventModes {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// Event is one schedulable happening in the catalog.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        EventMode `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventInput is the raw, unvalidated payload for creating an event.
type EventInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Overview    string   `json:"overview"`
	Image       string   `json:"image"`
	Venue       string   `json:"venue"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Mode        string   `json:"mode"`
	Audience    string   `json:"audience"`
	Agenda      []string `json:"agenda"`
	Organizer   string   `json:"organizer"`
	Tags        []string `json:"tags"`
}

// EventPatch holds the fields of a partial event update. Nil fields are unchanged.
type EventPatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Overview    *string  `json:"overview"`
	Image       *string  `json:"image"`
	Venue       *string  `json:"venue"`
	Location    *string  `json:"location"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Mode        *string  `json:"mode"`
	Audience    *string  `json:"audience"`
	Agenda      []string `json:"agenda"`
	Organizer   *string  `json:"organizer"`
	Tags        []string `json:"tags"`
}

// Input returns the event's current fields as an EventInput.
func (e *Event) Input() EventInput {
	return EventInput{
		Title:       e.Title,
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    e.Location,
		Date:        e.Date,
		Time:        e.Time,
		Mode:        string(e.Mode),
		Audience:    e.Audience,
		Agenda:      append([]string(nil), e.Agenda...),
		Organizer:   e.Organizer,
		Tags:        append([]string(nil), e.Tags...),
	}
}

// Apply overlays the non-nil fields of p onto in.
func (p EventPatch) Apply(in EventInput) EventInput {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&in.Title, p.Title)
	set(&in.Description, p.Description)
	set(&in.Overview, p.Overview)
	set(&in.Image, p.Image)
	set(&in.Venue, p.Venue)
	set(&in.Location, p.Location)
	set(&in.Date, p.Date)
	set(&in.Time, p.Time)
	set(&in.Mode, p.Mode)
	set(&in.Audience, p.Audience)
	set(&in.Organizer, p.Organizer)
	if p.Agenda != nil {
		in.Agenda = p.Agenda
	}
	if p.Tags != nil {
		in.Tags = p.Tags
	}
	return in
}

// EventList is one page of events plus its pagination metadata.
type EventList struct {
	Events     []*Event `json:"events"`
	Pagination PageInfo `json:"pagination"`
}

// EventRepository defines the interface for event storage.
// Create and Update return ErrSlugConflict when the slug is already taken.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context, q EventQuery) ([]*Event, error)
	Count(ctx context.Context, f EventFilter) (int, error)
	// ListSimilar returns up to limit events other than excludeID sharing at least one of tags.
	ListSimilar(ctx context.Context, excludeID string, tags []string, limit int) ([]*Event, error)
}

// EventCache is a best-effort cache of events keyed by slug.
// Get returns ErrNotFound on a miss.
type EventCache interface {
	Get(ctx context.Context, slug string) (*Event, error)
	Set(ctx context.Context, event *Event) error
	Invalidate(ctx context.Context, slugs ...string) error
}

// EventService defines the business logic for the event catalog.
type EventService interface {
	CreateEvent(ctx context.Context, in EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, slug string, patch EventPatch) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context, f EventFilter, page, limit int) (*EventList, error)
	SimilarEvents(ctx context.Context, slug string, limit int) ([]*Event, error)
}
