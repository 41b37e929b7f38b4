package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"eventcatalog/internal/domain"

	"github.com/lib/pq"
)

const eventColumns = `id, title, slug, description, overview, image, venue, location, date, time, mode, audience, agenda, organizer, tags, created_at, updated_at`

// sortColumns whitelists the columns a list query may order by.
var sortColumns = map[string]string{
	domain.SortFieldDate:      "date",
	domain.SortFieldCreatedAt: "created_at",
}

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var mode string
	err := row.Scan(
		&e.ID, &e.Title, &e.Slug, &e.Description, &e.Overview, &e.Image, &e.Venue, &e.Location,
		&e.Date, &e.Time, &mode, &e.Audience, pq.Array(&e.Agenda), &e.Organizer, pq.Array(&e.Tags),
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Mode = domain.EventMode(mode)
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location,
		e.Date, e.Time, string(e.Mode), e.Audience, pq.Array(e.Agenda), e.Organizer, pq.Array(e.Tags),
		e.CreatedAt, e.UpdatedAt,
	)
	return translateError(err)
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events SET
			title = $2, slug = $3, description = $4, overview = $5, image = $6, venue = $7, location = $8,
			date = $9, time = $10, mode = $11, audience = $12, agenda = $13, organizer = $14, tags = $15,
			updated_at = $16
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location,
		e.Date, e.Time, string(e.Mode), e.Audience, pq.Array(e.Agenda), e.Organizer, pq.Array(e.Tags),
		e.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if isInvalidText(err) {
			return nil, domain.ErrNotFound
		}
		return nil, translateError(err)
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		return nil, translateError(err)
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, q domain.EventQuery) ([]*domain.Event, error) {
	where, args := buildWhere(q.Filter)
	args = append(args, q.Limit, q.Skip())
	query := fmt.Sprintf(`SELECT %s FROM events%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		eventColumns, where, buildOrderBy(q.Sort), len(args)-1, len(args))
	return r.queryEvents(ctx, query, args...)
}

func (r *eventRepository) Count(ctx context.Context, f domain.EventFilter) (int, error) {
	where, args := buildWhere(f)
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`+where, args...).Scan(&n); err != nil {
		return 0, translateError(err)
	}
	return n, nil
}

func (r *eventRepository) ListSimilar(ctx context.Context, excludeID string, tags []string, limit int) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id <> $1 AND tags && $2 LIMIT $3`
	return r.queryEvents(ctx, query, excludeID, pq.Array(tags), limit)
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, translateError(rows.Err())
}

// buildWhere renders f as a WHERE clause with positional arguments starting at $1.
func buildWhere(f domain.EventFilter) (string, []any) {
	var clauses []string
	var args []any
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		clauses = append(clauses, fmt.Sprintf(
			"(title ILIKE $%[1]d OR description ILIKE $%[1]d OR location ILIKE $%[1]d OR organizer ILIKE $%[1]d)", len(args)))
	}
	if f.Mode != "" {
		args = append(args, string(f.Mode))
		clauses = append(clauses, fmt.Sprintf("mode = $%d", len(args)))
	}
	if len(f.Tags) > 0 {
		args = append(args, pq.Array(f.Tags))
		clauses = append(clauses, fmt.Sprintf("tags && $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func buildOrderBy(keys []domain.SortKey) string {
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		col, ok := sortColumns[k.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if k.Direction == domain.Descending {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	// id keeps page boundaries stable between equal keys
	parts = append(parts, "id ASC")
	return strings.Join(parts, ", ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
