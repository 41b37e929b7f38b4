package domain

// EventFilter is the predicate of an event list query. Zero-valued fields do not filter.
type EventFilter struct {
	// Search is matched case-insensitively as a substring of title, description, location or organizer.
	Search string
	Mode   EventMode
	// Tags matches events carrying any of the listed tags.
	Tags []string
}

// SortDirection orders a sort key.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// SortKey is one column of a sort order.
type SortKey struct {
	Field     string
	Direction SortDirection
}

// Sortable event fields.
const (
	SortFieldDate      = "date"
	SortFieldCreatedAt = "created_at"
)

// EventQuery is a fully planned list query: predicate, sort order and window.
type EventQuery struct {
	Filter EventFilter
	Sort   []SortKey
	PaginationParams
}

// Skip is the number of matching events before the window.
func (q EventQuery) Skip() int {
	return q.Offset()
}
