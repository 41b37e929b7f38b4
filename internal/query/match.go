package query

import (
	"sort"
	"strings"

	"eventcatalog/internal/domain"
)

// Matches evaluates f against e in process, with the same semantics the store applies.
func Matches(f domain.EventFilter, e *domain.Event) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		found := false
		for _, field := range []string{e.Title, e.Description, e.Location, e.Organizer} {
			if strings.Contains(strings.ToLower(field), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Mode != "" && e.Mode != f.Mode {
		return false
	}
	if len(f.Tags) > 0 && !Overlaps(e.Tags, f.Tags) {
		return false
	}
	return true
}

// Overlaps reports whether a and b share at least one element.
func Overlaps(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}

// Less reports whether a sorts before b under keys.
func Less(keys []domain.SortKey, a, b *domain.Event) bool {
	for _, k := range keys {
		c := compare(k.Field, a, b)
		if c == 0 {
			continue
		}
		if k.Direction == domain.Descending {
			return c > 0
		}
		return c < 0
	}
	return false
}

func compare(field string, a, b *domain.Event) int {
	switch field {
	case domain.SortFieldDate:
		return strings.Compare(a.Date, b.Date)
	case domain.SortFieldCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
	return 0
}

// Apply runs q over events in process and returns the requested window and the total match count.
// It is the in-memory counterpart of the SQL the postgres repository renders.
func Apply(q domain.EventQuery, events []*domain.Event) ([]*domain.Event, int) {
	var matched []*domain.Event
	for _, e := range events {
		if Matches(q.Filter, e) {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return Less(q.Sort, matched[i], matched[j]) })
	total := len(matched)
	start := q.Skip()
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total
}
