// Package query plans filtered, sorted and paginated event list queries.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"eventcatalog/internal/domain"
)

// Pagination defaults and limits.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// DefaultSort orders soonest events first and, within a date, the newest added first.
var DefaultSort = []domain.SortKey{
	{Field: domain.SortFieldDate, Direction: domain.Ascending},
	{Field: domain.SortFieldCreatedAt, Direction: domain.Descending},
}

// Filters are the caller-supplied list filters before planning.
type Filters struct {
	Search string
	Mode   string
	// Tags is the raw comma-separated tag list.
	Tags string
}

// ParseFilters reads search, mode and tags from query parameters.
func ParseFilters(v url.Values) Filters {
	return Filters{
		Search: v.Get("search"),
		Mode:   v.Get("mode"),
		Tags:   v.Get("tags"),
	}
}

// ParsePagination reads page and limit from query parameters.
// Missing, malformed or non-positive values fall back to the defaults; limit is capped at MaxLimit.
func ParsePagination(v url.Values) (page, limit int) {
	return parsePositive(v.Get("page"), DefaultPage), parsePositive(v.Get("limit"), DefaultLimit)
}

func parsePositive(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Filter turns raw filters into a domain.EventFilter. An unrecognized mode is
// dropped rather than rejected, and blank tags are ignored.
func (f Filters) Filter() domain.EventFilter {
	var out domain.EventFilter
	out.Search = strings.TrimSpace(f.Search)
	if m, ok := domain.ParseEventMode(strings.TrimSpace(f.Mode)); ok {
		out.Mode = m
	}
	out.Tags = SplitTags(f.Tags)
	return out
}

// SplitTags splits a comma-separated tag list, trimming and dropping blanks.
func SplitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Build plans the list query for filter and the requested page window.
func Build(filter domain.EventFilter, page, limit int) domain.EventQuery {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// (page-1)*limit must stay representable.
	if page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}
	return domain.EventQuery{
		Filter:           filter,
		Sort:             DefaultSort,
		PaginationParams: domain.PaginationParams{Page: page, Limit: limit},
	}
}
