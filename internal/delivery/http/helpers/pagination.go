package helpers

import (
	"net/http"
	"strconv"

	"eventcatalog/internal/query"
)

// ParsePagination reads page and limit from the request query string. Invalid or
// missing values fall back to the query planner defaults.
func ParsePagination(r *http.Request) (page, limit int) {
	return query.ParsePagination(r.URL.Query())
}

// ParseLimit reads a positive "limit" query parameter, returning def when it is missing or invalid.
func ParseLimit(r *http.Request, def int) int {
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			return v
		}
	}
	return def
}
