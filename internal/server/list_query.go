package server

import (
	"net/http"
	"strings"

	"docvault/internal/listing"
)

// parseListQuery builds a listing query from request parameters. Absent
// parameters fall back to the default view (newest first, no filter).
func parseListQuery(r *http.Request) (listing.Query, error) {
	q := listing.Default()
	params := r.URL.Query()

	q.Search = strings.TrimSpace(params.Get("search"))
	q.TypeFilter = strings.TrimSpace(params.Get("type"))

	if raw := params.Get("sort"); strings.TrimSpace(raw) != "" {
		field, err := listing.ParseSortField(raw)
		if err != nil {
			return q, badRequestCode(err, ErrCodeInvalidQuery)
		}
		q.SortField = field
		// An explicit sort field without a direction starts ascending,
		// matching how column-header toggling begins.
		q.SortDir = listing.Asc
	}
	if raw := params.Get("dir"); strings.TrimSpace(raw) != "" {
		dir, err := listing.ParseDirection(raw)
		if err != nil {
			return q, badRequestCode(err, ErrCodeInvalidQuery)
		}
		q.SortDir = dir
	}

	return q, nil
}
