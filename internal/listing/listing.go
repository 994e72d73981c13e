// Package listing filters and orders canonical document records for
// display. The engine is deterministic: equal sort keys preserve the input
// order.
package listing

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"docvault/internal/models"
)

// SortField selects the sort key.
type SortField string

const (
	SortName      SortField = "name"
	SortType      SortField = "type"
	SortCreatedAt SortField = "createdAt"
)

// Direction selects the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Query describes one listing request.
type Query struct {
	Search     string
	TypeFilter string
	SortField  SortField
	SortDir    Direction
}

// Default is the dashboard's initial view: newest documents first.
func Default() Query {
	return Query{SortField: SortCreatedAt, SortDir: Desc}
}

// ParseSortField validates a raw sort field value. Empty input selects the
// default field.
func ParseSortField(raw string) (SortField, error) {
	switch strings.TrimSpace(raw) {
	case "":
		return SortCreatedAt, nil
	case string(SortName):
		return SortName, nil
	case string(SortType):
		return SortType, nil
	case string(SortCreatedAt), "created_at":
		return SortCreatedAt, nil
	}
	return "", fmt.Errorf("invalid sort field %q", raw)
}

// ParseDirection validates a raw direction value. Empty input selects
// descending, the default listing direction.
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return Desc, nil
	case string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	}
	return "", fmt.Errorf("invalid sort direction %q", raw)
}

// Apply returns the filtered, ordered records for a query. The input slice
// is not modified.
func Apply(records []models.DocumentRecord, q Query) []models.DocumentRecord {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	typeFilter := strings.TrimSpace(q.TypeFilter)

	out := make([]models.DocumentRecord, 0, len(records))
	for _, rec := range records {
		if search != "" && !strings.Contains(strings.ToLower(rec.DisplayName), search) {
			continue
		}
		if typeFilter != "" && !strings.EqualFold(rec.Category, typeFilter) {
			continue
		}
		out = append(out, rec)
	}

	cmp := comparator(q.SortField)
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if q.SortDir == Desc {
			c = -c
		}
		return c < 0
	})
	return out
}

// Toggle applies the sort-selection rule: clicking the active field flips
// the direction, selecting a new field resets to ascending.
func Toggle(q Query, field SortField) Query {
	if q.SortField == field {
		if q.SortDir == Asc {
			q.SortDir = Desc
		} else {
			q.SortDir = Asc
		}
		return q
	}
	q.SortField = field
	q.SortDir = Asc
	return q
}

func comparator(field SortField) func(a, b models.DocumentRecord) int {
	switch field {
	case SortName:
		coll := newCollator()
		return func(a, b models.DocumentRecord) int {
			return coll.CompareString(a.DisplayName, b.DisplayName)
		}
	case SortType:
		coll := newCollator()
		return func(a, b models.DocumentRecord) int {
			return coll.CompareString(a.Category, b.Category)
		}
	default:
		return func(a, b models.DocumentRecord) int {
			at, bt := sortableTime(a), sortableTime(b)
			switch {
			case at < bt:
				return -1
			case at > bt:
				return 1
			}
			return 0
		}
	}
}

func newCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

// sortableTime collates missing timestamps as zero.
func sortableTime(rec models.DocumentRecord) int64 {
	if rec.CreatedAt.IsZero() {
		return 0
	}
	return rec.CreatedAt.UnixMilli()
}
