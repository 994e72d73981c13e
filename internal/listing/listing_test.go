package listing

import (
	"testing"
	"time"

	"docvault/internal/models"
)

func rec(name, category, createdAt string) models.DocumentRecord {
	var ts time.Time
	if createdAt != "" {
		ts, _ = time.Parse(time.RFC3339, createdAt)
	}
	return models.DocumentRecord{DisplayName: name, Category: category, CreatedAt: ts}
}

func names(records []models.DocumentRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.DisplayName)
	}
	return out
}

func assertOrder(t *testing.T, got []models.DocumentRecord, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %v", len(want), names(got))
	}
	for i := range want {
		if got[i].DisplayName != want[i] {
			t.Fatalf("position %d: expected %q, got %v", i, want[i], names(got))
		}
	}
}

func TestApply_FilterAndSortExamples(t *testing.T) {
	records := []models.DocumentRecord{
		rec("B", "pdf", "2024-01-02T00:00:00Z"),
		rec("A", "image", "2024-01-01T00:00:00Z"),
	}

	got := Apply(records, Query{SortField: SortName, SortDir: Asc})
	assertOrder(t, got, []string{"A", "B"})

	got = Apply(records, Query{SortField: SortCreatedAt, SortDir: Desc})
	assertOrder(t, got, []string{"B", "A"})

	got = Apply(records, Query{TypeFilter: "image", SortField: SortName, SortDir: Asc})
	assertOrder(t, got, []string{"A"})
}

func TestApply_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	records := []models.DocumentRecord{
		rec("Tax Return 2024", "pdf", ""),
		rec("Receipt", "image", ""),
		rec("tax notes", "image", ""),
	}
	got := Apply(records, Query{Search: "TAX", SortField: SortName, SortDir: Asc})
	assertOrder(t, got, []string{"tax notes", "Tax Return 2024"})
}

func TestApply_EmptyQueryReturnsAllSorted(t *testing.T) {
	records := []models.DocumentRecord{
		rec("c", "image", "2024-01-03T00:00:00Z"),
		rec("a", "image", "2024-01-01T00:00:00Z"),
		rec("b", "image", "2024-01-02T00:00:00Z"),
	}
	got := Apply(records, Query{SortField: SortCreatedAt, SortDir: Asc})
	assertOrder(t, got, []string{"a", "b", "c"})
	got = Apply(records, Default())
	assertOrder(t, got, []string{"c", "b", "a"})
}

func TestApply_LocaleAwareNameSort(t *testing.T) {
	records := []models.DocumentRecord{
		rec("Budget", "image", ""),
		rec("agenda", "image", ""),
	}
	// Case-insensitive collation orders "agenda" before "Budget".
	got := Apply(records, Query{SortField: SortName, SortDir: Asc})
	assertOrder(t, got, []string{"agenda", "Budget"})
}

func TestApply_MissingTimestampsSortAsZero(t *testing.T) {
	records := []models.DocumentRecord{
		rec("dated", "image", "2024-01-01T00:00:00Z"),
		rec("undated", "image", ""),
	}
	got := Apply(records, Query{SortField: SortCreatedAt, SortDir: Asc})
	assertOrder(t, got, []string{"undated", "dated"})
}

func TestApply_StableForEqualKeys(t *testing.T) {
	records := []models.DocumentRecord{
		rec("first", "pdf", ""),
		rec("second", "pdf", ""),
		rec("third", "pdf", ""),
	}
	got := Apply(records, Query{SortField: SortType, SortDir: Asc})
	assertOrder(t, got, []string{"first", "second", "third"})

	got = Apply(records, Query{SortField: SortType, SortDir: Desc})
	assertOrder(t, got, []string{"first", "second", "third"})
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	records := []models.DocumentRecord{
		rec("b", "image", ""),
		rec("a", "image", ""),
	}
	Apply(records, Query{SortField: SortName, SortDir: Asc})
	if records[0].DisplayName != "b" {
		t.Fatal("input slice was reordered")
	}
}

func TestToggle(t *testing.T) {
	q := Default() // createdAt desc

	q = Toggle(q, SortCreatedAt)
	if q.SortField != SortCreatedAt || q.SortDir != Asc {
		t.Fatalf("expected createdAt asc after toggle, got %+v", q)
	}

	q = Toggle(q, SortName)
	if q.SortField != SortName || q.SortDir != Asc {
		t.Fatalf("expected name asc after selecting new field, got %+v", q)
	}

	q = Toggle(q, SortName)
	if q.SortDir != Desc {
		t.Fatalf("expected direction flip to desc, got %+v", q)
	}
}

func TestParseSortField(t *testing.T) {
	for raw, want := range map[string]SortField{
		"":           SortCreatedAt,
		"name":       SortName,
		"type":       SortType,
		"createdAt":  SortCreatedAt,
		"created_at": SortCreatedAt,
	} {
		got, err := ParseSortField(raw)
		if err != nil || got != want {
			t.Fatalf("ParseSortField(%q) = (%q, %v), expected %q", raw, got, err, want)
		}
	}
	if _, err := ParseSortField("size"); err == nil {
		t.Fatal("expected error for unknown sort field")
	}
}

func TestParseDirection(t *testing.T) {
	for raw, want := range map[string]Direction{"": Desc, "asc": Asc, "desc": Desc, "ASC": Asc} {
		got, err := ParseDirection(raw)
		if err != nil || got != want {
			t.Fatalf("ParseDirection(%q) = (%q, %v), expected %q", raw, got, err, want)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Fatal("expected error for unknown direction")
	}
}
