package sheet

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func rowMaps(rows []Row) []map[string]string {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Map())
	}
	return out
}

func TestParse_EmptyInputYieldsNoRows(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n"} {
		rows := Parse(input)
		if rows == nil {
			t.Fatalf("Parse(%q) returned nil, want empty slice", input)
		}
		if len(rows) != 0 {
			t.Fatalf("Parse(%q) returned %d rows, want 0", input, len(rows))
		}
	}
}

func TestParse_HeaderOnlyYieldsNoRows(t *testing.T) {
	if rows := Parse("title\tdescription\n"); len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestParse_EveryRowCarriesHeaderFields(t *testing.T) {
	input := "icon\ttitle\tdescription\n" +
		"🔧\tRepairs\tWe fix things\n" +
		"\tInstalls\tNew kit\n" +
		"💡\tLighting\t\n"

	rows := Parse(input)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	want := []map[string]string{
		{"icon": "🔧", "title": "Repairs", "description": "We fix things"},
		{"icon": "", "title": "Installs", "description": "New kit"},
		{"icon": "💡", "title": "Lighting", "description": ""},
	}
	if diff := cmp.Diff(want, rowMaps(rows)); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}

	for idx, row := range rows {
		if diff := cmp.Diff([]string{"icon", "title", "description"}, row.Fields()); diff != "" {
			t.Fatalf("row %d field order mismatch (-want +got):\n%s", idx, diff)
		}
	}
}

func TestParse_MissingTrailingCellsAreEmpty(t *testing.T) {
	rows := Parse("key\tvalue\nphone")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	want := map[string]string{"key": "phone", "value": ""}
	if diff := cmp.Diff(want, rows[0].Map()); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
	if value, ok := rows[0].Lookup("value"); !ok || value != "" {
		t.Fatalf("expected declared empty value, got %q (declared=%v)", value, ok)
	}
}

func TestParse_TrimsHeadersCellsAndCarriageReturns(t *testing.T) {
	rows := Parse(" key \t value \r\n email \t hello@example.com \r\n")
	want := []map[string]string{{"key": "email", "value": "hello@example.com"}}
	if diff := cmp.Diff(want, rowMaps(rows)); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ExtraCellsAreIgnored(t *testing.T) {
	rows := Parse("name\trole\nAda\tEngineer\tunexpected")
	want := []map[string]string{{"name": "Ada", "role": "Engineer"}}
	if diff := cmp.Diff(want, rowMaps(rows)); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DuplicateHeaderKeepsFirstPositionLastValue(t *testing.T) {
	rows := Parse("name\tnote\tname\nfirst\tmiddle\tlast")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if got := rows[0].Get("name"); got != "last" {
		t.Fatalf("expected last value to win, got %q", got)
	}
	if diff := cmp.Diff([]string{"name", "note"}, rows[0].Fields()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWithSeparator_UsesCustomSeparator(t *testing.T) {
	rows := ParseWithSeparator("area;zone\nNorth;A\nSouth", ';')
	want := []map[string]string{
		{"area": "North", "zone": "A"},
		{"area": "South", "zone": ""},
	}
	if diff := cmp.Diff(want, rowMaps(rows)); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestRow_FirstAndFallbacks(t *testing.T) {
	row := RowOf("area", "Riverside", "postcode", "")
	if got := row.First(); got != "Riverside" {
		t.Fatalf("First() = %q, want Riverside", got)
	}
	if got := row.GetOr("postcode", "n/a"); got != "n/a" {
		t.Fatalf("GetOr on empty field = %q, want n/a", got)
	}
	if got := row.Get("missing"); got != "" {
		t.Fatalf("Get on missing field = %q, want empty", got)
	}
	if got := (Row{}).First(); got != "" {
		t.Fatalf("First on zero row = %q, want empty", got)
	}
}

func TestRow_MapIsACopy(t *testing.T) {
	row := RowOf("title", "Original")
	copied := row.Map()
	copied["title"] = "Changed"
	if got := row.Get("title"); got != "Original" {
		t.Fatalf("row mutated through Map copy: %q", got)
	}
}
