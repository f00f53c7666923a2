package sheet

import "strings"

// Row is one parsed data line keyed by header-derived field names. Fields keep
// header order and missing cells resolve to the empty string. A Row has no
// mutators; Map returns a copy.
type Row struct {
	fields []string
	values map[string]string
}

// NewRow pairs header names with cell values using the parser rules: names
// and cells are trimmed, absent cells become "", cells past the header width
// are ignored, and a repeated name keeps its first position with the last
// value.
func NewRow(header, cells []string) Row {
	row := Row{
		fields: make([]string, 0, len(header)),
		values: make(map[string]string, len(header)),
	}
	for idx, name := range header {
		key := strings.TrimSpace(name)
		value := ""
		if idx < len(cells) {
			value = strings.TrimSpace(cells[idx])
		}
		if _, seen := row.values[key]; !seen {
			row.fields = append(row.fields, key)
		}
		row.values[key] = value
	}
	return row
}

// RowOf builds a row from alternating field/value pairs. Handy in tests.
func RowOf(pairs ...string) Row {
	header := make([]string, 0, len(pairs)/2)
	cells := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		header = append(header, pairs[i])
		cells = append(cells, pairs[i+1])
	}
	return NewRow(header, cells)
}

// Get returns the value stored under field, or "" when absent.
func (r Row) Get(field string) string {
	return r.values[field]
}

// Lookup returns the value and whether the header declared field.
func (r Row) Lookup(field string) (string, bool) {
	value, ok := r.values[field]
	return value, ok
}

// GetOr returns the value of field, or fallback when it is absent or empty.
func (r Row) GetOr(field, fallback string) string {
	if value := r.values[field]; value != "" {
		return value
	}
	return fallback
}

// Fields returns the field names in header order.
func (r Row) Fields() []string {
	return append([]string(nil), r.fields...)
}

// First returns the value of the first column.
func (r Row) First() string {
	if len(r.fields) == 0 {
		return ""
	}
	return r.values[r.fields[0]]
}

// Len reports the number of fields.
func (r Row) Len() int {
	return len(r.fields)
}

// Map returns a copy of the field/value pairs.
func (r Row) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for key, value := range r.values {
		out[key] = value
	}
	return out
}
