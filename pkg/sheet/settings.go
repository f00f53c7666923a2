package sheet

import "strings"

const (
	// KeyField and ValueField name the two columns of settings-style tabs.
	KeyField   = "key"
	ValueField = "value"
)

// Settings is the flat key/value map folded from a two-column tab.
type Settings map[string]string

// Reduce folds rows carrying both a non-empty key and value into Settings.
// Later rows overwrite earlier ones; incomplete rows are dropped.
func Reduce(rows []Row) Settings {
	out := make(Settings, len(rows))
	for _, row := range rows {
		key := strings.TrimSpace(row.Get(KeyField))
		value := strings.TrimSpace(row.Get(ValueField))
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// Get returns the value for key or "".
func (s Settings) Get(key string) string {
	return s[key]
}

// Merge returns a new map holding s overlaid by each of others in turn.
func (s Settings) Merge(others ...Settings) Settings {
	size := len(s)
	for _, other := range others {
		size += len(other)
	}
	out := make(Settings, size)
	for key, value := range s {
		out[key] = value
	}
	for _, other := range others {
		for key, value := range other {
			out[key] = value
		}
	}
	return out
}
