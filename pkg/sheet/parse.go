package sheet

import "strings"

// DefaultSeparator is the field separator of published TSV exports.
const DefaultSeparator = '\t'

// Parse converts tab separated text into rows. The first line is the header.
// Empty or whitespace-only input yields an empty slice.
//
// Quoted cells are not supported: a separator or line break inside a cell
// always splits it.
func Parse(text string) []Row {
	return ParseWithSeparator(text, DefaultSeparator)
}

// ParseWithSeparator is Parse with a caller-chosen single-character separator.
func ParseWithSeparator(text string, sep rune) []Row {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []Row{}
	}

	separator := string(sep)
	lines := strings.Split(trimmed, "\n")
	header := strings.Split(lines[0], separator)

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, NewRow(header, strings.Split(line, separator)))
	}
	return rows
}
