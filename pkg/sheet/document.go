package sheet

import (
	"bytes"
	"errors"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Document wraps the raw exported text of a section and its origin. Empty
// payloads are valid: a tab without rows renders as an empty section.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper, dropping a leading UTF-8 BOM.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("sheet: source is required")
	}
	clone := append([]byte(nil), bytes.TrimPrefix(raw, utf8BOM)...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Text returns the payload as a string.
func (d Document) Text() string {
	return string(d.raw)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
