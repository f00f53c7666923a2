package page

import (
	_ "embed"
	"fmt"
)

//go:embed templates/index.html
var defaultTemplate []byte

// DefaultTemplate returns a copy of the built-in landing page.
func DefaultTemplate() []byte {
	out := make([]byte, len(defaultTemplate))
	copy(out, defaultTemplate)
	return out
}

// New parses template, falling back to the built-in page when it is empty.
func New(template []byte) (*Document, error) {
	if len(template) == 0 {
		template = defaultTemplate
	}
	doc, err := ParseBytes(template)
	if err != nil {
		return nil, fmt.Errorf("page: load template: %w", err)
	}
	return doc, nil
}
