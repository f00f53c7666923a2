package sheetsite

import (
	"io/fs"

	"github.com/goliatone/go-sheetsite/pkg/page"
	"github.com/goliatone/go-sheetsite/pkg/renderers/sections"
)

// EmbeddedTemplates exposes the built-in section templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return sections.TemplatesFS()
}

// DefaultPage returns the built-in landing page markup.
func DefaultPage() []byte {
	return page.DefaultTemplate()
}
