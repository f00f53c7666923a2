package template

import (
	"io"
)

// TemplateRenderer executes named templates. Section renderers depend on
// this seam only, so tests can swap in a stub.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
