// Package template defines the template engine seam section renderers depend
// on, with a go-template (pongo2) implementation under gotemplate.
package template
