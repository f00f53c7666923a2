package render

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

// Registry stores section renderers keyed by section, remembering registration
// order so callers can mount sections deterministically.
type Registry struct {
	mu        sync.RWMutex
	renderers map[sheet.SectionID]SectionRenderer
	order     []sheet.SectionID
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[sheet.SectionID]SectionRenderer),
	}
}

// Register adds a renderer by its Section(). Duplicate sections return an
// error.
func (r *Registry) Register(renderer SectionRenderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	section := renderer.Section()
	if section == "" {
		return fmt.Errorf("render: renderer section is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[section]; exists {
		return fmt.Errorf("render: renderer for section %q already registered", section)
	}

	r.renderers[section] = renderer
	r.order = append(r.order, section)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderers ...SectionRenderer) {
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			panic(err)
		}
	}
}

// Get retrieves the renderer for section.
func (r *Registry) Get(section sheet.SectionID) (SectionRenderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[section]
	if !ok {
		return nil, fmt.Errorf("render: no renderer for section %q", section)
	}
	return renderer, nil
}

// Has reports whether a renderer is registered for section.
func (r *Registry) Has(section sheet.SectionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[section]
	return ok
}

// List returns the registered sections in registration order.
func (r *Registry) List() []sheet.SectionID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]sheet.SectionID(nil), r.order...)
}
