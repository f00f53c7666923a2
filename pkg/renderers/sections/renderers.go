package sections

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-sheetsite/pkg/render"
	rendertemplate "github.com/goliatone/go-sheetsite/pkg/render/template"
	gotemplate "github.com/goliatone/go-sheetsite/pkg/render/template/gotemplate"
	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

// Container selectors the renderers target.
const (
	SelectorServices = ".services-grid"
	SelectorTeam     = ".team-grid"
	SelectorAreas    = ".areas-list"
	SelectorFAQ      = ".faq-list"
	SelectorReviews  = ".reviews-grid"
	SelectorWhyUs    = "#why-us .why-grid"
)

// core holds what every section renderer shares.
type core struct {
	cfg       config
	templates rendertemplate.TemplateRenderer
}

func (c *core) execute(ctx context.Context, name string, data map[string]any) (render.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.templates == nil {
		return "", errors.New("sections: template renderer is nil")
	}
	out, err := c.templates.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("sections: render %s: %w", name, err)
	}
	return render.Fragment(strings.TrimSpace(out)), nil
}

// text returns the escaped-by-template value of field, and, when field is
// configured as markdown, its sanitized HTML rendering.
func (c *core) text(row sheet.Row, field, fallback string) (string, string) {
	value := row.GetOr(field, fallback)
	if _, ok := c.cfg.markdownFields[field]; ok && row.Get(field) != "" {
		return value, renderMarkdown(value)
	}
	return value, ""
}

func (c *core) icon(row sheet.Row) string {
	if icon := sanitizeIconMarkup(row.Get("icon")); icon != "" {
		return icon
	}
	return sanitizeIconMarkup(c.cfg.icon)
}

// Renderers bundles one renderer per card section, sharing a template engine.
type Renderers struct {
	whyUs    *WhyUsRenderer
	services *ServicesRenderer
	team     *TeamRenderer
	areas    *AreasRenderer
	faq      *FAQRenderer
	reviews  *ReviewsRenderer
}

// New constructs the section renderers applying any provided options.
func New(options ...Option) (*Renderers, error) {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templatesDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("sections: configure template renderer: %w", err)
		}
		templates = engine
	}

	shared := &core{cfg: cfg, templates: templates}
	return &Renderers{
		whyUs:    &WhyUsRenderer{core: shared},
		services: &ServicesRenderer{core: shared},
		team:     &TeamRenderer{core: shared},
		areas:    &AreasRenderer{core: shared},
		faq:      &FAQRenderer{core: shared},
		reviews:  &ReviewsRenderer{core: shared},
	}, nil
}

// All returns the renderers in the order their sections are mounted.
func (r *Renderers) All() []render.SectionRenderer {
	return []render.SectionRenderer{
		r.whyUs,
		r.services,
		r.team,
		r.areas,
		r.faq,
		r.reviews,
	}
}

// Register adds every renderer to registry.
func (r *Renderers) Register(registry *render.Registry) error {
	if registry == nil {
		return errors.New("sections: registry is nil")
	}
	for _, renderer := range r.All() {
		if err := registry.Register(renderer); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding the default section renderers.
func NewRegistry(options ...Option) (*render.Registry, error) {
	renderers, err := New(options...)
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	if err := renderers.Register(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

func (r *Renderers) Services() *ServicesRenderer { return r.services }
func (r *Renderers) Team() *TeamRenderer         { return r.team }
func (r *Renderers) Areas() *AreasRenderer       { return r.areas }
func (r *Renderers) FAQ() *FAQRenderer           { return r.faq }
func (r *Renderers) Reviews() *ReviewsRenderer   { return r.reviews }
func (r *Renderers) WhyUs() *WhyUsRenderer       { return r.whyUs }
