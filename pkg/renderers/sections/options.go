package sections

import (
	"io/fs"
	"strings"
	"time"

	rendertemplate "github.com/goliatone/go-sheetsite/pkg/render/template"
)

const (
	// DefaultIcon is shown when a services or "why us" row has no icon.
	DefaultIcon = "🛠️"
	// DefaultRevealDelay separates the reveal of consecutive service cards.
	DefaultRevealDelay = 120 * time.Millisecond
	// DefaultMaxRating caps the number of rating glyphs.
	DefaultMaxRating = 5
)

// Option customises the section renderers.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	revealDelay      time.Duration
	maxRating        int
	icon             string
	markdownFields   map[string]struct{}
}

func defaultConfig() config {
	return config{
		templateFS:  TemplatesFS(),
		revealDelay: DefaultRevealDelay,
		maxRating:   DefaultMaxRating,
		icon:        DefaultIcon,
	}
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk. Templates the
// directory does not define fall back to the bundled ones.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithRevealDelay sets the per-card reveal offset. Zero disables the stagger.
func WithRevealDelay(delay time.Duration) Option {
	return func(cfg *config) {
		if delay >= 0 {
			cfg.revealDelay = delay
		}
	}
}

// WithMaxRating caps rating glyphs. Values below one are ignored.
func WithMaxRating(max int) Option {
	return func(cfg *config) {
		if max > 0 {
			cfg.maxRating = max
		}
	}
}

// WithDefaultIcon replaces DefaultIcon.
func WithDefaultIcon(icon string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(icon); trimmed != "" {
			cfg.icon = trimmed
		}
	}
}

// WithMarkdownFields renders the named row fields (for example "answer" or
// "description") as sanitized markdown instead of escaped text.
func WithMarkdownFields(fields ...string) Option {
	return func(cfg *config) {
		for _, field := range fields {
			trimmed := strings.TrimSpace(field)
			if trimmed == "" {
				continue
			}
			if cfg.markdownFields == nil {
				cfg.markdownFields = make(map[string]struct{})
			}
			cfg.markdownFields[trimmed] = struct{}{}
		}
	}
}
