package sheetsite

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-sheetsite/pkg/orchestrator"
	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

// Request aliases orchestrator.Request for callers of the root package.
type Request = orchestrator.Request

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// SectionError aliases orchestrator.SectionError.
type SectionError = orchestrator.SectionError

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML fetches the sections named in config and returns the rendered
// page. Section failures are isolated; inspect them through GenerateResult.
func GenerateHTML(ctx context.Context, config sheet.Config, options ...orchestrator.Option) ([]byte, error) {
	result, err := GenerateResult(ctx, config, options...)
	if err != nil {
		return nil, err
	}
	return result.HTML, nil
}

// GenerateResult is GenerateHTML returning the full Result.
func GenerateResult(ctx context.Context, config sheet.Config, options ...orchestrator.Option) (*Result, error) {
	opts := append([]orchestrator.Option{orchestrator.WithConfig(config)}, options...)
	return orchestrator.New(opts...).Generate(ctx, Request{})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, name, variant)
}

// WithThemeProvider selects themes from a go-theme registry.
func WithThemeProvider(provider theme.ThemeProvider, name, variant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(provider, name, variant)
}

// WithTheme applies a theme manifest's tokens to the page.
func WithTheme(manifest *theme.Manifest, variant string) orchestrator.Option {
	return orchestrator.WithTheme(manifest, variant)
}
