// Package fetcher retrieves the raw exported text of a named section.
package fetcher

import (
	"context"
	"errors"
	"fmt"

	internalLoader "github.com/goliatone/go-sheetsite/internal/sheet/loader"
	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

// Fetcher resolves section identifiers through a sheet.Config and loads them
// with a sheet.Loader. It performs a single attempt per call; there is no
// retry or fallback.
type Fetcher struct {
	config sheet.Config
	loader sheet.Loader
}

// Option customises a Fetcher.
type Option func(*Fetcher)

// WithLoader injects a custom loader.
func WithLoader(loader sheet.Loader) Option {
	return func(f *Fetcher) {
		if loader != nil {
			f.loader = loader
		}
	}
}

// New constructs a Fetcher. Without WithLoader it uses the built-in loader
// configured with loaderOptions.
func New(config sheet.Config, options ...Option) *Fetcher {
	f := &Fetcher{config: config}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.loader == nil {
		f.loader = internalLoader.New(sheet.NewLoaderOptions())
	}
	return f
}

// NewWithLoaderOptions constructs a Fetcher backed by the built-in loader.
func NewWithLoaderOptions(config sheet.Config, options ...sheet.LoaderOption) *Fetcher {
	return New(config, WithLoader(internalLoader.New(sheet.NewLoaderOptions(options...))))
}

// Config returns the section configuration the fetcher resolves against.
func (f *Fetcher) Config() sheet.Config {
	return f.config
}

// Fetch returns the raw text exported for id.
func (f *Fetcher) Fetch(ctx context.Context, id sheet.SectionID) (string, error) {
	if f == nil || f.loader == nil {
		return "", errors.New("fetcher: loader is nil")
	}
	if ctx == nil {
		return "", errors.New("fetcher: context is required")
	}

	src, err := f.config.Source(id)
	if err != nil {
		return "", fmt.Errorf("fetcher: resolve section %q: %w", id, err)
	}

	doc, err := f.loader.Load(ctx, src)
	if err != nil {
		return "", fmt.Errorf("fetcher: load section %q: %w", id, err)
	}
	return doc.Text(), nil
}

// FetchRows fetches id and parses it into rows.
func (f *Fetcher) FetchRows(ctx context.Context, id sheet.SectionID) ([]sheet.Row, error) {
	text, err := f.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return sheet.Parse(text), nil
}

// FetchSettings fetches id and folds its key/value rows.
func (f *Fetcher) FetchSettings(ctx context.Context, id sheet.SectionID) (sheet.Settings, error) {
	rows, err := f.FetchRows(ctx, id)
	if err != nil {
		return nil, err
	}
	return sheet.Reduce(rows), nil
}
