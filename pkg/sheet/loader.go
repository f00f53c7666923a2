package sheet

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches section exports from different sources (published URL, local
// file, fs.FS, workbook). Implementations live under internal/sheet but satisfy
// this contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// DefaultRequestTimeout bounds a single remote fetch when no timeout is set.
const DefaultRequestTimeout = 10 * time.Second

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS lookups.
	FileSystem fs.FS

	// HTTPClient allows callers to inject custom HTTP behaviour (proxies,
	// transports). Nil means a client with RequestTimeout is created.
	HTTPClient *http.Client

	// RequestTimeout caps each remote fetch. Zero falls back to
	// DefaultRequestTimeout; a negative value disables the cap.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for SourceKindFS.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for published exports.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithRequestTimeout bounds each remote fetch.
func WithRequestTimeout(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{RequestTimeout: DefaultRequestTimeout}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
