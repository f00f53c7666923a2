package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

// Loader implements sheet.Loader by delegating to file, fs.FS, HTTP, or
// workbook strategies.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// Ensure the implementation satisfies the public interface.
var _ sheet.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options sheet.LoaderOptions) *Loader {
	timeout := options.RequestTimeout
	if timeout < 0 {
		timeout = 0
	}

	var httpClient *http.Client
	if options.HTTPClient != nil {
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	} else {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:      options.FileSystem,
		http:    httpClient,
		timeout: timeout,
	}
}

// Load fetches a section export from the provided source and wraps it in a
// Document.
func (l *Loader) Load(ctx context.Context, src sheet.Source) (sheet.Document, error) {
	if src == nil {
		return sheet.Document{}, errors.New("sheet loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case sheet.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case sheet.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case sheet.SourceKindURL:
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	case sheet.SourceKindWorkbook:
		data, err = loadWorkbook(ctx, src.Location())
	default:
		err = errors.New("sheet loader: unsupported source kind")
	}
	if err != nil {
		return sheet.Document{}, err
	}

	return sheet.NewDocument(src, data)
}
