package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxExportSize caps the bytes read from a published export. Sheet tabs
// backing a landing page are a few kilobytes; anything past this is refused.
const MaxExportSize = 10 << 20

// ErrExportTooLarge is returned when an export exceeds MaxExportSize.
var ErrExportTooLarge = errors.New("sheet loader: export exceeds size limit")

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("sheet loader: http client is not configured")
	}
	if url == "" {
		return nil, errors.New("sheet loader: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/tab-separated-values, text/plain;q=0.9, */*;q=0.1")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sheet loader: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxExportSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxExportSize {
		return nil, fmt.Errorf("%w: more than %d bytes from %s", ErrExportTooLarge, MaxExportSize, url)
	}
	return data, nil
}
