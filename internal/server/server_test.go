package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-sheetsite/pkg/orchestrator"
	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

type stubGenerator struct {
	result   *orchestrator.Result
	err      error
	requests []orchestrator.Request
}

func (s *stubGenerator) Generate(_ context.Context, req orchestrator.Request) (*orchestrator.Result, error) {
	s.requests = append(s.requests, req)
	return s.result, s.err
}

func newTestServer(t *testing.T, gen Generator) *Server {
	t.Helper()
	srv, err := New(gen, WithRuntimeAssets(fstest.MapFS{
		"sheetsite.js": &fstest.MapFile{Data: []byte("// runtime")},
	}))
	require.NoError(t, err)
	return srv
}

func TestServer_Index(t *testing.T) {
	gen := &stubGenerator{result: &orchestrator.Result{HTML: []byte("<html>ok</html>")}}
	srv := newTestServer(t, gen)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?variant=dark", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<html>ok</html>", rec.Body.String())
	assert.Empty(t, rec.Header().Get(FailuresHeader))
	require.Len(t, gen.requests, 1)
	assert.Equal(t, "dark", gen.requests[0].ThemeVariant)
}

func TestServer_IndexReportsFailures(t *testing.T) {
	gen := &stubGenerator{result: &orchestrator.Result{
		HTML: []byte("<html></html>"),
		Failures: []*orchestrator.SectionError{
			{Section: sheet.SectionTeam, Stage: orchestrator.StageFetch, Err: errors.New("boom")},
		},
	}}
	rec := httptest.NewRecorder()
	newTestServer(t, gen).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get(FailuresHeader))
}

func TestServer_IndexError(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t, &stubGenerator{err: errors.New("offline")}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestServer_RuntimeAndHealth(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{result: &orchestrator.Result{}})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runtime/sheetsite.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "// runtime", rec.Body.String())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runtime/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNew_RequiresGenerator(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{result: &orchestrator.Result{}})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
