package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

func TestLoader_LoadHTTP(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
		_, _ = w.Write([]byte("\xef\xbb\xbfkey\tvalue\nemail\thi@example.com\n"))
	}))
	defer srv.Close()

	cfg := sheet.MustNewConfig("pub-id", map[sheet.SectionID]string{sheet.SectionSettings: "0"}, sheet.WithBaseURL(srv.URL))
	src, err := cfg.Source(sheet.SectionSettings)
	if err != nil {
		t.Fatalf("source: %v", err)
	}

	l := New(sheet.NewLoaderOptions())
	doc, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if gotQuery != "gid=0&output=tsv&single=true" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if doc.Text() != "key\tvalue\nemail\thi@example.com\n" {
		t.Fatalf("unexpected body %q", doc.Text())
	}
}

func TestLoader_LoadHTTPRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	l := New(sheet.NewLoaderOptions())
	_, err := l.Load(context.Background(), sheet.SourceFromURL(srv.URL+"/pub?gid=1"))
	if err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoader_LoadHTTPExportSizeLimit(t *testing.T) {
	bodies := map[string]string{
		"1": strings.Repeat("a", MaxExportSize),
		"2": strings.Repeat("a", MaxExportSize+1),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bodies[r.URL.Query().Get("gid")]))
	}))
	defer srv.Close()

	l := New(sheet.NewLoaderOptions())
	doc, err := l.Load(context.Background(), sheet.SourceFromURL(srv.URL+"/pub?gid=1"))
	if err != nil {
		t.Fatalf("load at limit: %v", err)
	}
	if len(doc.Text()) != MaxExportSize {
		t.Fatalf("expected %d bytes, got %d", MaxExportSize, len(doc.Text()))
	}

	_, err = l.Load(context.Background(), sheet.SourceFromURL(srv.URL+"/pub?gid=2"))
	if !errors.Is(err, ErrExportTooLarge) {
		t.Fatalf("expected ErrExportTooLarge, got %v", err)
	}
}

func TestLoader_LoadHTTPHonoursTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	l := New(sheet.NewLoaderOptions(sheet.WithRequestTimeout(50 * time.Millisecond)))
	_, err := l.Load(context.Background(), sheet.SourceFromURL(srv.URL))
	if err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestLoader_LoadFromFS(t *testing.T) {
	files := fstest.MapFS{
		"faq.tsv": &fstest.MapFile{Data: []byte("question\tanswer\nWhy?\tBecause.\n")},
	}
	l := New(sheet.NewLoaderOptions(sheet.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), sheet.SourceFromFS("faq.tsv"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rows := sheet.Parse(doc.Text()); len(rows) != 1 || rows[0].Get("answer") != "Because." {
		t.Fatalf("unexpected rows from fs document: %q", doc.Text())
	}

	if _, err := l.Load(context.Background(), sheet.SourceFromFS("missing.tsv")); err == nil {
		t.Fatalf("expected error for missing fs entry")
	}
}

func TestLoader_LoadFileAllowsEmptyExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.tsv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := New(sheet.NewLoaderOptions())
	doc, err := l.Load(context.Background(), sheet.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(sheet.Parse(doc.Text())) != 0 {
		t.Fatalf("expected empty export to parse to zero rows")
	}
}

func TestLoader_LoadRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(sheet.NewLoaderOptions(sheet.WithFileSystem(fstest.MapFS{})))
	_, err := l.Load(ctx, sheet.SourceFromFS("any.tsv"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoader_LoadWorkbookTab(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.xlsx")

	book := excelize.NewFile()
	if _, err := book.NewSheet("team"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	rows := [][]any{
		{"name", "role", "bio"},
		{"Ada", "Lead", "Line one\nline two"},
		{"Grace", "Apprentice"},
	}
	for idx, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := book.SetSheetRow("team", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := book.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = book.Close()

	l := New(sheet.NewLoaderOptions())
	doc, err := l.Load(context.Background(), sheet.SourceFromWorkbook(path, "team"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	got := make([]map[string]string, 0)
	for _, row := range sheet.Parse(doc.Text()) {
		got = append(got, row.Map())
	}
	want := []map[string]string{
		{"name": "Ada", "role": "Lead", "bio": "Line one line two"},
		{"name": "Grace", "role": "Apprentice", "bio": ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("workbook rows mismatch (-want +got):\n%s", diff)
	}

	if _, err := l.Load(context.Background(), sheet.SourceFromWorkbook(path, "pricing")); err == nil {
		t.Fatalf("expected error for missing tab")
	}
}

func TestLoader_NilSource(t *testing.T) {
	l := New(sheet.NewLoaderOptions())
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
}
