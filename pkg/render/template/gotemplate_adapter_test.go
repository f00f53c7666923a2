package template_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-sheetsite/pkg/render/template/gotemplate"
)

func templateFiles() fstest.MapFS {
	return fstest.MapFS{
		"hello.tmpl":  &fstest.MapFile{Data: []byte(`Hello {{ name }}!`)},
		"escape.tmpl": &fstest.MapFile{Data: []byte(`<p>{{ body }}</p>`)},
		"stars.tmpl":  &fstest.MapFile{Data: []byte(`{{ "★"|repeat:count }}`)},
		"trim.tmpl":   &fstest.MapFile{Data: []byte(`[{{ value|trim }}]`)},
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templateFiles()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestGoTemplateEngine_RenderTemplateWritesToWriters(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada!" {
		t.Fatalf("unexpected result %q", result)
	}
	if buf.String() != result {
		t.Fatalf("writer mismatch: %q vs %q", buf.String(), result)
	}
}

func TestGoTemplateEngine_EscapesCellText(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("escape.tmpl", map[string]any{"body": `<script>alert("x")</script>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(result, "<script>") {
		t.Fatalf("expected escaped output, got %q", result)
	}
}

func TestGoTemplateEngine_Filters(t *testing.T) {
	engine := newEngine(t)

	cases := []struct {
		name string
		tmpl string
		data map[string]any
		want string
	}{
		{name: "repeat zero", tmpl: "stars", data: map[string]any{"count": "0"}, want: ""},
		{name: "repeat string count", tmpl: "stars", data: map[string]any{"count": "3"}, want: "★★★"},
		{name: "repeat numeric count", tmpl: "stars", data: map[string]any{"count": 2}, want: "★★"},
		{name: "trim", tmpl: "trim", data: map[string]any{"value": "  spaced  "}, want: "[spaced]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := engine.RenderTemplate(tc.tmpl, tc.data)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if result != tc.want {
				t.Fatalf("want %q, got %q", tc.want, result)
			}
		})
	}
}

func TestGoTemplateEngine_BaseDirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tmpl"), []byte(`Hi {{ name }}`), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir), gotemplate.WithFS(templateFiles()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render override: %v", err)
	}
	if got != "Hi Ada" {
		t.Fatalf("expected directory template to win, got %q", got)
	}

	got, err = engine.RenderTemplate("stars", map[string]any{"count": "1"})
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if got != "★" {
		t.Fatalf("expected bundled template fallback, got %q", got)
	}
}

func TestGoTemplateEngine_ConcurrentConstruction(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			engine, err := gotemplate.New(gotemplate.WithFS(templateFiles()))
			if err != nil {
				errs <- err
				return
			}
			if _, err := engine.RenderTemplate("stars", map[string]any{"count": "2"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent engine: %v", err)
	}
}

func TestGoTemplateEngine_RequiresTemplateSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}
