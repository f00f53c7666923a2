package testsupport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

// PublicationID is the publication id used by fixture configs.
const PublicationID = "2PACX-fixture"

var sectionBodies = map[sheet.SectionID]string{
	sheet.SectionSettings: "key\tvalue\n" +
		"business_name\tAcme Plumbing\n" +
		"phone_main\t+44 20 7946 0000\n" +
		"email\thi@acme.test\n" +
		"whatsapp_number\t447700900000\n" +
		"whatsapp_message\tHi there, I need a plumber\n" +
		"services_title\tWhat we do\n" +
		"footer_text\tAcme Plumbing Ltd\n",
	sheet.SectionHero: "key\tvalue\n" +
		"hero_title\tLeaks fixed fast\n" +
		"hero_subtitle\tSame day call-outs\n" +
		"hero_image\thttps://cdn.test/van.jpg\n",
	sheet.SectionServices: "icon\ttitle\tdescription\n" +
		"🚿\tShowers\tSupplied and fitted\n" +
		"\tBoilers\tAnnual servicing\n",
	sheet.SectionTeam: "name\trole\tbio\n" +
		"Ada\tLead engineer\tTwenty years on the tools\n",
	sheet.SectionAreas: "area\nRiverside\n\nOld Town\n",
	sheet.SectionFAQ: "question\tanswer\n" +
		"Do you work weekends?\tYes, **every** weekend\n" +
		"Emergency call-outs?\t24/7\n",
	sheet.SectionReviews: "rating\ttext\tauthor\n" +
		"4\tGreat job\tSam\n" +
		"\tLovely people\tKim\n",
	sheet.SectionWhyUs: "icon\ttitle\tdescription\n" +
		"⭐\tLocal\tFamily run since 1998\n",
}

// SectionFixtures returns a fresh copy of the TSV bodies for every section.
func SectionFixtures() map[sheet.SectionID]string {
	out := make(map[sheet.SectionID]string, len(sectionBodies))
	for id, body := range sectionBodies {
		out[id] = body
	}
	return out
}

// Handles assigns a gid to every known section, numbered in document order.
func Handles() map[sheet.SectionID]string {
	out := make(map[sheet.SectionID]string)
	for idx, id := range sheet.Sections() {
		out[id] = fmt.Sprint(idx)
	}
	return out
}

// SheetServer emulates the published-sheet export endpoint. Bodies are
// looked up by the gid query parameter; unknown gids answer 404.
type SheetServer struct {
	*httptest.Server

	mu     sync.Mutex
	bodies map[string]string
	hits   map[string]int
}

// NewSheetServer starts a SheetServer serving bodies under the gids from
// Handles. The server is closed when the test finishes.
func NewSheetServer(t testing.TB, bodies map[sheet.SectionID]string) *SheetServer {
	t.Helper()

	handles := Handles()
	srv := &SheetServer{
		bodies: make(map[string]string, len(bodies)),
		hits:   make(map[string]int),
	}
	for id, body := range bodies {
		srv.bodies[handles[id]] = body
	}
	srv.Server = httptest.NewServer(http.HandlerFunc(srv.serve))
	t.Cleanup(srv.Close)
	return srv
}

func (s *SheetServer) serve(w http.ResponseWriter, r *http.Request) {
	gid := r.URL.Query().Get("gid")

	s.mu.Lock()
	s.hits[gid]++
	body, ok := s.bodies[gid]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

// Hits reports how many requests the server answered for id.
func (s *SheetServer) Hits(id sheet.SectionID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[Handles()[id]]
}

// Config builds a sheet.Config pointing every given section at the server.
// With no ids, every known section is configured.
func (s *SheetServer) Config(t testing.TB, ids ...sheet.SectionID) sheet.Config {
	t.Helper()

	if len(ids) == 0 {
		ids = sheet.Sections()
	}
	all := Handles()
	handles := make(map[sheet.SectionID]string, len(ids))
	for _, id := range ids {
		handles[id] = all[id]
	}
	config, err := sheet.NewConfig(PublicationID, handles, sheet.WithBaseURL(s.URL))
	if err != nil {
		t.Fatalf("sheet config: %v", err)
	}
	return config
}

// MapFetcher answers Fetch from an in-memory map and is safe for concurrent
// use. Sections missing from Bodies fail with sheet.ErrUnknownSection.
type MapFetcher struct {
	Bodies map[sheet.SectionID]string
	Errs   map[sheet.SectionID]error
}

// Fetch implements the orchestrator fetcher contract.
func (f MapFetcher) Fetch(ctx context.Context, id sheet.SectionID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := f.Errs[id]; ok {
		return "", err
	}
	body, ok := f.Bodies[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", sheet.ErrUnknownSection, id)
	}
	return body, nil
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, append(payload, '\n'))
}

// LoadGolden decodes a JSON golden file into out.
func LoadGolden(t *testing.T, path string, out any) {
	t.Helper()
	if err := json.Unmarshal(MustReadGolden(t, path), out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
