package sheet

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewConfig_BuildsPublishedURL(t *testing.T) {
	cfg := MustNewConfig("2PACX-abc", map[SectionID]string{
		SectionSettings: "0",
		SectionFAQ:      "1404829501",
	})

	got, err := cfg.URL(SectionFAQ)
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	want := "https://docs.google.com/spreadsheets/d/e/2PACX-abc/pub?gid=1404829501&output=tsv&single=true"
	if got != want {
		t.Fatalf("url mismatch\nwant: %s\n got: %s", want, got)
	}

	src, err := cfg.Source(SectionSettings)
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if src.Kind() != SourceKindURL {
		t.Fatalf("expected url source, got %s", src.Kind())
	}
}

func TestNewConfig_SectionsFollowDocumentOrder(t *testing.T) {
	cfg := MustNewConfig("pub", map[SectionID]string{
		SectionWhyUs:    "9",
		SectionServices: "2",
		SectionSettings: "0",
	})
	want := []SectionID{SectionSettings, SectionServices, SectionWhyUs}
	if diff := cmp.Diff(want, cfg.Sections()); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}

	sections := cfg.Sections()
	sections[0] = SectionTeam
	if cfg.Sections()[0] != SectionSettings {
		t.Fatalf("config exposed internal slice")
	}
}

func TestNewConfig_RejectsInvalidInput(t *testing.T) {
	if _, err := NewConfig("", map[SectionID]string{SectionHero: "1"}); err == nil {
		t.Fatalf("expected error for missing publication id")
	}
	if _, err := NewConfig("pub", map[SectionID]string{"pricing": "1"}); !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
	if _, err := NewConfig("pub", map[SectionID]string{SectionHero: " "}); err == nil {
		t.Fatalf("expected error for empty handle")
	}
}

func TestConfig_UnknownSectionLookup(t *testing.T) {
	cfg := MustNewConfig("pub", map[SectionID]string{SectionHero: "1"})
	if _, err := cfg.Source(SectionTeam); !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
}

func TestConfig_WorkbookSources(t *testing.T) {
	cfg := MustNewConfig("", map[SectionID]string{SectionTeam: ""}, WithWorkbook("content/site.xlsx"))
	src, err := cfg.Source(SectionTeam)
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if src.Kind() != SourceKindWorkbook {
		t.Fatalf("expected workbook source, got %s", src.Kind())
	}
	path, tab, ok := SplitWorkbookLocation(src.Location())
	if !ok || path != "content/site.xlsx" || tab != "team" {
		t.Fatalf("unexpected workbook location %q (path=%q tab=%q ok=%v)", src.Location(), path, tab, ok)
	}
}
