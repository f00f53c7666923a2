package sheetsite_test

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sheetsite "github.com/goliatone/go-sheetsite"
	"github.com/goliatone/go-sheetsite/pkg/orchestrator"
	"github.com/goliatone/go-sheetsite/pkg/sheet"
	"github.com/goliatone/go-sheetsite/pkg/testsupport"
)

type failureSummary struct {
	Section string `json:"section"`
	Stage   string `json:"stage"`
}

type generateSummary struct {
	Rendered []string         `json:"rendered"`
	Failures []failureSummary `json:"failures"`
}

func summarize(result *sheetsite.Result) generateSummary {
	out := generateSummary{Rendered: []string{}, Failures: []failureSummary{}}
	for _, id := range result.Rendered {
		out.Rendered = append(out.Rendered, id.String())
	}
	for _, failure := range result.Failures {
		out.Failures = append(out.Failures, failureSummary{
			Section: failure.Section.String(),
			Stage:   string(failure.Stage),
		})
	}
	return out
}

func TestGenerateResultAgainstPublishedSheet(t *testing.T) {
	bodies := testsupport.SectionFixtures()
	delete(bodies, sheet.SectionTeam)
	server := testsupport.NewSheetServer(t, bodies)

	result, err := sheetsite.GenerateResult(context.Background(), server.Config(t))
	require.NoError(t, err)

	got := summarize(result)
	golden := filepath.Join("testdata", "generate_summary.golden.json")
	testsupport.WriteGolden(t, golden, got)

	var want generateSummary
	testsupport.LoadGolden(t, golden, &want)
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	html := string(result.HTML)
	assert.Contains(t, html, "Leaks fixed fast")
	assert.Contains(t, html, `href="tel:+44 20 7946 0000"`)
	assert.Contains(t, html, "Riverside")
	assert.Contains(t, html, "Old Town")
	assert.True(t, result.Failed(sheet.SectionTeam))

	for _, id := range sheet.Sections() {
		assert.Equal(t, 1, server.Hits(id), "section %s fetched once", id)
	}
}

func TestGenerateHTMLStrictStopsOnFirstFailure(t *testing.T) {
	bodies := testsupport.SectionFixtures()
	delete(bodies, sheet.SectionFAQ)
	server := testsupport.NewSheetServer(t, bodies)

	_, err := sheetsite.GenerateHTML(context.Background(), server.Config(t), orchestrator.WithStrict(true))
	require.Error(t, err)

	var sectionErr *sheetsite.SectionError
	require.ErrorAs(t, err, &sectionErr)
	assert.Equal(t, sheet.SectionFAQ, sectionErr.Section)
	assert.Equal(t, orchestrator.StageFetch, sectionErr.Stage)
}

func TestGenerateHTMLWithFetcherOnlyTouchesConfiguredSections(t *testing.T) {
	server := testsupport.NewSheetServer(t, nil)
	config := server.Config(t, sheet.SectionSettings, sheet.SectionAreas)
	fetcher := testsupport.MapFetcher{Bodies: testsupport.SectionFixtures()}

	html, err := sheetsite.GenerateHTML(context.Background(), config, orchestrator.WithFetcher(fetcher))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "Acme Plumbing")
	assert.Contains(t, out, "Riverside")
	assert.False(t, strings.Contains(out, "Showers"), "services were not configured")
	assert.Zero(t, server.Hits(sheet.SectionSettings))
}

func TestGenerateResultIsSafeForConcurrentCallers(t *testing.T) {
	server := testsupport.NewSheetServer(t, testsupport.SectionFixtures())
	config := server.Config(t)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*sheetsite.Result, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = sheetsite.GenerateResult(context.Background(), config)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Empty(t, results[i].Failures)
		assert.Equal(t, string(results[0].HTML), string(results[i].HTML))
	}
	for _, id := range sheet.Sections() {
		assert.Equal(t, callers, server.Hits(id), "section %s", id)
	}
}
