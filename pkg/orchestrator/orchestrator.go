package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-sheetsite/pkg/binder"
	"github.com/goliatone/go-sheetsite/pkg/fetcher"
	"github.com/goliatone/go-sheetsite/pkg/page"
	"github.com/goliatone/go-sheetsite/pkg/render"
	"github.com/goliatone/go-sheetsite/pkg/renderers/sections"
	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

const (
	// DefaultConcurrency bounds simultaneous section fetches.
	DefaultConcurrency = 4
	// DefaultTimeout bounds a single section fetch.
	DefaultTimeout = sheet.DefaultRequestTimeout
)

// Fetcher retrieves the raw TSV text of a section.
type Fetcher interface {
	Fetch(ctx context.Context, id sheet.SectionID) (string, error)
}

var _ Fetcher = (*fetcher.Fetcher)(nil)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithConfig sets the sections to fetch and where they live.
func WithConfig(config sheet.Config) Option {
	return func(o *Orchestrator) {
		o.config = config
		o.configSet = true
	}
}

// WithFetcher injects a custom section fetcher.
func WithFetcher(f Fetcher) Option {
	return func(o *Orchestrator) {
		o.fetcher = f
	}
}

// WithLoader injects the loader used by the default fetcher.
func WithLoader(loader sheet.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a section renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithSectionOptions configures the default section renderers. Ignored when
// WithRegistry is supplied.
func WithSectionOptions(options ...sections.Option) Option {
	return func(o *Orchestrator) {
		o.sectionOptions = append(o.sectionOptions, options...)
	}
}

// WithBinder injects the settings binder.
func WithBinder(b *binder.Binder) Option {
	return func(o *Orchestrator) {
		o.binder = b
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithStrict makes any section failure abort Generate.
func WithStrict(strict bool) Option {
	return func(o *Orchestrator) {
		o.strict = strict
	}
}

// WithConcurrency bounds simultaneous fetches. Values below one are ignored.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithTimeout bounds each section fetch. Values below or equal to zero are
// ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Orchestrator) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithPageTemplate replaces the built-in page markup.
func WithPageTemplate(template []byte) Option {
	return func(o *Orchestrator) {
		o.template = template
	}
}

// WithTheme applies the tokens of manifest, overlaid with variant, as CSS
// custom properties on the page. The manifest is validated on registration;
// an invalid one makes Generate fail.
func WithTheme(manifest *theme.Manifest, variant string) Option {
	return func(o *Orchestrator) {
		if manifest == nil {
			return
		}
		selector, err := newThemeSelector(manifest, variant)
		if err != nil {
			o.themeErr = err
			return
		}
		o.themeSelector = selector
		o.themeName = manifest.Name
		o.themeVariant = variant
	}
}

// WithThemeProvider selects themes from a go-theme provider, defaulting to
// name and variant when the request leaves them empty.
func WithThemeProvider(provider theme.ThemeProvider, name, variant string) Option {
	return func(o *Orchestrator) {
		if provider == nil {
			return
		}
		o.themeSelector = theme.Selector{
			Registry:       provider,
			DefaultTheme:   name,
			DefaultVariant: variant,
		}
		o.themeName = name
		o.themeVariant = variant
	}
}

// WithThemeSelector resolves the theme per request through a go-theme
// selector, using name and variant when the request leaves them empty.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeName = name
		o.themeVariant = variant
	}
}

// Orchestrator builds landing pages from spreadsheet sections.
type Orchestrator struct {
	config          sheet.Config
	configSet       bool
	fetcher         Fetcher
	loader          sheet.Loader
	registry        *render.Registry
	sectionOptions  []sections.Option
	binder          *binder.Binder
	logger          *zap.Logger
	strict          bool
	concurrency     int
	timeout         time.Duration
	template        []byte
	themeSelector   theme.ThemeSelector
	themeErr        error
	themeName       string
	themeVariant    string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator. Missing dependencies get the built-in
// implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		concurrency: DefaultConcurrency,
		timeout:     DefaultTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request carries per-call overrides.
type Request struct {
	// Template overrides the configured page markup for this call.
	Template []byte
	// ThemeName and ThemeVariant override the configured theme selection.
	ThemeName    string
	ThemeVariant string
}

// Generate fetches every configured section, renders the card sections,
// binds settings into the page, and serializes it.
//
// Mutation order: why-us cards, text and link bindings, then services, team,
// areas, FAQ and reviews. A failing section is logged, recorded in
// Result.Failures and skipped, unless the orchestrator is strict, in which
// case the first failure is returned as a *SectionError.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if err := o.themeErr; err != nil {
		return nil, err
	}

	template := req.Template
	if len(template) == 0 {
		template = o.template
	}
	doc, err := page.New(template)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	started := time.Now()
	texts, failures, err := o.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Failures: failures}
	rows := make(map[sheet.SectionID][]sheet.Row, len(texts))
	for id, text := range texts {
		rows[id] = sheet.Parse(text)
	}
	settings := sheet.Reduce(rows[sheet.SectionSettings])
	hero := sheet.Reduce(rows[sheet.SectionHero])

	if err := o.mount(ctx, doc, sheet.SectionWhyUs, rows, result); err != nil {
		return nil, err
	}
	if err := o.binder.Bind(doc, settings, hero); err != nil {
		return nil, fmt.Errorf("orchestrator: bind settings: %w", err)
	}
	for _, id := range []sheet.SectionID{
		sheet.SectionServices,
		sheet.SectionTeam,
		sheet.SectionAreas,
		sheet.SectionFAQ,
		sheet.SectionReviews,
	} {
		if err := o.mount(ctx, doc, id, rows, result); err != nil {
			return nil, err
		}
	}

	vars, err := o.resolveTheme(req)
	if err != nil {
		return nil, err
	}
	if err := doc.SetCSSVariables(vars); err != nil {
		return nil, fmt.Errorf("orchestrator: apply theme: %w", err)
	}

	out, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: serialize page: %w", err)
	}
	result.HTML = out

	o.logger.Debug("page generated",
		zap.Int("sections", len(texts)),
		zap.Int("failures", len(result.Failures)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

// fetchAll downloads every configured section. Fetches run concurrently; the
// returned map holds only successful sections.
func (o *Orchestrator) fetchAll(ctx context.Context) (map[sheet.SectionID]string, []*SectionError, error) {
	ids := o.config.Sections()
	texts := make([]string, len(ids))
	errs := make([]error, len(ids))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(o.concurrency)
	for idx, id := range ids {
		group.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(groupCtx, o.timeout)
			defer cancel()

			text, err := o.fetcher.Fetch(fetchCtx, id)
			if err != nil {
				errs[idx] = err
				if o.strict {
					return &SectionError{Section: id, Stage: StageFetch, Err: err}
				}
				return nil
			}
			texts[idx] = text
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		o.logger.Error("section fetch failed", zap.Error(err))
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	out := make(map[sheet.SectionID]string, len(ids))
	var failures []*SectionError
	for idx, id := range ids {
		if errs[idx] != nil {
			failure := &SectionError{Section: id, Stage: StageFetch, Err: errs[idx]}
			o.logger.Warn("section skipped", zap.String("section", id.String()), zap.String("stage", string(StageFetch)), zap.Error(errs[idx]))
			failures = append(failures, failure)
			continue
		}
		out[id] = texts[idx]
	}
	return out, failures, nil
}

// mount renders one card section into its container. Sections that were not
// configured, failed to fetch, or have no renderer are skipped.
func (o *Orchestrator) mount(ctx context.Context, doc *page.Document, id sheet.SectionID, rows map[sheet.SectionID][]sheet.Row, result *Result) error {
	sectionRows, ok := rows[id]
	if !ok {
		return nil
	}
	renderer, err := o.registry.Get(id)
	if err != nil {
		o.logger.Debug("no renderer for section", zap.String("section", id.String()))
		return nil
	}

	fragment, err := renderer.Render(ctx, sectionRows)
	if err != nil {
		return o.fail(result, &SectionError{Section: id, Stage: StageRender, Err: err})
	}
	mounted, err := doc.Mount(renderer.Selector(), fragment.String())
	if err != nil {
		return o.fail(result, &SectionError{Section: id, Stage: StageMount, Err: err})
	}
	if !mounted {
		o.logger.Debug("section container missing", zap.String("section", id.String()), zap.String("selector", renderer.Selector()))
		return nil
	}
	result.Rendered = append(result.Rendered, id)
	return nil
}

func (o *Orchestrator) fail(result *Result, failure *SectionError) error {
	if o.strict {
		return failure
	}
	o.logger.Warn("section skipped",
		zap.String("section", failure.Section.String()),
		zap.String("stage", string(failure.Stage)),
		zap.Error(failure.Err),
	)
	result.Failures = append(result.Failures, failure)
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	o.defaultsApplied = true

	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.binder == nil {
		o.binder = binder.New()
	}
	if o.fetcher == nil {
		if !o.configSet {
			o.initialiseErr = errors.New("orchestrator: sheet config or fetcher is required")
			return
		}
		if o.loader != nil {
			o.fetcher = fetcher.New(o.config, fetcher.WithLoader(o.loader))
		} else {
			o.fetcher = fetcher.NewWithLoaderOptions(o.config, sheet.WithRequestTimeout(o.timeout))
		}
	}
	if !o.configSet {
		if provider, ok := o.fetcher.(interface{ Config() sheet.Config }); ok {
			o.config = provider.Config()
			o.configSet = true
		}
	}
	if !o.configSet {
		o.initialiseErr = errors.New("orchestrator: sheet config is required")
		return
	}
	if o.registry == nil {
		registry, err := sections.NewRegistry(o.sectionOptions...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
			return
		}
		o.registry = registry
	}
}
