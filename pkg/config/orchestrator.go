package config

import (
	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-sheetsite/internal/sheet/loader"
	"github.com/goliatone/go-sheetsite/pkg/orchestrator"
	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

// OrchestratorOptions validates c and converts it into orchestrator options.
// Extra options are appended last so callers can override any of them.
func (c Config) OrchestratorOptions(logger *zap.Logger, extra ...orchestrator.Option) ([]orchestrator.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	sheetConfig, err := c.SheetConfig()
	if err != nil {
		return nil, err
	}
	template, err := c.PageTemplateBytes()
	if err != nil {
		return nil, err
	}

	options := []orchestrator.Option{
		orchestrator.WithConfig(sheetConfig),
		orchestrator.WithLogger(logger),
		orchestrator.WithStrict(c.Strict),
		orchestrator.WithConcurrency(c.Concurrency),
		orchestrator.WithTimeout(c.RequestTimeout),
		orchestrator.WithSectionOptions(c.SectionOptions()...),
		orchestrator.WithPageTemplate(template),
		orchestrator.WithLoader(newLoader(c)),
	}
	manifest, err := c.ThemeManifest()
	if err != nil {
		return nil, err
	}
	if manifest != nil {
		options = append(options, orchestrator.WithTheme(manifest, c.ThemeVariant()))
	}
	return append(options, extra...), nil
}

// NewOrchestrator is OrchestratorOptions followed by orchestrator.New.
func (c Config) NewOrchestrator(logger *zap.Logger, extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	options, err := c.OrchestratorOptions(logger, extra...)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(options...), nil
}

func newLoader(c Config) sheet.Loader {
	return internalLoader.New(sheet.NewLoaderOptions(sheet.WithRequestTimeout(c.RequestTimeout)))
}
