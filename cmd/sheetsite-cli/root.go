package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-sheetsite/internal/prompt"
	"github.com/goliatone/go-sheetsite/pkg/config"
)

// app carries state shared by the commands.
type app struct {
	verbose    bool
	configPath string
	envFile    string
	logger     *zap.Logger
	driver     prompt.Driver
}

func newApp() *app {
	return &app{
		logger: zap.NewNop(),
		driver: prompt.NewSurveyDriverWithStdio(os.Stdin, os.Stderr, os.Stderr),
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sheetsite-cli",
		Short: "Build a landing page from a published spreadsheet",
		Long: `sheetsite-cli fetches the tabs of a published Google Sheet (or a local
.xlsx export), renders the service, team, area, FAQ, review and "why us"
sections, binds the settings into the page and writes or serves the result.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if a.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger

			if err := config.LoadDotEnv(a.envFile); err != nil {
				return err
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultPath, "path to the site configuration")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the configuration")

	root.AddCommand(newRenderCmd(a), newServeCmd(a), newInitCmd(a))
	return root
}

// loadConfig reads the configuration file. A missing file at the default
// path falls back to defaults plus environment overrides.
func (a *app) loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := a.configPath
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		a.logger.Debug("config file not found, using defaults", zap.String("path", path))
		path = ""
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	a.logger.Debug("config loaded",
		zap.String("path", path),
		zap.Int("sections", len(cfg.Sections)),
		zap.Duration("request_timeout", cfg.RequestTimeout),
	)
	return cfg, nil
}
