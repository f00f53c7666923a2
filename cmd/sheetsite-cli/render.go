package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sheetsite "github.com/goliatone/go-sheetsite"
	"github.com/goliatone/go-sheetsite/pkg/orchestrator"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output  string
		strict  bool
		variant string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the site once",
		Example: `  sheetsite-cli render --config site.yaml --output public/index.html
  sheetsite-cli render --strict > index.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strict") {
				cfg.Strict = strict
			}

			orch, err := cfg.NewOrchestrator(a.logger)
			if err != nil {
				return err
			}
			result, err := orch.Generate(cmd.Context(), orchestrator.Request{ThemeVariant: variant})
			if err != nil {
				return err
			}
			for _, failure := range result.Failures {
				a.logger.Warn("section not rendered", zap.String("section", failure.Section.String()), zap.Error(failure.Err))
			}

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(result.HTML)
				return err
			}
			if err := atomic.WriteFile(output, bytes.NewReader(result.HTML)); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			a.logger.Info("page written", zap.String("path", output), zap.Int("bytes", len(result.HTML)))

			script, err := writeRuntimeAsset(filepath.Dir(output))
			if err != nil {
				return err
			}
			a.logger.Info("runtime written", zap.String("path", script))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any section cannot be rendered")
	cmd.Flags().StringVar(&variant, "variant", "", "theme variant to apply")
	return cmd
}

// writeRuntimeAsset copies the browser runtime to runtime/ under dir, where
// the default page expects it when dir is served as the site root.
func writeRuntimeAsset(dir string) (string, error) {
	data, err := fs.ReadFile(sheetsite.RuntimeAssetsFS(), sheetsite.RuntimeAssetName)
	if err != nil {
		return "", fmt.Errorf("read runtime asset: %w", err)
	}
	runtimeDir := filepath.Join(dir, "runtime")
	if err := os.MkdirAll(runtimeDir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", runtimeDir, err)
	}
	path := filepath.Join(runtimeDir, sheetsite.RuntimeAssetName)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
