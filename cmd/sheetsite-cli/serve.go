package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	sheetsite "github.com/goliatone/go-sheetsite"
	"github.com/goliatone/go-sheetsite/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site, re-rendering it on every request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			orch, err := cfg.NewOrchestrator(a.logger)
			if err != nil {
				return err
			}
			srv, err := server.New(orch,
				server.WithLogger(a.logger),
				server.WithRuntimeAssets(sheetsite.RuntimeAssetsFS()),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, cfg.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then :8080)")
	return cmd
}
