package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/ougirez/yhdash/internal/api"
	"github.com/ougirez/yhdash/internal/pkg/logger"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the datasets and serve the dashboard API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, svc, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer logger.Sync()

			apiSvc, err := api.NewAPIService(svc, cfg)
			if err != nil {
				return fmt.Errorf("api.NewAPIService: %w", err)
			}

			go apiSvc.Serve(cfg.Server.Addr)
			logger.Infof(ctx, "listening on %s", cfg.Server.Addr)

			<-ctx.Done()
			logger.Infof(context.Background(), "shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return apiSvc.Shutdown(shutdownCtx)
		},
	}
}
