package main

import (
	"context"
	"fmt"

	"github.com/ougirez/yhdash/internal/pkg/config"
	"github.com/ougirez/yhdash/internal/pkg/fuzzy"
	"github.com/ougirez/yhdash/internal/pkg/logger"
	"github.com/ougirez/yhdash/internal/pkg/resolve"
	"github.com/ougirez/yhdash/internal/pkg/table"
	"github.com/ougirez/yhdash/internal/service/dashboard"
	"github.com/ougirez/yhdash/internal/service/ingest"
)

// bootstrap loads config and every dataset, and wires the dashboard service.
func bootstrap(ctx context.Context) (*config.Config, *dashboard.Service, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		return nil, nil, fmt.Errorf("logger.Init: %w", err)
	}

	municipalities, err := cfg.MunicipalityTable()
	if err != nil {
		return nil, nil, fmt.Errorf("municipality table: %w", err)
	}

	opener := table.NewOpener(cfg.Ingest.FetchRetries, cfg.Ingest.FetchTimeout)
	ds, err := ingest.NewIngestService(cfg, opener).Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	svc := dashboard.NewDashboardService(ds, resolve.NewResolver(municipalities), fuzzy.NewMatcher(cfg.Fuzzy.Floor))
	return cfg, svc, nil
}
