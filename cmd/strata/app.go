package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/config"
	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/adapters/memory"
	"github.com/aretw0/strata/pkg/adapters/redis"
	"github.com/aretw0/strata/pkg/observability"
	"github.com/aretw0/strata/pkg/plot"
	"github.com/gogpu/gg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// app holds what every command resolves from flags and the config file.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *observability.Metrics
}

func setup(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("scenes") {
		cfg.ScenesDir, _ = cmd.Flags().GetString("scenes")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	logger := logging.New(level)
	gg.SetLogger(logger.With("component", "gg"))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: reg,
		metrics:  observability.NewMetrics(reg),
	}, nil
}

// engine builds the facade over the configured scenes directory and cache.
// The returned func releases the cache connection.
func (a *app) engine(ctx context.Context) (*strata.Engine, func(), error) {
	renderer, err := plot.NewRenderer(plot.WithLevels(a.cfg.Plot.Levels))
	if err != nil {
		return nil, nil, err
	}

	opts := []strata.Option{
		strata.WithLogger(a.logger),
		strata.WithMetrics(a.metrics),
		strata.WithRenderer(renderer),
		strata.WithWorkers(a.cfg.Plot.Workers),
	}
	cleanup := func() {}

	if a.cfg.Cache.Backend == config.CacheRedis {
		cache := redis.New(a.cfg.Cache.Address, a.cfg.Cache.Password, a.cfg.Cache.DB, redis.WithTTL(a.cfg.Cache.TTL))

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := cache.Ping(pingCtx); err != nil {
			cache.Close()
			return nil, nil, fmt.Errorf("redis cache at %s unreachable: %w", a.cfg.Cache.Address, err)
		}

		a.logger.Info("using redis field cache", "address", a.cfg.Cache.Address, "ttl", a.cfg.Cache.TTL)
		opts = append(opts,
			strata.WithCache(cache),
			strata.WithLocker(redis.NewLocker(cache.Client(), "strata:"), a.cfg.Cache.LockTTL),
		)
		cleanup = func() { _ = cache.Close() }
	} else {
		a.logger.Debug("using memory field cache", "ttl", a.cfg.Cache.TTL)
		opts = append(opts, strata.WithCache(memory.NewFieldCache(memory.WithTTL(a.cfg.Cache.TTL))))
	}

	eng, err := strata.New(a.cfg.ScenesDir, opts...)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initialize strata: %w", err)
	}
	return eng, cleanup, nil
}
