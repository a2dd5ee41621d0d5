package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/guttosm/tickerpulse/config"
	"github.com/guttosm/tickerpulse/internal/api"
	"github.com/guttosm/tickerpulse/internal/cache"
	"github.com/guttosm/tickerpulse/internal/charts"
	"github.com/guttosm/tickerpulse/internal/domain/models"
	"github.com/guttosm/tickerpulse/internal/logger"
	"github.com/guttosm/tickerpulse/internal/presets"
	"github.com/guttosm/tickerpulse/internal/quotes"
	"github.com/guttosm/tickerpulse/internal/service"
	"github.com/guttosm/tickerpulse/internal/storage"
	"github.com/guttosm/tickerpulse/internal/warmup"
)

// Components are the wired dependencies shared by every run mode.
type Components struct {
	Config   config.Config
	Presets  *presets.Presets
	Quotes   *cache.Provider
	Service  service.DashboardService
	Renderer *charts.Renderer
	DB       *sql.DB                  // nil with the memory cache backend
	Store    storage.PricesRepository // nil with the memory cache backend
}

// Build wires config → quotes providers → caches → optional Postgres → service.
//
// The returned cleanup closes the database when one was opened.
func Build(cfg config.Config) (*Components, func(), error) {
	p, err := presets.Load(cfg.Dashboard.PresetsFile)
	if err != nil {
		return nil, nil, err
	}

	client := quotes.NewHTTPClient(cfg.Quotes.Timeout, cfg.Quotes.Proxy)
	yahoo := quotes.NewYahooProvider(client)
	if len(cfg.Quotes.YahooHosts) > 0 {
		yahoo.Hosts = cfg.Quotes.YahooHosts
	}
	stooq := quotes.NewStooqProvider(client)
	if cfg.Quotes.StooqURL != "" {
		stooq.BaseURL = cfg.Quotes.StooqURL
	}
	upstream, err := quotes.Build(cfg.Quotes.Providers, yahoo, stooq)
	if err != nil {
		return nil, nil, err
	}

	var (
		sqlDB *sql.DB
		repo  storage.PricesRepository
		store cache.Store
	)
	if cfg.UsesPostgres() {
		// indirection for unit testing
		sqlDB, err = postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		repo = storage.NewPricesRepository(sqlDB)
		store = repo
	}

	cached := cache.NewProvider(upstream, cfg.Cache.TTL, store)
	svc := service.NewDashboardService(cached, p, service.Options{
		Parallel:          cfg.Quotes.Parallel,
		MinYear:           cfg.Dashboard.MinYear,
		DefaultInvestment: cfg.Dashboard.DefaultInvestment,
	})

	logger.L().Info().
		Str("quotes", upstream.Name()).
		Str("cache", cfg.Cache.Backend).
		Dur("cache_ttl", cfg.Cache.TTL).
		Msg("components ready")

	comps := &Components{
		Config:   cfg,
		Presets:  p,
		Quotes:   cached,
		Service:  svc,
		Renderer: charts.NewRenderer(cfg.Cache.TTL),
		DB:       sqlDB,
		Store:    repo,
	}
	cleanup := func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}
	return comps, cleanup, nil
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the shared components from config.AppConfig.
//   - Configures the Gin router with the dashboard and API routes.
//   - Registers health and readiness probes (Postgres ping when enabled).
//   - Starts the cache warm schedule when CACHE_WARM_CRON is set.
//   - Provides a cleanup function that stops the schedule and closes the database.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	comps, closeComps, err := Build(cfg)
	if err != nil {
		return nil, nil, err
	}

	handler := api.NewHandler(comps.Service, comps.Renderer)
	router := api.NewRouter(handler, api.RouterOptions{
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimit:      cfg.Server.RateLimit,
	})

	checks := map[string]func() error{}
	if comps.Store != nil {
		checks["postgres"] = comps.Store.Ping
	}
	api.NewHealthHandler(checks).Register(router)

	var sched *cron.Cron
	if cfg.Cache.WarmCron != "" {
		sched, err = ScheduleWarm(cfg.Cache.WarmCron, comps)
		if err != nil {
			closeComps()
			return nil, nil, err
		}
	}

	cleanup := func() {
		if sched != nil {
			<-sched.Stop().Done()
		}
		closeComps()
	}
	return router, cleanup, nil
}

// WarmTickers is every ticker the dashboard offers: both preset lists and the
// custom defaults, without duplicates.
func WarmTickers(p *presets.Presets) []string {
	all := append(append(append([]string{}, p.Top10.Tickers...), p.Indices.Tickers...), p.Custom.Default...)
	return presets.Clean(all)
}

// ScheduleWarm refreshes the current year of every preset ticker on spec,
// purging expired in-memory series first.
func ScheduleWarm(spec string, comps *Components) (*cron.Cron, error) {
	lg := logger.Component("warmup")
	c, err := warmup.Schedule(spec, func(ctx context.Context) {
		purged := comps.Quotes.Purge()
		period := models.YearPeriod(time.Now().Year())
		res, err := warmup.Run(ctx, comps.Quotes, WarmTickers(comps.Presets), period, comps.Config.Quotes.Parallel, true)
		if err != nil {
			lg.Error().Err(err).Msg("scheduled warm failed")
			return
		}
		lg.Info().Int("purged", purged).Int("warmed", res.Warmed).Strs("failed", res.FailedTickers()).Msg("scheduled warm done")
	})
	if err != nil {
		return nil, err
	}
	lg.Info().Str("spec", spec).Msg("warm schedule started")
	return c, nil
}
