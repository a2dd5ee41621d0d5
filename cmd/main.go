package main

//
//  @title           tickerpulse API
//  @version         1.0
//  @description     Stock and index comparison: cumulative returns, yearly head-to-head and price charts.
//  @termsOfService  https://github.com/guttosm/tickerpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/tickerpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        dashboard
//  @tag.description Performance tables and scoreboards
//
//  @tag.name        charts
//  @tag.description PNG price charts
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/tickerpulse/config"
	_ "github.com/guttosm/tickerpulse/docs" // swagger docs
	"github.com/guttosm/tickerpulse/internal/app"
	"github.com/guttosm/tickerpulse/internal/domain/models"
	"github.com/guttosm/tickerpulse/internal/logger"
	"github.com/guttosm/tickerpulse/internal/presets"
	"github.com/guttosm/tickerpulse/internal/report"
	"github.com/guttosm/tickerpulse/internal/service"
	"github.com/guttosm/tickerpulse/internal/warmup"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections, warm schedule).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// cliOptions are the flags shared by the warm and report modes.
type cliOptions struct {
	dataset    string
	tickers    string
	period     service.PeriodInput
	investment float64
	force      bool
	parallel   int
	style      string
	headToHead bool
}

// selection builds the compare request: an empty --tickers means the dataset
// defaults. Custom text goes through as free text; preset datasets take it as
// a selection from the preset list.
func (o cliOptions) selection() service.CompareRequest {
	req := service.CompareRequest{Mode: o.dataset, Period: o.period, Investment: o.investment}
	if mode, err := presets.ParseMode(o.dataset); err == nil && mode == presets.ModeCustom {
		req.Tickers = o.tickers
		return req
	}
	if o.tickers != "" {
		req.Selected = presets.ParseTickers(o.tickers)
	}
	return req
}

// runWarm prefetches the requested tickers into the caches. Without --tickers
// every preset ticker is warmed.
func runWarm(ctx context.Context, comps *app.Components, o cliOptions) error {
	period, err := comps.Service.Period(o.period)
	if err != nil {
		return err
	}
	tickers := presets.ParseTickers(o.tickers)
	if len(tickers) == 0 {
		tickers = app.WarmTickers(comps.Presets)
	}
	if !comps.Config.UsesPostgres() {
		logger.L().Warn().Msg("CACHE_BACKEND is memory; warmed series are lost on exit")
	}

	res, err := warmup.Run(ctx, comps.Quotes, tickers, period, o.parallel, o.force)
	if err != nil {
		return err
	}
	logger.L().Info().
		Str("period", period.String()).
		Int("warmed", res.Warmed).
		Int("rows", res.Rows).
		Strs("failed", res.FailedTickers()).
		Msg("warm completed")
	if res.Warmed == 0 && len(res.Failed) > 0 {
		return errors.New("no ticker could be warmed")
	}
	return nil
}

// runReport prints the performance table, and the scoreboard when asked for
// with exactly two tickers, as rendered markdown.
func runReport(ctx context.Context, w io.Writer, svc service.DashboardService, o cliOptions) error {
	cmp, err := svc.Compare(ctx, o.selection())
	if err != nil {
		return err
	}

	var board *models.Scoreboard
	if o.headToHead && len(cmp.Tickers) == 2 {
		sb, err := svc.HeadToHead(ctx, cmp.Tickers[0], cmp.Tickers[1], cmp.Period)
		if err != nil {
			return err
		}
		board = &sb
	}

	out, err := report.Render(report.Markdown(cmp, board), o.style)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}

// main is the entry point of the tickerpulse application.
//
// Modes (selected via --mode flag):
//   - api:    Starts the dashboard and REST API.
//   - warm:   Prefetches daily closes into the caches (Postgres when CACHE_BACKEND=postgres).
//   - report: Prints the performance table to the terminal.
//
// Flags:
//   - --mode: Execution mode ("api", "warm" or "report"). Default: "api".
//   - --dataset: custom, top10 or indices. Default: "custom".
//   - --tickers: Comma separated tickers; empty means the dataset defaults.
//   - --year, --start-year, --end-year: Period selection (single year or range).
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	// Load configuration from environment or .env file
	config.LoadConfig()

	logger.Init(config.AppConfig.Log.Level, config.AppConfig.Log.Pretty)

	var o cliOptions
	mode := flag.String("mode", "api", "Mode: api, warm or report")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.StringVar(&o.dataset, "dataset", "custom", "Dataset: custom, top10 or indices")
	flag.StringVar(&o.tickers, "tickers", "", "Comma separated tickers (empty = dataset defaults)")
	flag.IntVar(&o.period.Year, "year", 0, "Single year (default 2020)")
	flag.IntVar(&o.period.StartYear, "start-year", 0, "Range start year")
	flag.IntVar(&o.period.EndYear, "end-year", 0, "Range end year")
	flag.Float64Var(&o.investment, "investment", 0, "Initial investment in USD (default from config)")
	flag.BoolVar(&o.force, "force", false, "Warm: refetch even when cached")
	flag.IntVar(&o.parallel, "parallel", config.AppConfig.Quotes.Parallel, "Warm: concurrent fetches (max 8)")
	flag.StringVar(&o.style, "style", "dark", "Report: glamour style (dark, light, notty)")
	flag.BoolVar(&o.headToHead, "h2h", false, "Report: add the yearly scoreboard for two tickers")
	flag.Parse()

	switch *mode {
	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(context.Background(), server, cleanup)

	case "warm", "report":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		comps, cleanup, err := app.Build(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}
		defer cleanup()

		if *mode == "warm" {
			err = runWarm(ctx, comps, o)
		} else {
			err = runReport(ctx, os.Stdout, comps.Service, o)
		}
		if err != nil {
			logger.L().Error().Err(err).Str("mode", *mode).Msg("run failed")
			cleanup()
			os.Exit(1)
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
