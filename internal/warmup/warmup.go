// Package warmup prefetches daily closes into the series caches so that
// dashboard requests for common tickers are served without a remote call.
package warmup

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/tickerpulse/internal/domain/models"
	"github.com/guttosm/tickerpulse/internal/logger"
)

const maxParallel = 8

// Source is what the warmer fills. FetchDaily may be served from cache;
// Refresh always goes upstream.
type Source interface {
	FetchDaily(ctx context.Context, ticker string, period models.Period) (models.Series, error)
	Refresh(ctx context.Context, ticker string, period models.Period) (models.Series, error)
}

// Result summarizes one warm run.
type Result struct {
	Warmed int
	Rows   int
	Failed map[string]error
}

// FailedTickers returns the tickers that could not be warmed, sorted.
func (r Result) FailedTickers() []string {
	out := make([]string, 0, len(r.Failed))
	for t := range r.Failed {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Run warms every ticker for period.
//
// Behavior:
//   - Concurrency defaults to min(8, NumCPU) or the provided value clamped to 1..8.
//   - force bypasses both cache layers and rewrites them from upstream.
//   - A failing ticker is recorded in Result.Failed and does not stop the others.
//
// Returns an error only when ctx ends before the run completes.
func Run(ctx context.Context, src Source, tickers []string, period models.Period, parallel int, force bool) (Result, error) {
	lg := logger.Component("warmup")

	limit := maxParallel
	if parallel > 0 {
		if parallel < limit {
			limit = parallel
		}
	} else if c := runtime.NumCPU(); c < limit {
		limit = c
	}
	lg.Info().Int("tickers", len(tickers)).Str("period", period.String()).Int("max_parallel", limit).Bool("force", force).Msg("warm start")

	var (
		mu  sync.Mutex
		res = Result{Failed: map[string]error{}}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, ticker := range tickers {
		idx, t := i, ticker
		g.Go(func() error {
			start := time.Now()
			fetch := src.FetchDaily
			if force {
				fetch = src.Refresh
			}
			s, err := fetch(gctx, t, period)
			if err == nil && s.Empty() {
				err = fmt.Errorf("%s: empty series", t)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				lg.Warn().Int("idx", idx+1).Int("total", len(tickers)).Str("ticker", t).Err(err).Msg("warm failed")
				res.Failed[t] = err
				return nil
			}
			res.Warmed++
			res.Rows += len(s.Points)
			lg.Info().Int("idx", idx+1).Int("total", len(tickers)).Str("ticker", t).Int("rows", len(s.Points)).Dur("elapsed", time.Since(start)).Msg("ticker warmed")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return res, err
	}
	lg.Info().Int("warmed", res.Warmed).Int("failed", len(res.Failed)).Int("rows", res.Rows).Msg("warm done")
	return res, nil
}

// Schedule runs job on a cron spec with an optional leading seconds field
// ("0 30 22 * * 1-5" or "@every 1h"). The caller owns Stop.
func Schedule(spec string, job func(ctx context.Context)) (*cron.Cron, error) {
	c := cron.New(cron.WithParser(cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)))
	if _, err := c.AddFunc(spec, func() { job(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid warm schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
