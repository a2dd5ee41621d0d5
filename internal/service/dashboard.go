package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/tickerpulse/internal/domain/models"
	"github.com/guttosm/tickerpulse/internal/logger"
	"github.com/guttosm/tickerpulse/internal/presets"
	"github.com/guttosm/tickerpulse/internal/quotes"
	"github.com/guttosm/tickerpulse/internal/returns"
)

// DashboardService runs the fetch → compute pipeline behind every dashboard view.
type DashboardService interface {
	Presets() *presets.Presets
	Period(in PeriodInput) (models.Period, error)
	YearBounds() (minYear, maxYear int)
	DefaultInvestment() float64
	Compare(ctx context.Context, req CompareRequest) (*Comparison, error)
	Yearly(ctx context.Context, ticker string, period models.Period) ([]models.YearlyReturn, error)
	HeadToHead(ctx context.Context, a, b string, period models.Period) (models.Scoreboard, error)
	Series(ctx context.Context, tickers []string, period models.Period) ([]models.Series, []string, error)
}

// Options configures the dashboard service.
type Options struct {
	Parallel          int
	MinYear           int
	DefaultInvestment float64
	Now               func() time.Time
}

// CompareRequest carries the dataset, period and investment widgets.
//
// Selected is the multiselect value; nil means "use the mode defaults".
type CompareRequest struct {
	Mode       string
	Tickers    string
	Selected   []string
	Period     PeriodInput
	Investment float64
}

// Comparison is the outcome of Compare. Series keeps input order and only
// holds tickers that returned data; Rows is ranked by return.
type Comparison struct {
	Mode       presets.Mode
	Period     models.Period
	Investment float64
	Tickers    []string
	Rows       []models.Performance
	Series     []models.Series
	Warnings   []string
}

type dashboardService struct {
	provider quotes.Provider
	presets  *presets.Presets
	opts     Options
}

func NewDashboardService(provider quotes.Provider, p *presets.Presets, opts Options) DashboardService {
	if opts.Parallel <= 0 {
		opts.Parallel = 4
	}
	if opts.MinYear == 0 {
		opts.MinYear = 1980
	}
	if opts.DefaultInvestment == 0 {
		opts.DefaultInvestment = 100
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &dashboardService{provider: provider, presets: p, opts: opts}
}

func (s *dashboardService) Presets() *presets.Presets { return s.presets }

func (s *dashboardService) Period(in PeriodInput) (models.Period, error) {
	minYear, maxYear := s.YearBounds()
	return ResolvePeriod(in, minYear, maxYear)
}

// YearBounds is the selectable year range: the configured minimum up to the current year.
func (s *dashboardService) YearBounds() (int, int) {
	return s.opts.MinYear, s.opts.Now().Year()
}

// DefaultInvestment is the amount used when a request leaves it unset.
func (s *dashboardService) DefaultInvestment() float64 { return s.opts.DefaultInvestment }

func (s *dashboardService) Compare(ctx context.Context, req CompareRequest) (*Comparison, error) {
	mode, err := presets.ParseMode(req.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMode, err)
	}
	tickers := s.presets.Resolve(mode, req.Tickers, req.Selected)
	if len(tickers) == 0 {
		return nil, ErrNoTickers
	}
	period, err := s.Period(req.Period)
	if err != nil {
		return nil, err
	}
	investment, err := ValidateInvestment(req.Investment, s.opts.DefaultInvestment)
	if err != nil {
		return nil, err
	}

	series, warnings, err := s.Series(ctx, tickers, period)
	if err != nil {
		return nil, err
	}

	rows := make([]models.Performance, 0, len(series))
	for _, sr := range series {
		if p := returns.Performance(sr, investment); p != nil {
			rows = append(rows, *p)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, strings.Join(warnings, "; "))
	}
	returns.Rank(rows)

	return &Comparison{
		Mode:       mode,
		Period:     period,
		Investment: investment,
		Tickers:    tickers,
		Rows:       rows,
		Series:     series,
		Warnings:   warnings,
	}, nil
}

func (s *dashboardService) Yearly(ctx context.Context, ticker string, period models.Period) ([]models.YearlyReturn, error) {
	clean := presets.Clean([]string{ticker})
	if len(clean) == 0 {
		return nil, ErrNoTickers
	}
	series, warnings, err := s.Series(ctx, clean, period)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, strings.Join(warnings, "; "))
	}
	return returns.YearlyReturns(series[0]), nil
}

func (s *dashboardService) HeadToHead(ctx context.Context, a, b string, period models.Period) (models.Scoreboard, error) {
	pair := presets.Clean([]string{a, b})
	if len(pair) != 2 {
		return models.Scoreboard{}, fmt.Errorf("%w: head-to-head needs two different tickers", ErrNoTickers)
	}
	series, warnings, err := s.Series(ctx, pair, period)
	if err != nil {
		return models.Scoreboard{}, err
	}
	if len(series) != 2 {
		return models.Scoreboard{}, fmt.Errorf("%w: %s", ErrNoData, strings.Join(warnings, "; "))
	}
	ya := returns.YearlyReturns(series[0])
	yb := returns.YearlyReturns(series[1])
	return returns.HeadToHead(pair[0], pair[1], ya, yb), nil
}

// Series fetches tickers concurrently. A ticker that fails or has no closes
// becomes a "No data found for X" warning; the returned series keep input
// order. Only a cancelled or expired ctx is returned as an error.
func (s *dashboardService) Series(ctx context.Context, tickers []string, period models.Period) ([]models.Series, []string, error) {
	lg := logger.Component("service")
	results := make([]models.Series, len(tickers))
	failed := make([]bool, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Parallel)
	for i, t := range tickers {
		g.Go(func() error {
			sr, err := s.provider.FetchDaily(gctx, t, period)
			if err != nil {
				// a client timeout also matches context.DeadlineExceeded; only the caller's ctx aborts
				if ctx.Err() != nil {
					return ctx.Err()
				}
				lg.Warn().Str("ticker", t).Str("period", period.String()).Err(err).Msg("fetch failed")
				failed[i] = true
				return nil
			}
			if sr.Empty() {
				failed[i] = true
				return nil
			}
			sr.Ticker = t
			results[i] = sr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	out := make([]models.Series, 0, len(tickers))
	var warnings []string
	for i, t := range tickers {
		if failed[i] {
			warnings = append(warnings, "No data found for "+t)
			continue
		}
		out = append(out, results[i])
	}
	return out, warnings, nil
}
