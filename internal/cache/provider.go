package cache

import (
	"context"
	"time"

	"github.com/guttosm/tickerpulse/internal/calendar"
	"github.com/guttosm/tickerpulse/internal/domain/models"
	"github.com/guttosm/tickerpulse/internal/logger"
	"github.com/guttosm/tickerpulse/internal/quotes"
)

// Store is the persistent side of the series cache.
type Store interface {
	ReplaceCloses(ctx context.Context, series models.Series, period models.Period) error
	GetCloses(ctx context.Context, ticker string, period models.Period) (models.Series, error)
	LatestFetch(ctx context.Context, ticker string, period models.Period) (time.Time, bool, error)
}

// Provider wraps an upstream quotes provider with the in-memory TTL cache and,
// when a Store is set, the persistent cache. Store failures are logged and
// never fail a fetch.
type Provider struct {
	upstream quotes.Provider
	memory   *TTL[models.Series]
	store    Store
	now      func() time.Time
}

// NewProvider builds a caching provider. store may be nil.
func NewProvider(upstream quotes.Provider, ttl time.Duration, store Store) *Provider {
	return &Provider{
		upstream: upstream,
		memory:   NewTTL[models.Series](ttl, models.Series.Clone),
		store:    store,
		now:      time.Now,
	}
}

func (p *Provider) Name() string { return "cached(" + p.upstream.Name() + ")" }

// SeriesKey identifies a cached series.
func SeriesKey(ticker string, period models.Period) string {
	return ticker + "|" + period.Key()
}

// FetchDaily serves from memory, then from the store when its copy is fresh,
// then from upstream. Upstream results are written back to both layers.
func (p *Provider) FetchDaily(ctx context.Context, ticker string, period models.Period) (models.Series, error) {
	key := SeriesKey(ticker, period)
	if s, ok := p.memory.Get(key); ok {
		return s, nil
	}

	lg := logger.Component("cache")
	if p.store != nil {
		s, ok, err := p.fromStore(ctx, ticker, period)
		if err != nil {
			lg.Warn().Err(err).Str("ticker", ticker).Msg("persistent cache read failed")
		} else if ok {
			p.memory.Set(key, s)
			return s, nil
		}
	}

	s, err := p.upstream.FetchDaily(ctx, ticker, period)
	if err != nil {
		return models.Series{}, err
	}
	p.memory.Set(key, s)
	if p.store != nil && !s.Empty() {
		if err := p.store.ReplaceCloses(ctx, s, period); err != nil {
			lg.Warn().Err(err).Str("ticker", ticker).Msg("persistent cache write failed")
		}
	}
	return s, nil
}

// Refresh bypasses both cache layers and rewrites them from upstream.
func (p *Provider) Refresh(ctx context.Context, ticker string, period models.Period) (models.Series, error) {
	s, err := p.upstream.FetchDaily(ctx, ticker, period)
	if err != nil {
		return models.Series{}, err
	}
	p.memory.Set(SeriesKey(ticker, period), s)
	if p.store != nil && !s.Empty() {
		if err := p.store.ReplaceCloses(ctx, s, period); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Purge drops expired in-memory series.
func (p *Provider) Purge() int { return p.memory.Purge() }

func (p *Provider) fromStore(ctx context.Context, ticker string, period models.Period) (models.Series, bool, error) {
	fetchedAt, ok, err := p.store.LatestFetch(ctx, ticker, period)
	if err != nil || !ok {
		return models.Series{}, false, err
	}
	if !Fresh(fetchedAt, period, p.now()) {
		return models.Series{}, false, nil
	}
	s, err := p.store.GetCloses(ctx, ticker, period)
	if err != nil || s.Empty() {
		return models.Series{}, false, err
	}
	return s, true, nil
}

// Fresh reports whether a fetch recorded at fetchedAt already contains the
// close of the last trading day that can fall inside period.
func Fresh(fetchedAt time.Time, period models.Period, now time.Time) bool {
	until := period.End
	if now.Before(until) {
		until = now
	}
	last := calendar.LastTradingDay(until)
	return !fetchedAt.UTC().Before(last.AddDate(0, 0, 1))
}
