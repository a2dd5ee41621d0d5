package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guttosm/tickerpulse/internal/domain/models"
	"github.com/guttosm/tickerpulse/internal/logger"
)

// Failover tries each provider in order and returns the first non-empty series.
type Failover struct {
	providers []Provider
}

// NewFailover wraps providers; order is priority.
func NewFailover(providers ...Provider) *Failover {
	return &Failover{providers: providers}
}

func (f *Failover) Name() string {
	names := make([]string, len(f.providers))
	for i, p := range f.providers {
		names[i] = p.Name()
	}
	return "failover(" + strings.Join(names, ",") + ")"
}

// FetchDaily returns ErrNoData (wrapped) only when every provider reported no data;
// otherwise the last transport error is returned.
func (f *Failover) FetchDaily(ctx context.Context, ticker string, period models.Period) (models.Series, error) {
	if len(f.providers) == 0 {
		return models.Series{}, errors.New("no quote providers configured")
	}
	lg := logger.Component("quotes")
	var errs []error
	allNoData := true
	for _, p := range f.providers {
		s, err := p.FetchDaily(ctx, ticker, period)
		if err == nil && !s.Empty() {
			return s, nil
		}
		if err == nil {
			err = fmt.Errorf("%s %s: %w", p.Name(), ticker, ErrNoData)
		}
		if ctx.Err() != nil {
			return models.Series{}, ctx.Err()
		}
		if !errors.Is(err, ErrNoData) {
			allNoData = false
		}
		lg.Warn().Str("provider", p.Name()).Str("ticker", ticker).Err(err).Msg("provider failed, trying next")
		errs = append(errs, err)
	}
	joined := errors.Join(errs...)
	if allNoData {
		return models.Series{}, fmt.Errorf("%s: %w", ticker, joined)
	}
	return models.Series{}, joined
}

// Build constructs the configured provider chain from names such as "yahoo" or "stooq".
func Build(names []string, yahoo *YahooProvider, stooq *StooqProvider) (Provider, error) {
	var ps []Provider
	for _, n := range names {
		switch strings.ToLower(n) {
		case "yahoo":
			ps = append(ps, yahoo)
		case "stooq":
			ps = append(ps, stooq)
		default:
			return nil, fmt.Errorf("unknown quotes provider %q", n)
		}
	}
	if len(ps) == 0 {
		return nil, errors.New("no quote providers configured")
	}
	if len(ps) == 1 {
		return ps[0], nil
	}
	return NewFailover(ps...), nil
}
