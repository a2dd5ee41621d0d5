package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata" // exchange zones without system tzdata

	"github.com/guttosm/tickerpulse/internal/domain/models"
	"github.com/guttosm/tickerpulse/internal/logger"
)

// yahooChartResp mirrors the Yahoo v8 chart response, trimmed to the fields used.
// Closes are pointers because Yahoo emits null for halted sessions.
type yahooChartResp struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol   string `json:"symbol"`
				Timezone string `json:"exchangeTimezoneName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// YahooProvider reads daily closes from the public Yahoo Finance chart API.
type YahooProvider struct {
	Client    *http.Client
	Hosts     []string
	Backoffs  []time.Duration
	SymbolMap map[string]string // maps dashboard symbols to Yahoo tickers
	userAgent string
}

// NewYahooProvider creates a provider with host failover and the default backoff schedule.
func NewYahooProvider(client *http.Client) *YahooProvider {
	return &YahooProvider{
		Client:   client,
		Hosts:    []string{"https://query1.finance.yahoo.com", "https://query2.finance.yahoo.com"},
		Backoffs: []time.Duration{200 * time.Millisecond, 500 * time.Millisecond, 1 * time.Second},
		SymbolMap: map[string]string{
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
			"NASDAQ": "^IXIC",
			"DJI":    "^DJI",
			"DOW":    "^DJI",
		},
		userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

func (p *YahooProvider) symbol(ticker string) string {
	if mapped, ok := p.SymbolMap[ticker]; ok {
		return mapped
	}
	return ticker
}

// FetchDaily retries across hosts with backoff on throttling, 5xx and non-JSON bodies.
// A well-formed answer with no closes returns ErrNoData without retrying.
func (p *YahooProvider) FetchDaily(ctx context.Context, ticker string, period models.Period) (models.Series, error) {
	ticker = NormalizeTicker(ticker)
	lg := logger.Component("quotes")

	var lastErr error
	for attempt := 0; attempt <= len(p.Backoffs); attempt++ {
		for _, host := range p.Hosts {
			s, retry, err := p.fetchOnce(ctx, host, ticker, period)
			if err == nil {
				return s, nil
			}
			lastErr = err
			if !retry {
				return models.Series{}, err
			}
			lg.Debug().Str("ticker", ticker).Str("host", host).Int("attempt", attempt+1).Err(err).Msg("yahoo retry")
		}
		if attempt < len(p.Backoffs) {
			select {
			case <-ctx.Done():
				return models.Series{}, ctx.Err()
			case <-time.After(p.Backoffs[attempt]):
			}
		}
	}
	return models.Series{}, lastErr
}

// fetchOnce performs one call. retry reports whether another host or attempt may help.
func (p *YahooProvider) fetchOnce(ctx context.Context, host, ticker string, period models.Period) (models.Series, bool, error) {
	q := url.Values{}
	q.Set("interval", "1d")
	q.Set("period1", fmt.Sprintf("%d", period.Start.Unix()))
	// period2 is exclusive on Yahoo's side; add a day so the end date is included.
	q.Set("period2", fmt.Sprintf("%d", period.End.AddDate(0, 0, 1).Unix()))
	q.Set("events", "div,splits")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", host, url.PathEscape(p.symbol(ticker)), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.Series{}, false, err
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := p.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return models.Series{}, false, ctx.Err()
		}
		return models.Series{}, true, fmt.Errorf("yahoo fetch: %w", err)
	}
	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return models.Series{}, true, fmt.Errorf("yahoo read body: %w", readErr)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || strings.HasPrefix(string(body), "Edge: Too Many Requests"):
		return models.Series{}, true, fmt.Errorf("yahoo %s returned 429", host)
	case resp.StatusCode == http.StatusNotFound:
		return models.Series{}, false, fmt.Errorf("yahoo %s: %w", ticker, ErrNoData)
	case resp.StatusCode >= 500:
		return models.Series{}, true, fmt.Errorf("yahoo %s returned %d: %s", host, resp.StatusCode, preview(body))
	case resp.StatusCode != http.StatusOK:
		return models.Series{}, false, fmt.Errorf("yahoo %s returned %d: %s", host, resp.StatusCode, preview(body))
	case strings.HasPrefix(string(body), "<"):
		return models.Series{}, true, fmt.Errorf("yahoo returned non-json body: %s", preview(body))
	}

	s, err := parseYahooChart(body, ticker, period)
	if err != nil {
		return models.Series{}, false, err
	}
	return s, false, nil
}

func parseYahooChart(body []byte, ticker string, period models.Period) (models.Series, error) {
	var yc yahooChartResp
	if err := json.Unmarshal(body, &yc); err != nil {
		return models.Series{}, fmt.Errorf("yahoo decode: %w", err)
	}
	if yc.Chart.Error != nil {
		return models.Series{}, fmt.Errorf("yahoo %s: %s: %w", ticker, yc.Chart.Error.Description, ErrNoData)
	}
	if len(yc.Chart.Result) == 0 || len(yc.Chart.Result[0].Indicators.Quote) == 0 {
		return models.Series{}, fmt.Errorf("yahoo %s: %w", ticker, ErrNoData)
	}

	res := yc.Chart.Result[0]
	closes := res.Indicators.Quote[0].Close
	// sessions are dated in the exchange's own zone
	loc := time.UTC
	if res.Meta.Timezone != "" {
		if l, err := time.LoadLocation(res.Meta.Timezone); err == nil {
			loc = l
		}
	}
	points := make([]models.PricePoint, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		y, m, d := time.Unix(ts, 0).In(loc).Date()
		points = append(points, models.PricePoint{
			Date:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Close: *closes[i],
		})
	}
	points = clean(points, period)
	if len(points) == 0 {
		return models.Series{}, fmt.Errorf("yahoo %s: %w", ticker, ErrNoData)
	}
	return models.Series{Ticker: ticker, Source: "yahoo", Points: points}, nil
}
