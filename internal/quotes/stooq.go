package quotes

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/tickerpulse/internal/domain/models"
)

// stooqHeaders is the exact column order of Stooq's daily CSV export.
var stooqHeaders = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

const stooqCloseCol = 4

// StooqProvider reads daily closes from stooq.com's CSV download endpoint.
type StooqProvider struct {
	Client  *http.Client
	BaseURL string
	// IndexMap translates Yahoo-style index symbols into Stooq's.
	IndexMap map[string]string
}

// NewStooqProvider creates a Stooq provider.
func NewStooqProvider(client *http.Client) *StooqProvider {
	return &StooqProvider{
		Client:  client,
		BaseURL: "https://stooq.com/q/d/l/",
		IndexMap: map[string]string{
			"^GSPC": "^spx",
			"^IXIC": "^ndq",
			"^DJI":  "^dji",
		},
	}
}

func (p *StooqProvider) Name() string { return "stooq" }

// symbol maps AAPL → aapl.us; symbols with an exchange suffix or a known index pass through.
func (p *StooqProvider) symbol(ticker string) string {
	if mapped, ok := p.IndexMap[ticker]; ok {
		return mapped
	}
	s := strings.ToLower(ticker)
	if strings.Contains(s, ".") || strings.HasPrefix(s, "^") {
		return s
	}
	return s + ".us"
}

func (p *StooqProvider) FetchDaily(ctx context.Context, ticker string, period models.Period) (models.Series, error) {
	ticker = NormalizeTicker(ticker)
	q := url.Values{}
	q.Set("s", p.symbol(ticker))
	q.Set("d1", period.Start.Format("20060102"))
	q.Set("d2", period.End.Format("20060102"))
	q.Set("i", "d")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return models.Series{}, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return models.Series{}, fmt.Errorf("stooq fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Series{}, fmt.Errorf("stooq read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.Series{}, fmt.Errorf("stooq returned %d: %s", resp.StatusCode, preview(body))
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.EqualFold(trimmed, []byte("No data")) {
		return models.Series{}, fmt.Errorf("stooq %s: %w", ticker, ErrNoData)
	}

	points, err := parseStooqCSV(bytes.NewReader(trimmed))
	if err != nil {
		return models.Series{}, fmt.Errorf("stooq %s: %w", ticker, err)
	}
	points = clean(points, period)
	if len(points) == 0 {
		return models.Series{}, fmt.Errorf("stooq %s: %w", ticker, ErrNoData)
	}
	return models.Series{Ticker: ticker, Source: "stooq", Points: points}, nil
}

// parseStooqCSV validates the header strictly and converts each row.
// It fails on:
//   - header not matching the expected order/length
//   - a row with a wrong column count or an unparsable date/close
//
// It tolerates an empty close cell (the row is skipped).
func parseStooqCSV(r io.Reader) ([]models.PricePoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < len(stooqHeaders)-1 || len(header) > len(stooqHeaders) {
		return nil, fmt.Errorf("invalid header length: expected %d, got %d", len(stooqHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(h) != stooqHeaders[i] {
			return nil, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, stooqHeaders[i], h)
		}
	}

	var out []models.PricePoint
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++
		if len(rec) != len(header) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", line, len(header), len(rec))
		}
		d, err := time.Parse("2006-01-02", strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid Date: %v", line, err)
		}
		s := strings.TrimSpace(rec[stooqCloseCol])
		if s == "" {
			continue
		}
		c, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid Close: %v", line, err)
		}
		out = append(out, models.PricePoint{Date: d, Close: c})
	}
	return out, nil
}
