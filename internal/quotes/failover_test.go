package quotes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/guttosm/tickerpulse/internal/domain/models"
)

type stubProvider struct {
	name  string
	s     models.Series
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }
func (s *stubProvider) FetchDaily(_ context.Context, ticker string, _ models.Period) (models.Series, error) {
	s.calls++
	return s.s, s.err
}

func someSeries(source string) models.Series {
	return models.Series{Ticker: "AAPL", Source: source, Points: []models.PricePoint{{Date: time.Now(), Close: 1}}}
}

func TestFailover(t *testing.T) {
	transport := errors.New("connection reset")
	cases := []struct {
		name       string
		first      *stubProvider
		second     *stubProvider
		wantSource string
		wantNoData bool
		wantErr    bool
		wantCalls2 int
	}{
		{name: "first wins", first: &stubProvider{name: "a", s: someSeries("a")}, second: &stubProvider{name: "b", s: someSeries("b")}, wantSource: "a", wantCalls2: 0},
		{name: "fallback on error", first: &stubProvider{name: "a", err: transport}, second: &stubProvider{name: "b", s: someSeries("b")}, wantSource: "b", wantCalls2: 1},
		{name: "fallback on empty", first: &stubProvider{name: "a"}, second: &stubProvider{name: "b", s: someSeries("b")}, wantSource: "b", wantCalls2: 1},
		{name: "all no data", first: &stubProvider{name: "a", err: fmt.Errorf("x: %w", ErrNoData)}, second: &stubProvider{name: "b"}, wantErr: true, wantNoData: true, wantCalls2: 1},
		{name: "mixed failure", first: &stubProvider{name: "a", err: transport}, second: &stubProvider{name: "b", err: ErrNoData}, wantErr: true, wantNoData: true, wantCalls2: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFailover(tc.first, tc.second)
			s, err := f.FetchDaily(context.Background(), "AAPL", period2024())
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if errors.Is(err, ErrNoData) != tc.wantNoData {
					t.Fatalf("ErrNoData mismatch: %v", err)
				}
			} else if err != nil || s.Source != tc.wantSource {
				t.Fatalf("got source=%q err=%v", s.Source, err)
			}
			if tc.second.calls != tc.wantCalls2 {
				t.Fatalf("second provider calls=%d want %d", tc.second.calls, tc.wantCalls2)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	y := NewYahooProvider(http.DefaultClient)
	s := NewStooqProvider(http.DefaultClient)

	p, err := Build([]string{"yahoo"}, y, s)
	if err != nil || p != Provider(y) {
		t.Fatalf("single provider should be returned as-is, got %v %v", p, err)
	}
	p, err = Build([]string{"yahoo", "stooq"}, y, s)
	if err != nil || p.Name() != "failover(yahoo,stooq)" {
		t.Fatalf("unexpected chain %v %v", p, err)
	}
	if _, err := Build([]string{"bloomberg"}, y, s); err == nil {
		t.Fatalf("expected unknown provider error")
	}
	if _, err := Build(nil, y, s); err == nil {
		t.Fatalf("expected error for empty chain")
	}
}

func TestNewHTTPClient(t *testing.T) {
	c := NewHTTPClient(0, "http://proxy.local:3128")
	if c.Timeout != 30*time.Second {
		t.Fatalf("default timeout not applied: %v", c.Timeout)
	}
	tr, ok := c.Transport.(*http.Transport)
	if !ok || tr.Proxy == nil {
		t.Fatalf("proxy not configured")
	}
}
