package quotes

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guttosm/tickerpulse/internal/domain/models"
)

// ErrNoData is returned when a provider answers but has no closes for the ticker and period.
var ErrNoData = errors.New("no data")

// Provider fetches daily closing prices for one ticker.
type Provider interface {
	FetchDaily(ctx context.Context, ticker string, period models.Period) (models.Series, error)
	Name() string
}

// NewHTTPClient builds the client shared by the HTTP providers.
func NewHTTPClient(timeout time.Duration, proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// NormalizeTicker trims and upper-cases a ticker symbol.
func NormalizeTicker(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}
