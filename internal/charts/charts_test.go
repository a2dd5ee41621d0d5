package charts

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/tickerpulse/internal/domain/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func series(ticker string, closes ...float64) models.Series {
	s := models.Series{Ticker: ticker}
	d := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	for _, c := range closes {
		s.Points = append(s.Points, models.PricePoint{Date: d, Close: c})
		d = d.AddDate(0, 0, 1)
	}
	return s
}

func TestRenderer_LineCharts(t *testing.T) {
	r := NewRenderer(time.Minute)
	in := []models.Series{series("AAPL", 10, 11, 12, 13), series("MSFT", 20, 19, 22, 25)}
	period := models.YearPeriod(2020)

	cases := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{name: "closing", render: func() ([]byte, error) { return r.Closing(in, period) }},
		{name: "normalized", render: func() ([]byte, error) { return r.Normalized(in, period) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := tc.render()
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if !bytes.HasPrefix(b, pngMagic) {
				t.Fatalf("not a PNG")
			}
		})
	}
	if r.cache.Len() != 2 {
		t.Fatalf("expected both charts cached, got %d", r.cache.Len())
	}
}

func TestRenderer_CacheHit(t *testing.T) {
	r := NewRenderer(time.Minute)
	in := []models.Series{series("AAPL", 1, 2, 3)}
	r.cache.Set(chartKey("closing", in, models.YearPeriod(2020)), []byte("cached"))

	b, err := r.Closing(in, models.YearPeriod(2020))
	if err != nil || string(b) != "cached" {
		t.Fatalf("expected cached bytes, got %q err=%v", b, err)
	}
}

func TestRenderer_HeadToHead(t *testing.T) {
	r := NewRenderer(time.Minute)
	board := models.Scoreboard{A: "AAPL", B: "MSFT", WinsA: 1, WinsB: 1, Years: []models.HeadToHeadYear{
		{Year: 2020, ReturnA: 80.75, ReturnB: 41.03, Winner: "AAPL"},
		{Year: 2021, ReturnA: 34.65, ReturnB: 51.21, Winner: "MSFT"},
	}}
	b, err := r.HeadToHead(board, models.YearRangePeriod(2020, 2021))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(b, pngMagic) {
		t.Fatalf("not a PNG")
	}

	if _, err := r.HeadToHead(models.Scoreboard{A: "X", B: "Y"}, models.YearPeriod(2020)); !errors.Is(err, ErrNotEnoughData) {
		t.Fatalf("want ErrNotEnoughData, got %v", err)
	}
}

func TestAlign(t *testing.T) {
	a := series("AAPL", 1, 2, 3, 4)
	b := series("MSFT", 5, 6, 7, 8)
	b.Points = b.Points[1:]

	labels, values, names, err := align([]models.Series{a, b})
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	if len(labels) != 3 || labels[0] != "2020-01-03" {
		t.Fatalf("labels=%v", labels)
	}
	if values[0][0] != 2 || values[1][0] != 6 || names[1] != "MSFT" {
		t.Fatalf("values=%v names=%v", values, names)
	}

	if _, _, _, err := align([]models.Series{series("X", 1)}); !errors.Is(err, ErrNotEnoughData) {
		t.Fatalf("want ErrNotEnoughData, got %v", err)
	}
}

func TestThin(t *testing.T) {
	var dates []time.Time
	d := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 1001; i++ {
		dates = append(dates, d.AddDate(0, 0, i))
	}
	out := thin(dates, 100)
	if len(out) > 101 {
		t.Fatalf("too many points: %d", len(out))
	}
	if !out[0].Equal(dates[0]) || !out[len(out)-1].Equal(dates[len(dates)-1]) {
		t.Fatalf("first and last dates must be kept")
	}
}
