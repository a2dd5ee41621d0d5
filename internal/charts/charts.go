// Package charts renders the dashboard's PNG charts with go-charts.
package charts

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gocharts "github.com/vicanso/go-charts/v2"

	"github.com/guttosm/tickerpulse/internal/cache"
	"github.com/guttosm/tickerpulse/internal/domain/models"
	"github.com/guttosm/tickerpulse/internal/returns"
)

const (
	width     = 1000
	height    = 500
	maxPoints = 500
)

// ErrNotEnoughData is returned when the series share fewer than two dates.
var ErrNotEnoughData = errors.New("not enough overlapping points to chart")

// Renderer draws charts and keeps the PNG bytes in a TTL cache.
type Renderer struct {
	cache *cache.TTL[[]byte]
}

func NewRenderer(ttl time.Duration) *Renderer {
	return &Renderer{cache: cache.NewTTL[[]byte](ttl, cache.CopyBytes)}
}

// Closing draws one closing-price line per series.
func (r *Renderer) Closing(series []models.Series, period models.Period) ([]byte, error) {
	key := chartKey("closing", series, period)
	return r.cached(key, func() ([]byte, error) {
		return lineChart(series, "Closing Price Comparison", "Price (USD) • "+period.String())
	})
}

// Normalized draws every series rebased to 100 at its first close.
func (r *Renderer) Normalized(series []models.Series, period models.Period) ([]byte, error) {
	key := chartKey("normalized", series, period)
	return r.cached(key, func() ([]byte, error) {
		norm := make([]models.Series, len(series))
		for i, s := range series {
			norm[i] = returns.Normalize(s)
		}
		return lineChart(norm, "Normalized Price Comparison (Base 100)", "Normalized Value • "+period.String())
	})
}

// HeadToHead draws the yearly returns of both sides as grouped bars.
func (r *Renderer) HeadToHead(board models.Scoreboard, period models.Period) ([]byte, error) {
	key := "head-to-head|" + board.A + "," + board.B + "|" + period.Key()
	return r.cached(key, func() ([]byte, error) {
		if len(board.Years) == 0 {
			return nil, ErrNotEnoughData
		}
		labels := make([]string, len(board.Years))
		a := make([]float64, len(board.Years))
		b := make([]float64, len(board.Years))
		for i, y := range board.Years {
			labels[i] = fmt.Sprintf("%d", y.Year)
			a[i] = y.ReturnA
			b[i] = y.ReturnB
		}
		subtitle := fmt.Sprintf("Yearly return %% • %s %d - %d %s", board.A, board.WinsA, board.WinsB, board.B)
		if board.Ties > 0 {
			subtitle += fmt.Sprintf(" • %d ties", board.Ties)
		}
		p, err := gocharts.BarRender(
			[][]float64{a, b},
			gocharts.TitleTextOptionFunc(board.A+" vs "+board.B, subtitle),
			gocharts.XAxisDataOptionFunc(labels),
			gocharts.LegendOptionFunc(gocharts.LegendOption{Data: []string{board.A, board.B}, Left: gocharts.PositionRight}),
			gocharts.ThemeOptionFunc(gocharts.ThemeLight),
			gocharts.WidthOptionFunc(width),
			gocharts.HeightOptionFunc(height),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to render chart: %w", err)
		}
		return p.Bytes()
	})
}

func (r *Renderer) cached(key string, render func() ([]byte, error)) ([]byte, error) {
	if b, ok := r.cache.Get(key); ok {
		return b, nil
	}
	b, err := render()
	if err != nil {
		return nil, err
	}
	r.cache.Set(key, b)
	return b, nil
}

func chartKey(kind string, series []models.Series, period models.Period) string {
	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Ticker
	}
	return kind + "|" + strings.Join(names, ",") + "|" + period.Key()
}

func lineChart(series []models.Series, title, subtitle string) ([]byte, error) {
	labels, values, names, err := align(series)
	if err != nil {
		return nil, err
	}

	yMin, yMax := bounds(values)
	seriesList := gocharts.NewSeriesListDataFromValues(values, gocharts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
	}

	split := len(labels) / 8
	if split < 1 {
		split = 1
	}
	p, err := gocharts.Render(gocharts.ChartOption{SeriesList: seriesList},
		gocharts.TitleTextOptionFunc(title, subtitle),
		gocharts.XAxisOptionFunc(gocharts.XAxisOption{Data: labels, BoundaryGap: gocharts.FalseFlag(), SplitNumber: split}),
		gocharts.YAxisOptionFunc(gocharts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		gocharts.LegendOptionFunc(gocharts.LegendOption{Data: names, Left: gocharts.PositionRight}),
		gocharts.ThemeOptionFunc(gocharts.ThemeLight),
		gocharts.WidthOptionFunc(width),
		gocharts.HeightOptionFunc(height),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return p.Bytes()
}

// align keeps the dates present in every series, then thins them to at most
// maxPoints while always keeping the last date.
func align(series []models.Series) (labels []string, values [][]float64, names []string, err error) {
	if len(series) == 0 {
		return nil, nil, nil, ErrNotEnoughData
	}
	counts := map[time.Time]int{}
	for _, s := range series {
		for _, p := range s.Points {
			counts[p.Date]++
		}
	}
	var common []time.Time
	for _, p := range series[0].Points {
		if counts[p.Date] == len(series) {
			common = append(common, p.Date)
		}
	}
	if len(common) < 2 {
		return nil, nil, nil, ErrNotEnoughData
	}
	common = thin(common, maxPoints)

	labels = make([]string, len(common))
	for i, d := range common {
		labels[i] = d.Format("2006-01-02")
	}
	for _, s := range series {
		byDate := make(map[time.Time]float64, len(s.Points))
		for _, p := range s.Points {
			byDate[p.Date] = p.Close
		}
		row := make([]float64, len(common))
		for i, d := range common {
			row[i] = byDate[d]
		}
		values = append(values, row)
		names = append(names, s.Ticker)
	}
	return labels, values, names, nil
}

func thin(dates []time.Time, limit int) []time.Time {
	if len(dates) <= limit {
		return dates
	}
	step := (len(dates) + limit - 1) / limit
	out := make([]time.Time, 0, limit+1)
	for i := 0; i < len(dates); i += step {
		out = append(out, dates[i])
	}
	if last := dates[len(dates)-1]; !out[len(out)-1].Equal(last) {
		out = append(out, last)
	}
	return out
}

// bounds pads the value range by 5% on each side.
func bounds(values [][]float64) (float64, float64) {
	mn, mx := values[0][0], values[0][0]
	for _, row := range values {
		for _, v := range row {
			if v < mn {
				mn = v
			}
			if v > mx {
				mx = v
			}
		}
	}
	pad := (mx - mn) * 0.05
	if pad == 0 {
		pad = mx * 0.01
	}
	return mn - pad, mx + pad
}
