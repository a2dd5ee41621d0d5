// Package returns holds the stateless arithmetic behind the dashboard:
// cumulative return, investment value, base-100 normalization, calendar-year
// returns and the head-to-head scoreboard.
package returns

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/guttosm/tickerpulse/internal/domain/models"
)

// Round2 rounds to two decimals, half to even, on the exact binary value of v.
// 0.125 becomes 0.12 and 1.005 (stored just below) becomes 1.
func Round2(v float64) float64 {
	exact, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', 60, 64))
	if err != nil { // NaN, ±Inf
		return v
	}
	return exact.RoundBank(2).InexactFloat64()
}

// PctChange is (end-start)/start*100, unrounded.
func PctChange(start, end float64) float64 {
	s := decimal.NewFromFloat(start)
	e := decimal.NewFromFloat(end)
	return e.Sub(s).Div(s).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// CumulativeReturn computes the period return and the value of investment at
// the end of the series. Both results are rounded to 2 decimals.
//
// ok is false for an empty series or a non-positive first close.
func CumulativeReturn(s models.Series, investment float64) (ret, final float64, ok bool) {
	if s.Empty() {
		return 0, 0, false
	}
	start, end := s.First().Close, s.Last().Close
	if start <= 0 {
		return 0, 0, false
	}
	ret = Round2(PctChange(start, end))
	final = Round2(decimal.NewFromFloat(end).
		Div(decimal.NewFromFloat(start)).
		Mul(decimal.NewFromFloat(investment)).
		InexactFloat64())
	return ret, final, true
}

// Performance builds a performance row, or nil when the series is unusable.
func Performance(s models.Series, investment float64) *models.Performance {
	ret, final, ok := CumulativeReturn(s, investment)
	if !ok {
		return nil
	}
	return &models.Performance{
		Ticker:     s.Ticker,
		ReturnPct:  ret,
		FinalValue: final,
		StartPrice: s.First().Close,
		EndPrice:   s.Last().Close,
		StartDate:  s.First().Date,
		EndDate:    s.Last().Date,
	}
}

// Normalize rebases a series so that its first close is 100.
func Normalize(s models.Series) models.Series {
	out := models.Series{Ticker: s.Ticker, Source: s.Source}
	if s.Empty() || s.First().Close <= 0 {
		return out
	}
	base := s.First().Close
	out.Points = make([]models.PricePoint, len(s.Points))
	for i, p := range s.Points {
		out.Points[i] = models.PricePoint{Date: p.Date, Close: p.Close / base * 100}
	}
	return out
}

// YearlyReturns resamples the series by calendar year and returns, for each
// year with data, the change from the year's first close to its last close.
// Results are ordered by year.
func YearlyReturns(s models.Series) []models.YearlyReturn {
	type bounds struct{ first, last float64 }
	byYear := map[int]*bounds{}
	var years []int
	for _, p := range s.Points {
		y := p.Date.Year()
		b, ok := byYear[y]
		if !ok {
			b = &bounds{first: p.Close}
			byYear[y] = b
			years = append(years, y)
		}
		b.last = p.Close
	}
	sort.Ints(years)

	out := make([]models.YearlyReturn, 0, len(years))
	for _, y := range years {
		b := byYear[y]
		if b.first <= 0 {
			continue
		}
		out = append(out, models.YearlyReturn{Year: y, ReturnPct: Round2(PctChange(b.first, b.last))})
	}
	return out
}

// HeadToHead compares the yearly returns of two tickers over the years they
// share. Equal returns count as ties.
func HeadToHead(a, b string, ya, yb []models.YearlyReturn) models.Scoreboard {
	board := models.Scoreboard{A: a, B: b, Years: []models.HeadToHeadYear{}}
	rb := make(map[int]float64, len(yb))
	for _, r := range yb {
		rb[r.Year] = r.ReturnPct
	}
	for _, r := range ya {
		other, ok := rb[r.Year]
		if !ok {
			continue
		}
		row := models.HeadToHeadYear{Year: r.Year, ReturnA: r.ReturnPct, ReturnB: other}
		switch {
		case r.ReturnPct > other:
			row.Winner = a
			board.WinsA++
		case other > r.ReturnPct:
			row.Winner = b
			board.WinsB++
		default:
			board.Ties++
		}
		board.Years = append(board.Years, row)
	}
	return board
}

// Rank sorts rows by ReturnPct, best first. Equal returns keep input order.
func Rank(rows []models.Performance) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ReturnPct > rows[j].ReturnPct })
}
