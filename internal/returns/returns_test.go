package returns

import (
	"reflect"
	"testing"
	"time"

	"github.com/guttosm/tickerpulse/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func series(ticker string, pts ...models.PricePoint) models.Series {
	return models.Series{Ticker: ticker, Points: pts}
}

func yr(y int, r float64) models.YearlyReturn { return models.YearlyReturn{Year: y, ReturnPct: r} }

func pt(y int, m time.Month, d int, c float64) models.PricePoint {
	return models.PricePoint{Date: day(y, m, d), Close: c}
}

func TestCumulativeReturn(t *testing.T) {
	cases := []struct {
		name       string
		s          models.Series
		investment float64
		wantRet    float64
		wantFinal  float64
		wantOK     bool
	}{
		{name: "empty", s: series("X"), investment: 100, wantOK: false},
		{name: "gain", s: series("X", pt(2020, 1, 2, 100), pt(2020, 12, 31, 150)), investment: 100, wantRet: 50, wantFinal: 150, wantOK: true},
		{name: "loss", s: series("X", pt(2020, 1, 2, 80), pt(2020, 12, 31, 60)), investment: 1000, wantRet: -25, wantFinal: 750, wantOK: true},
		{name: "rounding", s: series("X", pt(2020, 1, 2, 3), pt(2020, 12, 31, 4)), investment: 10, wantRet: 33.33, wantFinal: 13.33, wantOK: true},
		{name: "single point", s: series("X", pt(2020, 1, 2, 42)), investment: 100, wantRet: 0, wantFinal: 100, wantOK: true},
		{name: "zero start", s: series("X", pt(2020, 1, 2, 0), pt(2020, 1, 3, 1)), investment: 100, wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ret, final, ok := CumulativeReturn(tc.s, tc.investment)
			if ok != tc.wantOK {
				t.Fatalf("ok=%v want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if ret != tc.wantRet || final != tc.wantFinal {
				t.Fatalf("got ret=%v final=%v, want %v %v", ret, final, tc.wantRet, tc.wantFinal)
			}
		})
	}
}

func TestPerformance(t *testing.T) {
	if Performance(series("X"), 100) != nil {
		t.Fatalf("expected nil for empty series")
	}
	p := Performance(series("AAPL", pt(2020, 1, 2, 75), pt(2020, 6, 1, 80), pt(2020, 12, 31, 132.69)), 100)
	if p == nil {
		t.Fatalf("expected row")
	}
	if p.Ticker != "AAPL" || p.ReturnPct != 76.92 || p.FinalValue != 176.92 {
		t.Fatalf("unexpected row %+v", p)
	}
	if !p.StartDate.Equal(day(2020, 1, 2)) || !p.EndDate.Equal(day(2020, 12, 31)) {
		t.Fatalf("unexpected dates %+v", p)
	}
}

func TestNormalize(t *testing.T) {
	s := series("X", pt(2020, 1, 2, 50), pt(2020, 1, 3, 75), pt(2020, 1, 6, 25))
	n := Normalize(s)
	want := []float64{100, 150, 50}
	for i, p := range n.Points {
		if p.Close != want[i] {
			t.Fatalf("point %d = %v want %v", i, p.Close, want[i])
		}
	}
	if !Normalize(series("X")).Empty() {
		t.Fatalf("normalizing empty must stay empty")
	}
	if s.Points[1].Close != 75 {
		t.Fatalf("input mutated")
	}
}

func TestYearlyReturns(t *testing.T) {
	s := series("X",
		pt(2019, 1, 2, 100), pt(2019, 6, 3, 90), pt(2019, 12, 31, 110),
		pt(2020, 1, 2, 200), pt(2020, 12, 31, 150),
		pt(2021, 3, 1, 10),
	)
	got := YearlyReturns(s)
	want := []models.YearlyReturn{
		{Year: 2019, ReturnPct: 10},
		{Year: 2020, ReturnPct: -25},
		{Year: 2021, ReturnPct: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
	if len(YearlyReturns(series("X"))) != 0 {
		t.Fatalf("empty series must yield no years")
	}
}

func TestHeadToHead(t *testing.T) {
	ya := []models.YearlyReturn{yr(2018, 5), yr(2019, 10), yr(2020, -3), yr(2021, 7)}
	yb := []models.YearlyReturn{yr(2019, 12), yr(2020, -5), yr(2021, 7), yr(2022, 1)}

	board := HeadToHead("AAPL", "MSFT", ya, yb)
	if board.WinsA != 1 || board.WinsB != 1 || board.Ties != 1 {
		t.Fatalf("unexpected tally %+v", board)
	}
	if len(board.Years) != 3 {
		t.Fatalf("expected 3 shared years, got %d", len(board.Years))
	}
	if board.Years[0].Winner != "MSFT" || board.Years[1].Winner != "AAPL" || board.Years[2].Winner != "" {
		t.Fatalf("unexpected winners %+v", board.Years)
	}
	if board.Leader() != "" {
		t.Fatalf("leader should be empty on level score")
	}
}

func TestHeadToHead_NoOverlap(t *testing.T) {
	board := HeadToHead("A", "B", []models.YearlyReturn{yr(2018, 1)}, []models.YearlyReturn{yr(2019, 1)})
	if board.Years == nil || len(board.Years) != 0 {
		t.Fatalf("expected empty non-nil years, got %#v", board.Years)
	}
}

func TestRank(t *testing.T) {
	rows := []models.Performance{
		{Ticker: "A", ReturnPct: 1},
		{Ticker: "B", ReturnPct: 30},
		{Ticker: "C", ReturnPct: -4},
		{Ticker: "D", ReturnPct: 30},
	}
	Rank(rows)
	var order []string
	for _, r := range rows {
		order = append(order, r.Ticker)
	}
	if !reflect.DeepEqual(order, []string{"B", "D", "A", "C"}) {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		0.125:  0.12,
		0.375:  0.38,
		-0.125: -0.12,
		1.005:  1,
		2.675:  2.67,
		2.344:  2.34,
		33.335: 33.34,
		0:      0,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Fatalf("Round2(%v)=%v want %v", in, got, want)
		}
	}
}
