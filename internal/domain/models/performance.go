package models

import "time"

// Performance is one row of the performance table.
//
// Fields:
//   - ReturnPct: cumulative return over the period, in percent, rounded to 2 decimals.
//   - FinalValue: what the initial investment would be worth at the end, rounded to 2 decimals.
//
// swagger:model Performance
type Performance struct {
	Ticker     string    `json:"ticker" example:"AAPL"`
	ReturnPct  float64   `json:"return_pct" example:"48.18"`
	FinalValue float64   `json:"final_value" example:"148.18"`
	StartPrice float64   `json:"start_price" example:"72.72"`
	EndPrice   float64   `json:"end_price" example:"107.76"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

// YearlyReturn is the return of one ticker inside one calendar year.
type YearlyReturn struct {
	Year      int     `json:"year" example:"2020"`
	ReturnPct float64 `json:"return_pct" example:"80.75"`
}

// HeadToHeadYear is one row of a head-to-head scoreboard.
//
// Winner is the ticker with the higher yearly return, or empty on a tie.
type HeadToHeadYear struct {
	Year    int     `json:"year" example:"2020"`
	ReturnA float64 `json:"return_a" example:"80.75"`
	ReturnB float64 `json:"return_b" example:"41.03"`
	Winner  string  `json:"winner,omitempty" example:"AAPL"`
}

// Scoreboard tallies yearly wins between two tickers.
type Scoreboard struct {
	A     string           `json:"a" example:"AAPL"`
	B     string           `json:"b" example:"MSFT"`
	WinsA int              `json:"wins_a" example:"6"`
	WinsB int              `json:"wins_b" example:"4"`
	Ties  int              `json:"ties" example:"0"`
	Years []HeadToHeadYear `json:"years"`
}

// Leader returns the ticker with more wins, or empty when level.
func (s Scoreboard) Leader() string {
	switch {
	case s.WinsA > s.WinsB:
		return s.A
	case s.WinsB > s.WinsA:
		return s.B
	default:
		return ""
	}
}
