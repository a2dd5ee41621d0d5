package models

import "time"

// PricePoint is one daily closing price.
type PricePoint struct {
	Date  time.Time `json:"date" example:"2024-01-02T00:00:00Z"`
	Close float64   `json:"close" example:"185.64"`
}

// Series is the time-ordered list of daily closes for a single ticker.
//
// A Series is fetched fresh per request (or served from a cache) and is never
// the source of truth for anything; it only feeds the return computations.
type Series struct {
	Ticker string       `json:"ticker" example:"AAPL"`
	Source string       `json:"source,omitempty" example:"yahoo"`
	Points []PricePoint `json:"points"`
}

// Empty reports whether the series has no points.
func (s Series) Empty() bool { return len(s.Points) == 0 }

// First returns the first point. Callers must check Empty first.
func (s Series) First() PricePoint { return s.Points[0] }

// Last returns the last point. Callers must check Empty first.
func (s Series) Last() PricePoint { return s.Points[len(s.Points)-1] }

// Clone returns a deep copy so cached series can be handed out safely.
func (s Series) Clone() Series {
	out := s
	out.Points = append([]PricePoint(nil), s.Points...)
	return out
}
