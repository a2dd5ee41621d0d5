package models

import (
	"fmt"
	"time"
)

// Period is an inclusive range of calendar dates, always UTC midnight aligned.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// YearPeriod covers YYYY-01-01 .. YYYY-12-31.
func YearPeriod(year int) Period {
	return YearRangePeriod(year, year)
}

// YearRangePeriod covers from-01-01 .. to-12-31.
func YearRangePeriod(from, to int) Period {
	return Period{
		Start: time.Date(from, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(to, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Contains reports whether d falls within the period (date granularity).
func (p Period) Contains(d time.Time) bool {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Key is a stable textual form used as a cache key component.
func (p Period) Key() string {
	return p.Start.Format("2006-01-02") + ".." + p.End.Format("2006-01-02")
}

func (p Period) String() string {
	if p.Start.Year() == p.End.Year() {
		return fmt.Sprintf("%d", p.Start.Year())
	}
	return fmt.Sprintf("%d-%d", p.Start.Year(), p.End.Year())
}
