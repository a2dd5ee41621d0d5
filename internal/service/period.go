package service

import (
	"fmt"

	"github.com/guttosm/tickerpulse/internal/domain/models"
)

// Defaults of the period widgets.
const (
	DefaultYear      = 2020
	DefaultStartYear = 2015
	DefaultEndYear   = 2024

	MinInvestment = 10
	MaxInvestment = 1_000_000
)

// PeriodInput mirrors the period widgets. Zero means "not given".
//
// A range is used as soon as StartYear or EndYear is set; otherwise Year selects
// a single calendar year, and with nothing set the default single year applies.
type PeriodInput struct {
	Year      int
	StartYear int
	EndYear   int
}

// ResolvePeriod validates the input against [minYear, maxYear] and expands it to dates.
func ResolvePeriod(in PeriodInput, minYear, maxYear int) (models.Period, error) {
	check := func(name string, y int) error {
		if y < minYear || y > maxYear {
			return fmt.Errorf("%w: %s %d outside %d..%d", ErrInvalidPeriod, name, y, minYear, maxYear)
		}
		return nil
	}

	if in.StartYear != 0 || in.EndYear != 0 {
		start, end := in.StartYear, in.EndYear
		if start == 0 {
			start = DefaultStartYear
		}
		if end == 0 {
			end = maxYear
		}
		if err := check("start_year", start); err != nil {
			return models.Period{}, err
		}
		if err := check("end_year", end); err != nil {
			return models.Period{}, err
		}
		if start > end {
			return models.Period{}, fmt.Errorf("%w: start_year %d after end_year %d", ErrInvalidPeriod, start, end)
		}
		return models.YearRangePeriod(start, end), nil
	}

	year := in.Year
	if year == 0 {
		year = DefaultYear
	}
	if err := check("year", year); err != nil {
		return models.Period{}, err
	}
	return models.YearPeriod(year), nil
}

// ValidateInvestment applies the default for zero and enforces the widget bounds.
func ValidateInvestment(v, def float64) (float64, error) {
	if v == 0 {
		v = def
	}
	if v < MinInvestment || v > MaxInvestment {
		return 0, fmt.Errorf("%w: %.2f outside %d..%d", ErrInvalidInvestment, v, MinInvestment, MaxInvestment)
	}
	return v, nil
}
