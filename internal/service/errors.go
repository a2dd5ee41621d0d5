package service

import "errors"

// Validation failures. The API answers them with 400.
var (
	ErrNoTickers         = errors.New("Please select at least one ticker")
	ErrInvalidMode       = errors.New("invalid mode")
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrInvalidInvestment = errors.New("invalid investment")
)

// ErrNoData means none of the requested tickers returned prices. The API answers it with 404.
var ErrNoData = errors.New("no data found")

// IsValidation reports whether err is caused by bad user input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNoTickers) ||
		errors.Is(err, ErrInvalidMode) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidInvestment)
}
