package dto

import "github.com/guttosm/tickerpulse/internal/domain/models"

// CompareResponse is returned by GET /api/v1/compare.
//
// Rows are sorted by return, best first. Warnings list tickers that produced no data;
// they never turn the whole request into an error.
type CompareResponse struct {
	Mode       string               `json:"mode" example:"custom"`
	Period     string               `json:"period" example:"2015-2024"`
	Investment float64              `json:"investment" example:"100"`
	ValueLabel string               `json:"value_label" example:"Value of $100"`
	Tickers    []string             `json:"tickers"`
	Rows       []models.Performance `json:"rows"`
	Warnings   []string             `json:"warnings,omitempty"`
}

// YearlyResponse is returned by GET /api/v1/yearly.
type YearlyResponse struct {
	Ticker string                `json:"ticker" example:"AAPL"`
	Period string                `json:"period" example:"2015-2024"`
	Years  []models.YearlyReturn `json:"years"`
}

// HeadToHeadResponse is returned by GET /api/v1/head-to-head.
type HeadToHeadResponse struct {
	Period string            `json:"period" example:"2015-2024"`
	Leader string            `json:"leader,omitempty" example:"AAPL"`
	Board  models.Scoreboard `json:"scoreboard"`
}

// PresetsResponse is returned by GET /api/v1/presets.
type PresetsResponse struct {
	Top10   []string `json:"top10"`
	Indices []string `json:"indices"`
}
