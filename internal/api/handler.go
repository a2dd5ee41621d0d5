package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tickerpulse/internal/charts"
	"github.com/guttosm/tickerpulse/internal/domain/dto"
	"github.com/guttosm/tickerpulse/internal/domain/models"
	"github.com/guttosm/tickerpulse/internal/middleware"
	"github.com/guttosm/tickerpulse/internal/presets"
	"github.com/guttosm/tickerpulse/internal/report"
	"github.com/guttosm/tickerpulse/internal/service"
)

// Handler provides the dashboard's HTTP endpoints.
//
// Responsibilities:
//   - Parse query parameters into service requests
//   - Map service errors onto status codes (400 validation, 404 no data, 500 otherwise)
//   - Translate service results into response DTOs, PNG charts or HTML
type Handler struct {
	svc    service.DashboardService
	charts *charts.Renderer
}

// NewHandler constructs a Handler.
func NewHandler(svc service.DashboardService, renderer *charts.Renderer) *Handler {
	return &Handler{svc: svc, charts: renderer}
}

// GetPresets godoc
// @Summary      Preset ticker lists
// @Description  Returns the Top 10 and Indices dataset lists
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.PresetsResponse
// @Router       /api/v1/presets [get]
func (h *Handler) GetPresets(c *gin.Context) {
	p := h.svc.Presets()
	c.JSON(http.StatusOK, dto.PresetsResponse{Top10: p.Top10.Tickers, Indices: p.Indices.Tickers})
}

// GetCompare godoc
// @Summary      Compare tickers
// @Description  Cumulative return and investment value per ticker, best first. Tickers without data are reported as warnings.
// @Tags         dashboard
// @Produce      json
// @Param        mode        query     string  false  "custom | top10 | indices" example(custom)
// @Param        tickers     query     string  false  "Comma separated tickers; for preset modes a subset of the preset" example(AAPL,MSFT,TSLA)
// @Param        year        query     int     false  "Single year (default 2020)" example(2020)
// @Param        start_year  query     int     false  "Range start year" example(2015)
// @Param        end_year    query     int     false  "Range end year" example(2024)
// @Param        investment  query     number  false  "Initial investment 10..1000000 (default 100)" example(100)
// @Success      200  {object}  dto.CompareResponse
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/compare [get]
func (h *Handler) GetCompare(c *gin.Context) {
	out, ok := h.compare(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.CompareResponse{
		Mode:       string(out.Mode),
		Period:     out.Period.String(),
		Investment: out.Investment,
		ValueLabel: report.ValueHeader(out.Investment),
		Tickers:    out.Tickers,
		Rows:       out.Rows,
		Warnings:   out.Warnings,
	})
}

// GetYearly godoc
// @Summary      Yearly returns
// @Description  First-to-last close return for each calendar year of the period
// @Tags         dashboard
// @Produce      json
// @Param        ticker      query     string  true   "Ticker" example(AAPL)
// @Param        year        query     int     false  "Single year" example(2020)
// @Param        start_year  query     int     false  "Range start year" example(2015)
// @Param        end_year    query     int     false  "Range end year" example(2024)
// @Success      200  {object}  dto.YearlyResponse
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/yearly [get]
func (h *Handler) GetYearly(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Query("ticker")))
	if ticker == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "ticker is required", nil)
		return
	}
	period, ok := h.period(c)
	if !ok {
		return
	}
	years, err := h.svc.Yearly(c.Request.Context(), ticker, period)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.YearlyResponse{Ticker: ticker, Period: period.String(), Years: years})
}

// GetHeadToHead godoc
// @Summary      Head-to-head scoreboard
// @Description  Yearly wins, losses and ties between two tickers over the years both have data
// @Tags         dashboard
// @Produce      json
// @Param        a           query     string  true   "First ticker" example(AAPL)
// @Param        b           query     string  true   "Second ticker" example(MSFT)
// @Param        year        query     int     false  "Single year" example(2020)
// @Param        start_year  query     int     false  "Range start year" example(2015)
// @Param        end_year    query     int     false  "Range end year" example(2024)
// @Success      200  {object}  dto.HeadToHeadResponse
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/head-to-head [get]
func (h *Handler) GetHeadToHead(c *gin.Context) {
	board, period, ok := h.headToHead(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.HeadToHeadResponse{Period: period.String(), Leader: board.Leader(), Board: board})
}

// GetClosingChart godoc
// @Summary      Closing price chart
// @Description  PNG line chart of closing prices; accepts the compare parameters
// @Tags         charts
// @Produce      png
// @Param        mode        query     string  false  "custom | top10 | indices"
// @Param        tickers     query     string  false  "Comma separated tickers"
// @Param        year        query     int     false  "Single year"
// @Param        start_year  query     int     false  "Range start year"
// @Param        end_year    query     int     false  "Range end year"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/charts/closing.png [get]
func (h *Handler) GetClosingChart(c *gin.Context) {
	out, ok := h.compare(c)
	if !ok {
		return
	}
	png(c, func() ([]byte, error) { return h.charts.Closing(out.Series, out.Period) })
}

// GetNormalizedChart godoc
// @Summary      Normalized price chart
// @Description  PNG line chart of prices rebased to 100; accepts the compare parameters
// @Tags         charts
// @Produce      png
// @Param        mode        query     string  false  "custom | top10 | indices"
// @Param        tickers     query     string  false  "Comma separated tickers"
// @Param        year        query     int     false  "Single year"
// @Param        start_year  query     int     false  "Range start year"
// @Param        end_year    query     int     false  "Range end year"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/charts/normalized.png [get]
func (h *Handler) GetNormalizedChart(c *gin.Context) {
	out, ok := h.compare(c)
	if !ok {
		return
	}
	png(c, func() ([]byte, error) { return h.charts.Normalized(out.Series, out.Period) })
}

// GetHeadToHeadChart godoc
// @Summary      Head-to-head chart
// @Description  PNG bar chart of both tickers' yearly returns
// @Tags         charts
// @Produce      png
// @Param        a           query     string  true   "First ticker"
// @Param        b           query     string  true   "Second ticker"
// @Param        start_year  query     int     false  "Range start year"
// @Param        end_year    query     int     false  "Range end year"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/charts/head-to-head.png [get]
func (h *Handler) GetHeadToHeadChart(c *gin.Context) {
	board, period, ok := h.headToHead(c)
	if !ok {
		return
	}
	png(c, func() ([]byte, error) { return h.charts.HeadToHead(board, period) })
}

func (h *Handler) compare(c *gin.Context) (*service.Comparison, bool) {
	req, err := compareRequest(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return nil, false
	}
	out, err := h.svc.Compare(c.Request.Context(), req)
	if err != nil {
		abortServiceError(c, err)
		return nil, false
	}
	return out, true
}

func (h *Handler) headToHead(c *gin.Context) (models.Scoreboard, models.Period, bool) {
	a, b := c.Query("a"), c.Query("b")
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "a and b are required", nil)
		return models.Scoreboard{}, models.Period{}, false
	}
	period, ok := h.period(c)
	if !ok {
		return models.Scoreboard{}, models.Period{}, false
	}
	board, err := h.svc.HeadToHead(c.Request.Context(), a, b, period)
	if err != nil {
		abortServiceError(c, err)
		return models.Scoreboard{}, models.Period{}, false
	}
	return board, period, true
}

func (h *Handler) period(c *gin.Context) (models.Period, bool) {
	in, err := periodInput(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return models.Period{}, false
	}
	period, err := h.svc.Period(in)
	if err != nil {
		abortServiceError(c, err)
		return models.Period{}, false
	}
	return period, true
}

// compareRequest reads mode, tickers, period and investment parameters. An
// absent tickers parameter selects the mode's defaults; a present but empty
// one is kept empty so that the service rejects it.
func compareRequest(c *gin.Context) (service.CompareRequest, error) {
	req := service.CompareRequest{Mode: c.Query("mode")}
	if text, given := c.GetQuery("tickers"); given {
		req.Selected = presets.ParseTickers(text)
	}
	in, err := periodInput(c)
	if err != nil {
		return req, err
	}
	req.Period = in
	if s := strings.TrimSpace(c.Query("investment")); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return req, errors.New("investment must be a number")
		}
		req.Investment = v
	}
	return req, nil
}

func periodInput(c *gin.Context) (service.PeriodInput, error) {
	var in service.PeriodInput
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"year", &in.Year},
		{"start_year", &in.StartYear},
		{"end_year", &in.EndYear},
	} {
		s := strings.TrimSpace(c.Query(f.name))
		if s == "" {
			continue
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return in, errors.New(f.name + " must be an integer year")
		}
		*f.dst = v
	}
	return in, nil
}

func abortServiceError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		middleware.AbortWithError(c, http.StatusBadRequest, validationMessage(err), err)
	case errors.Is(err, service.ErrNoData):
		middleware.AbortWithError(c, http.StatusNotFound, "no data found", err)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to fetch prices", err)
	}
}

func validationMessage(err error) string {
	if errors.Is(err, service.ErrNoTickers) {
		return service.ErrNoTickers.Error()
	}
	return "invalid query parameters"
}

func png(c *gin.Context, render func() ([]byte, error)) {
	b, err := render()
	if err != nil {
		if errors.Is(err, charts.ErrNotEnoughData) {
			middleware.AbortWithError(c, http.StatusNotFound, "not enough data to chart", err)
			return
		}
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to render chart", err)
		return
	}
	c.Header("Cache-Control", "public, max-age=300")
	c.Data(http.StatusOK, "image/png", b)
}
