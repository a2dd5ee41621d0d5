package api

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tickerpulse/internal/logger"
	"github.com/guttosm/tickerpulse/internal/presets"
	"github.com/guttosm/tickerpulse/internal/report"
	"github.com/guttosm/tickerpulse/internal/service"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTmpl = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"join": strings.Join,
	"usd":  report.USD,
}).ParseFS(templatesFS, "templates/dashboard.html"))

// dashboardForm holds the widget values echoed back into the form.
type dashboardForm struct {
	Mode       string
	Tickers    string
	PeriodMode string
	Year       int
	StartYear  int
	EndYear    int
	Investment float64
}

type dashboardView struct {
	Form       dashboardForm
	Presets    *presets.Presets
	MinYear    int
	MaxYear    int
	Result     *service.Comparison
	Warnings   []string
	Error      string
	ValueLabel string
	ChartQuery template.URL
}

// Dashboard serves GET /: the HTML form with the closing and normalized
// charts and the performance table for the submitted widget values.
func (h *Handler) Dashboard(c *gin.Context) {
	p := h.svc.Presets()
	form := dashboardForm{
		Mode:       c.DefaultQuery("mode", string(presets.ModeCustom)),
		PeriodMode: c.DefaultQuery("period", "single"),
		Year:       atoiOr(c.Query("year"), service.DefaultYear),
		StartYear:  atoiOr(c.Query("start_year"), service.DefaultStartYear),
		EndYear:    atoiOr(c.Query("end_year"), service.DefaultEndYear),
		Investment: h.svc.DefaultInvestment(),
	}
	if v, err := strconv.ParseFloat(c.Query("investment"), 64); err == nil {
		form.Investment = v
	}

	mode, err := presets.ParseMode(form.Mode)
	if err != nil {
		mode = presets.ModeCustom
	}
	form.Mode = string(mode)
	text, given := c.GetQuery("tickers")
	if !given {
		switch mode {
		case presets.ModeTop10:
			text = strings.Join(p.Top10.Default, ", ")
		case presets.ModeIndices:
			text = strings.Join(p.Indices.Default, ", ")
		default:
			text = strings.Join(p.Custom.Default, ", ")
		}
	}
	form.Tickers = text

	req := service.CompareRequest{
		Mode:       form.Mode,
		Selected:   presets.ParseTickers(text),
		Investment: form.Investment,
	}
	if form.PeriodMode == "range" {
		req.Period = service.PeriodInput{StartYear: form.StartYear, EndYear: form.EndYear}
	} else {
		form.PeriodMode = "single"
		req.Period = service.PeriodInput{Year: form.Year}
	}

	minYear, maxYear := h.svc.YearBounds()
	view := dashboardView{Form: form, Presets: p, MinYear: minYear, MaxYear: maxYear}

	status := http.StatusOK
	out, err := h.svc.Compare(c.Request.Context(), req)
	switch {
	case err == nil:
		view.Result = out
		view.Warnings = out.Warnings
		view.ValueLabel = report.ValueHeader(out.Investment)
		view.ChartQuery = template.URL(chartQuery(out).Encode())
	case service.IsValidation(err):
		status = http.StatusBadRequest
		view.Error = err.Error()
	case errors.Is(err, service.ErrNoData):
		status = http.StatusNotFound
		view.Error = err.Error()
	default:
		status = http.StatusInternalServerError
		view.Error = "failed to fetch prices"
		_ = c.Error(err)
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, view); err != nil {
		lg := logger.Component("api")
		lg.Error().Err(err).Msg("dashboard template failed")
		c.String(http.StatusInternalServerError, "template error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// chartQuery rebuilds the compare parameters for the chart images from the
// resolved comparison so they hit the same cache entries.
func chartQuery(out *service.Comparison) url.Values {
	tickers := make([]string, len(out.Series))
	for i, s := range out.Series {
		tickers[i] = s.Ticker
	}
	q := url.Values{}
	q.Set("mode", string(out.Mode))
	q.Set("tickers", strings.Join(tickers, ","))
	q.Set("start_year", fmt.Sprint(out.Period.Start.Year()))
	q.Set("end_year", fmt.Sprint(out.Period.End.Year()))
	q.Set("investment", strconv.FormatFloat(out.Investment, 'f', -1, 64))
	return q
}

func atoiOr(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return v
	}
	return def
}
