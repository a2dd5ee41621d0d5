// Package report formats comparison results as markdown for the terminal and
// as currency strings for the dashboard.
package report

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/guttosm/tickerpulse/internal/domain/models"
	"github.com/guttosm/tickerpulse/internal/service"
)

// USD formats an amount as US dollars, e.g. "$1,234.56".
func USD(amount float64) string {
	cur := money.GetCurrency(money.USD)
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	minor := decimal.NewFromFloat(amount).Mul(factor).Round(0)
	return money.New(minor.IntPart(), money.USD).Display()
}

// ValueHeader is the investment column title, e.g. "Value of $100".
func ValueHeader(investment float64) string {
	return "Value of " + strings.TrimSuffix(USD(investment), ".00")
}

// Markdown renders the performance table of a comparison, its warnings and,
// when board is non-nil, the head-to-head scoreboard.
func Markdown(c *service.Comparison, board *models.Scoreboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Performance %s\n\n", c.Period.String())
	fmt.Fprintf(&b, "Dataset: **%s** • Tickers: %s\n\n", c.Mode, strings.Join(c.Tickers, ", "))

	fmt.Fprintf(&b, "| # | Ticker | Return %% | %s | Start | End |\n", ValueHeader(c.Investment))
	b.WriteString("|---|---|---:|---:|---|---|\n")
	for i, r := range c.Rows {
		fmt.Fprintf(&b, "| %d | %s | %.2f | %s | %s | %s |\n",
			i+1, r.Ticker, r.ReturnPct, USD(r.FinalValue),
			r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"))
	}

	if len(c.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range c.Warnings {
			fmt.Fprintf(&b, "> ⚠ %s\n", w)
		}
	}

	if board != nil {
		b.WriteString("\n")
		b.WriteString(ScoreboardMarkdown(*board))
	}
	return b.String()
}

// ScoreboardMarkdown renders a head-to-head table with a totals line.
func ScoreboardMarkdown(board models.Scoreboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s vs %s\n\n", board.A, board.B)
	fmt.Fprintf(&b, "| Year | %s | %s | Winner |\n", board.A, board.B)
	b.WriteString("|---|---:|---:|---|\n")
	for _, y := range board.Years {
		winner := y.Winner
		if winner == "" {
			winner = "tie"
		}
		fmt.Fprintf(&b, "| %d | %.2f | %.2f | %s |\n", y.Year, y.ReturnA, y.ReturnB, winner)
	}
	fmt.Fprintf(&b, "\n**%s %d – %d %s** (%d ties)", board.A, board.WinsA, board.WinsB, board.B, board.Ties)
	if l := board.Leader(); l != "" {
		fmt.Fprintf(&b, " • leader: %s", l)
	}
	b.WriteString("\n")
	return b.String()
}

// Render turns markdown into styled terminal output. style is a glamour
// standard style such as "dark", "light" or "notty".
func Render(md, style string) (string, error) {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return "", fmt.Errorf("terminal renderer: %w", err)
	}
	return r.Render(md)
}
