package compare

import (
	"fmt"

	"github.com/bobmcallan/stockcompare/internal/models"
)

// Metric labels used in verdicts and the dashboard banners.
const (
	MetricTotalReturn = "Total Return"
	MetricVolatility  = "Volatility"
	MetricMarketCap   = "Market Cap"
	MetricPERatio     = "P/E Ratio"
	MetricRevenue     = "Revenue"
)

// buildVerdicts produces the five head-to-head calls. Ticker1 wins on a
// strict comparison only; a tie therefore falls to ticker2. That is the
// documented tie policy, not an accident — callers and tests rely on it.
//
// Unrounded metric values are compared so display rounding can never
// manufacture or break a tie.
func buildVerdicts(ticker1, ticker2 string, m1, m2 models.MetricsResult, p1, p2 *models.CompanyProfile) []models.Verdict {
	pick := func(ticker1Wins bool) string {
		if ticker1Wins {
			return ticker1
		}
		return ticker2
	}

	return []models.Verdict{
		{Metric: MetricTotalReturn, Winner: pick(m1.TotalReturnPct > m2.TotalReturnPct)},
		{Metric: MetricVolatility, Winner: pick(m1.VolatilityPct < m2.VolatilityPct)}, // lower is better
		{Metric: MetricMarketCap, Winner: pick(p1.MarketCap > p2.MarketCap)},
		{Metric: MetricPERatio, Winner: pick(p1.PERatio < p2.PERatio)}, // lower is better
		{Metric: MetricRevenue, Winner: pick(p1.TotalRevenue > p2.TotalRevenue)},
	}
}

// buildSummary substitutes the winner determinations into a fixed
// template. Volatility is deliberately not mentioned; the overall call is
// the total-return winner. No free-form language generation.
func buildSummary(p1, p2 *models.CompanyProfile, m1, m2 models.MetricsResult) string {
	pick := func(ticker1Wins bool) string {
		if ticker1Wins {
			return p1.Ticker
		}
		return p2.Ticker
	}

	returnWinner := pick(m1.TotalReturnPct > m2.TotalReturnPct)
	capWinner := pick(p1.MarketCap > p2.MarketCap)
	peWinner := pick(p1.PERatio < p2.PERatio)
	revenueWinner := pick(p1.TotalRevenue > p2.TotalRevenue)

	return fmt.Sprintf(
		"Between %s (%s) and %s (%s), %s shows stronger stock performance with higher overall returns. "+
			"%s leads in market capitalization, while %s offers a better valuation (lower P/E ratio). "+
			"In terms of revenue, %s dominates, making it a more financially robust company. "+
			"Overall, %s emerges as the stronger investment candidate.",
		p1.DisplayName(), p1.Ticker,
		p2.DisplayName(), p2.Ticker,
		returnWinner,
		capWinner,
		peWinner,
		revenueWinner,
		returnWinner,
	)
}
