package analysis

import (
	"github.com/bobmcallan/stockcompare/internal/models"
)

// ProjectionHorizon is how many trading days past the last observation the
// trend line is evaluated at.
const ProjectionHorizon = 7

// ProjectPrice fits an ordinary-least-squares line of close price against
// the 0-based trading-day index and evaluates it 7 steps past the last
// observed index. This is a naive linear extrapolation, not a time-series
// forecast: no confidence interval, no residual diagnostics, calendar gaps
// are not represented.
//
// With fewer than 2 observations the regression is degenerate and the last
// known price is returned (0 for an empty series).
func ProjectPrice(series models.PriceSeries) float64 {
	n := len(series)
	if n == 0 {
		return 0
	}
	if n < 2 {
		return series.Last().Close
	}

	// Fit close ≈ a + b·index by least squares.
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range series {
		x := float64(i)
		sumX += x
		sumY += p.Close
		sumXY += x * p.Close
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return series.Last().Close
	}

	b := (fn*sumXY - sumX*sumY) / denom
	a := (sumY - b*sumX) / fn

	// Index len(series)+6 is 7 steps past the last observed index.
	futureX := float64(n + ProjectionHorizon - 1)
	return a + b*futureX
}
