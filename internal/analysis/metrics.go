// Package analysis computes descriptive statistics and the naive trend
// projection over a price series.
package analysis

import (
	"math"

	"github.com/bobmcallan/stockcompare/internal/models"
)

// ComputeMetrics derives average price, cumulative return and volatility
// from a price series. Values are unrounded; display rounding is the
// caller's concern.
//
// Volatility is the sample standard deviation of daily percentage changes,
// expressed as a percentage. With fewer than 2 observations there is no
// defined daily change and volatility is 0 — callers reject such series
// as no-data before metrics run, so the 0 is a defensive definition.
func ComputeMetrics(series models.PriceSeries) models.MetricsResult {
	if len(series) == 0 {
		return models.MetricsResult{}
	}

	closes := series.Closes()

	sum := 0.0
	for _, c := range closes {
		sum += c
	}
	avg := sum / float64(len(closes))

	first := closes[0]
	last := closes[len(closes)-1]
	totalReturn := 0.0
	if first != 0 {
		totalReturn = (last - first) / first * 100
	}

	return models.MetricsResult{
		AveragePrice:   avg,
		TotalReturnPct: totalReturn,
		VolatilityPct:  volatility(closes) * 100,
	}
}

// volatility returns the sample standard deviation of the daily percentage
// change sequence. The first observation has no defined change and is
// excluded.
func volatility(closes []float64) float64 {
	if len(closes) < 2 {
		return 0
	}

	changes := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 {
			continue
		}
		changes = append(changes, (closes[i]-prev)/prev)
	}
	if len(changes) < 2 {
		return 0
	}

	mean := 0.0
	for _, c := range changes {
		mean += c
	}
	mean /= float64(len(changes))

	var ss float64
	for _, c := range changes {
		d := c - mean
		ss += d * d
	}

	// Sample (n-1) standard deviation
	return math.Sqrt(ss / float64(len(changes)-1))
}
