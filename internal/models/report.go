package models

import (
	"time"
)

// MetricsResult holds descriptive statistics for one price series.
// Values are unrounded; rounding to 2 decimal places happens only at
// display time so that verdict comparisons never see rounding-tie
// artifacts.
type MetricsResult struct {
	AveragePrice   float64 `json:"average_price"`
	TotalReturnPct float64 `json:"total_return_pct"`
	VolatilityPct  float64 `json:"volatility_pct"`
}

// MergedPoint is one date present in both series after the inner join.
type MergedPoint struct {
	Date   time.Time `json:"date"`
	Close1 float64   `json:"close1"`
	Close2 float64   `json:"close2"`
}

// Verdict is one head-to-head call: which ticker leads for a metric.
type Verdict struct {
	Metric string `json:"metric"`
	Winner string `json:"winner"`
}

// TickerReport aggregates one side of the comparison.
// Monetary figures (AveragePrice, ProjectedPrice and the profile's
// MarketCap/GrossProfit/TotalRevenue) are already converted into the
// report currency; PERatio is dimensionless and never converted.
type TickerReport struct {
	Ticker         string         `json:"ticker"`
	Profile        CompanyProfile `json:"profile"`
	Metrics        MetricsResult  `json:"metrics"`
	ProjectedPrice float64        `json:"projected_price"`
}

// ComparisonReport is the full output of one analysis run. It exists for
// the duration of a single request and is never shared across runs.
type ComparisonReport struct {
	Ticker1    TickerReport  `json:"ticker1"`
	Ticker2    TickerReport  `json:"ticker2"`
	Merged     []MergedPoint `json:"merged"`
	Verdicts   []Verdict     `json:"verdicts"`
	Summary    string        `json:"summary"`
	Currency   string        `json:"currency"`
	Multiplier float64       `json:"multiplier"`
	From       time.Time     `json:"from"`
	To         time.Time     `json:"to"`
}
