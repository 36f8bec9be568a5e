// Package models defines data structures for the stock comparison service
package models

import (
	"time"
)

// EODBar represents a single day's price data as returned by the provider
type EODBar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adjusted_close"`
	Volume   int64     `json:"volume"`
}

// EODResponse represents the provider's EOD API response
type EODResponse struct {
	Data []EODBar `json:"data"`
}

// PricePoint is one observation in a normalized price series: the canonical
// close for a trading day (adjusted close when the provider supplies one).
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ordered sequence of daily closes for one ticker,
// dates strictly increasing. Rows with a missing price are dropped at
// load time, never interpolated.
type PriceSeries []PricePoint

// Closes returns the close column of the series.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}

// First returns the earliest observation. Call only on non-empty series.
func (s PriceSeries) First() PricePoint { return s[0] }

// Last returns the latest observation. Call only on non-empty series.
func (s PriceSeries) Last() PricePoint { return s[len(s)-1] }

// CompanyProfile holds point-in-time fundamentals for one ticker.
// Absent provider fields are substituted with empty strings / zeros at
// the client boundary, so every field is always defined.
type CompanyProfile struct {
	Ticker       string  `json:"ticker"`
	Name         string  `json:"name"`
	Sector       string  `json:"sector"`
	MarketCap    float64 `json:"market_cap"`
	PERatio      float64 `json:"pe_ratio"`
	GrossProfit  float64 `json:"gross_profit"`
	TotalRevenue float64 `json:"total_revenue"`
}

// DisplayName returns the company name, falling back to the ticker when
// the provider did not supply one.
func (p *CompanyProfile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Ticker
}
