// Package compare orchestrates the two-ticker analysis pipeline:
// load → align → measure → project → judge.
package compare

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobmcallan/stockcompare/internal/analysis"
	"github.com/bobmcallan/stockcompare/internal/common"
	"github.com/bobmcallan/stockcompare/internal/currency"
	"github.com/bobmcallan/stockcompare/internal/interfaces"
	"github.com/bobmcallan/stockcompare/internal/marketdata"
	"github.com/bobmcallan/stockcompare/internal/models"
)

// ErrNoData is returned when either ticker's series, or the date-aligned
// intersection of the two, is empty. It is the only recoverable error: the
// boundary shows a single fixed message and renders nothing else.
var ErrNoData = errors.New("invalid ticker(s) or no data found")

// Service implements CompareService.
type Service struct {
	loader *marketdata.Loader
	logger *common.Logger
}

// NewService creates a new comparison service.
func NewService(loader *marketdata.Loader, logger *common.Logger) *Service {
	return &Service{
		loader: loader,
		logger: logger,
	}
}

// Compare runs the full pipeline for one request. Everything is sequential
// and recomputed per run (subject to the loader's series memoization); a
// failure for either ticker aborts the whole comparison — one ticker's
// results are never shown alone.
func (s *Service) Compare(ctx context.Context, req interfaces.CompareRequest) (*models.ComparisonReport, error) {
	if req.Ticker1 == "" || req.Ticker2 == "" {
		return nil, fmt.Errorf("both tickers are required")
	}
	if !req.To.After(req.From) {
		return nil, fmt.Errorf("date range is empty: from %s to %s",
			req.From.Format("2006-01-02"), req.To.Format("2006-01-02"))
	}
	conv, ok := currency.Multiplier(req.Currency)
	if !ok {
		return nil, fmt.Errorf("unsupported currency %q", req.Currency)
	}

	series1, err := s.loader.LoadSeries(ctx, req.Ticker1, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", req.Ticker1, err)
	}
	series2, err := s.loader.LoadSeries(ctx, req.Ticker2, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", req.Ticker2, err)
	}

	if len(series1) == 0 || len(series2) == 0 {
		s.logger.Info().
			Str("ticker1", req.Ticker1).Int("bars1", len(series1)).
			Str("ticker2", req.Ticker2).Int("bars2", len(series2)).
			Msg("Empty price series")
		return nil, ErrNoData
	}

	profile1, err := s.loader.LoadProfile(ctx, req.Ticker1)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", req.Ticker1, err)
	}
	profile2, err := s.loader.LoadProfile(ctx, req.Ticker2)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", req.Ticker2, err)
	}

	// Inner join on date — only days both tickers traded survive.
	merged := alignSeries(series1, series2)
	if len(merged) < 2 {
		s.logger.Info().Int("merged", len(merged)).Msg("Date intersection too small")
		return nil, ErrNoData
	}

	// Metrics run over the aligned columns; the projection runs over each
	// ticker's full series, matching the original analysis.
	aligned1, aligned2 := splitMerged(merged)
	metrics1 := analysis.ComputeMetrics(aligned1)
	metrics2 := analysis.ComputeMetrics(aligned2)
	projected1 := analysis.ProjectPrice(series1)
	projected2 := analysis.ProjectPrice(series2)

	report := &models.ComparisonReport{
		Ticker1: models.TickerReport{
			Ticker:         req.Ticker1,
			Profile:        convertProfile(*profile1, req.Currency),
			Metrics:        convertMetrics(metrics1, req.Currency),
			ProjectedPrice: currency.Convert(projected1, req.Currency),
		},
		Ticker2: models.TickerReport{
			Ticker:         req.Ticker2,
			Profile:        convertProfile(*profile2, req.Currency),
			Metrics:        convertMetrics(metrics2, req.Currency),
			ProjectedPrice: currency.Convert(projected2, req.Currency),
		},
		Merged:     merged,
		Currency:   req.Currency,
		Multiplier: conv,
		From:       req.From,
		To:         req.To,
	}

	// Verdicts and summary judge the raw-currency figures; the single
	// multiplier scales both sides equally so the calls are unaffected.
	report.Verdicts = buildVerdicts(req.Ticker1, req.Ticker2, metrics1, metrics2, profile1, profile2)
	report.Summary = buildSummary(profile1, profile2, metrics1, metrics2)

	s.logger.Debug().
		Str("ticker1", req.Ticker1).
		Str("ticker2", req.Ticker2).
		Int("merged", len(merged)).
		Str("currency", req.Currency).
		Msg("Comparison complete")

	return report, nil
}

// alignSeries inner-joins two date-sorted series. Both inputs are sorted
// ascending, so a two-pointer sweep suffices.
func alignSeries(a, b models.PriceSeries) []models.MergedPoint {
	merged := make([]models.MergedPoint, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		da, db := a[i].Date, b[j].Date
		switch {
		case da.Before(db):
			i++
		case db.Before(da):
			j++
		default:
			merged = append(merged, models.MergedPoint{Date: da, Close1: a[i].Close, Close2: b[j].Close})
			i++
			j++
		}
	}
	return merged
}

// splitMerged turns the joined rows back into two aligned series.
func splitMerged(merged []models.MergedPoint) (models.PriceSeries, models.PriceSeries) {
	s1 := make(models.PriceSeries, len(merged))
	s2 := make(models.PriceSeries, len(merged))
	for i, m := range merged {
		s1[i] = models.PricePoint{Date: m.Date, Close: m.Close1}
		s2[i] = models.PricePoint{Date: m.Date, Close: m.Close2}
	}
	return s1, s2
}

// convertProfile applies the display-currency multiplier to the monetary
// profile fields. P/E is dimensionless and never converted.
func convertProfile(p models.CompanyProfile, code string) models.CompanyProfile {
	p.MarketCap = currency.Convert(p.MarketCap, code)
	p.GrossProfit = currency.Convert(p.GrossProfit, code)
	p.TotalRevenue = currency.Convert(p.TotalRevenue, code)
	return p
}

// convertMetrics applies the multiplier to the one monetary metric.
// Percentages are currency-independent.
func convertMetrics(m models.MetricsResult, code string) models.MetricsResult {
	m.AveragePrice = currency.Convert(m.AveragePrice, code)
	return m
}

// Ensure Service implements CompareService
var _ interfaces.CompareService = (*Service)(nil)
