// Package marketdata loads and normalizes price series and company
// profiles from the external market data provider.
package marketdata

import (
	"context"
	"sort"
	"time"

	"github.com/bobmcallan/stockcompare/internal/common"
	"github.com/bobmcallan/stockcompare/internal/interfaces"
	"github.com/bobmcallan/stockcompare/internal/models"
)

// Loader retrieves daily price series and fundamentals for a ticker.
// Price series are memoized in an injected SeriesCache; profiles are
// fetched fresh on every call.
type Loader struct {
	client interfaces.MarketDataClient
	cache  *SeriesCache
	logger *common.Logger
}

// NewLoader creates a loader. cache may not be nil.
func NewLoader(client interfaces.MarketDataClient, cache *SeriesCache, logger *common.Logger) *Loader {
	return &Loader{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// LoadSeries retrieves the daily close series for ticker in [from, to].
// An unknown ticker or a range with no bars yields an empty series, not an
// error; callers must check emptiness before computing anything. Provider
// transport failures are returned as errors.
//
// Normalization: the adjusted close is the canonical price when the
// provider supplies one, otherwise the raw close. Bars where the selected
// price is missing are dropped, never interpolated.
func (l *Loader) LoadSeries(ctx context.Context, ticker string, from, to time.Time) (models.PriceSeries, error) {
	if cached, ok := l.cache.Get(ticker, from, to); ok {
		l.logger.Debug().Str("ticker", ticker).Msg("Price series cache hit")
		return cached, nil
	}

	resp, err := l.client.GetEOD(ctx, ticker, interfaces.WithDateRange(from, to))
	if err != nil {
		return nil, err
	}

	series := normalizeSeries(resp.Data)

	l.logger.Debug().
		Str("ticker", ticker).
		Int("bars", len(resp.Data)).
		Int("kept", len(series)).
		Msg("Loaded price series")

	l.cache.Put(ticker, from, to, series)
	return series, nil
}

// LoadProfile retrieves point-in-time fundamentals for ticker. The result
// is always fully populated; absent provider fields arrive as empty
// strings / zeros from the client boundary. Profiles are not cached —
// fundamentals can change intraday.
func (l *Loader) LoadProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error) {
	profile, err := l.client.GetFundamentals(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// normalizeSeries selects the canonical close per bar, drops bars with a
// missing price, and sorts by strictly increasing date.
func normalizeSeries(bars []models.EODBar) models.PriceSeries {
	series := make(models.PriceSeries, 0, len(bars))
	for _, bar := range bars {
		close := bar.AdjClose
		if close <= 0 {
			close = bar.Close
		}
		if close <= 0 || bar.Date.IsZero() {
			continue // missing price — drop the row
		}
		series = append(series, models.PricePoint{Date: bar.Date, Close: close})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	return series
}
