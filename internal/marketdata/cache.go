package marketdata

import (
	"fmt"
	"sync"
	"time"

	"github.com/bobmcallan/stockcompare/internal/models"
)

// SeriesCache memoizes loaded price series per exact (ticker, from, to)
// request for the lifetime of the process. Historical bars for a closed
// date range are immutable, so entries are written once and never evicted.
// The mutex only guards the map itself; cached series must not be mutated
// by callers.
type SeriesCache struct {
	mu      sync.RWMutex
	entries map[string]models.PriceSeries
}

// NewSeriesCache creates an empty cache.
func NewSeriesCache() *SeriesCache {
	return &SeriesCache{
		entries: make(map[string]models.PriceSeries),
	}
}

func cacheKey(ticker string, from, to time.Time) string {
	return fmt.Sprintf("%s|%s|%s", ticker, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

// Get returns the cached series for the key, if present.
func (c *SeriesCache) Get(ticker string, from, to time.Time) (models.PriceSeries, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.entries[cacheKey(ticker, from, to)]
	return s, ok
}

// Put stores a series. Re-fetching the same key produces the same value,
// so concurrent writers overwriting each other is harmless.
func (c *SeriesCache) Put(ticker string, from, to time.Time, series models.PriceSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(ticker, from, to)] = series
}

// Len returns the number of cached entries.
func (c *SeriesCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
