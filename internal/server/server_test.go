package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/stockcompare/internal/app"
	"github.com/bobmcallan/stockcompare/internal/common"
	"github.com/bobmcallan/stockcompare/internal/interfaces"
	"github.com/bobmcallan/stockcompare/internal/models"
	"github.com/bobmcallan/stockcompare/internal/services/compare"
)

// fakeCompareService records the last request and returns a canned report
// or error.
type fakeCompareService struct {
	lastReq interfaces.CompareRequest
	report  *models.ComparisonReport
	err     error
}

func (f *fakeCompareService) Compare(ctx context.Context, req interfaces.CompareRequest) (*models.ComparisonReport, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

var _ interfaces.CompareService = (*fakeCompareService)(nil)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func sampleReport() *models.ComparisonReport {
	return &models.ComparisonReport{
		Ticker1: models.TickerReport{
			Ticker:         "AAPL",
			Profile:        models.CompanyProfile{Ticker: "AAPL", Name: "Apple Inc", Sector: "Technology", MarketCap: 3.4e12, PERatio: 35.2, GrossProfit: 1.7e11, TotalRevenue: 3.85e11},
			Metrics:        models.MetricsResult{AveragePrice: 190.123, TotalReturnPct: 12.5, VolatilityPct: 1.234},
			ProjectedPrice: 205.678,
		},
		Ticker2: models.TickerReport{
			Ticker:         "MSFT",
			Profile:        models.CompanyProfile{Ticker: "MSFT", Name: "Microsoft Corp", Sector: "Technology", MarketCap: 3.1e12, PERatio: 32.1, GrossProfit: 1.5e11, TotalRevenue: 2.45e11},
			Metrics:        models.MetricsResult{AveragePrice: 410.5, TotalReturnPct: 10.0, VolatilityPct: 1.1},
			ProjectedPrice: 420.0,
		},
		Merged: []models.MergedPoint{
			{Date: day(2), Close1: 185, Close2: 400},
			{Date: day(3), Close1: 190, Close2: 405},
			{Date: day(4), Close1: 195, Close2: 410},
		},
		Verdicts: []models.Verdict{
			{Metric: compare.MetricTotalReturn, Winner: "AAPL"},
			{Metric: compare.MetricVolatility, Winner: "MSFT"},
			{Metric: compare.MetricMarketCap, Winner: "AAPL"},
			{Metric: compare.MetricPERatio, Winner: "MSFT"},
			{Metric: compare.MetricRevenue, Winner: "AAPL"},
		},
		Summary:    "Overall, AAPL emerges as the stronger investment candidate.",
		Currency:   "USD",
		Multiplier: 1.0,
		From:       day(1),
		To:         day(31),
	}
}

func newTestServer(fake *fakeCompareService) http.Handler {
	a := &app.App{
		Config:         common.NewDefaultConfig(),
		Logger:         common.NewSilentLogger(),
		CompareService: fake,
	}
	return NewServer(a).Handler()
}

func doRequest(t *testing.T, handler http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestServer(&fakeCompareService{report: sampleReport()})

	rec := doRequest(t, handler, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestVersionEndpoint(t *testing.T) {
	handler := newTestServer(&fakeCompareService{report: sampleReport()})

	rec := doRequest(t, handler, http.MethodGet, "/api/version")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "version")
	assert.Contains(t, body, "build")
}

func TestCompareDefaults(t *testing.T) {
	fake := &fakeCompareService{report: sampleReport()}
	handler := newTestServer(fake)

	rec := doRequest(t, handler, http.MethodGet, "/api/compare")
	require.Equal(t, http.StatusOK, rec.Code)

	// Configured defaults fill in the missing parameters.
	assert.Equal(t, "AAPL", fake.lastReq.Ticker1)
	assert.Equal(t, "MSFT", fake.lastReq.Ticker2)
	assert.Equal(t, "USD", fake.lastReq.Currency)
	assert.Equal(t, "2023-01-01", fake.lastReq.From.Format("2006-01-02"))
	assert.Equal(t, "2025-01-01", fake.lastReq.To.Format("2006-01-02"))

	var report models.ComparisonReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "AAPL", report.Ticker1.Ticker)
	assert.Len(t, report.Verdicts, 5)
}

func TestCompareQueryParams(t *testing.T) {
	fake := &fakeCompareService{report: sampleReport()}
	handler := newTestServer(fake)

	rec := doRequest(t, handler, http.MethodGet,
		"/api/compare?ticker1=nvda&ticker2=amd&from=2024-01-01&to=2024-06-30&currency=eur")
	require.Equal(t, http.StatusOK, rec.Code)

	// Tickers and currency are upper-cased.
	assert.Equal(t, "NVDA", fake.lastReq.Ticker1)
	assert.Equal(t, "AMD", fake.lastReq.Ticker2)
	assert.Equal(t, "EUR", fake.lastReq.Currency)
	assert.Equal(t, "2024-06-30", fake.lastReq.To.Format("2006-01-02"))
}

func TestCompareBadRequest(t *testing.T) {
	handler := newTestServer(&fakeCompareService{report: sampleReport()})

	tests := []struct {
		name   string
		target string
	}{
		{"malformed from date", "/api/compare?from=yesterday"},
		{"malformed to date", "/api/compare?to=2024-13-45"},
		{"empty range", "/api/compare?from=2024-06-30&to=2024-01-01"},
		{"unsupported currency", "/api/compare?currency=JPY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, handler, http.MethodGet, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCompareNoData(t *testing.T) {
	fake := &fakeCompareService{err: fmt.Errorf("load FAKE: %w", compare.ErrNoData)}
	handler := newTestServer(fake)

	rec := doRequest(t, handler, http.MethodGet, "/api/compare?ticker1=FAKE")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid ticker(s) or no data found", body.Error)
}

func TestCompareProviderFailure(t *testing.T) {
	fake := &fakeCompareService{err: fmt.Errorf("load AAPL: connection refused")}
	handler := newTestServer(fake)

	rec := doRequest(t, handler, http.MethodGet, "/api/compare")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "Error fetching data:")
	assert.Contains(t, body.Error, "connection refused")
}

func TestCompareMethodNotAllowed(t *testing.T) {
	handler := newTestServer(&fakeCompareService{report: sampleReport()})

	rec := doRequest(t, handler, http.MethodPost, "/api/compare")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get("Allow"))
}

func TestCompareChart(t *testing.T) {
	handler := newTestServer(&fakeCompareService{report: sampleReport()})

	rec := doRequest(t, handler, http.MethodGet, "/api/compare/chart")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"), "body must be a PNG")
}

func TestDashboard(t *testing.T) {
	handler := newTestServer(&fakeCompareService{report: sampleReport()})

	rec := doRequest(t, handler, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "Stock Comparison Dashboard")
	assert.Contains(t, body, "Apple Inc")
	assert.Contains(t, body, "Microsoft Corp")
	assert.Contains(t, body, "3.40T USD") // formatted market cap
	assert.Contains(t, body, "12.50%")    // total return at display precision
	assert.Contains(t, body, "1.23%")     // volatility 1.234 rounded by %.2f
	assert.Contains(t, body, "/api/compare/chart?")
	assert.Contains(t, body, "Overall, AAPL emerges as the stronger investment candidate.")
}

func TestDashboardNoData(t *testing.T) {
	fake := &fakeCompareService{err: compare.ErrNoData}
	handler := newTestServer(fake)

	rec := doRequest(t, handler, http.MethodGet, "/?ticker1=FAKE1&ticker2=FAKE2")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Invalid ticker(s) or no data found")
	assert.NotContains(t, body, "Key Metrics", "no report sections on failure")
}

func TestDashboardUnknownPath(t *testing.T) {
	handler := newTestServer(&fakeCompareService{report: sampleReport()})

	rec := doRequest(t, handler, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Header().Get("Content-Type"), "application/json",
		"browser surface must not answer with a JSON error body")
}

func TestCORSPreflight(t *testing.T) {
	handler := newTestServer(&fakeCompareService{report: sampleReport()})

	rec := doRequest(t, handler, http.MethodOptions, "/api/compare")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorrelationIDHeader(t *testing.T) {
	handler := newTestServer(&fakeCompareService{report: sampleReport()})

	rec := doRequest(t, handler, http.MethodGet, "/api/health")
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}
