package eodhd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/stockcompare/internal/interfaces"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient("test-key", WithBaseURL(server.URL))
	return client, server
}

func TestGetEOD(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"date": "2024-01-02", "open": 100.0, "high": 102.0, "low": 99.0, "close": 101.0, "adjusted_close": 100.5, "volume": 1000},
			{"date": "2024-01-03", "open": 101.0, "high": 103.0, "low": 100.0, "close": 102.5, "adjusted_close": 102.0, "volume": 1200},
		})
	})
	defer server.Close()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	resp, err := client.GetEOD(context.Background(), "AAPL", interfaces.WithDateRange(from, to))
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)

	assert.Equal(t, "/eod/AAPL", gotPath)
	assert.Equal(t, "test-key", gotQuery["api_token"][0])
	assert.Equal(t, "json", gotQuery["fmt"][0])
	assert.Equal(t, "d", gotQuery["period"][0])
	assert.Equal(t, "a", gotQuery["order"][0])
	assert.Equal(t, "2024-01-01", gotQuery["from"][0])
	assert.Equal(t, "2024-01-31", gotQuery["to"][0])

	bar := resp.Data[0]
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bar.Date)
	assert.Equal(t, 101.0, bar.Close)
	assert.Equal(t, 100.5, bar.AdjClose)
	assert.Equal(t, int64(1000), bar.Volume)
}

func TestGetFundamentals(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fundamentals/AAPL", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"General": {"Code": "AAPL", "Name": "Apple Inc", "Sector": "Technology"},
			"Highlights": {
				"MarketCapitalization": 3400000000000,
				"PERatio": "35.2",
				"GrossProfitTTM": 170000000000,
				"RevenueTTM": 385000000000
			}
		}`))
	})
	defer server.Close()

	profile, err := client.GetFundamentals(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", profile.Ticker)
	assert.Equal(t, "Apple Inc", profile.Name)
	assert.Equal(t, "Technology", profile.Sector)
	assert.Equal(t, 3.4e12, profile.MarketCap)
	assert.Equal(t, 35.2, profile.PERatio, "string-typed numbers must parse")
	assert.Equal(t, 1.7e11, profile.GrossProfit)
	assert.Equal(t, 3.85e11, profile.TotalRevenue)
}

func TestGetFundamentalsSparsePayload(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"General": {"Code": "XYZ"},
			"Highlights": {"PERatio": "N/A", "MarketCapitalization": null}
		}`))
	})
	defer server.Close()

	profile, err := client.GetFundamentals(context.Background(), "XYZ")
	require.NoError(t, err)

	// Absent or non-numeric fields come back fully populated with zeros.
	assert.Equal(t, "XYZ", profile.Ticker)
	assert.Equal(t, "", profile.Name)
	assert.Equal(t, 0.0, profile.MarketCap)
	assert.Equal(t, 0.0, profile.PERatio)
	assert.Equal(t, 0.0, profile.TotalRevenue)
}

func TestGetEODUnknownSymbol(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Symbol not found"))
	})
	defer server.Close()

	// A 404 from the EOD endpoint means the symbol does not exist; the
	// client reports that as an empty bar list, not an error.
	resp, err := client.GetEOD(context.Background(), "ZZZZINVALID")
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
}

func TestAPIError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("Invalid API token"))
	})
	defer server.Close()

	_, err := client.GetEOD(context.Background(), "AAPL")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Invalid API token")
	assert.Equal(t, "/eod/AAPL", apiErr.Endpoint)
}

func TestFlexFloat64(t *testing.T) {
	var payload struct {
		A flexFloat64 `json:"a"`
		B flexFloat64 `json:"b"`
		C flexFloat64 `json:"c"`
		D flexFloat64 `json:"d"`
		E flexFloat64 `json:"e"`
	}

	err := json.Unmarshal([]byte(`{"a": 1.5, "b": "2.5", "c": null, "d": "N/A", "e": "garbage"}`), &payload)
	require.NoError(t, err)

	assert.Equal(t, flexFloat64(1.5), payload.A)
	assert.Equal(t, flexFloat64(2.5), payload.B)
	assert.Equal(t, flexFloat64(0), payload.C)
	assert.Equal(t, flexFloat64(0), payload.D)
	assert.Equal(t, flexFloat64(0), payload.E)
}
