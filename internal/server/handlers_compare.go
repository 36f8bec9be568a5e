package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/stockcompare/internal/currency"
	"github.com/bobmcallan/stockcompare/internal/interfaces"
	"github.com/bobmcallan/stockcompare/internal/services/compare"
)

// NoDataMessage is the single user-facing message for empty series or an
// empty date intersection.
const NoDataMessage = "Invalid ticker(s) or no data found"

// parseCompareRequest builds a CompareRequest from query parameters,
// falling back to the configured defaults. All validation happens here so
// that any error out of the service itself is a provider failure.
func (s *Server) parseCompareRequest(r *http.Request) (interfaces.CompareRequest, error) {
	q := r.URL.Query()
	defaults := s.config.Compare

	pick := func(key, fallback string) string {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			return v
		}
		return fallback
	}

	req := interfaces.CompareRequest{
		Ticker1:  strings.ToUpper(pick("ticker1", defaults.DefaultTicker1)),
		Ticker2:  strings.ToUpper(pick("ticker2", defaults.DefaultTicker2)),
		Currency: strings.ToUpper(pick("currency", defaults.DefaultCurrency)),
	}

	from, err := time.Parse("2006-01-02", pick("from", defaults.DefaultFrom))
	if err != nil {
		return req, fmt.Errorf("invalid from date: %w", err)
	}
	to, err := time.Parse("2006-01-02", pick("to", defaults.DefaultTo))
	if err != nil {
		return req, fmt.Errorf("invalid to date: %w", err)
	}
	req.From = from
	req.To = to

	if !req.To.After(req.From) {
		return req, fmt.Errorf("date range is empty")
	}
	if req.Ticker1 == "" || req.Ticker2 == "" {
		return req, fmt.Errorf("both tickers are required")
	}
	if !currency.IsSupported(req.Currency) {
		return req, fmt.Errorf("unsupported currency %q", req.Currency)
	}

	return req, nil
}

// handleCompare runs the pipeline and returns the full report as JSON.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	req, err := s.parseCompareRequest(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.compare.Compare(r.Context(), req)
	if err != nil {
		s.writeCompareError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

// handleCompareChart runs the pipeline and returns the dual-line chart as PNG.
func (s *Server) handleCompareChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	req, err := s.parseCompareRequest(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.compare.Compare(r.Context(), req)
	if err != nil {
		s.writeCompareError(w, err)
		return
	}

	png, err := compare.RenderComparisonChart(report)
	if err != nil {
		s.logger.Error().Err(err).Msg("Chart render failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// writeCompareError maps pipeline failures onto the API error surface:
// no-data gets the fixed message, anything else is a provider failure
// surfaced with the underlying error text. Nothing is retried.
func (s *Server) writeCompareError(w http.ResponseWriter, err error) {
	if errors.Is(err, compare.ErrNoData) {
		WriteError(w, http.StatusUnprocessableEntity, NoDataMessage)
		return
	}
	s.logger.Error().Err(err).Msg("Comparison failed")
	WriteError(w, http.StatusBadGateway, compareErrorMessage(err))
}

// compareErrorMessage is the user-facing text shared by the JSON API and
// the dashboard.
func compareErrorMessage(err error) string {
	if errors.Is(err, compare.ErrNoData) {
		return NoDataMessage
	}
	return fmt.Sprintf("Error fetching data: %v", err)
}
