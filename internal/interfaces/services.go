package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/stockcompare/internal/models"
)

// CompareRequest holds the inputs of one analysis run.
type CompareRequest struct {
	Ticker1  string
	Ticker2  string
	From     time.Time
	To       time.Time
	Currency string
}

// CompareService runs the full comparison pipeline for two tickers.
type CompareService interface {
	// Compare fetches, aligns, measures and judges both tickers.
	Compare(ctx context.Context, req CompareRequest) (*models.ComparisonReport, error)
}
