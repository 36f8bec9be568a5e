// Package app wires configuration, logging, clients and services into a
// runnable application.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/stockcompare/internal/clients/eodhd"
	"github.com/bobmcallan/stockcompare/internal/common"
	"github.com/bobmcallan/stockcompare/internal/interfaces"
	"github.com/bobmcallan/stockcompare/internal/marketdata"
	"github.com/bobmcallan/stockcompare/internal/services/compare"
)

// App holds all initialized services and clients shared by the server.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	MarketClient   interfaces.MarketDataClient
	SeriesCache    *marketdata.SeriesCache
	Loader         *marketdata.Loader
	CompareService interfaces.CompareService
	StartupTime    time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes config, logger, the EODHD client, the series cache
// and the comparison service. configPath may be empty, in which case the
// default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Config resolution: provided path, STOCKCOMPARE_CONFIG, binary dir,
	// then the development fallback.
	if configPath == "" {
		configPath = os.Getenv("STOCKCOMPARE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "stockcompare.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/stockcompare.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	apiKey, err := common.ResolveAPIKey(config.Clients.EODHD.APIKey)
	if err != nil {
		logger.Warn().Msg("EODHD API key not configured - provider calls will be rejected")
	}

	client := eodhd.NewClient(apiKey,
		eodhd.WithBaseURL(config.Clients.EODHD.BaseURL),
		eodhd.WithLogger(logger),
		eodhd.WithRateLimit(config.Clients.EODHD.RateLimit),
		eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
	)

	// The memo cache is process-wide and shared by every request.
	cache := marketdata.NewSeriesCache()
	loader := marketdata.NewLoader(client, cache, logger)
	compareService := compare.NewService(loader, logger)

	a := &App{
		Config:         config,
		Logger:         logger,
		MarketClient:   client,
		SeriesCache:    cache,
		Loader:         loader,
		CompareService: compareService,
		StartupTime:    startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases resources held by the App. Nothing is persisted, so
// close is a no-op kept for symmetry with the server lifecycle.
func (a *App) Close() {}
