package commands

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/devkwon/stocksage/internal/analysis"
	"github.com/devkwon/stocksage/internal/external/alphavantage"
	"github.com/devkwon/stocksage/internal/external/finnhub"
	"github.com/devkwon/stocksage/internal/external/yahoo"
	"github.com/devkwon/stocksage/internal/market"
	"github.com/devkwon/stocksage/pkg/config"
	"github.com/devkwon/stocksage/pkg/httputil"
	"github.com/devkwon/stocksage/pkg/logger"
)

// buildStack wires config, logger, provider clients, the acquirer and the
// analysis engine. Shared by the api and analyze commands.
func buildStack() (*config.Config, *logger.Logger, *market.Acquirer, *analysis.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	// Alpha Vantage free tier allows 5 requests/minute. Each snapshot
	// costs three calls, so pace them out but allow one full burst.
	avHTTP := httputil.New(cfg.HTTPTimeout, log).
		WithRateLimiter(rate.NewLimiter(rate.Every(12*time.Second), 3))
	yahooHTTP := httputil.New(cfg.HTTPTimeout, log).
		WithRateLimiter(rate.NewLimiter(rate.Every(time.Second), 5))
	finnhubHTTP := httputil.New(cfg.HTTPTimeout, log).
		WithRateLimiter(rate.NewLimiter(rate.Every(time.Second), 10))

	avClient := alphavantage.NewClient(cfg.AlphaVantage, avHTTP, log)
	yahooClient := yahoo.NewClient(cfg.Yahoo, yahooHTTP, log)
	finnhubClient := finnhub.NewClient(cfg.Finnhub, finnhubHTTP, log)

	acquirer := market.NewAcquirer(
		[]market.Provider{avClient, yahooClient},
		finnhubClient,
		log,
	)
	engine := analysis.NewEngine(log)

	return cfg, log, acquirer, engine, nil
}
