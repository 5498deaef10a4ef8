package market

import (
	"context"

	"github.com/devkwon/stocksage/pkg/logger"
)

// Acquirer runs the provider fallback chain for a ticker.
//
// Providers are attempted strictly in the configured order and the first
// success wins. The order is fixed at construction: racing providers
// would make which optional fields are populated depend on network
// timing. News retrieval has no dependency on price data and runs
// concurrently with the chain.
type Acquirer struct {
	providers []Provider
	news      NewsProvider
	logger    *logger.Logger
}

// NewAcquirer creates an Acquirer. Providers are tried in slice order.
func NewAcquirer(providers []Provider, news NewsProvider, log *logger.Logger) *Acquirer {
	return &Acquirer{
		providers: providers,
		news:      news,
		logger:    log,
	}
}

// Acquire fetches a snapshot for ticker, falling back across providers,
// plus recent news. If every provider fails it returns *NoDataError
// wrapping the last failure. News failures never fail acquisition; the
// news list degrades to empty instead.
func (a *Acquirer) Acquire(ctx context.Context, ticker string) (*Snapshot, []NewsItem, error) {
	newsCh := make(chan []NewsItem, 1)
	go func() {
		newsCh <- a.fetchNews(ctx, ticker)
	}()

	var lastErr error
	for _, p := range a.providers {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		snapshot, err := p.Fetch(ctx, ticker)
		if err != nil {
			a.logger.WithError(err).WithFields(map[string]interface{}{
				"provider": p.Name(),
				"ticker":   ticker,
			}).Warn("Provider failed, trying next")
			lastErr = err
			continue
		}

		a.logger.WithFields(map[string]interface{}{
			"provider": p.Name(),
			"ticker":   ticker,
			"history":  len(snapshot.HistoricalPrices),
		}).Info("Snapshot acquired")

		return snapshot, <-newsCh, nil
	}

	return nil, nil, &NoDataError{Ticker: ticker, Last: lastErr}
}

// fetchNews retrieves headlines, degrading to an empty list on failure.
func (a *Acquirer) fetchNews(ctx context.Context, ticker string) []NewsItem {
	if a.news == nil {
		return []NewsItem{}
	}

	items, err := a.news.FetchNews(ctx, ticker)
	if err != nil {
		a.logger.WithError(err).WithField("ticker", ticker).Warn("News fetch failed")
		return []NewsItem{}
	}
	if items == nil {
		items = []NewsItem{}
	}
	return items
}
