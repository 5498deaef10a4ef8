package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/devkwon/stocksage/internal/market"
	"github.com/devkwon/stocksage/pkg/config"
	"github.com/devkwon/stocksage/pkg/httputil"
	"github.com/devkwon/stocksage/pkg/logger"
)

const providerName = "yahoo"

// Client handles communication with the Yahoo Finance chart API.
//
// A single endpoint carries the quote and roughly three months of daily
// closes, so this provider backfills history without extra calls but has
// no fundamentals.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance client.
func NewClient(cfg config.YahooConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return providerName
}

// chartResponse is the v8 chart payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				LongName           string   `json:"longName"`
				ShortName          string   `json:"shortName"`
				RegularMarketPrice float64  `json:"regularMarketPrice"`
				PreviousClose      float64  `json:"previousClose"`
				RegularMarketVolume *int64  `json:"regularMarketVolume"`
				MarketCap          *int64   `json:"marketCap"`
				FiftyTwoWeekHigh   *float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow    *float64 `json:"fiftyTwoWeekLow"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Fetch retrieves a snapshot for ticker from the chart endpoint.
func (c *Client) Fetch(ctx context.Context, ticker string) (*market.Snapshot, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=3mo&interval=1d", c.baseURL, ticker)

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, market.WrapUpstreamError(providerName, "chart request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return nil, market.NewUpstreamError(providerName, fmt.Sprintf("unexpected status code %d", resp.StatusCode))
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, market.WrapUpstreamError(providerName, "chart payload malformed", err)
	}

	if payload.Chart.Error != nil {
		return nil, market.NewUpstreamError(providerName, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, market.NewUpstreamError(providerName, "No data found")
	}

	result := payload.Chart.Result[0]
	meta := result.Meta

	if meta.RegularMarketPrice == 0 {
		return nil, market.NewUpstreamError(providerName, "quote has no current price")
	}

	// Name fallback chain: long name, short name, then the ticker itself.
	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	if name == "" {
		name = ticker
	}

	closes, timestamps := alignedCloses(result.Indicators.Quote[0].Close, result.Timestamp)

	change := meta.RegularMarketPrice - meta.PreviousClose
	var changePercent float64
	if meta.PreviousClose != 0 {
		changePercent = change / meta.PreviousClose * 100
	}

	snapshot := &market.Snapshot{
		Symbol:           ticker,
		Name:             name,
		Price:            meta.RegularMarketPrice,
		PreviousClose:    meta.PreviousClose,
		Change:           change,
		ChangePercent:    changePercent,
		Volume:           meta.RegularMarketVolume,
		MarketCap:        meta.MarketCap,
		High52Week:       meta.FiftyTwoWeekHigh,
		Low52Week:        meta.FiftyTwoWeekLow,
		HistoricalPrices: closes,
		Timestamps:       timestamps,
		Source:           market.SourceYahoo,
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker":  ticker,
		"price":   snapshot.Price,
		"history": len(snapshot.HistoricalPrices),
	}).Debug("Fetched Yahoo snapshot")

	return snapshot, nil
}

// alignedCloses filters null closes together with their paired timestamps
// so the two sequences stay aligned 1:1.
func alignedCloses(raw []*float64, rawTS []int64) ([]float64, []int64) {
	closes := make([]float64, 0, len(raw))
	var timestamps []int64
	if len(rawTS) == len(raw) {
		timestamps = make([]int64, 0, len(rawTS))
	}

	for i, p := range raw {
		if p == nil {
			continue
		}
		closes = append(closes, *p)
		if timestamps != nil {
			timestamps = append(timestamps, rawTS[i])
		}
	}

	return closes, timestamps
}
