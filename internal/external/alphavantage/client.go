package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/devkwon/stocksage/internal/market"
	"github.com/devkwon/stocksage/pkg/config"
	"github.com/devkwon/stocksage/pkg/httputil"
	"github.com/devkwon/stocksage/pkg/logger"
)

const providerName = "alphavantage"

// Client handles communication with the Alpha Vantage API.
//
// A full snapshot takes three endpoints: GLOBAL_QUOTE for the real-time
// quote, OVERVIEW for fundamentals, and TIME_SERIES_DAILY for history.
// Alpha Vantage signals quota exhaustion with a "Note" or "Information"
// field inside a 200 response, so every payload is classified before any
// data leaves this package.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiKey     string
	baseURL    string
}

// NewClient creates a new Alpha Vantage client.
func NewClient(cfg config.AlphaVantageConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return providerName
}

// globalQuoteResponse is the GLOBAL_QUOTE payload.
type globalQuoteResponse struct {
	apiStatus
	Quote struct {
		Symbol        string `json:"01. symbol"`
		Price         string `json:"05. price"`
		Volume        string `json:"06. volume"`
		PreviousClose string `json:"08. previous close"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
}

// overviewResponse is the OVERVIEW payload. All numeric fields arrive as
// strings, with "None" or "-" standing in for missing values.
type overviewResponse struct {
	apiStatus
	Name                 string `json:"Name"`
	Sector               string `json:"Sector"`
	Industry             string `json:"Industry"`
	Description          string `json:"Description"`
	MarketCapitalization string `json:"MarketCapitalization"`
	PERatio              string `json:"PERatio"`
	Beta                 string `json:"Beta"`
	EPS                  string `json:"EPS"`
	DividendYield        string `json:"DividendYield"`
	ProfitMargin         string `json:"ProfitMargin"`
	ReturnOnEquityTTM    string `json:"ReturnOnEquityTTM"`
	DebtToEquity         string `json:"DebtToEquity"`
	High52Week           string `json:"52WeekHigh"`
	Low52Week            string `json:"52WeekLow"`
}

// dailySeriesResponse is the TIME_SERIES_DAILY payload.
type dailySeriesResponse struct {
	apiStatus
	Series map[string]struct {
		Close string `json:"4. close"`
	} `json:"Time Series (Daily)"`
}

// apiStatus carries the in-payload error markers Alpha Vantage embeds in
// otherwise successful responses.
type apiStatus struct {
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
}

// check classifies in-payload error markers into an upstream failure.
func (s apiStatus) check() error {
	switch {
	case s.ErrorMessage != "":
		return market.NewUpstreamError(providerName, s.ErrorMessage)
	case s.Note != "":
		return market.NewUpstreamError(providerName, "API limit reached")
	case s.Information != "":
		return market.NewUpstreamError(providerName, "API limit reached")
	}
	return nil
}

// Fetch retrieves a snapshot for ticker. The three upstream calls are
// independent and run in parallel; the first failure cancels the rest.
func (c *Client) Fetch(ctx context.Context, ticker string) (*market.Snapshot, error) {
	var (
		quote    globalQuoteResponse
		overview overviewResponse
		daily    dailySeriesResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.query(gctx, "GLOBAL_QUOTE", ticker, nil, &quote) })
	g.Go(func() error { return c.query(gctx, "OVERVIEW", ticker, nil, &overview) })
	g.Go(func() error {
		return c.query(gctx, "TIME_SERIES_DAILY", ticker, url.Values{"outputsize": {"compact"}}, &daily)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if quote.Quote.Price == "" {
		return nil, market.NewUpstreamError(providerName, "No data found")
	}

	price, err := strconv.ParseFloat(quote.Quote.Price, 64)
	if err != nil {
		return nil, market.WrapUpstreamError(providerName, "parse quote price", err)
	}

	name := overview.Name
	if name == "" {
		name = ticker
	}

	snapshot := &market.Snapshot{
		Symbol:           ticker,
		Name:             name,
		Price:            price,
		PreviousClose:    parseFloat(quote.Quote.PreviousClose),
		Change:           parseFloat(quote.Quote.Change),
		ChangePercent:    parseFloat(strings.TrimSuffix(quote.Quote.ChangePercent, "%")),
		Volume:           parseOptionalInt(quote.Quote.Volume),
		MarketCap:        parseOptionalInt(overview.MarketCapitalization),
		High52Week:       parseOptionalFloat(overview.High52Week),
		Low52Week:        parseOptionalFloat(overview.Low52Week),
		PE:               parseOptionalFloat(overview.PERatio),
		Beta:             parseOptionalFloat(overview.Beta),
		EPS:              parseOptionalFloat(overview.EPS),
		DividendYield:    parseOptionalFloat(overview.DividendYield),
		ProfitMargin:     parseOptionalFloat(overview.ProfitMargin),
		ROE:              parseOptionalFloat(overview.ReturnOnEquityTTM),
		DebtToEquity:     parseOptionalFloat(overview.DebtToEquity),
		Sector:           optionalString(overview.Sector),
		Industry:         optionalString(overview.Industry),
		Description:      optionalString(overview.Description),
		HistoricalPrices: chronologicalCloses(daily.Series),
		Source:           market.SourceAlphaVantage,
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker":  ticker,
		"price":   snapshot.Price,
		"history": len(snapshot.HistoricalPrices),
	}).Debug("Fetched Alpha Vantage snapshot")

	return snapshot, nil
}

// query performs one Alpha Vantage function call and decodes the payload.
func (c *Client) query(ctx context.Context, function, ticker string, extra url.Values, out interface{ status() apiStatus }) error {
	params := url.Values{
		"function": {function},
		"symbol":   {ticker},
		"apikey":   {c.apiKey},
	}
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}

	fullURL := fmt.Sprintf("%s/query?%s", c.baseURL, params.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return market.WrapUpstreamError(providerName, function+" request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return market.NewUpstreamError(providerName, fmt.Sprintf("%s: unexpected status code %d", function, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return market.WrapUpstreamError(providerName, function+" payload malformed", err)
	}

	return out.status().check()
}

func (s apiStatus) status() apiStatus { return s }

// chronologicalCloses flattens the date-keyed series into ascending order.
// The upstream map is keyed newest-first but JSON objects carry no order,
// so the dates are sorted explicitly.
func chronologicalCloses(series map[string]struct {
	Close string `json:"4. close"`
}) []float64 {
	dates := make([]string, 0, len(series))
	for d := range series {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	closes := make([]float64, 0, len(dates))
	for _, d := range dates {
		v, err := strconv.ParseFloat(series[d].Close, 64)
		if err != nil {
			continue
		}
		closes = append(closes, v)
	}
	return closes
}

// parseFloat parses a float, returning 0 on failure.
func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

// parseOptionalFloat parses a float field, treating unparseable and
// zero values as absent.
func parseOptionalFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

// parseOptionalInt parses an integer field, treating unparseable and
// zero values as absent.
func parseOptionalInt(s string) *int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

func optionalString(s string) *string {
	if s == "" || s == "None" {
		return nil
	}
	return &s
}
