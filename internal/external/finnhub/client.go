package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/devkwon/stocksage/internal/market"
	"github.com/devkwon/stocksage/pkg/config"
	"github.com/devkwon/stocksage/pkg/httputil"
	"github.com/devkwon/stocksage/pkg/logger"
)

// maxHeadlines caps how many news items attach to one analysis.
const maxHeadlines = 5

// Client retrieves company news from Finnhub. News is optional
// enrichment: without an API key the client returns a single
// informational placeholder instead of failing.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiKey     string
	baseURL    string
	now        func() time.Time
}

// NewClient creates a new Finnhub client.
func NewClient(cfg config.FinnhubConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		now:        time.Now,
	}
}

type newsEntry struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
	Source   string `json:"source"`
	Datetime int64  `json:"datetime"`
}

// FetchNews returns up to five headlines from the trailing week.
func (c *Client) FetchNews(ctx context.Context, ticker string) ([]market.NewsItem, error) {
	if c.apiKey == "" {
		return []market.NewsItem{{
			Headline: "News API not configured",
			Summary:  "Add FINNHUB_API_KEY to environment variables for real-time news",
			URL:      "#",
			Source:   "System",
		}}, nil
	}

	to := c.now()
	from := to.AddDate(0, 0, -7)

	params := url.Values{
		"symbol": {ticker},
		"from":   {from.Format("2006-01-02")},
		"to":     {to.Format("2006-01-02")},
		"token":  {c.apiKey},
	}
	fullURL := fmt.Sprintf("%s/api/v1/company-news?%s", c.baseURL, params.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var entries []newsEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("news payload malformed: %w", err)
	}

	if len(entries) > maxHeadlines {
		entries = entries[:maxHeadlines]
	}

	items := make([]market.NewsItem, len(entries))
	for i, e := range entries {
		items[i] = market.NewsItem{
			Headline: e.Headline,
			Summary:  e.Summary,
			URL:      e.URL,
			Source:   e.Source,
			Datetime: e.Datetime,
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"count":  len(items),
	}).Debug("Fetched news")

	return items, nil
}
