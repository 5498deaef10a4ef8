package market

// Source identifies which upstream provider produced a snapshot.
// The provenance tag matters downstream: Alpha Vantage populates
// fundamentals that the Yahoo chart endpoint does not carry.
type Source string

const (
	SourceYahoo        Source = "yahoo"
	SourceAlphaVantage Source = "alphavantage"
)

// Snapshot is the normalized point-in-time market data record for one
// ticker. It is produced once per request by a provider adapter and is
// immutable afterwards. Optional fields are nil when the provider does
// not carry them.
type Snapshot struct {
	Symbol string
	Name   string

	Price         float64
	PreviousClose float64
	Change        float64
	ChangePercent float64

	Volume    *int64
	MarketCap *int64

	High52Week *float64
	Low52Week  *float64

	// Fundamentals (Alpha Vantage overview only)
	PE            *float64
	Beta          *float64
	EPS           *float64
	DividendYield *float64
	ProfitMargin  *float64
	ROE           *float64
	DebtToEquity  *float64

	Sector      *string
	Industry    *string
	Description *string

	// HistoricalPrices holds chronological daily closes, oldest first.
	// May be empty or shorter than any indicator window.
	HistoricalPrices []float64

	// Timestamps is aligned 1:1 with HistoricalPrices when non-nil.
	Timestamps []int64

	Source Source
}

// NewsItem is a single headline attached to an analysis. News is a
// pass-through enrichment and never influences scoring.
type NewsItem struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
	Source   string `json:"source"`
	Datetime int64  `json:"datetime,omitempty"`
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 { return &v }

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }
