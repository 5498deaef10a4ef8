package analysis

import (
	"math"
	"time"

	"github.com/devkwon/stocksage/internal/market"
	"github.com/devkwon/stocksage/pkg/logger"
)

// historyWindow bounds how many trailing points ship in the response.
const historyWindow = 90

// TechnicalIndicators is the indicator block of an analysis response.
// Support and resistance are fixed ±8% heuristics around the current
// price, not outputs of the indicator functions.
type TechnicalIndicators struct {
	Trend      string   `json:"trend"`
	Momentum   string   `json:"momentum"`
	Support    float64  `json:"support"`
	Resistance float64  `json:"resistance"`
	RSI        *float64 `json:"rsi"`
	MACD       *float64 `json:"macd"`
	SMA20      *float64 `json:"sma20"`
	SMA50      *float64 `json:"sma50"`
	SMA200     *float64 `json:"sma200"`
}

// Fundamentals echoes the snapshot's optional fundamentals.
type Fundamentals struct {
	PE            *float64 `json:"pe"`
	EPS           *float64 `json:"eps"`
	Beta          *float64 `json:"beta"`
	DividendYield *float64 `json:"dividendYield"`
	ProfitMargin  *float64 `json:"profitMargin"`
	ROE           *float64 `json:"roe"`
	DebtToEquity  *float64 `json:"debtToEquity"`
	High52Week    *float64 `json:"high52Week"`
	Low52Week     *float64 `json:"low52Week"`
}

// HistoricalData is the chart payload: trailing closes with their
// timestamps. Present only when the source carried timestamps.
type HistoricalData struct {
	Prices     []float64 `json:"prices"`
	Timestamps []int64   `json:"timestamps"`
}

// Analysis is the externally consumed result of one analysis run.
type Analysis struct {
	Ticker         string  `json:"ticker"`
	CompanyName    string  `json:"companyName"`
	Sector         *string `json:"sector"`
	Industry       *string `json:"industry"`
	CurrentPrice   float64 `json:"currentPrice"`
	PriceChange24h float64 `json:"priceChange24h"`
	Volume         *int64  `json:"volume"`
	MarketCap      *int64  `json:"marketCap"`

	TechnicalScore    int    `json:"technicalScore"`
	FundamentalScore  int    `json:"fundamentalScore"`
	SentimentScore    int    `json:"sentimentScore"`
	OverallPrediction string `json:"overallPrediction"`
	ConfidenceLevel   int    `json:"confidenceLevel"`
	TimeHorizon       string `json:"timeHorizon"`

	TechnicalIndicators TechnicalIndicators `json:"technicalIndicators"`
	Fundamentals        Fundamentals        `json:"fundamentals"`
	PriceTargets        PriceTargets        `json:"priceTargets"`

	KeyStrengths []string `json:"keyStrengths"`
	KeyRisks     []string `json:"keyRisks"`
	Reasoning    string   `json:"reasoning"`

	News []market.NewsItem `json:"news"`

	HistoricalData *HistoricalData `json:"historicalData"`

	LastUpdated string        `json:"lastUpdated"`
	DataSource  market.Source `json:"dataSource"`
}

// Engine runs the full scoring pipeline for one snapshot. Stateless
// across invocations; each call operates only on its inputs.
type Engine struct {
	technical   *TechnicalScorer
	fundamental *FundamentalScorer
	sentiment   *SentimentScorer
	logger      *logger.Logger
	now         func() time.Time
}

// NewEngine creates an analysis engine.
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{
		technical:   NewTechnicalScorer(log),
		fundamental: NewFundamentalScorer(log),
		sentiment:   NewSentimentScorer(log),
		logger:      log,
		now:         time.Now,
	}
}

// Analyze scores the snapshot on all three axes, synthesizes the
// recommendation, and assembles the response payload.
func (e *Engine) Analyze(snapshot *market.Snapshot, news []market.NewsItem) *Analysis {
	technical := math.Round(e.technical.Score(snapshot))
	fundamental := math.Round(e.fundamental.Score(snapshot))
	sentiment := math.Round(e.sentiment.Score(snapshot))

	rec := Synthesize(snapshot, technical, fundamental, sentiment)

	e.logger.WithFields(map[string]interface{}{
		"ticker":      snapshot.Symbol,
		"technical":   technical,
		"fundamental": fundamental,
		"sentiment":   sentiment,
		"overall":     rec.OverallScore,
		"label":       rec.Label,
	}).Info("Analysis complete")

	return &Analysis{
		Ticker:         snapshot.Symbol,
		CompanyName:    snapshot.Name,
		Sector:         snapshot.Sector,
		Industry:       snapshot.Industry,
		CurrentPrice:   snapshot.Price,
		PriceChange24h: snapshot.ChangePercent,
		Volume:         snapshot.Volume,
		MarketCap:      snapshot.MarketCap,

		TechnicalScore:    int(technical),
		FundamentalScore:  int(fundamental),
		SentimentScore:    int(sentiment),
		OverallPrediction: rec.Label,
		ConfidenceLevel:   rec.Confidence,
		TimeHorizon:       rec.TimeHorizon,

		TechnicalIndicators: e.indicators(snapshot),
		Fundamentals: Fundamentals{
			PE:            snapshot.PE,
			EPS:           snapshot.EPS,
			Beta:          snapshot.Beta,
			DividendYield: snapshot.DividendYield,
			ProfitMargin:  snapshot.ProfitMargin,
			ROE:           snapshot.ROE,
			DebtToEquity:  snapshot.DebtToEquity,
			High52Week:    snapshot.High52Week,
			Low52Week:     snapshot.Low52Week,
		},
		PriceTargets: rec.PriceTargets,

		KeyStrengths: rec.KeyStrengths,
		KeyRisks:     rec.KeyRisks,
		Reasoning:    rec.Reasoning,

		News: news,

		HistoricalData: historicalData(snapshot),

		LastUpdated: e.now().Format("January 2, 2006, 03:04 PM"),
		DataSource:  snapshot.Source,
	}
}

// indicators computes the indicator block from the snapshot.
func (e *Engine) indicators(snapshot *market.Snapshot) TechnicalIndicators {
	prices := snapshot.HistoricalPrices

	ind := TechnicalIndicators{
		Trend:      trendLabel(snapshot.ChangePercent),
		Momentum:   momentumLabel(snapshot.Beta),
		Support:    snapshot.Price * 0.92,
		Resistance: snapshot.Price * 1.08,
		SMA20:      round2(SMA(prices, 20)),
		SMA50:      round2(SMA(prices, 50)),
		SMA200:     round2(SMA(prices, 200)),
	}

	if len(prices) > 14 {
		rsi := RSI(prices, 14)
		ind.RSI = round2(&rsi)
	}
	if len(prices) > 26 {
		macd := MACD(prices).MACD
		ind.MACD = round2(&macd)
	}

	return ind
}

func trendLabel(changePercent float64) string {
	switch {
	case changePercent > 1.5:
		return "Bullish"
	case changePercent < -1.5:
		return "Bearish"
	default:
		return "Neutral"
	}
}

func momentumLabel(beta *float64) string {
	b := 1.0
	if beta != nil && *beta != 0 {
		b = *beta
	}
	switch {
	case b > 1.5:
		return "Strong"
	case b > 0.8:
		return "Moderate"
	default:
		return "Weak"
	}
}

// historicalData slices the trailing window for charting. Sources
// without timestamps (Alpha Vantage) get no chart block at all, keeping
// the prices/timestamps alignment invariant.
func historicalData(snapshot *market.Snapshot) *HistoricalData {
	if len(snapshot.HistoricalPrices) == 0 || len(snapshot.Timestamps) != len(snapshot.HistoricalPrices) {
		return nil
	}

	start := 0
	if n := len(snapshot.HistoricalPrices); n > historyWindow {
		start = n - historyWindow
	}

	return &HistoricalData{
		Prices:     snapshot.HistoricalPrices[start:],
		Timestamps: snapshot.Timestamps[start:],
	}
}

func round2(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Round(*v*100) / 100
	return &r
}
