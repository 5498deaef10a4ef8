package analysis

import (
	"testing"

	"github.com/devkwon/stocksage/internal/market"
	"github.com/devkwon/stocksage/pkg/config"
	"github.com/devkwon/stocksage/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func TestTechnicalScoreBands(t *testing.T) {
	scorer := NewTechnicalScorer(testLogger())

	tests := []struct {
		name     string
		snapshot *market.Snapshot
		want     float64
	}{
		{
			name:     "neutral snapshot stays at baseline",
			snapshot: &market.Snapshot{Price: 100},
			want:     50,
		},
		{
			name: "momentum and mega cap",
			// 50 + 3.45*5 + 15 (cap > $1T)
			snapshot: &market.Snapshot{
				Price:         150,
				ChangePercent: 3.45,
				MarketCap:     market.Int64Ptr(2_500_000_000_000),
			},
			want: 82.25,
		},
		{
			name: "52-week position maps to plus minus ten",
			// price at the low: position 0 contributes -10
			snapshot: &market.Snapshot{
				Price:      100,
				High52Week: market.Float64Ptr(200),
				Low52Week:  market.Float64Ptr(100),
			},
			want: 40,
		},
		{
			name: "low beta rewarded small cap tier",
			// 50 + 10 (beta < 0.8) + 5 (cap below $100B tier)
			snapshot: &market.Snapshot{
				Price:     100,
				Beta:      market.Float64Ptr(0.5),
				MarketCap: market.Int64Ptr(5_000_000_000),
			},
			want: 65,
		},
		{
			name: "overbought RSI penalized",
			// 50 + 100(momentum 20*5)... clamped; use flat change: strictly
			// increasing history gives RSI 100 (-10) and MACD > 0 (+10)
			snapshot: &market.Snapshot{
				Price:            150,
				HistoricalPrices: increasing(30, 100, 1),
			},
			want: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scorer.Score(tt.snapshot); !almostEqual(got, tt.want) {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFundamentalScoreBands(t *testing.T) {
	scorer := NewFundamentalScorer(testLogger())

	tests := []struct {
		name     string
		snapshot *market.Snapshot
		want     float64
	}{
		{
			name:     "no fundamentals stays at baseline",
			snapshot: &market.Snapshot{Price: 100},
			want:     50,
		},
		{
			name: "cheap and profitable",
			// 50 + 25 (pe<15) + 15 (margin>0.20) + 15 (roe>0.15) + 10 (d/e<0.5)
			snapshot: &market.Snapshot{
				Price:        100,
				PE:           market.Float64Ptr(12),
				ProfitMargin: market.Float64Ptr(0.25),
				ROE:          market.Float64Ptr(0.18),
				DebtToEquity: market.Float64Ptr(0.3),
			},
			want: 100, // 115 clamped
		},
		{
			name: "expensive and leveraged",
			// 50 - 15 (pe>=60) - 15 (margin<0) - 10 (roe<0) - 10 (d/e>2)
			snapshot: &market.Snapshot{
				Price:        100,
				PE:           market.Float64Ptr(80),
				ProfitMargin: market.Float64Ptr(-0.1),
				ROE:          market.Float64Ptr(-0.05),
				DebtToEquity: market.Float64Ptr(3),
			},
			want: 0,
		},
		{
			name: "negative pe skips the pe tiering",
			snapshot: &market.Snapshot{
				Price: 100,
				PE:    market.Float64Ptr(-5),
			},
			want: 50,
		},
		{
			name: "mega cap with dividend",
			// 50 + 10 (cap > $500B) + 5 (yield > 2%)
			snapshot: &market.Snapshot{
				Price:         100,
				MarketCap:     market.Int64Ptr(600_000_000_000),
				DividendYield: market.Float64Ptr(0.03),
			},
			want: 65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scorer.Score(tt.snapshot); !almostEqual(got, tt.want) {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSentimentScoreBands(t *testing.T) {
	scorer := NewSentimentScorer(testLogger())

	changeBands := []struct {
		change float64
		want   float64
	}{
		{6, 75},
		{5, 70},   // 5 is not > 5, lands in the > 3 band
		{3.5, 70},
		{2, 60},
		{0.5, 55},
		{0, 45}, // flat day reads mildly negative
		{-0.5, 45}, // not below -1, lands in the default band
		{-2, 40},
		{-4, 30},
		{-6, 25},
	}

	for _, tt := range changeBands {
		snapshot := &market.Snapshot{Price: 100, ChangePercent: tt.change}
		if got := scorer.Score(snapshot); !almostEqual(got, tt.want) {
			t.Errorf("Score(change=%v) = %v, want %v", tt.change, got, tt.want)
		}
	}
}

func TestSentimentScorePositionAndTrend(t *testing.T) {
	scorer := NewSentimentScorer(testLogger())

	// Near the 52-week high and above the 50-day average:
	// 50 - 5 (flat day) + 15 (position > 0.9) + 10 (price > SMA50)
	snapshot := &market.Snapshot{
		Price:            195,
		High52Week:       market.Float64Ptr(200),
		Low52Week:        market.Float64Ptr(100),
		HistoricalPrices: increasing(60, 100, 1),
	}
	if got := scorer.Score(snapshot); !almostEqual(got, 70) {
		t.Errorf("Score() = %v, want 70", got)
	}

	// Near the low and below the 50-day average.
	snapshot = &market.Snapshot{
		Price:            105,
		High52Week:       market.Float64Ptr(200),
		Low52Week:        market.Float64Ptr(100),
		HistoricalPrices: increasing(60, 100, 1),
	}
	// 50 - 5 + (-15 position < 0.2) + (-10 below SMA50)
	if got := scorer.Score(snapshot); !almostEqual(got, 20) {
		t.Errorf("Score() = %v, want 20", got)
	}
}

// All scorers must stay inside [0, 100] for arbitrarily extreme inputs.
func TestScoresAlwaysClamped(t *testing.T) {
	snapshots := []*market.Snapshot{
		{Price: 1, ChangePercent: 1e9},
		{Price: 1, ChangePercent: -1e9},
		{
			Price:         1e12,
			ChangePercent: 500,
			MarketCap:     market.Int64Ptr(9_000_000_000_000),
			PE:            market.Float64Ptr(1),
			ProfitMargin:  market.Float64Ptr(0.99),
			ROE:           market.Float64Ptr(5),
			DebtToEquity:  market.Float64Ptr(0.01),
			DividendYield: market.Float64Ptr(0.5),
			Beta:          market.Float64Ptr(0.1),
			High52Week:    market.Float64Ptr(2e12),
			Low52Week:     market.Float64Ptr(1),
		},
		{
			Price:         0.01,
			ChangePercent: -99,
			PE:            market.Float64Ptr(1e6),
			ProfitMargin:  market.Float64Ptr(-10),
			ROE:           market.Float64Ptr(-10),
			DebtToEquity:  market.Float64Ptr(100),
			Beta:          market.Float64Ptr(50),
		},
		{},
	}

	log := testLogger()
	scorers := map[string]interface {
		Score(*market.Snapshot) float64
	}{
		"technical":   NewTechnicalScorer(log),
		"fundamental": NewFundamentalScorer(log),
		"sentiment":   NewSentimentScorer(log),
	}

	for name, scorer := range scorers {
		for i, snapshot := range snapshots {
			got := scorer.Score(snapshot)
			if got < 0 || got > 100 {
				t.Errorf("%s scorer: snapshot %d produced out-of-range score %v", name, i, got)
			}
		}
	}
}
