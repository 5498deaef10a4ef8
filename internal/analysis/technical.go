package analysis

import (
	"github.com/devkwon/stocksage/internal/market"
	"github.com/devkwon/stocksage/pkg/logger"
)

// TechnicalScorer scores price action: momentum, 52-week positioning,
// RSI/MACD, volatility and size.
type TechnicalScorer struct {
	logger *logger.Logger
}

// NewTechnicalScorer creates a new technical scorer.
func NewTechnicalScorer(log *logger.Logger) *TechnicalScorer {
	return &TechnicalScorer{logger: log}
}

// Score computes the technical sub-score, clamped to [0, 100].
// Adjustments are additive on a neutral baseline of 50.
func (s *TechnicalScorer) Score(snapshot *market.Snapshot) float64 {
	score := 50.0

	// Price momentum
	score += snapshot.ChangePercent * 5

	// 52-week position, mapped to [-10, +10]
	if position, ok := fiftyTwoWeekPosition(snapshot.Price, snapshot.High52Week, snapshot.Low52Week); ok {
		score += position*20 - 10
	}

	// RSI bands: overbought penalized, oversold and healthy midrange rewarded
	if len(snapshot.HistoricalPrices) > 14 {
		rsi := RSI(snapshot.HistoricalPrices, 14)
		switch {
		case rsi > 70:
			score -= 10
		case rsi < 30:
			score += 15
		case rsi >= 40 && rsi <= 60:
			score += 10
		}
	}

	// MACD above zero signals an uptrend
	if len(snapshot.HistoricalPrices) > 26 {
		if MACD(snapshot.HistoricalPrices).MACD > 0 {
			score += 10
		}
	}

	// Beta: low volatility rewarded, extreme volatility penalized
	if beta := snapshot.Beta; beta != nil && *beta != 0 {
		if *beta < 0.8 {
			score += 10
		} else if *beta > 1.8 {
			score -= 5
		}
	}

	// Market cap tiering
	if cap := snapshot.MarketCap; cap != nil && *cap > 0 {
		switch {
		case *cap > 1_000_000_000_000:
			score += 15
		case *cap > 100_000_000_000:
			score += 10
		default:
			score += 5
		}
	}

	score = clamp(score)

	s.logger.WithFields(map[string]interface{}{
		"ticker": snapshot.Symbol,
		"score":  score,
	}).Debug("Calculated technical score")

	return score
}
