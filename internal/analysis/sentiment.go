package analysis

import (
	"github.com/devkwon/stocksage/internal/market"
	"github.com/devkwon/stocksage/pkg/logger"
)

// SentimentScorer proxies market mood from recent momentum, where the
// price sits in its 52-week range, and the 50-day trend.
type SentimentScorer struct {
	logger *logger.Logger
}

// NewSentimentScorer creates a new sentiment scorer.
func NewSentimentScorer(log *logger.Logger) *SentimentScorer {
	return &SentimentScorer{logger: log}
}

// Score computes the sentiment sub-score, clamped to [0, 100].
func (s *SentimentScorer) Score(snapshot *market.Snapshot) float64 {
	score := 50.0

	// Daily change, banded. Exactly eight branches; a flat day lands in
	// the final band and reads as mildly negative.
	switch change := snapshot.ChangePercent; {
	case change > 5:
		score += 25
	case change > 3:
		score += 20
	case change > 1:
		score += 10
	case change > 0:
		score += 5
	case change < -5:
		score -= 25
	case change < -3:
		score -= 20
	case change < -1:
		score -= 10
	default:
		score -= 5
	}

	// 52-week position bands
	if position, ok := fiftyTwoWeekPosition(snapshot.Price, snapshot.High52Week, snapshot.Low52Week); ok {
		switch {
		case position > 0.9:
			score += 15
		case position > 0.7:
			score += 10
		case position < 0.2:
			score -= 15
		case position < 0.3:
			score -= 10
		}
	}

	// 50-day trend
	if sma50 := SMA(snapshot.HistoricalPrices, 50); sma50 != nil {
		if snapshot.Price > *sma50 {
			score += 10
		} else {
			score -= 10
		}
	}

	score = clamp(score)

	s.logger.WithFields(map[string]interface{}{
		"ticker": snapshot.Symbol,
		"score":  score,
	}).Debug("Calculated sentiment score")

	return score
}
