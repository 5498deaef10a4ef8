package analysis

import (
	"github.com/devkwon/stocksage/internal/market"
	"github.com/devkwon/stocksage/pkg/logger"
)

// FundamentalScorer scores valuation and balance-sheet quality. All
// inputs are optional; absent fundamentals leave the baseline untouched,
// which is what keeps Yahoo-sourced snapshots (no overview data) near
// neutral on this axis.
type FundamentalScorer struct {
	logger *logger.Logger
}

// NewFundamentalScorer creates a new fundamental scorer.
func NewFundamentalScorer(log *logger.Logger) *FundamentalScorer {
	return &FundamentalScorer{logger: log}
}

// Score computes the fundamental sub-score, clamped to [0, 100].
func (s *FundamentalScorer) Score(snapshot *market.Snapshot) float64 {
	score := 50.0

	// P/E tiering, only meaningful for positive earnings
	if pe := snapshot.PE; pe != nil && *pe > 0 {
		switch {
		case *pe < 15:
			score += 25
		case *pe < 25:
			score += 15
		case *pe < 40:
			score += 5
		case *pe < 60:
			score -= 5
		default:
			score -= 15
		}
	}

	// Profit margin
	if margin := snapshot.ProfitMargin; margin != nil && *margin != 0 {
		switch {
		case *margin > 0.20:
			score += 15
		case *margin > 0.10:
			score += 10
		case *margin < 0:
			score -= 15
		}
	}

	// Return on equity
	if roe := snapshot.ROE; roe != nil && *roe != 0 {
		switch {
		case *roe > 0.15:
			score += 15
		case *roe > 0.10:
			score += 10
		case *roe < 0:
			score -= 10
		}
	}

	// Leverage
	if de := snapshot.DebtToEquity; de != nil && *de != 0 {
		if *de < 0.5 {
			score += 10
		} else if *de > 2 {
			score -= 10
		}
	}

	// Mega-cap bonus
	if cap := snapshot.MarketCap; cap != nil && *cap > 500_000_000_000 {
		score += 10
	}

	// Income component
	if dy := snapshot.DividendYield; dy != nil && *dy > 0.02 {
		score += 5
	}

	score = clamp(score)

	s.logger.WithFields(map[string]interface{}{
		"ticker": snapshot.Symbol,
		"score":  score,
	}).Debug("Calculated fundamental score")

	return score
}
