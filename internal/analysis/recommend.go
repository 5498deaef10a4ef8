package analysis

import (
	"fmt"
	"strings"

	"github.com/devkwon/stocksage/internal/market"
)

// Prediction labels, strongest to weakest.
const (
	LabelStrongBuy  = "STRONG_BUY"
	LabelBuy        = "BUY"
	LabelHold       = "HOLD"
	LabelSell       = "SELL"
	LabelStrongSell = "STRONG_SELL"
)

// Time horizon labels keyed off volatility.
const (
	HorizonShort  = "Short-term (1-4 weeks)"
	HorizonMedium = "Medium-term (1-3 months)"
	HorizonLong   = "Long-term (3-12 months)"
)

// PriceTargets holds the three score-scaled targets.
type PriceTargets struct {
	Conservative float64 `json:"conservative"`
	Moderate     float64 `json:"moderate"`
	Optimistic   float64 `json:"optimistic"`
}

// Recommendation is the synthesized output of the three sub-scores.
type Recommendation struct {
	OverallScore float64
	Label        string
	Confidence   int
	TimeHorizon  string
	PriceTargets PriceTargets
	KeyStrengths []string
	KeyRisks     []string
	Reasoning    string
}

// Synthesize combines the three clamped sub-scores into a recommendation.
// Pure and deterministic for a given snapshot and score triple.
func Synthesize(snapshot *market.Snapshot, technical, fundamental, sentiment float64) Recommendation {
	overall := (technical + fundamental + sentiment) / 3
	label := predictionLabel(overall)

	var rsi *float64
	if len(snapshot.HistoricalPrices) > 14 {
		v := RSI(snapshot.HistoricalPrices, 14)
		rsi = &v
	}

	strengths, risks := strengthsAndRisks(snapshot, rsi)

	return Recommendation{
		OverallScore: overall,
		Label:        label,
		Confidence:   confidence(snapshot),
		TimeHorizon:  timeHorizon(snapshot.Beta),
		PriceTargets: priceTargets(snapshot.Price, overall),
		KeyStrengths: strengths,
		KeyRisks:     risks,
		Reasoning:    reasoning(snapshot, label, rsi),
	}
}

// predictionLabel maps the overall score to a discrete label, first
// match wins descending.
func predictionLabel(overall float64) string {
	switch {
	case overall >= 70:
		return LabelStrongBuy
	case overall >= 60:
		return LabelBuy
	case overall >= 45:
		return LabelHold
	case overall >= 35:
		return LabelSell
	default:
		return LabelStrongSell
	}
}

// confidence is a bounded heuristic in [35, 95], not a probability.
// Larger caps and calmer betas earn more weight.
func confidence(snapshot *market.Snapshot) int {
	conf := 65

	if cap := snapshot.MarketCap; cap != nil {
		if *cap > 500_000_000_000 {
			conf += 15
		} else if *cap > 100_000_000_000 {
			conf += 10
		}
	}

	if beta := snapshot.Beta; beta != nil {
		if *beta < 1.0 {
			conf += 10
		} else if *beta > 2.0 {
			conf -= 10
		}
	}

	if conf > 95 {
		conf = 95
	}
	if conf < 35 {
		conf = 35
	}
	return conf
}

// timeHorizon picks a holding period from beta; absent beta reads as a
// calm stock and defaults to the long horizon.
func timeHorizon(beta *float64) string {
	switch {
	case beta != nil && *beta > 1.8:
		return HorizonShort
	case beta != nil && *beta > 1.2:
		return HorizonMedium
	default:
		return HorizonLong
	}
}

// priceTargets scales the price linearly around the neutral score of 50.
func priceTargets(price, overall float64) PriceTargets {
	return PriceTargets{
		Conservative: price * (1 + (overall-50)*0.002),
		Moderate:     price * (1 + (overall-50)*0.004),
		Optimistic:   price * (1 + (overall-50)*0.006),
	}
}

// strengthsAndRisks evaluates the fixed predicate sets, then pads each
// list deterministically to exactly three entries. Post-condition: both
// returned slices have length 3, no matter how many predicates fired.
func strengthsAndRisks(snapshot *market.Snapshot, rsi *float64) ([]string, []string) {
	var strengths, risks []string

	if snapshot.ChangePercent > 2 {
		strengths = append(strengths, "Strong recent price momentum")
	}
	if snapshot.MarketCap != nil && *snapshot.MarketCap > 1_000_000_000_000 {
		strengths = append(strengths, "Large-cap stability and liquidity")
	}
	if snapshot.PE != nil && *snapshot.PE != 0 && *snapshot.PE < 25 {
		strengths = append(strengths, "Attractive valuation metrics")
	}
	if snapshot.ROE != nil && *snapshot.ROE > 0.15 {
		strengths = append(strengths, "Strong return on equity (>15%)")
	}
	if snapshot.ProfitMargin != nil && *snapshot.ProfitMargin > 0.15 {
		strengths = append(strengths, "Healthy profit margins")
	}
	if snapshot.DividendYield != nil && *snapshot.DividendYield > 0.02 {
		strengths = append(strengths, fmt.Sprintf("Dividend yield: %.2f%%", *snapshot.DividendYield*100))
	}
	if rsi != nil && *rsi < 35 {
		strengths = append(strengths, "Oversold conditions (potential buying opportunity)")
	}

	if snapshot.ChangePercent < -2 {
		risks = append(risks, "Recent price weakness and negative momentum")
	}
	if snapshot.Beta != nil && *snapshot.Beta > 1.5 {
		risks = append(risks, "High volatility relative to market")
	}
	if snapshot.PE != nil && *snapshot.PE > 50 {
		risks = append(risks, "Elevated valuation requires strong growth")
	}
	if snapshot.DebtToEquity != nil && *snapshot.DebtToEquity > 2 {
		risks = append(risks, "High debt-to-equity ratio")
	}
	if snapshot.ProfitMargin != nil && *snapshot.ProfitMargin != 0 && *snapshot.ProfitMargin < 0.05 {
		risks = append(risks, "Thin or negative profit margins")
	}
	if rsi != nil && *rsi > 70 {
		risks = append(risks, "Overbought conditions (potential correction)")
	}

	strengthFiller := "Established market presence"
	if snapshot.Sector != nil {
		strengthFiller = fmt.Sprintf("Exposure to %s sector", *snapshot.Sector)
	}
	for len(strengths) < 3 {
		strengths = append(strengths, strengthFiller)
	}
	for len(risks) < 3 {
		risks = append(risks, "Market volatility and economic uncertainty")
	}

	return strengths[:3], risks[:3]
}

// reasoning assembles the templated explanation sentence.
func reasoning(snapshot *market.Snapshot, label string, rsi *float64) string {
	var reasons []string

	if snapshot.ChangePercent > 2 {
		reasons = append(reasons, "strong momentum")
	} else if snapshot.ChangePercent < -2 {
		reasons = append(reasons, "recent weakness")
	}

	if pe := snapshot.PE; pe != nil && *pe != 0 {
		if *pe < 25 {
			reasons = append(reasons, "attractive valuation")
		} else if *pe > 50 {
			reasons = append(reasons, "premium valuation")
		}
	}

	if rsi != nil {
		if *rsi < 35 {
			reasons = append(reasons, "oversold RSI")
		} else if *rsi > 70 {
			reasons = append(reasons, "overbought RSI")
		}
	}

	basis := "current market conditions"
	if len(reasons) > 0 {
		basis = strings.Join(reasons, ", ")
	}

	direction := "up"
	change := snapshot.ChangePercent
	if change < 0 {
		direction = "down"
		change = -change
	}

	return fmt.Sprintf("%s rating based on %s. Price %s %.1f%% today.",
		strings.ReplaceAll(label, "_", " "), basis, direction, change)
}
