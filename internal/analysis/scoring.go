package analysis

import "math"

// clamp bounds a score to [0, 100]. Every scorer applies it exactly once,
// at the end, so intermediate sums may transiently leave the range.
func clamp(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

// fiftyTwoWeekPosition returns where price sits in the 52-week range as a
// fraction of the range, and whether the bounds were usable.
func fiftyTwoWeekPosition(price float64, high, low *float64) (float64, bool) {
	if high == nil || low == nil || *high <= *low {
		return 0, false
	}
	return (price - *low) / (*high - *low), true
}
