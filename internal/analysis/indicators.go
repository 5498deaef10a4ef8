package analysis

import (
	"github.com/montanaflynn/stats"
)

// Pure technical indicator functions over a chronological close-price
// sequence (oldest first). None of them fail: insufficient history maps
// to documented neutral or absent values so scoring can always proceed.

// MACDResult holds the MACD output.
//
// The signal line is deliberately zero rather than a true 9-period EMA of
// the MACD series; downstream scoring only inspects the MACD field, so
// Histogram simply mirrors it. Keep this approximation as is.
type MACDResult struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// RSI computes the Relative Strength Index over the last period deltas.
// Returns the neutral value 50 when there are not enough prices for a
// full window of deltas, and 100 when the window has no losses.
func RSI(prices []float64, period int) float64 {
	if len(prices) < period+1 {
		return 50
	}

	var gains, losses float64
	for i := len(prices) - period; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains += change
		} else {
			losses += -change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// EMA computes an exponential moving average seeded with the first price
// and smoothed over the entire sequence, not a trailing window. The
// result therefore reflects all input history.
func EMA(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return 0
	}

	k := 2.0 / (float64(period) + 1.0)
	ema := prices[0]
	for i := 1; i < len(prices); i++ {
		ema = prices[i]*k + ema*(1-k)
	}

	return ema
}

// MACD computes EMA(12) - EMA(26). All-zero when fewer than 26 prices.
func MACD(prices []float64) MACDResult {
	if len(prices) < 26 {
		return MACDResult{}
	}

	macd := EMA(prices, 12) - EMA(prices, 26)
	return MACDResult{
		MACD:      macd,
		Signal:    0,
		Histogram: macd,
	}
}

// SMA computes the arithmetic mean of the trailing window. Returns nil
// when there are fewer prices than the window.
func SMA(prices []float64, window int) *float64 {
	if window <= 0 || len(prices) < window {
		return nil
	}

	mean, err := stats.Mean(prices[len(prices)-window:])
	if err != nil {
		return nil
	}
	return &mean
}
