// Package indicator computes the technical indicators used to rank candidates.
package indicator

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when a series is shorter than an indicator needs.
var ErrInsufficientData = errors.New("insufficient data")

const (
	DefaultRSIPeriod  = 14
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// RSI returns the relative strength index of the last close, using the simple
// average of gains and losses over the last period day-over-day deltas.
// A window with no losses yields 100; a window with no movement at all yields 50.
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("rsi period must be positive, got %d", period)
	}
	if len(closes) < period+1 {
		return 0, fmt.Errorf("rsi(%d) needs %d closes, got %d: %w", period, period+1, len(closes), ErrInsufficientData)
	}

	var gains, losses float64
	for i := len(closes) - period; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	switch {
	case avgLoss == 0 && avgGain == 0:
		return 50, nil
	case avgLoss == 0:
		return 100, nil
	}

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), nil
}

// EMA returns the exponential moving average series of values with the given span,
// seeded with the first value (alpha = 2 / (span + 1)).
func EMA(values []float64, span int) []float64 {
	if len(values) == 0 || span <= 0 {
		return nil
	}
	alpha := 2 / (float64(span) + 1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// MACDResult holds the last MACD and signal line values.
type MACDResult struct {
	MACD   float64
	Signal float64
}

// Bullish reports whether the MACD line is above its signal line.
func (m MACDResult) Bullish() bool {
	return m.MACD > m.Signal
}

// MACD computes EMA(fast) - EMA(slow) of closes and its EMA(signal) line.
// At least slow closes are required.
func MACD(closes []float64, fast, slow, signal int) (MACDResult, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 || fast >= slow {
		return MACDResult{}, fmt.Errorf("invalid macd periods %d/%d/%d", fast, slow, signal)
	}
	if len(closes) < slow {
		return MACDResult{}, fmt.Errorf("macd(%d,%d,%d) needs %d closes, got %d: %w", fast, slow, signal, slow, len(closes), ErrInsufficientData)
	}

	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := EMA(line, signal)

	last := len(closes) - 1
	return MACDResult{MACD: line[last], Signal: signalLine[last]}, nil
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
