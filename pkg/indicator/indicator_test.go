package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func TestRSI(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   float64
	}{
		{name: "monotonically increasing", closes: series(10, 1, 20), want: 100},
		{name: "monotonically decreasing", closes: series(40, -1, 20), want: 0},
		{name: "flat", closes: series(10, 0, 20), want: 50},
		{
			// deltas over last 14: seven +2 and seven -1 -> avg gain 1, avg loss 0.5, rs 2
			name:   "mixed window",
			closes: []float64{10, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15, 17, 16, 18, 17},
			want:   100 - 100/3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RSI(tt.closes, DefaultRSIPeriod)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRSIInsufficientData(t *testing.T) {
	_, err := RSI(series(1, 1, 14), DefaultRSIPeriod)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestEMA(t *testing.T) {
	got := EMA([]float64{1, 2, 3}, 3)
	require.Len(t, got, 3)
	assert.InDelta(t, 1.0, got[0], 1e-12)
	assert.InDelta(t, 1.5, got[1], 1e-12)
	assert.InDelta(t, 2.25, got[2], 1e-12)
	assert.Nil(t, EMA(nil, 3))
}

func TestMACD(t *testing.T) {
	rising, err := MACD(series(100, 1, 40), DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
	require.NoError(t, err)
	assert.Greater(t, rising.MACD, 0.0)
	assert.True(t, rising.Bullish())

	falling, err := MACD(series(200, -1, 40), DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
	require.NoError(t, err)
	assert.Less(t, falling.MACD, 0.0)
	assert.False(t, falling.Bullish())

	_, err = MACD(series(1, 1, 20), DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
}
