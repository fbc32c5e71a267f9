package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVolume(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "thousands suffix", input: "12.5K", want: 12500},
		{name: "millions suffix", input: "3M", want: 3000000},
		{name: "billions suffix", input: "1B", want: 1000000000},
		{name: "thousands separator", input: "1,234", want: 1234},
		{name: "lower case suffix", input: "2.5m", want: 2500000},
		{name: "surrounding spaces", input: "  45.5K ", want: 45500},
		{name: "separator with suffix", input: "1,200.5K", want: 1200500},
		{name: "empty", input: "", want: 0},
		{name: "not available", input: "N/A", want: 0},
		{name: "garbage", input: "garbage", want: 0},
		{name: "suffix only", input: "M", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseVolume(tt.input))
		})
	}
}

func TestParseFloat(t *testing.T) {
	assert.Equal(t, -2.27, ParseFloat("-2.27%"))
	assert.Equal(t, 12.0, ParseFloat("+12.00%"))
	assert.Equal(t, 1234.5, ParseFloat("1,234.5"))
	assert.Equal(t, 3.1, ParseFloat("(3.1%)"))
	assert.Equal(t, 0.0, ParseFloat("abc"))
	assert.Equal(t, 0.0, ParseFloat(""))
}

func TestParsePriceString(t *testing.T) {
	price, pct, ok := ParsePriceString("92.17 -2.14 (-2.27%)")
	assert.True(t, ok)
	assert.Equal(t, 92.17, price)
	assert.Equal(t, -2.27, pct)

	price, pct, ok = ParsePriceString("1,020.50")
	assert.False(t, ok)
	assert.Equal(t, 1020.5, price)
	assert.Equal(t, 0.0, pct)

	price, _, ok = ParsePriceString("")
	assert.False(t, ok)
	assert.Equal(t, 0.0, price)
}
