package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundPrice(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{24.999, 25.00},
		{25.5, 25.5},
		{0, 0},
		{19.994, 19.99},
		{49.995, 50.00},
		{100.1234, 100.12},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RoundPrice(tc.in), "RoundPrice(%v)", tc.in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$25.00", FormatPrice(24.999))
	assert.Equal(t, "$0.00", FormatPrice(0))
	assert.Equal(t, "$1,234.50", FormatPrice(1234.5))
	assert.Equal(t, "$9.99", FormatPrice(9.99))
}

func TestSumPrices_NoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 in float64 is 0.30000000000000004
	assert.Equal(t, 0.3, SumPrices(0.1, 0.2))
	assert.Equal(t, 0.0, SumPrices())
	assert.Equal(t, 75.5, SumPrices(25, 25.5, 25))
}
