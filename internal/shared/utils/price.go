package utils

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// PriceScale is the number of decimal places every price is rounded to
// before it is compared, summed or displayed.
const PriceScale = 2

// RoundDecimal rounds a raw catalog price to cents.
func RoundDecimal(price float64) decimal.Decimal {
	return decimal.NewFromFloat(price).Round(PriceScale)
}

// RoundPrice rounds a raw catalog price to two decimals.
// 24.999 becomes 25.00, so it no longer sits in the "under 25" bracket.
func RoundPrice(price float64) float64 {
	return RoundDecimal(price).InexactFloat64()
}

// FormatPrice renders a price as a display string, e.g. "$1,234.50".
func FormatPrice(price float64) string {
	rounded := RoundPrice(price)
	if rounded < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -rounded)
	}
	return "$" + humanize.FormatFloat("#,###.##", rounded)
}

// SumPrices adds already-rounded prices and rounds the result again,
// so float drift from repeated addition never reaches the caller.
func SumPrices(prices ...float64) float64 {
	total := decimal.Zero
	for _, p := range prices {
		total = total.Add(RoundDecimal(p))
	}
	return total.Round(PriceScale).InexactFloat64()
}
