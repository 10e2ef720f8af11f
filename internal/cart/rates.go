package cart

import "github.com/shopspring/decimal"

// RateTable maps a destination country to its flat shipping cost.
type RateTable map[string]decimal.Decimal

// For returns the shipping cost for country. An unknown (or unset) country
// degrades to free shipping rather than erroring.
func (t RateTable) For(country string) decimal.Decimal {
	if rate, ok := t[country]; ok {
		return rate
	}
	return decimal.Zero
}

// Countries returns the destinations the table covers, for populating the
// country selector.
func (t RateTable) Countries() []string {
	out := make([]string, 0, len(t))
	for c := range t {
		out = append(out, c)
	}
	return out
}

// DefaultRates is the built-in shipping-rate table, in USD.
func DefaultRates() RateTable {
	return RateTable{
		"United States":  decimal.NewFromInt(10),
		"Canada":         decimal.NewFromInt(15),
		"United Kingdom": decimal.NewFromInt(20),
		"Germany":        decimal.NewFromInt(25),
		"France":         decimal.NewFromInt(25),
		"Australia":      decimal.NewFromInt(30),
		"Japan":          decimal.NewFromInt(35),
		"China":          decimal.NewFromInt(35),
		"Brazil":         decimal.NewFromInt(40),
		"India":          decimal.NewFromInt(40),
	}
}
