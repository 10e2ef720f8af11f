package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shophub/storefront/internal/core/domain"
)

func TestSubtotalEmptyCartIsZero(t *testing.T) {
	assert.True(t, Subtotal(nil).IsZero())
}

func TestSubtotalSumsPriceTimesQuantity(t *testing.T) {
	items := []domain.CartItem{
		{Product: product("p1", 19.99), Quantity: 2},
		{Product: product("p2", 5.50), Quantity: 3},
	}

	// 39.98 + 16.50
	assert.Equal(t, "56.48", Subtotal(items).StringFixed(2))
}

func TestRateTableKnownCountry(t *testing.T) {
	rates := DefaultRates()

	assert.Equal(t, "15.00", rates.For("Canada").StringFixed(2))
	assert.Equal(t, "10.00", rates.For("United States").StringFixed(2))
}

func TestRateTableUnknownCountryShipsFree(t *testing.T) {
	rates := DefaultRates()

	assert.True(t, rates.For("Atlantis").IsZero())
	assert.True(t, rates.For("").IsZero())
}

func TestPriceQuoteUnitedStatesExample(t *testing.T) {
	items := []domain.CartItem{
		{Product: product("p1", 19.99), Quantity: 2},
	}

	quote := PriceQuote(items, DefaultRates(), "United States")

	assert.Equal(t, "39.98", quote.Subtotal.StringFixed(2))
	assert.Equal(t, "10.00", quote.Shipping.StringFixed(2))
	assert.Equal(t, "49.98", quote.Total.StringFixed(2))
}

func TestPriceQuoteKeepsFullPrecisionInternally(t *testing.T) {
	items := []domain.CartItem{
		{Product: domain.Product{ID: "p1", Price: decimal.RequireFromString("0.105")}, Quantity: 2},
	}

	quote := PriceQuote(items, DefaultRates(), "Atlantis")

	// Internal arithmetic is exact; only display rounds.
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("0.21")))
}
