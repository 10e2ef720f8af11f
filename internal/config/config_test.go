package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.SupabaseURL)
	assert.Equal(t, "https://checkout.stripe.com", cfg.CheckoutBaseURL)
	assert.Equal(t, "./data/checkout.db", cfg.CheckoutLogPath)
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SHOP_HTTP_ADDR", ":9090")
	t.Setenv("SHOP_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestRatesAppliesOverridesOnDefaults(t *testing.T) {
	cfg := &Config{ShippingRates: map[string]float64{
		"Canada":  12.5,
		"Iceland": 30,
	}}

	rates := cfg.Rates()

	assert.Equal(t, "12.50", rates.For("Canada").StringFixed(2))
	assert.Equal(t, "30.00", rates.For("Iceland").StringFixed(2))
	assert.Equal(t, "10.00", rates.For("United States").StringFixed(2))
	assert.True(t, rates.For("Atlantis").IsZero())
}
