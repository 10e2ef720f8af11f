// Package config loads storefront settings from an optional config.yaml and
// the environment (env wins). Shipping rates default to the built-in table
// and can be overridden per country from config.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/shophub/storefront/internal/cart"
)

// Config is the full storefront configuration.
type Config struct {
	HTTPAddr string `mapstructure:"http_addr"`

	// Remote record store (Supabase project). When URL is empty the service
	// runs on the in-memory store, for local development.
	SupabaseURL     string `mapstructure:"supabase_url"`
	SupabaseAnonKey string `mapstructure:"supabase_anon_key"`

	// Redis product cache; empty disables caching.
	RedisAddr string `mapstructure:"redis_addr"`

	// Payment collaborator.
	StripePublishableKey string `mapstructure:"stripe_publishable_key"`
	CheckoutEndpoint     string `mapstructure:"checkout_endpoint"`
	CheckoutBaseURL      string `mapstructure:"checkout_base_url"`

	// Durable checkout log location.
	CheckoutLogPath string `mapstructure:"checkout_log_path"`

	// Per-country shipping cost overrides.
	ShippingRates map[string]float64 `mapstructure:"shipping_rates"`
}

// Load reads config.yaml from the working directory if present, then applies
// environment overrides (SHOP_HTTP_ADDR, SHOP_REDIS_ADDR, ...).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("shop")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("supabase_url", "")
	v.SetDefault("supabase_anon_key", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("stripe_publishable_key", "")
	v.SetDefault("checkout_endpoint", "http://localhost:8080/api/create-checkout-session")
	v.SetDefault("checkout_base_url", "https://checkout.stripe.com")
	v.SetDefault("checkout_log_path", "./data/checkout.db")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// Rates resolves the effective shipping-rate table: the built-in defaults
// with any configured overrides applied on top.
func (c *Config) Rates() cart.RateTable {
	table := cart.DefaultRates()
	for country, rate := range c.ShippingRates {
		table[country] = decimal.NewFromFloat(rate)
	}
	return table
}
