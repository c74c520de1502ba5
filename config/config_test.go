package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 83.50, cfg.ExchangeRate)
	assert.Equal(t, 25*time.Second, cfg.RequestTimeout)
	assert.Equal(t, FetchModeHTTP, cfg.FetchMode)
	assert.Equal(t, "Not Rated", cfg.Amazon.NotAvailable)
	assert.Equal(t, []string{"shop with confidence", "new listing"}, cfg.Ebay.Exclude)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EXCHANGE_RATE", "90.25")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("EBAY_EXCLUDE", "sponsored,shop with confidence")
	t.Setenv("AMAZON_SEARCH_URL", "https://www.amazon.in/s?k=")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 90.25, cfg.ExchangeRate)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"sponsored", "shop with confidence"}, cfg.Ebay.Exclude)
	assert.Equal(t, "https://www.amazon.in/s?k=", cfg.Amazon.SearchURL)
	// Untouched values keep their defaults
	assert.Equal(t, "https://www.ebay.com/sch/i.html?_nkw=", cfg.Ebay.SearchURL)
	assert.Equal(t, "Seller info not available", cfg.Ebay.NotAvailable)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
