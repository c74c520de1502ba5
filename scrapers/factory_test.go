package scrapers

import (
	"testing"

	"github.com/raushankrgupta/product-price-compare/config"
	"github.com/raushankrgupta/product-price-compare/models"
	"github.com/raushankrgupta/product-price-compare/scrapers/base"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFetcher(t *testing.T) {
	cfg := config.Default()

	f, err := NewFetcher(cfg)
	require.NoError(t, err)
	assert.IsType(t, &base.HTTPFetcher{}, f)

	cfg.FetchMode = config.FetchModeBrowser
	f, err = NewFetcher(cfg)
	require.NoError(t, err)
	assert.IsType(t, &base.BrowserFetcher{}, f)

	cfg.FetchMode = "carrier-pigeon"
	_, err = NewFetcher(cfg)
	assert.Error(t, err)
}

func TestNewScrapers(t *testing.T) {
	cfg := config.Default()
	fetcher := base.NewHTTPFetcher(cfg.RequestTimeout)

	all := NewScrapers(cfg, fetcher, nil, zerolog.Nop())
	require.Len(t, all, 2)
	assert.Equal(t, models.SiteAmazon, all[0].Site())
	assert.Equal(t, models.SiteEbay, all[1].Site())
}
