package scrapers

import (
	"fmt"

	"github.com/raushankrgupta/product-price-compare/config"
	"github.com/raushankrgupta/product-price-compare/pricing"
	"github.com/raushankrgupta/product-price-compare/scrapers/amazon"
	"github.com/raushankrgupta/product-price-compare/scrapers/base"
	"github.com/raushankrgupta/product-price-compare/scrapers/ebay"
	"github.com/rs/zerolog"
)

// NewFetcher returns the page fetcher selected by cfg.FetchMode
func NewFetcher(cfg *config.Config) (base.Fetcher, error) {
	switch cfg.FetchMode {
	case "", config.FetchModeHTTP:
		return base.NewHTTPFetcher(cfg.RequestTimeout), nil
	case config.FetchModeBrowser:
		return base.NewBrowserFetcher(cfg.RequestTimeout), nil
	default:
		return nil, fmt.Errorf("unknown fetch mode: %s", cfg.FetchMode)
	}
}

// NewScrapers returns one scraper per supported site, sharing fetcher and snapshots.
// snapshots may be nil.
func NewScrapers(cfg *config.Config, fetcher base.Fetcher, snapshots base.Snapshotter, logger zerolog.Logger) []Scraper {
	normalizer := pricing.NewNormalizer(cfg.ExchangeRate, cfg.CurrencySymbol)

	// Register scrapers here
	amazonScraper := amazon.NewAmazonScraper(cfg, fetcher, normalizer, logger)
	ebayScraper := ebay.NewEbayScraper(cfg, fetcher, normalizer, logger)
	amazonScraper.Snapshots = snapshots
	ebayScraper.Snapshots = snapshots

	return []Scraper{amazonScraper, ebayScraper}
}
