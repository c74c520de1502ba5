package amazon

import (
	"github.com/raushankrgupta/product-price-compare/config"
	"github.com/raushankrgupta/product-price-compare/models"
	"github.com/raushankrgupta/product-price-compare/pricing"
	"github.com/raushankrgupta/product-price-compare/scrapers/base"
	"github.com/rs/zerolog"
)

// Headers sent with every search request. Amazon serves a robot check to bare clients.
var Headers = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36",
	"Accept-Language": "en-US,en;q=0.9",
	"Accept-Encoding": "gzip, deflate",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Referer":         "https://www.google.com/",
}

// AmazonScraper scrapes Amazon search results, reporting customer ratings
type AmazonScraper struct {
	*base.BaseScraper
}

// Rules returns Amazon's field locations.
// Result cards carry a data-asin product id; older layouts only mark the component type.
func Rules(site config.SiteConfig, placeholder string) base.SiteRules {
	return base.SiteRules{
		Site:    models.SiteAmazon,
		BaseURL: site.SearchURL,
		Items: []base.ItemStrategy{
			{Selector: "div[data-asin]", RequireAttr: "data-asin"},
			{Selector: `div[data-component-type="s-search-result"]`},
		},
		// Cards without a heading are layout wrappers
		Require:      "h2",
		Title:        []string{"h2.a-size-mini", "span.a-text-normal", "h2 span"},
		Price:        []string{"span.a-offscreen"},
		Link:         []string{"a.a-link-normal[href]"},
		Image:        []string{"img.s-image"},
		Secondary:    []string{"span.a-icon-alt"},
		Exclude:      site.Exclude,
		Placeholder:  placeholder,
		NotAvailable: site.NotAvailable,
	}
}

// NewAmazonScraper creates an AmazonScraper from cfg
func NewAmazonScraper(cfg *config.Config, fetcher base.Fetcher, normalizer *pricing.Normalizer, logger zerolog.Logger) *AmazonScraper {
	return &AmazonScraper{
		BaseScraper: &base.BaseScraper{
			Name:      models.SiteAmazon,
			SearchURL: cfg.Amazon.SearchURL,
			Headers:   Headers,
			Timeout:   cfg.RequestTimeout,
			Fetcher:   fetcher,
			Extractor: base.NewExtractor(Rules(cfg.Amazon, cfg.PlaceholderImage), normalizer, logger),
			Logger:    logger,
		},
	}
}
