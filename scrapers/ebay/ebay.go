package ebay

import (
	"github.com/raushankrgupta/product-price-compare/config"
	"github.com/raushankrgupta/product-price-compare/models"
	"github.com/raushankrgupta/product-price-compare/pricing"
	"github.com/raushankrgupta/product-price-compare/scrapers/base"
	"github.com/rs/zerolog"
)

// EbayScraper scrapes eBay search results, reporting seller information
type EbayScraper struct {
	*base.BaseScraper
}

// Rules returns eBay's field locations. The s-card layout is the newer result markup.
func Rules(site config.SiteConfig, placeholder string) base.SiteRules {
	return base.SiteRules{
		Site:    models.SiteEbay,
		BaseURL: site.SearchURL,
		Items: []base.ItemStrategy{
			{Selector: ".s-item"},
			{Selector: "li.s-card"},
		},
		Title:        []string{".s-item__title", ".s-card__title"},
		Price:        []string{".s-item__price", ".s-card__price"},
		Link:         []string{".s-item__link[href]", "a.su-link[href]"},
		Image:        []string{".s-item__image-img", "img.s-card__image"},
		ImageAttrs:   []string{"src", "data-src"},
		Secondary:    []string{".s-item__seller-info-text", ".su-card-container__attributes__secondary .s-card__attribute-row"},
		Exclude:      site.Exclude,
		Placeholder:  placeholder,
		NotAvailable: site.NotAvailable,
	}
}

// NewEbayScraper creates an EbayScraper from cfg. eBay is queried with default headers.
func NewEbayScraper(cfg *config.Config, fetcher base.Fetcher, normalizer *pricing.Normalizer, logger zerolog.Logger) *EbayScraper {
	return &EbayScraper{
		BaseScraper: &base.BaseScraper{
			Name:      models.SiteEbay,
			SearchURL: cfg.Ebay.SearchURL,
			Timeout:   cfg.RequestTimeout,
			Fetcher:   fetcher,
			Extractor: base.NewExtractor(Rules(cfg.Ebay, cfg.PlaceholderImage), normalizer, logger),
			Logger:    logger,
		},
	}
}
