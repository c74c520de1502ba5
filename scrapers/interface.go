package scrapers

import (
	"context"

	"github.com/raushankrgupta/product-price-compare/models"
)

// Scraper defines the interface for all search result scrapers
type Scraper interface {
	// Site returns the identifier used as the ResultSet key
	Site() string
	// Search fetches and extracts the listings for query in document order.
	// A non-nil error means the page could not be retrieved; the listings are then empty.
	Search(ctx context.Context, query string) ([]models.Listing, error)
}
