package aggregator

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/raushankrgupta/product-price-compare/models"
	"github.com/raushankrgupta/product-price-compare/scrapers"
	"github.com/rs/zerolog"
)

// Aggregator runs every site's scraper for a query and merges the results
type Aggregator struct {
	scrapers []scrapers.Scraper
	logger   zerolog.Logger
}

// New creates an Aggregator over the given scrapers
func New(s []scrapers.Scraper, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		scrapers: s,
		logger:   logger,
	}
}

// Search returns every site's listings for query, each sorted by price.
// It never fails: a site that could not be scraped contributes an empty list.
func (a *Aggregator) Search(ctx context.Context, query string) models.ResultSet {
	results, _ := a.SearchWithStatus(ctx, query)
	return results
}

// SearchWithStatus is Search plus a per-site report telling failed fetches apart from empty pages.
// Statuses follow the scraper order.
func (a *Aggregator) SearchWithStatus(ctx context.Context, query string) (models.ResultSet, []models.SiteStatus) {
	results := models.NewResultSet()
	statuses := make([]models.SiteStatus, len(a.scrapers))
	found := make([][]models.Listing, len(a.scrapers))

	// Sites share nothing, so each goroutine writes only its own slot
	var wg sync.WaitGroup
	for i, s := range a.scrapers {
		wg.Add(1)
		go func(i int, s scrapers.Scraper) {
			defer wg.Done()
			start := time.Now()

			listings, err := s.Search(ctx, query)
			status := models.SiteStatus{Site: s.Site()}
			if err != nil {
				a.logger.Warn().Err(err).Str("site", s.Site()).Msg("Site returned no results")
				status.Err = err.Error()
				listings = nil
			}

			found[i] = SortByPrice(validListings(listings))
			status.Count = len(found[i])
			status.Elapsed = time.Since(start).Milliseconds()
			statuses[i] = status
		}(i, s)
	}
	wg.Wait()

	for i, s := range a.scrapers {
		results[s.Site()] = found[i]
	}

	a.logger.Info().
		Str("query", query).
		Interface("counts", counts(statuses)).
		Msg("Search complete")
	return results, statuses
}

// SortByPrice orders listings by ascending price, keeping document order for ties
func SortByPrice(listings []models.Listing) []models.Listing {
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].NumericPrice < listings[j].NumericPrice
	})
	return listings
}

// validListings drops anything without a positive price
func validListings(listings []models.Listing) []models.Listing {
	valid := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.NumericPrice > 0 {
			valid = append(valid, l)
		}
	}
	return valid
}

func counts(statuses []models.SiteStatus) map[string]int {
	m := make(map[string]int, len(statuses))
	for _, s := range statuses {
		m[s.Site] = s.Count
	}
	return m
}
