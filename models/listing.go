package models

// Site identifiers used as ResultSet keys
const (
	SiteAmazon = "amazon"
	SiteEbay   = "ebay"
)

// Sites lists every site a search covers, in display order
var Sites = []string{SiteAmazon, SiteEbay}

// Listing represents one product entry extracted from a search results page
type Listing struct {
	Site            string  `json:"site"`
	Title           string  `json:"title"`
	DisplayPrice    string  `json:"price"`         // Formatted in the target currency
	NumericPrice    float64 `json:"numeric_price"` // Sort key, always > 0
	Link            string  `json:"link"`
	ImageURL        string  `json:"image_url"`
	SecondarySignal string  `json:"secondary_signal"` // Customer rating (amazon) or seller info (ebay)
}

// ResultSet maps a site identifier to its listings sorted by price
type ResultSet map[string][]Listing

// NewResultSet returns a ResultSet with an empty, non-nil slice for every site
func NewResultSet() ResultSet {
	rs := make(ResultSet, len(Sites))
	for _, site := range Sites {
		rs[site] = []Listing{}
	}
	return rs
}
