package base

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/product-price-compare/models"
	"github.com/raushankrgupta/product-price-compare/pricing"
	"github.com/raushankrgupta/product-price-compare/utils"
	"github.com/rs/zerolog"
)

// ItemStrategy locates candidate item fragments on a results page
type ItemStrategy struct {
	Selector string
	// RequireAttr, when set, drops candidates whose attribute is missing or empty
	RequireAttr string
}

// SiteRules describes where a site keeps each listing field.
// Every selector list is tried in order and the first match wins.
type SiteRules struct {
	Site    string
	BaseURL string // Resolves relative links and images

	Items   []ItemStrategy
	Require string // Candidates without a match for this selector are not listings

	Title     []string
	Price     []string
	Link      []string
	Image     []string
	Secondary []string

	ImageAttrs []string // Defaults to src

	Exclude      []string // Case-insensitive title substrings that mark non-listings
	Placeholder  string
	NotAvailable string
}

// Extractor turns a search results page into listings using a site's rules
type Extractor struct {
	Rules      SiteRules
	Normalizer *pricing.Normalizer
	Logger     zerolog.Logger
}

// NewExtractor creates an Extractor for the given rules
func NewExtractor(rules SiteRules, normalizer *pricing.Normalizer, logger zerolog.Logger) *Extractor {
	return &Extractor{
		Rules:      rules,
		Normalizer: normalizer,
		Logger:     logger.With().Str("site", rules.Site).Logger(),
	}
}

// ExtractHTML parses markup and extracts its listings
func (e *Extractor) ExtractHTML(markup string) []models.Listing {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		e.Logger.Debug().Err(err).Msg("Unparseable markup")
		return []models.Listing{}
	}
	return e.Extract(doc)
}

// Extract returns the listings of doc in document order.
// Fragments missing a mandatory field or a positive price are skipped.
func (e *Extractor) Extract(doc *goquery.Document) []models.Listing {
	items := e.candidates(doc)
	e.Logger.Debug().Int("candidates", items.Length()).Msg("Found potential items")

	listings := []models.Listing{}
	items.Each(func(i int, item *goquery.Selection) {
		listing, ok := e.listing(item)
		if !ok {
			return
		}
		listings = append(listings, listing)
	})
	return listings
}

// candidates tries each item strategy until one yields at least one fragment
func (e *Extractor) candidates(doc *goquery.Document) *goquery.Selection {
	for i, strategy := range e.Rules.Items {
		items := doc.Find(strategy.Selector)
		if strategy.RequireAttr != "" {
			attr := strategy.RequireAttr
			items = items.FilterFunction(func(_ int, s *goquery.Selection) bool {
				return strings.TrimSpace(s.AttrOr(attr, "")) != ""
			})
		}
		if items.Length() > 0 {
			return items
		}
		if i+1 < len(e.Rules.Items) {
			e.Logger.Debug().Str("selector", strategy.Selector).Msg("No items found, trying next selector")
		}
	}
	return doc.Selection.Slice(0, 0)
}

func (e *Extractor) listing(item *goquery.Selection) (models.Listing, bool) {
	rules := e.Rules

	if rules.Require != "" && item.Find(rules.Require).Length() == 0 {
		return models.Listing{}, false
	}

	// 1. Mandatory fields
	title := textOf(item, rules.Title)
	priceText := textOf(item, rules.Price)
	href := attrOf(item, rules.Link, []string{"href"})
	if title == "" || priceText == "" || href == "" {
		return models.Listing{}, false
	}

	// 2. Promotional fragments that look like listings
	if e.excluded(title) {
		e.Logger.Debug().Str("title", title).Msg("Skipping excluded item")
		return models.Listing{}, false
	}

	// 3. Price
	price := e.Normalizer.Normalize(priceText)
	if price <= 0 {
		return models.Listing{}, false
	}

	// 4. Optional fields
	imageAttrs := rules.ImageAttrs
	if len(imageAttrs) == 0 {
		imageAttrs = []string{"src"}
	}
	image := attrOf(item, rules.Image, imageAttrs)
	if image == "" {
		image = rules.Placeholder
	} else {
		image = utils.AbsoluteURL(rules.BaseURL, image)
	}

	secondary := textOf(item, rules.Secondary)
	if secondary == "" {
		secondary = rules.NotAvailable
	}

	return models.Listing{
		Site:            rules.Site,
		Title:           title,
		DisplayPrice:    e.Normalizer.Format(price),
		NumericPrice:    price,
		Link:            utils.AbsoluteURL(rules.BaseURL, href),
		ImageURL:        image,
		SecondarySignal: secondary,
	}, true
}

func (e *Extractor) excluded(title string) bool {
	lower := strings.ToLower(title)
	for _, phrase := range e.Rules.Exclude {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		if phrase != "" && strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// textOf returns the trimmed text of the first element matched by selectors
func textOf(item *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		found := item.Find(selector)
		if found.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(found.First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// attrOf returns the first non-empty attribute among attrs of the first element matched by selectors
func attrOf(item *goquery.Selection, selectors []string, attrs []string) string {
	for _, selector := range selectors {
		found := item.Find(selector)
		if found.Length() == 0 {
			continue
		}
		first := found.First()
		for _, attr := range attrs {
			if v := strings.TrimSpace(first.AttrOr(attr, "")); v != "" {
				return v
			}
		}
	}
	return ""
}
