package base

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/raushankrgupta/product-price-compare/models"
	"github.com/rs/zerolog"
)

// ErrBlocked is returned when a site answers with a bot check instead of results
var ErrBlocked = errors.New("blocked by bot check")

// Page titles sites use for robot checks and access refusals
var blockedTitles = []string{"robot check", "captcha", "access denied"}

// Fetcher retrieves the raw markup behind a URL
type Fetcher interface {
	Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// Snapshotter stores fetched markup so selector drift can be inspected later
type Snapshotter interface {
	Save(ctx context.Context, site, query string, body []byte) error
}

// HTTPFetcher fetches pages with a single GET request
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher whose requests give up after timeout
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ForceAttemptHTTP2:     false,
				TLSNextProto:          make(map[string]func(string, *tls.Conn) http.RoundTripper),
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

// Fetch issues a GET with the given headers and returns the decoded body.
// Any non-2xx status is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}

	body, err := decodeBody(res)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return io.ReadAll(body)
}

// decodeBody undoes the Content-Encoding when Accept-Encoding was set by hand,
// since the transport only decompresses transparently when it chose the header itself.
func decodeBody(res *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(res.Header.Get("Content-Encoding"))) {
	case "gzip":
		zr, err := gzip.NewReader(res.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip body: %w", err)
		}
		return zr, nil
	case "deflate":
		zr, err := zlib.NewReader(res.Body)
		if err != nil {
			return nil, fmt.Errorf("deflate body: %w", err)
		}
		return zr, nil
	default:
		return io.NopCloser(res.Body), nil
	}
}

// BuildSearchURL appends the query to a site's search URL, encoding spaces as '+'
func BuildSearchURL(searchURL, query string) string {
	return searchURL + url.QueryEscape(query)
}

// BaseScraper runs the fetch-then-extract pipeline for one site
type BaseScraper struct {
	Name      string
	SearchURL string
	Headers   map[string]string
	Timeout   time.Duration
	Fetcher   Fetcher
	Extractor *Extractor
	Snapshots Snapshotter
	Logger    zerolog.Logger
}

// Site returns the site identifier
func (b *BaseScraper) Site() string {
	return b.Name
}

// Search fetches the search results page for query and extracts its listings.
// A transport failure is logged and returned together with an empty slice.
func (b *BaseScraper) Search(ctx context.Context, query string) ([]models.Listing, error) {
	searchURL := BuildSearchURL(b.SearchURL, query)
	logger := b.Logger.With().Str("site", b.Name).Str("url", searchURL).Logger()
	logger.Info().Str("query", query).Msg("Scraping search results")

	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}

	body, err := b.Fetcher.Fetch(ctx, searchURL, b.Headers)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve search page")
		return []models.Listing{}, fmt.Errorf("fetch %s: %w", b.Name, err)
	}

	if b.Snapshots != nil {
		if err := b.Snapshots.Save(ctx, b.Name, query, body); err != nil {
			logger.Warn().Err(err).Msg("Failed to save page snapshot")
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse search page")
		return []models.Listing{}, fmt.Errorf("parse %s: %w", b.Name, err)
	}

	if isBlocked(doc) {
		logger.Warn().Str("title", strings.TrimSpace(doc.Find("title").First().Text())).Msg("Search page is a bot check")
		return []models.Listing{}, fmt.Errorf("%s: %w", b.Name, ErrBlocked)
	}

	listings := b.Extractor.Extract(doc)
	logger.Info().Int("listings", len(listings)).Msg("Processed search results")
	return listings, nil
}

func isBlocked(doc *goquery.Document) bool {
	title := strings.ToLower(strings.TrimSpace(doc.Find("title").First().Text()))
	if title == "" {
		return false
	}
	for _, t := range blockedTitles {
		if strings.Contains(title, t) {
			return true
		}
	}
	return false
}
