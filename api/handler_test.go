package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/raushankrgupta/product-price-compare/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	mu      sync.Mutex
	queries []string
}

func (f *fakeSearcher) SearchWithStatus(ctx context.Context, query string) (models.ResultSet, []models.SiteStatus) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	rs := models.NewResultSet()
	rs[models.SiteAmazon] = []models.Listing{{
		Site:            models.SiteAmazon,
		Title:           "Desk Lamp",
		DisplayPrice:    "₹ 835.00",
		NumericPrice:    835,
		Link:            "https://www.amazon.com/dp/L1",
		ImageURL:        "https://m.media-amazon.com/lamp.jpg",
		SecondarySignal: "4.2 out of 5 stars",
	}}
	return rs, []models.SiteStatus{
		{Site: models.SiteAmazon, Count: 1},
		{Site: models.SiteEbay, Err: "fetch ebay: status code error: 503"},
	}
}

type fakeHistory struct {
	records []models.SearchRecord
	err     error
}

func (f *fakeHistory) Record(ctx context.Context, rec models.SearchRecord) error {
	f.records = append(f.records, rec)
	return f.err
}

func (f *fakeHistory) Recent(ctx context.Context, limit int64) ([]models.SearchRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if int64(len(f.records)) > limit {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func newTestMux(searcher Searcher, history HistoryStore) *http.ServeMux {
	mux := http.NewServeMux()
	NewHandler(searcher, history, zerolog.Nop()).Routes(mux)
	return mux
}

func TestSearchHandlerQueryParam(t *testing.T) {
	searcher := &fakeSearcher{}
	mux := newTestMux(searcher, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=+desk+lamp+", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"desk lamp"}, searcher.queries)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "desk lamp", resp.Query)
	require.Len(t, resp.Results[models.SiteAmazon], 1)
	assert.Equal(t, "Desk Lamp", resp.Results[models.SiteAmazon][0].Title)
	assert.NotNil(t, resp.Results[models.SiteEbay])
	assert.Empty(t, resp.Results[models.SiteEbay])
	require.Len(t, resp.Status, 2)
	assert.True(t, resp.Status[1].Failed())
}

func TestSearchHandlerJSONBody(t *testing.T) {
	searcher := &fakeSearcher{}
	mux := newTestMux(searcher, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"query":"usb hub"}`))
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"usb hub"}, searcher.queries)
}

func TestSearchHandlerMissingQuery(t *testing.T) {
	searcher := &fakeSearcher{}
	mux := newTestMux(searcher, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=%20%20", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, searcher.queries)
}

func TestSearchHandlerRecordsHistory(t *testing.T) {
	history := &fakeHistory{}
	mux := newTestMux(&fakeSearcher{}, history)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=lamp", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, history.records, 1)
	assert.Equal(t, "lamp", history.records[0].Query)
	assert.NotEmpty(t, history.records[0].RequestID)
	assert.Len(t, history.records[0].Statuses, 2)
	assert.False(t, history.records[0].CreatedAt.IsZero())
}

func TestSearchHandlerHistoryFailureIsNotFatal(t *testing.T) {
	mux := newTestMux(&fakeSearcher{}, &fakeHistory{err: errors.New("mongo down")})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=lamp", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIndexHandlerGet(t *testing.T) {
	searcher := &fakeSearcher{}
	mux := newTestMux(searcher, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="product_name"`)
	assert.Empty(t, searcher.queries)
}

func TestIndexHandlerPost(t *testing.T) {
	searcher := &fakeSearcher{}
	mux := newTestMux(searcher, nil)

	form := url.Values{"product_name": {"  desk lamp  "}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"desk lamp"}, searcher.queries)

	body := rec.Body.String()
	assert.Contains(t, body, "Amazon (1)")
	assert.Contains(t, body, "eBay (0)")
	assert.Contains(t, body, "Desk Lamp")
	assert.Contains(t, body, "₹ 835.00")
	assert.Contains(t, body, "No results found.")
}

func TestIndexHandlerPostBlankQuery(t *testing.T) {
	searcher := &fakeSearcher{}
	mux := newTestMux(searcher, nil)

	form := url.Values{"product_name": {"   "}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, searcher.queries)

	body := rec.Body.String()
	assert.Contains(t, body, "Amazon (0)")
	assert.Contains(t, body, "eBay (0)")
	assert.Equal(t, 2, strings.Count(body, "No results found."))
}

func TestIndexHandlerUnknownPath(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux(&fakeSearcher{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistoryHandler(t *testing.T) {
	history := &fakeHistory{records: []models.SearchRecord{{Query: "a"}, {Query: "b"}, {Query: "c"}}}
	mux := newTestMux(&fakeSearcher{}, history)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history?limit=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var records []models.SearchRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	assert.Len(t, records, 2)
}

func TestHistoryHandlerDisabled(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux(&fakeSearcher{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistoryHandlerBadLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux(&fakeSearcher{}, &fakeHistory{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history?limit=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
