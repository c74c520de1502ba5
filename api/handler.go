package api

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/product-price-compare/models"
	"github.com/raushankrgupta/product-price-compare/utils"
	"github.com/rs/zerolog"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

var siteLabels = map[string]string{
	models.SiteAmazon: "Amazon",
	models.SiteEbay:   "eBay",
}

// Searcher runs a product search across all sites
type Searcher interface {
	SearchWithStatus(ctx context.Context, query string) (models.ResultSet, []models.SiteStatus)
}

// HistoryStore records searches. Implementations must be safe for concurrent use.
type HistoryStore interface {
	Record(ctx context.Context, rec models.SearchRecord) error
	Recent(ctx context.Context, limit int64) ([]models.SearchRecord, error)
}

// Handler serves the search form and the JSON search API
type Handler struct {
	Searcher Searcher
	History  HistoryStore // Optional
	Logger   zerolog.Logger
}

// NewHandler creates a Handler. history may be nil.
func NewHandler(searcher Searcher, history HistoryStore, logger zerolog.Logger) *Handler {
	return &Handler{
		Searcher: searcher,
		History:  history,
		Logger:   logger,
	}
}

// SearchResponse is the JSON body returned by SearchHandler
type SearchResponse struct {
	Query   string              `json:"query"`
	Results models.ResultSet    `json:"results"`
	Status  []models.SiteStatus `json:"status"`
}

type siteView struct {
	Label    string
	Listings []models.Listing
}

type indexView struct {
	Query string
	Sites []siteView
}

// Routes registers the handler's endpoints on mux
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.IndexHandler)
	mux.Handle("/search", utils.CORSMiddleware(http.HandlerFunc(h.SearchHandler)))
	mux.Handle("/history", utils.CORSMiddleware(http.HandlerFunc(h.HistoryHandler)))
}

// IndexHandler renders the search form on GET and the results on POST
func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	view := indexView{}
	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		view.Query = strings.TrimSpace(r.FormValue("product_name"))
		results := models.NewResultSet()
		if view.Query != "" {
			results = h.search(r.Context(), view.Query)
		}
		for _, site := range models.Sites {
			view.Sites = append(view.Sites, siteView{Label: siteLabels[site], Listings: results[site]})
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, view); err != nil {
		h.Logger.Error().Err(err).Msg("Error rendering index")
	}
}

// SearchHandler returns the listings for ?q= (or a JSON body {"query": ...}) as JSON
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger.With().Str("api", "search").Logger()

	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		utils.RespondError(w, logger, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Support both query params and JSON body
	query := r.URL.Query().Get("q")
	if query == "" && r.Body != nil {
		var req struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			query = req.Query
		}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		utils.RespondError(w, logger, "Please provide a 'q' query parameter or JSON body", http.StatusBadRequest)
		return
	}

	results, statuses := h.searchWithStatus(r.Context(), query)
	utils.RespondJSON(w, logger, http.StatusOK, SearchResponse{
		Query:   query,
		Results: results,
		Status:  statuses,
	})
}

// HistoryHandler lists recent searches, newest first
func (h *Handler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger.With().Str("api", "history").Logger()

	if r.Method != http.MethodGet {
		utils.RespondError(w, logger, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.History == nil {
		utils.RespondError(w, logger, "Search history is not enabled", http.StatusNotFound)
		return
	}

	limit := int64(20)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 || n > 100 {
			utils.RespondError(w, logger, "limit must be between 1 and 100", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.History.Recent(r.Context(), limit)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load search history")
		utils.RespondError(w, logger, "Failed to load search history", http.StatusInternalServerError)
		return
	}
	utils.RespondJSON(w, logger, http.StatusOK, records)
}

func (h *Handler) search(ctx context.Context, query string) models.ResultSet {
	results, _ := h.searchWithStatus(ctx, query)
	return results
}

func (h *Handler) searchWithStatus(ctx context.Context, query string) (models.ResultSet, []models.SiteStatus) {
	requestID := uuid.New().String()
	h.Logger.Info().Str("request_id", requestID).Str("query", query).Msg("Search requested")
	results, statuses := h.Searcher.SearchWithStatus(ctx, query)

	if h.History != nil {
		rec := models.SearchRecord{
			RequestID: requestID,
			Query:     query,
			Statuses:  statuses,
			CreatedAt: time.Now(),
		}
		// The search already succeeded; history is best effort
		if err := h.History.Record(ctx, rec); err != nil {
			h.Logger.Warn().Err(err).Str("request_id", requestID).Msg("Failed to record search")
		}
	}
	return results, statuses
}
