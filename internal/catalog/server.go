package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/samber/lo"
)

// Server exposes the catalog over HTTP: substring search, barcode lookup
// and cache status.
type Server struct {
	cache    *Cache
	searcher *Searcher
}

func NewServer(cache *Cache) *Server {
	return &Server{
		cache:    cache,
		searcher: NewSearcher(cache),
	}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /barcode", s.handleBarcode)
	mux.HandleFunc("GET /status", s.handleStatus)
}

// Ready reports whether the catalog can be served; used by the readiness
// endpoint to warm the cache at startup.
func (s *Server) Ready(ctx context.Context) error {
	_, err := s.cache.Products(ctx)
	return err
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")

	limit := DefaultSearchLimit
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if n, err := strconv.Atoi(ls); err == nil && n > 0 {
			limit = n
		}
	}

	products, err := s.searcher.Search(ctx, query, limit)
	if err != nil {
		slog.ErrorContext(ctx, "search failed", "query", query, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "Kunde inte söka produkter. Försök igen senare.",
		})
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Products: lo.Map(products, func(p CachedProduct, _ int) CachedProduct {
			return p.withoutSearchText()
		}),
	})
}

func (s *Server) handleBarcode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := r.URL.Query().Get("code")

	product, err := s.searcher.ByBarcode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{
				Error: "Produkten kunde inte hittas",
			})
			return
		}
		slog.ErrorContext(ctx, "barcode lookup failed", "code", code, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "Kunde inte söka produkt. Försök igen senare.",
		})
		return
	}

	writeJSON(w, http.StatusOK, barcodeResponse{Product: product.withoutSearchText()})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cache.Status())
}

type searchResponse struct {
	Products []CachedProduct `json:"products"`
}

type barcodeResponse struct {
	Product CachedProduct `json:"product"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
