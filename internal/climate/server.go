package climate

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"dryck/internal/catalog"
	"dryck/internal/distance"

	"github.com/google/uuid"
)

// Server exposes the scoring engine over HTTP so manually entered products
// and catalog products are scored by the same code path.
type Server struct{}

func NewServer() *Server {
	return &Server{}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /score", s.handleScore)
	mux.HandleFunc("GET /countries", s.handleCountries)
	mux.HandleFunc("GET /settings/defaults", s.handleDefaultSettings)
}

// scoreRequest carries the product to score and optional overrides on the
// default weights. Overrides merge key by key; omitted keys keep defaults.
type scoreRequest struct {
	Product  catalog.Product `json:"product"`
	Settings *Settings       `json:"settings,omitempty"`
}

type scoreResponse struct {
	Product   catalog.Product `json:"product"`
	Score     int             `json:"score"`
	Badge     Badge           `json:"badge"`
	Breakdown Breakdown       `json:"breakdown"`
	Labels    scoreLabels     `json:"labels"`
}

type scoreLabels struct {
	Packaging  string `json:"packaging"`
	Production string `json:"production"`
	Transport  string `json:"transport"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "ogiltig förfrågan"})
		return
	}

	product := req.Product
	if strings.TrimSpace(product.Name) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "produktnamn krävs"})
		return
	}
	if product.VolumeMl <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "volym måste vara positiv"})
		return
	}
	// Manual entries arrive without an id; give them one so clients can
	// keep them in a comparison list.
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	settings := DefaultSettings()
	if req.Settings != nil {
		settings = settings.Merge(*req.Settings)
	}

	breakdown := Compute(product, settings)
	total := score(breakdown)

	slog.InfoContext(ctx, "scored product",
		"product", product.Name, "score", total, "origin", product.OriginCountry)

	writeJSON(w, http.StatusOK, scoreResponse{
		Product:   product,
		Score:     total,
		Badge:     settings.BadgeFor(total),
		Breakdown: breakdown,
		Labels: scoreLabels{
			Packaging:  PackagingLabel(product.PackagingType),
			Production: ProductionLabel(product.ProductionMethod),
			Transport:  TransportLabel(breakdown.TransportMode),
		},
	})
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, countriesResponse{Countries: distance.Countries()})
}

func (s *Server) handleDefaultSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, DefaultSettings())
}

type countriesResponse struct {
	Countries []string `json:"countries"`
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
