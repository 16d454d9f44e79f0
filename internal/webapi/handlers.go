package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spboyer/comborank/internal/dataset"
	"github.com/spboyer/comborank/internal/metrics"
	"github.com/spboyer/comborank/internal/models"
	"github.com/spboyer/comborank/internal/orchestration"
)

// Version is set at build time or defaults to dev.
var Version = "dev"

// maxBodyBytes bounds request bodies. Variant lists of a few hundred
// thousand lines fit comfortably.
const maxBodyBytes = 32 << 20

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store  RunStore
	runner *orchestration.Runner
}

// NewHandlers creates a new Handlers with the given store and runner. A nil
// runner gets a default one.
func NewHandlers(store RunStore, runner *orchestration.Runner) *Handlers {
	if runner == nil {
		runner = orchestration.NewRunner()
	}
	return &Handlers{store: store, runner: runner}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleDefaults returns the default run configuration.
func (h *Handlers) HandleDefaults(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.DefaultRunConfig())
}

// HandleRank ranks the posted variants against the posted rounds.
func (h *Handlers) HandleRank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if !decodeBody(w, r, &req) {
		return
	}

	variants, err := resolveVariants(req.VariantsText, req.Variants)
	if err != nil {
		writeRunError(w, err)
		return
	}
	rounds, err := resolveRounds(req.RoundsText, req.Rounds)
	if err != nil {
		writeRunError(w, err)
		return
	}
	cfg, err := models.DecodeRunConfig(models.DefaultRunConfig(), req.Config)
	if err != nil {
		writeRunError(w, err)
		return
	}

	outcome, err := h.runner.Run(r.Context(), orchestration.Input{
		Variants: variants,
		Rounds:   rounds,
		Config:   cfg,
	})
	if err != nil {
		writeRunError(w, err)
		return
	}

	if err := h.store.Save(outcome); err != nil {
		slog.Warn("Failed to store run", "run_id", outcome.RunID, "error", err)
	}
	writeJSON(w, http.StatusOK, outcome)
}

// HandleStats describes the posted inputs without ranking them.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	var req StatsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	variants, err := resolveVariants(req.VariantsText, req.Variants)
	if err != nil {
		writeRunError(w, err)
		return
	}
	rounds, err := resolveRounds(req.RoundsText, req.Rounds)
	if err != nil {
		writeRunError(w, err)
		return
	}
	if len(variants) == 0 && len(rounds) == 0 {
		writeError(w, http.StatusBadRequest, "no input: provide variants, rounds or both")
		return
	}

	totalNumbers := req.TotalNumbers
	if totalNumbers == 0 {
		totalNumbers = models.DefaultTotalNumbers
	}
	k := req.NumbersPerCombo
	if k == 0 {
		k = models.DefaultNumbersPerCombo
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		Variants: metrics.DescribeVariants(variants, totalNumbers, k),
		Rounds:   metrics.DescribeRounds(rounds),
	})
}

// HandleRuns returns a list of all runs, with optional sort/order query params.
func (h *Handlers) HandleRuns(w http.ResponseWriter, r *http.Request) {
	sortField := r.URL.Query().Get("sort")
	order := r.URL.Query().Get("order")

	runs, err := h.store.ListRuns(sortField, order)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// HandleRunDetail returns a stored run with its ranked variants.
func (h *Handlers) HandleRunDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		// Fallback: extract from URL path for compatibility.
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/runs/"), "/")
		if len(parts) > 0 {
			id = parts[0]
		}
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "run id is required")
		return
	}

	outcome, err := h.store.GetRun(id)
	if err != nil {
		if errors.Is(err, ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store RunStore, runner *orchestration.Runner) {
	h := NewHandlers(store, runner)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/defaults", h.HandleDefaults)
	mux.HandleFunc("POST /api/rank", h.HandleRank)
	mux.HandleFunc("POST /api/stats", h.HandleStats)
	mux.HandleFunc("GET /api/runs", h.HandleRuns)
	mux.HandleFunc("GET /api/runs/{id}", h.HandleRunDetail)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// decodeBody reads a size-limited JSON body into v. On failure it writes
// the error response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func resolveVariants(text string, list []models.Variant) ([]models.Variant, error) {
	if text != "" && len(list) > 0 {
		return nil, fmt.Errorf("%w: provide either variants_text or variants, not both", models.ErrInvalidConfig)
	}
	if text != "" {
		return dataset.ParseVariantsString(text, "variants_text")
	}
	for i, v := range list {
		if err := dataset.CheckVariantID(v.ID); err != nil {
			return nil, fmt.Errorf("%w: variants[%d]: %v", models.ErrInvalidConfig, i, err)
		}
	}
	return list, nil
}

func resolveRounds(text string, list []models.Round) ([]models.Round, error) {
	if text != "" && len(list) > 0 {
		return nil, fmt.Errorf("%w: provide either rounds_text or rounds, not both", models.ErrInvalidConfig)
	}
	if text != "" {
		return dataset.ParseRoundsString(text, "rounds_text")
	}
	return list, nil
}

func writeRunError(w http.ResponseWriter, err error) {
	if orchestration.IsInputError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Error("Ranking request failed", "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
