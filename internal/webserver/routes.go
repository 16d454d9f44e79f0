package webserver

import (
	"net/http"

	"github.com/spboyer/comborank/internal/webapi"
)

// registerRoutes sets up the API routes on the given mux.
func registerRoutes(mux *http.ServeMux, cfg Config) {
	webapi.RegisterRoutes(mux, webapi.NewFileStore(cfg.ResultsDir), cfg.Runner)
	mux.HandleFunc("/", handleNotFound)
}

// handleNotFound returns a JSON 404 for anything outside the API.
func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"not found","code":404}` + "\n")) //nolint:errcheck
}
