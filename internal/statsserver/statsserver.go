// Package statsserver exposes a dispatcher's decode diagnostics as a
// small JSON HTTP API, for operators polling feed health without
// shipping a full metrics stack.
package statsserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"asterixdecode/internal/asterix"
)

// Server serves /health and /stats over HTTP.
type Server struct {
	diag *asterix.Diagnostics
	addr string
}

// New builds a Server reporting diag's counters, listening on addr.
func New(diag *asterix.Diagnostics, addr string) *Server {
	return &Server{diag: diag, addr: addr}
}

// Router builds the chi router. Exposed separately from Run so it
// can be embedded into another router or exercised directly in tests.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/stats", s.handleStats)

	return r
}

// Run starts the HTTP server and blocks until it exits.
func (s *Server) Run() error {
	return http.ListenAndServe(s.addr, s.Router())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.diag.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
