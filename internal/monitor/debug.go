package monitor

import (
	"encoding/json"
	"io"
	"net/http"

	"tailscale.com/tsweb"
)

// AttachDebugRoutes attaches debugging endpoints to the given HTTP mux
// served at /debug/. These routes are accessible only over localhost/via
// Tailscale and are not publicly accessible.
func (s *Server) AttachDebugRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)

	debug.HandleFunc("census-summary", "Census summary statistics for the current run", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.ledger.Summary())
	})

	// Raw dump of the latest board, handy for curl without the JSON wrapping.
	debug.HandleSilentFunc("board", func(w http.ResponseWriter, r *http.Request) {
		snap, ok := s.store.Latest()
		if !ok {
			http.Error(w, "no snapshot published yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, snap.Board)
	})
}
