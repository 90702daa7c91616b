// Package monitor exposes a running simulation over HTTP. The driver
// publishes immutable snapshots into a Store; handlers only ever read the
// store and the census ledger, so they never contend with the evolve loop.
package monitor

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/lifegrid/internal/census"
	"github.com/banshee-data/lifegrid/internal/httputil"
	"github.com/banshee-data/lifegrid/internal/monitoring"
)

// ANSI escape codes for the request logger.
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>lifegrid monitor</title></head>
<body>
<h1>lifegrid run %s</h1>
<p>Generation %d, population %d, captured %s.</p>
<ul>
<li><a href="/api/status">/api/status</a> (JSON run status)</li>
<li><a href="/api/board">/api/board</a> (current board text)</li>
<li><a href="/api/census">/api/census</a> (JSON population history)</li>
<li><a href="/chart">/chart</a> (population chart)</li>
<li><a href="/debug/">/debug/</a> (debug index)</li>
</ul>
</body>
</html>
`

// Server handles the HTTP interface for observing a run.
type Server struct {
	store  *Store
	ledger *census.Ledger
}

// NewServer creates a server reading from the given store and ledger.
func NewServer(store *Store, ledger *census.Ledger) *Server {
	return &Server{
		store:  store,
		ledger: ledger,
	}
}

// ServeMux configures the HTTP routes and handlers.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/board", s.handleBoard)
	mux.HandleFunc("/api/census", s.handleCensus)
	mux.HandleFunc("/chart", s.handleChart)

	return mux
}

// handleIndex serves a small landing page linking the endpoints.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	snap, ok := s.store.Latest()
	if !ok {
		fmt.Fprintf(w, indexHTML, "(pending)", 0, 0, "never")
		return
	}
	fmt.Fprintf(w, indexHTML,
		html.EscapeString(snap.RunID), snap.Generation, snap.Population,
		snap.CapturedAt.UTC().Format(time.RFC3339))
}

// handleStatus returns the latest run status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	snap, ok := s.store.Latest()
	if !ok {
		httputil.WriteJSONError(w, http.StatusServiceUnavailable, "no snapshot published yet")
		return
	}

	type statusResponse struct {
		RunID      string    `json:"run_id"`
		Generation int       `json:"generation"`
		Population int       `json:"population"`
		CapturedAt time.Time `json:"captured_at"`
	}
	httputil.WriteJSONOK(w, statusResponse{
		RunID:      snap.RunID,
		Generation: snap.Generation,
		Population: snap.Population,
		CapturedAt: snap.CapturedAt,
	})
}

// handleBoard returns the latest board in its canonical text form.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	snap, ok := s.store.Latest()
	if !ok {
		httputil.WriteJSONError(w, http.StatusServiceUnavailable, "no snapshot published yet")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, snap.Board)
}

// handleCensus returns the recorded population history as a JSON array.
func (s *Server) handleCensus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	httputil.WriteJSONOK(w, s.ledger.Snapshot())
}

// handleChart renders the census population chart as a standalone HTML page.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	var buf bytes.Buffer
	if err := s.ledger.RenderChart(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[Monitor] [%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}
