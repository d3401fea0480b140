// Package web serves the blinker status page: the active pattern, both LED
// levels and the gesture counters, as HTML for humans and JSON for scripts.
package web

import (
	"context"
	"net"
	"net/http"

	"github.com/CarlKCarlK/dua-blinka/internal/status"
)

// Server wraps an http.Server around a status.Tracker. Handlers take a fresh
// snapshot per request, so they never observe a half-updated tick.
type Server struct {
	httpServer *http.Server
	tracker    *status.Tracker
}

// New builds the server with its two routes: the HTML page at / and
// /index.html, and the machine-readable document at /index.json.
func New(addr string, tracker *status.Tracker) *Server {
	s := &Server{tracker: tracker}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/index.html", s.handlePage)
	mux.HandleFunc("/index.json", s.handleStatusJSON)

	s.httpServer = &http.Server{Addr: addr, Handler: mux}
	return s
}

// ListenAndServe blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// handlePage renders the HTML status page. The "/" pattern also catches
// every unregistered path, so anything else is a 404.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderHTML(w, s.tracker.Snapshot())
}

// handleStatusJSON serves the same document the lifecycle MQTT events carry,
// minus the event header.
func (s *Server) handleStatusJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(s.tracker.Snapshot()))
}
