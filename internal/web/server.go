// Package web provides the HTTP command and status server for the desk-bot
// daemon. The command endpoints use the wire format of the original device:
// GET /face?state=... and GET /head?position=... .
package web

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/sweeney/desk-bot/internal/command"
	"github.com/sweeney/desk-bot/internal/status"
)

// Server serves command endpoints and the status page over HTTP.
type Server struct {
	httpServer *http.Server
	tracker    *status.Tracker
	cmds       chan<- command.Command
}

// New creates a Server that validates commands into cmds and reads state
// from the given tracker.
func New(addr string, tracker *status.Tracker, cmds chan<- command.Command) *Server {
	s := &Server{tracker: tracker, cmds: cmds}

	mux := http.NewServeMux()
	mux.HandleFunc("/face", s.handleFace)
	mux.HandleFunc("/head", s.handleHead)
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/index.html", s.handleIndex)
	mux.HandleFunc("/index.json", s.handleJSON)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
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

// handleFace validates the state parameter and enqueues the command.
// Rejections carry a descriptive message and a client-error status.
func (s *Server) handleFace(w http.ResponseWriter, r *http.Request) {
	cmd, err := command.ParseFace(r.URL.Query().Get("state"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.submit(w, cmd)
}

// handleHead validates the position parameter and enqueues the command.
func (s *Server) handleHead(w http.ResponseWriter, r *http.Request) {
	cmd, err := command.ParseHead(r.URL.Query().Get("position"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.submit(w, cmd)
}

// submit enqueues a validated command for the control loop. The loop services
// one command per tick, so a short burst queues rather than being dropped.
func (s *Server) submit(w http.ResponseWriter, cmd command.Command) {
	select {
	case s.cmds <- cmd:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, cmd.Confirm)
	default:
		http.Error(w, "command queue full", http.StatusServiceUnavailable)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderHTML(w, snap)
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(snap))
}
