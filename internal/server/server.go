// Package server exposes a session over HTTP: the generated files for a
// browser preview, JSON endpoints, and a websocket for live editing.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/alexisbeaulieu97/glaze/internal/artifact"
	"github.com/alexisbeaulieu97/glaze/internal/logger"
	"github.com/alexisbeaulieu97/glaze/internal/params"
	"github.com/alexisbeaulieu97/glaze/internal/preset"
	"github.com/alexisbeaulieu97/glaze/internal/session"
	glazeerrors "github.com/alexisbeaulieu97/glaze/pkg/errors"
)

// Server serialises every controller call and every state broadcast behind mu.
type Server struct {
	mu    sync.Mutex
	seq   uint64
	ctrl  *session.Controller
	conns *connections
	log   *logger.Logger
	mux   *http.ServeMux

	upgrader websocket.Upgrader
}

// New wires routes for ctrl.
func New(ctrl *session.Controller, log *logger.Logger) *Server {
	s := &Server{
		ctrl:  ctrl,
		conns: newConnections(),
		log:   log.Component("server"),
		mux:   http.NewServeMux(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}

	s.mux.HandleFunc("GET /{$}", s.handleFile(artifact.KindMarkup))
	s.mux.HandleFunc("GET /index.html", s.handleFile(artifact.KindMarkup))
	s.mux.HandleFunc("GET /styles.css", s.handleFile(artifact.KindStylesheet))
	s.mux.HandleFunc("GET /script.js", s.handleFile(artifact.KindBehavior))
	s.mux.HandleFunc("GET /api/presets", s.handlePresets)
	s.mux.HandleFunc("GET /api/bundle", s.handleBundle)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /ws", s.handleWS)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close disconnects every websocket client.
func (s *Server) Close() {
	s.conns.closeAll()
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	return s.conns.count()
}

var contentTypes = map[artifact.Kind]string{
	artifact.KindMarkup:     "text/html; charset=utf-8",
	artifact.KindStylesheet: "text/css; charset=utf-8",
	artifact.KindBehavior:   "text/javascript; charset=utf-8",
}

func (s *Server) handleFile(kind artifact.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		text := s.ctrl.Bundle().Text(kind)
		s.mu.Unlock()

		w.Header().Set("Content-Type", contentTypes[kind])
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(text))
	}
}

type presetResponse struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Params      params.Set `json:"params"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	all := preset.All()
	resp := make([]presetResponse, 0, len(all))
	for _, p := range all {
		resp = append(resp, presetResponse{Name: p.Name, Description: p.Description, Params: p.Params})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	state := s.snapshot()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "clients": s.Clients()})
}

// stateMessage is both the /api/bundle body and the websocket broadcast.
// Seq grows by one with every successful change.
type stateMessage struct {
	Type   string          `json:"type"`
	Seq    uint64          `json:"seq"`
	Preset string          `json:"preset"`
	Tab    artifact.Kind   `json:"tab"`
	Params params.Set      `json:"params"`
	Bundle artifact.Bundle `json:"bundle"`
	Error  string          `json:"error,omitempty"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// snapshot must be called with mu held.
func (s *Server) snapshot() stateMessage {
	msg := stateMessage{
		Type:   "bundle",
		Seq:    s.seq,
		Preset: s.ctrl.Preset(),
		Tab:    s.ctrl.ActiveTab(),
		Params: s.ctrl.Params(),
		Bundle: s.ctrl.Bundle(),
	}
	if err := s.ctrl.Err(); err != nil {
		msg.Error = err.Error()
	}
	return msg
}

func newErrorMessage(err error) errorMessage {
	msg := errorMessage{Type: "error", Message: err.Error()}

	var decodeErr *glazeerrors.DecodeError
	var validationErr *glazeerrors.ValidationError
	switch {
	case errors.As(err, &decodeErr):
		msg.Field = decodeErr.Field
	case errors.As(err, &validationErr):
		msg.Field = validationErr.Field
	}
	return msg
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
