package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	glazeerrors "github.com/alexisbeaulieu97/glaze/pkg/errors"
)

// clientMessage is what browsers send over /ws. Params may be partial; missing
// keys keep their current values.
type clientMessage struct {
	Type   string          `json:"type"`
	Params json.RawMessage `json:"params,omitempty"`
	Name   string          `json:"name,omitempty"`
	Tab    string          `json:"tab,omitempty"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error(err, "websocket upgrade failed")
		return
	}

	// Registering and greeting under mu keeps the greeting ordered with broadcasts.
	s.mu.Lock()
	s.conns.add(conn)
	err = s.conns.send(conn, s.snapshot())
	s.mu.Unlock()

	s.log.WithFields(map[string]any{"remote": r.RemoteAddr, "clients": s.conns.count()}).Info("client connected")
	defer func() {
		s.conns.remove(conn)
		_ = conn.Close()
		s.log.WithFields(map[string]any{"remote": r.RemoteAddr}).Info("client disconnected")
	}()

	if err != nil {
		return
	}

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Error(err, "websocket read failed")
			}
			return
		}

		if err := s.handleMessage(conn, msg); err != nil {
			return
		}
	}
}

// handleMessage applies msg and either broadcasts the new state or replies
// with the error to conn alone. Broadcasts happen under mu, so clients see
// states in seq order. The returned error is a failed write to conn.
func (s *Server) handleMessage(conn *websocket.Conn, msg clientMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dispatch(msg); err != nil {
		return s.conns.send(conn, newErrorMessage(err))
	}

	s.seq++
	s.conns.broadcast(s.snapshot())
	return nil
}

// dispatch must be called with mu held.
func (s *Server) dispatch(msg clientMessage) error {
	var err error
	switch msg.Type {
	case "update":
		err = s.applyParams(msg.Params)
	case "preset":
		err = s.ctrl.ApplyPreset(msg.Name)
	case "tab":
		err = s.ctrl.SelectTab(msg.Tab)
	default:
		err = glazeerrors.NewValidationError("type", fmt.Sprintf("unknown message type %q", msg.Type), nil)
	}
	return err
}

// applyParams must be called with mu held.
func (s *Server) applyParams(raw json.RawMessage) error {
	if len(raw) == 0 {
		return glazeerrors.NewValidationError("params", "missing params", nil)
	}

	next := s.ctrl.Params()
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&next); err != nil {
		return glazeerrors.NewValidationError("params", err.Error(), err)
	}
	return s.ctrl.Update(next)
}
