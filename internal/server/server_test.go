package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/glaze/internal/logger"
	"github.com/alexisbeaulieu97/glaze/internal/params"
	"github.com/alexisbeaulieu97/glaze/internal/session"
)

type wireState struct {
	Type   string     `json:"type"`
	Seq    uint64     `json:"seq"`
	Preset string     `json:"preset"`
	Tab    string     `json:"tab"`
	Params params.Set `json:"params"`
	Bundle struct {
		HTML string `json:"html"`
		CSS  string `json:"css"`
		JS   string `json:"js"`
	} `json:"bundle"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	ctrl, err := session.New(params.Default(), session.Options{})
	require.NoError(t, err)

	srv := New(ctrl, logger.Nop())
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return srv, ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	// Every client is greeted with the current state.
	hello := read(t, conn)
	require.Equal(t, "bundle", hello.Type)
	return conn
}

func read(t *testing.T, conn *websocket.Conn) wireState {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg wireState
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestServesGeneratedFiles(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/", "text/html", "<!DOCTYPE html>"},
		{"/index.html", "text/html", `<link rel="stylesheet" href="styles.css">`},
		{"/styles.css", "text/css", "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"},
		{"/script.js", "text/javascript", "addEventListener"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), tt.contentType)
			assert.Contains(t, body, tt.contains)
		})
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	resp, _ := get(t, ts.URL+"/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPresetsEndpoint(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/api/presets")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var presets []presetResponse
	require.NoError(t, json.Unmarshal([]byte(body), &presets))
	require.Len(t, presets, 4)
	assert.Equal(t, "ios", presets[0].Name)
	assert.Equal(t, "minimal", presets[3].Name)
	assert.Equal(t, 180, presets[2].Params.GradientAngle)
}

func TestBundleEndpoint(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/api/bundle")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var state wireState
	require.NoError(t, json.Unmarshal([]byte(body), &state))
	assert.Equal(t, "bundle", state.Type)
	assert.Equal(t, "html", state.Tab)
	assert.Equal(t, params.Default(), state.Params)
	assert.Contains(t, state.Bundle.CSS, "blur(12px)")
}

func TestWebsocketUpdateBroadcastsToAllClients(t *testing.T) {
	t.Parallel()

	srv, ts := newTestServer(t)
	a := dial(t, ts)
	b := dial(t, ts)
	require.Eventually(t, func() bool { return srv.Clients() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, a.WriteJSON(map[string]any{
		"type":   "update",
		"params": map[string]any{"blurAmount": 20, "bgColor1": "#FF1493"},
	}))

	for _, conn := range []*websocket.Conn{a, b} {
		msg := read(t, conn)
		assert.Equal(t, "bundle", msg.Type)
		assert.Equal(t, 20.0, msg.Params.BlurAmount)
		assert.Equal(t, "#FF1493", msg.Params.BgColor1)
		assert.Equal(t, 135, msg.Params.GradientAngle, "missing keys keep their values")
		assert.Contains(t, msg.Bundle.CSS, "blur(20px)")
		assert.Contains(t, msg.Bundle.CSS, "#ff1493")
	}

	_, body := get(t, ts.URL+"/styles.css")
	assert.Contains(t, body, "blur(20px)")
}

func TestWebsocketErrorGoesToSenderOnly(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	a := dial(t, ts)
	b := dial(t, ts)

	require.NoError(t, a.WriteJSON(map[string]any{
		"type":   "update",
		"params": map[string]any{"glassColor": "nothex"},
	}))

	msg := read(t, a)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "glassColor", msg.Field)
	assert.Contains(t, msg.Message, "nothex")

	// b sees the next successful change, not the error.
	require.NoError(t, a.WriteJSON(map[string]any{"type": "preset", "name": "stripe"}))
	assert.Equal(t, "bundle", read(t, a).Type)

	next := read(t, b)
	assert.Equal(t, "bundle", next.Type)
	assert.Equal(t, "stripe", next.Preset)
}

func TestWebsocketRejectsBadMessages(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	conn := dial(t, ts)

	tests := []struct {
		name  string
		msg   map[string]any
		field string
	}{
		{"unknown type", map[string]any{"type": "dance"}, "type"},
		{"unknown preset", map[string]any{"type": "preset", "name": "neon"}, ""},
		{"bad tab", map[string]any{"type": "tab", "tab": "svg"}, "tab"},
		{"missing params", map[string]any{"type": "update"}, "params"},
		{"unknown param", map[string]any{"type": "update", "params": map[string]any{"glow": 1}}, "params"},
		{"out of range", map[string]any{"type": "update", "params": map[string]any{"transparency": 2}}, "transparency"},
	}

	for _, tt := range tests {
		require.NoError(t, conn.WriteJSON(tt.msg), tt.name)
		msg := read(t, conn)
		assert.Equal(t, "error", msg.Type, tt.name)
		assert.Equal(t, tt.field, msg.Field, tt.name)
		assert.NotEmpty(t, msg.Message, tt.name)
	}
}

func TestWebsocketTabAndPreset(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "tab", "tab": "css"}))
	assert.Equal(t, "css", read(t, conn).Tab)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "preset", "name": "Vibrant"}))
	msg := read(t, conn)
	assert.Equal(t, "vibrant", msg.Preset)
	assert.Equal(t, 180, msg.Params.GradientAngle)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "update", "params": map[string]any{"borderWidth": 2}}))
	msg = read(t, conn)
	assert.Empty(t, msg.Preset)
	assert.Equal(t, 2.0, msg.Params.BorderWidth)
}

func TestClientCountDropsOnDisconnect(t *testing.T) {
	t.Parallel()

	srv, ts := newTestServer(t)
	conn := dial(t, ts)
	require.Eventually(t, func() bool { return srv.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return srv.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestWebsocketOverflowingUpdateKeepsClientsConnected(t *testing.T) {
	t.Parallel()

	srv, ts := newTestServer(t)
	a := dial(t, ts)
	b := dial(t, ts)
	require.Eventually(t, func() bool { return srv.Clients() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, a.WriteJSON(map[string]any{
		"type":   "update",
		"params": map[string]any{"shadowIntensity": 1e308},
	}))

	msg := read(t, a)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "shadowIntensity", msg.Field)
	assert.Equal(t, 2, srv.Clients())

	resp, body := get(t, ts.URL+"/api/bundle")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var state wireState
	require.NoError(t, json.Unmarshal([]byte(body), &state))
	assert.NotContains(t, state.Bundle.CSS, "Inf")

	_, css := get(t, ts.URL+"/styles.css")
	assert.Contains(t, css, "15px 15px 30px #0000001a")

	// Both clients still receive the next good change.
	require.NoError(t, b.WriteJSON(map[string]any{"type": "preset", "name": "ios"}))
	assert.Equal(t, "bundle", read(t, a).Type)
	assert.Equal(t, "bundle", read(t, b).Type)
}

func TestWebsocketBroadcastsArriveInOrder(t *testing.T) {
	t.Parallel()

	const perSender = 20

	_, ts := newTestServer(t)
	watcher := dial(t, ts)
	senders := []*websocket.Conn{dial(t, ts), dial(t, ts)}

	// Senders also receive every broadcast; drain them so no socket buffer fills.
	for _, conn := range senders {
		require.NoError(t, conn.SetReadDeadline(time.Time{}))
		go func(conn *websocket.Conn) {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}(conn)
	}

	var wg sync.WaitGroup
	for i, conn := range senders {
		wg.Add(1)
		go func(i int, conn *websocket.Conn) {
			defer wg.Done()
			for n := 0; n < perSender; n++ {
				blur := float64(i*100 + n)
				if err := conn.WriteJSON(map[string]any{
					"type":   "update",
					"params": map[string]any{"blurAmount": blur},
				}); err != nil {
					t.Errorf("sender %d: %v", i, err)
					return
				}
			}
		}(i, conn)
	}
	wg.Wait()

	var last wireState
	for n := 0; n < len(senders)*perSender; n++ {
		msg := read(t, watcher)
		require.Equal(t, "bundle", msg.Type)
		require.Greater(t, msg.Seq, last.Seq, fmt.Sprintf("message %d out of order", n))
		last = msg
	}
	assert.Equal(t, uint64(len(senders)*perSender), last.Seq)

	_, body := get(t, ts.URL+"/api/bundle")
	var current wireState
	require.NoError(t, json.Unmarshal([]byte(body), &current))
	assert.Equal(t, last.Seq, current.Seq)
	assert.Equal(t, last.Params, current.Params)
}
