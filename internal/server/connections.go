package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds each websocket write.
const writeWait = 5 * time.Second

// connWithMutex wraps a WebSocket connection with its own mutex for thread-safe writes.
type connWithMutex struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// connections tracks live preview clients for broadcasting.
type connections struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]*connWithMutex
}

func newConnections() *connections {
	return &connections{conns: make(map[*websocket.Conn]*connWithMutex)}
}

func (c *connections) add(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conns[conn] = &connWithMutex{conn: conn}
}

func (c *connections) remove(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.conns, conn)
}

func (c *connections) count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.conns)
}

// broadcast writes message to every client, dropping clients whose write fails.
func (c *connections) broadcast(message any) {
	c.mu.RLock()
	targets := make([]*connWithMutex, 0, len(c.conns))
	for _, cwm := range c.conns {
		targets = append(targets, cwm)
	}
	c.mu.RUnlock()

	for _, cwm := range targets {
		cwm.mu.Lock()
		err := writeConn(cwm.conn, message)
		cwm.mu.Unlock()

		if err != nil {
			c.remove(cwm.conn)
			_ = cwm.conn.Close()
		}
	}
}

// send writes to a single client under its mutex.
func (c *connections) send(conn *websocket.Conn, message any) error {
	c.mu.RLock()
	cwm, ok := c.conns[conn]
	c.mu.RUnlock()

	if !ok {
		return writeConn(conn, message)
	}

	cwm.mu.Lock()
	defer cwm.mu.Unlock()
	return writeConn(cwm.conn, message)
}

func writeConn(conn *websocket.Conn, message any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(message)
}

func (c *connections) closeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for conn := range c.conns {
		_ = conn.Close()
		delete(c.conns, conn)
	}
}
