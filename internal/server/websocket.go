package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/tickbrain/internal/core/arena"
	"github.com/zeusync/tickbrain/internal/core/observability/log"
)

const (
	sendBuffer = 16
	writeWait  = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Monitor streams arena snapshots to websocket clients. New clients receive
// the latest snapshot first. A client that falls behind is dropped instead of
// slowing the tick loop down.
type Monitor struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte
	auth    TokenAuth
	logger  log.Log
}

func NewMonitor(auth TokenAuth, logger log.Log) *Monitor {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Monitor{
		clients: make(map[*client]struct{}),
		auth:    auth,
		logger:  logger.Named("monitor"),
	}
}

// Publish fans one snapshot out to every connected client without blocking.
func (m *Monitor) Publish(snap arena.Snapshot) {
	b, err := json.Marshal(snap)
	if err != nil {
		m.logger.Error("snapshot encode failed", log.Error(err))
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest = b
	for c := range m.clients {
		select {
		case c.send <- b:
		default:
			m.logger.Warn("dropping monitor client",
				log.String("remote", c.conn.RemoteAddr().String()),
				log.Error(ErrClientTooSlow))
			m.removeLocked(c)
		}
	}
}

// Latest is the most recent encoded snapshot, or nil before the first tick.
func (m *Monitor) Latest() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest
}

func (m *Monitor) Clients() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

func (m *Monitor) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if err := m.auth.OnConnect(r); err != nil {
		m.logger.Warn("monitor client rejected", log.Error(err))
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	m.mu.Lock()
	m.clients[c] = struct{}{}
	if m.latest != nil {
		c.send <- m.latest
	}
	m.mu.Unlock()
	m.logger.Debug("monitor client connected", log.String("remote", conn.RemoteAddr().String()))

	go m.writeLoop(c)
	m.readLoop(c)
}

// readLoop discards client input and notices disconnects.
func (m *Monitor) readLoop(c *client) {
	defer m.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (m *Monitor) writeLoop(c *client) {
	defer c.conn.Close()
	for b := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			m.remove(c)
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (m *Monitor) remove(c *client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(c)
}

func (m *Monitor) removeLocked(c *client) {
	if _, ok := m.clients[c]; !ok {
		return
	}
	delete(m.clients, c)
	close(c.send)
}

// closeAll disconnects every client.
func (m *Monitor) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for c := range m.clients {
		m.removeLocked(c)
	}
}
