package web

import (
	"sync"
	"time"

	websocket "github.com/gorilla/websocket"

	constants "github.com/inference-gateway/gridpick/internal/constants"
	logger "github.com/inference-gateway/gridpick/internal/logger"
)

const clientSendBuffer = 16

// Hub tracks connected operator clients and fans outbound messages out to
// them
type Hub struct {
	clients map[string]*client
	mu      sync.RWMutex
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	logger.Info("Surface client connected", "id", c.id, "total", len(h.clients))
}

func (h *Hub) unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, exists := h.clients[id]; exists {
		c.close()
		delete(h.clients, id)
		logger.Info("Surface client disconnected", "id", id, "total", len(h.clients))
	}
}

// Broadcast queues data for every client. Clients whose buffer is full are
// disconnected.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	var slow []string
	for id, c := range h.clients {
		if !c.enqueue(data) {
			slow = append(slow, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range slow {
		logger.Warn("Dropping slow surface client", "id", id)
		h.unregister(id)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown disconnects every client
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	logger.Info("Shutting down surface hub", "active_clients", len(h.clients))
	for _, c := range h.clients {
		c.close()
	}
	h.clients = make(map[string]*client)
}

func newClient(id string, conn *websocket.Conn) *client {
	return &client{
		id:   id,
		conn: conn,
		send: make(chan []byte, clientSendBuffer),
		done: make(chan struct{}),
	}
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}

// enqueue queues data without blocking and reports whether it was accepted
func (c *client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// writePump drains the send queue and keeps the connection alive with pings
func (c *client) writePump() {
	ticker := time.NewTicker(constants.WebSocketPingInterval)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			logger.Debug("Failed to close WebSocket connection", "id", c.id, "error", err)
		}
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(constants.WebSocketWriteTimeout))
			return

		case data := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(constants.WebSocketWriteTimeout)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Warn("Failed to write to surface client", "id", c.id, "error", err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(constants.WebSocketWriteTimeout)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
