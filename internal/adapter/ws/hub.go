package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"creativesync/internal/core/domain"
)

// Message types sent to dashboard clients.
const (
	TypeSnapshot = "snapshot"
	TypeTick     = "tick"
)

// Message is the envelope of every frame the hub sends.
type Message struct {
	Type string    `json:"type"`
	Data any       `json:"data"`
	At   time.Time `json:"at"`
}

type snapshotter interface {
	Snapshot() domain.Metrics
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is served from arbitrary origins; CORS is enforced on
	// the JSON API only.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Hub fans simulator ticks out to every connected dashboard. Client
// bookkeeping happens only on the Run goroutine.
type Hub struct {
	metrics snapshotter
	logger  *zap.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	clients map[*Client]struct{}
	count   atomic.Int64
}

// NewHub creates a hub. Call Run before serving connections.
func NewHub(metrics snapshotter, logger *zap.Logger) *Hub {
	return &Hub{
		metrics:    metrics,
		logger:     logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is done, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			h.logger.Info("websocket hub stopped")
			return nil

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Add(1)
			h.logger.Debug("websocket client connected", zap.Int64("clients", h.count.Load()))
			if msg, err := encode(TypeSnapshot, h.metrics.Snapshot()); err == nil {
				c.send <- msg
			}

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.logger.Debug("websocket client disconnected", zap.Int64("clients", h.count.Load()))
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.logger.Warn("dropping slow websocket client")
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Add(-1)
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// Publish queues a tick for all clients. It never blocks the simulator:
// when the queue is full the tick is dropped.
func (h *Hub) Publish(ev domain.TickEvent) {
	msg, err := encode(TypeTick, ev)
	if err != nil {
		h.logger.Error("encode tick", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.logger.Debug("websocket broadcast queue full, tick dropped")
	}
}

// ServeHTTP upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err), zap.String("remote", r.RemoteAddr))
		return
	}
	c := newClient(h, conn)
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

func encode(typ string, data any) ([]byte, error) {
	return json.Marshal(Message{Type: typ, Data: data, At: time.Now().UTC()})
}
