package messaging

import (
	"sync"
	"time"

	"kliernav-crm/internal/common/models"

	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

// Conn is the part of a websocket connection the hub writes to. Satisfied
// by *websocket.Conn from gofiber/contrib.
type Conn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Hub fans new messages of a conversation out to its connected websocket
// clients. Writes happen outside the hub lock, so a stalled client only
// delays its own conversation feed, not every broadcast.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[Conn]*hubClient
	logger  *zap.Logger
}

// hubClient serializes writes to one connection; concurrent broadcasts must
// not interleave websocket frames.
type hubClient struct {
	mu   sync.Mutex
	conn Conn
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[Conn]*hubClient),
		logger:  logger,
	}
}

func (h *Hub) Subscribe(leadID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[leadID] == nil {
		h.clients[leadID] = make(map[Conn]*hubClient)
	}
	h.clients[leadID][conn] = &hubClient{conn: conn}
}

func (h *Hub) Unsubscribe(leadID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients[leadID], conn)
	if len(h.clients[leadID]) == 0 {
		delete(h.clients, leadID)
	}
}

func (h *Hub) Broadcast(leadID string, msg models.DirectMessage) {
	h.mu.Lock()
	targets := make([]*hubClient, 0, len(h.clients[leadID]))
	for _, c := range h.clients[leadID] {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		c.mu.Lock()
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := c.conn.WriteJSON(msg)
		c.mu.Unlock()
		if err != nil {
			h.logger.Debug("websocket write failed, dropping client", zap.Error(err))
			c.conn.Close()
			h.Unsubscribe(leadID, c.conn)
		}
	}
}
