package ws

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type envelope struct {
	userID  uuid.UUID
	payload []byte
}

// Hub fans events out to the websocket connections of individual users.
// Delivery is best-effort: a slow client is disconnected rather than
// allowed to block the hub.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	send       chan envelope
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		send:       make(chan envelope, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.mutex.Unlock()
			h.logger.Debug("ws connected", zap.String("user_id", client.userID.String()))

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.drop(client)

		case e := <-h.send:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients[e.userID]))
			for c := range h.clients[e.userID] {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- e.payload:
				default:
					// Drop the slow client inline. Feeding it back through
					// the unregister channel could deadlock the hub on its
					// own buffer.
					h.drop(client)
				}
			}
		}
	}
}

// drop removes a client and closes its channel. Safe to call twice for the
// same client: only the first call that still finds it registered closes.
func (h *Hub) drop(client *Client) {
	h.mutex.Lock()
	if conns, ok := h.clients[client.userID]; ok {
		if _, ok := conns[client]; ok {
			delete(conns, client)
			close(client.send)
		}
		if len(conns) == 0 {
			delete(h.clients, client.userID)
		}
	}
	h.mutex.Unlock()
	h.logger.Debug("ws disconnected", zap.String("user_id", client.userID.String()))
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Send queues a payload for every connection of the given user. Drops the
// event when the hub buffer is full.
func (h *Hub) Send(userID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.send <- envelope{userID: userID, payload: payload}:
	default:
		h.logger.Warn("ws event dropped", zap.String("reason", "buffer_full"))
	}
}
