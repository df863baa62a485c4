package websockets

import (
	"sync"

	"github.com/pizza-nz/ordering-service/internal/models"
)

// Hub routes live order-board messages to connected staff dashboards. Each
// dashboard subscribes to the channel of its business and role; transition
// events are pushed to every dashboard of an interested role.
type Hub struct {
	clients map[*Client]bool

	register chan *Client

	unregister chan *Client

	roleChannels map[string]map[*Client]bool

	mu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		clients:      make(map[*Client]bool),
		roleChannels: make(map[string]map[*Client]bool),
	}
}

// roleChannel names the in-process channel of one role of one business
func roleChannel(businessID string, role models.UserRole) string {
	return businessID + ":" + string(role)
}

func (h *Hub) registerRoleClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := roleChannel(client.businessID, client.role)
	if _, ok := h.roleChannels[channel]; !ok {
		h.roleChannels[channel] = make(map[*Client]bool)
	}
	h.roleChannels[channel][client] = true
}

// BroadcastToRole pushes a message to every dashboard subscribed to the
// given business role. Slow consumers are dropped rather than blocking the
// transition path.
func (h *Hub) BroadcastToRole(businessID string, role models.UserRole, message []byte) {
	h.mu.Lock()
	var slow []*Client
	if clients, ok := h.roleChannels[roleChannel(businessID, role)]; ok {
		for client := range clients {
			if !client.trySend(message) {
				delete(clients, client)
				slow = append(slow, client)
			}
		}
	}
	h.mu.Unlock()

	// Slow consumers are torn down through the unregister path, the only
	// place the send channel is closed.
	for _, client := range slow {
		h.unregister <- client
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.registerRoleClient(client)
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}
		}
	}
}

// drop removes a client from the hub and every role channel and closes its
// send channel. Only called from the Run loop.
func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	client.closeSend()

	h.mu.Lock()
	for _, clients := range h.roleChannels {
		delete(clients, client)
	}
	h.mu.Unlock()
}
