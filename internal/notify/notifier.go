// Package notify fans a status-transition event out to every role entitled
// to act on the new status. Publishing is fire-and-forget: failures are
// logged and never surfaced to the transition that triggered them.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pizza-nz/ordering-service/internal/models"
)

// Publisher delivers a message to a named channel.
type Publisher interface {
	Publish(ctx context.Context, channel, message string) error
}

// Broadcaster pushes a message to connected dashboards of a business role.
type Broadcaster interface {
	BroadcastToRole(businessID string, role models.UserRole, message []byte)
}

// Notifier publishes order status transitions to role-and-business-scoped
// channels and to the live order board.
type Notifier struct {
	pub Publisher
	hub Broadcaster
}

// New creates a notifier. hub may be nil when no live board is attached.
func New(pub Publisher, hub Broadcaster) *Notifier {
	return &Notifier{pub: pub, hub: hub}
}

// ChannelName names the channel carrying transition events for one role of
// one business.
func ChannelName(businessID uuid.UUID, role models.UserRole) string {
	return fmt.Sprintf("order:status:%s:%s", businessID, role)
}

type boardEvent struct {
	Type    string    `json:"type"`
	OrderID uuid.UUID `json:"order_id"`
	Status  int       `json:"status"`
}

// OrderStatusChanged publishes the order ID to the channel of every role
// whose transition table keys on the new status. Zero interested roles is
// normal for client-leg statuses.
func (n *Notifier) OrderStatusChanged(ctx context.Context, businessID, orderID uuid.UUID, status models.Status) {
	roles := models.InterestedRoles(status)

	for _, role := range roles {
		channel := ChannelName(businessID, role)
		if err := n.pub.Publish(ctx, channel, orderID.String()); err != nil {
			log.Printf("Failed to publish order status notification to %s: %v", channel, err)
		}
	}

	if n.hub == nil {
		return
	}

	payload, err := json.Marshal(boardEvent{Type: "order.update", OrderID: orderID, Status: int(status)})
	if err != nil {
		log.Printf("Failed to marshal order board event: %v", err)
		return
	}
	for _, role := range roles {
		n.hub.BroadcastToRole(businessID.String(), role, payload)
	}
}
