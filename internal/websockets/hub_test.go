package websockets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizza-nz/ordering-service/internal/models"
)

func waitSubscribed(t *testing.T, hub *Hub, client *Client) {
	t.Helper()
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		clients, ok := hub.roleChannels[roleChannel(client.businessID, client.role)]
		return ok && clients[client]
	}, time.Second, 5*time.Millisecond)
}

func TestBroadcastToRoleDeliversToSubscribedRole(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	cook := NewClient(hub, nil, "biz-1", models.RoleCook)
	waiter := NewClient(hub, nil, "biz-1", models.RoleWaiter)
	hub.register <- cook
	hub.register <- waiter
	waitSubscribed(t, hub, cook)
	waitSubscribed(t, hub, waiter)

	hub.BroadcastToRole("biz-1", models.RoleCook, []byte("order ready"))

	select {
	case msg := <-cook.send:
		assert.Equal(t, "order ready", string(msg))
	case <-time.After(time.Second):
		t.Fatal("cook never received the broadcast")
	}
	assert.Empty(t, waiter.send)
}

// A dashboard that stops reading fills its send buffer. Dropping it must not
// close the channel twice when the connection later unregisters, and must not
// stop delivery to the remaining dashboards.
func TestSlowConsumerDroppedThenUnregistered(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	stalled := NewClient(hub, nil, "biz-1", models.RoleCook)
	hub.register <- stalled
	waitSubscribed(t, hub, stalled)

	for i := 0; i < cap(stalled.send); i++ {
		stalled.send <- []byte("backlog")
	}

	hub.BroadcastToRole("biz-1", models.RoleCook, []byte("overflow"))

	// Connection teardown unregisters the same client a second time.
	hub.unregister <- stalled

	assert.False(t, stalled.trySend([]byte("late")))

	hub.mu.Lock()
	_, stillSubscribed := hub.roleChannels[roleChannel("biz-1", models.RoleCook)][stalled]
	hub.mu.Unlock()
	assert.False(t, stillSubscribed)

	// The Run loop must still be serving after the drop.
	fresh := NewClient(hub, nil, "biz-1", models.RoleCook)
	hub.register <- fresh
	waitSubscribed(t, hub, fresh)
	hub.BroadcastToRole("biz-1", models.RoleCook, []byte("next"))

	select {
	case msg := <-fresh.send:
		assert.Equal(t, "next", string(msg))
	case <-time.After(time.Second):
		t.Fatal("hub stopped delivering after dropping a slow consumer")
	}
}
