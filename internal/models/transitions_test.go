package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatusesPerRole(t *testing.T) {
	tests := []struct {
		name    string
		role    UserRole
		current Status
		want    []Status
	}{
		{"hostess confirms or rejects", RoleHostess, StatusPendingConfirmation, []Status{StatusConfirmed, StatusCancelled}},
		{"hostess opens submitted order", RoleHostess, StatusClientOpened, []Status{StatusPendingConfirmation}},
		{"hostess cannot touch cooking", RoleHostess, StatusCooking, nil},
		{"cook starts cooking", RoleCook, StatusConfirmed, []Status{StatusCooking}},
		{"cook routes finished order", RoleCook, StatusCooking, []Status{StatusWaitingCourier, StatusWaitingServer, StatusWaitingPickup}},
		{"waiter cannot touch cooking", RoleWaiter, StatusCooking, nil},
		{"waiter serves", RoleWaiter, StatusWaitingServer, []Status{StatusOnTable}},
		{"waiter hands over", RoleWaiter, StatusOnTable, []Status{StatusDelivered}},
		{"courier picks up", RoleDelivery, StatusWaitingCourier, []Status{StatusDeliveryInProgress}},
		{"courier delivers", RoleDelivery, StatusDeliveryInProgress, []Status{StatusDelivered}},
		{"admin routes finished order", RoleAdmin, StatusCooking, []Status{StatusWaitingCourier, StatusWaitingServer, StatusWaitingPickup}},
		{"admin covers client leg", RoleAdmin, StatusClientNew, []Status{StatusClientOpened, StatusClientCancelled}},
		{"admin advances post-delivery", RoleAdmin, StatusDelivered, []Status{StatusReceived}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStatuses(tt.role, tt.current))
		})
	}
}

// The admin table must contain every transition any other staff role owns.
func TestAdminTableIsUnionOfStaffTables(t *testing.T) {
	for _, role := range StaffRoles() {
		if role == RoleAdmin {
			continue
		}
		for current := range roleTransitions[role] {
			adminNext := NextStatuses(RoleAdmin, current)
			for _, next := range NextStatuses(role, current) {
				assert.Contains(t, adminNext, next,
					"admin missing %s -> %s owned by %s", current, next, role)
			}
		}
	}
}

func TestClientNextStatuses(t *testing.T) {
	assert.Equal(t, []Status{StatusClientOpened, StatusClientCancelled}, ClientNextStatuses(StatusClientNew))
	assert.Equal(t, []Status{StatusClientCancelled}, ClientNextStatuses(StatusClientOpened))
	assert.Equal(t, []Status{StatusDelivered}, ClientNextStatuses(StatusWaitingPickup))
	assert.Equal(t, []Status{StatusReceived}, ClientNextStatuses(StatusDelivered))

	// Once the restaurant has the order the client can only watch
	assert.Empty(t, ClientNextStatuses(StatusPendingConfirmation))
	assert.Empty(t, ClientNextStatuses(StatusCooking))
}

func TestTerminalStatuses(t *testing.T) {
	for _, role := range StaffRoles() {
		assert.Empty(t, NextStatuses(role, StatusRated), "RATED should be terminal for %s", role)
		assert.Empty(t, NextStatuses(role, StatusCancelled), "CANCELLED should be terminal for %s", role)
		assert.Empty(t, NextStatuses(role, StatusClientCancelled), "CLIENT_CANCELLED should be terminal for %s", role)
	}
	assert.Empty(t, ClientNextStatuses(StatusRated))
	assert.Empty(t, ClientNextStatuses(StatusClientCancelled))
}

func TestInterestedRoles(t *testing.T) {
	// A status interests the roles whose transition table keys on it
	assert.Equal(t, []UserRole{RoleAdmin, RoleHostess}, InterestedRoles(StatusClientOpened))
	assert.Equal(t, []UserRole{RoleAdmin, RoleCook}, InterestedRoles(StatusConfirmed))
	assert.Equal(t, []UserRole{RoleAdmin, RoleCook}, InterestedRoles(StatusCooking))
	assert.Equal(t, []UserRole{RoleAdmin, RoleDelivery}, InterestedRoles(StatusWaitingCourier))
	assert.Equal(t, []UserRole{RoleAdmin, RoleWaiter}, InterestedRoles(StatusWaitingServer))

	// Terminal statuses still interest the admin, who owns the closure
	assert.Equal(t, []UserRole{RoleAdmin}, InterestedRoles(StatusDelivered))

	// No staff table keys on restaurant-cancelled
	assert.Empty(t, InterestedRoles(StatusCancelled))
}

func TestInterestedRolesReturnsCopy(t *testing.T) {
	first := InterestedRoles(StatusConfirmed)
	require.NotEmpty(t, first)
	first[0] = RoleWaiter

	assert.Equal(t, []UserRole{RoleAdmin, RoleCook}, InterestedRoles(StatusConfirmed))
}
