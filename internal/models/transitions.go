package models

import "sort"

// roleTransitions maps each staff role to the slice of the transition graph
// it owns: current status -> legal next statuses. The admin table is the
// union closure of every other role's table plus the client-initiated legs.
var roleTransitions = map[UserRole]map[Status][]Status{
	RoleHostess: {
		StatusClientOpened:        {StatusPendingConfirmation},
		StatusPendingConfirmation: {StatusConfirmed, StatusCancelled},
	},
	RoleCook: {
		StatusConfirmed: {StatusCooking},
		StatusCooking:   {StatusWaitingCourier, StatusWaitingServer, StatusWaitingPickup},
	},
	RoleDelivery: {
		StatusWaitingCourier:     {StatusDeliveryInProgress},
		StatusDeliveryInProgress: {StatusDelivered},
	},
	RoleWaiter: {
		StatusWaitingServer: {StatusOnTable},
		StatusOnTable:       {StatusDelivered},
	},
	RoleAdmin: {
		StatusClientNew:           {StatusClientOpened, StatusClientCancelled},
		StatusClientOpened:        {StatusPendingConfirmation, StatusClientCancelled},
		StatusPendingConfirmation: {StatusConfirmed, StatusCancelled},
		StatusConfirmed:           {StatusCooking},
		StatusCooking:             {StatusWaitingCourier, StatusWaitingServer, StatusWaitingPickup},
		StatusWaitingCourier:      {StatusDeliveryInProgress},
		StatusWaitingServer:       {StatusOnTable},
		StatusWaitingPickup:       {StatusDelivered},
		StatusDeliveryInProgress:  {StatusDelivered},
		StatusOnTable:             {StatusDelivered},
		StatusDelivered:           {StatusReceived},
		StatusReceived:            {StatusConsumed},
		StatusConsumed:            {StatusRated},
	},
}

// clientTransitions is the transition slice owned by the ordering customer:
// the pre-confirmation leg, self-pickup handover, and the post-delivery leg.
var clientTransitions = map[Status][]Status{
	StatusClientNew:     {StatusClientOpened, StatusClientCancelled},
	StatusClientOpened:  {StatusClientCancelled},
	StatusWaitingPickup: {StatusDelivered},
	StatusDelivered:     {StatusReceived},
	StatusReceived:      {StatusConsumed},
	StatusConsumed:      {StatusRated},
}

// interestedRoles indexes each status by the roles whose transition table
// keys on it as a source, i.e. the roles that can act once the status is
// reached. Built once at startup from roleTransitions.
var interestedRoles = func() map[Status][]UserRole {
	index := make(map[Status][]UserRole)
	for _, s := range AllStatuses() {
		for _, role := range StaffRoles() {
			if _, ok := roleTransitions[role][s]; ok {
				index[s] = append(index[s], role)
			}
		}
	}
	return index
}()

// NextStatuses returns the legal next statuses for a staff role at the given
// current status. An empty result means the status is terminal for the role,
// not an error.
func NextStatuses(role UserRole, current Status) []Status {
	return roleTransitions[role][current]
}

// ClientNextStatuses returns the legal next statuses for the ordering client
// at the given current status.
func ClientNextStatuses(current Status) []Status {
	return clientTransitions[current]
}

// InterestedRoles returns the staff roles that should be notified when an
// order reaches the given status, in a stable order.
func InterestedRoles(status Status) []UserRole {
	roles := interestedRoles[status]
	out := make([]UserRole, len(roles))
	copy(out, roles)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
