package models

import "github.com/google/uuid"

// Actor is the authenticated entity requesting access to an order: either a
// staff member with a role or the ordering client. Exactly one actor kind
// authorizes any given mutation.
type Actor interface {
	// CanAccess reports whether the actor may view or mutate the order.
	CanAccess(o *Order) bool
	// NextStatuses returns the statuses the actor may move an order to from
	// the given current status. Empty means terminal for this actor.
	NextStatuses(current Status) []Status
	// BusinessID identifies the business whose role channels receive
	// notifications for transitions performed by this actor.
	BusinessID() uuid.UUID
}

// StaffActor is a staff member acting on behalf of a business.
type StaffActor struct {
	ID       uuid.UUID
	ParentID *uuid.UUID
	Role     UserRole
}

func (a StaffActor) CanAccess(o *Order) bool {
	if o.UserID == a.ID {
		return true
	}
	return a.ParentID != nil && o.UserID == *a.ParentID
}

func (a StaffActor) NextStatuses(current Status) []Status {
	return NextStatuses(a.Role, current)
}

func (a StaffActor) BusinessID() uuid.UUID {
	return a.ID
}

// ClientActor is the ordering customer. UserID is the business the client
// belongs to.
type ClientActor struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (a ClientActor) CanAccess(o *Order) bool {
	return o.ClientID == a.ID
}

func (a ClientActor) NextStatuses(current Status) []Status {
	return ClientNextStatuses(current)
}

func (a ClientActor) BusinessID() uuid.UUID {
	return a.UserID
}

// ChangedBy attributes a status-history entry to the actor that caused it.
// At most one field is set; both nil means system-initiated creation.
type ChangedBy struct {
	UserID   *uuid.UUID
	ClientID *uuid.UUID
}

// AttributedTo returns the history attribution for an actor.
func AttributedTo(actor Actor) ChangedBy {
	switch a := actor.(type) {
	case StaffActor:
		id := a.ID
		return ChangedBy{UserID: &id}
	case ClientActor:
		id := a.ID
		return ChangedBy{ClientID: &id}
	}
	return ChangedBy{}
}
