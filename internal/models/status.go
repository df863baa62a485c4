package models

import (
	"fmt"
	"sort"
)

// Status is an order status code. Codes are grouped by fulfilment stage and
// the gaps between groups are deliberate: transition legality is driven by
// the transition tables, not by numeric ordering.
type Status int

const (
	// Client-side pre-confirmation states
	StatusClientNew       Status = 0
	StatusClientOpened    Status = 1
	StatusClientCancelled Status = 2

	// Restaurant processing states
	StatusPendingConfirmation Status = 10
	StatusConfirmed           Status = 11
	StatusCancelled           Status = 12
	StatusCooking             Status = 20

	// Fulfilment-method states
	StatusWaitingCourier     Status = 30
	StatusWaitingServer      Status = 31
	StatusWaitingPickup      Status = 32
	StatusDeliveryInProgress Status = 40
	StatusOnTable            Status = 41

	// Terminal leg
	StatusDelivered Status = 50
	StatusReceived  Status = 60
	StatusConsumed  Status = 70
	StatusRated     Status = 80
)

type statusInfo struct {
	name        string
	description string
}

var statusInfos = map[Status]statusInfo{
	StatusClientNew:           {"CLIENT_NEW", "Client side: new, not yet opened"},
	StatusClientOpened:        {"CLIENT_OPENED", "Client side: submitted"},
	StatusClientCancelled:     {"CLIENT_CANCELLED", "Client side: cancelled"},
	StatusPendingConfirmation: {"PENDING_CONFIRMATION", "Restaurant side: awaiting confirmation"},
	StatusConfirmed:           {"CONFIRMED", "Restaurant side: confirmed"},
	StatusCancelled:           {"CANCELLED", "Restaurant side: cancelled"},
	StatusCooking:             {"COOKING", "Restaurant side: being cooked"},
	StatusWaitingCourier:      {"WAITING_COURIER", "Waiting for a courier"},
	StatusWaitingServer:       {"WAITING_SERVER", "Waiting for a waiter"},
	StatusWaitingPickup:       {"WAITING_PICKUP", "Ready for pickup"},
	StatusDeliveryInProgress:  {"DELIVERY_IN_PROGRESS", "On its way to you"},
	StatusOnTable:             {"ON_TABLE", "Heading to your table"},
	StatusDelivered:           {"DELIVERED", "Handed over"},
	StatusReceived:            {"RECEIVED", "Received"},
	StatusConsumed:            {"CONSUMED", "Consumed"},
	StatusRated:               {"RATED", "Rated"},
}

// Valid reports whether s is a known status code.
func (s Status) Valid() bool {
	_, ok := statusInfos[s]
	return ok
}

// Name returns the canonical name of the status, e.g. "CLIENT_NEW".
func (s Status) Name() string {
	return statusInfos[s].name
}

// Description returns the human-readable description of the status.
func (s Status) Description() string {
	return statusInfos[s].description
}

func (s Status) String() string {
	if info, ok := statusInfos[s]; ok {
		return info.name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus converts a raw status code into a Status, rejecting unknown
// codes before they reach the transition engine.
func ParseStatus(code int) (Status, error) {
	s := Status(code)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: unknown status code %d", ErrInvalidStatus, code)
	}
	return s, nil
}

// AllStatuses returns every known status in ascending code order.
func AllStatuses() []Status {
	statuses := make([]Status, 0, len(statusInfos))
	for s := range statusInfos {
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
	return statuses
}

// StatusView is the wire representation of a status.
type StatusView struct {
	Value       int    `json:"value"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// View returns the wire representation of the status.
func (s Status) View() StatusView {
	return StatusView{Value: int(s), Name: s.Name(), Description: s.Description()}
}

// StatusViews maps a slice of statuses to their wire representations.
func StatusViews(statuses []Status) []StatusView {
	views := make([]StatusView, 0, len(statuses))
	for _, s := range statuses {
		views = append(views, s.View())
	}
	return views
}
