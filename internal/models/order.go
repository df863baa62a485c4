package models

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a single customer purchase. Status always mirrors the
// most recently opened status-history entry; it is mutated only through the
// order service's transition path.
type Order struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ClientID      uuid.UUID `db:"client_id" json:"client_id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	Status        Status    `db:"status" json:"status"`
	Price         float64   `db:"price" json:"price"`
	CheckPhotoURL *string   `db:"check_photo_url" json:"check_photo_url"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	// Not stored directly in the database
	Dishes []OrderDish `db:"-" json:"order_dishes,omitempty"`
}

// OrderDish is a line item. Price is the dish price at order time; later
// dish price changes do not alter historical orders.
type OrderDish struct {
	ID       uuid.UUID `db:"id" json:"id"`
	OrderID  uuid.UUID `db:"order_id" json:"order_id"`
	DishID   uuid.UUID `db:"dish_id" json:"dish_id"`
	Quantity int       `db:"quantity" json:"quantity"`
	Price    float64   `db:"price" json:"price"`
}

// OrderStatusEntry is one interval during which an order held a status.
// EndDate is nil while the interval is open; entries are never updated after
// closing and never deleted.
type OrderStatusEntry struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	OrderID           uuid.UUID  `db:"order_id" json:"order_id"`
	Status            Status     `db:"status" json:"status"`
	StartDate         time.Time  `db:"start_date" json:"start_date"`
	EndDate           *time.Time `db:"end_date" json:"end_date"`
	ChangedByUserID   *uuid.UUID `db:"changed_by_user_id" json:"changed_by_user_id"`
	ChangedByClientID *uuid.UUID `db:"changed_by_client_id" json:"changed_by_client_id"`
}

// OrderRequest is used for order creation
type OrderRequest struct {
	CheckPhotoURL *string            `json:"check_photo_url"`
	Dishes        []OrderDishRequest `json:"order_dishes"`
}

// OrderDishRequest is used for order line-item creation
type OrderDishRequest struct {
	DishID   uuid.UUID `json:"dish_id"`
	Quantity int       `json:"quantity"`
}

// OrderFilter narrows order listings. Exactly one of the scoping fields is
// set depending on the caller: ClientID for clients, UserID for staff acting
// on their own orders, BusinessID for admins covering delegated staff.
type OrderFilter struct {
	Status     *Status
	ClientID   *uuid.UUID
	UserID     *uuid.UUID
	BusinessID *uuid.UUID
}

// HistoryEntry is one status interval annotated with its computed duration.
// DurationSeconds is nil while the interval is open.
type HistoryEntry struct {
	Status            Status     `json:"status"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	ChangedByUserID   *uuid.UUID `json:"changed_by_user_id"`
	ChangedByClientID *uuid.UUID `json:"changed_by_client_id"`
	DurationSeconds   *int       `json:"duration_seconds"`
}

// OrderHistory is the full status timeline of an order. TotalDurationSeconds
// sums closed intervals only.
type OrderHistory struct {
	OrderID              uuid.UUID      `json:"order_id"`
	History              []HistoryEntry `json:"history"`
	TotalDurationSeconds int            `json:"total_duration_seconds"`
}
