package models

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryZone is a radius band with a delivery time and price.
type DeliveryZone struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	UserID              uuid.UUID `db:"user_id" json:"user_id"`
	RadiusFrom          float64   `db:"radius_from" json:"radius_from"`
	RadiusTo            float64   `db:"radius_to" json:"radius_to"`
	DeliveryTimeMinutes int       `db:"delivery_time" json:"delivery_time"`
	Price               float64   `db:"price" json:"price"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// DeliveryZoneRequest is used for delivery zone creation/update
type DeliveryZoneRequest struct {
	RadiusFrom          float64 `json:"radius_from"`
	RadiusTo            float64 `json:"radius_to"`
	DeliveryTimeMinutes int     `json:"delivery_time"`
	Price               float64 `json:"price"`
}
