package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a menu category. Categories form a shallow tree:
// top-level category -> type -> sub-type, flagged rather than typed.
type Category struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    uuid.UUID  `db:"user_id" json:"user_id"`
	ParentID  *uuid.UUID `db:"parent_id" json:"parent_id"`
	Name      string     `db:"name" json:"name"`
	IsType    bool       `db:"is_type" json:"is_type"`
	IsSubType bool       `db:"is_sub_type" json:"is_sub_type"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Dish represents a dish on the menu
type Dish struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	CategoryID  uuid.UUID `db:"category_id" json:"category_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	Weight      float64   `db:"weight" json:"weight"`
	PhotoURL    *string   `db:"photo_url" json:"photo_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CategoryRequest is used for category creation/update
type CategoryRequest struct {
	Name      string     `json:"name"`
	ParentID  *uuid.UUID `json:"parent_id"`
	IsType    bool       `json:"is_type"`
	IsSubType bool       `json:"is_sub_type"`
}

// DishRequest is used for dish creation/update
type DishRequest struct {
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Weight      float64   `json:"weight"`
	PhotoURL    *string   `json:"photo_url"`
}
