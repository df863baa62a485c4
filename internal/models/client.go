package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is an ordering customer belonging to a business.
type Client struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UserID       uuid.UUID  `db:"user_id" json:"user_id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"` // Never expose in JSON
	FirstName    *string    `db:"first_name" json:"first_name"`
	LastName     *string    `db:"last_name" json:"last_name"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	LastLogin    *time.Time `db:"last_login" json:"last_login"`
}

// ClientRequest is used for client registration
type ClientRequest struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
}
