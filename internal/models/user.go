package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleHostess  UserRole = "hostess"
	RoleCook     UserRole = "cook"
	RoleWaiter   UserRole = "waiter"
	RoleDelivery UserRole = "delivery"
)

// StaffRoles returns every staff role.
func StaffRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleHostess, RoleCook, RoleWaiter, RoleDelivery}
}

// Valid reports whether r is a known staff role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleHostess, RoleCook, RoleWaiter, RoleDelivery:
		return true
	}
	return false
}

// User is a staff member. A business owner has a nil ParentID; delegated
// staff carry the owner's ID in ParentID and share the owner's orders.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	ParentID     *uuid.UUID `db:"parent_id" json:"parent_id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"` // Never expose in JSON
	Name         string     `db:"name" json:"name"`
	Role         UserRole   `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// UserRequest is used for staff creation requests
type UserRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
	IsActive bool     `json:"is_active"`
}
