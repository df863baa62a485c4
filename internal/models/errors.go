package models

import "errors"

// Domain errors shared by the service and repository layers. Permission
// failures and illegal transitions both surface as ErrNotAllowed so callers
// cannot probe which of the two they hit.
var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrNotAllowed     = errors.New("not allowed")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrDishNotFound   = errors.New("dish not found")
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
)
