package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pizza-nz/ordering-service/internal/models"
)

// ClientRepository handles client data access
type ClientRepository struct {
	db *sqlx.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = "id, user_id, email, password_hash, first_name, last_name, is_active, created_at, last_login"

// GetByID retrieves a client by ID
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE id = $1
	`

	var client models.Client
	err := r.db.GetContext(ctx, &client, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return &client, nil
}

// GetByEmail retrieves a client by email
func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE email = $1
	`

	var client models.Client
	err := r.db.GetContext(ctx, &client, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client by email: %w", err)
	}

	return &client, nil
}

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, client models.Client) (*models.Client, error) {
	query := `
		INSERT INTO clients (user_id, email, password_hash, first_name, last_name, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + clientColumns

	var created models.Client
	err := r.db.GetContext(
		ctx,
		&created,
		query,
		client.UserID,
		client.Email,
		client.PasswordHash,
		client.FirstName,
		client.LastName,
		client.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &created, nil
}

// TouchLastLogin records a successful login
func (r *ClientRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "UPDATE clients SET last_login = NOW() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}
