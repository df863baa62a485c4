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

// DeliveryRepository handles delivery zone data access
type DeliveryRepository struct {
	db *sqlx.DB
}

// NewDeliveryRepository creates a new delivery repository
func NewDeliveryRepository(db *sqlx.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

const deliveryColumns = "id, user_id, radius_from, radius_to, delivery_time, price, created_at, updated_at"

// List retrieves delivery zones of a business ordered by inner radius
func (r *DeliveryRepository) List(ctx context.Context, businessID uuid.UUID) ([]models.DeliveryZone, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE user_id = $1
		ORDER BY radius_from ASC
	`

	var zones []models.DeliveryZone
	err := r.db.SelectContext(ctx, &zones, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery zones: %w", err)
	}

	return zones, nil
}

// Create creates a new delivery zone
func (r *DeliveryRepository) Create(ctx context.Context, zone models.DeliveryZone) (*models.DeliveryZone, error) {
	query := `
		INSERT INTO deliveries (user_id, radius_from, radius_to, delivery_time, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + deliveryColumns

	var created models.DeliveryZone
	err := r.db.GetContext(
		ctx,
		&created,
		query,
		zone.UserID,
		zone.RadiusFrom,
		zone.RadiusTo,
		zone.DeliveryTimeMinutes,
		zone.Price,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery zone: %w", err)
	}

	return &created, nil
}

// Update updates a delivery zone owned by the business
func (r *DeliveryRepository) Update(ctx context.Context, id, businessID uuid.UUID, req models.DeliveryZoneRequest) (*models.DeliveryZone, error) {
	query := `
		UPDATE deliveries
		SET radius_from = $3, radius_to = $4, delivery_time = $5, price = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + deliveryColumns

	var updated models.DeliveryZone
	err := r.db.GetContext(
		ctx, &updated, query,
		id, businessID,
		req.RadiusFrom, req.RadiusTo, req.DeliveryTimeMinutes, req.Price,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update delivery zone: %w", err)
	}

	return &updated, nil
}

// Delete deletes a delivery zone owned by the business
func (r *DeliveryRepository) Delete(ctx context.Context, id, businessID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM deliveries WHERE id = $1 AND user_id = $2", id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete delivery zone: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}

	return nil
}
