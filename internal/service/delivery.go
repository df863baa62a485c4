package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pizza-nz/ordering-service/internal/db/repository"
	"github.com/pizza-nz/ordering-service/internal/models"
)

// DeliveryService handles delivery zone business logic
type DeliveryService struct {
	repos *repository.Repositories
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(repos *repository.Repositories) *DeliveryService {
	return &DeliveryService{
		repos: repos,
	}
}

// GetZones retrieves delivery zones of a business
func (s *DeliveryService) GetZones(ctx context.Context, businessID uuid.UUID) ([]models.DeliveryZone, error) {
	return s.repos.Delivery.List(ctx, businessID)
}

// CreateZone creates a new delivery zone for a business
func (s *DeliveryService) CreateZone(ctx context.Context, businessID uuid.UUID, req models.DeliveryZoneRequest) (*models.DeliveryZone, error) {
	if err := validateZone(req); err != nil {
		return nil, err
	}

	zone := models.DeliveryZone{
		UserID:              businessID,
		RadiusFrom:          req.RadiusFrom,
		RadiusTo:            req.RadiusTo,
		DeliveryTimeMinutes: req.DeliveryTimeMinutes,
		Price:               req.Price,
	}

	return s.repos.Delivery.Create(ctx, zone)
}

// UpdateZone updates a delivery zone owned by the business
func (s *DeliveryService) UpdateZone(ctx context.Context, id, businessID uuid.UUID, req models.DeliveryZoneRequest) (*models.DeliveryZone, error) {
	if err := validateZone(req); err != nil {
		return nil, err
	}
	return s.repos.Delivery.Update(ctx, id, businessID, req)
}

// DeleteZone deletes a delivery zone owned by the business
func (s *DeliveryService) DeleteZone(ctx context.Context, id, businessID uuid.UUID) error {
	return s.repos.Delivery.Delete(ctx, id, businessID)
}

func validateZone(req models.DeliveryZoneRequest) error {
	if req.RadiusFrom < 0 || req.RadiusTo <= req.RadiusFrom {
		return fmt.Errorf("%w: radius band must be a positive range", models.ErrInvalidRequest)
	}
	if req.DeliveryTimeMinutes <= 0 {
		return fmt.Errorf("%w: delivery time must be positive", models.ErrInvalidRequest)
	}
	return nil
}
