package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pizza-nz/ordering-service/internal/db/repository"
	"github.com/pizza-nz/ordering-service/internal/models"
)

// MenuService handles category and dish business logic
type MenuService struct {
	repos *repository.Repositories
}

// NewMenuService creates a new menu service
func NewMenuService(repos *repository.Repositories) *MenuService {
	return &MenuService{
		repos: repos,
	}
}

// GetCategories retrieves all categories of a business
func (s *MenuService) GetCategories(ctx context.Context, businessID uuid.UUID) ([]models.Category, error) {
	return s.repos.Menu.ListCategories(ctx, businessID)
}

// CreateCategory creates a new category for a business
func (s *MenuService) CreateCategory(ctx context.Context, businessID uuid.UUID, req models.CategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", models.ErrInvalidRequest)
	}

	category := models.Category{
		UserID:    businessID,
		ParentID:  req.ParentID,
		Name:      req.Name,
		IsType:    req.IsType,
		IsSubType: req.IsSubType,
	}

	return s.repos.Menu.CreateCategory(ctx, category)
}

// UpdateCategory updates a category owned by the business
func (s *MenuService) UpdateCategory(ctx context.Context, id, businessID uuid.UUID, req models.CategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", models.ErrInvalidRequest)
	}
	return s.repos.Menu.UpdateCategory(ctx, id, businessID, req)
}

// DeleteCategory deletes a category owned by the business
func (s *MenuService) DeleteCategory(ctx context.Context, id, businessID uuid.UUID) error {
	return s.repos.Menu.DeleteCategory(ctx, id, businessID)
}

// GetDishes retrieves dishes of a business, optionally within a category
func (s *MenuService) GetDishes(ctx context.Context, businessID uuid.UUID, categoryID *uuid.UUID) ([]models.Dish, error) {
	return s.repos.Menu.ListDishes(ctx, businessID, categoryID)
}

// GetDish retrieves a dish by ID
func (s *MenuService) GetDish(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	return s.repos.Menu.GetDishByID(ctx, id)
}

// CreateDish creates a new dish for a business
func (s *MenuService) CreateDish(ctx context.Context, businessID uuid.UUID, req models.DishRequest) (*models.Dish, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: dish name is required", models.ErrInvalidRequest)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: dish price must be positive", models.ErrInvalidRequest)
	}

	dish := models.Dish{
		UserID:      businessID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Weight:      req.Weight,
		PhotoURL:    req.PhotoURL,
	}

	return s.repos.Menu.CreateDish(ctx, dish)
}

// UpdateDish updates a dish owned by the business
func (s *MenuService) UpdateDish(ctx context.Context, id, businessID uuid.UUID, req models.DishRequest) (*models.Dish, error) {
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: dish price must be positive", models.ErrInvalidRequest)
	}
	return s.repos.Menu.UpdateDish(ctx, id, businessID, req)
}

// DeleteDish deletes a dish owned by the business
func (s *MenuService) DeleteDish(ctx context.Context, id, businessID uuid.UUID) error {
	return s.repos.Menu.DeleteDish(ctx, id, businessID)
}
