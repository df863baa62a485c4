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

// MenuRepository handles category and dish data access
type MenuRepository struct {
	db *sqlx.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *sqlx.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

const categoryColumns = "id, user_id, parent_id, name, is_type, is_sub_type, created_at, updated_at"
const dishColumns = "id, user_id, category_id, name, description, price, weight, photo_url, created_at, updated_at"

// ListCategories retrieves all categories of a business
func (r *MenuRepository) ListCategories(ctx context.Context, businessID uuid.UUID) ([]models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1
		ORDER BY name ASC
	`

	var categories []models.Category
	err := r.db.SelectContext(ctx, &categories, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (r *MenuRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = $1
	`

	var category models.Category
	err := r.db.GetContext(ctx, &category, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

// CreateCategory creates a new category
func (r *MenuRepository) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	query := `
		INSERT INTO categories (user_id, parent_id, name, is_type, is_sub_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + categoryColumns

	var created models.Category
	err := r.db.GetContext(
		ctx,
		&created,
		query,
		category.UserID,
		category.ParentID,
		category.Name,
		category.IsType,
		category.IsSubType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &created, nil
}

// UpdateCategory updates a category owned by the business
func (r *MenuRepository) UpdateCategory(ctx context.Context, id, businessID uuid.UUID, req models.CategoryRequest) (*models.Category, error) {
	query := `
		UPDATE categories
		SET name = $3, parent_id = $4, is_type = $5, is_sub_type = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + categoryColumns

	var updated models.Category
	err := r.db.GetContext(ctx, &updated, query, id, businessID, req.Name, req.ParentID, req.IsType, req.IsSubType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &updated, nil
}

// DeleteCategory deletes a category owned by the business
func (r *MenuRepository) DeleteCategory(ctx context.Context, id, businessID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1 AND user_id = $2", id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
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

// ListDishes retrieves dishes of a business, optionally within a category
func (r *MenuRepository) ListDishes(ctx context.Context, businessID uuid.UUID, categoryID *uuid.UUID) ([]models.Dish, error) {
	query := `
		SELECT ` + dishColumns + `
		FROM dishes
		WHERE user_id = $1
	`
	args := []interface{}{businessID}

	if categoryID != nil {
		query += " AND category_id = $2"
		args = append(args, *categoryID)
	}

	query += " ORDER BY name ASC"

	var dishes []models.Dish
	err := r.db.SelectContext(ctx, &dishes, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}

	return dishes, nil
}

// GetDishByID retrieves a dish by ID
func (r *MenuRepository) GetDishByID(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	query := `
		SELECT ` + dishColumns + `
		FROM dishes
		WHERE id = $1
	`

	var dish models.Dish
	err := r.db.GetContext(ctx, &dish, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrDishNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}

	return &dish, nil
}

// CreateDish creates a new dish
func (r *MenuRepository) CreateDish(ctx context.Context, dish models.Dish) (*models.Dish, error) {
	query := `
		INSERT INTO dishes (user_id, category_id, name, description, price, weight, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + dishColumns

	var created models.Dish
	err := r.db.GetContext(
		ctx,
		&created,
		query,
		dish.UserID,
		dish.CategoryID,
		dish.Name,
		dish.Description,
		dish.Price,
		dish.Weight,
		dish.PhotoURL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dish: %w", err)
	}

	return &created, nil
}

// UpdateDish updates a dish owned by the business
func (r *MenuRepository) UpdateDish(ctx context.Context, id, businessID uuid.UUID, req models.DishRequest) (*models.Dish, error) {
	query := `
		UPDATE dishes
		SET category_id = $3, name = $4, description = $5, price = $6, weight = $7, photo_url = $8, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + dishColumns

	var updated models.Dish
	err := r.db.GetContext(
		ctx, &updated, query,
		id, businessID,
		req.CategoryID, req.Name, req.Description, req.Price, req.Weight, req.PhotoURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrDishNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update dish: %w", err)
	}

	return &updated, nil
}

// DeleteDish deletes a dish owned by the business
func (r *MenuRepository) DeleteDish(ctx context.Context, id, businessID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM dishes WHERE id = $1 AND user_id = $2", id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete dish: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rows == 0 {
		return models.ErrDishNotFound
	}

	return nil
}
