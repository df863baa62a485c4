package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pizza-nz/ordering-service/internal/models"
)

// OrderRepository handles order data access, including the append-only
// status-history log.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = "id, client_id, user_id, status, price, check_photo_url, created_at"

// GetByID retrieves an order by ID with its line items
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`

	var order models.Order
	err := r.db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	dishes, err := r.getOrderDishes(ctx, r.db, order.ID)
	if err != nil {
		return nil, err
	}
	order.Dishes = dishes

	return &order, nil
}

// getOrderDishes retrieves line items for an order
func (r *OrderRepository) getOrderDishes(ctx context.Context, q sqlx.QueryerContext, orderID uuid.UUID) ([]models.OrderDish, error) {
	query := `
		SELECT id, order_id, dish_id, quantity, price
		FROM order_dishes
		WHERE order_id = $1
		ORDER BY id ASC
	`

	var dishes []models.OrderDish
	err := sqlx.SelectContext(ctx, q, &dishes, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order dishes: %w", err)
	}

	return dishes, nil
}

// List retrieves orders matching the filter, newest first
func (r *OrderRepository) List(ctx context.Context, f models.OrderFilter) ([]models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE 1=1
	`
	var args []interface{}

	if f.Status != nil {
		args = append(args, *f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.ClientID != nil {
		args = append(args, *f.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if f.UserID != nil {
		args = append(args, *f.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if f.BusinessID != nil {
		args = append(args, *f.BusinessID)
		query += fmt.Sprintf(` AND user_id IN (
			SELECT id FROM users WHERE id = $%d OR parent_id = $%d
		)`, len(args), len(args))
	}

	query += " ORDER BY created_at DESC LIMIT 100"

	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// Create creates an order in the initial CLIENT_NEW state: the order row,
// its line items with prices snapshotted from the dishes table, and the
// first open status-history entry attributed to the creating client, all in
// one transaction.
func (r *OrderRepository) Create(ctx context.Context, order models.Order, items []models.OrderDishRequest) (*models.Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Snapshot dish prices and compute the total up front
	var total float64
	prices := make(map[uuid.UUID]float64, len(items))
	for _, item := range items {
		var price float64
		err = tx.GetContext(ctx, &price, "SELECT price FROM dishes WHERE id = $1", item.DishID)
		if errors.Is(err, sql.ErrNoRows) {
			err = fmt.Errorf("%w: %s", models.ErrDishNotFound, item.DishID)
			return nil, err
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get dish: %w", err)
		}
		prices[item.DishID] = price
		total += price * float64(item.Quantity)
	}

	orderQuery := `
		INSERT INTO orders (client_id, user_id, status, price, check_photo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + orderColumns

	var created models.Order
	err = tx.GetContext(
		ctx,
		&created,
		orderQuery,
		order.ClientID,
		order.UserID,
		models.StatusClientNew,
		total,
		order.CheckPhotoURL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	created.Dishes = make([]models.OrderDish, 0, len(items))
	for _, item := range items {
		itemQuery := `
			INSERT INTO order_dishes (order_id, dish_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id, order_id, dish_id, quantity, price
		`

		var dish models.OrderDish
		err = tx.GetContext(ctx, &dish, itemQuery, created.ID, item.DishID, item.Quantity, prices[item.DishID])
		if err != nil {
			return nil, fmt.Errorf("failed to create order dish: %w", err)
		}
		created.Dishes = append(created.Dishes, dish)
	}

	// Seed the status log with the initial open interval
	entryQuery := `
		INSERT INTO order_status (order_id, status, changed_by_client_id)
		VALUES ($1, $2, $3)
	`
	_, err = tx.ExecContext(ctx, entryQuery, created.ID, models.StatusClientNew, order.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial status entry: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &created, nil
}

// ApplyStatus performs one status transition atomically. It locks the order
// row, re-validates the transition against the locked row's status via the
// validate callback, closes the open history interval, appends the new open
// interval attributed to the actor, and updates the order's denormalized
// status. The row lock serializes concurrent transitions per order; a racer
// that loses the lock re-validates against the winner's status and fails.
func (r *OrderRepository) ApplyStatus(
	ctx context.Context,
	orderID uuid.UUID,
	newStatus models.Status,
	by models.ChangedBy,
	validate func(current models.Status) error,
) (*models.Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var order models.Order
	err = tx.GetContext(ctx, &order, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		err = models.ErrOrderNotFound
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}

	if err = validate(order.Status); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	// Close the currently open interval. No-op when none is open, which
	// covers the implicit creation state.
	_, err = tx.ExecContext(ctx, `
		UPDATE order_status
		SET end_date = $2
		WHERE id = (
			SELECT id FROM order_status
			WHERE order_id = $1 AND end_date IS NULL
			ORDER BY start_date DESC
			LIMIT 1
		)
	`, orderID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to close previous status: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_status (order_id, status, start_date, changed_by_user_id, changed_by_client_id)
		VALUES ($1, $2, $3, $4, $5)
	`, orderID, newStatus, now, by.UserID, by.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to append status entry: %w", err)
	}

	err = tx.GetContext(ctx, &order, `
		UPDATE orders
		SET status = $2
		WHERE id = $1
		RETURNING `+orderColumns, orderID, newStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	dishes, err := r.getOrderDishes(ctx, r.db, order.ID)
	if err != nil {
		return nil, err
	}
	order.Dishes = dishes

	return &order, nil
}

// History retrieves all status-history entries for an order, oldest first
func (r *OrderRepository) History(ctx context.Context, orderID uuid.UUID) ([]models.OrderStatusEntry, error) {
	query := `
		SELECT id, order_id, status, start_date, end_date, changed_by_user_id, changed_by_client_id
		FROM order_status
		WHERE order_id = $1
		ORDER BY start_date ASC
	`

	var entries []models.OrderStatusEntry
	err := r.db.SelectContext(ctx, &entries, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order status history: %w", err)
	}

	return entries, nil
}
