package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pizza-nz/ordering-service/internal/models"
)

// OrderStore is the persistence boundary for orders and their status log.
// Implemented by repository.OrderRepository.
type OrderStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, f models.OrderFilter) ([]models.Order, error)
	Create(ctx context.Context, order models.Order, items []models.OrderDishRequest) (*models.Order, error)
	// ApplyStatus runs one transition under per-order mutual exclusion,
	// calling validate with the current status as observed under the lock.
	ApplyStatus(ctx context.Context, orderID uuid.UUID, newStatus models.Status, by models.ChangedBy, validate func(current models.Status) error) (*models.Order, error)
	History(ctx context.Context, orderID uuid.UUID) ([]models.OrderStatusEntry, error)
}

// TransitionNotifier publishes a committed transition to interested roles.
type TransitionNotifier interface {
	OrderStatusChanged(ctx context.Context, businessID, orderID uuid.UUID, status models.Status)
}

// OrderService orchestrates order creation and the status transition engine:
// permission gating, transition legality, the interval log, and the
// post-commit notification side effect.
type OrderService struct {
	store    OrderStore
	notifier TransitionNotifier
}

// NewOrderService creates a new order service. notifier may be nil, in which
// case transitions are not announced.
func NewOrderService(store OrderStore, notifier TransitionNotifier) *OrderService {
	return &OrderService{
		store:    store,
		notifier: notifier,
	}
}

// CreateOrder creates an order for a client in the CLIENT_NEW state with an
// initial open history entry attributed to the client.
func (s *OrderService) CreateOrder(ctx context.Context, actor models.ClientActor, req models.OrderRequest) (*models.Order, error) {
	if len(req.Dishes) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one dish", models.ErrInvalidRequest)
	}
	for _, item := range req.Dishes {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: dish quantity must be positive", models.ErrInvalidRequest)
		}
	}

	order := models.Order{
		ClientID:      actor.ID,
		UserID:        actor.UserID,
		CheckPhotoURL: req.CheckPhotoURL,
	}

	created, err := s.store.Create(ctx, order, req.Dishes)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return created, nil
}

// GetOrder retrieves an order the actor is allowed to see.
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID, actor models.Actor) (*models.Order, error) {
	order, err := s.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(order) {
		return nil, models.ErrNotAllowed
	}
	return order, nil
}

// ListOrders lists orders scoped to the actor: a client sees their own
// orders, an admin sees the whole business, other staff see orders assigned
// to their own ID.
func (s *OrderService) ListOrders(ctx context.Context, actor models.Actor, status *models.Status) ([]models.Order, error) {
	filter := models.OrderFilter{Status: status}

	switch a := actor.(type) {
	case models.ClientActor:
		id := a.ID
		filter.ClientID = &id
	case models.StaffActor:
		if a.Role == models.RoleAdmin {
			id := a.BusinessID()
			filter.BusinessID = &id
		} else {
			id := a.ID
			filter.UserID = &id
		}
	default:
		return nil, models.ErrNotAllowed
	}

	return s.store.List(ctx, filter)
}

// Transition moves an order to newStatus on behalf of the actor. The order
// is loaded (NotFound when absent), the actor is authorized against it, and
// legality is checked against the actor's transition table, then re-checked
// by the store under the per-order lock, so of two concurrent legal requests
// exactly one commits. Permission failures and illegal transitions both
// surface as ErrNotAllowed. Notification runs after commit and never fails
// the transition.
func (s *OrderService) Transition(ctx context.Context, orderID uuid.UUID, newStatus models.Status, actor models.Actor) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: %d", models.ErrInvalidStatus, int(newStatus))
	}

	order, err := s.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(order) {
		return nil, models.ErrNotAllowed
	}

	updated, err := s.store.ApplyStatus(ctx, orderID, newStatus, models.AttributedTo(actor), func(current models.Status) error {
		if !statusIn(actor.NextStatuses(current), newStatus) {
			return models.ErrNotAllowed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.OrderStatusChanged(ctx, actor.BusinessID(), orderID, newStatus)
	}

	return updated, nil
}

// AvailableTransitions returns the statuses the actor may move the order to
// right now. An empty set means the order is terminal for this actor.
func (s *OrderService) AvailableTransitions(ctx context.Context, orderID uuid.UUID, actor models.Actor) ([]models.Status, error) {
	order, err := s.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(order) {
		return nil, models.ErrNotAllowed
	}
	return actor.NextStatuses(order.Status), nil
}

// History returns the order's status timeline with per-interval durations
// and the total over closed intervals.
func (s *OrderService) History(ctx context.Context, orderID uuid.UUID, actor models.Actor) (*models.OrderHistory, error) {
	order, err := s.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(order) {
		return nil, models.ErrNotAllowed
	}

	entries, err := s.store.History(ctx, orderID)
	if err != nil {
		return nil, err
	}

	history := make([]models.HistoryEntry, 0, len(entries))
	total := 0
	for _, entry := range entries {
		he := models.HistoryEntry{
			Status:            entry.Status,
			StartDate:         entry.StartDate,
			EndDate:           entry.EndDate,
			ChangedByUserID:   entry.ChangedByUserID,
			ChangedByClientID: entry.ChangedByClientID,
		}
		if entry.EndDate != nil {
			seconds := int(entry.EndDate.Sub(entry.StartDate).Seconds())
			he.DurationSeconds = &seconds
			total += seconds
		}
		history = append(history, he)
	}

	return &models.OrderHistory{
		OrderID:              order.ID,
		History:              history,
		TotalDurationSeconds: total,
	}, nil
}

func statusIn(statuses []models.Status, s models.Status) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}
