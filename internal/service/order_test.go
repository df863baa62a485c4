package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizza-nz/ordering-service/internal/models"
)

// fakeOrderStore is an in-memory OrderStore. ApplyStatus serializes
// transitions with a mutex and re-reads the current status under it, the same
// contract the SQL implementation provides with row locks.
type fakeOrderStore struct {
	mu      sync.Mutex
	orders  map[uuid.UUID]*models.Order
	history map[uuid.UUID][]models.OrderStatusEntry
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders:  make(map[uuid.UUID]*models.Order),
		history: make(map[uuid.UUID][]models.OrderStatusEntry),
	}
}

func (f *fakeOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderStore) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, order := range f.orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.ClientID != nil && order.ClientID != *filter.ClientID {
			continue
		}
		if filter.UserID != nil && order.UserID != *filter.UserID {
			continue
		}
		if filter.BusinessID != nil && order.UserID != *filter.BusinessID {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

func (f *fakeOrderStore) Create(ctx context.Context, order models.Order, items []models.OrderDishRequest) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order.ID = uuid.New()
	order.Status = models.StatusClientNew
	order.CreatedAt = time.Now()
	f.orders[order.ID] = &order

	clientID := order.ClientID
	f.history[order.ID] = []models.OrderStatusEntry{{
		ID:                uuid.New(),
		OrderID:           order.ID,
		Status:            models.StatusClientNew,
		StartDate:         order.CreatedAt,
		ChangedByClientID: &clientID,
	}}

	copied := order
	return &copied, nil
}

func (f *fakeOrderStore) ApplyStatus(ctx context.Context, orderID uuid.UUID, newStatus models.Status, by models.ChangedBy, validate func(current models.Status) error) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[orderID]
	if !ok {
		return nil, models.ErrOrderNotFound
	}

	if err := validate(order.Status); err != nil {
		return nil, err
	}

	now := time.Now()
	entries := f.history[orderID]
	for i := range entries {
		if entries[i].EndDate == nil {
			entries[i].EndDate = &now
		}
	}
	f.history[orderID] = append(entries, models.OrderStatusEntry{
		ID:                uuid.New(),
		OrderID:           orderID,
		Status:            newStatus,
		StartDate:         now,
		ChangedByUserID:   by.UserID,
		ChangedByClientID: by.ClientID,
	})

	order.Status = newStatus
	copied := *order
	return &copied, nil
}

func (f *fakeOrderStore) History(ctx context.Context, orderID uuid.UUID) ([]models.OrderStatusEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := f.history[orderID]
	out := make([]models.OrderStatusEntry, len(entries))
	copy(out, entries)
	return out, nil
}

type recordedNotification struct {
	businessID uuid.UUID
	orderID    uuid.UUID
	status     models.Status
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []recordedNotification
}

func (f *fakeNotifier) OrderStatusChanged(ctx context.Context, businessID, orderID uuid.UUID, status models.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedNotification{businessID, orderID, status})
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type testEnv struct {
	store    *fakeOrderStore
	notifier *fakeNotifier
	svc      *OrderService
	business uuid.UUID
	client   models.ClientActor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newFakeOrderStore()
	notifier := &fakeNotifier{}
	businessID := uuid.New()
	return &testEnv{
		store:    store,
		notifier: notifier,
		svc:      NewOrderService(store, notifier),
		business: businessID,
		client:   models.ClientActor{ID: uuid.New(), UserID: businessID},
	}
}

func (e *testEnv) createOrder(t *testing.T) *models.Order {
	t.Helper()
	order, err := e.svc.CreateOrder(context.Background(), e.client, models.OrderRequest{
		Dishes: []models.OrderDishRequest{{DishID: uuid.New(), Quantity: 1}},
	})
	require.NoError(t, err)
	return order
}

// advance walks the order through transitions using the admin role.
func (e *testEnv) advance(t *testing.T, orderID uuid.UUID, statuses ...models.Status) {
	t.Helper()
	admin := models.StaffActor{ID: e.business, Role: models.RoleAdmin}
	for _, s := range statuses {
		_, err := e.svc.Transition(context.Background(), orderID, s, admin)
		require.NoError(t, err)
	}
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)

	order := env.createOrder(t)
	assert.Equal(t, models.StatusClientNew, order.Status)
	assert.Equal(t, env.client.ID, order.ClientID)
	assert.Equal(t, env.business, order.UserID)

	// Creation seeds the status log with a single open entry
	entries, err := env.store.History(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.StatusClientNew, entries[0].Status)
	assert.Nil(t, entries[0].EndDate)
	require.NotNil(t, entries[0].ChangedByClientID)
	assert.Equal(t, env.client.ID, *entries[0].ChangedByClientID)
}

func TestCreateOrderValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.CreateOrder(ctx, env.client, models.OrderRequest{})
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	_, err = env.svc.CreateOrder(ctx, env.client, models.OrderRequest{
		Dishes: []models.OrderDishRequest{{DishID: uuid.New(), Quantity: 0}},
	})
	assert.ErrorIs(t, err, models.ErrInvalidRequest)
}

func TestTransitionHappyPath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.createOrder(t)

	// Client submits the order
	updated, err := env.svc.Transition(ctx, order.ID, models.StatusClientOpened, env.client)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClientOpened, updated.Status)

	// Hostess moves it into the restaurant pipeline
	hostess := models.StaffActor{ID: uuid.New(), ParentID: &env.business, Role: models.RoleHostess}
	updated, err = env.svc.Transition(ctx, order.ID, models.StatusPendingConfirmation, hostess)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingConfirmation, updated.Status)

	// The log now has exactly one open interval, for the current status
	entries, err := env.store.History(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	open := 0
	for _, entry := range entries {
		if entry.EndDate == nil {
			open++
			assert.Equal(t, models.StatusPendingConfirmation, entry.Status)
		}
	}
	assert.Equal(t, 1, open)
}

func TestTransitionOrderNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Transition(context.Background(), uuid.New(), models.StatusClientOpened, env.client)
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestTransitionInvalidStatusCode(t *testing.T) {
	env := newTestEnv(t)
	order := env.createOrder(t)

	_, err := env.svc.Transition(context.Background(), order.ID, models.Status(99), env.client)
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestTransitionDeniedForNonOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.createOrder(t)

	// A client who did not place the order cannot see or move it
	stranger := models.ClientActor{ID: uuid.New(), UserID: env.business}
	_, err := env.svc.Transition(ctx, order.ID, models.StatusClientOpened, stranger)
	assert.ErrorIs(t, err, models.ErrNotAllowed)

	// Staff of another business cannot either
	otherStaff := models.StaffActor{ID: uuid.New(), Role: models.RoleAdmin}
	_, err = env.svc.Transition(ctx, order.ID, models.StatusClientOpened, otherStaff)
	assert.ErrorIs(t, err, models.ErrNotAllowed)

	assert.Equal(t, 0, env.notifier.count())
}

func TestTransitionIllegalSkip(t *testing.T) {
	env := newTestEnv(t)
	order := env.createOrder(t)

	// CLIENT_NEW -> COOKING is not in any table, admin's included
	admin := models.StaffActor{ID: env.business, Role: models.RoleAdmin}
	_, err := env.svc.Transition(context.Background(), order.ID, models.StatusCooking, admin)
	assert.ErrorIs(t, err, models.ErrNotAllowed)
}

func TestTransitionRoleGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.createOrder(t)
	env.advance(t, order.ID, models.StatusClientOpened, models.StatusPendingConfirmation, models.StatusConfirmed)

	// A waiter may not start cooking
	waiter := models.StaffActor{ID: uuid.New(), ParentID: &env.business, Role: models.RoleWaiter}
	_, err := env.svc.Transition(ctx, order.ID, models.StatusCooking, waiter)
	assert.ErrorIs(t, err, models.ErrNotAllowed)

	// The cook may
	cook := models.StaffActor{ID: uuid.New(), ParentID: &env.business, Role: models.RoleCook}
	updated, err := env.svc.Transition(ctx, order.ID, models.StatusCooking, cook)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCooking, updated.Status)
}

// Two actors race the same legal transition; the one that loses the lock
// re-validates against the new current status and is rejected.
func TestTransitionConcurrentRace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.createOrder(t)
	env.advance(t, order.ID, models.StatusClientOpened)

	hostess := models.StaffActor{ID: uuid.New(), ParentID: &env.business, Role: models.RoleHostess}
	admin := models.StaffActor{ID: env.business, Role: models.RoleAdmin}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	actors := []models.Actor{hostess, admin}
	for i := range actors {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.Transition(ctx, order.ID, models.StatusPendingConfirmation, actors[i])
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, models.ErrNotAllowed)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one of two racing transitions commits")

	final, err := env.svc.GetOrder(ctx, order.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingConfirmation, final.Status)
}

func TestTransitionNotifies(t *testing.T) {
	env := newTestEnv(t)
	order := env.createOrder(t)

	_, err := env.svc.Transition(context.Background(), order.ID, models.StatusClientOpened, env.client)
	require.NoError(t, err)

	require.Equal(t, 1, env.notifier.count())
	call := env.notifier.calls[0]
	assert.Equal(t, env.business, call.businessID)
	assert.Equal(t, order.ID, call.orderID)
	assert.Equal(t, models.StatusClientOpened, call.status)
}

func TestAvailableTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.createOrder(t)

	statuses, err := env.svc.AvailableTransitions(ctx, order.ID, env.client)
	require.NoError(t, err)
	assert.Equal(t, []models.Status{models.StatusClientOpened, models.StatusClientCancelled}, statuses)

	// Reading available transitions does not change anything
	statuses, err = env.svc.AvailableTransitions(ctx, order.ID, env.client)
	require.NoError(t, err)
	assert.Len(t, statuses, 2)

	got, err := env.svc.GetOrder(ctx, order.ID, env.client)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClientNew, got.Status)
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.createOrder(t)
	env.advance(t, order.ID, models.StatusClientOpened, models.StatusPendingConfirmation)

	history, err := env.svc.History(ctx, order.ID, env.client)
	require.NoError(t, err)
	assert.Equal(t, order.ID, history.OrderID)
	require.Len(t, history.History, 3)

	// Closed intervals carry a duration, the open one does not
	for i, entry := range history.History[:2] {
		assert.NotNil(t, entry.DurationSeconds, "entry %d should be closed", i)
	}
	last := history.History[2]
	assert.Equal(t, models.StatusPendingConfirmation, last.Status)
	assert.Nil(t, last.EndDate)
	assert.Nil(t, last.DurationSeconds)

	total := 0
	for _, entry := range history.History {
		if entry.DurationSeconds != nil {
			total += *entry.DurationSeconds
		}
	}
	assert.Equal(t, total, history.TotalDurationSeconds)
}

func TestListOrdersScoping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.createOrder(t)

	otherClient := models.ClientActor{ID: uuid.New(), UserID: env.business}
	_, err := env.svc.CreateOrder(ctx, otherClient, models.OrderRequest{
		Dishes: []models.OrderDishRequest{{DishID: uuid.New(), Quantity: 2}},
	})
	require.NoError(t, err)

	// A client sees only their own orders
	orders, err := env.svc.ListOrders(ctx, env.client, nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	// The admin sees the whole business
	admin := models.StaffActor{ID: env.business, Role: models.RoleAdmin}
	orders, err = env.svc.ListOrders(ctx, admin, nil)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	// Status filter narrows the result
	status := models.StatusClientOpened
	orders, err = env.svc.ListOrders(ctx, admin, &status)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestGetOrderPermission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.createOrder(t)

	stranger := models.ClientActor{ID: uuid.New(), UserID: env.business}
	_, err := env.svc.GetOrder(ctx, order.ID, stranger)
	assert.ErrorIs(t, err, models.ErrNotAllowed)

	_, err = env.svc.GetOrder(ctx, uuid.New(), env.client)
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}
