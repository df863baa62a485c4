package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pizza-nz/ordering-service/internal/api"
	"github.com/pizza-nz/ordering-service/internal/middleware"
	"github.com/pizza-nz/ordering-service/internal/models"
	"github.com/pizza-nz/ordering-service/internal/service"
)

// OrderHandler handles order-related requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// HandleOrders handles requests for orders. The same handler serves both the
// client and the admin mount; the actor in the context decides what is
// visible.
func (h *OrderHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	// Extract the sub-path after the orders prefix
	path := r.URL.Path
	if idx := strings.Index(path, "/orders"); idx >= 0 {
		path = path[idx+len("/orders"):]
	}
	path = strings.TrimPrefix(path, "/")

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.listOrders(w, r, actor)
		case http.MethodPost:
			h.createOrder(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	parts := strings.Split(path, "/")

	id, err := uuid.Parse(parts[0])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.getOrder(w, r, id, actor)

	case len(parts) == 3 && parts[1] == "status" && parts[2] == "transitions":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.availableTransitions(w, r, id, actor)

	case len(parts) == 3 && parts[1] == "status" && parts[2] == "history":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.orderHistory(w, r, id, actor)

	case len(parts) == 3 && parts[1] == "status":
		if r.Method != http.MethodPatch {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.updateOrderStatus(w, r, id, parts[2], actor)

	default:
		http.Error(w, "Invalid path", http.StatusBadRequest)
	}
}

// HandleStatuses returns the status catalogue
func (h *OrderHandler) HandleStatuses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	api.JSON(w, http.StatusOK, models.StatusViews(models.AllStatuses()))
}

// listOrders lists orders visible to the actor, optionally filtered by status
func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request, actor models.Actor) {
	var status *models.Status

	statusStr := r.URL.Query().Get("status")
	if statusStr != "" {
		code, err := strconv.Atoi(statusStr)
		if err != nil {
			api.BadRequest(w, "Invalid status code")
			return
		}
		s, err := models.ParseStatus(code)
		if err != nil {
			api.BadRequest(w, "Invalid status code")
			return
		}
		status = &s
	}

	orders, err := h.orderService.ListOrders(r.Context(), actor, status)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, orders)
}

// getOrder gets an order by ID
func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request, id uuid.UUID, actor models.Actor) {
	order, err := h.orderService.GetOrder(r.Context(), id, actor)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, order)
}

// createOrder creates a new order. Only clients open orders.
func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	client, ok := middleware.GetClientActor(r.Context())
	if !ok {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), client, req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, order)
}

// updateOrderStatus moves an order to a new status
func (h *OrderHandler) updateOrderStatus(w http.ResponseWriter, r *http.Request, id uuid.UUID, codeStr string, actor models.Actor) {
	code, err := strconv.Atoi(codeStr)
	if err != nil {
		api.BadRequest(w, "Invalid status code")
		return
	}

	status, err := models.ParseStatus(code)
	if err != nil {
		api.BadRequest(w, "Invalid status code")
		return
	}

	order, err := h.orderService.Transition(r.Context(), id, status, actor)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, order)
}

// availableTransitions lists the statuses the actor may move the order to
func (h *OrderHandler) availableTransitions(w http.ResponseWriter, r *http.Request, id uuid.UUID, actor models.Actor) {
	statuses, err := h.orderService.AvailableTransitions(r.Context(), id, actor)
	if err != nil {
		api.Error(w, err)
		return
	}

	views := make([]models.StatusView, 0, len(statuses))
	for _, s := range statuses {
		views = append(views, s.View())
	}

	api.JSON(w, http.StatusOK, views)
}

// orderHistory returns the status timeline of an order
func (h *OrderHandler) orderHistory(w http.ResponseWriter, r *http.Request, id uuid.UUID, actor models.Actor) {
	history, err := h.orderService.History(r.Context(), id, actor)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, history)
}
