package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pizza-nz/ordering-service/internal/api"
	"github.com/pizza-nz/ordering-service/internal/middleware"
	"github.com/pizza-nz/ordering-service/internal/models"
	"github.com/pizza-nz/ordering-service/internal/service"
)

// MenuHandler handles menu-related requests
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
	}
}

// menuSubPath strips everything up to and including the given segment
func menuSubPath(r *http.Request, segment string) string {
	path := r.URL.Path
	if idx := strings.Index(path, segment); idx >= 0 {
		path = path[idx+len(segment):]
	}
	return strings.TrimPrefix(path, "/")
}

// HandleCategories handles requests for menu categories
func (h *MenuHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	path := menuSubPath(r, "/menu/categories")

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	businessID := actor.BusinessID()

	// Clients browse the menu; only staff change it
	if r.Method != http.MethodGet {
		if _, ok := middleware.GetStaffActor(r.Context()); !ok {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	// Handle different HTTP methods
	switch r.Method {
	case http.MethodGet:
		if path != "" {
			api.BadRequest(w, "Invalid request path")
			return
		}
		h.listCategories(w, r, businessID)
	case http.MethodPost:
		if path != "" {
			api.BadRequest(w, "Invalid request path")
			return
		}
		h.createCategory(w, r, businessID)
	case http.MethodPut:
		id, err := uuid.Parse(path)
		if err != nil {
			api.BadRequest(w, "Invalid category ID")
			return
		}
		h.updateCategory(w, r, id, businessID)
	case http.MethodDelete:
		id, err := uuid.Parse(path)
		if err != nil {
			api.BadRequest(w, "Invalid category ID")
			return
		}
		h.deleteCategory(w, r, id, businessID)
	default:
		api.MethodNotAllowed(w)
	}
}

// listCategories lists the menu categories of a business
func (h *MenuHandler) listCategories(w http.ResponseWriter, r *http.Request, businessID uuid.UUID) {
	categories, err := h.menuService.GetCategories(r.Context(), businessID)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, categories)
}

// createCategory creates a new menu category
func (h *MenuHandler) createCategory(w http.ResponseWriter, r *http.Request, businessID uuid.UUID) {
	var req models.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	category, err := h.menuService.CreateCategory(r.Context(), businessID, req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, category)
}

// updateCategory updates a menu category
func (h *MenuHandler) updateCategory(w http.ResponseWriter, r *http.Request, id, businessID uuid.UUID) {
	var req models.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	category, err := h.menuService.UpdateCategory(r.Context(), id, businessID, req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, category)
}

// deleteCategory deletes a menu category
func (h *MenuHandler) deleteCategory(w http.ResponseWriter, r *http.Request, id, businessID uuid.UUID) {
	if err := h.menuService.DeleteCategory(r.Context(), id, businessID); err != nil {
		api.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDishes handles requests for dishes
func (h *MenuHandler) HandleDishes(w http.ResponseWriter, r *http.Request) {
	path := menuSubPath(r, "/menu/dishes")

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	businessID := actor.BusinessID()

	// Clients browse the menu; only staff change it
	if r.Method != http.MethodGet {
		if _, ok := middleware.GetStaffActor(r.Context()); !ok {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	// Handle different HTTP methods
	switch r.Method {
	case http.MethodGet:
		if path == "" {
			h.listDishes(w, r, businessID)
			return
		}
		id, err := uuid.Parse(path)
		if err != nil {
			api.BadRequest(w, "Invalid dish ID")
			return
		}
		h.getDish(w, r, id)
	case http.MethodPost:
		if path != "" {
			api.BadRequest(w, "Invalid request path")
			return
		}
		h.createDish(w, r, businessID)
	case http.MethodPut:
		id, err := uuid.Parse(path)
		if err != nil {
			api.BadRequest(w, "Invalid dish ID")
			return
		}
		h.updateDish(w, r, id, businessID)
	case http.MethodDelete:
		id, err := uuid.Parse(path)
		if err != nil {
			api.BadRequest(w, "Invalid dish ID")
			return
		}
		h.deleteDish(w, r, id, businessID)
	default:
		api.MethodNotAllowed(w)
	}
}

// listDishes lists dishes, optionally filtered by category
func (h *MenuHandler) listDishes(w http.ResponseWriter, r *http.Request, businessID uuid.UUID) {
	var category *uuid.UUID

	categoryIDStr := r.URL.Query().Get("category_id")
	if categoryIDStr != "" {
		id, err := uuid.Parse(categoryIDStr)
		if err != nil {
			api.BadRequest(w, "Invalid category ID")
			return
		}
		category = &id
	}

	dishes, err := h.menuService.GetDishes(r.Context(), businessID, category)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, dishes)
}

// getDish gets a dish by ID
func (h *MenuHandler) getDish(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	dish, err := h.menuService.GetDish(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, dish)
}

// createDish creates a new dish
func (h *MenuHandler) createDish(w http.ResponseWriter, r *http.Request, businessID uuid.UUID) {
	var req models.DishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body "+err.Error())
		return
	}

	dish, err := h.menuService.CreateDish(r.Context(), businessID, req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, dish)
}

// updateDish updates a dish
func (h *MenuHandler) updateDish(w http.ResponseWriter, r *http.Request, id, businessID uuid.UUID) {
	var req models.DishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	dish, err := h.menuService.UpdateDish(r.Context(), id, businessID, req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, dish)
}

// deleteDish deletes a dish
func (h *MenuHandler) deleteDish(w http.ResponseWriter, r *http.Request, id, businessID uuid.UUID) {
	if err := h.menuService.DeleteDish(r.Context(), id, businessID); err != nil {
		api.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
