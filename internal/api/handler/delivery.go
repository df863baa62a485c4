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

// DeliveryHandler handles delivery zone requests
type DeliveryHandler struct {
	deliveryService *service.DeliveryService
}

// NewDeliveryHandler creates a new delivery handler
func NewDeliveryHandler(deliveryService *service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: deliveryService,
	}
}

// HandleZones handles requests for delivery zones
func (h *DeliveryHandler) HandleZones(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if idx := strings.Index(path, "/deliveries"); idx >= 0 {
		path = path[idx+len("/deliveries"):]
	}
	path = strings.TrimPrefix(path, "/")

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	businessID := actor.BusinessID()

	// Clients see the zones; only staff change them
	if r.Method != http.MethodGet {
		if _, ok := middleware.GetStaffActor(r.Context()); !ok {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	switch r.Method {
	case http.MethodGet:
		if path != "" {
			api.BadRequest(w, "Invalid request path")
			return
		}
		h.listZones(w, r, businessID)
	case http.MethodPost:
		if path != "" {
			api.BadRequest(w, "Invalid request path")
			return
		}
		h.createZone(w, r, businessID)
	case http.MethodPut:
		id, err := uuid.Parse(path)
		if err != nil {
			api.BadRequest(w, "Invalid zone ID")
			return
		}
		h.updateZone(w, r, id, businessID)
	case http.MethodDelete:
		id, err := uuid.Parse(path)
		if err != nil {
			api.BadRequest(w, "Invalid zone ID")
			return
		}
		h.deleteZone(w, r, id, businessID)
	default:
		api.MethodNotAllowed(w)
	}
}

// listZones lists the delivery zones of a business
func (h *DeliveryHandler) listZones(w http.ResponseWriter, r *http.Request, businessID uuid.UUID) {
	zones, err := h.deliveryService.GetZones(r.Context(), businessID)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, zones)
}

// createZone creates a new delivery zone
func (h *DeliveryHandler) createZone(w http.ResponseWriter, r *http.Request, businessID uuid.UUID) {
	var req models.DeliveryZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	zone, err := h.deliveryService.CreateZone(r.Context(), businessID, req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, zone)
}

// updateZone updates a delivery zone
func (h *DeliveryHandler) updateZone(w http.ResponseWriter, r *http.Request, id, businessID uuid.UUID) {
	var req models.DeliveryZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	zone, err := h.deliveryService.UpdateZone(r.Context(), id, businessID, req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, zone)
}

// deleteZone deletes a delivery zone
func (h *DeliveryHandler) deleteZone(w http.ResponseWriter, r *http.Request, id, businessID uuid.UUID) {
	if err := h.deliveryService.DeleteZone(r.Context(), id, businessID); err != nil {
		api.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
