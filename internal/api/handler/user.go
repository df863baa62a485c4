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

// UserHandler handles authentication and account requests
type UserHandler struct {
	authService *service.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleStaffLogin authenticates a staff member
func (h *UserHandler) HandleStaffLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.MethodNotAllowed(w)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	token, user, err := h.authService.LoginStaff(r.Context(), req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	api.JSON(w, http.StatusOK, struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}{
		Token: token,
		User:  user,
	})
}

// HandleClientLogin authenticates a client
func (h *UserHandler) HandleClientLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.MethodNotAllowed(w)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	token, client, err := h.authService.LoginClient(r.Context(), req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	api.JSON(w, http.StatusOK, struct {
		Token  string         `json:"token"`
		Client *models.Client `json:"client"`
	}{
		Token:  token,
		Client: client,
	})
}

// HandleClientRegister registers a new client account
func (h *UserHandler) HandleClientRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.MethodNotAllowed(w)
		return
	}

	var req models.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		api.BadRequest(w, "Email and password are required")
		return
	}

	client, err := h.authService.RegisterClient(r.Context(), req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, client)
}

// HandleUsers handles staff account requests on the admin mount
func (h *UserHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if idx := strings.Index(path, "/users"); idx >= 0 {
		path = path[idx+len("/users"):]
	}
	path = strings.TrimPrefix(path, "/")

	staff, ok := middleware.GetStaffActor(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		if path == "" {
			h.listStaff(w, r, staff.BusinessID())
			return
		}
		id, err := uuid.Parse(path)
		if err != nil {
			api.BadRequest(w, "Invalid user ID")
			return
		}
		h.getStaff(w, r, id, staff.BusinessID())

	case http.MethodPost:
		if path != "" {
			api.BadRequest(w, "Invalid request path")
			return
		}
		h.createStaff(w, r, staff.BusinessID())

	default:
		api.MethodNotAllowed(w)
	}
}

// listStaff lists the staff of the business
func (h *UserHandler) listStaff(w http.ResponseWriter, r *http.Request, businessID uuid.UUID) {
	users, err := h.authService.ListStaff(r.Context(), businessID)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, users)
}

// getStaff gets a staff member by ID, scoped to the business
func (h *UserHandler) getStaff(w http.ResponseWriter, r *http.Request, id, businessID uuid.UUID) {
	user, err := h.authService.GetStaff(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	if user.ID != businessID && (user.ParentID == nil || *user.ParentID != businessID) {
		api.Error(w, models.ErrNotFound)
		return
	}

	api.JSON(w, http.StatusOK, user)
}

// createStaff registers a new staff member under the business
func (h *UserHandler) createStaff(w http.ResponseWriter, r *http.Request, businessID uuid.UUID) {
	var req models.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	user, err := h.authService.RegisterStaff(r.Context(), businessID, req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, user)
}

// HandleProfile returns the account behind the token
func (h *UserHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.MethodNotAllowed(w)
		return
	}

	if staff, ok := middleware.GetStaffActor(r.Context()); ok {
		user, err := h.authService.GetStaff(r.Context(), staff.ID)
		if err != nil {
			api.Error(w, err)
			return
		}
		api.JSON(w, http.StatusOK, user)
		return
	}

	if clientActor, ok := middleware.GetClientActor(r.Context()); ok {
		client, err := h.authService.GetClient(r.Context(), clientActor.ID)
		if err != nil {
			api.Error(w, err)
			return
		}
		api.JSON(w, http.StatusOK, client)
		return
	}

	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
