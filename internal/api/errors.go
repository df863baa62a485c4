package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pizza-nz/ordering-service/internal/models"
)

func BadRequest(w http.ResponseWriter, message string) {
	http.Error(w, message, http.StatusBadRequest)
}

func MethodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error maps a domain error to its HTTP status. Permission failures and
// illegal transitions share ErrNotAllowed and therefore share 403.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrOrderNotFound), errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrDishNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotAllowed):
		http.Error(w, "not allowed", http.StatusForbidden)
	case errors.Is(err, models.ErrInvalidStatus), errors.Is(err, models.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
