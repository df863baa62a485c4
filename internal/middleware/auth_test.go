package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizza-nz/ordering-service/internal/models"
)

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := bearerToken(req)
	assert.False(t, ok)

	req.Header.Set("Authorization", "Bearer abc123")
	token, ok := bearerToken(req)
	require.True(t, ok)
	assert.Equal(t, "abc123", token)

	req.Header.Set("Authorization", "Basic abc123")
	_, ok = bearerToken(req)
	assert.False(t, ok)
}

func withActor(req *http.Request, actor models.Actor) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), ActorKey, actor))
}

func TestRequireRole(t *testing.T) {
	called := false
	handler := RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	// Admin passes
	req := withActor(httptest.NewRequest(http.MethodGet, "/", nil), models.StaffActor{ID: uuid.New(), Role: models.RoleAdmin})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.True(t, called)

	// A cook does not
	called = false
	req = withActor(httptest.NewRequest(http.MethodGet, "/", nil), models.StaffActor{ID: uuid.New(), Role: models.RoleCook})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// No actor at all is unauthorized
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetActorKinds(t *testing.T) {
	staff := models.StaffActor{ID: uuid.New(), Role: models.RoleWaiter}
	req := withActor(httptest.NewRequest(http.MethodGet, "/", nil), staff)

	got, ok := GetActor(req.Context())
	require.True(t, ok)
	assert.Equal(t, staff, got)

	gotStaff, ok := GetStaffActor(req.Context())
	require.True(t, ok)
	assert.Equal(t, staff, gotStaff)

	_, ok = GetClientActor(req.Context())
	assert.False(t, ok)
}
