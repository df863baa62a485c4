package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizza-nz/ordering-service/internal/models"
)

func newTestAuthService() *AuthService {
	return NewAuthService(nil, JWTConfig{Secret: "test-secret", ExpiresIn: 1})
}

func TestStaffTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService()
	staffID := uuid.New()
	businessID := uuid.New()

	claims := svc.newClaims(staffID, ActorTypeStaff)
	claims.Role = string(models.RoleCook)
	claims.ParentID = businessID.String()

	token, err := svc.signToken(claims)
	require.NoError(t, err)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, ActorTypeStaff, parsed.ActorType)

	actor, err := parsed.Actor()
	require.NoError(t, err)
	staff, ok := actor.(models.StaffActor)
	require.True(t, ok)
	assert.Equal(t, staffID, staff.ID)
	assert.Equal(t, models.RoleCook, staff.Role)
	require.NotNil(t, staff.ParentID)
	assert.Equal(t, businessID, *staff.ParentID)
}

func TestClientTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService()
	clientID := uuid.New()
	businessID := uuid.New()

	claims := svc.newClaims(clientID, ActorTypeClient)
	claims.BusinessID = businessID.String()

	token, err := svc.signToken(claims)
	require.NoError(t, err)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)

	actor, err := parsed.Actor()
	require.NoError(t, err)
	client, ok := actor.(models.ClientActor)
	require.True(t, ok)
	assert.Equal(t, clientID, client.ID)
	assert.Equal(t, businessID, client.UserID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestAuthService()
	claims := svc.newClaims(uuid.New(), ActorTypeStaff)
	claims.Role = string(models.RoleAdmin)

	token, err := svc.signToken(claims)
	require.NoError(t, err)

	other := NewAuthService(nil, JWTConfig{Secret: "different-secret", ExpiresIn: 1})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService()
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestClaimsActorRejectsUnknownRole(t *testing.T) {
	svc := newTestAuthService()
	claims := svc.newClaims(uuid.New(), ActorTypeStaff)
	claims.Role = "janitor"

	_, err := claims.Actor()
	assert.Error(t, err)
}
