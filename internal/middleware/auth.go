package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pizza-nz/ordering-service/internal/models"
	"github.com/pizza-nz/ordering-service/internal/service"
)

// contextKey is a type for context keys
type contextKey string

// ActorKey holds the authenticated actor in the request context
const ActorKey contextKey = "actor"

// bearerToken extracts the token from the Authorization header
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

// Auth authenticates requests for the given actor kind (service.ActorTypeStaff
// or service.ActorTypeClient) and stores the actor in the request context. A
// token of the wrong kind is rejected the same way as a missing one.
func Auth(authService *service.AuthService, actorType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			if claims.ActorType != actorType {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			actor, err := claims.Actor()
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ActorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole restricts a staff route to the given roles
func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			staff, ok := GetStaffActor(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			allowed := false
			for _, allowedRole := range roles {
				if staff.Role == allowedRole {
					allowed = true
					break
				}
			}

			if !allowed {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetActor extracts the authenticated actor from the context
func GetActor(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(models.Actor)
	return actor, ok
}

// GetStaffActor extracts a staff actor from the context
func GetStaffActor(ctx context.Context) (models.StaffActor, bool) {
	actor, ok := ctx.Value(ActorKey).(models.StaffActor)
	return actor, ok
}

// GetClientActor extracts a client actor from the context
func GetClientActor(ctx context.Context) (models.ClientActor, bool) {
	actor, ok := ctx.Value(ActorKey).(models.ClientActor)
	return actor, ok
}
