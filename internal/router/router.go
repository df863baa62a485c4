// internal/router/router.go
package router

import (
	"context"
	"net/http"

	"github.com/pizza-nz/ordering-service/internal/api/handler"
	"github.com/pizza-nz/ordering-service/internal/middleware"
	"github.com/pizza-nz/ordering-service/internal/models"
	"github.com/pizza-nz/ordering-service/internal/service"
	"github.com/pizza-nz/ordering-service/internal/websockets"
)

// Services groups the application services the router exposes
type Services struct {
	Auth       *service.AuthService
	Order      *service.OrderService
	Menu       *service.MenuService
	Delivery   *service.DeliveryService
	Statistics *service.StatisticsService
}

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Router handles HTTP routing
type Router struct {
	mux     *http.ServeMux
	handler http.Handler
	svc     Services
	hub     *websockets.Hub
	health  HealthChecker
}

// New creates a new router
func New(svc Services, hub *websockets.Hub, health HealthChecker) *Router {
	r := &Router{
		mux:    http.NewServeMux(),
		svc:    svc,
		hub:    hub,
		health: health,
	}

	r.setupRoutes()
	r.handler = middleware.Logger(r.mux)

	return r
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// setupRoutes sets up the routes for the router
func (r *Router) setupRoutes() {
	userHandler := handler.NewUserHandler(r.svc.Auth)
	orderHandler := handler.NewOrderHandler(r.svc.Order)
	menuHandler := handler.NewMenuHandler(r.svc.Menu)
	deliveryHandler := handler.NewDeliveryHandler(r.svc.Delivery)
	statisticsHandler := handler.NewStatisticsHandler(r.svc.Statistics)
	wsHandler := handler.NewWebSocketHandler(r.hub, r.svc.Auth)

	// Public routes
	r.mux.Handle("/api/auth/login", http.HandlerFunc(userHandler.HandleStaffLogin))
	r.mux.Handle("/api/auth/client/login", http.HandlerFunc(userHandler.HandleClientLogin))
	r.mux.Handle("/api/auth/client/register", http.HandlerFunc(userHandler.HandleClientRegister))
	r.mux.Handle("/api/statuses", http.HandlerFunc(orderHandler.HandleStatuses))
	r.mux.Handle("/ws", wsHandler)
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if r.health != nil {
			if err := r.health.HealthCheck(req.Context()); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	clientAuth := middleware.Auth(r.svc.Auth, service.ActorTypeClient)
	staffAuth := middleware.Auth(r.svc.Auth, service.ActorTypeStaff)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// Client routes
	r.handle("/api/orders", clientAuth(http.HandlerFunc(orderHandler.HandleOrders)))
	r.handle("/api/menu/categories", clientAuth(http.HandlerFunc(menuHandler.HandleCategories)))
	r.handle("/api/menu/dishes", clientAuth(http.HandlerFunc(menuHandler.HandleDishes)))
	r.handle("/api/deliveries", clientAuth(http.HandlerFunc(deliveryHandler.HandleZones)))
	r.mux.Handle("/api/profile", clientAuth(http.HandlerFunc(userHandler.HandleProfile)))

	// Staff routes
	r.handle("/api/admin/orders", staffAuth(http.HandlerFunc(orderHandler.HandleOrders)))
	r.mux.Handle("/api/admin/profile", staffAuth(http.HandlerFunc(userHandler.HandleProfile)))

	// Admin-only management routes
	r.handle("/api/admin/menu/categories", staffAuth(adminOnly(http.HandlerFunc(menuHandler.HandleCategories))))
	r.handle("/api/admin/menu/dishes", staffAuth(adminOnly(http.HandlerFunc(menuHandler.HandleDishes))))
	r.handle("/api/admin/deliveries", staffAuth(adminOnly(http.HandlerFunc(deliveryHandler.HandleZones))))
	r.handle("/api/admin/users", staffAuth(adminOnly(http.HandlerFunc(userHandler.HandleUsers))))
	r.mux.Handle("/api/admin/statistics", staffAuth(adminOnly(http.HandlerFunc(statisticsHandler.HandleStatistics))))
}

// handle registers a handler for both the exact path and its subtree
func (r *Router) handle(path string, h http.Handler) {
	r.mux.Handle(path, h)
	r.mux.Handle(path+"/", h)
}
