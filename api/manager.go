package api

import (
	"velvetbite_server/api/auth"
	"velvetbite_server/api/health"
	"velvetbite_server/api/middleware"
	"velvetbite_server/api/orders"
	"velvetbite_server/api/products"
	"velvetbite_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes *products.ProductRoutesManager
	orderRoutes   *orders.OrderRoutesManager
	authRoutes    *auth.AuthRoutesManager
	healthRoutes  *health.HealthRoutesManager
}

func NewRouterManager(logger *gecho.Logger, sm *services.ServiceManager, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		productRoutes: products.NewProductRoutesManager(logger, sm.ProductService, sm.VariantService, sm.ImageService, mw),
		orderRoutes:   orders.NewOrderRoutesManager(logger, sm.OrderService, mw),
		authRoutes:    auth.NewAuthRoutesManager(logger, sm.AuthService),
		healthRoutes:  health.NewHealthRoutesManager(sm.HealthService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
}
