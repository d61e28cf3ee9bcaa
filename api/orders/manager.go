package orders

import (
	"velvetbite_server/api/middleware"
	"velvetbite_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	logger       *gecho.Logger
	orderService *services.OrderService
	mw           *middleware.Middleware
}

func NewOrderRoutesManager(
	logger *gecho.Logger,
	orderService *services.OrderService,
	mw *middleware.Middleware,
) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:       logger,
		orderService: orderService,
		mw:           mw,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	// Storefront checkout
	r.Post("/orders", orm.CreateOrder)

	// Order management, admin token required
	r.Group(func(r chi.Router) {
		r.Use(orm.mw.AdminAuthMiddleware)

		r.Get("/orders", orm.FetchAllOrders)
		r.Get("/orders/stats", orm.GetOrderStats)
		r.Get("/orders/number/{orderNumber}", orm.FetchOrderByNumber)
		r.Get("/orders/{id}", orm.FetchOrderByID)
		r.Put("/orders/{id}", orm.UpdateOrder)
		r.Delete("/orders/{id}", orm.DeleteOrder)

		r.Post("/orders/{id}/items", orm.AddItem)
		r.Put("/orders/{id}/items/{itemId}", orm.UpdateItem)
		r.Delete("/orders/{id}/items/{itemId}", orm.RemoveItem)
	})
}
