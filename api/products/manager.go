package products

import (
	"velvetbite_server/api/middleware"
	"velvetbite_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger         *gecho.Logger
	productService *services.ProductService
	variantService *services.VariantService
	imageService   *services.ImageService
	mw             *middleware.Middleware
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	variantService *services.VariantService,
	imageService *services.ImageService,
	mw *middleware.Middleware,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:         logger,
		productService: productService,
		variantService: variantService,
		imageService:   imageService,
		mw:             mw,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	// Storefront routes
	r.Get("/products", prm.FetchAllProducts)
	r.Get("/products/search", prm.SearchProducts)
	r.Get("/products/options", prm.GetValidOptions)
	r.Get("/products/category/{category}", prm.FetchProductsByCategory)
	r.Get("/products/{id}", prm.FetchProductByID)

	// Catalog management, admin token required
	r.Group(func(r chi.Router) {
		r.Use(prm.mw.AdminAuthMiddleware)

		r.Get("/products/all", prm.FetchDashboardList)
		r.Get("/products/dashboard", prm.GetDashboardSummary)
		r.Post("/products", prm.CreateProduct)
		r.Put("/products/{id}", prm.UpdateProduct)
		r.Delete("/products/{id}", prm.DeleteProduct)

		r.Post("/products/{id}/variants", prm.AddVariant)
		r.Put("/products/{id}/variants", prm.ReplaceVariants)
		r.Delete("/products/{id}/variants/{variantId}", prm.RemoveVariant)

		r.Post("/products/{id}/images", prm.AddImages)
		r.Put("/products/{id}/images/{imageId}", prm.ReplaceImage)
		r.Delete("/products/{id}/images/{imageId}", prm.RemoveImage)
		r.Put("/products/{id}/images/{imageId}/cover", prm.SetCoverImage)
	})
}
