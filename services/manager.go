package services

import (
	"velvetbite_server/database"
	"velvetbite_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService    *AuthService
	EmailService   *EmailService
	CacheService   *CacheService
	BlobService    *BlobService
	HealthService  *HealthService
	ProductService *ProductService
	VariantService *VariantService
	ImageService   *ImageService
	OrderService   *OrderService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	authService := NewAuthService(cfg, logger)
	cacheService := NewCacheService(logger, cfg)
	blobService := NewBlobService(logger, cfg)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)
	productService := NewProductService(logger, db, cacheService, blobService)
	variantService := NewVariantService(logger, db, productService)
	imageService := NewImageService(logger, cfg, db, productService, blobService)
	orderService := NewOrderService(logger, cfg, db, emailService)

	return &ServiceManager{
		AuthService:    authService,
		EmailService:   emailService,
		CacheService:   cacheService,
		BlobService:    blobService,
		HealthService:  healthService,
		ProductService: productService,
		VariantService: variantService,
		ImageService:   imageService,
		OrderService:   orderService,
	}
}
