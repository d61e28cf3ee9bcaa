package services

import (
	"context"
	"velvetbite_server/database"
	"velvetbite_server/structs"
	"velvetbite_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// VariantService mutates the size variant ledger of a product. All operations
// are load-mutate-persist on the owning aggregate.
type VariantService struct {
	logger         *gecho.Logger
	db             *database.DB
	productService *ProductService
}

func NewVariantService(logger *gecho.Logger, db *database.DB, productService *ProductService) *VariantService {
	return &VariantService{
		logger:         logger,
		db:             db,
		productService: productService,
	}
}

// AddVariant appends one variant to the product. The size must not already be
// present.
func (vs *VariantService) AddVariant(ctx context.Context, productID uuid.UUID, req *structs.AddSizeVariantRequest) (*tables.Product, error) {
	product, err := vs.productService.loadForMutation(ctx, productID)
	if err != nil {
		return nil, err
	}

	price := req.Price
	isAvailable := req.IsAvailable == nil || *req.IsAvailable
	variant, err := product.AddSizeVariant(req.Size, *price, isAvailable)
	if err != nil {
		return nil, err
	}

	persisted, err := vs.productService.persist(ctx, product)
	if err != nil {
		return nil, err
	}

	vs.logger.Info("Size variant added",
		gecho.Field("product_id", productID),
		gecho.Field("variant_id", variant.ID),
		gecho.Field("size", variant.Size),
	)
	return persisted, nil
}

// ReplaceVariants swaps the product's entire variant list.
func (vs *VariantService) ReplaceVariants(ctx context.Context, productID uuid.UUID, variants []structs.SizeVariantRequest) (*tables.Product, error) {
	product, err := vs.productService.loadForMutation(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.ReplaceSizeVariants(variants); err != nil {
		return nil, err
	}

	persisted, err := vs.productService.persist(ctx, product)
	if err != nil {
		return nil, err
	}

	vs.logger.Info("Size variants replaced",
		gecho.Field("product_id", productID),
		gecho.Field("variant_count", len(product.SizeVariants)),
	)
	return persisted, nil
}

// RemoveVariant drops one variant by id.
func (vs *VariantService) RemoveVariant(ctx context.Context, productID, variantID uuid.UUID) (*tables.Product, error) {
	product, err := vs.productService.loadForMutation(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.RemoveSizeVariant(variantID); err != nil {
		return nil, err
	}

	persisted, err := vs.productService.persist(ctx, product)
	if err != nil {
		return nil, err
	}

	vs.logger.Info("Size variant removed",
		gecho.Field("product_id", productID),
		gecho.Field("variant_id", variantID),
	)
	return persisted, nil
}
