package services

import (
	"context"
	"fmt"
	"time"
	"velvetbite_server/database"
	"velvetbite_server/lib"
	"velvetbite_server/structs"
	"velvetbite_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
	blobService  *BlobService
}

func NewProductService(logger *gecho.Logger, db *database.DB, cacheService *CacheService, blobService *BlobService) *ProductService {
	return &ProductService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
		blobService:  blobService,
	}
}

// ProductListOptions contains filtering and pagination options for catalog
// queries
type ProductListOptions struct {
	// Pagination
	Page     int `json:"page"`
	PageSize int `json:"page_size"`

	// Filters
	Category   *structs.Category `json:"category,omitempty"`
	SearchTerm string            `json:"search_term,omitempty"` // matches title, description and category
	MinPrice   *decimal.Decimal  `json:"min_price,omitempty"`   // against any size variant
	MaxPrice   *decimal.Decimal  `json:"max_price,omitempty"`

	// Sorting
	SortBy        string `json:"sort_by"`
	SortDirection string `json:"sort_direction"` // ASC or DESC

	// Performance
	Timeout time.Duration `json:"-"`
}

// ProductListResult wraps the product list response with metadata
type ProductListResult struct {
	Products   []tables.Product    `json:"products"`
	Pagination database.Pagination `json:"pagination"`
	QueryTime  time.Duration       `json:"query_time"`
}

// GetAllProducts retrieves products with filtering and pagination. Listing
// pages are served from cache when the same filter combination was fetched
// recently.
func (ps *ProductService) GetAllProducts(ctx context.Context, opts *ProductListOptions) (*ProductListResult, error) {
	startTime := time.Now()

	if opts == nil {
		opts = &ProductListOptions{}
	}
	ps.applyDefaultOptions(opts)

	if err := ps.validateOptions(opts); err != nil {
		ps.logger.Error("Invalid product list options", gecho.Field("error", err), gecho.Field("options", opts))
		return nil, err
	}

	listKey := ps.listCacheKey(opts)
	if cached, err := ps.cacheService.GetProductList(listKey); err == nil && cached != nil {
		ps.logger.Debug("Product list retrieved from cache",
			gecho.Field("key", listKey),
			gecho.Field("duration", time.Since(startTime)))
		return cached, nil
	}

	queryCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	query := database.Query[tables.Product](ps.db)
	query = ps.applyFilters(query, opts)
	query = ps.applySorting(query, opts)

	result, err := database.Paginate(query, queryCtx, opts.Page, opts.PageSize)
	if err != nil {
		ps.logger.Error("Failed to fetch products",
			gecho.Field("error", err),
			gecho.Field("page", opts.Page),
			gecho.Field("pageSize", opts.PageSize),
			gecho.Field("duration", time.Since(startTime)))
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	ps.logger.Debug("Products fetched successfully",
		gecho.Field("count", len(result.Data)),
		gecho.Field("total", result.Pagination.Total),
		gecho.Field("duration", time.Since(startTime)),
	)

	listResult := &ProductListResult{
		Products:   result.Data,
		Pagination: result.Pagination,
		QueryTime:  time.Since(startTime),
	}

	go func() {
		if err := ps.cacheService.SetProductList(listKey, listResult); err != nil {
			ps.logger.Warn("Failed to cache product list", gecho.Field("error", err), gecho.Field("key", listKey))
		}
	}()

	return listResult, nil
}

// GetProductByID retrieves a single product, reading through the cache.
func (ps *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	startTime := time.Now()

	cachedProduct, err := ps.cacheService.GetProductByID(id.String())
	if err == nil && cachedProduct != nil {
		ps.logger.Debug("Product retrieved from cache", gecho.Field("id", id), gecho.Field("duration", time.Since(startTime)))
		return cachedProduct, nil
	}

	product, err := database.Query[tables.Product](ps.db).
		Where("id", id).
		Timeout(5 * time.Second).
		First(ctx)
	if err != nil {
		if lib.IsNotFound(err) {
			return nil, err
		}
		ps.logger.Error("Failed to fetch product by ID",
			gecho.Field("id", id),
			gecho.Field("error", err),
			gecho.Field("duration", time.Since(startTime)),
		)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	go func() {
		if err := ps.cacheService.SetProductByID(product); err != nil {
			ps.logger.Warn("Failed to cache product", gecho.Field("error", err), gecho.Field("id", id))
		}
	}()

	return product, nil
}

// GetProductsByCategory lists products within one category, newest first.
func (ps *ProductService) GetProductsByCategory(ctx context.Context, category structs.Category, page, pageSize int) (*ProductListResult, error) {
	return ps.GetAllProducts(ctx, &ProductListOptions{
		Page:     page,
		PageSize: pageSize,
		Category: &category,
	})
}

// SearchProducts matches the term against product title, description and
// category.
func (ps *ProductService) SearchProducts(ctx context.Context, term string, page, pageSize int) (*ProductListResult, error) {
	return ps.GetAllProducts(ctx, &ProductListOptions{
		Page:       page,
		PageSize:   pageSize,
		SearchTerm: term,
	})
}

// DashboardSummary aggregates catalog counts for the admin dashboard.
type DashboardSummary struct {
	TotalProducts int            `json:"total_products"`
	ByCategory    map[string]int `json:"by_category"`
}

type categoryCountRow struct {
	Category string `bun:"category"`
	Count    int    `bun:"count"`
}

// GetDashboardSummary returns total and per-category product counts.
func (ps *ProductService) GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	rows, err := database.RawQuery[categoryCountRow](ps.db, ctx,
		"SELECT category, COUNT(*) AS count FROM products GROUP BY category")
	if err != nil {
		ps.logger.Error("Failed to fetch dashboard summary", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch dashboard summary: %w", err)
	}

	summary := &DashboardSummary{ByCategory: make(map[string]int, len(rows))}
	for _, row := range rows {
		summary.ByCategory[row.Category] = row.Count
		summary.TotalProducts += row.Count
	}

	return summary, nil
}

// DashboardList returns the full filtered catalog without pagination, for the
// admin dashboard table.
func (ps *ProductService) DashboardList(ctx context.Context, opts *ProductListOptions) ([]tables.Product, error) {
	if opts == nil {
		opts = &ProductListOptions{}
	}
	ps.applyDefaultOptions(opts)

	if err := ps.validateOptions(opts); err != nil {
		return nil, err
	}

	query := database.Query[tables.Product](ps.db)
	query = ps.applyFilters(query, opts)
	query = ps.applySorting(query, opts)

	products, err := query.Timeout(opts.Timeout).All(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch dashboard list", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch dashboard list: %w", err)
	}

	return products, nil
}

// CreateProduct validates and persists a new product aggregate.
func (ps *ProductService) CreateProduct(ctx context.Context, product *tables.Product) (*tables.Product, error) {
	startTime := time.Now()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.SizeVariants == nil {
		product.SizeVariants = []tables.SizeVariant{}
	}
	if product.Images == nil {
		product.Images = []tables.ProductImage{}
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	product, err := database.Query[tables.Product](ps.db).Insert(ctx, product)
	if err != nil {
		ps.logger.Error("Failed to create product",
			gecho.Field("error", err),
			gecho.Field("title", product.Title),
			gecho.Field("duration", time.Since(startTime)),
		)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	ps.invalidateCaches(product.ID)

	ps.logger.Info("Product created successfully",
		gecho.Field("id", product.ID),
		gecho.Field("variant_count", len(product.SizeVariants)),
		gecho.Field("duration", time.Since(startTime)),
	)
	return product, nil
}

// UpdateProduct patches the provided top-level fields. A provided variant
// list replaces the existing one wholesale.
func (ps *ProductService) UpdateProduct(ctx context.Context, productID uuid.UUID, req *structs.UpdateProductRequest) (*tables.Product, error) {
	product, err := ps.loadForMutation(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.SizeVariants != nil {
		if err := product.ReplaceSizeVariants(req.SizeVariants); err != nil {
			return nil, err
		}
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return ps.persist(ctx, product)
}

// DeleteProduct removes the product row and then its image blobs. The blob
// deletes run after the row delete so a storage failure can never resurrect a
// half-deleted product; leaked files are logged instead.
func (ps *ProductService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	product, err := ps.loadForMutation(ctx, productID)
	if err != nil {
		return err
	}

	affected, err := database.DeleteByID[tables.Product](ps.db, ctx, productID)
	if err != nil {
		ps.logger.Error("Failed to delete product", gecho.Field("id", productID), gecho.Field("error", err))
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}

	filenames := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		filenames = append(filenames, img.Filename)
	}
	ps.blobService.DeleteAll(filenames)

	ps.invalidateCaches(productID)

	ps.logger.Info("Product deleted",
		gecho.Field("id", productID),
		gecho.Field("blob_count", len(filenames)),
	)
	return nil
}

// loadForMutation fetches the current row directly from the database; cached
// copies are never used as the base of a write.
func (ps *ProductService) loadForMutation(ctx context.Context, productID uuid.UUID) (*tables.Product, error) {
	product, err := database.FindByID[tables.Product](ps.db, ctx, productID)
	if err != nil {
		if lib.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return product, nil
}

// persist writes the full aggregate back and invalidates caches.
func (ps *ProductService) persist(ctx context.Context, product *tables.Product) (*tables.Product, error) {
	product.UpdatedAt = time.Now()

	affected, err := database.Query[tables.Product](ps.db).
		Where("id", product.ID).
		Update(ctx, product)
	if err != nil {
		ps.logger.Error("Failed to persist product", gecho.Field("id", product.ID), gecho.Field("error", err))
		return nil, fmt.Errorf("failed to persist product: %w", err)
	}
	if affected == 0 {
		return nil, lib.ErrNotFound
	}

	ps.invalidateCaches(product.ID)
	return product, nil
}

func (ps *ProductService) invalidateCaches(productID uuid.UUID) {
	go func() {
		if err := ps.cacheService.InvalidateProductCaches(productID); err != nil {
			ps.logger.Warn("Failed to invalidate product caches",
				gecho.Field("error", err),
				gecho.Field("product_id", productID),
			)
		}
	}()
}

// applyDefaultOptions sets default values for unspecified options
func (ps *ProductService) applyDefaultOptions(opts *ProductListOptions) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 {
		opts.PageSize = 10
	}
	if opts.PageSize > 100 {
		opts.PageSize = 100 // Max page size for performance
	}
	if opts.SortBy == "" {
		opts.SortBy = "created_at"
	}
	if opts.SortDirection == "" {
		opts.SortDirection = "DESC"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
}

// validateOptions validates the provided options
func (ps *ProductService) validateOptions(opts *ProductListOptions) error {
	validSortFields := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"title":      true,
		"category":   true,
	}
	if !validSortFields[opts.SortBy] {
		return lib.NewInvariantError("invalid sort field: %s", opts.SortBy)
	}

	if opts.SortDirection != "ASC" && opts.SortDirection != "DESC" {
		return lib.NewInvariantError("invalid sort direction: %s (must be ASC or DESC)", opts.SortDirection)
	}

	if opts.MinPrice != nil && opts.MaxPrice != nil && opts.MinPrice.GreaterThan(*opts.MaxPrice) {
		return lib.NewInvariantError("min_price cannot be greater than max_price")
	}

	return nil
}

// applyFilters applies all filter conditions to the query. Price filters
// match products that have at least one size variant inside the range.
func (ps *ProductService) applyFilters(query *database.QueryBuilder[tables.Product], opts *ProductListOptions) *database.QueryBuilder[tables.Product] {
	if opts.Category != nil {
		query = query.Where("category", string(*opts.Category))
	}

	if opts.SearchTerm != "" {
		sql, args := searchPredicate(opts.SearchTerm)
		query = query.WhereRaw(sql, args...)
	}

	if opts.MinPrice != nil {
		query = query.WhereRaw(
			"EXISTS (SELECT 1 FROM jsonb_array_elements(size_variants) AS v WHERE (v->>'price')::numeric >= ?)",
			opts.MinPrice.String(),
		)
	}
	if opts.MaxPrice != nil {
		query = query.WhereRaw(
			"EXISTS (SELECT 1 FROM jsonb_array_elements(size_variants) AS v WHERE (v->>'price')::numeric <= ?)",
			opts.MaxPrice.String(),
		)
	}

	return query
}

// searchPredicate builds the free-text filter. The term matches title,
// description and category.
func searchPredicate(term string) (string, []any) {
	pattern := "%" + term + "%"
	return "(title ILIKE ? OR description ILIKE ? OR category ILIKE ?)",
		[]any{pattern, pattern, pattern}
}

// applySorting applies sorting to the query
func (ps *ProductService) applySorting(query *database.QueryBuilder[tables.Product], opts *ProductListOptions) *database.QueryBuilder[tables.Product] {
	direction := database.DESC
	if opts.SortDirection == "ASC" {
		direction = database.ASC
	}

	query = query.OrderBy(opts.SortBy, direction)

	// Secondary sort by ID for consistent ordering
	query = query.OrderBy("id", database.ASC)

	return query
}

// listCacheKey encodes the filter combination for the list cache.
func (ps *ProductService) listCacheKey(opts *ProductListOptions) string {
	category := ""
	if opts.Category != nil {
		category = string(*opts.Category)
	}
	minPrice, maxPrice := "", ""
	if opts.MinPrice != nil {
		minPrice = opts.MinPrice.String()
	}
	if opts.MaxPrice != nil {
		maxPrice = opts.MaxPrice.String()
	}
	return fmt.Sprintf("p:%d:s:%d:c:%s:q:%s:min:%s:max:%s:sort:%s:%s",
		opts.Page, opts.PageSize, category, opts.SearchTerm, minPrice, maxPrice, opts.SortBy, opts.SortDirection)
}
