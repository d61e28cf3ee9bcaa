package products

import (
	"errors"
	"net/http"
	"strconv"
	"velvetbite_server/handling"
	"velvetbite_server/lib"
	"velvetbite_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FetchAllProducts handles GET /products with filtering, pagination and sorting
func (prm *ProductRoutesManager) FetchAllProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		prm.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid query parameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	result, err := prm.productService.GetAllProducts(ctx, opts)
	if err != nil {
		handling.RespondDomainError(err, "Failed to fetch products", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   result.Products,
			"pagination": result.Pagination,
			"meta": map[string]any{
				"query_time_ms": result.QueryTime.Milliseconds(),
				"count":         len(result.Products),
			},
		}),
		gecho.Send(),
	)
}

// FetchProductByID handles GET /products/{id} to fetch a single product
func (prm *ProductRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseIDParam(r, "id")
	if err != nil {
		prm.logger.Warn("Invalid product ID format", gecho.Field("id", chi.URLParam(r, "id")))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid product id"),
			gecho.Send(),
		)
		return
	}

	product, err := prm.productService.GetProductByID(ctx, id)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
			return
		}
		handling.RespondDomainError(err, "Failed to fetch product by ID", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}

// FetchProductsByCategory handles GET /products/category/{category}
func (prm *ProductRoutesManager) FetchProductsByCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category, ok := structs.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		prm.logger.Warn("Unknown category requested", gecho.Field("category", chi.URLParam(r, "category")))
		gecho.BadRequest(w, gecho.WithMessage("Unknown category"), gecho.Send())
		return
	}

	page, pageSize := parsePagination(r)
	result, err := prm.productService.GetProductsByCategory(ctx, category, page, pageSize)
	if err != nil {
		handling.RespondDomainError(err, "Failed to fetch products by category", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   result.Products,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}

// SearchProducts handles GET /products/search?q=term
func (prm *ProductRoutesManager) SearchProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	term := r.URL.Query().Get("q")
	if term == "" {
		gecho.BadRequest(w, gecho.WithMessage("Search term is required"), gecho.Send())
		return
	}

	page, pageSize := parsePagination(r)
	result, err := prm.productService.SearchProducts(ctx, term, page, pageSize)
	if err != nil {
		handling.RespondDomainError(err, "Failed to search products", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   result.Products,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}

// GetValidOptions handles GET /products/options, returning the category and
// size enums the storefront forms are built from.
func (prm *ProductRoutesManager) GetValidOptions(w http.ResponseWriter, r *http.Request) {
	gecho.Success(w,
		gecho.WithData(map[string]any{
			"categories": structs.ValidCategories,
			"sizes":      structs.ValidSizes,
		}),
		gecho.Send(),
	)
}

// FetchDashboardList handles GET /products/all: the full filtered catalog
// without pagination, for the admin dashboard table.
func (prm *ProductRoutesManager) FetchDashboardList(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		prm.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid query parameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	products, err := prm.productService.DashboardList(r.Context(), opts)
	if err != nil {
		handling.RespondDomainError(err, "Failed to fetch dashboard list", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": products,
			"count":    len(products),
		}),
		gecho.Send(),
	)
}

// GetDashboardSummary handles GET /products/dashboard for the admin panel
func (prm *ProductRoutesManager) GetDashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := prm.productService.GetDashboardSummary(r.Context())
	if err != nil {
		handling.RespondDomainError(err, "Failed to fetch dashboard summary", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(summary),
		gecho.Send(),
	)
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, errors.New("id must not be the zero uuid")
	}
	return id, nil
}

func parsePagination(r *http.Request) (page, pageSize int) {
	page, pageSize = 1, 10
	if val, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && val > 0 {
		page = val
	}
	if val, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && val > 0 {
		pageSize = val
	}
	return page, pageSize
}
