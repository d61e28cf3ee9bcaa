package handling

import (
	"net/http"
	"strconv"
	"strings"
	"velvetbite_server/lib"
	"velvetbite_server/services"
	"velvetbite_server/structs"

	"github.com/shopspring/decimal"
)

// ParseProductListOptions parses HTTP query parameters into
// ProductListOptions
func ParseProductListOptions(r *http.Request) (*services.ProductListOptions, error) {
	query := r.URL.Query()

	opts := &services.ProductListOptions{}
	if len(query) == 0 {
		return opts, nil
	}

	var err error
	var valInt int

	if page := query.Get("page"); page != "" {
		if valInt, err = strconv.Atoi(page); err != nil {
			return nil, lib.NewInvariantError("page must be an integer")
		}
		opts.Page = valInt
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		if valInt, err = strconv.Atoi(pageSize); err != nil {
			return nil, lib.NewInvariantError("page_size must be an integer")
		}
		opts.PageSize = valInt
	}

	if category := query.Get("category"); category != "" {
		c, ok := structs.ParseCategory(category)
		if !ok {
			return nil, lib.NewInvariantError("invalid category: %s", category)
		}
		opts.Category = &c
	}

	if searchTerm := query.Get("search"); searchTerm != "" {
		opts.SearchTerm = searchTerm
	}

	if minPrice := query.Get("min_price"); minPrice != "" {
		d, err := decimal.NewFromString(minPrice)
		if err != nil || d.IsNegative() {
			return nil, lib.NewInvariantError("min_price must be a non-negative number")
		}
		opts.MinPrice = &d
	}

	if maxPrice := query.Get("max_price"); maxPrice != "" {
		d, err := decimal.NewFromString(maxPrice)
		if err != nil || d.IsNegative() {
			return nil, lib.NewInvariantError("max_price must be a non-negative number")
		}
		opts.MaxPrice = &d
	}

	if sortBy := query.Get("sort_by"); sortBy != "" {
		opts.SortBy = sortBy
	}

	if sortDirection := query.Get("sort_direction"); sortDirection != "" {
		opts.SortDirection = strings.ToUpper(sortDirection)
	}

	return opts, nil
}

// ParseOrderListOptions parses HTTP query parameters into OrderListOptions
func ParseOrderListOptions(r *http.Request) (*services.OrderListOptions, error) {
	query := r.URL.Query()

	opts := &services.OrderListOptions{}
	if len(query) == 0 {
		return opts, nil
	}

	var err error
	var valInt int

	if page := query.Get("page"); page != "" {
		if valInt, err = strconv.Atoi(page); err != nil {
			return nil, lib.NewInvariantError("page must be an integer")
		}
		opts.Page = valInt
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		if valInt, err = strconv.Atoi(pageSize); err != nil {
			return nil, lib.NewInvariantError("page_size must be an integer")
		}
		opts.PageSize = valInt
	}

	if sortBy := query.Get("sort_by"); sortBy != "" {
		opts.SortBy = sortBy
	}

	if sortDirection := query.Get("sort_direction"); sortDirection != "" {
		opts.SortDirection = strings.ToUpper(sortDirection)
	}

	return opts, nil
}
