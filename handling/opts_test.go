package handling

import (
	"net/http/httptest"
	"testing"
	"velvetbite_server/lib"
	"velvetbite_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductListOptions(t *testing.T) {
	t.Run("empty query", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/products", nil)
		opts, err := ParseProductListOptions(r)
		require.NoError(t, err)
		assert.Zero(t, opts.Page)
		assert.Nil(t, opts.Category)
	})

	t.Run("full query", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/products?page=2&page_size=5&category=Dark+Desire&search=box&min_price=5&max_price=25.50&sort_by=title&sort_direction=asc", nil)
		opts, err := ParseProductListOptions(r)
		require.NoError(t, err)

		assert.Equal(t, 2, opts.Page)
		assert.Equal(t, 5, opts.PageSize)
		require.NotNil(t, opts.Category)
		assert.Equal(t, structs.CategoryDarkDesire, *opts.Category)
		assert.Equal(t, "box", opts.SearchTerm)
		require.NotNil(t, opts.MinPrice)
		assert.Equal(t, "5", opts.MinPrice.String())
		require.NotNil(t, opts.MaxPrice)
		assert.Equal(t, "25.5", opts.MaxPrice.String())
		assert.Equal(t, "title", opts.SortBy)
		assert.Equal(t, "ASC", opts.SortDirection)
	})

	t.Run("lowercase category", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/products?category=dark+desire", nil)
		opts, err := ParseProductListOptions(r)
		require.NoError(t, err)
		require.NotNil(t, opts.Category)
		assert.Equal(t, structs.CategoryDarkDesire, *opts.Category)
	})

	t.Run("unknown category", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/products?category=Pistachio", nil)
		_, err := ParseProductListOptions(r)
		assert.True(t, lib.IsInvariant(err))
	})

	t.Run("negative min price", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/products?min_price=-1", nil)
		_, err := ParseProductListOptions(r)
		assert.True(t, lib.IsInvariant(err))
	})

	t.Run("non-numeric page", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/products?page=abc", nil)
		_, err := ParseProductListOptions(r)
		assert.True(t, lib.IsInvariant(err))
	})
}

func TestParseOrderListOptions(t *testing.T) {
	r := httptest.NewRequest("GET", "/orders?page=3&page_size=20&sort_by=created_at&sort_direction=desc", nil)
	opts, err := ParseOrderListOptions(r)
	require.NoError(t, err)

	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 20, opts.PageSize)
	assert.Equal(t, "created_at", opts.SortBy)
	assert.Equal(t, "DESC", opts.SortDirection)
}
