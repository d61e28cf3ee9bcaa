package services

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"
	"velvetbite_server/structs"
	"velvetbite_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPredicateCoversAllTextColumns(t *testing.T) {
	sql, args := searchPredicate("Dark")

	assert.Contains(t, sql, "title ILIKE ?")
	assert.Contains(t, sql, "description ILIKE ?")
	assert.Contains(t, sql, "category ILIKE ?")
	require.Len(t, args, 3)
	for _, arg := range args {
		assert.Equal(t, "%Dark%", arg)
	}
}

func TestDashboardListSearchFiltersOnCategory(t *testing.T) {
	product := &tables.Product{
		ID:          uuid.New(),
		Title:       "Midnight Box",
		Description: "Assorted pralines",
		Category:    structs.CategoryDarkDesire,
		SizeVariants: []tables.SizeVariant{
			{ID: uuid.New(), Size: structs.SizeSmall, Price: decimal.NewFromInt(20), IsAvailable: true},
		},
		Images:    []tables.ProductImage{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	db, queries := newStubDB(func(string) ([]string, [][]driver.Value) {
		return productRow(product)
	})
	ps := NewProductService(gecho.NewDefaultLogger(), db, nil, nil)

	// "Dark" appears nowhere in title or description; only the category
	// column can match it.
	products, err := ps.DashboardList(context.Background(), &ProductListOptions{SearchTerm: "Dark"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Midnight Box", products[0].Title)

	require.Len(t, *queries, 1)
	assert.Contains(t, (*queries)[0], "title ILIKE '%Dark%'")
	assert.Contains(t, (*queries)[0], "category ILIKE '%Dark%'")
}
