package services

import (
	"context"
	"database/sql/driver"
	"testing"
	"velvetbite_server/config"
	"velvetbite_server/structs"
	"velvetbite_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveImageReturnsRemovedDescriptor(t *testing.T) {
	keep := tables.NewProductImage("/uploads/Products/keep.jpg", "keep.jpg")
	gone := tables.NewProductImage("/uploads/Products/gone.jpg", "gone.jpg")
	product := &tables.Product{
		ID:          uuid.New(),
		Title:       "Midnight Box",
		Description: "Assorted pralines",
		Category:    structs.CategoryDarkDesire,
		SizeVariants: []tables.SizeVariant{
			{ID: uuid.New(), Size: structs.SizeSmall, Price: decimal.NewFromInt(20), IsAvailable: true},
		},
		Images: []tables.ProductImage{keep, gone},
	}

	db, _ := newStubDB(func(string) ([]string, [][]driver.Value) {
		return productRow(product)
	})

	logger := gecho.NewDefaultLogger()
	cfg := &structs.Config{
		Upload: &structs.UploadConfig{Dir: t.TempDir(), MaxImageCount: 7, MaxImageBytes: 5 << 20},
		Cache:  config.GetConfig().Cache,
	}
	blobService := NewBlobService(logger, cfg)
	cacheService := NewCacheService(logger, cfg)
	productService := NewProductService(logger, db, cacheService, blobService)
	is := NewImageService(logger, cfg, db, productService, blobService)

	updated, removed, err := is.RemoveImage(context.Background(), product.ID, gone.ID)
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, gone.ID, removed.ID)
	assert.Equal(t, "gone.jpg", removed.Filename)

	require.Len(t, updated.Images, 1)
	assert.Equal(t, keep.ID, updated.Images[0].ID)
}
