package tables

import (
	"testing"
	"velvetbite_server/lib"
	"velvetbite_server/structs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testProduct(t *testing.T) *Product {
	t.Helper()
	variants, err := func() ([]SizeVariant, error) {
		reqs := []structs.SizeVariantRequest{
			{Size: structs.SizeSmall, Price: price("12.50")},
		}
		if err := ValidateSizeVariantRequests(reqs); err != nil {
			return nil, err
		}
		return NewSizeVariants(reqs), nil
	}()
	require.NoError(t, err)

	return &Product{
		ID:           uuid.New(),
		Title:        "Strawberry Velvet Box",
		Description:  "Six strawberry-filled bites",
		Category:     structs.CategoryStrawberryFlavour,
		SizeVariants: variants,
	}
}

func TestValidateSizeVariantRequests(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		err := ValidateSizeVariantRequests(nil)
		assert.ErrorIs(t, err, lib.ErrEmptyVariantList)
	})

	t.Run("unknown size", func(t *testing.T) {
		err := ValidateSizeVariantRequests([]structs.SizeVariantRequest{
			{Size: "Medium", Price: price("9.99")},
		})
		assert.True(t, lib.IsInvariant(err))
	})

	t.Run("missing price", func(t *testing.T) {
		err := ValidateSizeVariantRequests([]structs.SizeVariantRequest{
			{Size: structs.SizeSmall},
		})
		assert.True(t, lib.IsInvariant(err))
	})

	t.Run("negative price", func(t *testing.T) {
		err := ValidateSizeVariantRequests([]structs.SizeVariantRequest{
			{Size: structs.SizeSmall, Price: price("-1")},
		})
		assert.True(t, lib.IsInvariant(err))
	})

	t.Run("duplicate size", func(t *testing.T) {
		err := ValidateSizeVariantRequests([]structs.SizeVariantRequest{
			{Size: structs.SizeSmall, Price: price("9.99")},
			{Size: structs.SizeSmall, Price: price("14.99")},
		})
		assert.ErrorIs(t, err, lib.ErrDuplicateSize)
	})

	t.Run("valid pair", func(t *testing.T) {
		err := ValidateSizeVariantRequests([]structs.SizeVariantRequest{
			{Size: structs.SizeSmall, Price: price("9.99")},
			{Size: structs.SizeLarge, Price: price("14.99")},
		})
		assert.NoError(t, err)
	})
}

func TestAddSizeVariant(t *testing.T) {
	p := testProduct(t)

	variant, err := p.AddSizeVariant(structs.SizeLarge, decimal.RequireFromString("18.00"), true)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, variant.ID)
	assert.Len(t, p.SizeVariants, 2)

	_, err = p.AddSizeVariant(structs.SizeLarge, decimal.RequireFromString("20.00"), true)
	assert.ErrorIs(t, err, lib.ErrDuplicateSize)
	assert.Len(t, p.SizeVariants, 2, "rejected add must not mutate the list")
}

func TestReplaceSizeVariants(t *testing.T) {
	p := testProduct(t)
	original := p.SizeVariants[0].ID

	err := p.ReplaceSizeVariants([]structs.SizeVariantRequest{
		{Size: structs.SizeLarge, Price: price("21.00")},
	})
	require.NoError(t, err)
	require.Len(t, p.SizeVariants, 1)
	assert.Equal(t, structs.SizeLarge, p.SizeVariants[0].Size)
	assert.NotEqual(t, original, p.SizeVariants[0].ID, "replacement assigns fresh ids")

	err = p.ReplaceSizeVariants(nil)
	assert.ErrorIs(t, err, lib.ErrEmptyVariantList)
	assert.Len(t, p.SizeVariants, 1, "failed replacement leaves the list untouched")
}

func TestRemoveSizeVariant(t *testing.T) {
	p := testProduct(t)

	err := p.RemoveSizeVariant(uuid.New())
	assert.ErrorIs(t, err, lib.ErrNotFound)

	// Removing the last variant is allowed; only creation and replacement
	// require a non-empty list.
	err = p.RemoveSizeVariant(p.SizeVariants[0].ID)
	require.NoError(t, err)
	assert.Empty(t, p.SizeVariants)
}

func TestVariantAvailabilityDefault(t *testing.T) {
	variants := NewSizeVariants([]structs.SizeVariantRequest{
		{Size: structs.SizeSmall, Price: price("9.99")},
	})
	require.Len(t, variants, 1)
	assert.True(t, variants[0].IsAvailable, "availability defaults to true when omitted")

	unavailable := false
	variants = NewSizeVariants([]structs.SizeVariantRequest{
		{Size: structs.SizeSmall, Price: price("9.99"), IsAvailable: &unavailable},
	})
	assert.False(t, variants[0].IsAvailable)
}

func TestAddImagesCapacity(t *testing.T) {
	p := testProduct(t)

	batch := make([]ProductImage, MaxProductImages)
	for i := range batch {
		batch[i] = NewProductImage("/uploads/Products/x.jpg", "x.jpg")
	}
	require.NoError(t, p.AddImages(batch))
	assert.Len(t, p.Images, MaxProductImages)

	err := p.AddImages([]ProductImage{NewProductImage("/uploads/Products/y.jpg", "y.jpg")})
	assert.ErrorIs(t, err, lib.ErrCapacityExceeded)
	assert.Len(t, p.Images, MaxProductImages, "overflowing batch is rejected whole")
}

func TestAddImagesRejectsWholeBatch(t *testing.T) {
	p := testProduct(t)
	require.NoError(t, p.AddImages([]ProductImage{
		NewProductImage("/uploads/Products/a.jpg", "a.jpg"),
	}))

	batch := make([]ProductImage, MaxProductImages)
	for i := range batch {
		batch[i] = NewProductImage("/uploads/Products/b.jpg", "b.jpg")
	}
	err := p.AddImages(batch)
	assert.ErrorIs(t, err, lib.ErrCapacityExceeded)
	assert.Len(t, p.Images, 1, "no partial admission on overflow")
}

func TestRemoveImage(t *testing.T) {
	p := testProduct(t)
	img := NewProductImage("/uploads/Products/a.jpg", "a.jpg")
	require.NoError(t, p.AddImages([]ProductImage{img}))

	removed, err := p.RemoveImage(img.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", removed.Filename, "caller gets the descriptor for blob cleanup")
	assert.Empty(t, p.Images)

	_, err = p.RemoveImage(img.ID)
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestReplaceImage(t *testing.T) {
	p := testProduct(t)
	img := NewProductImage("/uploads/Products/a.jpg", "a.jpg")
	require.NoError(t, p.AddImages([]ProductImage{img}))
	require.NoError(t, p.SetCoverImage(img.ID))

	previous, err := p.ReplaceImage(img.ID, "/uploads/Products/b.jpg", "b.jpg")
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", previous.Filename)

	current := p.ImageByID(img.ID)
	require.NotNil(t, current)
	assert.Equal(t, "b.jpg", current.Filename)
	assert.True(t, current.IsCover, "cover designation survives replacement")

	_, err = p.ReplaceImage(uuid.New(), "/uploads/Products/c.jpg", "c.jpg")
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestSetCoverImage(t *testing.T) {
	p := testProduct(t)
	first := NewProductImage("/uploads/Products/a.jpg", "a.jpg")
	second := NewProductImage("/uploads/Products/b.jpg", "b.jpg")
	require.NoError(t, p.AddImages([]ProductImage{first, second}))

	require.NoError(t, p.SetCoverImage(first.ID))
	require.NoError(t, p.SetCoverImage(second.ID))

	covers := 0
	for _, img := range p.Images {
		if img.IsCover {
			covers++
		}
	}
	assert.Equal(t, 1, covers, "at most one cover at any time")
	assert.True(t, p.ImageByID(second.ID).IsCover)

	err := p.SetCoverImage(uuid.New())
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestCoverImageFallback(t *testing.T) {
	p := testProduct(t)
	assert.Nil(t, p.CoverImage())

	first := NewProductImage("/uploads/Products/a.jpg", "a.jpg")
	second := NewProductImage("/uploads/Products/b.jpg", "b.jpg")
	require.NoError(t, p.AddImages([]ProductImage{first, second}))
	assert.Equal(t, first.ID, p.CoverImage().ID, "falls back to the first image")

	require.NoError(t, p.SetCoverImage(second.ID))
	assert.Equal(t, second.ID, p.CoverImage().ID)
}

func TestProductValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, testProduct(t).Validate())
	})

	t.Run("blank title", func(t *testing.T) {
		p := testProduct(t)
		p.Title = "   "
		assert.True(t, lib.IsInvariant(p.Validate()))
	})

	t.Run("unknown category", func(t *testing.T) {
		p := testProduct(t)
		p.Category = "Salted Caramel"
		assert.True(t, lib.IsInvariant(p.Validate()))
	})

	t.Run("no variants", func(t *testing.T) {
		p := testProduct(t)
		p.SizeVariants = nil
		assert.ErrorIs(t, p.Validate(), lib.ErrEmptyVariantList)
	})

	t.Run("two covers", func(t *testing.T) {
		p := testProduct(t)
		a := NewProductImage("/uploads/Products/a.jpg", "a.jpg")
		b := NewProductImage("/uploads/Products/b.jpg", "b.jpg")
		a.IsCover = true
		b.IsCover = true
		p.Images = []ProductImage{a, b}
		assert.True(t, lib.IsInvariant(p.Validate()))
	})
}
