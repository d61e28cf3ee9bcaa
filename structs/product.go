package structs

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Size of a product variant
type Size string

const (
	SizeSmall Size = "Small"
	SizeLarge Size = "Large"
)

// ValidSizes lists every size a variant may carry, in display order.
var ValidSizes = []Size{SizeSmall, SizeLarge}

func (s Size) IsValid() bool {
	for _, valid := range ValidSizes {
		if s == valid {
			return true
		}
	}
	return false
}

// Category enum
type Category string

const (
	CategoryStrawberryFlavour Category = "Strawberry Flavour"
	CategoryDarkDesire        Category = "Dark Desire"
	CategoryVanillaLust       Category = "Vanilla Lust"
	CategoryBundleOf3Flavours Category = "Bundle of 3 Flavours"
)

var ValidCategories = []Category{
	CategoryStrawberryFlavour,
	CategoryDarkDesire,
	CategoryVanillaLust,
	CategoryBundleOf3Flavours,
}

func (c Category) IsValid() bool {
	for _, valid := range ValidCategories {
		if c == valid {
			return true
		}
	}
	return false
}

// ParseCategory resolves a caller-supplied category name to its canonical
// form, ignoring case. The second return is false for unknown categories.
func ParseCategory(s string) (Category, bool) {
	for _, valid := range ValidCategories {
		if strings.EqualFold(s, string(valid)) {
			return valid, true
		}
	}
	return "", false
}

// SizeVariantRequest is one candidate variant in a create or replace payload.
// IsAvailable defaults to true when omitted.
type SizeVariantRequest struct {
	Size        Size             `json:"size" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	IsAvailable *bool            `json:"is_available,omitempty"`
}

func (r SizeVariantRequest) Available() bool {
	return r.IsAvailable == nil || *r.IsAvailable
}

// AddSizeVariantRequest appends a single variant to an existing product.
type AddSizeVariantRequest struct {
	Size        Size             `json:"size" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	IsAvailable *bool            `json:"is_available,omitempty"`
}

// ReplaceSizeVariantsRequest swaps a product's entire variant list.
type ReplaceSizeVariantsRequest struct {
	SizeVariants []SizeVariantRequest `json:"size_variants" validate:"required"`
}

// UpdateProductRequest enumerates the only product fields callers may change.
// Unknown fields are rejected at the decoding boundary.
type UpdateProductRequest struct {
	Title        *string              `json:"title,omitempty"`
	Description  *string              `json:"description,omitempty"`
	Category     *Category            `json:"category,omitempty"`
	SizeVariants []SizeVariantRequest `json:"size_variants,omitempty"`
}
