package tables

import (
	"fmt"
	"strings"
	"time"
	"velvetbite_server/lib"
	"velvetbite_server/structs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxProductImages caps the gallery: one cover plus six body images.
const MaxProductImages = 7

// Product is the catalog aggregate. Size variants and images are owned
// sub-documents stored as JSONB arrays on the product row, so every mutation
// is a single-row read-modify-write.
type Product struct {
	tableName    struct{}         `bun:"table:products,alias:p"`
	ID           uuid.UUID        `bun:"id,pk,type:uuid" json:"id"`
	Title        string           `bun:"title,notnull" json:"title"`
	Description  string           `bun:"description,notnull" json:"description"`
	Category     structs.Category `bun:"category,notnull" json:"category"`
	SizeVariants []SizeVariant    `bun:"size_variants,notnull,type:jsonb" json:"size_variants"`
	Images       []ProductImage   `bun:"images,type:jsonb" json:"images"`
	CreatedAt    time.Time        `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt    time.Time        `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}

// SizeVariant is a size/price/availability combination owned by one product.
// Its id is a stable key within the owning aggregate, not a standalone record.
type SizeVariant struct {
	ID          uuid.UUID       `json:"id"`
	Size        structs.Size    `json:"size"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
}

// ProductImage is an uploaded image owned by one product. Filename is the
// blob store key; URL is derived from it.
type ProductImage struct {
	ID         uuid.UUID `json:"id"`
	URL        string    `json:"url"`
	Filename   string    `json:"filename"`
	IsCover    bool      `json:"is_cover"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// NewProductImage builds an image sub-document for a freshly stored blob.
func NewProductImage(url, filename string) ProductImage {
	return ProductImage{
		ID:         uuid.New(),
		URL:        url,
		Filename:   filename,
		IsCover:    false,
		UploadedAt: time.Now(),
	}
}

// ValidateSizeVariantRequests checks a candidate variant list: non-empty,
// known sizes, non-negative prices, no repeated size. Pure, no side effects.
func ValidateSizeVariantRequests(variants []structs.SizeVariantRequest) error {
	if len(variants) == 0 {
		return lib.ErrEmptyVariantList
	}

	seen := make(map[structs.Size]bool, len(variants))
	for _, v := range variants {
		if !v.Size.IsValid() {
			return lib.NewInvariantError("size must be either %q or %q", structs.SizeSmall, structs.SizeLarge)
		}
		if v.Price == nil || v.Price.IsNegative() {
			return lib.NewInvariantError("valid price is required for size %s", v.Size)
		}
		if seen[v.Size] {
			return fmt.Errorf("%w: %s", lib.ErrDuplicateSize, v.Size)
		}
		seen[v.Size] = true
	}

	return nil
}

// NewSizeVariants converts a validated request list into sub-documents with
// fresh ids.
func NewSizeVariants(variants []structs.SizeVariantRequest) []SizeVariant {
	out := make([]SizeVariant, 0, len(variants))
	for _, v := range variants {
		out = append(out, SizeVariant{
			ID:          uuid.New(),
			Size:        v.Size,
			Price:       *v.Price,
			IsAvailable: v.Available(),
		})
	}
	return out
}

// Validate enforces the aggregate invariants before any persist: trimmed
// non-empty text, known category, non-empty unique-size variant list,
// bounded gallery with at most one cover.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return lib.NewInvariantError("title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return lib.NewInvariantError("description is required")
	}
	if !p.Category.IsValid() {
		return lib.NewInvariantError("invalid category: %s", p.Category)
	}

	if len(p.SizeVariants) == 0 {
		return lib.ErrEmptyVariantList
	}
	seen := make(map[structs.Size]bool, len(p.SizeVariants))
	for _, v := range p.SizeVariants {
		if !v.Size.IsValid() {
			return lib.NewInvariantError("size must be either %q or %q", structs.SizeSmall, structs.SizeLarge)
		}
		if v.Price.IsNegative() {
			return lib.NewInvariantError("valid price is required for size %s", v.Size)
		}
		if seen[v.Size] {
			return fmt.Errorf("%w: %s", lib.ErrDuplicateSize, v.Size)
		}
		seen[v.Size] = true
	}

	if len(p.Images) > MaxProductImages {
		return lib.ErrCapacityExceeded
	}
	covers := 0
	for _, img := range p.Images {
		if img.IsCover {
			covers++
		}
	}
	if covers > 1 {
		return lib.NewInvariantError("at most one cover image is allowed")
	}

	return nil
}

// AddSizeVariant appends a variant with a fresh id. The size must not be
// present on the product yet.
func (p *Product) AddSizeVariant(size structs.Size, price decimal.Decimal, isAvailable bool) (*SizeVariant, error) {
	if !size.IsValid() {
		return nil, lib.NewInvariantError("size must be either %q or %q", structs.SizeSmall, structs.SizeLarge)
	}
	if price.IsNegative() {
		return nil, lib.NewInvariantError("valid price is required for size %s", size)
	}
	for _, v := range p.SizeVariants {
		if v.Size == size {
			return nil, fmt.Errorf("%w: %s", lib.ErrDuplicateSize, size)
		}
	}

	variant := SizeVariant{
		ID:          uuid.New(),
		Size:        size,
		Price:       price,
		IsAvailable: isAvailable,
	}
	p.SizeVariants = append(p.SizeVariants, variant)
	return &variant, nil
}

// ReplaceSizeVariants validates the candidate list and swaps the whole
// variant list. Existing variant ids are discarded.
func (p *Product) ReplaceSizeVariants(variants []structs.SizeVariantRequest) error {
	if err := ValidateSizeVariantRequests(variants); err != nil {
		return err
	}
	p.SizeVariants = NewSizeVariants(variants)
	return nil
}

// RemoveSizeVariant drops a variant by id. Removing the last remaining
// variant is not blocked here; the non-empty invariant only gates creation
// and full replacement.
func (p *Product) RemoveSizeVariant(variantID uuid.UUID) error {
	for i, v := range p.SizeVariants {
		if v.ID == variantID {
			p.SizeVariants = append(p.SizeVariants[:i], p.SizeVariants[i+1:]...)
			return nil
		}
	}
	return lib.ErrNotFound
}

// SizeVariantByID returns the variant with the given id, or nil.
func (p *Product) SizeVariantByID(variantID uuid.UUID) *SizeVariant {
	for i := range p.SizeVariants {
		if p.SizeVariants[i].ID == variantID {
			return &p.SizeVariants[i]
		}
	}
	return nil
}

// ImageByID returns the image with the given id, or nil.
func (p *Product) ImageByID(imageID uuid.UUID) *ProductImage {
	for i := range p.Images {
		if p.Images[i].ID == imageID {
			return &p.Images[i]
		}
	}
	return nil
}

// CoverImage returns the designated cover, falling back to the first image.
func (p *Product) CoverImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsCover {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

// AddImages appends the given images to the gallery, rejecting the whole
// batch if it would push the product past MaxProductImages.
func (p *Product) AddImages(images []ProductImage) error {
	if len(p.Images)+len(images) > MaxProductImages {
		return fmt.Errorf("%w: cannot add %d image(s), product has %d, maximum is %d",
			lib.ErrCapacityExceeded, len(images), len(p.Images), MaxProductImages)
	}
	p.Images = append(p.Images, images...)
	return nil
}

// RemoveImage drops an image by id and returns the removed descriptor so the
// caller can clean up the backing blob.
func (p *Product) RemoveImage(imageID uuid.UUID) (*ProductImage, error) {
	for i := range p.Images {
		if p.Images[i].ID == imageID {
			removed := p.Images[i]
			p.Images = append(p.Images[:i], p.Images[i+1:]...)
			return &removed, nil
		}
	}
	return nil, lib.ErrNotFound
}

// ReplaceImage rewrites url, filename and upload time of an existing image in
// place. Id and cover designation are preserved. Returns the previous
// descriptor so the caller can delete the old blob.
func (p *Product) ReplaceImage(imageID uuid.UUID, url, filename string) (*ProductImage, error) {
	img := p.ImageByID(imageID)
	if img == nil {
		return nil, lib.ErrNotFound
	}

	previous := *img
	img.URL = url
	img.Filename = filename
	img.UploadedAt = time.Now()
	return &previous, nil
}

// SetCoverImage designates one image as cover, clearing the flag everywhere
// else. The at-most-one-cover invariant holds by construction.
func (p *Product) SetCoverImage(imageID uuid.UUID) error {
	target := p.ImageByID(imageID)
	if target == nil {
		return lib.ErrNotFound
	}

	for i := range p.Images {
		p.Images[i].IsCover = false
	}
	target.IsCover = true
	return nil
}
