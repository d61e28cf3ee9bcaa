package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"velvetbite_server/database"
	"velvetbite_server/lib"
	"velvetbite_server/structs"
	"velvetbite_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// ImageService manages a product's image gallery. Uploaded files are written
// to blob storage first; when the database write then fails, the fresh blobs
// are deleted again so storage and rows cannot drift apart.
type ImageService struct {
	logger         *gecho.Logger
	db             *database.DB
	cfg            *structs.Config
	productService *ProductService
	blobService    *BlobService
}

func NewImageService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, productService *ProductService, blobService *BlobService) *ImageService {
	return &ImageService{
		logger:         logger,
		db:             db,
		cfg:            cfg,
		productService: productService,
		blobService:    blobService,
	}
}

// AddImages stores the uploaded files and appends them to the gallery. The
// batch is atomic: capacity overflow or a failed persist rejects all files
// and compensates by deleting the already-stored blobs.
func (is *ImageService) AddImages(ctx context.Context, productID uuid.UUID, files []*multipart.FileHeader) (*tables.Product, error) {
	if len(files) == 0 {
		return nil, lib.NewInvariantError("at least one image file is required")
	}

	product, err := is.productService.loadForMutation(ctx, productID)
	if err != nil {
		return nil, err
	}

	// Check capacity before touching storage
	if len(product.Images)+len(files) > is.cfg.Upload.MaxImageCount {
		return nil, fmt.Errorf("%w: cannot add %d image(s), product has %d, maximum is %d",
			lib.ErrCapacityExceeded, len(files), len(product.Images), is.cfg.Upload.MaxImageCount)
	}

	stored, err := is.storeFiles(files)
	if err != nil {
		return nil, err
	}

	if err := product.AddImages(stored); err != nil {
		is.compensate(stored)
		return nil, err
	}

	persisted, err := is.productService.persist(ctx, product)
	if err != nil {
		is.compensate(stored)
		return nil, err
	}

	is.logger.Info("Images added",
		gecho.Field("product_id", productID),
		gecho.Field("count", len(stored)),
	)
	return persisted, nil
}

// RemoveImage drops one image from the gallery and deletes its blob after the
// row update succeeds. The removed descriptor is returned alongside the
// updated product so callers can echo what was deleted.
func (is *ImageService) RemoveImage(ctx context.Context, productID, imageID uuid.UUID) (*tables.Product, *tables.ProductImage, error) {
	product, err := is.productService.loadForMutation(ctx, productID)
	if err != nil {
		return nil, nil, err
	}

	removed, err := product.RemoveImage(imageID)
	if err != nil {
		return nil, nil, err
	}

	persisted, err := is.productService.persist(ctx, product)
	if err != nil {
		return nil, nil, err
	}

	is.blobService.DeleteAll([]string{removed.Filename})

	is.logger.Info("Image removed",
		gecho.Field("product_id", productID),
		gecho.Field("image_id", imageID),
	)
	return persisted, removed, nil
}

// ReplaceImage stores the new file, rewrites the image sub-document in place
// and deletes the previous blob once the row update has succeeded. Id and
// cover designation carry over.
func (is *ImageService) ReplaceImage(ctx context.Context, productID, imageID uuid.UUID, file *multipart.FileHeader) (*tables.Product, error) {
	product, err := is.productService.loadForMutation(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.ImageByID(imageID) == nil {
		return nil, lib.ErrNotFound
	}

	stored, err := is.storeFiles([]*multipart.FileHeader{file})
	if err != nil {
		return nil, err
	}

	previous, err := product.ReplaceImage(imageID, stored[0].URL, stored[0].Filename)
	if err != nil {
		is.compensate(stored)
		return nil, err
	}

	persisted, err := is.productService.persist(ctx, product)
	if err != nil {
		is.compensate(stored)
		return nil, err
	}

	is.blobService.DeleteAll([]string{previous.Filename})

	is.logger.Info("Image replaced",
		gecho.Field("product_id", productID),
		gecho.Field("image_id", imageID),
	)
	return persisted, nil
}

// SetCover designates one image as the gallery cover.
func (is *ImageService) SetCover(ctx context.Context, productID, imageID uuid.UUID) (*tables.Product, error) {
	product, err := is.productService.loadForMutation(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.SetCoverImage(imageID); err != nil {
		return nil, err
	}

	persisted, err := is.productService.persist(ctx, product)
	if err != nil {
		return nil, err
	}

	is.logger.Info("Cover image set",
		gecho.Field("product_id", productID),
		gecho.Field("image_id", imageID),
	)
	return persisted, nil
}

// storeFiles writes each upload to blob storage. On any failure the already
// stored files of this batch are deleted again.
func (is *ImageService) storeFiles(files []*multipart.FileHeader) ([]tables.ProductImage, error) {
	stored := make([]tables.ProductImage, 0, len(files))

	for _, header := range files {
		if header.Size > is.cfg.Upload.MaxImageBytes {
			is.compensate(stored)
			return nil, lib.NewInvariantError("file %s exceeds the maximum size of %d bytes", header.Filename, is.cfg.Upload.MaxImageBytes)
		}

		src, err := header.Open()
		if err != nil {
			is.compensate(stored)
			return nil, fmt.Errorf("failed to open uploaded file %s: %w", header.Filename, err)
		}

		filename, url, err := is.blobService.Save(src, header.Filename)
		src.Close()
		if err != nil {
			is.compensate(stored)
			return nil, fmt.Errorf("failed to store uploaded file %s: %w", header.Filename, err)
		}

		stored = append(stored, tables.NewProductImage(url, filename))
	}

	return stored, nil
}

// compensate deletes blobs written during a batch that did not commit.
func (is *ImageService) compensate(stored []tables.ProductImage) {
	filenames := make([]string, 0, len(stored))
	for _, img := range stored {
		filenames = append(filenames, img.Filename)
	}
	is.blobService.DeleteAll(filenames)
}
