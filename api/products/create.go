package products

import (
	"encoding/json"
	"net/http"
	"velvetbite_server/handling"
	"velvetbite_server/structs"
	"velvetbite_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// maxCreateFormMemory bounds how much of the multipart body is buffered in
// memory; the rest spills to temp files.
const maxCreateFormMemory = 10 << 20

// CreateProduct handles POST /products. The payload is a multipart form:
// title, description and category as plain fields, size_variants as a JSON
// array and up to seven files under "images".
func (prm *ProductRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxCreateFormMemory); err != nil {
		prm.logger.Warn("Failed to parse multipart form", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Request must be a multipart form"), gecho.Send())
		return
	}

	variantsJSON := r.FormValue("size_variants")
	if variantsJSON == "" {
		gecho.BadRequest(w, gecho.WithMessage("size_variants is required"), gecho.Send())
		return
	}
	var variantReqs []structs.SizeVariantRequest
	if err := json.Unmarshal([]byte(variantsJSON), &variantReqs); err != nil {
		prm.logger.Warn("Malformed size_variants payload", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("size_variants must be a JSON array"), gecho.Send())
		return
	}
	if err := tables.ValidateSizeVariantRequests(variantReqs); err != nil {
		handling.RespondDomainError(err, "Invalid size variants", prm.logger, w)
		return
	}

	product := &tables.Product{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		Category:     structs.Category(r.FormValue("category")),
		SizeVariants: tables.NewSizeVariants(variantReqs),
	}

	created, err := prm.productService.CreateProduct(ctx, product)
	if err != nil {
		handling.RespondDomainError(err, "Failed to create product", prm.logger, w)
		return
	}

	// Attach any uploaded gallery images. If that fails the fresh product row
	// is removed again so a create is all-or-nothing.
	if files := r.MultipartForm.File["images"]; len(files) > 0 {
		created, err = prm.imageService.AddImages(ctx, created.ID, files)
		if err != nil {
			if delErr := prm.productService.DeleteProduct(ctx, product.ID); delErr != nil {
				prm.logger.Error("Failed to roll back product after image failure",
					gecho.Field("product_id", product.ID),
					gecho.Field("error", delErr),
				)
			}
			handling.RespondDomainError(err, "Failed to store product images", prm.logger, w)
			return
		}
	}

	gecho.Success(w,
		gecho.WithMessage("Product created"),
		gecho.WithData(map[string]any{
			"product": created,
		}),
		gecho.Send(),
	)
}
