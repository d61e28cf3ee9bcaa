package products

import (
	"net/http"
	"velvetbite_server/handling"
	"velvetbite_server/lib"
	"velvetbite_server/structs"

	"github.com/MonkyMars/gecho"
)

// UpdateProduct handles PUT /products/{id} with a JSON body of the fields
// to change. A provided size_variants list replaces the existing one.
func (prm *ProductRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseIDParam(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateProductRequest](r)
	if err != nil {
		prm.logger.Warn("Failed to extract update body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	product, err := prm.productService.UpdateProduct(ctx, id, body)
	if err != nil {
		handling.RespondDomainError(err, "Failed to update product", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product updated"),
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}

// DeleteProduct handles DELETE /products/{id}. The image blobs go with the
// row.
func (prm *ProductRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	if err := prm.productService.DeleteProduct(r.Context(), id); err != nil {
		handling.RespondDomainError(err, "Failed to delete product", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product deleted"),
		gecho.Send(),
	)
}
