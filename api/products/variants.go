package products

import (
	"net/http"
	"velvetbite_server/handling"
	"velvetbite_server/lib"
	"velvetbite_server/structs"

	"github.com/MonkyMars/gecho"
)

// AddVariant handles POST /products/{id}/variants.
func (prm *ProductRoutesManager) AddVariant(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.AddSizeVariantRequest](r)
	if err != nil {
		prm.logger.Warn("Failed to extract variant body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	product, err := prm.variantService.AddVariant(r.Context(), id, body)
	if err != nil {
		handling.RespondDomainError(err, "Failed to add size variant", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Size variant added"),
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}

// ReplaceVariants handles PUT /products/{id}/variants, swapping the whole
// variant list.
func (prm *ProductRoutesManager) ReplaceVariants(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ReplaceSizeVariantsRequest](r)
	if err != nil {
		prm.logger.Warn("Failed to extract variants body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	product, err := prm.variantService.ReplaceVariants(r.Context(), id, body.SizeVariants)
	if err != nil {
		handling.RespondDomainError(err, "Failed to replace size variants", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Size variants replaced"),
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}

// RemoveVariant handles DELETE /products/{id}/variants/{variantId}.
func (prm *ProductRoutesManager) RemoveVariant(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}
	variantID, err := parseIDParam(r, "variantId")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid variant id"), gecho.Send())
		return
	}

	product, err := prm.variantService.RemoveVariant(r.Context(), id, variantID)
	if err != nil {
		handling.RespondDomainError(err, "Failed to remove size variant", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Size variant removed"),
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}
