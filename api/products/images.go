package products

import (
	"net/http"
	"velvetbite_server/handling"

	"github.com/MonkyMars/gecho"
)

// AddImages handles POST /products/{id}/images with files under "images".
// The batch is atomic: either every file joins the gallery or none does.
func (prm *ProductRoutesManager) AddImages(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	if err := r.ParseMultipartForm(maxCreateFormMemory); err != nil {
		prm.logger.Warn("Failed to parse multipart form", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Request must be a multipart form"), gecho.Send())
		return
	}

	files := r.MultipartForm.File["images"]
	product, err := prm.imageService.AddImages(r.Context(), id, files)
	if err != nil {
		handling.RespondDomainError(err, "Failed to add images", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Images added"),
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}

// ReplaceImage handles PUT /products/{id}/images/{imageId} with a single file
// under "image". The image keeps its id and cover designation.
func (prm *ProductRoutesManager) ReplaceImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}
	imageID, err := parseIDParam(r, "imageId")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid image id"), gecho.Send())
		return
	}

	if err := r.ParseMultipartForm(maxCreateFormMemory); err != nil {
		prm.logger.Warn("Failed to parse multipart form", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Request must be a multipart form"), gecho.Send())
		return
	}

	files := r.MultipartForm.File["image"]
	if len(files) != 1 {
		gecho.BadRequest(w, gecho.WithMessage("Exactly one file under \"image\" is required"), gecho.Send())
		return
	}

	product, err := prm.imageService.ReplaceImage(r.Context(), id, imageID, files[0])
	if err != nil {
		handling.RespondDomainError(err, "Failed to replace image", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Image replaced"),
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}

// RemoveImage handles DELETE /products/{id}/images/{imageId}.
func (prm *ProductRoutesManager) RemoveImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}
	imageID, err := parseIDParam(r, "imageId")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid image id"), gecho.Send())
		return
	}

	product, removed, err := prm.imageService.RemoveImage(r.Context(), id, imageID)
	if err != nil {
		handling.RespondDomainError(err, "Failed to remove image", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Image removed"),
		gecho.WithData(map[string]any{
			"product":       product,
			"deleted_image": removed,
		}),
		gecho.Send(),
	)
}

// SetCoverImage handles PUT /products/{id}/images/{imageId}/cover.
func (prm *ProductRoutesManager) SetCoverImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}
	imageID, err := parseIDParam(r, "imageId")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid image id"), gecho.Send())
		return
	}

	product, err := prm.imageService.SetCover(r.Context(), id, imageID)
	if err != nil {
		handling.RespondDomainError(err, "Failed to set cover image", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Cover image set"),
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}
