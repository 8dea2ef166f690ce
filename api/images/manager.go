package images

import (
	"buysell_server/handling"
	"buysell_server/structs/tables"
	"context"
	"net/http"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// ImageService loads stored image content.
type ImageService interface {
	GetImage(ctx context.Context, id int64) (*tables.Image, error)
}

type ImageRoutesManager struct {
	logger       *gecho.Logger
	imageService ImageService
}

func NewImageRoutesManager(logger *gecho.Logger, imageService ImageService) *ImageRoutesManager {
	return &ImageRoutesManager{
		logger:       logger,
		imageService: imageService,
	}
}

func (irm *ImageRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/images/{id}", irm.ServeImage)
}

// ServeImage writes the raw image bytes with their stored content type.
func (irm *ImageRoutesManager) ServeImage(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseIDParam(r, "id")
	if err != nil {
		handling.RespondError(err, "Invalid image id", irm.logger, w)
		return
	}

	image, err := irm.imageService.GetImage(r.Context(), id)
	if err != nil {
		handling.RespondError(err, "Failed to load image", irm.logger, w)
		return
	}

	w.Header().Set("Content-Type", image.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(image.Bytes)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(image.Bytes); err != nil {
		irm.logger.Debug("Failed to write image", gecho.Field("error", err), gecho.Field("image_id", id))
	}
}
