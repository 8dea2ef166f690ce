package services

import (
	"buysell_server/lib"
	"buysell_server/repository"
	"buysell_server/structs/tables"
	"context"
	"fmt"

	"github.com/MonkyMars/gecho"
)

type ImageService struct {
	logger *gecho.Logger
	images repository.ImageRepository
}

func NewImageService(logger *gecho.Logger, images repository.ImageRepository) *ImageService {
	return &ImageService{
		logger: logger,
		images: images,
	}
}

// GetImage loads an image with its content. A missing image wraps lib.ErrNotFound.
func (is *ImageService) GetImage(ctx context.Context, id int64) (*tables.Image, error) {
	image, err := is.images.FindByID(ctx, id)
	if err != nil {
		is.logger.Error("Failed to load image", gecho.Field("error", err), gecho.Field("image_id", id))
		return nil, err
	}
	if image == nil {
		return nil, fmt.Errorf("image with id: %d does not exist: %w", id, lib.ErrNotFound)
	}
	return image, nil
}
