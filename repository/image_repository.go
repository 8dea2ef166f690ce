package repository

import (
	"buysell_server/database"
	"buysell_server/structs/tables"
	"context"

	"github.com/uptrace/bun"
)

type imageRepository struct {
	db bun.IDB
}

func NewImageRepository(db bun.IDB) ImageRepository {
	return &imageRepository{db: db}
}

// FindByID loads the image including its bytes; nil, nil when missing.
func (r *imageRepository) FindByID(ctx context.Context, id int64) (*tables.Image, error) {
	return database.FindByID[tables.Image](ctx, r.db, "img.id", id)
}
