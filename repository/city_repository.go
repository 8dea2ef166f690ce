package repository

import (
	"buysell_server/database"
	"buysell_server/lib"
	"buysell_server/structs/tables"
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type cityRepository struct {
	db bun.IDB
}

func NewCityRepository(db bun.IDB) CityRepository {
	return &cityRepository{db: db}
}

func (r *cityRepository) FindAll(ctx context.Context) ([]tables.GermanCity, error) {
	return database.Query[tables.GermanCity](r.db).OrderBy("gc.id", database.ASC).All(ctx)
}

func (r *cityRepository) FindByID(ctx context.Context, id int64) (*tables.GermanCity, error) {
	return database.FindByID[tables.GermanCity](ctx, r.db, "gc.id", id)
}

func (r *cityRepository) Save(ctx context.Context, city *tables.GermanCity) error {
	if city.ID == 0 {
		_, err := database.Query[tables.GermanCity](r.db).Returning("id").Insert(ctx, city)
		return lib.MapPgError(err)
	}

	rows, err := database.Query[tables.GermanCity](r.db).
		Where("gc.id", city.ID).
		Update(ctx, map[string]any{"city_name": city.CityName})
	if err != nil {
		return lib.MapPgError(err)
	}
	if rows == 0 {
		return fmt.Errorf("city with id: %d: %w", city.ID, lib.ErrNotFound)
	}
	return nil
}

// DeleteByID deleting a missing city is not an error.
func (r *cityRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := database.DeleteByID[tables.GermanCity](ctx, r.db, "gc.id", id)
	return err
}
