package repository

import (
	"buysell_server/database"
	"buysell_server/lib"
	"buysell_server/structs/tables"
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

const productsInCity = "p.id IN (SELECT pc.product_id FROM product_cities AS pc WHERE pc.city_id = ?)"

type productRepository struct {
	db bun.IDB
}

func NewProductRepository(db bun.IDB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(tx bun.IDB) ProductRepository {
	return &productRepository{db: tx}
}

// listQuery loads images without their bytes, ordered by id, plus cities.
func (r *productRepository) listQuery() *database.QueryBuilder[tables.Product] {
	return database.Query[tables.Product](r.db).
		Relation("Images", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.ExcludeColumn("bytes").OrderExpr("?TableAlias.id ASC")
		}).
		Relation("Cities", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.id ASC")
		}).
		OrderBy("p.id", database.ASC)
}

func (r *productRepository) FindAll(ctx context.Context) ([]tables.Product, error) {
	return r.listQuery().All(ctx)
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*tables.Product, error) {
	return r.listQuery().Relation("User").Where("p.id", id).First(ctx)
}

func (r *productRepository) FindByTitle(ctx context.Context, title string) ([]tables.Product, error) {
	return r.listQuery().Where("p.title", title).All(ctx)
}

func (r *productRepository) SearchByCity(ctx context.Context, cityID int64) ([]tables.Product, error) {
	return r.listQuery().WhereRaw(productsInCity, cityID).All(ctx)
}

func (r *productRepository) SearchByKeyword(ctx context.Context, keyword string) ([]tables.Product, error) {
	return r.listQuery().
		WhereRaw("LOWER(p.title) LIKE ?", "%"+escapeLike(keyword)+"%").
		All(ctx)
}

func (r *productRepository) SearchByKeywordAndCity(ctx context.Context, keyword string, cityID int64) ([]tables.Product, error) {
	return r.listQuery().
		WhereRaw("LOWER(p.title) LIKE ?", "%"+escapeLike(keyword)+"%").
		WhereRaw(productsInCity, cityID).
		All(ctx)
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	return database.Query[tables.Product](r.db).Count(ctx)
}

func (r *productRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return database.ExistsByID[tables.Product](ctx, r.db, "p.id", id)
}

func (r *productRepository) Create(ctx context.Context, product *tables.Product) error {
	_, err := database.Query[tables.Product](r.db).
		Returning("id", "created_at").
		Insert(ctx, product)
	if err != nil {
		return lib.MapPgError(err)
	}

	if err := r.insertImages(ctx, product); err != nil {
		return err
	}
	return r.insertCityLinks(ctx, product.ID, product.Cities)
}

func (r *productRepository) Update(ctx context.Context, product *tables.Product) error {
	rows, err := database.Query[tables.Product](r.db).
		Where("p.id", product.ID).
		Update(ctx, map[string]any{
			"title":            product.Title,
			"description":      product.Description,
			"price":            product.Price,
			"preview_image_id": nil,
		})
	if err != nil {
		return lib.MapPgError(err)
	}
	if rows == 0 {
		return fmt.Errorf("product with id: %d: %w", product.ID, lib.ErrNotFound)
	}

	if _, err := database.Query[tables.Image](r.db).Where("img.product_id", product.ID).Delete(ctx); err != nil {
		return err
	}
	if err := r.insertImages(ctx, product); err != nil {
		return err
	}

	if _, err := database.Query[tables.ProductCity](r.db).Where("pc.product_id", product.ID).Delete(ctx); err != nil {
		return err
	}
	return r.insertCityLinks(ctx, product.ID, product.Cities)
}

func (r *productRepository) SetPreviewImage(ctx context.Context, productID, imageID int64) error {
	rows, err := database.Query[tables.Product](r.db).
		Where("p.id", productID).
		Update(ctx, map[string]any{"preview_image_id": imageID})
	if err != nil {
		return lib.MapPgError(err)
	}
	if rows == 0 {
		return fmt.Errorf("product with id: %d: %w", productID, lib.ErrNotFound)
	}
	return nil
}

func (r *productRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := database.DeleteByID[tables.Product](ctx, r.db, "p.id", id)
	return err
}

// insertImages stores product.Images and writes the generated ids back.
func (r *productRepository) insertImages(ctx context.Context, product *tables.Product) error {
	if len(product.Images) == 0 {
		return nil
	}

	images := make([]tables.Image, len(product.Images))
	for i, img := range product.Images {
		img.ID = 0
		img.ProductID = product.ID
		images[i] = img
	}

	inserted, err := database.Query[tables.Image](r.db).Returning("id").InsertMany(ctx, images)
	if err != nil {
		return lib.MapPgError(err)
	}
	product.Images = inserted
	return nil
}

func (r *productRepository) insertCityLinks(ctx context.Context, productID int64, cities []tables.GermanCity) error {
	if len(cities) == 0 {
		return nil
	}

	links := make([]tables.ProductCity, len(cities))
	for i, c := range cities {
		links[i] = tables.ProductCity{ProductID: productID, CityID: c.ID}
	}

	if _, err := database.Query[tables.ProductCity](r.db).InsertMany(ctx, links); err != nil {
		return lib.MapPgError(err)
	}
	return nil
}
