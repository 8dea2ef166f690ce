// Package repository holds the query stores the services build on. Every
// store works against a bun.IDB so the same code runs on the connection pool
// or inside a transaction.
package repository

import (
	"buysell_server/structs/tables"
	"context"
	"strings"

	"github.com/uptrace/bun"
)

// Transactor runs fn inside one database transaction. fn receives the
// transaction handle; stores bound to it via WithTx share its atomicity.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.IDB) error) error
}

// ProductRepository defines product data access
type ProductRepository interface {
	FindAll(ctx context.Context) ([]tables.Product, error)
	// FindByID returns nil, nil when the product does not exist.
	FindByID(ctx context.Context, id int64) (*tables.Product, error)
	// FindByTitle matches the title exactly.
	FindByTitle(ctx context.Context, title string) ([]tables.Product, error)
	SearchByCity(ctx context.Context, cityID int64) ([]tables.Product, error)
	// SearchByKeyword expects an already trimmed, lower-cased keyword.
	SearchByKeyword(ctx context.Context, keyword string) ([]tables.Product, error)
	SearchByKeywordAndCity(ctx context.Context, keyword string, cityID int64) ([]tables.Product, error)
	Count(ctx context.Context) (int, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Create inserts the product, its images and its city links. Generated ids
	// are written back into product and product.Images.
	Create(ctx context.Context, product *tables.Product) error
	// Update overwrites title, description and price and replaces the image
	// and city collections with the ones on product.
	Update(ctx context.Context, product *tables.Product) error
	SetPreviewImage(ctx context.Context, productID, imageID int64) error
	DeleteByID(ctx context.Context, id int64) error

	WithTx(tx bun.IDB) ProductRepository
}

// CityRepository defines german city data access
type CityRepository interface {
	FindAll(ctx context.Context) ([]tables.GermanCity, error)
	FindByID(ctx context.Context, id int64) (*tables.GermanCity, error)
	// Save inserts when city.ID is zero and updates otherwise.
	Save(ctx context.Context, city *tables.GermanCity) error
	DeleteByID(ctx context.Context, id int64) error
}

// UserRepository defines user data access
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*tables.User, error)
	Save(ctx context.Context, user *tables.User) error

	WithTx(tx bun.IDB) UserRepository
}

// ImageRepository serves stored image content
type ImageRepository interface {
	FindByID(ctx context.Context, id int64) (*tables.Image, error)
}

// escapeLike escapes the LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
