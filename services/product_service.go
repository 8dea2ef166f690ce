package services

import (
	"buysell_server/lib"
	"buysell_server/repository"
	"buysell_server/structs"
	"buysell_server/structs/tables"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

// User-facing search messages. The wording is part of the public API.
const (
	MsgNoProductsOnPlatform = "No products found on our platform;"
	MsgNoProductsForRequest = "No products found based on the request! You can see other products on our platform;"
	msgFoundInCity          = "in %s %d Product(s) found based on the request"
	msgFoundInAllCities     = "in all cities %d Product(s) found based on the request"
)

// Default image attached to products saved without usable uploads.
const (
	DefaultImageName        = "default-product"
	DefaultImageFileName    = "default-product.png"
	DefaultImageContentType = "image/png"
)

// UpdateResult tells the caller what UpdateProduct did.
type UpdateResult int

const (
	UpdateSucceeded UpdateResult = iota
	UpdateNotFound
	UpdateForbidden
)

func (r UpdateResult) String() string {
	switch r {
	case UpdateSucceeded:
		return "succeeded"
	case UpdateNotFound:
		return "not found"
	case UpdateForbidden:
		return "forbidden"
	default:
		return fmt.Sprintf("UpdateResult(%d)", int(r))
	}
}

// CityFinder looks up reference cities. A missing city is nil, nil.
type CityFinder interface {
	GetCityByID(ctx context.Context, id int64) (*tables.GermanCity, error)
}

// UserResolver maps a caller principal to its account.
type UserResolver interface {
	GetUserByPrincipal(ctx context.Context, principal string) (*tables.User, error)
}

type ProductService struct {
	logger   *gecho.Logger
	products repository.ProductRepository
	cities   CityFinder
	users    UserResolver
	tx       repository.Transactor
}

func NewProductService(logger *gecho.Logger, products repository.ProductRepository, cities CityFinder, users UserResolver, tx repository.Transactor) *ProductService {
	return &ProductService{
		logger:   logger,
		products: products,
		cities:   cities,
		users:    users,
		tx:       tx,
	}
}

// ListProducts returns the products titled exactly title, or every product
// when title is nil.
func (ps *ProductService) ListProducts(ctx context.Context, title *string) ([]tables.Product, error) {
	var (
		products []tables.Product
		err      error
	)
	if title != nil {
		products, err = ps.products.FindByTitle(ctx, *title)
	} else {
		products, err = ps.products.FindAll(ctx)
	}
	if err != nil {
		ps.logger.Error("Failed to list products", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// SearchProduct picks the query variant from which filters are present.
// Without a city and keyword it falls back to ListProducts(keyword). The
// keyword is trimmed and lower-cased only once a filter applies.
func (ps *ProductService) SearchProduct(ctx context.Context, cityID *int64, keyword *string) ([]tables.Product, error) {
	if cityID == nil && (keyword == nil || *keyword == "") {
		return ps.ListProducts(ctx, keyword)
	}

	kw := ""
	if keyword != nil {
		kw = strings.ToLower(strings.TrimSpace(*keyword))
	}

	var (
		products []tables.Product
		err      error
	)
	switch {
	case cityID != nil && kw == "":
		products, err = ps.products.SearchByCity(ctx, *cityID)
	case cityID == nil:
		products, err = ps.products.SearchByKeyword(ctx, kw)
	default:
		products, err = ps.products.SearchByKeywordAndCity(ctx, kw, *cityID)
	}
	if err != nil {
		ps.logger.Error("Failed to search products",
			gecho.Field("error", err),
			gecho.Field("city_id", cityID),
			gecho.Field("keyword", kw),
		)
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// ShowMessageSearchProduct builds the status line shown above search results.
func (ps *ProductService) ShowMessageSearchProduct(ctx context.Context, cityID *int64, keyword *string, products []tables.Product) (string, error) {
	total, err := ps.products.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to count products: %w", err)
	}
	if total == 0 {
		return MsgNoProductsOnPlatform, nil
	}

	switch {
	case cityID != nil:
		city, err := ps.cities.GetCityByID(ctx, *cityID)
		if err != nil {
			return "", err
		}
		if city == nil {
			return "", fmt.Errorf("city with id: %d: %w", *cityID, lib.ErrNotFound)
		}
		return fmt.Sprintf(msgFoundInCity, city.CityName, len(products)), nil
	case keyword != nil && *keyword != "":
		return fmt.Sprintf(msgFoundInAllCities, len(products)), nil
	case len(products) == 0:
		return MsgNoProductsForRequest, nil
	default:
		return "", nil
	}
}

// GetProductByID returns the product with images, cities and owner.
func (ps *ProductService) GetProductByID(ctx context.Context, id int64) (*tables.Product, error) {
	product, err := ps.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	if product == nil {
		return nil, fmt.Errorf("product with id: %d: %w", id, lib.ErrNotFound)
	}
	return product, nil
}

// SaveProduct creates product for the caller identified by principal.
// Product, images and city links are written in one transaction; the preview
// image id is set once the images have their generated ids.
func (ps *ProductService) SaveProduct(ctx context.Context, principal string, product *tables.Product, cityIDs []int64, files ...*structs.UploadedFile) error {
	startTime := time.Now()

	owner, err := ps.users.GetUserByPrincipal(ctx, principal)
	if err != nil {
		return err
	}

	cities, err := ps.resolveCities(ctx, cityIDs)
	if err != nil {
		return err
	}

	product.ID = 0
	product.UserID = owner.ID
	product.User = owner
	product.PreviewImageID = nil
	product.Images = buildImages(files)
	product.Cities = cities

	err = ps.tx.RunInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		products := ps.products.WithTx(tx)

		if err := products.Create(ctx, product); err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}
		return persistPreview(ctx, products, product)
	})
	if err != nil {
		ps.logger.Error("Failed to save product", gecho.Field("error", err), gecho.Field("user_id", owner.ID))
		return err
	}

	ProductsSaved.Inc()
	ps.logger.Info("Product saved",
		gecho.Field("product_id", product.ID),
		gecho.Field("user_id", owner.ID),
		gecho.Field("images", len(product.Images)),
		gecho.Field("duration", time.Since(startTime).String()),
	)
	return nil
}

// UpdateProduct overwrites title, description, price, cities and images of
// product id when principal owns it. Without uploads the images are replaced
// by the default image. On success updated holds the stored product. The
// result is only meaningful when err is nil.
func (ps *ProductService) UpdateProduct(ctx context.Context, id int64, principal string, updated *tables.Product, cityIDs []int64, files ...*structs.UploadedFile) (UpdateResult, error) {
	existing, err := ps.products.FindByID(ctx, id)
	if err != nil {
		return UpdateNotFound, fmt.Errorf("failed to load product %d: %w", id, err)
	}
	if existing == nil {
		return UpdateNotFound, nil
	}

	caller, err := ps.users.GetUserByPrincipal(ctx, principal)
	if err != nil {
		if errors.Is(err, lib.ErrUnauthorized) {
			return UpdateForbidden, nil
		}
		return UpdateForbidden, err
	}
	if existing.UserID != caller.ID {
		ps.logger.Warn("Rejected product update by non-owner",
			gecho.Field("product_id", id),
			gecho.Field("user_id", caller.ID),
		)
		return UpdateForbidden, nil
	}

	cities, err := ps.resolveCities(ctx, cityIDs)
	if err != nil {
		return UpdateSucceeded, err
	}

	// the new state is assembled completely before anything is written
	next := *existing
	next.Title = updated.Title
	next.Description = updated.Description
	next.Price = updated.Price
	next.PreviewImageID = nil
	next.Images = buildImages(files)
	next.Cities = cities

	err = ps.tx.RunInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		products := ps.products.WithTx(tx)

		if err := products.Update(ctx, &next); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return persistPreview(ctx, products, &next)
	})
	if err != nil {
		ps.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("product_id", id))
		return UpdateSucceeded, err
	}

	*updated = next
	ps.logger.Info("Product updated", gecho.Field("product_id", id), gecho.Field("images", len(next.Images)))
	return UpdateSucceeded, nil
}

// DeleteProduct removes the product and, by cascade, its images and city links.
func (ps *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	exists, err := ps.products.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check product %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("product with id: %d does not exist: %w", id, lib.ErrNotFound)
	}

	if err := ps.products.DeleteByID(ctx, id); err != nil {
		ps.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("product_id", id))
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}

	ps.logger.Info("Product deleted", gecho.Field("product_id", id))
	return nil
}

// DeleteOwnedProduct deletes product id if principal owns it or isAdmin is set.
func (ps *ProductService) DeleteOwnedProduct(ctx context.Context, id int64, principal string, isAdmin bool) error {
	if !isAdmin {
		product, err := ps.products.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load product %d: %w", id, err)
		}
		if product == nil {
			return fmt.Errorf("product with id: %d does not exist: %w", id, lib.ErrNotFound)
		}

		caller, err := ps.users.GetUserByPrincipal(ctx, principal)
		if err != nil {
			return err
		}
		if product.UserID != caller.ID {
			return fmt.Errorf("product %d belongs to another user: %w", id, lib.ErrForbidden)
		}
	}

	return ps.DeleteProduct(ctx, id)
}

// ToImage converts an uploaded file into an image row.
func ToImage(file *structs.UploadedFile) tables.Image {
	return tables.Image{
		Name:             file.Name,
		OriginalFileName: file.OriginalFileName,
		ContentType:      file.ContentType,
		Size:             file.Size,
		Bytes:            file.Bytes,
	}
}

// DefaultImage is the placeholder for products without uploads.
func DefaultImage() tables.Image {
	return tables.Image{
		Name:             DefaultImageName,
		OriginalFileName: DefaultImageFileName,
		ContentType:      DefaultImageContentType,
		Size:             0,
		PreviewImage:     true,
	}
}

// buildImages converts the non-empty files and flags the first one as
// preview. With nothing usable it returns just the default image.
func buildImages(files []*structs.UploadedFile) []tables.Image {
	images := make([]tables.Image, 0, len(files))
	for _, f := range files {
		if f == nil || f.Size == 0 || len(f.Bytes) == 0 {
			continue
		}
		images = append(images, ToImage(f))
	}

	if len(images) == 0 {
		return []tables.Image{DefaultImage()}
	}

	images[0].PreviewImage = true
	return images
}

// resolveCities loads every requested city, dropping duplicate ids. The
// first unknown id aborts with lib.ErrNotFound.
func (ps *ProductService) resolveCities(ctx context.Context, ids []int64) ([]tables.GermanCity, error) {
	seen := make(map[int64]struct{}, len(ids))
	cities := make([]tables.GermanCity, 0, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		city, err := ps.cities.GetCityByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if city == nil {
			return nil, fmt.Errorf("city with id: %d: %w", id, lib.ErrNotFound)
		}
		cities = append(cities, *city)
	}
	return cities, nil
}

// persistPreview points product.PreviewImageID at its preview image, whose
// id only exists after the images were inserted.
func persistPreview(ctx context.Context, products repository.ProductRepository, product *tables.Product) error {
	preview := product.PreviewImage()
	if preview == nil || preview.ID == 0 {
		return fmt.Errorf("product %d has no stored preview image", product.ID)
	}

	if err := products.SetPreviewImage(ctx, product.ID, preview.ID); err != nil {
		return fmt.Errorf("failed to set preview image: %w", err)
	}

	previewID := preview.ID
	product.PreviewImageID = &previewID
	return nil
}
