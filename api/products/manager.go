package products

import (
	"buysell_server/api/middleware"
	"buysell_server/services"
	"buysell_server/structs"
	"buysell_server/structs/tables"
	"context"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// ProductService is what the product routes need from the service layer.
type ProductService interface {
	ListProducts(ctx context.Context, title *string) ([]tables.Product, error)
	SearchProduct(ctx context.Context, cityID *int64, keyword *string) ([]tables.Product, error)
	ShowMessageSearchProduct(ctx context.Context, cityID *int64, keyword *string, products []tables.Product) (string, error)
	GetProductByID(ctx context.Context, id int64) (*tables.Product, error)
	SaveProduct(ctx context.Context, principal string, product *tables.Product, cityIDs []int64, files ...*structs.UploadedFile) error
	UpdateProduct(ctx context.Context, id int64, principal string, updated *tables.Product, cityIDs []int64, files ...*structs.UploadedFile) (services.UpdateResult, error)
	DeleteOwnedProduct(ctx context.Context, id int64, principal string, isAdmin bool) error
}

type ProductRoutesManager struct {
	logger         *gecho.Logger
	productService ProductService
	cfg            *structs.Config
	mw             *middleware.Middleware
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	productService ProductService,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:         logger,
		productService: productService,
		cfg:            cfg,
		mw:             mw,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", prm.FetchProducts)
		r.Get("/search", prm.SearchProducts)
		r.Get("/{id}", prm.FetchProductByID)

		r.Group(func(r chi.Router) {
			r.Use(prm.mw.UserAuthMiddleware)
			r.Use(prm.mw.CSRFMiddleware())
			r.Post("/", prm.CreateProduct)
			r.Put("/{id}", prm.UpdateProduct)
			r.Delete("/{id}", prm.DeleteProduct)
		})
	})
}
