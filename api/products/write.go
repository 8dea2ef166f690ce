package products

import (
	"buysell_server/api/middleware"
	"buysell_server/handling"
	"buysell_server/lib"
	"buysell_server/services"
	"buysell_server/structs"
	"buysell_server/structs/tables"
	"fmt"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func productFromForm(form *structs.ProductForm) *tables.Product {
	return &tables.Product{
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
	}
}

func (prm *ProductRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		handling.RespondError(lib.ErrUnauthorized, "", prm.logger, w)
		return
	}

	form, files, err := handling.ParseProductForm(r, prm.cfg.Upload)
	if err != nil {
		prm.logger.Debug("Rejected product form", gecho.Field("error", err))
		handling.RespondError(err, "Please check the product information", prm.logger, w)
		return
	}

	product := productFromForm(form)
	if err := prm.productService.SaveProduct(r.Context(), claims.Email, product, form.CityIDs, files...); err != nil {
		handling.RespondError(err, "Failed to save product", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product saved"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		handling.RespondError(lib.ErrUnauthorized, "", prm.logger, w)
		return
	}

	id, err := handling.ParseIDParam(r, "id")
	if err != nil {
		handling.RespondError(err, "Invalid product id", prm.logger, w)
		return
	}

	form, files, err := handling.ParseProductForm(r, prm.cfg.Upload)
	if err != nil {
		handling.RespondError(err, "Please check the product information", prm.logger, w)
		return
	}

	product := productFromForm(form)
	result, err := prm.productService.UpdateProduct(r.Context(), id, claims.Email, product, form.CityIDs, files...)
	if err != nil {
		handling.RespondError(err, "Failed to update product", prm.logger, w)
		return
	}

	switch result {
	case services.UpdateNotFound:
		gecho.NotFound(w, gecho.WithMessage(fmt.Sprintf("product with id: %d does not exist", id)), gecho.Send())
	case services.UpdateForbidden:
		gecho.Forbidden(w, gecho.WithMessage("You can only update your own products"), gecho.Send())
	default:
		gecho.Success(w,
			gecho.WithMessage("Product updated"),
			gecho.WithData(product),
			gecho.Send(),
		)
	}
}

func (prm *ProductRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		handling.RespondError(lib.ErrUnauthorized, "", prm.logger, w)
		return
	}

	id, err := handling.ParseIDParam(r, "id")
	if err != nil {
		handling.RespondError(err, "Invalid product id", prm.logger, w)
		return
	}

	if err := prm.productService.DeleteOwnedProduct(r.Context(), id, claims.Email, claims.HasRole(tables.RoleAdmin)); err != nil {
		handling.RespondError(err, "Failed to delete product", prm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Product deleted"), gecho.Send())
}
