package products

import (
	"buysell_server/handling"
	"buysell_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (prm *ProductRoutesManager) FetchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := prm.productService.ListProducts(r.Context(), handling.ParseTitleParam(r))
	if err != nil {
		handling.HandleError(err, "Failed to list products", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(products),
		gecho.Send(),
	)
}

// SearchProducts answers with the matching products and the status line
// shown above them.
func (prm *ProductRoutesManager) SearchProducts(w http.ResponseWriter, r *http.Request) {
	cityID, keyword, err := handling.ParseSearchParams(r)
	if err != nil {
		handling.RespondError(err, "Invalid search parameters", prm.logger, w)
		return
	}

	products, err := prm.productService.SearchProduct(r.Context(), cityID, keyword)
	if err != nil {
		handling.RespondError(err, "Failed to search products", prm.logger, w)
		return
	}

	message, err := prm.productService.ShowMessageSearchProduct(r.Context(), cityID, keyword, products)
	if err != nil {
		handling.RespondError(err, "Failed to search products", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage(message),
		gecho.WithData(structs.SearchResponse{Products: products, Message: message}),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseIDParam(r, "id")
	if err != nil {
		handling.RespondError(err, "Invalid product id", prm.logger, w)
		return
	}

	product, err := prm.productService.GetProductByID(r.Context(), id)
	if err != nil {
		handling.RespondError(err, "Failed to fetch product", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(product),
		gecho.Send(),
	)
}
