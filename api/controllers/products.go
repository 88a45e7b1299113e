package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/glowshop-backend/api/responses"
	"github.com/angelmondragon/glowshop-backend/api/validators"
	product "github.com/angelmondragon/glowshop-backend/internal/products"
	"github.com/angelmondragon/glowshop-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/glowshop-backend/pkg/errors"
	"github.com/angelmondragon/glowshop-backend/pkg/logger"
)

// ProductDetail decorates a product with its derived labels.
type ProductDetail struct {
	product.Product
	DiscountPercent int               `json:"discountPercent"`
	StockStatus     enums.StockStatus `json:"stockStatus"`
}

func newProductDetail(p product.Product) ProductDetail {
	return ProductDetail{Product: p, DiscountPercent: p.DiscountPercent(), StockStatus: p.StockStatus()}
}

// ProductList handles GET /products with optional filter and sort query parameters.
func ProductList(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		sort, err := enums.ParseSortKey(validators.ParseQueryString(r, "sort"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort").WithDetails(map[string]string{"sort": "must be one of price-asc, price-desc, name, new"}))
			return
		}

		sel := product.Selection{
			Category:    validators.ParseQueryString(r, "category"),
			Function:    validators.ParseQueryString(r, "function"),
			SkinType:    validators.ParseQueryString(r, "skin_type"),
			Ingredients: validators.ParseQueryStrings(r, "ingredient"),
			Sort:        sort,
		}

		result, err := svc.List(r.Context(), sel)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ProductFacets(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Facets(r.Context()))
	}
}

func ProductIngredients(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.IngredientGroups(r.Context()))
	}
}

func ProductHome(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Home(r.Context()))
	}
}

// ProductSearch handles GET /products/search?q=. A blank term returns an empty list.
func ProductSearch(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		term := validators.ParseQueryString(r, "q")
		results := svc.Search(r.Context(), term)
		responses.WriteSuccess(w, map[string]any{
			"query":    term,
			"products": results,
			"matches":  len(results),
		})
	}
}

func ProductGet(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		p, err := svc.Get(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newProductDetail(*p))
	}
}

func ProductRelated(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", product.DefaultRelatedLimit, 1, 12)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		related, err := svc.Related(r.Context(), chi.URLParam(r, "productId"), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, related)
	}
}
