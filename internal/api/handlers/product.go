package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cursedbuild/storefront/internal/logging"
	"github.com/cursedbuild/storefront/internal/models"
	service "github.com/cursedbuild/storefront/internal/services"
	"github.com/cursedbuild/storefront/internal/utils"
	"github.com/cursedbuild/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	catalog   service.CatalogService
	validator *validator.Validate
}

func NewProductHandler(catalog service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog, validator: validator.New()}
}

// ListProducts godoc
//	@Summary		List products
//	@Description	Lists the catalog with optional search, category filter and sorting.
//	@Tags			Products
//	@Produce		json
//	@Param			search		query		string					false	"Matches name or description, case-insensitive"
//	@Param			category	query		string					false	"All, Plugin or Modpack"
//	@Param			sort		query		string					false	"name (default) or price"
//	@Param			order		query		string					false	"asc (default) or desc"
//	@Success		200			{array}		models.Product			"Matching products"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid filter"
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		query := r.URL.Query()
		filter := models.ProductFilter{
			Search:   query.Get("search"),
			Category: query.Get("category"),
			SortBy:   query.Get("sort"),
			Order:    query.Get("order"),
		}

		if err := utils.ValidateStruct(h.validator, filter); err != nil {
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				logger.Warn("Invalid product filter", slog.String("error", err.Error()))
				response.ValidationError(w, validationErrs)
				return
			}

			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, h.catalog.List(filter))
	}
}

// GetProduct godoc
//	@Summary		Get a product
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		int						true	"Product ID"
//	@Success		200	{object}	models.Product			"The product"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		product, err := h.catalog.Get(id)
		if err != nil {
			logger.Warn("Product lookup failed", slog.Int64("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}
