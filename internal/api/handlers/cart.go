package handlers

import (
	"log/slog"
	"net/http"

	"github.com/cursedbuild/storefront/internal/api/middleware"
	"github.com/cursedbuild/storefront/internal/errors"
	"github.com/cursedbuild/storefront/internal/logging"
	"github.com/cursedbuild/storefront/internal/models"
	"github.com/cursedbuild/storefront/internal/pricing"
	service "github.com/cursedbuild/storefront/internal/services"
	"github.com/cursedbuild/storefront/internal/utils"
	"github.com/cursedbuild/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	catalog   service.CatalogService
	validator *validator.Validate
}

func NewCartHandler(catalog service.CatalogService) *CartHandler {
	return &CartHandler{catalog: catalog, validator: validator.New()}
}

// cartFromContext writes the error response itself when no device is present.
func cartFromContext(w http.ResponseWriter, r *http.Request) (service.CartService, *slog.Logger, bool) {

	logger := logging.FromContext(r.Context())

	device, ok := middleware.DeviceFromContext(r.Context())
	if !ok {
		logger.Warn("Cart access without a device")
		response.Error(w, errors.UnauthorizedError("Device token required"))
		return nil, logger, false
	}

	return device.Cart, logger, true
}

// buildCartResponse computes tax and grand total for display; none of it is stored.
func buildCartResponse(cart service.CartService) models.CartResponse {

	items := cart.Items()
	lines := make([]models.CartLine, 0, len(items))

	for _, item := range items {
		lines = append(lines, models.CartLine{
			CartItem:  item,
			LineTotal: pricing.Format(item.LineTotal()),
		})
	}

	summary := pricing.Summarize(cart.Total())

	return models.CartResponse{
		Items: lines,
		Count: cart.Count(),
		Summary: models.CartSummary{
			Subtotal: pricing.Format(summary.Subtotal),
			Tax:      pricing.Format(summary.Tax),
			Total:    pricing.Format(summary.Total),
		},
	}
}

// GetCart godoc
//	@Summary		Get the cart
//	@Description	Returns the device's line items, item count and price summary (subtotal, 10% tax, total).
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartResponse		"Current cart"
//	@Failure		401	{object}	response.ErrorResponse	"Device token required"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cart, _, ok := cartFromContext(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, buildCartResponse(cart))
	}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Adds one unit. A product already in the cart has its quantity incremented.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product to add"
//	@Success		200		{object}	models.CartResponse		"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Device token required"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Security		BearerAuth
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cart, logger, ok := cartFromContext(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.catalog.Get(req.ProductID)
		if err != nil {
			logger.Warn("Add to cart for unknown product", slog.Int64("productId", req.ProductID))
			response.Error(w, err)
			return
		}

		if err := cart.AddToCart(*product); err != nil {
			logger.Error("Failed to add item", slog.Int64("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.Int64("productId", req.ProductID))
		response.Success(w, http.StatusOK, buildCartResponse(cart))
	}
}

// UpdateQuantity godoc
//	@Summary		Set a line item's quantity
//	@Description	A quantity of zero or less removes the line. Unknown products are ignored.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			id			path		int							true	"Product ID"
//	@Param			quantity	body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200			{object}	models.CartResponse			"Updated cart"
//	@Failure		400			{object}	response.ErrorResponse		"Validation error"
//	@Failure		401			{object}	response.ErrorResponse		"Device token required"
//	@Security		BearerAuth
//	@Router			/cart/items/{id} [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cart, logger, ok := cartFromContext(w, r)
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart.UpdateQuantity(id, *req.Quantity)

		logger.Info("Cart quantity updated", slog.Int64("productId", id), slog.Int("quantity", *req.Quantity))
		response.Success(w, http.StatusOK, buildCartResponse(cart))
	}
}

// RemoveItem godoc
//	@Summary		Remove a product from the cart
//	@Tags			Cart
//	@Produce		json
//	@Param			id	path		int						true	"Product ID"
//	@Success		200	{object}	models.CartResponse		"Updated cart"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure		401	{object}	response.ErrorResponse	"Device token required"
//	@Security		BearerAuth
//	@Router			/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cart, logger, ok := cartFromContext(w, r)
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		cart.RemoveFromCart(id)

		logger.Info("Item removed from cart", slog.Int64("productId", id))
		response.Success(w, http.StatusOK, buildCartResponse(cart))
	}
}

// ClearCart godoc
//	@Summary		Empty the cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartResponse		"Empty cart"
//	@Failure		401	{object}	response.ErrorResponse	"Device token required"
//	@Security		BearerAuth
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cart, logger, ok := cartFromContext(w, r)
		if !ok {
			return
		}

		cart.ClearCart()

		logger.Info("Cart cleared")
		response.Success(w, http.StatusOK, buildCartResponse(cart))
	}
}
