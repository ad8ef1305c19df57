package models

import "github.com/shopspring/decimal"

// CartItem is one line of the cart: a product and how many of it.
type CartItem struct {
	Product
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"-"`
}

// LineTotal is UnitPrice × Quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type CartLine struct {
	CartItem
	LineTotal string `json:"line_total"`
}

type CartSummary struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

type CartResponse struct {
	Items   []CartLine  `json:"items"`
	Count   int         `json:"count"`
	Summary CartSummary `json:"summary"`
}
