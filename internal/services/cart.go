package service

import (
	"slices"
	"sync"

	"github.com/cursedbuild/storefront/internal/errors"
	"github.com/cursedbuild/storefront/internal/metrics"
	"github.com/cursedbuild/storefront/internal/models"
	"github.com/cursedbuild/storefront/internal/pricing"
	"github.com/shopspring/decimal"
)

type CartService interface {
	AddToCart(product models.Product) error
	RemoveFromCart(productID int64)
	UpdateQuantity(productID int64, quantity int)
	ClearCart()
	Items() []models.CartItem
	Count() int
	Total() decimal.Decimal
}

// Cart is the in-memory cart of one device. Line items keep insertion order and
// there is at most one line per product id. Nothing here is persisted.
type Cart struct {
	mu    sync.RWMutex
	items []models.CartItem
}

func NewCartService() *Cart {
	return &Cart{items: []models.CartItem{}}
}

func (c *Cart) indexOf(productID int64) int {
	return slices.IndexFunc(c.items, func(item models.CartItem) bool {
		return item.ID == productID
	})
}

// AddToCart increments the quantity of an existing line or appends a new line
// with quantity 1. It only fails for a product whose price cannot be parsed.
func (c *Cart) AddToCart(product models.Product) error {

	unitPrice, err := pricing.Parse(product.Price)
	if err != nil {
		return errors.ValidationError("Product has an invalid price").WithError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(product.ID); i >= 0 {
		c.items[i].Quantity++
	} else {
		c.items = append(c.items, models.CartItem{Product: product, Quantity: 1, UnitPrice: unitPrice})
	}

	metrics.RecordCartOperation("add")

	return nil
}

// RemoveFromCart is a no-op for a product that is not in the cart.
func (c *Cart) RemoveFromCart(productID int64) {

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(productID); i >= 0 {
		c.items = slices.Delete(c.items, i, i+1)
		metrics.RecordCartOperation("remove")
	}
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less removes
// the line; an unknown product id is ignored.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(productID)
	if i < 0 {
		return
	}

	if quantity <= 0 {
		c.items = slices.Delete(c.items, i, i+1)
		metrics.RecordCartOperation("remove")
		return
	}

	c.items[i].Quantity = quantity
	metrics.RecordCartOperation("update")
}

func (c *Cart) ClearCart() {

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = []models.CartItem{}
	metrics.RecordCartOperation("clear")
}

// Items returns a copy in display order.
func (c *Cart) Items() []models.CartItem {

	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.items)
}

// Count is the sum of quantities, not the number of lines.
func (c *Cart) Count() int {

	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}

	return count
}

// Total is the sum of price × quantity, unrounded.
func (c *Cart) Total() decimal.Decimal {

	c.mu.RLock()
	defer c.mu.RUnlock()

	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}

	return total
}
