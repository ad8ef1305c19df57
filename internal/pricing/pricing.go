// Package pricing parses display prices and computes the cart summary shown to shoppers.
package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxRate is applied to the subtotal at display time only.
var TaxRate = decimal.NewFromFloat(0.10)

var ErrInvalidPrice = errors.New("invalid price")

var currencySymbols = []string{"$", "€", "£", "₹"}

type Summary struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Parse converts a display price such as "$29.99" into an exact decimal amount.
func Parse(price string) (decimal.Decimal, error) {
	s := strings.TrimSpace(price)
	for _, sym := range currencySymbols {
		if strings.HasPrefix(s, sym) {
			s = strings.TrimSpace(strings.TrimPrefix(s, sym))
			break
		}
	}

	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, price)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, price)
	}

	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q is negative", ErrInvalidPrice, price)
	}

	return amount, nil
}

// Format renders an amount the way the storefront displays it: "$25.00".
func Format(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// Summarize derives tax and grand total from a cart subtotal, each rounded to cents.
func Summarize(subtotal decimal.Decimal) Summary {
	tax := subtotal.Mul(TaxRate).Round(2)

	return Summary{
		Subtotal: subtotal.Round(2),
		Tax:      tax,
		Total:    subtotal.Round(2).Add(tax),
	}
}
