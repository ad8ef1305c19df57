package pricing_test

import (
	"testing"

	"github.com/cursedbuild/storefront/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	valid := map[string]string{
		"$29.99":   "29.99",
		"29.99":    "29.99",
		" $ 5.00 ": "5",
		"€10":      "10",
		"£0.10":    "0.1",
		"$0":       "0",
	}

	for in, want := range valid {
		t.Run("Valid "+in, func(t *testing.T) {
			got, err := pricing.Parse(in)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(want).Equal(got), "got %s", got)
		})
	}

	for _, in := range []string{"", "$", "abc", "$12,00", "-$1", "$-1.00"} {
		t.Run("Invalid "+in, func(t *testing.T) {
			_, err := pricing.Parse(in)
			assert.ErrorIs(t, err, pricing.ErrInvalidPrice)
		})
	}
}

func TestParse_NoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3
	a, err := pricing.Parse("$0.10")
	require.NoError(t, err)
	b, err := pricing.Parse("$0.20")
	require.NoError(t, err)

	assert.Equal(t, "0.30", a.Add(b).StringFixed(2))
	assert.True(t, a.Add(b).Equal(decimal.RequireFromString("0.3")))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$25.00", pricing.Format(decimal.NewFromInt(25)))
	assert.Equal(t, "$0.00", pricing.Format(decimal.Zero))
	assert.Equal(t, "$3.00", pricing.Format(decimal.RequireFromString("2.999")))
}

func TestSummarize(t *testing.T) {
	t.Run("Ten percent tax", func(t *testing.T) {
		s := pricing.Summarize(decimal.RequireFromString("25.00"))

		assert.Equal(t, "25.00", s.Subtotal.StringFixed(2))
		assert.Equal(t, "2.50", s.Tax.StringFixed(2))
		assert.Equal(t, "27.50", s.Total.StringFixed(2))
	})

	t.Run("Rounds tax to cents", func(t *testing.T) {
		s := pricing.Summarize(decimal.RequireFromString("29.99"))

		assert.Equal(t, "3.00", s.Tax.StringFixed(2))
		assert.Equal(t, "32.99", s.Total.StringFixed(2))
	})

	t.Run("Empty cart", func(t *testing.T) {
		s := pricing.Summarize(decimal.Zero)

		assert.True(t, s.Total.IsZero())
	})
}
