package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/cursedbuild/storefront/internal/errors"
	"github.com/cursedbuild/storefront/internal/models"
	"github.com/cursedbuild/storefront/internal/pricing"
	"github.com/shopspring/decimal"
)

type CatalogService interface {
	List(filter models.ProductFilter) []models.Product
	Get(id int64) (*models.Product, error)
}

// Catalog is the static, read-only product list.
type Catalog struct {
	products []models.Product
}

func DefaultProducts() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Name:        "Enchanted Core",
			Category:    models.CategoryPlugin,
			Description: "Advanced RPG mechanics with custom enchantments and magical abilities.",
			Image:       "🔮",
			Price:       "$29.99",
			Color:       "purple",
		},
		{
			ID:          2,
			Name:        "Nether Dimension Pack",
			Category:    models.CategoryModpack,
			Description: "Complete overhaul of the Nether with new biomes, mobs, and challenges.",
			Image:       "🔥",
			Price:       "$39.99",
			Color:       "green",
		},
		{
			ID:          3,
			Name:        "Economy Master",
			Category:    models.CategoryPlugin,
			Description: "Full-featured economy system with shops, trading, and currencies.",
			Image:       "💎",
			Price:       "$24.99",
			Color:       "purple",
		},
		{
			ID:          4,
			Name:        "Tech & Magic",
			Category:    models.CategoryModpack,
			Description: "Blend technology and magic with 200+ mods for endless possibilities.",
			Image:       "⚡",
			Price:       "$44.99",
			Color:       "green",
		},
		{
			ID:          5,
			Name:        "PvP Arena System",
			Category:    models.CategoryPlugin,
			Description: "Competitive arena battles with matchmaking and ranking systems.",
			Image:       "⚔️",
			Price:       "$34.99",
			Color:       "purple",
		},
		{
			ID:          6,
			Name:        "Skyblock Evolved",
			Category:    models.CategoryModpack,
			Description: "Next-generation skyblock with custom quests and progression.",
			Image:       "🏝️",
			Price:       "$27.99",
			Color:       "green",
		},
	}
}

// NewCatalogService serves products, or DefaultProducts when none are given.
func NewCatalogService(products ...models.Product) *Catalog {
	if len(products) == 0 {
		products = DefaultProducts()
	}

	return &Catalog{products: slices.Clone(products)}
}

// List applies search (name and description, case-insensitive), category and
// sort. With no sort the catalog order is kept.
func (c *Catalog) List(filter models.ProductFilter) []models.Product {

	search := strings.ToLower(strings.TrimSpace(filter.Search))

	result := make([]models.Product, 0, len(c.products))

	for _, p := range c.products {
		if filter.Category != "" && filter.Category != models.CategoryAll && p.Category != filter.Category {
			continue
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}

		result = append(result, p)
	}

	var compare func(a, b models.Product) int

	// name ascending unless told otherwise
	switch filter.SortBy {
	case "", "name":
		compare = func(a, b models.Product) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case "price":
		compare = func(a, b models.Product) int {
			return priceOf(a).Cmp(priceOf(b))
		}
	}

	if compare != nil {
		if filter.Order == "desc" {
			asc := compare
			compare = func(a, b models.Product) int { return asc(b, a) }
		}

		slices.SortStableFunc(result, compare)
	}

	return result
}

func (c *Catalog) Get(id int64) (*models.Product, error) {

	i := slices.IndexFunc(c.products, func(p models.Product) bool { return p.ID == id })
	if i < 0 {
		return nil, errors.NotFoundError("Product not found")
	}

	product := c.products[i]

	return &product, nil
}

// unparsable prices sort as zero
func priceOf(p models.Product) decimal.Decimal {
	amount, err := pricing.Parse(p.Price)
	if err != nil {
		return decimal.Zero
	}

	return amount
}
