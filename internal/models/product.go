package models

const (
	CategoryAll     = "All"
	CategoryPlugin  = "Plugin"
	CategoryModpack = "Modpack"
)

// Product is a read-only catalog entry. Price keeps its display form ("$29.99").
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	Color       string `json:"color"`
}

type ProductFilter struct {
	Search   string `validate:"omitempty,max=100"`
	Category string `validate:"omitempty,oneof=All Plugin Modpack"`
	SortBy   string `validate:"omitempty,oneof=name price"`
	Order    string `validate:"omitempty,oneof=asc desc"`
}
