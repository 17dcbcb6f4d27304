package product

import "github.com/shopspring/decimal"

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category"`
	ModelNumber string          `json:"model_number" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ImageURL    string          `json:"image_url"`
}

// UpdateProductRequest is the request body for updating a product. Nil
// fields are left unchanged.
type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	ImageURL *string          `json:"image_url"`
	Active   *bool            `json:"active"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category   string
	ActiveOnly bool
}
