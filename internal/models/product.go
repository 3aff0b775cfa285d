package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Stock     int             `json:"stock"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Stock     Number `json:"stock"`
	UnitPrice Number `json:"unit_price"`
}

// UpdateProductRequest carries only the fields being changed
type UpdateProductRequest struct {
	Name      *string `json:"name"`
	SKU       *string `json:"sku"`
	Stock     *Number `json:"stock"`
	UnitPrice *Number `json:"unit_price"`
}
