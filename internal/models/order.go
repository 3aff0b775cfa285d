package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusInvoiced  OrderStatus = "invoiced"
)

// Valid reports whether s is one of the known order statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusShipped, OrderStatusInvoiced:
		return true
	}
	return false
}

// LineItem is a product reference priced within an order or invoice
type LineItem struct {
	ProductID       string          `json:"product_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

type Order struct {
	ID             string          `json:"id"`
	OrderNumber    string          `json:"order_number"`
	CustomerID     string          `json:"customer_id"`
	Items          []LineItem      `json:"items"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	Status         OrderStatus     `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty"`
}

// LineItemInput is the lenient request form of a line item
type LineItemInput struct {
	ProductID       string `json:"product_id"`
	Quantity        Number `json:"quantity"`
	UnitPrice       Number `json:"unit_price"`
	DiscountPercent Number `json:"discount_percent"`
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	CustomerID     string          `json:"customer_id"`
	Items          []LineItemInput `json:"items"`
	DiscountAmount Number          `json:"discount_amount"`
	TaxRatePercent Number          `json:"tax_rate_percent"`
	ShippingCost   Number          `json:"shipping_cost"`
	Status         OrderStatus     `json:"status"`
}

// UpdateOrderRequest carries only the fields being changed; nil means untouched
type UpdateOrderRequest struct {
	CustomerID     *string          `json:"customer_id"`
	Items          *[]LineItemInput `json:"items"`
	DiscountAmount *Number          `json:"discount_amount"`
	TaxRatePercent *Number          `json:"tax_rate_percent"`
	ShippingCost   *Number          `json:"shipping_cost"`
	Status         *OrderStatus     `json:"status"`
}
