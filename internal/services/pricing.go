package services

import (
	"erp-ledger/internal/models"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
)

// Totals is the priced result of an order or invoice
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal prices a single item as unitPrice × quantity × (1 − discount%),
// clamped at zero and rounded to cents.
func LineTotal(item models.LineItem) decimal.Decimal {
	item = normalizeItem(item)
	factor := decimal.NewFromInt(1).Sub(item.DiscountPercent.Div(hundred))
	total := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Mul(factor)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total.Round(2)
}

// OrderTotals prices a set of items. Negative rates, costs and discounts are
// treated as zero; a discount larger than the rest of the total fails with
// ErrNegativeTotal.
func OrderTotals(items []models.LineItem, taxRatePercent, shippingCost, discountAmount decimal.Decimal) (Totals, error) {
	taxRatePercent = nonNegative(taxRatePercent)
	shippingCost = nonNegative(shippingCost).Round(2)
	discountAmount = nonNegative(discountAmount).Round(2)

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(LineTotal(item))
	}
	tax := subtotal.Mul(taxRatePercent).Div(hundred).Round(2)
	total := subtotal.Add(tax).Add(shippingCost).Sub(discountAmount)

	if total.IsNegative() {
		return Totals{}, newLedgerError("OrderTotals", ErrNegativeTotal,
			"discount "+discountAmount.StringFixed(2)+" exceeds "+subtotal.Add(tax).Add(shippingCost).StringFixed(2))
	}

	return Totals{Subtotal: subtotal, Tax: tax, Total: total}, nil
}

// NormalizeItems converts lenient request items into priced line items
func NormalizeItems(inputs []models.LineItemInput) []models.LineItem {
	items := make([]models.LineItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, normalizeItem(models.LineItem{
			ProductID:       in.ProductID,
			Quantity:        in.Quantity.Int(),
			UnitPrice:       in.UnitPrice.Bounded().Decimal,
			DiscountPercent: in.DiscountPercent.Bounded().Decimal,
		}))
	}
	return items
}

func normalizeItem(item models.LineItem) models.LineItem {
	if item.Quantity < 0 {
		item.Quantity = 0
	}
	item.UnitPrice = nonNegative(item.UnitPrice)
	item.DiscountPercent = nonNegative(item.DiscountPercent)
	if item.DiscountPercent.GreaterThan(hundred) {
		item.DiscountPercent = hundred
	}
	return item
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
