package services

import (
	"errors"
	"fmt"
	"testing"

	"erp-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTotalsExample(t *testing.T) {
	items := []models.LineItem{{ProductID: "1", Quantity: 2, UnitPrice: dec("100"), DiscountPercent: dec("10")}}

	totals, err := OrderTotals(items, dec("10"), dec("5"), decimal.Zero)
	require.NoError(t, err)

	assertDecimal(t, "180.00", totals.Subtotal)
	assertDecimal(t, "18.00", totals.Tax)
	assertDecimal(t, "203.00", totals.Total)
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name string
		item models.LineItem
		want string
	}{
		{"plain", models.LineItem{Quantity: 3, UnitPrice: dec("49.99")}, "149.97"},
		{"discount", models.LineItem{Quantity: 1, UnitPrice: dec("349"), DiscountPercent: dec("15")}, "296.65"},
		{"rounds to cents", models.LineItem{Quantity: 1, UnitPrice: dec("10"), DiscountPercent: dec("33.333")}, "6.67"},
		{"negative quantity", models.LineItem{Quantity: -4, UnitPrice: dec("10")}, "0"},
		{"negative price", models.LineItem{Quantity: 2, UnitPrice: dec("-10")}, "0"},
		{"discount over 100", models.LineItem{Quantity: 2, UnitPrice: dec("10"), DiscountPercent: dec("150")}, "0"},
		{"negative discount", models.LineItem{Quantity: 2, UnitPrice: dec("10"), DiscountPercent: dec("-5")}, "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, LineTotal(tt.item))
		})
	}
}

func TestOrderTotalsIdentity(t *testing.T) {
	prices := []string{"0", "0.01", "19.99", "100", "1234.56"}
	quantities := []int{0, 1, 7}
	discounts := []string{"0", "12.5", "100"}
	rates := []string{"0", "7.25", "18"}

	for _, price := range prices {
		for _, qty := range quantities {
			for _, disc := range discounts {
				for _, rate := range rates {
					items := []models.LineItem{
						{Quantity: qty, UnitPrice: dec(price), DiscountPercent: dec(disc)},
						{Quantity: 1, UnitPrice: dec("3.33")},
					}
					name := fmt.Sprintf("%s/%d/%s/%s", price, qty, disc, rate)

					totals, err := OrderTotals(items, dec(rate), dec("4.50"), dec("1.00"))
					require.NoError(t, err, name)

					sum := LineTotal(items[0]).Add(LineTotal(items[1]))
					assert.True(t, sum.Equal(totals.Subtotal), name)
					want := totals.Subtotal.Add(totals.Tax).Add(dec("4.50")).Sub(dec("1.00"))
					assert.True(t, want.Equal(totals.Total), name)
					assert.True(t, totals.Tax.Equal(totals.Tax.Round(2)), name)
				}
			}
		}
	}
}

func TestOrderTotalsNegativeTotal(t *testing.T) {
	items := []models.LineItem{{Quantity: 1, UnitPrice: dec("10")}}

	_, err := OrderTotals(items, decimal.Zero, decimal.Zero, dec("50"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNegativeTotal))

	var ledgerErr *LedgerError
	assert.True(t, errors.As(err, &ledgerErr))
}

func TestOrderTotalsIgnoresNegativeInputs(t *testing.T) {
	items := []models.LineItem{{Quantity: 1, UnitPrice: dec("10")}}

	totals, err := OrderTotals(items, dec("-10"), dec("-5"), dec("-3"))
	require.NoError(t, err)
	assertDecimal(t, "10", totals.Total)
	assertDecimal(t, "0", totals.Tax)
}

func TestNormalizeItemsFromLenientInput(t *testing.T) {
	items := NormalizeItems([]models.LineItemInput{
		{ProductID: "1", Quantity: models.NumberFromString("2.9"), UnitPrice: models.NumberFromString("abc")},
		{ProductID: "2", Quantity: models.NewNumber(-1), UnitPrice: models.NewNumber(5)},
		{ProductID: "3", Quantity: models.NumberFromString("20000000000000000000"), UnitPrice: models.NewNumber(1)},
		{ProductID: "4", Quantity: models.NewNumber(1), UnitPrice: models.NumberFromString("1e20000000")},
	})

	require.Len(t, items, 4)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.IsZero())
	assert.Equal(t, 0, items[1].Quantity)
	assert.Equal(t, 0, items[2].Quantity)
	assert.True(t, LineTotal(items[2]).IsZero())
	assert.True(t, items[3].UnitPrice.IsZero())
}
