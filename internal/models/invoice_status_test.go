package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatusNext(t *testing.T) {
	tests := []struct {
		from   InvoiceStatus
		action InvoiceAction
		want   InvoiceStatus
		ok     bool
	}{
		{InvoiceStatusDraft, ActionSend, InvoiceStatusSent, true},
		{InvoiceStatusSent, ActionSend, "", false},
		{InvoiceStatusPaid, ActionSend, "", false},
		{InvoiceStatusSent, ActionPartialPayment, InvoiceStatusPartial, true},
		{InvoiceStatusOverdue, ActionPartialPayment, InvoiceStatusPartial, true},
		{InvoiceStatusPartial, ActionFullPayment, InvoiceStatusPaid, true},
		{InvoiceStatusDraft, ActionFullPayment, InvoiceStatusPaid, true},
		{InvoiceStatusPaid, ActionFullPayment, "", false},
		{InvoiceStatusPaid, ActionPartialPayment, "", false},
		{InvoiceStatusUnpaid, ActionDuePassed, InvoiceStatusOverdue, true},
		{InvoiceStatusPartial, ActionDuePassed, InvoiceStatusOverdue, true},
		{InvoiceStatusOverdue, ActionDuePassed, "", false},
		{InvoiceStatusPaid, ActionDuePassed, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.action), func(t *testing.T) {
			got, ok := tt.from.Next(tt.action)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaidIsTerminal(t *testing.T) {
	for _, action := range []InvoiceAction{ActionSend, ActionPartialPayment, ActionFullPayment, ActionDuePassed} {
		_, ok := InvoiceStatusPaid.Next(action)
		assert.False(t, ok, string(action))
	}
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, InvoiceStatusUnpaid.Valid())
	assert.False(t, InvoiceStatus("void").Valid())
	assert.True(t, OrderStatusInvoiced.Valid())
	assert.False(t, OrderStatus("cancelled").Valid())
	assert.True(t, FrequencyQuarterly.Valid())
	assert.False(t, RecurringFrequency("daily").Valid())
}

func TestInvoiceBalanceAndHasPayment(t *testing.T) {
	inv := Invoice{
		Total:      decimal.RequireFromString("203.00"),
		AmountPaid: decimal.RequireFromString("100.00"),
		PaymentHistory: []Payment{
			{ID: "p1", Amount: decimal.RequireFromString("100.00"), IdempotencyKey: "k1"},
		},
	}

	assert.True(t, inv.Balance().Equal(decimal.RequireFromString("103")))
	assert.True(t, inv.HasPayment("k1"))
	assert.False(t, inv.HasPayment("k2"))
	assert.False(t, inv.HasPayment(""))
}
