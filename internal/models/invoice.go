package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecurringFrequency string

const (
	FrequencyWeekly    RecurringFrequency = "weekly"
	FrequencyMonthly   RecurringFrequency = "monthly"
	FrequencyQuarterly RecurringFrequency = "quarterly"
	FrequencyAnnual    RecurringFrequency = "annual"
)

// Valid reports whether f is one of the supported recurrence frequencies
func (f RecurringFrequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual:
		return true
	}
	return false
}

// DefaultInvoiceTemplate is the template name stamped on generated invoices
const DefaultInvoiceTemplate = "standard"

// Payment is a single entry in an invoice's payment history
type Payment struct {
	ID             string          `json:"id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	Reference      string          `json:"reference"`
	Notes          string          `json:"notes"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
	Date           time.Time       `json:"date"`
}

type Invoice struct {
	ID                 string              `json:"id"`
	InvoiceNumber      string              `json:"invoice_number"`
	OrderID            string              `json:"order_id,omitempty"`
	CustomerID         string              `json:"customer_id"`
	Items              []LineItem          `json:"items"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	Tax                decimal.Decimal     `json:"tax"`
	Shipping           decimal.Decimal     `json:"shipping"`
	Discount           decimal.Decimal     `json:"discount"`
	Total              decimal.Decimal     `json:"total"`
	AmountPaid         decimal.Decimal     `json:"amount_paid"`
	Status             InvoiceStatus       `json:"status"`
	DueDate            time.Time           `json:"due_date"`
	PaymentHistory     []Payment           `json:"payment_history"`
	IsRecurring        bool                `json:"is_recurring"`
	RecurringFrequency *RecurringFrequency `json:"recurring_frequency"`
	Template           string              `json:"template"`
	LastRecurringDate  *time.Time          `json:"last_recurring_date,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          *time.Time          `json:"updated_at,omitempty"`
	SentAt             *time.Time          `json:"sent_at,omitempty"`
	LastPaymentDate    *time.Time          `json:"last_payment_date,omitempty"`
	LastPaymentMethod  string              `json:"last_payment_method,omitempty"`
}

// Balance is the amount still owed on the invoice
func (i *Invoice) Balance() decimal.Decimal {
	return i.Total.Sub(i.AmountPaid)
}

// HasPayment reports whether a payment with the given idempotency key was already applied
func (i *Invoice) HasPayment(idempotencyKey string) bool {
	if idempotencyKey == "" {
		return false
	}
	for _, p := range i.PaymentHistory {
		if p.IdempotencyKey == idempotencyKey {
			return true
		}
	}
	return false
}

// RecordPaymentRequest represents the request body for recording a payment
type RecordPaymentRequest struct {
	Amount         Number `json:"amount"`
	Method         string `json:"method"`
	Reference      string `json:"reference"`
	Notes          string `json:"notes"`
	IdempotencyKey string `json:"idempotency_key"`
}

// CreateTemplateRequest represents the request body for seeding a recurring template
type CreateTemplateRequest struct {
	Name      string             `json:"name"`
	Frequency RecurringFrequency `json:"frequency"`
}

// InvoiceFilter narrows invoice listings
type InvoiceFilter struct {
	Status InvoiceStatus `json:"status"`
	Search string        `json:"search"`
}

// InvoiceStats summarises the ledger in a single pass
type InvoiceStats struct {
	Total           int             `json:"total"`
	Draft           int             `json:"draft"`
	Sent            int             `json:"sent"`
	Unpaid          int             `json:"unpaid"`
	Partial         int             `json:"partial"`
	Paid            int             `json:"paid"`
	Overdue         int             `json:"overdue"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	AmountCollected decimal.Decimal `json:"amount_collected"`
	Outstanding     decimal.Decimal `json:"outstanding"`
}
