package models

import "time"

type LedgerEventType string

const (
	EventInvoiceGenerated       LedgerEventType = "invoice.generated"
	EventInvoiceSent            LedgerEventType = "invoice.sent"
	EventInvoicePaymentRecorded LedgerEventType = "invoice.payment_recorded"
	EventInvoiceOverdue         LedgerEventType = "invoice.overdue"
	EventInvoiceDeleted         LedgerEventType = "invoice.deleted"
	EventInvoiceTemplateCreated LedgerEventType = "invoice.template_created"
)

// LedgerEvent is broadcast to subscribers after an invoice changes
type LedgerEvent struct {
	Type          LedgerEventType `json:"type"`
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Status        InvoiceStatus   `json:"status"`
	At            time.Time       `json:"at"`
}
