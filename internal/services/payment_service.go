package services

import (
	"context"
	"strings"

	"erp-ledger/internal/metrics"
	"erp-ledger/internal/models"
)

// PaymentService applies payments to invoices
type PaymentService struct {
	ws *Workspace
}

func NewPaymentService(ws *Workspace) *PaymentService {
	return &PaymentService{ws: ws}
}

// RecordPayment appends a payment and recomputes the invoice status. A
// repeated idempotency key returns the invoice unchanged.
func (s *PaymentService) RecordPayment(ctx context.Context, invoiceID string, req *models.RecordPaymentRequest) (*models.Invoice, error) {
	amount := req.Amount.Bounded().Round(2)
	method := strings.TrimSpace(req.Method)

	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	idx := ws.invoiceIndex(invoiceID)
	if idx < 0 {
		return nil, newLedgerError("RecordPayment", ErrNotFound, "invoice "+invoiceID)
	}
	invoice := &ws.invoices[idx]

	if invoice.HasPayment(req.IdempotencyKey) {
		ws.log.Info().Str("invoice_id", invoiceID).Str("idempotency_key", req.IdempotencyKey).
			Msg("Duplicate payment ignored")
		return cloneInvoice(*invoice), nil
	}

	if !amount.IsPositive() {
		return nil, newLedgerError("RecordPayment", ErrInvalidAmount, "amount "+req.Amount.String())
	}
	balance := invoice.Balance()
	if amount.GreaterThan(balance) {
		return nil, newLedgerError("RecordPayment", ErrExceedsBalance,
			"amount "+amount.StringFixed(2)+" exceeds balance "+balance.StringFixed(2))
	}

	paid := invoice.AmountPaid.Add(amount)
	action := models.ActionPartialPayment
	if paid.GreaterThanOrEqual(invoice.Total) {
		action = models.ActionFullPayment
	}
	next, ok := invoice.Status.Next(action)
	if !ok {
		return nil, newLedgerError("RecordPayment", ErrInvalidTransition,
			"cannot record a payment on an invoice in status "+string(invoice.Status))
	}

	now := ws.clock.Now()
	invoice.PaymentHistory = append(invoice.PaymentHistory, models.Payment{
		ID:             ws.ids.NewID(),
		Amount:         amount,
		Method:         method,
		Reference:      req.Reference,
		Notes:          req.Notes,
		IdempotencyKey: req.IdempotencyKey,
		Date:           now,
	})
	invoice.AmountPaid = paid
	invoice.Status = next
	invoice.LastPaymentDate = timePtr(now)
	invoice.LastPaymentMethod = method
	invoice.UpdatedAt = timePtr(now)
	ws.saveInvoices(ctx)

	metrics.PaymentsRecorded.WithLabelValues(method).Inc()
	metrics.PaymentAmount.Add(amount.InexactFloat64())
	ws.publish(models.EventInvoicePaymentRecorded, invoice)
	ws.log.Info().
		Str("invoice_id", invoiceID).
		Str("amount", amount.StringFixed(2)).
		Str("method", method).
		Str("status", string(next)).
		Msg("Payment recorded")

	return cloneInvoice(*invoice), nil
}
