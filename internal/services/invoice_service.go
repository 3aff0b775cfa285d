package services

import (
	"context"
	"strings"

	"erp-ledger/internal/metrics"
	"erp-ledger/internal/models"
	"erp-ledger/internal/timeutil"

	"github.com/shopspring/decimal"
)

// InvoiceService generates invoices from orders and manages their lifecycle
type InvoiceService struct {
	ws *Workspace
}

func NewInvoiceService(ws *Workspace) *InvoiceService {
	return &InvoiceService{ws: ws}
}

// GenerateFromOrder snapshots an order's totals into a new draft invoice.
// An order maps to at most one invoice: when one already exists it is
// returned unchanged and created is false.
func (s *InvoiceService) GenerateFromOrder(ctx context.Context, orderID string) (inv *models.Invoice, created bool, err error) {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	idx := ws.orderIndex(orderID)
	if idx < 0 {
		return nil, false, newLedgerError("GenerateFromOrder", ErrNotFound, "order "+orderID)
	}
	for i := range ws.invoices {
		if ws.invoices[i].OrderID == orderID {
			return cloneInvoice(ws.invoices[i]), false, nil
		}
	}

	order := ws.orders[idx]
	now := ws.clock.Now()
	invoice := models.Invoice{
		ID:             ws.ids.NewID(),
		InvoiceNumber:  ws.ids.InvoiceNumber(),
		OrderID:        order.ID,
		CustomerID:     order.CustomerID,
		Items:          append([]models.LineItem{}, order.Items...),
		Subtotal:       order.Subtotal,
		Tax:            order.Tax,
		Shipping:       order.ShippingCost,
		Discount:       order.DiscountAmount,
		Total:          order.Total,
		AmountPaid:     decimal.Zero,
		Status:         models.InvoiceStatusDraft,
		DueDate:        timeutil.AddDays(now, ws.paymentTermsDays),
		PaymentHistory: []models.Payment{},
		Template:       models.DefaultInvoiceTemplate,
		CreatedAt:      now,
	}
	// Nothing is owed on a zero total, so it is settled from the start.
	if invoice.Total.IsZero() {
		invoice.Status = models.InvoiceStatusPaid
	}

	ws.invoices = append(ws.invoices, invoice)
	ws.saveInvoices(ctx)

	metrics.InvoicesGenerated.Inc()
	ws.publish(models.EventInvoiceGenerated, &invoice)
	ws.log.Info().
		Str("invoice_id", invoice.ID).
		Str("invoice_number", invoice.InvoiceNumber).
		Str("order_id", orderID).
		Str("total", invoice.Total.StringFixed(2)).
		Msg("Invoice generated from order")

	return cloneInvoice(invoice), true, nil
}

// SendInvoice moves a draft invoice to sent
func (s *InvoiceService) SendInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	idx := ws.invoiceIndex(id)
	if idx < 0 {
		return nil, newLedgerError("SendInvoice", ErrNotFound, "invoice "+id)
	}
	invoice := &ws.invoices[idx]

	next, ok := invoice.Status.Next(models.ActionSend)
	if !ok {
		return nil, newLedgerError("SendInvoice", ErrInvalidTransition,
			"cannot send an invoice in status "+string(invoice.Status))
	}

	now := ws.clock.Now()
	invoice.Status = next
	invoice.SentAt = timePtr(now)
	invoice.UpdatedAt = timePtr(now)
	ws.saveInvoices(ctx)

	ws.publish(models.EventInvoiceSent, invoice)
	return cloneInvoice(*invoice), nil
}

// DeleteInvoice removes the invoice regardless of its status
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) error {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	idx := ws.invoiceIndex(id)
	if idx < 0 {
		return newLedgerError("DeleteInvoice", ErrNotFound, "invoice "+id)
	}
	removed := ws.invoices[idx]
	ws.invoices = append(ws.invoices[:idx], ws.invoices[idx+1:]...)
	ws.saveInvoices(ctx)

	ws.publish(models.EventInvoiceDeleted, &removed)
	ws.log.Info().Str("invoice_id", id).Str("status", string(removed.Status)).Msg("Invoice deleted")
	return nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	idx := ws.invoiceIndex(id)
	if idx < 0 {
		return nil, newLedgerError("GetInvoice", ErrNotFound, "invoice "+id)
	}
	return cloneInvoice(ws.invoices[idx]), nil
}

// ListInvoices returns invoices matching the filter. An empty status or "all"
// matches every status; search matches the invoice number or the customer's
// name, case-insensitively.
func (s *InvoiceService) ListInvoices(ctx context.Context, filter models.InvoiceFilter) ([]*models.Invoice, error) {
	if filter.Status == "all" {
		filter.Status = ""
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, NewValidationError("status", filter.Status, "unknown invoice status")
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	invoices := make([]*models.Invoice, 0, len(ws.invoices))
	for _, inv := range ws.invoices {
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(inv.InvoiceNumber), search) &&
			!strings.Contains(strings.ToLower(ws.customerName(inv.CustomerID)), search) {
			continue
		}
		invoices = append(invoices, cloneInvoice(inv))
	}
	return invoices, nil
}

// Stats counts invoices per status and sums billed and collected amounts
func (s *InvoiceService) Stats(ctx context.Context) (*models.InvoiceStats, error) {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	stats := &models.InvoiceStats{
		TotalAmount:     decimal.Zero,
		AmountCollected: decimal.Zero,
	}
	for _, inv := range ws.invoices {
		stats.Total++
		switch inv.Status {
		case models.InvoiceStatusDraft:
			stats.Draft++
		case models.InvoiceStatusSent:
			stats.Sent++
		case models.InvoiceStatusUnpaid:
			stats.Unpaid++
		case models.InvoiceStatusPartial:
			stats.Partial++
		case models.InvoiceStatusPaid:
			stats.Paid++
		case models.InvoiceStatusOverdue:
			stats.Overdue++
		}
		stats.TotalAmount = stats.TotalAmount.Add(inv.Total)
		stats.AmountCollected = stats.AmountCollected.Add(inv.AmountPaid)
	}
	stats.Outstanding = stats.TotalAmount.Sub(stats.AmountCollected)
	return stats, nil
}

// Orphaned returns invoices whose originating order has been deleted
func (s *InvoiceService) Orphaned(ctx context.Context) ([]*models.Invoice, error) {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	orphans := []*models.Invoice{}
	for _, inv := range ws.invoices {
		if inv.OrderID != "" && ws.orderIndex(inv.OrderID) < 0 {
			orphans = append(orphans, cloneInvoice(inv))
		}
	}
	return orphans, nil
}
