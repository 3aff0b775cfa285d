package services

import (
	"context"
	"strings"
	"time"

	"erp-ledger/internal/metrics"
	"erp-ledger/internal/models"
	"erp-ledger/internal/timeutil"

	"github.com/shopspring/decimal"
)

// RecurrencePolicy decides whether a recurring template is due for a new
// occurrence. No policy ships with the ledger; templates are only seeded.
type RecurrencePolicy interface {
	IsDue(template models.Invoice, now time.Time) bool
}

// RecurringService seeds recurring invoice templates
type RecurringService struct {
	ws *Workspace
}

func NewRecurringService(ws *Workspace) *RecurringService {
	return &RecurringService{ws: ws}
}

// CreateRecurringTemplate clones the pricing of an existing invoice into a
// fresh draft marked recurring. The clone is not tied to the source's order.
func (s *RecurringService) CreateRecurringTemplate(ctx context.Context, sourceID string, req *models.CreateTemplateRequest) (*models.Invoice, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewValidationError("name", req.Name, "template name is required")
	}
	if !req.Frequency.Valid() {
		return nil, NewValidationError("frequency", req.Frequency, "must be weekly, monthly, quarterly or annual")
	}

	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	idx := ws.invoiceIndex(sourceID)
	if idx < 0 {
		return nil, newLedgerError("CreateRecurringTemplate", ErrNotFound, "invoice "+sourceID)
	}
	source := ws.invoices[idx]

	now := ws.clock.Now()
	frequency := req.Frequency
	template := models.Invoice{
		ID:                 ws.ids.NewID(),
		InvoiceNumber:      ws.ids.InvoiceNumber(),
		CustomerID:         source.CustomerID,
		Items:              append([]models.LineItem{}, source.Items...),
		Subtotal:           source.Subtotal,
		Tax:                source.Tax,
		Shipping:           source.Shipping,
		Discount:           source.Discount,
		Total:              source.Total,
		AmountPaid:         decimal.Zero,
		Status:             models.InvoiceStatusDraft,
		DueDate:            timeutil.AddDays(now, ws.paymentTermsDays),
		PaymentHistory:     []models.Payment{},
		IsRecurring:        true,
		RecurringFrequency: &frequency,
		Template:           name,
		LastRecurringDate:  timePtr(now),
		CreatedAt:          now,
	}
	if template.Total.IsZero() {
		template.Status = models.InvoiceStatusPaid
	}

	ws.invoices = append(ws.invoices, template)
	ws.saveInvoices(ctx)

	metrics.InvoicesGenerated.Inc()
	ws.publish(models.EventInvoiceTemplateCreated, &template)
	ws.log.Info().
		Str("invoice_id", template.ID).
		Str("source_id", sourceID).
		Str("frequency", string(frequency)).
		Msg("Recurring template created")

	return cloneInvoice(template), nil
}

// ListTemplates returns every recurring template
func (s *RecurringService) ListTemplates(ctx context.Context) ([]*models.Invoice, error) {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	templates := []*models.Invoice{}
	for _, inv := range ws.invoices {
		if inv.IsRecurring {
			templates = append(templates, cloneInvoice(inv))
		}
	}
	return templates, nil
}

// DueTemplates returns the templates the policy considers due at the current time
func (s *RecurringService) DueTemplates(ctx context.Context, policy RecurrencePolicy) ([]*models.Invoice, error) {
	if policy == nil {
		return nil, NewValidationError("policy", nil, "recurrence policy is required")
	}
	templates, err := s.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	now := s.ws.clock.Now()

	due := []*models.Invoice{}
	for _, t := range templates {
		if policy.IsDue(*t, now) {
			due = append(due, t)
		}
	}
	return due, nil
}
