package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"erp-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type everyNDays int

func (n everyNDays) IsDue(template models.Invoice, now time.Time) bool {
	if template.LastRecurringDate == nil {
		return true
	}
	return !now.Before(template.LastRecurringDate.AddDate(0, 0, int(n)))
}

func TestCreateRecurringTemplate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	source := f.createInvoice(t, sampleOrderRequest())
	_, err := f.ledger.Payments.RecordPayment(ctx, source.ID, &models.RecordPaymentRequest{Amount: models.NewNumber(20)})
	require.NoError(t, err)

	tmpl, err := f.ledger.Recurring.CreateRecurringTemplate(ctx, source.ID, &models.CreateTemplateRequest{
		Name: "Monthly retainer", Frequency: models.FrequencyMonthly,
	})
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, tmpl.ID)
	assert.NotEqual(t, source.InvoiceNumber, tmpl.InvoiceNumber)
	assert.Empty(t, tmpl.OrderID)
	assert.True(t, tmpl.IsRecurring)
	require.NotNil(t, tmpl.RecurringFrequency)
	assert.Equal(t, models.FrequencyMonthly, *tmpl.RecurringFrequency)
	assert.Equal(t, "Monthly retainer", tmpl.Template)
	assert.Equal(t, models.InvoiceStatusDraft, tmpl.Status)
	assert.True(t, tmpl.AmountPaid.IsZero())
	assert.Empty(t, tmpl.PaymentHistory)
	require.NotNil(t, tmpl.LastRecurringDate)
	assert.Equal(t, testNow, *tmpl.LastRecurringDate)
	assertDecimal(t, "203.00", tmpl.Total)
	assert.Equal(t, source.Items, tmpl.Items)

	// the source order still maps to its original invoice
	again, created, err := f.ledger.Invoices.GenerateFromOrder(ctx, source.OrderID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, source.ID, again.ID)
}

func TestCreateRecurringTemplateErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	source := f.createInvoice(t, sampleOrderRequest())

	_, err := f.ledger.Recurring.CreateRecurringTemplate(ctx, "missing", &models.CreateTemplateRequest{Name: "x", Frequency: models.FrequencyWeekly})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = f.ledger.Recurring.CreateRecurringTemplate(ctx, source.ID, &models.CreateTemplateRequest{Name: " ", Frequency: models.FrequencyWeekly})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.ledger.Recurring.CreateRecurringTemplate(ctx, source.ID, &models.CreateTemplateRequest{Name: "x", Frequency: "daily"})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "frequency", vErr.Field)
}

func TestDueTemplatesUsesPolicy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	source := f.createInvoice(t, sampleOrderRequest())
	_, err := f.ledger.Recurring.CreateRecurringTemplate(ctx, source.ID, &models.CreateTemplateRequest{Name: "Weekly", Frequency: models.FrequencyWeekly})
	require.NoError(t, err)

	due, err := f.ledger.Recurring.DueTemplates(ctx, everyNDays(7))
	require.NoError(t, err)
	assert.Empty(t, due)

	f.clock.Advance(7 * 24 * time.Hour)
	due, err = f.ledger.Recurring.DueTemplates(ctx, everyNDays(7))
	require.NoError(t, err)
	assert.Len(t, due, 1)

	templates, err := f.ledger.Recurring.ListTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, templates, 1)
}

func TestDueTemplatesRequiresPolicy(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.Recurring.DueTemplates(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}
