package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"erp-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPaymentSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t, sampleOrderRequest())
	assertDecimal(t, "203.00", inv.Total)

	partial, err := f.ledger.Payments.RecordPayment(ctx, inv.ID, &models.RecordPaymentRequest{
		Amount: models.NewNumber(100), Method: "bank_transfer", Reference: "TX-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPartial, partial.Status)
	assertDecimal(t, "100", partial.AmountPaid)
	require.Len(t, partial.PaymentHistory, 1)
	assert.Equal(t, "TX-1", partial.PaymentHistory[0].Reference)
	assert.Equal(t, testNow, partial.PaymentHistory[0].Date)
	assert.Equal(t, "bank_transfer", partial.LastPaymentMethod)
	require.NotNil(t, partial.LastPaymentDate)

	paid, err := f.ledger.Payments.RecordPayment(ctx, inv.ID, &models.RecordPaymentRequest{Amount: models.NewNumber(103), Method: "cash"})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, paid.Status)
	assert.True(t, paid.AmountPaid.Equal(paid.Total))
	assert.Len(t, paid.PaymentHistory, 2)
	assert.NotEqual(t, paid.PaymentHistory[0].ID, paid.PaymentHistory[1].ID)

	_, err = f.ledger.Payments.RecordPayment(ctx, inv.ID, &models.RecordPaymentRequest{Amount: models.NewNumber(1)})
	assert.True(t, errors.Is(err, ErrExceedsBalance))

	final, err := f.ledger.Invoices.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assertDecimal(t, "203.00", final.AmountPaid)
}

func TestRecordPaymentValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t, sampleOrderRequest())

	_, err := f.ledger.Payments.RecordPayment(ctx, "missing", &models.RecordPaymentRequest{Amount: models.NewNumber(-1)})
	assert.True(t, errors.Is(err, ErrNotFound), "not found is checked first")

	for _, amount := range []models.Number{models.NewNumber(0), models.NewNumber(-5), models.NumberFromString("oops"), models.NewNumber(0.001)} {
		_, err = f.ledger.Payments.RecordPayment(ctx, inv.ID, &models.RecordPaymentRequest{Amount: amount})
		assert.True(t, errors.Is(err, ErrInvalidAmount), amount.String())
	}

	_, err = f.ledger.Payments.RecordPayment(ctx, inv.ID, &models.RecordPaymentRequest{Amount: models.NewNumber(203.01)})
	assert.True(t, errors.Is(err, ErrExceedsBalance))

	got, err := f.ledger.Invoices.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PaymentHistory)
	assert.Equal(t, models.InvoiceStatusDraft, got.Status)
}

func TestRecordPaymentIdempotencyKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t, sampleOrderRequest())
	req := &models.RecordPaymentRequest{Amount: models.NewNumber(50), IdempotencyKey: "pay-42"}

	first, err := f.ledger.Payments.RecordPayment(ctx, inv.ID, req)
	require.NoError(t, err)
	second, err := f.ledger.Payments.RecordPayment(ctx, inv.ID, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, second.PaymentHistory, 1)
	assertDecimal(t, "50", second.AmountPaid)
}

func TestPaymentOnOverdueInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t, sampleOrderRequest())

	f.clock.Set(inv.DueDate.AddDate(0, 0, 1))
	_, err := f.ledger.Overdue.Scan(ctx)
	require.NoError(t, err)

	updated, err := f.ledger.Payments.RecordPayment(ctx, inv.ID, &models.RecordPaymentRequest{Amount: models.NewNumber(3)})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPartial, updated.Status)
}

func TestAmountPaidNeverExceedsTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t, sampleOrderRequest())

	amounts := []float64{50.5, 80, 70, 60, 1.5, 0.5, 0.5}
	for _, a := range amounts {
		got, err := f.ledger.Payments.RecordPayment(ctx, inv.ID, &models.RecordPaymentRequest{Amount: models.NewNumber(a)})
		if err != nil {
			assert.True(t, errors.Is(err, ErrExceedsBalance))
			continue
		}
		assert.True(t, got.AmountPaid.LessThanOrEqual(got.Total))
		if got.AmountPaid.Equal(got.Total) {
			assert.Equal(t, models.InvoiceStatusPaid, got.Status)
		}
	}
}

func TestRecordPaymentRejectsOversizedAmount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t, sampleOrderRequest())

	for _, body := range []string{`{"amount":"1e20000000"}`, `{"amount":1e16}`, `{"amount":"1e-20000000"}`} {
		var req models.RecordPaymentRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))

		done := make(chan error, 1)
		go func() {
			_, err := f.ledger.Payments.RecordPayment(ctx, inv.ID, &req)
			done <- err
		}()
		select {
		case err := <-done:
			assert.True(t, errors.Is(err, ErrInvalidAmount), body)
		case <-time.After(5 * time.Second):
			t.Fatalf("RecordPayment did not return for %s", body)
		}
	}

	got, err := f.ledger.Invoices.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.AmountPaid.IsZero())
	assert.Empty(t, got.PaymentHistory)
}
