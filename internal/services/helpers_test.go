package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"erp-ledger/internal/idgen"
	"erp-ledger/internal/models"
	"erp-ledger/internal/repositories"
	"erp-ledger/internal/timeutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.LedgerEvent
}

func (p *recordingPublisher) Publish(e models.LedgerEvent) {
	p.mu.Lock()
	p.events = append(p.events, e)
	p.mu.Unlock()
}

func (p *recordingPublisher) types() []models.LedgerEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.LedgerEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type failingStore struct {
	*repositories.MemoryStore
}

func (s failingStore) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

type fixture struct {
	ledger *Ledger
	clock  *timeutil.FixedClock
	store  repositories.KVStore
	events *recordingPublisher
}

func newFixtureWithStore(t *testing.T, store repositories.KVStore) *fixture {
	t.Helper()
	clock := timeutil.NewFixedClock(testNow)
	events := &recordingPublisher{}
	ws := NewWorkspace(WorkspaceOptions{
		Repo:   repositories.NewSnapshotRepository(store),
		Clock:  clock,
		IDs:    idgen.NewSequenceGenerator(),
		Events: events,
	})
	require.NoError(t, ws.Load(context.Background()))
	return &fixture{ledger: NewLedger(ws), clock: clock, store: store, events: events}
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithStore(t, repositories.NewMemoryStore())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// sampleOrderRequest prices to subtotal 180.00, tax 18.00, total 203.00
func sampleOrderRequest() *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		CustomerID: "1",
		Items: []models.LineItemInput{
			{ProductID: "1", Quantity: models.NewNumber(2), UnitPrice: models.NewNumber(100), DiscountPercent: models.NewNumber(10)},
		},
		TaxRatePercent: models.NewNumber(10),
		ShippingCost:   models.NewNumber(5),
	}
}

func (f *fixture) createInvoice(t *testing.T, req *models.CreateOrderRequest) *models.Invoice {
	t.Helper()
	ctx := context.Background()
	order, err := f.ledger.Orders.CreateOrder(ctx, req)
	require.NoError(t, err)
	inv, created, err := f.ledger.Invoices.GenerateFromOrder(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, created)
	return inv
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}
