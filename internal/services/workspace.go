package services

import (
	"context"
	"sync"
	"time"

	"erp-ledger/internal/idgen"
	"erp-ledger/internal/logger"
	"erp-ledger/internal/metrics"
	"erp-ledger/internal/models"
	"erp-ledger/internal/repositories"
	"erp-ledger/internal/timeutil"

	"github.com/rs/zerolog"
)

// DefaultPaymentTermsDays is used when no payment terms are configured
const DefaultPaymentTermsDays = 30

// EventPublisher receives invoice lifecycle events. Publish must not block.
type EventPublisher interface {
	Publish(event models.LedgerEvent)
}

type nopPublisher struct{}

func (nopPublisher) Publish(models.LedgerEvent) {}

// WorkspaceOptions wires a Workspace's collaborators
type WorkspaceOptions struct {
	Repo             *repositories.SnapshotRepository
	Clock            timeutil.Clock
	IDs              idgen.Generator
	Events           EventPublisher
	PaymentTermsDays int
}

// Workspace holds the four collections and serialises every mutation behind
// one mutex. Each mutation saves the collection it touched.
type Workspace struct {
	mu sync.Mutex

	products  []models.Product
	customers []models.Customer
	orders    []models.Order
	invoices  []models.Invoice

	repo             *repositories.SnapshotRepository
	clock            timeutil.Clock
	ids              idgen.Generator
	events           EventPublisher
	paymentTermsDays int
	log              zerolog.Logger
}

func NewWorkspace(opts WorkspaceOptions) *Workspace {
	if opts.Clock == nil {
		opts.Clock = timeutil.SystemClock{}
	}
	if opts.IDs == nil {
		opts.IDs = idgen.NewSequenceGenerator()
	}
	if opts.Events == nil {
		opts.Events = nopPublisher{}
	}
	if opts.PaymentTermsDays <= 0 {
		opts.PaymentTermsDays = DefaultPaymentTermsDays
	}
	if opts.Repo == nil {
		opts.Repo = repositories.NewSnapshotRepository(repositories.NewMemoryStore())
	}
	return &Workspace{
		products:         []models.Product{},
		customers:        []models.Customer{},
		orders:           []models.Order{},
		invoices:         []models.Invoice{},
		repo:             opts.Repo,
		clock:            opts.Clock,
		ids:              opts.IDs,
		events:           opts.Events,
		paymentTermsDays: opts.PaymentTermsDays,
		log:              logger.WithComponent("workspace"),
	}
}

// Load replaces the in-memory collections with the stored ones
func (w *Workspace) Load(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap, err := w.repo.Load(ctx, w.clock.Now())
	if err != nil {
		return err
	}
	w.products = snap.Products
	w.customers = snap.Customers
	w.orders = snap.Orders
	w.invoices = snap.Invoices

	w.log.Info().
		Int("products", len(w.products)).
		Int("customers", len(w.customers)).
		Int("orders", len(w.orders)).
		Int("invoices", len(w.invoices)).
		Strs("recovered", snap.Recovered).
		Msg("Workspace loaded")
	return nil
}

// Now returns the workspace clock's current time
func (w *Workspace) Now() time.Time {
	return w.clock.Now()
}

func (w *Workspace) persistFailed(key string, err error) {
	metrics.PersistFailures.WithLabelValues(key).Inc()
	w.log.Error().Err(err).Str("key", key).Msg("Failed to persist collection")
}

func (w *Workspace) saveProducts(ctx context.Context) {
	if err := w.repo.SaveProducts(ctx, w.products); err != nil {
		w.persistFailed(repositories.ProductsKey, err)
	}
}

func (w *Workspace) saveCustomers(ctx context.Context) {
	if err := w.repo.SaveCustomers(ctx, w.customers); err != nil {
		w.persistFailed(repositories.CustomersKey, err)
	}
}

func (w *Workspace) saveOrders(ctx context.Context) {
	if err := w.repo.SaveOrders(ctx, w.orders); err != nil {
		w.persistFailed(repositories.OrdersKey, err)
	}
}

func (w *Workspace) saveInvoices(ctx context.Context) {
	if err := w.repo.SaveInvoices(ctx, w.invoices); err != nil {
		w.persistFailed(repositories.InvoicesKey, err)
	}
}

func (w *Workspace) publish(typ models.LedgerEventType, inv *models.Invoice) {
	w.events.Publish(models.LedgerEvent{
		Type:          typ,
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Status:        inv.Status,
		At:            w.clock.Now(),
	})
}

func (w *Workspace) orderIndex(id string) int {
	for i := range w.orders {
		if w.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (w *Workspace) invoiceIndex(id string) int {
	for i := range w.invoices {
		if w.invoices[i].ID == id {
			return i
		}
	}
	return -1
}

func (w *Workspace) productIndex(id string) int {
	for i := range w.products {
		if w.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (w *Workspace) customerIndex(id string) int {
	for i := range w.customers {
		if w.customers[i].ID == id {
			return i
		}
	}
	return -1
}

func (w *Workspace) customerName(id string) string {
	if i := w.customerIndex(id); i >= 0 {
		return w.customers[i].Name
	}
	return ""
}

// Returned entities are copies so callers cannot reach into the workspace.

func cloneOrder(o models.Order) *models.Order {
	o.Items = append([]models.LineItem(nil), o.Items...)
	if o.Items == nil {
		o.Items = []models.LineItem{}
	}
	return &o
}

func cloneInvoice(inv models.Invoice) *models.Invoice {
	inv.Items = append([]models.LineItem(nil), inv.Items...)
	inv.PaymentHistory = append([]models.Payment(nil), inv.PaymentHistory...)
	if inv.Items == nil {
		inv.Items = []models.LineItem{}
	}
	if inv.PaymentHistory == nil {
		inv.PaymentHistory = []models.Payment{}
	}
	return &inv
}

func timePtr(t time.Time) *time.Time {
	return &t
}
