package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"erp-ledger/internal/logger"
	"erp-ledger/internal/metrics"
	"erp-ledger/internal/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Storage keys for the four collections
const (
	ProductsKey  = "erp_products"
	CustomersKey = "erp_customers"
	OrdersKey    = "erp_orders"
	InvoicesKey  = "erp_invoices"
)

// Snapshot is the full in-memory state loaded from the store
type Snapshot struct {
	Products  []models.Product
	Customers []models.Customer
	Orders    []models.Order
	Invoices  []models.Invoice

	// Recovered lists keys whose stored JSON was corrupt and got reseeded
	Recovered []string
}

// SnapshotRepository loads and saves collections through a KVStore
type SnapshotRepository struct {
	Store KVStore
	log   zerolog.Logger
}

func NewSnapshotRepository(store KVStore) *SnapshotRepository {
	return &SnapshotRepository{
		Store: store,
		log:   logger.WithComponent("snapshot_repository"),
	}
}

// Load reads all four collections. Missing keys get seed defaults; corrupt
// keys are logged, counted and reseeded. Only store I/O errors are returned.
func (r *SnapshotRepository) Load(ctx context.Context, now time.Time) (*Snapshot, error) {
	snap := &Snapshot{}
	var recovered bool
	var err error

	if snap.Products, recovered, err = loadCollection(ctx, r, ProductsKey, func() []models.Product { return SeedProducts(now) }); err != nil {
		return nil, err
	} else if recovered {
		snap.Recovered = append(snap.Recovered, ProductsKey)
	}
	if snap.Customers, recovered, err = loadCollection(ctx, r, CustomersKey, func() []models.Customer { return SeedCustomers(now) }); err != nil {
		return nil, err
	} else if recovered {
		snap.Recovered = append(snap.Recovered, CustomersKey)
	}
	if snap.Orders, recovered, err = loadCollection(ctx, r, OrdersKey, func() []models.Order { return []models.Order{} }); err != nil {
		return nil, err
	} else if recovered {
		snap.Recovered = append(snap.Recovered, OrdersKey)
	}
	if snap.Invoices, recovered, err = loadCollection(ctx, r, InvoicesKey, func() []models.Invoice { return []models.Invoice{} }); err != nil {
		return nil, err
	} else if recovered {
		snap.Recovered = append(snap.Recovered, InvoicesKey)
	}

	return snap, nil
}

func loadCollection[T any](ctx context.Context, r *SnapshotRepository, key string, seed func() []T) ([]T, bool, error) {
	data, ok, err := r.Store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return seed(), false, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		r.log.Warn().
			Err(fmt.Errorf("%w: %v", ErrCorruptPersistedState, err)).
			Str("key", key).
			Msg("Stored collection is unreadable, falling back to seed defaults")
		metrics.CorruptStateRecoveries.WithLabelValues(key).Inc()
		return seed(), true, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, false, nil
}

func (r *SnapshotRepository) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.Store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (r *SnapshotRepository) SaveProducts(ctx context.Context, products []models.Product) error {
	return r.save(ctx, ProductsKey, products)
}

func (r *SnapshotRepository) SaveCustomers(ctx context.Context, customers []models.Customer) error {
	return r.save(ctx, CustomersKey, customers)
}

func (r *SnapshotRepository) SaveOrders(ctx context.Context, orders []models.Order) error {
	return r.save(ctx, OrdersKey, orders)
}

func (r *SnapshotRepository) SaveInvoices(ctx context.Context, invoices []models.Invoice) error {
	return r.save(ctx, InvoicesKey, invoices)
}

// SeedProducts returns the catalog a fresh install starts with
func SeedProducts(now time.Time) []models.Product {
	return []models.Product{
		{ID: "1", Name: "Industrial Widget", SKU: "WID-01", Stock: 5, UnitPrice: decimal.RequireFromString("49.99"), CreatedAt: now},
		{ID: "2", Name: "Heavy Duty Motor", SKU: "MOT-02", Stock: 8, UnitPrice: decimal.RequireFromString("349.00"), CreatedAt: now},
	}
}

// SeedCustomers returns the customers a fresh install starts with
func SeedCustomers(now time.Time) []models.Customer {
	return []models.Customer{
		{ID: "1", Name: "Acme Corp", Email: "billing@acme.com", Status: "Active", CreatedAt: now},
	}
}
