package app

import (
	"context"
	"errors"
	"fmt"

	"erp-ledger/internal/cache"
	"erp-ledger/internal/config"
	"erp-ledger/internal/database"
	"erp-ledger/internal/db"
	"erp-ledger/internal/events"
	"erp-ledger/internal/idgen"
	"erp-ledger/internal/logger"
	"erp-ledger/internal/objectstore"
	"erp-ledger/internal/repositories"
	"erp-ledger/internal/services"
	"erp-ledger/internal/timeutil"
)

// Store drivers accepted in store.driver
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

// App is a loaded ledger with its store and event hub
type App struct {
	Config *config.Config
	Store  repositories.KVStore
	Hub    *events.Hub
	Ledger *services.Ledger

	closers []func(context.Context) error
}

// New opens the configured store, loads the workspace and wires the services.
// The clock may be nil to use the system clock.
func New(ctx context.Context, cfg *config.Config, clock timeutil.Clock) (*App, error) {
	log := logger.WithComponent("bootstrap")

	store, closers, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Store: store, closers: closers}

	ids, err := idgen.NewSnowflakeGenerator(cfg.Ledger.NodeID)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	a.Hub = events.NewHub()
	a.Hub.Start()
	a.closers = append([]func(context.Context) error{func(context.Context) error {
		a.Hub.Stop()
		return nil
	}}, a.closers...)

	ws := services.NewWorkspace(services.WorkspaceOptions{
		Repo:             repositories.NewSnapshotRepository(store),
		Clock:            clock,
		IDs:              ids,
		Events:           a.Hub,
		PaymentTermsDays: cfg.Ledger.PaymentTermsDays,
	})
	if err := ws.Load(ctx); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	a.Ledger = services.NewLedger(ws)

	log.Info().Str("driver", cfg.Store.Driver).Bool("write_behind", cfg.Store.WriteBehind).Msg("Ledger ready")
	return a, nil
}

// OpenStore builds the KV backend named by store.driver, optionally behind a
// write-behind buffer. The returned closers run in order on shutdown.
func OpenStore(ctx context.Context, cfg *config.Config) (repositories.KVStore, []func(context.Context) error, error) {
	log := logger.WithComponent("bootstrap")
	var closers []func(context.Context) error
	var store repositories.KVStore

	switch cfg.Store.Driver {
	case DriverMemory:
		store = repositories.NewMemoryStore()

	case DriverFile, "":
		fs, err := repositories.NewFileStore(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		store = fs

	case DriverRedis:
		rs, err := cache.NewRedisStore(cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		store = rs
		closers = append(closers, func(context.Context) error { return rs.Close() })

	case DriverPostgres:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.NewMigrator(pool).RunMigrations(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		store = db.NewPostgresStore(pool)
		closers = append(closers, func(context.Context) error {
			pool.Close()
			return nil
		})

	case DriverS3:
		s3s, err := objectstore.NewS3Store(ctx, objectstore.Options{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			Prefix:    cfg.S3.Prefix,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			return nil, nil, err
		}
		store = s3s

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if cfg.Store.WriteBehind {
		wb := repositories.NewWriteBehindStore(store, cfg.Store.FlushInterval)
		// flush before the backend underneath is closed
		closers = append([]func(context.Context) error{wb.Close}, closers...)
		store = wb
	}

	log.Info().Str("driver", cfg.Store.Driver).Msg("Store opened")
	return store, closers, nil
}

// Pinger returns the store as a health-checkable Pinger, or nil
func (a *App) Pinger() repositories.Pinger {
	if p, ok := a.Store.(repositories.Pinger); ok {
		return p
	}
	return nil
}

// Close flushes pending writes and releases the store
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for _, c := range a.closers {
		if err := c(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
