package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"erp-ledger/internal/app"
	"erp-ledger/internal/auth"
	"erp-ledger/internal/config"
	"erp-ledger/internal/handlers"
	"erp-ledger/internal/health"
	h "erp-ledger/internal/http"
	"erp-ledger/internal/logger"
	"erp-ledger/internal/middleware"
	"erp-ledger/internal/services"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logr := logger.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, nil)
	if err != nil {
		logr.Fatal().Err(err).Msg("Failed to start ledger")
	}

	// Overdue scan runs once shortly after load, then on the optional interval
	scheduler := services.NewOverdueScheduler(a.Ledger.Overdue, cfg.Overdue.InitialDelay, cfg.Overdue.Interval)
	scheduler.Start()

	jwtManager := auth.NewJWTManager(cfg)
	if jwtManager == nil {
		logr.Warn().Msg("auth.jwt_secret is empty, API authentication disabled")
	}

	router := h.NewRouter(
		handlers.NewProductHandler(a.Ledger.Catalog),
		handlers.NewCustomerHandler(a.Ledger.Catalog),
		handlers.NewOrderHandler(a.Ledger.Orders, a.Ledger.Invoices),
		handlers.NewInvoiceHandler(a.Ledger),
		handlers.NewHealthHandler(health.NewHealthChecker(a.Pinger(), cfg.Store.Driver)),
		a.Hub.HandleWebSocket,
		middleware.NewAuthMiddleware(jwtManager),
	)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.APILogging(corsMiddleware(router)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info().Str("addr", srv.Addr).Str("store", cfg.Store.Driver).Msg("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-ctx.Done()
	logr.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error().Err(err).Msg("HTTP shutdown failed")
	}
	scheduler.Stop()
	if err := a.Close(shutdownCtx); err != nil {
		logr.Error().Err(err).Msg("Failed to close store")
	}
	logr.Info().Msg("Server stopped")
}
