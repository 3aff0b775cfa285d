package services

import (
	"context"
	"sync"
	"time"

	"erp-ledger/internal/logger"
	"erp-ledger/internal/metrics"
	"erp-ledger/internal/models"

	"github.com/rs/zerolog"
)

// OverdueUpdate is a single status change produced by CheckOverdue
type OverdueUpdate struct {
	InvoiceID string               `json:"invoice_id"`
	From      models.InvoiceStatus `json:"from"`
	To        models.InvoiceStatus `json:"to"`
}

// CheckOverdue returns the invoices in the snapshot whose due date has passed
// and that are neither paid nor already overdue. It does not modify invoices.
func CheckOverdue(invoices []models.Invoice, now time.Time) []OverdueUpdate {
	var updates []OverdueUpdate
	for _, inv := range invoices {
		if inv.DueDate.IsZero() || !inv.DueDate.Before(now) {
			continue
		}
		next, ok := inv.Status.Next(models.ActionDuePassed)
		if !ok {
			continue
		}
		updates = append(updates, OverdueUpdate{InvoiceID: inv.ID, From: inv.Status, To: next})
	}
	return updates
}

// OverdueService applies overdue transitions to the workspace
type OverdueService struct {
	ws *Workspace
}

func NewOverdueService(ws *Workspace) *OverdueService {
	return &OverdueService{ws: ws}
}

// Scan marks every past-due unpaid invoice overdue and persists the result.
// Running it again without a clock change applies nothing.
func (s *OverdueService) Scan(ctx context.Context) ([]OverdueUpdate, error) {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	now := ws.clock.Now()
	updates := CheckOverdue(ws.invoices, now)
	if len(updates) == 0 {
		return []OverdueUpdate{}, nil
	}

	for _, u := range updates {
		idx := ws.invoiceIndex(u.InvoiceID)
		if idx < 0 {
			continue
		}
		invoice := &ws.invoices[idx]
		invoice.Status = u.To
		invoice.UpdatedAt = timePtr(now)
		ws.publish(models.EventInvoiceOverdue, invoice)
	}
	ws.saveInvoices(ctx)

	metrics.OverdueTransitions.Add(float64(len(updates)))
	ws.log.Info().Int("count", len(updates)).Msg("Invoices marked overdue")
	return updates, nil
}

// OverdueScheduler runs a scan once after a delay and then, if an interval
// is set, on every tick until stopped.
type OverdueScheduler struct {
	service      *OverdueService
	initialDelay time.Duration
	interval     time.Duration

	timer    *time.Timer
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	log      zerolog.Logger
}

func NewOverdueScheduler(service *OverdueService, initialDelay, interval time.Duration) *OverdueScheduler {
	return &OverdueScheduler{
		service:      service,
		initialDelay: initialDelay,
		interval:     interval,
		stopChan:     make(chan struct{}),
		log:          logger.WithComponent("overdue_scheduler"),
	}
}

// Start schedules the deferred first scan and the optional periodic loop
func (s *OverdueScheduler) Start() {
	s.log.Info().Dur("initial_delay", s.initialDelay).Dur("interval", s.interval).Msg("Starting overdue scheduler")

	s.wg.Add(1)
	s.timer = time.AfterFunc(s.initialDelay, func() {
		defer s.wg.Done()
		select {
		case <-s.stopChan:
			return
		default:
		}
		s.run()
	})

	if s.interval <= 0 {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.run()
			case <-s.stopChan:
				return
			}
		}
	}()
}

// Stop cancels pending scans and waits for a running one to finish
func (s *OverdueScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		if s.timer != nil && s.timer.Stop() {
			// the deferred scan never ran, so release its slot
			s.wg.Done()
		}
		s.wg.Wait()
		s.log.Info().Msg("Overdue scheduler stopped")
	})
}

func (s *OverdueScheduler) run() {
	if _, err := s.service.Scan(context.Background()); err != nil {
		s.log.Error().Err(err).Msg("Overdue scan failed")
	}
}
