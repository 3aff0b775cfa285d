package repositories

import (
	"context"
	"sync"
	"time"

	"erp-ledger/internal/logger"
	"erp-ledger/internal/metrics"

	"github.com/rs/zerolog"
)

// WriteBehindStore buffers Set calls and flushes them to the underlying
// store on an interval. Repeated writes to the same key between flushes
// collapse into one. Reads see buffered values first.
type WriteBehindStore struct {
	next     KVStore
	interval time.Duration
	log      zerolog.Logger

	mu      sync.Mutex
	pending map[string][]byte

	stop      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewWriteBehindStore starts the background flusher
func NewWriteBehindStore(next KVStore, interval time.Duration) *WriteBehindStore {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	s := &WriteBehindStore{
		next:     next,
		interval: interval,
		log:      logger.WithComponent("write_behind"),
		pending:  make(map[string][]byte),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *WriteBehindStore) loop() {
	defer close(s.stopped)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := s.Flush(ctx); err != nil {
				s.log.Warn().Err(err).Msg("Background flush failed, will retry")
			}
			cancel()
		case <-s.stop:
			return
		}
	}
}

func (s *WriteBehindStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	v, ok := s.pending[key]
	s.mu.Unlock()
	if ok {
		out := make([]byte, len(v))
		copy(out, v)
		return out, true, nil
	}
	return s.next.Get(ctx, key)
}

func (s *WriteBehindStore) Set(ctx context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	s.mu.Lock()
	s.pending[key] = v
	s.mu.Unlock()
	return nil
}

// Flush writes every buffered key. A key that fails stays buffered unless a
// newer value replaced it meanwhile.
func (s *WriteBehindStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	batch := s.pending
	s.pending = make(map[string][]byte, len(batch))
	s.mu.Unlock()

	var firstErr error
	for key, value := range batch {
		if err := s.next.Set(ctx, key, value); err != nil {
			metrics.PersistFailures.WithLabelValues(key).Inc()
			if firstErr == nil {
				firstErr = err
			}
			s.mu.Lock()
			if _, newer := s.pending[key]; !newer {
				s.pending[key] = value
			}
			s.mu.Unlock()
		}
	}
	return firstErr
}

// Pending returns the number of keys waiting to be flushed
func (s *WriteBehindStore) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Close stops the flusher and performs a final flush
func (s *WriteBehindStore) Close(ctx context.Context) error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.stopped
		err = s.Flush(ctx)
	})
	return err
}

func (s *WriteBehindStore) Ping(ctx context.Context) error {
	if p, ok := s.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
