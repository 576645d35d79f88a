package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kitbuilder587/founder-finder/internal/metrics"
)

// Refresher запускает фоновые обновления кеша (fire-and-forget).
// Одновременные обновления одного ключа схлопываются в одно.
type Refresher struct {
	ctx    context.Context
	cancel context.CancelFunc

	group   singleflight.Group
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewRefresher(logger *zap.Logger, m *metrics.Metrics) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Refresher{
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger,
		metrics: m,
	}
}

// Schedule runs fn in the background. Errors and panics are logged, never returned.
func (r *Refresher) Schedule(key string, fn func(ctx context.Context) error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		r.logger.Debug("refresher closed, skipping refresh", zap.String("key", key))
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				r.logger.Error("panic in background refresh",
					zap.Any("panic", p),
					zap.String("key", key),
				)
				r.record("panic")
			}
		}()

		_, _, _ = r.group.Do(key, func() (interface{}, error) {
			err := fn(r.ctx)
			if err != nil {
				r.logger.Warn("background refresh failed",
					zap.String("key", key),
					zap.Error(err),
				)
				r.record("error")
				return nil, err
			}
			r.record("success")
			return nil, nil
		})
	}()
}

// Shutdown cancels pending refreshes and waits for them until ctx is done.
func (r *Refresher) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		r.logger.Warn("background refreshes still running at shutdown")
		return ctx.Err()
	}
}

// Wait blocks until all scheduled refreshes finish.
func (r *Refresher) Wait() {
	r.wg.Wait()
}

func (r *Refresher) record(status string) {
	if r.metrics != nil {
		r.metrics.RecordRefresh(status)
	}
}
