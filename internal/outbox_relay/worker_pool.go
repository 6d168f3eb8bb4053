package outbox_relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/backoffice-ledger/internal/domain/outbox"
)

// WorkerPool runs message batches on a bounded ants pool. Messages of one
// aggregate are handled by a single task in their original order.
type WorkerPool struct {
	pool   *ants.Pool
	logger *slog.Logger
}

func NewWorkerPool(size int, logger *slog.Logger) (*WorkerPool, error) {
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	return &WorkerPool{pool: pool, logger: logger}, nil
}

// Dispatch hands every message to fn and waits for the batch to finish.
// Within an aggregate, a failed message stops the ones after it so they are
// retried in order on the next batch.
func (w *WorkerPool) Dispatch(ctx context.Context, messages []*outbox.Message, fn func(context.Context, *outbox.Message) error) {
	var wg sync.WaitGroup

	for _, group := range groupByAggregate(messages) {
		wg.Add(1)

		task := func() {
			defer wg.Done()
			for _, msg := range group {
				if ctx.Err() != nil {
					return
				}
				if err := fn(ctx, msg); err != nil {
					return
				}
			}
		}

		if err := w.pool.Submit(task); err != nil {
			wg.Done()
			w.logger.Error("Failed to submit outbox messages to worker pool",
				"aggregate_id", group[0].AggregateID,
				"messages", len(group),
				"error", err,
			)
		}
	}

	wg.Wait()
}

// Shutdown releases the pool after running tasks complete.
func (w *WorkerPool) Shutdown() {
	w.logger.Info("Shutting down worker pool", "running_workers", w.pool.Running())
	w.pool.Release()
}

// Running returns the number of running workers in the pool.
func (w *WorkerPool) Running() int {
	return w.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (w *WorkerPool) Capacity() int {
	return w.pool.Cap()
}

// groupByAggregate splits messages per aggregate, keeping first-seen order of
// aggregates and the original order inside each group.
func groupByAggregate(messages []*outbox.Message) [][]*outbox.Message {
	index := make(map[string]int)
	var groups [][]*outbox.Message
	for _, m := range messages {
		i, ok := index[m.AggregateID]
		if !ok {
			i = len(groups)
			index[m.AggregateID] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], m)
	}
	return groups
}
