package shards

import (
	"context"
	"sync"

	"github.com/hikariatama/sharder/internal/client/models"
	"github.com/hikariatama/sharder/internal/logging"
)

// Aggregator owns a Table. Only Consume mutates it; any number of readers
// may call Snapshot and Degraded concurrently.
type Aggregator struct {
	log logging.Logger

	mu       sync.RWMutex
	table    *Table
	onChange []func([]models.ShardStatus)
}

func NewAggregator(log logging.Logger) *Aggregator {
	return &Aggregator{log: log, table: NewTable()}
}

// WithOnChange registers fn to receive a snapshot after every batch that
// changed the table. It must be called before Consume starts.
func (a *Aggregator) WithOnChange(fn func([]models.ShardStatus)) *Aggregator {
	a.onChange = append(a.onChange, fn)
	return a
}

// Consume applies batches until the channel closes or ctx ends. The table
// keeps its last state afterwards.
func (a *Aggregator) Consume(ctx context.Context, batches <-chan []models.ShardStatus) {
	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-batches:
			if !ok {
				return
			}
			a.apply(ctx, batch)
		}
	}
}

func (a *Aggregator) apply(ctx context.Context, batch []models.ShardStatus) {
	a.mu.Lock()
	wasDegraded := a.table.Degraded()
	changed := a.table.Apply(batch)
	degraded := a.table.Degraded()
	var snap []models.ShardStatus
	if changed {
		snap = a.table.Snapshot()
	}
	a.mu.Unlock()

	if !changed {
		return
	}
	if degraded != wasDegraded {
		if degraded {
			a.log.Warn(ctx, "storage degraded", "shards", len(snap))
		} else {
			a.log.Info(ctx, "storage healthy again", "shards", len(snap))
		}
	}
	for _, fn := range a.onChange {
		fn(snap)
	}
}

func (a *Aggregator) Snapshot() []models.ShardStatus {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.table.Snapshot()
}

func (a *Aggregator) Degraded() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.table.Degraded()
}
