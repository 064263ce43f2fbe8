package shards

import (
	"context"
	"errors"
	"time"

	"github.com/hikariatama/sharder/internal/client/client"
	"github.com/hikariatama/sharder/internal/logging"
)

// Watcher keeps an Aggregator fed from the backend's shard channel,
// subscribing again after a pause whenever the connection ends.
type Watcher struct {
	sub       client.ShardSubscriber
	agg       *Aggregator
	log       logging.Logger
	reconnect time.Duration
}

func NewWatcher(sub client.ShardSubscriber, agg *Aggregator, log logging.Logger, reconnect time.Duration) *Watcher {
	return &Watcher{sub: sub, agg: agg, log: log, reconnect: reconnect}
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	for {
		ch, err := w.sub.Subscribe(ctx)
		switch {
		case err == nil:
			w.log.Debug(ctx, "shard channel connected")
			w.agg.Consume(ctx, ch)
			w.log.Debug(ctx, "shard channel closed")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		default:
			w.log.Warn(ctx, "shard channel unavailable", "error", err)
		}

		t := time.NewTimer(w.reconnect)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}
