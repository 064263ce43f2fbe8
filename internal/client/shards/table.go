// Package shards keeps a stable, ordered view of backend shard health built
// from partial status batches pushed by the backend.
package shards

import (
	"github.com/hikariatama/sharder/internal/client/models"
)

// Table is an insertion-ordered map of shard statuses keyed by shard id.
// Entries are only ever upserted; a shard missing from later batches keeps
// its last known status. A Table is not safe for concurrent use on its own.
type Table struct {
	order []string
	byID  map[string]models.ShardStatus
}

func NewTable() *Table {
	return &Table{byID: make(map[string]models.ShardStatus)}
}

// Apply merges batch into the table and reports whether anything changed.
// Known shards keep their position; new shards are appended in the order
// they appear. Applying the same batch twice is a no-op the second time.
func (t *Table) Apply(batch []models.ShardStatus) bool {
	changed := false
	for _, s := range batch {
		prev, ok := t.byID[s.Shard]
		if !ok {
			t.order = append(t.order, s.Shard)
		}
		if !ok || prev != s {
			t.byID[s.Shard] = s
			changed = true
		}
	}
	return changed
}

// Snapshot returns the entries in table order.
func (t *Table) Snapshot() []models.ShardStatus {
	out := make([]models.ShardStatus, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.byID[id])
	}
	return out
}

// Degraded reports whether any known shard is unhealthy.
func (t *Table) Degraded() bool {
	for _, s := range t.byID {
		if !s.Healthy {
			return true
		}
	}
	return false
}

func (t *Table) Len() int { return len(t.order) }
