// Package store persists the echo-cache server's shared key-to-record map.
// Records are stored as opaque JSON documents keyed by the client-supplied
// cache key; the server never interprets them beyond the expires_at stamp
// used by the purge job.
package store

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the server-side persistence seam. Implementations: SQLite for
// single-node deployments, Postgres when a shared database is available.
type Store interface {
	// LoadAll returns the entire cache map. Callers serve it verbatim.
	LoadAll(ctx context.Context) (map[string]json.RawMessage, error)

	// UpsertAll inserts or replaces every entry of the patch in a single
	// transaction: a failed patch persists nothing. Last write wins per
	// key; there is no merging and no transactional coupling with
	// LoadAll. clientID attributes the write and may be empty.
	UpsertAll(ctx context.Context, patch map[string]json.RawMessage, clientID string) error

	// PurgeExpired deletes entries whose embedded expires_at (ms epoch)
	// is at or before now, returning how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)

	// Close releases the underlying connection(s).
	Close() error
}
