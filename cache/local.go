package cache

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/chronosmaps/discovery/curiosity"
	"github.com/chronosmaps/discovery/storage"
)

// TTL is how long a cached record stays servable. Fixed for every record.
const TTL = 30 * 24 * time.Hour

// LocalStore reads and writes TTL-stamped curiosity records through a
// synchronous Storage backend. It is the first and fastest cache tier;
// the remote echo-cache is the durable one, so local write failures are
// swallowed rather than surfaced.
type LocalStore struct {
	storage storage.Storage
	now     func() time.Time
	log     zerolog.Logger
}

// NewLocalStore creates a store over the given backend. now may be nil, in
// which case time.Now is used.
func NewLocalStore(st storage.Storage, now func() time.Time, log zerolog.Logger) *LocalStore {
	if now == nil {
		now = time.Now
	}
	return &LocalStore{storage: st, now: now, log: log}
}

// Get returns the record under key, or nil on a miss. Expired and malformed
// entries are deleted on read, not just skipped.
func (ls *LocalStore) Get(key string) *curiosity.Record {
	raw, ok := ls.storage.Get(key)
	if !ok {
		return nil
	}

	var rec curiosity.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		ls.log.Warn().Str("key", key).Err(err).Msg("dropping malformed cache entry")
		ls.storage.Remove(key)
		return nil
	}

	if rec.ExpiresAt == 0 || ls.now().UnixMilli() >= rec.ExpiresAt {
		ls.log.Debug().Str("key", key).Msg("cache entry expired")
		ls.storage.Remove(key)
		return nil
	}

	return &rec
}

// Put stamps the record with fresh cached_at/expires_at and writes it,
// unconditionally overwriting any previous entry. A failed write is logged
// and swallowed: the remote cache is the source of truth.
func (ls *LocalStore) Put(key string, rec curiosity.Record) {
	now := ls.now()
	rec.CachedAt = now.UnixMilli()
	rec.ExpiresAt = now.Add(TTL).UnixMilli()

	data, err := json.Marshal(rec)
	if err != nil {
		ls.log.Warn().Str("key", key).Err(err).Msg("cache entry not serializable")
		return
	}

	if err := ls.storage.Set(key, string(data)); err != nil {
		ls.log.Warn().Str("key", key).Err(err).Msg("local cache write failed")
	}
}

// Delete removes the entry under key, if any.
func (ls *LocalStore) Delete(key string) {
	ls.storage.Remove(key)
}
