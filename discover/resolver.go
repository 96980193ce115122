// Package discover orchestrates the discovery content pipeline: local cache,
// shared echo-cache, quota gate, live generation, and the offline fallback.
// Its single entry point always returns renderable content; callers
// differentiate degraded results by the record's Source field only.
package discover

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/chronosmaps/discovery/cache"
	"github.com/chronosmaps/discovery/curiosity"
	"github.com/chronosmaps/discovery/quota"
)

const (
	// GenerateTimeout bounds generator calls for plain addresses.
	GenerateTimeout = 10 * time.Second

	// NamedPlaceTimeout bounds generator calls for specific POIs, which
	// use a longer prompt and deserve more time.
	NamedPlaceTimeout = 15 * time.Second

	// saveTimeout bounds the detached echo-cache write.
	saveTimeout = 10 * time.Second
)

// Generator produces a curiosity record for a location, or fails. The
// resolver treats any failure as a cue to fall back offline; it never
// propagates generator errors.
type Generator func(ctx context.Context, loc curiosity.Location) (*curiosity.Record, error)

// RemoteCache is the echo-cache seam. echo.Client satisfies it.
type RemoteCache interface {
	Load(ctx context.Context) map[string]curiosity.Record
	Save(ctx context.Context, key string, rec curiosity.Record)
}

// Resolver resolves a location to content, consulting tiers in a fixed
// order: local cache, echo-cache, quota gate, live generator, offline
// fallback. Concurrent calls for the same cache cell are collapsed into
// one flight so a double tap cannot burn two quota units.
type Resolver struct {
	local  *cache.LocalStore
	remote RemoteCache
	gate   *quota.Gate
	now    func() time.Time
	log    zerolog.Logger
	group  singleflight.Group
}

// NewResolver wires the three tiers together. now may be nil for time.Now.
func NewResolver(local *cache.LocalStore, remote RemoteCache, gate *quota.Gate, now func() time.Time, log zerolog.Logger) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{local: local, remote: remote, gate: gate, now: now, log: log}
}

// Resolve returns content for loc. It never fails: under total upstream
// failure the offline generator, which does no I/O, supplies the result.
// Quota-exceeded and offline records are intentionally not cached so a
// later retry can still obtain live content for the same cell.
func (r *Resolver) Resolve(ctx context.Context, loc curiosity.Location, gen Generator) *curiosity.Record {
	key := cache.Key(loc.Latitude, loc.Longitude)

	result, _, _ := r.group.Do(key, func() (any, error) {
		return r.resolve(ctx, key, loc, gen), nil
	})
	return result.(*curiosity.Record)
}

func (r *Resolver) resolve(ctx context.Context, key string, loc curiosity.Location, gen Generator) *curiosity.Record {
	// 1. Local tier. Expired entries were already purged by the store.
	if rec := r.local.Get(key); rec != nil {
		r.log.Debug().Str("key", key).Msg("local cache hit")
		return rec
	}

	// 2. Shared echo-cache, written through to the local tier on a hit.
	if rec, ok := r.remote.Load(ctx)[key]; ok {
		r.log.Info().Str("key", key).Msg("echo-cache hit")
		r.local.Put(key, rec)
		return &rec
	}

	// 3. Quota gate. A blocked request is a defined terminal state, not an
	// error, and consumes nothing.
	if !r.gate.Check() {
		r.log.Warn().Str("key", key).Msg("daily quota exhausted")
		return quotaExceededRecord(loc)
	}

	// 4. Live generation under a hard timeout.
	timeout := GenerateTimeout
	if loc.Named() {
		timeout = NamedPlaceTimeout
	}
	genCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rec, err := gen(genCtx, loc)
	if err != nil || rec == nil {
		r.log.Warn().Str("key", key).Err(err).Msg("generator failed, serving offline content")
		return Offline(loc)
	}

	rec.Normalize(loc, "")
	rec.Source = curiosity.SourceLive
	r.gate.Increment()
	r.local.Put(key, *rec)

	// Fire-and-forget: the echo-cache write must never delay the caller.
	saved := r.stamped(*rec)
	go func() {
		saveCtx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		r.remote.Save(saveCtx, key, saved)
	}()

	return rec
}

// stamped returns a copy carrying fresh cache timestamps for remote upload.
func (r *Resolver) stamped(rec curiosity.Record) curiosity.Record {
	now := r.now()
	rec.CachedAt = now.UnixMilli()
	rec.ExpiresAt = now.Add(cache.TTL).UnixMilli()
	return rec
}

// quotaExceededRecord synthesizes the canned daily-limit content.
func quotaExceededRecord(loc curiosity.Location) *curiosity.Record {
	return &curiosity.Record{
		LocationName: loc.Label(),
		Curiosities: []string{
			"You have reached today's limit of live discovery requests.",
			"Previously explored locations remain available from the cache.",
			"The counter resets tomorrow.",
		},
		MainHighlight: "Daily limit reached - come back tomorrow",
		Rarity:        curiosity.RarityCommon,
		Category:      "history",
		Source:        curiosity.SourceQuotaExceeded,
	}
}
