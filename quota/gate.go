// Package quota enforces the daily generator-request budget. The gate keeps
// one counter per calendar day and resets lazily: no scheduler runs, the
// stored date is simply compared with today's on every read.
package quota

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/chronosmaps/discovery/storage"
)

// DefaultLimit is the default number of generator calls allowed per day.
const DefaultLimit = 100

const stateKey = "quota:daily"

// state is the persisted quota counter. Day granularity, local time.
type state struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Gate tracks today's request count against a fixed daily limit.
type Gate struct {
	mu      sync.Mutex
	storage storage.Storage
	limit   int
	now     func() time.Time
	log     zerolog.Logger
}

// NewGate creates a gate persisting into st. limit <= 0 selects
// DefaultLimit; now may be nil for time.Now.
func NewGate(st storage.Storage, limit int, now func() time.Time, log zerolog.Logger) *Gate {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if now == nil {
		now = time.Now
	}
	return &Gate{storage: st, limit: limit, now: now, log: log}
}

// Check reports whether another generator call is allowed today. It has no
// side effects.
func (g *Gate) Check() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := g.load()
	if st.Date != g.today() {
		return true
	}
	return st.Count < g.limit
}

// Increment advances today's counter by one, persists it, and returns the
// new count. Rolls the day over first if the stored date is stale. Call at
// most once per successful generator invocation; counts are never undone.
func (g *Gate) Increment() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := g.load()
	today := g.today()
	if st.Date != today {
		st.Date = today
		st.Count = 0
	}
	st.Count++

	data, err := json.Marshal(st)
	if err == nil {
		err = g.storage.Set(stateKey, string(data))
	}
	if err != nil {
		g.log.Warn().Err(err).Msg("quota state not persisted")
	}
	return st.Count
}

// Remaining returns how many generator calls are left today.
func (g *Gate) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := g.load()
	if st.Date != g.today() {
		return g.limit
	}
	if rem := g.limit - st.Count; rem > 0 {
		return rem
	}
	return 0
}

// load reads the persisted state. Any read or parse failure degrades to
// "no prior state": the gate never blocks on broken storage.
func (g *Gate) load() state {
	raw, ok := g.storage.Get(stateKey)
	if ok {
		var st state
		if err := json.Unmarshal([]byte(raw), &st); err == nil {
			return st
		}
	}
	return state{Date: g.today(), Count: 0}
}

func (g *Gate) today() string {
	return g.now().Format("2006-01-02")
}
