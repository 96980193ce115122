package quota

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronosmaps/discovery/storage"
)

type fakeClock struct {
	t time.Time
}

func (fc *fakeClock) now() time.Time { return fc.t }

func newTestGate(limit int) (*Gate, *storage.MemoryStorage, *fakeClock) {
	st := storage.NewMemoryStorage()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)}
	return NewGate(st, limit, clock.now, zerolog.Nop()), st, clock
}

func TestGateFreshState(t *testing.T) {
	g, _, _ := newTestGate(100)

	assert.True(t, g.Check())
	assert.Equal(t, 100, g.Remaining())
}

func TestGateBoundary(t *testing.T) {
	g, _, _ := newTestGate(100)

	for i := 0; i < 99; i++ {
		g.Increment()
	}
	assert.True(t, g.Check(), "99 of 100 used, one left")
	assert.Equal(t, 1, g.Remaining())

	assert.Equal(t, 100, g.Increment())
	assert.False(t, g.Check(), "limit reached")
	assert.Equal(t, 0, g.Remaining())
}

func TestGateDayRollover(t *testing.T) {
	g, _, clock := newTestGate(2)

	g.Increment()
	g.Increment()
	require.False(t, g.Check())

	// Next calendar day: no explicit reset call, Check sees a fresh budget.
	clock.t = clock.t.Add(24 * time.Hour)
	assert.True(t, g.Check())
	assert.Equal(t, 2, g.Remaining())

	// The first increment after rollover restarts the count at 1.
	assert.Equal(t, 1, g.Increment())
}

func TestGateCheckHasNoSideEffects(t *testing.T) {
	g, st, _ := newTestGate(5)

	before := st.Len()
	for i := 0; i < 10; i++ {
		g.Check()
	}
	assert.Equal(t, before, st.Len(), "Check must not persist anything")
}

func TestGateCorruptStateDegradesToAvailable(t *testing.T) {
	g, st, _ := newTestGate(5)

	require.NoError(t, st.Set("quota:daily", "{{{"))
	assert.True(t, g.Check())
	assert.Equal(t, 5, g.Remaining())

	// Increment repairs the persisted state.
	assert.Equal(t, 1, g.Increment())
	raw, ok := st.Get("quota:daily")
	require.True(t, ok)
	var s state
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, 1, s.Count)
}

func TestGateNeverNegativeRemaining(t *testing.T) {
	g, _, _ := newTestGate(1)

	g.Increment()
	g.Increment() // over-increment, e.g. racing callers
	assert.Equal(t, 0, g.Remaining())
}
