package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory store.Store for handler tests.
type memStore struct {
	mu         sync.Mutex
	entries    map[string]json.RawMessage
	fail       bool
	lastClient string
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]json.RawMessage)}
}

func (m *memStore) LoadAll(context.Context) (map[string]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errors.New("db down")
	}
	out := make(map[string]json.RawMessage, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) UpsertAll(_ context.Context, patch map[string]json.RawMessage, clientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("db down")
	}
	for k, v := range patch {
		m.entries[k] = v
	}
	m.lastClient = clientID
	return nil
}

func (m *memStore) PurgeExpired(context.Context, time.Time) (int64, error) { return 0, nil }

func (m *memStore) Close() error { return nil }

func newTestServer(st *memStore) *Server {
	return New(ServerOptions{
		Store:          st,
		Log:            zerolog.Nop(),
		SaveRatePerSec: 100,
		SaveRateBurst:  100,
	})
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	st := newMemStore()
	s := newTestServer(st)

	patch := `{"curiosity:41.3833,2.1766": {"location_name": "Plaça Nova", "curiosities": ["A"]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/cache/save", strings.NewReader(patch))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/cache/load", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var all map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	require.Contains(t, all, "curiosity:41.3833,2.1766")

	var rec struct {
		LocationName string `json:"location_name"`
	}
	require.NoError(t, json.Unmarshal(all["curiosity:41.3833,2.1766"], &rec))
	assert.Equal(t, "Plaça Nova", rec.LocationName)
}

func TestSaveMultiKeyPatch(t *testing.T) {
	st := newMemStore()
	s := newTestServer(st)

	patch := `{"curiosity:1.0000,1.0000": {"a":1}, "curiosity:2.0000,2.0000": {"b":2}}`
	req := httptest.NewRequest(http.MethodPost, "/api/cache/save", strings.NewReader(patch))
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, st.entries, 2)
}

func TestSaveFailureLeavesNothingBehind(t *testing.T) {
	st := newMemStore()
	st.fail = true
	s := newTestServer(st)

	patch := `{"curiosity:1.0000,1.0000": {"a":1}, "curiosity:2.0000,2.0000": {"b":2}}`
	req := httptest.NewRequest(http.MethodPost, "/api/cache/save", strings.NewReader(patch))
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, st.entries, "a rejected patch must not persist any of its entries")
}

func TestSavePassesClientID(t *testing.T) {
	st := newMemStore()
	s := newTestServer(st)

	req := httptest.NewRequest(http.MethodPost, "/api/cache/save", strings.NewReader(`{"k":{"a":1}}`))
	req.Header.Set("X-Chronos-Client", "install-1234")
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "install-1234", st.lastClient)
}

func TestSaveRejectsGarbage(t *testing.T) {
	s := newTestServer(newMemStore())

	for _, body := range []string{"", "not json", "[]", "{}"} {
		req := httptest.NewRequest(http.MethodPost, "/api/cache/save", strings.NewReader(body))
		rr := httptest.NewRecorder()
		s.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %q", body)
	}
}

func TestLoadStoreFailure(t *testing.T) {
	st := newMemStore()
	st.fail = true
	s := newTestServer(st)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/cache/load", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSaveRateLimited(t *testing.T) {
	s := New(ServerOptions{
		Store:          newMemStore(),
		Log:            zerolog.Nop(),
		SaveRatePerSec: 1,
		SaveRateBurst:  2,
	})

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/cache/save", strings.NewReader(`{"k":{"a":1}}`))
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		s.Router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2], "burst exhausted")
	assert.Equal(t, http.StatusTooManyRequests, codes[3])
}

func TestHealthz(t *testing.T) {
	s := newTestServer(newMemStore())

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}
