// Package echo is the client for the shared remote cache tier (the
// "echo-cache"): a best-effort accelerator that pools generated content
// across installs. It is eventually consistent and never correctness
// critical; every failure degrades to "no remote data".
package echo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chronosmaps/discovery/curiosity"
	"github.com/chronosmaps/discovery/storage"
)

const (
	loadPath = "/api/cache/load"
	savePath = "/api/cache/save"

	// clientIDKey is where the install ID lives in client-side storage,
	// beside the cached records it attributes.
	clientIDKey = "client:id"

	// LoadTimeout bounds the full-map fetch so a slow server cannot stall
	// the resolver's fallthrough to generation.
	LoadTimeout = 5 * time.Second
)

// Client talks to the echo-cache server.
type Client struct {
	baseURL  string
	http     *http.Client
	clientID string
	log      zerolog.Logger
}

// NewClient creates a client for the server at baseURL. httpClient may be
// nil for http.DefaultClient. Save patches are stamped with an install ID
// for server-side provenance; the ID is minted once and kept in st so the
// install keeps one identity across runs. A nil st yields a fresh ID per
// process.
func NewClient(baseURL string, httpClient *http.Client, st storage.Storage, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:  baseURL,
		http:     httpClient,
		clientID: installID(st, log),
		log:      log,
	}
}

func installID(st storage.Storage, log zerolog.Logger) string {
	if st == nil {
		return uuid.NewString()
	}
	if id, ok := st.Get(clientIDKey); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	if err := st.Set(clientIDKey, id); err != nil {
		log.Warn().Err(err).Msg("install id not persisted, using it for this run only")
	}
	return id
}

// Load fetches the entire shared cache as a key-to-record map. The MVP
// transport has no per-key query. On any network or parse failure it
// returns an empty map: callers must treat that as "no remote data", never
// as an authoritative empty cache.
func (c *Client) Load(ctx context.Context) map[string]curiosity.Record {
	ctx, cancel := context.WithTimeout(ctx, LoadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+loadPath, nil)
	if err != nil {
		c.log.Warn().Err(err).Msg("echo-cache load request build failed")
		return map[string]curiosity.Record{}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("echo-cache unreachable")
		return map[string]curiosity.Record{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("echo-cache load rejected")
		return map[string]curiosity.Record{}
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.log.Warn().Err(err).Msg("echo-cache payload unparseable")
		return map[string]curiosity.Record{}
	}

	out := make(map[string]curiosity.Record, len(raw))
	for key, val := range raw {
		rec, err := decodeRecord(val)
		if err != nil {
			c.log.Debug().Str("key", key).Err(err).Msg("skipping undecodable echo-cache entry")
			continue
		}
		out[key] = rec
	}
	return out
}

// Save upserts a single key on the server. Failures are logged, never
// retried; callers fire this from a goroutine and do not wait on it.
func (c *Client) Save(ctx context.Context, key string, rec curiosity.Record) {
	body, err := json.Marshal(map[string]curiosity.Record{key: rec})
	if err != nil {
		c.log.Warn().Str("key", key).Err(err).Msg("echo-cache patch not serializable")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+savePath, bytes.NewReader(body))
	if err != nil {
		c.log.Warn().Err(err).Msg("echo-cache save request build failed")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Chronos-Client", c.clientID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("key", key).Err(err).Msg("echo-cache save failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Str("key", key).Int("status", resp.StatusCode).Msg("echo-cache save rejected")
		return
	}
	c.log.Debug().Str("key", key).Msg("echo-cache save ok")
}

// decodeRecord handles both value shapes the server has historically
// stored: a record object, or that same object serialized as a JSON string.
func decodeRecord(raw json.RawMessage) (curiosity.Record, error) {
	var rec curiosity.Record
	if err := json.Unmarshal(raw, &rec); err == nil {
		return rec, nil
	}

	var wrapped string
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return curiosity.Record{}, fmt.Errorf("neither record nor string: %w", err)
	}
	if err := json.Unmarshal([]byte(wrapped), &rec); err != nil {
		return curiosity.Record{}, fmt.Errorf("string-wrapped record unparseable: %w", err)
	}
	return rec, nil
}
