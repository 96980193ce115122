// Package routes wires the echo-cache server's HTTP surface: the full-map
// load endpoint, the single-or-multi key save patch, and a health check.
// The transport is deliberately unauthenticated; abuse is contained by the
// per-IP rate limit on writes.
package routes

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	appmw "github.com/chronosmaps/discovery/internal/http/middleware"
	"github.com/chronosmaps/discovery/internal/store"
)

// maxPatchBytes bounds a save request body. A single record is a few KB;
// anything near the cap is not a well-behaved client.
const maxPatchBytes = 1 << 20

type Server struct {
	Router *chi.Mux
	Store  store.Store
	Log    zerolog.Logger
}

type ServerOptions struct {
	Store          store.Store
	Log            zerolog.Logger
	SaveRatePerSec float64
	SaveRateBurst  int
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	s := &Server{Router: r, Store: opts.Store, Log: opts.Log}

	limiter := appmw.NewRateLimiter(opts.SaveRatePerSec, opts.SaveRateBurst)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			s.Log.Warn().Err(err).Msg("health check write failed")
		}
	})

	r.Get("/api/cache/load", s.handleLoad)
	r.With(limiter.Handler).Post("/api/cache/save", s.handleSave)

	return s
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	all, err := s.Store.LoadAll(r.Context())
	if err != nil {
		s.Log.Error().Err(err).Msg("cache load failed")
		http.Error(w, "could not load cache", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(all); err != nil {
		s.Log.Warn().Err(err).Msg("cache load response write failed")
	}
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var patch map[string]json.RawMessage
	body := http.MaxBytesReader(w, r.Body, maxPatchBytes)
	if err := json.NewDecoder(body).Decode(&patch); err != nil {
		http.Error(w, "invalid patch", http.StatusBadRequest)
		return
	}
	if len(patch) == 0 {
		http.Error(w, "empty patch", http.StatusBadRequest)
		return
	}

	// The whole patch applies in one transaction so a rejected request
	// leaves nothing behind.
	clientID := r.Header.Get("X-Chronos-Client")
	if err := s.Store.UpsertAll(r.Context(), patch, clientID); err != nil {
		s.Log.Error().Str("client", clientID).Err(err).Msg("cache patch failed")
		http.Error(w, "could not save cache entries", http.StatusInternalServerError)
		return
	}
	s.Log.Info().Int("entries", len(patch)).Str("client", clientID).Msg("cache patch applied")

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "success"}); err != nil {
		s.Log.Warn().Err(err).Msg("cache save response write failed")
	}
}
