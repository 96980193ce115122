// cmd/echocache/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/chronosmaps/discovery/internal/config"
	"github.com/chronosmaps/discovery/internal/http/routes"
	"github.com/chronosmaps/discovery/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Logger
	level, lvlErr := zerolog.ParseLevel(cfg.LogLevel)
	if lvlErr != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	log.Printf("starting echo-cache on :%s", cfg.Port)

	// Store
	var st store.Store
	if cfg.UsePostgres() {
		st, err = store.NewPostgresStore(context.Background(), cfg.DatabaseURL)
	} else {
		st, err = store.NewSQLiteStore(cfg.SQLitePath)
	}
	if err != nil {
		log.Fatalf("store error: %v", err)
	}
	defer func() { _ = st.Close() }()

	// Router / server
	s := routes.New(routes.ServerOptions{
		Store:          st,
		Log:            logger,
		SaveRatePerSec: cfg.SaveRatePerSec,
		SaveRateBurst:  cfg.SaveRateBurst,
	})
	h := hlog.NewHandler(logger)(s.Router)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: h}
	log.Fatal(srv.ListenAndServe())
}
