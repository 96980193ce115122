// cmd/discover is a small CLI wrapper around the resolver: it takes a
// coordinate plus optional address context and prints the resolved content.
// Useful for smoke-testing a deployment without the map client.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chronosmaps/discovery/cache"
	"github.com/chronosmaps/discovery/curiosity"
	"github.com/chronosmaps/discovery/discover"
	"github.com/chronosmaps/discovery/echo"
	"github.com/chronosmaps/discovery/internal/config"
	"github.com/chronosmaps/discovery/openai"
	"github.com/chronosmaps/discovery/quota"
	"github.com/chronosmaps/discovery/storage"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("discover", flag.ContinueOnError)
	lat := fs.Float64("lat", 0, "latitude in degrees (required)")
	lng := fs.Float64("lng", 0, "longitude in degrees (required)")
	address := fs.String("address", "", "display address for prompt context")
	city := fs.String("city", "", "city for prompt context")
	country := fs.String("country", "", "country for prompt context")
	place := fs.String("place", "", "named place (POI) at the coordinate")
	source := fs.String("source", "", "generator to use (default: openai when configured, else offline)")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *lat == 0 && *lng == 0 {
		fs.Usage()
		return fmt.Errorf("both -lat and -lng are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)

	st, err := storage.NewFileStorage(cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("open cache dir: %w", err)
	}

	local := cache.NewLocalStore(st, nil, logger)
	gate := quota.NewGate(st, cfg.DailyLimit, nil, logger)
	remote := echo.NewClient(cfg.EchoURL, nil, st, logger)
	resolver := discover.NewResolver(local, remote, gate, nil, logger)

	registry := discover.NewRegistry()
	registry.Register("offline", func(_ context.Context, loc curiosity.Location) (*curiosity.Record, error) {
		return discover.Offline(loc), nil
	})
	if cfg.OpenAIURL != "" {
		ai := openai.NewClient(cfg.OpenAIURL, cfg.OpenAIKey, logger, openai.WithModel(cfg.OpenAIModel))
		registry.Register("openai", ai.Generate)
	}

	name := *source
	if name == "" {
		name = "offline"
		if cfg.OpenAIURL != "" {
			name = "openai"
		}
	}
	gen, ok := registry.Get(name)
	if !ok {
		return fmt.Errorf("generator '%s' not available. Configured generators: %v", name, registry.List())
	}

	loc := curiosity.Location{
		Latitude:       *lat,
		Longitude:      *lng,
		DisplayAddress: *address,
		City:           *city,
		Country:        *country,
		Name:           *place,
	}

	rec := resolver.Resolve(context.Background(), loc, gen)
	printRecord(rec)
	fmt.Printf("\n%d live requests remaining today\n", gate.Remaining())
	return nil
}

func printRecord(rec *curiosity.Record) {
	fmt.Printf("%s  [%s, %s, +%d XP]\n", rec.LocationName, rec.Rarity, rec.Source, rec.Rarity.XP())
	fmt.Printf("%s\n\n", rec.MainHighlight)
	for i, c := range rec.Curiosities {
		fmt.Printf("%d. %s\n", i+1, c)
	}
	if len(rec.RelatedFigures) > 0 {
		fmt.Printf("\nRelated figures: %s\n", strings.Join(rec.RelatedFigures, ", "))
	}
}
