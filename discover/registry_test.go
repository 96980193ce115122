package discover

import (
	"context"
	"sort"
	"testing"

	"github.com/chronosmaps/discovery/curiosity"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Get("offline"); ok {
		t.Error("empty registry returned a generator")
	}

	r.Register("offline", func(_ context.Context, loc curiosity.Location) (*curiosity.Record, error) {
		return Offline(loc), nil
	})
	r.Register("openai", failingGen)

	gen, ok := r.Get("offline")
	if !ok {
		t.Fatal("registered generator not found")
	}
	rec, err := gen(context.Background(), curiosity.Location{City: "Barcelona"})
	if err != nil {
		t.Fatalf("offline generator errored: %v", err)
	}
	if rec.Source != curiosity.SourceOffline {
		t.Errorf("Source = %q", rec.Source)
	}

	names := r.List()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "offline" || names[1] != "openai" {
		t.Errorf("List() = %v", names)
	}
}

func TestOfflineDeterministic(t *testing.T) {
	loc := curiosity.Location{
		DisplayAddress: "Carrer del Bisbe, Barcelona",
		City:           "Barcelona",
		Neighborhood:   "Barri Gòtic",
		StreetName:     "Carrer del Bisbe",
	}

	a := Offline(loc)
	b := Offline(loc)

	if a.MainHighlight != b.MainHighlight || len(a.Curiosities) != len(b.Curiosities) {
		t.Error("offline content must be deterministic for the same descriptor")
	}
	for i := range a.Curiosities {
		if a.Curiosities[i] != b.Curiosities[i] {
			t.Errorf("curiosity %d differs", i)
		}
	}
	if len(a.Curiosities) < 1 {
		t.Fatal("offline generator must emit content")
	}
	if a.Source != curiosity.SourceOffline {
		t.Errorf("Source = %q", a.Source)
	}
}

func TestOfflineEmptyDescriptor(t *testing.T) {
	rec := Offline(curiosity.Location{Latitude: 1, Longitude: 2})

	if rec.LocationName == "" {
		t.Error("LocationName empty for bare coordinate")
	}
	for i, c := range rec.Curiosities {
		if c == "" {
			t.Errorf("curiosity %d empty", i)
		}
	}
}
