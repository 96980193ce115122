package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStorageRoundTrip(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage failed: %v", err)
	}

	key := "curiosity:41.3833,2.1766"
	if err := fs.Set(key, `{"a":1}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := fs.Get(key)
	if !ok {
		t.Fatal("Get missed after Set")
	}
	if got != `{"a":1}` {
		t.Errorf("Get = %q, want %q", got, `{"a":1}`)
	}

	fs.Remove(key)
	if _, ok := fs.Get(key); ok {
		t.Error("Get hit after Remove")
	}
}

func TestFileStorageSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStorage(dir)
	if err != nil {
		t.Fatalf("NewFileStorage failed: %v", err)
	}

	if err := fs.Set("curiosity:41.3833,2.1766", "x"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 file, got %d", len(entries))
	}
	if strings.ContainsAny(entries[0].Name(), ":?&=#<>|*\" ") {
		t.Errorf("unsafe characters in filename %q", entries[0].Name())
	}
}

func TestFileStorageLongKeys(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage failed: %v", err)
	}

	key := strings.Repeat("k", 500)
	if err := fs.Set(key, "v"); err != nil {
		t.Fatalf("Set with long key failed: %v", err)
	}
	if got, ok := fs.Get(key); !ok || got != "v" {
		t.Errorf("Get(long key) = %q, %v", got, ok)
	}
}

func TestFileStorageMissingKey(t *testing.T) {
	fs, err := NewFileStorage(filepath.Join(t.TempDir(), "nested"))
	if err != nil {
		t.Fatalf("NewFileStorage failed: %v", err)
	}

	if _, ok := fs.Get("absent"); ok {
		t.Error("Get hit on empty store")
	}
	fs.Remove("absent") // must not panic
}
