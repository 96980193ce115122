package storage

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage implements Storage as one file per key under a directory.
type FileStorage struct {
	dir string
}

// NewFileStorage creates a file-backed store rooted at dir. If dir is empty,
// it defaults to ~/.chronos_cache.
func NewFileStorage(dir string) (*FileStorage, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".chronos_cache")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	return &FileStorage{dir: dir}, nil
}

// Get implements Storage.
func (fs *FileStorage) Get(key string) (string, bool) {
	data, err := os.ReadFile(fs.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set implements Storage.
func (fs *FileStorage) Set(key, value string) error {
	path := fs.path(key)

	// Write to a temporary file first, then rename (atomic operation)
	tmpPath := path + fmt.Sprintf(".tmp.%d", rand.Int())
	if err := os.WriteFile(tmpPath, []byte(value), 0o600); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

// Remove implements Storage.
func (fs *FileStorage) Remove(key string) {
	_ = os.Remove(fs.path(key))
}

func (fs *FileStorage) path(key string) string {
	return filepath.Join(fs.dir, sanitizeKey(key)+".json")
}

// sanitizeKey ensures the key is safe for use as a filename.
func sanitizeKey(key string) string {
	// For very long keys, use hash to avoid filesystem limits
	if len(key) > 200 {
		hash := md5.Sum([]byte(key))
		return fmt.Sprintf("hash_%x", hash)
	}

	unsafe := []string{"/", "\\", ":", "?", "&", "=", "#", "<", ">", "|", "*", "\"", " "}
	result := key
	for _, char := range unsafe {
		result = strings.ReplaceAll(result, char, "_")
	}

	return result
}
