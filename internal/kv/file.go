package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/logger"
)

// Compile-time interface check.
var _ domain.KVStore = (*File)(nil)

// File keeps every key in one JSON object on disk. Each write rewrites
// the whole file through a temp file and rename, so a crash leaves either
// the old or the new contents.
type File struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
}

// NewFile creates a file-backed store at path. The file and its
// directory are created on first write.
func NewFile(path string, log *logger.Logger) *File {
	return &File{path: path, log: log}
}

// Path returns the backing file.
func (f *File) Path() string { return f.path }

// Get returns the value for key.
func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return nil, err
	}
	v, ok := data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return []byte(v), nil
}

// Set stores value under key.
func (f *File) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}
	data[key] = string(value)
	f.log.Debug("kv: set %s in %s (%d bytes)", key, f.path, len(value))
	return f.write(data)
}

// Delete removes key.
func (f *File) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return domain.ErrNotFound
	}
	delete(data, key)
	return f.write(data)
}

func (f *File) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("kv: read %s: %w", f.path, err)
	}
	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		// A corrupt file is treated as empty; the next write replaces it.
		f.log.Warn("kv: %s is not valid JSON, starting empty: %v", f.path, err)
		return map[string]string{}, nil
	}
	return data, nil
}

func (f *File) write(data map[string]string) error {
	if dir := filepath.Dir(f.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("kv: create dir: %w", err)
		}
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("kv: marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".kv-*.tmp")
	if err != nil {
		return fmt.Errorf("kv: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("kv: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("kv: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("kv: rename: %w", err)
	}
	return nil
}
