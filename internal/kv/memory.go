// Package kv provides key-value slot implementations backing the
// favorites list and the theme preference.
package kv

import (
	"context"
	"sync"

	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/logger"
)

// Compile-time interface check.
var _ domain.KVStore = (*Memory)(nil)

// Memory is an in-memory KV store. Safe for concurrent access.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
	log  *logger.Logger
}

// NewMemory creates an empty in-memory store.
func NewMemory(log *logger.Logger) *Memory {
	return &Memory{
		data: make(map[string][]byte),
		log:  log,
	}
}

// Get returns the value for key.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores value under key. Overwrites if it already exists.
func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.log.Debug("kv: set %s (%d bytes)", key, len(value))
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[key]; !ok {
		return domain.ErrNotFound
	}
	delete(m.data, key)
	return nil
}
