package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/nikolayk812/rocketcart/internal/port"
)

var ErrEmptyKey = errors.New("key is empty")

type memoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns a storage that lives as long as the process.
func NewMemory() port.CartStorage {
	return &memoryStorage{
		values: make(map[string]string),
	}
}

func (m *memoryStorage) Read(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memoryStorage) Write(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}
