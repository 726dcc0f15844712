package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/nikolayk812/rocketcart/internal/port"
)

// fileStorage keeps every key in a single JSON object on disk, the way a browser keeps
// localStorage for one origin.
type fileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) port.CartStorage {
	return &fileStorage{path: path}
}

func (f *fileStorage) Read(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}

	value, ok := values[key]
	return value, ok, nil
}

func (f *fileStorage) Write(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	// rename is atomic, readers never see a half written file
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}

func (f *fileStorage) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("storage file[%s] is corrupt: %w", f.path, err)
	}

	return values, nil
}
