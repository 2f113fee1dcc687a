package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// FileStore keeps one JSON file per key under basePath.
type FileStore struct {
	basePath string
	mu       sync.RWMutex
}

func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create kv directory: %w", err)
	}

	return &FileStore{
		basePath: basePath,
	}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.basePath, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	default:
		s.mu.RLock()
		defer s.mu.RUnlock()

		data, err := os.ReadFile(s.path(key))
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
		}
		return data, true, nil
	}
}

// Set writes to a temp file and renames it over the target so readers never
// observe a half-written value.
func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		s.mu.Lock()
		defer s.mu.Unlock()

		target := s.path(key)
		tmp, err := os.CreateTemp(s.basePath, ".tmp-*")
		if err != nil {
			return fmt.Errorf("failed to create temp file: %w", err)
		}
		tmpName := tmp.Name()

		if _, err := tmp.Write(value); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("failed to close temp file: %w", err)
		}
		if err := os.Rename(tmpName, target); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("failed to replace %s: %w", key, err)
		}
		return nil
	}
}

func (s *FileStore) Close() error {
	return nil
}
