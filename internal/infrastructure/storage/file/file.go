// Package file persists session entries as a single JSON document in the
// user's state directory, so a session survives process restarts. A poll
// loop turns external modifications (another console process logging in
// or out) into Watch events.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ia-technology/catalog-console/internal/core/domain"
	"github.com/ia-technology/catalog-console/internal/core/ports"
)

const (
	fileName     = "session.json"
	pollInterval = 250 * time.Millisecond
)

type Storage struct {
	path string
	mu   sync.Mutex
}

// New creates the state directory if needed and returns a Storage rooted
// in it.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("file storage: create dir: %w", err)
	}
	return &Storage{path: filepath.Join(dir, fileName)}, nil
}

func (s *Storage) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return "", err
	}
	v, ok := entries[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (s *Storage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	entries[key] = value
	return s.write(entries)
}

func (s *Storage) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	changed := false
	for _, k := range keys {
		if _, ok := entries[k]; ok {
			delete(entries, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if len(entries) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file storage: remove: %w", err)
		}
		return nil
	}
	return s.write(entries)
}

// Watch polls the backing file and emits one event per key that changed
// since the previous poll. Removal of the whole file emits events for
// every previously present key.
func (s *Storage) Watch(ctx context.Context) (<-chan ports.StorageEvent, error) {
	ch := make(chan ports.StorageEvent, 16)

	s.mu.Lock()
	last, err := s.read()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	go func() {
		defer close(ch)
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.mu.Lock()
				current, err := s.read()
				s.mu.Unlock()
				if err != nil {
					continue
				}
				for _, key := range diffKeys(last, current) {
					select {
					case ch <- ports.StorageEvent{Key: key}:
					case <-ctx.Done():
						return
					}
				}
				last = current
			}
		}
	}()
	return ch, nil
}

// read returns the current entries. A missing file is an empty store; a
// corrupt file also reads as empty, matching the "malformed state is no
// session" rule.
func (s *Storage) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file storage: read: %w", err)
	}

	entries := map[string]string{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return map[string]string{}, nil
	}
	return entries, nil
}

// write replaces the document atomically (write to temp file, rename).
func (s *Storage) write(entries map[string]string) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("file storage: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("file storage: rename: %w", err)
	}
	return nil
}

func diffKeys(before, after map[string]string) []string {
	var keys []string
	for k, v := range after {
		if old, ok := before[k]; !ok || old != v {
			keys = append(keys, k)
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			keys = append(keys, k)
		}
	}
	return keys
}
