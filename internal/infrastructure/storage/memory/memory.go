// Package memory provides an in-process CredentialStorage. Several
// session stores sharing one Storage behave like browser tabs sharing
// localStorage: every write fans out a change event to all watchers.
package memory

import (
	"context"
	"sync"

	"github.com/ia-technology/catalog-console/internal/core/domain"
	"github.com/ia-technology/catalog-console/internal/core/ports"
)

const watchBuffer = 64

type Storage struct {
	mu       sync.RWMutex
	data     map[string]string
	watchers map[int]chan ports.StorageEvent
	nextID   int
}

func New() *Storage {
	return &Storage{
		data:     make(map[string]string),
		watchers: make(map[int]chan ports.StorageEvent),
	}
}

func (s *Storage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (s *Storage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
	s.notify(key)
	return nil
}

func (s *Storage) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	removed := keys[:0:0]
	for _, k := range keys {
		if _, ok := s.data[k]; ok {
			delete(s.data, k)
			removed = append(removed, k)
		}
	}
	s.mu.Unlock()
	for _, k := range removed {
		s.notify(k)
	}
	return nil
}

func (s *Storage) Watch(ctx context.Context) (<-chan ports.StorageEvent, error) {
	ch := make(chan ports.StorageEvent, watchBuffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}

func (s *Storage) notify(key string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.watchers {
		select {
		case ch <- ports.StorageEvent{Key: key}:
		default:
			// Watcher is not draining; dropping is better than blocking
			// every writer behind it.
		}
	}
}
