package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/MikhailRaia/link-shortener/internal/storage"
)

// Storage implements an in-memory link store for testing and development.
type Storage struct {
	links map[string]string
	mutex sync.RWMutex
}

// NewStorage creates a new in-memory storage instance.
func NewStorage() *Storage {
	return &Storage{
		links: make(map[string]string),
	}
}

// Get returns the content stored under key.
func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	content, found := s.links[key]
	if !found {
		return "", fmt.Errorf("%w: %s", storage.ErrLinkNotFound, key)
	}

	return content, nil
}

// Put stores url under key, replacing any previous value.
func (s *Storage) Put(ctx context.Context, key, url string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.links[key] = url
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.links, key)
	return nil
}

// Ping always succeeds.
func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of stored links.
func (s *Storage) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.links)
}
