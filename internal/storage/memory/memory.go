package memory

import (
	"context"
	"sync"

	"github.com/MikhailRaia/shortlink/internal/storage"
)

// Storage implements storage.Store in memory for testing and development.
type Storage struct {
	records map[string][]byte
	closed  bool
	mutex   sync.RWMutex
}

// NewStorage creates a new in-memory storage instance.
func NewStorage() *Storage {
	return &Storage{
		records: make(map[string][]byte),
	}
}

// Put stores a copy of value under slug, replacing any previous value.
func (s *Storage) Put(_ context.Context, slug string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return storage.ErrClosed
	}

	s.records[slug] = append([]byte(nil), value...)
	return nil
}

// Get returns a copy of the value stored under slug.
func (s *Storage) Get(_ context.Context, slug string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.closed {
		return nil, storage.ErrClosed
	}

	value, found := s.records[slug]
	if !found {
		return nil, storage.ErrNotFound
	}

	return append([]byte(nil), value...), nil
}

func (s *Storage) Ping(_ context.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.closed {
		return storage.ErrClosed
	}
	return nil
}

func (s *Storage) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.closed = true
	return nil
}

// Len returns the number of stored records.
func (s *Storage) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.records)
}
