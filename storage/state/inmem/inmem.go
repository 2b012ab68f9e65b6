package inmemstate

import (
	"sync"

	"github.com/everyedu/portal/storage/state"
)

// Storage keeps client state in memory only. Used in tests and as the
// degraded fallback when durable storage is unavailable.
type Storage struct {
	mu     sync.Mutex
	values map[string]string
}

var _ state.Storage = (*Storage)(nil)

func New() *Storage {
	return &Storage{values: make(map[string]string)}
}

func (s *Storage) ReadAll() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}

func (s *Storage) WriteAll(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string, len(values))
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	return nil
}
