package layoutstore

import (
	"context"
	"slices"
	"sync"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/layout"
)

// MemoryStore is an in-memory layout store for development and tests.
// Unlike the editor-side model, the store sits behind an HTTP handler and
// must tolerate concurrent requests, hence the mutex.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string][]byte)}
}

// Get retrieves the layout for a room.
func (s *MemoryStore) Get(ctx context.Context, room string) (*layout.RoomLayout, error) {
	s.mu.RLock()
	data, ok := s.layouts[room]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decode(data)
}

// Put stores a layout, replacing any previous one for the room.
func (s *MemoryStore) Put(ctx context.Context, l *layout.RoomLayout) error {
	data, err := layout.Marshal(l)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.layouts[l.Room] = data
	s.mu.Unlock()
	return nil
}

// Delete removes the layout for a room.
func (s *MemoryStore) Delete(ctx context.Context, room string) error {
	s.mu.Lock()
	delete(s.layouts, room)
	s.mu.Unlock()
	return nil
}

// List returns the stored rooms, sorted.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	rooms := make([]string, 0, len(s.layouts))
	for room := range s.layouts {
		rooms = append(rooms, room)
	}
	s.mu.RUnlock()
	slices.Sort(rooms)
	return rooms, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
