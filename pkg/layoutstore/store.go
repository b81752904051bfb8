// Package layoutstore provides storage backends for room-scoped floor-plan
// layouts, with implementations for different deployments:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for single-host setups
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage where layouts live next to booking data
//
// All backends implement the same Store interface. Put is an upsert: the
// layout for a room is created on first save and overwritten on subsequent
// saves. The editor is the sole writer; other subsystems (the occupancy heat
// map) only read.
package layoutstore

import (
	"bytes"
	"context"
	"errors"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/layout"
)

// ErrNotFound is returned by Get when no layout exists for the room.
var ErrNotFound = errors.New("layout not found")

// Store is the interface for layout storage backends.
type Store interface {
	// Get retrieves the layout for a room.
	// Returns ErrNotFound when the room has no stored layout.
	Get(ctx context.Context, room string) (*layout.RoomLayout, error)

	// Put stores a layout, replacing any previous layout for the same room.
	Put(ctx context.Context, l *layout.RoomLayout) error

	// Delete removes the layout for a room. Deleting a missing room is not
	// an error.
	Delete(ctx context.Context, room string) error

	// List returns the rooms that have a stored layout, sorted.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// decode unmarshals a stored layout document. Backends store the canonical
// JSON encoding produced by layout.Marshal.
func decode(data []byte) (*layout.RoomLayout, error) {
	return layout.Read(bytes.NewReader(data))
}
