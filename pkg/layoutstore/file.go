package layoutstore

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/errors"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/layout"
)

// layoutExt is the file extension for stored layouts.
const layoutExt = ".json"

// FileStore keeps one JSON file per room in a directory. Suited to CLI usage
// and single-host deployments.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store rooted at dir.
// The directory is created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Get retrieves the layout for a room.
func (s *FileStore) Get(ctx context.Context, room string) (*layout.RoomLayout, error) {
	if err := errors.ValidateRoom(room); err != nil {
		return nil, err
	}
	l, err := layout.ReadFile(s.path(room))
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Put stores a layout, replacing any previous file for the room.
func (s *FileStore) Put(ctx context.Context, l *layout.RoomLayout) error {
	if err := errors.ValidateRoom(l.Room); err != nil {
		return err
	}
	return layout.WriteFile(l, s.path(l.Room))
}

// Delete removes the layout file for a room.
func (s *FileStore) Delete(ctx context.Context, room string) error {
	if err := errors.ValidateRoom(room); err != nil {
		return err
	}
	err := os.Remove(s.path(room))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// List returns rooms with a stored layout, sorted.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var rooms []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, layoutExt) {
			continue
		}
		rooms = append(rooms, strings.TrimSuffix(name, layoutExt))
	}
	slices.Sort(rooms)
	return rooms, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(room string) string {
	return filepath.Join(s.dir, room+layoutExt)
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
