package floorplan

import (
	"fmt"
	"slices"
	"strconv"
)

// duplicateOffset is the canvas-space displacement applied to cloned items so
// they do not land exactly on top of their sources.
const duplicateOffset = 20

// DefaultGridSize is the snapping grid used when none is configured.
const DefaultGridSize = 20

// Store is the authoritative in-memory floor plan: the ordered item list
// (slice order is z-order, oldest first) plus the active selection set.
//
// Every mutating operation commits exactly one history entry, with two
// exceptions: MoveItems is commit-free so a drag gesture can call it per
// frame, and selection changes are never part of history.
//
// Store is not safe for concurrent use; an editor session owns it exclusively.
type Store struct {
	gridSize  float64
	items     []Item
	selection map[string]struct{}
	history   *History
	newID     func() string
}

// Option configures a Store.
type Option func(*Store)

// WithGridSize sets the snapping grid size in canvas units.
func WithGridSize(g float64) Option {
	return func(s *Store) {
		if g > 0 {
			s.gridSize = g
		}
	}
}

// WithItems seeds the store with an initial item list (typically the result
// of loading a persisted layout). The initial state becomes the first history
// entry and is not undoable.
func WithItems(items []Item) Option {
	return func(s *Store) { s.items = cloneItems(items) }
}

// WithIDGenerator overrides the item id generator. Used by tests to produce
// deterministic ids.
func WithIDGenerator(f func() string) Option {
	return func(s *Store) {
		if f != nil {
			s.newID = f
		}
	}
}

// NewStore creates an empty store with a default 20-unit grid.
func NewStore(opts ...Option) *Store {
	s := &Store{
		gridSize:  DefaultGridSize,
		selection: make(map[string]struct{}),
		newID:     NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.history = NewHistory(s.items)
	return s
}

// GridSize returns the active snapping grid size.
func (s *Store) GridSize() float64 { return s.gridSize }

// SetGridSize changes the snapping grid for subsequent operations.
// Existing item positions are left untouched.
func (s *Store) SetGridSize(g float64) {
	if g > 0 {
		s.gridSize = g
	}
}

// Items returns a copy of the current item list in z-order.
func (s *Store) Items() []Item { return cloneItems(s.items) }

// Item returns the item with the given id.
func (s *Store) Item(id string) (Item, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return Item{}, false
}

// Len returns the number of items on the plan.
func (s *Store) Len() int { return len(s.items) }

// History exposes the undo/redo stack for inspection (cursor position,
// entry count). Mutation goes through Undo/Redo/Commit on the store.
func (s *Store) History() *History { return s.history }

// =============================================================================
// Item Operations
// =============================================================================

// AddItem creates a new item at the grid-snapped position using the template
// catalog defaults for the (type, shape) pair. Tables are auto-numbered: the
// new table's label and table number derive from the count of existing tables
// plus one.
//
// The new item becomes the sole selection and one history entry is committed.
// An unknown (type, shape) pair is a silent no-op: ok is false, nothing is
// committed and the state is unchanged.
func (s *Store) AddItem(t ItemType, shape Shape, x, y float64) (Item, bool) {
	tpl, ok := LookupTemplate(t, shape)
	if !ok {
		return Item{}, false
	}

	item := Item{
		ID:     s.newID(),
		Type:   t,
		Shape:  shape,
		X:      max(0, Snap(x, s.gridSize)),
		Y:      max(0, Snap(y, s.gridSize)),
		Width:  tpl.Width,
		Height: tpl.Height,
		Color:  tpl.Color,
	}
	if t == ItemTable {
		n := s.tableCount() + 1
		item.Label = fmt.Sprintf("Table %d", n)
		item.TableNumber = strconv.Itoa(n)
		item.Capacity = 4
	}

	s.items = append(s.items, item)
	s.replaceSelection(item.ID)
	s.Commit()
	return item, true
}

// MoveItems displaces every matched item by (dx, dy), snapping the result to
// the grid and clamping it to non-negative coordinates. Unknown ids are
// silently skipped.
//
// MoveItems does not commit history: a drag gesture calls it repeatedly and
// commits once via Commit when the gesture ends. Callers performing a
// one-shot move (e.g. arrow-key nudges) must call Commit themselves.
func (s *Store) MoveItems(ids []string, dx, dy float64) {
	for _, id := range ids {
		i := s.index(id)
		if i < 0 {
			continue
		}
		it := &s.items[i]
		it.X = max(0, Snap(it.X+dx, s.gridSize))
		it.Y = max(0, Snap(it.Y+dy, s.gridSize))
	}
}

// Positions returns the current top-left position of every item, keyed by id.
// Drag gestures capture this at pointer-down so each motion frame can be
// applied against the gesture's starting snapshot instead of compounding.
func (s *Store) Positions() map[string]Point {
	pos := make(map[string]Point, len(s.items))
	for _, it := range s.items {
		pos[it.ID] = Point{X: it.X, Y: it.Y}
	}
	return pos
}

// RestorePositions resets item positions from a snapshot previously taken
// with Positions. Ids absent from the store are ignored. No history commit.
func (s *Store) RestorePositions(pos map[string]Point) {
	for i := range s.items {
		if p, ok := pos[s.items[i].ID]; ok {
			s.items[i].X = p.X
			s.items[i].Y = p.Y
		}
	}
}

// DeleteItems removes the matched items and prunes them from the selection
// atomically. A commit is recorded even when nothing matched, so an empty
// delete is still a valid (no-op) history entry.
func (s *Store) DeleteItems(ids []string) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.items = slices.DeleteFunc(s.items, func(it Item) bool {
		_, gone := drop[it.ID]
		return gone
	})
	for id := range drop {
		delete(s.selection, id)
	}
	s.Commit()
}

// DuplicateItems clones each matched item with a fresh id, offset by
// (+20, +20). The clones are appended in the order of their sources and
// become the new selection. Returns the ids of the clones.
func (s *Store) DuplicateItems(ids []string) []string {
	var clones []Item
	for _, id := range ids {
		i := s.index(id)
		if i < 0 {
			continue
		}
		c := s.items[i]
		c.ID = s.newID()
		c.X += duplicateOffset
		c.Y += duplicateOffset
		clones = append(clones, c)
	}
	if len(clones) == 0 {
		return nil
	}

	newIDs := make([]string, len(clones))
	s.selection = make(map[string]struct{}, len(clones))
	for i, c := range clones {
		s.items = append(s.items, c)
		s.selection[c.ID] = struct{}{}
		newIDs[i] = c.ID
	}
	s.Commit()
	return newIDs
}

// RotateItems adds delta degrees to each matched item's rotation, normalized
// to [0, 360), and commits.
func (s *Store) RotateItems(ids []string, delta float64) {
	touched := false
	for _, id := range ids {
		i := s.index(id)
		if i < 0 {
			continue
		}
		s.items[i].Rotation = NormalizeRotation(s.items[i].Rotation + delta)
		touched = true
	}
	if touched {
		s.Commit()
	}
}

// Patch is a partial item update. Nil fields are left untouched; set fields
// are shallow-merged into each matched item.
type Patch struct {
	X           *float64
	Y           *float64
	Width       *float64
	Height      *float64
	Rotation    *float64
	Shape       *Shape
	Color       *string
	Label       *string
	Capacity    *int
	TableNumber *string
}

// UpdateProperties merges the patch into every matched item and commits.
// Values that would break item invariants are dropped: non-positive extents,
// negative positions, and table attributes on non-table items.
func (s *Store) UpdateProperties(ids []string, p Patch) {
	touched := false
	for _, id := range ids {
		i := s.index(id)
		if i < 0 {
			continue
		}
		applyPatch(&s.items[i], p)
		touched = true
	}
	if touched {
		s.Commit()
	}
}

func applyPatch(it *Item, p Patch) {
	if p.X != nil && *p.X >= 0 {
		it.X = *p.X
	}
	if p.Y != nil && *p.Y >= 0 {
		it.Y = *p.Y
	}
	if p.Width != nil && *p.Width > 0 {
		it.Width = *p.Width
	}
	if p.Height != nil && *p.Height > 0 {
		it.Height = *p.Height
	}
	if p.Rotation != nil {
		it.Rotation = NormalizeRotation(*p.Rotation)
	}
	if p.Shape != nil {
		it.Shape = *p.Shape
	}
	if p.Color != nil {
		it.Color = *p.Color
	}
	if p.Label != nil {
		it.Label = *p.Label
	}
	if it.Type == ItemTable {
		if p.Capacity != nil && *p.Capacity >= 0 {
			it.Capacity = *p.Capacity
		}
		if p.TableNumber != nil {
			it.TableNumber = *p.TableNumber
		}
	}
}

// =============================================================================
// History
// =============================================================================

// Commit records the current item list as a new history entry. It is called
// internally by every committing operation and externally by the interaction
// layer at the end of a drag gesture.
func (s *Store) Commit() { s.history.Commit(s.items) }

// Undo restores the previous snapshot. Stale selection entries referring to
// items absent from the restored snapshot are pruned. Returns false at the
// first entry.
func (s *Store) Undo() bool {
	items, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(items)
	return true
}

// Redo restores the next snapshot, if any.
func (s *Store) Redo() bool {
	items, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(items)
	return true
}

// CanUndo reports whether Undo would change state.
func (s *Store) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would change state.
func (s *Store) CanRedo() bool { return s.history.CanRedo() }

func (s *Store) restore(items []Item) {
	s.items = items
	for id := range s.selection {
		if s.index(id) < 0 {
			delete(s.selection, id)
		}
	}
}

// =============================================================================
// Selection
// =============================================================================

// Select replaces the selection with the single given id.
// Ids not present in the store are ignored, leaving the selection empty.
func (s *Store) Select(id string) {
	s.selection = make(map[string]struct{}, 1)
	if s.index(id) >= 0 {
		s.selection[id] = struct{}{}
	}
}

// ToggleSelect flips the membership of id in the selection (multi-select).
func (s *Store) ToggleSelect(id string) {
	if s.index(id) < 0 {
		return
	}
	if _, ok := s.selection[id]; ok {
		delete(s.selection, id)
	} else {
		s.selection[id] = struct{}{}
	}
}

// ClearSelection empties the selection set.
func (s *Store) ClearSelection() {
	s.selection = make(map[string]struct{})
}

// Selection returns the selected ids, sorted for deterministic iteration.
func (s *Store) Selection() []string {
	out := make([]string, 0, len(s.selection))
	for id := range s.selection {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// IsSelected reports whether id is part of the selection.
func (s *Store) IsSelected(id string) bool {
	_, ok := s.selection[id]
	return ok
}

// =============================================================================
// Internal helpers
// =============================================================================

func (s *Store) replaceSelection(id string) {
	s.selection = map[string]struct{}{id: {}}
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.items, func(it Item) bool { return it.ID == id })
}

func (s *Store) tableCount() int {
	n := 0
	for _, it := range s.items {
		if it.Type == ItemTable {
			n++
		}
	}
	return n
}
