package floorplan

// History is a linear undo/redo stack of committed item-list snapshots.
//
// It always contains at least one entry (the initial state) and a cursor
// pointing at the entry that matches the store's current content. Committing
// while the cursor is not at the tail discards everything after the cursor,
// so a fresh edit after an undo makes the discarded future unreachable.
//
// Snapshots are full copies. The item lists involved are small (a restaurant
// floor holds tens of items), so the simplicity of full snapshots wins over
// diff records.
type History struct {
	entries [][]Item
	cursor  int
}

// NewHistory creates a history seeded with the given initial state.
func NewHistory(initial []Item) *History {
	return &History{entries: [][]Item{cloneItems(initial)}}
}

// Commit records a new snapshot after the cursor and advances the cursor to
// it. Any redo entries beyond the cursor are discarded.
func (h *History) Commit(items []Item) {
	h.entries = append(h.entries[:h.cursor+1], cloneItems(items))
	h.cursor = len(h.entries) - 1
}

// Undo moves the cursor one entry back and returns that snapshot.
// It returns ok=false (and no state change) when already at the first entry.
func (h *History) Undo() ([]Item, bool) {
	if h.cursor == 0 {
		return nil, false
	}
	h.cursor--
	return cloneItems(h.entries[h.cursor]), true
}

// Redo moves the cursor one entry forward and returns that snapshot.
// It returns ok=false (and no state change) when already at the tail.
func (h *History) Redo() ([]Item, bool) {
	if h.cursor >= len(h.entries)-1 {
		return nil, false
	}
	h.cursor++
	return cloneItems(h.entries[h.cursor]), true
}

// Current returns a copy of the snapshot under the cursor.
func (h *History) Current() []Item { return cloneItems(h.entries[h.cursor]) }

// CanUndo reports whether an Undo would change state.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether a Redo would change state.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Len returns the number of committed snapshots, including the initial one.
func (h *History) Len() int { return len(h.entries) }

// Cursor returns the index of the current snapshot.
func (h *History) Cursor() int { return h.cursor }
