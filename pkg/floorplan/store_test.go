package floorplan

import (
	"fmt"
	"slices"
	"testing"
)

// testStore creates a store with deterministic ids: item-1, item-2, ...
func testStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	n := 0
	opts = append([]Option{WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	})}, opts...)
	return NewStore(opts...)
}

func TestAddItemSnapsAndNumbersTables(t *testing.T) {
	s := testStore(t)

	it, ok := s.AddItem(ItemTable, ShapeRectangle, 103, 207)
	if !ok {
		t.Fatal("AddItem failed for a catalog template")
	}

	if it.X != 100 || it.Y != 200 {
		t.Errorf("position = (%v, %v), want snapped (100, 200)", it.X, it.Y)
	}
	if it.Width != 120 || it.Height != 80 {
		t.Errorf("size = %vx%v, want template default 120x80", it.Width, it.Height)
	}
	if it.Color != "#8B4513" {
		t.Errorf("color = %q, want template default #8B4513", it.Color)
	}
	if it.Label != "Table 1" || it.TableNumber != "1" {
		t.Errorf("label/number = %q/%q, want Table 1/1", it.Label, it.TableNumber)
	}
	if it.Capacity != 4 {
		t.Errorf("capacity = %d, want 4", it.Capacity)
	}
	if got := s.Selection(); !slices.Equal(got, []string{it.ID}) {
		t.Errorf("selection = %v, want sole new item", got)
	}

	second, _ := s.AddItem(ItemTable, ShapeCircle, 0, 0)
	if second.Label != "Table 2" || second.TableNumber != "2" {
		t.Errorf("second table label/number = %q/%q, want Table 2/2", second.Label, second.TableNumber)
	}
}

func TestAddItemClampsNegativePositions(t *testing.T) {
	s := testStore(t)

	it, _ := s.AddItem(ItemChair, ShapeRectangle, -50, -3)
	if it.X != 0 || it.Y != 0 {
		t.Errorf("position = (%v, %v), want clamped (0, 0)", it.X, it.Y)
	}
}

func TestAddItemUnknownTemplateIsNoOp(t *testing.T) {
	s := testStore(t)
	s.AddItem(ItemTable, ShapeRectangle, 0, 0)
	entries := s.History().Len()

	_, ok := s.AddItem(ItemChair, ShapeCircle, 100, 100)
	if ok {
		t.Fatal("AddItem succeeded for a pair absent from the catalog")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (unchanged)", s.Len())
	}
	if s.History().Len() != entries {
		t.Error("unknown template committed a history entry")
	}
}

func TestAddItemNonTableHasNoTableAttributes(t *testing.T) {
	s := testStore(t)

	it, _ := s.AddItem(ItemWall, ShapeRectangle, 40, 40)
	if it.Label != "" || it.TableNumber != "" || it.Capacity != 0 {
		t.Errorf("wall carries table attributes: %+v", it)
	}
}

func TestMoveItemsSnapsWithoutCommitting(t *testing.T) {
	s := testStore(t)
	it, _ := s.AddItem(ItemTable, ShapeRectangle, 100, 200)
	entries := s.History().Len()

	s.MoveItems([]string{it.ID}, 15, 15)

	moved, _ := s.Item(it.ID)
	if moved.X != 120 || moved.Y != 220 {
		t.Errorf("position = (%v, %v), want snapped (120, 220)", moved.X, moved.Y)
	}
	if s.History().Len() != entries {
		t.Error("MoveItems committed a history entry")
	}
}

func TestMoveItemsClampsToOrigin(t *testing.T) {
	s := testStore(t)
	it, _ := s.AddItem(ItemTable, ShapeRectangle, 20, 20)

	s.MoveItems([]string{it.ID}, -500, -500)

	moved, _ := s.Item(it.ID)
	if moved.X != 0 || moved.Y != 0 {
		t.Errorf("position = (%v, %v), want clamped (0, 0)", moved.X, moved.Y)
	}
}

func TestMoveItemsSkipsUnknownIDs(t *testing.T) {
	s := testStore(t)
	it, _ := s.AddItem(ItemTable, ShapeRectangle, 100, 100)

	s.MoveItems([]string{"ghost", it.ID}, 20, 0)

	moved, _ := s.Item(it.ID)
	if moved.X != 120 {
		t.Errorf("X = %v, want 120", moved.X)
	}
}

func TestPositionsRestoreRoundTrip(t *testing.T) {
	s := testStore(t)
	it, _ := s.AddItem(ItemTable, ShapeRectangle, 100, 200)

	snapshot := s.Positions()
	s.MoveItems([]string{it.ID}, 200, 200)
	s.RestorePositions(snapshot)

	restored, _ := s.Item(it.ID)
	if restored.X != 100 || restored.Y != 200 {
		t.Errorf("position = (%v, %v), want restored (100, 200)", restored.X, restored.Y)
	}
}

func TestDeleteItemsPrunesSelectionAndCommits(t *testing.T) {
	s := testStore(t)
	a, _ := s.AddItem(ItemTable, ShapeRectangle, 0, 0)
	b, _ := s.AddItem(ItemChair, ShapeRectangle, 200, 200)
	s.Select(a.ID)
	s.ToggleSelect(b.ID)

	s.DeleteItems([]string{a.ID})

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.IsSelected(a.ID) {
		t.Error("deleted item still selected")
	}
	if !s.IsSelected(b.ID) {
		t.Error("surviving item lost its selection")
	}
}

func TestDeleteItemsAlwaysCommits(t *testing.T) {
	s := testStore(t)
	s.AddItem(ItemTable, ShapeRectangle, 0, 0)
	entries := s.History().Len()

	s.DeleteItems(nil)

	if s.History().Len() != entries+1 {
		t.Errorf("History().Len() = %d, want %d (empty delete still commits)",
			s.History().Len(), entries+1)
	}
}

func TestDeleteOnlyItemLeavesEmptyPlan(t *testing.T) {
	s := testStore(t)
	it, _ := s.AddItem(ItemTable, ShapeRectangle, 100, 100)

	s.DeleteItems([]string{it.ID})

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if !s.CanUndo() {
		t.Error("delete of the only item should be undoable")
	}
	s.Undo()
	if s.Len() != 1 {
		t.Errorf("after undo Len() = %d, want 1", s.Len())
	}
}

func TestDuplicateItems(t *testing.T) {
	s := testStore(t)
	a, _ := s.AddItem(ItemTable, ShapeRectangle, 100, 200)

	ids := s.DuplicateItems([]string{a.ID})
	if len(ids) != 1 {
		t.Fatalf("DuplicateItems returned %d ids, want 1", len(ids))
	}

	clone, ok := s.Item(ids[0])
	if !ok {
		t.Fatal("clone not found in store")
	}
	if clone.ID == a.ID {
		t.Error("clone shares the source id")
	}
	if clone.X != a.X+20 || clone.Y != a.Y+20 {
		t.Errorf("clone at (%v, %v), want (+20, +20) from (%v, %v)", clone.X, clone.Y, a.X, a.Y)
	}
	if clone.Label != a.Label {
		t.Errorf("clone label = %q, want %q", clone.Label, a.Label)
	}
	if got := s.Selection(); !slices.Equal(got, ids) {
		t.Errorf("selection = %v, want the clones %v", got, ids)
	}
}

func TestDuplicateItemsEmptyIsNoOp(t *testing.T) {
	s := testStore(t)
	s.AddItem(ItemTable, ShapeRectangle, 0, 0)
	entries := s.History().Len()

	if ids := s.DuplicateItems(nil); ids != nil {
		t.Errorf("DuplicateItems(nil) = %v, want nil", ids)
	}
	if s.History().Len() != entries {
		t.Error("empty duplicate committed a history entry")
	}
}

func TestRotateItemsWrapsAround(t *testing.T) {
	s := testStore(t)
	it, _ := s.AddItem(ItemTable, ShapeRectangle, 0, 0)

	for range 4 {
		s.RotateItems([]string{it.ID}, 90)
	}

	rotated, _ := s.Item(it.ID)
	if rotated.Rotation != 0 {
		t.Errorf("rotation after 4x90 = %v, want 0", rotated.Rotation)
	}
}

func TestRotateItemsUnknownOnlyDoesNotCommit(t *testing.T) {
	s := testStore(t)
	s.AddItem(ItemTable, ShapeRectangle, 0, 0)
	entries := s.History().Len()

	s.RotateItems([]string{"ghost"}, 90)

	if s.History().Len() != entries {
		t.Error("rotate with no matches committed a history entry")
	}
}

func TestUpdateProperties(t *testing.T) {
	width := 200.0
	badWidth := -10.0
	capacity := 8
	label := "Window Booth"

	tests := []struct {
		name  string
		patch Patch
		check func(t *testing.T, it Item)
	}{
		{
			name:  "valid width applies",
			patch: Patch{Width: &width},
			check: func(t *testing.T, it Item) {
				if it.Width != 200 {
					t.Errorf("Width = %v, want 200", it.Width)
				}
			},
		},
		{
			name:  "non-positive width dropped",
			patch: Patch{Width: &badWidth},
			check: func(t *testing.T, it Item) {
				if it.Width != 120 {
					t.Errorf("Width = %v, want untouched 120", it.Width)
				}
			},
		},
		{
			name:  "label and capacity apply to tables",
			patch: Patch{Label: &label, Capacity: &capacity},
			check: func(t *testing.T, it Item) {
				if it.Label != "Window Booth" || it.Capacity != 8 {
					t.Errorf("label/capacity = %q/%d, want Window Booth/8", it.Label, it.Capacity)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStore(t)
			it, _ := s.AddItem(ItemTable, ShapeRectangle, 0, 0)
			s.UpdateProperties([]string{it.ID}, tt.patch)
			updated, _ := s.Item(it.ID)
			tt.check(t, updated)
		})
	}
}

func TestUpdatePropertiesTableAttributesIgnoredOnChairs(t *testing.T) {
	s := testStore(t)
	it, _ := s.AddItem(ItemChair, ShapeRectangle, 0, 0)

	capacity := 6
	number := "9"
	s.UpdateProperties([]string{it.ID}, Patch{Capacity: &capacity, TableNumber: &number})

	updated, _ := s.Item(it.ID)
	if updated.Capacity != 0 || updated.TableNumber != "" {
		t.Errorf("chair gained table attributes: %+v", updated)
	}
}

func TestUndoRedoMove(t *testing.T) {
	s := testStore(t)
	it, _ := s.AddItem(ItemTable, ShapeRectangle, 100, 200)

	s.MoveItems([]string{it.ID}, 20, 20)
	s.Commit()

	if !s.Undo() {
		t.Fatal("Undo() failed")
	}
	back, _ := s.Item(it.ID)
	if back.X != 100 || back.Y != 200 {
		t.Errorf("after undo position = (%v, %v), want (100, 200)", back.X, back.Y)
	}

	if !s.Redo() {
		t.Fatal("Redo() failed")
	}
	fwd, _ := s.Item(it.ID)
	if fwd.X != 120 || fwd.Y != 220 {
		t.Errorf("after redo position = (%v, %v), want (120, 220)", fwd.X, fwd.Y)
	}
}

func TestUndoPrunesStaleSelection(t *testing.T) {
	s := testStore(t)
	s.AddItem(ItemTable, ShapeRectangle, 0, 0)
	b, _ := s.AddItem(ItemChair, ShapeRectangle, 200, 200)
	s.Select(b.ID)

	// Undo removes b from the plan; the selection must not keep its id.
	if !s.Undo() {
		t.Fatal("Undo() failed")
	}
	if s.IsSelected(b.ID) {
		t.Error("selection kept an id absent from the restored snapshot")
	}
}

func TestCommitAfterUndoDiscardsRedo(t *testing.T) {
	s := testStore(t)
	s.AddItem(ItemTable, ShapeRectangle, 0, 0)
	s.AddItem(ItemChair, ShapeRectangle, 200, 200)

	s.Undo()
	s.AddItem(ItemWall, ShapeRectangle, 400, 400)

	if s.CanRedo() {
		t.Error("CanRedo() = true after a fresh commit")
	}
}

func TestSelection(t *testing.T) {
	s := testStore(t)
	a, _ := s.AddItem(ItemTable, ShapeRectangle, 0, 0)
	b, _ := s.AddItem(ItemChair, ShapeRectangle, 200, 200)

	s.Select(a.ID)
	s.ToggleSelect(b.ID)
	want := []string{a.ID, b.ID}
	slices.Sort(want)
	if got := s.Selection(); !slices.Equal(got, want) {
		t.Errorf("Selection() = %v, want %v", got, want)
	}

	s.ToggleSelect(b.ID)
	if s.IsSelected(b.ID) {
		t.Error("ToggleSelect did not deselect")
	}

	s.Select("ghost")
	if len(s.Selection()) != 0 {
		t.Error("selecting an unknown id left a non-empty selection")
	}

	s.Select(a.ID)
	s.ClearSelection()
	if len(s.Selection()) != 0 {
		t.Error("ClearSelection left a non-empty selection")
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	s := testStore(t)
	it, _ := s.AddItem(ItemTable, ShapeRectangle, 100, 100)

	items := s.Items()
	items[0].X = 999

	stored, _ := s.Item(it.ID)
	if stored.X != 100 {
		t.Error("mutating Items() result leaked into the store")
	}
}

func TestWithItemsSeedsInitialHistory(t *testing.T) {
	seed := []Item{{ID: "a", Type: ItemTable, X: 100, Y: 100, Width: 120, Height: 80}}
	s := NewStore(WithItems(seed))

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.CanUndo() {
		t.Error("seeded initial state must not be undoable")
	}
}
