// Package floorplan implements the in-memory data model for the restaurant
// floor-plan editor: placeable items, the authoritative item store with its
// selection set, the undo/redo history, and the template catalog of default
// geometry per item type and shape.
//
// # Architecture
//
// The Store is the single mutation point for a floor plan. Every editing
// operation (add, move, delete, duplicate, rotate, property update) goes
// through it, and each operation commits exactly one history entry - except
// MoveItems, which is applied repeatedly during a drag gesture and committed
// once by the caller when the gesture ends.
//
// The History holds full snapshots of the item list with a cursor. The store's
// current content always equals the snapshot under the cursor; committing
// after an undo discards the redo tail.
//
// A Store is owned by exactly one editor session and is not safe for
// concurrent use without external synchronization.
//
// # Example
//
//	s := floorplan.NewStore(floorplan.WithGridSize(20))
//	item, _ := s.AddItem(floorplan.ItemTable, floorplan.ShapeRectangle, 103, 207)
//	// item.X == 100, item.Y == 200, item.Label == "Table 1"
//	s.Undo() // plan is empty again
package floorplan
