package floorplan

import (
	"math"

	"github.com/google/uuid"
)

// ItemType classifies a placeable floor-plan entity.
type ItemType string

// Supported item types.
const (
	ItemTable      ItemType = "table"
	ItemChair      ItemType = "chair"
	ItemWall       ItemType = "wall"
	ItemDoor       ItemType = "door"
	ItemWindow     ItemType = "window"
	ItemDecoration ItemType = "decoration"
)

// Shape governs how an item is rendered. It has no effect on hit testing,
// which always uses the item's bounding box.
type Shape string

// Supported shapes.
const (
	ShapeRectangle Shape = "rectangle"
	ShapeCircle    Shape = "circle"
	ShapeSquare    Shape = "square"
)

// Item is a placeable floor-plan entity. Position is the top-left corner in
// canvas space; rotation is degrees in [0, 360) about the item's center.
//
// Capacity and TableNumber are meaningful only when Type is ItemTable; for
// other types they are ignored.
type Item struct {
	ID          string
	Type        ItemType
	X           float64
	Y           float64
	Width       float64
	Height      float64
	Rotation    float64
	Shape       Shape
	Color       string
	Label       string
	Capacity    int
	TableNumber string
}

// CenterX returns the x coordinate of the item's center.
func (it Item) CenterX() float64 { return it.X + it.Width/2 }

// CenterY returns the y coordinate of the item's center.
func (it Item) CenterY() float64 { return it.Y + it.Height/2 }

// Contains reports whether the canvas-space point (x, y) falls inside the
// item's axis-aligned bounding box. Rotation is deliberately ignored: the
// editor hit-tests against the unrotated box.
func (it Item) Contains(x, y float64) bool {
	return x >= it.X && x <= it.X+it.Width && y >= it.Y && y <= it.Y+it.Height
}

// IsTable reports whether the item carries table semantics.
func (it Item) IsTable() bool { return it.Type == ItemTable }

// Point is a canvas-space coordinate pair.
type Point struct {
	X float64
	Y float64
}

// NewID generates a fresh opaque item identifier.
func NewID() string { return uuid.NewString() }

// NormalizeRotation maps an angle in degrees onto [0, 360).
func NormalizeRotation(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	return r
}

// Snap rounds v to the nearest multiple of grid. A non-positive grid leaves
// v unchanged.
func Snap(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

// cloneItems returns a deep copy of an item list. Item contains no reference
// fields, so a slice copy is sufficient.
func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
