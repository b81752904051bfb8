// Package layout implements the room-scoped persisted representation of a
// floor plan: the { room, positions } document exchanged with the layout
// service and shared read-only with other visualizations (e.g. the occupancy
// heat map).
//
// Serialization is deterministic: positions is a map keyed by item id and
// encoding/json emits map keys in sorted order, so serializing an unchanged
// item list twice produces byte-identical output.
package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/floorplan"
)

// Position is the persisted record for one floor-plan item. Field names
// mirror the wire contract consumed by the heat-map overlay and the
// booking/table-management domain.
type Position struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Rotation    float64 `json:"rotation"`
	Type        string  `json:"type"`
	Color       string  `json:"color"`
	Shape       string  `json:"shape"`
	Label       string  `json:"label,omitempty"`
	Capacity    int     `json:"capacity,omitempty"`
	TableNumber string  `json:"tableNumber,omitempty"`
}

// RoomLayout is the persisted floor plan for a single room. It is created on
// first save and overwritten, never appended, on each subsequent save.
type RoomLayout struct {
	Room      string              `json:"room"`
	Positions map[string]Position `json:"positions"`
}

// Serialize converts an item list into a room-scoped layout document,
// one positions entry per item keyed by id.
func Serialize(room string, items []floorplan.Item) *RoomLayout {
	positions := make(map[string]Position, len(items))
	for _, it := range items {
		positions[it.ID] = Position{
			X:           it.X,
			Y:           it.Y,
			Width:       it.Width,
			Height:      it.Height,
			Rotation:    it.Rotation,
			Type:        string(it.Type),
			Color:       it.Color,
			Shape:       string(it.Shape),
			Label:       it.Label,
			Capacity:    it.Capacity,
			TableNumber: it.TableNumber,
		}
	}
	return &RoomLayout{Room: room, Positions: positions}
}

// Deserialize converts a layout document back into an item list, applying
// defaults for missing or degenerate fields: non-positive extents fall back
// to the template catalog (then to a fixed size), rotation is normalized,
// and negative positions are clamped to the canvas origin.
//
// Items are ordered by id so repeated loads produce the same z-order.
func Deserialize(l *RoomLayout) []floorplan.Item {
	if l == nil || len(l.Positions) == 0 {
		return nil
	}

	ids := make([]string, 0, len(l.Positions))
	for id := range l.Positions {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	items := make([]floorplan.Item, 0, len(ids))
	for _, id := range ids {
		p := l.Positions[id]
		it := floorplan.Item{
			ID:       id,
			Type:     floorplan.ItemType(p.Type),
			Shape:    floorplan.Shape(p.Shape),
			X:        max(0, p.X),
			Y:        max(0, p.Y),
			Width:    p.Width,
			Height:   p.Height,
			Rotation: floorplan.NormalizeRotation(p.Rotation),
			Color:    p.Color,
			Label:    p.Label,
		}
		if it.Type == floorplan.ItemTable {
			it.Capacity = p.Capacity
			it.TableNumber = p.TableNumber
		}
		applyDefaults(&it)
		items = append(items, it)
	}
	return items
}

// applyDefaults fills degenerate geometry and styling from the template
// catalog, falling back to fixed values for pairs outside the catalog.
func applyDefaults(it *floorplan.Item) {
	tpl, ok := floorplan.LookupTemplate(it.Type, it.Shape)
	if it.Width <= 0 {
		if ok {
			it.Width = tpl.Width
		} else {
			it.Width = 40
		}
	}
	if it.Height <= 0 {
		if ok {
			it.Height = tpl.Height
		} else {
			it.Height = 40
		}
	}
	if it.Color == "" {
		if ok {
			it.Color = tpl.Color
		} else {
			it.Color = "#808080"
		}
	}
}

// =============================================================================
// Encoding
// =============================================================================

// Marshal encodes a layout as indented JSON. Output is deterministic for a
// given layout value.
func Marshal(l *RoomLayout) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(l, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a layout as indented JSON to w.
func Write(l *RoomLayout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// Read decodes a layout document from r.
func Read(r io.Reader) (*RoomLayout, error) {
	var l RoomLayout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if l.Positions == nil {
		l.Positions = map[string]Position{}
	}
	return &l, nil
}

// WriteFile writes a layout to a JSON file at path.
func WriteFile(l *RoomLayout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(l, f)
}

// ReadFile reads a layout from a JSON file at path.
func ReadFile(path string) (*RoomLayout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
