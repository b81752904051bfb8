// Package render draws a floor plan from item-store state. Renderers are pure
// readers: they take an item list plus view state (zoom, grid, selection) and
// produce an artifact, performing no mutation.
//
// Two sinks are provided: SVG (the primary export format, also consumed by
// the web dashboards) and PNG (raster export for print sheets).
package render

import "github.com/elvisburrniku/OrderTable-sub008/pkg/floorplan"

// Default canvas extents when the plan doesn't exceed them.
const (
	defaultWidth  = 800.0
	defaultHeight = 600.0
	canvasMargin  = 40.0
)

// config is the shared view state for all sinks.
type config struct {
	gridSize  float64
	showGrid  bool
	selection map[string]struct{}
	zoom      float64
	width     float64
	height    float64
}

// Option configures a renderer.
type Option func(*config)

// WithGrid enables the grid overlay at the given spacing.
func WithGrid(size float64) Option {
	return func(c *config) {
		if size > 0 {
			c.gridSize = size
			c.showGrid = true
		}
	}
}

// WithSelection marks the given item ids with a selection highlight.
func WithSelection(ids []string) Option {
	return func(c *config) {
		c.selection = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			c.selection[id] = struct{}{}
		}
	}
}

// WithZoom scales the whole surface uniformly.
func WithZoom(z float64) Option {
	return func(c *config) {
		if z > 0 {
			c.zoom = z
		}
	}
}

// WithCanvasSize fixes the canvas extents in canvas units. Without it the
// canvas grows to fit the items (at least 800x600).
func WithCanvasSize(w, h float64) Option {
	return func(c *config) {
		if w > 0 && h > 0 {
			c.width = w
			c.height = h
		}
	}
}

func newConfig(items []floorplan.Item, opts ...Option) config {
	c := config{gridSize: floorplan.DefaultGridSize, zoom: 1.0}
	for _, opt := range opts {
		opt(&c)
	}
	if c.width == 0 || c.height == 0 {
		c.width, c.height = fitCanvas(items)
	}
	return c
}

// fitCanvas sizes the canvas to the plan's extent plus a margin.
func fitCanvas(items []floorplan.Item) (float64, float64) {
	w, h := defaultWidth, defaultHeight
	for _, it := range items {
		if right := it.X + it.Width + canvasMargin; right > w {
			w = right
		}
		if bottom := it.Y + it.Height + canvasMargin; bottom > h {
			h = bottom
		}
	}
	return w, h
}

func (c config) selected(id string) bool {
	_, ok := c.selection[id]
	return ok
}
