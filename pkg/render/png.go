package render

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/floorplan"
)

// Styling for the PNG sink.
const (
	pngBackground      = "#FAFAF7"
	pngGridStroke      = "#E2E2DC"
	pngItemStroke      = "#333333"
	pngSelectionStroke = "#2563EB"
	pngLabelFill       = "#1F2937"
)

// RenderPNG rasterizes the plan. The zoom option acts as the pixel scale:
// one canvas unit maps to zoom pixels.
func RenderPNG(items []floorplan.Item, opts ...Option) ([]byte, error) {
	c := newConfig(items, opts...)

	dc := gg.NewContext(int(math.Ceil(c.width*c.zoom)), int(math.Ceil(c.height*c.zoom)))
	dc.Scale(c.zoom, c.zoom)

	dc.SetHexColor(pngBackground)
	dc.Clear()

	if c.showGrid {
		drawPNGGrid(dc, c)
	}
	for _, it := range items {
		drawPNGItem(dc, it, c.selected(it.ID))
	}

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetHexColor(pngLabelFill)
	for _, it := range items {
		if it.Label != "" {
			dc.DrawStringAnchored(it.Label, it.CenterX(), it.CenterY(), 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawPNGGrid(dc *gg.Context, c config) {
	dc.SetHexColor(pngGridStroke)
	dc.SetLineWidth(1)
	for x := c.gridSize; x < c.width; x += c.gridSize {
		dc.DrawLine(x, 0, x, c.height)
	}
	for y := c.gridSize; y < c.height; y += c.gridSize {
		dc.DrawLine(0, y, c.width, y)
	}
	dc.Stroke()
}

func drawPNGItem(dc *gg.Context, it floorplan.Item, selected bool) {
	dc.Push()
	defer dc.Pop()

	if it.Rotation != 0 {
		dc.RotateAbout(gg.Radians(it.Rotation), it.CenterX(), it.CenterY())
	}

	if it.Shape == floorplan.ShapeCircle {
		dc.DrawEllipse(it.CenterX(), it.CenterY(), it.Width/2, it.Height/2)
	} else {
		dc.DrawRectangle(it.X, it.Y, it.Width, it.Height)
	}

	dc.SetHexColor(it.Color)
	dc.FillPreserve()

	if selected {
		dc.SetHexColor(pngSelectionStroke)
		dc.SetLineWidth(3)
	} else {
		dc.SetHexColor(pngItemStroke)
		dc.SetLineWidth(1)
	}
	dc.Stroke()
}
