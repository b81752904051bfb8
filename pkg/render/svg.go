package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/floorplan"
)

// Styling for the SVG sink.
const (
	svgBackground      = "#FAFAF7"
	svgGridStroke      = "#E2E2DC"
	svgItemStroke      = "#00000033"
	svgSelectionStroke = "#2563EB"
	svgLabelFill       = "#1F2937"
	svgLabelFontSize   = 12.0
)

// RenderSVG draws the plan as an SVG document. Draw order: grid (when
// enabled), each item as its shape primitive rotated about its own center,
// then centered labels on top. Selected items get a distinct outline.
func RenderSVG(items []floorplan.Item, opts ...Option) []byte {
	c := newConfig(items, opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		c.width, c.height, c.width*c.zoom, c.height*c.zoom)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		c.width, c.height, svgBackground)

	if c.showGrid {
		renderSVGGrid(&buf, c)
	}
	for _, it := range items {
		renderSVGItem(&buf, it, c.selected(it.ID))
	}
	for _, it := range items {
		if it.Label != "" {
			renderSVGLabel(&buf, it)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSVGGrid(buf *bytes.Buffer, c config) {
	buf.WriteString(fmt.Sprintf(`  <g stroke="%s" stroke-width="1">`+"\n", svgGridStroke))
	for x := c.gridSize; x < c.width; x += c.gridSize {
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="0" x2="%.1f" y2="%.1f"/>`+"\n", x, x, c.height)
	}
	for y := c.gridSize; y < c.height; y += c.gridSize {
		fmt.Fprintf(buf, `    <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", y, c.width, y)
	}
	buf.WriteString("  </g>\n")
}

func renderSVGItem(buf *bytes.Buffer, it floorplan.Item, selected bool) {
	stroke, strokeWidth := svgItemStroke, 1.0
	if selected {
		stroke, strokeWidth = svgSelectionStroke, 3.0
	}

	transform := ""
	if it.Rotation != 0 {
		transform = fmt.Sprintf(` transform="rotate(%.1f %.1f %.1f)"`,
			it.Rotation, it.CenterX(), it.CenterY())
	}

	switch it.Shape {
	case floorplan.ShapeCircle:
		fmt.Fprintf(buf,
			`  <ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
			it.CenterX(), it.CenterY(), it.Width/2, it.Height/2,
			escapeAttr(it.Color), stroke, strokeWidth, transform)
	default: // rectangle and square share the rect primitive
		fmt.Fprintf(buf,
			`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
			it.X, it.Y, it.Width, it.Height,
			escapeAttr(it.Color), stroke, strokeWidth, transform)
	}
}

func renderSVGLabel(buf *bytes.Buffer, it floorplan.Item) {
	fmt.Fprintf(buf,
		`  <text x="%.1f" y="%.1f" font-size="%.0f" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		it.CenterX(), it.CenterY(), svgLabelFontSize, svgLabelFill, escapeText(it.Label))
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeAttr(s string) string { return attrEscaper.Replace(s) }

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeText(s string) string { return textEscaper.Replace(s) }
