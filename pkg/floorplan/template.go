package floorplan

// Template holds the default geometry and styling applied when a new item of
// a given (type, shape) pair is created. The catalog below is the only source
// of item defaults; AddItem is its only consumer.
type Template struct {
	Width  float64
	Height float64
	Color  string
}

// TemplateKey identifies one entry of the template catalog.
type TemplateKey struct {
	Type  ItemType
	Shape Shape
}

// templates is the static (type, shape) -> defaults table. Unknown pairs are
// rejected by AddItem as a silent no-op.
var templates = map[TemplateKey]Template{
	{ItemTable, ShapeRectangle}:      {Width: 120, Height: 80, Color: "#8B4513"},
	{ItemTable, ShapeCircle}:         {Width: 100, Height: 100, Color: "#8B4513"},
	{ItemTable, ShapeSquare}:         {Width: 80, Height: 80, Color: "#8B4513"},
	{ItemChair, ShapeRectangle}:      {Width: 40, Height: 40, Color: "#654321"},
	{ItemWall, ShapeRectangle}:       {Width: 200, Height: 20, Color: "#808080"},
	{ItemDoor, ShapeRectangle}:       {Width: 80, Height: 20, Color: "#4169E1"},
	{ItemWindow, ShapeRectangle}:     {Width: 100, Height: 20, Color: "#87CEEB"},
	{ItemDecoration, ShapeRectangle}: {Width: 60, Height: 60, Color: "#228B22"},
	{ItemDecoration, ShapeCircle}:    {Width: 60, Height: 60, Color: "#228B22"},
}

// catalogOrder fixes the presentation order of the palette. It must list
// every key present in templates.
var catalogOrder = []TemplateKey{
	{ItemTable, ShapeRectangle},
	{ItemTable, ShapeCircle},
	{ItemTable, ShapeSquare},
	{ItemChair, ShapeRectangle},
	{ItemWall, ShapeRectangle},
	{ItemDoor, ShapeRectangle},
	{ItemWindow, ShapeRectangle},
	{ItemDecoration, ShapeRectangle},
	{ItemDecoration, ShapeCircle},
}

// LookupTemplate returns the defaults for a (type, shape) pair.
// The second return value reports whether the pair exists in the catalog.
func LookupTemplate(t ItemType, s Shape) (Template, bool) {
	tpl, ok := templates[TemplateKey{Type: t, Shape: s}]
	return tpl, ok
}

// Catalog returns the template keys in presentation order. The returned slice
// is a copy and may be modified by the caller.
func Catalog() []TemplateKey {
	out := make([]TemplateKey, len(catalogOrder))
	copy(out, catalogOrder)
	return out
}
