// Package editor implements the interaction layer of the floor-plan editor:
// a headless session that owns the item store and its history, translates
// pointer and keyboard input into store mutations via an explicit
// Idle/Dragging gesture state machine, and orchestrates save/load against a
// persistence backend.
//
// The session is UI-agnostic. The terminal UI feeds it pointer coordinates
// and key actions; unit tests drive it directly. All pointer input arrives in
// screen coordinates and is converted to canvas space by dividing by the
// current zoom factor.
//
// A session is single-threaded by construction: exactly one gesture or
// keyboard action is in flight at a time. The only asynchronous boundary is
// the save/load round-trip, guarded so at most one save is pending.
package editor

import (
	"context"
	stderrors "errors"

	"github.com/charmbracelet/log"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/errors"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/floorplan"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/layout"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/layoutstore"
)

// Zoom limits for the canvas view.
const (
	MinZoom  = 0.25
	MaxZoom  = 4.0
	zoomStep = 1.25
)

// Tool selects the pointer behavior on the canvas.
type Tool int

const (
	// ToolSelect picks, multi-selects, and drags items.
	ToolSelect Tool = iota
	// ToolAdd places a new item of the active palette template on click.
	ToolAdd
)

// String returns the toolbar label for the tool.
func (t Tool) String() string {
	if t == ToolAdd {
		return "add"
	}
	return "select"
}

// gestureState is the pointer state machine.
type gestureState int

const (
	stateIdle gestureState = iota
	stateDragging
)

// ErrSaveInFlight is returned by BeginSave while a previous save is pending.
// The caller keeps local state and retries once the pending save resolves.
var ErrSaveInFlight = errors.New(errors.ErrCodeSaveInFlight, "a save is already in progress")

// Persistence is the session's boundary to the layout backend. It is
// implemented by api.Client for networked editing and by a thin adapter over
// layoutstore.Store for offline editing.
type Persistence interface {
	Load(ctx context.Context, room string) (*layout.RoomLayout, error)
	Save(ctx context.Context, l *layout.RoomLayout) error
}

// Session is one editing session for one room. It owns the item store and
// history exclusively; no other subsystem mutates them.
type Session struct {
	room    string
	store   *floorplan.Store
	persist Persistence
	logger  *log.Logger

	tool       Tool
	palette    []floorplan.TemplateKey
	paletteIdx int

	zoom     float64
	showGrid bool

	state      gestureState
	pressX     float64 // canvas-space pointer-down position
	pressY     float64
	dragIDs    []string
	dragOrigin map[string]floorplan.Point
	dragMoved  bool

	saving bool
	dirty  bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithGridSize sets the snapping grid for the session's store.
func WithGridSize(g float64) SessionOption {
	return func(s *Session) { s.store.SetGridSize(g) }
}

// WithLogger attaches a logger. Defaults to log.Default().
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPersistence attaches the save/load backend. A session without one
// edits purely in memory and rejects Save.
func WithPersistence(p Persistence) SessionOption {
	return func(s *Session) { s.persist = p }
}

// NewSession creates an editing session for the given room with an empty
// plan. Call Load to populate it from the persistence backend.
func NewSession(room string, opts ...SessionOption) *Session {
	s := &Session{
		room:     room,
		store:    floorplan.NewStore(),
		logger:   log.Default(),
		palette:  floorplan.Catalog(),
		zoom:     1.0,
		showGrid: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// =============================================================================
// Accessors
// =============================================================================

// Room returns the room identifier this session edits.
func (s *Session) Room() string { return s.room }

// Store returns the session's item store. Renderers read it; mutation from
// outside the session is not allowed.
func (s *Session) Store() *floorplan.Store { return s.store }

// Zoom returns the current zoom factor.
func (s *Session) Zoom() float64 { return s.zoom }

// ShowGrid reports whether the grid overlay is enabled.
func (s *Session) ShowGrid() bool { return s.showGrid }

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// SetTool switches the active tool. Switching mid-drag cancels nothing: the
// tool takes effect on the next pointer-down.
func (s *Session) SetTool(t Tool) { s.tool = t }

// Dragging reports whether a drag gesture is in progress.
func (s *Session) Dragging() bool { return s.state == stateDragging }

// Dirty reports whether there are local edits not yet saved.
func (s *Session) Dirty() bool { return s.dirty }

// Saving reports whether a save request is in flight.
func (s *Session) Saving() bool { return s.saving }

// CurrentTemplate returns the palette entry the add tool will place.
func (s *Session) CurrentTemplate() floorplan.TemplateKey {
	return s.palette[s.paletteIdx]
}

// NextTemplate advances the add-tool palette, wrapping around.
func (s *Session) NextTemplate() {
	s.paletteIdx = (s.paletteIdx + 1) % len(s.palette)
}

// PrevTemplate steps the add-tool palette backwards, wrapping around.
func (s *Session) PrevTemplate() {
	s.paletteIdx = (s.paletteIdx - 1 + len(s.palette)) % len(s.palette)
}

// =============================================================================
// View state
// =============================================================================

// ZoomIn scales the view up one step, capped at MaxZoom.
func (s *Session) ZoomIn() { s.zoom = min(MaxZoom, s.zoom*zoomStep) }

// ZoomOut scales the view down one step, capped at MinZoom.
func (s *Session) ZoomOut() { s.zoom = max(MinZoom, s.zoom/zoomStep) }

// ToggleGrid flips the grid overlay.
func (s *Session) ToggleGrid() { s.showGrid = !s.showGrid }

// CanvasPoint converts screen coordinates to canvas space.
func (s *Session) CanvasPoint(sx, sy float64) (float64, float64) {
	return sx / s.zoom, sy / s.zoom
}

// =============================================================================
// Pointer gestures
// =============================================================================

// PointerDown handles a pointer press at screen coordinates (sx, sy).
// The modifier flag is the multi-select key (ctrl/cmd).
//
// With the add tool active, a press on the canvas places a new item at the
// canvas-space position and the machine stays Idle. With the select tool:
// a press on an item without modifier selects it (replacing the selection
// unless it was already selected) and enters Dragging; with modifier it
// toggles membership and stays Idle; a press on empty canvas clears the
// selection.
func (s *Session) PointerDown(sx, sy float64, modifier bool) {
	cx, cy := s.CanvasPoint(sx, sy)

	if s.tool == ToolAdd {
		key := s.CurrentTemplate()
		if _, ok := s.store.AddItem(key.Type, key.Shape, cx, cy); ok {
			s.dirty = true
		} else {
			s.logger.Debug("unknown template ignored", "type", key.Type, "shape", key.Shape)
		}
		return
	}

	hit, ok := s.hitTest(cx, cy)
	if !ok {
		s.store.ClearSelection()
		return
	}

	if modifier {
		s.store.ToggleSelect(hit.ID)
		return
	}

	if !s.store.IsSelected(hit.ID) {
		s.store.Select(hit.ID)
	}
	s.beginDrag(cx, cy)
}

// PointerMove handles pointer motion. Only meaningful while Dragging: the
// selection is displaced by the cumulative delta since pointer-down, applied
// against the gesture's starting positions so per-frame snapping never
// compounds.
func (s *Session) PointerMove(sx, sy float64) {
	if s.state != stateDragging {
		return
	}
	cx, cy := s.CanvasPoint(sx, sy)
	dx, dy := cx-s.pressX, cy-s.pressY
	if dx == 0 && dy == 0 {
		return
	}

	s.store.RestorePositions(s.dragOrigin)
	s.store.MoveItems(s.dragIDs, dx, dy)
	s.dragMoved = true
}

// PointerUp ends the gesture. A drag that actually displaced items commits
// exactly one history entry covering the net movement; a press-release with
// no motion commits nothing.
func (s *Session) PointerUp() {
	if s.state != stateDragging {
		return
	}
	if s.dragMoved {
		s.store.Commit()
		s.dirty = true
	}
	s.endDrag()
}

func (s *Session) beginDrag(cx, cy float64) {
	s.state = stateDragging
	s.pressX, s.pressY = cx, cy
	s.dragIDs = s.store.Selection()
	s.dragOrigin = s.store.Positions()
	s.dragMoved = false
}

func (s *Session) endDrag() {
	s.state = stateIdle
	s.dragIDs = nil
	s.dragOrigin = nil
	s.dragMoved = false
}

// hitTest returns the topmost item whose bounding box contains the
// canvas-space point.
func (s *Session) hitTest(cx, cy float64) (floorplan.Item, bool) {
	items := s.store.Items()
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Contains(cx, cy) {
			return items[i], true
		}
	}
	return floorplan.Item{}, false
}

// =============================================================================
// Keyboard operations
// =============================================================================

// Undo steps the plan back one committed state.
func (s *Session) Undo() {
	if s.store.Undo() {
		s.dirty = true
	}
}

// Redo steps the plan forward one committed state.
func (s *Session) Redo() {
	if s.store.Redo() {
		s.dirty = true
	}
}

// DeleteSelection removes all selected items.
func (s *Session) DeleteSelection() {
	s.store.DeleteItems(s.store.Selection())
	s.dirty = true
}

// DuplicateSelection clones the selected items; the clones become the new
// selection.
func (s *Session) DuplicateSelection() {
	if ids := s.store.DuplicateItems(s.store.Selection()); len(ids) > 0 {
		s.dirty = true
	}
}

// RotateSelection rotates every selected item by 90 degrees.
func (s *Session) RotateSelection() {
	sel := s.store.Selection()
	if len(sel) == 0 {
		return
	}
	s.store.RotateItems(sel, 90)
	s.dirty = true
}

// =============================================================================
// Persistence
// =============================================================================

// Load fetches the room's layout and resets the session to it. The loaded
// state becomes the initial history entry (not undoable). On a missing room
// or fetch failure the session starts from an empty plan and the error is
// returned so the UI can show a warning rather than block.
func (s *Session) Load(ctx context.Context) error {
	grid := s.store.GridSize()

	if s.persist == nil {
		return nil
	}

	l, err := s.persist.Load(ctx, s.room)
	if err != nil {
		s.store = floorplan.NewStore(floorplan.WithGridSize(grid))
		if errors.Is(err, errors.ErrCodeRoomNotFound) {
			s.logger.Debug("no stored layout, starting empty", "room", s.room)
			return nil
		}
		s.logger.Warn("layout load failed, starting empty", "room", s.room, "err", err)
		return err
	}

	items := layout.Deserialize(l)
	s.store = floorplan.NewStore(floorplan.WithGridSize(grid), floorplan.WithItems(items))
	s.dirty = false
	s.logger.Info("layout loaded", "room", s.room, "items", len(items))
	return nil
}

// BeginSave snapshots the current plan for saving. It returns ErrSaveInFlight
// while a previous save is pending, and an error when the session has no
// persistence backend. The caller performs the round-trip and must call
// FinishSave with its result.
func (s *Session) BeginSave() (*layout.RoomLayout, error) {
	if s.persist == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "session has no persistence backend")
	}
	if s.saving {
		return nil, ErrSaveInFlight
	}
	s.saving = true
	return layout.Serialize(s.room, s.store.Items()), nil
}

// FinishSave records the outcome of a save round-trip started by BeginSave.
// On success the session is marked clean; on failure local edits are kept so
// the user can retry.
func (s *Session) FinishSave(err error) {
	s.saving = false
	if err != nil {
		s.logger.Warn("layout save failed", "room", s.room, "err", err)
		return
	}
	s.dirty = false
	s.logger.Info("layout saved", "room", s.room)
}

// Save performs a complete synchronous save. Interactive UIs use
// BeginSave/FinishSave instead so the round-trip can run off the render loop.
func (s *Session) Save(ctx context.Context) error {
	l, err := s.BeginSave()
	if err != nil {
		return err
	}
	saveErr := s.persist.Save(ctx, l)
	s.FinishSave(saveErr)
	return saveErr
}

// StoreBackend adapts a layoutstore.Store to the session's Persistence
// interface for offline (serverless) editing.
type StoreBackend struct {
	Store layoutstore.Store
}

// Load fetches the layout from the underlying store, translating its
// not-found sentinel into the session's error code.
func (b StoreBackend) Load(ctx context.Context, room string) (*layout.RoomLayout, error) {
	l, err := b.Store.Get(ctx, room)
	if err != nil {
		if stderrors.Is(err, layoutstore.ErrNotFound) {
			return nil, errors.New(errors.ErrCodeRoomNotFound, "no layout for room %q", room)
		}
		return nil, err
	}
	return l, nil
}

// Save upserts the layout into the underlying store.
func (b StoreBackend) Save(ctx context.Context, l *layout.RoomLayout) error {
	return b.Store.Put(ctx, l)
}
