package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/editor"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/errors"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/floorplan"
)

// Terminal cells are roughly twice as tall as wide, so a cell covers 10x20
// canvas units at zoom 1. Mouse positions convert to screen units through the
// same factors, keeping pointer math and rendering consistent.
const (
	unitsPerCol = 10.0
	unitsPerRow = 20.0

	headerRows = 2
	footerRows = 2
)

// Editor chrome styles.
var (
	styleToolbar   = lipgloss.NewStyle().Foreground(colorWhite)
	styleToolbarKV = lipgloss.NewStyle().Foreground(colorCyan)
	styleStatusOK  = lipgloss.NewStyle().Foreground(colorGreen)
	styleStatusErr = lipgloss.NewStyle().Foreground(colorRed)
	styleGridDot   = lipgloss.NewStyle().Foreground(colorDim)
	styleHelp      = lipgloss.NewStyle().Foreground(colorDim)
	styleDirty     = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
)

// saveDoneMsg reports the result of an asynchronous save round-trip.
type saveDoneMsg struct {
	err error
}

// editorModel is the bubbletea model wrapping an editor session. All editing
// logic lives in the session; the model only translates terminal events and
// draws the canvas.
type editorModel struct {
	session *editor.Session
	persist editor.Persistence

	width  int
	height int
	status string
	isErr  bool
	quit   bool
}

// newEditorModel creates the TUI model for a loaded session.
func newEditorModel(session *editor.Session, persist editor.Persistence) editorModel {
	return editorModel{
		session: session,
		persist: persist,
		width:   80,
		height:  24,
	}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(tea.MouseEvent(msg))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case saveDoneMsg:
		m.session.FinishSave(msg.err)
		if msg.err != nil {
			m.status = "save failed: " + errors.UserMessage(msg.err) + " (edits kept, retry with ctrl+s)"
			m.isErr = true
		} else {
			m.status = "layout saved"
			m.isErr = false
		}
		return m, nil
	}
	return m, nil
}

// handleMouse feeds pointer events into the gesture state machine. The
// multi-select modifier is ctrl (alt also accepted for terminals that
// reserve ctrl-click).
func (m *editorModel) handleMouse(ev tea.MouseEvent) {
	sx := float64(ev.X) * unitsPerCol
	sy := float64(ev.Y-headerRows) * unitsPerRow
	if ev.Y < headerRows {
		return
	}

	switch ev.Action {
	case tea.MouseActionPress:
		if ev.Button == tea.MouseButtonLeft {
			m.session.PointerDown(sx, sy, ev.Ctrl || ev.Alt)
			m.status = ""
		}
	case tea.MouseActionMotion:
		m.session.PointerMove(sx, sy)
	case tea.MouseActionRelease:
		m.session.PointerUp()
	}
}

func (m editorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quit = true
		return m, tea.Quit

	// Global bindings
	case "ctrl+z":
		m.session.Undo()
	case "ctrl+shift+z", "ctrl+y":
		m.session.Redo()
	case "ctrl+c":
		m.session.DuplicateSelection()
	case "ctrl+s":
		return m.startSave()
	case "delete", "backspace":
		m.session.DeleteSelection()
	case "r":
		m.session.RotateSelection()

	// Tools and view
	case "s":
		m.session.SetTool(editor.ToolSelect)
	case "a":
		m.session.SetTool(editor.ToolAdd)
	case "tab":
		m.session.NextTemplate()
	case "shift+tab":
		m.session.PrevTemplate()
	case "g":
		m.session.ToggleGrid()
	case "+", "=":
		m.session.ZoomIn()
	case "-":
		m.session.ZoomOut()
	}
	return m, nil
}

// startSave kicks off an asynchronous save. A save already in flight is
// rejected; the session keeps its local state and the user retries later.
func (m editorModel) startSave() (tea.Model, tea.Cmd) {
	l, err := m.session.BeginSave()
	if err != nil {
		m.status = errors.UserMessage(err)
		m.isErr = true
		return m, nil
	}
	m.status = "saving..."
	m.isErr = false
	persist := m.persist
	return m, func() tea.Msg {
		return saveDoneMsg{err: persist.Save(context.Background(), l)}
	}
}

// =============================================================================
// View
// =============================================================================

func (m editorModel) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.viewToolbar())
	b.WriteString("\n\n")
	b.WriteString(m.viewCanvas())
	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	return b.String()
}

func (m editorModel) viewToolbar() string {
	key := m.session.CurrentTemplate()
	parts := []string{
		StyleTitle.Render(" "+appName) + styleToolbar.Render(" · "+m.session.Room()),
		styleToolbarKV.Render("tool:") + styleToolbar.Render(m.session.Tool().String()),
		styleToolbarKV.Render("item:") + styleToolbar.Render(fmt.Sprintf("%s/%s", key.Type, key.Shape)),
		styleToolbarKV.Render("zoom:") + styleToolbar.Render(fmt.Sprintf("%.2fx", m.session.Zoom())),
		styleToolbarKV.Render("grid:") + styleToolbar.Render(onOff(m.session.ShowGrid())),
	}
	if m.session.Dirty() {
		parts = append(parts, styleDirty.Render("unsaved"))
	}
	if m.session.Saving() {
		parts = append(parts, StyleWarning.Render("saving"))
	}
	return strings.Join(parts, StyleDim.Render("  │  "))
}

func (m editorModel) viewStatus() string {
	help := styleHelp.Render(
		"s/a tool · tab item · click place/select · ctrl+click multi · drag move · " +
			"r rotate · ctrl+c dup · del delete · ctrl+z undo · ctrl+y redo · " +
			"+/- zoom · g grid · ctrl+s save · q quit")
	if m.status == "" {
		return help
	}
	style := styleStatusOK
	if m.isErr {
		style = styleStatusErr
	}
	return style.Render(m.status) + "\n" + help
}

// viewCanvas paints the item store onto a character grid: grid dots, item
// fills (topmost item wins per cell), selection shown with reverse video,
// labels centered on their item.
func (m editorModel) viewCanvas() string {
	rows := m.height - headerRows - footerRows
	cols := m.width
	if rows < 1 || cols < 1 {
		return ""
	}

	zoom := m.session.Zoom()
	grid := m.session.Store().GridSize()
	items := m.session.Store().Items()

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			// Canvas-space extent covered by this terminal cell.
			x0 := float64(col) * unitsPerCol / zoom
			y0 := float64(row) * unitsPerRow / zoom
			x1 := float64(col+1) * unitsPerCol / zoom
			y1 := float64(row+1) * unitsPerRow / zoom
			cx := (x0 + x1) / 2
			cy := (y0 + y1) / 2

			if it, ok := topmostAt(items, cx, cy); ok {
				b.WriteString(m.renderItemCell(it, cx, cy, x1-x0))
				continue
			}

			if m.session.ShowGrid() && onGridLine(x0, x1, grid) && onGridLine(y0, y1, grid) {
				b.WriteString(styleGridDot.Render("·"))
				continue
			}
			b.WriteByte(' ')
		}
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderItemCell draws one terminal cell of an item: the matching label rune
// when the cell sits on the label band, a space otherwise.
func (m editorModel) renderItemCell(it floorplan.Item, cx, cy, cellUnits float64) string {
	style := lipgloss.NewStyle().Background(lipgloss.Color(it.Color)).Foreground(colorWhite)
	if m.session.Store().IsSelected(it.ID) {
		style = style.Reverse(true).Bold(true)
	}

	ch := " "
	if it.Label != "" && cy >= it.CenterY()-unitsPerRow/2 && cy < it.CenterY()+unitsPerRow/2 {
		// Horizontal offset of this cell within the centered label.
		offset := int((cx - it.CenterX()) / cellUnits)
		idx := len(it.Label)/2 + offset
		if idx >= 0 && idx < len(it.Label) {
			ch = string(it.Label[idx])
		}
	}
	return style.Render(ch)
}

// topmostAt returns the last item in z-order containing the point.
func topmostAt(items []floorplan.Item, x, y float64) (floorplan.Item, bool) {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Contains(x, y) {
			return items[i], true
		}
	}
	return floorplan.Item{}, false
}

// onGridLine reports whether a grid multiple falls inside [lo, hi).
func onGridLine(lo, hi, grid float64) bool {
	if grid <= 0 {
		return false
	}
	next := float64(int(lo/grid)) * grid
	if next < lo {
		next += grid
	}
	return next < hi
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
