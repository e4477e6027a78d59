package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/pupitre/internal/seating"
)

// Seat cell geometry in terminal cells. The chart is a fixed raster: every
// seat is cellWidth x cellHeight, with the back row drawn at the top.
const (
	cellWidth  = 14
	cellHeight = 2
)

// chartLayout maps terminal coordinates to seats. It implements
// seating.HitTester for the gesture controller; the view keeps its origin in
// sync with where the chart is actually drawn.
type chartLayout struct {
	rows, cols       int
	originX, originY int
}

func newChartLayout(rows, cols int) *chartLayout {
	return &chartLayout{rows: rows, cols: cols, originX: chartMarginX, originY: chartMarginY}
}

// cellAt converts terminal coordinates to a chart cell. The x axis maps to
// columns directly; the y axis is flipped, the top screen row holding the
// back row of the room.
func (l *chartLayout) cellAt(x, y int) (row, col int, ok bool) {
	dx := x - l.originX
	dy := y - l.originY
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}
	cx := dx / cellWidth
	cy := dy / cellHeight
	if cx >= l.cols || cy >= l.rows {
		return 0, 0, false
	}
	return l.rows - 1 - cy, cx, true
}

// originFor returns the top-left terminal cell of a seat.
func (l *chartLayout) originFor(row, col int) (x, y int) {
	screenRow := l.rows - 1 - row
	return l.originX + col*cellWidth, l.originY + screenRow*cellHeight
}

// SeatAt returns the seat under the given point, if any. Removed seats still
// hit; the gesture controller decides what a press on them means.
func (l *chartLayout) SeatAt(x, y int) (string, bool) {
	row, col, ok := l.cellAt(x, y)
	if !ok {
		return "", false
	}
	return seating.SeatID(row, col), true
}

// SeatsIn returns the seats overlapping the given rectangle.
func (l *chartLayout) SeatsIn(x0, y0, x1, y1 int) []string {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}

	var ids []string
	for _, seat := range gridCells(l.rows, l.cols) {
		sx, sy := l.originFor(seat.row, seat.col)
		if sx+cellWidth-1 < x0 || sx > x1 || sy+cellHeight-1 < y0 || sy > y1 {
			continue
		}
		ids = append(ids, seating.SeatID(seat.row, seat.col))
	}
	return ids
}

type cell struct{ row, col int }

func gridCells(rows, cols int) []cell {
	out := make([]cell, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			out = append(out, cell{row, col})
		}
	}
	return out
}

// pointerEvent translates a bubbletea mouse message into the gesture
// controller's event type. Only left-button gestures count; everything else
// is ignored.
func pointerEvent(msg tea.MouseMsg) (seating.PointerEvent, bool) {
	ev := seating.PointerEvent{
		X:    msg.X,
		Y:    msg.Y,
		Mod:  msg.Shift || msg.Ctrl,
		Time: time.Now(),
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return ev, false
		}
		ev.Phase = seating.PhaseDown
	case tea.MouseActionMotion:
		ev.Phase = seating.PhaseMove
	case tea.MouseActionRelease:
		ev.Phase = seating.PhaseUp
	default:
		return ev, false
	}

	return ev, true
}
