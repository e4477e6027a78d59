package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/pupitre/internal/seating"
)

// Chart position on screen; the title and a blank line sit above it.
const (
	chartMarginX = 2
	chartMarginY = 2
)

// View renders the model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", chartMarginX))
	b.WriteString(m.styles.TitleStyle.Render("pupitre"))
	b.WriteString("  ")
	b.WriteString(m.styles.HelpStyle.Render(fmt.Sprintf("%d×%d classroom", m.grid.Rows(), m.grid.Cols())))
	if m.dirty {
		b.WriteString("  ")
		b.WriteString(m.styles.DirtyStyle.Render("●"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderChart())

	b.WriteString(strings.Repeat(" ", chartMarginX))
	b.WriteString(m.styles.BoardStyle.Render(m.boardLine()))
	b.WriteString("\n\n")

	b.WriteString(m.renderFooter())

	if m.mode == ModeModal {
		return m.renderModal(b.String())
	}
	if m.mode == ModePrompt {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", chartMarginX))
		b.WriteString(m.styles.TitleStyle.Render("Suggest: "))
		b.WriteString(m.prompt.View())
	}

	return b.String()
}

// renderChart draws the seat raster, back row first. Cell positions must
// stay in lockstep with chartLayout so pointer hits resolve to the seats
// being drawn.
func (m Model) renderChart() string {
	var b strings.Builder

	marquee := make(map[string]bool)
	for _, id := range m.gestures.Marquee() {
		marquee[id] = true
	}
	payload := make(map[string]bool)
	for _, id := range m.gestures.Payload() {
		payload[id] = true
	}
	for _, id := range m.movePayload {
		payload[id] = true
	}

	for screenRow := 0; screenRow < m.grid.Rows(); screenRow++ {
		row := m.grid.Rows() - 1 - screenRow
		b.WriteString(strings.Repeat(" ", chartMarginX))
		for col := 0; col < m.grid.Cols(); col++ {
			b.WriteString(m.renderSeat(row, col, marquee, payload))
			b.WriteString(" ")
		}
		b.WriteString("\n\n")
	}

	return b.String()
}

// renderSeat picks the style for one seat cell. Gesture feedback wins over
// static state so a drag reads clearly.
func (m Model) renderSeat(row, col int, marquee, payload map[string]bool) string {
	id := seating.SeatID(row, col)
	seat := m.grid.FindSeat(id)
	if seat == nil {
		return m.styles.RemovedSeatStyle.Render(strings.Repeat(" ", cellWidth-3))
	}

	label := seatLabel(seat)
	atCursor := row == m.cursorRow && col == m.cursorCol

	style := m.styles.EmptySeatStyle
	switch {
	case seat.Deleted:
		style = m.styles.RemovedSeatStyle
	case seat.Occupant != nil:
		style = m.styles.SeatStyle
	}

	if m.sel.Contains(id) {
		style = m.styles.SelectedStyle
	}
	if marquee[id] {
		style = m.styles.MarqueeStyle
	}
	if payload[id] {
		style = m.styles.PayloadStyle
	}
	if target := m.gestures.PreviewTarget(); target == id {
		if m.gestures.PreviewValid() {
			style = m.styles.PreviewOKStyle
		} else {
			style = m.styles.PreviewBadStyle
		}
	}
	if atCursor && m.gestures.State() == seating.StateIdle {
		style = m.styles.CursorStyle
		if m.mode == ModeMove {
			style = m.styles.PreviewOKStyle
		}
	}

	return style.Render(ansi.Truncate(label, cellWidth-3, "…"))
}

func seatLabel(seat *seating.Seat) string {
	switch {
	case seat.Deleted:
		return "  ×"
	case seat.Occupant == nil:
		return "·"
	default:
		return seat.Occupant.Name
	}
}

// boardLine marks the front of the room under the bottom chart row.
func (m Model) boardLine() string {
	width := m.grid.Cols()*cellWidth - 1
	label := " BOARD "
	if width <= len(label) {
		return label
	}
	pad := (width - len(label)) / 2
	return strings.Repeat("─", pad) + label + strings.Repeat("─", width-pad-len(label))
}

func (m Model) renderFooter() string {
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", chartMarginX))
	if m.err != nil && m.statusMsg == "" {
		b.WriteString(m.styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else if m.statusMsg != "" {
		b.WriteString(m.styles.StatusStyle.Render(m.statusMsg))
	} else {
		b.WriteString(m.styles.HelpStyle.Render(m.hintLine()))
	}
	b.WriteString("\n")

	b.WriteString(strings.Repeat(" ", chartMarginX))
	b.WriteString(m.styles.HelpStyle.Render(m.historyLine()))
	b.WriteString("\n")

	return b.String()
}

func (m Model) hintLine() string {
	switch m.mode {
	case ModeMove:
		return fmt.Sprintf("moving %d seat(s) · arrows target · enter drop · esc cancel", len(m.movePayload))
	case ModePrompt:
		return "describe the arrangement · enter send · esc cancel"
	default:
		hints := "space select · m move · u undo · r redo · a add · s save · ? help · q quit"
		if n := m.sel.Len(); n > 0 {
			return fmt.Sprintf("%d selected · %s", n, hints)
		}
		return hints
	}
}

func (m Model) historyLine() string {
	seated := m.grid.OccupiedCount()
	roster := len(m.grid.Roster())
	line := fmt.Sprintf("seated %d/%d", seated, roster)
	if m.history.CanUndo() || m.history.CanRedo() {
		line += fmt.Sprintf(" · history %d/%d", m.history.Len(), seating.MaxHistory)
	}
	if m.suggesting {
		line += " · thinking…"
	}
	return line
}

// renderModal overlays the active modal on a dimmed base view.
func (m Model) renderModal(base string) string {
	var content string
	switch m.modalType {
	case ModalStudentForm:
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.ModalTitleStyle.Render("Add student"),
			"",
			"Name:  "+m.formName.View(),
			"Notes: "+m.formNotes.View(),
			"",
			m.styles.ModalMutedStyle.Render("enter add · tab switch · esc cancel"),
		)
	case ModalConfirmRemove:
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.ModalTitleStyle.Render("Confirm"),
			"",
			m.confirmMessage,
			"",
			m.styles.ModalMutedStyle.Render("y remove · n keep"),
		)
	case ModalSuggestion:
		content = m.renderSuggestionModal()
	case ModalReview:
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.ModalTitleStyle.Render("Chart review"),
			"",
			m.review,
			"",
			m.styles.ModalMutedStyle.Render("y copy · esc close"),
		)
	case ModalHelp:
		content = m.renderHelpModal()
	default:
		return base
	}

	box := m.styles.ModalStyle.Render(content)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return base + "\n" + box
}

func (m Model) renderSuggestionModal() string {
	if m.suggestion == nil {
		return m.styles.ModalTitleStyle.Render("No suggestion")
	}

	lines := []string{
		m.styles.ModalTitleStyle.Render("Suggested arrangement"),
		"",
	}
	for _, a := range m.suggestion.Assignments {
		lines = append(lines, fmt.Sprintf("  (%d,%d)  %s", a.Row, a.Col, a.Student))
	}
	for _, w := range m.suggestion.Warnings {
		lines = append(lines, m.styles.ModalMutedStyle.Render("  ⚠ "+w))
	}
	lines = append(lines, "", m.styles.ModalMutedStyle.Render("enter apply · esc dismiss"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderHelpModal() string {
	rows := []string{
		m.styles.ModalTitleStyle.Render("Keys"),
		"",
		"  arrows/hjkl  move cursor        mouse drag   move seat(s)",
		"  space        toggle selection   mouse sweep  marquee select",
		"  ctrl+a       select all         shift+click  add to selection",
		"  m/enter      pick up & move     esc          cancel/deselect",
		"  u / r        undo / redo        a            add student",
		"  x / X        unseat / remove    d / D        remove / restore seat",
		"  S N H G      shuffle · name · height · gender",
		"  p            ask for a layout   v            review chart",
		"  y            copy chart         s            save session",
		"",
		m.styles.ModalMutedStyle.Render("any key to close"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// displayLabel formats a seat id in 1-based display coordinates.
func displayLabel(g *seating.Grid, id string) string {
	row, col, err := seating.ParseSeatID(id)
	if err != nil {
		return id
	}
	dr, dc := seating.ToDisplay(g.Rows(), row, col)
	return fmt.Sprintf("%d,%d", dr, dc)
}

// renderPlainChart renders the chart as plain text for the clipboard, one
// display row per line with the front row last.
func renderPlainChart(g *seating.Grid) string {
	var b strings.Builder
	for dr := 1; dr <= g.Rows(); dr++ {
		for dc := 1; dc <= g.Cols(); dc++ {
			row, col := seating.ToInternal(g.Rows(), dr, dc)
			seat := g.FindSeat(seating.SeatID(row, col))
			var label string
			switch {
			case seat == nil || seat.Deleted:
				label = "×"
			case seat.Occupant == nil:
				label = "-"
			default:
				label = seat.Occupant.Name
			}
			b.WriteString(fmt.Sprintf("%-16s", label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
