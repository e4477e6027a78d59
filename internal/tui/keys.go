package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/pupitre/internal/llm"
	"github.com/javiermolinar/pupitre/internal/seating"
	"github.com/javiermolinar/pupitre/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeMove:
		return m.handleMoveKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation. The chart is drawn back row at the top, so "up" walks
	// toward the back of the room.
	case "k", "up":
		if m.cursorRow < m.grid.Rows()-1 {
			m.cursorRow++
		}
	case "j", "down":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case "h", "left":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case "l", "right":
		if m.cursorCol < m.grid.Cols()-1 {
			m.cursorCol++
		}

	// Selection
	case " ":
		m.sel.Toggle(m.cursorSeatID(), false)
	case "ctrl+a":
		m.sel.SelectAll(m.grid.ActiveSeats())
	case "esc":
		m.gestures.Cancel()
		m.statusMsg = ""

	// Move mode
	case "m", "enter":
		return m.enterMoveMode()

	// History
	case "u":
		entry, err := m.history.Undo()
		if err != nil {
			return m.withStatus("Nothing to undo")
		}
		m.grid.RestoreSnapshot(entry.Snapshot)
		m.grid.Relink()
		m.dirty = true
		return m.withStatus("Undid: " + entry.Action)
	case "r":
		entry, err := m.history.Redo()
		if err != nil {
			return m.withStatus("Nothing to redo")
		}
		m.grid.RestoreSnapshot(entry.Snapshot)
		m.grid.Relink()
		m.dirty = true
		return m.withStatus("Redid: " + entry.Action)

	// Roster and seats
	case "a":
		m.formName.SetValue("")
		m.formNotes.SetValue("")
		m.formFocus = 0
		m.formName.Focus()
		m.formNotes.Blur()
		m.mode = ModeModal
		m.modalType = ModalStudentForm
	case "x":
		return m.unseatAtCursor()
	case "X":
		seat := m.grid.FindSeat(m.cursorSeatID())
		if seat == nil || seat.Occupant == nil {
			return m.withStatus("No student on this seat")
		}
		m.confirmUUID = seat.Occupant.UUID
		m.confirmMessage = fmt.Sprintf("Remove %s from the roster?", seat.Occupant.Name)
		m.mode = ModeModal
		m.modalType = ModalConfirmRemove
	case "d":
		return m.deleteSeatAtCursor()
	case "D":
		return m.restoreSeatAtCursor()

	// Arrangements
	case "S":
		return m.applyArrangement("Arrange: shuffle", seating.ShuffleLayout(m.grid, m.rng))
	case "N":
		return m.applyArrangement("Arrange: by name", seating.OrderedLayout(m.grid, seating.ByName))
	case "H":
		return m.applyArrangement("Arrange: by height", seating.OrderedLayout(m.grid, seating.ByHeight))
	case "G":
		return m.applyArrangement("Arrange: alternate gender", seating.AlternateGenderLayout(m.grid))

	// Clipboard
	case "y":
		if err := clipboard.WriteAll(renderPlainChart(m.grid)); err != nil {
			return m.withStatus(fmt.Sprintf("Clipboard error: %v", err))
		}
		return m.withStatus("Chart copied to clipboard")

	// Persistence
	case "s":
		if m.repo == nil {
			return m.withStatus("No database configured")
		}
		return m, commands.SaveSession(m.repo, seating.ExportSession(m.grid, m.history))

	// LLM
	case "p":
		if m.planner == nil {
			return m.withStatus("LLM not configured")
		}
		m.prompt.SetValue("")
		m.prompt.Focus()
		m.mode = ModePrompt
	case "v":
		if m.reviewer == nil {
			return m.withStatus("LLM not configured")
		}
		m.suggesting = true
		model, cmd := m.withStatus("Reviewing chart...")
		return model, tea.Batch(cmd, commands.Review(m.reviewer, m.grid.Clone()))

	case "?":
		m.mode = ModeModal
		m.modalType = ModalHelp
	}

	return m, nil
}

// enterMoveMode picks up the seat under the cursor, or the whole selection
// when the cursor sits inside it.
func (m Model) enterMoveMode() (tea.Model, tea.Cmd) {
	id := m.cursorSeatID()
	seat := m.grid.FindSeat(id)
	if seat == nil || seat.Deleted {
		return m.withStatus("No seat here")
	}

	if m.sel.Len() > 1 && m.sel.Contains(id) {
		m.movePayload = m.sel.IDs()
	} else {
		if seat.Occupant == nil {
			return m.withStatus("Nothing to move")
		}
		m.movePayload = []string{id}
	}
	m.moveAnchorID = id
	m.mode = ModeMove
	return m, nil
}

// handleMoveKeys handles keys while a payload follows the cursor.
func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "k", "up":
		if m.cursorRow < m.grid.Rows()-1 {
			m.cursorRow++
		}
	case "j", "down":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case "h", "left":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case "l", "right":
		if m.cursorCol < m.grid.Cols()-1 {
			m.cursorCol++
		}

	case "enter", "m":
		return m.commitMove()

	case "esc", "q":
		m.mode = ModeNormal
		m.movePayload = nil
		m.moveAnchorID = ""
	}

	return m, nil
}

// commitMove applies the keyboard move at the cursor position.
func (m Model) commitMove() (tea.Model, tea.Cmd) {
	target := m.cursorSeatID()
	payload := m.movePayload
	anchor := m.moveAnchorID
	m.mode = ModeNormal
	m.movePayload = nil
	m.moveAnchorID = ""

	if target == anchor {
		return m, nil
	}

	if len(payload) > 1 {
		plan, err := seating.PlanBlockMove(m.grid, payload, anchor, target)
		if err != nil {
			return m.withStatus("Move rejected")
		}
		action := fmt.Sprintf("Move block (%d seats)", len(plan.Positions))
		m.history.Record(action, m.grid)
		seating.ApplyBlockMove(m.grid, plan)
		m.grid.Resync()
		m.dirty = true
		return m.withStatus(action)
	}

	plan, err := seating.PlanSingleMove(m.grid, anchor, target)
	if err != nil {
		return m.withStatus("Move rejected")
	}
	action := "Move: " + plan.TargetOccupant.Name
	m.history.Record(action, m.grid)
	if err := m.grid.Assign(plan.TargetOccupant.UUID, plan.TargetID); err != nil {
		return m.withStatus("Move rejected")
	}
	m.grid.Resync()
	m.dirty = true
	return m.withStatus(action)
}

// handlePromptKeys handles keys while typing an LLM request.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.prompt.Blur()
		return m, nil

	case "enter":
		goal := strings.TrimSpace(m.prompt.Value())
		m.mode = ModeNormal
		m.prompt.Blur()
		if goal == "" {
			return m, nil
		}
		m.suggesting = true
		req := llm.SuggestRequest{
			Goal:             goal,
			UseCompactPrompt: m.config.LLM.Provider != llm.ProviderCopilot && m.config.LLM.Provider != "",
		}
		model, cmd := m.withStatus("Asking for an arrangement...")
		return model, tea.Batch(cmd, commands.Suggest(m.planner, m.grid.Clone(), req))
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// unseatAtCursor clears the seat under the cursor, keeping the student on
// the roster.
func (m Model) unseatAtCursor() (tea.Model, tea.Cmd) {
	id := m.cursorSeatID()
	seat := m.grid.FindSeat(id)
	if seat == nil || seat.Occupant == nil {
		return m.withStatus("No student on this seat")
	}
	action := "Unseat: " + seat.Occupant.Name
	m.history.Record(action, m.grid)
	m.grid.Remove(id)
	m.grid.Resync()
	m.dirty = true
	return m.withStatus(action)
}

func (m Model) deleteSeatAtCursor() (tea.Model, tea.Cmd) {
	id := m.cursorSeatID()
	seat := m.grid.FindSeat(id)
	if seat == nil || seat.Deleted {
		return m.withStatus("No seat here")
	}
	if seat.Occupant != nil {
		return m.withStatus("Seat is occupied; unseat first")
	}
	m.history.Record("Remove seat "+id, m.grid)
	if err := m.grid.DeleteSeat(id); err != nil {
		return m.withStatus(fmt.Sprintf("Error: %v", err))
	}
	m.sel.Clear()
	m.dirty = true
	return m.withStatus("Seat removed")
}

func (m Model) restoreSeatAtCursor() (tea.Model, tea.Cmd) {
	id := m.cursorSeatID()
	seat := m.grid.FindSeat(id)
	if seat == nil || !seat.Deleted {
		return m.withStatus("Nothing to restore")
	}
	m.history.Record("Restore seat "+id, m.grid)
	if err := m.grid.RestoreSeat(id); err != nil {
		return m.withStatus(fmt.Sprintf("Error: %v", err))
	}
	m.dirty = true
	return m.withStatus("Seat restored")
}

// applyArrangement applies a bulk layout as one undoable step.
func (m Model) applyArrangement(action string, layout seating.Layout) (tea.Model, tea.Cmd) {
	if len(m.grid.Roster()) == 0 {
		return m.withStatus("Roster is empty")
	}
	if err := seating.ApplyLayout(m.grid, m.history, action, layout); err != nil {
		return m.withStatus(fmt.Sprintf("Error: %v", err))
	}
	m.dirty = true
	return m.withStatus(action)
}
