package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/pupitre/internal/seating"
)

// handleModalKeys dispatches keys to the active modal.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalStudentForm:
		return m.handleStudentFormKeys(msg)
	case ModalConfirmRemove:
		return m.handleConfirmRemoveKeys(msg)
	case ModalSuggestion:
		return m.handleSuggestionKeys(msg)
	case ModalReview:
		return m.handleReviewKeys(msg)
	case ModalHelp:
		return m.closeModal(), nil
	default:
		return m.closeModal(), nil
	}
}

func (m Model) closeModal() Model {
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.formName.Blur()
	m.formNotes.Blur()
	return m
}

func (m Model) handleStudentFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closeModal(), nil

	case "tab", "shift+tab", "down", "up":
		m.formFocus = 1 - m.formFocus
		if m.formFocus == 0 {
			m.formName.Focus()
			m.formNotes.Blur()
		} else {
			m.formNotes.Focus()
			m.formName.Blur()
		}
		return m, nil

	case "enter":
		return m.submitStudentForm()
	}

	var cmd tea.Cmd
	if m.formFocus == 0 {
		m.formName, cmd = m.formName.Update(msg)
	} else {
		m.formNotes, cmd = m.formNotes.Update(msg)
	}
	return m, cmd
}

// submitStudentForm adds the student to the roster and, when the cursor
// rests on a free seat, sits them there as one undoable step.
func (m Model) submitStudentForm() (tea.Model, tea.Cmd) {
	name := m.formName.Value()
	notes := strings.TrimSpace(m.formNotes.Value())

	student, err := seating.NewStudent(name, "", seating.GenderUnset, 0, notes)
	if err != nil {
		return m.withStatus(fmt.Sprintf("Error: %v", err))
	}
	if err := m.grid.AddStudent(student); err != nil {
		return m.withStatus(fmt.Sprintf("Error: %v", err))
	}

	m = m.closeModal()
	m.dirty = true

	seat := m.grid.FindSeat(m.cursorSeatID())
	if seat != nil && !seat.Deleted && seat.Occupant == nil {
		action := "Add: " + student.Name
		m.history.Record(action, m.grid)
		if err := m.grid.Assign(student.UUID, seat.ID); err != nil {
			return m.withStatus(fmt.Sprintf("Error: %v", err))
		}
		m.grid.Resync()
		return m.withStatus(fmt.Sprintf("Added %s at seat (%s)", student.Name, displayLabel(m.grid, seat.ID)))
	}
	return m.withStatus(fmt.Sprintf("Added %s (unseated)", student.Name))
}

func (m Model) handleConfirmRemoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		student := m.grid.FindStudentByUUID(m.confirmUUID)
		m = m.closeModal()
		if student == nil {
			return m, nil
		}
		action := "Remove: " + student.Name
		if student.SeatID != "" {
			// Only seat mutations are undoable; removing an unseated
			// student does not touch the chart.
			m.history.Record(action, m.grid)
		}
		if err := m.grid.RemoveStudent(student.UUID); err != nil {
			return m.withStatus(fmt.Sprintf("Error: %v", err))
		}
		m.grid.Resync()
		m.dirty = true
		return m.withStatus(action)

	case "n", "esc":
		return m.closeModal(), nil
	}
	return m, nil
}

func (m Model) handleSuggestionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "a":
		suggestion := m.suggestion
		m = m.closeModal()
		if suggestion == nil {
			return m, nil
		}
		layout, warnings, err := suggestion.Layout(m.grid)
		if err != nil {
			return m.withStatus(fmt.Sprintf("Suggestion unusable: %v", err))
		}
		if err := seating.ApplyLayout(m.grid, m.history, "Arrange: suggestion", layout); err != nil {
			return m.withStatus(fmt.Sprintf("Error: %v", err))
		}
		m.suggestion = nil
		m.dirty = true
		if len(warnings) > 0 {
			return m.withStatus("Applied with warnings: " + strings.Join(warnings, "; "))
		}
		return m.withStatus("Suggestion applied")

	case "esc", "q":
		m.suggestion = nil
		return m.closeModal(), nil
	}
	return m, nil
}

func (m Model) handleReviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		if err := clipboard.WriteAll(m.review); err != nil {
			return m.withStatus(fmt.Sprintf("Clipboard error: %v", err))
		}
		return m.withStatus("Review copied to clipboard")

	case "esc", "q", "enter":
		m.review = ""
		return m.closeModal(), nil
	}
	return m, nil
}

// updateStudentForm forwards non-key messages (cursor blink) to the focused
// form input.
func (m Model) updateStudentForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.formFocus == 0 {
		m.formName, cmd = m.formName.Update(msg)
	} else {
		m.formNotes, cmd = m.formNotes.Update(msg)
	}
	return m, cmd
}
