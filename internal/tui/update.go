package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/pupitre/internal/seating"
	"github.com/javiermolinar/pupitre/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commands.SessionLoadedMsg:
		if msg.Session == nil {
			return m, nil
		}
		g, h, dropped, err := msg.Session.Build()
		if err != nil {
			m.err = err
			return m.withStatus(fmt.Sprintf("Error loading session: %v", err))
		}
		m.grid = g
		m.history = h
		m.rewire()
		if len(dropped) > 0 {
			LogEvent("SESSION_DROPPED", map[string]any{"uuids": dropped})
			return m.withStatus(fmt.Sprintf("Loaded session (%d stale assignments dropped)", len(dropped)))
		}
		return m, nil

	case commands.SessionSavedMsg:
		m.dirty = false
		return m.withStatus("Session saved")

	case commands.SuggestionMsg:
		m.suggesting = false
		m.suggestion = msg.Suggestion
		m.mode = ModeModal
		m.modalType = ModalSuggestion
		m.statusMsg = ""
		return m, nil

	case commands.ReviewMsg:
		m.suggesting = false
		m.review = msg.Text
		m.mode = ModeModal
		m.modalType = ModalReview
		m.statusMsg = ""
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		m.suggesting = false
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = time.Now().Add(5 * time.Second)
		return m, nil

	case commands.StatusMsg:
		return m.withStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Forward everything else to the focused text input.
	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	if m.mode == ModeModal && m.modalType == ModalStudentForm {
		return m.updateStudentForm(msg)
	}

	return m, nil
}

// withStatus sets a transient status message and schedules its removal.
func (m Model) withStatus(text string) (tea.Model, tea.Cmd) {
	m.statusMsg = text
	m.statusTime = time.Now().Add(3 * time.Second)
	return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// handleMouseMsg feeds pointer events to the gesture controller.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Gestures only make sense on the chart itself.
	if m.mode == ModeModal || m.mode == ModePrompt {
		return m, nil
	}

	ev, ok := pointerEvent(msg)
	if !ok {
		return m, nil
	}
	LogMouse(msg)

	wasDragging := m.gestures.State() == seating.StateDragging
	err := m.gestures.Handle(ev)
	LogGesture(m.gestures)

	if err != nil {
		return m.withStatus("Move rejected")
	}
	if wasDragging && ev.Phase == seating.PhaseUp {
		if action := m.gestures.LastAction(); action != "" {
			m.dirty = true
			return m.withStatus(action)
		}
	}
	return m, nil
}
