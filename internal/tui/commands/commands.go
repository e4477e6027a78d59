// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/pupitre/internal/llm"
	"github.com/javiermolinar/pupitre/internal/seating"
)

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsg is sent for temporary status messages.
type StatusMsg struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// SessionSavedMsg is sent when the session was persisted.
type SessionSavedMsg struct{}

// SessionLoadedMsg is sent when the stored session was read. Session is nil
// when the database holds none yet.
type SessionLoadedMsg struct {
	Session *seating.Session
}

// SuggestionMsg is sent when an LLM suggestion completes.
type SuggestionMsg struct {
	Suggestion *llm.Suggestion
}

// ReviewMsg is sent when an LLM chart review completes.
type ReviewMsg struct {
	Text string
}

// SaveSession persists the session in the background.
func SaveSession(repo seating.Repository, session *seating.Session) tea.Cmd {
	return func() tea.Msg {
		if err := repo.SaveSession(context.Background(), session); err != nil {
			return ErrMsg{Err: err}
		}
		return SessionSavedMsg{}
	}
}

// LoadSession reads the stored session in the background.
func LoadSession(repo seating.Repository) tea.Cmd {
	return func() tea.Msg {
		session, err := repo.LoadSession(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return SessionLoadedMsg{Session: session}
	}
}

// Suggest asks the LLM for an arrangement. The grid must be a snapshot the
// caller does not mutate while the request is in flight.
func Suggest(planner *llm.Planner, g *seating.Grid, req llm.SuggestRequest) tea.Cmd {
	return func() tea.Msg {
		s, err := planner.Suggest(context.Background(), g, req)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return SuggestionMsg{Suggestion: s}
	}
}

// Review asks the LLM for a critique of the current chart. The grid must be a
// snapshot the caller does not mutate while the request is in flight.
func Review(reviewer *llm.Reviewer, g *seating.Grid) tea.Cmd {
	return func() tea.Msg {
		text, err := reviewer.ReviewChart(context.Background(), g)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ReviewMsg{Text: text}
	}
}
