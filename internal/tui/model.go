// Package tui provides the terminal user interface for pupitre.
package tui

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/pupitre/internal/config"
	"github.com/javiermolinar/pupitre/internal/llm"
	"github.com/javiermolinar/pupitre/internal/seating"
	"github.com/javiermolinar/pupitre/internal/tui/commands"
	"github.com/javiermolinar/pupitre/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMove        // A payload of seats follows the cursor until committed
	ModePrompt      // Typing a free-form request for the LLM
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalStudentForm
	ModalConfirmRemove
	ModalSuggestion
	ModalReview
	ModalHelp
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   seating.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Editing session
	grid     *seating.Grid
	history  *seating.History
	sel      *seating.Selection
	gestures *seating.Controller
	layout   *chartLayout

	// Cursor, in internal grid coordinates
	cursorRow int
	cursorCol int

	mode      Mode
	modalType ModalType

	// Keyboard move state
	moveAnchorID string   // seat the payload was picked up from
	movePayload  []string // seats travelling with the cursor

	// Student form modal
	formName  textinput.Model
	formNotes textinput.Model
	formFocus int

	// Confirm modal
	confirmMessage string
	confirmUUID    string

	// LLM state
	planner    *llm.Planner
	reviewer   *llm.Reviewer
	prompt     textinput.Model
	suggestion *llm.Suggestion
	review     string
	suggesting bool

	// Shuffle source, injectable for deterministic tests
	rng *rand.Rand

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Unsaved changes since the last save
	dirty bool

	// Error state
	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithSession replaces the empty starting grid with a restored session.
func WithSession(g *seating.Grid, h *seating.History) ModelOption {
	return func(m *Model) {
		m.grid = g
		m.history = h
		m.rewire()
	}
}

// WithLLM injects the suggestion client.
func WithLLM(client llm.Client) ModelOption {
	return func(m *Model) {
		m.planner = llm.NewPlanner(client)
		m.reviewer = llm.NewReviewer(client)
	}
}

// WithRand replaces the shuffle source.
func WithRand(rng *rand.Rand) ModelOption {
	return func(m *Model) {
		m.rng = rng
	}
}

// New creates a new TUI model with an empty grid sized from the config.
func New(repo seating.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("frappe")
	}
	styles := NewStyles(t)

	grid, err := seating.NewGrid(cfg.Classroom.Rows, cfg.Classroom.Cols)
	if err != nil {
		// Config validation bounds the dimensions; fall back to the default
		// size rather than failing startup.
		grid, _ = seating.NewGrid(5, 6)
	}

	formName := textinput.New()
	formName.Placeholder = "Student name"
	formName.CharLimit = 64
	formName.Width = 32

	formNotes := textinput.New()
	formNotes.Placeholder = "Notes (optional)"
	formNotes.CharLimit = 128
	formNotes.Width = 32

	prompt := textinput.New()
	prompt.Placeholder = "e.g. separate Ana and Bruno, talkers up front"
	prompt.CharLimit = 256
	prompt.Width = 48

	m := &Model{
		repo:      repo,
		config:    cfg,
		theme:     t,
		styles:    styles,
		grid:      grid,
		history:   seating.NewHistory(),
		sel:       seating.NewSelection(),
		mode:      ModeNormal,
		formName:  formName,
		formNotes: formNotes,
		prompt:    prompt,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	m.rewire()

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// rewire rebuilds the layout and gesture controller after the grid changes
// identity (startup, session load).
func (m *Model) rewire() {
	m.sel.Clear()
	m.layout = newChartLayout(m.grid.Rows(), m.grid.Cols())
	m.gestures = seating.NewController(m.grid, m.sel, m.history, m.layout)
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursorRow >= m.grid.Rows() {
		m.cursorRow = m.grid.Rows() - 1
	}
	if m.cursorCol >= m.grid.Cols() {
		m.cursorCol = m.grid.Cols() - 1
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
}

// cursorSeatID returns the seat id under the cursor.
func (m *Model) cursorSeatID() string {
	return seating.SeatID(m.cursorRow, m.cursorCol)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	return commands.LoadSession(m.repo)
}

// Run starts the TUI.
func Run(repo seating.Repository, cfg *config.Config, opts ...ModelOption) error {
	return RunWithDebug(repo, cfg, false, opts...)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo seating.Repository, cfg *config.Config, debug bool, opts ...ModelOption) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(repo, cfg, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
