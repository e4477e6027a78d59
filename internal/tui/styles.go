package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/pupitre/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title and chrome
	TitleStyle  lipgloss.Style
	BoardStyle  lipgloss.Style // the front-of-room marker under the chart
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
	DirtyStyle  lipgloss.Style

	// Seat cells
	SeatStyle        lipgloss.Style // occupied
	EmptySeatStyle   lipgloss.Style
	RemovedSeatStyle lipgloss.Style
	SelectedStyle    lipgloss.Style
	CursorStyle      lipgloss.Style
	PayloadStyle     lipgloss.Style // seats travelling with a drag
	PreviewOKStyle   lipgloss.Style // valid drop target
	PreviewBadStyle  lipgloss.Style // rejected drop target
	MarqueeStyle     lipgloss.Style

	// Modal
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalMutedStyle lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	seat := lipgloss.NewStyle().
		Width(cellWidth - 1).
		Padding(0, 1).
		MaxHeight(1)

	return &Styles{
		palette: p,

		TitleStyle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		BoardStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		StatusStyle: lipgloss.NewStyle().
			Foreground(p.Fg),
		ErrorStyle: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),
		HelpStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		DirtyStyle: lipgloss.NewStyle().
			Foreground(p.Marquee),

		SeatStyle: seat.
			Foreground(p.TextOnOccupied).
			Background(p.OccupiedBg),
		EmptySeatStyle: seat.
			Foreground(p.FgMuted).
			Background(p.BgHighlight),
		RemovedSeatStyle: seat.
			Foreground(p.FgMuted),
		SelectedStyle: seat.
			Foreground(p.Fg).
			Background(p.BgSelection).
			Bold(true),
		CursorStyle: seat.
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Bold(true),
		PayloadStyle: seat.
			Foreground(p.TextOnDrag).
			Background(p.DragBg).
			Italic(true),
		PreviewOKStyle: seat.
			Foreground(p.TextOnDrag).
			Background(p.DragBg).
			Bold(true),
		PreviewBadStyle: seat.
			Foreground(p.TextOnWarning).
			Background(p.WarningBg).
			Bold(true),
		MarqueeStyle: seat.
			Foreground(p.TextOnMarquee).
			Background(p.MarqueeBg),

		ModalStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(1, 2),
		ModalTitleStyle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		ModalMutedStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
	}
}
