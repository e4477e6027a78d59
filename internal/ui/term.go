package ui

import (
	"os"

	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Occupied seats: bold cyan so names stand out
	colorOccupied = color.New(color.FgCyan, color.Bold)

	// Empty seats: dim/grey
	colorEmpty = color.New(color.FgWhite, color.Faint)

	// Removed seats: dim, rendered as a cross
	colorRemoved = color.New(color.FgWhite, color.Faint)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Stats: green for counts and confirmations
	colorStats = color.New(color.FgGreen)

	// Warnings: yellow to make them pop
	colorWarn = color.New(color.FgYellow)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

func init() {
	// fatih/color only checks NO_COLOR and isatty; termenv also catches
	// dumb terminals.
	if termenv.ColorProfile() == termenv.Ascii {
		color.NoColor = true
	}
}

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatOccupied formats an occupied seat label.
func formatOccupied(s string) string {
	return colorOccupied.Sprint(s)
}

// formatEmpty formats an empty seat marker.
func formatEmpty(s string) string {
	return colorEmpty.Sprint(s)
}

// formatRemoved formats a removed seat marker.
func formatRemoved(s string) string {
	return colorRemoved.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatStats formats text for statistics.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatWarn formats a warning.
func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
