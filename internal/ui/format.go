package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/javiermolinar/pupitre/internal/seating"
)

const (
	maxSeatCellWidth = 16
	minSeatCellWidth = 6
)

// seatCellWidth sizes chart cells to the terminal, between min and max.
func seatCellWidth(cols int) int {
	if cols <= 0 {
		return maxSeatCellWidth
	}
	w := (termWidth() - 8) / cols
	if w > maxSeatCellWidth {
		return maxSeatCellWidth
	}
	if w < minSeatCellWidth {
		return minSeatCellWidth
	}
	return w
}

// seatDisplayLabel formats a seat id in the 1-based display coordinates used
// everywhere outside the engine.
func seatDisplayLabel(g *seating.Grid, id string) string {
	row, col, err := seating.ParseSeatID(id)
	if err != nil {
		return id
	}
	dr, dc := seating.ToDisplay(g.Rows(), row, col)
	return fmt.Sprintf("%d,%d", dr, dc)
}

// PrintChart prints the seating chart, back row first, with the board marker
// under the front row.
func PrintChart(g *seating.Grid) {
	width := seatCellWidth(g.Cols())

	fmt.Println(formatHeader(fmt.Sprintf("Seating chart %dx%d", g.Rows(), g.Cols())))
	fmt.Println()

	for dr := 1; dr <= g.Rows(); dr++ {
		fmt.Printf("  %s ", formatMuted(fmt.Sprintf("%2d", dr)))
		for dc := 1; dc <= g.Cols(); dc++ {
			row, col := seating.ToInternal(g.Rows(), dr, dc)
			seat := g.FindSeat(seating.SeatID(row, col))
			fmt.Print(chartCell(seat, width))
		}
		fmt.Println()
	}

	boardWidth := g.Cols() * width
	label := " BOARD "
	if boardWidth > len(label)+2 {
		pad := (boardWidth - len(label)) / 2
		fmt.Printf("     %s\n", formatMuted(
			strings.Repeat("─", pad)+label+strings.Repeat("─", boardWidth-pad-len(label))))
	}

	fmt.Println()
	fmt.Printf("  %s\n", formatStats(fmt.Sprintf("Seated: %d/%d", g.OccupiedCount(), len(g.Roster()))))
}

func chartCell(seat *seating.Seat, width int) string {
	if seat == nil || seat.Deleted {
		return formatRemoved(pad("×", width))
	}
	if seat.Occupant == nil {
		return formatEmpty(pad("-", width))
	}
	return formatOccupied(pad(seat.Occupant.Name, width))
}

func pad(s string, width int) string {
	if len(s) > width-1 {
		s = s[:width-2] + "…"
	}
	return fmt.Sprintf("%-*s", width, s)
}

// PlainChart renders the chart without color, one display row per line with
// the front row last, for piping and clipboard use.
func PlainChart(g *seating.Grid) string {
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

// PrintRoster prints the roster sorted by name, with seat positions.
func PrintRoster(g *seating.Grid) {
	roster := make([]*seating.Student, len(g.Roster()))
	copy(roster, g.Roster())
	sort.Slice(roster, func(i, j int) bool { return roster[i].Name < roster[j].Name })

	if len(roster) == 0 {
		fmt.Println(formatMuted("Roster is empty. Add students with 'pupitre roster add'."))
		return
	}

	fmt.Println(formatHeader(fmt.Sprintf("Roster (%d students)", len(roster))))
	for _, s := range roster {
		seatCol := formatMuted("unseated")
		if s.SeatID != "" {
			seatCol = formatStats("seat " + seatDisplayLabel(g, s.SeatID))
		}
		line := fmt.Sprintf("  %-24s %-18s", s.Name, seatCol)
		if s.Gender != seating.GenderUnset {
			line += fmt.Sprintf("  %-6s", s.Gender)
		}
		if s.Height > 0 {
			line += fmt.Sprintf("  %d cm", s.Height)
		}
		if s.Notes != "" {
			line += "  " + formatMuted(s.Notes)
		}
		fmt.Println(line)
	}
}
