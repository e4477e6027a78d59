package seating

import (
	"errors"
	"fmt"
)

// ErrBadSeatID reports a malformed seat identifier.
var ErrBadSeatID = errors.New("malformed seat id")

// SeatID returns the stable identifier for an internal coordinate pair,
// formatted as "{row}-{col}". Identifiers are only stable for a given grid
// dimension; resizing the grid regenerates all of them.
func SeatID(row, col int) string {
	return fmt.Sprintf("%d-%d", row, col)
}

// ParseSeatID parses a "{row}-{col}" identifier back into internal coordinates.
func ParseSeatID(id string) (row, col int, err error) {
	n, err := fmt.Sscanf(id, "%d-%d", &row, &col)
	if err != nil || n != 2 || row < 0 || col < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadSeatID, id)
	}
	return row, col, nil
}

// ToDisplay converts internal 0-based coordinates to the 1-based display
// coordinates used at every external boundary (import/export, suggestions).
func ToDisplay(rows, row, col int) (displayRow, displayCol int) {
	return rows - row, col + 1
}

// ToInternal converts 1-based display coordinates back to internal ones.
// It is the exact inverse of ToDisplay for all valid coordinates.
func ToInternal(rows, displayRow, displayCol int) (row, col int) {
	return rows - displayRow, displayCol - 1
}
