// Package seating implements the classroom seating chart core: the grid of
// seats and the student roster, multi-seat selection, bounded undo history,
// the relocation engine and the pointer gesture state machine. It performs no
// rendering and no I/O; the TUI and the stores are thin layers on top.
package seating

import (
	"errors"
	"fmt"
)

// Grid operation errors.
var (
	ErrInvalidTarget = errors.New("target seat is missing or deleted")
	ErrSeatOccupied  = errors.New("seat is occupied")
	ErrInvalidSize   = errors.New("grid dimensions must be positive")
)

// Seat is a fixed grid cell. Row and Col are internal 0-based coordinates
// (row 0 nearest the front) and never change after creation. A deleted seat
// stays in the collection so coordinates remain stable if the layout is
// re-expanded later; it is excluded from ActiveSeats and can never receive
// an occupant.
type Seat struct {
	ID       string
	Row, Col int
	Occupant *Student
	Deleted  bool
}

// Grid owns the seat collection and the student roster for one editing
// session. The occupant references are exclusively owned by the grid: a seat
// holds at most one student and a student sits in at most one non-deleted
// seat.
type Grid struct {
	rows, cols int
	seats      []*Seat // dense, row-major creation order, one per coordinate
	roster     []*Student
	byID       map[string]*Seat
	byUUID     map[string]*Student
}

// NewGrid creates an empty rows×cols grid.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidSize
	}
	g := &Grid{
		rows:   rows,
		cols:   cols,
		seats:  make([]*Seat, 0, rows*cols),
		byID:   make(map[string]*Seat, rows*cols),
		byUUID: make(map[string]*Student),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			seat := &Seat{ID: SeatID(r, c), Row: r, Col: c}
			g.seats = append(g.seats, seat)
			g.byID[seat.ID] = seat
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Seats returns the full seat collection in row-major order, deleted seats
// included. Callers must not reassign occupants directly.
func (g *Grid) Seats() []*Seat { return g.seats }

// Roster returns all students in registration order.
func (g *Grid) Roster() []*Student { return g.roster }

// FindSeat returns the seat with the given id, or nil if it does not exist.
func (g *Grid) FindSeat(id string) *Seat {
	return g.byID[id]
}

// FindStudentByUUID returns the roster student with the given uuid, or nil.
func (g *Grid) FindStudentByUUID(id string) *Student {
	return g.byUUID[id]
}

// ActiveSeats returns the non-deleted seats in creation (row-major) order.
func (g *Grid) ActiveSeats() []*Seat {
	active := make([]*Seat, 0, len(g.seats))
	for _, s := range g.seats {
		if !s.Deleted {
			active = append(active, s)
		}
	}
	return active
}

// AddStudent registers a student on the roster. The uuid must be unique.
func (g *Grid) AddStudent(s *Student) error {
	if s == nil || s.UUID == "" {
		return ErrUnknownStudent
	}
	if _, ok := g.byUUID[s.UUID]; ok {
		return fmt.Errorf("student %s already on roster", s.UUID)
	}
	g.roster = append(g.roster, s)
	g.byUUID[s.UUID] = s
	return nil
}

// RemoveStudent takes a student off the roster, clearing any seat they hold.
func (g *Grid) RemoveStudent(uuid string) error {
	s, ok := g.byUUID[uuid]
	if !ok {
		return ErrUnknownStudent
	}
	for _, seat := range g.seats {
		if seat.Occupant == s {
			seat.Occupant = nil
		}
	}
	delete(g.byUUID, uuid)
	for i, r := range g.roster {
		if r == s {
			g.roster = append(g.roster[:i], g.roster[i+1:]...)
			break
		}
	}
	g.Resync()
	return nil
}

// Assign seats a student at the target seat. If the student already holds
// another seat, the two seats exchange occupants (a two-seat swap); moving to
// an empty seat leaves the old seat empty. Assigning a student to the seat
// they already hold is a no-op. Callers must Resync afterwards; the
// higher-level operations in this package do so.
func (g *Grid) Assign(studentUUID, targetSeatID string) error {
	target := g.byID[targetSeatID]
	if target == nil || target.Deleted {
		return ErrInvalidTarget
	}
	student, ok := g.byUUID[studentUUID]
	if !ok {
		return ErrUnknownStudent
	}
	if target.Occupant == student {
		return nil
	}

	var source *Seat
	for _, s := range g.seats {
		if s.Occupant == student {
			source = s
			break
		}
	}

	displaced := target.Occupant
	target.Occupant = student
	if source != nil {
		source.Occupant = displaced
	}
	return nil
}

// Remove clears the occupant of the given seat. Unknown or empty seats are a
// no-op.
func (g *Grid) Remove(seatID string) {
	if seat := g.byID[seatID]; seat != nil {
		seat.Occupant = nil
	}
}

// DeleteSeat marks a seat as deleted, excluding it from the layout. The seat
// must be empty; callers remove the student first. Deleting an already
// deleted seat is a no-op.
func (g *Grid) DeleteSeat(seatID string) error {
	seat := g.byID[seatID]
	if seat == nil {
		return ErrInvalidTarget
	}
	if seat.Occupant != nil {
		return ErrSeatOccupied
	}
	seat.Deleted = true
	return nil
}

// RestoreSeat clears the deleted flag, making the seat usable again.
func (g *Grid) RestoreSeat(seatID string) error {
	seat := g.byID[seatID]
	if seat == nil {
		return ErrInvalidTarget
	}
	seat.Deleted = false
	return nil
}

// Resync recomputes every student's SeatID cache from the seat collection.
// It must run after any mutation that changes occupancy and is idempotent.
func (g *Grid) Resync() {
	for _, s := range g.roster {
		s.SeatID = ""
	}
	for _, seat := range g.seats {
		if seat.Occupant != nil {
			seat.Occupant.SeatID = seat.ID
		}
	}
}

// Relink replaces every occupant reference with the canonical roster student
// sharing the same uuid. Snapshots and persisted sessions carry value copies
// of students; after restoring one, the seat collection must point back at
// the live roster. Assignments whose uuid no longer exists on the roster are
// dropped; their uuids are returned so the caller can log a warning.
func (g *Grid) Relink() (dropped []string) {
	for _, seat := range g.seats {
		if seat.Occupant == nil {
			continue
		}
		canonical, ok := g.byUUID[seat.Occupant.UUID]
		if !ok {
			dropped = append(dropped, seat.Occupant.UUID)
			seat.Occupant = nil
			continue
		}
		seat.Occupant = canonical
	}
	g.Resync()
	return dropped
}

// OccupiedCount returns the number of seated students.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, s := range g.seats {
		if s.Occupant != nil {
			n++
		}
	}
	return n
}

// Equal reports whether two grids have identical dimensions, deleted flags
// and occupancy (compared by student uuid).
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i, seat := range g.seats {
		o := other.seats[i]
		if seat.Deleted != o.Deleted {
			return false
		}
		a, b := "", ""
		if seat.Occupant != nil {
			a = seat.Occupant.UUID
		}
		if o.Occupant != nil {
			b = o.Occupant.UUID
		}
		if a != b {
			return false
		}
	}
	return true
}
