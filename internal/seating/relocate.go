package seating

import (
	"errors"
	"sort"
)

// ErrRelocationRejected reports a move that cannot be applied: the translated
// block falls outside the grid, lands on a deleted seat, or there is nothing
// to move. A rejected move leaves the grid untouched.
var ErrRelocationRejected = errors.New("relocation rejected")

// SingleMovePlan describes moving one seat's occupant onto a target seat,
// which is equivalent to a two-seat swap.
type SingleMovePlan struct {
	SourceID       string
	TargetID       string
	TargetOccupant *Student // the student moving onto the target
	Displaced      *Student // previous occupant of the target, nil if empty
}

// PlanSingleMove computes the effect of dropping the source seat's occupant
// on the target seat. It is pure: applying the plan is Grid.Assign.
func PlanSingleMove(g *Grid, sourceID, targetID string) (SingleMovePlan, error) {
	source := g.FindSeat(sourceID)
	if source == nil {
		return SingleMovePlan{}, ErrInvalidTarget
	}
	target := g.FindSeat(targetID)
	if target == nil || target.Deleted {
		return SingleMovePlan{}, ErrInvalidTarget
	}
	if source.Occupant == nil {
		return SingleMovePlan{}, ErrRelocationRejected
	}
	return SingleMovePlan{
		SourceID:       sourceID,
		TargetID:       targetID,
		TargetOccupant: source.Occupant,
		Displaced:      target.Occupant,
	}, nil
}

// BlockPosition is one seat's movement inside a block plan. Occupant is nil
// when an empty selected seat translates along with the block.
type BlockPosition struct {
	SourceID string
	TargetID string
	Occupant *Student
}

// DisplacedStudent is an occupant bumped off a target seat that is not
// itself part of the moving block, remembered with the seat it came from so
// backfill ordering is reproducible.
type DisplacedStudent struct {
	FromSeatID string
	Student    *Student
}

// BlockPlan is the computed effect of rigidly translating a selected block.
// Positions are ordered by source seat row-major; Displaced by the row/col
// of the seat each student was displaced from; NetVacated ascending
// row-major. Those orderings define the deterministic displaced↔vacated
// pairing and must not be changed.
type BlockPlan struct {
	Positions  []BlockPosition
	Displaced  []DisplacedStudent
	NetVacated []string
}

// PlanBlockMove computes a rigid translation of the selected seats so that
// the anchor seat (the seat grabbed at gesture start, a member of the
// selection) lands on the target seat. The move is rejected unless every
// selected seat's translated coordinate is a live seat inside the grid; there
// is no partial application.
func PlanBlockMove(g *Grid, selected []string, anchorID, targetID string) (*BlockPlan, error) {
	anchor := g.FindSeat(anchorID)
	target := g.FindSeat(targetID)
	if anchor == nil || target == nil || target.Deleted {
		return nil, ErrRelocationRejected
	}
	inBlock := make(map[string]bool, len(selected))
	for _, id := range selected {
		inBlock[id] = true
	}
	if !inBlock[anchorID] {
		return nil, ErrRelocationRejected
	}

	rowOffset := target.Row - anchor.Row
	colOffset := target.Col - anchor.Col

	sources := make([]*Seat, 0, len(selected))
	for _, id := range selected {
		seat := g.FindSeat(id)
		if seat == nil {
			return nil, ErrRelocationRejected
		}
		sources = append(sources, seat)
	}
	sortSeatsRowMajor(sources)

	plan := &BlockPlan{}
	targetIDs := make(map[string]bool, len(sources))
	targetSeats := make([]*Seat, 0, len(sources))
	for _, src := range sources {
		nr, nc := src.Row+rowOffset, src.Col+colOffset
		if nr < 0 || nr >= g.rows || nc < 0 || nc >= g.cols {
			return nil, ErrRelocationRejected
		}
		dst := g.FindSeat(SeatID(nr, nc))
		if dst == nil || dst.Deleted {
			return nil, ErrRelocationRejected
		}
		plan.Positions = append(plan.Positions, BlockPosition{
			SourceID: src.ID,
			TargetID: dst.ID,
			Occupant: src.Occupant,
		})
		targetIDs[dst.ID] = true
		targetSeats = append(targetSeats, dst)
	}

	// Occupants bumped off targets outside the moving block, ordered by the
	// seat they are displaced from.
	sortSeatsRowMajor(targetSeats)
	for _, dst := range targetSeats {
		if dst.Occupant != nil && !inBlock[dst.ID] {
			plan.Displaced = append(plan.Displaced, DisplacedStudent{
				FromSeatID: dst.ID,
				Student:    dst.Occupant,
			})
		}
	}

	// Source seats nothing lands on; they end up empty and receive the
	// displaced students in order.
	for _, src := range sources {
		if !targetIDs[src.ID] {
			plan.NetVacated = append(plan.NetVacated, src.ID)
		}
	}

	return plan, nil
}

// ApplyBlockMove mutates the grid according to an accepted plan: sources are
// cleared, moved occupants written to their targets, and displaced students
// reinserted into the net-vacated seats pairing both row-major orders
// index-for-index. A displaced student with no vacated seat left (possible
// only if seats were deleted mid-gesture) stays on the roster unseated.
// Callers must Resync afterwards.
func ApplyBlockMove(g *Grid, plan *BlockPlan) {
	for _, pos := range plan.Positions {
		if seat := g.FindSeat(pos.SourceID); seat != nil {
			seat.Occupant = nil
		}
	}
	for _, pos := range plan.Positions {
		if seat := g.FindSeat(pos.TargetID); seat != nil {
			seat.Occupant = pos.Occupant
		}
	}
	vacated := plan.NetVacated
	for _, d := range plan.Displaced {
		placed := false
		for len(vacated) > 0 && !placed {
			seat := g.FindSeat(vacated[0])
			vacated = vacated[1:]
			if seat != nil && !seat.Deleted {
				seat.Occupant = d.Student
				placed = true
			}
		}
		if !placed {
			d.Student.SeatID = ""
		}
	}
}

func sortSeatsRowMajor(seats []*Seat) {
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].Col < seats[j].Col
	})
}
