package seating

// seatState is the value-copied state of one seat inside a snapshot.
type seatState struct {
	Row, Col int
	Deleted  bool
	Occupant *Student // value copy, never a roster pointer
}

// Snapshot is a deep, reference-free copy of the seat collection. Snapshots
// are what the history stack and the persisted session carry; restoring one
// must always be followed by Relink so occupants point at the canonical
// roster again.
type Snapshot struct {
	states []seatState
}

// Snapshot captures the current seat collection by value.
func (g *Grid) Snapshot() Snapshot {
	states := make([]seatState, len(g.seats))
	for i, seat := range g.seats {
		st := seatState{Row: seat.Row, Col: seat.Col, Deleted: seat.Deleted}
		if seat.Occupant != nil {
			dup := *seat.Occupant
			st.Occupant = &dup
		}
		states[i] = st
	}
	return Snapshot{states: states}
}

// RestoreSnapshot overwrites the seat collection with the snapshot's state.
// Occupants are the snapshot's value copies until Relink runs; callers must
// call Relink before any other operation.
func (g *Grid) RestoreSnapshot(snap Snapshot) {
	for _, st := range snap.states {
		seat := g.byID[SeatID(st.Row, st.Col)]
		if seat == nil {
			continue
		}
		seat.Deleted = st.Deleted
		if st.Occupant != nil {
			dup := *st.Occupant
			seat.Occupant = &dup
		} else {
			seat.Occupant = nil
		}
	}
}

// Clone returns an independent deep copy of the grid, roster included.
// Used by tests and by atomicity checks.
func (g *Grid) Clone() *Grid {
	clone, _ := NewGrid(g.rows, g.cols)
	for _, s := range g.roster {
		dup := *s
		clone.roster = append(clone.roster, &dup)
		clone.byUUID[dup.UUID] = &dup
	}
	for i, seat := range g.seats {
		clone.seats[i].Deleted = seat.Deleted
		if seat.Occupant != nil {
			clone.seats[i].Occupant = clone.byUUID[seat.Occupant.UUID]
		}
	}
	clone.Resync()
	return clone
}
