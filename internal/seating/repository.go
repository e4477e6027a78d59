package seating

import (
	"context"
	"time"
)

// SessionSeat is the flat, persisted form of one seat. StudentUUID is empty
// for an empty seat.
type SessionSeat struct {
	Row, Col    int
	Deleted     bool
	StudentUUID string
}

// SessionHistoryEntry is the flat form of one undo entry.
type SessionHistoryEntry struct {
	Action    string
	Timestamp time.Time
	Seats     []SessionSeat
}

// Session is the persisted state of one editing session: the roster, the
// full seat collection (deleted flags included), the grid dimensions and the
// undo stack with its pointer. Everything is by value with no reference
// sharing; Build relinks assignments against the roster by uuid.
type Session struct {
	Rows, Cols   int
	Students     []Student
	Seats        []SessionSeat
	History      []SessionHistoryEntry
	HistoryIndex int
}

// Repository defines the storage interface for sessions.
type Repository interface {
	// SaveSession replaces the stored session atomically.
	SaveSession(ctx context.Context, s *Session) error

	// LoadSession returns the stored session, or nil if none was saved yet.
	LoadSession(ctx context.Context) (*Session, error)

	// Close releases any resources held by the repository.
	Close() error
}

// ExportSession flattens the live grid and history into a Session.
func ExportSession(g *Grid, h *History) *Session {
	s := &Session{Rows: g.rows, Cols: g.cols}
	for _, st := range g.roster {
		s.Students = append(s.Students, *st)
	}
	s.Seats = flattenSeats(g.seats)
	entries, index := h.Export()
	for _, e := range entries {
		s.History = append(s.History, SessionHistoryEntry{
			Action:    e.Action,
			Timestamp: e.Timestamp,
			Seats:     flattenStates(e.Snapshot.states),
		})
	}
	s.HistoryIndex = index
	return s
}

// Build reconstructs a grid and history from the persisted session. Seat
// assignments whose student is no longer on the roster are dropped and their
// uuids returned, mirroring Grid.Relink.
func (s *Session) Build() (*Grid, *History, []string, error) {
	g, err := NewGrid(s.Rows, s.Cols)
	if err != nil {
		return nil, nil, nil, err
	}
	for i := range s.Students {
		dup := s.Students[i]
		dup.SeatID = ""
		if err := g.AddStudent(&dup); err != nil {
			return nil, nil, nil, err
		}
	}

	var dropped []string
	for _, ss := range s.Seats {
		seat := g.FindSeat(SeatID(ss.Row, ss.Col))
		if seat == nil {
			continue
		}
		seat.Deleted = ss.Deleted
		if ss.StudentUUID == "" {
			continue
		}
		if student := g.byUUID[ss.StudentUUID]; student != nil {
			seat.Occupant = student
		} else {
			dropped = append(dropped, ss.StudentUUID)
		}
	}
	g.Resync()

	entries := make([]HistoryEntry, 0, len(s.History))
	for _, e := range s.History {
		entries = append(entries, HistoryEntry{
			Action:    e.Action,
			Timestamp: e.Timestamp,
			Snapshot:  s.snapshotFrom(e.Seats),
		})
	}
	h := ImportHistory(entries, s.HistoryIndex)

	return g, h, dropped, nil
}

// snapshotFrom rebuilds an in-memory snapshot from flattened seats, copying
// student values out of the session roster.
func (s *Session) snapshotFrom(seats []SessionSeat) Snapshot {
	byUUID := make(map[string]*Student, len(s.Students))
	for i := range s.Students {
		byUUID[s.Students[i].UUID] = &s.Students[i]
	}
	states := make([]seatState, 0, len(seats))
	for _, ss := range seats {
		st := seatState{Row: ss.Row, Col: ss.Col, Deleted: ss.Deleted}
		if ss.StudentUUID != "" {
			if student := byUUID[ss.StudentUUID]; student != nil {
				dup := *student
				st.Occupant = &dup
			}
		}
		states = append(states, st)
	}
	return Snapshot{states: states}
}

func flattenSeats(seats []*Seat) []SessionSeat {
	out := make([]SessionSeat, 0, len(seats))
	for _, seat := range seats {
		ss := SessionSeat{Row: seat.Row, Col: seat.Col, Deleted: seat.Deleted}
		if seat.Occupant != nil {
			ss.StudentUUID = seat.Occupant.UUID
		}
		out = append(out, ss)
	}
	return out
}

func flattenStates(states []seatState) []SessionSeat {
	out := make([]SessionSeat, 0, len(states))
	for _, st := range states {
		ss := SessionSeat{Row: st.Row, Col: st.Col, Deleted: st.Deleted}
		if st.Occupant != nil {
			ss.StudentUUID = st.Occupant.UUID
		}
		out = append(out, ss)
	}
	return out
}
