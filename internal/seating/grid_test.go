package seating

import (
	"errors"
	"fmt"
	"testing"
)

// newTestGrid builds a rows×cols grid with the given students seated
// row-major from seat 0-0.
func newTestGrid(t *testing.T, rows, cols int, names ...string) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	seats := g.ActiveSeats()
	if len(names) > len(seats) {
		t.Fatalf("too many students (%d) for %dx%d grid", len(names), rows, cols)
	}
	for i, name := range names {
		s, err := NewStudent(name, fmt.Sprintf("ext-%d", i), GenderUnset, 0, "")
		if err != nil {
			t.Fatalf("NewStudent(%q): %v", name, err)
		}
		if err := g.AddStudent(s); err != nil {
			t.Fatalf("AddStudent(%q): %v", name, err)
		}
		seats[i].Occupant = s
	}
	g.Resync()
	return g
}

// studentAt returns the name of the occupant at the seat, or "" for empty.
func studentAt(t *testing.T, g *Grid, seatID string) string {
	t.Helper()
	seat := g.FindSeat(seatID)
	if seat == nil {
		t.Fatalf("seat %s not found", seatID)
	}
	if seat.Occupant == nil {
		return ""
	}
	return seat.Occupant.Name
}

// checkInjective fails the test if two distinct non-deleted seats reference
// the same student.
func checkInjective(t *testing.T, g *Grid) {
	t.Helper()
	seen := make(map[string]string)
	for _, seat := range g.ActiveSeats() {
		if seat.Occupant == nil {
			continue
		}
		if prev, ok := seen[seat.Occupant.UUID]; ok {
			t.Fatalf("student %s seated at both %s and %s", seat.Occupant.Name, prev, seat.ID)
		}
		seen[seat.Occupant.UUID] = seat.ID
	}
}

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(3, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Seats()) != 12 {
		t.Errorf("expected 12 seats, got %d", len(g.Seats()))
	}
	// Creation order is the row-major scan order.
	if g.Seats()[0].ID != "0-0" || g.Seats()[4].ID != "1-0" || g.Seats()[11].ID != "2-3" {
		t.Errorf("unexpected seat order: %s, %s, %s",
			g.Seats()[0].ID, g.Seats()[4].ID, g.Seats()[11].ID)
	}

	if _, err := NewGrid(0, 4); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewGrid(0, 4) expected ErrInvalidSize, got %v", err)
	}
}

func TestGrid_Assign(t *testing.T) {
	t.Run("move to empty seat", func(t *testing.T) {
		g := newTestGrid(t, 2, 2, "Ana")
		ana := g.Roster()[0]

		if err := g.Assign(ana.UUID, "1-1"); err != nil {
			t.Fatalf("Assign: %v", err)
		}
		g.Resync()

		if got := studentAt(t, g, "1-1"); got != "Ana" {
			t.Errorf("seat 1-1 holds %q, want Ana", got)
		}
		if got := studentAt(t, g, "0-0"); got != "" {
			t.Errorf("seat 0-0 holds %q, want empty", got)
		}
		if ana.SeatID != "1-1" {
			t.Errorf("seat cache = %q, want 1-1", ana.SeatID)
		}
		checkInjective(t, g)
	})

	t.Run("move to occupied seat swaps", func(t *testing.T) {
		g := newTestGrid(t, 2, 2, "Ana", "Bruno")
		ana := g.Roster()[0]

		if err := g.Assign(ana.UUID, "0-1"); err != nil {
			t.Fatalf("Assign: %v", err)
		}
		g.Resync()

		if got := studentAt(t, g, "0-1"); got != "Ana" {
			t.Errorf("seat 0-1 holds %q, want Ana", got)
		}
		if got := studentAt(t, g, "0-0"); got != "Bruno" {
			t.Errorf("seat 0-0 holds %q, want Bruno", got)
		}
		checkInjective(t, g)
	})

	t.Run("swap symmetry", func(t *testing.T) {
		// Swapping back restores the original arrangement exactly.
		g := newTestGrid(t, 2, 2, "Ana", "Bruno")
		before := g.Clone()
		ana := g.Roster()[0]

		if err := g.Assign(ana.UUID, "0-1"); err != nil {
			t.Fatalf("first swap: %v", err)
		}
		if err := g.Assign(ana.UUID, "0-0"); err != nil {
			t.Fatalf("second swap: %v", err)
		}
		g.Resync()

		if !g.Equal(before) {
			t.Error("double swap did not restore the original grid")
		}
	})

	t.Run("already seated is a no-op", func(t *testing.T) {
		g := newTestGrid(t, 2, 2, "Ana")
		before := g.Clone()
		if err := g.Assign(g.Roster()[0].UUID, "0-0"); err != nil {
			t.Fatalf("Assign: %v", err)
		}
		if !g.Equal(before) {
			t.Error("no-op assign changed the grid")
		}
	})

	t.Run("errors", func(t *testing.T) {
		g := newTestGrid(t, 2, 2, "Ana")
		ana := g.Roster()[0]

		if err := g.Assign(ana.UUID, "9-9"); !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("missing seat: got %v, want ErrInvalidTarget", err)
		}
		if err := g.DeleteSeat("1-0"); err != nil {
			t.Fatalf("DeleteSeat: %v", err)
		}
		if err := g.Assign(ana.UUID, "1-0"); !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("deleted seat: got %v, want ErrInvalidTarget", err)
		}
		if err := g.Assign("no-such-uuid", "1-1"); !errors.Is(err, ErrUnknownStudent) {
			t.Errorf("unknown student: got %v, want ErrUnknownStudent", err)
		}
	})
}

func TestGrid_Remove(t *testing.T) {
	g := newTestGrid(t, 2, 2, "Ana")
	g.Remove("0-0")
	g.Resync()
	if got := studentAt(t, g, "0-0"); got != "" {
		t.Errorf("seat 0-0 holds %q after Remove", got)
	}
	if g.Roster()[0].SeatID != "" {
		t.Errorf("seat cache = %q, want empty", g.Roster()[0].SeatID)
	}
	// Removing an empty or unknown seat is a no-op.
	g.Remove("0-0")
	g.Remove("9-9")
}

func TestGrid_DeleteSeat(t *testing.T) {
	g := newTestGrid(t, 2, 2, "Ana")

	t.Run("empty seat succeeds", func(t *testing.T) {
		if err := g.DeleteSeat("1-0"); err != nil {
			t.Fatalf("DeleteSeat: %v", err)
		}
		if !g.FindSeat("1-0").Deleted {
			t.Error("seat 1-0 not marked deleted")
		}
		// Deleted seats stay in the collection but leave the active set.
		if len(g.Seats()) != 4 {
			t.Errorf("seat collection shrank to %d", len(g.Seats()))
		}
		if len(g.ActiveSeats()) != 3 {
			t.Errorf("active seats = %d, want 3", len(g.ActiveSeats()))
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		if err := g.DeleteSeat("1-0"); err != nil {
			t.Fatalf("second DeleteSeat: %v", err)
		}
	})

	t.Run("occupied seat fails", func(t *testing.T) {
		if err := g.DeleteSeat("0-0"); !errors.Is(err, ErrSeatOccupied) {
			t.Errorf("got %v, want ErrSeatOccupied", err)
		}
		if g.FindSeat("0-0").Deleted {
			t.Error("occupied seat was deleted")
		}
	})

	t.Run("missing seat fails", func(t *testing.T) {
		if err := g.DeleteSeat("9-9"); !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("got %v, want ErrInvalidTarget", err)
		}
	})

	t.Run("restore", func(t *testing.T) {
		if err := g.RestoreSeat("1-0"); err != nil {
			t.Fatalf("RestoreSeat: %v", err)
		}
		if g.FindSeat("1-0").Deleted {
			t.Error("seat still deleted after restore")
		}
	})
}

func TestGrid_Resync(t *testing.T) {
	g := newTestGrid(t, 2, 2, "Ana", "Bruno")
	ana := g.Roster()[0]

	// Stale cache gets recomputed.
	ana.SeatID = "bogus"
	g.Resync()
	if ana.SeatID != "0-0" {
		t.Errorf("seat cache = %q, want 0-0", ana.SeatID)
	}

	// Idempotent.
	g.Resync()
	if ana.SeatID != "0-0" {
		t.Errorf("second resync changed cache to %q", ana.SeatID)
	}
}

func TestGrid_Relink(t *testing.T) {
	g := newTestGrid(t, 2, 2, "Ana", "Bruno")
	ana := g.Roster()[0]

	// Simulate a restored snapshot: occupants are value copies.
	snap := g.Snapshot()
	g.RestoreSnapshot(snap)
	if g.FindSeat("0-0").Occupant == ana {
		t.Fatal("restored occupant unexpectedly canonical before relink")
	}

	dropped := g.Relink()
	if len(dropped) != 0 {
		t.Fatalf("dropped %v, want none", dropped)
	}
	if g.FindSeat("0-0").Occupant != ana {
		t.Error("relink did not restore the canonical student")
	}
}

func TestGrid_RelinkDropsUnknownStudents(t *testing.T) {
	g := newTestGrid(t, 2, 2, "Ana", "Bruno")
	snap := g.Snapshot()

	bruno := g.Roster()[1]
	if err := g.RemoveStudent(bruno.UUID); err != nil {
		t.Fatalf("RemoveStudent: %v", err)
	}

	g.RestoreSnapshot(snap)
	dropped := g.Relink()
	if len(dropped) != 1 || dropped[0] != bruno.UUID {
		t.Fatalf("dropped = %v, want [%s]", dropped, bruno.UUID)
	}
	if got := studentAt(t, g, "0-1"); got != "" {
		t.Errorf("seat 0-1 holds %q, want empty after dropping Bruno", got)
	}
	checkInjective(t, g)
}

func TestGrid_RemoveStudent(t *testing.T) {
	g := newTestGrid(t, 2, 2, "Ana", "Bruno")
	ana := g.Roster()[0]

	if err := g.RemoveStudent(ana.UUID); err != nil {
		t.Fatalf("RemoveStudent: %v", err)
	}
	if got := studentAt(t, g, "0-0"); got != "" {
		t.Errorf("seat 0-0 holds %q, want empty", got)
	}
	if len(g.Roster()) != 1 {
		t.Errorf("roster size = %d, want 1", len(g.Roster()))
	}
	if err := g.RemoveStudent("nope"); !errors.Is(err, ErrUnknownStudent) {
		t.Errorf("got %v, want ErrUnknownStudent", err)
	}
}

func TestGrid_Clone(t *testing.T) {
	g := newTestGrid(t, 2, 3, "Ana", "Bruno", "Carla")
	if err := g.DeleteSeat("1-2"); err != nil {
		t.Fatalf("DeleteSeat: %v", err)
	}

	clone := g.Clone()
	if !g.Equal(clone) {
		t.Fatal("clone differs from original")
	}

	// Mutating the clone must not touch the original.
	clone.Remove("0-0")
	if studentAt(t, g, "0-0") != "Ana" {
		t.Error("mutating clone affected the original grid")
	}
}
