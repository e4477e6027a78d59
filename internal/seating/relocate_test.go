package seating

import (
	"errors"
	"testing"
)

func TestPlanSingleMove(t *testing.T) {
	g := newTestGrid(t, 2, 2, "Ana", "Bruno")

	t.Run("occupied target", func(t *testing.T) {
		plan, err := PlanSingleMove(g, "0-0", "0-1")
		if err != nil {
			t.Fatalf("PlanSingleMove: %v", err)
		}
		if plan.TargetOccupant.Name != "Ana" {
			t.Errorf("target occupant = %q, want Ana", plan.TargetOccupant.Name)
		}
		if plan.Displaced == nil || plan.Displaced.Name != "Bruno" {
			t.Errorf("displaced = %v, want Bruno", plan.Displaced)
		}
	})

	t.Run("empty target", func(t *testing.T) {
		plan, err := PlanSingleMove(g, "0-0", "1-1")
		if err != nil {
			t.Fatalf("PlanSingleMove: %v", err)
		}
		if plan.Displaced != nil {
			t.Errorf("displaced = %v, want nil", plan.Displaced)
		}
	})

	t.Run("planning does not mutate", func(t *testing.T) {
		before := g.Clone()
		if _, err := PlanSingleMove(g, "0-0", "0-1"); err != nil {
			t.Fatalf("PlanSingleMove: %v", err)
		}
		if !g.Equal(before) {
			t.Error("planning mutated the grid")
		}
	})

	t.Run("errors", func(t *testing.T) {
		if _, err := PlanSingleMove(g, "0-0", "9-9"); !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("missing target: got %v", err)
		}
		if _, err := PlanSingleMove(g, "1-0", "1-1"); !errors.Is(err, ErrRelocationRejected) {
			t.Errorf("empty source: got %v", err)
		}
	})
}

func TestBlockMove_SingleSeatSwap(t *testing.T) {
	// 2×2, A at 0-0 and B at 1-1. Moving block {0-0} onto 1-1 must swap.
	g := newTestGrid(t, 2, 2, "Ana")
	b, err := NewStudent("Bruno", "", GenderUnset, 0, "")
	if err != nil {
		t.Fatalf("NewStudent: %v", err)
	}
	if err := g.AddStudent(b); err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
	if err := g.Assign(b.UUID, "1-1"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	g.Resync()

	plan, err := PlanBlockMove(g, []string{"0-0"}, "0-0", "1-1")
	if err != nil {
		t.Fatalf("PlanBlockMove: %v", err)
	}
	if len(plan.Positions) != 1 {
		t.Fatalf("positions = %d, want 1", len(plan.Positions))
	}
	pos := plan.Positions[0]
	if pos.SourceID != "0-0" || pos.TargetID != "1-1" || pos.Occupant.Name != "Ana" {
		t.Errorf("position = %+v", pos)
	}
	if len(plan.Displaced) != 1 || plan.Displaced[0].Student.Name != "Bruno" {
		t.Fatalf("displaced = %+v, want Bruno", plan.Displaced)
	}
	if len(plan.NetVacated) != 1 || plan.NetVacated[0] != "0-0" {
		t.Fatalf("net vacated = %v, want [0-0]", plan.NetVacated)
	}

	ApplyBlockMove(g, plan)
	g.Resync()

	if got := studentAt(t, g, "1-1"); got != "Ana" {
		t.Errorf("seat 1-1 holds %q, want Ana", got)
	}
	if got := studentAt(t, g, "0-0"); got != "Bruno" {
		t.Errorf("seat 0-0 holds %q, want Bruno", got)
	}
	checkInjective(t, g)
}

func TestBlockMove_Rejections(t *testing.T) {
	newFixture := func(t *testing.T) *Grid {
		return newTestGrid(t, 3, 3, "Ana", "Bruno", "Carla")
	}

	tests := []struct {
		name     string
		prepare  func(t *testing.T, g *Grid)
		selected []string
		anchor   string
		target   string
	}{
		{
			name:     "offset pushes block out of bounds",
			selected: []string{"0-1", "0-2"},
			anchor:   "0-1",
			target:   "0-2", // 0-2 would land on 0-3
		},
		{
			name: "translated seat lands on deleted seat",
			prepare: func(t *testing.T, g *Grid) {
				if err := g.DeleteSeat("1-1"); err != nil {
					t.Fatalf("DeleteSeat: %v", err)
				}
			},
			selected: []string{"0-0", "0-1"},
			anchor:   "0-0",
			target:   "1-0",
		},
		{
			name:     "anchor outside selection",
			selected: []string{"0-0"},
			anchor:   "0-1",
			target:   "1-1",
		},
		{
			name: "drop on deleted seat",
			prepare: func(t *testing.T, g *Grid) {
				if err := g.DeleteSeat("2-2"); err != nil {
					t.Fatalf("DeleteSeat: %v", err)
				}
			},
			selected: []string{"0-0"},
			anchor:   "0-0",
			target:   "2-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newFixture(t)
			if tt.prepare != nil {
				tt.prepare(t, g)
			}
			before := g.Clone()

			_, err := PlanBlockMove(g, tt.selected, tt.anchor, tt.target)
			if !errors.Is(err, ErrRelocationRejected) {
				t.Fatalf("got %v, want ErrRelocationRejected", err)
			}
			// Rejection must leave the grid untouched.
			if !g.Equal(before) {
				t.Error("rejected plan mutated the grid")
			}
		})
	}
}

func TestBlockMove_DisplacementPairing(t *testing.T) {
	// Column {0-0,1-0,2-0} holding Ana, Bruno, Carla shifts one column
	// right, displacing Diego (0-1) and Eva (2-1). The displaced students
	// backfill the vacated column pairing both row-major orders.
	g := newTestGrid(t, 3, 3, "Ana")
	seatings := []struct {
		name string
		seat string
	}{
		{"Bruno", "1-0"},
		{"Carla", "2-0"},
		{"Diego", "0-1"},
		{"Eva", "2-1"},
	}
	for _, sp := range seatings {
		s, err := NewStudent(sp.name, "", GenderUnset, 0, "")
		if err != nil {
			t.Fatalf("NewStudent: %v", err)
		}
		if err := g.AddStudent(s); err != nil {
			t.Fatalf("AddStudent: %v", err)
		}
		if err := g.Assign(s.UUID, sp.seat); err != nil {
			t.Fatalf("Assign %s: %v", sp.seat, err)
		}
	}
	g.Resync()

	plan, err := PlanBlockMove(g, []string{"2-0", "0-0", "1-0"}, "0-0", "0-1")
	if err != nil {
		t.Fatalf("PlanBlockMove: %v", err)
	}

	if len(plan.Displaced) != 2 ||
		plan.Displaced[0].Student.Name != "Diego" || plan.Displaced[0].FromSeatID != "0-1" ||
		plan.Displaced[1].Student.Name != "Eva" || plan.Displaced[1].FromSeatID != "2-1" {
		t.Fatalf("displaced = %+v, want Diego(0-1) then Eva(2-1)", plan.Displaced)
	}
	wantVacated := []string{"0-0", "1-0", "2-0"}
	if len(plan.NetVacated) != 3 {
		t.Fatalf("net vacated = %v, want %v", plan.NetVacated, wantVacated)
	}
	for i, want := range wantVacated {
		if plan.NetVacated[i] != want {
			t.Fatalf("net vacated = %v, want %v", plan.NetVacated, wantVacated)
		}
	}

	ApplyBlockMove(g, plan)
	g.Resync()

	want := map[string]string{
		"0-1": "Ana",
		"1-1": "Bruno",
		"2-1": "Carla",
		"0-0": "Diego", // first displaced → first vacated
		"1-0": "Eva",   // second displaced → second vacated
		"2-0": "",
	}
	for seatID, name := range want {
		if got := studentAt(t, g, seatID); got != name {
			t.Errorf("seat %s holds %q, want %q", seatID, got, name)
		}
	}
	checkInjective(t, g)
}

func TestBlockMove_OverlappingShift(t *testing.T) {
	// Shifting {0-0,0-1} one seat right overlaps itself; the two-phase
	// clear-then-write must not lose Bruno.
	g := newTestGrid(t, 1, 3, "Ana", "Bruno")

	plan, err := PlanBlockMove(g, []string{"0-0", "0-1"}, "0-0", "0-1")
	if err != nil {
		t.Fatalf("PlanBlockMove: %v", err)
	}
	if len(plan.Displaced) != 0 {
		t.Fatalf("displaced = %+v, want none (0-1 is inside the block)", plan.Displaced)
	}
	if len(plan.NetVacated) != 1 || plan.NetVacated[0] != "0-0" {
		t.Fatalf("net vacated = %v, want [0-0]", plan.NetVacated)
	}

	ApplyBlockMove(g, plan)
	g.Resync()

	for seatID, name := range map[string]string{"0-0": "", "0-1": "Ana", "0-2": "Bruno"} {
		if got := studentAt(t, g, seatID); got != name {
			t.Errorf("seat %s holds %q, want %q", seatID, got, name)
		}
	}
	checkInjective(t, g)
}

func TestBlockMove_EmptySeatTravelsWithBlock(t *testing.T) {
	// An empty selected seat translates too: whatever it lands on is
	// displaced even though nothing takes the spot.
	g := newTestGrid(t, 1, 3, "Ana")
	carla, err := NewStudent("Carla", "", GenderUnset, 0, "")
	if err != nil {
		t.Fatalf("NewStudent: %v", err)
	}
	if err := g.AddStudent(carla); err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
	if err := g.Assign(carla.UUID, "0-2"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	g.Resync()

	plan, err := PlanBlockMove(g, []string{"0-0", "0-1"}, "0-0", "0-1")
	if err != nil {
		t.Fatalf("PlanBlockMove: %v", err)
	}
	if len(plan.Displaced) != 1 || plan.Displaced[0].Student.Name != "Carla" {
		t.Fatalf("displaced = %+v, want Carla", plan.Displaced)
	}

	ApplyBlockMove(g, plan)
	g.Resync()

	for seatID, name := range map[string]string{"0-0": "Carla", "0-1": "Ana", "0-2": ""} {
		if got := studentAt(t, g, seatID); got != name {
			t.Errorf("seat %s holds %q, want %q", seatID, got, name)
		}
	}
	checkInjective(t, g)
}

func TestApplyBlockMove_DetachesWhenVacatedSeatVanishes(t *testing.T) {
	// A seat deleted between planning and applying removes a backfill
	// target; the surplus displaced student is detached, not dropped from
	// the roster.
	g := newTestGrid(t, 3, 3)
	names := map[string]string{"0-0": "Ana", "1-0": "Bruno", "0-1": "Diego", "1-1": "Eva"}
	for seatID, name := range names {
		s, err := NewStudent(name, "", GenderUnset, 0, "")
		if err != nil {
			t.Fatalf("NewStudent: %v", err)
		}
		if err := g.AddStudent(s); err != nil {
			t.Fatalf("AddStudent: %v", err)
		}
		if err := g.Assign(s.UUID, seatID); err != nil {
			t.Fatalf("Assign: %v", err)
		}
	}
	g.Resync()

	plan, err := PlanBlockMove(g, []string{"0-0", "1-0"}, "0-0", "0-1")
	if err != nil {
		t.Fatalf("PlanBlockMove: %v", err)
	}

	// Mid-gesture, seat 1-0 empties and is deleted.
	g.Remove("1-0")
	if err := g.DeleteSeat("1-0"); err != nil {
		t.Fatalf("DeleteSeat: %v", err)
	}

	ApplyBlockMove(g, plan)
	g.Resync()

	if got := studentAt(t, g, "0-0"); got != "Diego" {
		t.Errorf("seat 0-0 holds %q, want Diego", got)
	}
	eva, err := g.ResolveStudent("Eva")
	if err != nil {
		t.Fatalf("ResolveStudent: %v", err)
	}
	if eva.SeatID != "" {
		t.Errorf("Eva still cached at %q, want detached", eva.SeatID)
	}
	if g.FindStudentByUUID(eva.UUID) == nil {
		t.Error("Eva fell off the roster")
	}
}
