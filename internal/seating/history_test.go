package seating

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestHistory_RecordBeforeMutationUndoRestores(t *testing.T) {
	g := newTestGrid(t, 2, 2, "Ana")
	h := NewHistory()
	ana := g.Roster()[0]

	h.Record("Move: Ana", g)
	if err := g.Assign(ana.UUID, "1-1"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	g.Resync()

	entry, err := h.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if entry.Action != "Move: Ana" {
		t.Errorf("action = %q", entry.Action)
	}
	g.RestoreSnapshot(entry.Snapshot)
	g.Relink()

	if got := studentAt(t, g, "0-0"); got != "Ana" {
		t.Errorf("after undo seat 0-0 holds %q, want Ana", got)
	}
	if got := studentAt(t, g, "1-1"); got != "" {
		t.Errorf("after undo seat 1-1 holds %q, want empty", got)
	}
	// Restored occupants must be the canonical roster instances.
	if g.FindSeat("0-0").Occupant != ana {
		t.Error("occupant is not the canonical roster student")
	}
}

func TestHistory_Bounded(t *testing.T) {
	g := newTestGrid(t, 3, 3, "Ana")
	ana := g.Roster()[0]
	h := NewHistory()

	// Eight successive moves; only the five most recent survive.
	seats := []string{"0-1", "0-2", "1-0", "1-1", "1-2", "2-0", "2-1", "2-2"}
	for i, seatID := range seats {
		h.Record(fmt.Sprintf("move %d", i+1), g)
		if err := g.Assign(ana.UUID, seatID); err != nil {
			t.Fatalf("Assign %s: %v", seatID, err)
		}
		g.Resync()
	}

	if h.Len() != MaxHistory {
		t.Fatalf("history holds %d entries, want %d", h.Len(), MaxHistory)
	}

	// Undo yields the five prior states in reverse chronological order.
	// Move i was recorded with Ana still at her previous seat, so the
	// surviving entries (moves 8 down to 4) captured her at:
	wantPrior := []string{"2-1", "2-0", "1-2", "1-1", "1-0"}
	for i, want := range wantPrior {
		entry, err := h.Undo()
		if err != nil {
			t.Fatalf("undo %d: %v", i+1, err)
		}
		if entry.Action != fmt.Sprintf("move %d", 8-i) {
			t.Errorf("undo %d action = %q", i+1, entry.Action)
		}
		g.RestoreSnapshot(entry.Snapshot)
		g.Relink()
		if g.Roster()[0].SeatID != want {
			t.Errorf("undo %d: Ana at %s, want %s", i+1, g.Roster()[0].SeatID, want)
		}
	}

	// The sixth undo finds an evicted entry: nothing left.
	if _, err := h.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("sixth undo: got %v, want ErrNothingToUndo", err)
	}
}

func TestHistory_RedoTruncatedByRecord(t *testing.T) {
	g := newTestGrid(t, 2, 2, "Ana")
	h := NewHistory()

	h.Record("a", g)
	h.Record("b", g)
	h.Record("c", g)

	if _, err := h.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if _, err := h.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !h.CanRedo() {
		t.Fatal("expected redo available after two undos")
	}

	// A new record discards the forward entries.
	h.Record("d", g)
	if h.CanRedo() {
		t.Error("redo still available after record")
	}
	if h.Len() != 2 {
		t.Errorf("history holds %d entries, want 2", h.Len())
	}

	entry, err := h.Undo()
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if entry.Action != "d" {
		t.Errorf("undo returned %q, want d", entry.Action)
	}
}

func TestHistory_RedoBounds(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	h := NewHistory()

	if _, err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("redo on empty history: got %v, want ErrNothingToRedo", err)
	}

	h.Record("a", g)
	if _, err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("redo at top: got %v, want ErrNothingToRedo", err)
	}

	if _, err := h.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	entry, err := h.Redo()
	if err != nil {
		t.Fatalf("redo: %v", err)
	}
	if entry.Action != "a" {
		t.Errorf("redo returned %q, want a", entry.Action)
	}
}

func TestHistory_CanUndoCanRedo(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	h := NewHistory()

	if h.CanUndo() || h.CanRedo() {
		t.Error("fresh history reports available entries")
	}
	h.Record("a", g)
	if !h.CanUndo() || h.CanRedo() {
		t.Error("after record: want CanUndo, not CanRedo")
	}
	if _, err := h.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if h.CanUndo() || !h.CanRedo() {
		t.Error("after undo: want CanRedo, not CanUndo")
	}
}

func TestHistory_SnapshotsAreIndependent(t *testing.T) {
	g := newTestGrid(t, 2, 2, "Ana")
	h := NewHistory()
	h.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }

	h.Record("a", g)
	// Mutate the grid after recording; the snapshot must not follow.
	g.Remove("0-0")
	g.Resync()

	entry, err := h.Undo()
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if entry.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
	g.RestoreSnapshot(entry.Snapshot)
	g.Relink()
	if got := studentAt(t, g, "0-0"); got != "Ana" {
		t.Errorf("snapshot aliased live state; seat 0-0 holds %q", got)
	}
}
