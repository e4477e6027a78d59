package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/pupitre/internal/seating"
)

func TestLoadSession_Empty(t *testing.T) {
	repo := newTestRepo(t)

	session, err := repo.LoadSession(context.Background())
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if session != nil {
		t.Errorf("expected nil session on a fresh database, got %+v", session)
	}
}

func TestSaveSession_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	g, h := newTestSession(t)
	ana := g.Roster()[0]

	h.Record("Move: Ana", g)
	if err := g.Assign(ana.UUID, "1-1"); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	g.Resync()

	if err := repo.SaveSession(ctx, seating.ExportSession(g, h)); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	loaded, err := repo.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected a session")
	}

	g2, h2, dropped, err := loaded.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(dropped) != 0 {
		t.Errorf("unexpected dropped assignments: %v", dropped)
	}
	if !g.Equal(g2) {
		t.Error("rebuilt grid differs from the saved one")
	}
	if !g2.FindSeat("0-2").Deleted {
		t.Error("deleted flag lost in round trip")
	}
	if h2.Len() != 1 || !h2.CanUndo() {
		t.Errorf("history: len=%d canUndo=%v", h2.Len(), h2.CanUndo())
	}

	entry, err := h2.Undo()
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if entry.Action != "Move: Ana" {
		t.Errorf("action = %q, want %q", entry.Action, "Move: Ana")
	}
	if entry.Timestamp.IsZero() {
		t.Error("timestamp lost in round trip")
	}
}

func TestSaveSession_ReplacesPrevious(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	g, h := newTestSession(t)
	if err := repo.SaveSession(ctx, seating.ExportSession(g, h)); err != nil {
		t.Fatalf("first SaveSession failed: %v", err)
	}

	// A second save with a smaller grid must fully replace the first one,
	// leaving no stale seat or student rows behind.
	g2, err := seating.NewGrid(1, 2)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	diego, err := seating.NewStudent("Diego", "", seating.GenderUnset, 0, "")
	if err != nil {
		t.Fatalf("NewStudent failed: %v", err)
	}
	if err := g2.AddStudent(diego); err != nil {
		t.Fatalf("AddStudent failed: %v", err)
	}
	if err := repo.SaveSession(ctx, seating.ExportSession(g2, seating.NewHistory())); err != nil {
		t.Fatalf("second SaveSession failed: %v", err)
	}

	loaded, err := repo.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if loaded.Rows != 1 || loaded.Cols != 2 {
		t.Errorf("dimensions = %dx%d, want 1x2", loaded.Rows, loaded.Cols)
	}
	if len(loaded.Students) != 1 {
		t.Errorf("students = %d, want 1", len(loaded.Students))
	}
	if len(loaded.Seats) != 2 {
		t.Errorf("seats = %d, want 2", len(loaded.Seats))
	}
	if len(loaded.History) != 0 {
		t.Errorf("history entries = %d, want 0", len(loaded.History))
	}
}

func TestSaveSession_HistorySnapshots(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	g, h := newTestSession(t)
	ana, bruno := g.Roster()[0], g.Roster()[1]

	h.Record("Move: Ana", g)
	if err := g.Assign(ana.UUID, "1-0"); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	g.Resync()
	h.Record("Move: Bruno", g)
	if err := g.Assign(bruno.UUID, "1-1"); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	g.Resync()

	if err := repo.SaveSession(ctx, seating.ExportSession(g, h)); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	loaded, err := repo.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if len(loaded.History) != 2 {
		t.Fatalf("history entries = %d, want 2", len(loaded.History))
	}

	// Each snapshot carries its own full seat list.
	for i, entry := range loaded.History {
		if len(entry.Seats) != 6 {
			t.Errorf("snapshot %d has %d seats, want 6", i, len(entry.Seats))
		}
	}

	// Two undos walk back to the original arrangement.
	_, h2, _, err := loaded.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	second, err := h2.Undo()
	if err != nil {
		t.Fatalf("first Undo failed: %v", err)
	}
	if second.Action != "Move: Bruno" {
		t.Errorf("undo order wrong: got %q", second.Action)
	}
	first, err := h2.Undo()
	if err != nil {
		t.Fatalf("second Undo failed: %v", err)
	}
	if first.Action != "Move: Ana" {
		t.Errorf("undo order wrong: got %q", first.Action)
	}
}

func TestSaveSession_TimestampPrecision(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	g, h := newTestSession(t)
	h.Record("Move: Ana", g)

	saved := seating.ExportSession(g, h)
	if err := repo.SaveSession(ctx, saved); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	loaded, err := repo.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	want := saved.History[0].Timestamp.UTC()
	got := loaded.History[0].Timestamp.UTC()
	if !got.Equal(want) {
		t.Errorf("timestamp = %v, want %v", got, want)
	}
}

// newTestSession builds a 2x3 grid with three seated students and one deleted
// seat, the smallest layout that exercises every persisted field.
func newTestSession(t *testing.T) (*seating.Grid, *seating.History) {
	t.Helper()

	g, err := seating.NewGrid(2, 3)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	for _, spec := range []struct {
		name   string
		gender seating.Gender
		height int
	}{
		{"Ana", seating.GenderFemale, 150},
		{"Bruno", seating.GenderMale, 162},
		{"Carla", seating.GenderUnset, 0},
	} {
		s, err := seating.NewStudent(spec.name, "", spec.gender, spec.height, "")
		if err != nil {
			t.Fatalf("NewStudent failed: %v", err)
		}
		if err := g.AddStudent(s); err != nil {
			t.Fatalf("AddStudent failed: %v", err)
		}
	}
	if err := g.DeleteSeat("0-2"); err != nil {
		t.Fatalf("DeleteSeat failed: %v", err)
	}

	return g, seating.NewHistory()
}

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}
