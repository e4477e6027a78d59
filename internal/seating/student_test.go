package seating

import (
	"errors"
	"testing"
)

func TestNewStudent(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s, err := NewStudent("  Ana García ", "A-17", GenderFemale, 152, "front row please")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.UUID == "" {
			t.Error("uuid not set")
		}
		if s.Name != "Ana García" {
			t.Errorf("name = %q, want trimmed", s.Name)
		}
		if s.SeatID != "" {
			t.Errorf("new student already cached at %q", s.SeatID)
		}
	})

	t.Run("empty gender defaults to unset", func(t *testing.T) {
		s, err := NewStudent("Bruno", "", "", 0, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Gender != GenderUnset {
			t.Errorf("gender = %q, want unset", s.Gender)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := NewStudent("   ", "", GenderUnset, 0, ""); !errors.Is(err, ErrEmptyName) {
			t.Errorf("blank name: got %v", err)
		}
		if _, err := NewStudent("Ana", "", "other", 0, ""); !errors.Is(err, ErrInvalidGender) {
			t.Errorf("bad gender: got %v", err)
		}
	})
}

func TestGender_Valid(t *testing.T) {
	for _, g := range []Gender{GenderMale, GenderFemale, GenderUnset} {
		if !g.Valid() {
			t.Errorf("%q not valid", g)
		}
	}
	if Gender("x").Valid() {
		t.Error("arbitrary gender accepted")
	}
}

func TestGrid_ResolveStudent(t *testing.T) {
	g := newTestGrid(t, 2, 3, "Ana García", "Bruno Díaz", "Carla Ruiz")
	ana := g.Roster()[0]

	t.Run("uuid is the primary key", func(t *testing.T) {
		got, err := g.ResolveStudent(ana.UUID)
		if err != nil {
			t.Fatalf("ResolveStudent: %v", err)
		}
		if got != ana {
			t.Error("resolved a different student")
		}
	})

	t.Run("exact name fallback", func(t *testing.T) {
		got, err := g.ResolveStudent("bruno díaz")
		if err != nil {
			t.Fatalf("ResolveStudent: %v", err)
		}
		if got.Name != "Bruno Díaz" {
			t.Errorf("resolved %q", got.Name)
		}
	})

	t.Run("fuzzy name fallback", func(t *testing.T) {
		// One substitution away from "Carla Ruiz".
		got, err := g.ResolveStudent("Carla Ruis")
		if err != nil {
			t.Fatalf("ResolveStudent: %v", err)
		}
		if got.Name != "Carla Ruiz" {
			t.Errorf("resolved %q", got.Name)
		}
	})

	t.Run("too distant", func(t *testing.T) {
		if _, err := g.ResolveStudent("Zoe Nadie"); !errors.Is(err, ErrUnknownStudent) {
			t.Errorf("got %v, want ErrUnknownStudent", err)
		}
	})

	t.Run("empty reference", func(t *testing.T) {
		if _, err := g.ResolveStudent("  "); !errors.Is(err, ErrUnknownStudent) {
			t.Errorf("got %v, want ErrUnknownStudent", err)
		}
	})
}

func TestGrid_ResolveStudent_Ambiguity(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	for _, name := range []string{"Luis Pérez", "Luis Pérez"} {
		s, err := NewStudent(name, "", GenderUnset, 0, "")
		if err != nil {
			t.Fatalf("NewStudent: %v", err)
		}
		if err := g.AddStudent(s); err != nil {
			t.Fatalf("AddStudent: %v", err)
		}
	}

	if _, err := g.ResolveStudent("Luis Pérez"); !errors.Is(err, ErrAmbiguousStudent) {
		t.Errorf("duplicate exact names: got %v, want ErrAmbiguousStudent", err)
	}
	if _, err := g.ResolveStudent("Luis Peres"); !errors.Is(err, ErrAmbiguousStudent) {
		t.Errorf("fuzzy tie: got %v, want ErrAmbiguousStudent", err)
	}
}
