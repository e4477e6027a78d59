package seating

import (
	"fmt"
	"math/rand"
	"sort"
)

// Layout is a full seat→student assignment produced by a bulk arrangement
// collaborator (shuffle, ordering rule, imported suggestion). Seats absent
// from the map end up empty. A layout is applied atomically under a single
// history record, never seat by seat.
type Layout map[string]string // seat id → student uuid

// ApplyLayout validates and applies a complete layout. Validation runs
// first; any error leaves the grid byte-for-byte unchanged and writes no
// history.
func ApplyLayout(g *Grid, h *History, action string, layout Layout) error {
	seen := make(map[string]string, len(layout))
	for seatID, studentUUID := range layout {
		seat := g.FindSeat(seatID)
		if seat == nil || seat.Deleted {
			return fmt.Errorf("seat %s: %w", seatID, ErrInvalidTarget)
		}
		if g.FindStudentByUUID(studentUUID) == nil {
			return fmt.Errorf("student %s: %w", studentUUID, ErrUnknownStudent)
		}
		if prev, ok := seen[studentUUID]; ok {
			return fmt.Errorf("student %s assigned to both %s and %s", studentUUID, prev, seatID)
		}
		seen[studentUUID] = seatID
	}

	h.Record(action, g)
	for _, seat := range g.seats {
		seat.Occupant = nil
	}
	for seatID, studentUUID := range layout {
		g.byID[seatID].Occupant = g.byUUID[studentUUID]
	}
	g.Resync()
	return nil
}

// ShuffleLayout deals the whole roster onto the active seats in random
// order. The rng is injected so arrangements are reproducible in tests.
func ShuffleLayout(g *Grid, rng *rand.Rand) Layout {
	students := append([]*Student(nil), g.roster...)
	rng.Shuffle(len(students), func(i, j int) {
		students[i], students[j] = students[j], students[i]
	})
	return fillRowMajor(g, students)
}

// OrderedLayout seats the roster row-major (front row first) in the order
// given by less.
func OrderedLayout(g *Grid, less func(a, b *Student) bool) Layout {
	students := append([]*Student(nil), g.roster...)
	sort.SliceStable(students, func(i, j int) bool { return less(students[i], students[j]) })
	return fillRowMajor(g, students)
}

// ByName orders students alphabetically.
func ByName(a, b *Student) bool { return a.Name < b.Name }

// ByHeight orders students shortest first, so shorter students end up in the
// front rows where they can see the board.
func ByHeight(a, b *Student) bool {
	if a.Height != b.Height {
		return a.Height < b.Height
	}
	return a.Name < b.Name
}

// AlternateGenderLayout seats students alternating gender along the
// row-major scan, drawing from the remaining group once one side runs out.
// Students with unset gender are appended at the end.
func AlternateGenderLayout(g *Grid) Layout {
	var male, female, rest []*Student
	for _, s := range g.roster {
		switch s.Gender {
		case GenderMale:
			male = append(male, s)
		case GenderFemale:
			female = append(female, s)
		default:
			rest = append(rest, s)
		}
	}

	ordered := make([]*Student, 0, len(g.roster))
	takeMale := len(male) >= len(female)
	for len(male) > 0 || len(female) > 0 {
		if (takeMale && len(male) > 0) || len(female) == 0 {
			ordered = append(ordered, male[0])
			male = male[1:]
		} else {
			ordered = append(ordered, female[0])
			female = female[1:]
		}
		takeMale = !takeMale
	}
	ordered = append(ordered, rest...)
	return fillRowMajor(g, ordered)
}

// fillRowMajor assigns students to active seats in creation order, dropping
// any surplus students (they stay unseated).
func fillRowMajor(g *Grid, students []*Student) Layout {
	layout := make(Layout)
	seats := g.ActiveSeats()
	for i, s := range students {
		if i >= len(seats) {
			break
		}
		layout[seats[i].ID] = s.UUID
	}
	return layout
}
