package seating

import (
	"errors"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
)

// Student validation and resolution errors.
var (
	ErrEmptyName        = errors.New("student name cannot be empty")
	ErrInvalidGender    = errors.New("gender must be 'male', 'female' or 'unset'")
	ErrUnknownStudent   = errors.New("student not found")
	ErrAmbiguousStudent = errors.New("student reference matches more than one name")
)

// Gender represents a student's registered gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnset  Gender = "unset"
)

// Valid returns true if the gender is a valid value.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnset:
		return true
	default:
		return false
	}
}

// Student represents one member of the class roster.
//
// SeatID is a denormalized cache of the seat currently holding this student.
// It is recomputed by Grid.Resync after every occupancy change; the seat
// collection is the source of truth.
type Student struct {
	UUID       string
	Name       string
	ExternalID string // school-assigned number, free-form
	Gender     Gender
	Height     int // centimeters, 0 when unknown
	Notes      string
	SeatID     string // empty when unseated
}

// NewStudent creates a roster student with a fresh uuid.
func NewStudent(name, externalID string, gender Gender, height int, notes string) (*Student, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if gender == "" {
		gender = GenderUnset
	}
	if !gender.Valid() {
		return nil, ErrInvalidGender
	}
	return &Student{
		UUID:       uuid.NewString(),
		Name:       strings.TrimSpace(name),
		ExternalID: externalID,
		Gender:     gender,
		Height:     height,
		Notes:      notes,
	}, nil
}

// maxNameDistance is the largest edit distance accepted by the fuzzy
// resolution fallback.
const maxNameDistance = 2

// ResolveStudent resolves a free-form reference to a roster student using a
// two-phase policy: the uuid is tried first as the primary key, then the name
// as a fallback key (exact match, then closest fuzzy match within
// maxNameDistance). External inputs such as imported layouts carry names, not
// uuids, which is why the fallback exists.
func (g *Grid) ResolveStudent(ref string) (*Student, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrUnknownStudent
	}

	if s, ok := g.byUUID[ref]; ok {
		return s, nil
	}

	// Exact name match. Ambiguity is an error rather than a silent pick.
	var exact *Student
	for _, s := range g.roster {
		if strings.EqualFold(s.Name, ref) {
			if exact != nil {
				return nil, ErrAmbiguousStudent
			}
			exact = s
		}
	}
	if exact != nil {
		return exact, nil
	}

	// Fuzzy fallback: unique closest name within the distance budget.
	best, bestDist, ties := (*Student)(nil), maxNameDistance+1, 0
	for _, s := range g.roster {
		d := levenshtein.ComputeDistance(strings.ToLower(s.Name), strings.ToLower(ref))
		switch {
		case d < bestDist:
			best, bestDist, ties = s, d, 1
		case d == bestDist:
			ties++
		}
	}
	if best == nil {
		return nil, ErrUnknownStudent
	}
	if ties > 1 {
		return nil, ErrAmbiguousStudent
	}
	return best, nil
}
