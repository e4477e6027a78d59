package seating

import "sort"

// Selection tracks the set of multi-selected seats. Membership has no
// ordering significance; IDs returns a sorted slice purely for deterministic
// iteration. The selection is cleared on layout changes, explicit cancel,
// and bulk arrangements.
type Selection struct {
	ids map[string]bool
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]bool)}
}

// Toggle flips membership of the given seat. With exclusive set, every other
// member is cleared first, so a plain click replaces the selection while a
// modifier click adds or removes a single seat.
func (s *Selection) Toggle(seatID string, exclusive bool) {
	if exclusive {
		was := s.ids[seatID]
		s.ids = map[string]bool{}
		if was {
			return
		}
		s.ids[seatID] = true
		return
	}
	if s.ids[seatID] {
		delete(s.ids, seatID)
		return
	}
	s.ids[seatID] = true
}

// Add inserts seats without toggling, used when merging a marquee result.
func (s *Selection) Add(seatIDs ...string) {
	for _, id := range seatIDs {
		s.ids[id] = true
	}
}

// SelectAll replaces the selection with every given seat.
func (s *Selection) SelectAll(seats []*Seat) {
	s.ids = make(map[string]bool, len(seats))
	for _, seat := range seats {
		s.ids[seat.ID] = true
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = map[string]bool{}
}

// Contains reports membership.
func (s *Selection) Contains(seatID string) bool {
	return s.ids[seatID]
}

// Len returns the number of selected seats.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected seat ids, sorted for deterministic iteration.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
