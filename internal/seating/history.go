package seating

import (
	"errors"
	"time"
)

// History errors.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// MaxHistory is the number of undo entries retained. Pushing beyond it
// evicts the oldest entry, so redo reaches only entries not yet evicted.
const MaxHistory = 5

// HistoryEntry is a recorded pre-mutation snapshot.
type HistoryEntry struct {
	Action    string // e.g. "Move: Ana García"
	Snapshot  Snapshot
	Timestamp time.Time
}

// History is the bounded LIFO of pre-mutation snapshots. Record runs before
// the mutation it protects, so Undo always yields the state prior to the most
// recently completed action. The index points at the entry the next Undo
// returns; -1 means nothing to undo.
type History struct {
	entries []HistoryEntry
	index   int
	now     func() time.Time // injectable for tests
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{index: -1, now: time.Now}
}

// Record snapshots the grid before a mutation. Forward (redo) entries beyond
// the current index are truncated, the new entry is appended, and the oldest
// entry is evicted once the stack exceeds MaxHistory, clamping the index to
// the topmost slot.
func (h *History) Record(action string, g *Grid) {
	h.entries = h.entries[:h.index+1]
	h.entries = append(h.entries, HistoryEntry{
		Action:    action,
		Snapshot:  g.Snapshot(),
		Timestamp: h.now(),
	})
	if len(h.entries) > MaxHistory {
		h.entries = h.entries[1:]
	}
	h.index = len(h.entries) - 1
}

// CanUndo reports whether an entry is available to undo.
func (h *History) CanUndo() bool {
	return h.index >= 0
}

// CanRedo reports whether a forward entry is available.
func (h *History) CanRedo() bool {
	return h.index+1 < len(h.entries)
}

// Undo returns the entry at the current index and steps backwards.
func (h *History) Undo() (HistoryEntry, error) {
	if h.index < 0 {
		return HistoryEntry{}, ErrNothingToUndo
	}
	e := h.entries[h.index]
	h.index--
	return e, nil
}

// Redo steps forward and returns the entry there.
func (h *History) Redo() (HistoryEntry, error) {
	if h.index+1 >= len(h.entries) {
		return HistoryEntry{}, ErrNothingToRedo
	}
	h.index++
	return h.entries[h.index], nil
}

// dropLast removes the newest entry, used when a mutation recorded ahead of
// time fails and the entry would protect nothing.
func (h *History) dropLast() {
	if len(h.entries) == 0 {
		return
	}
	h.entries = h.entries[:len(h.entries)-1]
	if h.index >= len(h.entries) {
		h.index = len(h.entries) - 1
	}
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Export returns the retained entries and the current index, for
// persistence.
func (h *History) Export() ([]HistoryEntry, int) {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out, h.index
}

// ImportHistory rebuilds a history from persisted entries. The index is
// clamped to the valid range.
func ImportHistory(entries []HistoryEntry, index int) *History {
	h := NewHistory()
	h.entries = append(h.entries, entries...)
	if len(h.entries) > MaxHistory {
		h.entries = h.entries[len(h.entries)-MaxHistory:]
	}
	if index >= len(h.entries) {
		index = len(h.entries) - 1
	}
	if index < -1 {
		index = -1
	}
	h.index = index
	return h
}
