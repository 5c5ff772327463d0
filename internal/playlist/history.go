package playlist

import "slices"

// Snapshot is a saved queue state: its tracks and the current index.
type Snapshot struct {
	Tracks []Track
	Index  int
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{Tracks: slices.Clone(s.Tracks), Index: s.Index}
}

// QueueHistory keeps a bounded list of queue snapshots for undo and redo.
type QueueHistory struct {
	states  []Snapshot
	current int // -1 before the first push
	maxSize int
}

// NewQueueHistory creates a history holding at most maxSize snapshots.
// A non-positive maxSize keeps a single snapshot.
func NewQueueHistory(maxSize int) *QueueHistory {
	maxSize = max(maxSize, 1)
	return &QueueHistory{
		states:  make([]Snapshot, 0, maxSize),
		current: -1,
		maxSize: maxSize,
	}
}

// Push records s, dropping any redo states and the oldest states past the
// size limit.
func (h *QueueHistory) Push(s Snapshot) {
	h.states = append(h.states[:h.current+1], s.clone())
	if excess := len(h.states) - h.maxSize; excess > 0 {
		h.states = slices.Delete(h.states, 0, excess)
	}
	h.current = len(h.states) - 1
}

// Undo steps back one snapshot and returns it.
func (h *QueueHistory) Undo() (Snapshot, bool) {
	if !h.CanUndo() {
		return Snapshot{}, false
	}
	h.current--
	return h.states[h.current].clone(), true
}

// Redo steps forward one snapshot and returns it.
func (h *QueueHistory) Redo() (Snapshot, bool) {
	if !h.CanRedo() {
		return Snapshot{}, false
	}
	h.current++
	return h.states[h.current].clone(), true
}

// CanUndo reports whether an earlier snapshot exists.
func (h *QueueHistory) CanUndo() bool {
	return h.current > 0
}

// CanRedo reports whether a later snapshot exists.
func (h *QueueHistory) CanRedo() bool {
	return h.current < len(h.states)-1
}
