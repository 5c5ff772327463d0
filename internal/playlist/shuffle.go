package playlist

import (
	"slices"

	"github.com/samber/lo"
)

// ShuffleHistory records the indices played in the current shuffle cycle,
// oldest first.
type ShuffleHistory struct {
	indices []int
}

// Push records index as played.
func (h *ShuffleHistory) Push(index int) {
	h.indices = append(h.indices, index)
}

// Indices returns a copy of the recorded indices.
func (h *ShuffleHistory) Indices() []int {
	return slices.Clone(h.indices)
}

// Contains reports whether index was played in this cycle.
func (h *ShuffleHistory) Contains(index int) bool {
	return slices.Contains(h.indices, index)
}

// Unplayed returns the indices below n that are not in the cycle yet.
func (h *ShuffleHistory) Unplayed(n int) []int {
	return lo.Without(lo.Range(n), h.indices...)
}

// Len returns the number of recorded indices.
func (h *ShuffleHistory) Len() int {
	return len(h.indices)
}

// Reset starts a new cycle. If seed is given, those indices are recorded.
func (h *ShuffleHistory) Reset(seed ...int) {
	h.indices = append(h.indices[:0], seed...)
}

// Remap updates the history after the track at removed was deleted from the
// queue: the removed index is dropped and later indices shift down by one.
func (h *ShuffleHistory) Remap(removed int) {
	out := h.indices[:0]
	for _, i := range h.indices {
		switch {
		case i == removed:
			continue
		case i > removed:
			out = append(out, i-1)
		default:
			out = append(out, i)
		}
	}
	h.indices = out
}

// Move updates the history after a track moved from one index to another.
func (h *ShuffleHistory) Move(from, to int) {
	for k, i := range h.indices {
		h.indices[k] = movedIndex(i, from, to)
	}
}

// movedIndex returns where index i ends up after the element at from is moved
// to to.
func movedIndex(i, from, to int) int {
	switch {
	case i == from:
		return to
	case from < to && i > from && i <= to:
		return i - 1
	case from > to && i >= to && i < from:
		return i + 1
	default:
		return i
	}
}
