package playlist

import (
	"slices"

	"github.com/llehouerou/cadence/internal/sequence"
)

// PlayingQueue wraps a Playlist with playback position and modes.
// It is not safe for concurrent use; the playback service serialises access.
type PlayingQueue struct {
	playlist     *Playlist
	currentIndex int // -1 if nothing playing
	repeatMode   sequence.RepeatMode
	shuffle      bool
	history      ShuffleHistory
	rand         sequence.RandFunc
}

// QueueOption configures a PlayingQueue.
type QueueOption func(*PlayingQueue)

// WithRand sets the random source used for shuffle picks.
func WithRand(fn sequence.RandFunc) QueueOption {
	return func(q *PlayingQueue) { q.rand = fn }
}

// NewQueue creates a new empty playing queue.
func NewQueue(opts ...QueueOption) *PlayingQueue {
	q := &PlayingQueue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Current returns the current track, or nil if none.
func (q *PlayingQueue) Current() *Track {
	return q.playlist.Track(q.currentIndex)
}

// CurrentIndex returns the index of the current track (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

func (q *PlayingQueue) hasCurrent() bool {
	return q.currentIndex >= 0 && q.currentIndex < q.playlist.Len()
}

func (q *PlayingQueue) nextIndex() int {
	if q.shuffling() {
		// The last unplayed track closes the cycle.
		left := q.history.Unplayed(q.playlist.Len())
		if len(left) == 1 && left[0] != q.currentIndex {
			return left[0]
		}
	}
	return sequence.NextIndex(
		q.currentIndex,
		q.playlist.Len(),
		q.repeatMode,
		q.shuffle,
		q.history.Indices(),
		sequence.WithRand(q.rand),
	)
}

func (q *PlayingQueue) shuffling() bool {
	return q.shuffle && q.repeatMode != sequence.RepeatOne
}

// Next advances to the next track according to the repeat and shuffle modes
// and returns it. Returns nil, leaving the position unchanged, at the end of
// the queue or when nothing is playing.
func (q *PlayingQueue) Next() *Track {
	if !q.hasCurrent() {
		return nil
	}
	idx := q.nextIndex()
	if idx == sequence.End {
		return nil
	}
	if q.shuffling() {
		q.recordShuffle(idx)
	}
	q.currentIndex = idx
	return q.Current()
}

// recordShuffle adds an accepted shuffle pick to the history. Once every
// track has played the cycle restarts from the pick.
func (q *PlayingQueue) recordShuffle(idx int) {
	q.history.Push(idx)
	if q.history.Len() >= q.playlist.Len() {
		q.history.Reset(idx)
	}
}

// PeekNext returns the track Next would move to without moving.
// Shuffle picks are random, so PeekNext returns nil while shuffling.
func (q *PlayingQueue) PeekNext() *Track {
	if !q.hasCurrent() || q.shuffling() {
		return nil
	}
	idx := q.nextIndex()
	if idx == sequence.End {
		return nil
	}
	return q.playlist.Track(idx)
}

// HasNext returns true if Next would return a track.
func (q *PlayingQueue) HasNext() bool {
	if !q.hasCurrent() {
		return false
	}
	if q.shuffle || q.repeatMode != sequence.RepeatOff {
		return true
	}
	return q.currentIndex < q.playlist.Len()-1
}

// Previous moves one track back, stopping at the first track, and returns it.
// Previous is linear regardless of shuffle and repeat.
// Returns nil when nothing is playing.
func (q *PlayingQueue) Previous() *Track {
	if !q.hasCurrent() {
		return nil
	}
	q.currentIndex = sequence.PreviousIndex(q.currentIndex, q.playlist.Len())
	return q.Current()
}

// HasPrevious returns true if Previous would move to another track.
func (q *PlayingQueue) HasPrevious() bool {
	return q.hasCurrent() && q.currentIndex > 0
}

// JumpTo sets the current index to the specified position.
// Returns the track at that position, or nil if invalid.
func (q *PlayingQueue) JumpTo(index int) *Track {
	if index < 0 || index >= q.playlist.Len() {
		return nil
	}
	q.currentIndex = index
	if q.shuffle && !q.history.Contains(index) {
		q.history.Push(index)
	}
	return q.Current()
}

// Add appends tracks to the queue without changing playback.
func (q *PlayingQueue) Add(tracks ...Track) {
	q.playlist.Add(tracks...)
}

// AddAndPlay appends tracks and jumps to the first added track.
// Returns the track to play.
func (q *PlayingQueue) AddAndPlay(tracks ...Track) *Track {
	if len(tracks) == 0 {
		return nil
	}
	insertIndex := q.playlist.Len()
	q.playlist.Add(tracks...)
	return q.JumpTo(insertIndex)
}

// Replace clears the queue, adds tracks and moves to index 0.
// Returns the first track to play.
func (q *PlayingQueue) Replace(tracks ...Track) *Track {
	q.Clear()
	if len(tracks) == 0 {
		return nil
	}
	q.playlist.Add(tracks...)
	return q.JumpTo(0)
}

// RemoveAt removes the track at the given index.
// Removing the current track leaves the queue with no current track, so
// playback ends when that track finishes.
func (q *PlayingQueue) RemoveAt(index int) bool {
	if !q.playlist.Remove(index) {
		return false
	}

	switch {
	case q.currentIndex > index:
		q.currentIndex--
	case q.currentIndex == index:
		q.currentIndex = -1
	}
	q.history.Remap(index)
	return true
}

// Move relocates a single track, keeping the current track current.
func (q *PlayingQueue) Move(from, to int) bool {
	if !q.playlist.Move(from, to) {
		return false
	}
	if q.currentIndex >= 0 {
		q.currentIndex = movedIndex(q.currentIndex, from, to)
	}
	q.history.Move(from, to)
	return true
}

// MoveIndices shifts the tracks at indices by delta positions as a block.
// Returns the new indices, or false if any track would leave the queue.
func (q *PlayingQueue) MoveIndices(indices []int, delta int) ([]int, bool) {
	if len(indices) == 0 {
		return nil, false
	}
	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	if sorted[0]+delta < 0 || sorted[len(sorted)-1]+delta >= q.playlist.Len() {
		return nil, false
	}

	step := 1
	if delta < 0 {
		step = -1
	} else {
		// Moving down: the bottom track moves first.
		slices.Reverse(sorted)
	}
	for range delta * step {
		for k, idx := range sorted {
			q.Move(idx, idx+step)
			sorted[k] = idx + step
		}
	}

	if step > 0 {
		slices.Reverse(sorted)
	}
	return sorted, true
}

// Clear removes all tracks and resets playback.
func (q *PlayingQueue) Clear() {
	q.playlist.Clear()
	q.currentIndex = -1
	q.history.Reset()
}

// Tracks returns all tracks in the queue.
func (q *PlayingQueue) Tracks() []Track {
	return q.playlist.Tracks()
}

// Len returns the number of tracks in the queue.
func (q *PlayingQueue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *PlayingQueue) IsEmpty() bool {
	return q.playlist.Len() == 0
}

// Snapshot captures tracks and position for undo.
func (q *PlayingQueue) Snapshot() Snapshot {
	return Snapshot{Tracks: q.playlist.Tracks(), Index: q.currentIndex}
}

// Restore replaces the queue with a snapshot. The shuffle cycle restarts.
func (q *PlayingQueue) Restore(s Snapshot) {
	q.playlist.Clear()
	q.playlist.Add(s.Tracks...)
	q.currentIndex = -1
	if s.Index >= 0 && s.Index < q.playlist.Len() {
		q.currentIndex = s.Index
	}
	q.resetShuffleCycle()
}

// RepeatMode returns the current repeat mode.
func (q *PlayingQueue) RepeatMode() sequence.RepeatMode {
	return q.repeatMode
}

// SetRepeatMode sets the repeat mode.
func (q *PlayingQueue) SetRepeatMode(mode sequence.RepeatMode) {
	q.repeatMode = mode
}

// CycleRepeatMode advances to the next repeat mode and returns it.
func (q *PlayingQueue) CycleRepeatMode() sequence.RepeatMode {
	q.repeatMode = q.repeatMode.Cycle()
	return q.repeatMode
}

// Shuffle returns whether shuffle is enabled.
func (q *PlayingQueue) Shuffle() bool {
	return q.shuffle
}

// SetShuffle enables or disables shuffle. Any change starts a new cycle.
func (q *PlayingQueue) SetShuffle(enabled bool) {
	if q.shuffle == enabled {
		return
	}
	q.shuffle = enabled
	q.resetShuffleCycle()
}

// ToggleShuffle flips shuffle and returns the new value.
func (q *PlayingQueue) ToggleShuffle() bool {
	q.SetShuffle(!q.shuffle)
	return q.shuffle
}

// ShuffleHistory returns the indices played in the current shuffle cycle.
func (q *PlayingQueue) ShuffleHistory() []int {
	return q.history.Indices()
}

func (q *PlayingQueue) resetShuffleCycle() {
	if q.shuffle && q.hasCurrent() {
		q.history.Reset(q.currentIndex)
		return
	}
	q.history.Reset()
}
