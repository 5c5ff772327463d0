package playback

import "time"

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when playback starts on a different track.
//
// Emitted by Play, Next, Previous and JumpTo while playing, and when a
// finished track advances automatically. Moving the queue position while
// stopped does not emit it, and neither does a repeat-one replay of the same
// track.
type TrackChange struct {
	Previous      *Track
	Current       *Track
	PreviousIndex int
	Index         int
}

// QueueChange is emitted when the queue contents or position change.
type QueueChange struct {
	Tracks []Track
	Index  int
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	RepeatMode RepeatMode
	Shuffle    bool
}

// PositionChange is emitted when a seek occurs.
type PositionChange struct {
	Position time.Duration
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string // e.g., "play", "seek"
	Path      string // track path if applicable
	Err       error
}

// QueueEnd is emitted when the sequencer reports the end of the queue and
// playback stops.
type QueueEnd struct {
	LastIndex int
}
