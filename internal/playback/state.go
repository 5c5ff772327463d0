// internal/playback/state.go
package playback

import "github.com/llehouerou/cadence/internal/sequence"

// State represents the playback state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// RepeatMode defines the repeat behavior.
type RepeatMode = sequence.RepeatMode

const (
	RepeatOff = sequence.RepeatOff
	RepeatAll = sequence.RepeatAll
	RepeatOne = sequence.RepeatOne
)
