// internal/player/state.go
package player

// State is the audio output state.
//
// Transitions:
//   - Stopped -> Playing (Play)
//   - Playing -> Paused (Pause), Paused -> Playing (Resume)
//   - Playing or Paused -> Stopped (Stop, or the track running out)
//
// Pause and Resume from the wrong state are ignored. Toggle flips between
// Playing and Paused and does nothing while Stopped.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}
