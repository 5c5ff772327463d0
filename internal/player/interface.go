// internal/player/interface.go
package player

import "time"

// Interface is the audio output used by the playback service.
type Interface interface {
	Play(path string) error
	Stop()
	Pause()
	Resume()
	Toggle()
	State() State
	TrackInfo() *TrackInfo
	Position() time.Duration
	Duration() time.Duration
	Seek(delta time.Duration) error
	SeekTo(position time.Duration) error
	// FinishedChan receives a value each time a track plays to its end.
	FinishedChan() <-chan struct{}
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
