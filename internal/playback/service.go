// Package playback is the player store: it owns the queue, its position and
// modes, drives the audio player, and publishes events to subscribers.
package playback

import (
	"errors"
	"time"

	"github.com/llehouerou/cadence/internal/player"
)

var (
	ErrEmptyQueue   = errors.New("queue is empty")
	ErrNoCurrent    = errors.New("no current track")
	ErrInvalidIndex = errors.New("invalid queue index")
	ErrClosed       = errors.New("playback service closed")
)

// Service defines the playback service contract.
//
// All methods are safe for concurrent use. Queue updates from user actions
// and from the track-finished watcher are serialised, so a skip and an
// automatic advance never interleave.
type Service interface {
	// Playback control
	Play() error
	Pause() error
	Stop() error
	Toggle() error
	Next() error
	Previous() error
	Seek(delta time.Duration) error
	SeekTo(position time.Duration) error

	// Queue navigation (starts playback if active)
	JumpTo(index int) error

	// Queue position control (without playback)
	QueueAdvance() *Track // Advance queue position (respects modes), returns track or nil at the end

	// Queue manipulation
	AddTracks(tracks ...Track)
	ReplaceTracks(tracks ...Track) *Track // Returns track at index 0 or nil
	RemoveTrack(index int) error
	MoveTracks(indices []int, delta int) ([]int, bool)
	ClearQueue()

	// State queries
	State() State
	IsPlaying() bool
	IsStopped() bool
	IsPaused() bool
	Position() time.Duration
	Duration() time.Duration
	CurrentTrack() *Track
	TrackInfo() *player.TrackInfo

	// Queue queries
	QueueTracks() []Track
	QueueCurrentIndex() int
	QueueLen() int
	QueueIsEmpty() bool
	QueueHasNext() bool
	QueueHasPrevious() bool
	ShuffleHistory() []int

	// Queue history
	Undo() bool
	Redo() bool

	// Mode control
	RepeatMode() RepeatMode
	SetRepeatMode(mode RepeatMode)
	CycleRepeatMode() RepeatMode
	Shuffle() bool
	SetShuffle(enabled bool)
	ToggleShuffle() bool

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
