// internal/playback/service_impl.go
package playback

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
)

// restartThreshold is how far into a track Previous restarts it instead of
// moving to the previous track.
const restartThreshold = 3 * time.Second

const defaultUndoDepth = 50

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.RWMutex

	player  player.Interface
	queue   *playlist.PlayingQueue
	history *playlist.QueueHistory
	logger  *log.Logger

	// last track that started playing, for TrackChange.Previous
	lastTrack *Track
	lastIndex int

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

type config struct {
	logger    *log.Logger
	undoDepth int
}

// Option configures the service.
type Option func(*config)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUndoDepth sets how many queue states Undo can step back through.
func WithUndoDepth(n int) Option {
	return func(c *config) { c.undoDepth = n }
}

// New creates a playback service and starts watching p for finished tracks.
// The service takes ownership of q; callers must not modify it afterwards.
func New(p player.Interface, q *playlist.PlayingQueue, opts ...Option) Service {
	cfg := config{
		logger:    log.New(io.Discard),
		undoDepth: defaultUndoDepth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &serviceImpl{
		player:    p,
		queue:     q,
		history:   playlist.NewQueueHistory(cfg.undoDepth),
		logger:    cfg.logger.WithPrefix("playback"),
		lastIndex: -1,
		done:      make(chan struct{}),
	}
	s.history.Push(q.Snapshot())

	s.wg.Add(1)
	go s.watchFinished()
	return s
}

func (s *serviceImpl) watchFinished() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case <-s.player.FinishedChan():
			s.handleTrackFinished()
		}
	}
}

// handleTrackFinished advances the queue after a track plays to its end.
func (s *serviceImpl) handleTrackFinished() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	last := s.queue.CurrentIndex()
	next := s.queue.Next()
	if next == nil {
		s.logger.Debug("end of queue", "index", last, "repeat", s.queue.RepeatMode())
		s.player.Stop()
		s.emitState(StatePlaying, StateStopped)
		s.emitEnd(QueueEnd{LastIndex: last})
		return
	}

	s.logger.Debug("track finished, advancing", "from", last, "to", s.queue.CurrentIndex())
	if err := s.playCurrentLocked(); err != nil {
		s.emitState(StatePlaying, StateStopped)
	}
}

// playCurrentLocked starts the queue's current track.
func (s *serviceImpl) playCurrentLocked() error {
	t := fromPlaylist(s.queue.Current())
	if t == nil {
		return ErrNoCurrent
	}
	before := s.stateLocked()

	if err := s.player.Play(t.Path); err != nil {
		s.logger.Error("play failed", "path", t.Path, "err", err)
		s.emitError(ErrorEvent{Operation: "play", Path: t.Path, Err: err})
		return fmt.Errorf("play %s: %w", t.Path, err)
	}

	idx := s.queue.CurrentIndex()
	s.emitState(before, StatePlaying)
	if s.lastTrack == nil || s.lastIndex != idx || s.lastTrack.Path != t.Path {
		s.emitTrack(TrackChange{
			Previous:      s.lastTrack,
			Current:       t,
			PreviousIndex: s.lastIndex,
			Index:         idx,
		})
	}
	s.lastTrack = t
	s.lastIndex = idx
	s.logger.Debug("playing", "index", idx, "path", t.Path)
	return nil
}

// State returns the current playback state.
func (s *serviceImpl) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *serviceImpl) stateLocked() State {
	switch s.player.State() {
	case player.Playing:
		return StatePlaying
	case player.Paused:
		return StatePaused
	case player.Stopped:
		return StateStopped
	default:
		return StateStopped
	}
}

func (s *serviceImpl) IsPlaying() bool { return s.State() == StatePlaying }

func (s *serviceImpl) IsPaused() bool { return s.State() == StatePaused }

func (s *serviceImpl) IsStopped() bool { return s.State() == StateStopped }

// Position returns the current playback position.
func (s *serviceImpl) Position() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Position()
}

// Duration returns the current track duration.
func (s *serviceImpl) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Duration()
}

// TrackInfo returns the player's metadata for the loaded track.
func (s *serviceImpl) TrackInfo() *player.TrackInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.TrackInfo()
}

// CurrentTrack returns the current track, or nil if none.
func (s *serviceImpl) CurrentTrack() *Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fromPlaylist(s.queue.Current())
}

// Play starts the current track, or the first one if nothing is current.
// A paused track resumes instead of restarting.
func (s *serviceImpl) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.playLocked()
}

func (s *serviceImpl) playLocked() error {
	if s.queue.IsEmpty() {
		return ErrEmptyQueue
	}
	if s.stateLocked() == StatePaused {
		s.player.Resume()
		s.emitState(StatePaused, StatePlaying)
		return nil
	}
	if s.queue.Current() == nil {
		s.queue.JumpTo(0)
	}
	return s.playCurrentLocked()
}

// Pause pauses playback. It does nothing unless playing.
func (s *serviceImpl) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.stateLocked() != StatePlaying {
		return nil
	}
	s.player.Pause()
	s.emitState(StatePlaying, StatePaused)
	return nil
}

// Stop stops playback, keeping the queue position.
func (s *serviceImpl) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	before := s.stateLocked()
	s.player.Stop()
	s.emitState(before, StateStopped)
	return nil
}

// Toggle switches between playing and paused, starting playback if stopped.
func (s *serviceImpl) Toggle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	before := s.stateLocked()
	if before == StateStopped {
		return s.playLocked()
	}
	s.player.Toggle()
	s.emitState(before, s.stateLocked())
	return nil
}

// Next moves to the next track according to the modes. While playing, the
// new track starts; at the end of the queue playback stops.
func (s *serviceImpl) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.queue.IsEmpty() {
		return ErrEmptyQueue
	}

	active := s.stateLocked().IsActive()
	last := s.queue.CurrentIndex()
	if s.queue.Next() == nil {
		if last < 0 {
			return ErrNoCurrent
		}
		s.logger.Debug("skip past end of queue", "index", last)
		if active {
			before := s.stateLocked()
			s.player.Stop()
			s.emitState(before, StateStopped)
		}
		s.emitEnd(QueueEnd{LastIndex: last})
		return nil
	}
	return s.afterMoveLocked(active)
}

// Previous restarts the current track if it has played for more than a few
// seconds, otherwise moves one track back.
func (s *serviceImpl) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.queue.IsEmpty() {
		return ErrEmptyQueue
	}

	active := s.stateLocked().IsActive()
	if active && s.player.Position() > restartThreshold {
		return s.afterSeekLocked(s.player.SeekTo(0))
	}
	if s.queue.Previous() == nil {
		return ErrNoCurrent
	}
	return s.afterMoveLocked(active)
}

// JumpTo moves to index, starting it if playback is active.
func (s *serviceImpl) JumpTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.queue.JumpTo(index) == nil {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	return s.afterMoveLocked(s.stateLocked().IsActive())
}

func (s *serviceImpl) afterMoveLocked(active bool) error {
	if active {
		return s.playCurrentLocked()
	}
	s.emitQueueLocked()
	return nil
}

// Seek moves the playback position by delta.
func (s *serviceImpl) Seek(delta time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if !s.stateLocked().IsActive() {
		return nil
	}
	return s.afterSeekLocked(s.player.Seek(delta))
}

// SeekTo moves the playback position to an absolute time.
func (s *serviceImpl) SeekTo(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if !s.stateLocked().IsActive() {
		return nil
	}
	return s.afterSeekLocked(s.player.SeekTo(position))
}

func (s *serviceImpl) afterSeekLocked(err error) error {
	if err != nil {
		path := ""
		if t := s.queue.Current(); t != nil {
			path = t.Path
		}
		s.logger.Error("seek failed", "path", path, "err", err)
		s.emitError(ErrorEvent{Operation: "seek", Path: path, Err: err})
		return fmt.Errorf("seek: %w", err)
	}
	s.emitPosition(s.player.Position())
	return nil
}

// QueueAdvance moves the queue position as Next would, without playback.
func (s *serviceImpl) QueueAdvance() *Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := fromPlaylist(s.queue.Next())
	if t != nil {
		s.emitQueueLocked()
	}
	return t
}

// AddTracks appends tracks to the queue.
func (s *serviceImpl) AddTracks(tracks ...Track) {
	if len(tracks) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Add(toPlaylistTracks(tracks)...)
	s.queueEditedLocked()
}

// ReplaceTracks replaces the queue and moves to its first track.
func (s *serviceImpl) ReplaceTracks(tracks ...Track) *Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := fromPlaylist(s.queue.Replace(toPlaylistTracks(tracks)...))
	s.queueEditedLocked()
	return t
}

// RemoveTrack removes the track at index. Removing the playing track lets
// it finish; playback then stops.
func (s *serviceImpl) RemoveTrack(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.queue.RemoveAt(index) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	s.queueEditedLocked()
	return nil
}

// MoveTracks shifts the tracks at indices by delta as a block.
func (s *serviceImpl) MoveTracks(indices []int, delta int) ([]int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved, ok := s.queue.MoveIndices(indices, delta)
	if ok {
		s.queueEditedLocked()
	}
	return moved, ok
}

// ClearQueue stops playback and empties the queue.
func (s *serviceImpl) ClearQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.stateLocked()
	s.player.Stop()
	s.emitState(before, StateStopped)
	s.queue.Clear()
	s.lastTrack = nil
	s.lastIndex = -1
	s.queueEditedLocked()
}

func (s *serviceImpl) queueEditedLocked() {
	s.history.Push(s.queue.Snapshot())
	s.emitQueueLocked()
}

// Undo restores the previous queue state.
func (s *serviceImpl) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.queue.Restore(snap)
	s.emitQueueLocked()
	return true
}

// Redo reapplies an undone queue state.
func (s *serviceImpl) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.queue.Restore(snap)
	s.emitQueueLocked()
	return true
}

// QueueTracks returns a copy of all tracks in the queue.
func (s *serviceImpl) QueueTracks() []Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fromPlaylistTracks(s.queue.Tracks())
}

// QueueCurrentIndex returns the current queue index (-1 if none).
func (s *serviceImpl) QueueCurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.CurrentIndex()
}

func (s *serviceImpl) QueueLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Len()
}

func (s *serviceImpl) QueueIsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.IsEmpty()
}

func (s *serviceImpl) QueueHasNext() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.HasNext()
}

func (s *serviceImpl) QueueHasPrevious() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.HasPrevious()
}

// ShuffleHistory returns the indices played in the current shuffle cycle.
func (s *serviceImpl) ShuffleHistory() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.ShuffleHistory()
}

// RepeatMode returns the current repeat mode.
func (s *serviceImpl) RepeatMode() RepeatMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.RepeatMode()
}

// SetRepeatMode sets the repeat mode.
func (s *serviceImpl) SetRepeatMode(mode RepeatMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue.RepeatMode() == mode {
		return
	}
	s.queue.SetRepeatMode(mode)
	s.emitModeLocked()
}

// CycleRepeatMode advances off -> all -> one -> off.
func (s *serviceImpl) CycleRepeatMode() RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	mode := s.queue.CycleRepeatMode()
	s.emitModeLocked()
	return mode
}

// Shuffle returns whether shuffle is enabled.
func (s *serviceImpl) Shuffle() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Shuffle()
}

// SetShuffle enables or disables shuffle.
func (s *serviceImpl) SetShuffle(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue.Shuffle() == enabled {
		return
	}
	s.queue.SetShuffle(enabled)
	s.emitModeLocked()
}

// ToggleShuffle flips shuffle and returns the new value.
func (s *serviceImpl) ToggleShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	enabled := s.queue.ToggleShuffle()
	s.emitModeLocked()
	return enabled
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	if s.closed {
		sub.close()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

// Close stops playback, the finished-track watcher and all subscriptions.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.player.Stop()
	s.mu.Unlock()

	s.wg.Wait()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}
