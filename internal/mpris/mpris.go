//go:build linux

// Package mpris lets desktop media controls drive the playback service over
// the MPRIS D-Bus interface.
package mpris

import (
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/samber/lo"

	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/playback"
)

const busName = "cadence"

var errUnsupported = errors.New("not supported")

// Adapter serves one playback service on the session bus.
type Adapter struct {
	server *server.Server
	errCh  chan error
}

// New starts serving svc in the background. Listen failures arrive on Err.
func New(svc playback.Service) (*Adapter, error) {
	if svc == nil {
		return nil, errors.New("mpris: nil playback service")
	}
	a := &Adapter{
		server: server.NewServer(busName, identity{}, &transport{svc: svc}),
		errCh:  make(chan error, 1),
	}
	go func() { a.errCh <- a.server.Listen() }()
	return a, nil
}

// Err receives the listener's result once it stops.
func (a *Adapter) Err() <-chan error { return a.errCh }

// Close releases the bus name.
func (a *Adapter) Close() error { return a.server.Stop() }

// identity answers the org.mpris.MediaPlayer2 root interface. Cadence has no
// window to raise and is quit from its terminal.
type identity struct{}

func (identity) Raise() error                { return errUnsupported }
func (identity) Quit() error                 { return errUnsupported }
func (identity) CanQuit() (bool, error)      { return false, nil }
func (identity) CanRaise() (bool, error)     { return false, nil }
func (identity) HasTrackList() (bool, error) { return false, nil }
func (identity) Identity() (string, error)   { return "Cadence", nil }

//nolint:revive // Method name required by interface.
func (identity) SupportedUriSchemes() ([]string, error) { return []string{"file"}, nil }

func (identity) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/ogg", "audio/wav"}, nil
}

// transport maps org.mpris.MediaPlayer2.Player onto the service.
type transport struct {
	svc playback.Service
}

func (t *transport) Next() error      { return t.svc.Next() }
func (t *transport) Previous() error  { return t.svc.Previous() }
func (t *transport) Pause() error     { return t.svc.Pause() }
func (t *transport) PlayPause() error { return t.svc.Toggle() }
func (t *transport) Stop() error      { return t.svc.Stop() }

// Play never pauses, unlike PlayPause.
func (t *transport) Play() error {
	if t.svc.IsPlaying() {
		return nil
	}
	return t.svc.Play()
}

func (t *transport) Seek(offset types.Microseconds) error {
	return t.svc.Seek(microsToDuration(offset))
}

func (t *transport) SetPosition(_ string, position types.Microseconds) error {
	return t.svc.SeekTo(microsToDuration(position))
}

//nolint:revive // Method name required by interface.
func (t *transport) OpenUri(string) error { return errUnsupported }

func (t *transport) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(t.svc.State()), nil
}

func (t *transport) Position() (int64, error) {
	return t.svc.Position().Microseconds(), nil
}

func (t *transport) Metadata() (types.Metadata, error) {
	track := t.svc.CurrentTrack()
	if track == nil {
		return types.Metadata{}, nil
	}
	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(track.Path)),
		Length:      types.Microseconds(track.Duration.Microseconds()),
		Title:       track.Title,
		Artist:      lo.Compact([]string{track.Artist}),
		Album:       track.Album,
		TrackNumber: track.TrackNumber,
	}
	if cover := library.FindCover(track.Path); cover != "" {
		meta.ArtUrl = "file://" + cover
	}
	return meta, nil
}

// Rate and volume are fixed; writes are ignored.
func (t *transport) Rate() (float64, error)        { return 1, nil }
func (t *transport) MinimumRate() (float64, error) { return 1, nil }
func (t *transport) MaximumRate() (float64, error) { return 1, nil }
func (t *transport) SetRate(float64) error         { return nil }
func (t *transport) Volume() (float64, error)      { return 1, nil }
func (t *transport) SetVolume(float64) error       { return nil }

func (t *transport) CanGoNext() (bool, error)     { return t.svc.QueueHasNext(), nil }
func (t *transport) CanGoPrevious() (bool, error) { return t.svc.QueueHasPrevious(), nil }
func (t *transport) CanPlay() (bool, error)       { return !t.svc.QueueIsEmpty(), nil }
func (t *transport) CanPause() (bool, error)      { return !t.svc.QueueIsEmpty(), nil }
func (t *transport) CanSeek() (bool, error)       { return t.svc.CurrentTrack() != nil, nil }
func (t *transport) CanControl() (bool, error)    { return true, nil }

func (t *transport) LoopStatus() (types.LoopStatus, error) {
	return loopStatus(t.svc.RepeatMode()), nil
}

func (t *transport) SetLoopStatus(status types.LoopStatus) error {
	mode, ok := repeatMode(status)
	if !ok {
		return fmt.Errorf("unknown loop status %q", status)
	}
	t.svc.SetRepeatMode(mode)
	return nil
}

func (t *transport) Shuffle() (bool, error) { return t.svc.Shuffle(), nil }

func (t *transport) SetShuffle(on bool) error {
	t.svc.SetShuffle(on)
	return nil
}

func microsToDuration(us types.Microseconds) time.Duration {
	return time.Duration(us) * time.Microsecond
}

func playbackStatus(s playback.State) types.PlaybackStatus {
	switch s {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying
	case playback.StatePaused:
		return types.PlaybackStatusPaused
	default:
		return types.PlaybackStatusStopped
	}
}

var loopStatuses = map[playback.RepeatMode]types.LoopStatus{
	playback.RepeatOff: types.LoopStatusNone,
	playback.RepeatOne: types.LoopStatusTrack,
	playback.RepeatAll: types.LoopStatusPlaylist,
}

func loopStatus(mode playback.RepeatMode) types.LoopStatus {
	if s, ok := loopStatuses[mode]; ok {
		return s
	}
	return types.LoopStatusNone
}

func repeatMode(status types.LoopStatus) (playback.RepeatMode, bool) {
	return lo.FindKey(loopStatuses, status)
}

// formatTrackID derives a stable D-Bus object path from a file path.
func formatTrackID(path string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
