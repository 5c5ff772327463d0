//go:build linux

package mpris

import (
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
)

func newTestTransport(t *testing.T, n int) (*transport, playback.Service, *player.Mock) {
	t.Helper()
	p := player.NewMock()
	q := playlist.NewQueue()
	for i := range n {
		q.Add(playlist.Track{
			Path:        "/music/album/" + string(rune('a'+i)) + ".mp3",
			Title:       "Title " + string(rune('A'+i)),
			Artist:      "Artist",
			Album:       "Album",
			TrackNumber: i + 1,
			Duration:    3 * time.Minute,
		})
	}
	svc := playback.New(p, q)
	t.Cleanup(func() { _ = svc.Close() })
	return &transport{svc: svc}, svc, p
}

func TestLoopStatusMapping(t *testing.T) {
	tests := []struct {
		mode   playback.RepeatMode
		status types.LoopStatus
	}{
		{playback.RepeatOff, types.LoopStatusNone},
		{playback.RepeatOne, types.LoopStatusTrack},
		{playback.RepeatAll, types.LoopStatusPlaylist},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.status, loopStatus(tt.mode))

			mode, ok := repeatMode(tt.status)
			require.True(t, ok)
			assert.Equal(t, tt.mode, mode)
		})
	}
}

func TestPlaybackStatusMapping(t *testing.T) {
	assert.Equal(t, types.PlaybackStatusPlaying, playbackStatus(playback.StatePlaying))
	assert.Equal(t, types.PlaybackStatusPaused, playbackStatus(playback.StatePaused))
	assert.Equal(t, types.PlaybackStatusStopped, playbackStatus(playback.StateStopped))
}

func TestTransport_SetLoopStatus(t *testing.T) {
	pa, svc, _ := newTestTransport(t, 2)

	require.NoError(t, pa.SetLoopStatus(types.LoopStatusPlaylist))
	assert.Equal(t, playback.RepeatAll, svc.RepeatMode())

	status, err := pa.LoopStatus()
	require.NoError(t, err)
	assert.Equal(t, types.LoopStatusPlaylist, status)

	require.Error(t, pa.SetLoopStatus(types.LoopStatus("Sometimes")))
	assert.Equal(t, playback.RepeatAll, svc.RepeatMode())
}

func TestTransport_Shuffle(t *testing.T) {
	pa, svc, _ := newTestTransport(t, 3)

	require.NoError(t, pa.SetShuffle(true))
	assert.True(t, svc.Shuffle())

	got, err := pa.Shuffle()
	require.NoError(t, err)
	assert.True(t, got)
}

func TestTransport_Controls(t *testing.T) {
	pa, svc, p := newTestTransport(t, 3)

	canPrev, _ := pa.CanGoPrevious()
	assert.False(t, canPrev)

	require.NoError(t, pa.Play())
	assert.True(t, svc.IsPlaying())

	require.NoError(t, pa.Next())
	assert.Equal(t, 1, svc.QueueCurrentIndex())

	canPrev, _ = pa.CanGoPrevious()
	assert.True(t, canPrev)

	require.NoError(t, pa.PlayPause())
	status, _ := pa.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPaused, status)

	require.NoError(t, pa.Play())
	assert.True(t, svc.IsPlaying())

	require.NoError(t, pa.SetPosition("", types.Microseconds(90*time.Second/time.Microsecond)))
	assert.Equal(t, []time.Duration{90 * time.Second}, p.SeekCalls())

	require.NoError(t, pa.Previous())
	assert.Equal(t, 1, svc.QueueCurrentIndex(), "Previous past the threshold restarts the track")

	require.NoError(t, pa.Stop())
	assert.True(t, svc.IsStopped())
}

func TestTransport_Metadata(t *testing.T) {
	pa, svc, _ := newTestTransport(t, 2)

	meta, err := pa.Metadata()
	require.NoError(t, err)
	assert.Empty(t, meta.Title, "no metadata without a current track")

	require.NoError(t, svc.JumpTo(1))
	meta, err = pa.Metadata()
	require.NoError(t, err)

	assert.Equal(t, "Title B", meta.Title)
	assert.Equal(t, []string{"Artist"}, meta.Artist)
	assert.Equal(t, 2, meta.TrackNumber)
	assert.Equal(t, types.Microseconds((3 * time.Minute).Microseconds()), meta.Length)
	assert.Equal(t, formatTrackID("/music/album/b.mp3"), string(meta.TrackId))
}

func TestTransport_PlayDoesNotPause(t *testing.T) {
	pa, svc, p := newTestTransport(t, 2)

	canSeek, _ := pa.CanSeek()
	assert.False(t, canSeek, "nothing to seek before a track is current")

	require.NoError(t, pa.Play())
	require.NoError(t, pa.Play())

	assert.True(t, svc.IsPlaying())
	assert.Len(t, p.PlayCalls(), 1, "Play while playing keeps the track going")
	canSeek, _ = pa.CanSeek()
	assert.True(t, canSeek)
}

func TestTransport_Unsupported(t *testing.T) {
	pa, _, _ := newTestTransport(t, 1)

	require.ErrorIs(t, pa.OpenUri("file:///music/a.mp3"), errUnsupported)
	require.ErrorIs(t, identity{}.Raise(), errUnsupported)

	rate, _ := pa.Rate()
	assert.InDelta(t, 1.0, rate, 0)
	require.NoError(t, pa.SetVolume(0.5))
	vol, _ := pa.Volume()
	assert.InDelta(t, 1.0, vol, 0)
}

func TestNew_NilService(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestFormatTrackID_Stable(t *testing.T) {
	a := formatTrackID("/music/a.mp3")
	assert.Equal(t, a, formatTrackID("/music/a.mp3"))
	assert.NotEqual(t, a, formatTrackID("/music/b.mp3"))
	assert.Contains(t, a, "/org/mpris/MediaPlayer2/Track/")
}
