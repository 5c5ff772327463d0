package playback

import (
	"time"

	"github.com/llehouerou/cadence/internal/playlist"
)

// Track represents a track in the queue.
// This is a copy of the data, not a reference to playlist.Track.
type Track struct {
	ID          int64
	Path        string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Duration    time.Duration
}

func fromPlaylist(t *playlist.Track) *Track {
	if t == nil {
		return nil
	}
	return &Track{
		ID:          t.ID,
		Path:        t.Path,
		Title:       t.Title,
		Artist:      t.Artist,
		Album:       t.Album,
		TrackNumber: t.TrackNumber,
		Duration:    t.Duration,
	}
}

func fromPlaylistTracks(tracks []playlist.Track) []Track {
	out := make([]Track, len(tracks))
	for i := range tracks {
		out[i] = *fromPlaylist(&tracks[i])
	}
	return out
}

func toPlaylistTracks(tracks []Track) []playlist.Track {
	out := make([]playlist.Track, len(tracks))
	for i, t := range tracks {
		out[i] = playlist.Track{
			ID:          t.ID,
			Path:        t.Path,
			Title:       t.Title,
			Artist:      t.Artist,
			Album:       t.Album,
			TrackNumber: t.TrackNumber,
			Duration:    t.Duration,
		}
	}
	return out
}
