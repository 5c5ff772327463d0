// Package playlist holds the play queue: an ordered track list, the current
// position, repeat and shuffle modes, and the history shuffle draws from.
package playlist

import (
	"slices"
	"time"
)

// Track is a single entry in the queue.
type Track struct {
	ID          int64  // catalogue ID, 0 for files opened directly
	Path        string // file path handed to the player
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Duration    time.Duration
}

// Playlist is an ordered collection of tracks.
type Playlist struct {
	tracks []Track
}

// NewPlaylist creates an empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{tracks: make([]Track, 0)}
}

func (p *Playlist) valid(index int) bool {
	return index >= 0 && index < len(p.tracks)
}

// Add appends tracks.
func (p *Playlist) Add(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}

// Remove deletes the track at index. Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if !p.valid(index) {
		return false
	}
	p.tracks = slices.Delete(p.tracks, index, index+1)
	return true
}

// Clear removes all tracks.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of the track list.
func (p *Playlist) Tracks() []Track {
	return slices.Clone(p.tracks)
}

// Track returns the track at index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if !p.valid(index) {
		return nil
	}
	return &p.tracks[index]
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// Move relocates the track at from so that it ends up at to.
// Returns false if either index is out of bounds.
func (p *Playlist) Move(from, to int) bool {
	if !p.valid(from) || !p.valid(to) {
		return false
	}
	if from == to {
		return true
	}
	t := p.tracks[from]
	p.tracks = slices.Delete(p.tracks, from, from+1)
	p.tracks = slices.Insert(p.tracks, to, t)
	return true
}
