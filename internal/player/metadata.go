package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extOGG  = ".ogg"
	extWAV  = ".wav"
)

// TrackInfo describes the loaded track.
type TrackInfo struct {
	Path     string
	Title    string
	Artist   string
	Album    string
	Year     int
	Track    int
	Duration time.Duration
}

// IsMusicFile reports whether path has an extension the player can decode.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extFLAC, extOGG, extWAV:
		return true
	default:
		return false
	}
}

// ReadTrackInfo reads tag metadata. Duration is left zero; use ReadDuration.
func ReadTrackInfo(path string) (*TrackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read tags %s: %w", path, err)
	}

	title := m.Title()
	if title == "" {
		title = filepath.Base(path)
	}
	track, _ := m.Track()

	return &TrackInfo{
		Path:   path,
		Title:  title,
		Artist: m.Artist(),
		Album:  m.Album(),
		Year:   m.Year(),
		Track:  track,
	}, nil
}

// ReadDuration decodes the stream header to compute the track length.
func ReadDuration(path string) (time.Duration, error) {
	streamer, format, f, err := decodeFile(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()), nil
}

// decodeFile opens and decodes path. The caller closes the streamer, then the
// file; some decoders close the file themselves, and the second close is
// harmless.
func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, *os.File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsMusicFile(path) {
		return nil, beep.Format{}, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case extMP3:
		streamer, format, err = mp3.Decode(f)
	case extFLAC:
		streamer, format, err = flac.Decode(f)
	case extOGG:
		streamer, format, err = vorbis.Decode(f)
	case extWAV:
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return streamer, format, f, nil
}
