package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/sequence"
)

var errNoTracks = errors.New("no music files found")

// collectTracks collects the tracks under args, or under the default folder
// when no path is given.
func collectTracks(args []string) ([]playlist.Track, error) {
	if len(args) == 0 {
		dir := cfg.DefaultFolder
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			dir = wd
		}
		args = []string{dir}
	}

	tracks, err := library.Collect(args...)
	if err != nil {
		return nil, errors.New(errmsg.Format(errmsg.OpLibraryScan, err))
	}
	if len(tracks) == 0 {
		return nil, errNoTracks
	}
	return tracks, nil
}

// newQueue builds a queue over tracks with the given modes. Under shuffle the
// first track is a random pick.
func newQueue(tracks []playlist.Track, repeat sequence.RepeatMode, shuffle bool, rnd sequence.RandFunc) *playlist.PlayingQueue {
	q := playlist.NewQueue(playlist.WithRand(rnd))
	q.Add(tracks...)
	q.SetRepeatMode(repeat)

	start := 0
	if shuffle {
		start = sequence.NextIndex(-1, len(tracks), sequence.RepeatOff, true, nil, sequence.WithRand(rnd))
	}
	q.JumpTo(start)
	q.SetShuffle(shuffle)
	return q
}

// trackLine renders one queue entry: its position, title, artist and time.
func trackLine(position int, title, artist, timing string) string {
	line := indexStyle.Render(fmt.Sprintf("%d.", position)) + " " + titleStyle.Render(title)
	if artist != "" {
		line += " " + artistStyle.Render(artist)
	}
	if timing != "" {
		line += " " + timeStyle.Render(timing)
	}
	return line
}

// progress formats elapsed/total, e.g. "1:05 / 3:42".
func progress(elapsed, total time.Duration) string {
	return sequence.FormatTime(elapsed) + " / " + sequence.FormatTime(total)
}
