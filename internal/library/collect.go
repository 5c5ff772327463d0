// Package library turns files and directories given on the command line into
// queue tracks.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/lo"

	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
)

const numWorkers = 8

// Collect gathers the music files under paths and reads their tags.
//
// Directories are walked recursively in lexical order; files are kept as
// given. Tracks follow argument order, and duplicates keep their first
// position. Unreadable entries inside a directory are skipped, but a path
// argument that does not exist is an error.
func Collect(paths ...string) ([]playlist.Track, error) {
	var files []string
	for _, p := range paths {
		found, err := discoverFiles(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	files = lo.Uniq(files)

	tracks := readTracks(files)
	for i := range tracks {
		tracks[i].ID = int64(i + 1)
	}
	return tracks, nil
}

// discoverFiles returns the music files at root, which may be a file or a
// directory.
func discoverFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", root, err)
	}
	if !info.IsDir() {
		if !player.IsMusicFile(root) {
			return nil, nil
		}
		return []string{filepath.Clean(root)}, nil
	}

	var files []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		// Skip any walk errors - intentionally continuing to scan other paths
		if walkErr != nil {
			return nil //nolint:nilerr // intentionally skipping errors
		}
		if d.IsDir() || !player.IsMusicFile(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, nil
}

// readTracks reads metadata for files in parallel, keeping their order.
func readTracks(files []string) []playlist.Track {
	tracks := make([]playlist.Track, len(files))
	workCh := make(chan int)

	var wg sync.WaitGroup
	for range min(numWorkers, len(files)) {
		wg.Go(func() {
			for i := range workCh {
				tracks[i] = readTrack(files[i])
			}
		})
	}

	for i := range files {
		workCh <- i
	}
	close(workCh)
	wg.Wait()

	return tracks
}

// readTrack builds a track from tags. Files without readable tags are still
// playable, so they fall back to the file name.
func readTrack(path string) playlist.Track {
	t := playlist.Track{Path: path, Title: filepath.Base(path)}

	if info, err := player.ReadTrackInfo(path); err == nil {
		t.Title = info.Title
		t.Artist = info.Artist
		t.Album = info.Album
		t.TrackNumber = info.Track
	}
	if d, err := player.ReadDuration(path); err == nil {
		t.Duration = d
	}
	return t
}
