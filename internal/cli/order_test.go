package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/sequence"
)

func makeTracks(n int) []playlist.Track {
	return lo.Times(n, func(i int) playlist.Track {
		return playlist.Track{
			ID:       int64(i + 1),
			Path:     fmt.Sprintf("/music/%02d.mp3", i+1),
			Title:    fmt.Sprintf("Song %d", i+1),
			Artist:   "Band",
			Duration: 2 * time.Minute,
		}
	})
}

func TestPlayOrder(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		repeat sequence.RepeatMode
		count  int
		want   []int
	}{
		{"sequential plays each once", 4, sequence.RepeatOff, 0, []int{0, 1, 2, 3}},
		{"repeat off stops at the end", 4, sequence.RepeatOff, 10, []int{0, 1, 2, 3}},
		{"count limits plays", 4, sequence.RepeatOff, 2, []int{0, 1}},
		{"repeat all wraps", 4, sequence.RepeatAll, 6, []int{0, 1, 2, 3, 0, 1}},
		{"repeat one stays", 4, sequence.RepeatOne, 3, []int{0, 0, 0}},
		{"single track repeat all", 1, sequence.RepeatAll, 3, []int{0, 0, 0}},
		{"no tracks", 0, sequence.RepeatAll, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := playOrder(makeTracks(tt.n), orderOptions{repeat: tt.repeat, count: tt.count, seed: 1})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlayOrder_ShuffleCycle(t *testing.T) {
	const n = 8
	opts := orderOptions{shuffle: true, seed: 42, count: n}

	got := playOrder(makeTracks(n), opts)

	require.Len(t, got, n)
	assert.Len(t, lo.Uniq(got), n, "every track plays once per cycle: %v", got)
	for _, idx := range got {
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, n)
	}
	assert.Equal(t, got, playOrder(makeTracks(n), opts), "same seed gives the same order")
}

func TestPlayOrder_ShuffleRepeatAllContinues(t *testing.T) {
	got := playOrder(makeTracks(3), orderOptions{shuffle: true, repeat: sequence.RepeatAll, seed: 5, count: 20})

	assert.Len(t, got, 20)
}

func TestWriteOrder(t *testing.T) {
	dir := t.TempDir()
	tracks := makeTracks(2)
	for i := range tracks {
		tracks[i].Path = filepath.Join(dir, fmt.Sprintf("%d.mp3", i))
		require.NoError(t, os.WriteFile(tracks[i].Path, make([]byte, 1000), 0o600))
	}

	var buf bytes.Buffer
	require.NoError(t, writeOrder(&buf, tracks, orderOptions{repeat: sequence.RepeatAll, count: 3}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "1.")
	assert.Contains(t, lines[0], "Song 1")
	assert.Contains(t, lines[0], "Band")
	assert.Contains(t, lines[0], "2:00")
	assert.Contains(t, lines[1], "Song 2")
	assert.Contains(t, lines[2], "Song 1")

	summary := lines[3]
	assert.Contains(t, summary, "3 plays of 2 tracks")
	assert.Contains(t, summary, "6:00")
	assert.Contains(t, summary, "2.0 kB")
	assert.Contains(t, summary, "repeat all")
	assert.NotContains(t, summary, "seed")
}

func TestOrderSummary_ShuffleShowsSeed(t *testing.T) {
	tracks := makeTracks(1)

	summary := orderSummary(tracks, []int{0}, time.Minute, orderOptions{shuffle: true, seed: 99})

	assert.Contains(t, summary, "shuffle seed 99")
	assert.Contains(t, summary, "0 B", "missing files count as zero bytes")
}

func TestNewQueue(t *testing.T) {
	q := newQueue(makeTracks(3), sequence.RepeatAll, false, nil)

	assert.Equal(t, 0, q.CurrentIndex())
	assert.Equal(t, sequence.RepeatAll, q.RepeatMode())
	assert.False(t, q.Shuffle())

	q = newQueue(makeTracks(3), sequence.RepeatOff, true, func() float64 { return 0.99 })

	assert.Equal(t, 2, q.CurrentIndex(), "shuffle starts on a random track")
	assert.Equal(t, []int{2}, q.ShuffleHistory())
}

func TestProgress(t *testing.T) {
	assert.Equal(t, "1:05 / 3:42", progress(65*time.Second, 222*time.Second))
	assert.Equal(t, "0:00 / 0:00", progress(0, 0))
}
