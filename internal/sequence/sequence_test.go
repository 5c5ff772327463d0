package sequence

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) RandFunc {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).Float64
}

func constRand(v float64) RandFunc {
	return func() float64 { return v }
}

func TestNextIndex_RepeatOneKeepsCurrent(t *testing.T) {
	histories := [][]int{nil, {0}, {0, 1, 2}}
	for length := 1; length <= 6; length++ {
		for i := range length {
			for _, shuffle := range []bool{false, true} {
				for _, h := range histories {
					got := NextIndex(i, length, RepeatOne, shuffle, h)
					assert.Equal(t, i, got, "length=%d current=%d shuffle=%v history=%v", length, i, shuffle, h)
				}
			}
		}
	}
}

func TestNextIndex_Sequential(t *testing.T) {
	tests := []struct {
		name    string
		current int
		length  int
		mode    RepeatMode
		want    int
	}{
		{"advance", 0, 4, RepeatOff, 1},
		{"advance middle", 2, 4, RepeatAll, 3},
		{"end without repeat stops", 3, 4, RepeatOff, End},
		{"end with repeat all wraps", 3, 4, RepeatAll, 0},
		{"single track no repeat", 0, 1, RepeatOff, End},
		{"single track repeat all", 0, 1, RepeatAll, 0},
		{"empty queue", 0, 0, RepeatOff, End},
		{"empty queue repeat all", 0, 0, RepeatAll, 0},
		{"out of range current", 10, 4, RepeatOff, End},
		{"no current track", -1, 4, RepeatOff, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextIndex(tt.current, tt.length, tt.mode, false, nil)
			if got != tt.want {
				t.Errorf("NextIndex(%d, %d, %v) = %d, want %d", tt.current, tt.length, tt.mode, got, tt.want)
			}
		})
	}
}

func TestNextIndex_LastIndex(t *testing.T) {
	for n := 1; n <= 10; n++ {
		assert.Equal(t, End, NextIndex(n-1, n, RepeatOff, false, []int{}))
		assert.Equal(t, 0, NextIndex(n-1, n, RepeatAll, false, []int{}))
	}
}

func TestNextIndex_ShuffleInRange(t *testing.T) {
	rnd := seeded(1)
	for length := 1; length <= 12; length++ {
		for range 200 {
			got := NextIndex(0, length, RepeatOff, true, nil, WithRand(rnd))
			require.GreaterOrEqual(t, got, 0)
			require.Less(t, got, length)
		}
	}
}

func TestNextIndex_ShuffleExcludesHistory(t *testing.T) {
	rnd := seeded(42)
	const length = 10
	for draw := range 2000 {
		// Histories of size 0..length-2 keep the exclusion active.
		size := draw % (length - 1)
		history := rand.New(rand.NewPCG(uint64(draw), 7)).Perm(length)[:size]

		got := NextIndex(draw%length, length, RepeatOff, true, history, WithRand(rnd))

		require.NotContains(t, history, got, "draw %d history %v", draw, history)
		require.GreaterOrEqual(t, got, 0)
		require.Less(t, got, length)
	}
}

func TestNextIndex_ShuffleDoesNotMutateHistory(t *testing.T) {
	history := []int{3, 1}
	before := slices.Clone(history)

	NextIndex(1, 5, RepeatAll, true, history, WithRand(constRand(0.5)))

	assert.Equal(t, before, history)
}

func TestNextIndex_ShuffleRelaxesWhenHistoryCoversQueue(t *testing.T) {
	// With length-1 entries in history only index 3 is unvisited, but the
	// exclusion is dropped so a rand of 0 picks index 0.
	got := NextIndex(2, 4, RepeatOff, true, []int{0, 1, 2}, WithRand(constRand(0)))
	assert.Equal(t, 0, got)

	// One entry short of the threshold still excludes.
	got = NextIndex(2, 4, RepeatOff, true, []int{0, 1}, WithRand(constRand(0)))
	assert.Equal(t, 2, got)
}

func TestNextIndex_ShuffleOverfullHistory(t *testing.T) {
	got := NextIndex(0, 3, RepeatOff, true, []int{0, 1, 2, 0, 1}, WithRand(constRand(0.99)))
	assert.Equal(t, 2, got)
}

func TestNextIndex_ShuffleEmptyQueue(t *testing.T) {
	assert.Equal(t, 0, NextIndex(0, 0, RepeatOff, true, nil, WithRand(constRand(0.3))))
	assert.Equal(t, 0, NextIndex(-1, 0, RepeatAll, true, []int{1, 2}, WithRand(constRand(0.3))))
}

func TestNextIndex_ShuffleIgnoresEndOfQueue(t *testing.T) {
	got := NextIndex(3, 4, RepeatOff, true, nil, WithRand(constRand(0.75)))
	assert.Equal(t, 3, got)
}

func TestNextIndex_ShuffleClampsBadRandSource(t *testing.T) {
	assert.Equal(t, 4, NextIndex(0, 5, RepeatOff, true, nil, WithRand(constRand(1))))
	assert.Equal(t, 0, NextIndex(0, 5, RepeatOff, true, nil, WithRand(constRand(-0.5))))
}

func TestNextIndex_ShuffleUniform(t *testing.T) {
	rnd := seeded(99)
	counts := make([]int, 4)
	const draws = 8000
	for range draws {
		counts[NextIndex(0, 4, RepeatOff, true, nil, WithRand(rnd))]++
	}
	for i, c := range counts {
		assert.InDelta(t, draws/4, c, draws/20, "index %d picked %d times", i, c)
	}
}

func TestNextIndex_NilRandKeepsDefault(t *testing.T) {
	got := NextIndex(0, 3, RepeatOff, true, nil, WithRand(nil))
	assert.GreaterOrEqual(t, got, 0)
	assert.Less(t, got, 3)
}

func TestPreviousIndex(t *testing.T) {
	tests := []struct {
		current int
		length  int
		want    int
	}{
		{0, 10, 0},
		{5, 10, 4},
		{1, 10, 0},
		{0, 0, 0},
		{-1, 3, 0},
		{9, 10, 8},
	}

	for _, tt := range tests {
		got := PreviousIndex(tt.current, tt.length)
		if got != tt.want {
			t.Errorf("PreviousIndex(%d, %d) = %d, want %d", tt.current, tt.length, got, tt.want)
		}
	}
}
